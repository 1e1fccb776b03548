package workload

import "slices"

// DefaultDegree is the minimum degree Open uses for the btree store.
const DefaultDegree = 32

type node struct {
	leaf     bool
	keys     []int64
	values   [][]byte
	children []*node
}

// BTreeStore is an in-memory B-tree of minimum degree t: every node but the
// root holds between t-1 and 2t-1 keys.
type BTreeStore struct {
	t    int
	root *node
	n    int
}

// NewBTreeStore returns an empty tree. Degrees below 2 are raised to 2.
func NewBTreeStore(degree int) *BTreeStore {
	return &BTreeStore{t: max(degree, 2), root: &node{leaf: true}}
}

func (b *BTreeStore) full(x *node) bool { return len(x.keys) == 2*b.t-1 }

// Insert stores value under key, replacing any previous value.
func (b *BTreeStore) Insert(key int64, value []byte) error {
	if b.full(b.root) {
		b.root = &node{children: []*node{b.root}}
		b.split(b.root, 0)
	}
	if b.insert(b.root, key, value) {
		b.n++
	}
	return nil
}

// insert reports whether key was new.
func (b *BTreeStore) insert(x *node, key int64, value []byte) bool {
	for {
		i, found := slices.BinarySearch(x.keys, key)
		if found {
			x.values[i] = value
			return false
		}
		if x.leaf {
			x.keys = slices.Insert(x.keys, i, key)
			x.values = slices.Insert(x.values, i, value)
			return true
		}
		if b.full(x.children[i]) {
			b.split(x, i)
			switch {
			case key == x.keys[i]:
				x.values[i] = value
				return false
			case key > x.keys[i]:
				i++
			}
		}
		x = x.children[i]
	}
}

// split moves the upper half of the full child x.children[i] into a new
// sibling and lifts its median into x.
func (b *BTreeStore) split(x *node, i int) {
	t := b.t
	y := x.children[i]
	z := &node{
		leaf:   y.leaf,
		keys:   slices.Clone(y.keys[t:]),
		values: slices.Clone(y.values[t:]),
	}
	if !y.leaf {
		z.children = slices.Clone(y.children[t:])
		y.children = y.children[:t]
	}
	midKey, midVal := y.keys[t-1], y.values[t-1]
	y.keys, y.values = y.keys[:t-1], y.values[:t-1]

	x.keys = slices.Insert(x.keys, i, midKey)
	x.values = slices.Insert(x.values, i, midVal)
	x.children = slices.Insert(x.children, i+1, z)
}

// Get returns the value stored under key or ErrNotFound.
func (b *BTreeStore) Get(key int64) ([]byte, error) {
	x := b.root
	for {
		i, found := slices.BinarySearch(x.keys, key)
		if found {
			return x.values[i], nil
		}
		if x.leaf {
			return nil, ErrNotFound
		}
		x = x.children[i]
	}
}

// Range returns the number of keys in [start, end]. Subtrees entirely
// outside the interval are not visited.
func (b *BTreeStore) Range(start, end int64) (int, error) {
	if start > end {
		return 0, nil
	}
	return b.count(b.root, start, end), nil
}

func (b *BTreeStore) count(x *node, start, end int64) int {
	lo, _ := slices.BinarySearch(x.keys, start)
	hi, found := slices.BinarySearch(x.keys, end)
	if found {
		hi++
	}
	n := hi - lo
	if x.leaf {
		return n
	}
	// Only children[lo..hi] can hold keys in range.
	for i := lo; i <= hi; i++ {
		n += b.count(x.children[i], start, end)
	}
	return n
}

// Len returns the number of distinct keys.
func (b *BTreeStore) Len() int { return b.n }

// Close is a no-op.
func (b *BTreeStore) Close() error { return nil }
