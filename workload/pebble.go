package workload

import (
	"encoding/binary"

	"github.com/cockroachdb/errors"
	"github.com/cockroachdb/pebble"
	"github.com/cockroachdb/pebble/vfs"
)

// PebbleStore keeps keys in a Pebble LSM database.
type PebbleStore struct {
	db *pebble.DB
}

// PebbleOption adjusts the options a PebbleStore opens with.
type PebbleOption func(*pebble.Options)

// WithMemFS keeps the database in memory.
func WithMemFS() PebbleOption {
	return func(o *pebble.Options) { o.FS = vfs.NewMem() }
}

// OpenPebble opens (or creates) a Pebble database in dir.
func OpenPebble(dir string, opts ...PebbleOption) (*PebbleStore, error) {
	o := &pebble.Options{
		MemTableSize:                16 << 20,
		MemTableStopWritesThreshold: 4,
		L0CompactionThreshold:       4,
		L0StopWritesThreshold:       12,
	}
	for _, opt := range opts {
		opt(o)
	}

	db, err := pebble.Open(dir, o)
	if err != nil {
		return nil, errors.Wrap(err, "pebble: open")
	}
	return &PebbleStore{db: db}, nil
}

func (s *PebbleStore) Close() error {
	return s.db.Close()
}

func (s *PebbleStore) Insert(key int64, value []byte) error {
	return s.db.Set(encodeKey(key), value, pebble.NoSync)
}

func (s *PebbleStore) Get(key int64) ([]byte, error) {
	val, closer, err := s.db.Get(encodeKey(key))
	if errors.Is(err, pebble.ErrNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, errors.Wrap(err, "pebble: get")
	}
	// val is only valid until closer.Close().
	out := make([]byte, len(val))
	copy(out, val)
	if err := closer.Close(); err != nil {
		return nil, errors.Wrap(err, "pebble: get")
	}
	return out, nil
}

func (s *PebbleStore) Range(start, end int64) (int, error) {
	if end < start {
		return 0, nil
	}
	iter, err := s.db.NewIter(&pebble.IterOptions{
		LowerBound: encodeKey(start),
		UpperBound: upperBound(end),
	})
	if err != nil {
		return 0, errors.Wrap(err, "pebble: range")
	}
	n := 0
	for valid := iter.First(); valid; valid = iter.Next() {
		n++
	}
	if err := iter.Close(); err != nil {
		return 0, errors.Wrap(err, "pebble: range")
	}
	return n, nil
}

// encodeKey flips the sign bit so that big-endian byte order matches int64
// order, negative keys included.
func encodeKey(k int64) []byte {
	b := make([]byte, 8)
	binary.BigEndian.PutUint64(b, uint64(k)^(1<<63))
	return b
}

// upperBound is the exclusive bound for an inclusive end key. For the
// largest key there is no successor, so the bound is nil (unbounded).
func upperBound(end int64) []byte {
	if end == 1<<63-1 {
		return nil
	}
	return encodeKey(end + 1)
}
