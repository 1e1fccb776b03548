package workload

import (
	"cmp"
	"slices"
)

type entry struct {
	key int64
	val []byte
}

// MemStore keeps entries in a slice sorted by key.
type MemStore struct {
	data []entry
}

func NewMemStore() *MemStore {
	return &MemStore{}
}

func (s *MemStore) find(key int64) (int, bool) {
	return slices.BinarySearchFunc(s.data, key, func(e entry, k int64) int {
		return cmp.Compare(e.key, k)
	})
}

func (s *MemStore) Insert(key int64, value []byte) error {
	i, found := s.find(key)
	if found {
		s.data[i].val = value
		return nil
	}
	s.data = slices.Insert(s.data, i, entry{key: key, val: value})
	return nil
}

func (s *MemStore) Get(key int64) ([]byte, error) {
	i, found := s.find(key)
	if !found {
		return nil, ErrNotFound
	}
	return s.data[i].val, nil
}

func (s *MemStore) Range(start, end int64) (int, error) {
	if end < start {
		return 0, nil
	}
	lo, _ := s.find(start)
	hi, found := s.find(end)
	if found {
		hi++
	}
	return hi - lo, nil
}

// Len returns the number of stored keys.
func (s *MemStore) Len() int { return len(s.data) }

func (s *MemStore) Close() error {
	s.data = nil
	return nil
}
