// Package workload provides key/value stores and operation mixes to measure.
//
// The mixes mirror common database access shapes: a bulk load, a read-heavy
// transactional mix, a write-heavy analytical mix and a range-scan
// reporting mix. Each mix is exposed as a measure.Work.
package workload

import (
	"github.com/cockroachdb/errors"
)

// ErrNotFound is returned by Get for a missing key.
var ErrNotFound = errors.New("key not found")

// ErrUnknownStore is returned by Open for an unsupported store name.
var ErrUnknownStore = errors.New("unknown store")

// Store is the common interface of the measured stores.
type Store interface {
	Insert(key int64, value []byte) error
	Get(key int64) ([]byte, error)
	// Range returns the number of keys in [start, end].
	Range(start, end int64) (int, error)
	Close() error
}

const (
	StorePebble = "pebble"
	StoreMemory = "memory"
	StoreBTree  = "btree"
)

// Stores lists the names accepted by Open.
func Stores() []string { return []string{StorePebble, StoreMemory, StoreBTree} }

// Open returns the named store. dir is only used by the pebble store; an
// empty dir keeps pebble entirely in memory.
func Open(name, dir string) (Store, error) {
	switch name {
	case StoreMemory:
		return NewMemStore(), nil
	case StoreBTree:
		return NewBTreeStore(DefaultDegree), nil
	case StorePebble:
		if dir == "" {
			return OpenPebble("", WithMemFS())
		}
		return OpenPebble(dir)
	default:
		return nil, errors.Wrapf(ErrUnknownStore, "%q", name)
	}
}
