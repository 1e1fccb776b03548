package workload

import (
	"math/rand/v2"
	"strings"

	"github.com/ArrisFramework/measure/measure"
	"github.com/cockroachdb/errors"
)

// Kind names an operation mix.
type Kind string

const (
	Load      Kind = "load"
	OLTP      Kind = "oltp"
	OLAP      Kind = "olap"
	Reporting Kind = "reporting"
)

// ErrUnknownKind is returned by ParseKind.
var ErrUnknownKind = errors.New("unknown workload")

// scanWidth is the key span of one reporting range scan.
const scanWidth = 100

var payload = []byte("v")

// Kinds lists every mix in the order the CLI runs them.
func Kinds() []Kind { return []Kind{Load, OLTP, OLAP, Reporting} }

// ParseKind accepts a mix name in any case.
func ParseKind(s string) (Kind, error) {
	k := Kind(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Kinds() {
		if k == known {
			return k, nil
		}
	}
	return "", errors.Wrapf(ErrUnknownKind, "%q", s)
}

// Label is the display name of the mix.
func (k Kind) Label() string {
	switch k {
	case Load:
		return "Load"
	case OLTP:
		return "OLTP (90/10)"
	case OLAP:
		return "OLAP (10/90)"
	case Reporting:
		return "Reporting"
	default:
		return string(k)
	}
}

// Mix returns work that runs ops operations of kind against store and
// yields the number of operations performed. Keys are drawn from [0, ops)
// with a generator seeded by seed, so every run of the work issues the same
// sequence. Missing keys are not errors; any other store error ends the run.
func Mix(store Store, kind Kind, ops int, seed uint64) measure.Work {
	return func() (any, error) {
		if ops < 1 {
			return 0, nil
		}
		r := rand.New(rand.NewPCG(seed, uint64(ops)))
		for i := 0; i < ops; i++ {
			if err := step(store, kind, r, i, ops); err != nil {
				return i, err
			}
		}
		return ops, nil
	}
}

func step(store Store, kind Kind, r *rand.Rand, i, ops int) error {
	key := r.Int64N(int64(ops))
	choice := r.IntN(100)

	switch kind {
	case Load:
		return store.Insert(int64(i), payload)
	case OLTP:
		if choice < 90 {
			return get(store, key)
		}
		return store.Insert(key, payload)
	case OLAP:
		if choice < 10 {
			return get(store, key)
		}
		return store.Insert(key, payload)
	case Reporting:
		_, err := store.Range(key, key+scanWidth)
		return err
	default:
		return errors.Wrapf(ErrUnknownKind, "%q", string(kind))
	}
}

func get(store Store, key int64) error {
	_, err := store.Get(key)
	if errors.Is(err, ErrNotFound) {
		return nil
	}
	return err
}
