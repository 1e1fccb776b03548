package workload

import (
	"errors"
	"testing"

	"github.com/ArrisFramework/measure/measure"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingStore struct {
	inserts, gets, ranges int
	failOn                int
	err                   error
}

func (c *countingStore) tick() error {
	if c.failOn > 0 && c.inserts+c.gets+c.ranges == c.failOn {
		return c.err
	}
	return nil
}

func (c *countingStore) Insert(int64, []byte) error { c.inserts++; return c.tick() }
func (c *countingStore) Get(int64) ([]byte, error)  { c.gets++; return nil, ErrNotFound }
func (c *countingStore) Range(int64, int64) (int, error) {
	c.ranges++
	return 0, c.tick()
}
func (c *countingStore) Close() error { return nil }

func TestParseKind(t *testing.T) {
	for _, k := range Kinds() {
		got, err := ParseKind(string(k))
		require.NoError(t, err)
		assert.Equal(t, k, got)
	}
	got, err := ParseKind(" OLTP ")
	require.NoError(t, err)
	assert.Equal(t, OLTP, got)

	_, err = ParseKind("etl")
	assert.ErrorIs(t, err, ErrUnknownKind)
}

func TestMixOperationCounts(t *testing.T) {
	const ops = 1000

	load := &countingStore{}
	res, err := Mix(load, Load, ops, 1)()
	require.NoError(t, err)
	assert.Equal(t, ops, res)
	assert.Equal(t, ops, load.inserts)

	oltp := &countingStore{}
	_, err = Mix(oltp, OLTP, ops, 1)()
	require.NoError(t, err)
	assert.Equal(t, ops, oltp.gets+oltp.inserts)
	assert.Greater(t, oltp.gets, oltp.inserts, "OLTP is read heavy")

	olap := &countingStore{}
	_, err = Mix(olap, OLAP, ops, 1)()
	require.NoError(t, err)
	assert.Greater(t, olap.inserts, olap.gets, "OLAP is write heavy")

	rep := &countingStore{}
	_, err = Mix(rep, Reporting, ops, 1)()
	require.NoError(t, err)
	assert.Equal(t, ops, rep.ranges)
}

func TestMixIsDeterministic(t *testing.T) {
	a, b := &countingStore{}, &countingStore{}
	_, _ = Mix(a, OLTP, 500, 9)()
	_, _ = Mix(b, OLTP, 500, 9)()
	assert.Equal(t, a.gets, b.gets)
	assert.Equal(t, a.inserts, b.inserts)
}

func TestMixPropagatesStoreError(t *testing.T) {
	boom := errors.New("disk full")
	s := &countingStore{failOn: 3, err: boom}

	res, err := Mix(s, Load, 10, 1)()
	assert.Same(t, boom, err)
	assert.Equal(t, 2, res)
}

func TestMixAgainstStores(t *testing.T) {
	m := measure.NewMeter()
	for name, s := range openStores(t) {
		t.Run(name, func(t *testing.T) {
			sample, err := m.Measure(Mix(s, Load, 2000, 1), "load")
			require.NoError(t, err)
			assert.Equal(t, 2000, sample.Result)

			n, err := s.Range(0, 1999)
			require.NoError(t, err)
			assert.Equal(t, 2000, n)

			st, err := m.MeasureMultiple(Mix(s, Reporting, 50, 2), 3, false)
			require.NoError(t, err)
			assert.Equal(t, 3, st.Iterations)
		})
	}
}
