package workload

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openStores(t *testing.T) map[string]Store {
	t.Helper()
	pb, err := OpenPebble("", WithMemFS())
	require.NoError(t, err)
	stores := map[string]Store{
		StorePebble: pb,
		StoreMemory: NewMemStore(),
		StoreBTree:  NewBTreeStore(2),
	}
	t.Cleanup(func() {
		for _, s := range stores {
			_ = s.Close()
		}
	})
	return stores
}

func TestStoreContract(t *testing.T) {
	for name, s := range openStores(t) {
		t.Run(name, func(t *testing.T) {
			for _, k := range []int64{5, -3, 1, 9, 7, 3} {
				require.NoError(t, s.Insert(k, []byte{byte(k + 10)}))
			}

			v, err := s.Get(9)
			require.NoError(t, err)
			assert.Equal(t, []byte{19}, v)

			v, err = s.Get(-3)
			require.NoError(t, err)
			assert.Equal(t, []byte{7}, v)

			_, err = s.Get(4)
			assert.ErrorIs(t, err, ErrNotFound)

			// Overwrite keeps one entry per key.
			require.NoError(t, s.Insert(5, []byte("new")))
			v, err = s.Get(5)
			require.NoError(t, err)
			assert.Equal(t, []byte("new"), v)

			n, err := s.Range(3, 7)
			require.NoError(t, err)
			assert.Equal(t, 3, n, "3, 5 and 7 are inclusive")

			n, err = s.Range(-10, 100)
			require.NoError(t, err)
			assert.Equal(t, 6, n)

			n, err = s.Range(10, 2)
			require.NoError(t, err)
			assert.Zero(t, n)
		})
	}
}

func TestPebbleOnDisk(t *testing.T) {
	dir := t.TempDir()
	s, err := Open(StorePebble, dir)
	require.NoError(t, err)
	require.NoError(t, s.Insert(42, []byte("x")))
	require.NoError(t, s.Close())

	s, err = Open(StorePebble, dir)
	require.NoError(t, err)
	defer s.Close()
	v, err := s.Get(42)
	require.NoError(t, err)
	assert.Equal(t, []byte("x"), v)
}

func TestOpenUnknown(t *testing.T) {
	_, err := Open("skiplist", "")
	assert.ErrorIs(t, err, ErrUnknownStore)
}

func TestEncodeKeyPreservesOrder(t *testing.T) {
	keys := []int64{-1 << 63, -100, -1, 0, 1, 100, 1<<63 - 1}
	for i := 1; i < len(keys); i++ {
		assert.Less(t, string(encodeKey(keys[i-1])), string(encodeKey(keys[i])))
	}
	assert.Nil(t, upperBound(1<<63-1))
}
