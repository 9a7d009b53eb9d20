package fixed

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPoolGetPut(t *testing.T) {
	pool, err := New(4, 2)
	require.NoError(t, err)
	defer pool.Close()

	first, err := pool.Get()
	require.NoError(t, err)
	second, err := pool.Get()
	require.NoError(t, err)

	_, err = pool.Get()
	require.ErrorIs(t, err, ErrExhausted)

	pool.Put(first)
	again, err := pool.Get()
	require.NoError(t, err)
	require.Equal(t, first.poolIndex, again.poolIndex)

	pool.Put(second)
	pool.Put(again)
}

func TestPoolSlotsDisjoint(t *testing.T) {
	pool, err := New(4, 2)
	require.NoError(t, err)
	defer pool.Close()

	first, err := pool.Get()
	require.NoError(t, err)
	second, err := pool.Get()
	require.NoError(t, err)

	copy(first.Bytes(), []byte("aaaa"))
	copy(second.Bytes(), []byte("bbbb"))
	require.Equal(t, "aaaa", string(first.Bytes()))
	require.Equal(t, "bbbb", string(second.Bytes()))
	require.Equal(t, 4, first.Len())
}
