package bitmap

import (
	"testing"

	"github.com/colvex/colvex/errs"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	t.Run("Valid", func(t *testing.T) {
		bm, err := New([]byte{0b10101010, 0b00000001}, 9)
		require.NoError(t, err)
		require.Equal(t, 9, bm.Len())
	})

	t.Run("Short data", func(t *testing.T) {
		_, err := New([]byte{0xFF}, 9)
		require.ErrorIs(t, err, errs.ErrInvalidValidity)
	})

	t.Run("Negative length", func(t *testing.T) {
		_, err := New(nil, -1)
		require.ErrorIs(t, err, errs.ErrInvalidValidity)
	})

	t.Run("Empty", func(t *testing.T) {
		bm, err := New(nil, 0)
		require.NoError(t, err)
		require.Equal(t, 0, bm.Len())
		require.Equal(t, 0, bm.SetCount())
	})
}

func TestFromBools(t *testing.T) {
	vals := []bool{true, false, true, true, false, false, true, false, true}
	bm := FromBools(vals)

	require.Equal(t, len(vals), bm.Len())
	for i, v := range vals {
		require.Equal(t, v, bm.Get(i), "bit %d", i)
	}
	require.Equal(t, 5, bm.SetCount())
	require.Equal(t, 4, bm.UnsetCount())
}

func TestSetCount_IgnoresPaddingBits(t *testing.T) {
	// All padding bits set; only the 3 addressed bits count.
	bm, err := New([]byte{0xFF}, 3)
	require.NoError(t, err)
	require.Equal(t, 3, bm.SetCount())
	require.Equal(t, 0, bm.UnsetCount())
}

func TestGet_OutOfRange(t *testing.T) {
	bm := FromBools([]bool{true, false})

	require.Panics(t, func() { bm.Get(2) })
	require.Panics(t, func() { bm.Get(-1) })
}

func TestByteCount(t *testing.T) {
	require.Equal(t, 0, ByteCount(0))
	require.Equal(t, 1, ByteCount(1))
	require.Equal(t, 1, ByteCount(8))
	require.Equal(t, 2, ByteCount(9))
}

func TestBuilder(t *testing.T) {
	b := &Builder{}
	b.Append(true)
	b.Append(false)
	b.AppendN(3, true)
	require.Equal(t, 5, b.Len())

	bm := b.Finish()
	require.Equal(t, 5, bm.Len())
	require.True(t, bm.Get(0))
	require.False(t, bm.Get(1))
	require.True(t, bm.Get(2))
	require.True(t, bm.Get(4))
}
