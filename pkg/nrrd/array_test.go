package nrrd

import (
	"encoding/binary"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromSliceLayout(t *testing.T) {
	t.Parallel()

	c, err := FromSlice([]int16{1, 2, 3, 4, 5, 6}, []int{2, 3}, OrderC)
	require.NoError(t, err)
	assert.Equal(t, []int{3, 1}, c.Strides())
	assert.Equal(t, int64(2), c.Int64At(0, 1))
	assert.Equal(t, int64(4), c.Int64At(1, 0))

	f, err := FromSlice([]int16{1, 2, 3, 4, 5, 6}, []int{2, 3}, OrderF)
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2}, f.Strides())
	assert.Equal(t, int64(3), f.Int64At(0, 1))
	assert.Equal(t, int64(2), f.Int64At(1, 0))

	_, err = FromSlice([]float32{1, 2, 3}, []int{2, 2}, OrderC)
	require.ErrorIs(t, err, ErrSizeMismatch)
}

func TestTransposeIsZeroCopy(t *testing.T) {
	t.Parallel()

	a, err := FromSlice([]float64{1, 2, 3, 4, 5, 6}, []int{2, 3}, OrderC)
	require.NoError(t, err)
	tr := a.Transpose()
	assert.Equal(t, []int{3, 2}, tr.Shape())
	assert.Equal(t, []int{1, 3}, tr.Strides())

	for i := range 2 {
		for j := range 3 {
			assert.Equal(t, a.At(i, j), tr.At(j, i))
		}
	}

	tr.SetFloat(42, 2, 1)
	assert.Equal(t, 42.0, a.At(1, 2))
	assert.True(t, tr.Transpose().Equal(a))
}

func TestBytesInOrder(t *testing.T) {
	t.Parallel()

	a, err := FromSlice([]uint16{1, 2, 3, 4}, []int{2, 2}, OrderC)
	require.NoError(t, err)

	assert.Equal(t, []byte{1, 0, 2, 0, 3, 0, 4, 0}, a.Bytes(OrderC, binary.LittleEndian))
	assert.Equal(t, []byte{1, 0, 3, 0, 2, 0, 4, 0}, a.Bytes(OrderF, binary.LittleEndian))
	assert.Equal(t, []byte{0, 1, 0, 2, 0, 3, 0, 4}, a.Bytes(OrderC, binary.BigEndian))

	be := a.WithByteOrder(binary.BigEndian)
	assert.Equal(t, binary.BigEndian, be.ByteOrder())
	assert.True(t, be.Equal(a))
	assert.Equal(t, a.Int64s(OrderC), be.Int64s(OrderC))
}

func TestArrayEqualHandlesNaN(t *testing.T) {
	t.Parallel()

	a, err := FromSlice([]float32{1, float32(math.NaN())}, []int{2}, OrderC)
	require.NoError(t, err)
	b, err := FromSlice([]float32{1, float32(math.NaN())}, []int{2}, OrderF)
	require.NoError(t, err)
	assert.True(t, a.Equal(b))

	c, err := FromSlice([]float64{1, math.NaN()}, []int{2}, OrderC)
	require.NoError(t, err)
	assert.False(t, a.Equal(c))
}

func TestStats(t *testing.T) {
	t.Parallel()

	a, err := FromSlice([]float64{4, -2, math.NaN(), 1}, []int{4}, OrderC)
	require.NoError(t, err)
	s := a.Stats()
	assert.Equal(t, 4, s.Count)
	assert.Equal(t, 1, s.NaNs)
	assert.Equal(t, -2.0, s.Min)
	assert.Equal(t, 4.0, s.Max)
	assert.Equal(t, 1.0, s.Mean)
}

func TestUint64Precision(t *testing.T) {
	t.Parallel()

	big := uint64(math.MaxUint64 - 1)
	a, err := FromSlice([]uint64{big}, []int{1}, OrderC)
	require.NoError(t, err)
	assert.Equal(t, big, binary.LittleEndian.Uint64(a.BlockAt(0)))
}

func TestBlockArray(t *testing.T) {
	t.Parallel()

	a, err := NewBlockArray(3, []int{2}, OrderC)
	require.NoError(t, err)
	copy(a.BlockAt(1), "abc")
	assert.Equal(t, []byte{0, 0, 0, 'a', 'b', 'c'}, a.Bytes(OrderC, binary.BigEndian))
	assert.Nil(t, a.Float64s(OrderC))

	_, err = NewArray(Block, []int{2}, OrderC)
	require.Error(t, err)
}

func TestNewArrayRejectsOverflow(t *testing.T) {
	t.Parallel()

	_, err := NewArray(Uint8, []int{3037000500, 3037000500}, OrderC)
	require.ErrorIs(t, err, ErrFormat)

	_, err = NewArray(Float64, []int{math.MaxInt/8 + 1}, OrderF)
	require.ErrorIs(t, err, ErrFormat)

	_, err = NewBlockArray(math.MaxInt/2, []int{3}, OrderC)
	require.ErrorIs(t, err, ErrFormat)

	_, err = FromBytes(Block, math.MaxInt/2, []int{4}, OrderC, binary.LittleEndian, nil)
	require.ErrorIs(t, err, ErrFormat)

	a, err := NewArray(Int32, []int{0, 3037000500, 3037000500}, OrderC)
	require.NoError(t, err)
	assert.Equal(t, 0, a.Len())
}
