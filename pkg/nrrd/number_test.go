package nrrd

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatNumber(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   float64
		want string
	}{
		{2, "2"},
		{1.5, "1.5"},
		{-0.25, "-0.25"},
		{0.1, "0.10000000000000001"},
		{1e20, "1e+20"},
		{math.NaN(), "nan"},
		{math.Inf(1), "inf"},
		{math.Inf(-1), "-inf"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatNumber(tt.in))
	}
}

func TestFormatNumberRoundTripIsBitExact(t *testing.T) {
	t.Parallel()

	for _, x := range []float64{
		0.1, 1.0 / 3, math.Pi, -math.E, math.SmallestNonzeroFloat64,
		math.MaxFloat64, 123456789.123456789, 5e-324, 2.5e-8,
	} {
		got, err := parseFloat(FormatNumber(x))
		require.NoError(t, err)
		assert.Equal(t, math.Float64bits(x), math.Float64bits(got), "value %v", x)
	}
}

func TestParseVector(t *testing.T) {
	t.Parallel()

	v, err := ParseVector("(1,2,3)", NumberAuto)
	require.NoError(t, err)
	assert.Equal(t, KindIntVector, v.Kind)
	assert.Equal(t, []int64{1, 2, 3}, v.Ints)

	v, err = ParseVector("(1, 2.5, 3)", NumberAuto)
	require.NoError(t, err)
	assert.Equal(t, KindDoubleVector, v.Kind)
	assert.Equal(t, []float64{1, 2.5, 3}, v.Floats)

	v, err = ParseVector("(1.9,-2.9)", NumberInt)
	require.NoError(t, err)
	assert.Equal(t, []int64{1, -2}, v.Ints)

	v, err = ParseVector("(1,2)", NumberFloat)
	require.NoError(t, err)
	assert.Equal(t, KindDoubleVector, v.Kind)

	_, err = ParseVector("1,2,3", NumberAuto)
	require.ErrorIs(t, err, ErrFormat)

	_, err = ParseVector("(1,x)", NumberAuto)
	require.ErrorIs(t, err, ErrFormat)
}

func TestFormatVector(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "(1,2.5,-3)", FormatVector([]float64{1, 2.5, -3}))
	assert.Equal(t, "(1,2,3)", FormatIntVector([]int64{1, 2, 3}))
	assert.Equal(t, "none", FormatOptionalVector(nil))
	assert.Equal(t, "none", FormatOptionalVector(NaNRow(3)))
	assert.Equal(t, "(0,1)", FormatOptionalVector([]float64{0, 1}))
}

func TestParseMatrix(t *testing.T) {
	t.Parallel()

	v, err := ParseMatrix("(1,0,0) (0,1,0) (0,0,1)", NumberAuto)
	require.NoError(t, err)
	assert.Equal(t, KindIntMatrix, v.Kind)
	assert.Equal(t, [][]int64{{1, 0, 0}, {0, 1, 0}, {0, 0, 1}}, v.IntRows)

	v, err = ParseMatrix("(1.5,0) (0,1)", NumberAuto)
	require.NoError(t, err)
	assert.Equal(t, KindDoubleMatrix, v.Kind)
	assert.Equal(t, [][]float64{{1.5, 0}, {0, 1}}, v.FloatRows)

	_, err = ParseMatrix("(1,0,0) (0,1)", NumberFloat)
	require.ErrorIs(t, err, ErrFormat)
	require.ErrorIs(t, err, ErrSizeMismatch)
}

func TestOptionalMatrix(t *testing.T) {
	t.Parallel()

	text := "none (1,0,0) (0,1,0) (0,0,1)"
	v, err := ParseOptionalMatrix(text)
	require.NoError(t, err)
	require.Len(t, v.FloatRows, 4)
	assert.True(t, allNaN(v.FloatRows[0]))
	assert.Len(t, v.FloatRows[0], 3)
	assert.Equal(t, []float64{0, 1, 0}, v.FloatRows[2])

	assert.Equal(t, text, FormatOptionalMatrix(v.FloatRows))

	v, err = ParseOptionalMatrix("(1,0) none (0,1)")
	require.NoError(t, err)
	assert.True(t, allNaN(v.FloatRows[1]))
	assert.Equal(t, "(1,0) none (0,1)", FormatOptionalMatrix(v.FloatRows))

	_, err = ParseOptionalMatrix("(1,0) none (0,1,2)")
	require.ErrorIs(t, err, ErrSizeMismatch)
}

func TestParseOptionalVector(t *testing.T) {
	t.Parallel()

	v, err := ParseOptionalVector("none")
	require.NoError(t, err)
	assert.Nil(t, v.Floats)
	assert.Equal(t, KindOptionalDoubleVector, v.Kind)

	v, err = ParseOptionalVector("(1,2)")
	require.NoError(t, err)
	assert.Equal(t, []float64{1, 2}, v.Floats)
}

func TestParseNumberList(t *testing.T) {
	t.Parallel()

	v, err := ParseNumberList("1 2 3", NumberAuto)
	require.NoError(t, err)
	assert.Equal(t, KindIntList, v.Kind)
	assert.Equal(t, []int64{1, 2, 3}, v.Ints)

	// One non-integral element keeps the whole list as doubles.
	v, err = ParseNumberList("1 2.5 3", NumberAuto)
	require.NoError(t, err)
	assert.Equal(t, KindDoubleList, v.Kind)
	assert.Equal(t, []float64{1, 2.5, 3}, v.Floats)

	v, err = ParseNumberList("9007199254740993", NumberInt)
	require.NoError(t, err)
	assert.Equal(t, []int64{9007199254740993}, v.Ints)

	v, err = ParseNumberList("25.0 3", NumberInt)
	require.NoError(t, err)
	assert.Equal(t, []int64{25, 3}, v.Ints)

	_, err = ParseNumberList("1 two", NumberAuto)
	require.ErrorIs(t, err, ErrFormat)

	_, err = ParseNumberList("nan", NumberInt)
	require.ErrorIs(t, err, ErrFormat)
}

func TestParseNumberAuto(t *testing.T) {
	t.Parallel()

	v, err := ParseNumberAuto("42")
	require.NoError(t, err)
	assert.Equal(t, IntValue(42), v)

	v, err = ParseNumberAuto("4.25")
	require.NoError(t, err)
	assert.Equal(t, FloatValue(4.25), v)

	_, err = ParseNumberAuto("abc")
	var fe *FormatError
	require.True(t, errors.As(err, &fe))
}
