package nrrd

import (
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveKind(t *testing.T) {
	t.Parallel()

	custom := FieldMap{"my vector": KindIntVector, "sizes": KindString}
	tests := []struct {
		field string
		want  Kind
	}{
		{"dimension", KindInt},
		{"byte skip", KindInt},
		{"old max", KindDouble},
		{"sizes", KindIntList},
		{"axis mins", KindDoubleList},
		{"space units", KindStringList},
		{"space origin", KindDoubleVector},
		{"space directions", KindOptionalDoubleMatrix},
		{"measurement frame", KindOptionalDoubleMatrix},
		{"data file", KindString},
		{"my vector", KindIntVector},
		{"unknown", KindString},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ResolveKind(tt.field, custom), tt.field)
	}
}

func TestParseKind(t *testing.T) {
	t.Parallel()

	for k := KindString; k <= KindOptionalDoubleMatrix; k++ {
		want := k
		switch k {
		case KindDoubleVector:
			want = KindOptionalDoubleVector
		case KindDoubleMatrix:
			want = KindOptionalDoubleMatrix
		}
		got, err := ParseKind(k.String())
		require.NoError(t, err)
		assert.Equal(t, want, got, k.String())
	}

	got, err := ParseKind("  Double   LIST ")
	require.NoError(t, err)
	assert.Equal(t, KindDoubleList, got)

	_, err = ParseKind("quaternion")
	require.ErrorIs(t, err, ErrFormat)
}

func TestValueRoundTrip(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		kind Kind
		text string
	}{
		{"int", KindInt, "-17"},
		{"double", KindDouble, "0.10000000000000001"},
		{"string", KindString, "hello world"},
		{"int list", KindIntList, "3 4 5"},
		{"double list", KindDoubleList, "1.5 2 nan"},
		{"string list", KindStringList, "domain space space"},
		{"int vector", KindIntVector, "(1,2,3)"},
		{"double vector", KindDoubleVector, "(0.5,1,-2)"},
		{"int matrix", KindIntMatrix, "(1,0) (0,1)"},
		{"double matrix", KindDoubleMatrix, "(1.5,0) (0,1)"},
		{"optional vector", KindOptionalDoubleVector, "none"},
		{"optional matrix", KindOptionalDoubleMatrix, "none (1,0,0) (0,1,0) (0,0,1)"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			v, err := ParseValue(tt.text, tt.kind)
			require.NoError(t, err)
			assert.Equal(t, tt.kind, v.Kind)

			text, err := FormatValue(v, tt.kind)
			require.NoError(t, err)
			assert.Equal(t, tt.text, text)

			again, err := ParseValue(text, tt.kind)
			require.NoError(t, err)
			assert.True(t, v.Equal(again))
		})
	}
}

func TestParseValueStrictInt(t *testing.T) {
	t.Parallel()

	_, err := ParseValue("3.5", KindInt)
	require.ErrorIs(t, err, ErrFormat)
}

func TestFormatValueConvertsNumbers(t *testing.T) {
	t.Parallel()

	text, err := FormatValue(IntListValue(1, 2), KindDoubleList)
	require.NoError(t, err)
	assert.Equal(t, "1 2", text)

	text, err = FormatValue(FloatVectorValue(1, 2), KindIntVector)
	require.NoError(t, err)
	assert.Equal(t, "(1,2)", text)

	text, err = FormatValue(IntValue(7), KindString)
	require.NoError(t, err)
	assert.Equal(t, "7", text)

	_, err = FormatValue(StringValue("x"), KindIntMatrix)
	require.Error(t, err)
}

func TestCustomDoubleFieldsAcceptNone(t *testing.T) {
	t.Parallel()

	fields := FieldMap{}
	for name, kind := range map[string]string{"my matrix": "double matrix", "my vector": "double vector"} {
		k, err := ParseKind(kind)
		require.NoError(t, err)
		fields[name] = k
	}

	h, _, err := ReadHeader(strings.NewReader("NRRD0005\nmy matrix:=none (1,0) (0,1)\nmy vector:=none\n\n"),
		WithCustomFieldMap(fields))
	require.NoError(t, err)
	m, ok := h.Matrix("my matrix")
	require.True(t, ok)
	require.Len(t, m, 3)
	assert.True(t, math.IsNaN(m[0][0]))
	assert.Equal(t, []float64{1, 0}, m[1])

	v, ok := h.Get("my vector")
	require.True(t, ok)
	text, err := FormatValue(v, fields["my vector"])
	require.NoError(t, err)
	assert.Equal(t, "none", text)
}
