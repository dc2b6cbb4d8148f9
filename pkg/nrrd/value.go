package nrrd

import (
	"math"
	"slices"
)

// Value is a typed header field value. Kind selects which member is
// meaningful:
//
//	KindInt                       Int
//	KindDouble                    Float
//	KindString                    Str
//	KindIntList, KindIntVector    Ints
//	KindDoubleList,
//	KindDoubleVector,
//	KindOptionalDoubleVector      Floats (nil means "none" for the optional kind)
//	KindStringList                Strs
//	KindIntMatrix                 IntRows
//	KindDoubleMatrix,
//	KindOptionalDoubleMatrix      FloatRows (an all-NaN row means "none")
type Value struct {
	Kind      Kind
	Int       int64
	Float     float64
	Str       string
	Ints      []int64
	Floats    []float64
	Strs      []string
	IntRows   [][]int64
	FloatRows [][]float64
}

// Constructors for each value kind.

func IntValue(v int64) Value { return Value{Kind: KindInt, Int: v} }

func FloatValue(v float64) Value { return Value{Kind: KindDouble, Float: v} }

func StringValue(v string) Value { return Value{Kind: KindString, Str: v} }

func IntListValue(v ...int64) Value { return Value{Kind: KindIntList, Ints: v} }

func FloatListValue(v ...float64) Value { return Value{Kind: KindDoubleList, Floats: v} }

func StringListValue(v ...string) Value { return Value{Kind: KindStringList, Strs: v} }

func IntVectorValue(v ...int64) Value { return Value{Kind: KindIntVector, Ints: v} }

func FloatVectorValue(v ...float64) Value { return Value{Kind: KindDoubleVector, Floats: v} }

func IntMatrixValue(rows ...[]int64) Value { return Value{Kind: KindIntMatrix, IntRows: rows} }

func FloatMatrixValue(rows ...[]float64) Value {
	return Value{Kind: KindDoubleMatrix, FloatRows: rows}
}

// OptionalVectorValue builds an optional double vector; nil means absent.
func OptionalVectorValue(v []float64) Value {
	return Value{Kind: KindOptionalDoubleVector, Floats: v}
}

// OptionalMatrixValue builds an optional double matrix. Absent rows are
// all-NaN; NaNRow builds one.
func OptionalMatrixValue(rows ...[]float64) Value {
	return Value{Kind: KindOptionalDoubleMatrix, FloatRows: rows}
}

// NaNRow returns a row of n NaNs, the in-memory form of a "none" row.
func NaNRow(n int) []float64 {
	row := make([]float64, n)
	for i := range row {
		row[i] = math.NaN()
	}
	return row
}

// AsFloats returns the numeric members of a scalar, list or vector value as
// float64.
func (v Value) AsFloats() []float64 {
	switch v.Kind {
	case KindInt:
		return []float64{float64(v.Int)}
	case KindDouble:
		return []float64{v.Float}
	case KindIntList, KindIntVector:
		out := make([]float64, len(v.Ints))
		for i, x := range v.Ints {
			out[i] = float64(x)
		}
		return out
	case KindDoubleList, KindDoubleVector, KindOptionalDoubleVector:
		return v.Floats
	default:
		return nil
	}
}

// Equal reports whether two values have the same kind and contents. NaN
// compares equal to NaN so optional rows round-trip.
func (v Value) Equal(o Value) bool {
	if v.Kind != o.Kind {
		return false
	}
	switch v.Kind {
	case KindInt:
		return v.Int == o.Int
	case KindDouble:
		return floatEq(v.Float, o.Float)
	case KindString:
		return v.Str == o.Str
	case KindIntList, KindIntVector:
		return slices.Equal(v.Ints, o.Ints)
	case KindDoubleList, KindDoubleVector, KindOptionalDoubleVector:
		if (v.Floats == nil) != (o.Floats == nil) {
			return false
		}
		return slices.EqualFunc(v.Floats, o.Floats, floatEq)
	case KindStringList:
		return slices.Equal(v.Strs, o.Strs)
	case KindIntMatrix:
		return slices.EqualFunc(v.IntRows, o.IntRows, slices.Equal[[]int64])
	case KindDoubleMatrix, KindOptionalDoubleMatrix:
		return slices.EqualFunc(v.FloatRows, o.FloatRows, func(a, b []float64) bool {
			return slices.EqualFunc(a, b, floatEq)
		})
	default:
		return false
	}
}

func floatEq(a, b float64) bool {
	return a == b || (math.IsNaN(a) && math.IsNaN(b))
}

func allNaN(row []float64) bool {
	for _, x := range row {
		if !math.IsNaN(x) {
			return false
		}
	}
	return true
}
