package nrrd

import (
	"math"
	"strconv"
	"strings"
)

// NumberType selects how numeric text is interpreted.
type NumberType uint8

const (
	// NumberAuto parses as double and narrows to integers when every value
	// is integral.
	NumberAuto NumberType = iota
	NumberInt
	NumberFloat
)

// FormatNumber formats a float with 17 significant digits, enough to
// reconstruct any float64 exactly. Trailing zeros are dropped.
func FormatNumber(x float64) string {
	switch {
	case math.IsNaN(x):
		return "nan"
	case math.IsInf(x, 1):
		return "inf"
	case math.IsInf(x, -1):
		return "-inf"
	}
	return strconv.FormatFloat(x, 'g', 17, 64)
}

// FormatInt formats an integer.
func FormatInt(x int64) string {
	return strconv.FormatInt(x, 10)
}

// FormatVector formats v as "(v1,v2,...,vN)".
func FormatVector(v []float64) string {
	parts := make([]string, len(v))
	for i, x := range v {
		parts[i] = FormatNumber(x)
	}
	return "(" + strings.Join(parts, ",") + ")"
}

// FormatIntVector formats v as "(v1,v2,...,vN)".
func FormatIntVector(v []int64) string {
	parts := make([]string, len(v))
	for i, x := range v {
		parts[i] = FormatInt(x)
	}
	return "(" + strings.Join(parts, ",") + ")"
}

// FormatOptionalVector formats v, writing "none" when v is nil or all NaN.
func FormatOptionalVector(v []float64) string {
	if v == nil || allNaN(v) {
		return "none"
	}
	return FormatVector(v)
}

// FormatMatrix formats each row as a vector, separated by spaces.
func FormatMatrix(m [][]float64) string {
	parts := make([]string, len(m))
	for i, row := range m {
		parts[i] = FormatVector(row)
	}
	return strings.Join(parts, " ")
}

// FormatIntMatrix formats each row as a vector, separated by spaces.
func FormatIntMatrix(m [][]int64) string {
	parts := make([]string, len(m))
	for i, row := range m {
		parts[i] = FormatIntVector(row)
	}
	return strings.Join(parts, " ")
}

// FormatOptionalMatrix is FormatMatrix with all-NaN rows written as "none".
func FormatOptionalMatrix(m [][]float64) string {
	parts := make([]string, len(m))
	for i, row := range m {
		parts[i] = FormatOptionalVector(row)
	}
	return strings.Join(parts, " ")
}

// FormatNumberList formats v as space separated numbers.
func FormatNumberList(v []float64) string {
	parts := make([]string, len(v))
	for i, x := range v {
		parts[i] = FormatNumber(x)
	}
	return strings.Join(parts, " ")
}

// FormatIntList formats v as space separated integers.
func FormatIntList(v []int64) string {
	parts := make([]string, len(v))
	for i, x := range v {
		parts[i] = FormatInt(x)
	}
	return strings.Join(parts, " ")
}

// ParseNumberAuto parses x as a double and narrows it to an integer value
// when it is integral.
func ParseNumberAuto(x string) (Value, error) {
	f, err := parseFloat(x)
	if err != nil {
		return Value{}, err
	}
	if i, ok := exactInt(f); ok {
		return IntValue(i), nil
	}
	return FloatValue(f), nil
}

// ParseVector parses "(v1,v2,...,vN)". The result is KindIntVector or
// KindDoubleVector depending on nt.
func ParseVector(x string, nt NumberType) (Value, error) {
	nums, err := parseVectorFloats(x)
	if err != nil {
		return Value{}, err
	}
	ints, isInt, err := narrow(nums, nt)
	if err != nil {
		return Value{}, err
	}
	if isInt {
		return IntVectorValue(ints...), nil
	}
	return FloatVectorValue(nums...), nil
}

// ParseOptionalVector is ParseVector where "none" yields an optional vector
// with no values.
func ParseOptionalVector(x string) (Value, error) {
	if x == "none" {
		return OptionalVectorValue(nil), nil
	}
	nums, err := parseVectorFloats(x)
	if err != nil {
		return Value{}, err
	}
	return OptionalVectorValue(nums), nil
}

// ParseMatrix parses space separated vectors of equal length.
func ParseMatrix(x string, nt NumberType) (Value, error) {
	tokens := strings.Fields(x)
	rows := make([][]float64, 0, len(tokens))
	for _, tok := range tokens {
		row, err := parseVectorFloats(tok)
		if err != nil {
			return Value{}, err
		}
		if len(rows) > 0 && len(row) != len(rows[0]) {
			return Value{}, wrapFormatError(ErrSizeMismatch, "matrix should have same number of elements in each row")
		}
		rows = append(rows, row)
	}

	flat := make([]float64, 0, len(rows)*rowLen(rows))
	for _, row := range rows {
		flat = append(flat, row...)
	}
	ints, isInt, err := narrow(flat, nt)
	if err != nil {
		return Value{}, err
	}
	if !isInt {
		return FloatMatrixValue(rows...), nil
	}
	n := rowLen(rows)
	irows := make([][]int64, len(rows))
	for i := range irows {
		irows[i] = ints[i*n : (i+1)*n : (i+1)*n]
	}
	return IntMatrixValue(irows...), nil
}

// ParseOptionalMatrix parses a double matrix whose rows may be "none". Absent
// rows become all-NaN rows of the common row length.
func ParseOptionalMatrix(x string) (Value, error) {
	tokens := strings.Fields(x)
	rows := make([][]float64, len(tokens))
	width := -1
	for i, tok := range tokens {
		if tok == "none" {
			continue
		}
		row, err := parseVectorFloats(tok)
		if err != nil {
			return Value{}, err
		}
		if width >= 0 && len(row) != width {
			return Value{}, wrapFormatError(ErrSizeMismatch, "matrix should have same number of elements in each row")
		}
		width = len(row)
		rows[i] = row
	}
	width = max(width, 0)
	for i, row := range rows {
		if row == nil {
			rows[i] = NaNRow(width)
		}
	}
	return OptionalMatrixValue(rows...), nil
}

// ParseNumberList parses space separated numbers. The result is
// KindIntList or KindDoubleList depending on nt.
func ParseNumberList(x string, nt NumberType) (Value, error) {
	tokens := strings.Fields(x)
	nums := make([]float64, len(tokens))
	for i, tok := range tokens {
		f, err := parseFloat(tok)
		if err != nil {
			return Value{}, err
		}
		nums[i] = f
	}
	ints, isInt, err := narrow(nums, nt)
	if err != nil {
		return Value{}, err
	}
	if isInt {
		// Exact integer text keeps precision beyond 2^53.
		for i, tok := range tokens {
			if v, err := strconv.ParseInt(tok, 10, 64); err == nil {
				ints[i] = v
			}
		}
		return IntListValue(ints...), nil
	}
	return FloatListValue(nums...), nil
}

func parseVectorFloats(x string) ([]float64, error) {
	if len(x) < 2 || x[0] != '(' || x[len(x)-1] != ')' {
		return nil, formatErrorf("vector should be enclosed by parentheses: %q", x)
	}
	parts := strings.Split(x[1:len(x)-1], ",")
	out := make([]float64, len(parts))
	for i, p := range parts {
		f, err := parseFloat(strings.TrimSpace(p))
		if err != nil {
			return nil, err
		}
		out[i] = f
	}
	return out, nil
}

func parseFloat(s string) (float64, error) {
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, wrapFormatError(err, "invalid number %q", s)
	}
	return f, nil
}

func parseInt(s string) (int64, error) {
	i, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, wrapFormatError(err, "invalid integer %q", s)
	}
	return i, nil
}

// narrow decides, for the whole collection, whether it is returned as
// integers. NumberInt truncates unconditionally.
func narrow(nums []float64, nt NumberType) ([]int64, bool, error) {
	switch nt {
	case NumberFloat:
		return nil, false, nil
	case NumberInt:
		ints := make([]int64, len(nums))
		for i, f := range nums {
			if math.IsNaN(f) || math.IsInf(f, 0) {
				return nil, false, formatErrorf("cannot convert %v to integer", f)
			}
			ints[i] = int64(f)
		}
		return ints, true, nil
	case NumberAuto:
		ints := make([]int64, len(nums))
		for i, f := range nums {
			v, ok := exactInt(f)
			if !ok {
				return nil, false, nil
			}
			ints[i] = v
		}
		return ints, true, nil
	default:
		return nil, false, formatErrorf("number type should be auto, int or float")
	}
}

// exactInt reports whether f equals its truncation and fits in an int64.
func exactInt(f float64) (int64, bool) {
	if math.IsNaN(f) || math.IsInf(f, 0) || f != math.Trunc(f) {
		return 0, false
	}
	if f < math.MinInt64 || f >= math.MaxInt64 {
		return 0, false
	}
	return int64(f), true
}

func rowLen[T any](rows [][]T) int {
	if len(rows) == 0 {
		return 0
	}
	return len(rows[0])
}
