package nrrd

import (
	"strings"
)

// ParseValue decodes the text of a field value according to kind.
func ParseValue(text string, kind Kind) (Value, error) {
	switch kind {
	case KindInt:
		i, err := parseInt(text)
		if err != nil {
			return Value{}, err
		}
		return IntValue(i), nil
	case KindDouble:
		f, err := parseFloat(text)
		if err != nil {
			return Value{}, err
		}
		return FloatValue(f), nil
	case KindString:
		return StringValue(text), nil
	case KindIntList:
		return ParseNumberList(text, NumberInt)
	case KindDoubleList:
		return ParseNumberList(text, NumberFloat)
	case KindStringList:
		return StringListValue(strings.Fields(text)...), nil
	case KindIntVector:
		return ParseVector(text, NumberInt)
	case KindDoubleVector:
		return ParseVector(text, NumberFloat)
	case KindIntMatrix:
		return ParseMatrix(text, NumberInt)
	case KindDoubleMatrix:
		return ParseMatrix(text, NumberFloat)
	case KindOptionalDoubleVector:
		return ParseOptionalVector(text)
	case KindOptionalDoubleMatrix:
		return ParseOptionalMatrix(text)
	default:
		return Value{}, formatErrorf("invalid field type given: %s", kind)
	}
}

// FormatValue encodes v as the field text for kind. Numeric values are
// converted between integer and double members where needed, so an int list
// can be written as a double list and vice versa.
func FormatValue(v Value, kind Kind) (string, error) {
	intSeq := v.Kind == KindIntList || v.Kind == KindIntVector
	floatSeq := v.Kind == KindDoubleList || v.Kind == KindDoubleVector || v.Kind == KindOptionalDoubleVector
	floatMat := v.Kind == KindDoubleMatrix || v.Kind == KindOptionalDoubleMatrix

	switch kind {
	case KindInt, KindDouble:
		switch v.Kind {
		case KindInt:
			return FormatInt(v.Int), nil
		case KindDouble:
			return FormatNumber(v.Float), nil
		}
	case KindString:
		return v.text(), nil
	case KindIntList, KindDoubleList:
		switch {
		case intSeq:
			return FormatIntList(v.Ints), nil
		case floatSeq:
			return FormatNumberList(v.Floats), nil
		}
	case KindStringList:
		return v.text(), nil
	case KindIntVector, KindDoubleVector:
		switch {
		case intSeq:
			return FormatIntVector(v.Ints), nil
		case floatSeq:
			return FormatVector(v.Floats), nil
		}
	case KindOptionalDoubleVector:
		switch {
		case intSeq:
			return FormatIntVector(v.Ints), nil
		case floatSeq:
			return FormatOptionalVector(v.Floats), nil
		}
	case KindIntMatrix, KindDoubleMatrix:
		switch {
		case v.Kind == KindIntMatrix:
			return FormatIntMatrix(v.IntRows), nil
		case floatMat:
			return FormatMatrix(v.FloatRows), nil
		}
	case KindOptionalDoubleMatrix:
		switch {
		case v.Kind == KindIntMatrix:
			return FormatIntMatrix(v.IntRows), nil
		case floatMat:
			return FormatOptionalMatrix(v.FloatRows), nil
		}
	default:
		return "", formatErrorf("invalid field type given: %s", kind)
	}
	return "", formatErrorf("cannot format %s value as %s", v.Kind, kind)
}

// text renders v in its own kind; used when a field is typed as a string
// but carries a structured value.
func (v Value) text() string {
	switch v.Kind {
	case KindString:
		return v.Str
	case KindStringList:
		return strings.Join(v.Strs, " ")
	}
	s, err := FormatValue(v, v.Kind)
	if err != nil {
		return ""
	}
	return s
}
