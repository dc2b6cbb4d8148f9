package nrrd

import (
	"bytes"
	"math"

	"github.com/goccy/go-json"
)

// MarshalJSON encodes the header as a JSON object with fields in header
// order. Non-finite numbers, including absent optional rows, become null.
func (h *Header) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, f := range h.fields {
		if i > 0 {
			buf.WriteByte(',')
		}
		name, err := json.Marshal(f.name)
		if err != nil {
			return nil, err
		}
		buf.Write(name)
		buf.WriteByte(':')
		val, err := json.Marshal(jsonValue(f.value))
		if err != nil {
			return nil, err
		}
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func jsonValue(v Value) any {
	switch v.Kind {
	case KindInt:
		return v.Int
	case KindDouble:
		return jsonFloat(v.Float)
	case KindString:
		return v.Str
	case KindIntList, KindIntVector:
		return v.Ints
	case KindDoubleList, KindDoubleVector, KindOptionalDoubleVector:
		if v.Floats == nil {
			return nil
		}
		return jsonFloats(v.Floats)
	case KindStringList:
		return v.Strs
	case KindIntMatrix:
		return v.IntRows
	case KindDoubleMatrix, KindOptionalDoubleMatrix:
		rows := make([]any, len(v.FloatRows))
		for i, r := range v.FloatRows {
			if v.Kind == KindOptionalDoubleMatrix && allNaN(r) {
				continue
			}
			rows[i] = jsonFloats(r)
		}
		return rows
	default:
		return nil
	}
}

func jsonFloat(f float64) any {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return nil
	}
	return f
}

func jsonFloats(fs []float64) []any {
	out := make([]any, len(fs))
	for i, f := range fs {
		out[i] = jsonFloat(f)
	}
	return out
}
