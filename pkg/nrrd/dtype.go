package nrrd

import (
	"encoding/binary"
	"fmt"
	"math"
	"strconv"
)

// DType is the element type of an array.
type DType uint8

const (
	Int8 DType = iota + 1
	Uint8
	Int16
	Uint16
	Int32
	Uint32
	Int64
	Uint64
	Float32
	Float64
	// Block elements are opaque byte strings of a size given by the
	// "block size" field.
	Block
)

var dtypeNames = map[DType]string{
	Int8:    "int8",
	Uint8:   "uint8",
	Int16:   "int16",
	Uint16:  "uint16",
	Int32:   "int32",
	Uint32:  "uint32",
	Int64:   "int64",
	Uint64:  "uint64",
	Float32: "float",
	Float64: "double",
	Block:   "block",
}

// typeAliases maps every type name the format accepts to a DType.
var typeAliases = map[string]DType{
	"signed char": Int8,
	"int8":        Int8,
	"int8_t":      Int8,

	"uchar":         Uint8,
	"unsigned char": Uint8,
	"uint8":         Uint8,
	"uint8_t":       Uint8,

	"short":            Int16,
	"short int":        Int16,
	"signed short":     Int16,
	"signed short int": Int16,
	"int16":            Int16,
	"int16_t":          Int16,

	"ushort":             Uint16,
	"unsigned short":     Uint16,
	"unsigned short int": Uint16,
	"uint16":             Uint16,
	"uint16_t":           Uint16,

	"int":        Int32,
	"signed int": Int32,
	"int32":      Int32,
	"int32_t":    Int32,

	"uint":         Uint32,
	"unsigned int": Uint32,
	"uint32":       Uint32,
	"uint32_t":     Uint32,

	"longlong":             Int64,
	"long long":            Int64,
	"long long int":        Int64,
	"signed long long":     Int64,
	"signed long long int": Int64,
	"int64":                Int64,
	"int64_t":              Int64,

	"ulonglong":              Uint64,
	"unsigned long long":     Uint64,
	"unsigned long long int": Uint64,
	"uint64":                 Uint64,
	"uint64_t":               Uint64,

	"float":  Float32,
	"double": Float64,
	"block":  Block,
}

// LookupDType maps a "type" field value to a DType.
func LookupDType(name string) (DType, bool) {
	t, ok := typeAliases[name]
	return t, ok
}

// Name returns the canonical type name written to headers.
func (t DType) Name() string {
	if n, ok := dtypeNames[t]; ok {
		return n
	}
	return fmt.Sprintf("dtype(%d)", uint8(t))
}

func (t DType) String() string { return t.Name() }

// Size returns the element size in bytes, or 0 for Block.
func (t DType) Size() int {
	switch t {
	case Int8, Uint8:
		return 1
	case Int16, Uint16:
		return 2
	case Int32, Uint32, Float32:
		return 4
	case Int64, Uint64, Float64:
		return 8
	default:
		return 0
	}
}

// IsFloat reports whether t is a floating point type.
func (t DType) IsFloat() bool { return t == Float32 || t == Float64 }

// IsSigned reports whether t is a signed integer type.
func (t DType) IsSigned() bool {
	return t == Int8 || t == Int16 || t == Int32 || t == Int64
}

// Endian names for the "endian" field.
const (
	endianLittle = "little"
	endianBig    = "big"
)

func parseEndian(s string) (binary.ByteOrder, error) {
	switch s {
	case endianLittle:
		return binary.LittleEndian, nil
	case endianBig:
		return binary.BigEndian, nil
	default:
		return nil, formatErrorf("invalid endian value in header: %q", s)
	}
}

func endianName(bo binary.ByteOrder) string {
	if bo == binary.BigEndian {
		return endianBig
	}
	return endianLittle
}

// The element codecs below convert between encoded bytes and numbers. b
// holds exactly one element.

func decodeFloat(t DType, bo binary.ByteOrder, b []byte) float64 {
	switch t {
	case Int8:
		return float64(int8(b[0]))
	case Uint8:
		return float64(b[0])
	case Int16:
		return float64(int16(bo.Uint16(b)))
	case Uint16:
		return float64(bo.Uint16(b))
	case Int32:
		return float64(int32(bo.Uint32(b)))
	case Uint32:
		return float64(bo.Uint32(b))
	case Int64:
		return float64(int64(bo.Uint64(b)))
	case Uint64:
		return float64(bo.Uint64(b))
	case Float32:
		return float64(math.Float32frombits(bo.Uint32(b)))
	case Float64:
		return math.Float64frombits(bo.Uint64(b))
	default:
		return math.NaN()
	}
}

func decodeInt(t DType, bo binary.ByteOrder, b []byte) int64 {
	switch t {
	case Int8:
		return int64(int8(b[0]))
	case Uint8:
		return int64(b[0])
	case Int16:
		return int64(int16(bo.Uint16(b)))
	case Uint16:
		return int64(bo.Uint16(b))
	case Int32:
		return int64(int32(bo.Uint32(b)))
	case Uint32:
		return int64(bo.Uint32(b))
	case Int64, Uint64:
		return int64(bo.Uint64(b))
	default:
		return int64(decodeFloat(t, bo, b))
	}
}

func encodeFloat(t DType, bo binary.ByteOrder, b []byte, v float64) {
	switch t {
	case Int8, Uint8, Int16, Uint16, Int32, Uint32, Int64:
		encodeInt(t, bo, b, int64(v))
	case Uint64:
		bo.PutUint64(b, uint64(v))
	case Float32:
		bo.PutUint32(b, math.Float32bits(float32(v)))
	case Float64:
		bo.PutUint64(b, math.Float64bits(v))
	}
}

func encodeInt(t DType, bo binary.ByteOrder, b []byte, v int64) {
	switch t {
	case Int8, Uint8:
		b[0] = byte(v)
	case Int16, Uint16:
		bo.PutUint16(b, uint16(v))
	case Int32, Uint32:
		bo.PutUint32(b, uint32(v))
	case Int64, Uint64:
		bo.PutUint64(b, uint64(v))
	case Float32, Float64:
		encodeFloat(t, bo, b, float64(v))
	}
}

// formatElem renders one element the way the text encoding writes it.
func formatElem(t DType, bo binary.ByteOrder, b []byte) string {
	switch t {
	case Uint64:
		return strconv.FormatUint(bo.Uint64(b), 10)
	case Float32, Float64:
		return FormatNumber(decodeFloat(t, bo, b))
	default:
		return FormatInt(decodeInt(t, bo, b))
	}
}

// parseElem parses one text token into b.
func parseElem(t DType, b []byte, tok string) error {
	bo := binary.LittleEndian
	switch t {
	case Float32:
		f, err := strconv.ParseFloat(tok, 32)
		if err != nil {
			return wrapFormatError(err, "invalid number %q", tok)
		}
		bo.PutUint32(b, math.Float32bits(float32(f)))
		return nil
	case Float64:
		f, err := parseFloat(tok)
		if err != nil {
			return err
		}
		bo.PutUint64(b, math.Float64bits(f))
		return nil
	case Uint64:
		if u, err := strconv.ParseUint(tok, 10, 64); err == nil {
			bo.PutUint64(b, u)
			return nil
		}
	default:
		if i, err := strconv.ParseInt(tok, 10, 64); err == nil {
			encodeInt(t, bo, b, i)
			return nil
		}
	}
	// Integral tokens written in float notation ("3.0", "1e3").
	f, err := parseFloat(tok)
	if err != nil {
		return err
	}
	encodeFloat(t, bo, b, math.Trunc(f))
	return nil
}
