package nrrd

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"math"
	"slices"
)

// Array is a strided N-dimensional view over a byte buffer. Elements are
// stored in ByteOrder; strides are counted in elements.
type Array struct {
	dtype    DType
	shape    []int
	strides  []int
	order    binary.ByteOrder
	elemSize int
	data     []byte
}

// Number is the set of Go types an Array can be built from.
type Number interface {
	int8 | uint8 | int16 | uint16 | int32 | uint32 | int64 | uint64 | float32 | float64
}

// NewArray returns a zero-filled little-endian array laid out contiguously
// in order.
func NewArray(dt DType, shape []int, order Order) (*Array, error) {
	if dt == Block {
		return nil, formatErrorf("block arrays need an element size, use NewBlockArray")
	}
	return newArray(dt, dt.Size(), shape, order, binary.LittleEndian, nil)
}

// NewBlockArray returns a zero-filled array of opaque blocks of blockSize
// bytes.
func NewBlockArray(blockSize int, shape []int, order Order) (*Array, error) {
	if blockSize <= 0 {
		return nil, formatErrorf("block size must be positive, got %d", blockSize)
	}
	return newArray(Block, blockSize, shape, order, binary.LittleEndian, nil)
}

// FromBytes wraps data, which holds the elements contiguously in order,
// without copying.
func FromBytes(dt DType, elemSize int, shape []int, order Order, bo binary.ByteOrder, data []byte) (*Array, error) {
	if dt != Block {
		elemSize = dt.Size()
	}
	return newArray(dt, elemSize, shape, order, bo, data)
}

// FromSlice copies values into a new little-endian array.
func FromSlice[T Number](values []T, shape []int, order Order) (*Array, error) {
	dt := dtypeOf[T]()
	a, err := NewArray(dt, shape, order)
	if err != nil {
		return nil, err
	}
	if len(values) != a.Len() {
		return nil, &SizeMismatchError{Expected: int64(a.Len()), Actual: int64(len(values))}
	}
	size := a.elemSize
	for i, v := range values {
		b := a.data[i*size : (i+1)*size]
		switch dt {
		case Float32, Float64:
			encodeFloat(dt, a.order, b, float64(v))
		case Uint64:
			a.order.PutUint64(b, uint64(v))
		default:
			encodeInt(dt, a.order, b, int64(v))
		}
	}
	return a, nil
}

func dtypeOf[T Number]() DType {
	var zero T
	switch any(zero).(type) {
	case int8:
		return Int8
	case uint8:
		return Uint8
	case int16:
		return Int16
	case uint16:
		return Uint16
	case int32:
		return Int32
	case uint32:
		return Uint32
	case int64:
		return Int64
	case uint64:
		return Uint64
	case float32:
		return Float32
	default:
		return Float64
	}
}

func newArray(dt DType, elemSize int, shape []int, order Order, bo binary.ByteOrder, data []byte) (*Array, error) {
	if err := order.validate(); err != nil {
		return nil, err
	}
	n, byteLen, err := elementCount(shape, elemSize)
	if err != nil {
		return nil, err
	}
	if data == nil {
		data = make([]byte, byteLen)
	}
	if len(data) != byteLen {
		return nil, &SizeMismatchError{Expected: int64(n), Actual: int64(len(data) / max(elemSize, 1))}
	}
	if bo == nil {
		bo = binary.LittleEndian
	}
	return &Array{
		dtype:    dt,
		shape:    slices.Clone(shape),
		strides:  contiguousStrides(shape, order),
		order:    bo,
		elemSize: elemSize,
		data:     data,
	}, nil
}

// DType returns the element type.
func (a *Array) DType() DType { return a.dtype }

// Shape returns a copy of the dimensions.
func (a *Array) Shape() []int { return slices.Clone(a.shape) }

// Strides returns a copy of the element strides.
func (a *Array) Strides() []int { return slices.Clone(a.strides) }

// ByteOrder returns the order elements are stored in.
func (a *Array) ByteOrder() binary.ByteOrder { return a.order }

// ElemSize returns the element size in bytes.
func (a *Array) ElemSize() int { return a.elemSize }

// NDim returns the number of dimensions.
func (a *Array) NDim() int { return len(a.shape) }

// Len returns the number of elements.
func (a *Array) Len() int {
	n := 1
	for _, d := range a.shape {
		n *= d
	}
	return n
}

// Transpose returns a view with the axes reversed. The buffer is shared.
func (a *Array) Transpose() *Array {
	t := *a
	t.shape = slices.Clone(a.shape)
	t.strides = slices.Clone(a.strides)
	slices.Reverse(t.shape)
	slices.Reverse(t.strides)
	return &t
}

// WithByteOrder returns a copy of a with its elements stored in bo.
func (a *Array) WithByteOrder(bo binary.ByteOrder) *Array {
	out := *a
	out.order = bo
	out.data = a.Bytes(OrderC, bo)
	out.shape = slices.Clone(a.shape)
	out.strides = contiguousStrides(out.shape, OrderC)
	return &out
}

func (a *Array) elem(idx []int) []byte {
	if len(idx) != len(a.shape) {
		panic(fmt.Sprintf("nrrd: index %v has %d axes, array has %d", idx, len(idx), len(a.shape)))
	}
	off := 0
	for i, x := range idx {
		if x < 0 || x >= a.shape[i] {
			panic(fmt.Sprintf("nrrd: index %v out of range for shape %v", idx, a.shape))
		}
		off += x * a.strides[i]
	}
	return a.data[off*a.elemSize : (off+1)*a.elemSize]
}

// At returns the element at idx as float64.
func (a *Array) At(idx ...int) float64 {
	return decodeFloat(a.dtype, a.order, a.elem(idx))
}

// Int64At returns the element at idx as int64.
func (a *Array) Int64At(idx ...int) int64 {
	return decodeInt(a.dtype, a.order, a.elem(idx))
}

// BlockAt returns the raw bytes of the element at idx. The slice aliases the
// array buffer.
func (a *Array) BlockAt(idx ...int) []byte {
	return a.elem(idx)
}

// SetFloat stores v at idx, converting to the element type.
func (a *Array) SetFloat(v float64, idx ...int) {
	encodeFloat(a.dtype, a.order, a.elem(idx), v)
}

// SetInt stores v at idx, converting to the element type.
func (a *Array) SetInt(v int64, idx ...int) {
	encodeInt(a.dtype, a.order, a.elem(idx), v)
}

// isContiguous reports whether the buffer is laid out densely in order.
func (a *Array) isContiguous(order Order) bool {
	return slices.Equal(a.strides, contiguousStrides(a.shape, order))
}

// each calls fn with the byte slice of every element, visiting them in
// order (last axis fastest for OrderC, first axis fastest for OrderF).
func (a *Array) each(order Order, fn func(b []byte)) {
	n := a.Len()
	if n == 0 {
		return
	}
	nd := len(a.shape)
	if nd == 0 {
		fn(a.data[:a.elemSize])
		return
	}
	axes := make([]int, nd)
	for i := range axes {
		if order == OrderC {
			axes[i] = nd - 1 - i
		} else {
			axes[i] = i
		}
	}
	idx := make([]int, nd)
	off := 0
	for range n {
		fn(a.data[off*a.elemSize : (off+1)*a.elemSize])
		for _, ax := range axes {
			idx[ax]++
			off += a.strides[ax]
			if idx[ax] < a.shape[ax] {
				break
			}
			off -= idx[ax] * a.strides[ax]
			idx[ax] = 0
		}
	}
}

// bytesInOrder returns the elements traversed in order and encoded in bo.
// The array buffer is returned as is when no copy is needed.
func (a *Array) bytesInOrder(order Order, bo binary.ByteOrder) []byte {
	swap := a.elemSize > 1 && a.dtype != Block && bo != a.order
	if !swap && a.isContiguous(order) {
		return a.data
	}
	out := make([]byte, 0, a.Len()*a.elemSize)
	a.each(order, func(b []byte) {
		start := len(out)
		out = append(out, b...)
		if swap {
			slices.Reverse(out[start:])
		}
	})
	return out
}

// Bytes returns a copy of the elements traversed in order and encoded in bo.
func (a *Array) Bytes(order Order, bo binary.ByteOrder) []byte {
	swap := a.elemSize > 1 && a.dtype != Block && bo != a.order
	if !swap && a.isContiguous(order) {
		return slices.Clone(a.data)
	}
	return a.bytesInOrder(order, bo)
}

// Float64s returns the elements traversed in order as float64. Block arrays
// yield nil.
func (a *Array) Float64s(order Order) []float64 {
	if a.dtype == Block {
		return nil
	}
	out := make([]float64, 0, a.Len())
	a.each(order, func(b []byte) {
		out = append(out, decodeFloat(a.dtype, a.order, b))
	})
	return out
}

// Int64s returns the elements traversed in order as int64. Block arrays
// yield nil.
func (a *Array) Int64s(order Order) []int64 {
	if a.dtype == Block {
		return nil
	}
	out := make([]int64, 0, a.Len())
	a.each(order, func(b []byte) {
		out = append(out, decodeInt(a.dtype, a.order, b))
	})
	return out
}

// Equal reports whether both arrays have the same type, shape and elements.
// Layout and byte order may differ; NaN equals NaN.
func (a *Array) Equal(o *Array) bool {
	if a.dtype != o.dtype || a.elemSize != o.elemSize || !slices.Equal(a.shape, o.shape) {
		return false
	}
	if a.dtype.IsFloat() {
		return slices.EqualFunc(a.Float64s(OrderC), o.Float64s(OrderC), floatEq)
	}
	return bytes.Equal(a.bytesInOrder(OrderC, binary.LittleEndian), o.bytesInOrder(OrderC, binary.LittleEndian))
}

// Stats summarizes the numeric elements of an array.
type Stats struct {
	Count int     `json:"count"`
	Min   float64 `json:"min"`
	Max   float64 `json:"max"`
	Mean  float64 `json:"mean"`
	NaNs  int     `json:"nans"`
}

// Stats computes the minimum, maximum and mean over the non-NaN elements.
func (a *Array) Stats() Stats {
	s := Stats{Min: math.Inf(1), Max: math.Inf(-1)}
	if a.dtype == Block {
		s.Count = a.Len()
		s.Min, s.Max = 0, 0
		return s
	}
	var sum float64
	a.each(OrderC, func(b []byte) {
		s.Count++
		v := decodeFloat(a.dtype, a.order, b)
		if math.IsNaN(v) {
			s.NaNs++
			return
		}
		sum += v
		s.Min = min(s.Min, v)
		s.Max = max(s.Max, v)
	})
	if n := s.Count - s.NaNs; n > 0 {
		s.Mean = sum / float64(n)
	} else {
		s.Min, s.Max = 0, 0
	}
	return s
}
