package nrrd

import (
	"math"
	"slices"
)

// Order is the axis order of an in-memory array.
type Order string

const (
	// OrderC lists axes slowest-varying first, e.g. (z, y, x).
	OrderC Order = "C"
	// OrderF lists axes fastest-varying first, e.g. (x, y, z), matching the
	// order of the "sizes" field.
	OrderF Order = "F"
)

// ParseOrder parses "C" or "F".
func ParseOrder(s string) (Order, error) {
	o := Order(s)
	if err := o.validate(); err != nil {
		return "", err
	}
	return o, nil
}

func (o Order) validate() error {
	if o != OrderC && o != OrderF {
		return formatErrorf("invalid index order %q", string(o))
	}
	return nil
}

// shapeFromSizes converts the fastest-first "sizes" field into the shape of
// an array in the given order.
func shapeFromSizes(sizes []int, order Order) []int {
	shape := slices.Clone(sizes)
	if order == OrderC {
		slices.Reverse(shape)
	}
	return shape
}

// sizesFromShape is the inverse of shapeFromSizes.
func sizesFromShape(shape []int, order Order) []int64 {
	sizes := make([]int64, len(shape))
	for i, d := range shape {
		sizes[i] = int64(d)
	}
	if order == OrderC {
		slices.Reverse(sizes)
	}
	return sizes
}

// contiguousStrides returns element strides for a dense layout of shape in
// the given order.
func contiguousStrides(shape []int, order Order) []int {
	strides := make([]int, len(shape))
	if len(shape) == 0 {
		return strides
	}
	acc := 1
	if order == OrderC {
		for i := len(shape) - 1; i >= 0; i-- {
			strides[i] = acc
			acc *= shape[i]
		}
		return strides
	}
	for i := range shape {
		strides[i] = acc
		acc *= shape[i]
	}
	return strides
}

// elementCount multiplies dims and then elemSize, failing when a dimension
// is negative or the byte length does not fit in an int.
func elementCount(dims []int, elemSize int) (count, byteLen int, err error) {
	count = 1
	for i, d := range dims {
		if d < 0 {
			return 0, 0, formatErrorf("negative size %d on axis %d", d, i)
		}
		if d != 0 && count > math.MaxInt/d {
			return 0, 0, formatErrorf("sizes %v overflow the element count", dims)
		}
		count *= d
	}
	if elemSize > 0 && count > math.MaxInt/elemSize {
		return 0, 0, formatErrorf("%d elements of %d bytes overflow the payload length", count, elemSize)
	}
	return count, count * elemSize, nil
}
