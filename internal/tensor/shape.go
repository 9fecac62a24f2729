package tensor

import (
	"fmt"
	"strings"
)

// Shape is the ordered sequence of per-dimension sizes of a tensor.
// A zero-length shape describes a scalar.
type Shape []int

// NumElements returns the total number of elements described by the shape.
func (s Shape) NumElements() int {
	n := 1
	for _, dim := range s {
		n *= dim
	}
	return n
}

// Rank returns the number of dimensions.
func (s Shape) Rank() int {
	return len(s)
}

// Validate checks that every dimension is non-negative.
// Zero-sized dimensions are legal: they describe empty tensors, which the
// QR "r" mode uses for its placeholder Q factor.
func (s Shape) Validate() error {
	for i, dim := range s {
		if dim < 0 {
			return fmt.Errorf("dimension %d is negative: %d", i, dim)
		}
	}
	return nil
}

// Equal reports whether two shapes have identical rank and dimensions.
func (s Shape) Equal(other Shape) bool {
	if len(s) != len(other) {
		return false
	}
	for i := range s {
		if s[i] != other[i] {
			return false
		}
	}
	return true
}

// Clone returns an independent copy of the shape.
func (s Shape) Clone() Shape {
	out := make(Shape, len(s))
	copy(out, s)
	return out
}

// ComputeStrides returns row-major (C-order) element strides for the shape.
func (s Shape) ComputeStrides() []int {
	strides := make([]int, len(s))
	if len(s) == 0 {
		return strides
	}
	strides[len(s)-1] = 1
	for i := len(s) - 2; i >= 0; i-- {
		strides[i] = strides[i+1] * s[i+1]
	}
	return strides
}

// String renders the shape as "(2, 3)".
func (s Shape) String() string {
	parts := make([]string, len(s))
	for i, dim := range s {
		parts[i] = fmt.Sprintf("%d", dim)
	}
	return "(" + strings.Join(parts, ", ") + ")"
}
