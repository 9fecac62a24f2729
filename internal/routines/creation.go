package routines

import (
	"math"

	"github.com/gomlx/exceptions"

	"github.com/lattice-ml/lattice/internal/kernels"
	"github.com/lattice-ml/lattice/internal/tensor"
)

// Full allocates a tensor of the given shape and dtype filled with value.
func Full(b kernels.Backend, shape tensor.Shape, dtype tensor.DataType, value float64) *tensor.RawTensor {
	if err := shape.Validate(); err != nil {
		exceptions.Panicf("full: %v", err)
	}
	out := tensor.MustNewRaw(shape, dtype, b.Device())
	kernels.Lookup[kernels.FillKernel](b.Kernels(), kernels.FillName).Call(out, value)
	return out
}

// Eye allocates an n x n identity matrix of the given dtype.
func Eye(b kernels.Backend, n int, dtype tensor.DataType) *tensor.RawTensor {
	if n < 0 {
		exceptions.Panicf("eye: negative size %d", n)
	}
	if !dtype.IsNumeric() {
		exceptions.Panicf("eye: unsupported dtype %s", dtype)
	}
	out := tensor.MustNewRaw(tensor.Shape{n, n}, dtype, b.Device())
	kernels.Lookup[kernels.IdentityKernel](b.Kernels(), kernels.IdentityName).Call(out)
	return out
}

// Arange allocates a 1-D tensor holding start, start+step, ... up to but
// excluding stop.
func Arange(b kernels.Backend, start, stop, step float64, dtype tensor.DataType) *tensor.RawTensor {
	if step == 0 {
		exceptions.Panicf("arange: step must be non-zero")
	}
	n := int(math.Ceil((stop - start) / step))
	if n < 0 {
		n = 0
	}
	out := tensor.MustNewRaw(tensor.Shape{n}, dtype, b.Device())
	if n > 0 {
		kernels.Lookup[kernels.ArangeKernel](b.Kernels(), kernels.ArangeName).Call(out, start, step)
	}
	return out
}

// Transpose2D returns the transpose of the 2-D tensor a.
func Transpose2D(b kernels.Backend, a *tensor.RawTensor) *tensor.RawTensor {
	if a.Shape().Rank() != 2 {
		exceptions.Panicf("transpose: input must be 2-D, got shape %v", a.Shape())
	}
	out := tensor.MustNewRaw(tensor.Shape{a.Shape()[1], a.Shape()[0]}, a.DType(), a.Device())
	kernels.Lookup[kernels.Transpose2DKernel](b.Kernels(), kernels.Transpose2DName).Call(a, out)
	return out
}

// Cast converts a to the given dtype. The input is returned as a view when
// the dtype already matches.
func Cast(b kernels.Backend, a *tensor.RawTensor, dtype tensor.DataType) *tensor.RawTensor {
	if a.DType() == dtype {
		return a.View()
	}
	if !a.DType().IsNumeric() || !dtype.IsNumeric() {
		exceptions.Panicf("cast: unsupported conversion %s -> %s", a.DType(), dtype)
	}
	out := tensor.MustNewRaw(a.Shape(), dtype, a.Device())
	kernels.Lookup[kernels.CastKernel](b.Kernels(), kernels.CastName).Call(a, out)
	return out
}
