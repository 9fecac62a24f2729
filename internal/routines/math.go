package routines

import (
	"github.com/gomlx/exceptions"

	"github.com/lattice-ml/lattice/internal/kernels"
	"github.com/lattice-ml/lattice/internal/tensor"
)

// Add computes a + b elementwise.
func Add(b kernels.Backend, x, y *tensor.RawTensor) *tensor.RawTensor {
	return binary(b, kernels.AddName, x, y)
}

// Subtract computes a - b elementwise.
func Subtract(b kernels.Backend, x, y *tensor.RawTensor) *tensor.RawTensor {
	return binary(b, kernels.SubtractName, x, y)
}

// Multiply computes a * b elementwise.
func Multiply(b kernels.Backend, x, y *tensor.RawTensor) *tensor.RawTensor {
	return binary(b, kernels.MultiplyName, x, y)
}

// Divide computes a / b elementwise.
func Divide(b kernels.Backend, x, y *tensor.RawTensor) *tensor.RawTensor {
	return binary(b, kernels.DivideName, x, y)
}

func binary(b kernels.Backend, name string, x, y *tensor.RawTensor) *tensor.RawTensor {
	if x.DType() != y.DType() {
		exceptions.Panicf("%s: dtype mismatch: %s vs %s", name, x.DType(), y.DType())
	}
	if !x.DType().IsNumeric() {
		exceptions.Panicf("%s: unsupported dtype %s", name, x.DType())
	}
	if !x.Shape().Equal(y.Shape()) {
		exceptions.Panicf("%s: shape mismatch: %v vs %v", name, x.Shape(), y.Shape())
	}
	out := tensor.MustNewRaw(x.Shape(), x.DType(), x.Device())
	kernels.Lookup[kernels.BinaryKernel](b.Kernels(), name).Call(x, y, out)
	return out
}
