// Package routines implements the validating operation layer between the
// typed tensor API and the backend kernels. Every routine checks its
// operands' shapes and dtypes, allocates outputs where the kernel contract
// is output-parameter style, and dispatches to the kernel registered for
// the operands' backend. Precondition violations panic; the kernels
// themselves never check.
package routines

import (
	"github.com/gomlx/exceptions"

	"github.com/lattice-ml/lattice/internal/kernels"
	"github.com/lattice-ml/lattice/internal/tensor"
)

// Dot computes the matrix product of a and b.
//
// Both operands must share one numeric dtype. 2-D operands multiply as
// (M, K) @ (K, N) -> (M, N). A 1-D operand is promoted to a matrix in the
// usual way -- a (K,) left operand behaves as (1, K), a (K,) right operand
// as (K, 1) -- and the promoted dimension is dropped from the result.
func Dot(b kernels.Backend, a, bb *tensor.RawTensor) *tensor.RawTensor {
	if a.DType() != bb.DType() {
		exceptions.Panicf("dot: dtype mismatch: %s vs %s", a.DType(), bb.DType())
	}
	if !a.DType().IsNumeric() {
		exceptions.Panicf("dot: unsupported dtype %s", a.DType())
	}

	lhs, rhs := a, bb
	outShape := tensor.Shape{}

	switch {
	case lhs.Shape().Rank() == 1:
		lhs = lhs.Reshaped(tensor.Shape{1, lhs.Shape()[0]})
	case lhs.Shape().Rank() == 2:
		outShape = append(outShape, lhs.Shape()[0])
	default:
		exceptions.Panicf("dot: left operand must be 1-D or 2-D, got shape %v", lhs.Shape())
	}
	switch {
	case rhs.Shape().Rank() == 1:
		rhs = rhs.Reshaped(tensor.Shape{rhs.Shape()[0], 1})
	case rhs.Shape().Rank() == 2:
		outShape = append(outShape, rhs.Shape()[1])
	default:
		exceptions.Panicf("dot: right operand must be 1-D or 2-D, got shape %v", rhs.Shape())
	}

	m, k := lhs.Shape()[0], lhs.Shape()[1]
	l, n := rhs.Shape()[0], rhs.Shape()[1]
	if k != l {
		exceptions.Panicf("dot: shape mismatch: %v @ %v", a.Shape(), bb.Shape())
	}

	out := tensor.MustNewRaw(tensor.Shape{m, n}, a.DType(), a.Device())
	kernels.Lookup[kernels.DotKernel](b.Kernels(), kernels.DotName).Call(lhs, rhs, out)
	return out.Reshaped(outShape)
}

// QR computes the QR decomposition of the 2-D floating-point tensor a
// under the given mode, returning the two factors. See kernels.QRMode for
// the factor shapes per mode.
func QR(b kernels.Backend, a *tensor.RawTensor, mode kernels.QRMode) (q, r *tensor.RawTensor) {
	if a.Shape().Rank() != 2 {
		exceptions.Panicf("qr: input must be 2-D, got shape %v", a.Shape())
	}
	if !a.DType().IsFloat() {
		exceptions.Panicf("qr: unsupported dtype %s", a.DType())
	}
	return kernels.Lookup[kernels.QRKernel](b.Kernels(), kernels.QRName).Call(a, mode)
}
