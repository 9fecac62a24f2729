package kernels

import "github.com/lattice-ml/lattice/internal/tensor"

// Registry names for the creation and conversion kernels.
const (
	FillName        = "Fill"
	ArangeName      = "Arange"
	IdentityName    = "Identity"
	Transpose2DName = "Transpose2D"
	CastName        = "Cast"
)

// FillKernel writes value into every element of out, converted to out's
// dtype.
type FillKernel interface {
	Kernel
	Call(out *tensor.RawTensor, value float64)
}

// ArangeKernel writes start, start+step, start+2*step, ... into out.
type ArangeKernel interface {
	Kernel
	Call(out *tensor.RawTensor, start, step float64)
}

// IdentityKernel writes the identity matrix into out, which must be a
// square matrix of a numeric dtype.
type IdentityKernel interface {
	Kernel
	Call(out *tensor.RawTensor)
}

// Transpose2DKernel writes the transpose of the (M, N) matrix a into the
// (N, M) matrix out.
type Transpose2DKernel interface {
	Kernel
	Call(a, out *tensor.RawTensor)
}

// CastKernel converts a into out's dtype elementwise. a and out have the
// same shape and may have any pair of numeric dtypes, float16 included.
type CastKernel interface {
	Kernel
	Call(a, out *tensor.RawTensor)
}
