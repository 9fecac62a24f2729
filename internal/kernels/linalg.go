package kernels

import "github.com/lattice-ml/lattice/internal/tensor"

// Registry names for the linear-algebra kernels.
const (
	DotName = "Dot"
	QRName  = "QR"
)

// DotKernel computes the matrix product of two matrices (two-dimensional
// tensors), writing the result into a caller-provided output buffer.
//
// Let the shapes of a and b be (M, K) and (L, N). It must hold that K == L,
// out must have shape (M, N), and all three operands must share one numeric
// dtype on the kernel's device. Otherwise the behavior is undefined: the
// kernel performs no validation on the hot path. The routines layer checks
// these preconditions before dispatch.
type DotKernel interface {
	Kernel
	Call(a, b, out *tensor.RawTensor)
}

// QRKernel computes a QR decomposition of a matrix under the requested
// mode, allocating and returning the two factors. Unlike DotKernel it does
// not take an output buffer: the factor shapes depend on the mode, so the
// kernel owns the allocation.
//
// The input must be a two-dimensional floating-point tensor on the
// kernel's device; the routines layer enforces this.
type QRKernel interface {
	Kernel
	Call(a *tensor.RawTensor, mode QRMode) (q, r *tensor.RawTensor)
}

// QRMode selects the QR decomposition variant. For an (M, N) input with
// K = min(M, N):
//
//   - QRReduced: Q is (M, K), R is (K, N).
//   - QRComplete: Q is (M, M), R is (M, N).
//   - QRR: only R (K, N) is computed; Q is returned as an empty (0, K)
//     placeholder.
//   - QRRaw: the Householder representation is returned instead of Q:
//     the first factor is the (N, M) transposed factored matrix and the
//     second holds the K scalar reflector coefficients (tau).
type QRMode int

// QR decomposition modes.
const (
	QRReduced QRMode = iota
	QRComplete
	QRR
	QRRaw
)

// String returns the mode's conventional short name.
func (m QRMode) String() string {
	switch m {
	case QRReduced:
		return "reduced"
	case QRComplete:
		return "complete"
	case QRR:
		return "r"
	case QRRaw:
		return "raw"
	default:
		return "unknown"
	}
}
