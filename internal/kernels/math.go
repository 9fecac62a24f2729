package kernels

import "github.com/lattice-ml/lattice/internal/tensor"

// Registry names for the elementwise arithmetic kernels.
const (
	AddName      = "Add"
	SubtractName = "Subtract"
	MultiplyName = "Multiply"
	DivideName   = "Divide"
)

// BinaryKernel is the shared shape of the elementwise arithmetic kernels:
// out[i] = a[i] op b[i]. All three operands have the same shape and dtype;
// like DotKernel, the kernel itself does not check this.
type BinaryKernel interface {
	Kernel
	Call(a, b, out *tensor.RawTensor)
}
