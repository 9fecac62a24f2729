// Package cpu implements the CPU backend: pure-Go and gonum-BLAS/LAPACK
// kernels registered for every operation Lattice defines.
package cpu

import (
	"github.com/lattice-ml/lattice/internal/kernels"
	"github.com/lattice-ml/lattice/internal/parallel"
	"github.com/lattice-ml/lattice/internal/tensor"
)

// BackendName is the registry name of the CPU backend.
const BackendName = "cpu"

// Backend computes on the host CPU. Float32 and float64 matrix kernels go
// through gonum's BLAS and LAPACK implementations; everything else is
// plain Go, parallelized across goroutines for large tensors.
type Backend struct {
	reg  *kernels.Registry
	pool parallel.Config
}

// New creates a CPU backend with its full kernel table.
func New() *Backend {
	b := &Backend{
		reg:  kernels.NewRegistry(BackendName),
		pool: parallel.DefaultConfig(),
	}
	b.reg.Register(&dotKernel{pool: b.pool})
	b.reg.Register(&qrKernel{})
	b.reg.Register(&binaryKernel{name: kernels.AddName, pool: b.pool})
	b.reg.Register(&binaryKernel{name: kernels.SubtractName, pool: b.pool})
	b.reg.Register(&binaryKernel{name: kernels.MultiplyName, pool: b.pool})
	b.reg.Register(&binaryKernel{name: kernels.DivideName, pool: b.pool})
	b.reg.Register(&fillKernel{})
	b.reg.Register(&arangeKernel{})
	b.reg.Register(&identityKernel{})
	b.reg.Register(&transposeKernel{})
	b.reg.Register(&castKernel{})
	return b
}

// Name returns the backend's registry name.
func (b *Backend) Name() string { return BackendName }

// Device returns tensor.CPU.
func (b *Backend) Device() tensor.Device { return tensor.CPU }

// Kernels returns the backend's kernel table.
func (b *Backend) Kernels() *kernels.Registry { return b.reg }

func init() {
	kernels.RegisterBackend(BackendName, func() (kernels.Backend, error) {
		return New(), nil
	})
}
