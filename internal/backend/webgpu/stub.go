//go:build !windows

// Package webgpu implements the WebGPU backend. On this platform the
// native wgpu library is not wired up, so construction always fails; the
// backend still registers itself so that selection reports a clear error
// instead of an unknown name.
package webgpu

import (
	"errors"

	"github.com/lattice-ml/lattice/internal/kernels"
	"github.com/lattice-ml/lattice/internal/tensor"
)

// BackendName is the registry name of the WebGPU backend.
const BackendName = "webgpu"

// ErrUnavailable is returned by New on platforms without WebGPU support.
var ErrUnavailable = errors.New("webgpu: not available on this platform")

// Backend is the WebGPU backend. It cannot be constructed on this
// platform.
type Backend struct{}

// New always fails on this platform.
func New() (*Backend, error) {
	return nil, ErrUnavailable
}

// Name returns the backend's registry name.
func (b *Backend) Name() string { return BackendName }

// Device returns tensor.WebGPU.
func (b *Backend) Device() tensor.Device { return tensor.WebGPU }

// Kernels returns nil; the backend cannot be constructed here.
func (b *Backend) Kernels() *kernels.Registry { return nil }

// Release is a no-op on this platform.
func (b *Backend) Release() {}

func init() {
	kernels.RegisterBackend(BackendName, func() (kernels.Backend, error) {
		return nil, ErrUnavailable
	})
}
