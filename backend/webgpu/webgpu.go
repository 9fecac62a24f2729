// Copyright 2025 The Lattice Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package webgpu provides the WebGPU backend: float32 kernels running as
// WGSL compute shaders on any GPU the wgpu runtime can drive. Importing
// the package registers the backend under the name "webgpu".
//
// The backend implements Dot and the elementwise arithmetic kernels. QR
// is not implemented on the GPU; dispatching it to this backend panics
// with a missing-kernel message.
package webgpu

import (
	internalwebgpu "github.com/lattice-ml/lattice/internal/backend/webgpu"
	"github.com/lattice-ml/lattice/tensor"
)

// Backend is the WebGPU backend implementation.
type Backend = internalwebgpu.Backend

// Compile-time check that Backend implements tensor.Backend.
var _ tensor.Backend = (*Backend)(nil)

// New initializes the WebGPU device and returns a backend ready for
// kernel dispatch. Call Release when done to free GPU resources. Returns
// an error when WebGPU is unavailable on this system.
func New() (*Backend, error) {
	return internalwebgpu.New()
}
