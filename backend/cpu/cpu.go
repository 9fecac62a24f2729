// Copyright 2025 The Lattice Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package cpu provides the CPU backend: gonum BLAS/LAPACK matrix kernels
// and pure-Go elementwise kernels. Importing the package registers the
// backend under the name "cpu".
//
// Example:
//
//	import (
//	    "github.com/lattice-ml/lattice/backend/cpu"
//	    "github.com/lattice-ml/lattice/tensor"
//	)
//
//	backend := cpu.New()
//	a := tensor.Randn[float64](tensor.Shape{8, 4}, backend)
//	q, r := a.QR(tensor.QRReduced)
package cpu

import (
	internalcpu "github.com/lattice-ml/lattice/internal/backend/cpu"
	"github.com/lattice-ml/lattice/tensor"
)

// Backend is the CPU backend implementation.
type Backend = internalcpu.Backend

// Compile-time check that Backend implements tensor.Backend.
var _ tensor.Backend = (*Backend)(nil)

// New creates a CPU backend with its full kernel table.
func New() *Backend {
	return internalcpu.New()
}
