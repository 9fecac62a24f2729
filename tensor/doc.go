// Copyright 2025 The Lattice Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package tensor is the public, typed front-end of the Lattice library.
//
// A Tensor[T] pairs a raw multi-dimensional buffer with the backend whose
// kernels operate on it. Operations validate shapes and dtypes, then
// dispatch to the kernel the backend registered for the operation's name
// ("Dot", "QR", "Add", ...). Backends are selected at construction time:
//
//	import (
//	    "github.com/lattice-ml/lattice/backend/cpu"
//	    "github.com/lattice-ml/lattice/tensor"
//	)
//
//	backend := cpu.New()
//	a := tensor.Randn[float64](tensor.Shape{4, 3}, backend)
//	q, r := a.QR(tensor.QRReduced)
//	product := q.Dot(r) // recovers a up to rounding
//
// Kernels themselves never validate their operands; the checking lives in
// this layer and in internal/routines. Calling a kernel directly with
// incompatible buffers is undefined behavior by contract.
package tensor
