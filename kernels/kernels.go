// Copyright 2025 The Lattice Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package kernels exposes the kernel and backend registration surface for
// out-of-tree backends. A backend implements the per-operation kernel
// interfaces, collects them in a Registry, and registers a constructor
// under its name:
//
//	func init() {
//	    kernels.RegisterBackend("mydevice", func() (kernels.Backend, error) {
//	        return newMyBackend()
//	    })
//	}
//
// Kernels trust their operands: shape and dtype preconditions are checked
// by the routines layer before dispatch, never by the kernel itself.
// Violating them is undefined behavior.
package kernels

import "github.com/lattice-ml/lattice/internal/kernels"

// Core types.
type (
	// Kernel is the interface every registered kernel implements.
	Kernel = kernels.Kernel
	// Registry is a backend's operation-name-to-kernel table.
	Registry = kernels.Registry
	// Backend is a device plus its kernel table.
	Backend = kernels.Backend
	// Constructor builds a Backend.
	Constructor = kernels.Constructor
)

// Operation kernel interfaces.
type (
	// DotKernel computes a 2-D matrix product into a caller-provided
	// output buffer.
	DotKernel = kernels.DotKernel
	// QRKernel computes a QR decomposition, allocating its two factors.
	QRKernel = kernels.QRKernel
	// BinaryKernel computes an elementwise arithmetic operation.
	BinaryKernel = kernels.BinaryKernel
	// FillKernel writes a constant into every element.
	FillKernel = kernels.FillKernel
	// ArangeKernel writes an arithmetic progression.
	ArangeKernel = kernels.ArangeKernel
	// IdentityKernel writes the identity matrix.
	IdentityKernel = kernels.IdentityKernel
	// Transpose2DKernel writes a 2-D transpose.
	Transpose2DKernel = kernels.Transpose2DKernel
	// CastKernel converts between numeric dtypes.
	CastKernel = kernels.CastKernel
	// QRMode selects the QR decomposition variant.
	QRMode = kernels.QRMode
)

// Registry names of the operations Lattice dispatches.
const (
	DotName         = kernels.DotName
	QRName          = kernels.QRName
	AddName         = kernels.AddName
	SubtractName    = kernels.SubtractName
	MultiplyName    = kernels.MultiplyName
	DivideName      = kernels.DivideName
	FillName        = kernels.FillName
	ArangeName      = kernels.ArangeName
	IdentityName    = kernels.IdentityName
	Transpose2DName = kernels.Transpose2DName
	CastName        = kernels.CastName
)

// QR decomposition modes.
const (
	QRReduced  = kernels.QRReduced
	QRComplete = kernels.QRComplete
	QRR        = kernels.QRR
	QRRaw      = kernels.QRRaw
)

// EnvBackend is the environment variable naming the default backend.
const EnvBackend = kernels.EnvBackend

// NewRegistry creates an empty kernel table for the named backend.
func NewRegistry(backend string) *Registry { return kernels.NewRegistry(backend) }

// RegisterBackend makes a backend constructable by name.
func RegisterBackend(name string, ctor Constructor) { kernels.RegisterBackend(name, ctor) }

// BackendNames returns the sorted names of the registered backends.
func BackendNames() []string { return kernels.BackendNames() }

// NewBackend constructs the default backend (LATTICE_BACKEND, or the
// first one registered).
func NewBackend() (Backend, error) { return kernels.NewBackend() }

// NewBackendByName constructs the named backend.
func NewBackendByName(name string) (Backend, error) { return kernels.NewBackendByName(name) }
