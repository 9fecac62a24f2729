// Copyright 2025 The Lattice Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package tensor

import (
	"fmt"

	"github.com/gomlx/exceptions"

	"github.com/lattice-ml/lattice/internal/kernels"
	"github.com/lattice-ml/lattice/internal/routines"
	itensor "github.com/lattice-ml/lattice/internal/tensor"
)

// Type aliases shared with the internal packages.
type (
	// Shape is the ordered sequence of per-dimension sizes.
	Shape = itensor.Shape
	// DataType is the runtime element type of a tensor.
	DataType = itensor.DataType
	// Device identifies where a tensor's data lives.
	Device = itensor.Device
	// RawTensor is the untyped representation kernels operate on.
	RawTensor = itensor.RawTensor
	// DType constrains the Go element types of the typed API.
	DType = itensor.DType
	// Backend is a device plus its kernel table.
	Backend = kernels.Backend
	// QRMode selects the QR decomposition variant.
	QRMode = kernels.QRMode
)

// Element type constants.
const (
	Float16 = itensor.Float16
	Float32 = itensor.Float32
	Float64 = itensor.Float64
	Int32   = itensor.Int32
	Int64   = itensor.Int64
	Uint8   = itensor.Uint8
	Bool    = itensor.Bool
)

// Device constants.
const (
	CPU    = itensor.CPU
	WebGPU = itensor.WebGPU
)

// QR decomposition modes.
const (
	QRReduced  = kernels.QRReduced
	QRComplete = kernels.QRComplete
	QRR        = kernels.QRR
	QRRaw      = kernels.QRRaw
)

// Tensor is a typed view over a raw buffer bound to a backend. Operations
// dispatch to the backend's kernels through the validating routines layer.
type Tensor[T DType] struct {
	raw     *RawTensor
	backend Backend
}

// New wraps a raw tensor and backend into a typed tensor. The raw dtype
// must match T.
func New[T DType](raw *RawTensor, b Backend) *Tensor[T] {
	if raw.DType() != itensor.TypeOf[T]() {
		exceptions.Panicf("tensor: raw dtype %s does not match element type %s", raw.DType(), itensor.TypeOf[T]())
	}
	return &Tensor[T]{raw: raw, backend: b}
}

// Shape returns the tensor's shape.
func (t *Tensor[T]) Shape() Shape { return t.raw.Shape() }

// DType returns the runtime element type.
func (t *Tensor[T]) DType() DataType { return t.raw.DType() }

// Device returns the device the data lives on.
func (t *Tensor[T]) Device() Device { return t.raw.Device() }

// NumElements returns the total element count.
func (t *Tensor[T]) NumElements() int { return t.raw.NumElements() }

// Raw returns the underlying raw tensor for kernel-level access.
func (t *Tensor[T]) Raw() *RawTensor { return t.raw }

// Backend returns the backend the tensor dispatches to.
func (t *Tensor[T]) Backend() Backend { return t.backend }

// Data returns the typed element slice, aliasing the tensor's memory.
func (t *Tensor[T]) Data() []T {
	var zero T
	switch any(zero).(type) {
	case float32:
		return any(t.raw.Float32s()).([]T)
	case float64:
		return any(t.raw.Float64s()).([]T)
	case int32:
		return any(t.raw.Int32s()).([]T)
	case int64:
		return any(t.raw.Int64s()).([]T)
	case uint8:
		return any(t.raw.Uint8s()).([]T)
	case bool:
		return any(t.raw.Bools()).([]T)
	default:
		panic("tensor: unsupported element type")
	}
}

// At returns the element at the given indices.
func (t *Tensor[T]) At(indices ...int) T {
	return t.Data()[t.flatIndex(indices)]
}

// Set writes the element at the given indices.
func (t *Tensor[T]) Set(value T, indices ...int) {
	t.Data()[t.flatIndex(indices)] = value
}

func (t *Tensor[T]) flatIndex(indices []int) int {
	shape := t.Shape()
	if len(indices) != len(shape) {
		exceptions.Panicf("tensor: expected %d indices, got %d", len(shape), len(indices))
	}
	offset := 0
	strides := t.raw.Strides()
	for i, idx := range indices {
		if idx < 0 || idx >= shape[i] {
			exceptions.Panicf("tensor: index %d out of bounds for dimension %d (size %d)", idx, i, shape[i])
		}
		offset += idx * strides[i]
	}
	return offset
}

// Clone returns a deep copy with its own buffer.
func (t *Tensor[T]) Clone() *Tensor[T] {
	return &Tensor[T]{raw: t.raw.CloneData(), backend: t.backend}
}

// String describes the tensor's metadata.
func (t *Tensor[T]) String() string {
	return fmt.Sprintf("Tensor[%s]%v on %s", t.DType(), t.Shape(), t.Device())
}

func (t *Tensor[T]) wrap(raw *RawTensor) *Tensor[T] {
	return &Tensor[T]{raw: raw, backend: t.backend}
}

// Add computes t + other elementwise. Shapes must match.
func (t *Tensor[T]) Add(other *Tensor[T]) *Tensor[T] {
	return t.wrap(routines.Add(t.backend, t.raw, other.raw))
}

// Sub computes t - other elementwise. Shapes must match.
func (t *Tensor[T]) Sub(other *Tensor[T]) *Tensor[T] {
	return t.wrap(routines.Subtract(t.backend, t.raw, other.raw))
}

// Mul computes t * other elementwise. Shapes must match.
func (t *Tensor[T]) Mul(other *Tensor[T]) *Tensor[T] {
	return t.wrap(routines.Multiply(t.backend, t.raw, other.raw))
}

// Div computes t / other elementwise. Shapes must match.
func (t *Tensor[T]) Div(other *Tensor[T]) *Tensor[T] {
	return t.wrap(routines.Divide(t.backend, t.raw, other.raw))
}

// Dot computes the matrix product of two 1-D or 2-D tensors:
// (M, K) @ (K, N) -> (M, N), with 1-D operands promoted the usual way.
func (t *Tensor[T]) Dot(other *Tensor[T]) *Tensor[T] {
	return t.wrap(routines.Dot(t.backend, t.raw, other.raw))
}

// QR computes the QR decomposition of a 2-D floating-point tensor under
// the given mode. See QRMode for the factor shapes.
func (t *Tensor[T]) QR(mode QRMode) (q, r *Tensor[T]) {
	qr, rr := routines.QR(t.backend, t.raw, mode)
	return t.wrap(qr), t.wrap(rr)
}

// T returns the 2-D transpose.
func (t *Tensor[T]) T() *Tensor[T] {
	return t.wrap(routines.Transpose2D(t.backend, t.raw))
}

// Cast converts the tensor to a different element type. To reach float16,
// which has no Go-native counterpart, use CastRaw with the Float16 dtype.
func Cast[To, From DType](t *Tensor[From]) *Tensor[To] {
	raw := routines.Cast(t.backend, t.raw, itensor.TypeOf[To]())
	return &Tensor[To]{raw: raw, backend: t.backend}
}

// CastRaw converts a raw tensor to an arbitrary dtype, float16 included.
func CastRaw(b Backend, raw *RawTensor, dtype DataType) *RawTensor {
	return routines.Cast(b, raw, dtype)
}
