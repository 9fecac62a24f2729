// Copyright 2025 The Lattice Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package tensor

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/lattice-ml/lattice/internal/routines"
	itensor "github.com/lattice-ml/lattice/internal/tensor"
)

// Zeros creates a zero-filled tensor.
func Zeros[T DType](shape Shape, b Backend) *Tensor[T] {
	raw, err := itensor.NewRaw(shape, itensor.TypeOf[T](), b.Device())
	if err != nil {
		panic(err)
	}
	return &Tensor[T]{raw: raw, backend: b}
}

// Ones creates a tensor filled with ones.
func Ones[T DType](shape Shape, b Backend) *Tensor[T] {
	return Full[T](shape, 1, b)
}

// Full creates a tensor with every element set to value, dispatched
// through the backend's Fill kernel.
func Full[T DType](shape Shape, value float64, b Backend) *Tensor[T] {
	raw := routines.Full(b, shape, itensor.TypeOf[T](), value)
	return &Tensor[T]{raw: raw, backend: b}
}

// Eye creates an n x n identity matrix.
func Eye[T DType](n int, b Backend) *Tensor[T] {
	return &Tensor[T]{raw: routines.Eye(b, n, itensor.TypeOf[T]()), backend: b}
}

// Arange creates a 1-D tensor holding start, start+step, ... below stop.
func Arange[T DType](start, stop, step float64, b Backend) *Tensor[T] {
	return &Tensor[T]{raw: routines.Arange(b, start, stop, step, itensor.TypeOf[T]()), backend: b}
}

// FromSlice creates a tensor by copying data into fresh memory.
func FromSlice[T DType](data []T, shape Shape, b Backend) (*Tensor[T], error) {
	if shape.NumElements() != len(data) {
		return nil, fmt.Errorf("shape %v requires %d elements, got %d", shape, shape.NumElements(), len(data))
	}
	t := Zeros[T](shape, b)
	copy(t.Data(), data)
	return t, nil
}

// Randn creates a float tensor with standard-normal values, generated with
// the Box-Muller transform. math/rand is intentional: reproducibility
// matters more than cryptographic quality here.
func Randn[T interface{ ~float32 | ~float64 }](shape Shape, b Backend) *Tensor[T] {
	t := Zeros[T](shape, b)
	data := t.Data()
	for i := 0; i < len(data); i += 2 {
		u1 := 1 - rand.Float64() // (0, 1]: keeps Log finite
		u2 := rand.Float64()
		radius := math.Sqrt(-2 * math.Log(u1))
		data[i] = T(radius * math.Cos(2*math.Pi*u2))
		if i+1 < len(data) {
			data[i+1] = T(radius * math.Sin(2*math.Pi*u2))
		}
	}
	return t
}
