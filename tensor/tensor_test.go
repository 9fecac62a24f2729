// Copyright 2025 The Lattice Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package tensor_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lattice-ml/lattice/backend/cpu"
	"github.com/lattice-ml/lattice/tensor"
)

func TestCreation(t *testing.T) {
	b := cpu.New()

	z := tensor.Zeros[float32](tensor.Shape{2, 3}, b)
	assert.True(t, z.Shape().Equal(tensor.Shape{2, 3}))
	assert.Equal(t, tensor.Float32, z.DType())
	assert.Equal(t, tensor.CPU, z.Device())
	for _, v := range z.Data() {
		assert.Zero(t, v)
	}

	o := tensor.Ones[int64](tensor.Shape{4}, b)
	assert.Equal(t, []int64{1, 1, 1, 1}, o.Data())

	f := tensor.Full[float64](tensor.Shape{2}, 2.5, b)
	assert.Equal(t, []float64{2.5, 2.5}, f.Data())

	e := tensor.Eye[float64](2, b)
	assert.Equal(t, []float64{1, 0, 0, 1}, e.Data())

	r := tensor.Arange[int32](0, 4, 1, b)
	assert.Equal(t, []int32{0, 1, 2, 3}, r.Data())
}

func TestFromSlice(t *testing.T) {
	b := cpu.New()

	m, err := tensor.FromSlice([]float64{1, 2, 3, 4}, tensor.Shape{2, 2}, b)
	require.NoError(t, err)
	assert.Equal(t, 2.0, m.At(0, 1))

	_, err = tensor.FromSlice([]float64{1, 2, 3}, tensor.Shape{2, 2}, b)
	assert.Error(t, err)
}

func TestAtSet(t *testing.T) {
	b := cpu.New()
	m := tensor.Zeros[float32](tensor.Shape{2, 3}, b)

	m.Set(7, 1, 2)
	assert.Equal(t, float32(7), m.At(1, 2))
	assert.Equal(t, float32(7), m.Data()[5])

	assert.Panics(t, func() { m.At(2, 0) })
	assert.Panics(t, func() { m.At(0) })
}

func TestArithmetic(t *testing.T) {
	b := cpu.New()
	x, err := tensor.FromSlice([]float64{1, 2, 3, 4}, tensor.Shape{2, 2}, b)
	require.NoError(t, err)
	y, err := tensor.FromSlice([]float64{4, 3, 2, 1}, tensor.Shape{2, 2}, b)
	require.NoError(t, err)

	assert.Equal(t, []float64{5, 5, 5, 5}, x.Add(y).Data())
	assert.Equal(t, []float64{-3, -1, 1, 3}, x.Sub(y).Data())
	assert.Equal(t, []float64{4, 6, 6, 4}, x.Mul(y).Data())
	assert.Equal(t, []float64{0.25, 2.0 / 3, 1.5, 4}, x.Div(y).Data())
}

func TestDot(t *testing.T) {
	b := cpu.New()
	a, err := tensor.FromSlice([]float64{1, 2, 3, 4, 5, 6}, tensor.Shape{2, 3}, b)
	require.NoError(t, err)
	x, err := tensor.FromSlice([]float64{1, 0, 1}, tensor.Shape{3}, b)
	require.NoError(t, err)

	out := a.Dot(x)
	assert.True(t, out.Shape().Equal(tensor.Shape{2}))
	assert.Equal(t, []float64{4, 10}, out.Data())
}

func TestQREndToEnd(t *testing.T) {
	b := cpu.New()
	a, err := tensor.FromSlice([]float64{12, -51, 4, 6, 167, -68, -4, 24, -41}, tensor.Shape{3, 3}, b)
	require.NoError(t, err)

	q, r := a.QR(tensor.QRReduced)
	require.True(t, q.Shape().Equal(tensor.Shape{3, 3}))
	require.True(t, r.Shape().Equal(tensor.Shape{3, 3}))

	// Q @ R reconstructs A.
	back := q.Dot(r)
	for i, v := range back.Data() {
		assert.InDelta(t, a.Data()[i], v, 1e-10, "element %d", i)
	}

	// Q^T Q = I.
	qtq := q.T().Dot(q)
	eye := tensor.Eye[float64](3, b)
	for i, v := range qtq.Data() {
		assert.InDelta(t, eye.Data()[i], v, 1e-12, "element %d", i)
	}

	// R upper triangular.
	for i := 0; i < 3; i++ {
		for j := 0; j < i; j++ {
			assert.Zero(t, r.At(i, j))
		}
	}
}

func TestTranspose(t *testing.T) {
	b := cpu.New()
	a, err := tensor.FromSlice([]int32{1, 2, 3, 4, 5, 6}, tensor.Shape{2, 3}, b)
	require.NoError(t, err)

	at := a.T()
	assert.True(t, at.Shape().Equal(tensor.Shape{3, 2}))
	assert.Equal(t, []int32{1, 4, 2, 5, 3, 6}, at.Data())
}

func TestCast(t *testing.T) {
	b := cpu.New()
	a, err := tensor.FromSlice([]float64{1.7, -2.2, 3}, tensor.Shape{3}, b)
	require.NoError(t, err)

	i := tensor.Cast[int32](a)
	assert.Equal(t, []int32{1, -2, 3}, i.Data())

	h := tensor.CastRaw(b, a.Raw(), tensor.Float16)
	assert.Equal(t, tensor.Float16, h.DType())
	back := tensor.CastRaw(b, h, tensor.Float64)
	assert.InDelta(t, 1.7, back.Float64s()[0], 1e-3)
}

func TestClone(t *testing.T) {
	b := cpu.New()
	a := tensor.Ones[float64](tensor.Shape{2}, b)

	c := a.Clone()
	c.Set(5, 0)

	assert.Equal(t, float64(1), a.At(0))
	assert.Equal(t, float64(5), c.At(0))
}

func TestRandn(t *testing.T) {
	b := cpu.New()
	r := tensor.Randn[float64](tensor.Shape{1000}, b)

	var sum float64
	for _, v := range r.Data() {
		require.False(t, math.IsNaN(v) || math.IsInf(v, 0))
		sum += v
	}
	// Loose sanity bound on the sample mean of 1000 standard normals.
	assert.InDelta(t, 0, sum/1000, 0.2)
}

func TestNewDTypeMismatchPanics(t *testing.T) {
	b := cpu.New()
	raw := tensor.Zeros[float32](tensor.Shape{2}, b).Raw()
	assert.Panics(t, func() { tensor.New[float64](raw, b) })
}
