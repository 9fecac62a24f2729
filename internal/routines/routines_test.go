package routines_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lattice-ml/lattice/internal/backend/cpu"
	"github.com/lattice-ml/lattice/internal/routines"
	"github.com/lattice-ml/lattice/internal/tensor"
)

func TestAdd(t *testing.T) {
	b := cpu.New()
	x := mat(t, tensor.Shape{2, 2}, []float64{1, 2, 3, 4})
	y := mat(t, tensor.Shape{2, 2}, []float64{10, 20, 30, 40})

	out := routines.Add(b, x, y)

	require.True(t, out.Shape().Equal(tensor.Shape{2, 2}))
	assert.Equal(t, []float64{11, 22, 33, 44}, out.Float64s())
}

func TestBinaryValidation(t *testing.T) {
	b := cpu.New()
	x := mat(t, tensor.Shape{2, 2}, make([]float64, 4))

	t.Run("shape mismatch", func(t *testing.T) {
		y := mat(t, tensor.Shape{4}, make([]float64, 4))
		assert.Panics(t, func() { routines.Subtract(b, x, y) })
	})
	t.Run("dtype mismatch", func(t *testing.T) {
		y := tensor.MustNewRaw(tensor.Shape{2, 2}, tensor.Float32, tensor.CPU)
		assert.Panics(t, func() { routines.Multiply(b, x, y) })
	})
	t.Run("bool operands", func(t *testing.T) {
		z := tensor.MustNewRaw(tensor.Shape{2, 2}, tensor.Bool, tensor.CPU)
		assert.Panics(t, func() { routines.Divide(b, z, z) })
	})
}

func TestFull(t *testing.T) {
	b := cpu.New()
	out := routines.Full(b, tensor.Shape{2, 3}, tensor.Float32, 1.5)

	require.True(t, out.Shape().Equal(tensor.Shape{2, 3}))
	for _, v := range out.Float32s() {
		assert.Equal(t, float32(1.5), v)
	}
}

func TestEye(t *testing.T) {
	b := cpu.New()
	out := routines.Eye(b, 2, tensor.Int64)

	assert.Equal(t, []int64{1, 0, 0, 1}, out.Int64s())
	assert.Panics(t, func() { routines.Eye(b, -1, tensor.Float64) })
	assert.Panics(t, func() { routines.Eye(b, 2, tensor.Bool) })
}

func TestArange(t *testing.T) {
	b := cpu.New()

	out := routines.Arange(b, 0, 5, 1, tensor.Int32)
	assert.Equal(t, []int32{0, 1, 2, 3, 4}, out.Int32s())

	out = routines.Arange(b, 1, 2, 0.25, tensor.Float64)
	assert.Equal(t, []float64{1, 1.25, 1.5, 1.75}, out.Float64s())

	// Descending range with a negative step.
	out = routines.Arange(b, 3, 0, -1, tensor.Float64)
	assert.Equal(t, []float64{3, 2, 1}, out.Float64s())

	// Empty range.
	out = routines.Arange(b, 5, 0, 1, tensor.Float64)
	assert.Equal(t, 0, out.NumElements())

	assert.Panics(t, func() { routines.Arange(b, 0, 1, 0, tensor.Float64) })
}

func TestTranspose2D(t *testing.T) {
	b := cpu.New()
	a := mat(t, tensor.Shape{2, 3}, []float64{1, 2, 3, 4, 5, 6})

	out := routines.Transpose2D(b, a)

	require.True(t, out.Shape().Equal(tensor.Shape{3, 2}))
	assert.Equal(t, []float64{1, 4, 2, 5, 3, 6}, out.Float64s())

	v := tensor.MustNewRaw(tensor.Shape{3}, tensor.Float64, tensor.CPU)
	assert.Panics(t, func() { routines.Transpose2D(b, v) })
}

func TestCast(t *testing.T) {
	b := cpu.New()
	a := mat(t, tensor.Shape{3}, []float64{1.7, -2.2, 3})

	out := routines.Cast(b, a, tensor.Int32)
	assert.Equal(t, []int32{1, -2, 3}, out.Int32s())

	// Same-dtype cast returns a view over the same buffer.
	same := routines.Cast(b, a, tensor.Float64)
	same.Float64s()[0] = 9
	assert.Equal(t, float64(9), a.Float64s()[0])

	bools := tensor.MustNewRaw(tensor.Shape{3}, tensor.Bool, tensor.CPU)
	assert.Panics(t, func() { routines.Cast(b, bools, tensor.Float64) })
}
