package cpu

import (
	"math"
	"testing"

	"github.com/x448/float16"

	"github.com/lattice-ml/lattice/internal/kernels"
	"github.com/lattice-ml/lattice/internal/tensor"
)

func binaryKernelOf(t *testing.T, name string) kernels.BinaryKernel {
	t.Helper()
	return kernels.Lookup[kernels.BinaryKernel](New().Kernels(), name)
}

func TestBinaryFloat64(t *testing.T) {
	a := raw64(t, tensor.Shape{4}, []float64{1, 2, 3, 4})
	b := raw64(t, tensor.Shape{4}, []float64{4, 2, 2, 0.5})

	cases := []struct {
		name string
		want []float64
	}{
		{kernels.AddName, []float64{5, 4, 5, 4.5}},
		{kernels.SubtractName, []float64{-3, 0, 1, 3.5}},
		{kernels.MultiplyName, []float64{4, 4, 6, 2}},
		{kernels.DivideName, []float64{0.25, 1, 1.5, 8}},
	}
	for _, tc := range cases {
		out := tensor.MustNewRaw(tensor.Shape{4}, tensor.Float64, tensor.CPU)
		binaryKernelOf(t, tc.name).Call(a, b, out)
		for i, v := range out.Float64s() {
			if v != tc.want[i] {
				t.Errorf("%s: out[%d] = %v, want %v", tc.name, i, v, tc.want[i])
			}
		}
	}
}

func TestBinaryInt64(t *testing.T) {
	a := tensor.MustNewRaw(tensor.Shape{3}, tensor.Int64, tensor.CPU)
	b := tensor.MustNewRaw(tensor.Shape{3}, tensor.Int64, tensor.CPU)
	copy(a.Int64s(), []int64{7, -4, 9})
	copy(b.Int64s(), []int64{2, 2, 3})

	out := tensor.MustNewRaw(tensor.Shape{3}, tensor.Int64, tensor.CPU)
	binaryKernelOf(t, kernels.DivideName).Call(a, b, out)

	// Integer division truncates toward zero.
	want := []int64{3, -2, 3}
	for i, v := range out.Int64s() {
		if v != want[i] {
			t.Errorf("out[%d] = %d, want %d", i, v, want[i])
		}
	}
}

func TestBinaryFloat16(t *testing.T) {
	a := tensor.MustNewRaw(tensor.Shape{2}, tensor.Float16, tensor.CPU)
	b := tensor.MustNewRaw(tensor.Shape{2}, tensor.Float16, tensor.CPU)
	for i, v := range []float32{1.5, -2} {
		a.Float16s()[i] = float16.Fromfloat32(v).Bits()
	}
	for i, v := range []float32{0.5, 3} {
		b.Float16s()[i] = float16.Fromfloat32(v).Bits()
	}

	out := tensor.MustNewRaw(tensor.Shape{2}, tensor.Float16, tensor.CPU)
	binaryKernelOf(t, kernels.AddName).Call(a, b, out)

	want := []float32{2, 1}
	for i, u := range out.Float16s() {
		if got := float16.Frombits(u).Float32(); got != want[i] {
			t.Errorf("out[%d] = %v, want %v", i, got, want[i])
		}
	}
}

func TestDivideByZeroFloat(t *testing.T) {
	a := raw64(t, tensor.Shape{1}, []float64{1})
	b := raw64(t, tensor.Shape{1}, []float64{0})

	out := tensor.MustNewRaw(tensor.Shape{1}, tensor.Float64, tensor.CPU)
	binaryKernelOf(t, kernels.DivideName).Call(a, b, out)

	if !math.IsInf(out.Float64s()[0], 1) {
		t.Errorf("1/0 = %v, want +Inf", out.Float64s()[0])
	}
}

func TestBinaryLarge(t *testing.T) {
	// Large enough to cross the parallel chunking threshold.
	const n = 10000
	a := tensor.MustNewRaw(tensor.Shape{n}, tensor.Float32, tensor.CPU)
	b := tensor.MustNewRaw(tensor.Shape{n}, tensor.Float32, tensor.CPU)
	ad, bd := a.Float32s(), b.Float32s()
	for i := range ad {
		ad[i] = float32(i)
		bd[i] = float32(n - i)
	}

	out := tensor.MustNewRaw(tensor.Shape{n}, tensor.Float32, tensor.CPU)
	binaryKernelOf(t, kernels.AddName).Call(a, b, out)

	for i, v := range out.Float32s() {
		if v != float32(n) {
			t.Fatalf("out[%d] = %v, want %v", i, v, float32(n))
		}
	}
}
