package cpu

import (
	"math"
	"testing"

	"github.com/x448/float16"

	"github.com/lattice-ml/lattice/internal/kernels"
	"github.com/lattice-ml/lattice/internal/tensor"
)

func qrKernelOf(t *testing.T) kernels.QRKernel {
	t.Helper()
	return kernels.Lookup[kernels.QRKernel](New().Kernels(), kernels.QRName)
}

// matmul64 multiplies two row-major matrices: (m x k) @ (k x n).
func matmul64(a, b []float64, m, k, n int) []float64 {
	c := make([]float64, m*n)
	for i := 0; i < m; i++ {
		for j := 0; j < n; j++ {
			var sum float64
			for l := 0; l < k; l++ {
				sum += a[i*k+l] * b[l*n+j]
			}
			c[i*n+j] = sum
		}
	}
	return c
}

func checkClose64(t *testing.T, got, want []float64, tol float64, what string) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("%s: length %d, want %d", what, len(got), len(want))
	}
	for i := range got {
		if math.Abs(got[i]-want[i]) > tol {
			t.Errorf("%s[%d] = %v, want %v", what, i, got[i], want[i])
		}
	}
}

// checkQRProperties verifies the three invariants of a decomposition of the
// m x n matrix a: Q has orthonormal columns, R is upper triangular, and the
// product reconstructs a.
func checkQRProperties(t *testing.T, a []float64, m, n int, q, r *tensor.RawTensor, tol float64) {
	t.Helper()
	qd, rd := q.Float64s(), r.Float64s()
	qc := q.Shape()[1] // columns of Q, rows of R

	// Q^T Q = I.
	for j1 := 0; j1 < qc; j1++ {
		for j2 := 0; j2 < qc; j2++ {
			var sum float64
			for i := 0; i < m; i++ {
				sum += qd[i*qc+j1] * qd[i*qc+j2]
			}
			want := 0.0
			if j1 == j2 {
				want = 1.0
			}
			if math.Abs(sum-want) > tol {
				t.Errorf("Q^T Q [%d,%d] = %v, want %v", j1, j2, sum, want)
			}
		}
	}

	// R upper triangular.
	rRows := r.Shape()[0]
	for i := 0; i < rRows; i++ {
		for j := 0; j < min(i, n); j++ {
			if rd[i*n+j] != 0 {
				t.Errorf("R[%d,%d] = %v, want 0", i, j, rd[i*n+j])
			}
		}
	}

	// Q @ R = A.
	checkClose64(t, matmul64(qd, rd, m, qc, n), a, tol, "Q@R")
}

func TestQRReducedSquare(t *testing.T) {
	k := qrKernelOf(t)
	data := []float64{4, 1, 2, 2, 3, 1, 1, 2, 5}
	a := raw64(t, tensor.Shape{3, 3}, data)

	q, r := k.Call(a, kernels.QRReduced)

	if !q.Shape().Equal(tensor.Shape{3, 3}) || !r.Shape().Equal(tensor.Shape{3, 3}) {
		t.Fatalf("shapes Q=%v R=%v, want (3, 3) both", q.Shape(), r.Shape())
	}
	checkQRProperties(t, data, 3, 3, q, r, 1e-12)
}

func TestQRReducedTall(t *testing.T) {
	k := qrKernelOf(t)
	data := []float64{1, 2, 3, 4, 5, 6, 7, 8}
	a := raw64(t, tensor.Shape{4, 2}, data)

	q, r := k.Call(a, kernels.QRReduced)

	if !q.Shape().Equal(tensor.Shape{4, 2}) || !r.Shape().Equal(tensor.Shape{2, 2}) {
		t.Fatalf("shapes Q=%v R=%v, want (4, 2) and (2, 2)", q.Shape(), r.Shape())
	}
	checkQRProperties(t, data, 4, 2, q, r, 1e-12)
}

func TestQRReducedWide(t *testing.T) {
	k := qrKernelOf(t)
	data := []float64{1, 4, 2, 0, 3, 1, 5, 2}
	a := raw64(t, tensor.Shape{2, 4}, data)

	q, r := k.Call(a, kernels.QRReduced)

	if !q.Shape().Equal(tensor.Shape{2, 2}) || !r.Shape().Equal(tensor.Shape{2, 4}) {
		t.Fatalf("shapes Q=%v R=%v, want (2, 2) and (2, 4)", q.Shape(), r.Shape())
	}
	checkQRProperties(t, data, 2, 4, q, r, 1e-12)
}

func TestQRCompleteTall(t *testing.T) {
	k := qrKernelOf(t)
	data := []float64{1, 2, 3, 4, 5, 6, 7, 8}
	a := raw64(t, tensor.Shape{4, 2}, data)

	q, r := k.Call(a, kernels.QRComplete)

	if !q.Shape().Equal(tensor.Shape{4, 4}) || !r.Shape().Equal(tensor.Shape{4, 2}) {
		t.Fatalf("shapes Q=%v R=%v, want (4, 4) and (4, 2)", q.Shape(), r.Shape())
	}
	checkQRProperties(t, data, 4, 2, q, r, 1e-12)
}

func TestQRRMode(t *testing.T) {
	k := qrKernelOf(t)
	data := []float64{4, 1, 2, 2, 3, 1, 1, 2, 5, 0, 1, 2}
	a := raw64(t, tensor.Shape{4, 3}, data)

	q, r := k.Call(a, kernels.QRR)

	if !q.Shape().Equal(tensor.Shape{0, 3}) {
		t.Fatalf("Q shape = %v, want (0, 3)", q.Shape())
	}
	if !r.Shape().Equal(tensor.Shape{3, 3}) {
		t.Fatalf("R shape = %v, want (3, 3)", r.Shape())
	}

	// The R factor must agree with reduced mode up to sign conventions; the
	// same LAPACK path produces both, so require equality.
	_, rFull := k.Call(a, kernels.QRReduced)
	checkClose64(t, r.Float64s(), rFull.Float64s(), 0, "R")
}

func TestQRRawMode(t *testing.T) {
	k := qrKernelOf(t)
	data := []float64{1, 2, 3, 4, 5, 6, 7, 8}
	a := raw64(t, tensor.Shape{4, 2}, data)

	h, tau := k.Call(a, kernels.QRRaw)

	if !h.Shape().Equal(tensor.Shape{2, 4}) {
		t.Fatalf("H shape = %v, want (2, 4)", h.Shape())
	}
	if !tau.Shape().Equal(tensor.Shape{2}) {
		t.Fatalf("tau shape = %v, want (2,)", tau.Shape())
	}

	// The transposed factored matrix carries R in what was its upper
	// triangle: R[i,j] lives at H[j,i].
	_, r := k.Call(a, kernels.QRR)
	hd, rd := h.Float64s(), r.Float64s()
	for i := 0; i < 2; i++ {
		for j := i; j < 2; j++ {
			if hd[j*4+i] != rd[i*2+j] {
				t.Errorf("H[%d,%d] = %v, want R[%d,%d] = %v", j, i, hd[j*4+i], i, j, rd[i*2+j])
			}
		}
	}
}

func TestQRFloat32(t *testing.T) {
	k := qrKernelOf(t)
	a := raw32(t, tensor.Shape{3, 3}, []float32{4, 1, 2, 2, 3, 1, 1, 2, 5})

	q, r := k.Call(a, kernels.QRReduced)

	if q.DType() != tensor.Float32 || r.DType() != tensor.Float32 {
		t.Fatalf("dtypes Q=%s R=%s, want float32", q.DType(), r.DType())
	}
	m, n := 3, 3
	qd, rd := q.Float32s(), r.Float32s()
	a64 := make([]float64, m*n)
	q64 := make([]float64, len(qd))
	r64 := make([]float64, len(rd))
	for i, v := range a.Float32s() {
		a64[i] = float64(v)
	}
	for i, v := range qd {
		q64[i] = float64(v)
	}
	for i, v := range rd {
		r64[i] = float64(v)
	}
	checkClose64(t, matmul64(q64, r64, m, n, n), a64, 1e-5, "Q@R")
}

func TestQRFloat16(t *testing.T) {
	k := qrKernelOf(t)
	a := tensor.MustNewRaw(tensor.Shape{2, 2}, tensor.Float16, tensor.CPU)
	for i, v := range []float32{3, 0, 4, 5} {
		a.Float16s()[i] = float16.Fromfloat32(v).Bits()
	}

	q, r := k.Call(a, kernels.QRReduced)

	if q.DType() != tensor.Float16 || r.DType() != tensor.Float16 {
		t.Fatalf("dtypes Q=%s R=%s, want float16", q.DType(), r.DType())
	}
	var qr [4]float64
	qd, rd := q.Float16s(), r.Float16s()
	for i := 0; i < 2; i++ {
		for j := 0; j < 2; j++ {
			var sum float64
			for l := 0; l < 2; l++ {
				sum += float64(float16.Frombits(qd[i*2+l]).Float32()) * float64(float16.Frombits(rd[l*2+j]).Float32())
			}
			qr[i*2+j] = sum
		}
	}
	checkClose64(t, qr[:], []float64{3, 0, 4, 5}, 0.05, "Q@R")
}

func TestQRUnsupportedDTypePanics(t *testing.T) {
	k := qrKernelOf(t)
	a := tensor.MustNewRaw(tensor.Shape{2, 2}, tensor.Int32, tensor.CPU)
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic for int32 input")
		}
	}()
	k.Call(a, kernels.QRReduced)
}
