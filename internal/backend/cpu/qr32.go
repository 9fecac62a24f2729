package cpu

import (
	"fmt"
	"math"

	"github.com/lattice-ml/lattice/internal/kernels"
	"github.com/lattice-ml/lattice/internal/tensor"
)

// Single-precision Householder QR. gonum's LAPACK is float64-only, so the
// float32 path mirrors the Geqrf/Orgqr pair in plain Go, accumulating
// inner products in float64 for stability.

func qr32(a *tensor.RawTensor, mode kernels.QRMode) (*tensor.RawTensor, *tensor.RawTensor) {
	m, n := a.Shape()[0], a.Shape()[1]
	k := min(m, n)

	f := append([]float32(nil), a.Float32s()...)
	tau := factorHouseholder32(f, m, n)

	dev := a.Device()
	switch mode {
	case kernels.QRR:
		q := tensor.MustNewRaw(tensor.Shape{0, k}, tensor.Float32, dev)
		return q, upperTriangle32(f, m, n, k, dev)
	case kernels.QRReduced:
		return formQ32(f, tau, m, n, k, dev), upperTriangle32(f, m, n, k, dev)
	case kernels.QRComplete:
		return formQ32(f, tau, m, n, m, dev), upperTriangle32(f, m, n, m, dev)
	case kernels.QRRaw:
		h := tensor.MustNewRaw(tensor.Shape{n, m}, tensor.Float32, dev)
		hd := h.Float32s()
		for i := 0; i < m; i++ {
			for j := 0; j < n; j++ {
				hd[j*m+i] = f[i*n+j]
			}
		}
		t := tensor.MustNewRaw(tensor.Shape{k}, tensor.Float32, dev)
		copy(t.Float32s(), tau)
		return h, t
	default:
		panic(fmt.Sprintf("cpu: qr: unknown mode %d", mode))
	}
}

// factorHouseholder32 overwrites a (m x n, row-major) with its Householder
// QR factorization in the LAPACK layout: R in the upper triangle, the
// essential parts of the reflector vectors below the diagonal. Returns the
// reflector coefficients.
func factorHouseholder32(a []float32, m, n int) []float32 {
	k := min(m, n)
	tau := make([]float32, k)
	for j := 0; j < k; j++ {
		var norm float64
		for i := j; i < m; i++ {
			v := float64(a[i*n+j])
			norm += v * v
		}
		norm = math.Sqrt(norm)
		if norm == 0 {
			tau[j] = 0
			continue
		}
		alpha := float64(a[j*n+j])
		beta := -math.Copysign(norm, alpha)
		tau[j] = float32((beta - alpha) / beta)
		scale := 1 / (alpha - beta)
		for i := j + 1; i < m; i++ {
			a[i*n+j] = float32(float64(a[i*n+j]) * scale)
		}
		a[j*n+j] = float32(beta)

		// Apply H_j = I - tau*v*v^T to the trailing columns, with the
		// implicit v[j] = 1.
		for c := j + 1; c < n; c++ {
			w := float64(a[j*n+c])
			for i := j + 1; i < m; i++ {
				w += float64(a[i*n+j]) * float64(a[i*n+c])
			}
			w *= float64(tau[j])
			a[j*n+c] -= float32(w)
			for i := j + 1; i < m; i++ {
				a[i*n+c] -= float32(float64(a[i*n+j]) * w)
			}
		}
	}
	return tau
}

// upperTriangle32 extracts the R factor from the factored matrix.
func upperTriangle32(f []float32, m, n, rows int, dev tensor.Device) *tensor.RawTensor {
	r := tensor.MustNewRaw(tensor.Shape{rows, n}, tensor.Float32, dev)
	rd := r.Float32s()
	for i := 0; i < min(rows, m); i++ {
		for j := i; j < n; j++ {
			rd[i*n+j] = f[i*n+j]
		}
	}
	return r
}

// formQ32 materializes the first cols columns of Q = H_0 H_1 ... H_{k-1}
// by applying the reflectors to the identity in reverse order.
func formQ32(f []float32, tau []float32, m, n, cols int, dev tensor.Device) *tensor.RawTensor {
	q := tensor.MustNewRaw(tensor.Shape{m, cols}, tensor.Float32, dev)
	qd := q.Float32s()
	for i := 0; i < min(m, cols); i++ {
		qd[i*cols+i] = 1
	}
	for j := len(tau) - 1; j >= 0; j-- {
		if tau[j] == 0 {
			continue
		}
		for c := 0; c < cols; c++ {
			w := float64(qd[j*cols+c])
			for i := j + 1; i < m; i++ {
				w += float64(f[i*n+j]) * float64(qd[i*cols+c])
			}
			w *= float64(tau[j])
			qd[j*cols+c] -= float32(w)
			for i := j + 1; i < m; i++ {
				qd[i*cols+c] -= float32(float64(f[i*n+j]) * w)
			}
		}
	}
	return q
}
