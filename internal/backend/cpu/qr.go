package cpu

import (
	"fmt"

	"github.com/x448/float16"
	"gonum.org/v1/gonum/blas/blas64"
	"gonum.org/v1/gonum/lapack/lapack64"

	"github.com/lattice-ml/lattice/internal/kernels"
	"github.com/lattice-ml/lattice/internal/tensor"
)

// qrKernel computes the QR decomposition of a 2-D floating-point tensor.
// Float64 goes through LAPACK (Geqrf/Orgqr); float32 uses the Householder
// implementation in qr32.go; float16 widens to float32.
type qrKernel struct{}

func (*qrKernel) Name() string { return kernels.QRName }

func (k *qrKernel) Call(a *tensor.RawTensor, mode kernels.QRMode) (q, r *tensor.RawTensor) {
	switch a.DType() {
	case tensor.Float64:
		return qr64(a, mode)
	case tensor.Float32:
		return qr32(a, mode)
	case tensor.Float16:
		return qr16(a, mode)
	default:
		panic(fmt.Sprintf("cpu: qr: unsupported dtype %s", a.DType()))
	}
}

func qr64(a *tensor.RawTensor, mode kernels.QRMode) (*tensor.RawTensor, *tensor.RawTensor) {
	m, n := a.Shape()[0], a.Shape()[1]
	k := min(m, n)

	f := append([]float64(nil), a.Float64s()...)
	tau := make([]float64, k)
	if k > 0 {
		fa := blas64.General{Rows: m, Cols: n, Stride: n, Data: f}
		work := make([]float64, 1)
		lapack64.Geqrf(fa, tau, work, -1)
		work = make([]float64, int(work[0]))
		lapack64.Geqrf(fa, tau, work, len(work))
	}

	dev := a.Device()
	switch mode {
	case kernels.QRR:
		q := tensor.MustNewRaw(tensor.Shape{0, k}, tensor.Float64, dev)
		return q, upperTriangle64(f, m, n, k, dev)
	case kernels.QRReduced:
		return formQ64(f, tau, m, n, k, dev), upperTriangle64(f, m, n, k, dev)
	case kernels.QRComplete:
		return formQ64(f, tau, m, n, m, dev), upperTriangle64(f, m, n, m, dev)
	case kernels.QRRaw:
		h := tensor.MustNewRaw(tensor.Shape{n, m}, tensor.Float64, dev)
		hd := h.Float64s()
		for i := 0; i < m; i++ {
			for j := 0; j < n; j++ {
				hd[j*m+i] = f[i*n+j]
			}
		}
		t := tensor.MustNewRaw(tensor.Shape{k}, tensor.Float64, dev)
		copy(t.Float64s(), tau)
		return h, t
	default:
		panic(fmt.Sprintf("cpu: qr: unknown mode %d", mode))
	}
}

// upperTriangle64 extracts the R factor: the first rows rows of the upper
// triangle of the factored matrix f (m x n).
func upperTriangle64(f []float64, m, n, rows int, dev tensor.Device) *tensor.RawTensor {
	r := tensor.MustNewRaw(tensor.Shape{rows, n}, tensor.Float64, dev)
	rd := r.Float64s()
	for i := 0; i < min(rows, m); i++ {
		for j := i; j < n; j++ {
			rd[i*n+j] = f[i*n+j]
		}
	}
	return r
}

// formQ64 materializes the first cols columns of Q from the factored
// matrix and the reflector coefficients.
func formQ64(f []float64, tau []float64, m, n, cols int, dev tensor.Device) *tensor.RawTensor {
	q := tensor.MustNewRaw(tensor.Shape{m, cols}, tensor.Float64, dev)
	if m == 0 || cols == 0 {
		return q
	}
	qd := q.Float64s()
	k := len(tau)
	// Seed with the reflectors: Orgqr reads them from the lower triangle
	// of its input's first k columns.
	for i := 0; i < m; i++ {
		for j := 0; j < min(k, cols); j++ {
			qd[i*cols+j] = f[i*n+j]
		}
	}
	qa := blas64.General{Rows: m, Cols: cols, Stride: cols, Data: qd}
	work := make([]float64, 1)
	lapack64.Orgqr(qa, tau, work, -1)
	work = make([]float64, int(work[0]))
	lapack64.Orgqr(qa, tau, work, len(work))
	return q
}

// qr16 widens to float32, decomposes, and narrows both factors.
func qr16(a *tensor.RawTensor, mode kernels.QRMode) (*tensor.RawTensor, *tensor.RawTensor) {
	wide := tensor.MustNewRaw(a.Shape(), tensor.Float32, a.Device())
	wd := wide.Float32s()
	for i, u := range a.Float16s() {
		wd[i] = float16.Frombits(u).Float32()
	}
	q32, r32 := qr32(wide, mode)
	return narrow16(q32), narrow16(r32)
}

func narrow16(t *tensor.RawTensor) *tensor.RawTensor {
	out := tensor.MustNewRaw(t.Shape(), tensor.Float16, t.Device())
	od := out.Float16s()
	for i, v := range t.Float32s() {
		od[i] = float16.Fromfloat32(v).Bits()
	}
	return out
}
