package cpu

import (
	"fmt"

	"github.com/x448/float16"
	"gonum.org/v1/gonum/blas"
	"gonum.org/v1/gonum/blas/blas32"
	"gonum.org/v1/gonum/blas/blas64"

	"github.com/lattice-ml/lattice/internal/kernels"
	"github.com/lattice-ml/lattice/internal/parallel"
	"github.com/lattice-ml/lattice/internal/tensor"
)

// dotKernel computes the 2-D matrix product. Per the kernel contract the
// operand shapes are trusted: a is (M, K), b is (K, N), out is (M, N).
type dotKernel struct {
	pool parallel.Config
}

func (*dotKernel) Name() string { return kernels.DotName }

func (k *dotKernel) Call(a, b, out *tensor.RawTensor) {
	m, kk := a.Shape()[0], a.Shape()[1]
	n := b.Shape()[1]
	if m == 0 || n == 0 || kk == 0 {
		// out is zero-initialized, which is the correct product.
		return
	}

	switch a.DType() {
	case tensor.Float32:
		gemm32(out.Float32s(), a.Float32s(), b.Float32s(), m, kk, n)
	case tensor.Float64:
		gemm64(out.Float64s(), a.Float64s(), b.Float64s(), m, kk, n)
	case tensor.Float16:
		k.dotFloat16(out, a, b, m, kk, n)
	case tensor.Int32:
		dotLoop(out.Int32s(), a.Int32s(), b.Int32s(), m, kk, n, k.pool)
	case tensor.Int64:
		dotLoop(out.Int64s(), a.Int64s(), b.Int64s(), m, kk, n, k.pool)
	case tensor.Uint8:
		dotLoop(out.Uint8s(), a.Uint8s(), b.Uint8s(), m, kk, n, k.pool)
	default:
		panic(fmt.Sprintf("cpu: dot: unsupported dtype %s", a.DType()))
	}
}

// gemm32 runs single-precision GEMM on row-major data: C = A @ B.
func gemm32(c, a, b []float32, m, k, n int) {
	ga := blas32.General{Rows: m, Cols: k, Stride: k, Data: a}
	gb := blas32.General{Rows: k, Cols: n, Stride: n, Data: b}
	gc := blas32.General{Rows: m, Cols: n, Stride: n, Data: c}
	blas32.Gemm(blas.NoTrans, blas.NoTrans, 1, ga, gb, 0, gc)
}

// gemm64 runs double-precision GEMM on row-major data: C = A @ B.
func gemm64(c, a, b []float64, m, k, n int) {
	ga := blas64.General{Rows: m, Cols: k, Stride: k, Data: a}
	gb := blas64.General{Rows: k, Cols: n, Stride: n, Data: b}
	gc := blas64.General{Rows: m, Cols: n, Stride: n, Data: c}
	blas64.Gemm(blas.NoTrans, blas.NoTrans, 1, ga, gb, 0, gc)
}

// dotFloat16 widens to float32, multiplies through GEMM, and narrows the
// result. Accumulating in float32 also gives better precision than a
// half-precision inner loop would.
func (k *dotKernel) dotFloat16(out, a, b *tensor.RawTensor, m, kk, n int) {
	aw := widenF16(a.Float16s())
	bw := widenF16(b.Float16s())
	cw := make([]float32, m*n)
	gemm32(cw, aw, bw, m, kk, n)
	dst := out.Float16s()
	for i, v := range cw {
		dst[i] = float16.Fromfloat32(v).Bits()
	}
}

func widenF16(bits []uint16) []float32 {
	out := make([]float32, len(bits))
	for i, u := range bits {
		out[i] = float16.Frombits(u).Float32()
	}
	return out
}

// dotLoop is the integer fallback: a plain triple loop parallelized over
// output rows.
func dotLoop[T int32 | int64 | uint8](c, a, b []T, m, k, n int, pool parallel.Config) {
	parallel.For(m, pool, func(i int) {
		for j := 0; j < n; j++ {
			var sum T
			for l := 0; l < k; l++ {
				sum += a[i*k+l] * b[l*n+j]
			}
			c[i*n+j] = sum
		}
	})
}
