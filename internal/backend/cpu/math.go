package cpu

import (
	"fmt"

	"github.com/x448/float16"

	"github.com/lattice-ml/lattice/internal/kernels"
	"github.com/lattice-ml/lattice/internal/parallel"
	"github.com/lattice-ml/lattice/internal/tensor"
)

// binaryKernel implements one of the elementwise arithmetic operations,
// selected by name at registration time. Operands are trusted to share one
// shape and numeric dtype.
type binaryKernel struct {
	name string
	pool parallel.Config
}

func (k *binaryKernel) Name() string { return k.name }

func (k *binaryKernel) Call(a, b, out *tensor.RawTensor) {
	switch a.DType() {
	case tensor.Float32:
		binaryLoop(k.name, out.Float32s(), a.Float32s(), b.Float32s(), k.pool)
	case tensor.Float64:
		binaryLoop(k.name, out.Float64s(), a.Float64s(), b.Float64s(), k.pool)
	case tensor.Int32:
		binaryLoop(k.name, out.Int32s(), a.Int32s(), b.Int32s(), k.pool)
	case tensor.Int64:
		binaryLoop(k.name, out.Int64s(), a.Int64s(), b.Int64s(), k.pool)
	case tensor.Uint8:
		binaryLoop(k.name, out.Uint8s(), a.Uint8s(), b.Uint8s(), k.pool)
	case tensor.Float16:
		k.callFloat16(a, b, out)
	default:
		panic(fmt.Sprintf("cpu: %s: unsupported dtype %s", k.name, a.DType()))
	}
}

func (k *binaryKernel) callFloat16(a, b, out *tensor.RawTensor) {
	op := opFor[float32](k.name)
	ad, bd, od := a.Float16s(), b.Float16s(), out.Float16s()
	parallel.For(len(od), k.pool, func(i int) {
		v := op(float16.Frombits(ad[i]).Float32(), float16.Frombits(bd[i]).Float32())
		od[i] = float16.Fromfloat32(v).Bits()
	})
}

type number interface {
	float32 | float64 | int32 | int64 | uint8
}

func opFor[T number](name string) func(T, T) T {
	switch name {
	case kernels.AddName:
		return func(x, y T) T { return x + y }
	case kernels.SubtractName:
		return func(x, y T) T { return x - y }
	case kernels.MultiplyName:
		return func(x, y T) T { return x * y }
	case kernels.DivideName:
		return func(x, y T) T { return x / y }
	default:
		panic(fmt.Sprintf("cpu: unknown binary operation %q", name))
	}
}

func binaryLoop[T number](name string, dst, a, b []T, pool parallel.Config) {
	op := opFor[T](name)
	parallel.For(len(dst), pool, func(i int) {
		dst[i] = op(a[i], b[i])
	})
}
