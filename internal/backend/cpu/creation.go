package cpu

import (
	"fmt"

	"github.com/x448/float16"

	"github.com/lattice-ml/lattice/internal/kernels"
	"github.com/lattice-ml/lattice/internal/tensor"
)

// fillKernel writes a constant into every element.
type fillKernel struct{}

func (*fillKernel) Name() string { return kernels.FillName }

func (*fillKernel) Call(out *tensor.RawTensor, value float64) {
	if out.DType() == tensor.Bool {
		bd := out.Bools()
		for i := range bd {
			bd[i] = value != 0
		}
		return
	}
	n := out.NumElements()
	for i := 0; i < n; i++ {
		writeElem(out, i, value)
	}
}

// arangeKernel writes an arithmetic progression.
type arangeKernel struct{}

func (*arangeKernel) Name() string { return kernels.ArangeName }

func (*arangeKernel) Call(out *tensor.RawTensor, start, step float64) {
	n := out.NumElements()
	for i := 0; i < n; i++ {
		writeElem(out, i, start+float64(i)*step)
	}
}

// identityKernel writes the identity matrix into a square output.
type identityKernel struct{}

func (*identityKernel) Name() string { return kernels.IdentityName }

func (*identityKernel) Call(out *tensor.RawTensor) {
	n := out.Shape()[0]
	for i := 0; i < n; i++ {
		writeElem(out, i*n+i, 1)
	}
}

// transposeKernel writes the 2-D transpose of a into out. The loop moves
// whole elements as bytes, so one implementation covers every dtype.
type transposeKernel struct{}

func (*transposeKernel) Name() string { return kernels.Transpose2DName }

func (*transposeKernel) Call(a, out *tensor.RawTensor) {
	m, n := a.Shape()[0], a.Shape()[1]
	es := a.DType().Size()
	src, dst := a.Data(), out.Data()
	for i := 0; i < m; i++ {
		for j := 0; j < n; j++ {
			copy(dst[(j*m+i)*es:(j*m+i+1)*es], src[(i*n+j)*es:(i*n+j+1)*es])
		}
	}
}

// castKernel converts elementwise between numeric dtypes, float16
// included. Conversion goes through float64, which is exact for every
// supported type except the int64 values beyond 2^53.
type castKernel struct{}

func (*castKernel) Name() string { return kernels.CastName }

func (*castKernel) Call(a, out *tensor.RawTensor) {
	n := a.NumElements()
	for i := 0; i < n; i++ {
		writeElem(out, i, readElem(a, i))
	}
}

func readElem(t *tensor.RawTensor, i int) float64 {
	switch t.DType() {
	case tensor.Float16:
		return float64(float16.Frombits(t.Float16s()[i]).Float32())
	case tensor.Float32:
		return float64(t.Float32s()[i])
	case tensor.Float64:
		return t.Float64s()[i]
	case tensor.Int32:
		return float64(t.Int32s()[i])
	case tensor.Int64:
		return float64(t.Int64s()[i])
	case tensor.Uint8:
		return float64(t.Uint8s()[i])
	default:
		panic(fmt.Sprintf("cpu: cannot read dtype %s as numeric", t.DType()))
	}
}

func writeElem(t *tensor.RawTensor, i int, v float64) {
	switch t.DType() {
	case tensor.Float16:
		t.Float16s()[i] = float16.Fromfloat32(float32(v)).Bits()
	case tensor.Float32:
		t.Float32s()[i] = float32(v)
	case tensor.Float64:
		t.Float64s()[i] = v
	case tensor.Int32:
		t.Int32s()[i] = int32(v)
	case tensor.Int64:
		t.Int64s()[i] = int64(v)
	case tensor.Uint8:
		t.Uint8s()[i] = uint8(v)
	default:
		panic(fmt.Sprintf("cpu: cannot write dtype %s as numeric", t.DType()))
	}
}
