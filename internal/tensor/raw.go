package tensor

import (
	"fmt"
	"sync/atomic"
	"unsafe"
)

// Device identifies where a tensor's data lives and which backend's kernels
// operate on it.
type Device int

// Supported compute devices.
const (
	CPU Device = iota
	WebGPU
)

// String returns a human-readable device name.
func (d Device) String() string {
	switch d {
	case CPU:
		return "CPU"
	case WebGPU:
		return "WebGPU"
	default:
		return "Unknown"
	}
}

// buffer is a reference-counted byte buffer shared between tensor views.
type buffer struct {
	data     []byte
	refCount atomic.Int32
}

func newBuffer(size int) *buffer {
	b := &buffer{data: make([]byte, size)}
	b.refCount.Store(1)
	return b
}

func (b *buffer) addRef() { b.refCount.Add(1) }

func (b *buffer) release() {
	if b.refCount.Add(-1) == 0 {
		b.data = nil
	}
}

// RawTensor is the untyped tensor representation the kernels operate on:
// a contiguous row-major buffer plus shape, strides, element type and
// device. Kernels trust these fields; they never re-validate them.
type RawTensor struct {
	buf    *buffer
	shape  Shape
	stride []int
	dtype  DataType
	device Device
}

// NewRaw allocates a zero-initialized RawTensor.
func NewRaw(shape Shape, dtype DataType, device Device) (*RawTensor, error) {
	if err := shape.Validate(); err != nil {
		return nil, fmt.Errorf("invalid shape %v: %w", shape, err)
	}
	if n := shape.NumElements(); n < 0 {
		return nil, fmt.Errorf("invalid shape %v: element count overflows", shape)
	}
	return &RawTensor{
		buf:    newBuffer(shape.NumElements() * dtype.Size()),
		shape:  shape.Clone(),
		stride: shape.ComputeStrides(),
		dtype:  dtype,
		device: device,
	}, nil
}

// MustNewRaw is NewRaw for shapes already known to be valid.
func MustNewRaw(shape Shape, dtype DataType, device Device) *RawTensor {
	r, err := NewRaw(shape, dtype, device)
	if err != nil {
		panic(err)
	}
	return r
}

// Shape returns the tensor's shape.
func (r *RawTensor) Shape() Shape { return r.shape }

// Strides returns the row-major element strides.
func (r *RawTensor) Strides() []int { return r.stride }

// DType returns the element type.
func (r *RawTensor) DType() DataType { return r.dtype }

// Device returns the compute device the tensor belongs to.
func (r *RawTensor) Device() Device { return r.device }

// NumElements returns the total element count.
func (r *RawTensor) NumElements() int { return r.shape.NumElements() }

// ByteSize returns the buffer size in bytes.
func (r *RawTensor) ByteSize() int { return r.NumElements() * r.dtype.Size() }

// Data returns the raw byte buffer. Mutations are visible to every view
// sharing the buffer.
func (r *RawTensor) Data() []byte { return r.buf.data }

// Float32s interprets the buffer as []float32. Panics on dtype mismatch.
func (r *RawTensor) Float32s() []float32 {
	r.require(Float32)
	return rawSlice[float32](r)
}

// Float64s interprets the buffer as []float64. Panics on dtype mismatch.
func (r *RawTensor) Float64s() []float64 {
	r.require(Float64)
	return rawSlice[float64](r)
}

// Int32s interprets the buffer as []int32. Panics on dtype mismatch.
func (r *RawTensor) Int32s() []int32 {
	r.require(Int32)
	return rawSlice[int32](r)
}

// Int64s interprets the buffer as []int64. Panics on dtype mismatch.
func (r *RawTensor) Int64s() []int64 {
	r.require(Int64)
	return rawSlice[int64](r)
}

// Uint8s interprets the buffer as []uint8. Panics on dtype mismatch.
func (r *RawTensor) Uint8s() []uint8 {
	r.require(Uint8)
	return r.buf.data
}

// Bools interprets the buffer as []bool. Panics on dtype mismatch.
func (r *RawTensor) Bools() []bool {
	r.require(Bool)
	return rawSlice[bool](r)
}

// Float16s interprets the buffer as raw IEEE binary16 payloads.
// Panics on dtype mismatch. Convert with github.com/x448/float16.
func (r *RawTensor) Float16s() []uint16 {
	r.require(Float16)
	return rawSlice[uint16](r)
}

func (r *RawTensor) require(dt DataType) {
	if r.dtype != dt {
		panic(fmt.Sprintf("tensor dtype is %s, not %s", r.dtype, dt))
	}
}

func rawSlice[T any](r *RawTensor) []T {
	if r.NumElements() == 0 {
		return nil
	}
	return unsafe.Slice((*T)(unsafe.Pointer(&r.buf.data[0])), r.NumElements())
}

// View returns a new RawTensor sharing this tensor's buffer.
// The buffer is reference counted; both views must eventually be Released
// (or left to the garbage collector, which is also fine since buffers are
// plain Go memory).
func (r *RawTensor) View() *RawTensor {
	r.buf.addRef()
	return &RawTensor{
		buf:    r.buf,
		shape:  r.shape.Clone(),
		stride: append([]int(nil), r.stride...),
		dtype:  r.dtype,
		device: r.device,
	}
}

// Reshaped returns a view with a different shape. The element count must
// be preserved; callers validate that.
func (r *RawTensor) Reshaped(shape Shape) *RawTensor {
	v := r.View()
	v.shape = shape.Clone()
	v.stride = shape.ComputeStrides()
	return v
}

// CloneData returns a deep copy with its own buffer.
func (r *RawTensor) CloneData() *RawTensor {
	out := MustNewRaw(r.shape, r.dtype, r.device)
	copy(out.buf.data, r.buf.data)
	return out
}

// Release decrements the buffer's reference count, dropping the data once
// no view holds it.
func (r *RawTensor) Release() { r.buf.release() }

// IsUnique reports whether this tensor is the only view of its buffer.
func (r *RawTensor) IsUnique() bool { return r.buf.refCount.Load() == 1 }

// String describes the tensor's metadata, not its contents.
func (r *RawTensor) String() string {
	return fmt.Sprintf("RawTensor[%s]%v on %s", r.dtype, r.shape, r.device)
}
