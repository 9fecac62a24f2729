//go:build windows

package webgpu

import (
	"encoding/binary"
	"fmt"
	"math"

	"github.com/go-webgpu/webgpu/wgpu"

	"github.com/lattice-ml/lattice/internal/kernels"
	"github.com/lattice-ml/lattice/internal/tensor"
)

// dotKernel runs the matmul shader. Shapes follow the kernel contract:
// a (M, K), b (K, N), out (M, N), all float32. GPU submission failures
// panic; the kernel interface has no error channel by design.
type dotKernel struct {
	b *Backend
}

func (*dotKernel) Name() string { return kernels.DotName }

func (k *dotKernel) Call(a, b, out *tensor.RawTensor) {
	if a.DType() != tensor.Float32 {
		panic(fmt.Sprintf("webgpu: dot: only float32 is supported, got %s", a.DType()))
	}
	m := uint32(a.Shape()[0])
	kk := uint32(a.Shape()[1])
	n := uint32(b.Shape()[1])
	if m == 0 || n == 0 || kk == 0 {
		return
	}

	be := k.b
	pipeline := be.pipelineFor("matmul", matmulShader)

	bufA := be.createBuffer(a.Data(), wgpu.BufferUsageStorage|wgpu.BufferUsageCopySrc)
	defer bufA.Release()
	bufB := be.createBuffer(b.Data(), wgpu.BufferUsageStorage|wgpu.BufferUsageCopySrc)
	defer bufB.Release()

	resultSize := uint64(out.ByteSize())
	bufOut := be.device.CreateBuffer(&wgpu.BufferDescriptor{
		Usage: wgpu.BufferUsageStorage | wgpu.BufferUsageCopySrc | wgpu.BufferUsageCopyDst,
		Size:  resultSize,
	})
	defer bufOut.Release()

	params := make([]byte, 16)
	binary.LittleEndian.PutUint32(params[0:4], m)
	binary.LittleEndian.PutUint32(params[4:8], kk)
	binary.LittleEndian.PutUint32(params[8:12], n)
	bufParams := be.createUniformBuffer(params)
	defer bufParams.Release()

	bindGroup := be.device.CreateBindGroupSimple(pipeline.GetBindGroupLayout(0), []wgpu.BindGroupEntry{
		wgpu.BufferBindingEntry(0, bufA, 0, uint64(a.ByteSize())),
		wgpu.BufferBindingEntry(1, bufB, 0, uint64(b.ByteSize())),
		wgpu.BufferBindingEntry(2, bufOut, 0, resultSize),
		wgpu.BufferBindingEntry(3, bufParams, 0, 16),
	})
	defer bindGroup.Release()

	encoder := be.device.CreateCommandEncoder(nil)
	pass := encoder.BeginComputePass(nil)
	pass.SetPipeline(pipeline)
	pass.SetBindGroup(0, bindGroup, nil)
	pass.DispatchWorkgroups(uint32(math.Ceil(float64(n)/16)), uint32(math.Ceil(float64(m)/16)), 1)
	pass.End()
	be.queue.Submit(encoder.Finish(nil))

	data, err := be.readBuffer(bufOut, resultSize)
	if err != nil {
		panic(fmt.Sprintf("webgpu: dot: %v", err))
	}
	copy(out.Data(), data)
}
