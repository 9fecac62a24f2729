//go:build windows

package webgpu

import (
	"encoding/binary"
	"fmt"

	"github.com/go-webgpu/webgpu/wgpu"

	"github.com/lattice-ml/lattice/internal/tensor"
)

// binaryKernel runs one of the elementwise arithmetic shaders. Operands
// share one shape and must be float32.
type binaryKernel struct {
	b      *Backend
	name   string
	shader string
}

func (k *binaryKernel) Name() string { return k.name }

func (k *binaryKernel) Call(a, b, out *tensor.RawTensor) {
	if a.DType() != tensor.Float32 {
		panic(fmt.Sprintf("webgpu: %s: only float32 is supported, got %s", k.name, a.DType()))
	}
	n := uint32(out.NumElements())
	if n == 0 {
		return
	}

	be := k.b
	pipeline := be.pipelineFor(k.name, k.shader)

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
	binary.LittleEndian.PutUint32(params[0:4], n)
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
	pass.DispatchWorkgroups((n+workgroupSize-1)/workgroupSize, 1, 1)
	pass.End()
	be.queue.Submit(encoder.Finish(nil))

	data, err := be.readBuffer(bufOut, resultSize)
	if err != nil {
		panic(fmt.Sprintf("webgpu: %s: %v", k.name, err))
	}
	copy(out.Data(), data)
}
