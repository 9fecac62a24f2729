//go:build windows

// Package webgpu implements the WebGPU backend: float32 kernels running as
// WGSL compute shaders through go-webgpu's zero-CGO bindings.
//
// The backend registers Dot and the elementwise arithmetic kernels. QR is
// deliberately not registered -- there is no solver on this path -- so
// dispatching "QR" to this backend panics with a missing-kernel message.
package webgpu

import (
	"fmt"
	"sync"
	"unsafe"

	"github.com/go-webgpu/webgpu/wgpu"

	"github.com/lattice-ml/lattice/internal/kernels"
	"github.com/lattice-ml/lattice/internal/tensor"
)

// BackendName is the registry name of the WebGPU backend.
const BackendName = "webgpu"

// Backend computes float32 tensor operations on the GPU. Buffers live on
// the host; each kernel call uploads its operands, runs the compute pass
// and reads the result back through a staging buffer.
type Backend struct {
	instance *wgpu.Instance
	adapter  *wgpu.Adapter
	device   *wgpu.Device
	queue    *wgpu.Queue

	mu        sync.RWMutex
	shaders   map[string]*wgpu.ShaderModule
	pipelines map[string]*wgpu.ComputePipeline

	reg *kernels.Registry
}

// New initializes the WebGPU device and builds the kernel table.
// Returns an error when no usable adapter is present.
func New() (backend *Backend, err error) {
	// The native library loads lazily and panics when absent.
	defer func() {
		if r := recover(); r != nil {
			backend = nil
			err = fmt.Errorf("webgpu: native library not available: %v", r)
		}
	}()

	instance := wgpu.CreateInstance(nil)
	adapter, adapterErr := instance.RequestAdapter(&wgpu.RequestAdapterOptions{
		PowerPreference: wgpu.PowerPreferenceHighPerformance,
	})
	if adapterErr != nil {
		instance.Release()
		return nil, fmt.Errorf("webgpu: failed to request adapter: %w", adapterErr)
	}

	device, deviceErr := adapter.RequestDevice(nil)
	if deviceErr != nil {
		adapter.Release()
		instance.Release()
		return nil, fmt.Errorf("webgpu: failed to request device: %w", deviceErr)
	}

	queue := device.GetQueue()
	if queue == nil {
		device.Release()
		adapter.Release()
		instance.Release()
		return nil, fmt.Errorf("webgpu: failed to get queue")
	}

	b := &Backend{
		instance:  instance,
		adapter:   adapter,
		device:    device,
		queue:     queue,
		shaders:   make(map[string]*wgpu.ShaderModule),
		pipelines: make(map[string]*wgpu.ComputePipeline),
		reg:       kernels.NewRegistry(BackendName),
	}
	b.reg.Register(&dotKernel{b: b})
	b.reg.Register(&binaryKernel{b: b, name: kernels.AddName, shader: addShader})
	b.reg.Register(&binaryKernel{b: b, name: kernels.SubtractName, shader: subShader})
	b.reg.Register(&binaryKernel{b: b, name: kernels.MultiplyName, shader: mulShader})
	b.reg.Register(&binaryKernel{b: b, name: kernels.DivideName, shader: divShader})
	return b, nil
}

// Name returns the backend's registry name.
func (b *Backend) Name() string { return BackendName }

// Device returns tensor.WebGPU.
func (b *Backend) Device() tensor.Device { return tensor.WebGPU }

// Kernels returns the backend's kernel table.
func (b *Backend) Kernels() *kernels.Registry { return b.reg }

// Release frees the GPU resources. The backend is unusable afterwards.
func (b *Backend) Release() {
	b.mu.Lock()
	defer b.mu.Unlock()
	for _, p := range b.pipelines {
		p.Release()
	}
	for _, s := range b.shaders {
		s.Release()
	}
	b.pipelines = nil
	b.shaders = nil
	if b.device != nil {
		b.device.Release()
	}
	if b.adapter != nil {
		b.adapter.Release()
	}
	if b.instance != nil {
		b.instance.Release()
	}
}

// pipelineFor compiles and caches the shader and compute pipeline for the
// named kernel.
func (b *Backend) pipelineFor(name, code string) *wgpu.ComputePipeline {
	b.mu.RLock()
	if p, ok := b.pipelines[name]; ok {
		b.mu.RUnlock()
		return p
	}
	b.mu.RUnlock()

	b.mu.Lock()
	defer b.mu.Unlock()
	if p, ok := b.pipelines[name]; ok {
		return p
	}
	shader := b.device.CreateShaderModuleWGSL(code)
	b.shaders[name] = shader
	pipeline := b.device.CreateComputePipelineSimple(nil, shader, "main")
	b.pipelines[name] = pipeline
	return pipeline
}

// createBuffer uploads data into a fresh storage buffer.
func (b *Backend) createBuffer(data []byte, usage wgpu.BufferUsage) *wgpu.Buffer {
	size := uint64(len(data))
	buffer := b.device.CreateBuffer(&wgpu.BufferDescriptor{
		Usage:            usage,
		Size:             size,
		MappedAtCreation: wgpu.True,
	})
	mapped := unsafe.Slice((*byte)(buffer.GetMappedRange(0, size)), size)
	copy(mapped, data)
	buffer.Unmap()
	return buffer
}

// createUniformBuffer uploads a uniform block, padded to the required
// 16-byte alignment.
func (b *Backend) createUniformBuffer(data []byte) *wgpu.Buffer {
	size := (uint64(len(data)) + 15) &^ 15
	buffer := b.device.CreateBuffer(&wgpu.BufferDescriptor{
		Usage:            wgpu.BufferUsageUniform | wgpu.BufferUsageCopyDst,
		Size:             size,
		MappedAtCreation: wgpu.True,
	})
	mapped := unsafe.Slice((*byte)(buffer.GetMappedRange(0, size)), size)
	copy(mapped, data)
	buffer.Unmap()
	return buffer
}

// readBuffer copies a storage buffer back to host memory via a staging
// buffer, since storage buffers cannot be mapped directly.
func (b *Backend) readBuffer(src *wgpu.Buffer, size uint64) ([]byte, error) {
	staging := b.device.CreateBuffer(&wgpu.BufferDescriptor{
		Usage: wgpu.BufferUsageMapRead | wgpu.BufferUsageCopyDst,
		Size:  size,
	})
	defer staging.Release()

	encoder := b.device.CreateCommandEncoder(nil)
	encoder.CopyBufferToBuffer(src, 0, staging, 0, size)
	b.queue.Submit(encoder.Finish(nil))

	if err := staging.MapAsync(b.device, wgpu.MapModeRead, 0, size); err != nil {
		return nil, fmt.Errorf("webgpu: failed to map staging buffer: %w", err)
	}
	mapped := unsafe.Slice((*byte)(staging.GetMappedRange(0, size)), size)
	out := make([]byte, size)
	copy(out, mapped)
	staging.Unmap()
	return out, nil
}

func init() {
	kernels.RegisterBackend(BackendName, func() (kernels.Backend, error) {
		b, err := New()
		if err != nil {
			return nil, err
		}
		return b, nil
	})
}
