// Package kernels defines the per-operation kernel interfaces Lattice
// backends implement, and the registries that bind concrete kernels to
// backends at runtime.
//
// A kernel is the backend-specific implementation of one numeric operation.
// Backends register their kernels in a Registry under the operation's name
// ("Dot", "QR", ...); the routines layer looks kernels up by name for the
// device the operands live on. Kernels never validate their inputs: shape
// and dtype preconditions are the caller's responsibility, and the routines
// layer is where they are enforced.
package kernels

import (
	"sort"

	"github.com/gomlx/exceptions"
	"k8s.io/klog/v2"
)

// Kernel is implemented by every backend-specific operation implementation.
// Concrete kernel interfaces (DotKernel, QRKernel, ...) embed it and add
// their Call signature.
type Kernel interface {
	// Name returns the operation name the kernel is registered under.
	Name() string
}

// Registry maps operation names to a backend's kernel implementations.
type Registry struct {
	backend string
	kernels map[string]Kernel
}

// NewRegistry creates an empty kernel table for the named backend.
func NewRegistry(backend string) *Registry {
	return &Registry{
		backend: backend,
		kernels: make(map[string]Kernel),
	}
}

// Register binds a kernel under its Name. Registering the same name twice
// is a programming error and panics.
func (r *Registry) Register(k Kernel) {
	name := k.Name()
	if _, dup := r.kernels[name]; dup {
		exceptions.Panicf("kernels: duplicate registration of %q on backend %q", name, r.backend)
	}
	r.kernels[name] = k
	klog.V(2).Infof("kernels: registered %q on backend %q", name, r.backend)
}

// Get returns the kernel registered under name, or nil if the backend does
// not implement the operation.
func (r *Registry) Get(name string) Kernel {
	return r.kernels[name]
}

// Names returns the sorted operation names this backend implements.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.kernels))
	for name := range r.kernels {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Lookup fetches the kernel registered under name and asserts it to the
// concrete kernel interface K. It panics if the backend does not register
// the operation or registers it with an incompatible signature; both are
// dispatch-layer bugs, not runtime conditions callers should handle.
func Lookup[K Kernel](r *Registry, name string) K {
	k := r.kernels[name]
	if k == nil {
		exceptions.Panicf("kernels: backend %q does not implement %q", r.backend, name)
	}
	typed, ok := k.(K)
	if !ok {
		exceptions.Panicf("kernels: backend %q registered %q with the wrong signature (%T)", r.backend, name, k)
	}
	return typed
}
