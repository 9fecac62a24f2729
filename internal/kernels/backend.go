package kernels

import (
	"os"
	"sort"
	"sync"

	"github.com/gomlx/exceptions"
	"k8s.io/klog/v2"

	"github.com/lattice-ml/lattice/internal/tensor"
)

// Backend is a compute backend: a device plus the kernel table that
// implements operations on it.
type Backend interface {
	// Name returns the backend's registry name, e.g. "cpu".
	Name() string

	// Device returns the device the backend's kernels compute on.
	Device() tensor.Device

	// Kernels returns the backend's kernel table.
	Kernels() *Registry
}

// Constructor builds a Backend. Construction may fail (e.g. a GPU backend
// without a usable adapter).
type Constructor func() (Backend, error)

// EnvBackend is the environment variable naming the default backend.
// When unset, the first registered backend is used.
const EnvBackend = "LATTICE_BACKEND"

var (
	registryMu   sync.Mutex
	constructors = make(map[string]Constructor)
	firstName    string
)

// RegisterBackend makes a backend available to NewBackend by name.
// Backends call this from their package init.
func RegisterBackend(name string, ctor Constructor) {
	registryMu.Lock()
	defer registryMu.Unlock()
	if _, dup := constructors[name]; dup {
		exceptions.Panicf("kernels: backend %q registered twice", name)
	}
	if len(constructors) == 0 {
		firstName = name
	}
	constructors[name] = ctor
	klog.V(1).Infof("kernels: backend %q available", name)
}

// BackendNames returns the sorted names of the registered backends.
func BackendNames() []string {
	registryMu.Lock()
	defer registryMu.Unlock()
	names := make([]string, 0, len(constructors))
	for name := range constructors {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// NewBackend constructs the default backend: the one named by the
// LATTICE_BACKEND environment variable if set, otherwise the first
// backend registered.
func NewBackend() (Backend, error) {
	if name := os.Getenv(EnvBackend); name != "" {
		return NewBackendByName(name)
	}
	registryMu.Lock()
	name := firstName
	registryMu.Unlock()
	if name == "" {
		exceptions.Panicf(`kernels: no backends registered -- import one, e.g. _ "github.com/lattice-ml/lattice/backend/cpu"`)
	}
	return NewBackendByName(name)
}

// NewBackendByName constructs the named backend. It panics if the name was
// never registered (a wiring error) and returns an error if construction
// itself fails (a runtime condition, e.g. missing GPU).
func NewBackendByName(name string) (Backend, error) {
	registryMu.Lock()
	ctor, ok := constructors[name]
	registryMu.Unlock()
	if !ok {
		exceptions.Panicf("kernels: unknown backend %q (registered: %v)", name, BackendNames())
	}
	b, err := ctor()
	if err != nil {
		return nil, err
	}
	klog.V(1).Infof("kernels: selected backend %q on %s", b.Name(), b.Device())
	return b, nil
}
