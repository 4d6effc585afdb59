package backend

import "sync"

// Recommended carries the cost parameters a provider advertises for
// common workloads, mirroring the moderate/interactive profiles of the
// reference argon2id implementation.
type Recommended struct {
	ModerateOps    uint32
	InteractiveMem uint64
}

// Backend is a resolved hashing capability.
//
// Each operation handle may be nil when the deployed provider does not
// implement it; callers check the handle they need before invoking it.
// Backend values are immutable after resolution and safe to share across
// goroutines.
type Backend struct {
	Name        string
	Hash        func(plaintext string, opsLimit uint32, memLimit uint64) (string, error)
	Verify      func(encoded, plaintext string) (bool, error)
	NeedsRehash func(encoded string, opsLimit uint32, memLimit uint64) (bool, error)
	Recommended Recommended
}

// Provider describes one way of obtaining a [Backend]: a pure
// availability probe and a constructor invoked only when the probe
// passes. Probe must not hash.
type Provider struct {
	Name  string
	Probe func() bool
	Build func() Backend
}

// Registry holds providers in priority order and resolves the first one
// whose probe passes.
type Registry struct {
	providers []Provider
}

// NewRegistry builds a registry from providers in priority order.
func NewRegistry(providers ...Provider) *Registry {
	return &Registry{providers: providers}
}

// Resolve returns the backend of the first available provider. The
// second return value is false when no provider reports availability.
func (r *Registry) Resolve() (Backend, bool) {
	for _, p := range r.providers {
		if p.Probe != nil && p.Probe() {
			return p.Build(), true
		}
	}
	return Backend{}, false
}

// Supported reports whether any provider is available. It is a pure
// query: probes run fresh on every call and perform no hashing.
func (r *Registry) Supported() bool {
	for _, p := range r.providers {
		if p.Probe != nil && p.Probe() {
			return true
		}
	}
	return false
}

var (
	defaultOnce    sync.Once
	defaultBackend Backend
	defaultOK      bool
)

func defaultRegistry() *Registry {
	return NewRegistry(NativeProvider(), FallbackProvider())
}

// Default resolves the process-wide backend: the native provider first,
// then the fallback. The resolution is computed once and reused for the
// process lifetime.
func Default() (Backend, bool) {
	defaultOnce.Do(func() {
		defaultBackend, defaultOK = defaultRegistry().Resolve()
	})
	return defaultBackend, defaultOK
}

// Supported reports whether any default provider is available, without
// resolving or caching. Repeated calls return the same value within one
// process since probes are deterministic.
func Supported() bool {
	return defaultRegistry().Supported()
}
