// Package behavior implements the registry-based replacement for
// spec.md §4.4's behavior serializer. Per the design notes (§9), a
// systems-language implementation ships a named factory reference across
// the wire instead of source text: the worker resolves the name against
// a registry populated by explicit registration calls on both ends,
// rather than evaluating transported code.
package behavior

import (
	"fmt"
	"sync"

	"github.com/najoast/actorkit/core"
)

// Factory constructs a fresh Behavior instance. Factories are stateless;
// any per-instance state lives inside the Behavior value they return.
type Factory func() core.Behavior

// Registry maps a behavior name to the factory that constructs it. A
// worker process and its parent must register the same names before any
// create-actor request naming them can be resolved remotely.
type Registry struct {
	mu        sync.RWMutex
	factories map[string]Factory
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{factories: make(map[string]Factory)}
}

// Register adds a factory under name. Registering the same name twice
// with different factories is almost certainly a bug, but last write
// wins, matching the teacher's LoadOrStore-free registration pattern in
// favor of simplicity for a set-up-once registry.
func (r *Registry) Register(name string, factory Factory) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.factories[name] = factory
}

// New constructs a fresh Behavior for name, or ErrBehaviorNotRegistered.
func (r *Registry) New(name string) (core.Behavior, error) {
	r.mu.RLock()
	factory, ok := r.factories[name]
	r.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %q", core.ErrBehaviorNotRegistered, name)
	}
	return factory(), nil
}

// Names returns every registered behavior name, for diagnostics.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.factories))
	for n := range r.factories {
		names = append(names, n)
	}
	return names
}

// defaultRegistry is the process-wide registry cmd/actorworker consults
// when it has no application-specific registry wired in. Applications
// with more than one behavior family should build their own Registry
// instead of relying on process-wide state.
var defaultRegistry = NewRegistry()

// Default returns the process-wide registry.
func Default() *Registry { return defaultRegistry }

// Register adds factory under name in the default registry.
func Register(name string, factory Factory) { defaultRegistry.Register(name, factory) }
