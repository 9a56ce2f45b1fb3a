// Package registry maps tool names to the tools that implement them.
package registry

import (
	"sync"

	"github.com/example/imagetweaks/internal/tool"
)

// Registry is a name to tool lookup table that remembers registration order.
type Registry struct {
	mu    sync.RWMutex
	tools map[string]tool.Tool
	order []string
}

// New creates an empty registry.
func New() *Registry {
	return &Registry{tools: make(map[string]tool.Tool)}
}

// Register stores t under its name. A nil tool is a *tool.ConfigError. Registering a name twice replaces the
// earlier tool but keeps its position in Names.
func (r *Registry) Register(t tool.Tool) error {
	if t == nil {
		return &tool.ConfigError{Component: "registry", Field: "tool"}
	}
	desc := t.Descriptor()
	if err := desc.Validate(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.tools[desc.Name]; !ok {
		r.order = append(r.order, desc.Name)
	}
	r.tools[desc.Name] = t
	return nil
}

// Get returns the tool registered under name.
func (r *Registry) Get(name string) (tool.Tool, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	t, ok := r.tools[name]
	return t, ok
}

// Names lists the registered tool names in registration order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]string, len(r.order))
	copy(out, r.order)
	return out
}

// Len returns the number of registered tools.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.tools)
}
