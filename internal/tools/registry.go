package tools

import (
	"sort"
	"sync"

	"google.golang.org/adk/tool"

	"finadvisor/pkg/errors"
)

// Registry stores the tools exposed to agents, by name.
type Registry struct {
	mu    sync.RWMutex
	tools map[string]tool.Tool
}

// NewRegistry constructs an empty tool registry.
func NewRegistry() *Registry {
	return &Registry{
		tools: make(map[string]tool.Tool),
	}
}

// Register adds or replaces a tool under the provided name.
func (r *Registry) Register(name string, t tool.Tool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.tools[name] = t
}

// Get retrieves a tool by name if registered.
func (r *Registry) Get(name string) (tool.Tool, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	t, ok := r.tools[name]
	return t, ok
}

// Resolve returns the named tools in order, failing on the first missing one.
func (r *Registry) Resolve(names ...string) ([]tool.Tool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	resolved := make([]tool.Tool, 0, len(names))
	for _, name := range names {
		t, ok := r.tools[name]
		if !ok {
			return nil, errors.Wrapf(errors.ErrToolNotFound, "tool %q is not registered", name)
		}
		resolved = append(resolved, t)
	}

	return resolved, nil
}

// List returns the sorted names of all registered tools.
func (r *Registry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.tools))
	for name := range r.tools {
		names = append(names, name)
	}
	sort.Strings(names)

	return names
}
