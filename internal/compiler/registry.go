package compiler

import (
	"fmt"
	"sort"
)

// Registry maps target ids to adapters.
//
// A Registry is built by the caller and passed to Compile; there is no
// process-wide registry. It is not safe for concurrent Register calls, but
// lookups on a fully built registry may run concurrently.
type Registry struct {
	adapters map[string]Adapter
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{adapters: make(map[string]Adapter)}
}

// DefaultRegistry returns a new registry holding every built-in adapter.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	for _, a := range builtinAdapters() {
		// Built-in ids are unique.
		_ = r.Register(a)
	}
	return r
}

func builtinAdapters() []Adapter {
	return []Adapter{
		AgentsMDAdapter(),
		ClaudeCodeAdapter(),
		GeminiCLIAdapter(),
		CursorRulesAdapter(),
		WindsurfRulesAdapter(),
		CopilotAdapter(),
	}
}

// Register adds an adapter. It fails when the id is empty, already
// registered, or the adapter has no compile function.
func (r *Registry) Register(a Adapter) error {
	if a.ID == "" {
		return fmt.Errorf("registering adapter: empty id")
	}
	if a.Compile == nil {
		return fmt.Errorf("registering adapter %q: nil compile function", a.ID)
	}
	if _, exists := r.adapters[a.ID]; exists {
		return fmt.Errorf("registering adapter %q: already registered", a.ID)
	}
	r.adapters[a.ID] = a
	return nil
}

// Lookup returns the adapter registered under id.
func (r *Registry) Lookup(id string) (Adapter, bool) {
	a, ok := r.adapters[id]
	return a, ok
}

// List returns all adapters sorted by id.
func (r *Registry) List() []Adapter {
	out := make([]Adapter, 0, len(r.adapters))
	for _, a := range r.adapters {
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// IDs returns the registered target ids, sorted.
func (r *Registry) IDs() []string {
	ids := make([]string, 0, len(r.adapters))
	for id := range r.adapters {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
