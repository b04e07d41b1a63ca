// Package extension merges per-control extensions with globally registered
// ones.
package extension

import (
	"fmt"
	"strings"
	"sync"
)

// Extension is a pluggable behaviour attached to a control, discriminated
// by its type. A control carries at most one extension per type.
type Extension interface {
	Type() string
}

// Activator is implemented by extensions that hook into the control they
// are attached to. Widgets call Activate after rendering and Inactivate on
// dispose.
type Activator interface {
	Activate(target any)
	Inactivate(target any)
}

// Factory builds a fresh extension instance.
type Factory func() Extension

// Merge appends globals to instance and removes later duplicates of the
// same type, so per-instance extensions declared first win. Nil entries
// are dropped. The returned slice reuses instance's backing array.
func Merge(instance []Extension, globals []Extension) []Extension {
	merged := append(instance, globals...)
	seen := make(map[string]struct{}, len(merged))
	out := merged[:0]
	for _, ext := range merged {
		if ext == nil {
			continue
		}
		kind := ext.Type()
		if _, exists := seen[kind]; exists {
			continue
		}
		seen[kind] = struct{}{}
		out = append(out, ext)
	}
	clear(merged[len(out):])
	return out
}

type entry struct {
	kind    string
	factory Factory
}

// Registry tracks extensions applied to every control. Factories run on
// each CreateGlobalExtensions call so controls never share instances.
type Registry struct {
	mu      sync.RWMutex
	entries []entry
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{}
}

// Register adds a global extension factory. Duplicate types are rejected.
func (r *Registry) Register(kind string, factory Factory) error {
	kind = strings.TrimSpace(kind)
	if kind == "" {
		return fmt.Errorf("extension: type is required")
	}
	if factory == nil {
		return fmt.Errorf("extension: factory for %q is nil", kind)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.entries {
		if existing.kind == kind {
			return fmt.Errorf("extension: type %q already registered", kind)
		}
	}
	r.entries = append(r.entries, entry{kind: kind, factory: factory})
	return nil
}

// MustRegister panics on registration failure. Useful for init-time wiring.
func (r *Registry) MustRegister(kind string, factory Factory) {
	if err := r.Register(kind, factory); err != nil {
		panic(err)
	}
}

// Unregister removes a global extension type.
func (r *Registry) Unregister(kind string) {
	kind = strings.TrimSpace(kind)
	r.mu.Lock()
	defer r.mu.Unlock()
	for idx, existing := range r.entries {
		if existing.kind == kind {
			r.entries = append(r.entries[:idx:idx], r.entries[idx+1:]...)
			return
		}
	}
}

// Types lists registered types in registration order.
func (r *Registry) Types() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]string, 0, len(r.entries))
	for _, existing := range r.entries {
		out = append(out, existing.kind)
	}
	return out
}

// CreateGlobalExtensions instantiates every registered extension in
// registration order. Factories returning nil are skipped.
func (r *Registry) CreateGlobalExtensions() []Extension {
	if r == nil {
		return nil
	}
	r.mu.RLock()
	entries := append([]entry(nil), r.entries...)
	r.mu.RUnlock()

	out := make([]Extension, 0, len(entries))
	for _, existing := range entries {
		if ext := existing.factory(); ext != nil {
			out = append(out, ext)
		}
	}
	return out
}
