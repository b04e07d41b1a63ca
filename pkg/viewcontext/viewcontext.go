// Package viewcontext groups controls into named registries used for bulk
// lookup and teardown.
package viewcontext

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/goliatone/go-uicontrol/pkg/control"
)

// DefaultName names the context controls join when none is supplied.
const DefaultName = "default"

// Context is a registry of controls keyed by id.
type Context struct {
	name string

	mu       sync.RWMutex
	controls map[string]control.Control
	order    []string
}

var _ control.ViewContext = (*Context)(nil)

// New creates an empty context.
func New(name string) *Context {
	return &Context{
		name:     strings.TrimSpace(name),
		controls: make(map[string]control.Control),
	}
}

func (c *Context) Name() string {
	return c.name
}

// Add registers a control under its id. Controls without an id are
// ignored; a later control with the same id replaces the earlier one.
func (c *Context) Add(ctl control.Control) {
	if ctl == nil {
		return
	}
	id := ctl.Core().ID
	if id == "" {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, exists := c.controls[id]; !exists {
		c.order = append(c.order, id)
	}
	c.controls[id] = ctl
}

// Remove unregisters a control. Unknown controls, and controls whose id is
// now held by a different control, are ignored.
func (c *Context) Remove(ctl control.Control) {
	if ctl == nil {
		return
	}
	core := ctl.Core()
	c.mu.Lock()
	defer c.mu.Unlock()
	existing, exists := c.controls[core.ID]
	if !exists || existing.Core() != core {
		return
	}
	id := core.ID
	delete(c.controls, id)
	for idx, existing := range c.order {
		if existing == id {
			c.order = append(c.order[:idx:idx], c.order[idx+1:]...)
			break
		}
	}
}

// Get looks a control up by id.
func (c *Context) Get(id string) (control.Control, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	ctl, ok := c.controls[id]
	return ctl, ok
}

// Len reports the number of registered controls.
func (c *Context) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.controls)
}

// Controls returns the registered controls in registration order.
func (c *Context) Controls() []control.Control {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]control.Control, 0, len(c.order))
	for _, id := range c.order {
		out = append(out, c.controls[id])
	}
	return out
}

// Clean disposes every registered control whose parent is not registered
// here, which tears the context down through the controls' own Dispose.
func (c *Context) Clean() {
	snapshot := c.Controls()
	members := make(map[string]struct{}, len(snapshot))
	for _, ctl := range snapshot {
		members[ctl.Core().ID] = struct{}{}
	}
	for _, ctl := range snapshot {
		if parent := ctl.Core().Parent; parent != nil {
			if _, ok := members[parent.Core().ID]; ok {
				continue
			}
		}
		ctl.Dispose()
	}
}

// Registry owns named contexts and the ambient default.
type Registry struct {
	mu         sync.RWMutex
	contexts   map[string]*Context
	defaultCtx *Context
}

// NewRegistry creates a registry holding a single default context.
func NewRegistry() *Registry {
	def := New(DefaultName)
	return &Registry{
		contexts:   map[string]*Context{DefaultName: def},
		defaultCtx: def,
	}
}

// DefaultViewContext returns the ambient context.
func (r *Registry) DefaultViewContext() control.ViewContext {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.defaultCtx
}

// Default returns the ambient context with its concrete type.
func (r *Registry) Default() *Context {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.defaultCtx
}

// Create registers a new named context.
func (r *Registry) Create(name string) (*Context, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("viewcontext: name is required")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.contexts[name]; exists {
		return nil, fmt.Errorf("viewcontext: context %q already exists", name)
	}
	ctx := New(name)
	r.contexts[name] = ctx
	return ctx, nil
}

// Get returns a named context.
func (r *Registry) Get(name string) (*Context, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	ctx, ok := r.contexts[strings.TrimSpace(name)]
	return ctx, ok
}

// SetDefault makes a registered context the ambient one.
func (r *Registry) SetDefault(name string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	ctx, ok := r.contexts[strings.TrimSpace(name)]
	if !ok {
		return fmt.Errorf("viewcontext: context %q not found", name)
	}
	r.defaultCtx = ctx
	return nil
}

// Names lists registered context names sorted alphabetically.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.contexts))
	for name := range r.contexts {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
