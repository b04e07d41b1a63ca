// Package control models the state every widget carries: identity, tree
// links, lifecycle phase, named states, events, extensions and the view
// context it belongs to. Widgets embed Base and implement the remaining
// Control methods; the lifecycle helper drives Base through its phases.
package control

import (
	"github.com/goliatone/go-uicontrol/pkg/dom"
	"github.com/goliatone/go-uicontrol/pkg/event"
	"github.com/goliatone/go-uicontrol/pkg/extension"
	"github.com/goliatone/go-uicontrol/pkg/lifecycle"
)

// Properties are the options handed to a control at init time.
type Properties map[string]any

// RuleSpec declares a validation rule for a control. Numeric bounds and
// length limits use Params["value"]; pattern rules use Params["pattern"];
// enum rules use Params["values"] as a comma separated list.
type RuleSpec struct {
	Kind   string            `json:"kind" yaml:"kind"`
	Params map[string]string `json:"params,omitempty" yaml:"params,omitempty"`
}

// ViewContext is a registry a control belongs to.
type ViewContext interface {
	Add(c Control)
	Remove(c Control)
	Get(id string) (Control, bool)
}

// Control is the contract the lifecycle helper drives.
type Control interface {
	Core() *Base
	// SetProperties applies init options. Widgets override it to accept
	// their own keys and delegate the rest to Base.SetProperties.
	SetProperties(props Properties) error
	// Dispose tears the control down. Implementations sequence
	// BeforeDispose, Dispose and AfterDispose on their helper.
	Dispose()
}

// Valued is implemented by controls that can be validated.
type Valued interface {
	Control
	Value() any
}

// Composite is implemented by controls that manage children. Base
// satisfies the child methods, so any widget embedding Base is composite.
type Composite interface {
	Control
	AddChild(child Control, name string)
	RemoveChild(child Control)
	GetChild(name string) (Control, bool)
}

// Base carries the shared control state.
type Base struct {
	ID        string
	Type      string
	Skin      string
	ChildName string

	Main dom.Element

	Parent        Control
	Children      []Control
	ChildrenIndex map[string]Control

	LifeCycle  lifecycle.Phase
	States     map[string]bool
	Events     *event.Emitter
	Extensions []extension.Extension

	Validations []RuleSpec
	Properties  Properties

	// PendingViewContext passes an explicit view context to init. It is
	// cleared once the control is bound; use ViewContext afterwards.
	PendingViewContext ViewContext

	self        Control
	viewContext ViewContext
	initialized bool
	disposing   bool
}

// Core returns the receiver so embedding types satisfy Control.
func (c *Base) Core() *Base {
	return c
}

// Bind records the control that embeds this core. The lifecycle helper
// calls it during init; tree and view-context operations use the bound
// control as the public identity.
func (c *Base) Bind(self Control) {
	c.self = self
}

// Self returns the bound outer control.
func (c *Base) Self() Control {
	return c.self
}

// Reset allocates fresh tree, state and event storage.
func (c *Base) Reset() {
	c.Children = []Control{}
	c.ChildrenIndex = map[string]Control{}
	c.States = map[string]bool{}
	c.Events = event.NewEmitter()
}

// MarkInitialized records that init completed.
func (c *Base) MarkInitialized() {
	c.initialized = true
}

// Initialized reports whether init completed.
func (c *Base) Initialized() bool {
	return c.initialized
}

// BeginDispose marks the core as disposing. It returns false when disposal
// already started, which is how reference cycles are cut.
func (c *Base) BeginDispose() bool {
	if c.disposing {
		return false
	}
	c.disposing = true
	return true
}

// Disposing reports whether disposal started.
func (c *Base) Disposing() bool {
	return c.disposing
}

// Fire dispatches an event with the bound control as target.
func (c *Base) Fire(eventType string, evt *event.Event) *event.Event {
	if evt == nil {
		evt = &event.Event{}
	}
	if evt.Target == nil {
		evt.Target = c.target()
	}
	return c.Events.Fire(eventType, evt)
}

// On registers an event handler.
func (c *Base) On(eventType string, handler event.Handler) func() {
	if c.Events == nil {
		c.Events = event.NewEmitter()
	}
	return c.Events.On(eventType, handler)
}

// ViewContext returns the context the control is bound to.
func (c *Base) ViewContext() ViewContext {
	return c.viewContext
}

// SetViewContext moves the control, and its children, to ctx.
func (c *Base) SetViewContext(ctx ViewContext) {
	if c.viewContext == ctx {
		return
	}
	self := c.target()
	if c.viewContext != nil {
		c.viewContext.Remove(self)
	}
	c.viewContext = ctx
	if ctx != nil {
		ctx.Add(self)
	}
	for _, child := range c.Children {
		if child != nil {
			child.Core().SetViewContext(ctx)
		}
	}
}

// AddState sets a named state flag.
func (c *Base) AddState(name string) {
	if c.States == nil {
		c.States = map[string]bool{}
	}
	c.States[name] = true
}

// RemoveState clears a named state flag.
func (c *Base) RemoveState(name string) {
	delete(c.States, name)
}

// HasState reports whether a named state is set.
func (c *Base) HasState(name string) bool {
	return c.States[name]
}

func (c *Base) target() Control {
	if c.self != nil {
		return c.self
	}
	return coreControl{core: c}
}

// coreControl lets an unbound core act as a Control for registries.
type coreControl struct {
	core *Base
}

func (u coreControl) Core() *Base                          { return u.core }
func (u coreControl) SetProperties(props Properties) error { return u.core.SetProperties(props) }
func (u coreControl) Dispose()                             {}
