package helper

import (
	"fmt"

	"github.com/goliatone/go-uicontrol/pkg/control"
	"github.com/goliatone/go-uicontrol/pkg/event"
	"github.com/goliatone/go-uicontrol/pkg/extension"
	"github.com/goliatone/go-uicontrol/pkg/lifecycle"
)

// Init prepares a new control: fresh tree, state and event storage, props
// applied through the control's SetProperties, an id, a view context and
// the merged extensions. It runs once, from New; later calls are ignored.
// A failed Init leaves the control uninitialized so it can be retried. The
// phase stays New until AfterInit.
func (h *Helper) Init(c control.Control, props control.Properties) error {
	core := c.Core()
	if core.Initialized() || core.LifeCycle != lifecycle.New {
		h.log(c).Warn("init ignored", "phase", core.LifeCycle.String())
		return nil
	}

	core.Bind(c)
	core.Reset()
	if len(props) > 0 {
		if err := c.SetProperties(props); err != nil {
			return fmt.Errorf("helper: init: %w", err)
		}
	}
	if core.ID == "" {
		core.ID = h.ids.NewID()
	}

	h.InitViewContext(c)
	h.InitExtensions(c)
	core.MarkInitialized()
	h.log(c).Debug("control initialized")
	return nil
}

// AfterInit moves a control initialized by Init to Inited and fires init.
func (h *Helper) AfterInit(c control.Control) {
	core := c.Core()
	if !core.Initialized() || core.LifeCycle != lifecycle.New {
		h.log(c).Debug("afterInit ignored", "phase", core.LifeCycle.String())
		return
	}
	h.transition(c, lifecycle.Inited)
	core.Fire(event.Init, nil)
}

// InitViewContext binds the control to the context passed through
// PendingViewContext, or to the default one, and clears the staging field.
func (h *Helper) InitViewContext(c control.Control) {
	core := c.Core()
	ctx := core.PendingViewContext
	if ctx == nil {
		ctx = h.viewContexts.DefaultViewContext()
	}
	core.PendingViewContext = nil
	core.SetViewContext(ctx)
}

// InitExtensions appends the global extensions to the control's own and
// drops duplicate types, first occurrence winning.
func (h *Helper) InitExtensions(c control.Control) {
	core := c.Core()
	core.Extensions = extension.Merge(core.Extensions, h.extensions.CreateGlobalExtensions())
}

// IsInited reports whether lifecycle-gated operations are active: the
// control is Inited or Rendered.
func (h *Helper) IsInited(c control.Control) bool {
	phase := c.Core().LifeCycle
	return phase == lifecycle.Inited || phase == lifecycle.Rendered
}

// InitMain gives the bound main element an id when it lacks one and
// applies the control classes.
func (h *Helper) InitMain(c control.Control) {
	core := c.Core()
	main := core.Main
	if main == nil || !h.IsInited(c) {
		return
	}
	if main.ID() == "" {
		main.SetID(h.GetID(c, ""))
	}
	h.AddClass(main, c, "")
}

// BeforeRender fires beforerender for an initialized control.
func (h *Helper) BeforeRender(c control.Control) {
	if h.IsInited(c) {
		c.Core().Fire(event.BeforeRender, nil)
	}
}

// AfterRender fires afterrender for an initialized control and moves the
// phase to Rendered. A disposed control stays disposed.
func (h *Helper) AfterRender(c control.Control) {
	if h.IsInited(c) {
		c.Core().Fire(event.AfterRender, nil)
	}
	h.transition(c, lifecycle.Rendered)
}

// BeforeDispose fires beforedispose.
func (h *Helper) BeforeDispose(c control.Control) {
	c.Core().Fire(event.BeforeDispose, nil)
}

// AfterDispose moves the phase to Disposed and fires afterdispose.
func (h *Helper) AfterDispose(c control.Control) {
	h.transition(c, lifecycle.Disposed)
	c.Core().Fire(event.AfterDispose, nil)
}

func (h *Helper) transition(c control.Control, next lifecycle.Phase) {
	core := c.Core()
	previous := core.LifeCycle
	core.LifeCycle = previous.Advance(next)
	if core.LifeCycle == previous {
		return
	}
	h.observer.ObserveTransition(c, core.LifeCycle)
	h.log(c).Trace("lifecycle transition", "from", previous.String(), "to", core.LifeCycle.String())
}
