// Package widgets provides a control-type registry and a few reference
// controls (Panel, Form, TextBox) that drive the lifecycle helper the way
// concrete widgets do.
package widgets

import (
	"strings"

	"github.com/goliatone/go-uicontrol/pkg/control"
	"github.com/goliatone/go-uicontrol/pkg/dom"
	"github.com/goliatone/go-uicontrol/pkg/extension"
	"github.com/goliatone/go-uicontrol/pkg/helper"
	"github.com/goliatone/go-uicontrol/pkg/lifecycle"
)

// Renderer is implemented by controls that produce markup.
type Renderer interface {
	control.Control
	// Render runs the full render sequence the first time and repaints
	// afterwards.
	Render()
	// HTML returns the markup of the last render, or "" when the control
	// has no main element.
	HTML() string
}

// render sequences BeforeRender, paint, InitMain, extension activation and
// AfterRender for an Inited control. A rendered control is only repainted.
func render(h *helper.Helper, c control.Control, paint func()) {
	switch c.Core().LifeCycle {
	case lifecycle.Inited:
		h.BeforeRender(c)
		paint()
		h.InitMain(c)
		activate(c)
		h.AfterRender(c)
	case lifecycle.Rendered:
		paint()
	}
}

// dispose sequences BeforeDispose, extension inactivation, the helper's
// teardown and AfterDispose. A control already being disposed is handed
// straight to the helper, which skips it.
func dispose(h *helper.Helper, c control.Control) {
	core := c.Core()
	if core.Disposing() {
		h.Dispose(c)
		return
	}
	h.BeforeDispose(c)
	inactivate(c)
	h.Dispose(c)
	h.AfterDispose(c)
}

func activate(c control.Control) {
	for _, ext := range c.Core().Extensions {
		if activator, ok := ext.(extension.Activator); ok {
			activator.Activate(c)
		}
	}
}

func inactivate(c control.Control) {
	for _, ext := range c.Core().Extensions {
		if activator, ok := ext.(extension.Activator); ok {
			activator.Inactivate(c)
		}
	}
}

// mainNode returns the control's main element as a Node, creating one with
// tag when the control has none. Hosts that bind another Element get nil.
func mainNode(c control.Control, tag string) *dom.Node {
	core := c.Core()
	if core.Main == nil {
		node := dom.NewNode(tag)
		core.Main = node
		return node
	}
	node, _ := core.Main.(*dom.Node)
	return node
}

// childrenHTML renders every child that can render and concatenates the
// markup in child order.
func childrenHTML(c control.Control) string {
	var b strings.Builder
	for _, child := range c.Core().Children {
		r, ok := child.(Renderer)
		if !ok {
			continue
		}
		r.Render()
		b.WriteString(r.HTML())
	}
	return b.String()
}

func nodeHTML(c control.Control) string {
	if node, ok := c.Core().Main.(*dom.Node); ok && node != nil {
		return node.Render()
	}
	return ""
}

// fieldName is the key a valued control reports its value under.
func fieldName(c control.Control) string {
	core := c.Core()
	if name := strings.TrimSpace(core.GetString("name")); name != "" {
		return name
	}
	if core.ChildName != "" {
		return core.ChildName
	}
	return core.ID
}
