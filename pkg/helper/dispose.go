package helper

import (
	"github.com/goliatone/go-uicontrol/pkg/control"
)

// Dispose tears down the control's subtree depth-first, in child order,
// then releases the children, the main element, the parent link and the
// view-context membership. It fires no events; widgets sequence
// BeforeDispose, Dispose and AfterDispose. A control reached again while
// its disposal is running is skipped, which cuts parent/child cycles.
func (h *Helper) Dispose(c control.Control) {
	core := c.Core()
	if !core.BeginDispose() {
		h.log(c).Warn("dispose skipped: already disposing")
		return
	}

	children := core.Children
	for _, child := range children {
		if child == nil {
			continue
		}
		child.Dispose()
	}
	core.Children = nil
	core.ChildrenIndex = nil
	core.Main = nil

	if parent := core.Parent; parent != nil {
		if pc := parent.Core(); !pc.Disposing() {
			pc.RemoveChild(c)
		}
		core.Parent = nil
	}

	core.SetViewContext(nil)
	h.log(c).Debug("control disposed", "children", len(children))
}
