package helper

import (
	"github.com/goliatone/go-uicontrol/pkg/control"
	"github.com/goliatone/go-uicontrol/pkg/dom"
)

// GetClasses returns the derived class list for the control or one of its
// parts.
func (h *Helper) GetClasses(c control.Control, part string) []string {
	return h.classes.GetClasses(c, part)
}

// GetID returns the element id for the control or one of its parts.
func (h *Helper) GetID(c control.Control, part string) string {
	return h.classes.GetID(c, part)
}

// AddClass applies the derived classes to el.
func (h *Helper) AddClass(el dom.Element, c control.Control, part string) {
	h.classes.AddClass(el, c, part)
}

// RemoveClass removes the derived classes from el.
func (h *Helper) RemoveClass(el dom.Element, c control.Control, part string) {
	h.classes.RemoveClass(el, c, part)
}

// AddState sets a named state on the control and marks its main element
// with the state classes.
func (h *Helper) AddState(c control.Control, state string) {
	c.Core().AddState(state)
	h.classes.AddStateClasses(c, state)
}

// RemoveState clears a named state and its classes.
func (h *Helper) RemoveState(c control.Control, state string) {
	c.Core().RemoveState(state)
	h.classes.RemoveStateClasses(c, state)
}
