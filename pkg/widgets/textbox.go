package widgets

import (
	"fmt"

	"github.com/goliatone/go-uicontrol/pkg/control"
	"github.com/goliatone/go-uicontrol/pkg/dom"
	"github.com/goliatone/go-uicontrol/pkg/helper"
	"github.com/goliatone/go-uicontrol/pkg/lifecycle"
	"github.com/goliatone/go-uicontrol/pkg/surface"
)

// StateInvalid is the control state set while the last shown validation
// failed.
const StateInvalid = "invalid"

const propValue = "value"

// TextBox is a single-line text input. Its main element is a wrapper div
// holding the input and a validity label that inline surfaces write to.
type TextBox struct {
	control.Base
	helper *helper.Helper

	value    string
	validity *dom.Node
}

var (
	_ Renderer               = (*TextBox)(nil)
	_ control.Valued         = (*TextBox)(nil)
	_ surface.TargetProvider = (*TextBox)(nil)
)

func NewTextBox(h *helper.Helper) *TextBox {
	t := &TextBox{helper: h}
	t.Type = TypeTextBox
	return t
}

// SetProperties takes the "value" key and hands the rest to Base.
func (t *TextBox) SetProperties(props control.Properties) error {
	rest := make(control.Properties, len(props))
	for key, value := range props {
		if key != propValue {
			rest[key] = value
			continue
		}
		switch typed := value.(type) {
		case nil:
			t.value = ""
		case string:
			t.value = typed
		default:
			t.value = fmt.Sprint(typed)
		}
	}
	return t.Base.SetProperties(rest)
}

func (t *TextBox) Value() any {
	return t.value
}

func (t *TextBox) SetValue(value string) {
	t.value = value
}

// ValidityTarget returns the label validation messages are shown in. It is
// nil once the control is disposed.
func (t *TextBox) ValidityTarget() surface.Target {
	if t.Disposing() {
		return nil
	}
	return t.validityNode()
}

func (t *TextBox) validityNode() *dom.Node {
	if t.validity == nil {
		t.validity = dom.NewNode("label")
		t.validity.SetHidden(true)
	}
	return t.validity
}

// Validate runs the helper's validation and keeps the invalid state in
// sync with the shown result.
func (t *TextBox) Validate(justCheck bool) bool {
	valid := t.helper.Validate(t, justCheck)
	if justCheck {
		return valid
	}
	if valid {
		t.helper.RemoveState(t, StateInvalid)
	} else {
		t.helper.AddState(t, StateInvalid)
	}
	return valid
}

func (t *TextBox) Render() {
	render(t.helper, t, t.paint)
}

func (t *TextBox) paint() {
	node := mainNode(t, "div")
	if node == nil {
		return
	}

	input := dom.NewNode("input")
	input.SetID(t.helper.GetID(t, "input"))
	t.helper.AddClass(input, t, "input")
	input.SetAttr("type", "text")
	input.SetAttr("name", fieldName(t))
	input.SetAttr("value", t.value)
	if placeholder := t.GetString("placeholder"); placeholder != "" {
		input.SetAttr("placeholder", placeholder)
	}

	label := t.validityNode()
	label.SetID(t.helper.GetID(t, "validity"))
	t.helper.AddClass(label, t, "validity")
	label.SetAttr("for", input.ID())

	node.SetInnerHTML(input.Render() + label.Render())
}

// HTML repaints a rendered text box first so messages written to the
// validity label since the last render are included.
func (t *TextBox) HTML() string {
	if t.LifeCycle == lifecycle.Rendered {
		t.paint()
	}
	return nodeHTML(t)
}

func (t *TextBox) Dispose() {
	dispose(t.helper, t)
	t.validity = nil
}
