package widgets

import (
	"github.com/goliatone/go-uicontrol/pkg/control"
	"github.com/goliatone/go-uicontrol/pkg/helper"
	"github.com/goliatone/go-uicontrol/pkg/lifecycle"
)

// Form is a composite control rendered as <form method="POST">. The
// "action" property becomes the action attribute.
type Form struct {
	control.Base
	helper *helper.Helper
}

var (
	_ Renderer          = (*Form)(nil)
	_ control.Composite = (*Form)(nil)
)

func NewForm(h *helper.Helper) *Form {
	f := &Form{helper: h}
	f.Type = TypeForm
	return f
}

func (f *Form) Render() {
	render(f.helper, f, f.paint)
}

func (f *Form) paint() {
	node := mainNode(f, "form")
	if node == nil {
		return
	}
	node.SetAttr("method", "POST")
	if action := f.GetString("action"); action != "" {
		node.SetAttr("action", action)
	}
	node.SetInnerHTML(childrenHTML(f))
}

// HTML repaints a rendered control so the markup reflects its children's
// current state.
func (f *Form) HTML() string {
	if f.LifeCycle == lifecycle.Rendered {
		f.paint()
	}
	return nodeHTML(f)
}

func (f *Form) Dispose() {
	dispose(f.helper, f)
}

// GetData collects the value of every valued descendant, depth-first,
// keyed by its name property, child name or id. Later controls with the
// same key overwrite earlier ones.
func (f *Form) GetData() map[string]any {
	data := map[string]any{}
	walkValued(f, func(v control.Valued) {
		data[fieldName(v)] = v.Value()
	})
	return data
}

// SetValues assigns values to descendants that accept text by field name
// and returns how many were updated.
func (f *Form) SetValues(values map[string]string) int {
	updated := 0
	walkValued(f, func(v control.Valued) {
		setter, ok := v.(valueSetter)
		if !ok {
			return
		}
		if value, found := values[fieldName(v)]; found {
			setter.SetValue(value)
			updated++
		}
	})
	return updated
}

// Validate validates every valued descendant and reports whether all of
// them passed. Every input is validated even after a failure so each one
// shows its own report.
func (f *Form) Validate(justCheck bool) bool {
	valid := true
	walkValued(f, func(v control.Valued) {
		var ok bool
		if self, has := v.(validator); has {
			ok = self.Validate(justCheck)
		} else {
			ok = f.helper.Validate(v, justCheck)
		}
		valid = valid && ok
	})
	return valid
}

// ApplyValidations sets rule specs on descendants by field name and returns
// how many controls received rules. Specs replace the control's existing
// ones.
func (f *Form) ApplyValidations(specs map[string][]control.RuleSpec) int {
	applied := 0
	walkValued(f, func(v control.Valued) {
		if list, ok := specs[fieldName(v)]; ok {
			v.Core().Validations = append([]control.RuleSpec(nil), list...)
			applied++
		}
	})
	return applied
}

type valueSetter interface {
	SetValue(value string)
}

// validator is implemented by inputs that sequence their own validation.
type validator interface {
	Validate(justCheck bool) bool
}

func walkValued(c control.Control, visit func(control.Valued)) {
	for _, child := range c.Core().Children {
		if child == nil {
			continue
		}
		if v, ok := child.(control.Valued); ok {
			visit(v)
		}
		walkValued(child, visit)
	}
}
