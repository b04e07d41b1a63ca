package helper

import (
	"github.com/goliatone/go-uicontrol/pkg/control"
	"github.com/goliatone/go-uicontrol/pkg/event"
	"github.com/goliatone/go-uicontrol/pkg/validity"
)

// Validate checks the control against its rules and returns whether the
// report is valid once every handler ran. Each validation event carries
// the same report, so handlers may seed or rewrite states; the result is
// read after aftervalidate, never earlier. Unless justCheck is set the
// report goes to the surface. Panics raised by rules are not recovered.
func (h *Helper) Validate(c control.Valued, justCheck bool) bool {
	core := c.Core()
	report := validity.New()
	core.Fire(event.BeforeValidate, &event.Event{Validity: report})

	for _, rule := range h.rules.CreateRulesByControl(c) {
		report.AddState(rule.Name(), rule.Check(c.Value(), c))
	}

	if !report.IsValid() {
		core.Fire(event.Invalid, &event.Event{Validity: report})
	}
	core.Fire(event.AfterValidate, &event.Event{Validity: report})

	if !justCheck {
		if err := h.ShowValidity(c, report); err != nil {
			h.log(c).Error("show validity failed", "error", err)
		}
	}

	valid := report.IsValid()
	h.observer.ObserveValidation(c, valid)
	return valid
}

// ShowValidity hands the report to the configured surface.
func (h *Helper) ShowValidity(c control.Control, v *validity.Validity) error {
	return h.surface.ShowValidity(c, v)
}
