// Package surface presents validity reports to the user: through the
// logger, an interactive terminal prompt or inline markup written into an
// element.
package surface

import (
	"errors"

	"github.com/goliatone/go-uicontrol/internal/logging"
	"github.com/goliatone/go-uicontrol/pkg/control"
	"github.com/goliatone/go-uicontrol/pkg/interfaces"
	"github.com/goliatone/go-uicontrol/pkg/rules"
	"github.com/goliatone/go-uicontrol/pkg/validity"
)

// Surface shows a validity report for a control.
type Surface interface {
	ShowValidity(c control.Control, v *validity.Validity) error
}

// Messages returns the text a surface shows: the custom message when set,
// otherwise every failing state's message.
func Messages(v *validity.Validity) []string {
	if v == nil {
		return nil
	}
	if custom := v.CustomMessage(); custom != "" {
		return []string{custom}
	}
	return v.Messages()
}

// Log writes reports to a logger. Invalid reports log at warn, valid ones at
// debug.
type Log struct {
	logger interfaces.Logger
}

// NewLog returns a Log surface; a nil logger drops everything.
func NewLog(logger interfaces.Logger) *Log {
	if logger == nil {
		logger = logging.NoOp()
	}
	return &Log{logger: logger}
}

func (l *Log) ShowValidity(c control.Control, v *validity.Validity) error {
	core := c.Core()
	if v == nil || v.IsValid() {
		l.logger.Debug("control valid", "control_id", core.ID, "control_type", core.Type)
		return nil
	}
	l.logger.Warn("control invalid",
		"control_id", core.ID,
		"control_type", core.Type,
		"title", rules.Title(c),
		"state", v.ValidState(),
		"messages", Messages(v),
	)
	return nil
}

// Multi fans a report out to every surface and joins their errors.
type Multi []Surface

func (m Multi) ShowValidity(c control.Control, v *validity.Validity) error {
	var errs []error
	for _, s := range m {
		if s == nil {
			continue
		}
		if err := s.ShowValidity(c, v); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
