// Package logging scopes loggers to the module's components and supplies a
// no-op fallback.
package logging

import (
	"context"
	"maps"
	"strings"

	"github.com/goliatone/go-uicontrol/pkg/interfaces"
)

// Module names requested from a provider.
const (
	RootModule    = "uicontrol"
	HelperModule  = "uicontrol.helper"
	RulesModule   = "uicontrol.rules"
	SurfaceModule = "uicontrol.surface"
	WidgetsModule = "uicontrol.widgets"
)

const fieldModule = "module"

// ModuleLogger returns the provider's logger for module annotated with a
// module field. Without a provider it returns NoOp.
func ModuleLogger(provider interfaces.LoggerProvider, module string) interfaces.Logger {
	module = strings.TrimSpace(module)
	if module == "" {
		module = RootModule
	}

	var logger interfaces.Logger = noopLogger{}
	if provider != nil {
		if provided := provider.GetLogger(module); provided != nil {
			logger = provided
		}
	}
	return WithFields(logger, map[string]any{fieldModule: module})
}

// Scoped annotates an existing logger with a module field. Nil loggers
// become NoOp.
func Scoped(logger interfaces.Logger, module string) interfaces.Logger {
	if logger == nil {
		return NoOp()
	}
	return WithFields(logger, map[string]any{fieldModule: module})
}

// WithFields attaches fields when the logger supports FieldsLogger and
// returns it unchanged otherwise.
func WithFields(logger interfaces.Logger, fields map[string]any) interfaces.Logger {
	if logger == nil || len(fields) == 0 {
		return logger
	}
	fieldsLogger, ok := logger.(interfaces.FieldsLogger)
	if !ok {
		return logger
	}
	copied := make(map[string]any, len(fields))
	maps.Copy(copied, fields)
	return fieldsLogger.WithFields(copied)
}

// ControlFields returns the fields identifying a control in log entries.
func ControlFields(id, typ string) map[string]any {
	fields := map[string]any{}
	if id != "" {
		fields["control_id"] = id
	}
	if typ != "" {
		fields["control_type"] = typ
	}
	return fields
}

// NoOp returns a logger that drops every entry.
func NoOp() interfaces.Logger {
	return noopLogger{}
}

type noopLogger struct{}

var _ interfaces.Logger = noopLogger{}
var _ interfaces.FieldsLogger = noopLogger{}

func (noopLogger) Trace(string, ...any) {}
func (noopLogger) Debug(string, ...any) {}
func (noopLogger) Info(string, ...any)  {}
func (noopLogger) Warn(string, ...any)  {}
func (noopLogger) Error(string, ...any) {}
func (noopLogger) Fatal(string, ...any) {}

func (n noopLogger) WithFields(map[string]any) interfaces.Logger { return n }

func (n noopLogger) WithContext(context.Context) interfaces.Logger { return n }
