// Package uicontrol re-exports the control lifecycle core so hosts can wire
// a helper, a control registry and a logging provider from one import.
package uicontrol

import (
	"github.com/goliatone/go-uicontrol/internal/logging/gologger"
	"github.com/goliatone/go-uicontrol/pkg/config"
	"github.com/goliatone/go-uicontrol/pkg/control"
	"github.com/goliatone/go-uicontrol/pkg/helper"
	"github.com/goliatone/go-uicontrol/pkg/interfaces"
	"github.com/goliatone/go-uicontrol/pkg/widgets"
)

// Control is the contract the lifecycle helper drives.
type Control = control.Control

// Base carries the state every control embeds.
type Base = control.Base

// Properties are the options handed to a control at init time.
type Properties = control.Properties

// RuleSpec declares a validation rule for a control.
type RuleSpec = control.RuleSpec

// Helper implements the lifecycle contract.
type Helper = helper.Helper

// Config holds class prefixes and logging settings.
type Config = config.Config

// Layout describes a control tree to build.
type Layout = widgets.Layout

// NewHelper exposes the helper constructor from the top-level module.
func NewHelper(options ...helper.Option) *helper.Helper {
	return helper.New(options...)
}

// NewRegistry returns a control registry with the built-in widgets bound to
// h.
func NewRegistry(h *helper.Helper) *widgets.Registry {
	return widgets.NewRegistry(h)
}

// NewLoggerProvider builds a go-logger backed provider from the logging
// section of cfg.
func NewLoggerProvider(cfg Config) (interfaces.LoggerProvider, error) {
	return gologger.NewProvider(gologger.OptionsFrom(cfg.Logging))
}

// New wires a helper and registry from cfg: go-logger module loggers, the
// configured class prefixes and any extra helper options.
func New(cfg Config, options ...helper.Option) (*widgets.Registry, error) {
	provider, err := NewLoggerProvider(cfg)
	if err != nil {
		return nil, err
	}
	base := []helper.Option{
		helper.WithConfig(cfg),
		helper.WithLoggerProvider(provider),
	}
	return widgets.NewRegistry(helper.New(append(base, options...)...)), nil
}
