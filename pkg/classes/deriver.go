// Package classes derives the DOM class lists and element ids of a control
// from its type, skin and an optional part qualifier.
package classes

import (
	"github.com/goliatone/go-uicontrol/pkg/control"
	"github.com/goliatone/go-uicontrol/pkg/dom"
)

// Configuration keys read by the deriver.
const (
	KeyUIClassPrefix    = "uiClassPrefix"
	KeySkinClassPrefix  = "skinClassPrefix"
	KeyStateClassPrefix = "stateClassPrefix"
)

// IDPrefix starts every derived element id.
const IDPrefix = "ctrl--"

// ConfigSource resolves named configuration values. Missing keys resolve
// to "".
type ConfigSource interface {
	Get(name string) string
}

// Deriver composes class names and ids. Prefixes are read on every call
// so configuration changes apply to subsequent derivations.
type Deriver struct {
	Config ConfigSource
}

// New returns a deriver backed by cfg.
func New(cfg ConfigSource) *Deriver {
	return &Deriver{Config: cfg}
}

// GetClasses returns, in order: <ui>-<type>[-<part>], <ui>-<part> when a
// part is given, and <skin>-<type>-<skin>[-<part>] when the control has a
// skin.
func (d *Deriver) GetClasses(c control.Control, part string) []string {
	core := c.Core()
	suffix := partSuffix(part)
	ui := d.get(KeyUIClassPrefix)

	classes := []string{ui + "-" + core.Type + suffix}
	if suffix != "" {
		classes = append(classes, ui+suffix)
	}
	if core.Skin != "" {
		classes = append(classes, d.get(KeySkinClassPrefix)+"-"+core.Type+"-"+core.Skin+suffix)
	}
	return classes
}

// GetID returns ctrl--<id>[-<part>].
func (d *Deriver) GetID(c control.Control, part string) string {
	return IDPrefix + c.Core().ID + partSuffix(part)
}

// AddClass adds every class GetClasses yields to el.
func (d *Deriver) AddClass(el dom.Element, c control.Control, part string) {
	if el == nil {
		return
	}
	for _, class := range d.GetClasses(c, part) {
		el.AddClass(class)
	}
}

// RemoveClass removes every class GetClasses yields from el.
func (d *Deriver) RemoveClass(el dom.Element, c control.Control, part string) {
	if el == nil {
		return
	}
	for _, class := range d.GetClasses(c, part) {
		el.RemoveClass(class)
	}
}

// GetStateClasses returns the classes marking a control state:
// <ui>-<type>-<state>, <statePrefix>-<state> and, for skinned controls,
// <skin>-<type>-<skin>-<state>.
func (d *Deriver) GetStateClasses(c control.Control, state string) []string {
	core := c.Core()
	classes := []string{
		d.get(KeyUIClassPrefix) + "-" + core.Type + "-" + state,
		d.get(KeyStateClassPrefix) + "-" + state,
	}
	if core.Skin != "" {
		classes = append(classes, d.get(KeySkinClassPrefix)+"-"+core.Type+"-"+core.Skin+"-"+state)
	}
	return classes
}

// AddStateClasses adds the state classes to the control's main element.
func (d *Deriver) AddStateClasses(c control.Control, state string) {
	main := c.Core().Main
	if main == nil {
		return
	}
	for _, class := range d.GetStateClasses(c, state) {
		main.AddClass(class)
	}
}

// RemoveStateClasses removes the state classes from the control's main
// element.
func (d *Deriver) RemoveStateClasses(c control.Control, state string) {
	main := c.Core().Main
	if main == nil {
		return
	}
	for _, class := range d.GetStateClasses(c, state) {
		main.RemoveClass(class)
	}
}

func (d *Deriver) get(key string) string {
	if d == nil || d.Config == nil {
		return ""
	}
	return d.Config.Get(key)
}

func partSuffix(part string) string {
	if part == "" {
		return ""
	}
	return "-" + part
}
