package widgets

import (
	"fmt"
	"strings"

	goerrors "github.com/goliatone/go-errors"
	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-uicontrol/pkg/control"
)

const textCodeLayoutInvalid = "WIDGET_LAYOUT_INVALID"

// Layout describes a control tree.
//
//	type: Form
//	id: signup
//	properties:
//	  action: /signup
//	children:
//	  - type: TextBox
//	    id: email
//	    properties: {name: email, required: true}
type Layout struct {
	Type        string             `yaml:"type"`
	ID          string             `yaml:"id,omitempty"`
	ChildName   string             `yaml:"childName,omitempty"`
	Skin        string             `yaml:"skin,omitempty"`
	Properties  map[string]any     `yaml:"properties,omitempty"`
	Validations []control.RuleSpec `yaml:"validations,omitempty"`
	Children    []Layout           `yaml:"children,omitempty"`
}

// ParseLayout decodes a YAML layout document.
func ParseLayout(data []byte) (Layout, error) {
	var layout Layout
	if err := yaml.Unmarshal(data, &layout); err != nil {
		return Layout{}, layoutError(fmt.Errorf("widgets: parse layout: %w", err))
	}
	if strings.TrimSpace(layout.Type) == "" {
		return Layout{}, layoutError(fmt.Errorf("widgets: layout root has no type"))
	}
	return layout, nil
}

// Build creates the control tree a layout describes. Children are attached
// under their childName when set. A failure disposes whatever was built.
func (r *Registry) Build(layout Layout) (control.Control, error) {
	return r.build(layout, "")
}

func (r *Registry) build(layout Layout, path string) (control.Control, error) {
	path = strings.TrimPrefix(path+"/"+layout.Type, "/")

	c, err := r.Create(layout.Type, layout.properties())
	if err != nil {
		return nil, fmt.Errorf("widgets: build %s: %w", path, err)
	}
	if len(layout.Children) == 0 {
		return c, nil
	}

	parent, ok := c.(control.Composite)
	if !ok {
		c.Dispose()
		return nil, layoutError(fmt.Errorf("widgets: build %s: %s cannot hold children", path, layout.Type))
	}
	for _, childLayout := range layout.Children {
		child, err := r.build(childLayout, path)
		if err != nil {
			c.Dispose()
			return nil, err
		}
		parent.AddChild(child, childLayout.ChildName)
	}
	return c, nil
}

func (l Layout) properties() control.Properties {
	props := make(control.Properties, len(l.Properties)+4)
	for key, value := range l.Properties {
		props[key] = value
	}
	if l.ID != "" {
		props[control.PropID] = l.ID
	}
	if l.ChildName != "" {
		props[control.PropChildName] = l.ChildName
	}
	if l.Skin != "" {
		props[control.PropSkin] = l.Skin
	}
	if len(l.Validations) > 0 {
		props[control.PropValidations] = l.Validations
	}
	return props
}

func layoutError(err error) error {
	return goerrors.Wrap(err, goerrors.CategoryValidation, "invalid layout").
		WithTextCode(textCodeLayoutInvalid)
}
