package control

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/goliatone/go-uicontrol/pkg/dom"
	"github.com/goliatone/go-uicontrol/pkg/extension"
)

// Property keys understood by Base.SetProperties.
const (
	PropID          = "id"
	PropType        = "type"
	PropSkin        = "skin"
	PropMain        = "main"
	PropChildName   = "childName"
	PropViewContext = "viewContext"
	PropExtensions  = "extensions"
	PropValidations = "validations"
)

// SetProperties applies the known keys onto the core and stores every other
// key in Properties.
func (c *Base) SetProperties(props Properties) error {
	for key, value := range props {
		if err := c.setProperty(key, value); err != nil {
			return err
		}
	}
	return nil
}

func (c *Base) setProperty(key string, value any) error {
	switch key {
	case PropID, PropType, PropSkin, PropChildName:
		text, ok := value.(string)
		if !ok && value != nil {
			return fmt.Errorf("control: property %q expects a string, got %T", key, value)
		}
		text = strings.TrimSpace(text)
		switch key {
		case PropID:
			c.ID = text
		case PropType:
			c.Type = text
		case PropSkin:
			c.Skin = text
		case PropChildName:
			c.ChildName = text
		}
	case PropMain:
		if value == nil {
			c.Main = nil
			return nil
		}
		el, ok := value.(dom.Element)
		if !ok {
			return fmt.Errorf("control: property %q expects a dom.Element, got %T", key, value)
		}
		c.Main = el
	case PropViewContext:
		if value == nil {
			c.PendingViewContext = nil
			return nil
		}
		ctx, ok := value.(ViewContext)
		if !ok {
			return fmt.Errorf("control: property %q expects a ViewContext, got %T", key, value)
		}
		c.PendingViewContext = ctx
	case PropExtensions:
		switch typed := value.(type) {
		case nil:
			c.Extensions = nil
		case []extension.Extension:
			c.Extensions = append([]extension.Extension(nil), typed...)
		default:
			// Anything else is coerced to an empty list by the merger.
			c.Extensions = nil
		}
	case PropValidations:
		switch typed := value.(type) {
		case nil:
			c.Validations = nil
		case []RuleSpec:
			c.Validations = append([]RuleSpec(nil), typed...)
		default:
			return fmt.Errorf("control: property %q expects []RuleSpec, got %T", key, value)
		}
	default:
		if c.Properties == nil {
			c.Properties = Properties{}
		}
		c.Properties[key] = value
	}
	return nil
}

// Get returns a free-form property.
func (c *Base) Get(key string) (any, bool) {
	value, ok := c.Properties[key]
	return value, ok
}

// GetString returns a free-form property formatted as a string. Missing
// keys and nil values yield "".
func (c *Base) GetString(key string) string {
	value, ok := c.Properties[key]
	if !ok || value == nil {
		return ""
	}
	switch typed := value.(type) {
	case string:
		return typed
	case bool:
		return strconv.FormatBool(typed)
	case int:
		return strconv.Itoa(typed)
	case float64:
		return strconv.FormatFloat(typed, 'f', -1, 64)
	default:
		return fmt.Sprint(typed)
	}
}
