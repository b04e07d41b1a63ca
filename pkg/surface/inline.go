package surface

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/flosch/pongo2/v6"
	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"

	"github.com/goliatone/go-uicontrol/pkg/control"
	"github.com/goliatone/go-uicontrol/pkg/dom"
	"github.com/goliatone/go-uicontrol/pkg/validity"
)

// DefaultInlineTemplate wraps the sanitized message body.
const DefaultInlineTemplate = `<div class="{{ prefix }}-validity-{{ state }}" role="alert">{{ body|safe }}</div>`

// ErrNoTarget is returned when a control exposes no element for inline
// messages.
var ErrNoTarget = errors.New("surface: control has no validity target")

// Target is an element that can receive rendered messages.
type Target interface {
	dom.Element
	SetInnerHTML(markup string)
	SetHidden(hidden bool)
}

// TargetProvider is implemented by controls that own a validity label.
type TargetProvider interface {
	ValidityTarget() Target
}

var (
	messagePolicyOnce sync.Once
	messagePolicy     *bluemonday.Policy
)

// Inline renders messages as markdown, sanitizes the HTML and writes the
// templated result into the control's validity target. Valid reports clear
// and hide the target.
type Inline struct {
	prefix   string
	template *pongo2.Template
	markdown goldmark.Markdown
}

// InlineOption configures an Inline surface.
type InlineOption func(*inlineConfig)

type inlineConfig struct {
	prefix   string
	template string
}

// WithClassPrefix sets the prefix of the wrapper class; "ui" by default.
func WithClassPrefix(prefix string) InlineOption {
	return func(cfg *inlineConfig) {
		cfg.prefix = prefix
	}
}

// WithTemplate replaces DefaultInlineTemplate. The template receives
// prefix, state, messages and body.
func WithTemplate(source string) InlineOption {
	return func(cfg *inlineConfig) {
		if strings.TrimSpace(source) != "" {
			cfg.template = source
		}
	}
}

// NewInline compiles the wrapper template.
func NewInline(opts ...InlineOption) (*Inline, error) {
	cfg := inlineConfig{prefix: "ui", template: DefaultInlineTemplate}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	tpl, err := pongo2.FromString(cfg.template)
	if err != nil {
		return nil, fmt.Errorf("surface: compile inline template: %w", err)
	}
	return &Inline{
		prefix:   cfg.prefix,
		template: tpl,
		markdown: goldmark.New(),
	}, nil
}

func (s *Inline) ShowValidity(c control.Control, v *validity.Validity) error {
	provider, ok := c.(TargetProvider)
	if !ok {
		return ErrNoTarget
	}
	target := provider.ValidityTarget()
	if target == nil {
		return ErrNoTarget
	}

	if v == nil || v.IsValid() {
		target.SetInnerHTML("")
		target.SetHidden(true)
		return nil
	}

	messages := Messages(v)
	body, err := s.renderBody(messages)
	if err != nil {
		return err
	}
	markup, err := s.template.Execute(pongo2.Context{
		"prefix":   s.prefix,
		"state":    v.ValidState(),
		"messages": messages,
		"body":     body,
	})
	if err != nil {
		return fmt.Errorf("surface: render inline template: %w", err)
	}
	target.SetInnerHTML(strings.TrimSpace(markup))
	target.SetHidden(false)
	return nil
}

func (s *Inline) renderBody(messages []string) (string, error) {
	var buf bytes.Buffer
	if err := s.markdown.Convert([]byte(strings.Join(messages, "\n\n")), &buf); err != nil {
		return "", fmt.Errorf("surface: render markdown: %w", err)
	}
	return strings.TrimSpace(sanitizer().Sanitize(buf.String())), nil
}

func sanitizer() *bluemonday.Policy {
	messagePolicyOnce.Do(func() {
		messagePolicy = bluemonday.UGCPolicy()
	})
	return messagePolicy
}
