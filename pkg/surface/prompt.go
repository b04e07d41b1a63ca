package surface

import (
	"errors"
	"fmt"
	"strings"

	"github.com/AlecAivazis/survey/v2"
	"github.com/AlecAivazis/survey/v2/terminal"

	"github.com/goliatone/go-uicontrol/pkg/control"
	"github.com/goliatone/go-uicontrol/pkg/rules"
	"github.com/goliatone/go-uicontrol/pkg/validity"
)

// ErrAborted signals the user interrupted the prompt.
var ErrAborted = errors.New("surface: aborted")

// AskFunc matches survey.AskOne.
type AskFunc func(p survey.Prompt, response any, opts ...survey.AskOpt) error

// Prompt shows invalid reports as a terminal confirmation, the closest
// terminal analogue of an alert box. Valid reports are not shown.
type Prompt struct {
	ask AskFunc
}

// PromptOption configures a Prompt.
type PromptOption func(*Prompt)

// WithAsk replaces survey.AskOne.
func WithAsk(ask AskFunc) PromptOption {
	return func(p *Prompt) {
		if ask != nil {
			p.ask = ask
		}
	}
}

// NewPrompt returns a Prompt backed by survey.
func NewPrompt(opts ...PromptOption) *Prompt {
	p := &Prompt{ask: survey.AskOne}
	for _, opt := range opts {
		if opt != nil {
			opt(p)
		}
	}
	return p
}

func (p *Prompt) ShowValidity(c control.Control, v *validity.Validity) error {
	if v == nil || v.IsValid() {
		return nil
	}
	messages := Messages(v)
	prompt := &survey.Confirm{
		Message: fmt.Sprintf("%s: %s", rules.Title(c), strings.Join(messages, "; ")),
		Help:    strings.Join(messages, "\n"),
		Default: true,
	}
	var acknowledged bool
	if err := p.ask(prompt, &acknowledged); err != nil {
		if errors.Is(err, terminal.InterruptErr) {
			return ErrAborted
		}
		return fmt.Errorf("surface: prompt: %w", err)
	}
	return nil
}
