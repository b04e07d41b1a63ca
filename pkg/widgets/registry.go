package widgets

import (
	"fmt"
	"strings"
	"sync"

	goerrors "github.com/goliatone/go-errors"

	"github.com/goliatone/go-uicontrol/internal/logging"
	"github.com/goliatone/go-uicontrol/pkg/control"
	"github.com/goliatone/go-uicontrol/pkg/helper"
	"github.com/goliatone/go-uicontrol/pkg/interfaces"
)

// Built-in control types exposed by the registry.
const (
	TypePanel   = "Panel"
	TypeForm    = "Form"
	TypeTextBox = "TextBox"
)

const (
	textCodeUnknownType = "WIDGET_UNKNOWN_TYPE"
	textCodeInitFailed  = "WIDGET_INIT_FAILED"
)

// Constructor returns a new, uninitialized control bound to h.
type Constructor func(h *helper.Helper) control.Control

// Registry maps control types to constructors and creates initialized
// controls. Types keep registration order.
type Registry struct {
	mu     sync.RWMutex
	ctors  map[string]Constructor
	order  []string
	helper *helper.Helper
	logger interfaces.Logger
}

// NewRegistry constructs a registry with the built-in controls registered.
// A nil helper gets helper.New().
func NewRegistry(h *helper.Helper) *Registry {
	if h == nil {
		h = helper.New()
	}
	reg := &Registry{
		ctors:  make(map[string]Constructor),
		helper: h,
		logger: logging.Scoped(h.Logger(), logging.WidgetsModule),
	}
	reg.registerBuiltins()
	return reg
}

// Helper returns the helper every created control is bound to.
func (r *Registry) Helper() *helper.Helper {
	return r.helper
}

// Register adds a constructor for typ. Duplicate types are rejected.
func (r *Registry) Register(typ string, ctor Constructor) error {
	typ = strings.TrimSpace(typ)
	if typ == "" {
		return fmt.Errorf("widgets: type is required")
	}
	if ctor == nil {
		return fmt.Errorf("widgets: constructor for %q is nil", typ)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.ctors[typ]; exists {
		return fmt.Errorf("widgets: type %q already registered", typ)
	}
	r.ctors[typ] = ctor
	r.order = append(r.order, typ)
	return nil
}

// MustRegister panics on registration failure.
func (r *Registry) MustRegister(typ string, ctor Constructor) {
	if err := r.Register(typ, ctor); err != nil {
		panic(err)
	}
}

// Types lists registered types in registration order.
func (r *Registry) Types() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]string(nil), r.order...)
}

// Create builds a control of typ and runs Init and AfterInit with props.
func (r *Registry) Create(typ string, props control.Properties) (control.Control, error) {
	r.mu.RLock()
	ctor, ok := r.ctors[strings.TrimSpace(typ)]
	r.mu.RUnlock()
	if !ok {
		return nil, goerrors.Wrap(fmt.Errorf("widgets: type %q not registered", typ), goerrors.CategoryNotFound, "unknown control type").
			WithTextCode(textCodeUnknownType)
	}

	c := ctor(r.helper)
	if err := r.helper.Init(c, props); err != nil {
		return nil, goerrors.Wrap(err, goerrors.CategoryBadInput, "control init failed").
			WithTextCode(textCodeInitFailed)
	}
	r.helper.AfterInit(c)

	core := c.Core()
	r.logger.Debug("control created", "control_id", core.ID, "control_type", core.Type)
	return c, nil
}

func (r *Registry) registerBuiltins() {
	r.MustRegister(TypePanel, func(h *helper.Helper) control.Control { return NewPanel(h) })
	r.MustRegister(TypeForm, func(h *helper.Helper) control.Control { return NewForm(h) })
	r.MustRegister(TypeTextBox, func(h *helper.Helper) control.Control { return NewTextBox(h) })
}
