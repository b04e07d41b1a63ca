// Package helper drives controls through their lifecycle. Widgets call the
// Helper at each phase transition; the Helper coordinates identity, class
// derivation, extensions, view contexts, validation and disposal.
package helper

import (
	"github.com/goliatone/go-uicontrol/internal/logging"
	"github.com/goliatone/go-uicontrol/pkg/classes"
	"github.com/goliatone/go-uicontrol/pkg/config"
	"github.com/goliatone/go-uicontrol/pkg/control"
	"github.com/goliatone/go-uicontrol/pkg/extension"
	"github.com/goliatone/go-uicontrol/pkg/identity"
	"github.com/goliatone/go-uicontrol/pkg/interfaces"
	"github.com/goliatone/go-uicontrol/pkg/lifecycle"
	"github.com/goliatone/go-uicontrol/pkg/rules"
	"github.com/goliatone/go-uicontrol/pkg/surface"
	"github.com/goliatone/go-uicontrol/pkg/validity"
	"github.com/goliatone/go-uicontrol/pkg/viewcontext"
)

// ExtensionSource yields the globally registered extensions.
type ExtensionSource interface {
	CreateGlobalExtensions() []extension.Extension
}

// ViewContextSource supplies the ambient view context.
type ViewContextSource interface {
	DefaultViewContext() control.ViewContext
}

// RuleFactory returns the ordered rules that apply to a control.
type RuleFactory interface {
	CreateRulesByControl(c control.Control) []rules.Rule
}

// Surface presents a validity report.
type Surface interface {
	ShowValidity(c control.Control, v *validity.Validity) error
}

// Observer is notified of phase transitions and validation results.
type Observer interface {
	ObserveTransition(c control.Control, phase lifecycle.Phase)
	ObserveValidation(c control.Control, valid bool)
}

// Option configures a Helper.
type Option func(*Helper)

// Helper implements the lifecycle contract widgets call into.
type Helper struct {
	config       classes.ConfigSource
	classes      *classes.Deriver
	ids          identity.Source
	extensions   ExtensionSource
	viewContexts ViewContextSource
	rules        RuleFactory
	surface      Surface
	observer     Observer
	logger       interfaces.Logger
	provider     interfaces.LoggerProvider
}

// New constructs a Helper. Collaborators that are not supplied get
// in-process defaults: Default config, a timestamp-seeded id generator, an
// empty extension registry, a fresh view-context registry, the built-in
// rules and a log surface.
func New(options ...Option) *Helper {
	h := &Helper{}
	for _, opt := range options {
		if opt != nil {
			opt(h)
		}
	}
	h.applyDefaults()
	return h
}

// WithConfig sets the configuration the class deriver reads prefixes from.
func WithConfig(cfg classes.ConfigSource) Option {
	return func(h *Helper) {
		h.config = cfg
	}
}

// WithIDSource overrides the identity generator.
func WithIDSource(src identity.Source) Option {
	return func(h *Helper) {
		h.ids = src
	}
}

// WithExtensions sets the global extension source.
func WithExtensions(src ExtensionSource) Option {
	return func(h *Helper) {
		h.extensions = src
	}
}

// WithViewContexts sets the registry the default view context comes from.
func WithViewContexts(src ViewContextSource) Option {
	return func(h *Helper) {
		h.viewContexts = src
	}
}

// WithRuleFactory sets the rule factory used by Validate.
func WithRuleFactory(factory RuleFactory) Option {
	return func(h *Helper) {
		h.rules = factory
	}
}

// WithSurface sets where ShowValidity sends reports.
func WithSurface(s Surface) Option {
	return func(h *Helper) {
		h.surface = s
	}
}

// WithObserver registers an observer for transitions and validations.
func WithObserver(o Observer) Option {
	return func(h *Helper) {
		h.observer = o
	}
}

// WithLogger sets the helper logger.
func WithLogger(logger interfaces.Logger) Option {
	return func(h *Helper) {
		h.logger = logger
	}
}

// WithLoggerProvider derives module loggers for the helper and its default
// collaborators from provider.
func WithLoggerProvider(provider interfaces.LoggerProvider) Option {
	return func(h *Helper) {
		h.provider = provider
	}
}

func (h *Helper) applyDefaults() {
	if h.logger == nil {
		h.logger = logging.ModuleLogger(h.provider, logging.HelperModule)
	}
	if h.config == nil {
		h.config = config.Default()
	}
	h.classes = classes.New(h.config)
	if h.ids == nil {
		prefix := h.config.Get(config.KeyIDPrefix)
		if prefix == "" {
			prefix = identity.DefaultPrefix
		}
		h.ids = identity.NewGenerator(prefix)
	}
	if h.extensions == nil {
		h.extensions = extension.NewRegistry()
	}
	if h.viewContexts == nil {
		h.viewContexts = viewcontext.NewRegistry()
	}
	if h.rules == nil {
		h.rules = rules.NewFactory(
			rules.WithBuiltins(),
			rules.WithLogger(logging.ModuleLogger(h.provider, logging.RulesModule)),
		)
	}
	if h.surface == nil {
		h.surface = surface.NewLog(logging.ModuleLogger(h.provider, logging.SurfaceModule))
	}
	if h.observer == nil {
		h.observer = noopObserver{}
	}
}

// Classes returns the class deriver backing GetClasses and friends.
func (h *Helper) Classes() *classes.Deriver {
	return h.classes
}

// Logger returns the helper logger.
func (h *Helper) Logger() interfaces.Logger {
	return h.logger
}

func (h *Helper) log(c control.Control) interfaces.Logger {
	core := c.Core()
	return logging.WithFields(h.logger, logging.ControlFields(core.ID, core.Type))
}

type noopObserver struct{}

func (noopObserver) ObserveTransition(control.Control, lifecycle.Phase) {}
func (noopObserver) ObserveValidation(control.Control, bool)           {}
