// Package rules builds the validation rules a control declares, either
// through properties named after a rule kind or through explicit RuleSpec
// entries, and checks values against them.
package rules

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	goerrors "github.com/goliatone/go-errors"

	"github.com/goliatone/go-uicontrol/internal/logging"
	"github.com/goliatone/go-uicontrol/pkg/control"
	"github.com/goliatone/go-uicontrol/pkg/interfaces"
	"github.com/goliatone/go-uicontrol/pkg/validity"
)

// Built-in rule kinds, in the order they are registered.
const (
	KindRequired  = "required"
	KindMinLength = "minLength"
	KindMaxLength = "maxLength"
	KindMin       = "min"
	KindMax       = "max"
	KindPattern   = "pattern"
	KindEnum      = "enum"
)

// Rule parameters.
const (
	ParamValue     = "value"
	ParamPattern   = "pattern"
	ParamValues    = "values"
	ParamExclusive = "exclusive"
	ParamMessage   = "message"
)

// Rule checks one constraint.
type Rule interface {
	Name() string
	Check(value any, c control.Control) *validity.State
}

// Constructor builds a rule from its spec.
type Constructor func(spec control.RuleSpec) (Rule, error)

// Factory maps rule kinds to constructors. Kinds keep registration order.
type Factory struct {
	mu     sync.RWMutex
	kinds  []string
	ctors  map[string]Constructor
	logger interfaces.Logger
}

// Option configures a Factory.
type Option func(*Factory)

// WithLogger routes construction failures to logger.
func WithLogger(logger interfaces.Logger) Option {
	return func(f *Factory) {
		if logger != nil {
			f.logger = logger
		}
	}
}

// WithBuiltins registers the ozzo-validation backed rules.
func WithBuiltins() Option {
	return func(f *Factory) {
		registerBuiltins(f)
	}
}

// NewFactory returns an empty factory unless WithBuiltins is supplied.
func NewFactory(opts ...Option) *Factory {
	f := &Factory{
		ctors:  make(map[string]Constructor),
		logger: logging.NoOp(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(f)
		}
	}
	return f
}

// Register adds a constructor for kind.
func (f *Factory) Register(kind string, ctor Constructor) error {
	kind = strings.TrimSpace(kind)
	if kind == "" {
		return fmt.Errorf("rules: kind is required")
	}
	if ctor == nil {
		return fmt.Errorf("rules: constructor for %q is nil", kind)
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	if _, exists := f.ctors[kind]; exists {
		return fmt.Errorf("rules: kind %q already registered", kind)
	}
	f.ctors[kind] = ctor
	f.kinds = append(f.kinds, kind)
	return nil
}

// MustRegister panics when Register fails.
func (f *Factory) MustRegister(kind string, ctor Constructor) {
	if err := f.Register(kind, ctor); err != nil {
		panic(err)
	}
}

// Kinds lists registered kinds in registration order.
func (f *Factory) Kinds() []string {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return append([]string(nil), f.kinds...)
}

// Create builds the rule described by spec.
func (f *Factory) Create(spec control.RuleSpec) (Rule, error) {
	f.mu.RLock()
	ctor, ok := f.ctors[spec.Kind]
	f.mu.RUnlock()
	if !ok {
		return nil, goerrors.Wrap(fmt.Errorf("rules: kind %q not registered", spec.Kind), goerrors.CategoryValidation, "rule construction failed").
			WithTextCode("RULE_UNKNOWN")
	}
	rule, err := ctor(spec)
	if err != nil {
		return nil, goerrors.Wrap(err, goerrors.CategoryValidation, "rule construction failed").
			WithTextCode("RULE_INVALID")
	}
	return rule, nil
}

// CreateRulesByControl instantiates every registered kind the control
// declares. Kinds are visited in registration order; an explicit RuleSpec
// wins over a property of the same name. Rules that fail to build are
// logged and skipped, as are specs naming unregistered kinds.
func (f *Factory) CreateRulesByControl(c control.Control) []Rule {
	core := c.Core()
	explicit := map[string]control.RuleSpec{}
	for _, spec := range core.Validations {
		if _, seen := explicit[spec.Kind]; !seen {
			explicit[spec.Kind] = spec
		}
	}

	var out []Rule
	for _, kind := range f.Kinds() {
		spec, ok := explicit[kind]
		if ok {
			delete(explicit, kind)
		} else if spec, ok = specFromProperty(core, kind); !ok {
			continue
		}
		if msg := core.GetString(kind + "Message"); msg != "" {
			spec = withMessage(spec, msg)
		}

		rule, err := f.Create(spec)
		if err != nil {
			f.logger.Warn("rule skipped", "control_id", core.ID, "kind", kind, "error", err)
			continue
		}
		out = append(out, rule)
	}

	if len(explicit) > 0 {
		unknown := make([]string, 0, len(explicit))
		for kind := range explicit {
			unknown = append(unknown, kind)
		}
		sort.Strings(unknown)
		f.logger.Warn("unregistered rule kinds ignored", "control_id", core.ID, "kinds", unknown)
	}
	return out
}

func specFromProperty(core *control.Base, kind string) (control.RuleSpec, bool) {
	value, ok := core.Get(kind)
	if !ok || value == nil {
		return control.RuleSpec{}, false
	}
	switch v := value.(type) {
	case bool:
		if !v {
			return control.RuleSpec{}, false
		}
		return control.RuleSpec{Kind: kind}, true
	case string:
		if strings.TrimSpace(v) == "" || strings.EqualFold(v, "false") {
			return control.RuleSpec{}, false
		}
	}

	param := ParamValue
	switch kind {
	case KindPattern:
		param = ParamPattern
	case KindEnum:
		param = ParamValues
	}
	return control.RuleSpec{Kind: kind, Params: map[string]string{param: paramString(value)}}, true
}

func paramString(value any) string {
	switch v := value.(type) {
	case []string:
		return strings.Join(v, ",")
	case []any:
		parts := make([]string, 0, len(v))
		for _, item := range v {
			parts = append(parts, fmt.Sprint(item))
		}
		return strings.Join(parts, ",")
	}
	return fmt.Sprint(value)
}

func withMessage(spec control.RuleSpec, message string) control.RuleSpec {
	params := make(map[string]string, len(spec.Params)+1)
	for k, v := range spec.Params {
		params[k] = v
	}
	params[ParamMessage] = message
	spec.Params = params
	return spec
}
