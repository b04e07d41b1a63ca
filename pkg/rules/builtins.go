package rules

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/goliatone/go-uicontrol/pkg/control"
	"github.com/goliatone/go-uicontrol/pkg/validity"
)

// ErrNotNumber is reported when a numeric rule receives a value that does
// not parse as a number.
var ErrNotNumber = validation.NewError("validation_not_number", "must be a number")

func registerBuiltins(f *Factory) {
	f.MustRegister(KindRequired, newRequired)
	f.MustRegister(KindMinLength, newMinLength)
	f.MustRegister(KindMaxLength, newMaxLength)
	f.MustRegister(KindMin, newMin)
	f.MustRegister(KindMax, newMax)
	f.MustRegister(KindPattern, newPattern)
	f.MustRegister(KindEnum, newEnum)
}

// checkFunc returns nil when value satisfies the rule.
type checkFunc func(value any) error

type ozzoRule struct {
	kind    string
	message string
	check   checkFunc
}

// Name returns the rule kind; it keys the state in a validity report.
func (r *ozzoRule) Name() string { return r.kind }

// Check evaluates value. A failing state carries "<title> <reason>" or the
// configured override message.
func (r *ozzoRule) Check(value any, c control.Control) *validity.State {
	err := r.check(value)
	if err == nil {
		return validity.NewState(true, "")
	}
	if r.message != "" {
		return validity.NewState(false, r.message)
	}
	return validity.NewState(false, strings.TrimSpace(Title(c)+" "+err.Error()))
}

// Title names a control in messages: the title property, then name, then
// the id.
func Title(c control.Control) string {
	core := c.Core()
	if title := core.GetString("title"); title != "" {
		return title
	}
	if name := core.GetString("name"); name != "" {
		return name
	}
	if core.ChildName != "" {
		return core.ChildName
	}
	return core.ID
}

func newRule(spec control.RuleSpec, check checkFunc) Rule {
	return &ozzoRule{kind: spec.Kind, message: spec.Params[ParamMessage], check: check}
}

func newRequired(spec control.RuleSpec) (Rule, error) {
	return newRule(spec, func(value any) error {
		if s, ok := value.(string); ok {
			value = strings.TrimSpace(s)
		}
		return validation.Required.Validate(value)
	}), nil
}

func newMinLength(spec control.RuleSpec) (Rule, error) {
	n, err := intParam(spec, ParamValue)
	if err != nil {
		return nil, err
	}
	if n == 0 {
		return newRule(spec, func(any) error { return nil }), nil
	}
	length := validation.RuneLength(n, 0)
	return newRule(spec, func(value any) error {
		return length.Validate(textOf(value))
	}), nil
}

func newMaxLength(spec control.RuleSpec) (Rule, error) {
	n, err := intParam(spec, ParamValue)
	if err != nil {
		return nil, err
	}
	length := validation.RuneLength(0, n)
	return newRule(spec, func(value any) error {
		return length.Validate(textOf(value))
	}), nil
}

// Numeric bounds compare directly instead of going through ozzo's
// ThresholdRule, which treats zero as empty and rejects numeric strings.
func newMin(spec control.RuleSpec) (Rule, error) {
	threshold, exclusive, err := boundParams(spec)
	if err != nil {
		return nil, err
	}
	failure := validation.ErrMinGreaterEqualThanRequired
	if exclusive {
		failure = validation.ErrMinGreaterThanRequired
	}
	failure = failure.SetParams(map[string]any{"threshold": formatFloat(threshold)})
	return newRule(spec, func(value any) error {
		n, ok, err := numberOf(value)
		if err != nil || !ok {
			return err
		}
		if n > threshold || (!exclusive && n == threshold) {
			return nil
		}
		return failure
	}), nil
}

func newMax(spec control.RuleSpec) (Rule, error) {
	threshold, exclusive, err := boundParams(spec)
	if err != nil {
		return nil, err
	}
	failure := validation.ErrMaxLessEqualThanRequired
	if exclusive {
		failure = validation.ErrMaxLessThanRequired
	}
	failure = failure.SetParams(map[string]any{"threshold": formatFloat(threshold)})
	return newRule(spec, func(value any) error {
		n, ok, err := numberOf(value)
		if err != nil || !ok {
			return err
		}
		if n < threshold || (!exclusive && n == threshold) {
			return nil
		}
		return failure
	}), nil
}

func newPattern(spec control.RuleSpec) (Rule, error) {
	expr := spec.Params[ParamPattern]
	if expr == "" {
		return nil, fmt.Errorf("rules: %s requires a %q param", spec.Kind, ParamPattern)
	}
	re, err := regexp.Compile(expr)
	if err != nil {
		return nil, fmt.Errorf("rules: %s: %w", spec.Kind, err)
	}
	match := validation.Match(re)
	return newRule(spec, func(value any) error {
		return match.Validate(textOf(value))
	}), nil
}

func newEnum(spec control.RuleSpec) (Rule, error) {
	raw := spec.Params[ParamValues]
	if strings.TrimSpace(raw) == "" {
		return nil, fmt.Errorf("rules: %s requires a %q param", spec.Kind, ParamValues)
	}
	var allowed []any
	for _, part := range strings.Split(raw, ",") {
		allowed = append(allowed, strings.TrimSpace(part))
	}
	in := validation.In(allowed...)
	return newRule(spec, func(value any) error {
		return in.Validate(textOf(value))
	}), nil
}

func intParam(spec control.RuleSpec, key string) (int, error) {
	raw := strings.TrimSpace(spec.Params[key])
	if raw == "" {
		return 0, fmt.Errorf("rules: %s requires a %q param", spec.Kind, key)
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil || f < 0 || f != math.Trunc(f) {
		return 0, fmt.Errorf("rules: %s: %q is not a non-negative integer", spec.Kind, raw)
	}
	return int(f), nil
}

func boundParams(spec control.RuleSpec) (float64, bool, error) {
	raw := strings.TrimSpace(spec.Params[ParamValue])
	threshold, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, false, fmt.Errorf("rules: %s: %q is not a number", spec.Kind, raw)
	}
	exclusive, _ := strconv.ParseBool(spec.Params[ParamExclusive])
	return threshold, exclusive, nil
}

// numberOf converts value to a float. ok is false for empty input, which
// numeric rules leave to "required".
func numberOf(value any) (float64, bool, error) {
	switch v := value.(type) {
	case nil:
		return 0, false, nil
	case float64:
		return v, true, nil
	case float32:
		return float64(v), true, nil
	case int:
		return float64(v), true, nil
	case int64:
		return float64(v), true, nil
	case int32:
		return float64(v), true, nil
	case uint:
		return float64(v), true, nil
	case uint64:
		return float64(v), true, nil
	}
	text := strings.TrimSpace(textOf(value))
	if text == "" {
		return 0, false, nil
	}
	n, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return 0, false, ErrNotNumber
	}
	return n, true, nil
}

func textOf(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	case []byte:
		return string(v)
	case fmt.Stringer:
		return v.String()
	}
	return fmt.Sprint(value)
}

func formatFloat(value float64) string {
	return strconv.FormatFloat(value, 'f', -1, 64)
}
