package rules

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"
	goerrors "github.com/goliatone/go-errors"

	"github.com/goliatone/go-uicontrol/pkg/control"
)

// SpecsFromOpenAPI derives rule specs from the constraints of a property
// schema: minimum, maximum, minLength, maxLength, pattern and enum.
func SpecsFromOpenAPI(schema *openapi3.Schema) []control.RuleSpec {
	if schema == nil {
		return nil
	}

	var specs []control.RuleSpec
	if schema.MinLength > 0 {
		specs = append(specs, control.RuleSpec{
			Kind:   KindMinLength,
			Params: map[string]string{ParamValue: strconv.FormatUint(schema.MinLength, 10)},
		})
	}
	if schema.MaxLength != nil {
		specs = append(specs, control.RuleSpec{
			Kind:   KindMaxLength,
			Params: map[string]string{ParamValue: strconv.FormatUint(*schema.MaxLength, 10)},
		})
	}
	if schema.Min != nil {
		params := map[string]string{ParamValue: formatFloat(*schema.Min)}
		if schema.ExclusiveMin {
			params[ParamExclusive] = "true"
		}
		specs = append(specs, control.RuleSpec{Kind: KindMin, Params: params})
	}
	if schema.Max != nil {
		params := map[string]string{ParamValue: formatFloat(*schema.Max)}
		if schema.ExclusiveMax {
			params[ParamExclusive] = "true"
		}
		specs = append(specs, control.RuleSpec{Kind: KindMax, Params: params})
	}
	if schema.Pattern != "" {
		specs = append(specs, control.RuleSpec{
			Kind:   KindPattern,
			Params: map[string]string{ParamPattern: schema.Pattern},
		})
	}
	if len(schema.Enum) > 0 {
		values := make([]string, 0, len(schema.Enum))
		for _, v := range schema.Enum {
			values = append(values, fmt.Sprint(v))
		}
		specs = append(specs, control.RuleSpec{
			Kind:   KindEnum,
			Params: map[string]string{ParamValues: strings.Join(values, ",")},
		})
	}
	return specs
}

// LoadOpenAPISpecs loads an OpenAPI document and returns the rule specs of
// every property of the named component schema, keyed by property name.
// Properties listed under "required" get a required spec first.
func LoadOpenAPISpecs(ctx context.Context, data []byte, component string) (map[string][]control.RuleSpec, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	loader := openapi3.NewLoader()
	loader.Context = ctx

	doc, err := loader.LoadFromData(data)
	if err != nil {
		return nil, goerrors.Wrap(fmt.Errorf("rules: load openapi document: %w", err), goerrors.CategoryValidation, "openapi load failed").
			WithTextCode("OPENAPI_LOAD_FAILED")
	}
	if doc.Components == nil {
		return nil, componentMissing(component)
	}
	ref, ok := doc.Components.Schemas[component]
	if !ok || ref == nil || ref.Value == nil {
		return nil, componentMissing(component)
	}

	schema := ref.Value
	required := make(map[string]struct{}, len(schema.Required))
	for _, name := range schema.Required {
		required[name] = struct{}{}
	}

	names := make([]string, 0, len(schema.Properties))
	for name := range schema.Properties {
		names = append(names, name)
	}
	sort.Strings(names)

	out := make(map[string][]control.RuleSpec, len(names))
	for _, name := range names {
		prop := schema.Properties[name]
		var specs []control.RuleSpec
		if _, ok := required[name]; ok {
			specs = append(specs, control.RuleSpec{Kind: KindRequired})
		}
		if prop != nil {
			specs = append(specs, SpecsFromOpenAPI(prop.Value)...)
		}
		out[name] = specs
	}
	return out, nil
}

func componentMissing(component string) error {
	return goerrors.Wrap(fmt.Errorf("rules: component schema %q not found", component), goerrors.CategoryNotFound, "openapi component missing").
		WithTextCode("OPENAPI_COMPONENT_MISSING")
}
