package config

import (
	"fmt"
	"strings"

	goerrors "github.com/goliatone/go-errors"
	theme "github.com/goliatone/go-theme"
)

// Theme tokens that override class prefixes.
const (
	TokenUIClassPrefix    = "ui-class-prefix"
	TokenSkinClassPrefix  = "skin-class-prefix"
	TokenStateClassPrefix = "state-class-prefix"
)

// FromTheme resolves name/variant through selector and layers the prefix
// tokens it carries over base. Variant tokens win over manifest tokens.
func FromTheme(selector theme.ThemeSelector, base Config, name, variant string) (Config, error) {
	if selector == nil {
		return base, nil
	}
	selection, err := selector.Select(name, variant)
	if err != nil {
		return base, goerrors.Wrap(fmt.Errorf("config: select theme %q: %w", name, err), goerrors.CategoryNotFound, "theme selection failed").
			WithTextCode(textCodeThemeFailed)
	}

	tokens := selectionTokens(selection)
	if v, ok := tokens[TokenUIClassPrefix]; ok {
		base.UIClassPrefix = v
	}
	if v, ok := tokens[TokenSkinClassPrefix]; ok {
		base.SkinClassPrefix = v
	}
	if v, ok := tokens[TokenStateClassPrefix]; ok {
		base.StateClassPrefix = v
	}
	return base, nil
}

func selectionTokens(selection *theme.Selection) map[string]string {
	out := map[string]string{}
	if selection == nil || selection.Manifest == nil {
		return out
	}
	for key, value := range selection.Manifest.Tokens {
		out[key] = strings.TrimSpace(value)
	}
	if selection.Variant == "" {
		return out
	}
	if v, ok := selection.Manifest.Variants[selection.Variant]; ok {
		for key, value := range v.Tokens {
			out[key] = strings.TrimSpace(value)
		}
	}
	return out
}
