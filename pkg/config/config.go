// Package config holds the toolkit-wide settings the control core reads
// through Get: class prefixes, the id prefix and logging options.
package config

import (
	"errors"
	"fmt"
	"strings"

	goerrors "github.com/goliatone/go-errors"

	"github.com/goliatone/go-uicontrol/pkg/classes"
)

// Keys served by Config.Get. The prefix keys are the ones the class
// deriver reads.
const (
	KeyUIClassPrefix    = classes.KeyUIClassPrefix
	KeySkinClassPrefix  = classes.KeySkinClassPrefix
	KeyStateClassPrefix = classes.KeyStateClassPrefix
	KeyIDPrefix         = "idPrefix"
)

const (
	textCodeParseFailed   = "CONFIG_PARSE_FAILED"
	textCodeSchemaInvalid = "CONFIG_SCHEMA_INVALID"
	textCodePrefixMissing = "CONFIG_PREFIX_MISSING"
	textCodeThemeFailed   = "CONFIG_THEME_FAILED"
)

// ErrPrefixMissing reports an empty class prefix. Empty prefixes are still
// used verbatim; Validate only surfaces them.
var ErrPrefixMissing = errors.New("config: class prefix is empty")

// LoggingConfig selects the logger level and output format.
type LoggingConfig struct {
	Level  string `json:"level,omitempty" yaml:"level,omitempty"`
	Format string `json:"format,omitempty" yaml:"format,omitempty"`
}

// Config aggregates the settings consumed by the control core.
type Config struct {
	UIClassPrefix    string            `json:"uiClassPrefix" yaml:"uiClassPrefix"`
	SkinClassPrefix  string            `json:"skinClassPrefix" yaml:"skinClassPrefix"`
	StateClassPrefix string            `json:"stateClassPrefix" yaml:"stateClassPrefix"`
	IDPrefix         string            `json:"idPrefix,omitempty" yaml:"idPrefix,omitempty"`
	Logging          LoggingConfig     `json:"logging,omitempty" yaml:"logging,omitempty"`
	Extras           map[string]string `json:"extras,omitempty" yaml:"extras,omitempty"`
}

// Default returns the settings used when the host supplies none.
func Default() Config {
	return Config{
		UIClassPrefix:    "ui",
		SkinClassPrefix:  "skin",
		StateClassPrefix: "state",
		IDPrefix:         "uic",
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
	}
}

// Get returns the named setting. Unknown names are looked up in Extras and
// yield "" when absent.
func (c Config) Get(name string) string {
	switch name {
	case KeyUIClassPrefix:
		return c.UIClassPrefix
	case KeySkinClassPrefix:
		return c.SkinClassPrefix
	case KeyStateClassPrefix:
		return c.StateClassPrefix
	case KeyIDPrefix:
		return c.IDPrefix
	}
	return c.Extras[name]
}

// Validate reports empty class prefixes. It never rewrites the config:
// an empty prefix produces class names such as "-button".
func (c Config) Validate() error {
	var missing []string
	if strings.TrimSpace(c.UIClassPrefix) == "" {
		missing = append(missing, KeyUIClassPrefix)
	}
	if strings.TrimSpace(c.SkinClassPrefix) == "" {
		missing = append(missing, KeySkinClassPrefix)
	}
	if strings.TrimSpace(c.StateClassPrefix) == "" {
		missing = append(missing, KeyStateClassPrefix)
	}
	if len(missing) == 0 {
		return nil
	}
	err := fmt.Errorf("%w: %s", ErrPrefixMissing, strings.Join(missing, ", "))
	return goerrors.Wrap(err, goerrors.CategoryValidation, "config validation failed").
		WithTextCode(textCodePrefixMissing)
}
