package config

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"sync"

	goerrors "github.com/goliatone/go-errors"
	"github.com/santhosh-tekuri/jsonschema/v5"
	"gopkg.in/yaml.v3"
)

const documentSchema = `{
  "$schema": "https://json-schema.org/draft/2020-12/schema",
  "type": "object",
  "properties": {
    "uiClassPrefix": { "type": "string" },
    "skinClassPrefix": { "type": "string" },
    "stateClassPrefix": { "type": "string" },
    "idPrefix": { "type": "string" },
    "logging": {
      "type": "object",
      "properties": {
        "level": { "enum": ["", "trace", "debug", "info", "warn", "warning", "error", "fatal"] },
        "format": { "enum": ["", "json", "console", "pretty"] }
      },
      "additionalProperties": false
    },
    "extras": {
      "type": "object",
      "additionalProperties": { "type": "string" }
    }
  },
  "additionalProperties": false
}`

var (
	schemaOnce     sync.Once
	compiledSchema *jsonschema.Schema
	schemaErr      error
)

// Parse decodes a YAML (or JSON) document. Keys absent from the document
// stay empty: the document is not layered over Default.
func Parse(data []byte, source string) (Config, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return Config{}, parseError(fmt.Errorf("config: %s is empty", source))
	}

	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return Config{}, parseError(fmt.Errorf("config: decode %s: %w", source, err))
	}
	if err := validateDocument(raw); err != nil {
		return Config{}, goerrors.Wrap(fmt.Errorf("config: %s: %w", source, err), goerrors.CategoryValidation, "config schema validation failed").
			WithTextCode(textCodeSchemaInvalid)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, parseError(fmt.Errorf("config: decode %s: %w", source, err))
	}
	return cfg, nil
}

// LoadFS reads and parses path from fsys.
func LoadFS(fsys fs.FS, path string) (Config, error) {
	if fsys == nil {
		return Config{}, parseError(fmt.Errorf("config: filesystem is nil"))
	}
	data, err := fs.ReadFile(fsys, path)
	if err != nil {
		return Config{}, parseError(fmt.Errorf("config: read %s: %w", path, err))
	}
	return Parse(data, path)
}

// LoadFile reads and parses a file from disk.
func LoadFile(path string) (Config, error) {
	path = strings.TrimSpace(path)
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, parseError(fmt.Errorf("config: read %s: %w", path, err))
	}
	return Parse(data, path)
}

// Issues flattens schema validation causes into "location: message" lines.
func Issues(err error) []string {
	var validationErr *jsonschema.ValidationError
	if !errors.As(err, &validationErr) {
		if err == nil {
			return nil
		}
		return []string{err.Error()}
	}
	var out []string
	var walk func(*jsonschema.ValidationError)
	walk = func(node *jsonschema.ValidationError) {
		if node == nil {
			return
		}
		if len(node.Causes) == 0 {
			location := strings.TrimSpace(node.InstanceLocation)
			if location == "" {
				location = "/"
			}
			out = append(out, location+": "+strings.TrimSpace(node.Message))
			return
		}
		for _, cause := range node.Causes {
			walk(cause)
		}
	}
	walk(validationErr)
	return out
}

func validateDocument(raw map[string]any) error {
	schema, err := documentValidator()
	if err != nil {
		return err
	}
	if raw == nil {
		raw = map[string]any{}
	}
	// Round trip through JSON so YAML scalars land on the types the
	// validator understands.
	encoded, err := json.Marshal(raw)
	if err != nil {
		return err
	}
	var doc any
	if err := json.Unmarshal(encoded, &doc); err != nil {
		return err
	}
	return schema.Validate(doc)
}

func documentValidator() (*jsonschema.Schema, error) {
	schemaOnce.Do(func() {
		compiler := jsonschema.NewCompiler()
		compiler.Draft = jsonschema.Draft2020
		if err := compiler.AddResource("uicontrol-config.json", strings.NewReader(documentSchema)); err != nil {
			schemaErr = err
			return
		}
		compiledSchema, schemaErr = compiler.Compile("uicontrol-config.json")
	})
	return compiledSchema, schemaErr
}

func parseError(err error) error {
	return goerrors.Wrap(err, goerrors.CategoryValidation, "config parse failed").
		WithTextCode(textCodeParseFailed)
}
