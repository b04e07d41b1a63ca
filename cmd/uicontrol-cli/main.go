package main

import (
	"context"
	_ "embed"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"strings"

	theme "github.com/goliatone/go-theme"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"
	"github.com/spf13/pflag"
	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-uicontrol/internal/logging"
	"github.com/goliatone/go-uicontrol/internal/logging/gologger"
	"github.com/goliatone/go-uicontrol/pkg/config"
	"github.com/goliatone/go-uicontrol/pkg/helper"
	"github.com/goliatone/go-uicontrol/pkg/identity"
	"github.com/goliatone/go-uicontrol/pkg/interfaces"
	"github.com/goliatone/go-uicontrol/pkg/metrics"
	"github.com/goliatone/go-uicontrol/pkg/rules"
	"github.com/goliatone/go-uicontrol/pkg/surface"
	"github.com/goliatone/go-uicontrol/pkg/widgets"
)

//go:embed sample.yaml
var sampleLayout []byte

type options struct {
	configPath   string
	layoutPath   string
	themePath    string
	themeVariant string
	openAPIPath  string
	component    string
	surface      string
	values       []string
	output       string
	logLevel     string
	uuidIDs      bool
	dumpMetrics  bool
	dumpData     bool
}

func main() {
	opts := options{}
	pflag.StringVar(&opts.configPath, "config", "", "YAML config file (defaults apply when empty)")
	pflag.StringVar(&opts.layoutPath, "layout", "", "YAML layout file (built-in signup form when empty)")
	pflag.StringVar(&opts.themePath, "theme", "", "YAML theme manifest providing class prefix tokens")
	pflag.StringVar(&opts.themeVariant, "theme-variant", "", "theme variant to apply")
	pflag.StringVar(&opts.openAPIPath, "openapi", "", "OpenAPI document to derive field rules from")
	pflag.StringVar(&opts.component, "component", "", "component schema name inside the OpenAPI document")
	pflag.StringVar(&opts.surface, "surface", "inline", "validity surface: log, prompt or inline")
	pflag.StringArrayVar(&opts.values, "set", nil, "field value as name=value (repeatable)")
	pflag.StringVarP(&opts.output, "output", "o", "", "output file for the rendered HTML (stdout if empty)")
	pflag.StringVar(&opts.logLevel, "log-level", "", "override the configured log level")
	pflag.BoolVar(&opts.uuidIDs, "uuid-ids", false, "generate control ids from UUIDs")
	pflag.BoolVar(&opts.dumpMetrics, "metrics", false, "print lifecycle metrics after disposal")
	pflag.BoolVar(&opts.dumpData, "data", false, "print the collected form data as JSON")
	pflag.Parse()

	valid, err := run(context.Background(), opts)
	if err != nil {
		log.Fatalf("uicontrol: %v", err)
	}
	if !valid {
		os.Exit(2)
	}
}

func run(ctx context.Context, opts options) (bool, error) {
	cfg, err := loadConfig(opts)
	if err != nil {
		return false, err
	}

	logOpts := gologger.OptionsFrom(cfg.Logging)
	if opts.logLevel != "" {
		logOpts.Level = opts.logLevel
	}
	provider, err := gologger.NewProvider(logOpts)
	if err != nil {
		return false, err
	}
	logger := logging.ModuleLogger(provider, logging.RootModule).WithContext(ctx)
	if err := cfg.Validate(); err != nil {
		logger.Warn("config has empty prefixes", "error", err)
	}

	registry := prometheus.NewRegistry()
	observer, err := metrics.NewObserver(registry)
	if err != nil {
		return false, err
	}
	display, err := selectSurface(opts.surface, cfg, provider)
	if err != nil {
		return false, err
	}

	helperOpts := []helper.Option{
		helper.WithConfig(cfg),
		helper.WithLoggerProvider(provider),
		helper.WithSurface(display),
		helper.WithObserver(observer),
	}
	if opts.uuidIDs {
		helperOpts = append(helperOpts, helper.WithIDSource(identity.UUIDSource{Prefix: cfg.IDPrefix}))
	}
	controls := widgets.NewRegistry(helper.New(helperOpts...))

	form, err := buildForm(controls, opts.layoutPath)
	if err != nil {
		return false, err
	}
	defer func() {
		form.Dispose()
		if opts.dumpMetrics {
			if err := writeMetrics(registry); err != nil {
				logger.Error("write metrics", "error", err)
			}
		}
	}()

	if opts.openAPIPath != "" {
		if err := applyOpenAPI(ctx, form, opts.openAPIPath, opts.component); err != nil {
			return false, err
		}
	}
	values, err := parseValues(opts.values)
	if err != nil {
		return false, err
	}
	form.SetValues(values)

	form.Render()
	valid := form.Validate(false)
	logger.Info("form validated", "form", form.ID, "valid", valid)

	if err := writeOutput(opts.output, form.HTML()); err != nil {
		return valid, err
	}
	if opts.dumpData {
		data, err := json.MarshalIndent(form.GetData(), "", "  ")
		if err != nil {
			return valid, err
		}
		fmt.Println(string(data))
	}
	return valid, nil
}

func loadConfig(opts options) (config.Config, error) {
	cfg := config.Default()
	if opts.configPath != "" {
		loaded, err := config.LoadFile(opts.configPath)
		if err != nil {
			if issues := config.Issues(err); len(issues) > 0 {
				return cfg, fmt.Errorf("%w: %s", err, strings.Join(issues, "; "))
			}
			return cfg, err
		}
		cfg = loaded
	}
	if opts.themePath == "" {
		return cfg, nil
	}
	selector, name, err := loadTheme(opts.themePath)
	if err != nil {
		return cfg, err
	}
	return config.FromTheme(selector, cfg, name, opts.themeVariant)
}

func selectSurface(name string, cfg config.Config, provider interfaces.LoggerProvider) (helper.Surface, error) {
	logSurface := surface.NewLog(logging.ModuleLogger(provider, logging.SurfaceModule))
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "log":
		return logSurface, nil
	case "prompt":
		return surface.Multi{logSurface, surface.NewPrompt()}, nil
	case "", "inline":
		inline, err := surface.NewInline(surface.WithClassPrefix(cfg.UIClassPrefix))
		if err != nil {
			return nil, err
		}
		return surface.Multi{logSurface, inline}, nil
	default:
		return nil, fmt.Errorf("unknown surface %q", name)
	}
}

func buildForm(controls *widgets.Registry, path string) (*widgets.Form, error) {
	data := sampleLayout
	if path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read layout: %w", err)
		}
		data = raw
	}
	layout, err := widgets.ParseLayout(data)
	if err != nil {
		return nil, err
	}
	root, err := controls.Build(layout)
	if err != nil {
		return nil, err
	}
	form, ok := root.(*widgets.Form)
	if !ok {
		root.Dispose()
		return nil, fmt.Errorf("layout root must be a %s, got %s", widgets.TypeForm, root.Core().Type)
	}
	return form, nil
}

func applyOpenAPI(ctx context.Context, form *widgets.Form, path, component string) error {
	if component == "" {
		return fmt.Errorf("--component is required with --openapi")
	}
	doc, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read openapi document: %w", err)
	}
	specs, err := rules.LoadOpenAPISpecs(ctx, doc, component)
	if err != nil {
		return err
	}
	form.ApplyValidations(specs)
	return nil
}

func parseValues(pairs []string) (map[string]string, error) {
	values := make(map[string]string, len(pairs))
	for _, pair := range pairs {
		name, value, ok := strings.Cut(pair, "=")
		name = strings.TrimSpace(name)
		if !ok || name == "" {
			return nil, fmt.Errorf("invalid --set %q, expected name=value", pair)
		}
		values[name] = value
	}
	return values, nil
}

func writeOutput(path, html string) error {
	if path == "" {
		fmt.Println(html)
		return nil
	}
	if err := os.WriteFile(path, []byte(html+"\n"), 0o644); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	fmt.Printf("Form written to %s\n", path)
	return nil
}

func writeMetrics(registry *prometheus.Registry) error {
	families, err := registry.Gather()
	if err != nil {
		return err
	}
	for _, family := range families {
		if _, err := expfmt.MetricFamilyToText(os.Stdout, family); err != nil {
			return err
		}
	}
	return nil
}

// themeFile is the YAML shape read by --theme.
type themeFile struct {
	Name     string                       `yaml:"name"`
	Version  string                       `yaml:"version"`
	Tokens   map[string]string            `yaml:"tokens"`
	Variants map[string]map[string]string `yaml:"variants"`
}

// manifestSelector serves a single manifest regardless of the requested
// theme name.
type manifestSelector struct {
	manifest *theme.Manifest
}

func (s manifestSelector) Select(_ string, variant string, _ ...theme.QueryOption) (*theme.Selection, error) {
	if variant != "" {
		if _, ok := s.manifest.Variants[variant]; !ok {
			return nil, fmt.Errorf("theme %q has no variant %q", s.manifest.Name, variant)
		}
	}
	return &theme.Selection{Theme: s.manifest.Name, Variant: variant, Manifest: s.manifest}, nil
}

func loadTheme(path string) (theme.ThemeSelector, string, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, "", fmt.Errorf("read theme: %w", err)
	}
	var file themeFile
	if err := yaml.Unmarshal(raw, &file); err != nil {
		return nil, "", fmt.Errorf("parse theme: %w", err)
	}
	manifest := &theme.Manifest{
		Name:     file.Name,
		Version:  file.Version,
		Tokens:   file.Tokens,
		Variants: map[string]theme.Variant{},
	}
	for name, tokens := range file.Variants {
		manifest.Variants[name] = theme.Variant{Tokens: tokens}
	}
	return manifestSelector{manifest: manifest}, file.Name, nil
}
