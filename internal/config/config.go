package config

import (
	"bytes"
	"errors"
	"io"
	"io/fs"
	"os"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	ferrors "git.home.luguber.info/inful/snippetdoc/internal/foundation/errors"
)

// DefaultPath is read when no configuration file is named explicitly.
const DefaultPath = "snippetdoc.yaml"

// Config represents the application configuration. Every field has a
// default, so a missing file yields the stock layout: template.html in the
// working directory, examples under examples/, index.html and
// docs-output/bundle.js as outputs.
type Config struct {
	Template  TemplateConfig  `yaml:"template"`
	Examples  ExamplesConfig  `yaml:"examples"`
	Highlight HighlightConfig `yaml:"highlight"`
	Bundle    BundleConfig    `yaml:"bundle"`
	Output    OutputConfig    `yaml:"output"`
	Metrics   MetricsConfig   `yaml:"metrics,omitempty"`
}

// TemplateConfig selects the page template.
type TemplateConfig struct {
	Dir  string         `yaml:"dir"`
	Name string         `yaml:"name"`
	Data map[string]any `yaml:"data,omitempty"` // exposed to the template as variables
}

// ExamplesConfig locates example files and their marker lines.
type ExamplesConfig struct {
	Dir        string `yaml:"dir"`
	Prelude    string `yaml:"prelude"`
	Postscript string `yaml:"postscript"`
}

// HighlightConfig controls syntax highlighting.
type HighlightConfig struct {
	Lexer        string `yaml:"lexer"`
	Style        string `yaml:"style"`
	WrapperClass string `yaml:"wrapper_class"`
	LineNumbers  bool   `yaml:"line_numbers,omitempty"`
	TabWidth     int    `yaml:"tab_width,omitempty"`
}

// BundleConfig describes the external bundler invocation.
type BundleConfig struct {
	Command    string   `yaml:"command"`
	Args       []string `yaml:"args"`
	OutputFlag string   `yaml:"output_flag"`
	EntryDir   string   `yaml:"entry_dir"` // where the temporary entry script is written
	Header     string   `yaml:"header"`    // first entry of the concatenated script
	Skip       bool     `yaml:"skip,omitempty"`
}

// OutputConfig names the files the build writes.
type OutputConfig struct {
	Page   string `yaml:"page"`
	Bundle string `yaml:"bundle"`
	Styles string `yaml:"styles,omitempty"` // highlight stylesheet; empty disables it
}

// MetricsConfig enables the Prometheus textfile export.
type MetricsConfig struct {
	Textfile string `yaml:"textfile,omitempty"`
}

// Load reads the configuration at path. An empty path falls back to
// DefaultPath when it exists and to pure defaults otherwise. Variables from
// a .env file in the working directory are loaded first (never overriding
// the process environment) and ${VAR} references in the file are expanded.
func Load(path string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, ferrors.WrapError(err, ferrors.CategoryConfig, "load .env file").Fatal().Build()
	}

	explicit := path != ""
	if !explicit {
		path = DefaultPath
	}

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
	case errors.Is(err, fs.ErrNotExist) && !explicit:
		return Default(), nil
	case errors.Is(err, fs.ErrNotExist):
		return nil, ferrors.ConfigError("configuration file not found").
			WithCause(err).
			WithContext("path", path).
			Build()
	default:
		return nil, ferrors.WrapError(err, ferrors.CategoryConfig, "read configuration file").
			Fatal().
			WithContext("path", path).
			Build()
	}

	cfg, err := Parse(data)
	if err != nil {
		if c, ok := ferrors.AsClassified(err); ok {
			return nil, c.WithContext("path", path)
		}
		return nil, err
	}
	return cfg, nil
}

// Parse decodes YAML, expands environment variables, applies defaults and validates.
func Parse(data []byte) (*Config, error) {
	expanded := os.ExpandEnv(string(data))

	var cfg Config
	dec := yaml.NewDecoder(bytes.NewReader([]byte(expanded)))
	dec.KnownFields(true)
	// An empty document decodes to io.EOF and means "all defaults".
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, ferrors.WrapError(err, ferrors.CategoryConfig, "parse configuration").Fatal().Build()
	}

	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}
