// Package config loads the .cformat.yml file that controls which formatter is
// run, which files it applies to and which paths are excluded.
package config

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"

	"gopkg.in/yaml.v3"

	"github.com/andyballingall/cformat/internal/filter"
	"github.com/andyballingall/cformat/internal/fs"
	"github.com/andyballingall/cformat/internal/validator"
)

const (
	// FileName is the configuration file looked up in the repository root.
	FileName = ".cformat.yml"
	// EnvVar names an explicit configuration file.
	EnvVar = "CFORMAT_CONFIG"
	// DefaultFormatter is the formatter binary used when none is configured.
	DefaultFormatter = "clang-format"

	schemaID = "https://cformat.local/config.schema.json"
)

//go:embed config.schema.json
var schemaJSON []byte

const DefaultConfigContent = `# cformat configuration

# The clang-format binary to run. A bare name is looked up on PATH.
formatter: clang-format

# Optional value for clang-format's --style flag. Leave empty to let
# clang-format pick up the nearest .clang-format file.
style: ""

# File name suffixes that are formatted and checked.
extensions: [".c", ".h"]

# Regular expressions matched against the absolute, '/'-separated path of
# each candidate file. A match anywhere in the path excludes the file.
exclusions: []
`

type Config struct {
	Formatter  string   `yaml:"formatter"`
	Style      string   `yaml:"style"`
	Extensions []string `yaml:"extensions"`
	Exclusions []string `yaml:"exclusions"`

	// Path is the file the configuration was read from, or "" for defaults.
	Path string `yaml:"-"`

	filter *filter.Filter
}

// Default returns the built-in configuration used when no file exists.
func Default() *Config {
	f, _ := filter.New(nil)
	return &Config{
		Formatter:  DefaultFormatter,
		Extensions: slices.Clone(fs.DefaultExtensions),
		filter:     f,
	}
}

// Filter returns the compiled exclusion list.
func (c *Config) Filter() *filter.Filter {
	return c.filter
}

// Locate returns the configuration file to use. An explicit path wins,
// followed by the CFORMAT_CONFIG environment variable, then FileName in each
// of the search directories in order. It returns "" when nothing is found,
// and an error only when an explicitly requested file does not exist.
func Locate(explicit string, env fs.EnvProvider, searchDirs ...string) (string, error) {
	if explicit == "" && env != nil {
		explicit = env.Get(EnvVar)
	}
	if explicit != "" {
		if _, err := os.Stat(explicit); err != nil {
			return "", &MissingConfigError{Path: explicit}
		}
		return explicit, nil
	}

	for _, dir := range searchDirs {
		if dir == "" {
			continue
		}
		candidate := filepath.Join(dir, FileName)
		if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
			return candidate, nil
		}
	}
	return "", nil
}

// Load reads the configuration at path. An empty path yields Default().
func Load(path string, compiler validator.Compiler) (*Config, error) {
	if path == "" {
		return Default(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, &MissingConfigError{Path: path}
		}
		return nil, err
	}

	return Parse(path, data, compiler)
}

// Parse decodes and validates configuration data. path is used for messages only.
// A nil compiler gets a fresh santhosh compiler.
func Parse(path string, data []byte, compiler validator.Compiler) (*Config, error) {
	if compiler == nil {
		compiler = validator.NewSanthoshCompiler()
	}

	var raw any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, &InvalidYAMLError{Path: path, Wrapped: err}
	}

	// An empty file decodes to nil; treat it as an empty mapping.
	if raw != nil {
		if err := validate(compiler, raw); err != nil {
			return nil, &SchemaViolationError{Path: path, Wrapped: err}
		}
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, &InvalidYAMLError{Path: path, Wrapped: err}
	}
	cfg.Path = path

	if cfg.Formatter == "" {
		cfg.Formatter = DefaultFormatter
	}
	if len(cfg.Extensions) == 0 {
		cfg.Extensions = slices.Clone(fs.DefaultExtensions)
	}

	f, err := filter.New(cfg.Exclusions)
	if err != nil {
		return nil, &InvalidExclusionsError{Path: path, Wrapped: err}
	}
	cfg.filter = f

	return cfg, nil
}

func validate(compiler validator.Compiler, raw any) error {
	schema, err := validator.ParseJSON(schemaJSON)
	if err != nil {
		return fmt.Errorf("embedded schema is invalid: %w", err)
	}
	if err = compiler.AddSchema(schemaID, schema); err != nil {
		return err
	}
	v, err := compiler.Compile(schemaID)
	if err != nil {
		return err
	}

	doc, err := validator.Normalize(raw)
	if err != nil {
		return err
	}
	return v.Validate(doc)
}
