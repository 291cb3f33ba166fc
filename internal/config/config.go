// Package config loads parsekit's settings from a TOML or YAML file.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/dhamidi/parsekit/parse/chars"
	"gopkg.in/yaml.v3"
)

// EnvVar names the config file when no path is given explicitly.
const EnvVar = "PARSEKIT_CONFIG"

// Format is a configuration file format.
type Format int

const (
	FormatAuto Format = iota
	FormatTOML
	FormatYAML
)

func (f Format) String() string {
	switch f {
	case FormatTOML:
		return "toml"
	case FormatYAML:
		return "yaml"
	case FormatAuto:
		return "auto"
	default:
		return "unknown"
	}
}

type Config struct {
	// Verbosity is passed to commonlog.Configure: 0 logs errors only,
	// each step adds a level up to debug.
	Verbosity int    `toml:"verbosity" yaml:"verbosity"`
	LogFile   string `toml:"log_file" yaml:"log_file"`
	// Format is the output format of the parse command: text, json or kv.
	Format string `toml:"format" yaml:"format"`
	Scan   Scan   `toml:"scan" yaml:"scan"`
	LSP    LSP    `toml:"lsp" yaml:"lsp"`
}

type Scan struct {
	Class string `toml:"class" yaml:"class"`
	Gaps  bool   `toml:"gaps" yaml:"gaps"`
}

type LSP struct {
	Name string `toml:"name" yaml:"name"`
}

// Default returns the settings used when no file is loaded.
func Default() Config {
	return Config{
		Verbosity: 0,
		Format:    "text",
		Scan:      Scan{Class: "alnum"},
		LSP:       LSP{Name: "parsekit"},
	}
}

// Validate checks that enumerated settings hold known values.
func (c Config) Validate() error {
	var errs []error
	if c.Verbosity < 0 {
		errs = append(errs, fmt.Errorf("verbosity must not be negative, got %d", c.Verbosity))
	}
	switch c.Format {
	case "text", "json", "kv":
	default:
		errs = append(errs, fmt.Errorf("format must be text, json or kv, got %q", c.Format))
	}
	if _, ok := chars.Class(c.Scan.Class); !ok {
		errs = append(errs, fmt.Errorf("scan.class must be one of %s, got %q",
			strings.Join(chars.ClassNames(), ", "), c.Scan.Class))
	}
	if c.LSP.Name == "" {
		errs = append(errs, errors.New("lsp.name must not be empty"))
	}
	return errors.Join(errs...)
}

// DetectFormat picks a format from the file extension, defaulting to TOML.
func DetectFormat(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatTOML
	}
}

// Parse decodes content over the defaults and validates the result.
func Parse(content []byte, format Format) (Config, error) {
	cfg := Default()

	switch format {
	case FormatTOML:
		if _, err := toml.Decode(string(content), &cfg); err != nil {
			return Config{}, fmt.Errorf("decode toml: %w", err)
		}
	case FormatYAML:
		if err := yaml.Unmarshal(content, &cfg); err != nil {
			return Config{}, fmt.Errorf("decode yaml: %w", err)
		}
	default:
		return Config{}, fmt.Errorf("unsupported config format: %s", format)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// Load reads the file at path. An empty path falls back to $PARSEKIT_CONFIG,
// and if that is unset too, the defaults are returned.
func Load(path string) (Config, error) {
	if path == "" {
		path = os.Getenv(EnvVar)
	}
	if path == "" {
		return Default(), nil
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	cfg, err := Parse(content, DetectFormat(path))
	if err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}
