// Package config loads flexpeg settings from a TOML or YAML file.
package config

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// EnvVar names the environment variable holding config file path.
const EnvVar = "FLEXPEG_CONFIG"

// Format represents the configuration file format
type Format int

const (
	FormatTOML Format = iota
	FormatYAML
)

func (f Format) String() string {
	switch f {
	case FormatTOML:
		return "toml"
	case FormatYAML:
		return "yaml"
	default:
		return "unknown"
	}
}

// Config holds settings that may also be given as command line flags.
type Config struct {
	// Grammar is the namespace qualifier, e.g. "A::B::Grammar".
	Grammar         string `toml:"grammar" yaml:"grammar"`
	CaseInsensitive bool   `toml:"case_insensitive" yaml:"case_insensitive"`
	// Output is the grammar file path, empty means standard output.
	Output string `toml:"output" yaml:"output"`
	Force  bool   `toml:"force" yaml:"force"`
	// Buffered makes output written at once after successful translation.
	Buffered  bool   `toml:"buffered" yaml:"buffered"`
	LogLevel  string `toml:"log_level" yaml:"log_level"`
	LogFormat string `toml:"log_format" yaml:"log_format"`
}

// Default returns settings used when nothing is configured.
func Default() *Config {
	return &Config{
		LogLevel:  "info",
		LogFormat: "text",
	}
}

// DetectFormat returns file format by extension, TOML is the default.
func DetectFormat(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatTOML
	}
}

// Load reads config file at path. Environment variables in path are expanded.
// Settings missing in the file keep default values.
func Load(path string) (*Config, error) {
	path = os.ExpandEnv(path)
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read config file %s", path)
	}

	cfg, err := Parse(content, DetectFormat(path))
	if err != nil {
		return nil, errors.Wrapf(err, "failed to parse config file %s", path)
	}
	return cfg, nil
}

// LoadFromEnv loads config file named by EnvVar.
// Returns default settings if the variable is not set.
func LoadFromEnv() (*Config, error) {
	path := os.Getenv(EnvVar)
	if path == "" {
		return Default(), nil
	}
	return Load(path)
}

// Parse decodes config content in given format over default settings.
func Parse(content []byte, format Format) (*Config, error) {
	cfg := Default()
	switch format {
	case FormatTOML:
		md, err := toml.Decode(string(content), cfg)
		if err != nil {
			return nil, errors.Wrap(err, "TOML parse error")
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			return nil, errors.Errorf("unknown setting %q", undecoded[0].String())
		}

	case FormatYAML:
		dec := yaml.NewDecoder(bytes.NewReader(content))
		dec.KnownFields(true)
		if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
			return nil, errors.Wrap(err, "YAML parse error")
		}

	default:
		return nil, errors.Errorf("unsupported format: %s", format)
	}

	cfg.Output = os.ExpandEnv(cfg.Output)
	return cfg, nil
}
