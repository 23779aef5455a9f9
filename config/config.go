// Package config loads settings for the erminia command line tools from a
// YAML or TOML file.
package config

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Format is the encoding of a configuration file.
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
	}
	return "unknown"
}

type Config struct {
	Output Output `yaml:"output" toml:"output"`
	REPL   REPL   `yaml:"repl" toml:"repl"`
	Log    Log    `yaml:"log" toml:"log"`

	path string
}

type Output struct {
	// Format is the syntax tree encoding: text, json or yaml.
	Format    string `yaml:"format" toml:"format"`
	Positions bool   `yaml:"positions" toml:"positions"`
	Color     bool   `yaml:"color" toml:"color"`
}

type REPL struct {
	Prompt     string `yaml:"prompt" toml:"prompt"`
	ShowTokens bool   `yaml:"show_tokens" toml:"show_tokens"`
	ShowTree   bool   `yaml:"show_tree" toml:"show_tree"`
}

type Log struct {
	Verbosity int    `yaml:"verbosity" toml:"verbosity"`
	File      string `yaml:"file" toml:"file"`
}

func Default() *Config {
	return &Config{
		Output: Output{Format: "text", Color: true},
		REPL:   REPL{Prompt: "-> ", ShowTokens: true, ShowTree: true},
	}
}

// Path returns the file the configuration was loaded from, or "" for the
// defaults.
func (c *Config) Path() string {
	return c.path
}

// Load reads the file at path on top of the defaults. The format is taken
// from the file extension; anything other than .yaml or .yml is TOML.
func Load(path string) (*Config, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "read config %s", path)
	}
	cfg, err := Parse(content, detectFormat(path))
	if err != nil {
		return nil, errors.Wrapf(err, "load config %s", path)
	}
	cfg.path = path
	return cfg, nil
}

// Parse decodes content on top of the defaults.
func Parse(content []byte, format Format) (*Config, error) {
	cfg := Default()
	if err := parseContent(content, format, cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func detectFormat(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatTOML
	}
}

func parseContent(content []byte, format Format, cfg *Config) error {
	switch format {
	case FormatTOML:
		if _, err := toml.NewDecoder(bytes.NewReader(content)).Decode(cfg); err != nil {
			return errors.Wrap(err, "TOML parse error")
		}
	case FormatYAML:
		if len(bytes.TrimSpace(content)) == 0 {
			return nil
		}
		dec := yaml.NewDecoder(bytes.NewReader(content))
		dec.KnownFields(true)
		if err := dec.Decode(cfg); err != nil {
			return errors.Wrap(err, "YAML parse error")
		}
	default:
		return errors.Errorf("unsupported format: %s", format)
	}
	return nil
}

var outputFormats = []string{"text", "json", "yaml"}

// Validate reports settings no command could honor.
func (c *Config) Validate() error {
	valid := false
	for _, f := range outputFormats {
		if c.Output.Format == f {
			valid = true
			break
		}
	}
	if !valid {
		return errors.Errorf("output.format %q is not one of %s", c.Output.Format, strings.Join(outputFormats, ", "))
	}
	if c.Log.Verbosity < 0 {
		return errors.Errorf("log.verbosity must not be negative, got %d", c.Log.Verbosity)
	}
	return nil
}
