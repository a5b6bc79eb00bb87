package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/kievzenit/snuplc/internal/target"
)

const (
	EnvTarget   = "SNUPLC_TARGET"
	EnvLogLevel = "SNUPLC_LOG_LEVEL"
)

var ErrUnknownFormat = errors.New("unknown config file format")

// Config holds the compiler settings shared by all commands.
type Config struct {
	Target               string `toml:"target" yaml:"target"`
	LogLevel             string `toml:"log_level" yaml:"log_level"`
	ImplicitDeclarations bool   `toml:"implicit_declarations" yaml:"implicit_declarations"`
	Color                bool   `toml:"color" yaml:"color"`

	DumpAST    bool `toml:"dump_ast" yaml:"dump_ast"`
	DumpSymtab bool `toml:"dump_symtab" yaml:"dump_symtab"`
}

func Default() *Config {
	return &Config{
		Target:   target.DefaultKey,
		LogLevel: "warn",
		Color:    true,
	}
}

// Load reads a TOML or YAML file, picked by extension, on top of Default.
func Load(path string) (*Config, error) {
	path = os.ExpandEnv(path)

	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	cfg := Default()
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		if _, err := toml.Decode(string(content), cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(content, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
		}
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownFormat, path)
	}

	return cfg, nil
}

// ApplyEnv overrides settings from SNUPLC_* environment variables.
func (c *Config) ApplyEnv() {
	if v, ok := os.LookupEnv(EnvTarget); ok && v != "" {
		c.Target = v
	}
	if v, ok := os.LookupEnv(EnvLogLevel); ok && v != "" {
		c.LogLevel = v
	}
}

func (c *Config) Validate() error {
	if _, err := target.Lookup(c.Target); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	if _, err := c.Level(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	return nil
}

// Level converts LogLevel to a slog level.
func (c *Config) Level() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return 0, fmt.Errorf("unknown log level %q", c.LogLevel)
	}

	return level, nil
}

// Encode writes the configuration in TOML.
func (c *Config) Encode() (string, error) {
	var sb strings.Builder
	if err := toml.NewEncoder(&sb).Encode(c); err != nil {
		return "", fmt.Errorf("failed to encode config: %w", err)
	}

	return sb.String(), nil
}
