// Package config loads interpreter settings from a YAML file.
package config

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// EnvVar names the environment variable consulted when no path is given.
const EnvVar = "SANS_CONFIG"

// DefaultFile is looked up in the working directory as a last resort.
const DefaultFile = ".sans.yaml"

// Config captures interpreter and REPL settings.
type Config struct {
	Path           string `yaml:"-"`
	Diagnostics    bool   `yaml:"diagnostics"`
	TypeAdvice     bool   `yaml:"type_advice"`
	LenientArity   bool   `yaml:"lenient_arity"`
	SourceSnippets bool   `yaml:"source_snippets"`
	LogLevel       string `yaml:"log_level"`
	ParseCache     int    `yaml:"parse_cache"`
	HistoryFile    string `yaml:"history_file"`
}

// Default returns the settings used when no file is found.
func Default() *Config {
	cfg := &Config{LogLevel: "warn", ParseCache: 64}
	if home, err := os.UserHomeDir(); err == nil {
		cfg.HistoryFile = filepath.Join(home, ".sans_history")
	}
	return cfg
}

// Locate picks the config path: the explicit argument, then $SANS_CONFIG,
// then ./.sans.yaml if it exists. An empty result means defaults only.
func Locate(explicit string) string {
	if explicit != "" {
		return explicit
	}
	if p := strings.TrimSpace(os.Getenv(EnvVar)); p != "" {
		return p
	}
	if _, err := os.Stat(DefaultFile); err == nil {
		return DefaultFile
	}
	return ""
}

// Load parses the file at path over the defaults. An empty path yields the
// defaults unchanged.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("config: resolve %s: %w", path, err)
	}
	file, err := os.Open(abs)
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	defer file.Close()

	decoder := yaml.NewDecoder(file)
	decoder.KnownFields(true)
	if err := decoder.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("config: parse %s: %w", abs, err)
	}
	cfg.Path = abs
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config: %s: %w", abs, err)
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.ParseCache < 0 {
		return fmt.Errorf("parse_cache must not be negative, got %d", c.ParseCache)
	}
	if _, err := c.Level(); err != nil {
		return err
	}
	return nil
}

// Level converts LogLevel into a slog level. Empty means warn.
func (c *Config) Level() (slog.Level, error) {
	var lvl slog.Level
	if c.LogLevel == "" {
		return slog.LevelWarn, nil
	}
	if err := lvl.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return 0, fmt.Errorf("log_level: %w", err)
	}
	return lvl, nil
}
