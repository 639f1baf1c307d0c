// Package config provides configuration file parsing for textstat.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// FileName is the name of the config file inside the config directory.
const FileName = "config.yaml"

// Color modes accepted by the color setting.
const (
	ColorAuto   = "auto"
	ColorAlways = "always"
	ColorNever  = "never"
)

// Config holds the user's persistent textstat settings.
type Config struct {
	TopWords      int    `yaml:"top_words"`      // rows shown by freq and show
	IncludeSpaces bool   `yaml:"include_spaces"` // default for the char count shown first
	Color         string `yaml:"color"`          // "auto", "always" or "never"
	DBPath        string `yaml:"db_path"`        // empty means ~/.textstat/textstat.db
}

// Default returns the built-in settings used when no config file exists.
func Default() *Config {
	return &Config{
		TopWords:      10,
		IncludeSpaces: true,
		Color:         ColorAuto,
	}
}

// Dir returns the textstat config directory, respecting XDG_CONFIG_HOME.
// Defaults to ~/.config/textstat if XDG_CONFIG_HOME is not set.
func Dir() (string, error) {
	base := os.Getenv("XDG_CONFIG_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		base = filepath.Join(home, ".config")
	}
	return filepath.Join(base, "textstat"), nil
}

// Load reads {dir}/config.yaml on top of the defaults. If the file does not
// exist, the defaults are returned without an error.
func Load(dir string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(filepath.Join(dir, FileName))
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Save writes cfg to {dir}/config.yaml, creating the directory if needed.
func Save(dir string, cfg *Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}

	out, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	if err := os.WriteFile(filepath.Join(dir, FileName), out, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	return nil
}

// Validate reports the first invalid setting.
func (c *Config) Validate() error {
	if c.TopWords < 0 {
		return fmt.Errorf("invalid top_words: %d (must not be negative)", c.TopWords)
	}
	switch c.Color {
	case ColorAuto, ColorAlways, ColorNever:
	default:
		return fmt.Errorf("invalid color: %q (want auto, always or never)", c.Color)
	}
	return nil
}
