// Package config provides Viper-based configuration for the Fablecore
// command and constructs the structured logger the drivers share.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Config holds all runtime settings for the command.
type Config struct {
	Saves   SavesConfig   `mapstructure:"saves"`
	Logging LoggingConfig `mapstructure:"logging"`
	UI      UIConfig      `mapstructure:"ui"`
}

// SavesConfig holds save-file settings.
type SavesConfig struct {
	// Dir is where save records are written.
	Dir string `mapstructure:"dir"`
}

// LoggingConfig holds structured logging settings.
type LoggingConfig struct {
	// Level is the minimum log level: "debug", "info", "warn", "error".
	Level string `mapstructure:"level"`
	// Format is the log output format: "json" or "console".
	Format string `mapstructure:"format"`
	// File is the log destination. Required because the terminal is owned
	// by the game UI; empty disables logging entirely.
	File string `mapstructure:"file"`
}

// UIConfig holds driver selection settings.
type UIConfig struct {
	// Plain selects the line-based driver instead of the full-screen TUI.
	Plain bool `mapstructure:"plain"`
}

// Load reads configuration from the given file (optional), the environment
// (FABLECORE_ prefix), and defaults, then validates it.
func Load(path string) (*Config, error) {
	v := viper.New()

	home, _ := os.UserHomeDir()
	v.SetDefault("saves.dir", filepath.Join(home, ".fablecore", "saves"))
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "json")
	v.SetDefault("logging.file", "")
	v.SetDefault("ui.plain", false)

	v.SetEnvPrefix("FABLECORE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("reading config file %s: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks field values against their allowed sets.
func (c *Config) Validate() error {
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level: unknown level %q", c.Logging.Level)
	}
	switch c.Logging.Format {
	case "json", "console":
	default:
		return fmt.Errorf("logging.format: unknown format %q", c.Logging.Format)
	}
	if c.Saves.Dir == "" {
		return errors.New("saves.dir must not be empty")
	}
	return nil
}
