// Package config loads foodkeeper settings from YAML with environment
// overrides.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"foodkeeper/pkg/expiry"
	"foodkeeper/pkg/inventory"
)

// Config holds all foodkeeper settings.
type Config struct {
	// Dataset points at a JSON or YAML item list. Empty means the bundled
	// mock dataset.
	Dataset string `yaml:"dataset"`

	Display DisplayConfig `yaml:"display"`
	Logging LoggingConfig `yaml:"logging"`
}

// DisplayConfig sizes the terminal views.
type DisplayConfig struct {
	Width           int `yaml:"width"`
	RowWidth        int `yaml:"row_width"`
	MostUrgentLimit int `yaml:"most_urgent_limit"`
}

// LoggingConfig controls the zap logger.
type LoggingConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error
}

// DefaultConfig returns the settings used when no file is given.
func DefaultConfig() Config {
	return Config{
		Display: DisplayConfig{
			Width:           80,
			RowWidth:        expiry.DefaultRowWidth,
			MostUrgentLimit: inventory.DefaultMostUrgentLimit,
		},
		Logging: LoggingConfig{Level: "warn"},
	}
}

// Load reads path on top of the defaults and applies environment
// overrides. An empty path skips the file.
func Load(path string) (Config, error) {
	cfg := DefaultConfig()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return DefaultConfig(), fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return DefaultConfig(), fmt.Errorf("parse config: %w", err)
		}
		if cfg.Dataset != "" && !filepath.IsAbs(cfg.Dataset) {
			cfg.Dataset = filepath.Join(filepath.Dir(path), cfg.Dataset)
		}
	}
	if err := cfg.applyEnv(); err != nil {
		return DefaultConfig(), err
	}
	cfg.normalize()
	return cfg, cfg.Validate()
}

// applyEnv overrides fields from FOODKEEPER_* variables.
func (c *Config) applyEnv() error {
	if v := os.Getenv("FOODKEEPER_DATASET"); v != "" {
		c.Dataset = v
	}
	if v := os.Getenv("FOODKEEPER_WIDTH"); v != "" {
		w, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("FOODKEEPER_WIDTH: %w", err)
		}
		c.Display.Width = w
	}
	if v := os.Getenv("FOODKEEPER_LOG_LEVEL"); v != "" {
		c.Logging.Level = v
	}
	return nil
}

// normalize fills unset values with defaults and lower-cases the level.
func (c *Config) normalize() {
	def := DefaultConfig()
	if c.Display.Width <= 0 {
		c.Display.Width = def.Display.Width
	}
	if c.Display.RowWidth <= 0 {
		c.Display.RowWidth = def.Display.RowWidth
	}
	if c.Display.MostUrgentLimit <= 0 {
		c.Display.MostUrgentLimit = def.Display.MostUrgentLimit
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = def.Logging.Level
	}
}

// Validate rejects settings the views cannot honor.
func (c Config) Validate() error {
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("unknown log level %q", c.Logging.Level)
	}
	if c.Display.Width < 40 {
		return errors.New("display width must be at least 40 columns")
	}
	if c.Display.RowWidth > 4 {
		return errors.New("row_width must be between 1 and 4")
	}
	return nil
}
