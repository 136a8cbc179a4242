// Package config loads the rulecanvas configuration: built-in defaults, then
// an optional YAML file, then environment overrides.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"
)

// Config holds all rulecanvas configuration.
type Config struct {
	Database DatabaseConfig `yaml:"database"`
	Canvas   CanvasConfig   `yaml:"canvas"`
	Watch    WatchConfig    `yaml:"watch"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// DatabaseConfig configures the saved-rule store.
type DatabaseConfig struct {
	Path string `yaml:"path"`
}

// CanvasConfig configures initial block placement.
type CanvasConfig struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
	Seed   int64   `yaml:"seed"` // 0 seeds from the clock
}

// WatchConfig configures the rule file inbox.
type WatchConfig struct {
	Inbox string `yaml:"inbox"`
}

// LoggingConfig configures logging.
type LoggingConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error
}

// DefaultDataDir is where rulecanvas keeps its database and inbox.
func DefaultDataDir() string {
	if dir := os.Getenv("XDG_DATA_HOME"); dir != "" {
		return filepath.Join(dir, "rulecanvas")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ".rulecanvas"
	}
	return filepath.Join(home, ".local", "share", "rulecanvas")
}

// DefaultPath is the config file read when --config is not given.
func DefaultPath() string {
	if dir, err := os.UserConfigDir(); err == nil {
		return filepath.Join(dir, "rulecanvas", "config.yaml")
	}
	return "rulecanvas.yaml"
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	data := DefaultDataDir()
	return &Config{
		Database: DatabaseConfig{Path: filepath.Join(data, "rules.db")},
		Canvas:   CanvasConfig{Width: 400, Height: 300},
		Watch:    WatchConfig{Inbox: filepath.Join(data, "inbox")},
		Logging:  LoggingConfig{Level: "info"},
	}
}

// Load loads configuration from a YAML file. A missing file yields the defaults.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	switch {
	case os.IsNotExist(err):
	case err != nil:
		return nil, fmt.Errorf("failed to read config: %w", err)
	default:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	}

	if err := cfg.applyEnvOverrides(); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Save saves configuration to a YAML file.
func (c *Config) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	return nil
}

// applyEnvOverrides applies environment variable overrides.
func (c *Config) applyEnvOverrides() error {
	if path := os.Getenv("RULECANVAS_DB"); path != "" {
		c.Database.Path = path
	}
	if dir := os.Getenv("RULECANVAS_INBOX"); dir != "" {
		c.Watch.Inbox = dir
	}
	if level := os.Getenv("RULECANVAS_LOG_LEVEL"); level != "" {
		c.Logging.Level = level
	}
	if seed := os.Getenv("RULECANVAS_SEED"); seed != "" {
		n, err := strconv.ParseInt(seed, 10, 64)
		if err != nil {
			return fmt.Errorf("invalid RULECANVAS_SEED %q: %w", seed, err)
		}
		c.Canvas.Seed = n
	}
	return nil
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if c.Database.Path == "" {
		return fmt.Errorf("database.path must be set")
	}
	if c.Canvas.Width <= 0 || c.Canvas.Height <= 0 {
		return fmt.Errorf("canvas size must be positive, got %gx%g", c.Canvas.Width, c.Canvas.Height)
	}
	if _, err := c.ZapLevel(); err != nil {
		return fmt.Errorf("invalid logging.level %q: %w", c.Logging.Level, err)
	}
	return nil
}

// ZapLevel parses the configured log level.
func (c *Config) ZapLevel() (zapcore.Level, error) {
	return zapcore.ParseLevel(c.Logging.Level)
}
