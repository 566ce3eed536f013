// Package config handles configuration loading and validation for ticktock.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/colonyops/ticktock/internal/core/styles"
	"github.com/colonyops/ticktock/internal/core/timer"
	"github.com/hay-kot/criterio"
	"gopkg.in/yaml.v3"
)

// AlertMode selects how a completed timer is signalled.
type AlertMode string

const (
	AlertModeBell    AlertMode = "bell"
	AlertModeCommand AlertMode = "command"
	AlertModeNone    AlertMode = "none"
)

// IsValid reports whether m is a known alert mode.
func (m AlertMode) IsValid() bool {
	switch m {
	case AlertModeBell, AlertModeCommand, AlertModeNone:
		return true
	}
	return false
}

// Config holds the application configuration.
type Config struct {
	TickInterval time.Duration  `yaml:"tick_interval"`
	Alert        AlertConfig    `yaml:"alert"`
	Defaults     DefaultsConfig `yaml:"defaults"`
	TUI          TUIConfig      `yaml:"tui"`
	History      HistoryConfig  `yaml:"history"`
	Database     DatabaseConfig `yaml:"database"`
	DataDir      string         `yaml:"-"` // set by caller, not from config file
}

// AlertConfig controls completion alerts.
type AlertConfig struct {
	Mode     AlertMode     `yaml:"mode"`
	Command  string        `yaml:"command"` // shell template, sees .ID and .Name
	Interval time.Duration `yaml:"interval"`
}

// DefaultsConfig holds prefilled values for new timers.
type DefaultsConfig struct {
	Duration string `yaml:"duration"` // any form accepted by timer.ParseDuration
}

// Seconds returns the default duration in seconds, or 0 if it does not parse.
func (d DefaultsConfig) Seconds() int {
	secs, err := timer.ParseDuration(d.Duration)
	if err != nil {
		return 0
	}
	return secs
}

// TUIConfig holds terminal UI settings.
type TUIConfig struct {
	Theme string `yaml:"theme"`
}

// HistoryConfig controls the completion history.
type HistoryConfig struct {
	Retention time.Duration `yaml:"retention"` // negative disables pruning
}

// DatabaseConfig holds SQLite connection settings.
type DatabaseConfig struct {
	MaxOpenConns int `yaml:"max_open_conns"`
	MaxIdleConns int `yaml:"max_idle_conns"`
	BusyTimeout  int `yaml:"busy_timeout"` // milliseconds
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		TickInterval: 100 * time.Millisecond,
		Alert: AlertConfig{
			Mode:     AlertModeBell,
			Interval: 2 * time.Second,
		},
		Defaults: DefaultsConfig{
			Duration: "3m",
		},
		TUI: TUIConfig{
			Theme: styles.DefaultTheme,
		},
		History: HistoryConfig{
			Retention: 30 * 24 * time.Hour,
		},
		Database: DatabaseConfig{
			MaxOpenConns: 4,
			MaxIdleConns: 2,
			BusyTimeout:  5000,
		},
	}
}

// Load reads configuration from the given path and sets the data directory.
// If configPath is empty or doesn't exist, returns defaults with the provided dataDir.
func Load(configPath, dataDir string) (*Config, error) {
	cfg := DefaultConfig()

	if configPath != "" {
		if _, err := os.Stat(configPath); err == nil {
			data, err := os.ReadFile(configPath)
			if err != nil {
				return nil, fmt.Errorf("read config file: %w", err)
			}

			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return nil, fmt.Errorf("parse config file: %w", err)
			}
		}
	}

	cfg.DataDir = dataDir
	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &cfg, nil
}

// applyDefaults sets default values for any unset configuration options.
func (c *Config) applyDefaults() {
	defaults := DefaultConfig()
	if c.TickInterval == 0 {
		c.TickInterval = defaults.TickInterval
	}
	if c.Alert.Mode == "" {
		c.Alert.Mode = defaults.Alert.Mode
	}
	if c.Alert.Interval == 0 {
		c.Alert.Interval = defaults.Alert.Interval
	}
	if c.Defaults.Duration == "" {
		c.Defaults.Duration = defaults.Defaults.Duration
	}
	if c.TUI.Theme == "" {
		c.TUI.Theme = defaults.TUI.Theme
	}
	if c.History.Retention == 0 {
		c.History.Retention = defaults.History.Retention
	}
	if c.Database.MaxOpenConns == 0 {
		c.Database.MaxOpenConns = defaults.Database.MaxOpenConns
	}
	if c.Database.MaxIdleConns == 0 {
		c.Database.MaxIdleConns = defaults.Database.MaxIdleConns
	}
	if c.Database.BusyTimeout == 0 {
		c.Database.BusyTimeout = defaults.Database.BusyTimeout
	}
}

// Validate checks that the configuration is structurally valid.
func (c *Config) Validate() error {
	var errs criterio.FieldErrorsBuilder
	if c.TickInterval < 10*time.Millisecond || c.TickInterval > time.Second {
		errs = errs.Append("tick_interval", fmt.Errorf("must be between 10ms and 1s, got %s", c.TickInterval))
	}

	return criterio.ValidateStruct(
		criterio.Run("data_dir", c.DataDir, notEmpty),
		errs.ToError(),
		c.Alert.validate(),
		criterio.Run("defaults.duration", c.Defaults.Duration, validDuration),
		criterio.Run("tui.theme", c.TUI.Theme, knownTheme),
		c.Database.validate(),
	)
}

func (a AlertConfig) validate() error {
	var errs criterio.FieldErrorsBuilder
	if !a.Mode.IsValid() {
		errs = errs.Append("alert.mode", fmt.Errorf("must be one of bell, command, none; got %q", a.Mode))
	}
	if a.Mode == AlertModeCommand && a.Command == "" {
		errs = errs.Append("alert.command", fmt.Errorf("required when alert.mode is command"))
	}
	if a.Interval < 100*time.Millisecond {
		errs = errs.Append("alert.interval", fmt.Errorf("must be at least 100ms, got %s", a.Interval))
	}
	return errs.ToError()
}

func (d DatabaseConfig) validate() error {
	var errs criterio.FieldErrorsBuilder
	if d.MaxOpenConns < 1 {
		errs = errs.Append("database.max_open_conns", fmt.Errorf("must be at least 1, got %d", d.MaxOpenConns))
	}
	if d.MaxIdleConns < 1 {
		errs = errs.Append("database.max_idle_conns", fmt.Errorf("must be at least 1, got %d", d.MaxIdleConns))
	} else if d.MaxIdleConns > d.MaxOpenConns {
		errs = errs.Append("database.max_idle_conns", fmt.Errorf("cannot exceed max_open_conns (%d)", d.MaxOpenConns))
	}
	if d.BusyTimeout < 1 {
		errs = errs.Append("database.busy_timeout", fmt.Errorf("must be at least 1, got %d", d.BusyTimeout))
	}
	return errs.ToError()
}

func notEmpty(s string) error {
	if s == "" {
		return fmt.Errorf("cannot be empty")
	}
	return nil
}

func validDuration(s string) error {
	_, err := timer.ParseDuration(s)
	return err
}

func knownTheme(name string) error {
	if _, ok := styles.GetPalette(name); !ok {
		return fmt.Errorf("unknown theme %q (available: %v)", name, styles.ThemeNames())
	}
	return nil
}
