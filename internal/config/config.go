// Package config loads timeline settings from YAML or CUE files with
// TIMELINE_* environment overrides.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/roach88/timeline/internal/model"
	"github.com/roach88/timeline/internal/timeline"
)

// EnvPrefix is prepended to every environment override, e.g. TIMELINE_DATABASE.
const EnvPrefix = "TIMELINE"

// Config holds runtime settings.
type Config struct {
	// Database is the SQLite file holding the persisted collections.
	Database string `mapstructure:"database"`

	// Months is the chart window as contiguous YYYY-MM entries.
	Months []string `mapstructure:"months"`

	// Today pins the reference date for the today marker. Empty means the
	// system clock.
	Today string `mapstructure:"today"`

	// LogLevel is one of debug, info, warn, error.
	LogLevel string `mapstructure:"log_level"`
}

// Default returns the built-in settings.
func Default() *Config {
	return &Config{
		Database: "timeline.db",
		Months:   append([]string(nil), timeline.DefaultMonths...),
		LogLevel: "info",
	}
}

// Load reads settings from path. An empty path yields the defaults.
// Environment overrides are applied in every case.
//
// Supported formats: .yaml, .yml and .cue.
func Load(path string) (*Config, error) {
	v := newViper()

	switch ext := strings.ToLower(filepath.Ext(path)); {
	case path == "":
	case ext == ".yaml" || ext == ".yml":
		if _, err := os.Stat(path); err != nil {
			return nil, fmt.Errorf("config file: %w", err)
		}
		v.SetConfigFile(path)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read %s: %w", path, err)
		}
	case ext == ".cue":
		settings, err := loadCUE(path)
		if err != nil {
			return nil, err
		}
		if err := v.MergeConfigMap(settings); err != nil {
			return nil, fmt.Errorf("merge %s: %w", path, err)
		}
	default:
		return nil, fmt.Errorf("unsupported config format %q (want .yaml, .yml or .cue)", ext)
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func newViper() *viper.Viper {
	def := Default()

	v := viper.New()
	v.SetDefault("database", def.Database)
	v.SetDefault("months", def.Months)
	v.SetDefault("today", def.Today)
	v.SetDefault("log_level", def.LogLevel)

	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()
	return v
}

// Validate checks that every setting is usable.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Database) == "" {
		return fmt.Errorf("config: database must not be empty")
	}
	if _, err := c.Window(); err != nil {
		return fmt.Errorf("config: months: %w", err)
	}
	if c.Today != "" {
		if _, err := model.ParseDate(c.Today); err != nil {
			return fmt.Errorf("config: today: %w", err)
		}
	}
	if _, err := c.Level(); err != nil {
		return fmt.Errorf("config: log_level: %w", err)
	}
	return nil
}

// Window builds the chart window from Months.
func (c *Config) Window() (timeline.Window, error) {
	return timeline.NewWindow(c.Months...)
}

// Reference returns the pinned Today date, or now when none is set.
func (c *Config) Reference(now time.Time) time.Time {
	if c.Today == "" {
		return now
	}
	t, err := model.ParseDate(c.Today)
	if err != nil {
		return now
	}
	return t
}

// Level parses LogLevel.
func (c *Config) Level() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return slog.LevelInfo, err
	}
	return level, nil
}
