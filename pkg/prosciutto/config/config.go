// Package config loads prosciutto settings from a TOML file and PROSCIUTTO_*
// environment variables.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/BrandonKowalski/prosciutto/pkg/prosciutto/constants"
)

// EnvPrefix is the prefix for environment overrides, e.g. PROSCIUTTO_LOG_LEVEL.
const EnvPrefix = "PROSCIUTTO"

// Config holds application configuration.
type Config struct {
	Log       LogConfig       `mapstructure:"log"`
	Prefs     PrefsConfig     `mapstructure:"prefs"`
	Energy    EnergyConfig    `mapstructure:"energy"`
	Language  LanguageConfig  `mapstructure:"language"`
	Animation AnimationConfig `mapstructure:"animation"`
}

type LogConfig struct {
	Path  string `mapstructure:"path"`
	Level string `mapstructure:"level"`
}

// PrefsConfig locates the preference file. An empty path keeps preferences
// in memory only.
type PrefsConfig struct {
	Path string `mapstructure:"path"`
}

type EnergyConfig struct {
	Max      int           `mapstructure:"max"`
	Interval time.Duration `mapstructure:"interval"`
	Initial  int           `mapstructure:"initial"` // 0 starts new players full, negative starts them empty
}

type LanguageConfig struct {
	Default string `mapstructure:"default"`
}

type AnimationConfig struct {
	ShowDuration time.Duration `mapstructure:"show_duration"`
	HideDuration time.Duration `mapstructure:"hide_duration"`
	Ease         string        `mapstructure:"ease"`
}

// DefaultDir returns the per-user directory for prosciutto files.
func DefaultDir() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		dir = filepath.Join(os.Getenv("HOME"), ".config")
	}
	return filepath.Join(dir, "prosciutto")
}

func newViper() *viper.Viper {
	v := viper.New()

	// default values
	v.SetDefault("log.path", "")
	v.SetDefault("log.level", "info")
	v.SetDefault("prefs.path", filepath.Join(DefaultDir(), "prefs.toml"))
	v.SetDefault("energy.max", constants.DefaultMaxEnergy)
	v.SetDefault("energy.interval", constants.DefaultEnergyInterval)
	v.SetDefault("energy.initial", 0)
	v.SetDefault("language.default", constants.DefaultLanguage)
	v.SetDefault("animation.show_duration", constants.DefaultShowDuration)
	v.SetDefault("animation.hide_duration", constants.DefaultHideDuration)
	v.SetDefault("animation.ease", constants.DefaultEase)

	v.SetConfigType("toml")
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

// Load reads configuration from path, or from config.toml in DefaultDir when
// path is empty. A missing file is not an error; defaults and environment
// overrides still apply.
func Load(path string) (Config, error) {
	v := newViper()

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.AddConfigPath(DefaultDir())
		v.SetConfigName("config")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		switch {
		case errors.As(err, &notFound):
		case errors.Is(err, fs.ErrNotExist):
		default:
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

// Validate rejects values that would make the managers misbehave.
func (c Config) Validate() error {
	if c.Energy.Max <= 0 {
		return fmt.Errorf("config: energy.max must be positive, got %d", c.Energy.Max)
	}
	if c.Energy.Interval <= 0 {
		return fmt.Errorf("config: energy.interval must be positive, got %s", c.Energy.Interval)
	}
	if c.Energy.Initial > c.Energy.Max {
		return fmt.Errorf("config: energy.initial must not exceed energy.max, got %d", c.Energy.Initial)
	}
	if c.Animation.ShowDuration < 0 || c.Animation.HideDuration < 0 {
		return fmt.Errorf("config: animation durations must not be negative")
	}
	return nil
}

// Save writes cfg to path, creating the directory if needed.
func Save(cfg Config, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("mkdir config dir: %w", err)
	}

	v := viper.New()
	v.SetConfigType("toml")
	v.Set("log.path", cfg.Log.Path)
	v.Set("log.level", cfg.Log.Level)
	v.Set("prefs.path", cfg.Prefs.Path)
	v.Set("energy.max", cfg.Energy.Max)
	v.Set("energy.interval", cfg.Energy.Interval.String())
	v.Set("energy.initial", cfg.Energy.Initial)
	v.Set("language.default", cfg.Language.Default)
	v.Set("animation.show_duration", cfg.Animation.ShowDuration.String())
	v.Set("animation.hide_duration", cfg.Animation.HideDuration.String())
	v.Set("animation.ease", cfg.Animation.Ease)

	if err := v.WriteConfigAs(path); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}
