// Package config handles loading, defaulting, and validation of the
// OttoBrew TOML configuration file. Every section maps to a typed struct.
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/pelletier/go-toml/v2"

	"github.com/hammamikhairi/ottobrew/internal/logger"
)

// Config is the top-level configuration, mirroring the TOML sections.
type Config struct {
	Brewer    BrewerConfig    `toml:"brewer"`
	Logging   LoggingConfig   `toml:"logging"`
	Library   LibraryConfig   `toml:"library"`
	Settings  SettingsConfig  `toml:"settings"`
	Sound     SoundConfig     `toml:"sound"`
	Announcer AnnouncerConfig `toml:"announcer"`
}

type BrewerConfig struct {
	GraceMS          int    `toml:"grace_ms"`
	SampleIntervalMS int    `toml:"sample_interval_ms"`
	DefaultRecipe    string `toml:"default_recipe"`
}

type LoggingConfig struct {
	Level string `toml:"level"`
	File  string `toml:"file"`
}

type LibraryConfig struct {
	RecipesFile string `toml:"recipes_file"`
}

type SettingsConfig struct {
	Path string `toml:"path"`
}

type SoundConfig struct {
	Enabled     bool    `toml:"enabled"`
	FrequencyHz int     `toml:"frequency_hz"`
	ChimeMS     int     `toml:"chime_ms"`
	Volume      float64 `toml:"volume"`
}

type AnnouncerConfig struct {
	TickMS int `toml:"tick_ms"`
}

// Default returns a Config populated with defaults. Values here are used
// whenever the TOML file omits a field.
func Default() Config {
	return Config{
		Brewer: BrewerConfig{
			GraceMS:          10000,
			SampleIntervalMS: 10,
			DefaultRecipe:    "aeropress",
		},
		Logging: LoggingConfig{
			Level: "info",
			File:  ".ottobrew-logs/ottobrew.log",
		},
		Sound: SoundConfig{
			Enabled:     true,
			FrequencyHz: 880,
			ChimeMS:     180,
			Volume:      0.8,
		},
		Announcer: AnnouncerConfig{
			TickMS: 250,
		},
	}
}

// Load reads the TOML file at path, layers it on top of the defaults, and
// validates the result. A missing file yields the defaults.
func Load(path string) (Config, error) {
	cfg := Default()

	b, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("read config: %w", err)
	}

	if err := toml.Unmarshal(b, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}

	if err := validate(cfg); err != nil {
		return cfg, err
	}

	return cfg, nil
}

func validate(cfg Config) error {
	if cfg.Brewer.GraceMS < 0 {
		return errors.New("brewer.grace_ms must be >= 0")
	}
	if cfg.Brewer.SampleIntervalMS < 1 {
		return errors.New("brewer.sample_interval_ms must be >= 1")
	}
	if _, err := logger.ParseLevel(cfg.Logging.Level); err != nil {
		return fmt.Errorf("logging.level: %w", err)
	}
	if cfg.Sound.FrequencyHz < 20 || cfg.Sound.FrequencyHz > 20000 {
		return errors.New("sound.frequency_hz must be between 20 and 20000")
	}
	if cfg.Sound.ChimeMS < 1 {
		return errors.New("sound.chime_ms must be >= 1")
	}
	if cfg.Sound.Volume < 0 || cfg.Sound.Volume > 1 {
		return errors.New("sound.volume must be between 0 and 1")
	}
	if cfg.Announcer.TickMS < 1 {
		return errors.New("announcer.tick_ms must be >= 1")
	}
	return nil
}

// Grace returns the completion grace as a duration.
func (c BrewerConfig) Grace() time.Duration {
	return time.Duration(c.GraceMS) * time.Millisecond
}

// SampleInterval returns the stopwatch sampler period.
func (c BrewerConfig) SampleInterval() time.Duration {
	return time.Duration(c.SampleIntervalMS) * time.Millisecond
}

// ChimeLength returns the chime tone length.
func (c SoundConfig) ChimeLength() time.Duration {
	return time.Duration(c.ChimeMS) * time.Millisecond
}

// Tick returns the announcer poll period.
func (c AnnouncerConfig) Tick() time.Duration {
	return time.Duration(c.TickMS) * time.Millisecond
}
