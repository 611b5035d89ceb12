// Package config loads Gymling settings from embedded defaults and an optional YAML overlay.
package config

import (
	_ "embed"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

type Config struct {
	Database DatabaseConfig `yaml:"database"`
	Battle   BattleConfig   `yaml:"battle"`
	Playback PlaybackConfig `yaml:"playback"`
	Log      LogConfig      `yaml:"log"`
}

type DatabaseConfig struct {
	Path string `yaml:"path"`
}

// BattleConfig tunes the simulator and the battle gate.
type BattleConfig struct {
	EnergyCost       int    `yaml:"energy_cost"`
	MaxRounds        int    `yaml:"max_rounds"`
	EquipmentEffects bool   `yaml:"equipment_effects"`
	Seed             uint64 `yaml:"seed"` // 0 = time-seeded
}

type PlaybackConfig struct {
	Speed time.Duration `yaml:"speed"`
}

type LogConfig struct {
	Level string `yaml:"level"`
}

// Load reads the embedded defaults and, when path is non-empty, overlays the file at path.
// Only fields present in the file are overwritten.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.Battle.EnergyCost < 0 {
		return fmt.Errorf("battle.energy_cost must be >= 0, got %d", c.Battle.EnergyCost)
	}
	if c.Battle.MaxRounds < 1 {
		return fmt.Errorf("battle.max_rounds must be >= 1, got %d", c.Battle.MaxRounds)
	}
	if c.Playback.Speed < 0 {
		return fmt.Errorf("playback.speed must not be negative, got %s", c.Playback.Speed)
	}
	if _, err := ParseLevel(c.Log.Level); err != nil {
		return err
	}
	return nil
}

// SlogLevel returns the configured log level. Load has already validated it.
func (c *Config) SlogLevel() slog.Level {
	lvl, _ := ParseLevel(c.Log.Level)
	return lvl
}

// ParseLevel maps debug|info|warn|error (case-insensitive) to a slog level. Empty means warn.
func ParseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "", "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelWarn, fmt.Errorf("unknown log level %q", s)
	}
}

// WriteYAML writes the configuration to a YAML file.
func (c *Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}
