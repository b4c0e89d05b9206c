// File: internal/config/humanoid_config.go
// This file defines the HumanoidConfig struct, which contains the tunable
// parameters of the human timing engine: the pause bounds, the history window,
// the persona seed and per-context overrides of the base pause ranges.
//
// The configuration is loaded from a file (e.g., YAML) using Viper, allowing the
// pacing "personality" to be adjusted without changing the core code.
package config

import (
	"fmt"

	"github.com/spf13/viper"
)

// RangeConfig is a {min,max} millisecond range.
type RangeConfig struct {
	MinMs float64 `mapstructure:"min_ms" yaml:"min_ms"`
	MaxMs float64 `mapstructure:"max_ms" yaml:"max_ms"`
}

// HumanoidConfig holds settings for the human timing engine.
type HumanoidConfig struct {
	// Seed fixes the random source. Zero selects a time-based seed.
	Seed        int64 `mapstructure:"seed" yaml:"seed"`
	MinPauseMs  int   `mapstructure:"min_pause_ms" yaml:"min_pause_ms"`
	MaxPauseMs  int   `mapstructure:"max_pause_ms" yaml:"max_pause_ms"`
	HistorySize int   `mapstructure:"history_size" yaml:"history_size"`

	MicroInterruptChance float64 `mapstructure:"micro_interrupt_chance" yaml:"micro_interrupt_chance"`

	// ContextRanges overrides the base range of individual pause contexts,
	// keyed by context label (e.g. "reading").
	ContextRanges map[string]RangeConfig `mapstructure:"context_ranges" yaml:"context_ranges"`
}

func setHumanoidDefaults(v *viper.Viper) {
	v.SetDefault("humanoid.seed", 0)
	v.SetDefault("humanoid.min_pause_ms", 50)
	v.SetDefault("humanoid.max_pause_ms", 30000)
	v.SetDefault("humanoid.history_size", 100)
	v.SetDefault("humanoid.micro_interrupt_chance", 0.2)
}

// Validate checks the humanoid settings.
func (h *HumanoidConfig) Validate() error {
	if h.MinPauseMs <= 0 {
		return fmt.Errorf("min_pause_ms must be a positive integer")
	}
	if h.MaxPauseMs < h.MinPauseMs {
		return fmt.Errorf("max_pause_ms must not be less than min_pause_ms")
	}
	if h.HistorySize <= 0 {
		return fmt.Errorf("history_size must be a positive integer")
	}
	if h.MicroInterruptChance < 0 || h.MicroInterruptChance > 1 {
		return fmt.Errorf("micro_interrupt_chance must be between 0.0 and 1.0")
	}
	for name, r := range h.ContextRanges {
		if r.MinMs < 0 || r.MaxMs < r.MinMs {
			return fmt.Errorf("context_ranges.%s must satisfy 0 <= min_ms <= max_ms", name)
		}
	}
	return nil
}
