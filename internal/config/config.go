// File: internal/config/config.go
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/mitchellh/go-homedir"
	"github.com/spf13/viper"
)

// Interface defines the contract for accessing application configuration.
// This allows for dependency injection and mocking in tests.
type Interface interface {
	Logger() LoggerConfig
	Humanoid() HumanoidConfig
	Session() SessionConfig

	// Session Setters
	SetSessionSites(sites []string)
	SetSessionTargetCount(n int)
	SetSessionEnforceMinimum(bool)
	SetSessionVirtualTime(bool)

	// Humanoid Setters
	SetHumanoidSeed(seed int64)
}

// Config holds the entire application configuration.
type Config struct {
	LoggerCfg   LoggerConfig   `mapstructure:"logger" yaml:"logger"`
	HumanoidCfg HumanoidConfig `mapstructure:"humanoid" yaml:"humanoid"`
	SessionCfg  SessionConfig  `mapstructure:"session" yaml:"session"`
}

var _ Interface = (*Config)(nil)

// --- Interface Method Implementations (Getters) ---

func (c *Config) Logger() LoggerConfig     { return c.LoggerCfg }
func (c *Config) Humanoid() HumanoidConfig { return c.HumanoidCfg }
func (c *Config) Session() SessionConfig   { return c.SessionCfg }

// --- Interface Method Implementations (Setters) ---

func (c *Config) SetSessionSites(sites []string)  { c.SessionCfg.Sites = sites }
func (c *Config) SetSessionTargetCount(n int)     { c.SessionCfg.TargetCount = n }
func (c *Config) SetSessionEnforceMinimum(b bool) { c.SessionCfg.EnforceMinimum = b }
func (c *Config) SetSessionVirtualTime(b bool)    { c.SessionCfg.VirtualTime = b }
func (c *Config) SetHumanoidSeed(seed int64)      { c.HumanoidCfg.Seed = seed }

// LoggerConfig holds all the configuration for the logger.
type LoggerConfig struct {
	Level       string      `mapstructure:"level" yaml:"level"`
	Format      string      `mapstructure:"format" yaml:"format"`
	AddSource   bool        `mapstructure:"add_source" yaml:"add_source"`
	ServiceName string      `mapstructure:"service_name" yaml:"service_name"`
	LogFile     string      `mapstructure:"log_file" yaml:"log_file"`
	MaxSize     int         `mapstructure:"max_size" yaml:"max_size"`
	MaxBackups  int         `mapstructure:"max_backups" yaml:"max_backups"`
	MaxAge      int         `mapstructure:"max_age" yaml:"max_age"`
	Compress    bool        `mapstructure:"compress" yaml:"compress"`
	Colors      ColorConfig `mapstructure:"colors" yaml:"colors"`
}

// ColorConfig defines the color codes for different log levels.
type ColorConfig struct {
	Debug  string `mapstructure:"debug" yaml:"debug"`
	Info   string `mapstructure:"info" yaml:"info"`
	Warn   string `mapstructure:"warn" yaml:"warn"`
	Error  string `mapstructure:"error" yaml:"error"`
	DPanic string `mapstructure:"dpanic" yaml:"dpanic"`
	Panic  string `mapstructure:"panic" yaml:"panic"`
	Fatal  string `mapstructure:"fatal" yaml:"fatal"`
}

// SessionConfig drives the reference session runner.
type SessionConfig struct {
	Sites          []string `mapstructure:"sites" yaml:"sites"`
	TargetCount    int      `mapstructure:"target_count" yaml:"target_count"`
	EnforceMinimum bool     `mapstructure:"enforce_minimum" yaml:"enforce_minimum"`
	// VirtualTime runs the session on a simulated clock instead of real timers.
	VirtualTime bool `mapstructure:"virtual_time" yaml:"virtual_time"`

	FatigueIncreaseRate   float64 `mapstructure:"fatigue_increase_rate" yaml:"fatigue_increase_rate"`
	FatigueRecoveryRate   float64 `mapstructure:"fatigue_recovery_rate" yaml:"fatigue_recovery_rate"`
	FatigueBreakThreshold float64 `mapstructure:"fatigue_break_threshold" yaml:"fatigue_break_threshold"`
	DistractionChance     float64 `mapstructure:"distraction_chance" yaml:"distraction_chance"`

	ProgressInterval time.Duration `mapstructure:"progress_interval" yaml:"progress_interval"`
	ReportInterval   time.Duration `mapstructure:"report_interval" yaml:"report_interval"`
}

// NewDefaultConfig creates a new configuration struct populated with default values.
func NewDefaultConfig() *Config {
	v := viper.New()
	SetDefaults(v)

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		// This should not happen with defaults, but good to be safe.
		panic(fmt.Sprintf("failed to unmarshal default config: %v", err))
	}
	return &cfg
}

// SetDefaults initializes default values for various configuration parameters.
func SetDefaults(v *viper.Viper) {
	// -- Logger --
	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.format", "console")
	v.SetDefault("logger.add_source", false)
	v.SetDefault("logger.service_name", "humanpace")
	v.SetDefault("logger.log_file", "")
	v.SetDefault("logger.max_size", 100)
	v.SetDefault("logger.max_backups", 5)
	v.SetDefault("logger.max_age", 30)
	v.SetDefault("logger.compress", true)
	v.SetDefault("logger.colors.debug", "cyan")
	v.SetDefault("logger.colors.info", "green")
	v.SetDefault("logger.colors.warn", "yellow")
	v.SetDefault("logger.colors.error", "red")
	v.SetDefault("logger.colors.dpanic", "magenta")
	v.SetDefault("logger.colors.panic", "magenta")
	v.SetDefault("logger.colors.fatal", "red")

	// -- Humanoid --
	setHumanoidDefaults(v)

	// -- Session --
	v.SetDefault("session.sites", []string{})
	v.SetDefault("session.target_count", 2500)
	v.SetDefault("session.enforce_minimum", false)
	v.SetDefault("session.virtual_time", true)
	v.SetDefault("session.fatigue_increase_rate", 0.01)
	v.SetDefault("session.fatigue_recovery_rate", 0.02)
	v.SetDefault("session.fatigue_break_threshold", 0.8)
	v.SetDefault("session.distraction_chance", 0.05)
	v.SetDefault("session.progress_interval", "30s")
	v.SetDefault("session.report_interval", "1m")
}

// EnvPrefix namespaces environment overrides, e.g. HUMANPACE_HUMANOID_SEED.
const EnvPrefix = "HUMANPACE"

// NewConfigFromViper creates a new configuration instance from a viper object.
// Environment variables take precedence over values read from a config file.
func NewConfigFromViper(v *viper.Viper) (*Config, error) {
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	if cfg.LoggerCfg.LogFile != "" {
		expanded, err := homedir.Expand(cfg.LoggerCfg.LogFile)
		if err != nil {
			return nil, fmt.Errorf("invalid logger.log_file path: %w", err)
		}
		cfg.LoggerCfg.LogFile = expanded
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return &cfg, nil
}

// Validate checks the configuration for required fields and sane values.
func (c *Config) Validate() error {
	if err := c.HumanoidCfg.Validate(); err != nil {
		return fmt.Errorf("humanoid configuration invalid: %w", err)
	}
	if err := c.SessionCfg.Validate(); err != nil {
		return fmt.Errorf("session configuration invalid: %w", err)
	}
	return nil
}

// Validate checks the session runner settings.
func (s *SessionConfig) Validate() error {
	if s.TargetCount < 0 {
		return fmt.Errorf("target_count must not be negative")
	}
	if s.FatigueIncreaseRate < 0 || s.FatigueRecoveryRate < 0 {
		return fmt.Errorf("fatigue rates must not be negative")
	}
	if s.FatigueBreakThreshold <= 0 || s.FatigueBreakThreshold > 1 {
		return fmt.Errorf("fatigue_break_threshold must be in (0, 1]")
	}
	if s.DistractionChance < 0 || s.DistractionChance > 1 {
		return fmt.Errorf("distraction_chance must be between 0.0 and 1.0")
	}
	if s.ProgressInterval <= 0 || s.ReportInterval <= 0 {
		return fmt.Errorf("progress_interval and report_interval must be positive durations")
	}
	return nil
}
