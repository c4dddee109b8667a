// Package config loads dupscan's layered configuration: CLI flags win over
// environment variables, which win over an optional YAML config file,
// which wins over the built-in defaults below.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Sentinel validation errors.
var (
	ErrInvalidThreshold = errors.New("threshold must be within [0,1]")
	ErrInvalidLineRange = errors.New("min-lines must not exceed max-lines")
	ErrInvalidJobs       = errors.New("jobs must not be negative")
)

// Default configuration values, matching spec §6's documented option defaults.
const (
	defaultThreshold          = 0.87
	defaultMinLines           = 5
	defaultMaxLines           = 1 << 30
	defaultMinTokens          = 0
	defaultRenameCost         = 0.3
	defaultDeleteCost         = 1.0
	defaultInsertCost         = 1.0
	defaultKindDistanceWeight = 0.5
)

// Config holds dupscan's full, resolved configuration.
type Config struct {
	Scan    ScanConfig    `mapstructure:"scan"`
	Apted   AptedConfig   `mapstructure:"apted"`
	Logging LoggingConfig `mapstructure:"logging"`
	Report  ReportConfig  `mapstructure:"report"`
}

// ScanConfig holds discovery and eligibility settings.
type ScanConfig struct {
	Paths                []string `mapstructure:"paths"`
	Extensions           []string `mapstructure:"extensions"`
	Exclude              []string `mapstructure:"exclude"`
	Threshold            float64  `mapstructure:"threshold"`
	MinLines             int      `mapstructure:"min_lines"`
	MaxLines             int      `mapstructure:"max_lines"`
	MinTokens            int      `mapstructure:"min_tokens"`
	NoSizePenalty        bool     `mapstructure:"no_size_penalty"`
	IncludeFilePattern   string   `mapstructure:"include_file_pattern"`
	IncludeMethodPattern string   `mapstructure:"include_method_pattern"`
	Jobs                 int      `mapstructure:"jobs"`
}

// AptedConfig holds the tree edit distance engine's cost parameters.
type AptedConfig struct {
	RenameCost         float64 `mapstructure:"rename_cost"`
	DeleteCost         float64 `mapstructure:"delete_cost"`
	InsertCost         float64 `mapstructure:"insert_cost"`
	KindDistanceWeight float64 `mapstructure:"kind_distance_weight"`
}

// LoggingConfig holds structured-logging settings.
type LoggingConfig struct {
	Level string `mapstructure:"level"`
	JSON  bool   `mapstructure:"json"`
}

// ReportConfig holds report-rendering settings.
type ReportConfig struct {
	Format      string `mapstructure:"format"`
	Output      string `mapstructure:"output"`
	Print       bool   `mapstructure:"print"`
	PrintAll    bool   `mapstructure:"print_all"`
	MetricsAddr string `mapstructure:"metrics_addr"`
}

// Load reads configPath (if non-empty) layered under defaults, then lets
// DUPSCAN_-prefixed environment variables override file values. Flags are
// not bound to viper: the scan command copies every flag value onto the
// returned Config after Load returns (applyFlagOverrides in
// cmd/dupscan/commands), whether or not the flag was given, so for the
// keys it copies the flag value always wins.
func Load(configPath string) (*Config, error) {
	v := viper.New()

	setDefaults(v)

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("dupscan")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
	}

	v.SetEnvPrefix("DUPSCAN")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("dupscan: read config: %w", err)
		}
	}

	var cfg Config

	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("dupscan: unmarshal config: %w", err)
	}

	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("dupscan: invalid configuration: %w", err)
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("scan.extensions", []string{".go"})
	v.SetDefault("scan.threshold", defaultThreshold)
	v.SetDefault("scan.min_lines", defaultMinLines)
	v.SetDefault("scan.max_lines", defaultMaxLines)
	v.SetDefault("scan.min_tokens", defaultMinTokens)
	v.SetDefault("scan.jobs", 0)

	v.SetDefault("apted.rename_cost", defaultRenameCost)
	v.SetDefault("apted.delete_cost", defaultDeleteCost)
	v.SetDefault("apted.insert_cost", defaultInsertCost)
	v.SetDefault("apted.kind_distance_weight", defaultKindDistanceWeight)

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.json", false)

	v.SetDefault("report.format", "text")
}

func validate(cfg *Config) error {
	if cfg.Scan.Threshold < 0 || cfg.Scan.Threshold > 1 {
		return fmt.Errorf("%w: %v", ErrInvalidThreshold, cfg.Scan.Threshold)
	}

	if cfg.Scan.MinLines > cfg.Scan.MaxLines {
		return fmt.Errorf("%w: %d > %d", ErrInvalidLineRange, cfg.Scan.MinLines, cfg.Scan.MaxLines)
	}

	if cfg.Scan.Jobs < 0 {
		return fmt.Errorf("%w: %d", ErrInvalidJobs, cfg.Scan.Jobs)
	}

	return nil
}
