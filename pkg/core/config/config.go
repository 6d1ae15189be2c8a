// ============================================================================
// geomc - Geometrische Monte-Carlo-Schätzer
// ============================================================================
//
// Package:     config
// Description: Run configuration from TOML/YAML files and environment
// Author:      msto63
// Created:     2025-12-15
// License:     MIT
// ============================================================================

package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// Hard-coded run used when neither a config file nor flags say otherwise
const (
	DefaultKernel    = "nearest-side"
	DefaultTrials    = 10_000_000_000
	DefaultBatchSize = 100_000_000
)

// ErrNotFound is returned by LoadFromEnv when no config file exists
var ErrNotFound = errors.New("no config file found")

// Config holds the complete application configuration
type Config struct {
	Simulation SimulationConfig `toml:"simulation" yaml:"simulation"`
	Logging    LoggingConfig    `toml:"logging" yaml:"logging"`
	Progress   ProgressConfig   `toml:"progress" yaml:"progress"`
	History    HistoryConfig    `toml:"history" yaml:"history"`
}

// SimulationConfig describes one Monte-Carlo run
type SimulationConfig struct {
	Kernel    string `toml:"kernel" yaml:"kernel"`
	Trials    int64  `toml:"trials" yaml:"trials"`
	BatchSize int64  `toml:"batch_size" yaml:"batch_size"`
	Workers   int    `toml:"workers" yaml:"workers"`
	Seed      uint64 `toml:"seed" yaml:"seed"` // 0 draws a fresh seed
}

// LoggingConfig holds logger settings
type LoggingConfig struct {
	Level  string `toml:"level" yaml:"level"`
	Format string `toml:"format" yaml:"format"`
	File   string `toml:"file" yaml:"file"` // optional run log, appended in batches
}

// ProgressConfig holds progress display settings
type ProgressConfig struct {
	Mode     string   `toml:"mode" yaml:"mode"` // tui, plain or none
	Interval Duration `toml:"interval" yaml:"interval"`
}

// HistoryConfig enables the run database
type HistoryConfig struct {
	Path string `toml:"path" yaml:"path"` // empty disables recording
}

// Duration wraps time.Duration for TOML and YAML parsing
type Duration struct {
	time.Duration
}

// UnmarshalText parses a duration string
func (d *Duration) UnmarshalText(text []byte) error {
	var err error
	d.Duration, err = time.ParseDuration(string(text))
	return err
}

// MarshalText formats the duration as a string
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration.String()), nil
}

// Default returns the configuration of the hard-coded run
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

// Load loads configuration from a TOML or YAML file, chosen by extension
func Load(path string) (*Config, error) {
	path = os.ExpandEnv(path)

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("config file not found: %s", path)
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	// decode over the defaults so keys present in the file, zeros included,
	// win and missing keys keep their default
	cfg := Default()
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	default:
		if _, err := toml.Decode(string(data), cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadFromEnv loads the file named by GEOMC_CONFIG, or the first default
// location that exists
func LoadFromEnv() (*Config, error) {
	path := os.Getenv("GEOMC_CONFIG")
	if path == "" {
		defaultPaths := []string{
			"./configs/geomc.toml",
			"./configs/geomc.yaml",
			"./geomc.toml",
			filepath.Join(os.Getenv("HOME"), ".config/geomc/config.toml"),
		}
		for _, p := range defaultPaths {
			if _, err := os.Stat(p); err == nil {
				path = p
				break
			}
		}
	}

	if path == "" {
		return nil, ErrNotFound
	}
	return Load(path)
}

// LoadOrDefault loads path if given, otherwise LoadFromEnv, and falls back
// to Default (with environment overrides) when no file exists
func LoadOrDefault(path string) (*Config, error) {
	if path != "" {
		return Load(path)
	}

	cfg, err := LoadFromEnv()
	if errors.Is(err, ErrNotFound) {
		cfg = Default()
		if err := cfg.applyEnv(); err != nil {
			return nil, err
		}
		return cfg, nil
	}
	return cfg, err
}

// applyDefaults sets default values for missing configuration
func (c *Config) applyDefaults() {
	if c.Simulation.Kernel == "" {
		c.Simulation.Kernel = DefaultKernel
	}
	if c.Simulation.Trials == 0 {
		c.Simulation.Trials = DefaultTrials
	}
	if c.Simulation.BatchSize == 0 {
		c.Simulation.BatchSize = DefaultBatchSize
	}
	if c.Simulation.Workers == 0 {
		c.Simulation.Workers = runtime.NumCPU()
	}

	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}
	if c.Logging.Format == "" {
		c.Logging.Format = "text"
	}

	if c.Progress.Mode == "" {
		c.Progress.Mode = "plain"
	}
}

// applyEnv overrides values from GEOMC_* environment variables
func (c *Config) applyEnv() error {
	if v := os.Getenv("GEOMC_KERNEL"); v != "" {
		c.Simulation.Kernel = v
	}
	if v := os.Getenv("GEOMC_TRIALS"); v != "" {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return fmt.Errorf("invalid GEOMC_TRIALS: %w", err)
		}
		c.Simulation.Trials = n
	}
	if v := os.Getenv("GEOMC_BATCH_SIZE"); v != "" {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return fmt.Errorf("invalid GEOMC_BATCH_SIZE: %w", err)
		}
		c.Simulation.BatchSize = n
	}
	if v := os.Getenv("GEOMC_WORKERS"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid GEOMC_WORKERS: %w", err)
		}
		c.Simulation.Workers = n
	}
	if v := os.Getenv("GEOMC_SEED"); v != "" {
		n, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			return fmt.Errorf("invalid GEOMC_SEED: %w", err)
		}
		c.Simulation.Seed = n
	}
	if v := os.Getenv("GEOMC_LOG_LEVEL"); v != "" {
		c.Logging.Level = v
	}
	if v := os.Getenv("GEOMC_LOG_FILE"); v != "" {
		c.Logging.File = v
	}
	if v := os.Getenv("GEOMC_PROGRESS"); v != "" {
		c.Progress.Mode = v
	}
	if v := os.Getenv("GEOMC_HISTORY"); v != "" {
		c.History.Path = v
	}
	return nil
}
