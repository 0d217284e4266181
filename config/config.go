// Package config holds construction-time configuration for runners.
//
// Configuration follows a load-merge lifecycle: structs are populated from
// defaults, optionally overlaid with values parsed from a JSON or YAML file,
// and then handed to a runner constructor. Config is consumed only at
// initialization; runners never re-read it mid-run.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// DefaultMaxWorkers bounds simultaneous task execution for parallel runners
// when no explicit worker count is configured.
const DefaultMaxWorkers = 3

// SequentialConfig configures a sequential runner.
type SequentialConfig struct {
	// Observer names the observer implementation to use ("noop", "slog", etc.)
	Observer string `json:"observer" yaml:"observer"`
}

// DefaultSequentialConfig returns defaults for sequential execution.
func DefaultSequentialConfig() SequentialConfig {
	return SequentialConfig{
		Observer: "slog",
	}
}

// Merge applies non-zero values from source into c.
func (c *SequentialConfig) Merge(source *SequentialConfig) {
	if source.Observer != "" {
		c.Observer = source.Observer
	}
}

// ParallelConfig configures a bounded-parallel runner.
type ParallelConfig struct {
	// MaxWorkers bounds simultaneous task execution (0 = DefaultMaxWorkers).
	MaxWorkers int `json:"max_workers" yaml:"max_workers"`

	// Observer names the observer implementation to use ("noop", "slog", etc.)
	Observer string `json:"observer" yaml:"observer"`
}

// DefaultParallelConfig returns defaults for parallel execution: three
// workers and the slog observer.
func DefaultParallelConfig() ParallelConfig {
	return ParallelConfig{
		MaxWorkers: DefaultMaxWorkers,
		Observer:   "slog",
	}
}

// Merge applies non-zero values from source into c.
func (c *ParallelConfig) Merge(source *ParallelConfig) {
	if source.MaxWorkers > 0 {
		c.MaxWorkers = source.MaxWorkers
	}
	if source.Observer != "" {
		c.Observer = source.Observer
	}
}

// Config aggregates the per-strategy sections for file-based configuration.
type Config struct {
	Sequential SequentialConfig `json:"sequential" yaml:"sequential"`
	Parallel   ParallelConfig   `json:"parallel" yaml:"parallel"`
}

// Default returns a Config with defaults for both strategies.
func Default() Config {
	return Config{
		Sequential: DefaultSequentialConfig(),
		Parallel:   DefaultParallelConfig(),
	}
}

// Merge applies non-zero values from source into c, delegating to each
// section's Merge method.
func (c *Config) Merge(source *Config) {
	c.Sequential.Merge(&source.Sequential)
	c.Parallel.Merge(&source.Parallel)
}

// Load reads a config file, merges it with defaults, and returns the result.
// Files ending in .yaml or .yml are parsed as YAML, everything else as JSON.
func Load(filename string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var loaded Config
	switch filepath.Ext(filename) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &loaded); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
	default:
		if err := json.Unmarshal(data, &loaded); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
	}

	cfg.Merge(&loaded)
	return &cfg, nil
}
