// Package config handles edgeloop tool configuration loading and management.
package config

import (
	"fmt"
	"time"

	"github.com/Faultbox/edgeloop/pkg/edgeloop"
	"github.com/Faultbox/edgeloop/pkg/formats"
	"github.com/Faultbox/edgeloop/pkg/math"
)

// Config holds all tool settings.
type Config struct {
	Selection SelectionConfig `yaml:"selection"`
	Split     SplitConfig     `yaml:"split"`
	Batch     BatchConfig     `yaml:"batch"`
	Logging   LoggingConfig   `yaml:"logging"`
}

// SelectionConfig holds seed and walk settings.
type SelectionConfig struct {
	Axis          string `yaml:"axis"`      // x, y or z
	Direction     string `yaml:"direction"` // max or min
	Scoring       string `yaml:"scoring"`   // angle or legacy-cosine
	Bidirectional bool   `yaml:"bidirectional"`
	QuadStart     bool   `yaml:"quad_start"` // start at a 4-valent corner of the seed edge
}

// SplitConfig holds mesh separation output settings.
type SplitConfig struct {
	Enabled     bool   `yaml:"enabled"`
	OutputDir   string `yaml:"output_dir"`
	InnerSuffix string `yaml:"inner_suffix"`
	OuterSuffix string `yaml:"outer_suffix"`
	Format      string `yaml:"format"` // obj or yaml
}

// BatchConfig holds batch processing settings.
type BatchConfig struct {
	Workers int           `yaml:"workers"` // 0 = one per CPU
	Timeout time.Duration `yaml:"timeout"` // 0 = no limit
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Selection: SelectionConfig{
			Axis:      "z",
			Direction: "max",
			Scoring:   "angle",
		},
		Split: SplitConfig{
			Enabled:     false,
			OutputDir:   ".",
			InnerSuffix: "_inner",
			OuterSuffix: "_outer",
			Format:      "obj",
		},
		Batch: BatchConfig{
			Workers: 0,
			Timeout: 5 * time.Minute,
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}

// EdgeLoop converts the selection settings into a selector config.
func (s SelectionConfig) EdgeLoop() (edgeloop.Config, error) {
	axis, err := math.ParseAxis(s.Axis)
	if err != nil {
		return edgeloop.Config{}, err
	}
	dir, err := edgeloop.ParseDirection(s.Direction)
	if err != nil {
		return edgeloop.Config{}, err
	}
	scoring, err := edgeloop.ParseScoring(s.Scoring)
	if err != nil {
		return edgeloop.Config{}, err
	}
	return edgeloop.Config{
		Axis:          axis,
		Direction:     dir,
		Scoring:       scoring,
		Bidirectional: s.Bidirectional,
		QuadStart:     s.QuadStart,
	}, nil
}

// Validate reports the first invalid setting.
func (c *Config) Validate() error {
	if _, err := c.Selection.EdgeLoop(); err != nil {
		return fmt.Errorf("selection: %w", err)
	}
	if _, err := formats.ParseFormat(c.Split.Format); err != nil {
		return fmt.Errorf("split: %w", err)
	}
	if c.Split.InnerSuffix == c.Split.OuterSuffix {
		return fmt.Errorf("split: inner and outer suffix are both %q", c.Split.InnerSuffix)
	}
	if c.Batch.Workers < 0 {
		return fmt.Errorf("batch: workers must be >= 0, got %d", c.Batch.Workers)
	}
	if c.Batch.Timeout < 0 {
		return fmt.Errorf("batch: timeout must be >= 0, got %s", c.Batch.Timeout)
	}
	return nil
}
