// Package config provides YAML-based game configuration loading and
// difficulty presets for the EcoFun game hub.
package config

import (
	"errors"
	"fmt"
	"time"
)

// FallBlockConfig contains all configuration for the Eco Blocks game.
type FallBlockConfig struct {
	Field       FieldConfig       `yaml:"field"`
	Gravity     GravityConfig     `yaml:"gravity"`
	Progression ProgressionConfig `yaml:"progression"`
	Scoring     ScoringConfig     `yaml:"scoring"`
}

// FieldConfig defines the play-field dimensions in cells.
type FieldConfig struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

// GravityConfig defines how fast pieces fall.
// The tick period is base_ms - (level-1)*step_ms, never below min_ms.
type GravityConfig struct {
	BaseMS int `yaml:"base_ms"`
	StepMS int `yaml:"step_ms"`
	MinMS  int `yaml:"min_ms"`
}

// ProgressionConfig defines level and win thresholds.
type ProgressionConfig struct {
	LinesPerLevel int `yaml:"lines_per_level"`
	WinLines      int `yaml:"win_lines"`
}

// ScoringConfig defines points awarded during and after a round.
type ScoringConfig struct {
	PointsPerLine int `yaml:"points_per_line"` // Multiplied by level per cleared line
	LevelBonus    int `yaml:"level_bonus"`     // Added per reached level on completion
	LineBonus     int `yaml:"line_bonus"`      // Added per cleared line on completion
}

// Period returns the gravity tick period at the given level.
func (g GravityConfig) Period(level int) time.Duration {
	if level < 1 {
		level = 1
	}
	ms := g.BaseMS - (level-1)*g.StepMS
	if ms < g.MinMS {
		ms = g.MinMS
	}
	return time.Duration(ms) * time.Millisecond
}

// Validate reports configuration values the simulation cannot run with.
func (c FallBlockConfig) Validate() error {
	var errs []error
	if c.Field.Width < 4 || c.Field.Height < 4 {
		errs = append(errs, fmt.Errorf("field must be at least 4x4, got %dx%d", c.Field.Width, c.Field.Height))
	}
	if c.Gravity.MinMS <= 0 || c.Gravity.BaseMS < c.Gravity.MinMS {
		errs = append(errs, fmt.Errorf("gravity needs 0 < min_ms <= base_ms, got min %d base %d", c.Gravity.MinMS, c.Gravity.BaseMS))
	}
	if c.Gravity.StepMS < 0 {
		errs = append(errs, fmt.Errorf("gravity step_ms must not be negative, got %d", c.Gravity.StepMS))
	}
	if c.Progression.LinesPerLevel <= 0 {
		errs = append(errs, fmt.Errorf("lines_per_level must be positive, got %d", c.Progression.LinesPerLevel))
	}
	if c.Progression.WinLines <= 0 {
		errs = append(errs, fmt.Errorf("win_lines must be positive, got %d", c.Progression.WinLines))
	}
	if c.Scoring.PointsPerLine < 0 || c.Scoring.LevelBonus < 0 || c.Scoring.LineBonus < 0 {
		errs = append(errs, errors.New("scoring values must not be negative"))
	}
	if len(errs) > 0 {
		return fmt.Errorf("config: invalid fallblock config: %w", errors.Join(errs...))
	}
	return nil
}
