package config

import (
	_ "embed"
)

//go:embed defaults/fallblock.yaml
var defaultFallBlockYAML []byte

// DefaultFallBlockConfig returns the built-in Eco Blocks configuration.
func DefaultFallBlockConfig() FallBlockConfig {
	return FallBlockConfig{
		Field: FieldConfig{
			Width:  10,
			Height: 20,
		},
		Gravity: GravityConfig{
			BaseMS: 1000,
			StepMS: 100,
			MinMS:  100,
		},
		Progression: ProgressionConfig{
			LinesPerLevel: 5,
			WinLines:      20,
		},
		Scoring: ScoringConfig{
			PointsPerLine: 100,
			LevelBonus:    50,
			LineBonus:     10,
		},
	}
}

// GetDefaultYAML returns the embedded default YAML for a game.
func GetDefaultYAML(gameID string) []byte {
	switch gameID {
	case "fallblock":
		return defaultFallBlockYAML
	default:
		return nil
	}
}
