package config

import "fmt"

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// Presets lists the presets in menu order.
func Presets() []DifficultyPreset {
	return []DifficultyPreset{DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed}
}

// Description returns a one-line explanation for menus and help text.
func (p DifficultyPreset) Description() string {
	switch p {
	case DifficultyEasy:
		return "Slow gravity that speeds up gently"
	case DifficultyNormal:
		return "Standard gravity"
	case DifficultyHard:
		return "Fast gravity from the start"
	case DifficultyFixed:
		return "Gravity never speeds up"
	default:
		return ""
	}
}

// ParsePreset validates a preset name. The empty string means normal.
func ParsePreset(name string) (DifficultyPreset, error) {
	if name == "" {
		return DifficultyNormal, nil
	}
	for _, p := range Presets() {
		if string(p) == name {
			return p, nil
		}
	}
	return "", fmt.Errorf("config: unknown difficulty %q (want easy, normal, hard or fixed)", name)
}

// ApplyFallBlockPreset modifies the gravity settings for a difficulty preset.
// Normal leaves the loaded configuration untouched.
func ApplyFallBlockPreset(cfg *FallBlockConfig, preset DifficultyPreset) {
	switch preset {
	case DifficultyEasy:
		cfg.Gravity.BaseMS = cfg.Gravity.BaseMS * 3 / 2
		cfg.Gravity.StepMS = cfg.Gravity.StepMS / 2
	case DifficultyHard:
		cfg.Gravity.BaseMS = max(cfg.Gravity.MinMS, cfg.Gravity.BaseMS*6/10)
	case DifficultyFixed:
		cfg.Gravity.StepMS = 0
	}
}
