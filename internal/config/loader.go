package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// LoadFallBlock loads the Eco Blocks configuration.
// Search order: customPath -> ~/.ecofun/configs/fallblock.yaml -> ./configs/fallblock.yaml -> embedded default
//
// Files are decoded over the defaults, so a file may set only the keys it
// wants to change.
func LoadFallBlock(customPath string) (FallBlockConfig, error) {
	cfg := DefaultFallBlockConfig()

	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return cfg, fmt.Errorf("config: failed to read %s: %w", customPath, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("config: failed to parse %s: %w", customPath, err)
		}
		return cfg, cfg.Validate()
	}

	if path := userConfigPath("fallblock.yaml"); path != "" {
		if loaded, ok := tryLoad(path); ok {
			return loaded, nil
		}
	}

	if loaded, ok := tryLoad(filepath.Join("configs", "fallblock.yaml")); ok {
		return loaded, nil
	}

	if err := yaml.Unmarshal(defaultFallBlockYAML, &cfg); err != nil {
		return DefaultFallBlockConfig(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

// tryLoad reads an optional config file. Missing, unreadable or invalid
// files are skipped so the next search location is used.
func tryLoad(path string) (FallBlockConfig, bool) {
	cfg := DefaultFallBlockConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, false
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, false
	}
	if cfg.Validate() != nil {
		return cfg, false
	}
	return cfg, true
}

// userConfigPath returns the path to a user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".ecofun", "configs", filename)
}
