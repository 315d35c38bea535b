package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// FileName is the configuration file looked up in the config directories.
const FileName = "tetris2048.yaml"

// LoadTetris2048 loads the game configuration.
// Search order: customPath -> ~/.tetris2048/configs/tetris2048.yaml -> ./configs/tetris2048.yaml -> embedded default
//
// Only a custom path reports read, parse and validation errors. Broken files
// in the other locations are skipped.
func LoadTetris2048(customPath string) (Tetris2048Config, error) {
	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return Tetris2048Config{}, fmt.Errorf("config: failed to read %s: %w", customPath, err)
		}
		cfg, err := Parse(data)
		if err != nil {
			return Tetris2048Config{}, fmt.Errorf("config: %s: %w", customPath, err)
		}
		return cfg, nil
	}

	// Try user config directory
	if userCfgPath := userConfigPath(FileName); userCfgPath != "" {
		if data, err := os.ReadFile(userCfgPath); err == nil {
			if cfg, err := Parse(data); err == nil {
				return cfg, nil
			}
		}
	}

	// Try local configs directory
	if data, err := os.ReadFile(filepath.Join("configs", FileName)); err == nil {
		if cfg, err := Parse(data); err == nil {
			return cfg, nil
		}
	}

	// Use embedded default YAML
	cfg, err := Parse(defaultTetris2048YAML)
	if err != nil {
		return DefaultTetris2048Config(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

// Parse decodes YAML on top of the built-in defaults and validates the result,
// so a file only needs to list the values it changes.
func Parse(data []byte) (Tetris2048Config, error) {
	cfg := DefaultTetris2048Config()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Tetris2048Config{}, fmt.Errorf("failed to parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Tetris2048Config{}, err
	}
	return cfg, nil
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".tetris2048", "configs", filename)
}

// ApplyPreset selects the speed tier the game starts with.
func ApplyPreset(cfg *Tetris2048Config, preset DifficultyPreset) {
	cfg.Difficulty.Preset = preset
}
