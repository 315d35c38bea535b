package config

import (
	_ "embed"
)

//go:embed defaults/tetris2048.yaml
var defaultTetris2048YAML []byte

// DefaultTetris2048Config returns the built-in configuration.
func DefaultTetris2048Config() Tetris2048Config {
	return Tetris2048Config{
		Board: BoardConfig{
			Width:  12,
			Height: 20,
		},
		Spawn: SpawnConfig{
			FourProbability: 0.5,
		},
		Speed: SpeedConfig{
			EasyMs:   250,
			NormalMs: 200,
			HardMs:   125,
			MinMs:    60,
		},
		Difficulty: DifficultyConfig{
			Preset: DifficultyEasy,
			Progression: ProgressionConfig{
				Type:  "none",
				MaxAt: 4096,
			},
			Scaling: ScalingConfig{
				SpeedMultiplier: 1.0,
			},
		},
	}
}

// DefaultYAML returns the embedded default YAML.
func DefaultYAML() []byte {
	return defaultTetris2048YAML
}
