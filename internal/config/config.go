// Package config provides YAML-based game configuration loading and
// difficulty management.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// Tetris2048Config contains all configuration for the game.
type Tetris2048Config struct {
	Board      BoardConfig      `yaml:"board"`
	Spawn      SpawnConfig      `yaml:"spawn"`
	Speed      SpeedConfig      `yaml:"speed"`
	Difficulty DifficultyConfig `yaml:"difficulty"`
}

// BoardConfig defines the board dimensions in cells.
type BoardConfig struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

// SpawnConfig defines how new tiles are numbered.
type SpawnConfig struct {
	FourProbability float64 `yaml:"four_probability"` // Chance of a 4 instead of a 2
	Sequence        string  `yaml:"sequence"`         // Fixed piece order, e.g. "IOT"; empty draws at random
}

// SpeedConfig defines the fall interval of each difficulty tier.
type SpeedConfig struct {
	EasyMs   int `yaml:"easy_ms"`
	NormalMs int `yaml:"normal_ms"`
	HardMs   int `yaml:"hard_ms"`
	MinMs    int `yaml:"min_ms"` // Floor for score-based speed-ups
}

// Interval returns the fall interval for a preset. Unknown presets fall back
// to the easy tier.
func (s SpeedConfig) Interval(preset DifficultyPreset) time.Duration {
	ms := s.EasyMs
	switch preset {
	case DifficultyNormal:
		ms = s.NormalMs
	case DifficultyHard:
		ms = s.HardMs
	}
	return time.Duration(ms) * time.Millisecond
}

// DifficultyConfig defines the chosen tier and the optional progression.
type DifficultyConfig struct {
	Preset      DifficultyPreset  `yaml:"preset"`
	Progression ProgressionConfig `yaml:"progression"`
	Scaling     ScalingConfig     `yaml:"scaling"`
}

// ProgressionConfig defines how difficulty increases over time.
type ProgressionConfig struct {
	Type  string `yaml:"type"`   // "score", "time", or "none"
	MaxAt int    `yaml:"max_at"` // Score/ticks at which max difficulty is reached
}

// ScalingConfig defines the magnitude of difficulty changes.
type ScalingConfig struct {
	SpeedMultiplier float64 `yaml:"speed_multiplier"` // Speed gain at max difficulty
}

// DifficultyPreset represents a named speed tier.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
)

// Presets lists the tiers from slowest to fastest.
var Presets = []DifficultyPreset{DifficultyEasy, DifficultyNormal, DifficultyHard}

// ParsePreset converts a name into a preset.
func ParsePreset(s string) (DifficultyPreset, error) {
	for _, p := range Presets {
		if string(p) == s {
			return p, nil
		}
	}
	return "", fmt.Errorf("config: unknown difficulty %q", s)
}

// Label returns the display name of the preset.
func (p DifficultyPreset) Label() string {
	switch p {
	case DifficultyEasy:
		return "Easy"
	case DifficultyNormal:
		return "Normal"
	case DifficultyHard:
		return "Hard"
	default:
		return string(p)
	}
}

// Validate checks the configuration for values the game cannot run with.
func (c Tetris2048Config) Validate() error {
	var errs []error

	// The I piece spans four cells.
	if c.Board.Width < 4 {
		errs = append(errs, fmt.Errorf("board.width must be at least 4, got %d", c.Board.Width))
	}
	if c.Board.Height < 4 {
		errs = append(errs, fmt.Errorf("board.height must be at least 4, got %d", c.Board.Height))
	}
	if c.Spawn.FourProbability < 0 || c.Spawn.FourProbability > 1 {
		errs = append(errs, fmt.Errorf("spawn.four_probability must be within [0, 1], got %g", c.Spawn.FourProbability))
	}
	if strings.Trim(c.Spawn.Sequence, "IJLOSTZ") != "" {
		errs = append(errs, fmt.Errorf("spawn.sequence %q may only contain the letters I, J, L, O, S, T and Z", c.Spawn.Sequence))
	}
	if c.Speed.EasyMs <= 0 || c.Speed.NormalMs <= 0 || c.Speed.HardMs <= 0 {
		errs = append(errs, errors.New("speed tiers must be positive"))
	}
	if c.Speed.MinMs < 0 {
		errs = append(errs, fmt.Errorf("speed.min_ms must not be negative, got %d", c.Speed.MinMs))
	}
	if c.Difficulty.Preset != "" {
		if _, err := ParsePreset(string(c.Difficulty.Preset)); err != nil {
			errs = append(errs, err)
		}
	}
	switch c.Difficulty.Progression.Type {
	case "", "none", "score", "time":
	default:
		errs = append(errs, fmt.Errorf("difficulty.progression.type %q is not one of score, time, none", c.Difficulty.Progression.Type))
	}

	if len(errs) > 0 {
		return fmt.Errorf("config: invalid tetris2048 config: %w", errors.Join(errs...))
	}
	return nil
}
