package config

import (
	"math"
	"time"
)

// DifficultyManager derives the fall interval from the chosen speed tier and
// the optional score or time progression.
type DifficultyManager struct {
	cfg   DifficultyConfig
	speed SpeedConfig
}

// NewDifficultyManager creates a new difficulty manager.
func NewDifficultyManager(cfg DifficultyConfig, speed SpeedConfig) *DifficultyManager {
	return &DifficultyManager{
		cfg:   cfg,
		speed: speed,
	}
}

// Preset returns the active speed tier.
func (d *DifficultyManager) Preset() DifficultyPreset {
	if d.cfg.Preset == "" {
		return DifficultyEasy
	}
	return d.cfg.Preset
}

// SetPreset switches to another speed tier.
func (d *DifficultyManager) SetPreset(p DifficultyPreset) {
	d.cfg.Preset = p
}

// IsEnabled returns whether difficulty progression is active.
func (d *DifficultyManager) IsEnabled() bool {
	switch d.cfg.Progression.Type {
	case "score", "time":
		return true
	default:
		return false
	}
}

// Level returns the progression level (0.0 to 1.0) based on score/ticks.
func (d *DifficultyManager) Level(score int, ticks int) float64 {
	if !d.IsEnabled() {
		return 0
	}

	maxAt := float64(d.cfg.Progression.MaxAt)
	if maxAt <= 0 {
		maxAt = 1 // Prevent division by zero
	}

	var progress float64
	switch d.cfg.Progression.Type {
	case "score":
		progress = float64(score) / maxAt
	case "time":
		progress = float64(ticks) / maxAt
	}

	return clampF(progress, 0.0, 1.0)
}

// FallInterval returns the time between automatic falls. The tier interval is
// divided by (1 + level*speed_multiplier) and never drops below min_ms.
func (d *DifficultyManager) FallInterval(score int, ticks int) time.Duration {
	base := d.speed.Interval(d.Preset())
	level := d.Level(score, ticks)
	interval := time.Duration(float64(base) / (1.0 + level*d.cfg.Scaling.SpeedMultiplier))

	floor := time.Duration(d.speed.MinMs) * time.Millisecond
	if interval < floor {
		interval = floor
	}
	return interval
}

// FallTicks converts the current fall interval into simulation ticks.
func (d *DifficultyManager) FallTicks(tickRate int, score int, ticks int) int {
	return TicksFor(d.FallInterval(score, ticks), tickRate)
}

// TicksFor converts a duration into whole ticks at tickRate, at least one.
func TicksFor(interval time.Duration, tickRate int) int {
	if tickRate <= 0 {
		tickRate = 60
	}
	n := int(interval * time.Duration(tickRate) / time.Second)
	return max(n, 1)
}

// clampF restricts a float64 to [lo, hi].
func clampF(val, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, val))
}
