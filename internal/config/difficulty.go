package config

import (
	"math"
	"time"
)

// Progress is the session state difficulty is derived from.
type Progress struct {
	Wave  int
	Score int
	Ticks int
}

// DifficultyManager calculates dynamic game parameters based on wave/score/time.
type DifficultyManager struct {
	cfg          DifficultyConfig
	initialLevel float64
}

// NewDifficultyManager creates a new difficulty manager.
func NewDifficultyManager(cfg DifficultyConfig) *DifficultyManager {
	return &DifficultyManager{
		cfg:          cfg,
		initialLevel: clampF(cfg.InitialLevel, 0.0, 1.0),
	}
}

// SetInitialLevel overrides the initial difficulty level (0.0 to 1.0).
func (d *DifficultyManager) SetInitialLevel(level float64) {
	d.initialLevel = clampF(level, 0.0, 1.0)
}

// SetEnabled enables or disables difficulty progression.
func (d *DifficultyManager) SetEnabled(enabled bool) {
	d.cfg.Enabled = enabled
}

// IsEnabled returns whether difficulty progression is active.
func (d *DifficultyManager) IsEnabled() bool {
	return d.cfg.Enabled && d.cfg.Progression.Type != "none" && d.cfg.Progression.Type != ""
}

// Level returns the current difficulty level (0.0 to 1.0).
func (d *DifficultyManager) Level(p Progress) float64 {
	if !d.IsEnabled() {
		return d.initialLevel
	}

	var progress float64
	maxAt := float64(d.cfg.Progression.MaxAt)
	if maxAt <= 0 {
		maxAt = 1 // Prevent division by zero
	}

	switch d.cfg.Progression.Type {
	case "wave":
		// Wave 1 is the starting point, not the first step.
		progress = float64(p.Wave-1) / maxAt
	case "score":
		progress = float64(p.Score) / maxAt
	case "time":
		progress = float64(p.Ticks) / maxAt
	default:
		return d.initialLevel
	}

	progress = clampF(progress, 0.0, 1.0)

	// Interpolate from initial level to 1.0
	return d.initialLevel + progress*(1.0-d.initialLevel)
}

// Speed returns a scaled asteroid speed for the current level.
func (d *DifficultyManager) Speed(baseSpeed float64, p Progress) float64 {
	level := d.Level(p)
	// Speed increases from base to base * (1 + speedMultiplier)
	return baseSpeed * (1.0 + level*d.cfg.Scaling.SpeedMultiplier)
}

// SaucerInterval shortens a saucer spawn delay as difficulty rises.
func (d *DifficultyManager) SaucerInterval(base time.Duration, p Progress) time.Duration {
	level := d.Level(p)
	cut := clampF(level*d.cfg.Scaling.SaucerInterval, 0.0, 0.9)
	return time.Duration(float64(base) * (1.0 - cut))
}

// clampF restricts a float64 to [min, max].
func clampF(val, min, max float64) float64 {
	return math.Max(min, math.Min(max, val))
}
