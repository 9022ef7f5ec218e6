package config

import (
	"math"
	"time"
)

// DifficultyManager calculates the difficulty level from score/time.
type DifficultyManager struct {
	cfg          DifficultyConfig
	initialLevel float64
}

// NewDifficultyManager creates a new difficulty manager.
func NewDifficultyManager(cfg DifficultyConfig) *DifficultyManager {
	return &DifficultyManager{
		cfg:          cfg,
		initialLevel: cfg.InitialLevel,
	}
}

// SetInitialLevel overrides the initial difficulty level (0.0 to 1.0).
func (d *DifficultyManager) SetInitialLevel(level float64) {
	d.initialLevel = clampF(level, 0.0, 1.0)
}

// IsEnabled returns whether difficulty progression is active.
func (d *DifficultyManager) IsEnabled() bool {
	return d.cfg.Enabled && d.cfg.Progression.Type != "none"
}

// Level returns the current difficulty level (0.0 to 1.0) based on score/ticks.
func (d *DifficultyManager) Level(score int, ticks int) float64 {
	if !d.IsEnabled() {
		return d.initialLevel
	}

	var progress float64
	maxAt := float64(d.cfg.Progression.MaxAt)
	if maxAt <= 0 {
		maxAt = 1 // Prevent division by zero
	}

	switch d.cfg.Progression.Type {
	case "score":
		progress = float64(score) / maxAt
	case "time":
		progress = float64(ticks) / maxAt
	default:
		return d.initialLevel
	}

	progress = clampF(progress, 0.0, 1.0)

	// Interpolate from initial level to 1.0
	return d.initialLevel + progress*(1.0-d.initialLevel)
}

// SpeedCurve interpolates the tick interval between base and min by difficulty level.
type SpeedCurve struct {
	difficulty *DifficultyManager
	base       time.Duration
	min        time.Duration
}

// NewSpeedCurve builds the tick interval curve for a config.
func NewSpeedCurve(cfg SnakeConfig) *SpeedCurve {
	return &SpeedCurve{
		difficulty: NewDifficultyManager(cfg.Difficulty),
		base:       cfg.Speed.BaseInterval(),
		min:        cfg.Speed.MinInterval(),
	}
}

// Interval returns the tick interval for the given progress.
// Results are rounded to whole milliseconds so speed changes in visible steps.
func (c *SpeedCurve) Interval(score int, ticks int) time.Duration {
	level := c.difficulty.Level(score, ticks)
	span := float64(c.base - c.min)
	d := c.base - time.Duration(level*span)
	d = d.Round(time.Millisecond)
	if d < c.min {
		d = c.min
	}
	return d
}

// clampF restricts a float64 to [min, max].
func clampF(val, min, max float64) float64 {
	return math.Max(min, math.Min(max, val))
}
