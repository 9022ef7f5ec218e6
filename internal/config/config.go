// Package config provides YAML-based game configuration loading and
// difficulty management for the snake game.
package config

import (
	"errors"
	"fmt"
	"time"
)

// ErrInvalidConfig is wrapped by every validation failure.
var ErrInvalidConfig = errors.New("config: invalid")

// SnakeConfig contains all configuration for the Snake game.
type SnakeConfig struct {
	Grid       SnakeGrid        `yaml:"grid"`
	Snake      SnakeStart       `yaml:"snake"`
	Scoring    SnakeScoring     `yaml:"scoring"`
	Speed      SnakeSpeed       `yaml:"speed"`
	Difficulty DifficultyConfig `yaml:"difficulty"`
}

// SnakeGrid defines the board. Zero dimensions fit the terminal.
type SnakeGrid struct {
	Width  int  `yaml:"width"`
	Height int  `yaml:"height"`
	Wrap   bool `yaml:"wrap"`
}

// SnakeStart defines the snake at the start of a run.
type SnakeStart struct {
	InitialLength int `yaml:"initial_length"`
}

// SnakeScoring defines score increments.
type SnakeScoring struct {
	FoodPoints int `yaml:"food_points"`
}

// SnakeSpeed defines the tick interval range.
type SnakeSpeed struct {
	BaseIntervalMs int `yaml:"base_interval_ms"`
	MinIntervalMs  int `yaml:"min_interval_ms"`
}

// BaseInterval returns the starting tick interval.
func (s SnakeSpeed) BaseInterval() time.Duration {
	return time.Duration(s.BaseIntervalMs) * time.Millisecond
}

// MinInterval returns the fastest tick interval.
func (s SnakeSpeed) MinInterval() time.Duration {
	return time.Duration(s.MinIntervalMs) * time.Millisecond
}

// DifficultyConfig defines the difficulty progression system.
type DifficultyConfig struct {
	Enabled      bool              `yaml:"enabled"`
	InitialLevel float64           `yaml:"initial_level"` // 0.0 = easy, 1.0 = hard
	Progression  ProgressionConfig `yaml:"progression"`
}

// ProgressionConfig defines how difficulty increases over a run.
type ProgressionConfig struct {
	Type  string `yaml:"type"`   // "score", "time", or "none"
	MaxAt int    `yaml:"max_at"` // Score/ticks at which max difficulty is reached
}

// minGridSide is the smallest board edge that still leaves room to turn.
const minGridSide = 4

// Validate checks the config for values the game cannot run with.
func (c SnakeConfig) Validate() error {
	if c.Grid.Width < 0 || c.Grid.Height < 0 {
		return fmt.Errorf("%w: negative grid size %dx%d", ErrInvalidConfig, c.Grid.Width, c.Grid.Height)
	}
	if (c.Grid.Width > 0 && c.Grid.Width < minGridSide) || (c.Grid.Height > 0 && c.Grid.Height < minGridSide) {
		return fmt.Errorf("%w: grid sides must be at least %d", ErrInvalidConfig, minGridSide)
	}
	if c.Snake.InitialLength < 1 {
		return fmt.Errorf("%w: initial_length must be at least 1, got %d", ErrInvalidConfig, c.Snake.InitialLength)
	}
	if c.Grid.Width > 0 && c.Snake.InitialLength > c.Grid.Width-1 {
		return fmt.Errorf("%w: initial_length %d does not fit grid width %d", ErrInvalidConfig, c.Snake.InitialLength, c.Grid.Width)
	}
	if c.Scoring.FoodPoints < 1 {
		return fmt.Errorf("%w: food_points must be positive, got %d", ErrInvalidConfig, c.Scoring.FoodPoints)
	}
	if c.Speed.MinIntervalMs <= 0 || c.Speed.BaseIntervalMs < c.Speed.MinIntervalMs {
		return fmt.Errorf("%w: need 0 < min_interval_ms (%d) <= base_interval_ms (%d)",
			ErrInvalidConfig, c.Speed.MinIntervalMs, c.Speed.BaseIntervalMs)
	}
	if c.Difficulty.InitialLevel < 0 || c.Difficulty.InitialLevel > 1 {
		return fmt.Errorf("%w: initial_level must be within [0, 1], got %g", ErrInvalidConfig, c.Difficulty.InitialLevel)
	}
	switch c.Difficulty.Progression.Type {
	case "score", "time", "none", "":
	default:
		return fmt.Errorf("%w: unknown progression type %q", ErrInvalidConfig, c.Difficulty.Progression.Type)
	}
	return nil
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// ParsePreset validates a preset name. The empty string means no preset.
func ParsePreset(s string) (DifficultyPreset, error) {
	switch p := DifficultyPreset(s); p {
	case "", DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed:
		return p, nil
	default:
		return "", fmt.Errorf("%w: unknown difficulty %q (want easy, normal, hard or fixed)", ErrInvalidConfig, s)
	}
}

// InitialLevelForPreset returns the initial_level for a difficulty preset.
func InitialLevelForPreset(preset DifficultyPreset) float64 {
	switch preset {
	case DifficultyEasy:
		return 0.0
	case DifficultyNormal:
		return 0.3
	case DifficultyHard:
		return 0.7
	default:
		return 0.0
	}
}

// IsFixedPreset returns true if the preset disables progression.
func IsFixedPreset(preset DifficultyPreset) bool {
	return preset == DifficultyFixed
}
