// Package config provides YAML-based configuration loading and difficulty
// presets for the centipede arena.
package config

import (
	"errors"
	"fmt"
	"time"
)

// ErrInvalidConfig is wrapped by every validation failure.
var ErrInvalidConfig = errors.New("invalid config")

// Config contains all tunables for a centipede match.
type Config struct {
	Board     BoardConfig     `yaml:"board"`
	Centipede CentipedeConfig `yaml:"centipede"`
	Mushrooms MushroomConfig  `yaml:"mushrooms"`
	Scoring   ScoringConfig   `yaml:"scoring"`
	Agents    AgentsConfig    `yaml:"agents"`
	Pacing    PacingConfig    `yaml:"pacing"`
}

// BoardConfig defines the grid dimensions.
type BoardConfig struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

// CentipedeConfig defines the initial centipede.
type CentipedeConfig struct {
	Length int `yaml:"length"`
}

// MushroomConfig defines initial mushroom placement.
// Mushrooms are drawn in rows [TopRow, height-BottomMargin].
type MushroomConfig struct {
	Count        int `yaml:"count"`
	TopRow       int `yaml:"top_row"`
	BottomMargin int `yaml:"bottom_margin"`
}

// ScoringConfig defines score rewards.
type ScoringConfig struct {
	PointsPerSegment int `yaml:"points_per_segment"`
}

// AgentsConfig tunes the centipede agent's evasion behavior.
type AgentsConfig struct {
	EvadeChance   float64 `yaml:"evade_chance"`
	EvadeCooldown int     `yaml:"evade_cooldown"`
}

// PacingConfig controls playback speed. MaxTicks of 0 means no limit.
type PacingConfig struct {
	DelaySeconds float64 `yaml:"delay_seconds"`
	MaxTicks     int     `yaml:"max_ticks"`
}

// Delay returns the inter-tick delay as a duration.
func (p PacingConfig) Delay() time.Duration {
	return time.Duration(p.DelaySeconds * float64(time.Second))
}

// MushroomRows returns the inclusive row band used for mushroom placement.
func (c Config) MushroomRows() (top, bottom int) {
	return c.Mushrooms.TopRow, c.Board.Height - c.Mushrooms.BottomMargin
}

// Validate checks the config for values that would produce an undefined board.
func (c Config) Validate() error {
	w, h := c.Board.Width, c.Board.Height
	if w < 2 {
		return fmt.Errorf("%w: board width must be at least 2, got %d", ErrInvalidConfig, w)
	}
	if h < 2 {
		return fmt.Errorf("%w: board height must be at least 2, got %d", ErrInvalidConfig, h)
	}
	if c.Centipede.Length < 1 {
		return fmt.Errorf("%w: centipede length must be positive, got %d", ErrInvalidConfig, c.Centipede.Length)
	}
	if c.Centipede.Length > w {
		return fmt.Errorf("%w: centipede length %d exceeds board width %d", ErrInvalidConfig, c.Centipede.Length, w)
	}
	if c.Mushrooms.Count < 0 {
		return fmt.Errorf("%w: mushroom count must not be negative, got %d", ErrInvalidConfig, c.Mushrooms.Count)
	}
	if c.Mushrooms.Count > 0 {
		top, bottom := c.MushroomRows()
		if top < 1 || bottom > h-2 || top > bottom {
			return fmt.Errorf("%w: mushroom rows [%d, %d] must lie strictly between the centipede row and the player row of a %d-row board",
				ErrInvalidConfig, top, bottom, h)
		}
	}
	if c.Scoring.PointsPerSegment <= 0 {
		return fmt.Errorf("%w: points per segment must be positive, got %d", ErrInvalidConfig, c.Scoring.PointsPerSegment)
	}
	if c.Agents.EvadeChance < 0 || c.Agents.EvadeChance > 1 {
		return fmt.Errorf("%w: evade chance must be in [0, 1], got %g", ErrInvalidConfig, c.Agents.EvadeChance)
	}
	if c.Agents.EvadeCooldown < 0 {
		return fmt.Errorf("%w: evade cooldown must not be negative, got %d", ErrInvalidConfig, c.Agents.EvadeCooldown)
	}
	if c.Pacing.DelaySeconds < 0 {
		return fmt.Errorf("%w: delay must not be negative, got %g", ErrInvalidConfig, c.Pacing.DelaySeconds)
	}
	if c.Pacing.MaxTicks < 0 {
		return fmt.Errorf("%w: max ticks must not be negative, got %d", ErrInvalidConfig, c.Pacing.MaxTicks)
	}
	return nil
}
