package config

import "fmt"

// DifficultyPreset adjusts how eagerly the centipede agent dodges.
type DifficultyPreset string

const (
	DifficultyNone   DifficultyPreset = ""
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
)

// ParseDifficulty converts a CLI string into a preset.
func ParseDifficulty(s string) (DifficultyPreset, error) {
	switch p := DifficultyPreset(s); p {
	case DifficultyNone, DifficultyEasy, DifficultyNormal, DifficultyHard:
		return p, nil
	default:
		return DifficultyNone, fmt.Errorf("%w: unknown difficulty %q (want easy, normal or hard)", ErrInvalidConfig, s)
	}
}

// ApplyDifficulty modifies the config based on a difficulty preset.
// DifficultyNone leaves the config untouched.
func ApplyDifficulty(cfg *Config, preset DifficultyPreset) {
	switch preset {
	case DifficultyEasy:
		cfg.Agents.EvadeChance = 0.05
		cfg.Agents.EvadeCooldown = 4
	case DifficultyNormal:
		cfg.Agents.EvadeChance = 0.1
		cfg.Agents.EvadeCooldown = 3
	case DifficultyHard:
		cfg.Agents.EvadeChance = 0.2
		cfg.Agents.EvadeCooldown = 2
	}
}
