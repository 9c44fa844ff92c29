package config

import (
	_ "embed"
)

//go:embed defaults/centipede.yaml
var defaultCentipedeYAML []byte

// Default returns the hardcoded default configuration.
func Default() Config {
	return Config{
		Board: BoardConfig{
			Width:  20,
			Height: 20,
		},
		Centipede: CentipedeConfig{
			Length: 8,
		},
		Mushrooms: MushroomConfig{
			Count:        20,
			TopRow:       2,
			BottomMargin: 3,
		},
		Scoring: ScoringConfig{
			PointsPerSegment: 10,
		},
		Agents: AgentsConfig{
			EvadeChance:   0.1,
			EvadeCooldown: 3,
		},
		Pacing: PacingConfig{
			DelaySeconds: 0.2,
		},
	}
}
