package centipede

import (
	"fmt"

	"github.com/vovakirdan/centipede-arena/internal/core"
)

// Agent decides one action per tick by mutating the shared state.
type Agent interface {
	Decide(s *State)
}

// ShooterStrategy selects how the shooter picks its target.
type ShooterStrategy int

const (
	// ShooterPredictive aims where the head will be after its next move.
	ShooterPredictive ShooterStrategy = iota
	// ShooterReactive aims at the head's current cell.
	ShooterReactive
)

// ShooterStrategies lists every shooter strategy.
func ShooterStrategies() []ShooterStrategy {
	return []ShooterStrategy{ShooterPredictive, ShooterReactive}
}

func (s ShooterStrategy) String() string {
	switch s {
	case ShooterPredictive:
		return "predictive"
	case ShooterReactive:
		return "reactive"
	default:
		return "unknown"
	}
}

// ParseShooterStrategy converts a name into a strategy.
func ParseShooterStrategy(name string) (ShooterStrategy, error) {
	for _, s := range ShooterStrategies() {
		if s.String() == name {
			return s, nil
		}
	}
	return 0, fmt.Errorf("centipede: unknown shooter strategy %q", name)
}

// CentipedeStrategy selects whether the centipede dodges at random.
type CentipedeStrategy int

const (
	// CentipedeEvasive reacts to bullets and also turns at random.
	CentipedeEvasive CentipedeStrategy = iota
	// CentipedePassive only reacts to bullets.
	CentipedePassive
)

// CentipedeStrategies lists every centipede strategy.
func CentipedeStrategies() []CentipedeStrategy {
	return []CentipedeStrategy{CentipedeEvasive, CentipedePassive}
}

func (s CentipedeStrategy) String() string {
	switch s {
	case CentipedeEvasive:
		return "evasive"
	case CentipedePassive:
		return "passive"
	default:
		return "unknown"
	}
}

// ParseCentipedeStrategy converts a name into a strategy.
func ParseCentipedeStrategy(name string) (CentipedeStrategy, error) {
	for _, s := range CentipedeStrategies() {
		if s.String() == name {
			return s, nil
		}
	}
	return 0, fmt.Errorf("centipede: unknown centipede strategy %q", name)
}

// ShooterAgent steers the player under the centipede's head and fires when
// lined up.
type ShooterAgent struct {
	strategy ShooterStrategy
}

// NewShooterAgent creates a shooter using the given strategy.
func NewShooterAgent(strategy ShooterStrategy) *ShooterAgent {
	return &ShooterAgent{strategy: strategy}
}

// Strategy returns the agent's strategy.
func (a *ShooterAgent) Strategy() ShooterStrategy { return a.strategy }

// Decide moves the player one column toward the target and fires if the
// player ends within one column of it.
func (a *ShooterAgent) Decide(s *State) {
	if len(s.Segments) == 0 {
		return
	}

	target := a.Target(s)
	switch {
	case s.Player.X > target.X:
		s.MovePlayer(DirLeft)
	case s.Player.X < target.X:
		s.MovePlayer(DirRight)
	}

	if core.Abs(s.Player.X-target.X) <= 1 {
		s.Shoot()
	}
}

// Target returns the cell the shooter aims for. With no segments left it
// returns the player's own position.
func (a *ShooterAgent) Target(s *State) Position {
	head, ok := s.Head()
	if !ok {
		return s.Player
	}
	if a.strategy == ShooterReactive {
		return head
	}

	switch {
	case s.Direction == DirRight && head.X < s.Width()-1:
		return head.Move(DirRight)
	case s.Direction == DirLeft && head.X > 0:
		return head.Move(DirLeft)
	default:
		// At the wall the head turns around and drops a row.
		return head.Move(DirDown)
	}
}

// CentipedeAgent turns the centipede away from incoming fire and, when
// evasive, at random.
type CentipedeAgent struct {
	strategy    CentipedeStrategy
	rng         Rand
	evadeChance float64
	cooldownLen int
	cooldown    int
}

// NewCentipedeAgent creates a centipede agent. evadeChance is the per-tick
// probability of a random turn; cooldown is how many ticks a turn blocks
// the next one.
func NewCentipedeAgent(strategy CentipedeStrategy, rng Rand, evadeChance float64, cooldown int) *CentipedeAgent {
	return &CentipedeAgent{
		strategy:    strategy,
		rng:         rng,
		evadeChance: evadeChance,
		cooldownLen: cooldown,
	}
}

// Strategy returns the agent's strategy.
func (a *CentipedeAgent) Strategy() CentipedeStrategy { return a.strategy }

// Cooldown returns the ticks left before the centipede may turn again.
func (a *CentipedeAgent) Cooldown() int { return a.cooldown }

// Decide may reverse the centipede's heading. Only s.Direction changes.
// Every turn in one decision targets the reverse of the heading it started
// with, so several triggers still reverse it once.
func (a *CentipedeAgent) Decide(s *State) {
	head, ok := s.Head()
	if !ok {
		return
	}
	reversed := s.Direction.Reverse()

	for _, b := range s.Bullets {
		if core.Abs(b.X-head.X) <= 1 && b.Y < head.Y && a.cooldown <= 0 {
			a.turn(s, reversed)
		}
	}

	a.cooldown = max(0, a.cooldown-1)

	if a.strategy != CentipedeEvasive {
		return
	}
	// The roll happens every tick so the random stream stays aligned.
	roll := a.rng.Float64()
	if roll < a.evadeChance && a.cooldown <= 0 {
		a.turn(s, reversed)
	}
}

func (a *CentipedeAgent) turn(s *State, dir Direction) {
	s.Direction = dir
	a.cooldown = a.cooldownLen
}
