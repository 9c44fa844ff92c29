package centipede

import (
	"slices"
	"testing"
)

func TestParseStrategies(t *testing.T) {
	for _, s := range ShooterStrategies() {
		got, err := ParseShooterStrategy(s.String())
		if err != nil || got != s {
			t.Errorf("ParseShooterStrategy(%q) = %v, %v", s, got, err)
		}
	}
	for _, c := range CentipedeStrategies() {
		got, err := ParseCentipedeStrategy(c.String())
		if err != nil || got != c {
			t.Errorf("ParseCentipedeStrategy(%q) = %v, %v", c, got, err)
		}
	}

	if _, err := ParseShooterStrategy("sniper"); err == nil {
		t.Error("expected error for unknown shooter strategy")
	}
	if _, err := ParseCentipedeStrategy("Evasive"); err == nil {
		t.Error("expected error for wrong-case centipede strategy")
	}
}

func TestShooterTarget(t *testing.T) {
	tests := []struct {
		name     string
		strategy ShooterStrategy
		head     Position
		dir      Direction
		want     Position
	}{
		{"predictive right", ShooterPredictive, Position{5, 2}, DirRight, Position{6, 2}},
		{"predictive left", ShooterPredictive, Position{5, 2}, DirLeft, Position{4, 2}},
		{"predictive right wall", ShooterPredictive, Position{9, 2}, DirRight, Position{9, 3}},
		{"predictive left wall", ShooterPredictive, Position{0, 2}, DirLeft, Position{0, 3}},
		{"reactive", ShooterReactive, Position{5, 2}, DirRight, Position{5, 2}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestState(10, 10, tt.head)
			s.Direction = tt.dir
			if got := NewShooterAgent(tt.strategy).Target(s); got != tt.want {
				t.Errorf("Target = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestShooterMovesAndFires(t *testing.T) {
	tests := []struct {
		name        string
		player      Position
		head        Position
		wantPlayer  Position
		wantBullets []Position
	}{
		{"far away moves only", Position{10, 19}, Position{3, 0}, Position{9, 19}, nil},
		{"aligned after move", Position{4, 19}, Position{3, 0}, Position{3, 19}, []Position{{3, 18}}},
		{"one column off fires", Position{7, 19}, Position{5, 0}, Position{6, 19}, []Position{{6, 18}}},
		{"already aligned", Position{3, 19}, Position{3, 0}, Position{3, 19}, []Position{{3, 18}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestState(20, 20, tt.head)
			s.Player = tt.player
			NewShooterAgent(ShooterReactive).Decide(s)

			if s.Player != tt.wantPlayer {
				t.Errorf("Player = %v, want %v", s.Player, tt.wantPlayer)
			}
			if !slices.Equal(s.Bullets, tt.wantBullets) {
				t.Errorf("Bullets = %v, want %v", s.Bullets, tt.wantBullets)
			}
		})
	}
}

func TestShooterIdleWithoutSegments(t *testing.T) {
	s := newTestState(10, 10)
	before := s.Player
	NewShooterAgent(ShooterPredictive).Decide(s)

	if s.Player != before || len(s.Bullets) != 0 {
		t.Errorf("shooter acted with no segments: player=%v bullets=%v", s.Player, s.Bullets)
	}
}

func TestMovePlayerStaysOnBoard(t *testing.T) {
	s := newTestState(10, 10)
	s.Player = Position{0, 9}

	if s.MovePlayer(DirLeft) {
		t.Error("MovePlayer(left) at the wall = true, want false")
	}
	if s.MovePlayer(DirDown) {
		t.Error("MovePlayer(down) on the last row = true, want false")
	}
	if s.Player != (Position{0, 9}) {
		t.Errorf("Player = %v, want unchanged", s.Player)
	}
}

func TestCentipedeThreatResponse(t *testing.T) {
	s := newTestState(10, 10, Position{5, 5})
	s.Bullets = []Position{{6, 4}, {4, 3}}
	rng := &scriptedRand{}
	a := NewCentipedeAgent(CentipedePassive, rng, 0.1, 3)

	a.Decide(s)

	if s.Direction != DirLeft {
		t.Errorf("Direction = %v, want left (one turn only)", s.Direction)
	}
	if a.Cooldown() != 2 {
		t.Errorf("Cooldown = %d, want 2", a.Cooldown())
	}
	if rng.draws != 0 {
		t.Errorf("passive centipede drew %d random numbers", rng.draws)
	}
}

func TestCentipedeSeveralTriggersReverseOnce(t *testing.T) {
	tests := []struct {
		name     string
		strategy CentipedeStrategy
		floats   []float64
		cooldown int
		bullets  []Position
	}{
		{"two threats without cooldown", CentipedePassive, nil, 0, []Position{{5, 3}, {6, 2}}},
		{"threat then roll with cooldown one", CentipedeEvasive, []float64{0.0}, 1, []Position{{5, 3}}},
		{"two threats then roll without cooldown", CentipedeEvasive, []float64{0.0}, 0, []Position{{4, 4}, {5, 1}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestState(10, 10, Position{5, 5})
			s.Bullets = tt.bullets
			a := NewCentipedeAgent(tt.strategy, &scriptedRand{floats: tt.floats}, 0.1, tt.cooldown)

			a.Decide(s)

			if s.Direction != DirLeft {
				t.Errorf("Direction = %v, want left", s.Direction)
			}
		})
	}
}

func TestCentipedeIgnoresDistantOrPassedBullets(t *testing.T) {
	tests := []struct {
		name   string
		bullet Position
	}{
		{"two columns away", Position{7, 4}},
		{"below head", Position{5, 6}},
		{"same row", Position{5, 5}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestState(10, 10, Position{5, 5})
			s.Bullets = []Position{tt.bullet}
			NewCentipedeAgent(CentipedePassive, &scriptedRand{}, 0.1, 3).Decide(s)

			if s.Direction != DirRight {
				t.Errorf("Direction = %v, want right", s.Direction)
			}
		})
	}
}

func TestCentipedeRandomEvasion(t *testing.T) {
	s := newTestState(10, 10, Position{5, 0})
	rng := &scriptedRand{floats: []float64{0.05, 0.0, 0.5}}
	a := NewCentipedeAgent(CentipedeEvasive, rng, 0.1, 3)

	a.Decide(s)
	if s.Direction != DirLeft {
		t.Fatalf("Direction = %v, want left after low roll", s.Direction)
	}
	if a.Cooldown() != 3 {
		t.Errorf("Cooldown = %d, want 3", a.Cooldown())
	}

	// Low roll during cooldown: no turn, but the roll is still consumed.
	a.Decide(s)
	if s.Direction != DirLeft {
		t.Errorf("Direction = %v, want left during cooldown", s.Direction)
	}
	if rng.draws != 2 {
		t.Errorf("draws = %d, want 2", rng.draws)
	}

	a.Decide(s)
	if s.Direction != DirLeft {
		t.Errorf("Direction = %v, want left after high roll", s.Direction)
	}
	if a.Cooldown() != 1 {
		t.Errorf("Cooldown = %d, want 1", a.Cooldown())
	}
}

func TestCentipedeIdleWithoutSegments(t *testing.T) {
	s := newTestState(10, 10)
	rng := &scriptedRand{floats: []float64{0}}
	NewCentipedeAgent(CentipedeEvasive, rng, 1, 3).Decide(s)

	if s.Direction != DirRight || rng.draws != 0 {
		t.Errorf("centipede acted with no segments: dir=%v draws=%d", s.Direction, rng.draws)
	}
}

func TestCentipedeOnlyChangesDirection(t *testing.T) {
	s := newTestState(10, 10, Position{5, 5}, Position{4, 5})
	s.Bullets = []Position{{5, 2}}
	before := s.Clone()

	NewCentipedeAgent(CentipedeEvasive, &scriptedRand{floats: []float64{0}}, 0.1, 3).Decide(s)

	if !slices.Equal(s.Segments, before.Segments) || !slices.Equal(s.Bullets, before.Bullets) ||
		s.Player != before.Player || s.Score != before.Score {
		t.Error("centipede agent modified more than the direction")
	}
}
