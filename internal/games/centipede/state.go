package centipede

import (
	"fmt"

	"github.com/vovakirdan/centipede-arena/internal/config"
)

// Rand is the randomness source used for mushroom placement and evasion rolls.
// *rand.Rand satisfies it; tests substitute seeded or scripted sources.
type Rand interface {
	Intn(n int) int
	Float64() float64
}

// State is the single mutable aggregate shared by both agents and the engine.
// Board is a projection of the entity lists and is rebuilt by Update.
type State struct {
	Board     Board
	Score     int
	Player    Position
	Segments  []Position // head first
	Mushrooms []Position // no duplicates, insertion order
	Bullets   []Position // oldest first
	Direction Direction
	GameOver  bool

	pointsPerSegment int
}

// NewState builds the initial state for a match: the player at bottom-center,
// the centipede along the top row with its head at the leading (right) end,
// and mushrooms drawn at random inside the configured row band.
func NewState(cfg config.Config, rng Rand) (*State, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("centipede: %w", err)
	}

	w, h := cfg.Board.Width, cfg.Board.Height
	s := &State{
		Board:            NewBoard(w, h),
		Player:           Position{X: w / 2, Y: h - 1},
		Segments:         make([]Position, cfg.Centipede.Length),
		Direction:        DirRight,
		pointsPerSegment: cfg.Scoring.PointsPerSegment,
	}

	for i := range s.Segments {
		s.Segments[i] = Position{X: cfg.Centipede.Length - 1 - i, Y: 0}
	}

	top, bottom := cfg.MushroomRows()
	for range cfg.Mushrooms.Count {
		x := rng.Intn(w)
		y := top + rng.Intn(bottom-top+1)
		s.AddMushroom(Position{X: x, Y: y})
	}

	s.stamp()
	return s, nil
}

// Width returns the board width.
func (s *State) Width() int { return s.Board.Width() }

// Height returns the board height.
func (s *State) Height() int { return s.Board.Height() }

// Head returns the leading segment, if any remain.
func (s *State) Head() (Position, bool) {
	if len(s.Segments) == 0 {
		return Position{}, false
	}
	return s.Segments[0], true
}

// MovePlayer moves the player one cell. Moves that would leave the board
// are ignored and reported as false.
func (s *State) MovePlayer(d Direction) bool {
	next := s.Player.Move(d)
	if !next.In(s.Width(), s.Height()) {
		return false
	}
	s.Player = next
	return true
}

// Shoot fires a bullet from the cell directly above the player.
func (s *State) Shoot() {
	s.Bullets = append(s.Bullets, Position{X: s.Player.X, Y: s.Player.Y - 1})
}

// AddMushroom inserts a mushroom unless one already occupies p.
func (s *State) AddMushroom(p Position) bool {
	if s.HasMushroom(p) {
		return false
	}
	s.Mushrooms = append(s.Mushrooms, p)
	return true
}

// HasMushroom reports whether a mushroom occupies p.
func (s *State) HasMushroom(p Position) bool {
	for _, m := range s.Mushrooms {
		if m == p {
			return true
		}
	}
	return false
}

// ShooterWon reports whether the centipede has been destroyed.
func (s *State) ShooterWon() bool {
	return len(s.Segments) == 0
}

// Clone returns a deep copy. Used by snapshots and replay verification.
func (s *State) Clone() *State {
	c := *s
	c.Board = s.Board.Clone()
	c.Segments = append([]Position(nil), s.Segments...)
	c.Mushrooms = append([]Position(nil), s.Mushrooms...)
	c.Bullets = append([]Position(nil), s.Bullets...)
	return &c
}

// stamp draws entities onto the board in rendering priority order:
// mushrooms, bullets, segments, player. Later kinds overwrite earlier ones.
func (s *State) stamp() {
	for _, m := range s.Mushrooms {
		s.Board.Set(m.X, m.Y, EntityMushroom)
	}
	for _, b := range s.Bullets {
		s.Board.Set(b.X, b.Y, EntityBullet)
	}
	for _, seg := range s.Segments {
		s.Board.Set(seg.X, seg.Y, EntitySegment)
	}
	s.Board.Set(s.Player.X, s.Player.Y, EntityPlayer)
}
