package centipede

import "slices"

// Snapshot captures the complete game state for determinism testing and replay.
type Snapshot struct {
	Tick      uint64
	Score     int
	Direction Direction
	GameOver  bool
	Player    Position
	Segments  []Position
	Mushrooms []Position
	Bullets   []Position
}

// Snapshot returns a deep copy of the current state.
func (g *Game) Snapshot() Snapshot {
	if g.state == nil {
		return Snapshot{}
	}
	return Snapshot{
		Tick:      g.tick,
		Score:     g.state.Score,
		Direction: g.state.Direction,
		GameOver:  g.state.GameOver,
		Player:    g.state.Player,
		Segments:  slices.Clone(g.state.Segments),
		Mushrooms: slices.Clone(g.state.Mushrooms),
		Bullets:   slices.Clone(g.state.Bullets),
	}
}

// Equal reports whether two snapshots describe the same state.
func (s Snapshot) Equal(o Snapshot) bool {
	return s.Tick == o.Tick &&
		s.Score == o.Score &&
		s.Direction == o.Direction &&
		s.GameOver == o.GameOver &&
		s.Player == o.Player &&
		slices.Equal(s.Segments, o.Segments) &&
		slices.Equal(s.Mushrooms, o.Mushrooms) &&
		slices.Equal(s.Bullets, o.Bullets)
}

// Board rebuilds the board projection for a width x height grid.
func (s Snapshot) Board(width, height int) Board {
	st := State{
		Board:     NewBoard(width, height),
		Player:    s.Player,
		Segments:  s.Segments,
		Mushrooms: s.Mushrooms,
		Bullets:   s.Bullets,
	}
	st.stamp()
	return st.Board
}
