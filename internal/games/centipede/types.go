// Package centipede implements an agent-versus-agent centipede arcade match.
// A shooter agent and a centipede agent take turns mutating a shared State,
// then Update advances bullets, collisions and centipede movement.
package centipede

import (
	"math"
	"strings"
)

// Position is a cell on the board. X grows to the right, Y grows downward.
type Position struct {
	X, Y int
}

// Move returns the position one step in the given direction.
func (p Position) Move(d Direction) Position {
	dx, dy := d.Delta()
	return Position{X: p.X + dx, Y: p.Y + dy}
}

// DistanceTo returns the Euclidean distance to another position.
func (p Position) DistanceTo(o Position) float64 {
	dx := float64(p.X - o.X)
	dy := float64(p.Y - o.Y)
	return math.Sqrt(dx*dx + dy*dy)
}

// In reports whether the position lies within a width x height grid.
func (p Position) In(width, height int) bool {
	return p.X >= 0 && p.X < width && p.Y >= 0 && p.Y < height
}

// Direction is a unit move. There are no diagonals and no upward moves.
type Direction int

const (
	DirRight Direction = iota
	DirLeft
	DirDown
)

// Delta returns the displacement for one step.
func (d Direction) Delta() (dx, dy int) {
	switch d {
	case DirLeft:
		return -1, 0
	case DirRight:
		return 1, 0
	case DirDown:
		return 0, 1
	}
	return 0, 0
}

// Reverse flips a horizontal heading. Anything other than Right becomes Right.
func (d Direction) Reverse() Direction {
	if d == DirRight {
		return DirLeft
	}
	return DirRight
}

func (d Direction) String() string {
	switch d {
	case DirLeft:
		return "left"
	case DirRight:
		return "right"
	case DirDown:
		return "down"
	default:
		return "unknown"
	}
}

// EntityKind classifies a board cell for rendering.
type EntityKind uint8

const (
	EntityEmpty EntityKind = iota
	EntityPlayer
	EntitySegment
	EntityMushroom
	EntityBullet
)

// Rune returns the character used to draw this kind.
func (k EntityKind) Rune() rune {
	switch k {
	case EntityPlayer:
		return 'P'
	case EntitySegment:
		return 'O'
	case EntityMushroom:
		return 'M'
	case EntityBullet:
		return '·'
	default:
		return ' '
	}
}

// Board is the rendered projection of a State. It is rebuilt every tick
// from the entity lists and is never read back by the simulation.
type Board struct {
	width  int
	height int
	cells  []EntityKind
}

// NewBoard allocates an empty board.
func NewBoard(width, height int) Board {
	return Board{
		width:  width,
		height: height,
		cells:  make([]EntityKind, width*height),
	}
}

// Width returns the number of columns.
func (b Board) Width() int { return b.width }

// Height returns the number of rows.
func (b Board) Height() int { return b.height }

// At returns the kind at (x, y), or EntityEmpty outside the board.
func (b Board) At(x, y int) EntityKind {
	if x < 0 || x >= b.width || y < 0 || y >= b.height {
		return EntityEmpty
	}
	return b.cells[y*b.width+x]
}

// Set stamps a kind at (x, y). Out-of-bounds writes are ignored.
func (b Board) Set(x, y int, k EntityKind) {
	if x < 0 || x >= b.width || y < 0 || y >= b.height {
		return
	}
	b.cells[y*b.width+x] = k
}

// Clear resets every cell to EntityEmpty.
func (b Board) Clear() {
	for i := range b.cells {
		b.cells[i] = EntityEmpty
	}
}

// Row returns row y as a string of entity runes.
func (b Board) Row(y int) string {
	var sb strings.Builder
	for x := 0; x < b.width; x++ {
		sb.WriteRune(b.At(x, y).Rune())
	}
	return sb.String()
}

// String returns all rows joined with newlines.
func (b Board) String() string {
	rows := make([]string, b.height)
	for y := range rows {
		rows[y] = b.Row(y)
	}
	return strings.Join(rows, "\n")
}

// Clone returns an independent copy of the board.
func (b Board) Clone() Board {
	c := Board{width: b.width, height: b.height, cells: make([]EntityKind, len(b.cells))}
	copy(c.cells, b.cells)
	return c
}
