package driver

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/centipede-arena/internal/games/centipede"
)

// clearScreen homes the cursor and clears the terminal.
const clearScreen = "\033[H\033[2J"

// Renderer draws one frame.
type Renderer interface {
	Render(board centipede.Board, score int)
}

// NopRenderer discards frames.
type NopRenderer struct{}

// Render does nothing.
func (NopRenderer) Render(centipede.Board, int) {}

var entityStyles = map[centipede.EntityKind]lipgloss.Style{
	centipede.EntityPlayer:   lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Bold(true),
	centipede.EntitySegment:  lipgloss.NewStyle().Foreground(lipgloss.Color("10")),
	centipede.EntityMushroom: lipgloss.NewStyle().Foreground(lipgloss.Color("208")),
	centipede.EntityBullet:   lipgloss.NewStyle().Foreground(lipgloss.Color("15")),
}

// TextRenderer writes a score line and a bordered board:
//
//	Score: 10
//	+----+
//	|O  M|
//	| P  |
//	+----+
type TextRenderer struct {
	W     io.Writer
	Clear bool // emit an ANSI clear before each frame
	Color bool // style entities with lipgloss
}

// Render writes the frame to W. Write errors are ignored.
func (r TextRenderer) Render(board centipede.Board, score int) {
	var sb strings.Builder
	if r.Clear {
		sb.WriteString(clearScreen)
	}

	border := "+" + strings.Repeat("-", board.Width()) + "+\n"
	fmt.Fprintf(&sb, "Score: %d\n", score)
	sb.WriteString(border)
	for y := 0; y < board.Height(); y++ {
		sb.WriteByte('|')
		if r.Color {
			sb.WriteString(colorRow(board, y))
		} else {
			sb.WriteString(board.Row(y))
		}
		sb.WriteString("|\n")
	}
	sb.WriteString(border)

	io.WriteString(r.W, sb.String())
}

func colorRow(board centipede.Board, y int) string {
	var sb strings.Builder
	for x := 0; x < board.Width(); x++ {
		kind := board.At(x, y)
		style, ok := entityStyles[kind]
		if !ok {
			sb.WriteRune(kind.Rune())
			continue
		}
		sb.WriteString(style.Render(string(kind.Rune())))
	}
	return sb.String()
}

// WriteSummary prints the closing lines for a match.
func WriteSummary(w io.Writer, res Result) {
	if !res.Completed {
		fmt.Fprintf(w, "Match stopped after %d ticks. Score: %d\n", res.Ticks, res.Score)
		return
	}
	fmt.Fprintf(w, "Game Over! Final Score: %d\n", res.Score)
	if res.Winner == centipede.SideShooter {
		fmt.Fprintln(w, "Shooter wins!")
	} else {
		fmt.Fprintln(w, "Centipede wins!")
	}
}
