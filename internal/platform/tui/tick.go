// Package tui provides the Bubble Tea integration for the arena.
// It handles the terminal UI loop, input mapping, and match playback.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// TickMsg is sent to trigger a simulation tick.
type TickMsg time.Time

// Playback speed bounds.
const (
	minTickInterval = 10 * time.Millisecond
	maxTickInterval = 2 * time.Second
)

// tickCmd returns a Bubble Tea command that sends a tick message after interval.
func tickCmd(interval time.Duration) tea.Cmd {
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

// faster halves the interval, bounded by minTickInterval.
func faster(interval time.Duration) time.Duration {
	return max(interval/2, minTickInterval)
}

// slower doubles the interval, bounded by maxTickInterval.
func slower(interval time.Duration) time.Duration {
	return min(interval*2, maxTickInterval)
}
