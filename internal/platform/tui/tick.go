// Package tui provides the Bubble Tea integration for the asteroids game.
// It handles the terminal UI loop, input mapping, and score keeping.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// TickMsg is sent to trigger a game simulation tick.
type TickMsg time.Time

// tickCmd returns a Bubble Tea command that sends tick messages at the specified rate.
func tickCmd(tickRate int) tea.Cmd {
	if tickRate <= 0 {
		tickRate = 60
	}
	interval := time.Second / time.Duration(tickRate)
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

// elapsedSince returns the wall-clock time between two ticks. The first
// tick, or a clock that stepped backwards, counts as one nominal interval.
func elapsedSince(prev, now time.Time, tickRate int) time.Duration {
	nominal := time.Second / time.Duration(max(tickRate, 1))
	if prev.IsZero() {
		return nominal
	}
	d := now.Sub(prev)
	if d < 0 {
		return nominal
	}
	return d
}
