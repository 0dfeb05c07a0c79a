// Package tui provides the Bubble Tea front end for Asteroid Dodger.
// It drives the engine from wall-clock ticks, maps keyboard and mouse input
// onto engine commands, and renders snapshots to the terminal.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// TickMsg is sent once per frame. Gen identifies the model instance that
// scheduled it so a replaced game model ignores ticks meant for the old one.
type TickMsg struct {
	At  time.Time
	Gen uint64
}

// tickCmd returns a Bubble Tea command that sends one tick after interval.
func tickCmd(interval time.Duration, gen uint64) tea.Cmd {
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return TickMsg{At: t, Gen: gen}
	})
}
