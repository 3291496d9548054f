// Package tui hosts the game in a Bubble Tea program. Bubble Tea's update
// loop is the single thread that pumps the cooperative scheduler, feeds key
// presses to the input aggregator and renders the screen buffer.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// TickMsg is sent on every display frame to pump the scheduler.
type TickMsg time.Time

// tickCmd returns a Bubble Tea command that sends a tick after one frame at
// the given rate (frames per second).
func tickCmd(frameRate float64) tea.Cmd {
	if frameRate <= 0 {
		frameRate = 120
	}
	interval := time.Duration(float64(time.Second) / frameRate)
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}
