// Package tui provides the Bubble Tea front-end for tilt: the game loop,
// input mapping, menus, the scoreboard and the SSH server.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// defaultTickRate is used when the runtime config leaves the rate unset.
const defaultTickRate = 60

// TickMsg drives one Step of the running game.
type TickMsg time.Time

// tickCmd schedules the next TickMsg, rate times per second.
func tickCmd(rate int) tea.Cmd {
	if rate <= 0 {
		rate = defaultTickRate
	}
	return tea.Tick(time.Second/time.Duration(rate), func(at time.Time) tea.Msg {
		return TickMsg(at)
	})
}
