// Package tui provides the Bubble Tea host for 2048: the game screen, the
// statistics table and the SSH server.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-2048/internal/games/t2048"
)

// TickMsg is sent to advance the spawn highlight.
type TickMsg time.Time

// tickCmd returns a Bubble Tea command that sends a tick message at the specified rate.
func tickCmd(tickRate int) tea.Cmd {
	interval := time.Second / time.Duration(tickRate)
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

// highlight marks the most recently spawned tile for a few ticks.
type highlight struct {
	cell      t2048.Cell
	remaining int
}

func (h highlight) active() bool {
	return h.remaining > 0
}

func (h highlight) at(row, col int) bool {
	return h.active() && h.cell.Row == row && h.cell.Col == col
}

// step advances the highlight one tick. Returns true while it is still visible.
func (h *highlight) step() bool {
	if h.remaining > 0 {
		h.remaining--
	}
	return h.active()
}
