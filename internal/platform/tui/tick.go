// Package tui runs the step dashboard and the coin game in a terminal,
// locally or over SSH.
package tui

import (
	"sync/atomic"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// TickMsg drives one game simulation tick.
type TickMsg time.Time

// refreshMsg asks the dashboard to re-read step totals. gen names the
// dashboard that scheduled it; a rebuilt dashboard ignores older ones so
// refresh loops never pile up.
type refreshMsg struct {
	gen int64
	at  time.Time
}

var refreshGen atomic.Int64

const refreshInterval = 500 * time.Millisecond

// tickCmd schedules the next game tick at tickRate per second.
func tickCmd(tickRate int) tea.Cmd {
	if tickRate <= 0 {
		tickRate = 60
	}
	return tea.Tick(time.Second/time.Duration(tickRate), func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

func refreshCmd(gen int64) tea.Cmd {
	return tea.Tick(refreshInterval, func(t time.Time) tea.Msg {
		return refreshMsg{gen: gen, at: t}
	})
}
