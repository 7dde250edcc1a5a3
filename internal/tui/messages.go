package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/Iron-Ham/symposium/internal/dinner"
)

// tickMsg is sent periodically to redraw the table from the feed
type tickMsg time.Time

// dinnerDoneMsg is sent when the dinner returns
type dinnerDoneMsg struct {
	report *dinner.Report
	err    error
}

// Commands

// tick returns a command that sends a tickMsg after the refresh interval.
func tick(every time.Duration) tea.Cmd {
	return tea.Tick(every, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}
