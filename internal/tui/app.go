package tui

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/Iron-Ham/symposium/internal/dinner"
)

// App wraps the Bubbletea program that watches one dinner
type App struct {
	program *tea.Program
	dinner  *dinner.Dinner
	seats   int
	refresh time.Duration
}

// New creates a viewer for a dinner with the given number of seats
func New(d *dinner.Dinner, seats int, refresh time.Duration) *App {
	return &App{
		dinner:  d,
		seats:   seats,
		refresh: refresh,
	}
}

type result struct {
	report *dinner.Report
	err    error
}

// Run starts the dinner and the viewer. Quitting the viewer cancels the
// dinner; Run still waits for every philosopher to leave and returns the
// dinner's report.
func (a *App) Run(ctx context.Context) (*dinner.Report, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	feed := NewFeed(a.dinner.Bus(), a.seats)
	defer feed.Close()

	a.program = tea.NewProgram(
		NewModel(feed, a.refresh, cancel),
		tea.WithAltScreen(),
	)

	// Set up signal handling for graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM, syscall.SIGHUP)
	defer signal.Stop(sigChan)

	go func() {
		select {
		case <-sigChan:
			cancel()
			a.program.Send(tea.Quit())
		case <-ctx.Done():
		}
	}()

	done := make(chan result, 1)
	go func() {
		report, err := a.dinner.Run(ctx)
		done <- result{report: report, err: err}
		a.program.Send(dinnerDoneMsg{report: report, err: err})
	}()

	_, err := a.program.Run()
	cancel()

	res := <-done
	if err != nil {
		return res.report, err
	}
	return res.report, res.err
}
