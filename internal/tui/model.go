package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/Iron-Ham/symposium/internal/dinner"
)

// DefaultRefresh is used when no refresh interval is configured.
const DefaultRefresh = 100 * time.Millisecond

// Model holds the viewer state
type Model struct {
	source  Source
	cancel  func()
	refresh time.Duration

	// UI state
	width    int
	height   int
	quitting bool

	state  TableState
	done   bool
	report *dinner.Report
	err    error
}

// NewModel creates a viewer model. cancel is called when the user quits so
// the dinner stops with the viewer.
func NewModel(source Source, refresh time.Duration, cancel func()) Model {
	if refresh <= 0 {
		refresh = DefaultRefresh
	}
	if cancel == nil {
		cancel = func() {}
	}
	return Model{
		source:  source,
		cancel:  cancel,
		refresh: refresh,
		state:   source.State(),
	}
}

// Init starts the refresh loop
func (m Model) Init() tea.Cmd {
	return tick(m.refresh)
}

// Update handles messages and updates the model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeypress(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tickMsg:
		m.state = m.source.State()
		return m, tick(m.refresh)

	case dinnerDoneMsg:
		m.state = m.source.State()
		m.done = true
		m.report = msg.report
		m.err = msg.err
		return m, nil
	}

	return m, nil
}

func (m Model) handleKeypress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "esc", "ctrl+c":
		m.quitting = true
		m.cancel()
		return m, tea.Quit
	}
	return m, nil
}
