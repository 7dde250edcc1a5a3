package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/Iron-Ham/symposium/internal/seat"
	"github.com/Iron-Ham/symposium/internal/tui/styles"
)

// Layout constants
const (
	seatCellWidth = 14 // inner width of one seat cell
	defaultWidth  = 80
)

// View renders the table
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString(m.renderHeader())
	b.WriteString("\n")
	b.WriteString(m.renderRing())
	b.WriteString("\n\n")
	b.WriteString(m.fit(m.renderSummary()))
	b.WriteString("\n")
	if m.done {
		b.WriteString(m.fit(m.renderOutcome()))
		b.WriteString("\n")
	}
	b.WriteString(m.renderHelp())
	return b.String()
}

func (m Model) renderHeader() string {
	title := "symposium"
	if m.state.RunID != "" {
		title += " " + styles.Muted.Render(m.state.RunID)
	}
	return styles.Header.Render(m.fit(title))
}

// renderRing draws one cell per seat, wrapping rows to the window width.
func (m Model) renderRing() string {
	states := m.state.Snapshot.States
	if len(states) == 0 {
		return styles.Muted.Render("no seats")
	}

	width := m.width
	if width <= 0 {
		width = defaultWidth
	}
	perRow := max(1, width/(seatCellWidth+4))

	var rows []string
	for start := 0; start < len(states); start += perRow {
		end := min(start+perRow, len(states))
		cells := make([]string, 0, end-start)
		for i := start; i < end; i++ {
			cells = append(cells, m.renderSeat(i+1, states[i]))
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cells...))
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

func (m Model) renderSeat(id int, st seat.State) string {
	label := fmt.Sprintf("seat %d", id)
	if m.hasLeft(id) {
		label += " ✓"
	}
	body := strings.Join([]string{
		styles.Text.Render(label),
		styles.StateStyle(st).Render(styles.StateIcon(st) + " " + st.String()),
		styles.Muted.Render(fmt.Sprintf("meals %d", m.meals(id))),
	}, "\n")

	return styles.SeatCell.
		Width(seatCellWidth).
		BorderForeground(styles.StateColor(st)).
		Render(body)
}

func (m Model) renderSummary() string {
	snap := m.state.Snapshot

	token := styles.TokenFree.Render("free")
	if snap.Talking {
		token = styles.TokenTaken.Render("taken")
	}

	total := 0
	for _, n := range m.state.Meals {
		total += n
	}

	return fmt.Sprintf("%s %s   %s %d   %s %d   %s %d   %s %d   %s %d",
		styles.Muted.Render("talking:"), token,
		styles.StateStyle(seat.Thinking).Render("thinking"), snap.Count(seat.Thinking),
		styles.StateStyle(seat.Hungry).Render("hungry"), snap.Count(seat.Hungry),
		styles.StateStyle(seat.Eating).Render("eating"), snap.Count(seat.Eating),
		styles.Muted.Render("meals"), total,
		styles.Muted.Render("talks"), m.state.Talks,
	)
}

func (m Model) renderOutcome() string {
	if m.err != nil {
		return styles.ErrorMsg.Render("dinner failed: " + m.err.Error())
	}
	if m.report != nil && !m.report.Clean() {
		return styles.ErrorMsg.Render(fmt.Sprintf("%d invariant violations", len(m.report.Violations)))
	}
	return styles.SuccessMsg.Render("dinner finished, no invariant violations")
}

func (m Model) renderHelp() string {
	action := "stop"
	if m.done {
		action = "exit"
	}
	return styles.HelpBar.Render(styles.HelpKey.Render("q") + " " + action)
}

// fit truncates a single styled line to the window width.
func (m Model) fit(line string) string {
	if m.width <= 0 || ansi.StringWidth(line) <= m.width {
		return line
	}
	return ansi.Truncate(line, m.width, "…")
}

func (m Model) meals(id int) int {
	if id < 1 || id > len(m.state.Meals) {
		return 0
	}
	return m.state.Meals[id-1]
}

func (m Model) hasLeft(id int) bool {
	return id >= 1 && id <= len(m.state.Left) && m.state.Left[id-1]
}
