package dinner

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"gopkg.in/yaml.v3"

	"github.com/Iron-Ham/symposium/internal/errors"
	"github.com/Iron-Ham/symposium/internal/philosopher"
	"github.com/Iron-Ham/symposium/internal/tui/styles"
)

// Output formats accepted by Report.Write.
const (
	FormatText = "text"
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// Formats returns the supported output formats.
func Formats() []string {
	return []string{FormatText, FormatJSON, FormatYAML}
}

// SeatReport is one philosopher's line in the report. Granted is the number
// of meals the monitor granted to the seat, which matches Meals on a clean run.
type SeatReport struct {
	philosopher.Stats `yaml:",inline"`
	Granted           int `json:"granted" yaml:"granted"`
}

// Report summarizes a finished dinner.
type Report struct {
	RunID      string        `json:"run_id" yaml:"run_id"`
	Seats      int           `json:"seats" yaml:"seats"`
	Started    time.Time     `json:"started" yaml:"started"`
	Elapsed    time.Duration `json:"elapsed" yaml:"elapsed"`
	TotalMeals int           `json:"total_meals" yaml:"total_meals"`
	TotalTalks int           `json:"total_talks" yaml:"total_talks"`
	Parks      int           `json:"parks" yaml:"parks"`
	Snapshots  uint64        `json:"snapshots" yaml:"snapshots"`
	// Fairness is the fewest meals eaten by any seat divided by the most.
	Fairness     float64      `json:"fairness" yaml:"fairness"`
	Philosophers []SeatReport `json:"philosophers" yaml:"philosophers"`
	Violations   []Violation  `json:"violations" yaml:"violations"`
}

func newReport(runID string, seats int, started time.Time, stats []philosopher.Stats, rec *recorder, auditor *Auditor) *Report {
	granted := rec.mealsGranted()
	parks, _ := rec.counts()

	r := &Report{
		RunID:        runID,
		Seats:        seats,
		Started:      started,
		Elapsed:      time.Since(started),
		Parks:        parks,
		Snapshots:    auditor.Snapshots(),
		Philosophers: make([]SeatReport, len(stats)),
		Violations:   auditor.Violations(),
	}
	for i, st := range stats {
		r.Philosophers[i] = SeatReport{Stats: st, Granted: granted[i]}
		r.TotalMeals += st.Meals
		r.TotalTalks += st.Talks
	}
	r.Fairness = fairness(stats)
	return r
}

func fairness(stats []philosopher.Stats) float64 {
	if len(stats) == 0 {
		return 1
	}
	lo, hi := stats[0].Meals, stats[0].Meals
	for _, st := range stats[1:] {
		lo = min(lo, st.Meals)
		hi = max(hi, st.Meals)
	}
	if hi == 0 {
		return 1
	}
	return float64(lo) / float64(hi)
}

// Clean reports whether no invariant violation was observed.
func (r *Report) Clean() bool {
	return len(r.Violations) == 0
}

// Write renders the report to w in the given format.
func (r *Report) Write(w io.Writer, format string) error {
	switch format {
	case FormatText, "":
		_, err := io.WriteString(w, r.Text())
		return err
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(r)
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(r); err != nil {
			return err
		}
		return enc.Close()
	default:
		return errors.NewValidationError(fmt.Sprintf("unknown format, expected one of %s", strings.Join(Formats(), ", "))).
			WithField("format").
			WithValue(format)
	}
}

// Text renders the report for a terminal.
func (r *Report) Text() string {
	var b strings.Builder

	b.WriteString(styles.Title.Render("Dinner " + r.RunID))
	b.WriteString("\n")
	fmt.Fprintf(&b, "%s %d seats, %s elapsed\n",
		styles.Muted.Render("table:"), r.Seats, r.Elapsed.Round(time.Millisecond))
	fmt.Fprintf(&b, "%s %d meals, %d talks, %d waits, fairness %.2f\n",
		styles.Muted.Render("totals:"), r.TotalMeals, r.TotalTalks, r.Parks, r.Fairness)
	fmt.Fprintf(&b, "%s %d snapshots audited\n\n",
		styles.Muted.Render("audit:"), r.Snapshots)

	rows := make([][]string, 0, len(r.Philosophers))
	for _, p := range r.Philosophers {
		rows = append(rows, []string{
			strconv.Itoa(p.Seat),
			strconv.Itoa(p.Meals),
			strconv.Itoa(p.Talks),
			p.Waited.Round(time.Microsecond).String(),
			p.MaxWait.Round(time.Microsecond).String(),
			strconv.Itoa(p.CanceledWaits),
		})
	}
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(styles.BorderColor)).
		Headers("SEAT", "MEALS", "TALKS", "WAITED", "MAX WAIT", "CANCELED").
		Rows(rows...).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return styles.TableHeader
			}
			return styles.TableCell
		})
	b.WriteString(t.Render())
	b.WriteString("\n\n")

	if r.Clean() {
		b.WriteString(styles.SuccessMsg.Render("no invariant violations"))
		b.WriteString("\n")
		return b.String()
	}
	b.WriteString(styles.ErrorMsg.Render(fmt.Sprintf("%d invariant violations", len(r.Violations))))
	b.WriteString("\n")
	for _, v := range r.Violations {
		b.WriteString("  ")
		b.WriteString(styles.Error.Render(v.String()))
		b.WriteString("\n")
	}
	return b.String()
}
