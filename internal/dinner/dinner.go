// Package dinner seats a table of philosophers around a monitor, runs them
// concurrently, audits every published snapshot, and reports the result.
package dinner

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sourcegraph/conc"

	"github.com/Iron-Ham/symposium/internal/config"
	"github.com/Iron-Ham/symposium/internal/errors"
	"github.com/Iron-Ham/symposium/internal/event"
	"github.com/Iron-Ham/symposium/internal/logging"
	"github.com/Iron-Ham/symposium/internal/monitor"
	"github.com/Iron-Ham/symposium/internal/philosopher"
)

// Settings describes one dinner.
type Settings struct {
	Seats    int
	Pacing   philosopher.Pacing
	Duration time.Duration // 0 means no limit
	Seed     uint64        // 0 means unseeded
}

// SettingsFromConfig extracts dinner settings from the loaded configuration.
func SettingsFromConfig(cfg *config.Config) Settings {
	return Settings{
		Seats: cfg.Table.Seats,
		Pacing: philosopher.Pacing{
			Meals:           cfg.Dinner.Meals,
			ThinkTime:       cfg.Dinner.ThinkTime,
			EatTime:         cfg.Dinner.EatTime,
			TalkTime:        cfg.Dinner.TalkTime,
			TalkProbability: cfg.Dinner.TalkProbability,
		},
		Duration: cfg.Dinner.Duration,
		Seed:     cfg.Dinner.Seed,
	}
}

// Dinner runs one table.
type Dinner struct {
	settings Settings
	logger   *logging.Logger
	bus      *event.Bus
	runID    string

	// wrapTable, when set, decorates the table each philosopher sees.
	wrapTable func(philosopher.Table) philosopher.Table
}

// Option configures a Dinner.
type Option func(*Dinner)

// WithLogger sets the logger. Entries are tagged with the run id.
func WithLogger(logger *logging.Logger) Option {
	return func(d *Dinner) {
		if logger != nil {
			d.logger = logger
		}
	}
}

// WithBus publishes the run's events on bus, so callers can subscribe
// before Run starts.
func WithBus(bus *event.Bus) Option {
	return func(d *Dinner) {
		if bus != nil {
			d.bus = bus
		}
	}
}

// WithRunID overrides the generated run id.
func WithRunID(id string) Option {
	return func(d *Dinner) {
		d.runID = id
	}
}

// New creates a Dinner for the given settings.
func New(settings Settings, opts ...Option) *Dinner {
	d := &Dinner{
		settings: settings,
		logger:   logging.NopLogger(),
		bus:      event.NewBus(),
	}
	for _, opt := range opts {
		opt(d)
	}
	if d.runID == "" {
		d.runID = uuid.NewString()
	}
	return d
}

// RunID returns the id of the run.
func (d *Dinner) RunID() string {
	return d.runID
}

// Bus returns the bus the run publishes on.
func (d *Dinner) Bus() *event.Bus {
	return d.bus
}

// Run seats every philosopher and blocks until all of them have left the
// table: after their meals, when the configured duration elapses, or when ctx
// ends. The report is returned even when err is non-nil, unless the table
// could not be built at all.
//
// A philosopher that panics or fails for any reason other than cancellation
// ends the dinner for everyone. Observed invariant violations are reported as an error
// wrapping errors.ErrInvariantViolated.
func (d *Dinner) Run(ctx context.Context) (*Report, error) {
	s := d.settings
	log := d.logger.WithRun(d.runID)

	m, err := monitor.New(s.Seats,
		monitor.WithLogger(log.WithPhase("monitor")),
		monitor.WithBus(d.bus),
	)
	if err != nil {
		return nil, errors.Wrap(err, "failed to set the table")
	}

	auditor := NewAuditor()
	defer d.bus.Unsubscribe(auditor.Attach(d.bus))

	rec := newRecorder(s.Seats)
	defer d.bus.Unsubscribe(d.bus.SubscribeAll(rec.handle))

	ctx, cancel := context.WithCancelCause(ctx)
	defer cancel(nil)
	if s.Duration > 0 {
		var stop context.CancelFunc
		ctx, stop = context.WithTimeout(ctx, s.Duration)
		defer stop()
	}

	started := time.Now()
	log.Info("dinner started",
		"seats", s.Seats,
		"meals", s.Pacing.Meals,
		"duration", s.Duration.String(),
	)
	d.bus.Publish(event.NewDinnerStartedEvent(d.runID, s.Seats))

	stats := make([]philosopher.Stats, s.Seats)
	errs := make([]error, s.Seats)

	var wg conc.WaitGroup
	for id := 1; id <= s.Seats; id++ {
		opts := []philosopher.Option{philosopher.WithLogger(log.WithPhase("dining"))}
		if s.Seed != 0 {
			opts = append(opts, philosopher.WithSeed(s.Seed))
		}
		var table philosopher.Table = m
		if d.wrapTable != nil {
			table = d.wrapTable(table)
		}
		p := philosopher.New(id, table, s.Pacing, opts...)

		wg.Go(func() {
			// A panicking seat must still release the others from their waits.
			defer func() {
				if r := recover(); r != nil {
					cancel(fmt.Errorf("philosopher %d panicked: %v", id, r))
					panic(r)
				}
			}()

			st, err := p.Run(ctx)
			stats[id-1] = st
			if err != nil {
				errs[id-1] = err
				cancel(err)
				logFailure(log.WithSeat(id), err)
			}
			d.bus.Publish(event.NewPhilosopherDoneEvent(id, st.Meals, st.Talks, err))
		})
	}

	var runErr error
	if r := wg.WaitAndRecover(); r != nil {
		runErr = r.AsError()
		log.Error("philosopher panicked", "error", runErr)
	}
	runErr = errors.Join(append([]error{runErr}, errs...)...)

	report := newReport(d.runID, s.Seats, started, stats, rec, auditor)
	if n := len(report.Violations); n > 0 {
		for _, v := range report.Violations {
			log.Error("invariant violated", "kind", v.Kind, "seq", v.Seq, "detail", v.Detail, "snapshot", v.Snapshot)
		}
		runErr = errors.Join(runErr, errors.Wrapf(errors.ErrInvariantViolated, "%d violations", n))
	}

	log.Info("dinner finished",
		"meals", report.TotalMeals,
		"talks", report.TotalTalks,
		"elapsed", report.Elapsed.String(),
		"violations", len(report.Violations),
	)
	d.bus.Publish(event.NewDinnerFinishedEvent(d.runID, report.TotalMeals, len(report.Violations), runErr))
	return report, runErr
}

// logFailure logs a philosopher's error at the level its severity calls for.
func logFailure(log *logging.Logger, err error) {
	sev := errors.GetSeverity(err)
	args := []any{"error", err, "severity", sev.String()}
	switch {
	case sev <= errors.SeverityInfo:
		log.Info("philosopher failed", args...)
	case sev == errors.SeverityWarning:
		log.Warn("philosopher failed", args...)
	default:
		log.Error("philosopher failed", args...)
	}
}
