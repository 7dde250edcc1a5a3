// Package philosopher implements the agent that sits at a table: it thinks,
// gets hungry, eats with both chopsticks, and now and then asks to talk.
package philosopher

import (
	"context"
	"math"
	"math/rand/v2"
	"time"

	"github.com/Iron-Ham/symposium/internal/errors"
	"github.com/Iron-Ham/symposium/internal/logging"
)

// Table is the arbitrator a philosopher calls into.
type Table interface {
	PickUp(ctx context.Context, id int) error
	PutDown(id int) error
	RequestTalk(ctx context.Context) error
	EndTalk() error
}

// Pacing controls how long a philosopher spends in each activity.
// Each pause is drawn uniformly from [0, max].
type Pacing struct {
	Meals           int // 0 means eat until the context ends
	ThinkTime       time.Duration
	EatTime         time.Duration
	TalkTime        time.Duration
	TalkProbability float64
}

// Stats summarizes one philosopher's run.
type Stats struct {
	Seat          int           `json:"seat" yaml:"seat"`
	Meals         int           `json:"meals" yaml:"meals"`
	Talks         int           `json:"talks" yaml:"talks"`
	Waited        time.Duration `json:"waited" yaml:"waited"`
	MaxWait       time.Duration `json:"max_wait" yaml:"max_wait"`
	CanceledWaits int           `json:"canceled_waits" yaml:"canceled_waits"`
}

// Philosopher is one agent at the table. A Philosopher is not safe for
// concurrent use; run each one on its own goroutine.
type Philosopher struct {
	id     int
	table  Table
	pacing Pacing
	logger *logging.Logger
	rng    *rand.Rand
}

// Option configures a Philosopher.
type Option func(*Philosopher)

// WithLogger sets the logger; entries are tagged with the seat id.
func WithLogger(logger *logging.Logger) Option {
	return func(p *Philosopher) {
		if logger != nil {
			p.logger = logger
		}
	}
}

// WithSeed makes the philosopher's pauses and talk decisions reproducible.
func WithSeed(seed uint64) Option {
	return func(p *Philosopher) {
		p.rng = rand.New(rand.NewPCG(seed, uint64(p.id)))
	}
}

// New seats a philosopher with the 1-based id at the table.
func New(id int, table Table, pacing Pacing, opts ...Option) *Philosopher {
	p := &Philosopher{
		id:     id,
		table:  table,
		pacing: pacing,
		logger: logging.NopLogger(),
		rng:    rand.New(rand.NewPCG(rand.Uint64(), uint64(id))),
	}
	for _, opt := range opts {
		opt(p)
	}
	p.logger = p.logger.WithSeat(id)
	return p
}

// ID returns the philosopher's seat id.
func (p *Philosopher) ID() int {
	return p.id
}

// Run dines until the configured number of meals is eaten or ctx ends.
// Running out of time is a normal way to leave the table and returns a nil
// error; any other failure of the table is returned. A philosopher never
// leaves while holding chopsticks or the talking token.
func (p *Philosopher) Run(ctx context.Context) (Stats, error) {
	stats := Stats{Seat: p.id}
	p.logger.Debug("sat down")

	for p.pacing.Meals == 0 || stats.Meals < p.pacing.Meals {
		if err := p.pause(ctx, p.pacing.ThinkTime); err != nil {
			break
		}

		done, err := p.eat(ctx, &stats)
		if err != nil {
			return stats, err
		}
		if done {
			break
		}

		if p.pacing.TalkProbability > 0 && p.rng.Float64() < p.pacing.TalkProbability {
			done, err := p.talk(ctx, &stats)
			if err != nil {
				return stats, err
			}
			if done {
				break
			}
		}
	}

	p.logger.Debug("left the table", "meals", stats.Meals, "talks", stats.Talks)
	return stats, nil
}

// eat picks up, eats, and puts down. done reports that ctx ended.
//
// An abandoned wait for chopsticks is retryable: while ctx is live the
// philosopher goes back to thinking and tries again on the next pass.
func (p *Philosopher) eat(ctx context.Context, stats *Stats) (done bool, err error) {
	start := time.Now()
	if err := p.table.PickUp(ctx, p.id); err != nil {
		if !errors.IsRetryable(err) {
			return false, err
		}
		stats.CanceledWaits++
		return ctx.Err() != nil, nil
	}

	wait := time.Since(start)
	stats.Waited += wait
	stats.MaxWait = max(stats.MaxWait, wait)
	p.logger.Debug("eating", "waited", wait)

	// The meal may be cut short, but the chopsticks always go back.
	interrupted := p.pause(ctx, p.pacing.EatTime) != nil
	if err := p.table.PutDown(p.id); err != nil {
		return false, err
	}
	stats.Meals++
	return interrupted, nil
}

// talk takes the talking token, talks, and releases it. done reports that
// ctx ended.
func (p *Philosopher) talk(ctx context.Context, stats *Stats) (done bool, err error) {
	if err := p.table.RequestTalk(ctx); err != nil {
		if !errors.IsRetryable(err) {
			return false, err
		}
		return ctx.Err() != nil, nil
	}
	p.logger.Debug("talking")

	interrupted := p.pause(ctx, p.pacing.TalkTime) != nil
	if err := p.table.EndTalk(); err != nil {
		return false, err
	}
	stats.Talks++
	return interrupted, nil
}

// pause sleeps for a random duration up to limit. It returns ctx's error if
// ctx ends first.
func (p *Philosopher) pause(ctx context.Context, limit time.Duration) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if limit <= 0 {
		return nil
	}

	n := int64(limit)
	if n < math.MaxInt64 {
		n++
	}
	timer := time.NewTimer(time.Duration(p.rng.Int64N(n)))
	defer timer.Stop()

	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
