package dinner

import (
	"cmp"
	"fmt"
	"slices"
	"sync"

	"github.com/Iron-Ham/symposium/internal/event"
	"github.com/Iron-Ham/symposium/internal/seat"
)

// Violation kinds recorded by the Auditor.
const (
	ViolationAdjacentEaters = "adjacent eaters"
	ViolationUnearnedMeal   = "eating without being hungry"
	ViolationTalkOverlap    = "talk granted while taken"
	ViolationTalkUnmatched  = "talk ended while free"
)

// Violation is one observed break of a table invariant.
type Violation struct {
	Kind     string `json:"kind" yaml:"kind"`
	Seq      uint64 `json:"seq" yaml:"seq"`
	Detail   string `json:"detail" yaml:"detail"`
	Snapshot string `json:"snapshot" yaml:"snapshot"`
}

func (v Violation) String() string {
	return fmt.Sprintf("#%d %s: %s %s", v.Seq, v.Kind, v.Detail, v.Snapshot)
}

type talkMark struct {
	seq     uint64
	granted bool
	snap    seat.Snapshot
}

// Auditor checks every snapshot the monitor publishes.
//
// Seat snapshots are checked as they arrive. Talk transitions can reach the
// bus out of order across goroutines, so they are collected and checked in
// sequence order by Violations.
type Auditor struct {
	mu         sync.Mutex
	snapshots  uint64
	violations []Violation
	talks      []talkMark
}

// NewAuditor creates an Auditor with no observations.
func NewAuditor() *Auditor {
	return &Auditor{}
}

// Attach subscribes the auditor to bus and returns the subscription ID.
func (a *Auditor) Attach(bus *event.Bus) string {
	return bus.SubscribeAll(a.Handle)
}

// Handle inspects one event.
func (a *Auditor) Handle(e event.Event) {
	switch e := e.(type) {
	case event.SeatChangedEvent:
		a.checkSeat(e)
	case event.TalkEvent:
		if e.EventType() == event.TypeTalkWaiting {
			return
		}
		a.mu.Lock()
		a.snapshots++
		a.talks = append(a.talks, talkMark{
			seq:     e.Seq,
			granted: e.EventType() == event.TypeTalkGranted,
			snap:    e.Snapshot,
		})
		a.mu.Unlock()
	}
}

func (a *Auditor) checkSeat(e event.SeatChangedEvent) {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.snapshots++
	for _, pair := range e.Snapshot.AdjacentEaters() {
		a.violations = append(a.violations, Violation{
			Kind:     ViolationAdjacentEaters,
			Seq:      e.Seq,
			Detail:   fmt.Sprintf("seats %d and %d", pair[0], pair[1]),
			Snapshot: e.Snapshot.String(),
		})
	}
	if e.To == seat.Eating && e.From != seat.Hungry {
		a.violations = append(a.violations, Violation{
			Kind:     ViolationUnearnedMeal,
			Seq:      e.Seq,
			Detail:   fmt.Sprintf("seat %d went from %s", e.Seat, e.From),
			Snapshot: e.Snapshot.String(),
		})
	}
}

// Snapshots returns how many snapshots have been inspected.
func (a *Auditor) Snapshots() uint64 {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.snapshots
}

// Violations returns every violation observed so far, ordered by sequence.
func (a *Auditor) Violations() []Violation {
	a.mu.Lock()
	defer a.mu.Unlock()

	out := slices.Clone(a.violations)

	talks := slices.Clone(a.talks)
	slices.SortFunc(talks, func(x, y talkMark) int {
		return cmp.Compare(x.seq, y.seq)
	})

	taken := false
	for _, t := range talks {
		switch {
		case t.granted && taken:
			out = append(out, Violation{
				Kind:     ViolationTalkOverlap,
				Seq:      t.seq,
				Detail:   "second grant before the token was released",
				Snapshot: t.snap.String(),
			})
		case !t.granted && !taken:
			out = append(out, Violation{
				Kind:     ViolationTalkUnmatched,
				Seq:      t.seq,
				Detail:   "release without a grant",
				Snapshot: t.snap.String(),
			})
		}
		taken = t.granted
	}

	slices.SortStableFunc(out, func(x, y Violation) int {
		return cmp.Compare(x.Seq, y.Seq)
	})
	return out
}
