package tui

import (
	"sync"

	"github.com/Iron-Ham/symposium/internal/event"
	"github.com/Iron-Ham/symposium/internal/seat"
)

// TableState is what the viewer draws on each refresh.
type TableState struct {
	RunID    string
	Seq      uint64
	Snapshot seat.Snapshot
	Meals    []int  // meals granted per seat
	Left     []bool // philosophers that have left the table
	Talks    int
	Started  bool
	Finished bool
}

// Source provides the latest table state.
type Source interface {
	State() TableState
}

// Feed folds bus events into the latest table state. Bus handlers run on the
// philosophers' goroutines, so the feed only records and never blocks; the
// viewer polls it on every tick.
type Feed struct {
	mu    sync.Mutex
	state TableState
	bus   *event.Bus
	subID string
}

// NewFeed subscribes a Feed for a table of the given size to bus.
func NewFeed(bus *event.Bus, seats int) *Feed {
	f := &Feed{
		bus: bus,
		state: TableState{
			Snapshot: seat.Snapshot{States: make([]seat.State, seats)},
			Meals:    make([]int, seats),
			Left:     make([]bool, seats),
		},
	}
	f.subID = bus.SubscribeAll(f.handle)
	return f
}

// Close unsubscribes the feed.
func (f *Feed) Close() {
	f.bus.Unsubscribe(f.subID)
}

// State returns a copy of the latest table state.
func (f *Feed) State() TableState {
	f.mu.Lock()
	defer f.mu.Unlock()

	s := f.state
	s.Snapshot.States = append([]seat.State(nil), f.state.Snapshot.States...)
	s.Meals = append([]int(nil), f.state.Meals...)
	s.Left = append([]bool(nil), f.state.Left...)
	return s
}

func (f *Feed) handle(e event.Event) {
	f.mu.Lock()
	defer f.mu.Unlock()

	switch e := e.(type) {
	case event.DinnerStartedEvent:
		f.state.RunID = e.RunID
		f.state.Started = true
	case event.SeatChangedEvent:
		if e.To == seat.Eating && e.Seat >= 1 && e.Seat <= len(f.state.Meals) {
			f.state.Meals[e.Seat-1]++
		}
		f.observe(e.Seq, e.Snapshot)
	case event.TalkEvent:
		if e.EventType() == event.TypeTalkGranted {
			f.state.Talks++
		}
		if e.EventType() != event.TypeTalkWaiting {
			f.observe(e.Seq, e.Snapshot)
		}
	case event.PhilosopherDoneEvent:
		if e.Seat >= 1 && e.Seat <= len(f.state.Left) {
			f.state.Left[e.Seat-1] = true
		}
	case event.DinnerFinishedEvent:
		f.state.Finished = true
	}
}

// observe keeps the snapshot with the highest sequence number; events from
// different goroutines can arrive out of order.
func (f *Feed) observe(seq uint64, snap seat.Snapshot) {
	if seq <= f.state.Seq {
		return
	}
	f.state.Seq = seq
	f.state.Snapshot = snap
}
