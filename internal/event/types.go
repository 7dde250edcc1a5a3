package event

import (
	"time"

	"github.com/Iron-Ham/symposium/internal/seat"
)

// Event is the interface that all events must implement.
type Event interface {
	// EventType returns a string identifier for this event type.
	// Convention: "category.action" (e.g., "seat.eating", "talk.granted")
	EventType() string

	// Timestamp returns when the event occurred.
	Timestamp() time.Time
}

// Event type identifiers.
const (
	TypeSeatHungry   = "seat.hungry"
	TypeSeatEating   = "seat.eating"
	TypeSeatThinking = "seat.thinking"
	TypeSeatWaiting  = "seat.waiting"

	TypeTalkWaiting = "talk.waiting"
	TypeTalkGranted = "talk.granted"
	TypeTalkEnded   = "talk.ended"

	TypeDinnerStarted   = "dinner.started"
	TypeDinnerFinished  = "dinner.finished"
	TypePhilosopherDone = "philosopher.done"
)

// baseEvent provides common fields for all events.
// Embed this in concrete event types to satisfy the Event interface.
type baseEvent struct {
	eventType string
	timestamp time.Time
}

func (e baseEvent) EventType() string    { return e.eventType }
func (e baseEvent) Timestamp() time.Time { return e.timestamp }

// newBaseEvent creates a baseEvent with the current time.
func newBaseEvent(eventType string) baseEvent {
	return baseEvent{
		eventType: eventType,
		timestamp: time.Now(),
	}
}

// -----------------------------------------------------------------------------
// Monitor Events
// -----------------------------------------------------------------------------

// SeatChangedEvent is emitted when a seat moves between states.
// Snapshot is the whole table right after the change, and Seq orders it
// against every other snapshot taken by the same monitor.
type SeatChangedEvent struct {
	baseEvent
	Seat     int        // 1-based seat id
	From     seat.State // Previous state
	To       seat.State // New state
	Reason   string     // "pick up", "put down", "neighbor released", "canceled"
	Seq      uint64
	Snapshot seat.Snapshot
}

// NewSeatChangedEvent creates a SeatChangedEvent typed after the new state.
func NewSeatChangedEvent(id int, from, to seat.State, reason string, seq uint64, snap seat.Snapshot) SeatChangedEvent {
	var eventType string
	switch to {
	case seat.Hungry:
		eventType = TypeSeatHungry
	case seat.Eating:
		eventType = TypeSeatEating
	default:
		eventType = TypeSeatThinking
	}
	return SeatChangedEvent{
		baseEvent: newBaseEvent(eventType),
		Seat:      id,
		From:      from,
		To:        to,
		Reason:    reason,
		Seq:       seq,
		Snapshot:  snap,
	}
}

// SeatWaitingEvent is emitted when a pick up has to park.
type SeatWaitingEvent struct {
	baseEvent
	Seat int
}

// NewSeatWaitingEvent creates a SeatWaitingEvent.
func NewSeatWaitingEvent(id int) SeatWaitingEvent {
	return SeatWaitingEvent{
		baseEvent: newBaseEvent(TypeSeatWaiting),
		Seat:      id,
	}
}

// TalkEvent is emitted when the talking token is requested, granted, or released.
// The monitor records no identity for the talker.
type TalkEvent struct {
	baseEvent
	Seq      uint64
	Snapshot seat.Snapshot
}

// NewTalkWaitingEvent creates a TalkEvent for a parked talk request.
func NewTalkWaitingEvent() TalkEvent {
	return TalkEvent{baseEvent: newBaseEvent(TypeTalkWaiting)}
}

// NewTalkGrantedEvent creates a TalkEvent for a granted token.
func NewTalkGrantedEvent(seq uint64, snap seat.Snapshot) TalkEvent {
	return TalkEvent{
		baseEvent: newBaseEvent(TypeTalkGranted),
		Seq:       seq,
		Snapshot:  snap,
	}
}

// NewTalkEndedEvent creates a TalkEvent for a released token.
func NewTalkEndedEvent(seq uint64, snap seat.Snapshot) TalkEvent {
	return TalkEvent{
		baseEvent: newBaseEvent(TypeTalkEnded),
		Seq:       seq,
		Snapshot:  snap,
	}
}

// -----------------------------------------------------------------------------
// Dinner Lifecycle Events
// -----------------------------------------------------------------------------

// DinnerStartedEvent is emitted once all philosophers are seated.
type DinnerStartedEvent struct {
	baseEvent
	RunID string
	Seats int
}

// NewDinnerStartedEvent creates a DinnerStartedEvent.
func NewDinnerStartedEvent(runID string, seats int) DinnerStartedEvent {
	return DinnerStartedEvent{
		baseEvent: newBaseEvent(TypeDinnerStarted),
		RunID:     runID,
		Seats:     seats,
	}
}

// DinnerFinishedEvent is emitted after every philosopher has left the table.
type DinnerFinishedEvent struct {
	baseEvent
	RunID      string
	Meals      int
	Violations int
	Err        error
}

// NewDinnerFinishedEvent creates a DinnerFinishedEvent.
func NewDinnerFinishedEvent(runID string, meals, violations int, err error) DinnerFinishedEvent {
	return DinnerFinishedEvent{
		baseEvent:  newBaseEvent(TypeDinnerFinished),
		RunID:      runID,
		Meals:      meals,
		Violations: violations,
		Err:        err,
	}
}

// PhilosopherDoneEvent is emitted when one philosopher leaves the table.
type PhilosopherDoneEvent struct {
	baseEvent
	Seat  int
	Meals int
	Talks int
	Err   error
}

// NewPhilosopherDoneEvent creates a PhilosopherDoneEvent.
func NewPhilosopherDoneEvent(id, meals, talks int, err error) PhilosopherDoneEvent {
	return PhilosopherDoneEvent{
		baseEvent: newBaseEvent(TypePhilosopherDone),
		Seat:      id,
		Meals:     meals,
		Talks:     talks,
		Err:       err,
	}
}
