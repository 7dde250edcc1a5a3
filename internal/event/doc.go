// Package event provides a pub-sub event bus for decoupled communication in
// symposium.
//
// The monitor publishes every state transition; the dinner runner, the
// invariant auditor, and the terminal viewer subscribe. Nobody but the monitor
// touches table state, so events are the only way other components learn
// about it.
//
// # Main Types
//
//   - [Event]: Interface that all events must implement, providing EventType() and Timestamp()
//   - [Bus]: Synchronous pub-sub event dispatcher with thread-safe operations
//   - [Handler]: Function type for event handlers (func(Event))
//
// # Event Categories
//
// Monitor:
//   - [SeatChangedEvent]: a seat became hungry, eating, or thinking
//   - [SeatWaitingEvent]: a pick up parked because a neighbor is eating
//   - [TalkEvent]: the talking token was requested, granted, or released
//
// Dinner lifecycle:
//   - [DinnerStartedEvent], [DinnerFinishedEvent], [PhilosopherDoneEvent]
//
// # Ordering
//
// Publish runs handlers on the caller's goroutine. Events from different
// goroutines may reach a handler in any order; events that carry a snapshot
// also carry a sequence number assigned inside the monitor, which gives the
// true order when it matters.
//
// # Basic Usage
//
//	bus := event.NewBus()
//	id := bus.Subscribe(event.TypeSeatEating, func(e event.Event) {
//	    changed := e.(event.SeatChangedEvent)
//	    fmt.Println("seat", changed.Seat, "is eating")
//	})
//	defer bus.Unsubscribe(id)
package event
