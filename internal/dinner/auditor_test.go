package dinner

import (
	"testing"

	"github.com/Iron-Ham/symposium/internal/event"
	"github.com/Iron-Ham/symposium/internal/seat"
)

func snap(talking bool, states ...seat.State) seat.Snapshot {
	return seat.Snapshot{States: states, Talking: talking}
}

func TestAuditor_SeatSnapshots(t *testing.T) {
	const T, H, E = seat.Thinking, seat.Hungry, seat.Eating

	tests := []struct {
		name  string
		event event.SeatChangedEvent
		kinds []string
	}{
		{
			name:  "clean grant",
			event: event.NewSeatChangedEvent(1, H, E, "pick up", 1, snap(false, E, T, H)),
		},
		{
			name:  "adjacent eaters",
			event: event.NewSeatChangedEvent(2, H, E, "neighbor released", 4, snap(false, E, E, T, T)),
			kinds: []string{ViolationAdjacentEaters},
		},
		{
			name:  "eating straight from thinking",
			event: event.NewSeatChangedEvent(3, T, E, "pick up", 2, snap(false, T, T, E, T, T)),
			kinds: []string{ViolationUnearnedMeal},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := NewAuditor()
			a.Handle(tt.event)

			got := a.Violations()
			if len(got) != len(tt.kinds) {
				t.Fatalf("Violations() = %v, want kinds %v", got, tt.kinds)
			}
			for i, v := range got {
				if v.Kind != tt.kinds[i] {
					t.Errorf("violation %d kind = %q, want %q", i, v.Kind, tt.kinds[i])
				}
				if v.Seq != tt.event.Seq {
					t.Errorf("violation %d seq = %d, want %d", i, v.Seq, tt.event.Seq)
				}
			}
			if a.Snapshots() != 1 {
				t.Errorf("Snapshots() = %d, want 1", a.Snapshots())
			}
		})
	}
}

func TestAuditor_TalkOrdering(t *testing.T) {
	granted := func(seq uint64) event.Event { return event.NewTalkGrantedEvent(seq, snap(true, seat.Thinking)) }
	ended := func(seq uint64) event.Event { return event.NewTalkEndedEvent(seq, snap(false, seat.Thinking)) }

	tests := []struct {
		name   string
		events []event.Event
		kinds  []string
	}{
		{
			name:   "alternating",
			events: []event.Event{granted(1), ended(2), granted(3), ended(4)},
		},
		{
			name:   "delivered out of order",
			events: []event.Event{granted(3), granted(1), ended(4), ended(2)},
		},
		{
			name:   "waiting events are ignored",
			events: []event.Event{granted(1), event.NewTalkWaitingEvent(), ended(2)},
		},
		{
			name:   "double grant",
			events: []event.Event{granted(1), granted(2), ended(3)},
			kinds:  []string{ViolationTalkOverlap},
		},
		{
			name:   "end without grant",
			events: []event.Event{ended(1)},
			kinds:  []string{ViolationTalkUnmatched},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := NewAuditor()
			for _, e := range tt.events {
				a.Handle(e)
			}

			got := a.Violations()
			if len(got) != len(tt.kinds) {
				t.Fatalf("Violations() = %v, want kinds %v", got, tt.kinds)
			}
			for i, v := range got {
				if v.Kind != tt.kinds[i] {
					t.Errorf("violation %d kind = %q, want %q", i, v.Kind, tt.kinds[i])
				}
			}
		})
	}
}

func TestAuditor_Attach(t *testing.T) {
	bus := event.NewBus()
	a := NewAuditor()
	id := a.Attach(bus)

	bus.Publish(event.NewSeatChangedEvent(1, seat.Thinking, seat.Hungry, "pick up", 1, snap(false, seat.Hungry, seat.Thinking)))
	if a.Snapshots() != 1 {
		t.Errorf("Snapshots() = %d, want 1", a.Snapshots())
	}

	bus.Unsubscribe(id)
	bus.Publish(event.NewSeatChangedEvent(1, seat.Hungry, seat.Eating, "pick up", 2, snap(false, seat.Eating, seat.Thinking)))
	if a.Snapshots() != 1 {
		t.Errorf("Snapshots() after unsubscribe = %d, want 1", a.Snapshots())
	}
}
