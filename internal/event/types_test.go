package event

import (
	"errors"
	"testing"

	"github.com/Iron-Ham/symposium/internal/seat"
)

func TestNewSeatChangedEvent_Type(t *testing.T) {
	snap := seat.Snapshot{States: []seat.State{seat.Thinking, seat.Eating, seat.Thinking}}

	tests := []struct {
		name     string
		from, to seat.State
		want     string
	}{
		{"hungry", seat.Thinking, seat.Hungry, TypeSeatHungry},
		{"eating", seat.Hungry, seat.Eating, TypeSeatEating},
		{"put down", seat.Eating, seat.Thinking, TypeSeatThinking},
		{"canceled", seat.Hungry, seat.Thinking, TypeSeatThinking},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := NewSeatChangedEvent(2, tt.from, tt.to, tt.name, 7, snap)
			if e.EventType() != tt.want {
				t.Errorf("EventType() = %q, want %q", e.EventType(), tt.want)
			}
			if e.Seat != 2 || e.Seq != 7 {
				t.Errorf("Seat, Seq = %d, %d, want 2, 7", e.Seat, e.Seq)
			}
			if e.Timestamp().IsZero() {
				t.Error("Timestamp() should be set")
			}
		})
	}
}

func TestTalkEvents(t *testing.T) {
	snap := seat.Snapshot{States: []seat.State{seat.Thinking}, Talking: true}

	if got := NewTalkWaitingEvent().EventType(); got != TypeTalkWaiting {
		t.Errorf("waiting EventType() = %q, want %q", got, TypeTalkWaiting)
	}
	granted := NewTalkGrantedEvent(3, snap)
	if granted.EventType() != TypeTalkGranted || !granted.Snapshot.Talking {
		t.Errorf("granted = %+v, want talk.granted with token taken", granted)
	}
	if got := NewTalkEndedEvent(4, seat.Snapshot{}).EventType(); got != TypeTalkEnded {
		t.Errorf("ended EventType() = %q, want %q", got, TypeTalkEnded)
	}
}

func TestLifecycleEvents(t *testing.T) {
	started := NewDinnerStartedEvent("run-1", 5)
	if started.EventType() != TypeDinnerStarted || started.Seats != 5 {
		t.Errorf("started = %+v", started)
	}

	boom := errors.New("boom")
	done := NewPhilosopherDoneEvent(4, 10, 2, boom)
	if done.EventType() != TypePhilosopherDone || done.Meals != 10 || done.Talks != 2 || done.Err != boom {
		t.Errorf("done = %+v", done)
	}

	finished := NewDinnerFinishedEvent("run-1", 50, 0, nil)
	if finished.EventType() != TypeDinnerFinished || finished.Meals != 50 {
		t.Errorf("finished = %+v", finished)
	}
}
