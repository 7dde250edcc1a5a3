package dinner

import (
	"sync"

	"github.com/Iron-Ham/symposium/internal/event"
	"github.com/Iron-Ham/symposium/internal/seat"
)

// recorder counts what the monitor reported, independently of what the
// philosophers believe they did.
type recorder struct {
	mu     sync.Mutex
	grants []int // meals granted per seat
	parks  int
	talks  int
}

func newRecorder(seats int) *recorder {
	return &recorder{grants: make([]int, seats)}
}

func (r *recorder) handle(e event.Event) {
	r.mu.Lock()
	defer r.mu.Unlock()

	switch e := e.(type) {
	case event.SeatChangedEvent:
		if e.To == seat.Eating && e.Seat >= 1 && e.Seat <= len(r.grants) {
			r.grants[e.Seat-1]++
		}
	case event.SeatWaitingEvent:
		r.parks++
	case event.TalkEvent:
		switch e.EventType() {
		case event.TypeTalkWaiting:
			r.parks++
		case event.TypeTalkGranted:
			r.talks++
		}
	}
}

func (r *recorder) mealsGranted() []int {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]int, len(r.grants))
	copy(out, r.grants)
	return out
}

func (r *recorder) counts() (parks, talks int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.parks, r.talks
}
