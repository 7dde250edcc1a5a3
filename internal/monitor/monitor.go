package monitor

import (
	"context"
	"sync"

	"github.com/Iron-Ham/symposium/internal/errors"
	"github.com/Iron-Ham/symposium/internal/event"
	"github.com/Iron-Ham/symposium/internal/logging"
	"github.com/Iron-Ham/symposium/internal/seat"
)

// Operation names used in errors and logs.
const (
	OpPickUp      = "pick up"
	OpPutDown     = "put down"
	OpRequestTalk = "request talk"
	OpEndTalk     = "end talk"
)

// Reasons attached to seat transitions.
const (
	reasonPickUp   = "pick up"
	reasonPutDown  = "put down"
	reasonNeighbor = "neighbor released"
	reasonCanceled = "canceled"
)

// Monitor arbitrates a ring of seats and a single talking token.
//
// Every read and write of table state happens under mu. Callers that cannot
// proceed park on the current wake channel with mu released; any change that
// may let a parked caller proceed closes that channel and installs a fresh one,
// waking every parked caller to re-check its own condition.
type Monitor struct {
	mu      sync.Mutex
	states  []seat.State
	talking bool
	wake    chan struct{}
	parked  int
	seq     uint64

	logger *logging.Logger
	bus    *event.Bus
}

// New creates a Monitor for a ring of the given number of seats.
// All seats start thinking and the talking token starts free.
func New(seats int, opts ...Option) (*Monitor, error) {
	if seats < 1 {
		return nil, errors.Wrapf(errors.ErrInvalidTableSize, "%d seats", seats)
	}

	m := &Monitor{
		states: make([]seat.State, seats),
		wake:   make(chan struct{}),
		logger: logging.NopLogger(),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m, nil
}

// Seats returns the number of seats at the table.
func (m *Monitor) Seats() int {
	return len(m.states)
}

// PickUp marks seat id hungry and blocks until both of its chopsticks are
// granted. It returns nil once the seat is eating.
//
// If ctx ends while the seat is still waiting, the seat goes back to thinking
// and PickUp returns an error wrapping errors.ErrCanceled. A grant that lands
// while the cancellation is being noticed wins: the seat is eating and PickUp
// returns nil.
func (m *Monitor) PickUp(ctx context.Context, id int) error {
	i, err := m.index(OpPickUp, id)
	if err != nil {
		return err
	}

	log := m.logger.WithSeat(id)

	var out outbox
	defer m.publish(&out)

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.states[i] != seat.Thinking {
		return errors.NewSeatError(OpPickUp, id, errors.ErrSeatBusy)
	}

	m.setLocked(i, seat.Hungry, reasonPickUp, &out)
	log.Debug("hungry and wants to pick up chopsticks")
	m.testLocked(i, reasonPickUp, &out)

	for m.states[i] != seat.Eating {
		log.Debug("waiting to eat")
		out.add(event.NewSeatWaitingEvent(id))

		if err := m.parkLocked(ctx, &out); err != nil {
			if m.states[i] == seat.Eating {
				break
			}
			m.setLocked(i, seat.Thinking, reasonCanceled, &out)
			log.Debug("gave up waiting to eat", "error", err)
			return errors.NewSeatError(OpPickUp, id, errors.ErrCanceled).WithCause(err)
		}
	}

	log.Debug("picked up chopsticks and is eating")
	return nil
}

// PutDown releases the chopsticks held by seat id, returns it to thinking,
// grants both neighbors their chopsticks if they are hungry and now able to
// eat, and wakes every parked caller.
func (m *Monitor) PutDown(id int) error {
	i, err := m.index(OpPutDown, id)
	if err != nil {
		return err
	}

	var out outbox
	defer m.publish(&out)

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.states[i] != seat.Eating {
		return errors.NewSeatError(OpPutDown, id, errors.ErrNotEating)
	}

	m.setLocked(i, seat.Thinking, reasonPutDown, &out)
	m.logger.WithSeat(id).Debug("put down chopsticks and is thinking")

	n := len(m.states)
	m.testLocked(seat.Left(i, n), reasonNeighbor, &out)
	m.testLocked(seat.Right(i, n), reasonNeighbor, &out)
	m.broadcastLocked()
	return nil
}

// RequestTalk blocks while someone holds the talking token, then takes it.
// The monitor does not record who talks.
//
// If ctx ends first, RequestTalk returns an error wrapping errors.ErrCanceled
// and the token is left as it was.
func (m *Monitor) RequestTalk(ctx context.Context) error {
	var out outbox
	defer m.publish(&out)

	m.mu.Lock()
	defer m.mu.Unlock()

	for m.talking {
		m.logger.Debug("waiting because someone else is talking")
		out.add(event.NewTalkWaitingEvent())

		if err := m.parkLocked(ctx, &out); err != nil {
			return errors.NewTalkError(OpRequestTalk, errors.ErrCanceled).WithCause(err)
		}
	}

	m.talking = true
	m.seq++
	if m.bus != nil {
		out.add(event.NewTalkGrantedEvent(m.seq, m.snapshotLocked()))
	}
	m.logger.Debug("granted permission to talk")
	return nil
}

// EndTalk frees the talking token and wakes every parked caller.
func (m *Monitor) EndTalk() error {
	var out outbox
	defer m.publish(&out)

	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.talking {
		return errors.NewTalkError(OpEndTalk, errors.ErrNotTalking)
	}

	m.talking = false
	m.seq++
	if m.bus != nil {
		out.add(event.NewTalkEndedEvent(m.seq, m.snapshotLocked()))
	}
	m.logger.Debug("finished talking")
	m.broadcastLocked()
	return nil
}

// State returns the current state of seat id.
func (m *Monitor) State(id int) (seat.State, error) {
	i, err := m.index("state", id)
	if err != nil {
		return seat.Thinking, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	return m.states[i], nil
}

// Talking reports whether the talking token is taken.
func (m *Monitor) Talking() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.talking
}

// Parked returns how many callers are currently blocked in PickUp or RequestTalk.
func (m *Monitor) Parked() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.parked
}

// Snapshot returns a consistent copy of the whole table.
func (m *Monitor) Snapshot() seat.Snapshot {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.snapshotLocked()
}

// index maps a 1-based seat id to its 0-based index.
func (m *Monitor) index(op string, id int) (int, error) {
	if id < 1 || id > len(m.states) {
		return 0, errors.NewSeatError(op, id, errors.ErrInvalidSeat)
	}
	return id - 1, nil
}

// testLocked grants seat i its chopsticks if it is hungry and neither
// neighbor is eating. It is the only place a seat starts eating. It wakes
// nobody; the caller decides whether a broadcast is needed.
func (m *Monitor) testLocked(i int, reason string, out *outbox) {
	n := len(m.states)
	if m.states[i] == seat.Hungry &&
		m.states[seat.Left(i, n)] != seat.Eating &&
		m.states[seat.Right(i, n)] != seat.Eating {
		m.setLocked(i, seat.Eating, reason, out)
	}
}

// setLocked records a transition of seat i and queues its event.
func (m *Monitor) setLocked(i int, to seat.State, reason string, out *outbox) {
	from := m.states[i]
	m.states[i] = to
	m.seq++
	if m.bus != nil {
		out.add(event.NewSeatChangedEvent(i+1, from, to, reason, m.seq, m.snapshotLocked()))
	}
}

// parkLocked releases mu, publishes queued events, and blocks until the next
// broadcast or until ctx ends. mu is held again when it returns. The returned
// error is the context's cause when ctx ended, nil otherwise.
func (m *Monitor) parkLocked(ctx context.Context, out *outbox) error {
	wake := m.wake
	m.parked++
	m.mu.Unlock()

	m.publish(out)

	var err error
	select {
	case <-wake:
	case <-ctx.Done():
		err = context.Cause(ctx)
	}

	m.mu.Lock()
	m.parked--
	return err
}

// broadcastLocked wakes every parked caller.
func (m *Monitor) broadcastLocked() {
	close(m.wake)
	m.wake = make(chan struct{})
}

func (m *Monitor) snapshotLocked() seat.Snapshot {
	states := make([]seat.State, len(m.states))
	copy(states, m.states)
	return seat.Snapshot{States: states, Talking: m.talking}
}

// publish delivers queued events. It must run with mu released, since bus
// handlers may call back into the monitor.
func (m *Monitor) publish(out *outbox) {
	if m.bus != nil {
		for _, e := range out.events {
			m.bus.Publish(e)
		}
	}
	out.events = out.events[:0]
}

// outbox collects events produced under the lock for delivery after it.
type outbox struct {
	events []event.Event
}

func (o *outbox) add(e event.Event) {
	o.events = append(o.events, e)
}
