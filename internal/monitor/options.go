package monitor

import (
	"github.com/Iron-Ham/symposium/internal/event"
	"github.com/Iron-Ham/symposium/internal/logging"
)

// Option configures a Monitor.
type Option func(*Monitor)

// WithLogger sets the logger that receives a DEBUG entry for every transition.
func WithLogger(logger *logging.Logger) Option {
	return func(m *Monitor) {
		if logger != nil {
			m.logger = logger
		}
	}
}

// WithBus sets the bus on which transitions are published.
// Events are published after the monitor's lock is released.
func WithBus(bus *event.Bus) Option {
	return func(m *Monitor) {
		m.bus = bus
	}
}
