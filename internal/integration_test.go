// Package internal contains integration tests that verify the monitor, the
// dinner runner, the viewer feed, and logging work together over one event bus.
package internal

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"slices"
	"sync"
	"testing"
	"time"

	"github.com/Iron-Ham/symposium/internal/dinner"
	"github.com/Iron-Ham/symposium/internal/event"
	"github.com/Iron-Ham/symposium/internal/logging"
	"github.com/Iron-Ham/symposium/internal/monitor"
	"github.com/Iron-Ham/symposium/internal/philosopher"
	"github.com/Iron-Ham/symposium/internal/seat"
	"github.com/Iron-Ham/symposium/internal/tui"
)

func testSettings(seats, meals int) dinner.Settings {
	return dinner.Settings{
		Seats: seats,
		Pacing: philosopher.Pacing{
			Meals:           meals,
			ThinkTime:       time.Millisecond,
			EatTime:         time.Millisecond,
			TalkTime:        time.Millisecond,
			TalkProbability: 0.5,
		},
		Seed: 1,
	}
}

// TestEventBusIntegration runs a dinner with the viewer feed and a lifecycle
// subscriber attached, simulating what the watch command wires together.
func TestEventBusIntegration(t *testing.T) {
	bus := event.NewBus()
	feed := tui.NewFeed(bus, 5)
	defer feed.Close()

	var mu sync.Mutex
	var lifecycle []string
	for _, typ := range []string{event.TypeDinnerStarted, event.TypePhilosopherDone, event.TypeDinnerFinished} {
		bus.Subscribe(typ, func(e event.Event) {
			mu.Lock()
			lifecycle = append(lifecycle, e.EventType())
			mu.Unlock()
		})
	}

	report, err := dinner.New(testSettings(5, 3), dinner.WithBus(bus)).Run(context.Background())
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	mu.Lock()
	defer mu.Unlock()
	if len(lifecycle) != 7 {
		t.Fatalf("lifecycle events = %v, want 7", lifecycle)
	}
	if lifecycle[0] != event.TypeDinnerStarted || lifecycle[6] != event.TypeDinnerFinished {
		t.Errorf("lifecycle order = %v", lifecycle)
	}

	state := feed.State()
	if !state.Started || !state.Finished {
		t.Errorf("feed Started = %v, Finished = %v", state.Started, state.Finished)
	}
	if state.RunID != report.RunID {
		t.Errorf("feed RunID = %q, report RunID = %q", state.RunID, report.RunID)
	}
	if got := state.Snapshot.Count(seat.Thinking); got != 5 || state.Snapshot.Talking {
		t.Errorf("final snapshot = %v, want everyone thinking and the token free", state.Snapshot)
	}
	total := 0
	for i, n := range state.Meals {
		total += n
		if !state.Left[i] {
			t.Errorf("seat %d never left the table", i+1)
		}
	}
	if total != report.TotalMeals {
		t.Errorf("feed counted %d meals, report has %d", total, report.TotalMeals)
	}
	if bus.SubscriptionCount() != 4 {
		t.Errorf("SubscriptionCount() = %d, want only the feed and lifecycle subscribers", bus.SubscriptionCount())
	}
}

// TestMonitorSnapshotsAreSequenced checks that every state change of the
// monitor produces exactly one snapshot, numbered without gaps.
func TestMonitorSnapshotsAreSequenced(t *testing.T) {
	bus := event.NewBus()
	m, err := monitor.New(4, monitor.WithBus(bus))
	if err != nil {
		t.Fatal(err)
	}

	var mu sync.Mutex
	var seqs []uint64
	bus.SubscribeAll(func(e event.Event) {
		mu.Lock()
		defer mu.Unlock()
		switch e := e.(type) {
		case event.SeatChangedEvent:
			seqs = append(seqs, e.Seq)
		case event.TalkEvent:
			if e.EventType() != event.TypeTalkWaiting {
				seqs = append(seqs, e.Seq)
			}
		}
	})

	var wg sync.WaitGroup
	for id := 1; id <= 4; id++ {
		wg.Go(func() {
			p := philosopher.New(id, m, testSettings(4, 10).Pacing, philosopher.WithSeed(3))
			if _, err := p.Run(context.Background()); err != nil {
				t.Errorf("seat %d: %v", id, err)
			}
		})
	}
	wg.Wait()

	mu.Lock()
	defer mu.Unlock()
	slices.Sort(seqs)
	for i, seq := range seqs {
		if seq != uint64(i+1) {
			t.Fatalf("snapshot %d has seq %d; sequence numbers must be unique and gapless", i, seq)
		}
	}
	// Every meal is at least hungry, eating, thinking.
	if len(seqs) < 4*10*3 {
		t.Errorf("only %d snapshots for 40 meals", len(seqs))
	}
}

// TestLoggingIntegration checks that debug logs from the monitor and the
// philosophers carry the run and seat they belong to.
func TestLoggingIntegration(t *testing.T) {
	var buf bytes.Buffer
	logger := logging.NewLoggerWithWriter(&buf, "debug")

	d := dinner.New(testSettings(3, 2), dinner.WithLogger(logger), dinner.WithRunID("run-log"))
	if _, err := d.Run(context.Background()); err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	var eating, started int
	scanner := bufio.NewScanner(&buf)
	for scanner.Scan() {
		var entry map[string]any
		if err := json.Unmarshal(scanner.Bytes(), &entry); err != nil {
			t.Fatalf("log line is not JSON: %v: %s", err, scanner.Text())
		}
		if entry["run_id"] != "run-log" {
			t.Errorf("log line without run_id: %s", scanner.Text())
		}
		switch entry["msg"] {
		case "picked up chopsticks and is eating":
			eating++
			if _, ok := entry["seat"]; !ok {
				t.Errorf("monitor log line without seat: %s", scanner.Text())
			}
		case "dinner started":
			started++
		}
	}
	if eating != 6 {
		t.Errorf("logged %d meals, want 6", eating)
	}
	if started != 1 {
		t.Errorf("logged %d dinner starts, want 1", started)
	}
}
