// Package seat defines the per-seat state of the dining table and immutable
// snapshots of the whole ring.
package seat

import (
	"fmt"
	"strings"
)

// State is the closed set of states a seat can be in.
type State uint8

const (
	// Thinking seats hold no chopsticks and want none.
	Thinking State = iota
	// Hungry seats want both chopsticks and are waiting for a grant.
	Hungry
	// Eating seats hold both chopsticks.
	Eating
)

// String returns the lowercase state name.
func (s State) String() string {
	switch s {
	case Thinking:
		return "thinking"
	case Hungry:
		return "hungry"
	case Eating:
		return "eating"
	default:
		return fmt.Sprintf("state(%d)", uint8(s))
	}
}

// MarshalText implements encoding.TextMarshaler so reports print names.
func (s State) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// Left returns the 0-based index of the left neighbor of index i in a ring of n.
func Left(i, n int) int {
	return (i + n - 1) % n
}

// Right returns the 0-based index of the right neighbor of index i in a ring of n.
func Right(i, n int) int {
	return (i + 1) % n
}

// Snapshot is a copy of the table as seen at one instant inside the monitor.
type Snapshot struct {
	States  []State `json:"states" yaml:"states"`
	Talking bool    `json:"talking" yaml:"talking"`
}

// State returns the state of the 1-based seat id.
func (s Snapshot) State(id int) State {
	return s.States[id-1]
}

// Count returns how many seats are in state st.
func (s Snapshot) Count(st State) int {
	n := 0
	for _, cur := range s.States {
		if cur == st {
			n++
		}
	}
	return n
}

// AdjacentEaters returns the 1-based id pairs of neighbors that are both eating.
// An empty result means the mutual exclusion invariant holds for the snapshot.
// A ring of one seat has no distinct neighbors and never reports a pair.
func (s Snapshot) AdjacentEaters() [][2]int {
	n := len(s.States)
	if n < 2 {
		return nil
	}
	var pairs [][2]int
	for i := 0; i < n; i++ {
		j := Right(i, n)
		if n == 2 && j < i {
			break // the ring of two has a single edge
		}
		if s.States[i] == Eating && s.States[j] == Eating {
			pairs = append(pairs, [2]int{i + 1, j + 1})
		}
	}
	return pairs
}

// String renders the snapshot compactly, e.g. "[T H E T T] talk=free".
func (s Snapshot) String() string {
	var sb strings.Builder
	sb.WriteByte('[')
	for i, st := range s.States {
		if i > 0 {
			sb.WriteByte(' ')
		}
		sb.WriteString(strings.ToUpper(st.String()[:1]))
	}
	sb.WriteString("] talk=")
	if s.Talking {
		sb.WriteString("taken")
	} else {
		sb.WriteString("free")
	}
	return sb.String()
}
