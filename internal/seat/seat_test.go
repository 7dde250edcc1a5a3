package seat

import (
	"reflect"
	"testing"
)

func TestState_String(t *testing.T) {
	tests := []struct {
		state State
		want  string
	}{
		{Thinking, "thinking"},
		{Hungry, "hungry"},
		{Eating, "eating"},
		{State(7), "state(7)"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := tt.state.String(); got != tt.want {
				t.Errorf("String() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestNeighbors(t *testing.T) {
	tests := []struct {
		i, n        int
		left, right int
	}{
		{0, 5, 4, 1},
		{4, 5, 3, 0},
		{2, 5, 1, 3},
		{0, 2, 1, 1},
		{0, 1, 0, 0},
	}

	for _, tt := range tests {
		if got := Left(tt.i, tt.n); got != tt.left {
			t.Errorf("Left(%d, %d) = %d, want %d", tt.i, tt.n, got, tt.left)
		}
		if got := Right(tt.i, tt.n); got != tt.right {
			t.Errorf("Right(%d, %d) = %d, want %d", tt.i, tt.n, got, tt.right)
		}
	}
}

func TestSnapshot_AdjacentEaters(t *testing.T) {
	tests := []struct {
		name   string
		states []State
		want   [][2]int
	}{
		{
			name:   "all thinking",
			states: []State{Thinking, Thinking, Thinking},
		},
		{
			name:   "non adjacent eaters",
			states: []State{Eating, Hungry, Eating, Thinking, Thinking},
		},
		{
			name:   "adjacent eaters",
			states: []State{Eating, Eating, Thinking, Thinking, Thinking},
			want:   [][2]int{{1, 2}},
		},
		{
			name:   "wrap around",
			states: []State{Eating, Thinking, Thinking, Thinking, Eating},
			want:   [][2]int{{5, 1}},
		},
		{
			name:   "ring of two reports one edge",
			states: []State{Eating, Eating},
			want:   [][2]int{{1, 2}},
		},
		{
			name:   "ring of one",
			states: []State{Eating},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Snapshot{States: tt.states}.AdjacentEaters()
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("AdjacentEaters() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSnapshot_String(t *testing.T) {
	s := Snapshot{States: []State{Thinking, Hungry, Eating}, Talking: true}
	if got, want := s.String(), "[T H E] talk=taken"; got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
	if got := s.Count(Hungry); got != 1 {
		t.Errorf("Count(Hungry) = %d, want 1", got)
	}
	if got := s.State(3); got != Eating {
		t.Errorf("State(3) = %v, want %v", got, Eating)
	}
}
