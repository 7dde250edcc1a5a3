package errors

import (
	"context"
	"errors"
	"fmt"
	"testing"
)

// -----------------------------------------------------------------------------
// Severity Tests
// -----------------------------------------------------------------------------

func TestSeverity_String(t *testing.T) {
	tests := []struct {
		severity Severity
		want     string
	}{
		{SeverityDebug, "debug"},
		{SeverityInfo, "info"},
		{SeverityWarning, "warning"},
		{SeverityError, "error"},
		{SeverityCritical, "critical"},
		{Severity(99), "unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := tt.severity.String(); got != tt.want {
				t.Errorf("Severity.String() = %q, want %q", got, tt.want)
			}
		})
	}
}

// -----------------------------------------------------------------------------
// SeatError Tests
// -----------------------------------------------------------------------------

func TestNewSeatError(t *testing.T) {
	err := NewSeatError("put down", 2, ErrNotEating)

	if err.Seat != 2 {
		t.Errorf("Seat = %d, want 2", err.Seat)
	}
	if err.Operation != "put down" {
		t.Errorf("Operation = %q, want %q", err.Operation, "put down")
	}
	if err.Severity() != SeverityError {
		t.Errorf("Severity() = %v, want %v", err.Severity(), SeverityError)
	}
	if err.IsRetryable() {
		t.Error("IsRetryable() = true, want false")
	}

	want := "seat error [seat=2, op=put down]: seat is not eating"
	if got := err.Error(); got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
}

func TestSeatError_Canceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := NewSeatError("pick up", 4, ErrCanceled).WithCause(ctx.Err())

	if !errors.Is(err, ErrCanceled) {
		t.Error("errors.Is(err, ErrCanceled) = false, want true")
	}
	if !errors.Is(err, context.Canceled) {
		t.Error("errors.Is(err, context.Canceled) = false, want true")
	}
	if err.Severity() != SeverityInfo {
		t.Errorf("Severity() = %v, want %v", err.Severity(), SeverityInfo)
	}
	if !err.IsRetryable() {
		t.Error("IsRetryable() = false, want true")
	}

	want := "seat error [seat=4, op=pick up]: operation canceled: context canceled"
	if got := err.Error(); got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
}

func TestSeatError_Is(t *testing.T) {
	err := NewSeatError("pick up", 1, ErrInvalidSeat)

	tests := []struct {
		name   string
		target error
		want   bool
	}{
		{"same type", &SeatError{}, true},
		{"wrapped sentinel", ErrInvalidSeat, true},
		{"other sentinel", ErrNotEating, false},
		{"talk error type", &TalkError{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := errors.Is(err, tt.target); got != tt.want {
				t.Errorf("errors.Is() = %v, want %v", got, tt.want)
			}
		})
	}
}

// -----------------------------------------------------------------------------
// TalkError Tests
// -----------------------------------------------------------------------------

func TestTalkError(t *testing.T) {
	err := NewTalkError("end talk", ErrNotTalking)

	if !errors.Is(err, ErrNotTalking) {
		t.Error("errors.Is(err, ErrNotTalking) = false, want true")
	}
	var talkErr *TalkError
	if !errors.As(fmt.Errorf("wrapped: %w", err), &talkErr) {
		t.Fatal("errors.As() failed to find TalkError")
	}
	if talkErr.Operation != "end talk" {
		t.Errorf("Operation = %q, want %q", talkErr.Operation, "end talk")
	}

	want := "talk error [op=end talk]: nobody is talking"
	if got := err.Error(); got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
}

// -----------------------------------------------------------------------------
// ValidationError Tests
// -----------------------------------------------------------------------------

func TestValidationError(t *testing.T) {
	tests := []struct {
		name string
		err  *ValidationError
		want string
	}{
		{
			name: "message only",
			err:  NewValidationError("must be positive"),
			want: "validation error: must be positive",
		},
		{
			name: "field and value",
			err:  NewValidationError("must be positive").WithField("table.seats").WithValue(0),
			want: "validation error [field=table.seats, value=0]: must be positive",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("Error() = %q, want %q", got, tt.want)
			}
			if !errors.Is(tt.err, ErrInvalidInput) {
				t.Error("errors.Is(err, ErrInvalidInput) = false, want true")
			}
		})
	}
}

// -----------------------------------------------------------------------------
// Classification Tests
// -----------------------------------------------------------------------------

func TestClassification(t *testing.T) {
	canceled := fmt.Errorf("philosopher 3: %w", NewSeatError("pick up", 3, ErrCanceled))
	invalid := NewSeatError("pick up", 9, ErrInvalidSeat)
	plain := New("plain")

	tests := []struct {
		name         string
		err          error
		wantRetry    bool
		wantSeverity Severity
	}{
		{"wrapped cancellation", canceled, true, SeverityInfo},
		{"invalid seat", invalid, false, SeverityError},
		{"plain error", plain, false, SeverityError},
		{"nil", nil, false, SeverityDebug},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsRetryable(tt.err); got != tt.wantRetry {
				t.Errorf("IsRetryable() = %v, want %v", got, tt.wantRetry)
			}
			if got := GetSeverity(tt.err); got != tt.wantSeverity {
				t.Errorf("GetSeverity() = %v, want %v", got, tt.wantSeverity)
			}
		})
	}
}

func TestWrap(t *testing.T) {
	if Wrap(nil, "context") != nil {
		t.Error("Wrap(nil) should return nil")
	}
	if Wrapf(nil, "seat %d", 1) != nil {
		t.Error("Wrapf(nil) should return nil")
	}

	err := Wrapf(ErrInvalidSeat, "seat %d", 7)
	if !errors.Is(err, ErrInvalidSeat) {
		t.Error("Wrapf() lost the wrapped sentinel")
	}
	if got, want := err.Error(), "seat 7: invalid seat"; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
}
