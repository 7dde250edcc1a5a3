// Package errors provides centralized error definitions and error handling utilities
// for symposium. It defines sentinel errors, domain error types carrying seat and
// operation context, and classification helpers.
//
// # Error Types
//
// Domain-specific errors represent failures of arbitrator operations:
//   - SeatError: a seat operation (pick up, put down) failed
//   - TalkError: a talking-token operation (request, end) failed
//
// Semantic errors represent common error conditions:
//   - ValidationError: invalid input or state
//
// # Usage
//
//	err := errors.NewSeatError("pick up", 3, errors.ErrCanceled).WithCause(ctx.Err())
//
//	if errors.Is(err, errors.ErrCanceled) { ... }
//
//	var seatErr *errors.SeatError
//	if errors.As(err, &seatErr) { ... }
//
// # Error Classification
//
// Precondition violations (bad seat ids, putting down an idle seat) are reported
// with SeverityError and are not retryable. Cancellations are SeverityInfo and
// retryable: the arbitrator's state is left intact and the agent may try again.
package errors

import (
	"errors"
	"fmt"
	"strings"
)

// Re-export standard library functions for convenience.
// This allows callers to import only this package for all error handling.
var (
	Is     = errors.Is
	As     = errors.As
	Unwrap = errors.Unwrap
	New    = errors.New
	Join   = errors.Join
)

// Severity represents the severity level of an error.
type Severity int

const (
	// SeverityDebug is for errors that are useful for debugging but not critical.
	SeverityDebug Severity = iota
	// SeverityInfo is for informational errors that don't indicate a problem.
	SeverityInfo
	// SeverityWarning is for errors that might indicate a problem but aren't critical.
	SeverityWarning
	// SeverityError is for errors that indicate a real problem.
	SeverityError
	// SeverityCritical is for errors that require immediate attention.
	SeverityCritical
)

// String returns the string representation of the severity level.
func (s Severity) String() string {
	switch s {
	case SeverityDebug:
		return "debug"
	case SeverityInfo:
		return "info"
	case SeverityWarning:
		return "warning"
	case SeverityError:
		return "error"
	case SeverityCritical:
		return "critical"
	default:
		return "unknown"
	}
}

// -----------------------------------------------------------------------------
// Sentinel Errors
// -----------------------------------------------------------------------------

// Arbitrator precondition sentinel errors
var (
	// ErrInvalidSeat indicates a seat id outside 1..N.
	ErrInvalidSeat = New("invalid seat")
	// ErrInvalidTableSize indicates a table constructed with fewer than one seat.
	ErrInvalidTableSize = New("invalid table size")
	// ErrSeatBusy indicates a pick up from a seat that is already hungry or eating.
	ErrSeatBusy = New("seat is already hungry or eating")
	// ErrNotEating indicates a put down from a seat that holds no chopsticks.
	ErrNotEating = New("seat is not eating")
	// ErrNotTalking indicates an end of talk while nobody holds the token.
	ErrNotTalking = New("nobody is talking")
)

// General sentinel errors
var (
	// ErrCanceled indicates that a blocked wait was canceled.
	ErrCanceled = New("operation canceled")
	// ErrInvalidInput indicates that input validation failed.
	ErrInvalidInput = New("invalid input")
	// ErrInvariantViolated indicates an observed state breaking a table invariant.
	ErrInvariantViolated = New("invariant violated")
)

// -----------------------------------------------------------------------------
// Base Error Implementation
// -----------------------------------------------------------------------------

// baseError provides common functionality for all error types.
type baseError struct {
	message    string
	cause      error
	severity  Severity
	retryable bool
}

// Error returns the error message.
func (e *baseError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %v", e.message, e.cause)
	}
	return e.message
}

// Unwrap returns the underlying error.
func (e *baseError) Unwrap() error {
	return e.cause
}

// Is checks if this error matches the target.
func (e *baseError) Is(target error) bool {
	if e.cause != nil {
		return errors.Is(e.cause, target)
	}
	return false
}

// Severity returns the error severity.
func (e *baseError) Severity() Severity {
	return e.severity
}

// IsRetryable returns whether the error is retryable.
func (e *baseError) IsRetryable() bool {
	return e.retryable
}

// classify fills severity and retryability from the sentinel a domain error wraps.
func (e *baseError) classify() {
	if errors.Is(e.cause, ErrCanceled) {
		e.severity = SeverityInfo
		e.retryable = true
	}
}

// -----------------------------------------------------------------------------
// Domain-Specific Errors
// -----------------------------------------------------------------------------

// SeatError represents a failed seat operation.
//
// Example:
//
//	err := errors.NewSeatError("put down", 2, errors.ErrNotEating)
//	fmt.Println(err) // "seat error [seat=2, op=put down]: seat is not eating"
type SeatError struct {
	baseError
	Seat      int
	Operation string
	reason    error
}

// NewSeatError creates a SeatError for the given operation and 1-based seat id.
// The sentinel is matched by errors.Is; use WithCause to attach the underlying
// reason (for example the context error of a canceled wait).
func NewSeatError(op string, seat int, sentinel error) *SeatError {
	e := &SeatError{
		baseError: baseError{
			message:  sentinel.Error(),
			cause:    sentinel,
			severity: SeverityError,
		},
		Seat:      seat,
		Operation: op,
	}
	e.classify()
	return e
}

// WithCause attaches the underlying reason to the error.
func (e *SeatError) WithCause(cause error) *SeatError {
	e.reason = cause
	return e
}

// Error returns the formatted error message.
func (e *SeatError) Error() string {
	prefix := fmt.Sprintf("seat error [seat=%d, op=%s]", e.Seat, e.Operation)
	if e.reason != nil {
		return fmt.Sprintf("%s: %s: %v", prefix, e.message, e.reason)
	}
	return fmt.Sprintf("%s: %s", prefix, e.message)
}

// Is checks if this error matches the target.
func (e *SeatError) Is(target error) bool {
	if _, ok := target.(*SeatError); ok {
		return true
	}
	if e.reason != nil && errors.Is(e.reason, target) {
		return true
	}
	return e.baseError.Is(target)
}

// TalkError represents a failed talking-token operation.
type TalkError struct {
	baseError
	Operation string
	reason    error
}

// NewTalkError creates a TalkError for the given operation.
func NewTalkError(op string, sentinel error) *TalkError {
	e := &TalkError{
		baseError: baseError{
			message:  sentinel.Error(),
			cause:    sentinel,
			severity: SeverityError,
		},
		Operation: op,
	}
	e.classify()
	return e
}

// WithCause attaches the underlying reason to the error.
func (e *TalkError) WithCause(cause error) *TalkError {
	e.reason = cause
	return e
}

// Error returns the formatted error message.
func (e *TalkError) Error() string {
	prefix := fmt.Sprintf("talk error [op=%s]", e.Operation)
	if e.reason != nil {
		return fmt.Sprintf("%s: %s: %v", prefix, e.message, e.reason)
	}
	return fmt.Sprintf("%s: %s", prefix, e.message)
}

// Is checks if this error matches the target.
func (e *TalkError) Is(target error) bool {
	if _, ok := target.(*TalkError); ok {
		return true
	}
	if e.reason != nil && errors.Is(e.reason, target) {
		return true
	}
	return e.baseError.Is(target)
}

// -----------------------------------------------------------------------------
// Semantic Errors
// -----------------------------------------------------------------------------

// ValidationError represents invalid input or state.
type ValidationError struct {
	baseError
	Field string
	Value any
}

// NewValidationError creates a new ValidationError.
func NewValidationError(message string) *ValidationError {
	return &ValidationError{
		baseError: baseError{
			message:  message,
			severity: SeverityError,
		},
	}
}

// WithField sets the field that failed validation.
func (e *ValidationError) WithField(field string) *ValidationError {
	e.Field = field
	return e
}

// WithValue sets the value that failed validation.
func (e *ValidationError) WithValue(value any) *ValidationError {
	e.Value = value
	return e
}

// Error returns the formatted error message.
func (e *ValidationError) Error() string {
	var parts []string
	if e.Field != "" {
		parts = append(parts, fmt.Sprintf("field=%s", e.Field))
	}
	if e.Value != nil {
		parts = append(parts, fmt.Sprintf("value=%v", e.Value))
	}
	if len(parts) == 0 {
		return fmt.Sprintf("validation error: %s", e.message)
	}
	return fmt.Sprintf("validation error [%s]: %s", strings.Join(parts, ", "), e.message)
}

// Is checks if this error matches the target.
func (e *ValidationError) Is(target error) bool {
	if _, ok := target.(*ValidationError); ok {
		return true
	}
	if target == ErrInvalidInput {
		return true
	}
	return e.baseError.Is(target)
}

// -----------------------------------------------------------------------------
// Classification Helpers
// -----------------------------------------------------------------------------

type classified interface {
	Severity() Severity
	IsRetryable() bool
}

// IsRetryable reports whether the operation that produced err may succeed on retry.
func IsRetryable(err error) bool {
	var c classified
	if errors.As(err, &c) {
		return c.IsRetryable()
	}
	return false
}

// GetSeverity returns the severity of err, defaulting to SeverityError for
// unclassified errors.
func GetSeverity(err error) Severity {
	if err == nil {
		return SeverityDebug
	}
	var c classified
	if errors.As(err, &c) {
		return c.Severity()
	}
	return SeverityError
}

// Wrap adds context to err. Returns nil if err is nil.
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}

// Wrapf adds formatted context to err. Returns nil if err is nil.
func Wrapf(err error, format string, args ...any) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), err)
}
