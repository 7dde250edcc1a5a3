package config

import (
	"fmt"
	"slices"
	"strings"
)

// MaxSeats bounds the table size accepted from configuration
const MaxSeats = 64

// ValidationError represents a single validation failure
type ValidationError struct {
	Field   string // The config field path (e.g., "table.seats")
	Value   any    // The invalid value
	Message string // Human-readable error description
}

// Error implements the error interface for ValidationError
func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s (got: %v)", e.Field, e.Message, e.Value)
}

// ValidationErrors is a collection of validation errors
type ValidationErrors []ValidationError

// Error implements the error interface for ValidationErrors
func (e ValidationErrors) Error() string {
	if len(e) == 0 {
		return ""
	}
	if len(e) == 1 {
		return e[0].Error()
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%d validation errors:\n", len(e)))
	for i, err := range e {
		sb.WriteString(fmt.Sprintf("  %d. %s\n", i+1, err.Error()))
	}
	return sb.String()
}

// ValidLogLevels returns the list of valid log levels
func ValidLogLevels() []string {
	return []string{"debug", "info", "warn", "error"}
}

// Validate checks the Config for invalid values and returns all validation errors found
func (c *Config) Validate() []ValidationError {
	var errors []ValidationError

	errors = append(errors, c.validateTable()...)
	errors = append(errors, c.validateDinner()...)
	errors = append(errors, c.validateLogging()...)
	errors = append(errors, c.validateTUI()...)

	return errors
}

// validateTable validates the TableConfig
func (c *Config) validateTable() []ValidationError {
	var errors []ValidationError

	if c.Table.Seats < 1 || c.Table.Seats > MaxSeats {
		errors = append(errors, ValidationError{
			Field:   "table.seats",
			Value:   c.Table.Seats,
			Message: fmt.Sprintf("must be between 1 and %d", MaxSeats),
		})
	}

	return errors
}

// validateDinner validates the DinnerConfig
func (c *Config) validateDinner() []ValidationError {
	var errors []ValidationError
	d := c.Dinner

	if d.Meals < 0 {
		errors = append(errors, ValidationError{
			Field:   "dinner.meals",
			Value:   d.Meals,
			Message: "must be non-negative",
		})
	}

	durations := []struct {
		field string
		value any
		neg   bool
	}{
		{"dinner.duration", d.Duration, d.Duration < 0},
		{"dinner.think_time", d.ThinkTime, d.ThinkTime < 0},
		{"dinner.eat_time", d.EatTime, d.EatTime < 0},
		{"dinner.talk_time", d.TalkTime, d.TalkTime < 0},
	}
	for _, dur := range durations {
		if dur.neg {
			errors = append(errors, ValidationError{
				Field:   dur.field,
				Value:   dur.value,
				Message: "must be non-negative",
			})
		}
	}

	if d.TalkProbability < 0 || d.TalkProbability > 1 {
		errors = append(errors, ValidationError{
			Field:   "dinner.talk_probability",
			Value:   d.TalkProbability,
			Message: "must be between 0 and 1",
		})
	}

	return errors
}

// validateLogging validates the LoggingConfig
func (c *Config) validateLogging() []ValidationError {
	var errors []ValidationError

	if c.Logging.Level != "" && !slices.Contains(ValidLogLevels(), strings.ToLower(c.Logging.Level)) {
		errors = append(errors, ValidationError{
			Field:   "logging.level",
			Value:   c.Logging.Level,
			Message: fmt.Sprintf("must be one of: %s", strings.Join(ValidLogLevels(), ", ")),
		})
	}

	return errors
}

// validateTUI validates the TUIConfig
func (c *Config) validateTUI() []ValidationError {
	var errors []ValidationError

	if c.TUI.RefreshMs < 10 || c.TUI.RefreshMs > 5000 {
		errors = append(errors, ValidationError{
			Field:   "tui.refresh_ms",
			Value:   c.TUI.RefreshMs,
			Message: "must be between 10 and 5000",
		})
	}

	return errors
}
