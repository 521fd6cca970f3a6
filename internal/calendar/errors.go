package calendar

import (
	"errors"
	"fmt"
)

// Sentinel errors, match with errors.Is.
var (
	// ErrConfiguration is returned when a manipulator cannot be built:
	// unknown timezone or locale, or no weekend provider available.
	ErrConfiguration = errors.New("configuration error")

	// ErrRangeNotConfigured is returned by range operations invoked before
	// both the start and the end date are set.
	ErrRangeNotConfigured = errors.New("range not configured: start and end dates are required")

	// ErrInvalidDate is returned for a date range whose end is before its start.
	ErrInvalidDate = errors.New("invalid date range: end before start")
)

// ConfigurationError carries the construction inputs that failed.
type ConfigurationError struct {
	Timezone string
	Locale   string
	Err      error
}

func (e *ConfigurationError) Error() string {
	switch {
	case e.Locale != "":
		return fmt.Sprintf("configuration error (timezone %q, locale %q): %v", e.Timezone, e.Locale, e.Err)
	default:
		return fmt.Sprintf("configuration error (timezone %q): %v", e.Timezone, e.Err)
	}
}

// Is makes errors.Is(err, ErrConfiguration) succeed while Unwrap still
// exposes the underlying cause.
func (e *ConfigurationError) Is(target error) bool {
	return target == ErrConfiguration
}

func (e *ConfigurationError) Unwrap() error {
	return e.Err
}

// InvalidPeriodError provides the offending bounds of an inverted range.
type InvalidPeriodError struct {
	From Date
	To   Date
}

func (e *InvalidPeriodError) Error() string {
	return fmt.Sprintf("invalid date range %s..%s: end before start", e.From, e.To)
}

func (e *InvalidPeriodError) Unwrap() error {
	return ErrInvalidDate
}
