package dateutil

import (
	"fmt"
	"strings"
	"time"
)

// RangeSeparator separates the bounds of a date range: "2025-12-24..2025-12-26"
const RangeSeparator = ".."

var dateFormats = []string{
	"2006-01-02",
	"02.01.2006",
	"2006-01-02T15:04:05",
	"2006-01-02T15:04:05Z",
	"2006-01-02T15:04:05-0700",
	time.RFC3339,
}

// StartOfDay returns the start of the day (00:00:00) for the given date
func StartOfDay(date time.Time) time.Time {
	return time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
}

// IsSameDay returns true if two dates are on the same day
func IsSameDay(date1, date2 time.Time) bool {
	return date1.Year() == date2.Year() &&
		date1.Month() == date2.Month() &&
		date1.Day() == date2.Day()
}

// ParseDate parses date string in various formats
func ParseDate(dateStr string) (time.Time, error) {
	dateStr = strings.TrimSpace(dateStr)
	for _, format := range dateFormats {
		if t, err := time.Parse(format, dateStr); err == nil {
			return t, nil
		}
	}

	return time.Time{}, fmt.Errorf("unsupported date format: %q", dateStr)
}

// ParseDateIn parses a date and returns the start of that day in loc.
// "today", "tomorrow" and "yesterday" are accepted as well.
func ParseDateIn(dateStr string, loc *time.Location) (time.Time, error) {
	switch strings.ToLower(strings.TrimSpace(dateStr)) {
	case "today":
		return Today(loc), nil
	case "tomorrow":
		return Today(loc).AddDate(0, 0, 1), nil
	case "yesterday":
		return Today(loc).AddDate(0, 0, -1), nil
	}

	t, err := ParseDate(dateStr)
	if err != nil {
		return time.Time{}, err
	}
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc), nil
}

// ParseRange parses "from..to" or a single date (from == to).
// Bounds are not ordered; callers validate them.
func ParseRange(rangeStr string) (from, to time.Time, err error) {
	left, right, isRange := strings.Cut(rangeStr, RangeSeparator)

	from, err = ParseDate(left)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	if !isRange {
		return from, from, nil
	}

	to, err = ParseDate(right)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	return from, to, nil
}

// Today returns today's date (start of day) in loc
func Today(loc *time.Location) time.Time {
	if loc == nil {
		loc = time.Local
	}
	return StartOfDay(time.Now().In(loc))
}
