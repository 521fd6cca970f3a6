package calendar

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// DayType represents the type of day
type DayType int

const (
	DayTypeBusinessDay DayType = iota + 1
	DayTypeHoliday
	DayTypeFreeDay
	DayTypeFreeWeekday
)

func (t DayType) String() string {
	switch t {
	case DayTypeBusinessDay:
		return "business_day"
	case DayTypeHoliday:
		return "holiday"
	case DayTypeFreeDay:
		return "free_day"
	case DayTypeFreeWeekday:
		return "free_weekday"
	default:
		return "unknown"
	}
}

// IsBusinessDay reports whether the type is DayTypeBusinessDay.
func (t DayType) IsBusinessDay() bool {
	return t == DayTypeBusinessDay
}

// Strategy controls whether the cursor date counts toward a step count.
type Strategy int

const (
	ExcludeToday Strategy = iota
	IncludeToday
)

func (s Strategy) String() string {
	if s == IncludeToday {
		return "include"
	}
	return "exclude"
}

// Opposite returns the other strategy.
func (s Strategy) Opposite() Strategy {
	if s == IncludeToday {
		return ExcludeToday
	}
	return IncludeToday
}

// ParseStrategy accepts "include"/"exclude" with an optional "_today" suffix.
func ParseStrategy(s string) (Strategy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "include", "include_today", "include-today":
		return IncludeToday, nil
	case "", "exclude", "exclude_today", "exclude-today":
		return ExcludeToday, nil
	}
	return ExcludeToday, fmt.Errorf("unknown strategy %q (want include or exclude)", s)
}

// DayInfo represents information about a specific day
type DayInfo struct {
	Date Date
	Type DayType
}

// MonthInfo represents calendar information for a month
type MonthInfo struct {
	Year         int
	Month        time.Month
	BusinessDays int
	Holidays     int
	FreeDays     int
	FreeWeekdays int
	Days         []DayInfo
}

// Calendar classifies dates.
type Calendar interface {
	// Classify returns the prioritized type of the given date
	Classify(d Date) DayType

	// IsBusinessDay checks if the given date is a business day
	IsBusinessDay(d Date) bool
}

// isoWeekdays maps ISO-8601 day numbers (1 = Monday) to time.Weekday.
var isoWeekdays = [8]time.Weekday{
	1: time.Monday,
	2: time.Tuesday,
	3: time.Wednesday,
	4: time.Thursday,
	5: time.Friday,
	6: time.Saturday,
	7: time.Sunday,
}

// ParseWeekday accepts English names ("saturday", "sat") and ISO numbers 1..7.
func ParseWeekday(s string) (time.Weekday, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if n, err := strconv.Atoi(s); err == nil {
		if n < 1 || n > 7 {
			return 0, fmt.Errorf("weekday number %d out of range 1..7", n)
		}
		return isoWeekdays[n], nil
	}
	for _, wd := range isoWeekdays[1:] {
		name := strings.ToLower(wd.String())
		if s == name || s == name[:3] {
			return wd, nil
		}
	}
	return 0, fmt.Errorf("unknown weekday %q", s)
}
