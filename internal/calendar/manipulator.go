package calendar

import (
	"time"

	"go.uber.org/zap"
)

// Manipulator moves a cursor date by business days and answers range
// questions between a start and an end date.
//
// The registry is shared; the cursor is not synchronized, so a Manipulator
// must not be used from several goroutines at once.
type Manipulator struct {
	registry *Registry
	location *time.Location
	logger   *zap.Logger

	cursor Date
	start  *Date
	end    *Date
}

// NewManipulator creates a manipulator over registry. All time.Time inputs are
// normalized to loc (UTC when nil). The cursor starts on today's date in loc.
func NewManipulator(registry *Registry, loc *time.Location, logger *zap.Logger) *Manipulator {
	if registry == nil {
		registry = NewRegistry()
	}
	if loc == nil {
		loc = time.UTC
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Manipulator{
		registry: registry,
		location: loc,
		logger:   logger,
		cursor:   DateOf(time.Now(), loc),
	}
}

// Registry returns the rule registry used by the manipulator.
func (m *Manipulator) Registry() *Registry {
	return m.registry
}

// Location returns the timezone used to normalize dates.
func (m *Manipulator) Location() *time.Location {
	return m.location
}

// SetStartDate moves the cursor to t and sets the start of the range.
func (m *Manipulator) SetStartDate(t time.Time) *Manipulator {
	d := DateOf(t, m.location)
	m.cursor = d
	m.start = &d
	return m
}

// SetEndDate sets the end of the range. The cursor is left untouched.
func (m *Manipulator) SetEndDate(t time.Time) *Manipulator {
	d := DateOf(t, m.location)
	m.end = &d
	return m
}

// AddHoliday registers holiday dates, normalized to the manipulator timezone.
func (m *Manipulator) AddHoliday(dates ...time.Time) *Manipulator {
	m.registry.AddHoliday(m.normalize(dates)...)
	return m
}

// AddHolidayPeriod registers the holidays from..to inclusive.
func (m *Manipulator) AddHolidayPeriod(from, to time.Time) error {
	return m.registry.AddHolidayPeriod(DateOf(from, m.location), DateOf(to, m.location))
}

// AddFreeDay registers free days, normalized to the manipulator timezone.
func (m *Manipulator) AddFreeDay(dates ...time.Time) *Manipulator {
	m.registry.AddFreeDay(m.normalize(dates)...)
	return m
}

// AddFreeDayPeriod registers the free days from..to inclusive.
func (m *Manipulator) AddFreeDayPeriod(from, to time.Time) error {
	return m.registry.AddFreeDayPeriod(DateOf(from, m.location), DateOf(to, m.location))
}

// AddFreeWeekDays registers recurring free weekdays.
func (m *Manipulator) AddFreeWeekDays(days ...time.Weekday) *Manipulator {
	m.registry.AddFreeWeekday(days...)
	return m
}

// AddBusinessDays moves the cursor by n business days, forward for positive n
// and backward for negative n, and returns the new cursor.
//
// With ExcludeToday the cursor date never counts. With IncludeToday a cursor
// that is itself a business day counts as the first of the |n| days.
//
// For n == 0, IncludeToday keeps a business-day cursor in place and rolls a
// non-working cursor forward to the next business day; ExcludeToday always
// moves to the next business day strictly after the cursor.
//
// When all seven weekdays are free the cursor is left unchanged.
func (m *Manipulator) AddBusinessDays(n int, strategy Strategy) Date {
	from := m.cursor

	// no date can ever be a business day
	if len(m.registry.FreeWeekdays()) == 7 {
		m.logger.Warn("Every weekday is free, cursor not moved",
			zap.Int("days", n),
			zap.Stringer("cursor", m.cursor))
		return m.cursor
	}

	step, remaining := 1, n
	if n < 0 {
		step, remaining = -1, -n
	}

	if n == 0 {
		if strategy == IncludeToday && m.registry.IsBusinessDay(m.cursor) {
			return m.cursor
		}
		remaining = 1
	} else if strategy == IncludeToday && m.registry.IsBusinessDay(m.cursor) {
		remaining--
	}

	for remaining > 0 {
		m.cursor = m.cursor.AddDays(step)
		if m.registry.IsBusinessDay(m.cursor) {
			remaining--
		}
	}

	m.logger.Debug("Moved cursor by business days",
		zap.Int("days", n),
		zap.Stringer("strategy", strategy),
		zap.Stringer("from", from),
		zap.Stringer("to", m.cursor))

	return m.cursor
}

// SubBusinessDays moves the cursor back by n business days.
func (m *Manipulator) SubBusinessDays(n int, strategy Strategy) Date {
	return m.AddBusinessDays(-n, strategy)
}

// Date returns the cursor.
func (m *Manipulator) Date() Date {
	return m.cursor
}

// IsBusinessDay checks if t, in the manipulator timezone, is a business day
func (m *Manipulator) IsBusinessDay(t time.Time) bool {
	return m.registry.IsBusinessDay(DateOf(t, m.location))
}

// TypeOfDay classifies t in the manipulator timezone.
func (m *Manipulator) TypeOfDay(t time.Time) DayType {
	return m.registry.Classify(DateOf(t, m.location))
}

// Range returns the configured [start, end] period. The period may be
// inverted; range operations treat an inverted period as empty.
func (m *Manipulator) Range() (Period, error) {
	if m.start == nil || m.end == nil {
		return Period{}, ErrRangeNotConfigured
	}
	return Period{Start: *m.start, End: *m.end}, nil
}

// BusinessDays counts the business days in the range, bounds included.
func (m *Manipulator) BusinessDays() (int, error) {
	days, err := m.collect(true)
	if err != nil {
		return 0, err
	}
	return len(days), nil
}

// BusinessDaysDate lists the business days in the range in ascending order.
func (m *Manipulator) BusinessDaysDate() ([]Date, error) {
	return m.collect(true)
}

// NonWorkingDays lists the holidays, free days and free weekdays in the
// range in ascending order.
func (m *Manipulator) NonWorkingDays() ([]Date, error) {
	return m.collect(false)
}

func (m *Manipulator) collect(business bool) ([]Date, error) {
	period, err := m.Range()
	if err != nil {
		return nil, err
	}

	days := make([]Date, 0, period.Days())
	for d := period.Start; !d.After(period.End); d = d.AddDays(1) {
		if m.registry.IsBusinessDay(d) == business {
			days = append(days, d)
		}
	}
	return days, nil
}

func (m *Manipulator) normalize(times []time.Time) []Date {
	dates := make([]Date, len(times))
	for i, t := range times {
		dates[i] = DateOf(t, m.location)
	}
	return dates
}
