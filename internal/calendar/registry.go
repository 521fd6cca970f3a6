package calendar

import (
	"sort"
	"sync"
	"time"
)

// Registry holds the non-working-day rules: holidays, free days and free
// weekdays. Rules can only be added. All methods are safe for concurrent use.
type Registry struct {
	mu sync.RWMutex

	holidays       map[Date]struct{}
	holidayPeriods []Period

	freeDays       map[Date]struct{}
	freeDayPeriods []Period

	freeWeekdays [7]bool // indexed by time.Weekday
}

var _ Calendar = (*Registry)(nil)

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		holidays: make(map[Date]struct{}),
		freeDays: make(map[Date]struct{}),
	}
}

// AddHoliday registers one or more holiday dates.
func (r *Registry) AddHoliday(dates ...Date) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, d := range dates {
		r.holidays[d] = struct{}{}
	}
}

// AddHolidayPeriod registers every date in [from, to] as a holiday.
func (r *Registry) AddHolidayPeriod(from, to Date) error {
	p, err := NewPeriod(from, to)
	if err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.holidayPeriods = appendPeriod(r.holidayPeriods, p)
	return nil
}

// AddFreeDay registers one or more free days.
func (r *Registry) AddFreeDay(dates ...Date) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, d := range dates {
		r.freeDays[d] = struct{}{}
	}
}

// AddFreeDayPeriod registers every date in [from, to] as a free day.
func (r *Registry) AddFreeDayPeriod(from, to Date) error {
	p, err := NewPeriod(from, to)
	if err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.freeDayPeriods = appendPeriod(r.freeDayPeriods, p)
	return nil
}

// AddFreeWeekday registers recurring free days of the week.
func (r *Registry) AddFreeWeekday(days ...time.Weekday) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, wd := range days {
		if wd >= time.Sunday && wd <= time.Saturday {
			r.freeWeekdays[wd] = true
		}
	}
}

// Classify returns the type of d. Holidays win over free days, which win
// over free weekdays.
func (r *Registry) Classify(d Date) DayType {
	r.mu.RLock()
	defer r.mu.RUnlock()

	switch {
	case contains(r.holidays, r.holidayPeriods, d):
		return DayTypeHoliday
	case contains(r.freeDays, r.freeDayPeriods, d):
		return DayTypeFreeDay
	case r.freeWeekdays[d.Weekday()]:
		return DayTypeFreeWeekday
	}
	return DayTypeBusinessDay
}

// IsBusinessDay reports whether d is not covered by any rule.
func (r *Registry) IsBusinessDay(d Date) bool {
	return r.Classify(d).IsBusinessDay()
}

// FreeWeekdays returns the registered free weekdays, Monday first.
func (r *Registry) FreeWeekdays() []time.Weekday {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var days []time.Weekday
	for _, wd := range isoWeekdays[1:] {
		if r.freeWeekdays[wd] {
			days = append(days, wd)
		}
	}
	return days
}

// Holidays returns the registered holiday rules sorted by start date.
// Single dates are returned as one-day periods.
func (r *Registry) Holidays() []Period {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return rules(r.holidays, r.holidayPeriods)
}

// FreeDays returns the registered free-day rules sorted by start date.
func (r *Registry) FreeDays() []Period {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return rules(r.freeDays, r.freeDayPeriods)
}

// MonthInfo summarizes every day of the given month.
func (r *Registry) MonthInfo(year int, month time.Month) *MonthInfo {
	first := NewDate(year, month, 1)
	daysInMonth := time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()

	info := &MonthInfo{
		Year:  year,
		Month: month,
		Days:  make([]DayInfo, 0, daysInMonth),
	}

	for i := 0; i < daysInMonth; i++ {
		d := first.AddDays(i)
		dayType := r.Classify(d)

		switch dayType {
		case DayTypeBusinessDay:
			info.BusinessDays++
		case DayTypeHoliday:
			info.Holidays++
		case DayTypeFreeDay:
			info.FreeDays++
		case DayTypeFreeWeekday:
			info.FreeWeekdays++
		}

		info.Days = append(info.Days, DayInfo{Date: d, Type: dayType})
	}

	return info
}

func contains(points map[Date]struct{}, periods []Period, d Date) bool {
	if _, ok := points[d]; ok {
		return true
	}
	for _, p := range periods {
		if p.Contains(d) {
			return true
		}
	}
	return false
}

// appendPeriod skips exact duplicates so repeated inserts stay idempotent.
func appendPeriod(periods []Period, p Period) []Period {
	for _, existing := range periods {
		if existing == p {
			return periods
		}
	}
	return append(periods, p)
}

func rules(points map[Date]struct{}, periods []Period) []Period {
	result := make([]Period, 0, len(points)+len(periods))
	for d := range points {
		result = append(result, Period{Start: d, End: d})
	}
	result = append(result, periods...)

	sort.Slice(result, func(i, j int) bool {
		if result[i].Start == result[j].Start {
			return result[i].End.Before(result[j].End)
		}
		return result[i].Start.Before(result[j].Start)
	})
	return result
}
