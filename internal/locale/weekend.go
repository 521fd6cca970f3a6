// Package locale resolves which weekdays a locale treats as weekend.
//
// Weekend data follows the CLDR supplemental weekData (weekendStart and
// weekendEnd per territory). Territories not listed use the world default,
// Saturday to Sunday.
package locale

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"golang.org/x/text/language"
)

// ErrUnknownLocale is returned when a locale identifier cannot be parsed.
var ErrUnknownLocale = errors.New("unknown locale")

type weekend struct {
	start time.Weekday
	end   time.Weekday
}

var defaultWeekend = weekend{start: time.Saturday, end: time.Sunday}

// weekends lists the CLDR territories whose weekend differs from the default.
var weekends = map[string]weekend{
	"AF": {time.Thursday, time.Friday},
	"IR": {time.Friday, time.Friday},

	"AE": {time.Friday, time.Saturday},
	"BH": {time.Friday, time.Saturday},
	"DZ": {time.Friday, time.Saturday},
	"EG": {time.Friday, time.Saturday},
	"IL": {time.Friday, time.Saturday},
	"IQ": {time.Friday, time.Saturday},
	"JO": {time.Friday, time.Saturday},
	"KW": {time.Friday, time.Saturday},
	"LY": {time.Friday, time.Saturday},
	"OM": {time.Friday, time.Saturday},
	"QA": {time.Friday, time.Saturday},
	"SA": {time.Friday, time.Saturday},
	"SD": {time.Friday, time.Saturday},
	"SY": {time.Friday, time.Saturday},
	"YE": {time.Friday, time.Saturday},

	"IN": {time.Sunday, time.Sunday},
	"UG": {time.Sunday, time.Sunday},
}

// CLDRWeekends implements calendar.WeekendProvider from built-in CLDR data.
type CLDRWeekends struct{}

// NewCLDRWeekends creates a CLDR-backed weekend provider.
func NewCLDRWeekends() *CLDRWeekends {
	return &CLDRWeekends{}
}

// WeekendWeekdays returns the weekend days of locale, Monday first.
// The timezone must be a valid IANA identifier; it does not change the result.
func (c *CLDRWeekends) WeekendWeekdays(timezone, locale string) ([]time.Weekday, error) {
	if _, err := time.LoadLocation(timezone); err != nil {
		return nil, fmt.Errorf("unknown timezone %q: %w", timezone, err)
	}

	region, err := Region(locale)
	if err != nil {
		return nil, err
	}

	w, ok := weekends[region]
	if !ok {
		w = defaultWeekend
	}
	return w.days(), nil
}

// Region returns the ISO 3166 territory of a locale such as "fr_FR", "ar-SA"
// or "de". A locale without an explicit territory gets its most likely one.
func Region(locale string) (string, error) {
	locale = strings.ReplaceAll(strings.TrimSpace(locale), "_", "-")
	if locale == "" {
		return "", fmt.Errorf("%w: empty identifier", ErrUnknownLocale)
	}

	tag, err := language.Parse(locale)
	if err != nil {
		return "", fmt.Errorf("%w %q: %v", ErrUnknownLocale, locale, err)
	}

	region, confidence := tag.Region()
	if confidence == language.No {
		return "", fmt.Errorf("%w %q: no territory", ErrUnknownLocale, locale)
	}
	return region.String(), nil
}

// days expands start..end, wrapping around Sunday, in ISO order.
func (w weekend) days() []time.Weekday {
	var set [7]bool
	for wd := w.start; ; wd = (wd + 1) % 7 {
		set[wd] = true
		if wd == w.end {
			break
		}
	}

	var days []time.Weekday
	for _, wd := range []time.Weekday{
		time.Monday, time.Tuesday, time.Wednesday, time.Thursday,
		time.Friday, time.Saturday, time.Sunday,
	} {
		if set[wd] {
			days = append(days, wd)
		}
	}
	return days
}

// Static is a weekend provider that always returns the same days.
type Static []time.Weekday

// WeekendWeekdays returns the configured days regardless of the arguments.
func (s Static) WeekendWeekdays(timezone, locale string) ([]time.Weekday, error) {
	if len(s) == 0 {
		return nil, errors.New("static weekend provider has no days")
	}
	return append([]time.Weekday(nil), s...), nil
}
