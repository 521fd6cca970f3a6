package calendar

import (
	"errors"
	"time"

	"go.uber.org/zap"
)

// WeekendProvider returns the weekdays considered weekend for a timezone and locale.
type WeekendProvider interface {
	WeekendWeekdays(timezone, locale string) ([]time.Weekday, error)
}

// Options are the construction inputs of a LocalizedManipulator.
type Options struct {
	Timezone     string
	Locale       string
	Holidays     []Period
	FreeDays     []Period
	FreeWeekdays []time.Weekday
}

// LocalizedManipulator is a Manipulator whose free weekdays default to the
// weekend of a locale.
type LocalizedManipulator struct {
	*Manipulator

	timezone string
	locale   string
}

// NewLocalizedManipulator resolves the timezone, seeds a fresh registry from
// opts and, when opts.FreeWeekdays is empty, asks weekends for the locale
// weekend exactly once. Failures are reported as *ConfigurationError.
func NewLocalizedManipulator(opts Options, weekends WeekendProvider, logger *zap.Logger) (*LocalizedManipulator, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	loc, err := time.LoadLocation(opts.Timezone)
	if err != nil {
		return nil, &ConfigurationError{Timezone: opts.Timezone, Locale: opts.Locale, Err: err}
	}

	registry := NewRegistry()
	for _, p := range opts.Holidays {
		if err := registry.AddHolidayPeriod(p.Start, p.End); err != nil {
			return nil, err
		}
	}
	for _, p := range opts.FreeDays {
		if err := registry.AddFreeDayPeriod(p.Start, p.End); err != nil {
			return nil, err
		}
	}

	freeWeekdays := opts.FreeWeekdays
	if len(freeWeekdays) == 0 {
		if weekends == nil {
			return nil, &ConfigurationError{
				Timezone: opts.Timezone,
				Locale:   opts.Locale,
				Err:      errors.New("no free weekdays given and no weekend provider available"),
			}
		}

		freeWeekdays, err = weekends.WeekendWeekdays(opts.Timezone, opts.Locale)
		if err != nil {
			return nil, &ConfigurationError{Timezone: opts.Timezone, Locale: opts.Locale, Err: err}
		}

		logger.Info("Free weekdays resolved from locale",
			zap.String("timezone", opts.Timezone),
			zap.String("locale", opts.Locale),
			zap.Stringers("weekdays", freeWeekdays))
	}
	registry.AddFreeWeekday(freeWeekdays...)

	return &LocalizedManipulator{
		Manipulator: NewManipulator(registry, loc, logger),
		timezone:    opts.Timezone,
		locale:      opts.Locale,
	}, nil
}

// Timezone returns the timezone identifier the manipulator was built with.
func (lm *LocalizedManipulator) Timezone() string {
	return lm.timezone
}

// Locale returns the locale identifier the manipulator was built with.
func (lm *LocalizedManipulator) Locale() string {
	return lm.locale
}
