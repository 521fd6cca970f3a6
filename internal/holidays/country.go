package holidays

import (
	"context"
	"fmt"
	"sort"
	"strings"

	cal "github.com/rickar/cal/v2"
	"github.com/rickar/cal/v2/de"
	"github.com/rickar/cal/v2/fr"
	"github.com/rickar/cal/v2/gb"
	"github.com/rickar/cal/v2/nl"
	"github.com/rickar/cal/v2/us"
	"github.com/username/business-days/internal/calendar"
	"go.uber.org/zap"
)

var countryHolidays = map[string][]*cal.Holiday{
	"us": us.Holidays,
	"gb": gb.Holidays,
	"de": de.Holidays,
	"fr": fr.Holidays,
	"nl": nl.Holidays,
}

// Countries returns the supported country codes, sorted.
func Countries() []string {
	codes := make([]string, 0, len(countryHolidays))
	for code := range countryHolidays {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	return codes
}

// CountrySource registers the public holidays of a country, on the day they
// are observed.
type CountrySource struct {
	country  string
	holidays []*cal.Holiday
	logger   *zap.Logger
}

// NewCountrySource creates a source for an ISO 3166 alpha-2 country code.
func NewCountrySource(country string, logger *zap.Logger) (*CountrySource, error) {
	code := strings.ToLower(strings.TrimSpace(country))
	holidays, ok := countryHolidays[code]
	if !ok {
		return nil, fmt.Errorf("unsupported holiday country %q (supported: %s)",
			country, strings.Join(Countries(), ", "))
	}

	return &CountrySource{
		country:  code,
		holidays: holidays,
		logger:   logger,
	}, nil
}

// Name returns "country:<code>"
func (cs *CountrySource) Name() string {
	return "country:" + cs.country
}

// Load registers the observed holidays of every year.
func (cs *CountrySource) Load(ctx context.Context, reg *calendar.Registry, years []int) error {
	var dates []calendar.Date

	for _, year := range years {
		for _, h := range cs.holidays {
			_, observed := h.Calc(year)
			if observed.IsZero() {
				continue
			}
			dates = append(dates, calendar.DateOf(observed, nil))
		}
	}

	reg.AddHoliday(dates...)

	cs.logger.Info("Country holidays loaded",
		zap.String("country", cs.country),
		zap.Ints("years", years),
		zap.Int("holidays", len(dates)))

	return nil
}
