package holidays

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/username/business-days/internal/calendar"
	"go.uber.org/zap"
)

const (
	isdayoffBaseURL    = "https://isdayoff.ru"
	defaultHTTPTimeout = 10 * time.Second
	defaultCacheTTL    = 24 * time.Hour
)

// IsDayOffSource implements Source using the isdayoff.ru bulk API.
// Non-working days that fall on Monday..Friday are registered as holidays;
// weekends are left to the free-weekday rules.
type IsDayOffSource struct {
	baseURL    string
	country    string
	httpClient *http.Client
	logger     *zap.Logger
	cache      map[string]*cachedMonth
	cacheMu    sync.RWMutex
	cacheTTL   time.Duration
}

type cachedMonth struct {
	holidays  []calendar.Date
	fetchedAt time.Time
}

// NewIsDayOffSource creates a new IsDayOffSource instance.
// An empty country uses the API default (ru).
func NewIsDayOffSource(country string, cacheTTL time.Duration, logger *zap.Logger) *IsDayOffSource {
	if cacheTTL == 0 {
		cacheTTL = defaultCacheTTL
	}

	return &IsDayOffSource{
		baseURL: isdayoffBaseURL,
		country: strings.ToLower(country),
		httpClient: &http.Client{
			Timeout: defaultHTTPTimeout,
		},
		logger:   logger,
		cache:    make(map[string]*cachedMonth),
		cacheTTL: cacheTTL,
	}
}

// WithBaseURL points the source at another API host.
func (s *IsDayOffSource) WithBaseURL(baseURL string) *IsDayOffSource {
	s.baseURL = strings.TrimRight(baseURL, "/")
	return s
}

// Name returns "isdayoff"
func (s *IsDayOffSource) Name() string {
	return "isdayoff"
}

// Load fetches every month of years and registers the holidays.
// Nothing is added to reg unless all months were fetched.
func (s *IsDayOffSource) Load(ctx context.Context, reg *calendar.Registry, years []int) error {
	var all []calendar.Date

	for _, year := range years {
		for month := time.January; month <= time.December; month++ {
			holidays, err := s.MonthHolidays(ctx, year, month)
			if err != nil {
				return err
			}
			all = append(all, holidays...)
		}
	}

	reg.AddHoliday(all...)

	s.logger.Info("Holidays loaded from isdayoff.ru",
		zap.Ints("years", years),
		zap.Int("holidays", len(all)))

	return nil
}

// MonthHolidays returns the weekday holidays of a month, using the cache
func (s *IsDayOffSource) MonthHolidays(ctx context.Context, year int, month time.Month) ([]calendar.Date, error) {
	cacheKey := fmt.Sprintf("%d-%02d", year, month)

	s.cacheMu.RLock()
	if cached, ok := s.cache[cacheKey]; ok {
		if time.Since(cached.fetchedAt) < s.cacheTTL {
			s.cacheMu.RUnlock()
			s.logger.Debug("Using cached month",
				zap.String("month", cacheKey))
			return cached.holidays, nil
		}
	}
	s.cacheMu.RUnlock()

	holidays, err := s.fetchMonth(ctx, year, month)
	if err != nil {
		return nil, err
	}

	s.cacheMu.Lock()
	s.cache[cacheKey] = &cachedMonth{
		holidays:  holidays,
		fetchedAt: time.Now(),
	}
	s.cacheMu.Unlock()

	return holidays, nil
}

// fetchMonth fetches an entire month from the bulk API
func (s *IsDayOffSource) fetchMonth(ctx context.Context, year int, month time.Month) ([]calendar.Date, error) {
	// https://isdayoff.ru/api/getdata?year=2025&month=11&pre=1&cc=ru
	url := fmt.Sprintf("%s/api/getdata?year=%d&month=%d&pre=1", s.baseURL, year, int(month))
	if s.country != "" {
		url += "&cc=" + s.country
	}

	s.logger.Debug("Fetching month from isdayoff.ru",
		zap.String("url", url),
		zap.Int("year", year),
		zap.Int("month", int(month)))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch calendar data: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("API returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	holidays, err := parseBulkResponse(year, month, strings.TrimSpace(string(body)))
	if err != nil {
		return nil, fmt.Errorf("failed to parse bulk response: %w", err)
	}
	return holidays, nil
}

// parseBulkResponse parses isdayoff.ru bulk response string
// Format: "211100011000001100000110000011" where:
// 0 = working day
// 1 = non-working day (holiday/weekend)
// 2 = shortened working day
// 4 = working day (covid-era code, treated as 0)
func parseBulkResponse(year int, month time.Month, data string) ([]calendar.Date, error) {
	daysInMonth := time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()

	if len(data) != daysInMonth {
		return nil, fmt.Errorf("bulk data length mismatch: expected %d, got %d", daysInMonth, len(data))
	}

	var holidays []calendar.Date
	for i, code := range data {
		date := calendar.NewDate(year, month, i+1)

		switch code {
		case '0', '2', '4':
		case '1':
			if wd := date.Weekday(); wd != time.Saturday && wd != time.Sunday {
				holidays = append(holidays, date)
			}
		default:
			return nil, fmt.Errorf("unknown code '%c' at position %d", code, i)
		}
	}

	return holidays, nil
}

// ClearCache clears the cache
func (s *IsDayOffSource) ClearCache() {
	s.cacheMu.Lock()
	defer s.cacheMu.Unlock()

	s.cache = make(map[string]*cachedMonth)
	s.logger.Info("Calendar cache cleared")
}
