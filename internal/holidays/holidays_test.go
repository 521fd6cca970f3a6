package holidays

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/username/business-days/internal/calendar"
	"go.uber.org/zap/zaptest"
)

func TestCountrySource_US(t *testing.T) {
	src, err := NewCountrySource("US", zaptest.NewLogger(t))
	require.NoError(t, err)
	assert.Equal(t, "country:us", src.Name())

	reg := calendar.NewRegistry()
	require.NoError(t, src.Load(context.Background(), reg, []int{2024}))

	assert.Equal(t, calendar.DayTypeHoliday, reg.Classify(calendar.NewDate(2024, time.July, 4)))
	assert.Equal(t, calendar.DayTypeHoliday, reg.Classify(calendar.NewDate(2024, time.December, 25)))
	// Thanksgiving 2024: fourth Thursday of November
	assert.Equal(t, calendar.DayTypeHoliday, reg.Classify(calendar.NewDate(2024, time.November, 28)))
	assert.True(t, reg.IsBusinessDay(calendar.NewDate(2024, time.July, 5)))
}

func TestCountrySource_Unsupported(t *testing.T) {
	_, err := NewCountrySource("atlantis", zaptest.NewLogger(t))
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "us")
}

func TestCountries(t *testing.T) {
	assert.Equal(t, []string{"de", "fr", "gb", "nl", "us"}, Countries())
}

const ruleFile = `# company calendar
2024-01-01 holiday New Year
2024-12-24..2024-12-26 holiday Christmas
2024-08-05..2024-08-09 freeday Summer shutdown
2024-05-10 freeday Bridge day
weekday saturday
weekday sun

not-a-date holiday
2024-02-02 birthday Unknown type
lonely
`

func TestFileSource_Parse(t *testing.T) {
	src := NewFileSource("rules.txt", zaptest.NewLogger(t))

	reg, err := src.Parse(strings.NewReader(ruleFile))
	require.NoError(t, err)

	assert.Len(t, reg.Holidays(), 2)
	assert.Len(t, reg.FreeDays(), 2)
	assert.Equal(t, []time.Weekday{time.Saturday, time.Sunday}, reg.FreeWeekdays())

	tests := []struct {
		date calendar.Date
		want calendar.DayType
	}{
		{calendar.NewDate(2024, time.January, 1), calendar.DayTypeHoliday},
		{calendar.NewDate(2024, time.December, 25), calendar.DayTypeHoliday},
		{calendar.NewDate(2024, time.August, 7), calendar.DayTypeFreeDay},
		{calendar.NewDate(2024, time.May, 10), calendar.DayTypeFreeDay},
		{calendar.NewDate(2024, time.May, 11), calendar.DayTypeFreeWeekday},
		{calendar.NewDate(2024, time.February, 2), calendar.DayTypeBusinessDay},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, reg.Classify(tt.date), "Classify(%v)", tt.date)
	}
}

func TestFileSource_ParseInvertedRange(t *testing.T) {
	src := NewFileSource("rules.txt", zaptest.NewLogger(t))

	_, err := src.Parse(strings.NewReader("2024-12-26..2024-12-24 holiday Backwards\n"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, calendar.ErrInvalidDate))
	assert.Contains(t, err.Error(), "line 1")
}

func TestFileSource_Load(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rules.txt")
	require.NoError(t, os.WriteFile(path, []byte(ruleFile), 0o644))

	reg := calendar.NewRegistry()
	reg.AddHoliday(calendar.NewDate(2024, time.July, 14))

	src := NewFileSource(path, zaptest.NewLogger(t))
	require.NoError(t, src.Load(context.Background(), reg, nil))

	assert.Len(t, reg.Holidays(), 3)
	assert.Equal(t, calendar.DayTypeFreeDay, reg.Classify(calendar.NewDate(2024, time.August, 5)))
}

func TestFileSource_LoadMissingFile(t *testing.T) {
	src := NewFileSource(filepath.Join(t.TempDir(), "missing.txt"), zaptest.NewLogger(t))

	err := src.Load(context.Background(), calendar.NewRegistry(), nil)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

type failingSource struct{}

func (failingSource) Name() string { return "failing" }

func (failingSource) Load(ctx context.Context, reg *calendar.Registry, years []int) error {
	reg.AddHoliday(calendar.NewDate(2024, time.March, 1))
	return errors.New("service unavailable")
}

func TestCompositeSource_FallsBack(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rules.txt")
	require.NoError(t, os.WriteFile(path, []byte("2024-06-03 holiday Fallback\n"), 0o644))

	src := NewCompositeSource(failingSource{}, NewFileSource(path, zaptest.NewLogger(t)), zaptest.NewLogger(t))
	assert.Equal(t, "failing|file:"+path, src.Name())

	reg := calendar.NewRegistry()
	require.NoError(t, src.Load(context.Background(), reg, []int{2024}))

	// partial writes of the failed primary are discarded
	assert.True(t, reg.IsBusinessDay(calendar.NewDate(2024, time.March, 1)))
	assert.Equal(t, calendar.DayTypeHoliday, reg.Classify(calendar.NewDate(2024, time.June, 3)))
}

func TestCompositeSource_BothFail(t *testing.T) {
	fallback := NewFileSource(filepath.Join(t.TempDir(), "missing.txt"), zaptest.NewLogger(t))
	src := NewCompositeSource(failingSource{}, fallback, zaptest.NewLogger(t))

	err := src.Load(context.Background(), calendar.NewRegistry(), []int{2024})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "primary and fallback both failed")
}

func TestCompositeSource_PrimaryWins(t *testing.T) {
	primary, err := NewCountrySource("gb", zaptest.NewLogger(t))
	require.NoError(t, err)

	src := NewCompositeSource(primary, failingSource{}, zaptest.NewLogger(t))
	reg := calendar.NewRegistry()
	require.NoError(t, src.Load(context.Background(), reg, []int{2024}))

	assert.Equal(t, calendar.DayTypeHoliday, reg.Classify(calendar.NewDate(2024, time.December, 25)))
	assert.True(t, reg.IsBusinessDay(calendar.NewDate(2024, time.March, 1)))
}

func TestLoadAll_StopsOnCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := LoadAll(ctx, calendar.NewRegistry(), []int{2024}, failingSource{})
	assert.ErrorIs(t, err, context.Canceled)
}
