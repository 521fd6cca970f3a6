package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	"github.com/username/business-days/internal/calendar"
	"github.com/username/business-days/pkg/dateutil"
)

// EnvPrefix prefixes every environment override, e.g. BUSINESS_DAYS_TIMEZONE.
const EnvPrefix = "BUSINESS_DAYS"

// Config represents application configuration
type Config struct {
	Timezone     string        `mapstructure:"timezone"`
	Locale       string        `mapstructure:"locale"`
	FreeWeekdays []string      `mapstructure:"free_weekdays"`
	Holidays     []string      `mapstructure:"holidays"` // "2025-01-01" or "2025-12-24..2025-12-26"
	FreeDays     []string      `mapstructure:"free_days"`
	Sources      SourcesConfig `mapstructure:"sources"`
	Log          LogConfig     `mapstructure:"log"`
}

// SourcesConfig selects where additional rules are loaded from
type SourcesConfig struct {
	Country  string         `mapstructure:"country"` // rickar/cal country code, e.g. "us"
	File     string         `mapstructure:"file"`    // rule file path
	IsDayOff IsDayOffConfig `mapstructure:"isdayoff"`
	Years    []int          `mapstructure:"years"` // empty: current and next year
}

// IsDayOffConfig represents the isdayoff.ru source configuration
type IsDayOffConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Country  string `mapstructure:"country"`
	CacheTTL string `mapstructure:"cache_ttl"`
}

// LogConfig represents logging configuration
type LogConfig struct {
	File  string `mapstructure:"file"`
	Level string `mapstructure:"level"`
}

// Load loads configuration from file, .env and environment.
// With an empty configPath a missing config file is not an error.
func Load(configPath string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}

	v := viper.New()
	setDefaults(v)

	// Set config file
	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.business-days")
		v.AddConfigPath("/etc/business-days")
	}

	// Read environment variables
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Read config file
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configPath != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	// Validate config
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &config, nil
}

// setDefaults registers every key so that AutomaticEnv can override it
func setDefaults(v *viper.Viper) {
	v.SetDefault("timezone", "UTC")
	v.SetDefault("locale", "en-US")
	v.SetDefault("free_weekdays", []string{})
	v.SetDefault("holidays", []string{})
	v.SetDefault("free_days", []string{})
	v.SetDefault("sources.country", "")
	v.SetDefault("sources.file", "")
	v.SetDefault("sources.isdayoff.enabled", false)
	v.SetDefault("sources.isdayoff.country", "")
	v.SetDefault("sources.isdayoff.cache_ttl", "24h")
	v.SetDefault("sources.years", []int{})
	v.SetDefault("log.file", "")
	v.SetDefault("log.level", "info")
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Timezone == "" {
		return fmt.Errorf("timezone is required")
	}
	if _, err := time.LoadLocation(c.Timezone); err != nil {
		return fmt.Errorf("timezone %q is invalid: %w", c.Timezone, err)
	}

	if len(c.FreeWeekdays) == 0 && c.Locale == "" {
		return fmt.Errorf("locale is required when free_weekdays is empty")
	}
	if _, err := c.Weekdays(); err != nil {
		return err
	}
	if _, err := ParsePeriods(c.Holidays); err != nil {
		return fmt.Errorf("holidays: %w", err)
	}
	if _, err := ParsePeriods(c.FreeDays); err != nil {
		return fmt.Errorf("free_days: %w", err)
	}

	if c.Sources.IsDayOff.CacheTTL != "" {
		if _, err := time.ParseDuration(c.Sources.IsDayOff.CacheTTL); err != nil {
			return fmt.Errorf("sources.isdayoff.cache_ttl is invalid: %w", err)
		}
	}
	for _, year := range c.Sources.Years {
		if year < 1 || year > 9999 {
			return fmt.Errorf("sources.years: year %d is out of range", year)
		}
	}

	return nil
}

// Weekdays parses the configured free weekdays
func (c *Config) Weekdays() ([]time.Weekday, error) {
	days := make([]time.Weekday, 0, len(c.FreeWeekdays))
	for _, s := range c.FreeWeekdays {
		wd, err := calendar.ParseWeekday(s)
		if err != nil {
			return nil, fmt.Errorf("free_weekdays: %w", err)
		}
		days = append(days, wd)
	}
	return days, nil
}

// CalendarOptions converts the configuration into manipulator options
func (c *Config) CalendarOptions() (calendar.Options, error) {
	weekdays, err := c.Weekdays()
	if err != nil {
		return calendar.Options{}, err
	}
	holidays, err := ParsePeriods(c.Holidays)
	if err != nil {
		return calendar.Options{}, fmt.Errorf("holidays: %w", err)
	}
	freeDays, err := ParsePeriods(c.FreeDays)
	if err != nil {
		return calendar.Options{}, fmt.Errorf("free_days: %w", err)
	}

	return calendar.Options{
		Timezone:     c.Timezone,
		Locale:       c.Locale,
		Holidays:     holidays,
		FreeDays:     freeDays,
		FreeWeekdays: weekdays,
	}, nil
}

// GetCacheTTL returns cache TTL duration
func (c *IsDayOffConfig) GetCacheTTL() time.Duration {
	if c.CacheTTL == "" {
		return 24 * time.Hour
	}
	duration, err := time.ParseDuration(c.CacheTTL)
	if err != nil {
		return 24 * time.Hour
	}
	return duration
}

// GetYears returns the years rule sources should cover
func (c *SourcesConfig) GetYears(now time.Time) []int {
	if len(c.Years) > 0 {
		return c.Years
	}
	return []int{now.Year(), now.Year() + 1}
}

// ParsePeriods parses "date" and "from..to" values into periods
func ParsePeriods(values []string) ([]calendar.Period, error) {
	periods := make([]calendar.Period, 0, len(values))
	for _, value := range values {
		from, to, err := dateutil.ParseRange(value)
		if err != nil {
			return nil, err
		}
		p, err := calendar.NewPeriod(calendar.DateOf(from, nil), calendar.DateOf(to, nil))
		if err != nil {
			return nil, err
		}
		periods = append(periods, p)
	}
	return periods, nil
}
