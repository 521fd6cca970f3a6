package main

import (
	"context"
	"fmt"
	"os"
	"time"
	_ "time/tzdata"

	"github.com/spf13/cobra"
	"github.com/username/business-days/internal/calendar"
	"github.com/username/business-days/internal/config"
	"github.com/username/business-days/internal/holidays"
	"github.com/username/business-days/internal/locale"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

var (
	configPath string
	cfg        *config.Config
	logger     = zap.NewNop()
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "business-days",
		Short:         "Business day calculator",
		Long:          "Add and subtract business days, classify dates and count working days using holidays, free days and locale weekends",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			var err error
			cfg, err = config.Load(configPath)
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}

			if cfg.Log.File != "" {
				logger, err = initFileLogger(cfg.Log.File, cfg.Log.Level)
				if err != nil {
					logger = initLogger(cfg.Log.Level) // Fallback to console
				}
			} else {
				logger = initLogger(cfg.Log.Level)
			}
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			_ = logger.Sync()
		},
	}

	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Config file path (default: config.yaml in ., $HOME/.business-days, /etc/business-days)")

	rootCmd.AddCommand(addCmd())
	rootCmd.AddCommand(subCmd())
	rootCmd.AddCommand(classifyCmd())
	rootCmd.AddCommand(rangeCmd())
	rootCmd.AddCommand(monthCmd())
	rootCmd.AddCommand(weekendCmd())

	return rootCmd
}

// initializeManipulator builds the manipulator from config and loads every
// configured rule source into its registry.
func initializeManipulator(ctx context.Context, cfg *config.Config) (*calendar.LocalizedManipulator, error) {
	opts, err := cfg.CalendarOptions()
	if err != nil {
		return nil, fmt.Errorf("invalid calendar options: %w", err)
	}

	m, err := calendar.NewLocalizedManipulator(opts, locale.NewCLDRWeekends(), logger)
	if err != nil {
		return nil, err
	}

	sources, err := buildSources(cfg)
	if err != nil {
		return nil, err
	}
	if len(sources) > 0 {
		years := cfg.Sources.GetYears(time.Now().In(m.Location()))
		if err := holidays.LoadAll(ctx, m.Registry(), years, sources...); err != nil {
			return nil, fmt.Errorf("failed to load holidays: %w", err)
		}
	}

	return m, nil
}

// buildSources returns the configured rule sources. When isdayoff.ru is
// enabled the last local source becomes its fallback.
func buildSources(cfg *config.Config) ([]holidays.Source, error) {
	var local []holidays.Source

	if cfg.Sources.Country != "" {
		src, err := holidays.NewCountrySource(cfg.Sources.Country, logger)
		if err != nil {
			return nil, err
		}
		local = append(local, src)
	}
	if cfg.Sources.File != "" {
		local = append(local, holidays.NewFileSource(cfg.Sources.File, logger))
	}

	if !cfg.Sources.IsDayOff.Enabled {
		return local, nil
	}

	logger.Info("Using isdayoff.ru calendar API")
	var remote holidays.Source = holidays.NewIsDayOffSource(
		cfg.Sources.IsDayOff.Country,
		cfg.Sources.IsDayOff.GetCacheTTL(),
		logger,
	)
	if len(local) > 0 {
		fallback := local[len(local)-1]
		local = local[:len(local)-1]
		remote = holidays.NewCompositeSource(remote, fallback, logger)
	}

	return append(local, remote), nil
}

func initLogger(level string) *zap.Logger {
	config := zap.NewProductionConfig()
	config.EncoderConfig.TimeKey = "timestamp"
	config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	var zapLevel zapcore.Level
	if err := zapLevel.UnmarshalText([]byte(level)); err != nil {
		zapLevel = zapcore.InfoLevel
	}
	config.Level = zap.NewAtomicLevelAt(zapLevel)

	logger, err := config.Build()
	if err != nil {
		panic(fmt.Sprintf("failed to initialize logger: %v", err))
	}
	return logger
}

func initFileLogger(logFile string, level string) (*zap.Logger, error) {
	// Setup lumberjack for log rotation
	logWriter := &lumberjack.Logger{
		Filename:   logFile,
		MaxSize:    10,   // MB
		MaxBackups: 3,    // Keep max 3 old log files
		MaxAge:     28,   // days
		Compress:   true, // Compress old logs with gzip
	}

	// Setup encoder
	encoderConfig := zap.NewProductionEncoderConfig()
	encoderConfig.TimeKey = "timestamp"
	encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	// Parse log level
	var zapLevel zapcore.Level
	if err := zapLevel.UnmarshalText([]byte(level)); err != nil {
		zapLevel = zapcore.InfoLevel
	}

	core := zapcore.NewCore(
		zapcore.NewJSONEncoder(encoderConfig),
		zapcore.AddSync(logWriter),
		zapLevel,
	)

	return zap.New(core), nil
}
