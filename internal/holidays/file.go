package holidays

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/username/business-days/internal/calendar"
	"github.com/username/business-days/pkg/dateutil"
	"go.uber.org/zap"
)

// FileSource implements Source using a local text file
//
// Format, one rule per line:
//
//	# comment
//	2025-01-01 holiday New Year
//	2025-12-24..2025-12-26 holiday Christmas
//	2025-08-04..2025-08-08 freeday Summer shutdown
//	weekday saturday
type FileSource struct {
	filePath string
	logger   *zap.Logger
}

// NewFileSource creates a new FileSource instance
func NewFileSource(filePath string, logger *zap.Logger) *FileSource {
	return &FileSource{
		filePath: filePath,
		logger:   logger,
	}
}

// Name returns the file path
func (fs *FileSource) Name() string {
	return "file:" + fs.filePath
}

// Load loads the rule file into reg. Rules apply regardless of years.
func (fs *FileSource) Load(ctx context.Context, reg *calendar.Registry, years []int) error {
	file, err := os.Open(fs.filePath)
	if err != nil {
		return fmt.Errorf("failed to open rule file: %w", err)
	}
	defer file.Close()

	rules, err := fs.Parse(file)
	if err != nil {
		return err
	}
	merge(reg, rules)

	fs.logger.Info("Rule file loaded",
		zap.String("file", fs.filePath),
		zap.Int("holidays", len(rules.Holidays())),
		zap.Int("free_days", len(rules.FreeDays())),
		zap.Int("free_weekdays", len(rules.FreeWeekdays())))

	return nil
}

// Parse reads rules from r into a new registry. Malformed lines are logged and
// skipped; an inverted date range fails the whole parse.
func (fs *FileSource) Parse(r io.Reader) (*calendar.Registry, error) {
	reg := calendar.NewRegistry()
	scanner := bufio.NewScanner(r)
	lineNo := 0

	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		parts := strings.Fields(line)
		if len(parts) < 2 {
			fs.logger.Warn("Invalid line format", zap.Int("line", lineNo), zap.String("text", line))
			continue
		}

		if strings.EqualFold(parts[0], "weekday") {
			wd, err := calendar.ParseWeekday(parts[1])
			if err != nil {
				fs.logger.Warn("Failed to parse weekday", zap.Int("line", lineNo), zap.Error(err))
				continue
			}
			reg.AddFreeWeekday(wd)
			continue
		}

		from, to, err := dateutil.ParseRange(parts[0])
		if err != nil {
			fs.logger.Warn("Failed to parse date", zap.Int("line", lineNo), zap.String("date", parts[0]), zap.Error(err))
			continue
		}
		start, end := calendar.DateOf(from, nil), calendar.DateOf(to, nil)

		switch strings.ToLower(parts[1]) {
		case "holiday":
			err = reg.AddHolidayPeriod(start, end)
		case "freeday", "free_day", "free-day":
			err = reg.AddFreeDayPeriod(start, end)
		default:
			fs.logger.Warn("Unknown rule type", zap.Int("line", lineNo), zap.String("type", parts[1]))
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNo, err)
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading rule file: %w", err)
	}

	return reg, nil
}
