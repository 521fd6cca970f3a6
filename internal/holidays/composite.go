package holidays

import (
	"context"
	"fmt"

	"github.com/username/business-days/internal/calendar"
	"go.uber.org/zap"
)

// CompositeSource implements Source with fallback strategy
// Primary: usually a remote source (isdayoff.ru)
// Fallback: usually a local rule file
type CompositeSource struct {
	primary  Source
	fallback Source
	logger   *zap.Logger
}

// NewCompositeSource creates a new CompositeSource
func NewCompositeSource(primary, fallback Source, logger *zap.Logger) *CompositeSource {
	return &CompositeSource{
		primary:  primary,
		fallback: fallback,
		logger:   logger,
	}
}

// Name returns "primary|fallback"
func (cs *CompositeSource) Name() string {
	return fmt.Sprintf("%s|%s", cs.primary.Name(), cs.fallback.Name())
}

// Load tries the primary source first. The primary loads into a scratch
// registry so that a partial failure leaves reg untouched.
func (cs *CompositeSource) Load(ctx context.Context, reg *calendar.Registry, years []int) error {
	scratch := calendar.NewRegistry()
	err := cs.primary.Load(ctx, scratch, years)
	if err == nil {
		merge(reg, scratch)
		return nil
	}

	cs.logger.Warn("Primary source failed, falling back",
		zap.String("primary", cs.primary.Name()),
		zap.String("fallback", cs.fallback.Name()),
		zap.Error(err))

	if fallbackErr := cs.fallback.Load(ctx, reg, years); fallbackErr != nil {
		return fmt.Errorf("primary and fallback both failed: primary=%w, fallback=%v", err, fallbackErr)
	}
	return nil
}

func merge(dst, src *calendar.Registry) {
	for _, p := range src.Holidays() {
		if p.Start == p.End {
			dst.AddHoliday(p.Start)
			continue
		}
		// periods in src are already validated
		_ = dst.AddHolidayPeriod(p.Start, p.End)
	}
	for _, p := range src.FreeDays() {
		if p.Start == p.End {
			dst.AddFreeDay(p.Start)
			continue
		}
		_ = dst.AddFreeDayPeriod(p.Start, p.End)
	}
	dst.AddFreeWeekday(src.FreeWeekdays()...)
}
