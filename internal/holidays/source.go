// Package holidays loads non-working-day rules into a calendar registry from
// external sources: country holiday sets, rule files and the isdayoff.ru API.
package holidays

import (
	"context"

	"github.com/username/business-days/internal/calendar"
)

// Source seeds a registry with rules covering the given years.
type Source interface {
	// Name identifies the source in logs
	Name() string

	// Load adds the rules of the source to reg
	Load(ctx context.Context, reg *calendar.Registry, years []int) error
}

// LoadAll loads every source in order and stops at the first failure.
func LoadAll(ctx context.Context, reg *calendar.Registry, years []int, sources ...Source) error {
	for _, src := range sources {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := src.Load(ctx, reg, years); err != nil {
			return err
		}
	}
	return nil
}
