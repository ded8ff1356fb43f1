package plugins

import (
	"context"
	"log/slog"

	"github.com/randalmurphal/hookcalc/pkg/hookcalc"
	"github.com/randalmurphal/hookcalc/pkg/hookcalc/hooks"
)

// DefaultLimit is the maximum used when a limit plugin is built without one.
const DefaultLimit = 2000

// Limit vetoes value changes outside a range. Values equal to a bound are
// allowed.
type Limit struct {
	// Max is the largest accepted value.
	Max float64

	// Min is the smallest accepted value. Only checked when HasMin is set.
	Min    float64
	HasMin bool

	// Logger receives veto messages. Nil uses slog.Default().
	Logger *slog.Logger
}

// Apply implements hookcalc.Plugin.
func (p Limit) Apply(r hooks.Registrar) {
	logger := p.Logger
	if logger == nil {
		logger = slog.Default()
	}

	r.On(hookcalc.EventValueWillChange, hooks.Named("limit", func(ctx context.Context, args ...any) (any, error) {
		v := number(args, 0)
		switch {
		case v > p.Max:
			logger.InfoContext(ctx, "result is too large", "value", v, "max", p.Max)
			return false, nil
		case p.HasMin && v < p.Min:
			logger.InfoContext(ctx, "result is too small", "value", v, "min", p.Min)
			return false, nil
		}
		return true, nil
	}))
}
