package plugins

import (
	"context"
	"log/slog"
	"strconv"

	"github.com/randalmurphal/hookcalc/pkg/hookcalc"
	"github.com/randalmurphal/hookcalc/pkg/hookcalc/hooks"
)

// Log prints every plus and minus as "a + b" / "a - b" and every result as
// "result: v".
type Log struct {
	// Logger receives the lines. Nil uses slog.Default().
	Logger *slog.Logger

	// Digits is the number of significant digits printed. Zero prints the
	// shortest exact representation.
	Digits int
}

// Apply implements hookcalc.Plugin.
func (p Log) Apply(r hooks.Registrar) {
	logger := p.Logger
	if logger == nil {
		logger = slog.Default()
	}

	digits := -1
	if p.Digits > 0 {
		digits = p.Digits
	}
	format := func(v float64) string {
		return strconv.FormatFloat(v, 'g', digits, 64)
	}

	r.On(hookcalc.EventPressedPlus, hooks.Named("log.plus", func(ctx context.Context, args ...any) (any, error) {
		logger.InfoContext(ctx, format(number(args, 0))+" + "+format(number(args, 1)))
		return nil, nil
	}))
	r.On(hookcalc.EventPressedMinus, hooks.Named("log.minus", func(ctx context.Context, args ...any) (any, error) {
		logger.InfoContext(ctx, format(number(args, 0))+" - "+format(number(args, 1)))
		return nil, nil
	}))
	r.On(hookcalc.EventValueChanged, hooks.Named("log.result", func(ctx context.Context, args ...any) (any, error) {
		logger.InfoContext(ctx, "result: "+format(number(args, 0)))
		return nil, nil
	}))
}
