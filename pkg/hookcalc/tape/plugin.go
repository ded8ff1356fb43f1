package tape

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/randalmurphal/hookcalc/pkg/hookcalc"
	"github.com/randalmurphal/hookcalc/pkg/hookcalc/hooks"
)

// Plugin records calculator events to a Store.
//
// Store failures are returned from the handlers, so they surface as
// *hooks.HandlerError from the calculator operation that caused them.
type Plugin struct {
	store  Store
	logger *slog.Logger
	now    func() time.Time

	mu   sync.Mutex
	last float64
}

// Option configures a Plugin.
type Option func(*Plugin)

// WithLogger sets the logger used for debug output.
func WithLogger(logger *slog.Logger) Option {
	return func(p *Plugin) {
		if logger != nil {
			p.logger = logger
		}
	}
}

// WithClock sets the time source for RecordedAt.
func WithClock(now func() time.Time) Option {
	return func(p *Plugin) {
		if now != nil {
			p.now = now
		}
	}
}

// New creates a tape plugin writing to store. The plugin owns the store and
// closes it on Close.
func New(store Store, opts ...Option) *Plugin {
	p := &Plugin{
		store:  store,
		logger: slog.Default(),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Apply implements hookcalc.Plugin.
func (p *Plugin) Apply(r hooks.Registrar) {
	r.On(hookcalc.EventPressedPlus, hooks.Named("tape.plus", func(ctx context.Context, args ...any) (any, error) {
		return nil, p.record(ctx, KindPlus, args, number(args, 0))
	}))
	r.On(hookcalc.EventPressedMinus, hooks.Named("tape.minus", func(ctx context.Context, args ...any) (any, error) {
		return nil, p.record(ctx, KindMinus, args, number(args, 0))
	}))
	r.On(hookcalc.EventPressed, hooks.Named("tape.press", func(ctx context.Context, args ...any) (any, error) {
		p.mu.Lock()
		last := p.last
		p.mu.Unlock()
		return nil, p.record(ctx, KindPress, args, last)
	}))
	r.On(hookcalc.EventValueChanged, hooks.Named("tape.result", func(ctx context.Context, args ...any) (any, error) {
		v := number(args, 0)
		p.mu.Lock()
		p.last = v
		p.mu.Unlock()
		return nil, p.record(ctx, KindResult, args, v)
	}))
}

// Entries returns the recorded tape.
func (p *Plugin) Entries(ctx context.Context) ([]Entry, error) {
	return p.store.List(ctx)
}

// Close closes the underlying store.
func (p *Plugin) Close() error {
	return p.store.Close()
}

func (p *Plugin) record(ctx context.Context, kind Kind, args []any, value float64) error {
	e := Entry{
		ID:         uuid.NewString(),
		Kind:       kind,
		Args:       args,
		Value:      value,
		RecordedAt: p.now().UTC(),
	}
	if err := p.store.Append(ctx, e); err != nil {
		return fmt.Errorf("record %s: %w", kind, err)
	}
	p.logger.Debug("tape entry recorded", "kind", string(kind), "value", value)
	return nil
}

func number(args []any, i int) float64 {
	if i >= len(args) {
		return 0
	}
	v, _ := args[i].(float64)
	return v
}
