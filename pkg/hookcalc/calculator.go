package hookcalc

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"

	"go.opentelemetry.io/otel/attribute"

	"github.com/randalmurphal/hookcalc/pkg/hookcalc/hooks"
	"github.com/randalmurphal/hookcalc/pkg/hookcalc/observability"
)

// Config is the construction-time configuration of a Calculator.
type Config struct {
	// InitialValue is the starting value. Default: 0.
	InitialValue float64

	// Plugins are applied to the hub in order.
	Plugins []Plugin
}

// Calculator holds a numeric value whose changes are observed, vetoed and
// extended by plugins through a hooks.Hub it owns.
//
// A Calculator is meant to be driven from a single goroutine. Handlers run
// synchronously inside the operation that triggered them.
type Calculator struct {
	id      string
	hub     *hooks.Hub
	plugins []Plugin
	current float64

	logger  *slog.Logger
	metrics observability.MetricsRecorder
	spans   observability.SpanManager

	closeOnce sync.Once
	closeErr  error
}

// New creates a calculator, sets its value to cfg.InitialValue and applies
// every plugin to its hub in order.
func New(cfg Config, opts ...Option) *Calculator {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	logger := observability.EnrichLogger(o.logger, o.id)
	spans := o.spanManager()

	c := &Calculator{
		id:      o.id,
		plugins: append([]Plugin(nil), cfg.Plugins...),
		current: cfg.InitialValue,
		logger:  logger,
		metrics: o.metrics,
		spans:   spans,
		hub: hooks.New(
			hooks.WithLogger(logger),
			hooks.WithMetrics(o.metrics),
			hooks.WithSpans(spans),
		),
	}

	for _, p := range c.plugins {
		if p != nil {
			p.Apply(c.hub)
		}
	}
	return c
}

// ID returns the calculator identifier.
func (c *Calculator) ID() string {
	return c.id
}

// Hooks returns the hub owned by the calculator.
func (c *Calculator) Hooks() *hooks.Hub {
	return c.hub
}

// Value returns the current value.
func (c *Calculator) Value() float64 {
	return c.current
}

// SetValue requests a change to value.
//
// valueWillChanged handlers run first; if any returns a falsy result the
// value is kept. valueChanged then runs with the value held afterwards,
// whether or not the change was applied.
func (c *Calculator) SetValue(ctx context.Context, value float64) (err error) {
	ctx, span := c.spans.StartOperationSpan(orBackground(ctx), "set")
	defer func() { c.spans.EndSpanWithError(span, err) }()

	return c.setValue(ctx, value)
}

func (c *Calculator) setValue(ctx context.Context, value float64) error {
	results, err := c.hub.Trigger(ctx, EventValueWillChange, value)
	if err != nil {
		return err
	}

	if IsVetoed(results) {
		c.metrics.RecordVeto(ctx)
		c.spans.AddSpanEvent(ctx, "vetoed", attribute.Float64("attempted", value))
		observability.LogVeto(c.logger, value, c.current)
	} else {
		previous := c.current
		c.current = value
		c.metrics.RecordValueChange(ctx)
		observability.LogValueChanged(c.logger, previous, c.current)
	}

	_, err = c.hub.Trigger(ctx, EventValueChanged, c.current)
	return err
}

// Plus announces pressedPlus with (current, addend) and then sets the value
// to current+addend.
func (c *Calculator) Plus(ctx context.Context, addend float64) (err error) {
	ctx, span := c.spans.StartOperationSpan(orBackground(ctx), "plus")
	defer func() { c.spans.EndSpanWithError(span, err) }()

	if _, err := c.hub.Trigger(ctx, EventPressedPlus, c.current, addend); err != nil {
		return err
	}
	return c.setValue(ctx, c.current+addend)
}

// Minus announces pressedMinus with (current, subtrahend) and then sets the
// value to current-subtrahend.
func (c *Calculator) Minus(ctx context.Context, subtrahend float64) (err error) {
	ctx, span := c.spans.StartOperationSpan(orBackground(ctx), "minus")
	defer func() { c.spans.EndSpanWithError(span, err) }()

	if _, err := c.hub.Trigger(ctx, EventPressedMinus, c.current, subtrahend); err != nil {
		return err
	}
	return c.setValue(ctx, c.current-subtrahend)
}

// Press triggers pressed with button and applies every Operation returned by
// its handlers, in order. Each operation receives the value left by the
// previous one and the optional arg (0 when omitted), and its result goes
// through SetValue.
//
// Nil and falsy results are skipped. Any other result that is not an
// Operation stops Press with a *NotOperationError.
func (c *Calculator) Press(ctx context.Context, button string, arg ...float64) (err error) {
	ctx, span := c.spans.StartOperationSpan(orBackground(ctx), "press")
	defer func() { c.spans.EndSpanWithError(span, err) }()

	var operand float64
	if len(arg) > 0 {
		operand = arg[0]
	}

	results, err := c.hub.Trigger(ctx, EventPressed, button)
	if err != nil {
		return err
	}

	for i, res := range results {
		if !hooks.Truthy(res) {
			continue
		}
		op, ok := asOperation(res)
		if !ok {
			return &NotOperationError{Button: button, Index: i, Value: res}
		}
		if err := c.setValue(ctx, op(c.current, operand)); err != nil {
			return err
		}
	}
	return nil
}

// Close destroys the hub and closes every plugin that implements io.Closer,
// in reverse order. Calls after the first return the first result.
func (c *Calculator) Close() error {
	c.closeOnce.Do(func() {
		c.hub.Destroy()

		var errs []error
		for i := len(c.plugins) - 1; i >= 0; i-- {
			if closer, ok := c.plugins[i].(io.Closer); ok {
				if err := closer.Close(); err != nil {
					errs = append(errs, err)
				}
			}
		}
		c.closeErr = errors.Join(errs...)
	})
	return c.closeErr
}

// IsVetoed reports whether valueWillChanged results block a change: the
// results must be non-empty and at least one must be falsy.
func IsVetoed(results []any) bool {
	for _, r := range results {
		if !hooks.Truthy(r) {
			return true
		}
	}
	return false
}

func asOperation(v any) (Operation, bool) {
	switch op := v.(type) {
	case Operation:
		return op, true
	case func(current, arg float64) float64:
		return op, true
	}
	return nil, false
}

func orBackground(ctx context.Context) context.Context {
	if ctx == nil {
		return context.Background()
	}
	return ctx
}
