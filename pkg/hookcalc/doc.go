/*
Package hookcalc provides a calculator whose behavior is extended by plugins
through event hooks.

# Overview

A Calculator holds a single numeric value. Every mutation is surrounded by
events on the calculator's hooks.Hub:

  - valueWillChanged(v) runs before a change. Any falsy result vetoes it.
  - valueChanged(v) runs after every SetValue, with the value actually held
    (the retained value when the change was vetoed).
  - pressedPlus(current, n) and pressedMinus(current, n) announce Plus and Minus.
  - pressed(button) lets plugins contribute named operations: each handler may
    return an Operation, which the calculator applies in order.

# Basic Usage

	type limit struct{ max float64 }

	func (l limit) Apply(r hooks.Registrar) {
	    r.OnFunc(hookcalc.EventValueWillChange, func(ctx context.Context, args ...any) (any, error) {
	        return args[0].(float64) <= l.max, nil
	    })
	}

	calc := hookcalc.New(hookcalc.Config{
	    Plugins: []hookcalc.Plugin{limit{max: 2000}},
	})
	defer calc.Close()

	_ = calc.Plus(ctx, 10)   // 10
	_ = calc.Minus(ctx, 5)   // 5
	_ = calc.Plus(ctx, 2000) // vetoed, still 5

# Operations

Handlers of the pressed event return an Operation (or nil when they do not
recognize the button):

	r.OnFunc(hookcalc.EventPressed, func(ctx context.Context, args ...any) (any, error) {
	    if args[0] == "squared" {
	        return hookcalc.Operation(func(v, _ float64) float64 { return v * v }), nil
	    }
	    return nil, nil
	})

	_ = calc.Press(ctx, "squared")

When several plugins answer the same button, every returned operation runs,
each through its own SetValue and each seeing the value left by the previous.

# Errors

A handler error aborts the running operation and is returned to the caller
wrapped in a *hooks.HandlerError. Events that already fired are not undone.

# Observability

Options attach a slog logger, OpenTelemetry metrics and tracing:

	calc := hookcalc.New(cfg,
	    hookcalc.WithLogger(logger),
	    hookcalc.WithMetrics(observability.NewMetricsRecorder()),
	    hookcalc.WithTracing(true))
*/
package hookcalc
