package hookcalc_test

import (
	"context"

	"github.com/randalmurphal/hookcalc/pkg/hookcalc"
	"github.com/randalmurphal/hookcalc/pkg/hookcalc/hooks"
)

// limitPlugin vetoes values above max.
type limitPlugin struct {
	max float64
}

func (p limitPlugin) Apply(r hooks.Registrar) {
	r.OnFunc(hookcalc.EventValueWillChange, func(ctx context.Context, args ...any) (any, error) {
		return args[0].(float64) <= p.max, nil
	})
}

// opPlugin answers one button with op.
type opPlugin struct {
	button string
	op     hookcalc.Operation
}

func (p opPlugin) Apply(r hooks.Registrar) {
	r.OnFunc(hookcalc.EventPressed, func(ctx context.Context, args ...any) (any, error) {
		if args[0] == p.button {
			return p.op, nil
		}
		return nil, nil
	})
}

func square(v, _ float64) float64 { return v * v }

// recorder captures the arguments of every trigger of the given events.
type recorder struct {
	events []string
	calls  []recordedCall
}

type recordedCall struct {
	event string
	args  []any
}

func (r *recorder) Apply(reg hooks.Registrar) {
	for _, event := range r.events {
		event := event
		reg.OnFunc(event, func(ctx context.Context, args ...any) (any, error) {
			r.calls = append(r.calls, recordedCall{event: event, args: args})
			return true, nil
		})
	}
}

func (r *recorder) argsOf(event string) [][]any {
	var out [][]any
	for _, c := range r.calls {
		if c.event == event {
			out = append(out, c.args)
		}
	}
	return out
}

// closingPlugin counts Close calls.
type closingPlugin struct {
	closed int
	err    error
}

func (p *closingPlugin) Apply(hooks.Registrar) {}

func (p *closingPlugin) Close() error {
	p.closed++
	return p.err
}
