package plugins

import (
	"context"
	"math"

	"github.com/randalmurphal/hookcalc/pkg/hookcalc"
	"github.com/randalmurphal/hookcalc/pkg/hookcalc/hooks"
)

// Button names understood by Operators and Squared.
const (
	ButtonSquared  = "squared"
	ButtonMultiply = "multiply"
	ButtonDivide   = "divide"
	ButtonSqrt     = "sqrt"
	ButtonNegate   = "negate"
)

var operations = map[string]hookcalc.Operation{
	ButtonSquared: func(v, _ float64) float64 { return v * v },
	ButtonMultiply: func(v, arg float64) float64 {
		return v * arg
	},
	// Division by zero leaves the value unchanged.
	ButtonDivide: func(v, arg float64) float64 {
		if arg == 0 {
			return v
		}
		return v / arg
	},
	ButtonSqrt: func(v, _ float64) float64 {
		if v < 0 {
			return v
		}
		return math.Sqrt(v)
	},
	ButtonNegate: func(v, _ float64) float64 { return -v },
}

// Operators contributes the squared, multiply, divide, sqrt and negate
// buttons. Other buttons yield no operation.
type Operators struct{}

// Apply implements hookcalc.Plugin.
func (Operators) Apply(r hooks.Registrar) {
	r.On(hookcalc.EventPressed, hooks.Named("operators", func(_ context.Context, args ...any) (any, error) {
		if op, ok := operations[str(args, 0)]; ok {
			return op, nil
		}
		return nil, nil
	}))
}

// Squared contributes only the squared button.
type Squared struct{}

// Apply implements hookcalc.Plugin.
func (Squared) Apply(r hooks.Registrar) {
	r.On(hookcalc.EventPressed, hooks.Named("squared", func(_ context.Context, args ...any) (any, error) {
		if str(args, 0) == ButtonSquared {
			return operations[ButtonSquared], nil
		}
		return nil, nil
	}))
}
