package main

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/randalmurphal/hookcalc/pkg/hookcalc"
)

var errBadOp = errors.New("invalid operation")

type opKind string

const (
	opPlus  opKind = "plus"
	opMinus opKind = "minus"
	opSet   opKind = "set"
	opPress opKind = "press"
)

// op is one command-line operation: plus:N, minus:N, set:N or
// press:NAME[:ARG].
type op struct {
	kind   opKind
	button string
	arg    float64
	hasArg bool
}

func (o op) String() string {
	switch {
	case o.kind == opPress && o.hasArg:
		return fmt.Sprintf("press:%s:%g", o.button, o.arg)
	case o.kind == opPress:
		return "press:" + o.button
	}
	return fmt.Sprintf("%s:%g", o.kind, o.arg)
}

func parseOps(args []string) ([]op, error) {
	ops := make([]op, 0, len(args))
	for _, a := range args {
		o, err := parseOp(a)
		if err != nil {
			return nil, err
		}
		ops = append(ops, o)
	}
	return ops, nil
}

func parseOp(s string) (op, error) {
	parts := strings.Split(s, ":")
	kind := opKind(parts[0])

	switch kind {
	case opPlus, opMinus, opSet:
		if len(parts) != 2 {
			return op{}, fmt.Errorf("%w %q: want %s:N", errBadOp, s, kind)
		}
		n, err := strconv.ParseFloat(parts[1], 64)
		if err != nil {
			return op{}, fmt.Errorf("%w %q: %v", errBadOp, s, err)
		}
		return op{kind: kind, arg: n}, nil

	case opPress:
		if len(parts) < 2 || len(parts) > 3 || parts[1] == "" {
			return op{}, fmt.Errorf("%w %q: want press:NAME[:ARG]", errBadOp, s)
		}
		o := op{kind: opPress, button: parts[1]}
		if len(parts) == 3 {
			n, err := strconv.ParseFloat(parts[2], 64)
			if err != nil {
				return op{}, fmt.Errorf("%w %q: %v", errBadOp, s, err)
			}
			o.arg, o.hasArg = n, true
		}
		return o, nil
	}
	return op{}, fmt.Errorf("%w %q: unknown kind %q", errBadOp, s, parts[0])
}

func (o op) apply(ctx context.Context, c *hookcalc.Calculator) error {
	switch o.kind {
	case opPlus:
		return c.Plus(ctx, o.arg)
	case opMinus:
		return c.Minus(ctx, o.arg)
	case opSet:
		return c.SetValue(ctx, o.arg)
	case opPress:
		if o.hasArg {
			return c.Press(ctx, o.button, o.arg)
		}
		return c.Press(ctx, o.button)
	}
	return fmt.Errorf("%w: %s", errBadOp, o.kind)
}
