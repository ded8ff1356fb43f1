package tape_test

import (
	"context"
	"errors"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/randalmurphal/hookcalc/pkg/hookcalc"
	"github.com/randalmurphal/hookcalc/pkg/hookcalc/hooks"
	"github.com/randalmurphal/hookcalc/pkg/hookcalc/tape"
)

var squared = hookcalc.PluginFunc(func(r hooks.Registrar) {
	r.OnFunc(hookcalc.EventPressed, func(_ context.Context, args ...any) (any, error) {
		if args[0] == "squared" {
			return hookcalc.Operation(func(v, _ float64) float64 { return v * v }), nil
		}
		return nil, nil
	})
})

func TestPlugin_RecordsSession(t *testing.T) {
	ctx := context.Background()
	at := time.Date(2024, 5, 1, 9, 30, 0, 0, time.UTC)
	p := tape.New(tape.NewMemoryStore(), tape.WithClock(func() time.Time { return at }))

	calc := hookcalc.New(hookcalc.Config{Plugins: []hookcalc.Plugin{p, squared}})
	defer calc.Close()

	require.NoError(t, calc.Plus(ctx, 10))
	require.NoError(t, calc.Minus(ctx, 5))
	require.NoError(t, calc.Press(ctx, "squared"))

	entries, err := p.Entries(ctx)
	require.NoError(t, err)

	type line struct {
		Kind  tape.Kind
		Args  []any
		Value float64
	}
	var got []line
	for _, e := range entries {
		got = append(got, line{e.Kind, e.Args, e.Value})
		assert.NotEmpty(t, e.ID)
		assert.Equal(t, at, e.RecordedAt)
	}

	assert.Equal(t, []line{
		{tape.KindPlus, []any{0.0, 10.0}, 0},
		{tape.KindResult, []any{10.0}, 10},
		{tape.KindMinus, []any{10.0, 5.0}, 10},
		{tape.KindResult, []any{5.0}, 5},
		{tape.KindPress, []any{"squared"}, 5},
		{tape.KindResult, []any{25.0}, 25},
	}, got)
}

func TestPlugin_RecordsVetoedResult(t *testing.T) {
	ctx := context.Background()
	p := tape.New(tape.NewMemoryStore())
	veto := hookcalc.PluginFunc(func(r hooks.Registrar) {
		r.OnFunc(hookcalc.EventValueWillChange, func(context.Context, ...any) (any, error) {
			return false, nil
		})
	})

	calc := hookcalc.New(hookcalc.Config{InitialValue: 3, Plugins: []hookcalc.Plugin{veto, p}})
	defer calc.Close()

	require.NoError(t, calc.SetValue(ctx, 100))

	entries, err := p.Entries(ctx)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, tape.KindResult, entries[0].Kind)
	assert.Equal(t, 3.0, entries[0].Value)
}

func TestPlugin_StoreFailurePropagates(t *testing.T) {
	p := tape.New(tape.NewMemoryStore())
	calc := hookcalc.New(hookcalc.Config{Plugins: []hookcalc.Plugin{p}})

	require.NoError(t, p.Close())

	err := calc.Plus(context.Background(), 1)
	require.Error(t, err)
	assert.ErrorIs(t, err, tape.ErrStoreClosed)

	var herr *hooks.HandlerError
	require.True(t, errors.As(err, &herr))
	assert.Equal(t, hookcalc.EventPressedPlus, herr.Event)
	assert.Equal(t, "tape.plus", herr.Handler)

	// Plus stopped before the value changed.
	assert.Equal(t, 0.0, calc.Value())
}

func TestPlugin_CalculatorCloseClosesStore(t *testing.T) {
	store, err := tape.NewSQLiteStore(":memory:")
	require.NoError(t, err)

	calc := hookcalc.New(hookcalc.Config{Plugins: []hookcalc.Plugin{tape.New(store)}})
	require.NoError(t, calc.Plus(context.Background(), 2))

	require.NoError(t, calc.Close())
	require.NoError(t, calc.Close())

	_, err = store.List(context.Background())
	assert.ErrorIs(t, err, tape.ErrStoreClosed)
}

func TestPlugin_SQLiteRecordsNonFiniteResults(t *testing.T) {
	ctx := context.Background()
	store, err := tape.NewSQLiteStore(":memory:")
	require.NoError(t, err)
	p := tape.New(store)

	calc := hookcalc.New(hookcalc.Config{InitialValue: 1e200, Plugins: []hookcalc.Plugin{p, squared, squared}})
	defer calc.Close()

	require.NoError(t, calc.Press(ctx, "squared"))
	assert.True(t, math.IsInf(calc.Value(), 1))

	require.NoError(t, calc.SetValue(ctx, math.NaN()))
	assert.True(t, math.IsNaN(calc.Value()))

	entries, err := p.Entries(ctx)
	require.NoError(t, err)
	require.Len(t, entries, 3)

	assert.Equal(t, tape.KindPress, entries[0].Kind)
	assert.Equal(t, []any{"squared"}, entries[0].Args)
	assert.Equal(t, 1e200, entries[0].Value)

	assert.Equal(t, tape.KindResult, entries[1].Kind)
	assert.True(t, math.IsInf(entries[1].Value, 1))
	require.Len(t, entries[1].Args, 1)
	assert.True(t, math.IsInf(entries[1].Args[0].(float64), 1))

	assert.Equal(t, tape.KindResult, entries[2].Kind)
	assert.True(t, math.IsNaN(entries[2].Value))
}
