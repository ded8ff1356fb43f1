package tape_test

import (
	"context"
	"math"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/randalmurphal/hookcalc/pkg/hookcalc/tape"
)

// storeFactories runs every Store test against each implementation.
func storeFactories(t *testing.T) map[string]func() tape.Store {
	t.Helper()
	return map[string]func() tape.Store{
		"memory": func() tape.Store { return tape.NewMemoryStore() },
		"sqlite": func() tape.Store {
			s, err := tape.NewSQLiteStore(":memory:")
			require.NoError(t, err)
			return s
		},
	}
}

func entry(id string, kind tape.Kind, value float64, args ...any) tape.Entry {
	return tape.Entry{
		ID:         id,
		Kind:       kind,
		Args:       args,
		Value:      value,
		RecordedAt: time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC),
	}
}

func TestStore_AppendAndList(t *testing.T) {
	ctx := context.Background()
	for name, newStore := range storeFactories(t) {
		t.Run(name, func(t *testing.T) {
			s := newStore()
			defer s.Close()

			require.NoError(t, s.Append(ctx, entry("a", tape.KindPlus, 0, 0.0, 10.0)))
			require.NoError(t, s.Append(ctx, entry("b", tape.KindResult, 10, 10.0)))
			require.NoError(t, s.Append(ctx, entry("c", tape.KindPress, 10, "squared")))

			got, err := s.List(ctx)
			require.NoError(t, err)
			require.Len(t, got, 3)

			assert.Equal(t, int64(1), got[0].Seq)
			assert.Equal(t, "a", got[0].ID)
			assert.Equal(t, tape.KindPlus, got[0].Kind)
			assert.Equal(t, []any{0.0, 10.0}, got[0].Args)
			assert.True(t, got[0].RecordedAt.Equal(time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)))

			assert.Equal(t, int64(2), got[1].Seq)
			assert.Equal(t, 10.0, got[1].Value)

			assert.Equal(t, int64(3), got[2].Seq)
			assert.Equal(t, []any{"squared"}, got[2].Args)
		})
	}
}

func TestStore_NonFiniteValues(t *testing.T) {
	ctx := context.Background()
	for name, newStore := range storeFactories(t) {
		t.Run(name, func(t *testing.T) {
			s := newStore()
			defer s.Close()

			require.NoError(t, s.Append(ctx, entry("inf", tape.KindResult, math.Inf(1), math.Inf(1), math.Inf(-1), math.NaN())))
			require.NoError(t, s.Append(ctx, entry("nan", tape.KindResult, math.NaN(), math.NaN())))
			require.NoError(t, s.Append(ctx, entry("neg", tape.KindPlus, math.Inf(-1), "squared", nil)))

			got, err := s.List(ctx)
			require.NoError(t, err)
			require.Len(t, got, 3)

			assert.True(t, math.IsInf(got[0].Value, 1))
			require.Len(t, got[0].Args, 3)
			assert.True(t, math.IsInf(got[0].Args[0].(float64), 1))
			assert.True(t, math.IsInf(got[0].Args[1].(float64), -1))
			assert.True(t, math.IsNaN(got[0].Args[2].(float64)))

			assert.True(t, math.IsNaN(got[1].Value))
			assert.True(t, math.IsNaN(got[1].Args[0].(float64)))

			assert.True(t, math.IsInf(got[2].Value, -1))
			assert.Equal(t, []any{"squared", nil}, got[2].Args)
		})
	}
}

func TestStore_NilAndEmptyArgs(t *testing.T) {
	ctx := context.Background()
	for name, newStore := range storeFactories(t) {
		t.Run(name, func(t *testing.T) {
			s := newStore()
			defer s.Close()

			require.NoError(t, s.Append(ctx, tape.Entry{ID: "nil", Kind: tape.KindResult}))
			require.NoError(t, s.Append(ctx, tape.Entry{ID: "empty", Kind: tape.KindResult, Args: []any{}}))
			require.NoError(t, s.Append(ctx, tape.Entry{ID: "int", Kind: tape.KindResult, Args: []any{7}}))

			got, err := s.List(ctx)
			require.NoError(t, err)
			require.Len(t, got, 3)
			assert.Nil(t, got[0].Args)
			assert.NotNil(t, got[1].Args)
			assert.Empty(t, got[1].Args)
			require.Len(t, got[2].Args, 1)
			assert.EqualValues(t, 7, got[2].Args[0])
		})
	}
}

func TestStore_EmptyListIsNotNil(t *testing.T) {
	for name, newStore := range storeFactories(t) {
		t.Run(name, func(t *testing.T) {
			s := newStore()
			defer s.Close()

			got, err := s.List(context.Background())
			require.NoError(t, err)
			assert.NotNil(t, got)
			assert.Empty(t, got)
		})
	}
}

func TestStore_ResetRestartsSequence(t *testing.T) {
	ctx := context.Background()
	for name, newStore := range storeFactories(t) {
		t.Run(name, func(t *testing.T) {
			s := newStore()
			defer s.Close()

			require.NoError(t, s.Append(ctx, entry("a", tape.KindResult, 1, 1.0)))
			require.NoError(t, s.Append(ctx, entry("b", tape.KindResult, 2, 2.0)))
			require.NoError(t, s.Reset(ctx))

			got, err := s.List(ctx)
			require.NoError(t, err)
			assert.Empty(t, got)

			require.NoError(t, s.Append(ctx, entry("c", tape.KindResult, 3, 3.0)))
			got, err = s.List(ctx)
			require.NoError(t, err)
			require.Len(t, got, 1)
			assert.Equal(t, int64(1), got[0].Seq)
		})
	}
}

func TestStore_Closed(t *testing.T) {
	ctx := context.Background()
	for name, newStore := range storeFactories(t) {
		t.Run(name, func(t *testing.T) {
			s := newStore()
			require.NoError(t, s.Close())
			assert.NoError(t, s.Close())

			assert.ErrorIs(t, s.Append(ctx, entry("a", tape.KindResult, 1)), tape.ErrStoreClosed)
			_, err := s.List(ctx)
			assert.ErrorIs(t, err, tape.ErrStoreClosed)
			assert.ErrorIs(t, s.Reset(ctx), tape.ErrStoreClosed)
		})
	}
}

func TestStore_Concurrent(t *testing.T) {
	ctx := context.Background()
	for name, newStore := range storeFactories(t) {
		t.Run(name, func(t *testing.T) {
			s := newStore()
			defer s.Close()

			const n = 20
			var wg sync.WaitGroup
			for i := 0; i < n; i++ {
				wg.Add(1)
				go func(i int) {
					defer wg.Done()
					assert.NoError(t, s.Append(ctx, entry(string(rune('a'+i)), tape.KindResult, float64(i))))
					_, _ = s.List(ctx)
				}(i)
			}
			wg.Wait()

			got, err := s.List(ctx)
			require.NoError(t, err)
			assert.Len(t, got, n)
		})
	}
}

func TestMemoryStore_CopiesArgs(t *testing.T) {
	ctx := context.Background()
	s := tape.NewMemoryStore()

	args := []any{1.0, 2.0}
	require.NoError(t, s.Append(ctx, tape.Entry{ID: "a", Kind: tape.KindPlus, Args: args}))
	args[0] = 99.0

	got, err := s.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []any{1.0, 2.0}, got[0].Args)
}

func TestSQLiteStore_Persistence(t *testing.T) {
	ctx := context.Background()
	dbPath := filepath.Join(t.TempDir(), "tape.db")

	s1, err := tape.NewSQLiteStore(dbPath)
	require.NoError(t, err)
	require.NoError(t, s1.Append(ctx, entry("a", tape.KindPlus, 0, 0.0, 10.0)))
	require.NoError(t, s1.Close())

	s2, err := tape.NewSQLiteStore(dbPath)
	require.NoError(t, err)
	defer s2.Close()

	got, err := s2.List(ctx)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "a", got[0].ID)
	assert.Equal(t, []any{0.0, 10.0}, got[0].Args)
}

func TestSQLiteStore_InvalidPath(t *testing.T) {
	_, err := tape.NewSQLiteStore("/nonexistent/path/tape.db")
	assert.Error(t, err)
}

func TestSQLiteStore_DuplicateID(t *testing.T) {
	ctx := context.Background()
	s, err := tape.NewSQLiteStore(":memory:")
	require.NoError(t, err)
	defer s.Close()

	require.NoError(t, s.Append(ctx, entry("a", tape.KindResult, 1)))
	assert.Error(t, s.Append(ctx, entry("a", tape.KindResult, 2)))
}

func TestOpenStore(t *testing.T) {
	s, err := tape.OpenStore("", "")
	require.NoError(t, err)
	assert.IsType(t, &tape.MemoryStore{}, s)

	s, err = tape.OpenStore(tape.DriverSQLite, filepath.Join(t.TempDir(), "t.db"))
	require.NoError(t, err)
	assert.IsType(t, &tape.SQLiteStore{}, s)
	require.NoError(t, s.Close())

	_, err = tape.OpenStore("redis", "")
	assert.ErrorIs(t, err, tape.ErrUnknownDriver)
}
