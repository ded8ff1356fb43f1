package tape

import (
	"context"
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/jmoiron/sqlx"
	jsoniter "github.com/json-iterator/go"
	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// SQLiteStore persists the tape to SQLite.
// It is suitable for single-process use.
type SQLiteStore struct {
	db     *sqlx.DB
	mu     sync.RWMutex
	closed bool
}

type entryRow struct {
	Seq        int64  `db:"seq"`
	ID         string `db:"id"`
	Kind       string `db:"kind"`
	Args       []byte `db:"args"`
	Value      string `db:"value"`
	RecordedAt string `db:"recorded_at"`
}

// storedArg is the on-disk form of one entry argument. Floats are kept as
// text so that Inf and NaN survive the round trip.
type storedArg struct {
	Type string `json:"t"`
	Text string `json:"v,omitempty"`
}

const (
	argFloat  = "f"
	argString = "s"
	argNil    = "nil"
	argJSON   = "json"
)

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

func encodeArgs(args []any) ([]byte, error) {
	if args == nil {
		return []byte("null"), nil
	}
	stored := make([]storedArg, len(args))
	for i, a := range args {
		switch v := a.(type) {
		case nil:
			stored[i] = storedArg{Type: argNil}
		case float64:
			stored[i] = storedArg{Type: argFloat, Text: formatFloat(v)}
		case string:
			stored[i] = storedArg{Type: argString, Text: v}
		default:
			b, err := json.Marshal(v)
			if err != nil {
				return nil, fmt.Errorf("arg %d: %w", i, err)
			}
			stored[i] = storedArg{Type: argJSON, Text: string(b)}
		}
	}
	return json.Marshal(stored)
}

func decodeArgs(data []byte) ([]any, error) {
	var stored []storedArg
	if err := json.Unmarshal(data, &stored); err != nil {
		return nil, err
	}
	if stored == nil {
		return nil, nil
	}

	args := make([]any, len(stored))
	for i, a := range stored {
		switch a.Type {
		case argNil:
		case argFloat:
			f, err := strconv.ParseFloat(a.Text, 64)
			if err != nil {
				return nil, fmt.Errorf("arg %d: %w", i, err)
			}
			args[i] = f
		case argString:
			args[i] = a.Text
		case argJSON:
			if err := json.Unmarshal([]byte(a.Text), &args[i]); err != nil {
				return nil, fmt.Errorf("arg %d: %w", i, err)
			}
		default:
			return nil, fmt.Errorf("arg %d: unknown type %q", i, a.Type)
		}
	}
	return args, nil
}

// NewSQLiteStore opens (or creates) a tape database.
// The path should be a file path (e.g., "./tape.db") or ":memory:" for testing.
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	db, err := sqlx.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	// A single connection keeps ":memory:" databases shared across calls.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enable WAL mode: %w", err)
	}

	if _, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS tape (
			seq INTEGER PRIMARY KEY,
			id TEXT NOT NULL UNIQUE,
			kind TEXT NOT NULL,
			args BLOB NOT NULL,
			value TEXT NOT NULL,
			recorded_at TEXT NOT NULL
		)
	`); err != nil {
		db.Close()
		return nil, fmt.Errorf("create table: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

// Append implements Store.
func (s *SQLiteStore) Append(ctx context.Context, e Entry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrStoreClosed
	}

	args, err := encodeArgs(e.Args)
	if err != nil {
		return fmt.Errorf("encode tape args: %w", err)
	}

	_, err = s.db.NamedExecContext(ctx, `
		INSERT INTO tape (id, kind, args, value, recorded_at)
		VALUES (:id, :kind, :args, :value, :recorded_at)
	`, entryRow{
		ID:         e.ID,
		Kind:       string(e.Kind),
		Args:       args,
		Value:      formatFloat(e.Value),
		RecordedAt: e.RecordedAt.UTC().Format(time.RFC3339Nano),
	})
	if err != nil {
		return fmt.Errorf("append tape entry: %w", err)
	}
	return nil
}

// List implements Store.
func (s *SQLiteStore) List(ctx context.Context) ([]Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return nil, ErrStoreClosed
	}

	var rows []entryRow
	if err := s.db.SelectContext(ctx, &rows, `
		SELECT seq, id, kind, args, value, recorded_at
		FROM tape
		ORDER BY seq
	`); err != nil {
		return nil, fmt.Errorf("list tape entries: %w", err)
	}

	entries := make([]Entry, 0, len(rows))
	for _, r := range rows {
		e := Entry{
			ID:   r.ID,
			Seq:  r.Seq,
			Kind: Kind(r.Kind),
		}
		var err error
		if e.Args, err = decodeArgs(r.Args); err != nil {
			return nil, fmt.Errorf("decode tape args (seq %d): %w", r.Seq, err)
		}
		if e.Value, err = strconv.ParseFloat(r.Value, 64); err != nil {
			return nil, fmt.Errorf("decode tape value (seq %d): %w", r.Seq, err)
		}
		if e.RecordedAt, err = time.Parse(time.RFC3339Nano, r.RecordedAt); err != nil {
			return nil, fmt.Errorf("decode tape time (seq %d): %w", r.Seq, err)
		}
		entries = append(entries, e)
	}
	return entries, nil
}

// Reset implements Store.
func (s *SQLiteStore) Reset(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrStoreClosed
	}

	if _, err := s.db.ExecContext(ctx, `DELETE FROM tape`); err != nil {
		return fmt.Errorf("reset tape: %w", err)
	}
	return nil
}

// Close implements Store.
func (s *SQLiteStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil
	}

	s.closed = true
	return s.db.Close()
}
