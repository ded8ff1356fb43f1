// Package tape records a calculator's key presses and results, like the paper
// roll of a printing calculator.
//
// The Plugin subscribes to the press and result events and appends one Entry
// per event to a Store. Two stores are provided: MemoryStore for tests and
// short-lived sessions, and SQLiteStore for a tape that survives the process.
//
//	store, err := tape.NewSQLiteStore("./tape.db")
//	if err != nil {
//	    return err
//	}
//	calc := hookcalc.New(hookcalc.Config{Plugins: []hookcalc.Plugin{tape.New(store)}})
//	defer calc.Close() // closes the store
package tape

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// Kind identifies what an entry records.
type Kind string

// Entry kinds.
const (
	KindPlus   Kind = "plus"
	KindMinus  Kind = "minus"
	KindPress  Kind = "press"
	KindResult Kind = "result"
)

// Entry is one line on the tape.
type Entry struct {
	// ID uniquely identifies the entry.
	ID string

	// Seq is the position on the tape, starting at 1. Assigned by the store.
	Seq int64

	Kind Kind

	// Args are the event arguments: (current, operand) for plus and minus,
	// (button) for press, (value) for result.
	Args []any

	// Value is the calculator value the entry refers to.
	Value float64

	RecordedAt time.Time
}

// Store persists tape entries.
// Implementations must be safe for concurrent use.
type Store interface {
	// Append adds an entry at the end of the tape.
	Append(ctx context.Context, e Entry) error

	// List returns all entries ordered by Seq.
	// Returns an empty slice (not error) for an empty tape.
	List(ctx context.Context) ([]Entry, error)

	// Reset removes every entry. Sequence numbers restart at 1.
	Reset(ctx context.Context) error

	// Close releases any resources. Closing twice is a no-op.
	Close() error
}

// Store drivers accepted by OpenStore.
const (
	DriverMemory = "memory"
	DriverSQLite = "sqlite"
)

// Sentinel errors for tape operations.
var (
	// ErrStoreClosed indicates the store has been closed.
	ErrStoreClosed = errors.New("tape store closed")

	// ErrUnknownDriver indicates OpenStore was given an unsupported driver.
	ErrUnknownDriver = errors.New("unknown tape store driver")
)

// OpenStore opens a store by driver name. path is the database file for the
// sqlite driver and is ignored for memory. An empty driver selects memory.
func OpenStore(driver, path string) (Store, error) {
	switch driver {
	case "", DriverMemory:
		return NewMemoryStore(), nil
	case DriverSQLite:
		return NewSQLiteStore(path)
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownDriver, driver)
}
