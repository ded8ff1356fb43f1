package hookcalc

import (
	"errors"
	"fmt"
)

// ErrNotOperation indicates a pressed handler returned a truthy value that
// is not an Operation.
var ErrNotOperation = errors.New("pressed handler result is not an operation")

// NotOperationError describes a pressed handler result that cannot be applied.
type NotOperationError struct {
	// Button is the button passed to Press.
	Button string
	// Index is the position of the offending result.
	Index int
	// Value is the value the handler returned.
	Value any
}

// Error implements the error interface.
func (e *NotOperationError) Error() string {
	return fmt.Sprintf("press %q: result #%d (%T): %v", e.Button, e.Index, e.Value, ErrNotOperation)
}

// Unwrap returns ErrNotOperation for errors.Is support.
func (e *NotOperationError) Unwrap() error {
	return ErrNotOperation
}
