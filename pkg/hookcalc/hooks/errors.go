package hooks

import "fmt"

// HandlerError reports a handler that failed during Trigger.
type HandlerError struct {
	// Event is the event being triggered.
	Event string
	// Handler is the handler name, empty for unnamed handlers.
	Handler string
	// Index is the handler's position in the event's handler list.
	Index int
	// Err is the error returned by the handler.
	Err error
}

// Error implements the error interface.
func (e *HandlerError) Error() string {
	if e.Handler != "" {
		return fmt.Sprintf("event %s: handler %s (#%d): %v", e.Event, e.Handler, e.Index, e.Err)
	}
	return fmt.Sprintf("event %s: handler #%d: %v", e.Event, e.Index, e.Err)
}

// Unwrap returns the handler's error for errors.Is/As support.
func (e *HandlerError) Unwrap() error {
	return e.Err
}
