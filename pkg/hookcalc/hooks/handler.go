package hooks

import "context"

// HandlerFunc is the function signature of an event handler. args are the
// values passed to Trigger; the returned value is collected into Trigger's
// result slice.
type HandlerFunc func(ctx context.Context, args ...any) (any, error)

// Handler wraps a HandlerFunc and gives it an identity for Off.
type Handler struct {
	name string
	fn   HandlerFunc
}

// NewHandler wraps fn in an unnamed Handler.
func NewHandler(fn HandlerFunc) *Handler {
	return &Handler{fn: fn}
}

// Named wraps fn in a Handler whose name shows up in logs and errors.
func Named(name string, fn HandlerFunc) *Handler {
	return &Handler{name: name, fn: fn}
}

// Name returns the handler name, or "" for unnamed handlers.
func (h *Handler) Name() string {
	return h.name
}

// Call invokes the handler. A Handler with a nil func returns (nil, nil).
func (h *Handler) Call(ctx context.Context, args ...any) (any, error) {
	if h.fn == nil {
		return nil, nil
	}
	return h.fn(ctx, args...)
}

// Registrar is the part of a Hub handed to plugins.
type Registrar interface {
	// On registers h under event.
	On(event string, h *Handler)

	// OnFunc registers fn under event and returns the Handler wrapping it.
	OnFunc(event string, fn HandlerFunc) *Handler

	// Off removes every occurrence of h from event.
	Off(event string, h *Handler)
}
