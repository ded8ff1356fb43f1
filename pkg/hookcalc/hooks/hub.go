package hooks

import (
	"context"
	"slices"
	"sort"
	"sync"

	"github.com/randalmurphal/hookcalc/pkg/hookcalc/observability"
)

// Hub stores named event subscriptions and dispatches events synchronously.
// The zero value is not usable; create hubs with New.
type Hub struct {
	cfg hubConfig

	mu        sync.RWMutex
	listeners map[string][]*Handler
}

var _ Registrar = (*Hub)(nil)

// New creates an empty hub.
func New(opts ...Option) *Hub {
	cfg := defaultHubConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	return &Hub{
		cfg:       cfg,
		listeners: make(map[string][]*Handler),
	}
}

// On appends h to the handler list of event. A nil h is ignored.
func (h *Hub) On(event string, handler *Handler) {
	if handler == nil {
		return
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	h.listeners[event] = append(h.listeners[event], handler)
}

// OnFunc wraps fn in a new Handler, registers it under event and returns it.
func (h *Hub) OnFunc(event string, fn HandlerFunc) *Handler {
	handler := NewHandler(fn)
	h.On(event, handler)
	return handler
}

// Off removes every occurrence of handler from event. Unknown events and
// handlers are a no-op.
func (h *Hub) Off(event string, handler *Handler) {
	h.mu.Lock()
	defer h.mu.Unlock()

	list, ok := h.listeners[event]
	if !ok {
		return
	}
	kept := slices.DeleteFunc(slices.Clone(list), func(x *Handler) bool {
		return x == handler
	})
	if len(kept) == 0 {
		delete(h.listeners, event)
		return
	}
	h.listeners[event] = kept
}

// Trigger calls every handler registered for event, in registration order,
// passing args to each, and returns their results in the same order.
//
// The result slice is empty (not nil) when no handlers are registered. If a
// handler fails, the remaining handlers are skipped and Trigger returns the
// results collected so far together with a *HandlerError.
func (h *Hub) Trigger(ctx context.Context, event string, args ...any) (results []any, err error) {
	if ctx == nil {
		ctx = context.Background()
	}

	h.mu.RLock()
	handlers := slices.Clone(h.listeners[event])
	h.mu.RUnlock()

	ctx, span := h.cfg.spans.StartTriggerSpan(ctx, event, len(handlers))
	elapsed := observability.TimedOperation()
	defer func() {
		duration := elapsed()
		h.cfg.spans.EndSpanWithError(span, err)
		h.cfg.metrics.RecordTrigger(ctx, event, len(handlers), duration, err)
		observability.LogTrigger(h.cfg.logger, event, len(handlers), duration)
	}()

	results = make([]any, 0, len(handlers))
	for i, handler := range handlers {
		res, callErr := handler.Call(ctx, args...)
		if callErr != nil {
			observability.LogHandlerError(h.cfg.logger, event, handler.Name(), i, callErr)
			return results, &HandlerError{
				Event:   event,
				Handler: handler.Name(),
				Index:   i,
				Err:     callErr,
			}
		}
		results = append(results, res)
	}
	return results, nil
}

// Destroy removes every registration. Later triggers return empty results.
func (h *Hub) Destroy() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.listeners = make(map[string][]*Handler)
}

// Len returns the number of handlers registered for event.
func (h *Hub) Len(event string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.listeners[event])
}

// Events returns the names of events with at least one handler, sorted.
func (h *Hub) Events() []string {
	h.mu.RLock()
	defer h.mu.RUnlock()
	names := make([]string, 0, len(h.listeners))
	for name := range h.listeners {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
