// Package hooks provides a small synchronous publish/subscribe dispatcher.
//
// A Hub maps event names to ordered lists of handlers. Trigger calls every
// handler registered for an event, in registration order, and returns their
// results in the same order so the emitter can act on them (veto a change,
// collect operations, and so on).
//
// # Handlers and identity
//
// Go functions are not comparable, so handlers are registered as *Handler
// values. A *Handler is the identity used by Off:
//
//	hub := hooks.New()
//	h := hub.OnFunc("valueChanged", func(ctx context.Context, args ...any) (any, error) {
//	    fmt.Println("value is now", args[0])
//	    return nil, nil
//	})
//
//	results, err := hub.Trigger(ctx, "valueChanged", 42.0)
//
//	hub.Off("valueChanged", h)
//
// Registering the same *Handler twice makes it fire twice; Off removes every
// occurrence.
//
// # Errors
//
// There is no isolation between handlers. The first handler that returns an
// error stops the trigger; the error comes back wrapped in a *HandlerError
// together with the results collected before it. Panics are not recovered.
//
// # Reentrancy
//
// Trigger iterates over a snapshot of the handler list. Handlers may call On,
// Off or Destroy on the hub they are running on; the change is visible from
// the next Trigger onwards.
package hooks
