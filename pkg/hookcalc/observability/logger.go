// Package observability provides structured logging, metrics, and tracing
// helpers for hookcalc hubs and calculators.
//
// Features:
//   - Structured logging via slog (Go stdlib)
//   - Metrics via OpenTelemetry
//   - Tracing via OpenTelemetry
//
// All features are opt-in and have no-op implementations when disabled.
package observability

import (
	"log/slog"
	"time"
)

// EnrichLogger adds calculator context to a logger.
// Returns a new logger carrying the calculator_id field.
//
// Example:
//
//	enriched := EnrichLogger(logger, "calc-123")
//	enriched.Info("pressed") // includes calculator_id
func EnrichLogger(logger *slog.Logger, calculatorID string) *slog.Logger {
	if logger == nil {
		return nil
	}
	return logger.With(slog.String("calculator_id", calculatorID))
}

// LogTrigger logs a completed trigger of an event.
func LogTrigger(logger *slog.Logger, event string, handlers int, duration time.Duration) {
	if logger == nil {
		return
	}
	logger.Debug("event triggered",
		slog.String("event", event),
		slog.Int("handlers", handlers),
		slog.Float64("duration_ms", float64(duration.Microseconds())/1000),
	)
}

// LogHandlerError logs a handler failure. The failure still propagates to the
// caller of Trigger; this only records it.
func LogHandlerError(logger *slog.Logger, event, handler string, index int, err error) {
	if logger == nil {
		return
	}
	logger.Error("handler failed",
		slog.String("event", event),
		slog.String("handler", handler),
		slog.Int("index", index),
		slog.String("error", err.Error()),
	)
}

// LogVeto logs a rejected value change.
func LogVeto(logger *slog.Logger, attempted, retained float64) {
	if logger == nil {
		return
	}
	logger.Info("value change vetoed",
		slog.Float64("attempted", attempted),
		slog.Float64("retained", retained),
	)
}

// LogValueChanged logs an accepted value change.
func LogValueChanged(logger *slog.Logger, previous, current float64) {
	if logger == nil {
		return
	}
	logger.Debug("value changed",
		slog.Float64("previous", previous),
		slog.Float64("current", current),
	)
}

// TimedOperation measures the duration of an operation.
// Returns a function that, when called, returns the elapsed time.
//
// Example:
//
//	elapsed := TimedOperation()
//	// ... do work ...
//	LogTrigger(logger, event, n, elapsed())
func TimedOperation() func() time.Duration {
	start := time.Now()
	return func() time.Duration {
		return time.Since(start)
	}
}
