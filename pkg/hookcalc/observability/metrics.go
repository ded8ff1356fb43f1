package observability

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const instrumentationName = "hookcalc"

// MetricsRecorder records hub and calculator metrics.
// Use NewMetricsRecorder() for OTel metrics or NoopMetrics{} when disabled.
type MetricsRecorder interface {
	// RecordTrigger records one Trigger call with its handler count,
	// duration and error status.
	RecordTrigger(ctx context.Context, event string, handlers int, duration time.Duration, err error)

	// RecordVeto records a value change rejected by a before-handler.
	RecordVeto(ctx context.Context)

	// RecordValueChange records an accepted value change.
	RecordValueChange(ctx context.Context)
}

// otelMetrics implements MetricsRecorder using OpenTelemetry.
type otelMetrics struct {
	triggers       metric.Int64Counter
	triggerLatency metric.Float64Histogram
	triggerErrors  metric.Int64Counter
	handlerCount   metric.Int64Histogram
	vetoes         metric.Int64Counter
	valueChanges   metric.Int64Counter
}

var (
	defaultMetrics     *otelMetrics
	defaultMetricsOnce sync.Once
	defaultMetricsErr  error
)

func getDefaultMetrics() (*otelMetrics, error) {
	defaultMetricsOnce.Do(func() {
		defaultMetrics, defaultMetricsErr = newOtelMetrics(otel.GetMeterProvider())
	})
	return defaultMetrics, defaultMetricsErr
}

func newOtelMetrics(provider metric.MeterProvider) (*otelMetrics, error) {
	meter := provider.Meter(instrumentationName)

	triggers, err := meter.Int64Counter("hookcalc.trigger.count",
		metric.WithDescription("Number of event triggers"),
	)
	if err != nil {
		return nil, err
	}

	triggerLatency, err := meter.Float64Histogram("hookcalc.trigger.latency_ms",
		metric.WithDescription("Time spent running all handlers of a trigger"),
		metric.WithUnit("ms"),
	)
	if err != nil {
		return nil, err
	}

	triggerErrors, err := meter.Int64Counter("hookcalc.trigger.errors",
		metric.WithDescription("Number of triggers aborted by a handler error"),
	)
	if err != nil {
		return nil, err
	}

	handlerCount, err := meter.Int64Histogram("hookcalc.trigger.handlers",
		metric.WithDescription("Handlers registered at trigger time"),
	)
	if err != nil {
		return nil, err
	}

	vetoes, err := meter.Int64Counter("hookcalc.veto.count",
		metric.WithDescription("Number of vetoed value changes"),
	)
	if err != nil {
		return nil, err
	}

	valueChanges, err := meter.Int64Counter("hookcalc.value.changes",
		metric.WithDescription("Number of accepted value changes"),
	)
	if err != nil {
		return nil, err
	}

	return &otelMetrics{
		triggers:       triggers,
		triggerLatency: triggerLatency,
		triggerErrors:  triggerErrors,
		handlerCount:   handlerCount,
		vetoes:         vetoes,
		valueChanges:   valueChanges,
	}, nil
}

// NewMetricsRecorder returns a MetricsRecorder that uses the global
// OpenTelemetry meter provider. If initialization fails, returns a no-op
// recorder.
//
// Configure the provider before calling this function:
//
//	otel.SetMeterProvider(yourProvider)
func NewMetricsRecorder() MetricsRecorder {
	m, err := getDefaultMetrics()
	if err != nil {
		slog.Warn("metrics initialization failed, using no-op recorder",
			slog.String("error", err.Error()))
		return NoopMetrics{}
	}
	return m
}

// NewMetricsRecorderWithProvider returns a MetricsRecorder bound to the given
// meter provider instead of the global one.
func NewMetricsRecorderWithProvider(provider metric.MeterProvider) (MetricsRecorder, error) {
	return newOtelMetrics(provider)
}

func (m *otelMetrics) RecordTrigger(ctx context.Context, event string, handlers int, duration time.Duration, err error) {
	attrs := metric.WithAttributes(attribute.String("event", event))

	m.triggers.Add(ctx, 1, attrs)
	m.triggerLatency.Record(ctx, float64(duration.Microseconds())/1000, attrs)
	m.handlerCount.Record(ctx, int64(handlers), attrs)

	if err != nil {
		m.triggerErrors.Add(ctx, 1, attrs)
	}
}

func (m *otelMetrics) RecordVeto(ctx context.Context) {
	m.vetoes.Add(ctx, 1)
}

func (m *otelMetrics) RecordValueChange(ctx context.Context) {
	m.valueChanges.Add(ctx, 1)
}
