package hookcalc

import (
	"log/slog"

	"github.com/google/uuid"

	"github.com/randalmurphal/hookcalc/pkg/hookcalc/observability"
)

// options holds calculator dependencies.
type options struct {
	id             string
	logger         *slog.Logger
	metrics        observability.MetricsRecorder
	spans          observability.SpanManager
	tracingEnabled bool
}

func defaultOptions() options {
	return options{
		id:      uuid.New().String(),
		logger:  slog.Default(),
		metrics: observability.NoopMetrics{},
		spans:   observability.NewSpanManager(),
	}
}

// Option configures a Calculator.
type Option func(*options)

// WithID sets the calculator identifier used in logs.
// If not set, a UUID is generated.
func WithID(id string) Option {
	return func(o *options) {
		if id != "" {
			o.id = id
		}
	}
}

// WithLogger sets the logger. It is enriched with calculator_id and shared
// with the calculator's hub.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithMetrics sets the metrics recorder. Default: observability.NoopMetrics.
//
// Example:
//
//	calc := hookcalc.New(cfg, hookcalc.WithMetrics(observability.NewMetricsRecorder()))
func WithMetrics(m observability.MetricsRecorder) Option {
	return func(o *options) {
		if m != nil {
			o.metrics = m
		}
	}
}

// WithTracing enables OpenTelemetry spans for operations and triggers.
// Default: false.
func WithTracing(enabled bool) Option {
	return func(o *options) {
		o.tracingEnabled = enabled
	}
}

// WithSpans sets the span manager and enables tracing.
func WithSpans(s observability.SpanManager) Option {
	return func(o *options) {
		if s != nil {
			o.spans = s
			o.tracingEnabled = true
		}
	}
}

func (o options) spanManager() observability.SpanManager {
	if !o.tracingEnabled {
		return observability.NoopSpanManager{}
	}
	return o.spans
}
