package hooks

import (
	"log/slog"

	"github.com/randalmurphal/hookcalc/pkg/hookcalc/observability"
)

// hubConfig holds Hub dependencies.
type hubConfig struct {
	logger  *slog.Logger
	metrics observability.MetricsRecorder
	spans   observability.SpanManager
}

func defaultHubConfig() hubConfig {
	return hubConfig{
		logger:  slog.Default(),
		metrics: observability.NoopMetrics{},
		spans:   observability.NoopSpanManager{},
	}
}

// Option configures a Hub.
type Option func(*hubConfig)

// WithLogger sets the logger used for trigger and handler-failure logs.
func WithLogger(logger *slog.Logger) Option {
	return func(c *hubConfig) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithMetrics sets the metrics recorder. Default: observability.NoopMetrics.
func WithMetrics(m observability.MetricsRecorder) Option {
	return func(c *hubConfig) {
		if m != nil {
			c.metrics = m
		}
	}
}

// WithSpans sets the span manager. Default: observability.NoopSpanManager.
func WithSpans(s observability.SpanManager) Option {
	return func(c *hubConfig) {
		if s != nil {
			c.spans = s
		}
	}
}
