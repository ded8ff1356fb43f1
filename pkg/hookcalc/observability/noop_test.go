package observability

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.opentelemetry.io/otel/attribute"
)

func TestNoopMetrics(t *testing.T) {
	m := NoopMetrics{}

	assert.NotPanics(t, func() {
		m.RecordTrigger(context.Background(), "valueChanged", 3, time.Millisecond, nil)
		m.RecordTrigger(context.Background(), "pressed", 1, 0, errors.New("boom"))
		m.RecordTrigger(nil, "", 0, 0, nil)
		m.RecordVeto(context.Background())
		m.RecordValueChange(context.Background())
	})
}

func TestNoopSpanManager(t *testing.T) {
	s := NoopSpanManager{}
	ctx := context.Background()

	t.Run("trigger span returns same context", func(t *testing.T) {
		got, span := s.StartTriggerSpan(ctx, "pressed", 2)
		assert.Equal(t, ctx, got)
		assert.NotNil(t, span)
		assert.False(t, span.IsRecording())
	})

	t.Run("operation span returns same context", func(t *testing.T) {
		got, span := s.StartOperationSpan(ctx, "plus")
		assert.Equal(t, ctx, got)
		assert.False(t, span.SpanContext().IsValid())
	})

	t.Run("end and events do not panic", func(t *testing.T) {
		_, span := s.StartOperationSpan(ctx, "press")
		assert.NotPanics(t, func() {
			s.EndSpanWithError(span, errors.New("boom"))
			s.EndSpanWithError(span, nil)
			s.AddSpanEvent(ctx, "vetoed", attribute.Float64("attempted", 2005))
		})
	})
}
