package otel_test

import (
	"errors"
	"testing"
	"time"

	"lifeguard/infras/otel"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func TestScope_RecordsAttributesAndErrors(t *testing.T) {
	recorder := tracetest.NewSpanRecorder()
	provider := trace.NewTracerProvider(trace.WithSpanProcessor(recorder))

	_, span := provider.Tracer("service").Start(t.Context(), "service.Assign")
	scope := otel.NewScope(span)

	scope.SetAttributes(map[string]any{
		"booking.id": "b-1",
		"staff.ids":  []string{"s-1", "s-2"},
		"headcount":  2,
		"revalidate": true,
		"amount":     144.5,
		"start":      time.Date(2026, 10, 20, 9, 0, 0, 0, time.UTC),
	})
	scope.TraceIfError(nil)
	scope.TraceIfError(errors.New("staff busy"))
	scope.End()

	spans := recorder.Ended()
	require.Len(t, spans, 1)
	assert.Equal(t, codes.Error, spans[0].Status().Code)
	assert.Equal(t, "staff busy", spans[0].Status().Description)
	assert.Len(t, spans[0].Attributes(), 6)

	for _, kv := range spans[0].Attributes() {
		switch kv.Key {
		case "amount":
			assert.InDelta(t, 144.5, kv.Value.AsFloat64(), 0.001)
		case "start":
			assert.Equal(t, "2026-10-20T09:00:00Z", kv.Value.AsString())
		}
	}
	assert.Len(t, spans[0].Events(), 1)
}
