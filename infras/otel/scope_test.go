package otel_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"studio/infras/otel"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func record(t *testing.T, fn func(scope otel.Scope)) tracetest.SpanStub {
	t.Helper()

	recorder := tracetest.NewSpanRecorder()
	provider := trace.NewTracerProvider(trace.WithSpanProcessor(recorder))

	_, span := provider.Tracer("test").Start(context.Background(), "span")
	scope := otel.NewScope(span)

	fn(scope)
	scope.End()

	spans := recorder.Ended()
	require.Len(t, spans, 1)

	return tracetest.SpanStubFromReadOnlySpan(spans[0])
}

func TestScope_TraceError(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus codes.Code
		wantEvent  string
	}{
		{name: "nil is ignored", err: nil, wantStatus: codes.Unset},
		{name: "failure marks span", err: errors.New("slot row lock timeout"), wantStatus: codes.Error, wantEvent: "exception"},
		{name: "canceled is an event", err: fmt.Errorf("claim jobs: %w", context.Canceled), wantStatus: codes.Unset, wantEvent: "context canceled"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stub := record(t, func(scope otel.Scope) {
				scope.TraceIfError(tt.err)
			})

			assert.Equal(t, tt.wantStatus, stub.Status.Code)

			if tt.wantEvent == "" {
				assert.Empty(t, stub.Events)

				return
			}

			require.Len(t, stub.Events, 1)
			assert.Equal(t, tt.wantEvent, stub.Events[0].Name)
		})
	}
}

func TestScope_SetAttributes(t *testing.T) {
	stub := record(t, func(scope otel.Scope) {
		scope.SetAttributes(map[string]any{
			"claimed":     3,
			"earnings":    int64(12000),
			"confidence":  0.65,
			"approved":    false,
			"artist_id":   "a1",
			"booking_ids": []string{"b1", "b2"},
			"total":       decimal.RequireFromString("1015.50"),
		})
	})

	got := map[attribute.Key]attribute.Value{}
	for _, kv := range stub.Attributes {
		got[kv.Key] = kv.Value
	}

	assert.Equal(t, int64(3), got["claimed"].AsInt64())
	assert.Equal(t, int64(12000), got["earnings"].AsInt64())
	assert.InDelta(t, 0.65, got["confidence"].AsFloat64(), 1e-9)
	assert.False(t, got["approved"].AsBool())
	assert.Equal(t, "a1", got["artist_id"].AsString())
	assert.Equal(t, []string{"b1", "b2"}, got["booking_ids"].AsStringSlice())
	assert.Equal(t, "1015.5", got["total"].AsString())
}
