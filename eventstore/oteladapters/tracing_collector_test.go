package oteladapters_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	"go.opentelemetry.io/otel/trace"

	"github.com/AntonStoeckl/campus-resource-hub/eventstore"
	"github.com/AntonStoeckl/campus-resource-hub/eventstore/oteladapters"
	"github.com/AntonStoeckl/campus-resource-hub/testutil/helper"
)

func Test_TracingCollector_StartAndFinishSpan(t *testing.T) {
	// arrange
	exporter, collector := givenTracingCollector()

	// act
	ctx, spanCtx := collector.StartSpan(context.Background(), "archive_query", map[string]string{"table": "action_log"})
	spanCtx.AddAttribute("owner", "S001")
	collector.FinishSpan(spanCtx, eventstore.StatusSuccess, map[string]string{"entry_count": "3"})

	// assert
	assert.True(t, trace.SpanContextFromContext(ctx).IsValid())

	spans := exporter.GetSpans()
	require.Len(t, spans, 1)
	assert.Equal(t, "archive_query", spans[0].Name)
	assert.Equal(t, codes.Ok, spans[0].Status.Code)
	assertSpanHasAttribute(t, spans[0], "table", "action_log")
	assertSpanHasAttribute(t, spans[0], "owner", "S001")
	assertSpanHasAttribute(t, spans[0], "entry_count", "3")
}

func Test_TracingCollector_MapsStatuses(t *testing.T) {
	testCases := []struct {
		status      string
		code        codes.Code
		description string
	}{
		{status: eventstore.StatusSuccess, code: codes.Ok},
		{status: eventstore.StatusError, code: codes.Error, description: "operation failed"},
		{status: eventstore.StatusCanceled, code: codes.Error, description: "operation canceled"},
		{status: eventstore.StatusTimeout, code: codes.Error, description: "operation timed out"},
		{status: "partial", code: codes.Unset},
	}

	for _, tc := range testCases {
		t.Run(tc.status, func(t *testing.T) {
			exporter, collector := givenTracingCollector()

			_, spanCtx := collector.StartSpan(context.Background(), "archive_append", nil)
			collector.FinishSpan(spanCtx, tc.status, nil)

			spans := exporter.GetSpans()
			require.Len(t, spans, 1)
			assert.Equal(t, tc.code, spans[0].Status.Code)
			assert.Equal(t, tc.description, spans[0].Status.Description)
		})
	}
}

func Test_TracingCollector_IgnoresForeignSpanContext(t *testing.T) {
	exporter, collector := givenTracingCollector()

	collector.FinishSpan(&helper.SpySpanContext{}, eventstore.StatusSuccess, nil)

	assert.Empty(t, exporter.GetSpans())
}

func Test_Instrumentation_WithOTelCollectors(t *testing.T) {
	// arrange
	exporter, tracing := givenTracingCollector()
	reader, metrics := givenMetricsCollector()
	instrumentation := eventstore.NewInstrumentation(metrics, tracing)

	// act
	ctx, measurement := instrumentation.Begin(context.Background(), eventstore.OperationAppend, map[string]string{"table": "action_log"})
	measurement.End(ctx, 1, errors.New("connection reset"))

	// assert
	spans := exporter.GetSpans()
	require.Len(t, spans, 1)
	assert.Equal(t, codes.Error, spans[0].Status.Code)
	assertSpanHasAttribute(t, spans[0], eventstore.AttrError, "connection reset")

	resourceMetrics := collect(t, reader)
	histogram := findHistogramMetric(t, resourceMetrics, eventstore.DurationMetric(eventstore.OperationAppend))
	require.Len(t, histogram.DataPoints, 1)

	counter := findCounterMetric(t, resourceMetrics, eventstore.TotalMetric(eventstore.OperationAppend))
	require.Len(t, counter.DataPoints, 1)
	status, ok := counter.DataPoints[0].Attributes.Value(attribute.Key(eventstore.AttrStatus))
	require.True(t, ok)
	assert.Equal(t, eventstore.StatusError, status.AsString())
}

func givenTracingCollector() (*tracetest.InMemoryExporter, *oteladapters.TracingCollector) {
	exporter := tracetest.NewInMemoryExporter()
	provider := sdktrace.NewTracerProvider(sdktrace.WithSyncer(exporter))

	return exporter, oteladapters.NewTracingCollector(provider.Tracer("test"))
}

func assertSpanHasAttribute(t *testing.T, span tracetest.SpanStub, key, expectedValue string) {
	t.Helper()

	for _, attr := range span.Attributes {
		if attr.Key == attribute.Key(key) && attr.Value.AsString() == expectedValue {
			return
		}
	}

	assert.Failf(t, "missing span attribute", "%s=%s", key, expectedValue)
}
