package oteladapters_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"github.com/AntonStoeckl/library-circulation-go/journal/oteladapters"
)

func Test_TracingCollector_RecordsSpanWithAttributes(t *testing.T) {
	// arrange
	exporter, collector := givenTracingCollector()

	// act
	_, spanCtx := collector.StartSpan(context.Background(), "command.IssueBook", map[string]string{"book_id": "7"})
	spanCtx.AddAttribute("borrower_id", "3")
	collector.FinishSpan(spanCtx, "success", map[string]string{"outcome": "issued"})

	// assert
	spans := exporter.GetSpans()
	require.Len(t, spans, 1)
	assert.Equal(t, "command.IssueBook", spans[0].Name)
	assert.Equal(t, codes.Ok, spans[0].Status.Code)

	attrs := map[string]string{}
	for _, kv := range spans[0].Attributes {
		attrs[string(kv.Key)] = kv.Value.AsString()
	}
	assert.Equal(t, "7", attrs["book_id"])
	assert.Equal(t, "3", attrs["borrower_id"])
	assert.Equal(t, "issued", attrs["outcome"])
}

func Test_TracingCollector_StatusMapping(t *testing.T) {
	testCases := []struct {
		status       string
		expectedCode codes.Code
	}{
		{status: "success", expectedCode: codes.Ok},
		{status: "idempotent", expectedCode: codes.Ok},
		{status: "rejected", expectedCode: codes.Ok},
		{status: "error", expectedCode: codes.Error},
		{status: "canceled", expectedCode: codes.Error},
		{status: "timeout", expectedCode: codes.Error},
		{status: "concurrency_conflict", expectedCode: codes.Error},
		{status: "something_else", expectedCode: codes.Unset},
	}

	for _, tc := range testCases {
		t.Run(tc.status, func(t *testing.T) {
			// arrange
			exporter, collector := givenTracingCollector()

			// act
			_, spanCtx := collector.StartSpan(context.Background(), "command.ReturnBook", nil)
			collector.FinishSpan(spanCtx, tc.status, nil)

			// assert
			spans := exporter.GetSpans()
			require.Len(t, spans, 1)
			assert.Equal(t, tc.expectedCode, spans[0].Status.Code)
		})
	}
}

func Test_TracingCollector_IgnoresForeignSpanContexts(t *testing.T) {
	// arrange
	exporter, collector := givenTracingCollector()

	// act
	collector.FinishSpan(foreignSpanContext{}, "success", nil)

	// assert
	assert.Empty(t, exporter.GetSpans())
}

func givenTracingCollector() (*tracetest.InMemoryExporter, *oteladapters.TracingCollector) {
	exporter := tracetest.NewInMemoryExporter()
	provider := sdktrace.NewTracerProvider(sdktrace.WithSyncer(exporter))

	return exporter, oteladapters.NewTracingCollector(provider.Tracer("circulation"))
}

type foreignSpanContext struct{}

func (foreignSpanContext) SetStatus(string)            {}
func (foreignSpanContext) AddAttribute(string, string) {}
