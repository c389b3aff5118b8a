package oteladapters_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"

	"github.com/AntonStoeckl/library-circulation-go/journal/oteladapters"
)

func Test_MetricsCollector_RecordDuration(t *testing.T) {
	// arrange
	reader, collector := givenMetricsCollector()

	// act
	collector.RecordDuration("journal_query_duration_seconds", 150*time.Millisecond, map[string]string{
		"engine": "postgres",
	})

	// assert
	histogram := findMetric(t, collectMetrics(t, reader), "journal_query_duration_seconds").Data.(metricdata.Histogram[float64])
	require.Len(t, histogram.DataPoints, 1)
	assert.Equal(t, uint64(1), histogram.DataPoints[0].Count)
	assert.InDelta(t, 0.15, histogram.DataPoints[0].Sum, 0.001)

	expectedAttrs := attribute.NewSet(attribute.String("engine", "postgres"))
	assert.True(t, histogram.DataPoints[0].Attributes.Equals(&expectedAttrs))
}

func Test_MetricsCollector_IncrementCounter_ReusesInstrument(t *testing.T) {
	// arrange
	reader, collector := givenMetricsCollector()
	labels := map[string]string{"command_type": "IssueBook", "status": "rejected"}

	// act
	collector.IncrementCounter("commands_total", labels)
	collector.IncrementCounterContext(context.Background(), "commands_total", labels)
	collector.IncrementCounter("commands_total", labels)

	// assert
	sum := findMetric(t, collectMetrics(t, reader), "commands_total").Data.(metricdata.Sum[int64])
	require.Len(t, sum.DataPoints, 1)
	assert.Equal(t, int64(3), sum.DataPoints[0].Value)
}

func Test_MetricsCollector_RecordValue(t *testing.T) {
	// arrange
	reader, collector := givenMetricsCollector()

	// act
	collector.RecordValue("hold_queue_length", 2, map[string]string{"book_id": "7"})
	collector.RecordValueContext(context.Background(), "hold_queue_length", 3, map[string]string{"book_id": "7"})

	// assert
	gauge := findMetric(t, collectMetrics(t, reader), "hold_queue_length").Data.(metricdata.Gauge[float64])
	require.Len(t, gauge.DataPoints, 1)
	assert.InDelta(t, 3.0, gauge.DataPoints[0].Value, 0.0001)
}

func givenMetricsCollector() (*sdkmetric.ManualReader, *oteladapters.MetricsCollector) {
	reader := sdkmetric.NewManualReader()
	provider := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))

	return reader, oteladapters.NewMetricsCollector(provider.Meter("circulation"))
}

func collectMetrics(t *testing.T, reader *sdkmetric.ManualReader) metricdata.ResourceMetrics {
	t.Helper()

	var resourceMetrics metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(context.Background(), &resourceMetrics))

	return resourceMetrics
}

func findMetric(t *testing.T, resourceMetrics metricdata.ResourceMetrics, name string) metricdata.Metrics {
	t.Helper()

	for _, scopeMetrics := range resourceMetrics.ScopeMetrics {
		for _, m := range scopeMetrics.Metrics {
			if m.Name == name {
				return m
			}
		}
	}

	require.Failf(t, "metric not found", "metric %s was not recorded", name)

	return metricdata.Metrics{}
}
