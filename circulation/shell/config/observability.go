package config

import (
	"context"
	"errors"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetricgrpc"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	"go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"

	"github.com/AntonStoeckl/library-circulation-go/circulation/shell/observable"
	"github.com/AntonStoeckl/library-circulation-go/journal/oteladapters"
)

const (
	metricExportInterval = 5 * time.Second
	instrumentationName  = "github.com/AntonStoeckl/library-circulation-go"
)

// ObservabilityProviders holds the OpenTelemetry providers.
type ObservabilityProviders struct {
	TracerProvider *trace.TracerProvider
	MeterProvider  *metric.MeterProvider
	Resource       *resource.Resource
}

// NewObservabilityProviders creates OTLP gRPC exporters for traces and metrics and registers
// the providers globally. It returns nil providers when cfg is disabled.
func NewObservabilityProviders(ctx context.Context, cfg ObservabilityConfig, version string) (*ObservabilityProviders, error) {
	if !cfg.Enabled {
		return nil, nil
	}

	res, err := resource.New(ctx,
		resource.WithAttributes(
			semconv.ServiceNameKey.String(cfg.ServiceName),
			semconv.ServiceVersionKey.String(version),
		),
	)
	if err != nil {
		return nil, err
	}

	traceOptions := []otlptracegrpc.Option{otlptracegrpc.WithEndpoint(cfg.TraceEndpoint)}
	metricOptions := []otlpmetricgrpc.Option{otlpmetricgrpc.WithEndpoint(cfg.MetricEndpoint)}

	if cfg.Insecure {
		traceOptions = append(traceOptions, otlptracegrpc.WithInsecure())
		metricOptions = append(metricOptions, otlpmetricgrpc.WithInsecure())
	}

	traceExporter, err := otlptracegrpc.New(ctx, traceOptions...)
	if err != nil {
		return nil, err
	}

	tracerProvider := trace.NewTracerProvider(
		trace.WithBatcher(traceExporter),
		trace.WithResource(res),
	)

	metricExporter, err := otlpmetricgrpc.New(ctx, metricOptions...)
	if err != nil {
		return nil, errors.Join(err, tracerProvider.Shutdown(ctx))
	}

	meterProvider := metric.NewMeterProvider(
		metric.WithReader(metric.NewPeriodicReader(metricExporter, metric.WithInterval(metricExportInterval))),
		metric.WithResource(res),
	)

	otel.SetTracerProvider(tracerProvider)
	otel.SetMeterProvider(meterProvider)
	otel.SetTextMapPropagator(propagation.TraceContext{})

	return &ObservabilityProviders{
		TracerProvider: tracerProvider,
		MeterProvider:  meterProvider,
		Resource:       res,
	}, nil
}

// Instrumentation wraps the providers in the OpenTelemetry adapters. The logger is left to the caller.
// A nil receiver yields empty Instrumentation.
func (p *ObservabilityProviders) Instrumentation() observable.Instrumentation {
	if p == nil {
		return observable.Instrumentation{}
	}

	return observable.Instrumentation{
		Metrics: oteladapters.NewMetricsCollector(p.MeterProvider.Meter(instrumentationName)),
		Tracing: oteladapters.NewTracingCollector(p.TracerProvider.Tracer(instrumentationName)),
	}
}

// Shutdown flushes and stops both providers. A nil receiver is a no-op.
func (p *ObservabilityProviders) Shutdown(ctx context.Context) error {
	if p == nil {
		return nil
	}

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	return errors.Join(
		p.TracerProvider.Shutdown(ctx),
		p.MeterProvider.Shutdown(ctx),
	)
}
