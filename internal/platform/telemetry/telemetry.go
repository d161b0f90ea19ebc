// Package telemetry sets up the process-wide OpenTelemetry providers and the
// instruments the gateway records into.
//
// Traces and metrics go to stdout during development or to an OTLP/HTTP
// collector elsewhere:
//
//	p, err := telemetry.Start(ctx, telemetry.Settings{
//		ServiceName: "sample-gateway",
//		Exporter:    telemetry.ExporterOTLP,
//		Endpoint:    "http://collector:4318",
//	})
//	defer p.Shutdown(ctx)
package telemetry

import (
	"context"
	"errors"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/propagation"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.39.0"
)

// Exporter names accepted in Settings.
const (
	ExporterStdout = "stdout"
	ExporterOTLP   = "otlp"
)

// Settings selects the service name reported on every span and metric and
// where both are exported.
type Settings struct {
	ServiceName string
	Exporter    string
	Endpoint    string
}

// Providers holds the installed SDK providers and the gateway's instruments.
// The zero value stands for disabled telemetry: Metrics is nil and Shutdown
// does nothing.
type Providers struct {
	Tracer  *sdktrace.TracerProvider
	Meter   *sdkmetric.MeterProvider
	Metrics *Metrics
}

// Start builds a batching tracer provider and a periodically read meter
// provider, installs both as the globals together with W3C trace-context
// and baggage propagation, and registers the gateway's instruments.
func Start(ctx context.Context, s Settings) (*Providers, error) {
	res, err := resource.Merge(
		resource.Default(),
		resource.NewWithAttributes(semconv.SchemaURL, semconv.ServiceName(s.ServiceName)),
	)
	if err != nil {
		return nil, fmt.Errorf("creating resource: %w", err)
	}

	spans, err := spanExporter(ctx, s.Exporter, s.Endpoint)
	if err != nil {
		return nil, fmt.Errorf("creating span exporter: %w", err)
	}
	readings, err := metricExporter(ctx, s.Exporter, s.Endpoint)
	if err != nil {
		_ = spans.Shutdown(ctx)
		return nil, fmt.Errorf("creating metric exporter: %w", err)
	}

	p := &Providers{
		Tracer: sdktrace.NewTracerProvider(sdktrace.WithBatcher(spans), sdktrace.WithResource(res)),
		Meter: sdkmetric.NewMeterProvider(
			sdkmetric.WithReader(sdkmetric.NewPeriodicReader(readings)),
			sdkmetric.WithResource(res),
		),
	}
	if p.Metrics, err = NewMetrics(p.Meter, s.ServiceName); err != nil {
		_ = p.Shutdown(ctx)
		return nil, fmt.Errorf("registering instruments: %w", err)
	}

	otel.SetTracerProvider(p.Tracer)
	otel.SetMeterProvider(p.Meter)
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{},
		propagation.Baggage{},
	))
	return p, nil
}

// Shutdown flushes pending spans and metrics and stops both providers.
func (p *Providers) Shutdown(ctx context.Context) error {
	var errs []error
	if p.Tracer != nil {
		if err := p.Tracer.Shutdown(ctx); err != nil {
			errs = append(errs, fmt.Errorf("tracer provider: %w", err))
		}
	}
	if p.Meter != nil {
		if err := p.Meter.Shutdown(ctx); err != nil {
			errs = append(errs, fmt.Errorf("meter provider: %w", err))
		}
	}
	return errors.Join(errs...)
}
