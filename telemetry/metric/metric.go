// Package metric bootstraps the OpenTelemetry meter used by executor and
// blockcache to record queued, running, completed and failed job counts
// and cache hit/miss counts.
// Meter defaults to a no-op implementation until Start is called.
package metric

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"
	"go.opentelemetry.io/otel/sdk/resource"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	semconv "go.opentelemetry.io/otel/semconv/v1.34.0"

	itelemetry "github.com/signalgraph/engine/internal/telemetry"
)

// Meter is the package-level meter used by executor and blockcache.
var Meter metric.Meter = noop.Meter{}

// Reader is the ManualReader backing Meter once Start has run, nil until
// then. Callers collect it to pull the current point-in-time snapshot of
// every registered instrument (there is no push exporter wired in this
// engine; collection is pull-only).
var Reader *sdkmetric.ManualReader

// Start installs an in-process MeterProvider backed by a ManualReader and
// replaces Meter with a real one. The returned clean func shuts the
// provider down. Unlike telemetry/trace's Start, this never dials a
// collector: no OTLP metric exporter is wired into this engine, so
// Collect(ctx) against Reader is the only way to read the instruments.
func Start(ctx context.Context, opts ...Option) (clean func() error, err error) {
	options := &options{
		serviceName:      itelemetry.ServiceName,
		serviceVersion:   itelemetry.ServiceVersion,
		serviceNamespace: itelemetry.ServiceNamespace,
	}
	for _, opt := range opts {
		opt(options)
	}

	res, err := resource.New(ctx,
		resource.WithAttributes(
			semconv.ServiceNamespace(options.serviceNamespace),
			semconv.ServiceName(options.serviceName),
			semconv.ServiceVersion(options.serviceVersion),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create resource: %w", err)
	}

	reader := sdkmetric.NewManualReader()
	provider := sdkmetric.NewMeterProvider(
		sdkmetric.WithResource(res),
		sdkmetric.WithReader(reader),
	)
	Reader = reader
	Meter = provider.Meter(itelemetry.InstrumentName)
	return func() error {
		if err := provider.Shutdown(ctx); err != nil {
			return fmt.Errorf("failed to shutdown MeterProvider: %w", err)
		}
		return nil
	}, nil
}

// Option configures the meter bootstrap.
type Option func(*options)

type options struct {
	serviceName      string
	serviceVersion   string
	serviceNamespace string
}

// WithServiceName overrides the resource's service.name attribute.
func WithServiceName(name string) Option {
	return func(o *options) { o.serviceName = name }
}
