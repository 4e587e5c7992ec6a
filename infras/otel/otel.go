package otel

import (
	"context"
	"slotlink/config"
	"sync"

	"github.com/rs/zerolog/log"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/exporters/prometheus"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	"go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.17.0"
	"google.golang.org/grpc/credentials/insecure"
)

const meterName = "slotlink"

type Otel interface {
	NewScope(ctx context.Context, scopeName, spanName string) (context.Context, Scope)
	// Count adds one to the named counter. Metrics are scraped from /metrics.
	Count(ctx context.Context, name string, attributes map[string]string)
}

type otelImpl struct {
	TracerProvider *trace.TracerProvider
	MeterProvider  *sdkmetric.MeterProvider

	mu       sync.Mutex
	counters map[string]metric.Int64Counter
}

func (o *otelImpl) NewScope(ctx context.Context, scopeName, spanName string) (context.Context, Scope) {
	ctx, span := o.TracerProvider.Tracer(scopeName).Start(ctx, spanName)

	return ctx, NewScope(span)
}

func (o *otelImpl) Count(ctx context.Context, name string, attributes map[string]string) {
	counter, err := o.counter(name)
	if err != nil {
		log.Error().Err(err).Str("metric", name).Msg("failed to create counter")

		return
	}

	attrs := make([]attribute.KeyValue, 0, len(attributes))
	for key, value := range attributes {
		attrs = append(attrs, attribute.String(key, value))
	}

	counter.Add(ctx, 1, metric.WithAttributes(attrs...))
}

func (o *otelImpl) counter(name string) (metric.Int64Counter, error) {
	o.mu.Lock()
	defer o.mu.Unlock()

	if counter, ok := o.counters[name]; ok {
		return counter, nil
	}

	counter, err := o.MeterProvider.Meter(meterName).Int64Counter(name)
	if err != nil {
		return nil, err //nolint:wrapcheck
	}

	o.counters[name] = counter

	return counter, nil
}

func New(config *config.Config) Otel {
	ctx := context.Background()

	res := resource.NewWithAttributes(
		semconv.SchemaURL,
		semconv.ServiceNameKey.String(config.App.Name),
	)

	traceOptions := []trace.TracerProviderOption{trace.WithResource(res)}

	if endpoint := config.External.Otel.Endpoint; endpoint != "" {
		exporter, err := otlptracegrpc.New(ctx,
			otlptracegrpc.WithEndpoint(endpoint),
			otlptracegrpc.WithTLSCredentials(insecure.NewCredentials()),
		)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to create OTLP exporter")
		}

		traceOptions = append(traceOptions, trace.WithBatcher(exporter))
	} else {
		log.Warn().Msg("No OTLP endpoint configured, spans are not exported")
	}

	traceProvider := trace.NewTracerProvider(traceOptions...)

	promExporter, err := prometheus.New()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create prometheus exporter")
	}

	meterProvider := sdkmetric.NewMeterProvider(
		sdkmetric.WithResource(res),
		sdkmetric.WithReader(promExporter),
	)

	otel.SetTracerProvider(traceProvider)
	otel.SetMeterProvider(meterProvider)

	return &otelImpl{
		TracerProvider: traceProvider,
		MeterProvider:  meterProvider,
		counters:       map[string]metric.Int64Counter{},
	}
}
