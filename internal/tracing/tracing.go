package tracing

import (
	"context"
	"fmt"
	"log/slog"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

// Configuration the OTLP exporter configuration. Tracing is disabled when Endpoint is empty.
type Configuration struct {
	Endpoint    string
	Insecure    bool
	ServiceName string `yaml:"service-name"`
}

type Shutdown func(ctx context.Context) error

func noopShutdown(_ context.Context) error {
	return nil
}

// Setup registers a global tracer provider exporting spans with OTLP over HTTP
func Setup(ctx context.Context, logger *slog.Logger, config Configuration) (Shutdown, error) {
	if config.Endpoint == "" {
		logger.Debug("tracing is disabled")
		return noopShutdown, nil
	}
	serviceName := config.ServiceName
	if serviceName == "" {
		serviceName = "slo-exporter"
	}
	options := []otlptracehttp.Option{otlptracehttp.WithEndpoint(config.Endpoint)}
	if config.Insecure {
		options = append(options, otlptracehttp.WithInsecure())
	}
	exporter, err := otlptracehttp.New(ctx, options...)
	if err != nil {
		return nil, fmt.Errorf("fail to create the OTLP exporter: %w", err)
	}
	provider := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(resource.NewSchemaless(attribute.String("service.name", serviceName))),
	)
	otel.SetTracerProvider(provider)
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(propagation.TraceContext{}, propagation.Baggage{}))
	logger.Info(fmt.Sprintf("exporting traces to %s", config.Endpoint))
	return provider.Shutdown, nil
}
