package infrastructure

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.28.0"
)

const (
	ServiceName    = "x13adjust"
	ServiceVersion = "1.0.0"
)

// TracingConfig holds OpenTelemetry tracing configuration
type TracingConfig struct {
	Enabled     bool
	Environment string
	SampleRatio float64
}

// DefaultTracingConfig returns tracing defaults: stdout exporter,
// sample everything outside production.
func DefaultTracingConfig() *TracingConfig {
	env := os.Getenv("ENVIRONMENT")
	if env == "" {
		env = "development"
	}
	ratio := 1.0
	if env == "production" {
		ratio = 0.1
	}
	return &TracingConfig{
		Enabled:     true,
		Environment: env,
		SampleRatio: ratio,
	}
}

// InitializeTracing sets up the global tracer provider with a stdout
// span exporter. Returns a shutdown function to flush spans on exit.
func InitializeTracing(cfg *TracingConfig, logger *slog.Logger) (func(context.Context) error, error) {
	if cfg == nil {
		cfg = DefaultTracingConfig()
	}
	if !cfg.Enabled {
		return func(context.Context) error { return nil }, nil
	}

	exporter, err := stdouttrace.New(stdouttrace.WithPrettyPrint())
	if err != nil {
		return nil, fmt.Errorf("failed to create trace exporter: %w", err)
	}

	res, err := resource.Merge(resource.Default(), resource.NewWithAttributes(
		semconv.SchemaURL,
		semconv.ServiceName(ServiceName),
		semconv.ServiceVersion(ServiceVersion),
		semconv.DeploymentEnvironmentName(cfg.Environment),
	))
	if err != nil {
		return nil, fmt.Errorf("failed to create resource: %w", err)
	}

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
		sdktrace.WithSampler(sdktrace.TraceIDRatioBased(cfg.SampleRatio)),
	)
	otel.SetTracerProvider(tp)
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{}, propagation.Baggage{}))

	logger.Info("tracing initialized",
		slog.String("environment", cfg.Environment),
		slog.Float64("sample_ratio", cfg.SampleRatio))

	return tp.Shutdown, nil
}
