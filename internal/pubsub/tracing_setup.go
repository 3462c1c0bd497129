package pubsub

import (
	"context"
	"os"
	"strconv"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/zipkin"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.17.0"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
)

// TracingConfig holds configuration for OpenTelemetry tracing.
type TracingConfig struct {
	Enabled     bool
	ServiceName string
	ZipkinURL   string
}

// DefaultTracingConfig returns the disabled-by-default tracing config.
func DefaultTracingConfig() TracingConfig {
	return TracingConfig{
		Enabled:     false,
		ServiceName: "warden-journal",
		ZipkinURL:   "http://localhost:9411/api/v2/spans",
	}
}

// LoadTracingConfigFromEnv loads tracing configuration from environment
// variables, falling back to the defaults.
func LoadTracingConfigFromEnv() TracingConfig {
	config := DefaultTracingConfig()

	if enabledStr := os.Getenv("BUS_TRACING_ENABLED"); enabledStr != "" {
		if enabled, err := strconv.ParseBool(enabledStr); err == nil {
			config.Enabled = enabled
		}
	}
	if serviceName := os.Getenv("BUS_TRACING_SERVICE_NAME"); serviceName != "" {
		config.ServiceName = serviceName
	}
	if zipkinURL := os.Getenv("BUS_TRACING_ZIPKIN_URL"); zipkinURL != "" {
		config.ZipkinURL = zipkinURL
	}

	return config
}

// SetupTracing initializes OpenTelemetry with a Zipkin exporter for bus
// observability. If config.Enabled is false, returns a no-op tracer.
func SetupTracing(ctx context.Context, config TracingConfig) (trace.Tracer, func(), error) {
	if !config.Enabled {
		tracer := noop.NewTracerProvider().Tracer("warden-bus")
		return tracer, func() {}, nil
	}

	exporter, err := zipkin.New(config.ZipkinURL)
	if err != nil {
		return nil, nil, err
	}

	res, err := resource.New(ctx,
		resource.WithAttributes(
			semconv.ServiceNameKey.String(config.ServiceName),
			semconv.ServiceVersionKey.String("1.0.0"),
		),
	)
	if err != nil {
		return nil, nil, err
	}

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
	)
	otel.SetTracerProvider(tp)

	tracer := tp.Tracer("warden-bus")
	cleanup := func() {
		if err := tp.Shutdown(ctx); err != nil {
			panic(err)
		}
	}

	return tracer, cleanup, nil
}
