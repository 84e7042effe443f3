// Package tracing provides OpenTelemetry tracing for the League of Legends MCP server.
// Tool calls and Riot API requests each get a span; export is off unless configured.
package tracing

import (
	"context"
	"fmt"
	"io"
	"os"
	"strconv"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.39.0"
	"go.opentelemetry.io/otel/trace"
)

const (
	TracerName = "lol-mcp-server"
)

// Environment variables read by DefaultConfig
const (
	EnvEnabled     = "OTEL_ENABLED"
	EnvEndpoint    = "OTEL_EXPORTER_OTLP_ENDPOINT"
	EnvEnvironment = "OTEL_ENVIRONMENT"
	EnvSampleRate  = "OTEL_TRACES_SAMPLER_ARG"
)

// Config holds tracing configuration
type Config struct {
	ServiceName    string
	ServiceVersion string
	Environment    string
	Enabled        bool
	OTLPEndpoint   string // If set, uses OTLP exporter; otherwise stdout
	SampleRate     float64

	// Output receives spans from the stdout exporter. Nil means os.Stderr,
	// since stdout carries the MCP stdio transport.
	Output io.Writer
}

// DefaultConfig builds a Config from variables looked up through getenv.
// Setting an OTLP endpoint enables tracing on its own.
func DefaultConfig(getenv func(string) string) Config {
	endpoint := getenv(EnvEndpoint)

	return Config{
		ServiceName:    TracerName,
		ServiceVersion: "1.0.0",
		Environment:    envOr(getenv, EnvEnvironment, "development"),
		Enabled:        getenv(EnvEnabled) == "true" || endpoint != "",
		OTLPEndpoint:   endpoint,
		SampleRate:     parseSampleRate(getenv(EnvSampleRate)),
	}
}

// Setup installs a global tracer provider and returns its shutdown function.
// When tracing is disabled the global no-op provider stays in place.
func Setup(ctx context.Context, cfg Config) (func(context.Context) error, error) {
	if !cfg.Enabled {
		return func(context.Context) error { return nil }, nil
	}

	res, err := newResource(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to build trace resource: %w", err)
	}

	exporter, err := newExporter(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create trace exporter: %w", err)
	}

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
		sdktrace.WithSampler(newSampler(cfg.SampleRate)),
	)

	otel.SetTracerProvider(tp)
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{},
		propagation.Baggage{},
	))

	return tp.Shutdown, nil
}

// newResource describes this service. Its schema version must match the one
// resource.Default uses, or the merge fails.
func newResource(cfg Config) (*resource.Resource, error) {
	return resource.Merge(
		resource.Default(),
		resource.NewWithAttributes(
			semconv.SchemaURL,
			semconv.ServiceName(cfg.ServiceName),
			semconv.ServiceVersion(cfg.ServiceVersion),
			semconv.DeploymentEnvironmentName(cfg.Environment),
		),
	)
}

func newExporter(ctx context.Context, cfg Config) (sdktrace.SpanExporter, error) {
	if cfg.OTLPEndpoint != "" {
		return otlptracehttp.New(ctx,
			otlptracehttp.WithEndpoint(cfg.OTLPEndpoint),
			otlptracehttp.WithInsecure(),
		)
	}

	out := cfg.Output
	if out == nil {
		out = os.Stderr
	}
	return stdouttrace.New(
		stdouttrace.WithWriter(out),
		stdouttrace.WithPrettyPrint(),
	)
}

// newSampler samples root spans at rate and follows the parent decision otherwise
func newSampler(rate float64) sdktrace.Sampler {
	var root sdktrace.Sampler
	switch {
	case rate >= 1.0:
		root = sdktrace.AlwaysSample()
	case rate <= 0:
		root = sdktrace.NeverSample()
	default:
		root = sdktrace.TraceIDRatioBased(rate)
	}
	return sdktrace.ParentBased(root)
}

// parseSampleRate falls back to sampling everything when the value is unset or malformed
func parseSampleRate(v string) float64 {
	if v == "" {
		return 1.0
	}
	rate, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 1.0
	}
	return rate
}

// Tracer returns the named tracer for the server
func Tracer() trace.Tracer {
	return otel.Tracer(TracerName)
}

// StartSpan starts a new span with the given name and returns the context and span
func StartSpan(ctx context.Context, name string, opts ...trace.SpanStartOption) (context.Context, trace.Span) {
	return Tracer().Start(ctx, name, opts...)
}

// AddToolAttributes adds standard tool attributes to a span
func AddToolAttributes(span trace.Span, toolName, category string) {
	span.SetAttributes(
		attribute.String("mcp.tool.name", toolName),
		attribute.String("mcp.tool.category", category),
	)
}

// AddUpstreamAttributes adds Riot API call attributes to a span.
// The request URL is recorded as-is; it never carries the API key.
func AddUpstreamAttributes(span trace.Span, endpoint, url string, statusCode int) {
	span.SetAttributes(attribute.String("riot.api.endpoint", endpoint))
	if url != "" {
		span.SetAttributes(attribute.String("http.url", url))
	}
	if statusCode > 0 {
		span.SetAttributes(attribute.Int("http.status_code", statusCode))
	}
}

// RecordError records an error on the span
func RecordError(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
	}
}

func envOr(getenv func(string) string, key, fallback string) string {
	if v := getenv(key); v != "" {
		return v
	}
	return fallback
}
