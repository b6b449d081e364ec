// Package tracing wires OpenTelemetry spans around MCP tool calls and the
// Reddit API requests they make.
//
// Tool spans are named mcp.tool.<tool> and parent the reddit.<action> spans
// opened by the read and write clients, so one trace shows a tool call with
// every Reddit request and its throttle wait underneath.
package tracing

import (
	"context"
	"net/http"
	"os"
	"strconv"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.39.0"
	"go.opentelemetry.io/otel/trace"
)

const TracerName = "reddit-content-mcp-server"

// Span attribute keys.
const (
	AttrToolName     = attribute.Key("mcp.tool.name")
	AttrToolCategory = attribute.Key("mcp.tool.category")
	AttrToolReadOnly = attribute.Key("mcp.tool.readonly")

	// AttrRedditClient is "read" for the application-only client and
	// "write" for the account client.
	AttrRedditClient = attribute.Key("reddit.client")
	AttrRedditAction = attribute.Key("reddit.api.action")
	// AttrRedditTarget is the subreddit name or fullname (t1_, t3_) acted on.
	AttrRedditTarget      = attribute.Key("reddit.target")
	AttrRedditRateLimited = attribute.Key("reddit.rate_limited")
	AttrHTTPStatus        = attribute.Key("http.response.status_code")
)

// Config holds tracing configuration.
type Config struct {
	ServiceName    string
	ServiceVersion string
	Environment    string
	Enabled        bool
	// OTLPEndpoint selects the OTLP/HTTP exporter. When empty spans are
	// pretty-printed to stderr, since stdout carries the MCP stdio stream.
	OTLPEndpoint string
	SampleRate   float64
}

// DefaultConfig reads the standard OTEL_* variables. Tracing is off unless
// OTEL_ENABLED=true or an OTLP endpoint is configured.
func DefaultConfig() Config {
	return Config{
		ServiceName:    TracerName,
		ServiceVersion: "1.0.0",
		Environment:    getEnvOrDefault("OTEL_ENVIRONMENT", "development"),
		Enabled:        os.Getenv("OTEL_ENABLED") == "true" || os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT") != "",
		OTLPEndpoint:   os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT"),
		SampleRate:     sampleRateFromEnv(),
	}
}

// Setup installs the global tracer provider and returns its shutdown func.
// A disabled config leaves the no-op provider in place.
func Setup(ctx context.Context, config Config) (func(context.Context) error, error) {
	if !config.Enabled {
		return func(context.Context) error { return nil }, nil
	}

	res, err := resource.Merge(
		resource.Default(),
		resource.NewWithAttributes(
			semconv.SchemaURL,
			semconv.ServiceName(config.ServiceName),
			semconv.ServiceVersion(config.ServiceVersion),
			attribute.String("environment", config.Environment),
		),
	)
	if err != nil {
		return nil, err
	}

	exporter, err := newExporter(ctx, config.OTLPEndpoint)
	if err != nil {
		return nil, err
	}

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
		sdktrace.WithSampler(newSampler(config.SampleRate)),
	)

	otel.SetTracerProvider(tp)
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{},
		propagation.Baggage{},
	))

	return tp.Shutdown, nil
}

func newExporter(ctx context.Context, endpoint string) (sdktrace.SpanExporter, error) {
	if endpoint != "" {
		return otlptracehttp.New(ctx,
			otlptracehttp.WithEndpoint(endpoint),
			otlptracehttp.WithInsecure(),
		)
	}
	return stdouttrace.New(stdouttrace.WithWriter(os.Stderr), stdouttrace.WithPrettyPrint())
}

// newSampler keeps parent decisions so Reddit spans follow their tool span.
func newSampler(rate float64) sdktrace.Sampler {
	switch {
	case rate >= 1:
		return sdktrace.ParentBased(sdktrace.AlwaysSample())
	case rate <= 0:
		return sdktrace.ParentBased(sdktrace.NeverSample())
	default:
		return sdktrace.ParentBased(sdktrace.TraceIDRatioBased(rate))
	}
}

// Tracer returns the server's tracer from the global provider.
func Tracer() trace.Tracer {
	return otel.Tracer(TracerName)
}

// StartSpan starts a span on the server's tracer.
func StartSpan(ctx context.Context, name string, opts ...trace.SpanStartOption) (context.Context, trace.Span) {
	return Tracer().Start(ctx, name, opts...)
}

// StartToolSpan opens the span for one MCP tool call.
func StartToolSpan(ctx context.Context, toolName, category string, readOnly bool) (context.Context, trace.Span) {
	return StartSpan(ctx, "mcp.tool."+toolName,
		trace.WithSpanKind(trace.SpanKindServer),
		trace.WithAttributes(
			AttrToolName.String(toolName),
			AttrToolCategory.String(category),
			AttrToolReadOnly.Bool(readOnly),
		))
}

// StartRedditSpan opens a client span for one Reddit API request.
// target is omitted when empty, e.g. for the account lookup.
func StartRedditSpan(ctx context.Context, client, action, target string) (context.Context, trace.Span) {
	attrs := []attribute.KeyValue{
		AttrRedditClient.String(client),
		AttrRedditAction.String(action),
	}
	if target != "" {
		attrs = append(attrs, AttrRedditTarget.String(target))
	}
	return StartSpan(ctx, "reddit."+action,
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(attrs...))
}

// RecordRedditStatus tags the span with Reddit's HTTP status. Blank or
// non-numeric statuses (no response received) are ignored.
func RecordRedditStatus(span trace.Span, status string) {
	code, err := strconv.Atoi(status)
	if err != nil {
		return
	}
	span.SetAttributes(AttrHTTPStatus.Int(code))
	if code == http.StatusTooManyRequests {
		span.SetAttributes(AttrRedditRateLimited.Bool(true))
	}
}

// FinishSpan sets the span status from err, recording it when non-nil.
func FinishSpan(span trace.Span, err error) {
	if err == nil {
		span.SetStatus(codes.Ok, "")
		return
	}
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
}

func sampleRateFromEnv() float64 {
	rate, err := strconv.ParseFloat(os.Getenv("OTEL_TRACES_SAMPLER_ARG"), 64)
	if err != nil {
		return 1.0
	}
	return rate
}

func getEnvOrDefault(key, defaultValue string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultValue
}
