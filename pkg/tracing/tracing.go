package tracing

import (
	"context"
	"fmt"
	"os"
	"strconv"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.24.0"
	"go.opentelemetry.io/otel/trace"
)

const (
	// DefaultServiceName is reported when the binary does not set its own.
	DefaultServiceName = "newsvol"
	DefaultEndpoint    = "localhost:4317"
	serviceVersion     = "1.0.0"
)

// Options controls how one binary exports its spans.
type Options struct {
	ServiceName string
	Endpoint    string
	// Export false keeps span creation but drops every span locally.
	Export bool
	// SampleRatio in (0, 1]; anything else samples everything.
	SampleRatio float64
}

var newTraceExporter = func(ctx context.Context, endpoint string) (sdktrace.SpanExporter, error) {
	return otlptracegrpc.New(ctx,
		otlptracegrpc.WithEndpoint(endpoint),
		otlptracegrpc.WithInsecure(),
	)
}

// OptionsFromEnv reads TRACING_ENABLED, OTEL_EXPORTER_OTLP_ENDPOINT and
// OTEL_TRACES_SAMPLER_ARG.
func OptionsFromEnv(serviceName string) Options {
	opts := Options{
		ServiceName: serviceName,
		Endpoint:    os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT"),
		Export:      os.Getenv("TRACING_ENABLED") != "false",
		SampleRatio: 1,
	}
	if v := os.Getenv("OTEL_TRACES_SAMPLER_ARG"); v != "" {
		if ratio, err := strconv.ParseFloat(v, 64); err == nil {
			opts.SampleRatio = ratio
		}
	}
	return opts
}

// InitTracer installs the global tracer provider using OptionsFromEnv.
func InitTracer(ctx context.Context, serviceName string) (*sdktrace.TracerProvider, trace.Tracer, error) {
	return Setup(ctx, OptionsFromEnv(serviceName))
}

// Setup builds the tracer provider described by opts and makes it global.
func Setup(ctx context.Context, opts Options) (*sdktrace.TracerProvider, trace.Tracer, error) {
	if opts.ServiceName == "" {
		opts.ServiceName = DefaultServiceName
	}

	if !opts.Export {
		tp := sdktrace.NewTracerProvider()
		otel.SetTracerProvider(tp)
		return tp, tp.Tracer(opts.ServiceName), nil
	}

	if opts.Endpoint == "" {
		opts.Endpoint = DefaultEndpoint
	}

	exporter, err := newTraceExporter(ctx, opts.Endpoint)
	if err != nil {
		return nil, nil, fmt.Errorf("otlp exporter %s: %w", opts.Endpoint, err)
	}

	res, err := resource.New(ctx,
		resource.WithAttributes(
			semconv.ServiceName(opts.ServiceName),
			semconv.ServiceNamespace(DefaultServiceName),
			semconv.ServiceVersion(serviceVersion),
		),
	)
	if err != nil {
		return nil, nil, err
	}

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
		sdktrace.WithSampler(sampler(opts.SampleRatio)),
	)

	otel.SetTracerProvider(tp)
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{},
		propagation.Baggage{},
	))

	return tp, tp.Tracer(opts.ServiceName), nil
}

func sampler(ratio float64) sdktrace.Sampler {
	if ratio <= 0 || ratio >= 1 {
		return sdktrace.AlwaysSample()
	}
	return sdktrace.ParentBased(sdktrace.TraceIDRatioBased(ratio))
}
