package observability

import (
	"context"
	"fmt"
	"io"
	"os"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
)

// Tracing exporters.
const (
	TracingNone   = "none"
	TracingStdout = "stdout"
	TracingFile   = "file"
)

// TracingConfig configures [SetupTracing].
type TracingConfig struct {
	// Exporter is "none", "stdout" or "file". Empty means "none".
	Exporter string

	// File receives JSON spans for the "file" exporter.
	File string

	// ServiceName identifies this process in spans. Default: "archmodel".
	ServiceName string
}

// Tracing owns the tracer provider installed by [SetupTracing].
type Tracing struct {
	provider *sdktrace.TracerProvider
	tracer   trace.Tracer
	closer   io.Closer
}

// SetupTracing installs the global OpenTelemetry tracer provider.
//
// With the "none" exporter, a no-op provider is installed and spans cost
// nothing. Call [Tracing.Shutdown] before exit to flush pending spans.
func SetupTracing(cfg TracingConfig) (*Tracing, error) {
	name := cfg.ServiceName
	if name == "" {
		name = "archmodel"
	}

	var (
		exporter sdktrace.SpanExporter
		closer   io.Closer
		err      error
	)
	switch cfg.Exporter {
	case TracingNone, "":
		p := noop.NewTracerProvider()
		otel.SetTracerProvider(p)
		return &Tracing{tracer: p.Tracer(name)}, nil
	case TracingStdout:
		exporter, err = stdouttrace.New(stdouttrace.WithPrettyPrint())
	case TracingFile:
		if cfg.File == "" {
			return nil, fmt.Errorf("tracing file required for file exporter")
		}
		var f *os.File
		f, err = os.OpenFile(cfg.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return nil, fmt.Errorf("open trace file: %w", err)
		}
		closer = f
		exporter, err = stdouttrace.New(stdouttrace.WithWriter(f))
	default:
		return nil, fmt.Errorf("unsupported tracing exporter: %s", cfg.Exporter)
	}
	if err != nil {
		if closer != nil {
			closer.Close()
		}
		return nil, fmt.Errorf("create %s exporter: %w", cfg.Exporter, err)
	}

	provider := sdktrace.NewTracerProvider(
		sdktrace.WithResource(resource.NewSchemaless(attribute.String("service.name", name))),
		sdktrace.WithSyncer(exporter),
	)
	otel.SetTracerProvider(provider)

	return &Tracing{provider: provider, tracer: provider.Tracer(name), closer: closer}, nil
}

// Tracer returns the process tracer. It is a no-op tracer when tracing is
// disabled.
func (t *Tracing) Tracer() trace.Tracer {
	return t.tracer
}

// Enabled reports whether spans are exported.
func (t *Tracing) Enabled() bool {
	return t.provider != nil
}

// Shutdown flushes pending spans and releases the trace file.
func (t *Tracing) Shutdown(ctx context.Context) error {
	var err error
	if t.provider != nil {
		err = t.provider.Shutdown(ctx)
	}
	if t.closer != nil {
		if cerr := t.closer.Close(); err == nil {
			err = cerr
		}
	}
	return err
}
