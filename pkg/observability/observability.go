// Package observability builds the logger, tracer and metrics registry shared by
// every module of the service.
package observability

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	roundmetrics "github.com/Black-And-White-Club/golfcard/pkg/observability/metrics/round"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
)

// Config controls how observability is initialised.
type Config struct {
	ServiceName    string
	Environment    string
	LogLevel       string
	LogFormat      string
	TracesEndpoint string
	MetricsPrefix  string
	Output         io.Writer
}

// Observability bundles the pieces handed to modules at construction time.
type Observability struct {
	Logger       *slog.Logger
	Tracer       trace.Tracer
	Registry     *prometheus.Registry
	RoundMetrics roundmetrics.RoundMetrics

	shutdown func(context.Context) error
}

// NewLogger returns a slog logger writing to w in the configured format.
func NewLogger(w io.Writer, level, format string) *slog.Logger {
	if w == nil {
		w = os.Stdout
	}
	opts := &slog.HandlerOptions{Level: ParseLevel(level)}

	var handler slog.Handler
	if strings.EqualFold(format, "text") {
		handler = slog.NewTextHandler(w, opts)
	} else {
		handler = slog.NewJSONHandler(w, opts)
	}
	return slog.New(handler)
}

// ParseLevel maps a level name onto slog levels. Unknown names yield Info.
func ParseLevel(level string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// Init wires logging, tracing and metrics.
func Init(ctx context.Context, cfg Config) (*Observability, error) {
	if cfg.ServiceName == "" {
		cfg.ServiceName = "golfcard"
	}

	logger := NewLogger(cfg.Output, cfg.LogLevel, cfg.LogFormat).With(
		slog.String("service", cfg.ServiceName),
		slog.String("environment", cfg.Environment),
	)

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	metrics, err := roundmetrics.NewPrometheusMetrics(registry, cfg.MetricsPrefix)
	if err != nil {
		return nil, fmt.Errorf("failed to register round metrics: %w", err)
	}

	obs := &Observability{
		Logger:       logger,
		Registry:     registry,
		RoundMetrics: metrics,
		shutdown:     func(context.Context) error { return nil },
	}

	if cfg.TracesEndpoint == "" {
		obs.Tracer = noop.NewTracerProvider().Tracer(cfg.ServiceName)
		return obs, nil
	}

	exporter, err := otlptracegrpc.New(ctx,
		otlptracegrpc.WithEndpoint(cfg.TracesEndpoint),
		otlptracegrpc.WithInsecure(),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create trace exporter: %w", err)
	}

	provider := sdktrace.NewTracerProvider(sdktrace.WithBatcher(exporter))
	otel.SetTracerProvider(provider)
	obs.Tracer = provider.Tracer(cfg.ServiceName)
	obs.shutdown = provider.Shutdown

	logger.InfoContext(ctx, "Tracing enabled", slog.String("endpoint", cfg.TracesEndpoint))
	return obs, nil
}

// Shutdown flushes the tracer provider.
func (o *Observability) Shutdown(ctx context.Context) error {
	if o == nil || o.shutdown == nil {
		return nil
	}
	return o.shutdown(ctx)
}
