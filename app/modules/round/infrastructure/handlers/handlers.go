package roundhandlers

import (
	"log/slog"
	"net/http"

	roundservice "github.com/Black-And-White-Club/golfcard/app/modules/round/application"
	"github.com/Black-And-White-Club/golfcard/pkg/observability/attr"
	"github.com/go-chi/chi/v5"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
)

// RoundHandlers serves the round store and the scoring functions over HTTP.
type RoundHandlers struct {
	service roundservice.Service
	logger  *slog.Logger
	tracer  trace.Tracer
}

// NewRoundHandlers creates a new RoundHandlers.
func NewRoundHandlers(service roundservice.Service, logger *slog.Logger, tracer trace.Tracer) Handlers {
	if logger == nil {
		logger = slog.Default()
	}
	if tracer == nil {
		tracer = noop.NewTracerProvider().Tracer("roundhandlers")
	}
	return &RoundHandlers{
		service: service,
		logger:  logger,
		tracer:  tracer,
	}
}

// Tracing starts a server span per request. The span is renamed to the matched
// route once chi has resolved it.
func (h *RoundHandlers) Tracing(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx, span := h.tracer.Start(r.Context(), r.Method+" "+r.URL.Path,
			trace.WithSpanKind(trace.SpanKindServer),
			trace.WithAttributes(
				attribute.String("http.request.method", r.Method),
				attribute.String(attr.CorrelationIDKey, attr.ExtractCorrelationID(r.Context()).Value.String()),
			),
		)
		defer span.End()

		sw := &statusWriter{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(sw, r.WithContext(ctx))

		if rc := chi.RouteContext(r.Context()); rc != nil {
			if pattern := rc.RoutePattern(); pattern != "" {
				span.SetName(r.Method + " " + pattern)
				span.SetAttributes(attribute.String("http.route", pattern))
			}
		}
		span.SetAttributes(attribute.Int("http.response.status_code", sw.status))
		if sw.status >= http.StatusInternalServerError {
			span.SetStatus(codes.Error, http.StatusText(sw.status))
		}
	})
}

type statusWriter struct {
	http.ResponseWriter
	status int
}

func (w *statusWriter) WriteHeader(status int) {
	w.status = status
	w.ResponseWriter.WriteHeader(status)
}
