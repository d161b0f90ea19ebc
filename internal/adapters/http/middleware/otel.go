package middleware

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/propagation"
	semconv "go.opentelemetry.io/otel/semconv/v1.39.0"
	"go.opentelemetry.io/otel/trace"

	"github.com/jsamuelsen11/go-sample-gateway/internal/platform/telemetry"
)

const tracerName = "github.com/jsamuelsen11/go-sample-gateway/internal/adapters/http"

// OpenTelemetry starts a server span per request, continuing any W3C trace
// the caller sent, so sample-api calls made by the handler become its
// children. Once the handler returns, the span is renamed after the chi
// route pattern (e.g. "GET /api/v1/samples/{id}") and server metrics are
// recorded under that route. Nil metrics disables recording.
func OpenTelemetry(metrics *telemetry.Metrics) func(http.Handler) http.Handler {
	tracer := otel.Tracer(tracerName)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			parent := otel.GetTextMapPropagator().Extract(r.Context(), propagation.HeaderCarrier(r.Header))
			ctx, span := tracer.Start(parent, r.Method+" "+r.URL.Path,
				trace.WithSpanKind(trace.SpanKindServer),
				trace.WithAttributes(
					semconv.HTTPRequestMethodKey.String(r.Method),
					semconv.URLPath(r.URL.Path),
				),
			)
			defer span.End()

			rw := newResponseWriter(w)
			next.ServeHTTP(rw, r.WithContext(ctx))

			o := served{method: r.Method, route: matchedRoute(r), status: rw.Status()}
			o.annotate(span)
			o.record(ctx, metrics, time.Since(start))
		})
	}
}

// served describes a finished request. route is empty when chi matched
// nothing.
type served struct {
	method string
	route  string
	status int
}

func matchedRoute(r *http.Request) string {
	rctx := chi.RouteContext(r.Context())
	if rctx == nil {
		return ""
	}
	return rctx.RoutePattern()
}

func (o served) annotate(span trace.Span) {
	if o.route != "" {
		span.SetName(o.method + " " + o.route)
		span.SetAttributes(semconv.HTTPRoute(o.route))
	}
	span.SetAttributes(semconv.HTTPResponseStatusCode(o.status))
	if o.status >= http.StatusInternalServerError {
		span.SetStatus(codes.Error, http.StatusText(o.status))
	}
}

func (o served) record(ctx context.Context, metrics *telemetry.Metrics, elapsed time.Duration) {
	if metrics == nil {
		return
	}

	route, result := o.route, "success"
	if route == "" {
		route = "unmatched"
	}
	if o.status >= http.StatusBadRequest {
		result = "error"
	}

	attrs := metric.WithAttributes(
		telemetry.AttrHTTPMethod.String(o.method),
		telemetry.AttrHTTPRoute.String(route),
		telemetry.AttrHTTPStatus.Int(o.status),
		telemetry.AttrResult.String(result),
	)
	metrics.ServerRequestDuration.Record(ctx, elapsed.Seconds(), attrs)
	metrics.ServerRequestTotal.Add(ctx, 1, attrs)
}
