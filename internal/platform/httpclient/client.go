// Package httpclient is the shared transport beneath every sample-api call
// made by the restapi builder. One Client exists per downstream for the life
// of the process and is safe for concurrent use.
//
// Do wraps each request in, outermost first:
//
//	circuit breaker → rate limiter → ID headers → client span → retry → net/http
//
// Inbound middleware registers the caller's IDs so they are forwarded:
//
//	ctx = httpclient.WithRequestID(ctx, "req-123")
//	ctx = httpclient.WithCorrelationID(ctx, "corr-456")
//	resp, err := client.Do(ctx, req)
package httpclient

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/sony/gobreaker/v2"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/propagation"
	semconv "go.opentelemetry.io/otel/semconv/v1.39.0"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/time/rate"

	"github.com/jsamuelsen11/go-sample-gateway/internal/platform/config"
	"github.com/jsamuelsen11/go-sample-gateway/internal/platform/telemetry"
)

const tracerName = "github.com/jsamuelsen11/go-sample-gateway/internal/platform/httpclient"

// Client sends requests to one downstream service.
type Client struct {
	httpClient  *http.Client
	serviceName string
	breaker     *gobreaker.CircuitBreaker[struct{}]
	limiter     *rate.Limiter // nil when rate limiting is disabled
	retry       retryPolicy
	metrics     *telemetry.Metrics // optional
}

// New builds the client for the downstream named serviceName, which labels
// its spans, metrics and health entry. metrics may be nil.
func New(cfg *config.ClientConfig, serviceName string, metrics *telemetry.Metrics, logger *slog.Logger) *Client {
	var limiter *rate.Limiter
	if rl := cfg.RateLimit; rl.RequestsPerSecond > 0 {
		limiter = rate.NewLimiter(rate.Limit(rl.RequestsPerSecond), rl.BurstSize)
	}

	return &Client{
		httpClient:  &http.Client{Timeout: cfg.Timeout},
		serviceName: serviceName,
		breaker:     newBreaker(serviceName, cfg.CircuitBreaker, logger),
		limiter:     limiter,
		retry:       newRetryPolicy(cfg.Retry),
		metrics:     metrics,
	}
}

// Do sends req and returns the final response.
//
// A nil error means resp carries a non-retryable status and an open body the
// caller must close. When retries run out on a retryable status, both resp
// and err are non-nil and the caller still closes resp.Body. A breaker
// rejection, limiter wait failure or transport error returns a nil resp.
func (c *Client) Do(ctx context.Context, req *http.Request) (*http.Response, error) {
	start := time.Now()

	var resp *http.Response
	_, err := c.breaker.Execute(func() (struct{}, error) {
		if c.limiter != nil {
			if err := c.limiter.Wait(ctx); err != nil {
				return struct{}{}, err
			}
		}

		forwardIDs(ctx, req.Header)

		spanCtx, span := c.startSpan(ctx, req)
		defer span.End()
		req = req.WithContext(spanCtx)

		attempts, err := c.send(spanCtx, req, &resp)
		endSpan(span, resp, attempts, err)
		return struct{}{}, err
	})

	c.record(ctx, req.Method, time.Since(start), resp, err)
	return resp, err
}

// Name identifies the downstream in the health registry.
func (c *Client) Name() string {
	return c.serviceName
}

func (c *Client) startSpan(ctx context.Context, req *http.Request) (context.Context, trace.Span) {
	ctx, span := otel.Tracer(tracerName).Start(ctx, req.Method+" "+c.serviceName,
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			semconv.HTTPRequestMethodKey.String(req.Method),
			semconv.URLFull(req.URL.Redacted()),
			semconv.ServerAddress(req.URL.Hostname()),
			attribute.String("peer.service", c.serviceName),
		),
	)
	otel.GetTextMapPropagator().Inject(ctx, propagation.HeaderCarrier(req.Header))
	return ctx, span
}

func endSpan(span trace.Span, resp *http.Response, attempts int, err error) {
	if attempts > 1 {
		span.SetAttributes(semconv.HTTPRequestResendCount(attempts - 1))
	}
	if resp != nil {
		span.SetAttributes(semconv.HTTPResponseStatusCode(resp.StatusCode))
	}
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
}

// record runs outside the breaker so rejected calls are counted too.
func (c *Client) record(ctx context.Context, method string, elapsed time.Duration, resp *http.Response, err error) {
	if c.metrics == nil {
		return
	}

	status := 0
	if resp != nil {
		status = resp.StatusCode
	}

	attrs := metric.WithAttributes(
		telemetry.AttrHTTPMethod.String(method),
		telemetry.AttrHTTPStatus.Int(status),
		telemetry.AttrPeerService.String(c.serviceName),
		telemetry.AttrResult.String(resultOf(status, err)),
	)
	c.metrics.ClientRequestDuration.Record(ctx, elapsed.Seconds(), attrs)
	c.metrics.ClientRequestTotal.Add(ctx, 1, attrs)
}

func resultOf(status int, err error) string {
	switch {
	case IsCircuitOpen(err):
		return "circuit_open"
	case status == 0, status >= http.StatusBadRequest:
		return "error"
	default:
		return "success"
	}
}
