package restapi

import (
	"context"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel/metric"

	"github.com/jsamuelsen11/go-sample-gateway/internal/platform/logging"
	"github.com/jsamuelsen11/go-sample-gateway/internal/platform/telemetry"
)

const truncatedSuffix = "...(truncated)"

// observe logs the exchange at DEBUG on success and ERROR otherwise, and
// counts it by outcome.
func (a *API) observe(ctx context.Context, ex *exchange, outcome Outcome, err error, latency time.Duration) {
	a.record(ctx, ex, outcome)

	level, msg := slog.LevelDebug, "rest call completed"
	if outcome != OutcomeSuccess {
		level, msg = slog.LevelError, "rest call failed"
	}
	if !a.logger.Enabled(ctx, level) {
		return
	}

	attrs := []slog.Attr{
		slog.String("operation", "restapi.Execute"),
		slog.String("method", ex.method),
		slog.String("url", ex.url),
		slog.Duration("latency", latency),
		slog.String("outcome", outcome.String()),
		slog.Int("status", ex.statusCode),
		logging.HeaderGroup("request_headers", ex.reqHeader),
		slog.String("request_body", a.clip(ex.reqBody)),
		logging.HeaderGroup("response_headers", ex.header),
		slog.String("response_body", a.clip(ex.raw)),
	}
	if err != nil {
		attrs = append(attrs, slog.String("error", err.Error()))
	}

	a.logger.LogAttrs(ctx, level, msg, attrs...)
}

func (a *API) record(ctx context.Context, ex *exchange, outcome Outcome) {
	if a.metrics == nil {
		return
	}
	a.metrics.RestCallTotal.Add(ctx, 1, metric.WithAttributes(
		telemetry.AttrHTTPMethod.String(ex.method),
		telemetry.AttrHTTPStatus.Int(ex.statusCode),
		telemetry.AttrOutcome.String(outcome.String()),
	))
}

// clip renders at most maxBodyLog bytes of b.
func (a *API) clip(b []byte) string {
	if a.maxBodyLog == 0 || len(b) == 0 {
		return ""
	}
	if len(b) > a.maxBodyLog {
		return string(b[:a.maxBodyLog]) + truncatedSuffix
	}
	return string(b)
}
