package httpclient

import (
	"context"
	"net/http"
)

type (
	requestIDKey     struct{}
	correlationIDKey struct{}
)

// forwarded lists the inbound identifiers copied onto every outbound call.
var forwarded = []struct {
	header string
	key    any
}{
	{header: "X-Request-ID", key: requestIDKey{}},
	{header: "X-Correlation-ID", key: correlationIDKey{}},
}

// WithRequestID stores the inbound request ID for forwarding as X-Request-ID.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, id)
}

// WithCorrelationID stores the correlation ID for forwarding as
// X-Correlation-ID.
func WithCorrelationID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, correlationIDKey{}, id)
}

func forwardIDs(ctx context.Context, h http.Header) {
	for _, f := range forwarded {
		if id, ok := ctx.Value(f.key).(string); ok && id != "" {
			h.Set(f.header, id)
		}
	}
}
