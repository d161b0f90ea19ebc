package middleware

import (
	"context"
	"net/http"

	"github.com/jsamuelsen11/go-sample-gateway/internal/platform/httpclient"
)

const headerCorrelationID = "X-Correlation-ID"

type correlationIDKey struct{}

// WithCorrelationID stores id in ctx for handlers and registers it with the
// shared transport, so every sample-api call made while serving the request
// carries the same X-Correlation-ID.
func WithCorrelationID(ctx context.Context, id string) context.Context {
	return httpclient.WithCorrelationID(context.WithValue(ctx, correlationIDKey{}, id), id)
}

// CorrelationIDFromContext returns the request's correlation ID, or "".
func CorrelationIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(correlationIDKey{}).(string)
	return id
}

// CorrelationID reuses a well-formed inbound X-Correlation-ID and otherwise
// falls back to the request ID, echoing the chosen value on the response.
// It must run after RequestID.
func CorrelationID() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			id := r.Header.Get(headerCorrelationID)
			if !acceptableID(id) {
				id = RequestIDFromContext(ctx)
			}
			w.Header().Set(headerCorrelationID, id)
			next.ServeHTTP(w, r.WithContext(WithCorrelationID(ctx, id)))
		})
	}
}
