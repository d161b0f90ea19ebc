package middleware

import (
	"context"
	"net/http"

	"github.com/google/uuid"

	"github.com/jsamuelsen11/go-sample-gateway/internal/platform/httpclient"
)

const (
	headerRequestID = "X-Request-ID"

	// maxIDLength bounds caller-supplied request and correlation IDs.
	maxIDLength = 128
)

// requestIDKey is distinct from the httpclient key; each package reads only
// its own.
type requestIDKey struct{}

// WithRequestID stores id in ctx and registers it with the shared transport
// as the outbound X-Request-ID.
func WithRequestID(ctx context.Context, id string) context.Context {
	return httpclient.WithRequestID(context.WithValue(ctx, requestIDKey{}, id), id)
}

// RequestIDFromContext returns the request ID, or "" outside a request.
func RequestIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey{}).(string)
	return id
}

// RequestID assigns each request an ID. A well-formed inbound X-Request-ID is
// kept; anything else is replaced by a random UUID. The ID is echoed on the
// response.
func RequestID() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id := r.Header.Get(headerRequestID)
			if !acceptableID(id) {
				id = uuid.NewString()
			}
			w.Header().Set(headerRequestID, id)
			next.ServeHTTP(w, r.WithContext(WithRequestID(r.Context(), id)))
		})
	}
}

// acceptableID reports whether a caller-supplied ID may be propagated into
// logs and outbound headers: 1 to maxIDLength characters of [A-Za-z0-9._:-].
func acceptableID(id string) bool {
	if id == "" || len(id) > maxIDLength {
		return false
	}
	for _, c := range id {
		switch {
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9':
		case c == '-', c == '_', c == '.', c == ':':
		default:
			return false
		}
	}
	return true
}
