// Package middleware provides HTTP middleware for the inbound request pipeline.
//
// The server registers the chain in this order:
//
//	Recovery, RequestID, CorrelationID, CORS, OpenTelemetry, Logging,
//	ClientInfo, AppContext, Timeout, then the handler.
//
// ClientInfo must precede AppContext so memoized downstream fetches see the
// caller's locale and time zone.
package middleware

import "net/http"

// responseWriter records what a handler sent so Recovery, OpenTelemetry and
// Logging can report it after the handler returns.
type responseWriter struct {
	http.ResponseWriter
	status    int
	committed bool
	bytes     int64
}

func newResponseWriter(w http.ResponseWriter) *responseWriter {
	return &responseWriter{ResponseWriter: w, status: http.StatusOK}
}

// WriteHeader forwards the first status code and ignores later ones.
func (rw *responseWriter) WriteHeader(code int) {
	if rw.committed {
		return
	}
	rw.status = code
	rw.committed = true
	rw.ResponseWriter.WriteHeader(code)
}

func (rw *responseWriter) Write(b []byte) (int, error) {
	rw.committed = true
	n, err := rw.ResponseWriter.Write(b)
	rw.bytes += int64(n)
	return n, err
}

// Status is the status sent, or 200 when the handler wrote nothing.
func (rw *responseWriter) Status() int {
	return rw.status
}

// BytesWritten is the number of body bytes sent.
func (rw *responseWriter) BytesWritten() int64 {
	return rw.bytes
}

// Committed reports whether headers have gone out, after which the status
// can no longer change.
func (rw *responseWriter) Committed() bool {
	return rw.committed
}

// Unwrap exposes the underlying writer to http.ResponseController.
func (rw *responseWriter) Unwrap() http.ResponseWriter {
	return rw.ResponseWriter
}
