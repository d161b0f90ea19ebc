package middleware

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"runtime/debug"

	"github.com/jsamuelsen11/go-sample-gateway/internal/adapters/http/dto"
)

var errPanicked = errors.New("handler panicked")

// Recovery turns a handler panic into a logged 500 problem response. The
// panic value and stack stay in the log. A panic after the handler has
// started writing only logs, and http.ErrAbortHandler is re-raised for
// net/http to drop the connection.
func Recovery(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			rw := newResponseWriter(w)
			defer func() {
				v := recover()
				if v == nil {
					return
				}
				if err, ok := v.(error); ok && errors.Is(err, http.ErrAbortHandler) {
					panic(v)
				}

				logPanic(logger, r, rw, v)
				if rw.Committed() {
					return
				}
				rw.Header().Set("Connection", "close")
				dto.WriteErrorResponse(rw, r, errPanicked)
			}()

			next.ServeHTTP(rw, r)
		})
	}
}

// logPanic reads the request ID from the response header because Recovery
// wraps RequestID and never sees its context.
func logPanic(logger *slog.Logger, r *http.Request, rw *responseWriter, v any) {
	logger.LogAttrs(r.Context(), slog.LevelError, "panic recovered",
		slog.String("panic", fmt.Sprint(v)),
		slog.String("stack", string(debug.Stack())),
		slog.String("method", r.Method),
		slog.String("path", r.URL.Path),
		slog.String("request_id", rw.Header().Get(headerRequestID)),
		slog.Bool("response_committed", rw.Committed()),
	)
}
