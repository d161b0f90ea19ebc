package middleware

import (
	"log/slog"
	"net/http"

	"github.com/jsamuelsen11/go-sample-gateway/internal/app/appctx"
	"github.com/jsamuelsen11/go-sample-gateway/internal/platform/logging"
)

// AppContext gives each request its own appctx.RequestContext, the memo
// that lets a batch lookup fetch each sample from sample-api once. Memoized
// fetches run on the context the RequestContext wraps, so it must run after
// CorrelationID, ClientInfo and Timeout for those fetches to carry their
// values and the handler deadline.
//
// When the handler memoized anything the entry count is logged at debug.
func AppContext() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			rc := appctx.New(ctx)
			next.ServeHTTP(w, r.WithContext(appctx.WithRequestContext(ctx, rc)))

			if n := rc.Len(); n > 0 {
				logging.FromContext(ctx).DebugContext(ctx, "request memo released",
					slog.Int("entries", n),
				)
			}
		})
	}
}
