package middleware

import (
	"net/http"

	"github.com/go-chi/cors"

	"github.com/jsamuelsen11/go-sample-gateway/internal/domain/clientinfo"
	"github.com/jsamuelsen11/go-sample-gateway/internal/platform/config"
)

// CORS returns middleware that answers cross-origin preflights for the API.
// With no allowed origins configured it passes requests through untouched.
func CORS(cfg config.CORSConfig) func(http.Handler) http.Handler {
	if len(cfg.AllowedOrigins) == 0 {
		return func(next http.Handler) http.Handler { return next }
	}
	return cors.Handler(cors.Options{
		AllowedOrigins: cfg.AllowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{
			"Accept", "Accept-Language", "Authorization", "Content-Type",
			headerRequestID, headerCorrelationID, clientinfo.HeaderName, HeaderTimeZone,
		},
		ExposedHeaders: []string{headerRequestID, headerCorrelationID},
		MaxAge:         int(cfg.MaxAge.Seconds()),
	})
}
