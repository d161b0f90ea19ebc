// Package http is the gateway's inbound HTTP adapter: the chi router that
// exposes sample lookups and health probes, and the server lifecycle.
package http

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/jsamuelsen11/go-sample-gateway/internal/adapters/http/dto"
	"github.com/jsamuelsen11/go-sample-gateway/internal/adapters/http/handlers"
	"github.com/jsamuelsen11/go-sample-gateway/internal/domain"
)

// NewRouter registers the sample and health routes behind middlewares,
// applied in the order given. Unknown paths and methods answer with problem
// details like every other error.
func NewRouter(
	sampleHandler *handlers.SampleHandler,
	healthHandler *handlers.HealthHandler,
	middlewares ...func(http.Handler) http.Handler,
) http.Handler {
	r := chi.NewRouter()
	r.Use(middlewares...)

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		dto.WriteErrorResponse(w, r, fmt.Errorf("no route for %s: %w", r.URL.Path, domain.ErrNotFound))
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		dto.WriteStatusResponse(w, r, http.StatusMethodNotAllowed,
			fmt.Sprintf("%s is not supported for %s", r.Method, r.URL.Path))
	})

	r.Get("/health/live", healthHandler.Liveness)
	r.Get("/health/ready", healthHandler.Readiness)

	r.Route("/api/v1/samples", func(r chi.Router) {
		r.Get("/", sampleHandler.ListSamples)
		// Before /{id} so "search" is never parsed as an ID.
		r.Get("/search", sampleHandler.SearchSamples)
		r.Post("/search", sampleHandler.SearchSamplesByPost)
		r.Get("/{id}", sampleHandler.GetSample)
	})

	return r
}
