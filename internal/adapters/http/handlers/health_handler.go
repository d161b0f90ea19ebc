package handlers

import (
	"log/slog"
	"net/http"

	"github.com/jsamuelsen11/go-sample-gateway/internal/adapters/http/dto"
	"github.com/jsamuelsen11/go-sample-gateway/internal/platform/logging"
	"github.com/jsamuelsen11/go-sample-gateway/internal/ports"
)

// HealthHandler serves /health/live and /health/ready.
type HealthHandler struct {
	registry ports.HealthRegistry
}

// NewHealthHandler returns a HealthHandler backed by registry.
func NewHealthHandler(registry ports.HealthRegistry) *HealthHandler {
	return &HealthHandler{registry: registry}
}

// Liveness reports that the process is serving. It never consults
// downstream dependencies.
func (h *HealthHandler) Liveness(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Cache-Control", "no-store")
	respond(w, r, http.StatusOK, dto.HealthResponse{Status: dto.HealthOK})
}

// Readiness runs every registered check. It answers 200 when all pass and
// 503 otherwise, listing each check's outcome.
func (h *HealthHandler) Readiness(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	resp, ready := dto.ToReadinessResponse(h.registry.CheckAll(ctx))

	w.Header().Set("Cache-Control", "no-store")
	if !ready {
		logging.FromContext(ctx).WarnContext(ctx, "readiness check failed",
			slog.Any("checks", resp.Checks),
		)
		respond(w, r, http.StatusServiceUnavailable, resp)
		return
	}
	respond(w, r, http.StatusOK, resp)
}
