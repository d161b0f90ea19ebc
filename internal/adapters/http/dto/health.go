package dto

import "github.com/jsamuelsen11/go-sample-gateway/internal/platform/health"

// Health status values reported by the /health endpoints.
const (
	HealthOK       = "ok"
	HealthReady    = "ready"
	HealthNotReady = "not_ready"
)

// HealthResponse is the body of the liveness and readiness endpoints.
// Checks maps each downstream dependency to "ok" or its failure message and
// is omitted for liveness.
type HealthResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks,omitempty"`
}

// ToReadinessResponse converts registry results into a readiness body. It
// reports whether every check passed.
func ToReadinessResponse(results map[string]error) (HealthResponse, bool) {
	resp := HealthResponse{Status: HealthReady, Checks: make(map[string]string, len(results))}
	for name, err := range results {
		if err != nil {
			resp.Checks[name] = err.Error()
			continue
		}
		resp.Checks[name] = HealthOK
	}
	ready := health.Healthy(results)
	if !ready {
		resp.Status = HealthNotReady
	}
	return resp, ready
}
