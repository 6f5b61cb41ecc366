package handlers

import (
	"net/http"

	"github.com/betterdayenergy/esign-service/internal/ports"
)

const (
	statusOK       = "ok"
	statusReady    = "ready"
	statusNotReady = "not_ready"
)

// HealthHandler serves the liveness and readiness probes.
type HealthHandler struct {
	registry ports.HealthRegistry
}

// NewHealthHandler creates a HealthHandler backed by the given registry.
func NewHealthHandler(registry ports.HealthRegistry) *HealthHandler {
	return &HealthHandler{registry: registry}
}

// Liveness handles GET /health/live. It answers 200 whenever the process
// is up; dependency state is the readiness probe's concern.
func (h *HealthHandler) Liveness(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": statusOK})
}

// Readiness handles GET /health/ready. Any failing dependency check turns
// the response into a 503 with the per-check failures listed.
func (h *HealthHandler) Readiness(w http.ResponseWriter, r *http.Request) {
	checks := make(map[string]string)
	failed := false
	for name, err := range h.registry.CheckAll(r.Context()) {
		if err != nil {
			checks[name] = err.Error()
			failed = true
			continue
		}
		checks[name] = statusOK
	}

	status, code := statusReady, http.StatusOK
	if failed {
		status, code = statusNotReady, http.StatusServiceUnavailable
	}

	writeJSON(w, code, map[string]any{
		"status": status,
		"checks": checks,
	})
}
