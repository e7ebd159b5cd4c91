package httpx

import "net/http"

// HealthHandlers serves the unauthenticated liveness probe.
type HealthHandlers struct {
	Service string
	Project string
}

// Health returns a simple 200 OK payload for readiness/liveness checks.
func (h *HealthHandlers) Health(w http.ResponseWriter, r *http.Request) {
	if r.Method == http.MethodHead {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		return
	}
	WriteJSON(w, http.StatusOK, map[string]any{
		"ok":      true,
		"service": h.Service,
		"project": h.Project,
	})
}
