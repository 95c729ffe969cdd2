package handlers

import (
	"net/http"
	"time"

	"github.com/tagfiler/tagfiler/pkg/metastore/store"
	"github.com/tagfiler/tagfiler/pkg/metrics"
)

// HealthHandler serves liveness and readiness probes.
type HealthHandler struct {
	store   *store.Store
	metrics *metrics.Metrics
}

// NewHealthHandler creates a new HealthHandler.
func NewHealthHandler(st *store.Store, m *metrics.Metrics) *HealthHandler {
	return &HealthHandler{store: st, metrics: m}
}

// HealthResponse is the body of health probe responses.
type HealthResponse struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
	Backend   string    `json:"backend,omitempty"`
	Error     string    `json:"error,omitempty"`
}

// Liveness handles GET /health. Always succeeds while the process runs.
func (h *HealthHandler) Liveness(w http.ResponseWriter, r *http.Request) {
	WriteJSONOK(w, HealthResponse{
		Status:    "healthy",
		Timestamp: time.Now().UTC(),
	})
}

// Readiness handles GET /health/ready. Performs a metadata store round
// trip, so an unreachable database reports unready.
func (h *HealthHandler) Readiness(w http.ResponseWriter, r *http.Request) {
	if err := h.store.Healthcheck(r.Context()); err != nil {
		h.metrics.SetStoreHealth(false)
		WriteJSON(w, http.StatusServiceUnavailable, HealthResponse{
			Status:    "unhealthy",
			Timestamp: time.Now().UTC(),
			Backend:   string(h.store.Type()),
			Error:     err.Error(),
		})
		return
	}

	h.metrics.SetStoreHealth(true)
	WriteJSONOK(w, HealthResponse{
		Status:    "healthy",
		Timestamp: time.Now().UTC(),
		Backend:   string(h.store.Type()),
	})
}
