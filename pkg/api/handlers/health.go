package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/skydrive/skydrive/pkg/drive/store"
)

// HealthCheckTimeout is the maximum time allowed for health check operations.
// It applies to the store ping so a slow database cannot block probes
// indefinitely.
const HealthCheckTimeout = 5 * time.Second

// HealthResponse is the standard envelope for health endpoints.
type HealthResponse struct {
	Status    string      `json:"status"`
	Timestamp time.Time   `json:"timestamp"`
	Data      interface{} `json:"data,omitempty"`
	Error     string      `json:"error,omitempty"`
}

// HealthHandler handles health check endpoints.
//
// Health endpoints are unauthenticated and provide:
//   - Liveness probe: Is the server process running?
//   - Readiness probe: Can the server reach its database?
type HealthHandler struct {
	store     store.Store
	startTime time.Time
}

// NewHealthHandler creates a new health handler.
//
// The store parameter may be nil, in which case the readiness probe
// reports unhealthy.
func NewHealthHandler(s store.Store) *HealthHandler {
	return &HealthHandler{
		store:     s,
		startTime: time.Now(),
	}
}

// Liveness handles GET /health - simple liveness probe.
//
// Returns 200 OK if the server process is running. This endpoint is designed
// for Kubernetes liveness probes and should always succeed as long as the
// HTTP server is responsive.
func (h *HealthHandler) Liveness(w http.ResponseWriter, r *http.Request) {
	uptime := time.Since(h.startTime)
	WriteJSON(w, http.StatusOK, healthyResponse(map[string]interface{}{
		"service":    "skydrive",
		"started_at": h.startTime.UTC().Format(time.RFC3339),
		"uptime":     uptime.Round(time.Second).String(),
		"uptime_sec": int64(uptime.Seconds()),
	}))
}

// Readiness handles GET /health/ready - readiness probe.
// Returns 200 OK if the database answers a ping within HealthCheckTimeout.
func (h *HealthHandler) Readiness(w http.ResponseWriter, r *http.Request) {
	if h.store == nil {
		WriteJSON(w, http.StatusServiceUnavailable, unhealthyResponse("store not initialized"))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), HealthCheckTimeout)
	defer cancel()

	start := time.Now()
	if err := h.store.Ping(ctx); err != nil {
		WriteJSON(w, http.StatusServiceUnavailable, unhealthyResponse(err.Error()))
		return
	}

	WriteJSON(w, http.StatusOK, healthyResponse(map[string]interface{}{
		"database": map[string]interface{}{
			"status":  "healthy",
			"latency": time.Since(start).String(),
		},
	}))
}

func healthyResponse(data interface{}) HealthResponse {
	return HealthResponse{
		Status:    "healthy",
		Timestamp: time.Now().UTC(),
		Data:      data,
	}
}

func unhealthyResponse(errMsg string) HealthResponse {
	return HealthResponse{
		Status:    "unhealthy",
		Timestamp: time.Now().UTC(),
		Error:     errMsg,
	}
}
