package rest

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"
)

// Checker reports whether a backing dependency is reachable.
type Checker func(ctx context.Context) error

// HealthHandler serves liveness and readiness probes over HTTP.
type HealthHandler struct {
	logger   *slog.Logger
	checkers map[string]Checker
}

// NewHealthHandler creates a health check HTTP handler. Checkers are probed
// by readiness, keyed by dependency name.
func NewHealthHandler(logger *slog.Logger, checkers map[string]Checker) *HealthHandler {
	return &HealthHandler{logger: logger, checkers: checkers}
}

// RegisterRoutes attaches health-check routes to the given mux.
func (h *HealthHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /healthz", h.liveness)
	mux.HandleFunc("GET /readyz", h.readiness)
}

func (h *HealthHandler) liveness(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"service": "motorlend",
	})
}

func (h *HealthHandler) readiness(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	deps := make(map[string]string, len(h.checkers))
	status := http.StatusOK
	ready := "ready"
	for name, check := range h.checkers {
		if err := check(ctx); err != nil {
			h.logger.Warn("readiness check failed", "dependency", name, "error", err)
			deps[name] = "unavailable"
			status = http.StatusServiceUnavailable
			ready = "not ready"
			continue
		}
		deps[name] = "ok"
	}

	writeJSON(w, status, map[string]any{
		"status":       ready,
		"service":      "motorlend",
		"dependencies": deps,
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v) //nolint:errcheck
}
