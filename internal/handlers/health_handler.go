package handlers

import (
	"net/http"

	"shipdash-backend/internal/health"
	"shipdash-backend/pkg/utils"
)

type HealthHandler struct {
	checker *health.HealthChecker
}

func NewHealthHandler(checker *health.HealthChecker) *HealthHandler {
	return &HealthHandler{checker: checker}
}

// BasicHealth handles GET /health (liveness probe)
func (h *HealthHandler) BasicHealth(w http.ResponseWriter, r *http.Request) {
	utils.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// ReadinessHealth handles GET /health/ready. Ready means the upstream
// API answers; a degraded cache does not block readiness.
func (h *HealthHandler) ReadinessHealth(w http.ResponseWriter, r *http.Request) {
	status := h.checker.CheckBasic()

	code := http.StatusOK
	if status.Status != "healthy" {
		code = http.StatusServiceUnavailable
	}
	utils.JSON(w, code, status)
}
