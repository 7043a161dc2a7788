package http

import (
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/go-chi/render"

	"x13adjust/internal/infrastructure"
	"x13adjust/internal/x13"
)

// HealthHandler reports service and engine health.
type HealthHandler struct {
	cfg    x13.Config
	logger *slog.Logger
	start  time.Time
}

// NewHealthHandler creates a new health handler.
func NewHealthHandler(cfg x13.Config, logger *slog.Logger) *HealthHandler {
	return &HealthHandler{
		cfg:    cfg,
		logger: logger.With(slog.String("handler", "health")),
		start:  time.Now(),
	}
}

// HealthStatus is the body of the health endpoints.
type HealthStatus struct {
	Status        string `json:"status"`
	Version       string `json:"version"`
	UptimeSeconds int64  `json:"uptime_seconds"`
	BinaryPath    string `json:"binary_path"`
	BinaryPresent bool   `json:"binary_present"`
}

// HealthCheck handles GET /api/health. The service is degraded when
// the adjustment binary is missing: requests still succeed but every
// series falls back to its input.
func (h *HealthHandler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	_, err := os.Stat(h.cfg.BinaryPath)
	status := &HealthStatus{
		Status:        "ok",
		Version:       infrastructure.ServiceVersion,
		UptimeSeconds: int64(time.Since(h.start).Seconds()),
		BinaryPath:    h.cfg.BinaryPath,
		BinaryPresent: err == nil,
	}
	if err != nil {
		status.Status = "degraded"
		h.logger.WarnContext(r.Context(), "Adjustment binary missing, reporting degraded",
			slog.String("binary", h.cfg.BinaryPath),
			slog.Any("error", err))
	}
	render.JSON(w, r, status)
}

// LivenessCheck handles GET /api/health/live.
func (h *HealthHandler) LivenessCheck(w http.ResponseWriter, r *http.Request) {
	render.JSON(w, r, map[string]string{"status": "alive"})
}
