package http

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"x13adjust/internal/config"
	"x13adjust/internal/middleware"
)

// NewRouter assembles the service routes with the standard middleware
// chain.
func NewRouter(cfg *config.Config, logger *slog.Logger) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.StructuredLogger(logger))
	r.Use(middleware.Recoverer(logger))
	if cfg.Server.RateLimit.Enabled {
		limiter := middleware.NewRateLimiter(cfg.Server.RateLimit.RPS, cfg.Server.RateLimit.Burst, logger)
		r.Use(limiter.Handler)
	}

	adjustHandler := NewAdjustHandler(cfg.X13(), logger)
	healthHandler := NewHealthHandler(cfg.X13(), logger)

	r.Route("/api", func(r chi.Router) {
		r.Mount("/adjust", adjustHandler.Routes())
		r.Get("/health", healthHandler.HealthCheck)
		r.Get("/health/live", healthHandler.LivenessCheck)
	})
	r.Handle("/metrics", promhttp.Handler())

	return r
}
