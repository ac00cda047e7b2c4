package routes

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"woa-fleet/hangar/internal/api"
	"woa-fleet/hangar/internal/logging"
	"woa-fleet/hangar/internal/middleware"
)

// NewRouter builds the full HTTP surface on top of deps.
func NewRouter(deps *api.Dependencies, upSince time.Time) http.Handler {
	r := chi.NewRouter()

	// global middleware
	r.Use(middleware.RequestIDMiddleware)
	r.Use(middleware.MetricsMiddleware(deps.Metrics))

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   deps.Config.CORS.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
		ExposedHeaders:   []string{"X-Request-ID"},
		AllowCredentials: false,
		MaxAge:           300, // Maximum value not ignored by any of major browsers
	}))

	r.Get("/healthCheck", api.HealthCheckHandler(deps.ORM, deps.SQLX, deps.Cache, upSince))
	r.Handle("/metrics", promhttp.Handler())

	RegisterAPIRoutes(r, deps)

	logging.Info("Router initialized", "cors_origins", deps.Config.CORS.AllowedOrigins)
	return r
}
