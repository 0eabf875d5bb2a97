package api

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/MikeSquared-Agency/Pareto/internal/engine"
	"github.com/MikeSquared-Agency/Pareto/internal/store"
)

func NewRouter(s store.Store, e *engine.Engine, adminToken string, logger *slog.Logger) http.Handler {
	r := chi.NewRouter()

	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.RequestID)
	r.Use(RequestLogger(logger))
	r.Use(RateLimitMiddleware(120))
	r.Use(BodyLimitMiddleware(MaxBodyBytes))

	front := NewFrontHandler(e)
	datasets := NewDatasetsHandler(s, e)
	runs := NewRunsHandler(s, e)
	admin := NewAdminHandler(e)

	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/front", front.Compute)

		r.Post("/datasets", datasets.Create)
		r.Get("/datasets", datasets.List)
		r.Get("/datasets/{id}", datasets.Get)
		r.Post("/datasets/{id}/runs", runs.Create)
		r.Get("/datasets/{id}/runs", runs.ListForDataset)

		r.Get("/runs/{id}", runs.Get)
		r.Get("/runs/{id}/explain", runs.Explain)

		r.Group(func(r chi.Router) {
			r.Use(AdminAuthMiddleware(adminToken))
			r.Get("/stats", admin.Stats)
			r.Delete("/datasets/{id}", datasets.Delete)
		})
	})

	return r
}

// NewMetricsRouter serves liveness, readiness and Prometheus metrics from g.
func NewMetricsRouter(s store.Store, g prometheus.Gatherer) http.Handler {
	r := chi.NewRouter()
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Get("/ready", func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		if err := s.Ping(ctx); err != nil {
			writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unavailable", "error": err.Error()})
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"status": "ready"})
	})
	r.Handle("/metrics", promhttp.HandlerFor(g, promhttp.HandlerOpts{}))
	return r
}
