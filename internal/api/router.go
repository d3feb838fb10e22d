package api

import (
	"net/http"

	"field-route-service/internal/api/handlers"
	"field-route-service/internal/ports"
)

// NewRouter wires HTTP handlers with their dependencies and returns an http.Handler.
// This is the API composition root (handlers stay unaware of concrete adapters).
func NewRouter(repo ports.JobRepository, provider ports.SegmentProvider, planCache ports.PlanCache) http.Handler {
	mux := http.NewServeMux()

	jobHandler := &handlers.JobHandler{Repo: repo}
	routeHandler := &handlers.RouteHandler{
		Repo:      repo,
		Provider:  provider,
		PlanCache: planCache,
	}

	mux.HandleFunc("/health", handlers.Health)
	mux.HandleFunc("/jobs", jobHandler.List)
	mux.HandleFunc("/routes", routeHandler.Dispatch)
	mux.HandleFunc("/routes/metrics", routeHandler.Metrics)

	return loggingMiddleware(mux)
}
