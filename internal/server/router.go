package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"

	"go-chi-remote-calc/internal/calculator"
	"go-chi-remote-calc/internal/handlers"
	"go-chi-remote-calc/internal/observability"
)

// NewRouter wires the middleware chain, the operational endpoints and the
// calculator routes. A nil gatherer serves the default Prometheus registry.
func NewRouter(calc *calculator.Handler, gatherer prometheus.Gatherer) http.Handler {

	r := chi.NewRouter()

	r.Use(observability.RequestIDMiddleware)
	r.Use(observability.TracingMiddleware)
	r.Use(observability.LoggingMiddleware)

	r.Get("/health", handlers.Health)

	r.Handle("/metrics", observability.PrometheusHandler(gatherer))

	calculator.RegisterRoutes(r, calc)

	return r
}
