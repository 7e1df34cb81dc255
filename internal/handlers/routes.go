package handlers

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// RouterConfig holds the middleware applied by NewRouter.
type RouterConfig struct {
	// Middleware wraps every route, outermost first
	Middleware []mux.MiddlewareFunc
	// APIMiddleware wraps only /api routes
	APIMiddleware []mux.MiddlewareFunc
}

// NewRouter registers every endpoint on a new router.
func (h *Handlers) NewRouter(config RouterConfig) *mux.Router {
	r := mux.NewRouter()
	r.Use(config.Middleware...)

	r.HandleFunc("/health", h.HealthCheck).Methods(http.MethodGet).Name("health")
	r.HandleFunc("/healthz", h.HealthCheck).Methods(http.MethodGet).Name("healthz")
	r.HandleFunc("/livez", h.LivenessCheck).Methods(http.MethodGet, http.MethodHead).Name("livez")
	r.HandleFunc("/readyz", h.ReadinessCheck).Methods(http.MethodGet).Name("readyz")
	r.HandleFunc("/version", h.GetVersion).Methods(http.MethodGet).Name("version")

	api := r.PathPrefix("/api").Subrouter()
	api.Use(config.APIMiddleware...)
	api.HandleFunc("/memory", h.GetMemory).Methods(http.MethodGet).Name("memory")
	api.HandleFunc("/alerts", h.GetAlerts).Methods(http.MethodGet).Name("getAlerts")
	api.HandleFunc("/alerts", h.SetAlerts).Methods(http.MethodPut).Name("setAlerts")

	return r
}

// NewMetricsRouter serves the Prometheus registry on /metrics, for the
// separate metrics listener.
func NewMetricsRouter() *mux.Router {
	r := mux.NewRouter()
	r.Handle("/metrics", promhttp.Handler()).Methods(http.MethodGet).Name("metrics")
	return r
}
