package handlers

import (
	"net/http"
	"runtime"
	"time"

	"memwatch/internal/memory"
	"memwatch/internal/startup"
)

const (
	statusHealthy  = "healthy"
	statusStarting = "starting"
	statusDegraded = "degraded"
)

// HealthResponse contains the health check response
type HealthResponse struct {
	Status        string `json:"status"`
	Ready         bool   `json:"ready"`
	Version       string `json:"version"`
	Uptime        string `json:"uptime"`
	WatchState    string `json:"watchState"`
	Ticks         uint64 `json:"ticks"`
	LastTick      string `json:"lastTick,omitempty"`
	LastError     string `json:"lastError,omitempty"`
	AlertsEnabled bool   `json:"alertsEnabled"`

	// System info
	GoVersion    string `json:"goVersion"`
	NumGoroutine int    `json:"numGoroutine"`
}

// HealthCheck returns the health status of the service
func (h *Handlers) HealthCheck(w http.ResponseWriter, _ *http.Request) {
	status := h.watch.Status()
	ready := h.isReady()

	response := HealthResponse{
		Ready:         ready,
		Version:       startup.Version,
		Uptime:        time.Since(h.startTime).Round(time.Second).String(),
		WatchState:    status.State.String(),
		Ticks:         status.Ticks,
		LastError:     status.LastError,
		AlertsEnabled: h.alerts.Enabled(),
		GoVersion:     runtime.Version(),
		NumGoroutine:  runtime.NumGoroutine(),
	}

	if !status.LastTick.IsZero() {
		response.LastTick = status.LastTick.Format(time.RFC3339)
	}

	switch {
	case !ready:
		response.Status = statusStarting
	case status.LastError != "" || status.State == memory.StateStopped:
		response.Status = statusDegraded
	default:
		response.Status = statusHealthy
	}

	w.Header().Set("Content-Type", "application/json")

	// Return 503 only if not ready at all
	if !ready {
		w.WriteHeader(http.StatusServiceUnavailable)
	} else {
		w.WriteHeader(http.StatusOK)
	}

	writeJSON(w, response)
}

// LivenessCheck is a simple liveness probe (always returns 200 if server is running)
func (h *Handlers) LivenessCheck(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)

	// For HEAD requests, only send headers (no body)
	if r.Method != http.MethodHead {
		writeJSON(w, map[string]string{
			"status": "alive",
		})
	}
}

// ReadinessCheck returns 200 once the cache holds a snapshot
func (h *Handlers) ReadinessCheck(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	if h.isReady() {
		w.WriteHeader(http.StatusOK)
		writeJSON(w, map[string]string{
			"status": "ready",
		})
	} else {
		w.WriteHeader(http.StatusServiceUnavailable)
		writeJSON(w, map[string]string{
			"status": "not_ready",
		})
	}
}

func (h *Handlers) isReady() bool {
	_, ok := h.memory.Cached()
	return ok
}
