package handlers

import (
	"encoding/json"
	"net/http"

	"memwatch/internal/logging"
)

// AlertsRequest is the body of PUT /api/alerts
type AlertsRequest struct {
	Enabled *bool `json:"enabled"`
}

// AlertsResponse reports the alert gate state
type AlertsResponse struct {
	Enabled bool   `json:"enabled"`
	Warning string `json:"warning,omitempty"`
}

// GetAlerts returns whether memory alerts are enabled
func (h *Handlers) GetAlerts(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	writeJSON(w, AlertsResponse{Enabled: h.alerts.Enabled()})
}

// SetAlerts switches memory alerts on or off
func (h *Handlers) SetAlerts(w http.ResponseWriter, r *http.Request) {
	var req AlertsRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, 1024)).Decode(&req); err != nil {
		writeJSONError(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if req.Enabled == nil {
		writeJSONError(w, `missing "enabled" field`, http.StatusBadRequest)
		return
	}

	resp := AlertsResponse{Enabled: *req.Enabled}
	if err := h.alerts.Set(r.Context(), *req.Enabled); err != nil {
		// The gate already holds the new value; only persistence failed
		logging.Warn("Alert setting applied but not saved: %v", err)
		resp.Warning = "setting applied but not saved"
	}

	w.Header().Set("Content-Type", "application/json")
	writeJSON(w, resp)
}
