package handlers

import (
	"net/http"

	"memwatch/internal/startup"
)

// WatchSettings is the effective watch configuration as reported by /version.
type WatchSettings struct {
	CheckInterval string  `json:"checkInterval"`
	MaxUsedRatio  float64 `json:"maxUsedRatio"`
	ReadTimeout   string  `json:"readTimeout,omitempty"`
	NotifyTimeout string  `json:"notifyTimeout,omitempty"`
}

// VersionResponse is the build information plus the running watch settings.
type VersionResponse struct {
	startup.BuildInfo
	Watch WatchSettings `json:"watch"`
}

// GetVersion reports what is running and how it is configured.
func (h *Handlers) GetVersion(w http.ResponseWriter, _ *http.Request) {
	cfg := h.watch.Config()

	response := VersionResponse{
		BuildInfo: startup.GetBuildInfo(),
		Watch: WatchSettings{
			CheckInterval: cfg.CheckInterval.String(),
			MaxUsedRatio:  cfg.MaxUsedRatio,
		},
	}
	// zero means unbounded and is left out
	if cfg.ReadTimeout > 0 {
		response.Watch.ReadTimeout = cfg.ReadTimeout.String()
	}
	if cfg.NotifyTimeout > 0 {
		response.Watch.NotifyTimeout = cfg.NotifyTimeout.String()
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-cache")
	writeJSON(w, response)
}
