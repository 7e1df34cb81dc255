package handlers

import (
	"errors"
	"net/http"

	"memwatch/internal/logging"
	"memwatch/internal/memory"
)

// MemoryResponse is the body of GET /api/memory
type MemoryResponse struct {
	Total      uint64  `json:"total"`
	Available  uint64  `json:"available"`
	Used       uint64  `json:"used"`
	UsedRatio  float64 `json:"usedRatio"`
	TotalHuman string  `json:"totalHuman"`
	UsedHuman  string  `json:"usedHuman"`
}

// GetMemory returns the cached memory snapshot, reading it once if the
// cache is still empty.
func (h *Handlers) GetMemory(w http.ResponseWriter, r *http.Request) {
	snap, err := h.memory.Snapshot(r.Context())
	if err != nil {
		if errors.Is(err, memory.ErrSourceUnavailable) {
			logging.Warn("Memory snapshot unavailable: %v", err)
			writeJSONError(w, err.Error(), http.StatusServiceUnavailable)
			return
		}
		// Request cancelled or timed out while waiting for the first read
		writeJSONError(w, err.Error(), http.StatusGatewayTimeout)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-cache")
	writeJSON(w, MemoryResponse{
		Total:      snap.Total,
		Available:  snap.Available,
		Used:       snap.Used(),
		UsedRatio:  snap.UsedRatio(),
		TotalHuman: memory.FormatBytes(snap.Total),
		UsedHuman:  memory.FormatBytes(snap.Used()),
	})
}
