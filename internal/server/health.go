package server

import (
	"net/http"
	"time"
)

// HealthResponse is the JSON body of the health check endpoint.
type HealthResponse struct {
	Status        string `json:"status"`
	IndexedChunks int    `json:"indexed_chunks"`
	Timestamp     string `json:"timestamp"`
}

// HandleHealth reports whether the guideline index is built and the pipeline
// can accept analysis requests.
func (h *Handlers) HandleHealth(w http.ResponseWriter, r *http.Request) {
	response := HealthResponse{
		IndexedChunks: h.indexedChunks,
		Timestamp:     time.Now().UTC().Format(time.RFC3339),
	}

	if h.analyzer == nil {
		response.Status = "initializing"
		writeJSON(w, http.StatusServiceUnavailable, response)
		return
	}

	response.Status = "ready"
	writeJSON(w, http.StatusOK, response)
}
