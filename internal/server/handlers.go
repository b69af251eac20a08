// Package server provides the HTTP surface of the underwriting assistant.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/bull/underwriting-assistant/internal/analyzer"
	"github.com/bull/underwriting-assistant/internal/pdftext"
)

// WelcomeMessage is returned by the root endpoint.
const WelcomeMessage = "Welcome to the Underwriting Assistant API!"

// Analyzer is the analysis pipeline behind POST /analyze.
type Analyzer interface {
	Analyze(ctx context.Context, pdfBytes []byte) (string, error)
}

// Handlers holds the request handlers and their dependencies. The analyzer
// may be nil when the startup index build has not completed; requests then
// fail with a 500 instead of claiming readiness.
type Handlers struct {
	analyzer      Analyzer
	indexedChunks int
	logger        *slog.Logger
}

// NewHandlers creates the handler set. indexedChunks is the size of the
// guideline index, reported by the health endpoint.
func NewHandlers(a Analyzer, indexedChunks int, logger *slog.Logger) *Handlers {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handlers{
		analyzer:      a,
		indexedChunks: indexedChunks,
		logger:        logger,
	}
}

// NewMux routes the API endpoints.
func NewMux(h *Handlers) *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("/", h.HandleRoot)
	mux.HandleFunc("/analyze", h.HandleAnalyze)
	mux.HandleFunc("/health", h.HandleHealth)
	return mux
}

// HandleRoot answers the welcome check at GET /.
func (h *Handlers) HandleRoot(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": WelcomeMessage})
}

// HandleAnalyze accepts a multipart PDF upload under form field "file" and
// returns the model's analysis verbatim.
func (h *Handlers) HandleAnalyze(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "method not allowed"})
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "missing form field 'file'"})
		return
	}
	defer file.Close()

	if !strings.HasSuffix(header.Filename, ".pdf") {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Invalid file type. Please upload a PDF."})
		return
	}

	h.logger.Info("Received file", "filename", header.Filename, "size", header.Size)

	data, err := io.ReadAll(file)
	if err != nil {
		h.logger.Error("Failed to read upload", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to read uploaded file"})
		return
	}

	if h.analyzer == nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": analyzer.ErrNotReady.Error()})
		return
	}

	analysis, err := h.analyzer.Analyze(r.Context(), data)
	if err != nil {
		if errors.Is(err, pdftext.ErrUnreadablePDF) {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": pdftext.ErrUnreadablePDF.Error()})
			return
		}
		// Internal detail stays in the server log; clients get a generic
		// message.
		h.logger.Error("Analysis failed", "filename", header.Filename, "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "An error occurred during analysis."})
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"analysis": analysis})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
