package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bull/underwriting-assistant/internal/analyzer"
	"github.com/bull/underwriting-assistant/internal/pdftext"
)

// analyzeFunc adapts a function to the Analyzer interface.
type analyzeFunc func(ctx context.Context, pdfBytes []byte) (string, error)

func (f analyzeFunc) Analyze(ctx context.Context, pdfBytes []byte) (string, error) {
	return f(ctx, pdfBytes)
}

// newUploadRequest builds a multipart POST to /analyze with the given file.
func newUploadRequest(t *testing.T, filename string, content []byte) *http.Request {
	t.Helper()

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	part, err := writer.CreateFormFile("file", filename)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, "/analyze", &body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	return req
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]string {
	t.Helper()
	var m map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &m))
	return m
}

func TestHandleRoot(t *testing.T) {
	h := NewHandlers(nil, 0, nil)
	rec := httptest.NewRecorder()

	h.HandleRoot(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, WelcomeMessage, decodeBody(t, rec)["message"])
}

func TestHandleRoot_UnknownPath(t *testing.T) {
	h := NewHandlers(nil, 0, nil)
	rec := httptest.NewRecorder()

	h.HandleRoot(rec, httptest.NewRequest(http.MethodGet, "/nope", nil))

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHandleAnalyze_MethodNotAllowed(t *testing.T) {
	h := NewHandlers(nil, 0, nil)
	rec := httptest.NewRecorder()

	h.HandleAnalyze(rec, httptest.NewRequest(http.MethodGet, "/analyze", nil))

	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestHandleAnalyze_WrongExtension(t *testing.T) {
	h := NewHandlers(nil, 0, nil)
	rec := httptest.NewRecorder()

	h.HandleAnalyze(rec, newUploadRequest(t, "application.txt", []byte("text")))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, decodeBody(t, rec)["error"], "Invalid file type")
}

func TestHandleAnalyze_MissingFile(t *testing.T) {
	h := NewHandlers(nil, 0, nil)
	rec := httptest.NewRecorder()

	req := httptest.NewRequest(http.MethodPost, "/analyze", bytes.NewReader(nil))
	h.HandleAnalyze(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

// TestHandleAnalyze_NotReady covers a request arriving before startup
// indexing has produced a pipeline.
func TestHandleAnalyze_NotReady(t *testing.T) {
	h := NewHandlers(nil, 0, nil)
	rec := httptest.NewRecorder()

	h.HandleAnalyze(rec, newUploadRequest(t, "app.pdf", []byte("%PDF-1.4")))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, decodeBody(t, rec)["error"], "not initialized")
}

// TestHandleAnalyze_GarbagePDF runs the real orchestrator with the real PDF
// extractor: a text file renamed to .pdf must come back as a 400.
func TestHandleAnalyze_GarbagePDF(t *testing.T) {
	pipeline := analyzer.New(
		pdftext.Extract,
		retrieverStub{},
		generatorStub{},
		nil,
	)
	h := NewHandlers(pipeline, 1, nil)
	rec := httptest.NewRecorder()

	h.HandleAnalyze(rec, newUploadRequest(t, "renamed.pdf", []byte("plain text, not a pdf")))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, decodeBody(t, rec)["error"], "could not read text")
}

func TestHandleAnalyze_Success(t *testing.T) {
	const verdict = "**Summary:**\nSmall loan.\n\n**Flagged Risks:**\nNo risks flagged."
	h := NewHandlers(analyzeFunc(func(ctx context.Context, pdfBytes []byte) (string, error) {
		return verdict, nil
	}), 12, nil)
	rec := httptest.NewRecorder()

	h.HandleAnalyze(rec, newUploadRequest(t, "app.pdf", []byte("%PDF-1.4 ...")))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, verdict, decodeBody(t, rec)["analysis"])
}

// TestHandleAnalyze_InternalFailure checks that provider failures surface as
// a generic 500 with no internal detail leaked.
func TestHandleAnalyze_InternalFailure(t *testing.T) {
	h := NewHandlers(analyzeFunc(func(ctx context.Context, pdfBytes []byte) (string, error) {
		return "", errors.New("ollama: connection refused at 10.0.0.5:11434")
	}), 12, nil)
	rec := httptest.NewRecorder()

	h.HandleAnalyze(rec, newUploadRequest(t, "app.pdf", []byte("%PDF-1.4")))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "An error occurred during analysis.", decodeBody(t, rec)["error"])
	assert.NotContains(t, rec.Body.String(), "10.0.0.5")
}

func TestHandleHealth(t *testing.T) {
	ready := NewHandlers(analyzeFunc(func(ctx context.Context, b []byte) (string, error) {
		return "", nil
	}), 42, nil)
	rec := httptest.NewRecorder()
	ready.HandleHealth(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	var resp HealthResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "ready", resp.Status)
	assert.Equal(t, 42, resp.IndexedChunks)

	notReady := NewHandlers(nil, 0, nil)
	rec = httptest.NewRecorder()
	notReady.HandleHealth(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

// retrieverStub and generatorStub satisfy the analyzer collaborators for
// paths that never reach them.
type retrieverStub struct{}

func (retrieverStub) Retrieve(ctx context.Context, query string) ([]string, error) {
	return []string{"guideline"}, nil
}

type generatorStub struct{}

func (generatorStub) Generate(ctx context.Context, prompt string) (string, error) {
	return "No risks flagged.", nil
}
