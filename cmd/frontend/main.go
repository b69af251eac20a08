// Package main provides the upload UI for the underwriting assistant: a small
// web server that accepts a loan application PDF and renders the backend's
// analysis.
package main

import (
	"bytes"
	"errors"
	"html/template"
	"io"
	"log"
	"log/slog"
	"net/http"
	"strings"

	"github.com/joho/godotenv"
	"github.com/yuin/goldmark"

	"github.com/bull/underwriting-assistant/internal/client"
	"github.com/bull/underwriting-assistant/internal/config"
)

const pageHTML = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>Intelligent Underwriting Assistant</title>
<style>
  *, *::before, *::after { box-sizing: border-box; margin: 0; padding: 0; }
  body { font-family: -apple-system, BlinkMacSystemFont, "Segoe UI", Roboto, Helvetica, Arial, sans-serif; background: #0f172a; color: #e2e8f0; min-height: 100vh; display: flex; align-items: flex-start; justify-content: center; padding: 3rem 0; }
  .card { max-width: 720px; width: 90%; background: #1e293b; border-radius: 12px; padding: 2.5rem; box-shadow: 0 25px 50px rgba(0,0,0,0.4); }
  h1 { font-size: 1.75rem; margin-bottom: 0.5rem; color: #f8fafc; }
  .subtitle { color: #94a3b8; margin-bottom: 1.75rem; }
  form { margin-bottom: 1.5rem; }
  input[type="file"] { display: block; margin-bottom: 1rem; color: #e2e8f0; }
  button { background: #38bdf8; color: #0f172a; border: none; border-radius: 8px; padding: 0.6rem 1.4rem; font-size: 1rem; font-weight: 600; cursor: pointer; }
  button:hover { background: #7dd3fc; }
  .error { background: #7f1d1d; border: 1px solid #b91c1c; border-radius: 8px; padding: 1rem; margin-bottom: 1.5rem; }
  .analysis { background: #0f172a; border: 1px solid #334155; border-radius: 8px; padding: 1.5rem; line-height: 1.6; }
  .analysis h1, .analysis h2, .analysis h3 { margin: 1rem 0 0.5rem; color: #f8fafc; }
  .analysis p, .analysis ul, .analysis ol { margin-bottom: 0.75rem; }
  .analysis li { margin-left: 1.25rem; }
</style>
</head>
<body>
<div class="card">
  <h1>Intelligent Underwriting Assistant</h1>
  <p class="subtitle">Upload a loan application PDF to analyze it against internal guidelines.</p>
  <form action="/analyze" method="post" enctype="multipart/form-data">
    <input type="file" name="file" accept="application/pdf" required>
    <button type="submit">Analyze Application</button>
  </form>
  {{if .Error}}<div class="error">{{.Error}}</div>{{end}}
  {{if .Analysis}}<div class="analysis">{{.Analysis}}</div>{{end}}
</div>
</body>
</html>`

var pageTemplate = template.Must(template.New("page").Parse(pageHTML))

// pageData drives the upload page. Analysis is pre-rendered HTML from the
// model's markdown output.
type pageData struct {
	Error    string
	Analysis template.HTML
}

// app holds the frontend's dependencies.
type app struct {
	api      *client.Client
	markdown goldmark.Markdown
	logger   *slog.Logger
}

func (a *app) handleIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	a.renderPage(w, pageData{})
}

func (a *app) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		a.renderPage(w, pageData{Error: "Please upload a PDF file to analyze."})
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		a.renderPage(w, pageData{Error: "Failed to read the uploaded file."})
		return
	}

	analysis, err := a.api.Analyze(header.Filename, data)
	if err != nil {
		a.logger.Error("Analysis request failed", "filename", header.Filename, "error", err)
		var statusErr *client.StatusError
		if errors.As(err, &statusErr) {
			a.renderPage(w, pageData{Error: "Error from API: " + statusErr.Error()})
			return
		}
		a.renderPage(w, pageData{Error: "Could not connect to the analysis service. Please ensure the backend is running."})
		return
	}

	a.renderPage(w, pageData{Analysis: a.renderMarkdown(analysis)})
}

// renderMarkdown converts the model's markdown analysis to HTML. If
// conversion fails the raw text is shown instead.
func (a *app) renderMarkdown(analysis string) template.HTML {
	var buf bytes.Buffer
	if err := a.markdown.Convert([]byte(analysis), &buf); err != nil {
		a.logger.Warn("Markdown rendering failed", "error", err)
		return template.HTML("<pre>" + template.HTMLEscapeString(analysis) + "</pre>")
	}
	return template.HTML(buf.String())
}

func (a *app) renderPage(w http.ResponseWriter, data pageData) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := pageTemplate.Execute(w, data); err != nil {
		a.logger.Error("Template execution failed", "error", err)
	}
}

func main() {
	// Load .env file if present (local development), ignore if missing (production)
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg := config.FromEnv()

	a := &app{
		api:      client.New(cfg.BackendURL),
		markdown: goldmark.New(),
		logger:   slog.Default(),
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/", a.handleIndex)
	mux.HandleFunc("/analyze", a.handleAnalyze)

	addr := cfg.FrontendAddr
	if !strings.Contains(addr, ":") {
		addr = ":" + addr
	}

	a.logger.Info("Frontend listening", "addr", addr, "backend", cfg.BackendURL)
	if err := http.ListenAndServe(addr, mux); err != nil {
		log.Fatalf("HTTP server error: %v", err)
	}
}
