// Package analyzer sequences the analysis pipeline: extract the application
// text, retrieve relevant guideline context, compose the prompt and generate
// the verdict.
package analyzer

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/bull/underwriting-assistant/internal/prompt"
)

// ExtractFunc converts PDF bytes to plain text.
type ExtractFunc func(data []byte) (string, error)

// ContextRetriever returns the guideline chunks most relevant to a query.
type ContextRetriever interface {
	Retrieve(ctx context.Context, query string) ([]string, error)
}

// Generator produces the analysis text for a prompt.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// Analyzer runs the four pipeline stages strictly in order. Any stage failure
// aborts the whole operation; a partial underwriting judgment must never be
// returned as if complete.
type Analyzer struct {
	extract   ExtractFunc
	retriever ContextRetriever
	generator Generator
	logger    *slog.Logger
}

// New creates an Analyzer from its collaborators.
func New(extract ExtractFunc, retriever ContextRetriever, generator Generator, logger *slog.Logger) *Analyzer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Analyzer{
		extract:   extract,
		retriever: retriever,
		generator: generator,
		logger:    logger,
	}
}

// Analyze extracts the application text from pdfBytes, retrieves guideline
// context using the extracted text verbatim as the query, and returns the
// generated analysis unmodified.
//
// Extraction failures keep their typed error (the upload was bad); every
// other stage failure is normalized to ErrAnalysisFailed with the underlying
// detail preserved for server-side logs only.
func (a *Analyzer) Analyze(ctx context.Context, pdfBytes []byte) (string, error) {
	text, err := a.extract(pdfBytes)
	if err != nil {
		return "", err
	}
	a.logger.Debug("Extracted application text", "chars", len(text))

	chunks, err := a.retriever.Retrieve(ctx, text)
	if err != nil {
		return "", fmt.Errorf("%w: retrieve context: %v", ErrAnalysisFailed, err)
	}
	a.logger.Debug("Retrieved guideline context", "chunks", len(chunks))

	answer, err := a.generator.Generate(ctx, prompt.Compose(chunks, text))
	if err != nil {
		return "", fmt.Errorf("%w: generate: %v", ErrAnalysisFailed, err)
	}

	a.logger.Info("Analysis complete", "input_chars", len(text), "output_chars", len(answer))
	return answer, nil
}
