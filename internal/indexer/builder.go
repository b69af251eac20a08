// Package indexer builds the in-memory guideline index at startup.
package indexer

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/google/uuid"

	"github.com/bull/underwriting-assistant/internal/chunker"
	"github.com/bull/underwriting-assistant/internal/index"
)

// TextEmbedder generates embedding vectors for a batch of texts.
type TextEmbedder interface {
	EmbedTexts(ctx context.Context, texts []string) ([][]float32, error)
}

// BuildResult contains statistics about an index build.
type BuildResult struct {
	Chunks    int
	Dimension int
	Duration  time.Duration
}

// Builder runs the startup pipeline: load the guidelines document, split it
// into chunks, embed them and build the vector index. The build is
// single-shot; a failure here means the process must not serve requests.
type Builder struct {
	splitter *chunker.Splitter
	embedder TextEmbedder
	logger   *slog.Logger
}

// NewBuilder creates a Builder with the given components.
func NewBuilder(splitter *chunker.Splitter, embedder TextEmbedder, logger *slog.Logger) *Builder {
	if logger == nil {
		logger = slog.Default()
	}
	return &Builder{
		splitter: splitter,
		embedder: embedder,
		logger:   logger,
	}
}

// Build reads the guidelines document at guidelinesPath and produces the
// searchable index plus build statistics.
func (b *Builder) Build(ctx context.Context, guidelinesPath string) (*index.Index, *BuildResult, error) {
	start := time.Now()

	data, err := os.ReadFile(guidelinesPath)
	if err != nil {
		return nil, nil, fmt.Errorf("read guidelines: %w", err)
	}

	texts := b.splitter.Split(string(data))
	if len(texts) == 0 {
		return nil, nil, fmt.Errorf("guidelines document %s is empty", guidelinesPath)
	}
	b.logger.Info("Split guidelines", "path", guidelinesPath, "chunks", len(texts))

	vectors, err := b.embedder.EmbedTexts(ctx, texts)
	if err != nil {
		return nil, nil, fmt.Errorf("embed chunks: %w", err)
	}
	if len(vectors) != len(texts) {
		return nil, nil, fmt.Errorf("embedded %d of %d chunks", len(vectors), len(texts))
	}

	chunks := make([]index.Chunk, len(texts))
	for i, text := range texts {
		chunks[i] = index.Chunk{
			ID:     uuid.New().String(),
			Text:   text,
			Vector: vectors[i],
		}
	}

	idx, err := index.Build(chunks)
	if err != nil {
		return nil, nil, fmt.Errorf("build index: %w", err)
	}

	result := &BuildResult{
		Chunks:    idx.Len(),
		Dimension: idx.Dimension(),
		Duration:  time.Since(start),
	}
	b.logger.Info("Index ready",
		"chunks", result.Chunks,
		"dimension", result.Dimension,
		"duration", result.Duration,
	)

	return idx, result, nil
}
