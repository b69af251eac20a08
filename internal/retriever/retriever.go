// Package retriever turns a query text into the guideline chunks most
// relevant to it.
package retriever

import (
	"context"
	"fmt"

	"github.com/bull/underwriting-assistant/internal/index"
)

// DefaultTopK is how many chunks a retrieval returns unless configured
// otherwise.
const DefaultTopK = 3

// QueryEmbedder maps a query text to an embedding vector.
type QueryEmbedder interface {
	EmbedQuery(ctx context.Context, text string) ([]float32, error)
}

// Retriever wraps the vector index with query embedding. Retrievals against
// an unchanged index are idempotent.
type Retriever struct {
	embedder QueryEmbedder
	index    *index.Index
	topK     int
}

// New creates a Retriever over the given index. If topK is 0, DefaultTopK is
// used.
func New(embedder QueryEmbedder, idx *index.Index, topK int) *Retriever {
	if topK <= 0 {
		topK = DefaultTopK
	}
	return &Retriever{
		embedder: embedder,
		index:    idx,
		topK:     topK,
	}
}

// Retrieve embeds the query text and returns the texts of the top-k most
// similar chunks, most similar first.
func (r *Retriever) Retrieve(ctx context.Context, query string) ([]string, error) {
	vector, err := r.embedder.EmbedQuery(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("embed query: %w", err)
	}

	chunks, err := r.index.Search(vector, r.topK)
	if err != nil {
		return nil, fmt.Errorf("search index: %w", err)
	}

	texts := make([]string, len(chunks))
	for i, c := range chunks {
		texts[i] = c.Text
	}
	return texts, nil
}
