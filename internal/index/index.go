// Package index provides an in-memory vector index over guideline chunks.
// The index is built once at startup and is read-only afterwards, so
// concurrent searches need no locking.
package index

import (
	"math"
	"sort"
)

// Chunk is one indexed guideline segment with its embedding vector.
// Chunks are immutable after Build.
type Chunk struct {
	ID     string
	Text   string
	Vector []float32
}

// Index holds chunks and answers k-nearest-neighbor queries by cosine
// similarity. The zero value is an empty index.
type Index struct {
	chunks    []Chunk
	dimension int
}

// Build constructs an index from the given chunks. It fails with
// ErrEmptyCorpus on zero chunks and ErrDimensionMismatch if the chunks do not
// all share one vector dimension. Insertion order is preserved and used as
// the tie-break order for equal similarity scores.
func Build(chunks []Chunk) (*Index, error) {
	if len(chunks) == 0 {
		return nil, ErrEmptyCorpus
	}

	dim := len(chunks[0].Vector)
	for _, c := range chunks {
		if len(c.Vector) != dim {
			return nil, ErrDimensionMismatch
		}
	}

	stored := make([]Chunk, len(chunks))
	copy(stored, chunks)

	return &Index{
		chunks:    stored,
		dimension: dim,
	}, nil
}

// scored pairs a chunk position with its similarity to the query.
type scored struct {
	pos   int
	score float64
}

// Search returns up to k chunks ranked by descending cosine similarity to the
// query vector. Ties keep insertion order. If the index holds fewer than k
// chunks all of them are returned; an empty index returns nothing. The query
// must match the index dimension and k must be >= 1. Search never mutates the
// index.
func (idx *Index) Search(query []float32, k int) ([]Chunk, error) {
	if k < 1 {
		return nil, ErrInvalidK
	}
	if len(idx.chunks) == 0 {
		return nil, nil
	}
	if len(query) != idx.dimension {
		return nil, ErrDimensionMismatch
	}

	results := make([]scored, len(idx.chunks))
	for i := range idx.chunks {
		results[i] = scored{pos: i, score: cosineSimilarity(query, idx.chunks[i].Vector)}
	}

	// Stable sort keeps insertion order for equal scores.
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].score > results[j].score
	})

	if k > len(results) {
		k = len(results)
	}

	top := make([]Chunk, k)
	for i := 0; i < k; i++ {
		top[i] = idx.chunks[results[i].pos]
	}
	return top, nil
}

// Len returns the number of indexed chunks.
func (idx *Index) Len() int {
	return len(idx.chunks)
}

// Dimension returns the vector dimension the index was built with.
func (idx *Index) Dimension() int {
	return idx.dimension
}

// cosineSimilarity computes cosine similarity in float64 to keep the ranking
// stable for near-equal scores. Zero vectors score zero.
func cosineSimilarity(a, b []float32) float64 {
	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}

	denom := math.Sqrt(normA) * math.Sqrt(normB)
	if denom == 0 {
		return 0
	}
	return dot / denom
}
