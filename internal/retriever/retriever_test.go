package retriever

import (
	"context"
	"errors"
	"testing"

	"github.com/bull/underwriting-assistant/internal/index"
)

// fakeEmbedder returns canned vectors per query text.
type fakeEmbedder struct {
	vectors map[string][]float32
	err     error
}

func (f *fakeEmbedder) EmbedQuery(ctx context.Context, text string) ([]float32, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.vectors[text], nil
}

func buildTestIndex(t *testing.T) *index.Index {
	t.Helper()
	idx, err := index.Build([]index.Chunk{
		{ID: "1", Text: "credit history rules", Vector: []float32{1, 0, 0}},
		{ID: "2", Text: "income verification rules", Vector: []float32{0, 1, 0}},
		{ID: "3", Text: "debt-to-income rules", Vector: []float32{0, 0, 1}},
		{ID: "4", Text: "collateral rules", Vector: []float32{0.6, 0.6, 0}},
	})
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	return idx
}

// TestRetrieve_TopKBound tests that the output length never exceeds the
// configured k and preserves index ranking order.
func TestRetrieve_TopKBound(t *testing.T) {
	embedder := &fakeEmbedder{vectors: map[string][]float32{
		"credit": {1, 0, 0},
	}}
	r := New(embedder, buildTestIndex(t), 2)

	texts, err := r.Retrieve(context.Background(), "credit")
	if err != nil {
		t.Fatalf("Retrieve failed: %v", err)
	}
	if len(texts) != 2 {
		t.Fatalf("Expected 2 texts, got %d", len(texts))
	}
	if texts[0] != "credit history rules" {
		t.Errorf("Expected most similar chunk first, got %q", texts[0])
	}
	if texts[1] != "collateral rules" {
		t.Errorf("Expected second-ranked chunk, got %q", texts[1])
	}
}

// TestRetrieve_DefaultK tests that k defaults to 3.
func TestRetrieve_DefaultK(t *testing.T) {
	embedder := &fakeEmbedder{vectors: map[string][]float32{
		"q": {1, 1, 1},
	}}
	r := New(embedder, buildTestIndex(t), 0)

	texts, err := r.Retrieve(context.Background(), "q")
	if err != nil {
		t.Fatalf("Retrieve failed: %v", err)
	}
	if len(texts) != DefaultTopK {
		t.Errorf("Expected %d texts, got %d", DefaultTopK, len(texts))
	}
}

// TestRetrieve_Idempotent tests that retrieving twice with the same query
// against an unchanged index returns identical ordered results.
func TestRetrieve_Idempotent(t *testing.T) {
	embedder := &fakeEmbedder{vectors: map[string][]float32{
		"income": {0.2, 0.9, 0.1},
	}}
	r := New(embedder, buildTestIndex(t), 3)

	first, err := r.Retrieve(context.Background(), "income")
	if err != nil {
		t.Fatalf("Retrieve failed: %v", err)
	}
	second, err := r.Retrieve(context.Background(), "income")
	if err != nil {
		t.Fatalf("Retrieve failed: %v", err)
	}

	if len(first) != len(second) {
		t.Fatalf("Result lengths differ: %d vs %d", len(first), len(second))
	}
	for i := range first {
		if first[i] != second[i] {
			t.Errorf("Result %d differs between runs: %q vs %q", i, first[i], second[i])
		}
	}
}

// TestRetrieve_EmbedderError tests that an embedding failure is propagated.
func TestRetrieve_EmbedderError(t *testing.T) {
	wantErr := errors.New("model server down")
	r := New(&fakeEmbedder{err: wantErr}, buildTestIndex(t), 3)

	if _, err := r.Retrieve(context.Background(), "anything"); !errors.Is(err, wantErr) {
		t.Errorf("Expected embedder error, got %v", err)
	}
}
