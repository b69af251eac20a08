package prompt

import (
	"strings"
	"testing"
)

// TestCompose_SectionLabels tests that the fixed section labels appear in the
// prompt. The model's output is rendered as-is, so these are a contract.
func TestCompose_SectionLabels(t *testing.T) {
	out := Compose([]string{"rule one"}, "application")

	if !strings.Contains(out, "Summary") {
		t.Error("Prompt missing Summary section label")
	}
	if !strings.Contains(out, "Flagged Risks") {
		t.Error("Prompt missing Flagged Risks section label")
	}
	if !strings.Contains(out, "No risks flagged.") {
		t.Error("Prompt missing the no-risk literal")
	}
}

// TestCompose_PassesInputsThrough tests that the application text and every
// context chunk appear unmodified.
func TestCompose_PassesInputsThrough(t *testing.T) {
	chunks := []string{
		"1.1 Minimum credit score of 640.",
		"3.1 DTI must not exceed 43 percent.",
	}
	application := "Applicant: J. Doe\nScore: 598\nDTI: 51%"

	out := Compose(chunks, application)

	if !strings.Contains(out, application) {
		t.Error("Prompt does not contain the full application text")
	}
	for _, c := range chunks {
		if !strings.Contains(out, c) {
			t.Errorf("Prompt missing context chunk %q", c)
		}
	}
}

// TestCompose_ChunkBoundaries tests that chunks stay distinguishable and keep
// their retrieval order.
func TestCompose_ChunkBoundaries(t *testing.T) {
	out := Compose([]string{"first rule", "second rule"}, "app")

	i := strings.Index(out, "first rule")
	j := strings.Index(out, "second rule")
	if i < 0 || j < 0 || i >= j {
		t.Fatalf("Chunks out of order: first at %d, second at %d", i, j)
	}
	between := out[i+len("first rule") : j]
	if strings.TrimSpace(between) == "" {
		t.Error("No separator between chunks")
	}
}
