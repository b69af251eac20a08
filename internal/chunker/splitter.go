package chunker

import "strings"

const (
	// DefaultChunkSize is the maximum chunk length in characters.
	DefaultChunkSize = 1000

	// DefaultChunkOverlap is how many characters consecutive chunks share.
	DefaultChunkOverlap = 200
)

// Splitter cuts a document into overlapping windows of at most ChunkSize
// characters. Each window ends at the largest-granularity natural boundary
// available (paragraph break, then line break, then sentence end, then word
// break), falling back to a hard character cut when the window contains none.
type Splitter struct {
	ChunkSize    int
	ChunkOverlap int
}

// boundarySeparators in decreasing granularity. The empty fallback (plain
// character cut) is handled in splitPoint.
var boundarySeparators = []string{"\n\n", "\n", ". ", " "}

// NewSplitter creates a Splitter with the given window size and overlap.
// Non-positive size and negative overlap fall back to the defaults. Overlap
// must leave room for the window to advance, so it is capped below size.
func NewSplitter(chunkSize, chunkOverlap int) *Splitter {
	if chunkSize <= 0 {
		chunkSize = DefaultChunkSize
	}
	if chunkOverlap < 0 {
		chunkOverlap = DefaultChunkOverlap
	}
	if chunkOverlap >= chunkSize {
		chunkOverlap = chunkSize / 5
	}
	return &Splitter{
		ChunkSize:    chunkSize,
		ChunkOverlap: chunkOverlap,
	}
}

// Split returns the overlapping chunks of text in document order.
//
// Every chunk is a literal substring of the input and each chunk after the
// first starts exactly ChunkOverlap characters before the previous chunk's
// end, so stripping the overlaps and concatenating reconstructs the document
// exactly. A document no longer than ChunkSize yields a single chunk; an
// empty document yields none.
func (s *Splitter) Split(text string) []string {
	if text == "" {
		return nil
	}
	if len(text) <= s.ChunkSize {
		return []string{text}
	}

	var chunks []string
	start := 0
	for start < len(text) {
		end := start + s.ChunkSize
		if end >= len(text) {
			chunks = append(chunks, text[start:])
			break
		}
		end = s.splitPoint(text, start, end)
		chunks = append(chunks, text[start:end])
		start = end - s.ChunkOverlap
	}
	return chunks
}

// splitPoint picks the cut position for the window text[start:end], preferring
// the last occurrence of the coarsest boundary separator. Cuts are never
// placed inside the region the next chunk must re-cover, so the window always
// advances.
func (s *Splitter) splitPoint(text string, start, end int) int {
	floor := start + s.ChunkOverlap + 1
	if floor >= end {
		return end
	}
	window := text[floor:end]
	for _, sep := range boundarySeparators {
		if i := strings.LastIndex(window, sep); i >= 0 {
			return floor + i + len(sep)
		}
	}
	return end
}
