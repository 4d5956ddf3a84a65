package siterag

import (
	"fmt"

	"github.com/cespare/xxhash/v2"
)

// Chunk represents a bounded contiguous slice of a page's extracted
// text, the unit of storage and retrieval.
type Chunk struct {
	ID        string `json:"id"`
	SourceURL string `json:"sourceUrl"`
	Title     string `json:"title"`
	Text      string `json:"text"`
	Index     int    `json:"chunkIndex"`
	Total     int    `json:"totalChunks"`
}

// Validate returns an error if the chunk contains invalid fields.
func (c *Chunk) Validate() error {
	if c.SourceURL == "" {
		return Errorf(EINVALID, "chunk source URL required")
	}
	if c.Text == "" {
		return Errorf(EINVALID, "chunk text required")
	}
	if c.Index < 0 || c.Index >= c.Total {
		return Errorf(EINVALID, "chunk index %d out of range [0,%d)", c.Index, c.Total)
	}
	return nil
}

// IndexRecord is the persisted unit: a chunk together with its
// embedding vector. The vector dimension is constant across a store.
type IndexRecord struct {
	Chunk
	Vector []float32 `json:"vector"`
}

// ChunkID derives a deterministic chunk identifier from the source URL
// and chunk index, so re-indexing the same page overwrites records
// instead of duplicating them.
func ChunkID(sourceURL string, index int) string {
	return fmt.Sprintf("%x#%d", xxhash.Sum64String(sourceURL), index)
}

// SplitText splits text into overlapping segments using a
// deterministic sliding window over runes. Segment i starts at
// i*(size-overlap) and is at most size runes long; the last segment
// may be shorter. Empty text yields no segments. Overlap exists so a
// concept spanning a segment boundary is still retrievable from at
// least one segment.
//
// Returns an ECONFIG-coded error when overlap >= size, which would
// otherwise loop forever.
func SplitText(text string, size, overlap int) ([]string, error) {
	if size <= 0 {
		return nil, Errorf(ECONFIG, "chunk size must be positive, got %d", size)
	}
	if overlap < 0 {
		return nil, Errorf(ECONFIG, "chunk overlap must be non-negative, got %d", overlap)
	}
	if overlap >= size {
		return nil, Errorf(ECONFIG, "chunk overlap %d must be smaller than chunk size %d", overlap, size)
	}

	runes := []rune(text)
	n := len(runes)
	if n == 0 {
		return nil, nil
	}

	step := size - overlap
	var segments []string
	for start := 0; start < n; start += step {
		end := start + size
		if end > n {
			end = n
		}
		segments = append(segments, string(runes[start:end]))
		if end == n {
			break
		}
	}
	return segments, nil
}

// BuildChunks splits a page's text and wraps the segments as chunks
// with deterministic IDs and index/total bookkeeping.
func BuildChunks(sourceURL, title, text string, size, overlap int) ([]Chunk, error) {
	segments, err := SplitText(text, size, overlap)
	if err != nil {
		return nil, err
	}

	chunks := make([]Chunk, len(segments))
	for i, seg := range segments {
		chunks[i] = Chunk{
			ID:        ChunkID(sourceURL, i),
			SourceURL: sourceURL,
			Title:     title,
			Text:      seg,
			Index:     i,
			Total:     len(segments),
		}
	}
	return chunks, nil
}
