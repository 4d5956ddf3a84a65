package siterag

import (
	"context"
	"math"
)

// SearchQuery describes a nearest-neighbor query against the store.
// Filters are applied before ranking so TopK always returns the k best
// among eligible records.
type SearchQuery struct {
	// Vector is the query embedding. Its length must match the
	// store's established dimension.
	Vector []float32

	// TopK caps the number of results.
	TopK int

	// Source, when set, restricts results to chunks from that URL.
	Source string

	// Keyword, when set, restricts results to chunks whose text
	// contains the substring (hybrid pre-filter).
	Keyword string
}

// SearchResult represents a ranked similarity match.
type SearchResult struct {
	ID         string  `json:"id"`
	SourceURL  string  `json:"sourceUrl"`
	Title      string  `json:"title"`
	Text       string  `json:"text"`
	Index      int     `json:"chunkIndex"`
	Total      int     `json:"totalChunks"`
	Similarity float64 `json:"similarity"`
	Rank       int     `json:"rank"` // 1-based, dense
}

// StoreStats summarizes the contents of a vector store.
type StoreStats struct {
	TotalRecords    int `json:"totalRecords"`
	DistinctSources int `json:"distinctSources"`
}

// VectorStore persists index records and answers similarity queries.
// The store exclusively owns its records; callers never hold store
// state beyond a single call.
type VectorStore interface {
	// Upsert writes records, replacing any existing record that
	// shares an ID. All vectors must match the store's dimension,
	// established by the first record ever written; a disagreement
	// yields an EMISMATCH-coded error and no partial write.
	Upsert(ctx context.Context, records []IndexRecord) error

	// Search returns up to q.TopK results ordered by descending
	// cosine similarity, ties broken by insertion order. An empty
	// store returns an empty slice, not an error.
	Search(ctx context.Context, q SearchQuery) ([]SearchResult, error)

	// DeleteBySource removes all chunks for a source URL. Used when
	// re-indexing a page whose chunk count changed, so stale
	// high-index chunks never linger.
	DeleteBySource(ctx context.Context, sourceURL string) error

	// CountBySource returns the number of chunks stored for a URL.
	CountBySource(ctx context.Context, sourceURL string) (int, error)

	// Sources returns the distinct indexed source URLs.
	Sources(ctx context.Context) ([]string, error)

	// Stats returns store-wide counts.
	Stats(ctx context.Context) (*StoreStats, error)

	// Close releases the underlying storage.
	Close() error
}

// CosineSimilarity computes the cosine similarity between two vectors:
// 1 for identical directions, 0 for perpendicular, -1 for opposite.
// Zero-magnitude vectors compare as 0.
func CosineSimilarity(a, b []float32) float64 {
	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}
