package siterag

import "context"

// Embedder maps text to fixed-dimension vectors. The backing model is
// initialized lazily on first use and reused for the lifetime of the
// process; an Embedder is passed in explicitly at construction so test
// doubles can substitute a deterministic vector function.
type Embedder interface {
	// Embed maps a single text to a vector of Dimensions() length.
	// Returns an EUNAVAILABLE-coded error when the backing model
	// cannot be reached, which is fatal to indexing and querying.
	Embed(ctx context.Context, text string) ([]float32, error)

	// EmbedBatch maps texts to vectors, preserving order. Batching
	// is a throughput optimization only: EmbedBatch(xs)[i] equals
	// Embed(xs[i]).
	EmbedBatch(ctx context.Context, texts []string) ([][]float32, error)

	// Dimensions returns the fixed vector length.
	Dimensions() int

	// ModelName identifies the embedding model.
	ModelName() string
}
