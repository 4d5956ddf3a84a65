package mock

import (
	"context"

	"github.com/fwojciec/siterag"
)

var _ siterag.Embedder = (*Embedder)(nil)

// Embedder is a mock implementation of siterag.Embedder.
type Embedder struct {
	EmbedFn      func(ctx context.Context, text string) ([]float32, error)
	EmbedBatchFn func(ctx context.Context, texts []string) ([][]float32, error)
	DimensionsFn func() int
	ModelNameFn  func() string
}

func (e *Embedder) Embed(ctx context.Context, text string) ([]float32, error) {
	return e.EmbedFn(ctx, text)
}

// EmbedBatch calls EmbedBatchFn when set, and otherwise falls back to
// EmbedFn per text, which keeps batch and single embeddings consistent
// in tests that only configure one of them.
func (e *Embedder) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	if e.EmbedBatchFn != nil {
		return e.EmbedBatchFn(ctx, texts)
	}
	vectors := make([][]float32, len(texts))
	for i, text := range texts {
		v, err := e.EmbedFn(ctx, text)
		if err != nil {
			return nil, err
		}
		vectors[i] = v
	}
	return vectors, nil
}

func (e *Embedder) Dimensions() int {
	if e.DimensionsFn == nil {
		return 0
	}
	return e.DimensionsFn()
}

func (e *Embedder) ModelName() string {
	if e.ModelNameFn == nil {
		return "mock"
	}
	return e.ModelNameFn()
}

var _ siterag.VectorStore = (*VectorStore)(nil)

// VectorStore is a mock implementation of siterag.VectorStore.
type VectorStore struct {
	UpsertFn         func(ctx context.Context, records []siterag.IndexRecord) error
	SearchFn         func(ctx context.Context, q siterag.SearchQuery) ([]siterag.SearchResult, error)
	DeleteBySourceFn func(ctx context.Context, sourceURL string) error
	CountBySourceFn  func(ctx context.Context, sourceURL string) (int, error)
	SourcesFn        func(ctx context.Context) ([]string, error)
	StatsFn          func(ctx context.Context) (*siterag.StoreStats, error)
	CloseFn          func() error
}

func (s *VectorStore) Upsert(ctx context.Context, records []siterag.IndexRecord) error {
	return s.UpsertFn(ctx, records)
}

func (s *VectorStore) Search(ctx context.Context, q siterag.SearchQuery) ([]siterag.SearchResult, error) {
	return s.SearchFn(ctx, q)
}

func (s *VectorStore) DeleteBySource(ctx context.Context, sourceURL string) error {
	return s.DeleteBySourceFn(ctx, sourceURL)
}

func (s *VectorStore) CountBySource(ctx context.Context, sourceURL string) (int, error) {
	return s.CountBySourceFn(ctx, sourceURL)
}

func (s *VectorStore) Sources(ctx context.Context) ([]string, error) {
	return s.SourcesFn(ctx)
}

func (s *VectorStore) Stats(ctx context.Context) (*siterag.StoreStats, error) {
	return s.StatsFn(ctx)
}

func (s *VectorStore) Close() error {
	if s.CloseFn == nil {
		return nil
	}
	return s.CloseFn()
}
