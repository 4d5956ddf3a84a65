package rag_test

import (
	"context"
	"strings"
	"testing"

	"github.com/fwojciec/siterag"
	"github.com/fwojciec/siterag/mock"
	"github.com/fwojciec/siterag/rag"
	"github.com/fwojciec/siterag/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// keywordEmbedder returns a deterministic embedder whose vectors score
// texts by how many of the given keywords they contain, so similarity
// ranking in tests is predictable.
func keywordEmbedder(keywords ...string) *mock.Embedder {
	return &mock.Embedder{
		EmbedFn: func(_ context.Context, text string) ([]float32, error) {
			v := make([]float32, len(keywords)+1)
			v[len(keywords)] = 1 // keeps vectors non-zero
			for i, kw := range keywords {
				if strings.Contains(strings.ToLower(text), kw) {
					v[i] = 1
				}
			}
			return v, nil
		},
		ModelNameFn: func() string { return "keyword-test" },
	}
}

func newStore(t *testing.T) *sqlite.VectorStore {
	t.Helper()
	db := sqlite.NewDB(":memory:")
	require.NoError(t, db.Open())
	t.Cleanup(func() { _ = db.Close() })
	return sqlite.NewVectorStore(db)
}

// seedStore indexes each text as a single chunk of its own page.
func seedStore(t *testing.T, store *sqlite.VectorStore, embedder siterag.Embedder, texts map[string]string) {
	t.Helper()
	ctx := context.Background()
	for url, text := range texts {
		vector, err := embedder.Embed(ctx, text)
		require.NoError(t, err)
		require.NoError(t, store.Upsert(ctx, []siterag.IndexRecord{{
			Chunk: siterag.Chunk{
				ID:        siterag.ChunkID(url, 0),
				SourceURL: url,
				Title:     "Title of " + url,
				Text:      text,
				Index:     0,
				Total:     1,
			},
			Vector: vector,
		}}))
	}
}

func TestService_Search(t *testing.T) {
	t.Parallel()

	t.Run("ranks the matching phrase first", func(t *testing.T) {
		t.Parallel()

		embedder := keywordEmbedder("artificial intelligence", "cooking")
		store := newStore(t)
		seedStore(t, store, embedder, map[string]string{
			"https://example.com/ai":   "Artificial intelligence studies how machines learn.",
			"https://example.com/food": "Cooking pasta requires salted boiling water.",
			"https://example.com/misc": "A page about something else entirely.",
		})

		s := &rag.Service{Embedder: embedder, Store: store}

		results, err := s.Search(context.Background(), "tell me about artificial intelligence", rag.SearchOptions{})

		require.NoError(t, err)
		require.NotEmpty(t, results)
		assert.Equal(t, "https://example.com/ai", results[0].SourceURL)
		assert.Equal(t, 1, results[0].Rank)
	})

	t.Run("empty store returns empty results and no error", func(t *testing.T) {
		t.Parallel()

		embedder := keywordEmbedder("anything")
		s := &rag.Service{Embedder: embedder, Store: newStore(t)}

		results, err := s.Search(context.Background(), "anything at all", rag.SearchOptions{})

		require.NoError(t, err)
		assert.Empty(t, results)
	})

	t.Run("rejects empty search text", func(t *testing.T) {
		t.Parallel()

		s := &rag.Service{}

		_, err := s.Search(context.Background(), "", rag.SearchOptions{})

		require.Error(t, err)
		assert.Equal(t, siterag.EINVALID, siterag.ErrorCode(err))
	})

	t.Run("propagates embedder unavailability", func(t *testing.T) {
		t.Parallel()

		s := &rag.Service{
			Embedder: &mock.Embedder{
				EmbedFn: func(_ context.Context, _ string) ([]float32, error) {
					return nil, siterag.Errorf(siterag.EUNAVAILABLE, "model unreachable")
				},
			},
			Store: newStore(t),
		}

		_, err := s.Search(context.Background(), "question", rag.SearchOptions{})

		require.Error(t, err)
		assert.Equal(t, siterag.EUNAVAILABLE, siterag.ErrorCode(err))
	})

	t.Run("passes options through to the store", func(t *testing.T) {
		t.Parallel()

		var got siterag.SearchQuery
		s := &rag.Service{
			Embedder: keywordEmbedder("x"),
			Store: &mock.VectorStore{
				SearchFn: func(_ context.Context, q siterag.SearchQuery) ([]siterag.SearchResult, error) {
					got = q
					return []siterag.SearchResult{}, nil
				},
			},
		}

		_, err := s.Search(context.Background(), "question", rag.SearchOptions{
			TopK:    7,
			Source:  "https://example.com/only",
			Keyword: "filter",
		})

		require.NoError(t, err)
		assert.Equal(t, 7, got.TopK)
		assert.Equal(t, "https://example.com/only", got.Source)
		assert.Equal(t, "filter", got.Keyword)
		assert.NotEmpty(t, got.Vector)
	})

	t.Run("applies the default result bound", func(t *testing.T) {
		t.Parallel()

		var got siterag.SearchQuery
		s := &rag.Service{
			Embedder: keywordEmbedder("x"),
			Store: &mock.VectorStore{
				SearchFn: func(_ context.Context, q siterag.SearchQuery) ([]siterag.SearchResult, error) {
					got = q
					return nil, nil
				},
			},
		}

		_, err := s.Search(context.Background(), "question", rag.SearchOptions{})

		require.NoError(t, err)
		assert.Equal(t, rag.DefaultTopK, got.TopK)
	})
}

func TestService_Query(t *testing.T) {
	t.Parallel()

	t.Run("answers from assembled context", func(t *testing.T) {
		t.Parallel()

		embedder := keywordEmbedder("chunking")
		store := newStore(t)
		seedStore(t, store, embedder, map[string]string{
			"https://example.com/docs": "Chunking splits long pages into overlapping windows.",
		})

		var gotContext, gotQuery string
		s := &rag.Service{
			Embedder: embedder,
			Store:    store,
			Generator: &mock.Generator{
				GenerateFn: func(_ context.Context, contextText, query string) (string, error) {
					gotContext, gotQuery = contextText, query
					return "Pages are split into overlapping windows.", nil
				},
			},
		}

		result, err := s.Query(context.Background(), "how does chunking work?", rag.SearchOptions{})

		require.NoError(t, err)
		assert.Equal(t, "Pages are split into overlapping windows.", result.Answer)
		assert.Equal(t, []string{"https://example.com/docs"}, result.Sources)
		assert.Contains(t, result.Context, "overlapping windows")
		assert.Equal(t, result.Context, gotContext)
		assert.Equal(t, "how does chunking work?", gotQuery)
		require.NotEmpty(t, result.Results)
	})

	t.Run("returns retrieval results when generation fails", func(t *testing.T) {
		t.Parallel()

		embedder := keywordEmbedder("chunking")
		store := newStore(t)
		seedStore(t, store, embedder, map[string]string{
			"https://example.com/docs": "Chunking splits long pages into overlapping windows.",
		})

		s := &rag.Service{
			Embedder: embedder,
			Store:    store,
			Generator: &mock.Generator{
				GenerateFn: func(_ context.Context, _, _ string) (string, error) {
					return "", siterag.Errorf(siterag.EPROVIDER, "model overloaded")
				},
			},
		}

		result, err := s.Query(context.Background(), "how does chunking work?", rag.SearchOptions{})

		require.Error(t, err)
		assert.Equal(t, siterag.EPROVIDER, siterag.ErrorCode(err))
		require.NotNil(t, result)
		assert.NotEmpty(t, result.Results)
		assert.NotEmpty(t, result.Context)
		assert.Equal(t, []string{"https://example.com/docs"}, result.Sources)
		assert.Empty(t, result.Answer)
	})

	t.Run("empty store yields an empty result without calling the generator", func(t *testing.T) {
		t.Parallel()

		s := &rag.Service{
			Embedder: keywordEmbedder("x"),
			Store:    newStore(t),
			Generator: &mock.Generator{
				GenerateFn: func(_ context.Context, _, _ string) (string, error) {
					t.Error("generator should not be called")
					return "", nil
				},
			},
		}

		result, err := s.Query(context.Background(), "anything", rag.SearchOptions{})

		require.NoError(t, err)
		assert.Empty(t, result.Results)
		assert.Empty(t, result.Answer)
		assert.Empty(t, result.Context)
	})
}

func TestService_Stats(t *testing.T) {
	t.Parallel()

	embedder := keywordEmbedder("a", "b")
	store := newStore(t)
	seedStore(t, store, embedder, map[string]string{
		"https://example.com/a": "a page mentioning a",
		"https://example.com/b": "a page mentioning b",
	})

	s := &rag.Service{Embedder: embedder, Store: store}

	stats, err := s.Stats(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 2, stats.TotalRecords)
	assert.Equal(t, 2, stats.DistinctSources)
	assert.Equal(t, "keyword-test", stats.EmbeddingModel)
}

func TestService_Sources(t *testing.T) {
	t.Parallel()

	embedder := keywordEmbedder("a")
	store := newStore(t)
	seedStore(t, store, embedder, map[string]string{
		"https://example.com/a": "a page mentioning a",
	})

	s := &rag.Service{Embedder: embedder, Store: store}

	sources, err := s.Sources(context.Background())

	require.NoError(t, err)
	assert.Equal(t, []string{"https://example.com/a"}, sources)
}
