// Package rag composes the indexing and retrieval pipeline behind a
// single service API: crawl-and-index, vector search, and
// question answering over indexed content.
package rag

import (
	"context"
	"log/slog"

	"github.com/fwojciec/siterag"
	"github.com/fwojciec/siterag/crawl"
)

// Retrieval defaults, applied when options leave them unset.
const (
	DefaultTopK             = 5
	DefaultMaxContextLength = 8000
)

// Indexer runs a bounded crawl that writes pages into the store.
type Indexer interface {
	Crawl(ctx context.Context, seedURL string, maxPages int) (*crawl.Result, error)
}

var _ Indexer = (*crawl.Crawler)(nil)

// Service is the facade over the pipeline. Index writes a site into
// the vector store; Search and Query read from it.
type Service struct {
	Indexer   Indexer
	Embedder  siterag.Embedder
	Store     siterag.VectorStore
	Generator siterag.Generator
	Logger    *slog.Logger

	// TopK and MaxContextLength override the retrieval defaults.
	TopK             int
	MaxContextLength int
}

// SearchOptions refine a search or query.
type SearchOptions struct {
	// TopK bounds the number of results. Defaults to DefaultTopK.
	TopK int

	// Source restricts results to chunks from one source URL.
	Source string

	// Keyword restricts results to chunks containing the substring,
	// applied before similarity ranking (hybrid mode).
	Keyword string
}

// QueryResult is a full question-answering outcome: the ranked
// results, the context block they were assembled into, and the
// generated answer.
type QueryResult struct {
	Results []siterag.SearchResult `json:"results"`
	Context string                 `json:"context"`
	Sources []string               `json:"sources"`
	Answer  string                 `json:"answer"`
}

// Stats describes the indexed corpus.
type Stats struct {
	TotalRecords    int    `json:"totalRecords"`
	DistinctSources int    `json:"distinctSources"`
	EmbeddingModel  string `json:"embeddingModel"`
}

// Index crawls up to maxPages pages from seedURL and writes their
// embedded chunks into the store.
func (s *Service) Index(ctx context.Context, seedURL string, maxPages int) (*crawl.Result, error) {
	return s.Indexer.Crawl(ctx, seedURL, maxPages)
}

// Search embeds the query text and returns the most similar chunks.
// An empty store yields empty results and no error.
func (s *Service) Search(ctx context.Context, text string, opts SearchOptions) ([]siterag.SearchResult, error) {
	if text == "" {
		return nil, siterag.Errorf(siterag.EINVALID, "search text required")
	}

	topK := opts.TopK
	if topK <= 0 {
		topK = s.TopK
	}
	if topK <= 0 {
		topK = DefaultTopK
	}

	vector, err := s.Embedder.Embed(ctx, text)
	if err != nil {
		return nil, err
	}

	results, err := s.Store.Search(ctx, siterag.SearchQuery{
		Vector:  vector,
		TopK:    topK,
		Source:  opts.Source,
		Keyword: opts.Keyword,
	})
	if err != nil {
		return nil, err
	}

	if s.Logger != nil {
		s.Logger.Debug("search completed", "top_k", topK, "results", len(results))
	}
	return results, nil
}

// Query answers a question from indexed content: it retrieves the most
// similar chunks, assembles them into a bounded context block, and asks
// the generator. When no relevant chunks exist the result is returned
// with an empty answer and no error. When generation fails the
// retrieval results are still returned, together with the
// EPROVIDER-coded error, so callers can degrade to showing sources.
func (s *Service) Query(ctx context.Context, text string, opts SearchOptions) (*QueryResult, error) {
	results, err := s.Search(ctx, text, opts)
	if err != nil {
		return nil, err
	}

	if len(results) == 0 {
		return &QueryResult{Results: []siterag.SearchResult{}}, nil
	}

	maxLen := s.MaxContextLength
	if maxLen <= 0 {
		maxLen = DefaultMaxContextLength
	}
	assembled := siterag.AssembleContext(results, maxLen)

	result := &QueryResult{
		Results: results,
		Context: assembled.Context,
		Sources: assembled.Sources,
	}

	answer, err := s.Generator.Generate(ctx, assembled.Context, text)
	if err != nil {
		if s.Logger != nil {
			s.Logger.Warn("answer generation failed", "error", err)
		}
		return result, err
	}
	result.Answer = answer
	return result, nil
}

// Stats reports the size of the indexed corpus and the embedding model
// serving it.
func (s *Service) Stats(ctx context.Context) (*Stats, error) {
	stats, err := s.Store.Stats(ctx)
	if err != nil {
		return nil, err
	}
	return &Stats{
		TotalRecords:    stats.TotalRecords,
		DistinctSources: stats.DistinctSources,
		EmbeddingModel:  s.Embedder.ModelName(),
	}, nil
}

// Sources lists the indexed source URLs.
func (s *Service) Sources(ctx context.Context) ([]string, error) {
	return s.Store.Sources(ctx)
}
