package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/siterag"
)

// Ensure LoggingStore implements siterag.VectorStore.
var _ siterag.VectorStore = (*LoggingStore)(nil)

// LoggingStore wraps a VectorStore with structured operation logging.
type LoggingStore struct {
	next   siterag.VectorStore
	logger *slog.Logger
}

// NewLoggingStore creates a new LoggingStore.
func NewLoggingStore(next siterag.VectorStore, logger *slog.Logger) *LoggingStore {
	return &LoggingStore{next: next, logger: logger}
}

// Upsert delegates to the wrapped store and logs the write.
func (s *LoggingStore) Upsert(ctx context.Context, records []siterag.IndexRecord) error {
	begin := time.Now()
	err := s.next.Upsert(ctx, records)
	if err != nil {
		s.logger.Warn("store upsert failed",
			"records", len(records),
			"duration", time.Since(begin),
			"error", err,
		)
		return err
	}
	s.logger.Debug("store upsert",
		"records", len(records),
		"duration", time.Since(begin),
	)
	return nil
}

// Search delegates to the wrapped store and logs the query shape.
func (s *LoggingStore) Search(ctx context.Context, q siterag.SearchQuery) ([]siterag.SearchResult, error) {
	begin := time.Now()
	results, err := s.next.Search(ctx, q)
	if err != nil {
		s.logger.Warn("store search failed",
			"top_k", q.TopK,
			"duration", time.Since(begin),
			"error", err,
		)
		return nil, err
	}
	s.logger.Debug("store search",
		"top_k", q.TopK,
		"results", len(results),
		"duration", time.Since(begin),
	)
	return results, nil
}

// DeleteBySource delegates to the wrapped store and logs the deletion.
func (s *LoggingStore) DeleteBySource(ctx context.Context, sourceURL string) error {
	err := s.next.DeleteBySource(ctx, sourceURL)
	if err != nil {
		s.logger.Warn("store delete failed", "source", sourceURL, "error", err)
		return err
	}
	s.logger.Debug("store delete", "source", sourceURL)
	return nil
}

// CountBySource delegates to the wrapped store.
func (s *LoggingStore) CountBySource(ctx context.Context, sourceURL string) (int, error) {
	return s.next.CountBySource(ctx, sourceURL)
}

// Sources delegates to the wrapped store.
func (s *LoggingStore) Sources(ctx context.Context) ([]string, error) {
	return s.next.Sources(ctx)
}

// Stats delegates to the wrapped store.
func (s *LoggingStore) Stats(ctx context.Context) (*siterag.StoreStats, error) {
	return s.next.Stats(ctx)
}

// Close delegates to the wrapped store.
func (s *LoggingStore) Close() error {
	return s.next.Close()
}
