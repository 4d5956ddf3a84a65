package siterag_test

import (
	"strings"
	"testing"

	"github.com/fwojciec/siterag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAssembleContext(t *testing.T) {
	t.Parallel()

	t.Run("empty results yield empty context", func(t *testing.T) {
		t.Parallel()

		got := siterag.AssembleContext(nil, 1000)

		assert.Empty(t, got.Context)
		assert.Empty(t, got.Sources)
	})

	t.Run("chunks appear in rank order with attribution", func(t *testing.T) {
		t.Parallel()

		results := []siterag.SearchResult{
			{SourceURL: "https://example.com/a", Title: "Alpha", Text: "first", Rank: 1},
			{SourceURL: "https://example.com/b", Title: "Beta", Text: "second", Rank: 2},
		}

		got := siterag.AssembleContext(results, 1000)

		require.Contains(t, got.Context, "[Alpha]\nsource: https://example.com/a\nfirst")
		require.Contains(t, got.Context, "[Beta]\nsource: https://example.com/b\nsecond")
		assert.Less(t,
			strings.Index(got.Context, "first"),
			strings.Index(got.Context, "second"))
		assert.Contains(t, got.Context, "---")
	})

	t.Run("title falls back to source URL", func(t *testing.T) {
		t.Parallel()

		results := []siterag.SearchResult{
			{SourceURL: "https://example.com/a", Text: "body", Rank: 1},
		}

		got := siterag.AssembleContext(results, 1000)

		assert.Contains(t, got.Context, "[https://example.com/a]")
	})

	t.Run("stops before exceeding the budget without splitting a chunk", func(t *testing.T) {
		t.Parallel()

		results := []siterag.SearchResult{
			{SourceURL: "https://example.com/a", Title: "A", Text: strings.Repeat("x", 50), Rank: 1},
			{SourceURL: "https://example.com/b", Title: "B", Text: strings.Repeat("y", 500), Rank: 2},
		}

		got := siterag.AssembleContext(results, 120)

		assert.Contains(t, got.Context, "xxx")
		assert.NotContains(t, got.Context, "y")
		assert.LessOrEqual(t, len([]rune(got.Context)), 120)
		assert.Equal(t, []string{"https://example.com/a"}, got.Sources)
	})

	t.Run("sources are deduplicated in first-contribution order", func(t *testing.T) {
		t.Parallel()

		results := []siterag.SearchResult{
			{SourceURL: "https://example.com/a", Title: "A", Text: "one", Rank: 1},
			{SourceURL: "https://example.com/b", Title: "B", Text: "two", Rank: 2},
			{SourceURL: "https://example.com/a", Title: "A", Text: "three", Rank: 3},
		}

		got := siterag.AssembleContext(results, 10000)

		assert.Equal(t, []string{"https://example.com/a", "https://example.com/b"}, got.Sources)
	})
}
