package goquery_test

import (
	"testing"

	"github.com/fwojciec/siterag"
	"github.com/fwojciec/siterag/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLinkExtractor_ExtractLinks(t *testing.T) {
	t.Parallel()

	t.Run("resolves relative links against the base URL", func(t *testing.T) {
		t.Parallel()

		html := `<html><body>
			<a href="/docs">Docs</a>
			<a href="about.html">About</a>
		</body></html>`

		l := goquery.NewLinkExtractor()

		links, err := l.ExtractLinks(html, "https://example.com/index.html")

		require.NoError(t, err)
		assert.Equal(t, []string{
			"https://example.com/docs",
			"https://example.com/about.html",
		}, links)
	})

	t.Run("discards external hosts and subdomains", func(t *testing.T) {
		t.Parallel()

		html := `<html><body>
			<a href="https://example.com/in">in</a>
			<a href="https://other.com/out">out</a>
			<a href="https://sub.example.com/out">sub</a>
		</body></html>`

		l := goquery.NewLinkExtractor()

		links, err := l.ExtractLinks(html, "https://example.com")

		require.NoError(t, err)
		assert.Equal(t, []string{"https://example.com/in"}, links)
	})

	t.Run("strips fragments and deduplicates", func(t *testing.T) {
		t.Parallel()

		html := `<html><body>
			<a href="/page#intro">intro</a>
			<a href="/page#details">details</a>
		</body></html>`

		l := goquery.NewLinkExtractor()

		links, err := l.ExtractLinks(html, "https://example.com")

		require.NoError(t, err)
		assert.Equal(t, []string{"https://example.com/page"}, links)
	})

	t.Run("skips non-HTTP and self-referential links", func(t *testing.T) {
		t.Parallel()

		html := `<html><body>
			<a href="mailto:x@example.com">mail</a>
			<a href="javascript:void(0)">js</a>
			<a href="tel:+1234">tel</a>
			<a href="#top">top</a>
		</body></html>`

		l := goquery.NewLinkExtractor()

		links, err := l.ExtractLinks(html, "https://example.com/page")

		require.NoError(t, err)
		assert.Empty(t, links)
	})

	t.Run("invalid base URL is rejected", func(t *testing.T) {
		t.Parallel()

		l := goquery.NewLinkExtractor()

		_, err := l.ExtractLinks("<html></html>", "://bad")

		require.Error(t, err)
		assert.Equal(t, siterag.EINVALID, siterag.ErrorCode(err))
	})
}
