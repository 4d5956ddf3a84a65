package readability_test

import (
	"strings"
	"testing"

	"github.com/fwojciec/siterag"
	"github.com/fwojciec/siterag/readability"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractor_Extract(t *testing.T) {
	t.Parallel()

	t.Run("extracts title and article content", func(t *testing.T) {
		t.Parallel()

		para := strings.Repeat("Readable article text about vector search. ", 20)
		html := `<html><head><title>Article Title</title></head><body>
			<nav>menu menu menu</nav>
			<article><h1>Article Title</h1><p>` + para + `</p></article>
		</body></html>`

		e := readability.NewExtractor()

		got, err := e.Extract(html)

		require.NoError(t, err)
		assert.Equal(t, "Article Title", got.Title)
		assert.Contains(t, got.ContentHTML, "vector search")
	})

	t.Run("empty input is a parse error", func(t *testing.T) {
		t.Parallel()

		e := readability.NewExtractor()

		_, err := e.Extract("")

		require.Error(t, err)
		assert.Equal(t, siterag.EPARSE, siterag.ErrorCode(err))
	})
}
