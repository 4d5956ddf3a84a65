package trafilatura_test

import (
	"strings"
	"testing"

	"github.com/fwojciec/siterag"
	"github.com/fwojciec/siterag/trafilatura"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractor_Extract(t *testing.T) {
	t.Parallel()

	t.Run("extracts main content and drops chrome", func(t *testing.T) {
		t.Parallel()

		para := strings.Repeat("Meaningful article body about retrieval pipelines. ", 20)
		html := `<html><head><title>Pipelines</title></head><body>
			<nav><ul><li>Home</li><li>Blog</li></ul></nav>
			<main><article><h1>Pipelines</h1><p>` + para + `</p></article></main>
			<footer>footer chrome</footer>
		</body></html>`

		e := trafilatura.NewExtractor()

		got, err := e.Extract(html)

		require.NoError(t, err)
		assert.Contains(t, got.ContentHTML, "retrieval pipelines")
		assert.NotContains(t, got.ContentHTML, "footer chrome")
	})

	t.Run("empty input is a parse error", func(t *testing.T) {
		t.Parallel()

		e := trafilatura.NewExtractor()

		_, err := e.Extract("")

		require.Error(t, err)
		assert.Equal(t, siterag.EPARSE, siterag.ErrorCode(err))
	})
}
