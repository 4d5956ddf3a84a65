package htmltomarkdown_test

import (
	"testing"

	"github.com/fwojciec/siterag"
	"github.com/fwojciec/siterag/htmltomarkdown"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConverter_Convert(t *testing.T) {
	t.Parallel()

	t.Run("converts headings and paragraphs", func(t *testing.T) {
		t.Parallel()

		c := htmltomarkdown.NewConverter()

		got, err := c.Convert("<h1>Title</h1><p>Some <strong>bold</strong> text.</p>")

		require.NoError(t, err)
		assert.Contains(t, got, "# Title")
		assert.Contains(t, got, "**bold**")
	})

	t.Run("empty input is rejected", func(t *testing.T) {
		t.Parallel()

		c := htmltomarkdown.NewConverter()

		_, err := c.Convert("  ")

		require.Error(t, err)
		assert.Equal(t, siterag.EINVALID, siterag.ErrorCode(err))
	})
}
