package main

import (
	"fmt"

	"github.com/fwojciec/siterag"
	"github.com/fwojciec/siterag/rag"
)

// Run executes the search command.
func (c *SearchCmd) Run(deps *Dependencies) error {
	results, err := deps.Service.Search(deps.Ctx, c.Query, rag.SearchOptions{
		TopK:    c.TopK,
		Source:  c.Source,
		Keyword: c.Keyword,
	})
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", siterag.ErrorMessage(err))
		return err
	}

	if len(results) == 0 {
		fmt.Fprintln(deps.Stdout, "No results. Use 'siterag index' to index a site first.")
		return nil
	}

	for _, r := range results {
		fmt.Fprintf(deps.Stdout, "%d. [%.4f] %s (chunk %d/%d)\n", r.Rank, r.Similarity, r.SourceURL, r.Index+1, r.Total)
		fmt.Fprintf(deps.Stdout, "   %s\n", snippet(r.Text, 200))
	}

	return nil
}

// snippet truncates text for single-line display.
func snippet(text string, maxRunes int) string {
	runes := []rune(text)
	if len(runes) <= maxRunes {
		return text
	}
	return string(runes[:maxRunes-3]) + "..."
}
