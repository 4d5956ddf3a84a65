package main

import (
	"fmt"

	"github.com/fwojciec/siterag"
	"github.com/fwojciec/siterag/rag"
)

// Run executes the ask command.
func (c *AskCmd) Run(deps *Dependencies) error {
	result, err := deps.Service.Query(deps.Ctx, c.Question, rag.SearchOptions{
		TopK:    c.TopK,
		Keyword: c.Keyword,
	})
	if err != nil && siterag.ErrorCode(err) != siterag.EPROVIDER {
		fmt.Fprintf(deps.Stderr, "error: %s\n", siterag.ErrorMessage(err))
		return err
	}

	if len(result.Results) == 0 {
		fmt.Fprintln(deps.Stdout, "No relevant content found. Use 'siterag index' to index a site first.")
		return nil
	}

	// A generation failure still leaves usable retrieval results:
	// show the sources and report the error.
	if err != nil {
		fmt.Fprintf(deps.Stderr, "answer generation failed: %s\n", siterag.ErrorMessage(err))
	} else {
		fmt.Fprintln(deps.Stdout, result.Answer)
	}

	fmt.Fprintln(deps.Stdout, "\nSources:")
	for _, src := range result.Sources {
		fmt.Fprintf(deps.Stdout, "  %s\n", src)
	}

	if err != nil {
		return err
	}
	return nil
}
