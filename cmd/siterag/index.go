package main

import (
	"fmt"

	"github.com/fwojciec/siterag"
)

// Run executes the index command.
func (c *IndexCmd) Run(deps *Dependencies) error {
	result, err := deps.Service.Index(deps.Ctx, c.URL, c.MaxPages)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", siterag.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "Indexed %d of %d discovered pages (run %s)\n",
		result.Indexed, result.Discovered, result.RunID)

	if len(result.Errors) > 0 {
		fmt.Fprintf(deps.Stdout, "%d pages failed:\n", len(result.Errors))
		for _, pe := range result.Errors {
			fmt.Fprintf(deps.Stdout, "  %s: %s\n", pe.URL, siterag.ErrorMessage(pe.Err))
		}
	}

	return nil
}
