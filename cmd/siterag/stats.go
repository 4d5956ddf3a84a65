package main

import (
	"fmt"

	"github.com/fwojciec/siterag"
)

// Run executes the stats command.
func (c *StatsCmd) Run(deps *Dependencies) error {
	stats, err := deps.Service.Stats(deps.Ctx)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", siterag.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "Chunks:  %d\n", stats.TotalRecords)
	fmt.Fprintf(deps.Stdout, "Sources: %d\n", stats.DistinctSources)
	fmt.Fprintf(deps.Stdout, "Model:   %s\n", stats.EmbeddingModel)

	if !c.Sources {
		return nil
	}

	sources, err := deps.Service.Sources(deps.Ctx)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", siterag.ErrorMessage(err))
		return err
	}
	for _, src := range sources {
		fmt.Fprintf(deps.Stdout, "  %s\n", src)
	}

	return nil
}
