package siterag

import (
	"fmt"
	"strings"
)

// contextSeparator divides chunks in the assembled context block.
const contextSeparator = "\n\n---\n\n"

// AssembledContext is a bounded-length context block with source
// attribution, handed to the external generation step.
type AssembledContext struct {
	// Context is the concatenated chunk texts in rank order, each
	// prefixed with its title and source URL.
	Context string `json:"context"`

	// Sources is the deduplicated ordered set of URLs contributing
	// to the included chunks.
	Sources []string `json:"sources"`
}

// AssembleContext merges ranked results into a context block no longer
// than maxLen runes. Chunks are included in rank order; assembly stops
// at the first chunk that would exceed the budget, so a chunk is never
// split.
func AssembleContext(results []SearchResult, maxLen int) *AssembledContext {
	var (
		parts   []string
		sources []string
		seen    = make(map[string]bool)
		length  int
	)

	for _, r := range results {
		title := r.Title
		if title == "" {
			title = r.SourceURL
		}
		block := fmt.Sprintf("[%s]\nsource: %s\n%s", title, r.SourceURL, r.Text)

		cost := len([]rune(block))
		if len(parts) > 0 {
			cost += len(contextSeparator)
		}
		if maxLen > 0 && length+cost > maxLen {
			break
		}
		length += cost
		parts = append(parts, block)

		if !seen[r.SourceURL] {
			seen[r.SourceURL] = true
			sources = append(sources, r.SourceURL)
		}
	}

	return &AssembledContext{
		Context: strings.Join(parts, contextSeparator),
		Sources: sources,
	}
}
