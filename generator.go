package siterag

import "context"

// Generator produces a natural-language answer from an assembled
// context block and a query. It is an opaque external collaborator:
// the pipeline only supplies the context/query pair.
type Generator interface {
	// Generate returns the answer text. Failures surface as
	// EPROVIDER-coded errors; callers degrade gracefully by
	// returning retrieval results without an answer.
	Generate(ctx context.Context, contextText, query string) (string, error)
}
