// Package readability provides a siterag.Extractor backed by
// go-readability's article extraction.
package readability

import (
	"strings"

	"github.com/fwojciec/siterag"
	"github.com/go-shiori/go-readability"
)

// Ensure Extractor implements siterag.Extractor at compile time.
var _ siterag.Extractor = (*Extractor)(nil)

// Extractor wraps go-readability to extract main content from HTML.
type Extractor struct{}

// NewExtractor creates a new Extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// Extract processes raw HTML and returns the main content.
func (e *Extractor) Extract(rawHTML string) (*siterag.ExtractResult, error) {
	if rawHTML == "" {
		return nil, siterag.Errorf(siterag.EPARSE, "empty HTML input")
	}

	article, err := readability.FromReader(strings.NewReader(rawHTML), nil)
	if err != nil {
		return nil, siterag.Errorf(siterag.EPARSE, "readability extraction: %v", err)
	}
	if strings.TrimSpace(article.TextContent) == "" {
		return nil, siterag.Errorf(siterag.EPARSE, "no extractable content")
	}

	return &siterag.ExtractResult{
		Title:       article.Title,
		ContentHTML: article.Content,
	}, nil
}
