// Package goquery provides goquery-based implementations of
// siterag.Extractor and siterag.LinkExtractor.
package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/siterag"
)

// boilerplateSelector matches elements that carry navigation chrome or
// non-content markup rather than page content.
const boilerplateSelector = "script, style, noscript, template, nav, header, footer, aside, form, iframe"

// Ensure Extractor implements siterag.Extractor at compile time.
var _ siterag.Extractor = (*Extractor)(nil)

// Extractor extracts main content from HTML by stripping boilerplate
// elements from the document body. It is a lightweight alternative to
// the readability and trafilatura extractors for simple pages.
type Extractor struct{}

// NewExtractor creates a new Extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// Extract processes raw HTML and returns the page title and the body
// with boilerplate elements removed.
func (e *Extractor) Extract(html string) (*siterag.ExtractResult, error) {
	if strings.TrimSpace(html) == "" {
		return nil, siterag.Errorf(siterag.EPARSE, "empty HTML input")
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, siterag.Errorf(siterag.EPARSE, "parse HTML: %v", err)
	}

	title := strings.TrimSpace(doc.Find("title").First().Text())

	body := doc.Find("body")
	body.Find(boilerplateSelector).Remove()

	contentHTML, err := body.Html()
	if err != nil {
		return nil, siterag.Errorf(siterag.EPARSE, "render content: %v", err)
	}
	if strings.TrimSpace(body.Text()) == "" {
		return nil, siterag.Errorf(siterag.EPARSE, "no extractable content")
	}

	return &siterag.ExtractResult{
		Title:       title,
		ContentHTML: contentHTML,
	}, nil
}
