package siterag

import "context"

// Page represents a fetched and extracted web page. Pages are
// transient: they exist only between extraction and chunking and are
// never persisted themselves.
type Page struct {
	URL   string
	Title string
	Text  string
	Links []string
}

// ExtractResult holds the extracted content from an HTML page.
type ExtractResult struct {
	// Title is the page title extracted from metadata.
	Title string

	// ContentHTML is the main content as clean HTML.
	// Boilerplate (nav, footer, sidebar, ads) has been removed.
	ContentHTML string
}

// Fetcher retrieves raw HTML from URLs.
type Fetcher interface {
	// Fetch retrieves the page at url and returns its HTML.
	// The context controls timeout and cancellation. A non-2xx
	// status or timeout yields an ENETWORK-coded error. Fetch does
	// not retry; retry policy belongs to the caller.
	Fetch(ctx context.Context, url string) (html string, err error)

	// Close releases any resources held by the fetcher.
	Close() error
}

// Extractor extracts main content from HTML pages, removing boilerplate.
type Extractor interface {
	// Extract processes raw HTML and returns the main content.
	// Returns an EPARSE-coded error when no content can be extracted.
	Extract(html string) (*ExtractResult, error)
}

// LinkExtractor discovers outbound links in HTML pages.
type LinkExtractor interface {
	// ExtractLinks returns absolute, fragment-stripped URLs found in
	// the HTML, restricted to the host of baseURL.
	ExtractLinks(html string, baseURL string) ([]string, error)
}

// Converter converts HTML to Markdown.
type Converter interface {
	// Convert transforms clean content HTML (e.g., from an Extractor)
	// into Markdown text suitable for chunking.
	Convert(html string) (string, error)
}
