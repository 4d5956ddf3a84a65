package siterag

import "context"

// URLSource discovers candidate page URLs for a site, e.g. from its
// sitemap. Discovery is best-effort: an empty result means the crawler
// falls back to following links from the seed page.
type URLSource interface {
	Discover(ctx context.Context, baseURL string) ([]string, error)
}
