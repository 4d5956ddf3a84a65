// Package mock provides function-field test doubles for the root
// package interfaces.
package mock

import (
	"context"

	"github.com/fwojciec/siterag"
)

var _ siterag.Fetcher = (*Fetcher)(nil)

// Fetcher is a mock implementation of siterag.Fetcher.
type Fetcher struct {
	FetchFn func(ctx context.Context, url string) (string, error)
	CloseFn func() error
}

func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	return f.FetchFn(ctx, url)
}

func (f *Fetcher) Close() error {
	if f.CloseFn == nil {
		return nil
	}
	return f.CloseFn()
}

var _ siterag.Extractor = (*Extractor)(nil)

// Extractor is a mock implementation of siterag.Extractor.
type Extractor struct {
	ExtractFn func(html string) (*siterag.ExtractResult, error)
}

func (e *Extractor) Extract(html string) (*siterag.ExtractResult, error) {
	return e.ExtractFn(html)
}

var _ siterag.LinkExtractor = (*LinkExtractor)(nil)

// LinkExtractor is a mock implementation of siterag.LinkExtractor.
type LinkExtractor struct {
	ExtractLinksFn func(html string, baseURL string) ([]string, error)
}

func (l *LinkExtractor) ExtractLinks(html string, baseURL string) ([]string, error) {
	return l.ExtractLinksFn(html, baseURL)
}

var _ siterag.Converter = (*Converter)(nil)

// Converter is a mock implementation of siterag.Converter.
type Converter struct {
	ConvertFn func(html string) (string, error)
}

func (c *Converter) Convert(html string) (string, error) {
	return c.ConvertFn(html)
}

var _ siterag.URLSource = (*URLSource)(nil)

// URLSource is a mock implementation of siterag.URLSource.
type URLSource struct {
	DiscoverFn func(ctx context.Context, baseURL string) ([]string, error)
}

func (u *URLSource) Discover(ctx context.Context, baseURL string) ([]string, error) {
	return u.DiscoverFn(ctx, baseURL)
}

var _ siterag.DomainLimiter = (*DomainLimiter)(nil)

// DomainLimiter is a mock implementation of siterag.DomainLimiter.
type DomainLimiter struct {
	WaitFn func(ctx context.Context, domain string) error
}

func (d *DomainLimiter) Wait(ctx context.Context, domain string) error {
	return d.WaitFn(ctx, domain)
}

var _ siterag.Generator = (*Generator)(nil)

// Generator is a mock implementation of siterag.Generator.
type Generator struct {
	GenerateFn func(ctx context.Context, contextText, query string) (string, error)
}

func (g *Generator) Generate(ctx context.Context, contextText, query string) (string, error) {
	return g.GenerateFn(ctx, contextText, query)
}
