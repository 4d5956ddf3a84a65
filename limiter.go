package siterag

import "context"

// DomainLimiter throttles outbound requests on a per-domain basis so
// crawls stay polite regardless of worker concurrency.
type DomainLimiter interface {
	// Wait blocks until a request to domain is allowed, or returns
	// the context error if the wait is canceled first.
	Wait(ctx context.Context, domain string) error
}
