// Package crawl provides site indexing orchestration. It coordinates
// frontier management, fetching, extraction, chunking, embedding, and
// vector storage for a bounded breadth-first crawl of a single site.
package crawl

import (
	"context"
	"log/slog"
	"net/url"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/fwojciec/siterag"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

// Frontier and crawl bounds.
const (
	// frontierExpectedURLs is the expected number of URLs for Bloom filter sizing.
	frontierExpectedURLs = 10000
	// frontierFalsePositiveRate is the acceptable false positive rate for deduplication.
	frontierFalsePositiveRate = 0.01
	// minContentRunes is the minimum extracted text length worth indexing.
	minContentRunes = 50
)

// DefaultConcurrency is the fetch worker pool size when unset.
const DefaultConcurrency = 5

// Default chunking parameters, applied when the caller leaves them unset.
const (
	DefaultChunkSize    = 1200
	DefaultChunkOverlap = 200
)

// Crawler indexes a site: it walks same-host pages breadth-first from
// a seed URL and writes each page's embedded chunks to the store.
type Crawler struct {
	Fetcher     siterag.Fetcher
	Extractor   siterag.Extractor
	Links       siterag.LinkExtractor
	Converter   siterag.Converter
	Embedder    siterag.Embedder
	Store       siterag.VectorStore
	URLs        siterag.URLSource // optional sitemap seeding
	RateLimiter siterag.DomainLimiter
	Logger      *slog.Logger

	Concurrency  int
	ChunkSize    int
	ChunkOverlap int
	RetryDelays  []time.Duration
}

// Result holds the outcome of a crawl run.
type Result struct {
	RunID      string
	Discovered int // unique URLs queued over the run
	Indexed    int // pages whose chunks were stored
	Errors     []PageError
}

// PageError records a single page that failed during a crawl. Page
// failures never abort the run.
type PageError struct {
	URL string
	Err error
}

// fetchResult holds the outcome of fetching a single URL.
type fetchResult struct {
	url  string
	html string
	err  error
}

// Crawl walks same-host pages breadth-first from seedURL, indexing
// each page, until maxPages pages have been processed or the frontier
// is exhausted. Individual page failures are recorded in the result;
// only configuration problems, an unreachable embedding backend, or a
// store dimension conflict abort the run, returning the partial result
// alongside the error.
func (c *Crawler) Crawl(ctx context.Context, seedURL string, maxPages int) (*Result, error) {
	if maxPages <= 0 {
		return nil, siterag.Errorf(siterag.EINVALID, "max pages must be positive, got %d", maxPages)
	}
	size, overlap := c.chunkParams()
	if _, err := siterag.SplitText("", size, overlap); err != nil {
		return nil, err
	}

	seed, err := url.Parse(seedURL)
	if err != nil || seed.Host == "" || (seed.Scheme != "http" && seed.Scheme != "https") {
		return nil, siterag.Errorf(siterag.EINVALID, "invalid seed URL %q", seedURL)
	}

	logger := c.Logger
	if logger == nil {
		logger = slog.Default()
	}

	result := &Result{RunID: uuid.NewString()}
	logger.Info("crawl started", "run_id", result.RunID, "seed", seedURL, "max_pages", maxPages)

	frontier := NewFrontier(frontierExpectedURLs, frontierFalsePositiveRate)
	if frontier.Push(seedURL) {
		result.Discovered++
	}
	c.seedFromSitemap(ctx, seed, frontier, result, logger)

	concurrency := c.Concurrency
	if concurrency <= 0 {
		concurrency = DefaultConcurrency
	}

	processed := 0
	for processed < maxPages {
		if err := ctx.Err(); err != nil {
			return result, err
		}

		batch := c.nextBatch(frontier, min(concurrency, maxPages-processed))
		if len(batch) == 0 {
			break
		}
		processed += len(batch)

		for _, fetched := range c.fetchBatch(ctx, batch) {
			if fetched.err != nil {
				logger.Warn("page fetch failed", "run_id", result.RunID, "url", fetched.url, "error", fetched.err)
				result.Errors = append(result.Errors, PageError{URL: fetched.url, Err: fetched.err})
				continue
			}
			if err := c.indexPage(ctx, seed.Host, fetched, frontier, result, logger); err != nil {
				switch siterag.ErrorCode(err) {
				case siterag.EUNAVAILABLE, siterag.EMISMATCH:
					// No later page can succeed either.
					return result, err
				}
				logger.Warn("page indexing failed", "run_id", result.RunID, "url", fetched.url, "error", err)
				result.Errors = append(result.Errors, PageError{URL: fetched.url, Err: err})
			}
		}
	}

	logger.Info("crawl finished",
		"run_id", result.RunID,
		"discovered", result.Discovered,
		"indexed", result.Indexed,
		"failed", len(result.Errors),
	)
	return result, nil
}

// seedFromSitemap queues same-host sitemap URLs ahead of link walking.
// Discovery is best-effort: failures are logged and ignored.
func (c *Crawler) seedFromSitemap(ctx context.Context, seed *url.URL, frontier *Frontier, result *Result, logger *slog.Logger) {
	if c.URLs == nil {
		return
	}
	urls, err := c.URLs.Discover(ctx, seed.Scheme+"://"+seed.Host)
	if err != nil {
		logger.Debug("sitemap discovery failed", "host", seed.Host, "error", err)
		return
	}
	for _, u := range urls {
		if !sameHost(u, seed.Host) {
			continue
		}
		if frontier.Push(u) {
			result.Discovered++
		}
	}
}

// nextBatch pops up to n URLs off the frontier.
func (c *Crawler) nextBatch(frontier *Frontier, n int) []string {
	batch := make([]string, 0, n)
	for len(batch) < n {
		u, ok := frontier.Pop()
		if !ok {
			break
		}
		batch = append(batch, u)
	}
	return batch
}

// fetchBatch fetches a batch of URLs concurrently, respecting the
// per-domain rate limit, and returns results in batch order.
func (c *Crawler) fetchBatch(ctx context.Context, batch []string) []fetchResult {
	delays := c.RetryDelays
	if delays == nil {
		delays = DefaultRetryDelays()
	}

	results := make([]fetchResult, len(batch))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(len(batch))
	for i, pageURL := range batch {
		g.Go(func() error {
			results[i] = fetchResult{url: pageURL}
			if c.RateLimiter != nil {
				parsed, err := url.Parse(pageURL)
				if err != nil {
					results[i].err = siterag.Errorf(siterag.EINVALID, "invalid URL %q", pageURL)
					return nil
				}
				if err := c.RateLimiter.Wait(gctx, parsed.Host); err != nil {
					results[i].err = err
					return nil
				}
			}
			results[i].html, results[i].err = FetchWithRetryDelays(gctx, pageURL, c.Fetcher.Fetch, c.Logger, delays)
			return nil
		})
	}
	_ = g.Wait()
	return results
}

// indexPage extracts, chunks, embeds, and stores a fetched page, and
// queues its same-host outbound links.
func (c *Crawler) indexPage(ctx context.Context, host string, fetched fetchResult, frontier *Frontier, result *Result, logger *slog.Logger) error {
	// Queue links before content checks: a chrome-only hub page still
	// leads somewhere worth indexing.
	if c.Links != nil {
		links, err := c.Links.ExtractLinks(fetched.html, fetched.url)
		if err == nil {
			for _, link := range links {
				if !sameHost(link, host) {
					continue
				}
				if frontier.Push(link) {
					result.Discovered++
				}
			}
		}
	}

	extracted, err := c.Extractor.Extract(fetched.html)
	if err != nil {
		return err
	}
	text, err := c.Converter.Convert(extracted.ContentHTML)
	if err != nil {
		return err
	}
	if utf8.RuneCountInString(strings.TrimSpace(text)) < minContentRunes {
		return siterag.Errorf(siterag.EPARSE, "page content too short to index")
	}

	title := extracted.Title
	if title == "" {
		title = fetched.url
	}

	size, overlap := c.chunkParams()
	chunks, err := siterag.BuildChunks(fetched.url, title, text, size, overlap)
	if err != nil {
		return err
	}

	texts := make([]string, len(chunks))
	for i, ch := range chunks {
		texts[i] = ch.Text
	}
	vectors, err := c.Embedder.EmbedBatch(ctx, texts)
	if err != nil {
		return err
	}
	if len(vectors) != len(chunks) {
		return siterag.Errorf(siterag.EINTERNAL, "embedder returned %d vectors for %d chunks", len(vectors), len(chunks))
	}

	// A page that shrank since the last crawl would leave stale
	// high-index chunks behind a plain upsert.
	prev, err := c.Store.CountBySource(ctx, fetched.url)
	if err != nil {
		return err
	}
	if prev > 0 && prev != len(chunks) {
		if err := c.Store.DeleteBySource(ctx, fetched.url); err != nil {
			return err
		}
	}

	records := make([]siterag.IndexRecord, len(chunks))
	for i, ch := range chunks {
		records[i] = siterag.IndexRecord{Chunk: ch, Vector: vectors[i]}
	}
	if err := c.Store.Upsert(ctx, records); err != nil {
		return err
	}

	result.Indexed++
	logger.Debug("page indexed", "url", fetched.url, "title", title, "chunks", len(chunks))
	return nil
}

func (c *Crawler) chunkParams() (size, overlap int) {
	size, overlap = c.ChunkSize, c.ChunkOverlap
	if size <= 0 {
		size = DefaultChunkSize
	}
	if overlap <= 0 {
		overlap = DefaultChunkOverlap
	}
	return size, overlap
}

func sameHost(rawURL, host string) bool {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return false
	}
	return parsed.Host == host
}
