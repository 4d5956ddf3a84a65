package http

import (
	"context"
	"io"
	"net/http"
	"net/url"

	"github.com/beevik/etree"
	"github.com/fwojciec/siterag"
)

// Ensure SitemapSource implements siterag.URLSource.
var _ siterag.URLSource = (*SitemapSource)(nil)

// SitemapSource discovers page URLs from a site's /sitemap.xml.
// Sitemap indexes are resolved one level deep; URLs outside the base
// host are discarded.
type SitemapSource struct {
	client *http.Client
}

// NewSitemapSource creates a new SitemapSource with the given HTTP
// client. If client is nil, http.DefaultClient is used.
func NewSitemapSource(client *http.Client) *SitemapSource {
	if client == nil {
		client = http.DefaultClient
	}
	return &SitemapSource{client: client}
}

// Discover returns same-host URLs listed in the site's sitemap.
// A missing or unparsable sitemap is not an error; it returns an empty
// slice so callers can fall back to link crawling.
func (s *SitemapSource) Discover(ctx context.Context, baseURL string) ([]string, error) {
	base, err := url.Parse(baseURL)
	if err != nil {
		return nil, siterag.Errorf(siterag.EINVALID, "invalid base URL %q: %v", baseURL, err)
	}

	sitemapURL := *base
	sitemapURL.Path = "/sitemap.xml"
	sitemapURL.RawQuery = ""
	sitemapURL.Fragment = ""

	body, err := s.get(ctx, sitemapURL.String())
	if err != nil {
		return []string{}, nil
	}

	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(body); err != nil {
		return []string{}, nil
	}

	root := doc.Root()
	if root == nil {
		return []string{}, nil
	}

	var urls []string
	seen := make(map[string]bool)

	appendLoc := func(loc string) {
		u, err := url.Parse(loc)
		if err != nil || u.Host != base.Host {
			return
		}
		u.Fragment = ""
		clean := u.String()
		if !seen[clean] {
			seen[clean] = true
			urls = append(urls, clean)
		}
	}

	switch root.Tag {
	case "urlset":
		for _, el := range root.SelectElements("url") {
			if loc := el.SelectElement("loc"); loc != nil {
				appendLoc(loc.Text())
			}
		}
	case "sitemapindex":
		for _, el := range root.SelectElements("sitemap") {
			loc := el.SelectElement("loc")
			if loc == nil {
				continue
			}
			child, err := s.get(ctx, loc.Text())
			if err != nil {
				continue
			}
			childDoc := etree.NewDocument()
			if err := childDoc.ReadFromBytes(child); err != nil {
				continue
			}
			childRoot := childDoc.Root()
			if childRoot == nil || childRoot.Tag != "urlset" {
				continue
			}
			for _, u := range childRoot.SelectElements("url") {
				if l := u.SelectElement("loc"); l != nil {
					appendLoc(l.Text())
				}
			}
		}
	}

	if urls == nil {
		urls = []string{}
	}
	return urls, nil
}

func (s *SitemapSource) get(ctx context.Context, rawURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, err
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, siterag.Errorf(siterag.ENETWORK, "fetch %s: HTTP %d", rawURL, resp.StatusCode)
	}

	return io.ReadAll(resp.Body)
}
