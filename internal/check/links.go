package check

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"sort"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/gukoff/blogward/internal/model"
	"github.com/gukoff/blogward/internal/site"
)

// LinkCache stores external link liveness results between runs so that
// repeated local audits do not re-hammer external hosts.
type LinkCache interface {
	// Get returns the cached verdict for a URL. The second value is
	// false on a cache miss or an expired entry.
	Get(ctx context.Context, rawURL string) (ok bool, found bool, err error)

	// Put stores the verdict for a URL.
	Put(ctx context.Context, rawURL string, ok bool, status int) error
}

// ExternalLinksCheck probes every external hyperlink for liveness.
// Internal links are out of scope here; the orphan audit owns the
// internal graph.
type ExternalLinksCheck struct {
	// client performs the probes. Its Timeout bounds each request.
	client *http.Client

	// concurrency is the number of parallel probes.
	concurrency int

	// cache holds liveness results between runs. Nil disables caching.
	cache LinkCache

	// ignoreHosts are hostnames never probed.
	ignoreHosts []string

	// userAgent identifies the auditor in probe requests.
	userAgent string
}

// ExternalLinksCheckOption configures an ExternalLinksCheck.
type ExternalLinksCheckOption func(*ExternalLinksCheck)

// WithLinkConcurrency sets the number of parallel probes.
func WithLinkConcurrency(n int) ExternalLinksCheckOption {
	return func(c *ExternalLinksCheck) {
		c.concurrency = n
	}
}

// WithLinkCache sets the liveness cache.
func WithLinkCache(cache LinkCache) ExternalLinksCheckOption {
	return func(c *ExternalLinksCheck) {
		c.cache = cache
	}
}

// WithIgnoreHosts sets hostnames the check never probes.
func WithIgnoreHosts(hosts []string) ExternalLinksCheckOption {
	return func(c *ExternalLinksCheck) {
		c.ignoreHosts = hosts
	}
}

// WithLinkUserAgent sets the User-Agent header for probe requests.
func WithLinkUserAgent(ua string) ExternalLinksCheckOption {
	return func(c *ExternalLinksCheck) {
		c.userAgent = ua
	}
}

// NewExternalLinksCheck creates the external link liveness check.
// The client should carry the configured probe timeout.
func NewExternalLinksCheck(client *http.Client, opts ...ExternalLinksCheckOption) *ExternalLinksCheck {
	c := &ExternalLinksCheck{
		client:      client,
		concurrency: 8,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Name returns the check name.
func (c *ExternalLinksCheck) Name() string {
	return "links"
}

// externalLink is one deduplicated external URL with the page it was
// first seen on.
type externalLink struct {
	url      string
	location string
}

// Run collects, deduplicates, and probes every external link.
// Probes run in parallel; the findings aggregation stays serialized
// because multiple pages can reference the same URL.
func (c *ExternalLinksCheck) Run(ctx context.Context, s *site.Site, report *model.AuditReport) error {
	links := c.collect(s)
	if len(links) == 0 {
		return nil
	}

	dead := make([]externalLink, len(links))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(c.concurrency)
	for i, link := range links {
		i, link := i, link
		g.Go(func() error {
			ok, err := c.alive(ctx, link.url)
			if err != nil {
				return err
			}
			if !ok {
				dead[i] = link
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	count := 0
	for _, link := range dead {
		if link.url == "" {
			continue
		}
		count++
		report.AddFinding(model.Finding{
			Check:    c.Name(),
			Title:    "Dead external link",
			Value:    link.url,
			Location: link.location,
			Severity: model.SeverityMedium,
		})
	}

	if count > 0 {
		return fmt.Errorf("%d dead external link(s)", count)
	}
	return nil
}

// collect gathers every external http(s) link across the site,
// deduplicated by fragment-stripped URL and sorted for stable probing.
func (c *ExternalLinksCheck) collect(s *site.Site) []externalLink {
	seen := make(map[string]string) // url -> first location
	for _, page := range s.Pages {
		for _, href := range page.Anchors {
			u, err := url.Parse(strings.TrimSpace(href))
			if err != nil {
				continue
			}
			resolved := s.BaseURL.ResolveReference(u)
			if resolved.Scheme != "http" && resolved.Scheme != "https" {
				continue
			}
			if strings.EqualFold(resolved.Host, s.BaseURL.Host) {
				continue // internal, handled by the orphan audit
			}
			if c.ignored(resolved.Hostname()) {
				continue
			}
			resolved.Fragment = ""
			if _, ok := seen[resolved.String()]; !ok {
				seen[resolved.String()] = page.Path
			}
		}
	}

	links := make([]externalLink, 0, len(seen))
	for u, loc := range seen {
		links = append(links, externalLink{url: u, location: loc})
	}
	sort.Slice(links, func(i, j int) bool { return links[i].url < links[j].url })
	return links
}

// alive probes one URL, consulting the cache first. HEAD is tried before
// GET because many hosts answer it cheaply; hosts that reject HEAD
// (405 and friends) get the GET fallback.
func (c *ExternalLinksCheck) alive(ctx context.Context, rawURL string) (bool, error) {
	if c.cache != nil {
		if ok, found, err := c.cache.Get(ctx, rawURL); err == nil && found {
			return ok, nil
		}
	}

	status, ok := c.probe(ctx, http.MethodHead, rawURL)
	if !ok {
		status, ok = c.probe(ctx, http.MethodGet, rawURL)
	}

	if c.cache != nil {
		if err := c.cache.Put(ctx, rawURL, ok, status); err != nil {
			return ok, err
		}
	}
	return ok, nil
}

// probe performs a single request and reports whether the URL answered
// with a non-error status. Network errors count as dead, not as audit
// failures: a dead link is exactly what this check exists to find.
func (c *ExternalLinksCheck) probe(ctx context.Context, method, rawURL string) (int, bool) {
	req, err := http.NewRequestWithContext(ctx, method, rawURL, nil)
	if err != nil {
		return 0, false
	}
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return 0, false
	}
	defer resp.Body.Close()

	return resp.StatusCode, resp.StatusCode < http.StatusBadRequest
}

// ignored reports whether the hostname is on the ignore list.
func (c *ExternalLinksCheck) ignored(host string) bool {
	for _, h := range c.ignoreHosts {
		if strings.EqualFold(h, host) {
			return true
		}
	}
	return false
}
