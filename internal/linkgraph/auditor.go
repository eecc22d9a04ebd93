package linkgraph

import (
	"log/slog"
	"net/url"
	"sort"

	"github.com/gukoff/blogward/internal/model"
)

// Reference is one article URL with its site-wide reference count.
type Reference struct {
	// URL is the normalized absolute article URL.
	URL string `json:"url"`

	// Count is how many times the URL was referenced, including the
	// article's own synthetic self-reference.
	Count int `json:"count"`
}

// Result is the outcome of one link-graph audit.
type Result struct {
	// Counts maps every referenced article URL to its reference count.
	Counts map[string]int

	// Orphans lists the articles below the threshold, sorted by URL.
	// Empty on success.
	Orphans []Reference

	// LinksProcessed is the total number of links that entered the
	// tally: every normalized internal anchor plus one synthetic
	// self-reference per page.
	LinksProcessed int
}

// Auditor runs the orphaned-article analysis over loaded pages.
//
// Design decision: The whole computation is a pure batch transform
// (pages -> links -> counts -> verdict) with no state between runs, so the
// Auditor carries only configuration. Running it twice on the same tree
// yields the same result.
type Auditor struct {
	// matcher identifies dated article URLs.
	matcher *Matcher

	// threshold is the minimum reference count; below it an article is
	// an orphan. The self-reference credit means a threshold of 2
	// effectively demands one real inbound link.
	threshold int

	// logger for the per-URL count lines.
	logger *slog.Logger
}

// AuditorOption configures an Auditor.
type AuditorOption func(*Auditor)

// WithThreshold sets the minimum reference count.
func WithThreshold(threshold int) AuditorOption {
	return func(a *Auditor) {
		a.threshold = threshold
	}
}

// WithLogger sets a custom logger for the auditor.
func WithLogger(logger *slog.Logger) AuditorOption {
	return func(a *Auditor) {
		a.logger = logger
	}
}

// NewAuditor creates an Auditor with the given article matcher.
func NewAuditor(matcher *Matcher, opts ...AuditorOption) *Auditor {
	a := &Auditor{
		matcher:   matcher,
		threshold: 2,
		logger:    slog.Default(),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Audit builds the full reference-count map over all pages before any
// orphan determination, so file traversal order cannot affect the verdict.
//
// Each page contributes every internal anchor it carries, plus one
// synthetic self-reference for its own URL. The self-reference models the
// page being reachable through the site's own index and listing mechanisms
// even without an explicit hyperlink, which is why the orphan threshold is
// two references rather than one.
//
// On failure the returned error is an *OrphanArticlesFoundError; the
// Result is valid either way.
func (a *Auditor) Audit(pages []*model.Page, base *url.URL) (*Result, error) {
	counts := make(map[string]int)
	processed := 0

	for _, page := range pages {
		for _, href := range page.Anchors {
			normalized, ok := Normalize(href, base)
			if !ok {
				continue
			}
			counts[normalized]++
			processed++
		}

		// Synthetic self-reference: the page exists, so its own
		// listing counts once.
		if self, ok := Normalize(page.URL, base); ok {
			counts[self]++
			processed++
		}
	}

	result := &Result{
		Counts:         make(map[string]int),
		Orphans:        make([]Reference, 0),
		LinksProcessed: processed,
	}

	for u, count := range counts {
		if !a.matcher.IsArticle(u) {
			continue
		}
		result.Counts[u] = count
		if count < a.threshold {
			result.Orphans = append(result.Orphans, Reference{URL: u, Count: count})
		}
	}

	sort.Slice(result.Orphans, func(i, j int) bool {
		return result.Orphans[i].URL < result.Orphans[j].URL
	})

	// Log every candidate in a stable order; the verdict itself never
	// depends on ordering.
	for _, u := range sortedKeys(result.Counts) {
		a.logger.Info("article reference count",
			"url", u,
			"count", result.Counts[u],
			"orphan", result.Counts[u] < a.threshold,
		)
	}

	if len(result.Orphans) > 0 {
		return result, &OrphanArticlesFoundError{Orphans: result.Orphans}
	}

	a.logger.Info("orphan audit passed", "links_processed", result.LinksProcessed)
	return result, nil
}

// sortedKeys returns the map's keys in ascending order.
func sortedKeys(m map[string]int) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
