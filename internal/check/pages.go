package check

import (
	"context"
	"fmt"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/gukoff/blogward/internal/model"
	"github.com/gukoff/blogward/internal/site"
)

// RequiredPagesCheck verifies that every configured pattern matches at
// least one emitted page. Catches builds that silently drop a page the
// site promises to serve (the feed, the 404 page, the index).
type RequiredPagesCheck struct {
	// patterns are doublestar globs matched against site-relative
	// page paths, e.g. "index.html" or "archive/**".
	patterns []string
}

// NewRequiredPagesCheck creates the check for the given patterns.
func NewRequiredPagesCheck(patterns []string) *RequiredPagesCheck {
	return &RequiredPagesCheck{patterns: patterns}
}

// Name returns the check name.
func (c *RequiredPagesCheck) Name() string {
	return "required_pages"
}

// Run reports a finding for every pattern with no matching page.
func (c *RequiredPagesCheck) Run(_ context.Context, s *site.Site, report *model.AuditReport) error {
	missing := 0
	for _, pattern := range c.patterns {
		if matchesAny(pattern, s.Pages) {
			continue
		}
		missing++
		report.AddFinding(model.Finding{
			Check:    c.Name(),
			Title:    "Required page missing from build output",
			Value:    pattern,
			Severity: model.SeverityHigh,
		})
	}

	if missing > 0 {
		return fmt.Errorf("%d required page(s) missing", missing)
	}
	return nil
}

// ForbiddenPagesCheck verifies that no emitted page matches any of the
// configured patterns. Catches drafts and private pages leaking into the
// published output.
type ForbiddenPagesCheck struct {
	patterns []string
}

// NewForbiddenPagesCheck creates the check for the given patterns.
func NewForbiddenPagesCheck(patterns []string) *ForbiddenPagesCheck {
	return &ForbiddenPagesCheck{patterns: patterns}
}

// Name returns the check name.
func (c *ForbiddenPagesCheck) Name() string {
	return "forbidden_pages"
}

// Run reports a finding for every page matching a forbidden pattern.
func (c *ForbiddenPagesCheck) Run(_ context.Context, s *site.Site, report *model.AuditReport) error {
	leaked := 0
	for _, pattern := range c.patterns {
		for _, page := range s.Pages {
			ok, err := doublestar.Match(pattern, page.Path)
			if err != nil {
				return fmt.Errorf("invalid pattern %q: %w", pattern, err)
			}
			if !ok {
				continue
			}
			leaked++
			report.AddFinding(model.Finding{
				Check:    c.Name(),
				Title:    "Forbidden page present in build output",
				Value:    pattern,
				Location: page.Path,
				Severity: model.SeverityHigh,
			})
		}
	}

	if leaked > 0 {
		return fmt.Errorf("%d forbidden page(s) present", leaked)
	}
	return nil
}

// matchesAny reports whether the pattern matches at least one page path.
// Invalid patterns match nothing; required_pages then reports them missing,
// which surfaces the typo.
func matchesAny(pattern string, pages []*model.Page) bool {
	for _, page := range pages {
		if ok, err := doublestar.Match(pattern, page.Path); err == nil && ok {
			return true
		}
	}
	return false
}
