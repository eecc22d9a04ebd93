package check

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/gukoff/blogward/internal/linkgraph"
	"github.com/gukoff/blogward/internal/model"
	"github.com/gukoff/blogward/internal/site"
)

// OrphansCheck runs the link-graph audit: every dated article must be
// referenced at least threshold times across the site, counting its own
// synthetic self-reference.
type OrphansCheck struct {
	// articlePattern identifies dated article URL paths.
	articlePattern string

	// threshold is the minimum reference count.
	threshold int

	// logger for the per-URL count lines.
	logger *slog.Logger
}

// OrphansCheckOption configures an OrphansCheck.
type OrphansCheckOption func(*OrphansCheck)

// WithOrphanThreshold sets the minimum reference count.
func WithOrphanThreshold(threshold int) OrphansCheckOption {
	return func(c *OrphansCheck) {
		c.threshold = threshold
	}
}

// WithOrphansLogger sets a custom logger for the check.
func WithOrphansLogger(logger *slog.Logger) OrphansCheckOption {
	return func(c *OrphansCheck) {
		c.logger = logger
	}
}

// NewOrphansCheck creates the orphaned-article check.
func NewOrphansCheck(articlePattern string, opts ...OrphansCheckOption) *OrphansCheck {
	c := &OrphansCheck{
		articlePattern: articlePattern,
		threshold:      2,
		logger:         slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Name returns the check name.
func (c *OrphansCheck) Name() string {
	return "orphans"
}

// Run audits the link graph and records one finding per orphan. The total
// link count lands in the report so success output can state it.
func (c *OrphansCheck) Run(_ context.Context, s *site.Site, report *model.AuditReport) error {
	matcher, err := linkgraph.NewMatcher(c.articlePattern)
	if err != nil {
		return fmt.Errorf("invalid article pattern %q: %w", c.articlePattern, err)
	}

	auditor := linkgraph.NewAuditor(matcher,
		linkgraph.WithThreshold(c.threshold),
		linkgraph.WithLogger(c.logger),
	)

	result, err := auditor.Audit(s.Pages, s.BaseURL)
	report.LinksProcessed = result.LinksProcessed

	for _, orphan := range result.Orphans {
		report.AddFinding(model.Finding{
			Check:    c.Name(),
			Title:    "Orphaned article",
			Value:    fmt.Sprintf("%s (referenced %d time(s), need %d)", orphan.URL, orphan.Count, c.threshold),
			Severity: model.SeverityHigh,
		})
	}

	return err
}
