package check

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"golang.org/x/net/html"

	"github.com/gukoff/blogward/internal/model"
	"github.com/gukoff/blogward/internal/site"
)

// HTMLLintCheck runs structural lint over every page's parse tree.
// Parsing stays lenient (the goal is auditing, not strict markup
// validation), but a handful of structural problems are worth failing
// the build for:
//
//   - missing <title>
//   - duplicate id attributes (breaks fragment links)
//   - <img> without alt text
//   - anchors with an empty href attribute
type HTMLLintCheck struct{}

// NewHTMLLintCheck creates the HTML lint check.
func NewHTMLLintCheck() *HTMLLintCheck {
	return &HTMLLintCheck{}
}

// Name returns the check name.
func (c *HTMLLintCheck) Name() string {
	return "html_lint"
}

// Run lints every page and records a finding per issue.
func (c *HTMLLintCheck) Run(ctx context.Context, s *site.Site, report *model.AuditReport) error {
	issues := 0
	for _, page := range s.Pages {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		findings := lintPage(page)
		issues += len(findings)
		for _, f := range findings {
			report.AddFinding(f)
		}
	}

	if issues > 0 {
		return fmt.Errorf("%d HTML issue(s) found", issues)
	}
	return nil
}

// lintPage re-parses one page and collects its structural issues.
// x/net/html recovers from malformed fragments, so unparseable markup is
// skipped rather than failing the run.
func lintPage(page *model.Page) []model.Finding {
	findings := make([]model.Finding, 0)

	doc, err := html.Parse(bytes.NewReader(page.Raw))
	if err != nil {
		return findings
	}

	if page.Title == "" {
		findings = append(findings, model.Finding{
			Check:    "html_lint",
			Title:    "Page has no title element",
			Location: page.Path,
			Severity: model.SeverityLow,
		})
	}

	seenIDs := make(map[string]bool)

	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			for _, a := range n.Attr {
				if a.Key == "id" && a.Val != "" {
					if seenIDs[a.Val] {
						findings = append(findings, model.Finding{
							Check:    "html_lint",
							Title:    "Duplicate id attribute",
							Value:    a.Val,
							Location: page.Path,
							Severity: model.SeverityMedium,
						})
					}
					seenIDs[a.Val] = true
				}
			}

			switch n.Data {
			case "img":
				if _, ok := findAttr(n, "alt"); !ok {
					src, _ := findAttr(n, "src")
					findings = append(findings, model.Finding{
						Check:    "html_lint",
						Title:    "Image without alt text",
						Value:    src,
						Location: page.Path,
						Severity: model.SeverityLow,
					})
				}
			case "a":
				if href, ok := findAttr(n, "href"); ok && strings.TrimSpace(href) == "" {
					findings = append(findings, model.Finding{
						Check:    "html_lint",
						Title:    "Anchor with empty href",
						Location: page.Path,
						Severity: model.SeverityLow,
					})
				}
			}
		}

		for child := n.FirstChild; child != nil; child = child.NextSibling {
			walk(child)
		}
	}
	walk(doc)

	return findings
}

// findAttr retrieves an attribute from an HTML node, reporting presence.
func findAttr(n *html.Node, key string) (string, bool) {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val, true
		}
	}
	return "", false
}
