package report

import (
	"io"
	"strconv"

	"github.com/nao1215/markdown"

	"github.com/gukoff/blogward/internal/model"
)

// MarkdownWriter outputs reports in GitHub Flavored Markdown, suitable
// for CI job summaries and pull request comments.
type MarkdownWriter struct {
	baseWriter
}

// NewMarkdownWriter creates a MarkdownWriter that outputs to the given writer.
func NewMarkdownWriter(output io.Writer) *MarkdownWriter {
	return &MarkdownWriter{baseWriter: newBaseWriter(output)}
}

// Write outputs the report in Markdown format.
func (w *MarkdownWriter) Write(report *model.AuditReport) (int, error) {
	md := markdown.NewMarkdown(w.output)

	w.writeHeader(md, report)
	w.writeChecks(md, report)
	w.writeFindings(md, report)
	w.writeAlert(md, report)

	return len(md.String()), md.Build()
}

// writeHeader writes the report header with audit information.
func (w *MarkdownWriter) writeHeader(md *markdown.Markdown, report *model.AuditReport) {
	md.H1("Blogward Audit Report")
	md.PlainText("")

	status := "✅ Pass"
	if !report.Passed() {
		status = "❌ Fail"
	}
	if report.ErrorMessage != "" {
		status = "⚠️ Error - " + report.ErrorMessage
	}

	md.Table(markdown.TableSet{
		Header: []string{"Property", "Value"},
		Rows: [][]string{
			{"Site", "`" + report.BaseURL + "`"},
			{"Output Dir", "`" + report.OutputDir + "`"},
			{"Audit Date", report.DateAudited.Format("2006-01-02 15:04:05 MST")},
			{"Pages Scanned", strconv.Itoa(report.PagesScanned)},
			{"Links Processed", strconv.Itoa(report.LinksProcessed)},
			{"Status", status},
		},
	})
	md.PlainText("")
}

// writeChecks writes the per-check pass/fail table.
func (w *MarkdownWriter) writeChecks(md *markdown.Markdown, report *model.AuditReport) {
	md.H2("Checks")
	md.PlainText("")

	failed := make(map[string]bool, len(report.FailedChecks))
	for _, c := range report.FailedChecks {
		failed[c] = true
	}

	rows := make([][]string, 0, len(report.PerformedChecks))
	for _, check := range report.PerformedChecks {
		result := "✅ pass"
		if failed[check] {
			result = "❌ fail"
		}
		rows = append(rows, []string{check, result, strconv.Itoa(len(report.FindingsByCheck(check)))})
	}

	md.Table(markdown.TableSet{
		Header: []string{"Check", "Result", "Findings"},
		Rows:   rows,
	})
	md.PlainText("")
}

// writeFindings writes one findings table per failed check.
func (w *MarkdownWriter) writeFindings(md *markdown.Markdown, report *model.AuditReport) {
	if report.TotalFindings() == 0 {
		return
	}

	md.H2("Findings")
	md.PlainText("")

	for _, check := range report.PerformedChecks {
		findings := report.FindingsByCheck(check)
		if len(findings) == 0 {
			continue
		}

		md.H3(check)
		md.PlainText("")

		rows := make([][]string, 0, len(findings))
		for _, f := range findings {
			rows = append(rows, []string{f.SeverityText, f.Title, f.Value, f.Location})
		}

		md.Table(markdown.TableSet{
			Header: []string{"Severity", "Issue", "Value", "Location"},
			Rows:   rows,
		})
		md.PlainText("")
	}
}

// writeAlert writes a GitHub alert reflecting the verdict.
func (w *MarkdownWriter) writeAlert(md *markdown.Markdown, report *model.AuditReport) {
	switch {
	case report.ErrorMessage != "":
		md.Cautionf("The audit aborted with an error: %s", report.ErrorMessage)
	case !report.Passed():
		md.Warningf("%d check(s) failed with %d finding(s). The site should not be published as-is.",
			len(report.FailedChecks), report.TotalFindings())
	default:
		md.Notef("All %d check(s) passed. %d link(s) processed.",
			len(report.PerformedChecks), report.LinksProcessed)
	}
}
