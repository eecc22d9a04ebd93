package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/gukoff/blogward/internal/model"
)

// SimpleWriter outputs human-readable text reports.
// This format is designed for terminal display and CI logs: plain ASCII,
// no colors, pipes cleanly to files.
type SimpleWriter struct {
	baseWriter

	// showEmpty controls whether severity sections with no findings
	// are shown.
	showEmpty bool
}

// SimpleWriterOption configures a SimpleWriter.
type SimpleWriterOption func(*SimpleWriter)

// WithShowEmpty configures the writer to show empty severity sections.
func WithShowEmpty(show bool) SimpleWriterOption {
	return func(w *SimpleWriter) {
		w.showEmpty = show
	}
}

// NewSimpleWriter creates a SimpleWriter that outputs to the given writer.
func NewSimpleWriter(output io.Writer, opts ...SimpleWriterOption) *SimpleWriter {
	w := &SimpleWriter{baseWriter: newBaseWriter(output)}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Write outputs the report in human-readable format.
func (w *SimpleWriter) Write(report *model.AuditReport) (int, error) {
	var sb strings.Builder

	w.writeHeader(&sb, report)
	w.writeSummary(&sb, report)
	w.writeFindings(&sb, report)
	w.writeVerdict(&sb, report)

	return w.output.Write([]byte(sb.String()))
}

// writeHeader writes the report header with audit information.
func (w *SimpleWriter) writeHeader(sb *strings.Builder, report *model.AuditReport) {
	sb.WriteString("\n")
	sb.WriteString(strings.Repeat("=", 70))
	sb.WriteString("\n")
	sb.WriteString("                         BLOGWARD AUDIT REPORT\n")
	sb.WriteString(strings.Repeat("=", 70))
	sb.WriteString("\n\n")

	fmt.Fprintf(sb, "Site:            %s\n", report.BaseURL)
	fmt.Fprintf(sb, "Output Dir:      %s\n", report.OutputDir)
	fmt.Fprintf(sb, "Audit Date:      %s\n", report.DateAudited.Format("2006-01-02 15:04:05 MST"))
	fmt.Fprintf(sb, "Pages Scanned:   %d\n", report.PagesScanned)
	fmt.Fprintf(sb, "Links Processed: %d\n", report.LinksProcessed)

	if report.ErrorMessage != "" {
		fmt.Fprintf(sb, "Status:          ERROR - %s\n", report.ErrorMessage)
	}
	sb.WriteString("\n")
}

// writeSummary writes the checks summary section.
func (w *SimpleWriter) writeSummary(sb *strings.Builder, report *model.AuditReport) {
	sb.WriteString(strings.Repeat("-", 70))
	sb.WriteString("\n")
	sb.WriteString("CHECKS\n")
	sb.WriteString(strings.Repeat("-", 70))
	sb.WriteString("\n\n")

	failed := make(map[string]bool, len(report.FailedChecks))
	for _, c := range report.FailedChecks {
		failed[c] = true
	}

	for _, check := range report.PerformedChecks {
		mark := "PASS"
		if failed[check] {
			mark = "FAIL"
		}
		fmt.Fprintf(sb, "  [%s] %s\n", mark, check)
	}
	sb.WriteString("\n")
}

// writeFindings writes all findings grouped by severity, critical first.
func (w *SimpleWriter) writeFindings(sb *strings.Builder, report *model.AuditReport) {
	if report.TotalFindings() == 0 && !w.showEmpty {
		return
	}

	sb.WriteString(strings.Repeat("-", 70))
	sb.WriteString("\n")
	sb.WriteString("FINDINGS\n")
	sb.WriteString(strings.Repeat("-", 70))
	sb.WriteString("\n\n")

	severities := []model.Severity{
		model.SeverityCritical,
		model.SeverityHigh,
		model.SeverityMedium,
		model.SeverityLow,
		model.SeverityInfo,
	}

	for _, severity := range severities {
		findings := report.FindingsBySeverity(severity)
		if len(findings) == 0 && !w.showEmpty {
			continue
		}

		fmt.Fprintf(sb, "[%s]\n", severity.String())
		for _, f := range findings {
			fmt.Fprintf(sb, "  * %s: %s\n", f.Check, f.Title)
			if f.Value != "" {
				fmt.Fprintf(sb, "    Value: %s\n", f.Value)
			}
			if f.Location != "" {
				fmt.Fprintf(sb, "    Location: %s\n", f.Location)
			}
		}
		sb.WriteString("\n")
	}
}

// writeVerdict writes the final pass/fail line.
func (w *SimpleWriter) writeVerdict(sb *strings.Builder, report *model.AuditReport) {
	sb.WriteString(strings.Repeat("=", 70))
	sb.WriteString("\n")
	if report.Passed() {
		fmt.Fprintf(sb, "PASS: all %d check(s) passed, %d link(s) processed\n",
			len(report.PerformedChecks), report.LinksProcessed)
	} else {
		fmt.Fprintf(sb, "FAIL: %d of %d check(s) failed (%d finding(s))\n",
			len(report.FailedChecks), len(report.PerformedChecks), report.TotalFindings())
	}
	sb.WriteString(strings.Repeat("=", 70))
	sb.WriteString("\n")
}
