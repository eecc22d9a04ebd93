package model

import (
	"time"
)

// Finding is a single issue reported by a check.
type Finding struct {
	// Check is the name of the check that produced the finding.
	Check string `json:"check"`

	// Title is a short human-readable description of the issue.
	Title string `json:"title"`

	// Value is the offending value (a URL, a word, a file path).
	Value string `json:"value,omitempty"`

	// Location is where the issue was found, usually a page path.
	Location string `json:"location,omitempty"`

	// Severity is the risk level of the finding.
	Severity Severity `json:"-"`

	// SeverityText is the string form of Severity for serialization.
	SeverityText string `json:"severity"`
}

// AuditReport is the main audit result structure. It is created once per
// run, passed through every check, and rendered by the report writers.
//
// Design decision: We use a single struct that checks mutate in sequence
// rather than per-check result types because:
//  1. It simplifies serialization and report rendering
//  2. Checks stay decoupled from each other but share page/link totals
//  3. It mirrors how the audit is consumed: one verdict per run
type AuditReport struct {
	// BaseURL is the canonical root URL the site is served from.
	BaseURL string `json:"base_url"`

	// OutputDir is the directory tree that was audited.
	OutputDir string `json:"output_dir"`

	// DateAudited is when the audit was performed.
	DateAudited time.Time `json:"date_audited"`

	// PagesScanned is the number of HTML files read from the output tree.
	PagesScanned int `json:"pages_scanned"`

	// LinksProcessed is the total number of links the orphan audit
	// counted, including synthetic self-references.
	LinksProcessed int `json:"links_processed"`

	// PerformedChecks lists the checks that ran, in execution order.
	PerformedChecks []string `json:"performed_checks,omitempty"`

	// FailedChecks lists the checks that failed.
	FailedChecks []string `json:"failed_checks,omitempty"`

	// Findings contains every issue reported by the checks.
	Findings []Finding `json:"findings,omitempty"`

	// Severity counters, updated by AddFinding.
	CriticalCount int `json:"critical_count"`
	HighCount     int `json:"high_count"`
	MediumCount   int `json:"medium_count"`
	LowCount      int `json:"low_count"`
	InfoCount     int `json:"info_count"`

	// Error contains the infrastructure error that aborted the run,
	// if any. Check failures are not stored here.
	Error error `json:"-"`

	// ErrorMessage is the string representation of Error for serialization.
	ErrorMessage string `json:"error,omitempty"`
}

// NewAuditReport creates a report for an audit of the given output tree.
func NewAuditReport(baseURL, outputDir string) *AuditReport {
	return &AuditReport{
		BaseURL:     baseURL,
		OutputDir:   outputDir,
		DateAudited: time.Now(),
		Findings:    make([]Finding, 0),
	}
}

// AddFinding records a finding and updates the severity counters.
// Exact duplicates (same check, value, and location) are dropped so that
// a URL repeated across pages does not flood the report.
func (r *AuditReport) AddFinding(finding Finding) {
	for _, f := range r.Findings {
		if f.Check == finding.Check && f.Value == finding.Value && f.Location == finding.Location {
			return
		}
	}

	if finding.SeverityText == "" {
		finding.SeverityText = finding.Severity.String()
	}
	r.Findings = append(r.Findings, finding)

	switch finding.Severity {
	case SeverityCritical:
		r.CriticalCount++
	case SeverityHigh:
		r.HighCount++
	case SeverityMedium:
		r.MediumCount++
	case SeverityLow:
		r.LowCount++
	case SeverityInfo:
		r.InfoCount++
	}
}

// MarkFailed records that the named check failed. A check may be marked
// failed at most once.
func (r *AuditReport) MarkFailed(check string) {
	for _, c := range r.FailedChecks {
		if c == check {
			return
		}
	}
	r.FailedChecks = append(r.FailedChecks, check)
}

// Passed reports whether the audit succeeded: every check ran clean and
// no infrastructure error occurred.
func (r *AuditReport) Passed() bool {
	return len(r.FailedChecks) == 0 && r.Error == nil
}

// TotalFindings returns the number of recorded findings.
func (r *AuditReport) TotalFindings() int {
	return len(r.Findings)
}

// FindingsByCheck returns the findings produced by the named check,
// in the order they were added.
func (r *AuditReport) FindingsByCheck(check string) []Finding {
	out := make([]Finding, 0)
	for _, f := range r.Findings {
		if f.Check == check {
			out = append(out, f)
		}
	}
	return out
}

// FindingsBySeverity returns the findings at the given severity level.
func (r *AuditReport) FindingsBySeverity(severity Severity) []Finding {
	out := make([]Finding, 0)
	for _, f := range r.Findings {
		if f.Severity == severity {
			out = append(out, f)
		}
	}
	return out
}
