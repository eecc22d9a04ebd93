package model

// Severity represents how much a finding should worry the site owner.
//
// Design decision: We use iota-based constants rather than string
// constants for efficiency in comparisons and sorting. The String()
// method provides human-readable output when needed.
type Severity int

const (
	// SeverityInfo indicates informational findings that never fail the
	// audit on their own. Example: an external link answering with a
	// redirect.
	SeverityInfo Severity = iota

	// SeverityLow indicates cosmetic issues worth fixing eventually.
	// Examples: an img element without alt text, an unknown word that is
	// probably jargon.
	SeverityLow

	// SeverityMedium indicates issues a reader may actually notice.
	// Examples: a dead external link, a style lint violation.
	SeverityMedium

	// SeverityHigh indicates the published output is wrong.
	// Examples: an orphaned article nobody can reach, a required page
	// missing from the build, a draft leaked into the output.
	SeverityHigh

	// SeverityCritical indicates content that must not ship at all.
	// Example: an image carrying GPS coordinates in its EXIF data.
	SeverityCritical
)

// String returns a human-readable representation of the severity level.
func (s Severity) String() string {
	switch s {
	case SeverityInfo:
		return "INFO"
	case SeverityLow:
		return "LOW"
	case SeverityMedium:
		return "MEDIUM"
	case SeverityHigh:
		return "HIGH"
	case SeverityCritical:
		return "CRITICAL"
	default:
		return "UNKNOWN"
	}
}
