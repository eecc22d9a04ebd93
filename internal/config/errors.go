package config

import "errors"

// Configuration validation errors.
// These errors are returned by Config.Validate() and provide specific
// information about what is wrong with the configuration.
//
// Design decision: We use package-level sentinel errors rather than
// creating new error instances in Validate(). This allows callers to use
// errors.Is() for programmatic error handling while still providing
// human-readable messages.
var (
	// ErrNoOutputDir is returned when no site output directory is configured.
	ErrNoOutputDir = errors.New("no output directory specified: set site.outputDir or pass --output-dir")

	// ErrInvalidBaseURL is returned when the base URL is empty or does not parse.
	ErrInvalidBaseURL = errors.New("invalid base URL: must be an absolute http(s) URL")

	// ErrInvalidArticlePattern is returned when the article path pattern
	// is not a valid regular expression.
	ErrInvalidArticlePattern = errors.New("invalid article pattern: must be a valid regular expression")

	// ErrInvalidThreshold is returned when the orphan reference threshold
	// is not positive. A threshold of zero would make every article pass.
	ErrInvalidThreshold = errors.New("invalid orphan threshold: must be positive")

	// ErrInvalidLinkTimeout is returned when the external link timeout is
	// not positive. A zero timeout would fail every probe immediately.
	ErrInvalidLinkTimeout = errors.New("invalid link timeout: must be positive")

	// ErrInvalidConcurrency is returned when the link check concurrency is
	// not positive.
	ErrInvalidConcurrency = errors.New("invalid link concurrency: must be positive")

	// ErrConflictingReportFormats is returned when both --json and
	// --markdown are specified. Only one output format can be used at a time.
	ErrConflictingReportFormats = errors.New("conflicting report formats: --json and --markdown cannot be used together")

	// ErrNoBuildCommand is returned when a build is requested but no
	// generator command is configured.
	ErrNoBuildCommand = errors.New("no build command configured: set build.command or use --skip-build")
)
