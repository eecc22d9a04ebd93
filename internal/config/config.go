package config

import (
	"net/url"
	"path/filepath"
	"regexp"
	"time"

	"github.com/adrg/xdg"
)

// Default configuration values.
// These are chosen for a small personal blog where the whole output tree
// fits in memory and every operation is a single batch pass.
const (
	// DefaultOutputDir is where most static-site generators emit their output.
	DefaultOutputDir = "_site"

	// DefaultArticlePattern matches date-segmented article paths such as
	// /2016/09/12/first-post.html. The pattern is applied to the URL path
	// only, never to the query or fragment.
	DefaultArticlePattern = `^/\d{4}/\d{2}/\d{2}/`

	// DefaultOrphanThreshold is the minimum number of references an
	// article URL needs to not count as orphaned. Every emitted page
	// credits itself one reference, so a threshold of 2 demands at least
	// one real inbound link.
	DefaultOrphanThreshold = 2

	// DefaultLinkTimeout bounds each external link liveness probe.
	// External sites vary wildly; 10 seconds keeps slow hosts from
	// stalling the audit while tolerating sluggish ones.
	DefaultLinkTimeout = 10 * time.Second

	// DefaultLinkConcurrency is the number of external links probed in
	// parallel. The artifact set is small, so a modest fan-out is enough.
	DefaultLinkConcurrency = 8

	// DefaultLinkCacheTTL is how long a cached liveness result stays
	// valid. A day avoids re-hammering external hosts on every local run
	// while still catching links that die.
	DefaultLinkCacheTTL = 24 * time.Hour

	// DefaultBuildTimeout bounds the site generator run. Five minutes is
	// generous for a personal blog; runaway builds should fail the audit
	// rather than hang it.
	DefaultBuildTimeout = 5 * time.Minute

	// DefaultUserAgent identifies blogward in external link probes so
	// site operators can tell audit traffic from readers.
	DefaultUserAgent = "blogward/1.0 (+https://github.com/gukoff/blogward)"

	// AppName is the application name used for XDG directory paths.
	AppName = "blogward"
)

// Config holds all options for one audit run. It is populated from CLI
// flags merged over the .blogward file and passed by injection; nothing
// reads the working directory implicitly.
type Config struct {
	// OutputDir is the directory tree of generated HTML files to audit.
	OutputDir string

	// BaseURL is the canonical root URL the site is served from, used to
	// resolve relative hrefs to absolute form.
	BaseURL string

	// ArticlePattern is the regular expression (applied to URL paths)
	// that identifies dated article pages.
	ArticlePattern string

	// OrphanThreshold is the minimum reference count below which an
	// article is reported as orphaned.
	OrphanThreshold int

	// SkipBuild skips running the site generator before the checks.
	SkipBuild bool

	// BuildCommand is the external generator invocation, argv form.
	BuildCommand []string

	// BuildTimeout bounds the generator run.
	BuildTimeout time.Duration

	// RequiredPages are doublestar patterns that must each match at
	// least one emitted page path.
	RequiredPages []string

	// ForbiddenPages are doublestar patterns that no emitted page path
	// may match.
	ForbiddenPages []string

	// SpellCommand is the external spellchecker invocation in list mode
	// (reads text on stdin, prints one unknown word per line).
	SpellCommand []string

	// SpellAllowlist is a path to a newline-delimited file of words the
	// spelling check should accept.
	SpellAllowlist string

	// LinkTimeout bounds each external link probe.
	LinkTimeout time.Duration

	// LinkConcurrency is the number of external links probed in parallel.
	LinkConcurrency int

	// LinkCacheTTL is how long cached liveness results stay valid.
	// Zero disables the cache entirely.
	LinkCacheTTL time.Duration

	// LinkIgnoreHosts are hostnames the link check never probes.
	LinkIgnoreHosts []string

	// StyleLintCommand is the external style linter invocation.
	StyleLintCommand []string

	// ImagePattern is a doublestar pattern selecting images in the
	// output tree for the metadata check.
	ImagePattern string

	// Checks restricts the run to the named checks. Empty means all.
	Checks []string

	// Verbose enables slog.LevelDebug output.
	Verbose bool

	// JSONReport enables JSON report output. Mutually exclusive with
	// MarkdownReport.
	JSONReport bool

	// MarkdownReport enables Markdown report output.
	MarkdownReport bool

	// ReportFile is the output file path for the report. Empty means stdout.
	ReportFile string

	// ConfigFilePath is the explicit path to the .blogward file, if any.
	ConfigFilePath string
}

// NewConfig creates a new Config with default values.
//
// Design decision: We use a constructor function instead of relying on
// zero values because many defaults are non-zero (timeouts, thresholds).
// This also serves as documentation of what the defaults are.
func NewConfig() *Config {
	return &Config{
		OutputDir:       DefaultOutputDir,
		ArticlePattern:  DefaultArticlePattern,
		OrphanThreshold: DefaultOrphanThreshold,
		BuildTimeout:    DefaultBuildTimeout,
		LinkTimeout:     DefaultLinkTimeout,
		LinkConcurrency: DefaultLinkConcurrency,
		LinkCacheTTL:    DefaultLinkCacheTTL,
		ImagePattern:    "**/*.{jpg,jpeg,png,tiff,tif}",
	}
}

// XDGCacheDir returns the XDG cache directory for blogward.
// On Linux: ~/.cache/blogward
// On macOS: ~/Library/Caches/blogward
// On Windows: %LOCALAPPDATA%\blogward\cache
func XDGCacheDir() string {
	return filepath.Join(xdg.CacheHome, AppName)
}

// Validate checks if the configuration is valid.
// It returns the first problem found; fixing one error often makes
// later ones irrelevant.
func (c *Config) Validate() error {
	if c.OutputDir == "" {
		return ErrNoOutputDir
	}

	u, err := url.Parse(c.BaseURL)
	if err != nil || !u.IsAbs() || u.Host == "" || (u.Scheme != "http" && u.Scheme != "https") {
		return ErrInvalidBaseURL
	}

	if _, err := regexp.Compile(c.ArticlePattern); err != nil {
		return ErrInvalidArticlePattern
	}

	if c.OrphanThreshold <= 0 {
		return ErrInvalidThreshold
	}

	if c.LinkTimeout <= 0 {
		return ErrInvalidLinkTimeout
	}

	if c.LinkConcurrency <= 0 {
		return ErrInvalidConcurrency
	}

	if c.JSONReport && c.MarkdownReport {
		return ErrConflictingReportFormats
	}

	if !c.SkipBuild && len(c.BuildCommand) == 0 {
		return ErrNoBuildCommand
	}

	return nil
}
