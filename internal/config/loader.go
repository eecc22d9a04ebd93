package config

import (
	"errors"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// DefaultConfigFile is the default configuration file name.
const DefaultConfigFile = ".blogward"

// ErrConfigNotFound is returned when the configuration file does not exist.
var ErrConfigNotFound = errors.New("configuration file not found")

// File represents the structure of the .blogward configuration file.
type File struct {
	// Site describes the generated site under audit.
	Site SiteSection `yaml:"site,omitempty"`

	// Build describes how to invoke the static-site generator.
	Build BuildSection `yaml:"build,omitempty"`

	// Checks configures the individual validation checks.
	Checks ChecksSection `yaml:"checks,omitempty"`
}

// SiteSection configures the audited output tree.
type SiteSection struct {
	// OutputDir is the directory the generator emits HTML into.
	OutputDir string `yaml:"outputDir,omitempty"`

	// BaseURL is the canonical root URL the site is served from.
	BaseURL string `yaml:"baseURL,omitempty"`

	// ArticlePattern identifies dated article paths. Defaults to
	// four digits, slash, two digits, slash, two digits, slash.
	ArticlePattern string `yaml:"articlePattern,omitempty"`
}

// BuildSection configures the external site generator invocation.
type BuildSection struct {
	// Command is the generator invocation in argv form,
	// e.g. [bundle, exec, jekyll, build].
	Command []string `yaml:"command,omitempty"`

	// Timeout bounds the generator run.
	Timeout time.Duration `yaml:"timeout,omitempty"`
}

// ChecksSection configures the individual checks.
type ChecksSection struct {
	// RequiredPages are patterns that must each match an emitted page.
	RequiredPages []string `yaml:"requiredPages,omitempty"`

	// ForbiddenPages are patterns no emitted page may match.
	ForbiddenPages []string `yaml:"forbiddenPages,omitempty"`

	// Spelling configures the external spellchecker.
	Spelling SpellingConfig `yaml:"spelling,omitempty"`

	// Links configures the external link liveness check.
	Links LinksConfig `yaml:"links,omitempty"`

	// Orphans configures the link-graph audit.
	Orphans OrphansConfig `yaml:"orphans,omitempty"`

	// StyleLint configures the external style linter.
	StyleLint StyleLintConfig `yaml:"stylelint,omitempty"`

	// Images configures the image metadata check.
	Images ImagesConfig `yaml:"images,omitempty"`
}

// SpellingConfig configures the spelling check.
type SpellingConfig struct {
	// Command is the spellchecker invocation in list mode.
	Command []string `yaml:"command,omitempty"`

	// Dictionary is a newline-delimited allowlist of accepted words.
	Dictionary string `yaml:"dictionary,omitempty"`
}

// LinksConfig configures the external link liveness check.
type LinksConfig struct {
	// Timeout bounds each probe.
	Timeout time.Duration `yaml:"timeout,omitempty"`

	// Concurrency is the number of parallel probes.
	Concurrency int `yaml:"concurrency,omitempty"`

	// CacheTTL is how long cached results stay valid. An explicit zero
	// disables the cache; unset keeps the default.
	CacheTTL *time.Duration `yaml:"cacheTTL,omitempty"`

	// IgnoreHosts are hostnames never probed.
	IgnoreHosts []string `yaml:"ignoreHosts,omitempty"`
}

// OrphansConfig configures the link-graph audit.
type OrphansConfig struct {
	// Threshold is the minimum reference count an article needs.
	Threshold int `yaml:"threshold,omitempty"`
}

// StyleLintConfig configures the external style linter.
type StyleLintConfig struct {
	// Command is the linter invocation in argv form.
	Command []string `yaml:"command,omitempty"`
}

// ImagesConfig configures the image metadata check.
type ImagesConfig struct {
	// Pattern selects images in the output tree, doublestar syntax.
	Pattern string `yaml:"pattern,omitempty"`
}

// LoadConfigFile loads a .blogward file from the given path.
// If the file does not exist, it returns ErrConfigNotFound so callers can
// decide whether that is fatal (explicit -c path) or fine (no file at all).
func LoadConfigFile(path string) (*File, error) {
	data, err := os.ReadFile(path) //nolint:gosec // User-provided config path is intentional
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrConfigNotFound
		}
		return nil, err
	}

	var cf File
	if err := yaml.Unmarshal(data, &cf); err != nil {
		return nil, err
	}
	return &cf, nil
}

// FindConfigFile searches for the configuration file in the following order:
// 1. If configPath is specified, use it directly
// 2. Look for .blogward in the current directory
// 3. Look for .blogward in the user's home directory
//
// Returns the path to the configuration file if found, or empty string if
// not found.
func FindConfigFile(configPath string) string {
	if configPath != "" {
		if _, err := os.Stat(configPath); err == nil {
			return configPath
		}
		return ""
	}

	cwd, err := os.Getwd()
	if err == nil {
		cwdConfig := filepath.Join(cwd, DefaultConfigFile)
		if _, err := os.Stat(cwdConfig); err == nil {
			return cwdConfig
		}
	}

	home, err := os.UserHomeDir()
	if err == nil {
		homeConfig := filepath.Join(home, DefaultConfigFile)
		if _, err := os.Stat(homeConfig); err == nil {
			return homeConfig
		}
	}

	return ""
}

// Apply merges file values into the config. CLI flags are applied after
// this, so flags always win over the file, and the file wins over defaults.
func (cf *File) Apply(cfg *Config) {
	if cf.Site.OutputDir != "" {
		cfg.OutputDir = cf.Site.OutputDir
	}
	if cf.Site.BaseURL != "" {
		cfg.BaseURL = cf.Site.BaseURL
	}
	if cf.Site.ArticlePattern != "" {
		cfg.ArticlePattern = cf.Site.ArticlePattern
	}

	if len(cf.Build.Command) > 0 {
		cfg.BuildCommand = cf.Build.Command
	}
	if cf.Build.Timeout > 0 {
		cfg.BuildTimeout = cf.Build.Timeout
	}

	if len(cf.Checks.RequiredPages) > 0 {
		cfg.RequiredPages = cf.Checks.RequiredPages
	}
	if len(cf.Checks.ForbiddenPages) > 0 {
		cfg.ForbiddenPages = cf.Checks.ForbiddenPages
	}
	if len(cf.Checks.Spelling.Command) > 0 {
		cfg.SpellCommand = cf.Checks.Spelling.Command
	}
	if cf.Checks.Spelling.Dictionary != "" {
		cfg.SpellAllowlist = cf.Checks.Spelling.Dictionary
	}
	if cf.Checks.Links.Timeout > 0 {
		cfg.LinkTimeout = cf.Checks.Links.Timeout
	}
	if cf.Checks.Links.Concurrency > 0 {
		cfg.LinkConcurrency = cf.Checks.Links.Concurrency
	}
	if cf.Checks.Links.CacheTTL != nil {
		cfg.LinkCacheTTL = *cf.Checks.Links.CacheTTL
	}
	if len(cf.Checks.Links.IgnoreHosts) > 0 {
		cfg.LinkIgnoreHosts = cf.Checks.Links.IgnoreHosts
	}
	if cf.Checks.Orphans.Threshold > 0 {
		cfg.OrphanThreshold = cf.Checks.Orphans.Threshold
	}
	if len(cf.Checks.StyleLint.Command) > 0 {
		cfg.StyleLintCommand = cf.Checks.StyleLint.Command
	}
	if cf.Checks.Images.Pattern != "" {
		cfg.ImagePattern = cf.Checks.Images.Pattern
	}
}
