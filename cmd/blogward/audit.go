package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/gukoff/blogward/internal/builder"
	"github.com/gukoff/blogward/internal/check"
	"github.com/gukoff/blogward/internal/config"
	"github.com/gukoff/blogward/internal/linkcache"
	"github.com/gukoff/blogward/internal/model"
	"github.com/gukoff/blogward/internal/report"
	"github.com/gukoff/blogward/internal/site"
)

// ErrAuditFailed signals that the audit ran to completion but at least
// one check failed. The CLI maps it to a non-zero exit code.
var ErrAuditFailed = errors.New("audit failed")

// NewAuditCmd creates the audit command.
func NewAuditCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "audit",
		Short: "Build the site and run all validation checks",
		Long: `Build the static site with the configured generator, then audit the
generated output tree.

Checks:
  required_pages   every configured pattern matches at least one page
  forbidden_pages  no configured pattern matches any page
  orphans          every dated article is referenced enough times
  html_lint        structural HTML problems (missing title, bad anchors)
  spelling         unknown words, via an external spellchecker
  links            dead external links, probed with a cached HTTP client
  images           camera/location metadata left in published images
  style_lint       output of an external style linter

Configuration comes from a .blogward file (current directory, then home
directory), overridden by flags. The command exits non-zero when any
check fails.

Examples:
  blogward audit
  blogward audit --skip-build -d _site -u https://gukoff.github.io
  blogward audit --checks orphans,links --json -o report.json`,
		RunE: runAudit,
	}

	cmd.Flags().StringP("config", "c", "", "Path to the .blogward configuration file")
	cmd.Flags().StringP("output-dir", "d", "", "Directory tree of generated HTML to audit")
	cmd.Flags().StringP("base-url", "u", "", "Canonical root URL the site is served from")
	cmd.Flags().Bool("skip-build", false, "Skip running the site generator")
	cmd.Flags().StringSlice("checks", nil, "Run only the named checks (comma-separated)")
	cmd.Flags().BoolP("json", "j", false, "Write the report as JSON")
	cmd.Flags().BoolP("markdown", "m", false, "Write the report as Markdown")
	cmd.Flags().StringP("output", "o", "", "Write the report to a file instead of stdout")

	return cmd
}

// runAudit executes the audit command.
func runAudit(cmd *cobra.Command, _ []string) error {
	cfg, err := buildConfig(cmd)
	if err != nil {
		return err
	}

	logger := setupLogger(cfg.Verbose)
	slog.SetDefault(logger)

	// Handle interrupt signals gracefully
	ctx, cancel := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	rep, runErr := runChecks(ctx, cfg, logger)

	if err := writeReport(cmd.OutOrStdout(), cfg, rep); err != nil {
		return err
	}

	if runErr != nil {
		return runErr
	}
	if !rep.Passed() {
		return fmt.Errorf("%w: %d of %d check(s) failed",
			ErrAuditFailed, len(rep.FailedChecks), len(rep.PerformedChecks))
	}
	return nil
}

// buildConfig assembles the effective configuration: defaults, then the
// .blogward file if one is found, then CLI flags.
func buildConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.NewConfig()

	configPath, _ := cmd.Flags().GetString("config")
	if path := config.FindConfigFile(configPath); path != "" {
		cf, err := config.LoadConfigFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to load %s: %w", path, err)
		}
		cf.Apply(cfg)
		cfg.ConfigFilePath = path
	} else if configPath != "" {
		return nil, fmt.Errorf("%w: %s", config.ErrConfigNotFound, configPath)
	}

	if v, _ := cmd.Flags().GetString("output-dir"); v != "" {
		cfg.OutputDir = v
	}
	if v, _ := cmd.Flags().GetString("base-url"); v != "" {
		cfg.BaseURL = v
	}
	if v, _ := cmd.Flags().GetBool("skip-build"); v {
		cfg.SkipBuild = true
	}
	if v, _ := cmd.Flags().GetStringSlice("checks"); len(v) > 0 {
		cfg.Checks = v
	}
	if v, _ := cmd.Flags().GetBool("json"); v {
		cfg.JSONReport = true
	}
	if v, _ := cmd.Flags().GetBool("markdown"); v {
		cfg.MarkdownReport = true
	}
	if v, _ := cmd.Flags().GetString("output"); v != "" {
		cfg.ReportFile = v
	}
	if v, _ := cmd.Flags().GetBool("verbose"); v {
		cfg.Verbose = true
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// setupLogger creates a text slog.Logger on stderr so report output on
// stdout stays clean for piping.
func setupLogger(verbose bool) *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

// runChecks builds the site, loads the output tree, and runs the checks.
// It always returns a report; the error covers infrastructure failures
// (build failed, output tree unreadable), not check verdicts.
func runChecks(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*model.AuditReport, error) {
	rep := model.NewAuditReport(cfg.BaseURL, cfg.OutputDir)

	if !cfg.SkipBuild {
		b := builder.New(cfg.BuildCommand,
			builder.WithTimeout(cfg.BuildTimeout),
			builder.WithLogger(logger),
		)
		if err := b.Build(ctx); err != nil {
			rep.Error = err
			rep.ErrorMessage = err.Error()
			return rep, err
		}
	}

	s, err := site.Load(cfg.OutputDir, cfg.BaseURL)
	if err != nil {
		rep.Error = err
		rep.ErrorMessage = err.Error()
		return rep, err
	}
	rep.PagesScanned = len(s.Pages)
	logger.Info("loaded output tree", "dir", cfg.OutputDir, "pages", rep.PagesScanned)

	runner := check.NewRunner(check.WithLogger(logger))
	checks, closeFn, err := assembleChecks(cfg, logger)
	if err != nil {
		rep.Error = err
		rep.ErrorMessage = err.Error()
		return rep, err
	}
	defer closeFn()
	runner.AddChecks(checks...)

	if err := runner.Run(ctx, s, rep); err != nil {
		rep.Error = err
		rep.ErrorMessage = err.Error()
		return rep, err
	}
	return rep, nil
}

// assembleChecks builds the check list in execution order, honoring the
// --checks filter. The returned close function releases the link cache.
func assembleChecks(cfg *config.Config, logger *slog.Logger) ([]check.Check, func(), error) {
	all := []check.Check{
		check.NewRequiredPagesCheck(cfg.RequiredPages),
		check.NewForbiddenPagesCheck(cfg.ForbiddenPages),
		check.NewOrphansCheck(cfg.ArticlePattern,
			check.WithOrphanThreshold(cfg.OrphanThreshold),
			check.WithOrphansLogger(logger),
		),
		check.NewHTMLLintCheck(),
		check.NewSpellingCheck(cfg.SpellCommand, cfg.SpellAllowlist),
		check.NewImageMetadataCheck(cfg.ImagePattern),
		check.NewStyleLintCheck(cfg.StyleLintCommand),
	}

	closeFn := func() {}
	linkOpts := []check.ExternalLinksCheckOption{
		check.WithLinkConcurrency(cfg.LinkConcurrency),
		check.WithIgnoreHosts(cfg.LinkIgnoreHosts),
		check.WithLinkUserAgent(config.DefaultUserAgent),
	}
	if cfg.LinkCacheTTL > 0 {
		cache, err := openLinkCache(cfg.LinkCacheTTL)
		if err != nil {
			// A broken cache should not block the audit, only slow it down.
			logger.Warn("link cache unavailable, probing without it", "error", err)
		} else {
			linkOpts = append(linkOpts, check.WithLinkCache(cache))
			closeFn = func() {
				if err := cache.Close(); err != nil {
					logger.Warn("failed to close link cache", "error", err)
				}
			}
		}
	}
	client := &http.Client{Timeout: cfg.LinkTimeout}
	all = append(all, check.NewExternalLinksCheck(client, linkOpts...))

	if len(cfg.Checks) == 0 {
		return all, closeFn, nil
	}

	byName := make(map[string]check.Check, len(all))
	for _, c := range all {
		byName[c.Name()] = c
	}

	selected := make([]check.Check, 0, len(cfg.Checks))
	for _, name := range cfg.Checks {
		c, ok := byName[name]
		if !ok {
			closeFn()
			return nil, func() {}, fmt.Errorf("unknown check: %s", name)
		}
		selected = append(selected, c)
	}
	return selected, closeFn, nil
}

// writeReport renders the report in the configured format to stdout or
// the --output file.
func writeReport(stdout io.Writer, cfg *config.Config, rep *model.AuditReport) error {
	out := stdout
	if cfg.ReportFile != "" {
		f, err := os.Create(cfg.ReportFile)
		if err != nil {
			return fmt.Errorf("failed to create report file: %w", err)
		}
		defer f.Close() //nolint:errcheck // Best effort close on output file
		out = f
	}

	var w report.Writer
	switch {
	case cfg.JSONReport:
		w = report.NewJSONWriter(out)
	case cfg.MarkdownReport:
		w = report.NewMarkdownWriter(out)
	default:
		w = report.NewSimpleWriter(out)
	}

	if _, err := w.Write(rep); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}
	return nil
}

// openLinkCache opens the SQLite liveness cache under the XDG cache
// directory, creating it on first use.
func openLinkCache(ttl time.Duration) (*linkcache.Cache, error) {
	return linkcache.Open(config.XDGCacheDir(), ttl)
}
