package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

// TestLoadConfigFile verifies parsing of the .blogward YAML file.
func TestLoadConfigFile(t *testing.T) {
	t.Parallel()

	t.Run("full config file parses", func(t *testing.T) {
		t.Parallel()
		path := filepath.Join(t.TempDir(), ".blogward")
		content := `site:
  outputDir: public
  baseURL: https://gukoff.github.io
  articlePattern: '^/posts/\d{4}/'
build:
  command: [hugo, --minify]
  timeout: 2m
checks:
  requiredPages:
    - index.html
    - atom.xml
  forbiddenPages:
    - drafts/**
  orphans:
    threshold: 3
  links:
    timeout: 5s
    concurrency: 4
    cacheTTL: 1h
    ignoreHosts:
      - localhost
  spelling:
    command: [aspell, list]
    dictionary: .allowlist
  stylelint:
    command: [scss-lint, _sass/]
  images:
    pattern: '**/*.jpg'
`
		if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
			t.Fatalf("failed to write config: %v", err)
		}

		cf, err := LoadConfigFile(path)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if cf.Site.OutputDir != "public" {
			t.Errorf("unexpected outputDir: %s", cf.Site.OutputDir)
		}
		if cf.Site.BaseURL != "https://gukoff.github.io" {
			t.Errorf("unexpected baseURL: %s", cf.Site.BaseURL)
		}
		if len(cf.Build.Command) != 2 || cf.Build.Command[0] != "hugo" {
			t.Errorf("unexpected build command: %v", cf.Build.Command)
		}
		if cf.Build.Timeout != 2*time.Minute {
			t.Errorf("unexpected build timeout: %v", cf.Build.Timeout)
		}
		if len(cf.Checks.RequiredPages) != 2 {
			t.Errorf("unexpected requiredPages: %v", cf.Checks.RequiredPages)
		}
		if cf.Checks.Orphans.Threshold != 3 {
			t.Errorf("unexpected orphan threshold: %d", cf.Checks.Orphans.Threshold)
		}
		if cf.Checks.Links.Concurrency != 4 {
			t.Errorf("unexpected link concurrency: %d", cf.Checks.Links.Concurrency)
		}
		if cf.Checks.Links.CacheTTL == nil || *cf.Checks.Links.CacheTTL != time.Hour {
			t.Errorf("unexpected cacheTTL: %v", cf.Checks.Links.CacheTTL)
		}
		if cf.Checks.Spelling.Dictionary != ".allowlist" {
			t.Errorf("unexpected dictionary: %s", cf.Checks.Spelling.Dictionary)
		}
	})

	t.Run("missing file returns ErrConfigNotFound", func(t *testing.T) {
		t.Parallel()
		_, err := LoadConfigFile(filepath.Join(t.TempDir(), "missing"))
		if !errors.Is(err, ErrConfigNotFound) {
			t.Errorf("expected ErrConfigNotFound, got %v", err)
		}
	})

	t.Run("malformed YAML returns error", func(t *testing.T) {
		t.Parallel()
		path := filepath.Join(t.TempDir(), ".blogward")
		if err := os.WriteFile(path, []byte("site: [unterminated"), 0o600); err != nil {
			t.Fatalf("failed to write config: %v", err)
		}
		if _, err := LoadConfigFile(path); err == nil {
			t.Error("expected error for malformed YAML")
		}
	})
}

// TestFindConfigFile verifies the explicit-path branch of the search.
// The cwd and home-directory fallbacks depend on ambient state and are
// left to manual testing.
func TestFindConfigFile(t *testing.T) {
	t.Parallel()

	t.Run("explicit existing path is returned", func(t *testing.T) {
		t.Parallel()
		path := filepath.Join(t.TempDir(), ".blogward")
		if err := os.WriteFile(path, []byte("site:\n  outputDir: _site\n"), 0o600); err != nil {
			t.Fatalf("failed to write config: %v", err)
		}
		if got := FindConfigFile(path); got != path {
			t.Errorf("expected %s, got %s", path, got)
		}
	})

	t.Run("explicit missing path returns empty", func(t *testing.T) {
		t.Parallel()
		if got := FindConfigFile(filepath.Join(t.TempDir(), "missing")); got != "" {
			t.Errorf("expected empty result, got %s", got)
		}
	})
}

// TestFileApply verifies the file-over-defaults merge.
func TestFileApply(t *testing.T) {
	t.Parallel()

	t.Run("set fields override defaults", func(t *testing.T) {
		t.Parallel()
		cfg := NewConfig()
		cf := &File{}
		cf.Site.OutputDir = "public"
		cf.Site.BaseURL = "https://example.com/"
		cf.Checks.Orphans.Threshold = 5
		cf.Checks.Links.Timeout = 3 * time.Second

		cf.Apply(cfg)

		if cfg.OutputDir != "public" {
			t.Errorf("expected outputDir override, got %s", cfg.OutputDir)
		}
		if cfg.BaseURL != "https://example.com/" {
			t.Errorf("expected baseURL override, got %s", cfg.BaseURL)
		}
		if cfg.OrphanThreshold != 5 {
			t.Errorf("expected threshold override, got %d", cfg.OrphanThreshold)
		}
		if cfg.LinkTimeout != 3*time.Second {
			t.Errorf("expected link timeout override, got %v", cfg.LinkTimeout)
		}
	})

	t.Run("explicit zero cacheTTL disables the cache", func(t *testing.T) {
		t.Parallel()
		cfg := NewConfig()
		zero := time.Duration(0)
		cf := &File{}
		cf.Checks.Links.CacheTTL = &zero

		cf.Apply(cfg)

		if cfg.LinkCacheTTL != 0 {
			t.Errorf("expected cache disabled, got %v", cfg.LinkCacheTTL)
		}
	})

	t.Run("unset fields keep defaults", func(t *testing.T) {
		t.Parallel()
		cfg := NewConfig()
		(&File{}).Apply(cfg)

		if cfg.OutputDir != DefaultOutputDir {
			t.Errorf("expected default outputDir, got %s", cfg.OutputDir)
		}
		if cfg.OrphanThreshold != DefaultOrphanThreshold {
			t.Errorf("expected default threshold, got %d", cfg.OrphanThreshold)
		}
		if cfg.ArticlePattern != DefaultArticlePattern {
			t.Errorf("expected default pattern, got %s", cfg.ArticlePattern)
		}
	})
}
