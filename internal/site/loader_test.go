package site

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

// writeFile creates a file with parent directories under dir.
func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		t.Fatalf("failed to create directory: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("failed to write file: %v", err)
	}
}

// TestLoad verifies enumeration and parsing of the output tree.
func TestLoad(t *testing.T) {
	t.Parallel()

	t.Run("loads nested HTML files with site-relative URLs", func(t *testing.T) {
		t.Parallel()
		dir := t.TempDir()
		writeFile(t, dir, "index.html", `<title>Home</title><a href="/2016/09/12/first-post.html">post</a>`)
		writeFile(t, dir, "2016/09/12/first-post.html", `<title>First</title>`)

		s, err := Load(dir, "https://gukoff.github.io/")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(s.Pages) != 2 {
			t.Fatalf("expected 2 pages, got %d", len(s.Pages))
		}

		// WalkDir visits in lexical order, so the dated path comes first.
		if s.Pages[0].URL != "https://gukoff.github.io/2016/09/12/first-post.html" {
			t.Errorf("unexpected page URL: %s", s.Pages[0].URL)
		}
		if s.Pages[1].Path != "index.html" {
			t.Errorf("unexpected page path: %s", s.Pages[1].Path)
		}
		if s.Pages[1].Title != "Home" {
			t.Errorf("unexpected title: %s", s.Pages[1].Title)
		}
		if len(s.Pages[1].Anchors) != 1 {
			t.Errorf("unexpected anchors: %v", s.Pages[1].Anchors)
		}
	})

	t.Run("non-HTML files are skipped", func(t *testing.T) {
		t.Parallel()
		dir := t.TempDir()
		writeFile(t, dir, "index.html", `<title>Home</title>`)
		writeFile(t, dir, "style.css", `body {}`)
		writeFile(t, dir, "feed.xml", `<feed/>`)

		s, err := Load(dir, "https://gukoff.github.io/")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(s.Pages) != 1 {
			t.Errorf("expected 1 page, got %d", len(s.Pages))
		}
	})

	t.Run("htm extension counts as HTML", func(t *testing.T) {
		t.Parallel()
		dir := t.TempDir()
		writeFile(t, dir, "legacy.HTM", `<title>Legacy</title>`)

		s, err := Load(dir, "https://gukoff.github.io/")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(s.Pages) != 1 {
			t.Errorf("expected 1 page, got %d", len(s.Pages))
		}
	})

	t.Run("missing output dir is a read error", func(t *testing.T) {
		t.Parallel()
		_, err := Load(filepath.Join(t.TempDir(), "does-not-exist"), "https://gukoff.github.io/")
		if err == nil {
			t.Fatal("expected error for missing directory")
		}
		if !errors.Is(err, ErrReadPage) {
			t.Errorf("expected ErrReadPage, got %v", err)
		}
	})

	t.Run("empty output dir loads zero pages", func(t *testing.T) {
		t.Parallel()
		s, err := Load(t.TempDir(), "https://gukoff.github.io/")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(s.Pages) != 0 {
			t.Errorf("expected no pages, got %d", len(s.Pages))
		}
	})

	t.Run("raw bytes are retained for re-parsing", func(t *testing.T) {
		t.Parallel()
		dir := t.TempDir()
		content := `<title>Home</title>`
		writeFile(t, dir, "index.html", content)

		s, err := Load(dir, "https://gukoff.github.io/")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if string(s.Pages[0].Raw) != content {
			t.Errorf("unexpected raw content: %q", s.Pages[0].Raw)
		}
	})
}
