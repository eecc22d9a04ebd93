package site

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/gukoff/blogward/internal/model"
)

// ErrReadPage is returned when an emitted HTML file cannot be read.
// This is fatal: the audit aborts with no partial report, because a
// verdict computed over an incomplete page set would be misleading.
var ErrReadPage = errors.New("failed to read page")

// Site is the loaded output tree of one build: every emitted HTML page,
// parsed, plus the configuration needed to interpret it.
type Site struct {
	// OutputDir is the root of the audited tree.
	OutputDir string

	// BaseURL is the parsed canonical root URL of the site.
	BaseURL *url.URL

	// Pages contains every emitted HTML page, in lexical path order.
	Pages []*model.Page
}

// Load enumerates all HTML files under outputDir recursively and parses
// each into a Page. The traversal order is lexical, but nothing downstream
// depends on it: the orphan audit builds its full count map before any
// verdict, so ordering only affects log output.
func Load(outputDir, baseURL string) (*Site, error) {
	base, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid base URL %q: %w", baseURL, err)
	}

	s := &Site{
		OutputDir: outputDir,
		BaseURL:   base,
		Pages:     make([]*model.Page, 0),
	}

	err = filepath.WalkDir(outputDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return fmt.Errorf("%w: %s: %v", ErrReadPage, path, err)
		}
		if d.IsDir() || !isHTML(path) {
			return nil
		}

		raw, err := os.ReadFile(path) //nolint:gosec // Paths come from walking the configured output tree
		if err != nil {
			return fmt.Errorf("%w: %s: %v", ErrReadPage, path, err)
		}

		rel, err := filepath.Rel(outputDir, path)
		if err != nil {
			return fmt.Errorf("%w: %s: %v", ErrReadPage, path, err)
		}

		page, err := newPage(filepath.ToSlash(rel), raw, base)
		if err != nil {
			return fmt.Errorf("%w: %s: %v", ErrReadPage, path, err)
		}

		s.Pages = append(s.Pages, page)
		return nil
	})
	if err != nil {
		return nil, err
	}

	return s, nil
}

// newPage parses raw HTML into a Page. Parsing is lenient: x/net/html
// recovers from malformed markup, so the only failure mode is I/O on the
// reader, which cannot happen for an in-memory buffer.
func newPage(relPath string, raw []byte, base *url.URL) (*model.Page, error) {
	result, err := Parse(bytes.NewReader(raw))
	if err != nil {
		return nil, err
	}

	return &model.Page{
		Path:    relPath,
		URL:     pageURL(relPath, base),
		Title:   result.Title,
		Anchors: result.Anchors,
		Images:  result.Images,
		Text:    result.Text,
		Raw:     raw,
	}, nil
}

// pageURL rewrites a site-relative file path under the base URL. This is
// the page's canonical URL and the target of its synthetic self-reference.
func pageURL(relPath string, base *url.URL) string {
	u := *base
	u.Path = strings.TrimSuffix(u.Path, "/") + "/" + relPath
	u.Fragment = ""
	u.RawQuery = ""
	return u.String()
}

// isHTML reports whether the file name looks like an emitted HTML page.
func isHTML(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".html", ".htm":
		return true
	}
	return false
}
