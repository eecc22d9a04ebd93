package check

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gukoff/blogward/internal/model"
)

// memoryCache is an in-memory LinkCache for tests.
type memoryCache struct {
	mu      sync.Mutex
	entries map[string]bool
	puts    int
}

func newMemoryCache() *memoryCache {
	return &memoryCache{entries: make(map[string]bool)}
}

func (c *memoryCache) Get(_ context.Context, rawURL string) (bool, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	ok, found := c.entries[rawURL]
	return ok, found, nil
}

func (c *memoryCache) Put(_ context.Context, rawURL string, ok bool, _ int) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[rawURL] = ok
	c.puts++
	return nil
}

// TestExternalLinksCheck verifies external link collection and probing.
func TestExternalLinksCheck(t *testing.T) {
	t.Parallel()

	client := &http.Client{Timeout: 5 * time.Second}

	t.Run("live links pass", func(t *testing.T) {
		t.Parallel()
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusOK)
		}))
		defer srv.Close()

		s := newTestSite(t, &model.Page{
			Path:    "index.html",
			Anchors: []string{srv.URL + "/page"},
		})
		rep := newTestReport()

		c := NewExternalLinksCheck(client)
		if err := c.Run(context.Background(), s, rep); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if rep.TotalFindings() != 0 {
			t.Errorf("expected no findings, got %v", rep.Findings)
		}
	})

	t.Run("404 link is dead", func(t *testing.T) {
		t.Parallel()
		srv := httptest.NewServer(http.NotFoundHandler())
		defer srv.Close()

		s := newTestSite(t, &model.Page{
			Path:    "index.html",
			Anchors: []string{srv.URL + "/gone"},
		})
		rep := newTestReport()

		c := NewExternalLinksCheck(client)
		if err := c.Run(context.Background(), s, rep); err == nil {
			t.Fatal("expected error for dead link")
		}
		findings := rep.FindingsByCheck("links")
		if len(findings) != 1 || findings[0].Location != "index.html" {
			t.Errorf("unexpected findings: %v", findings)
		}
	})

	t.Run("GET fallback covers hosts rejecting HEAD", func(t *testing.T) {
		t.Parallel()
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method == http.MethodHead {
				w.WriteHeader(http.StatusMethodNotAllowed)
				return
			}
			w.WriteHeader(http.StatusOK)
		}))
		defer srv.Close()

		s := newTestSite(t, &model.Page{
			Path:    "index.html",
			Anchors: []string{srv.URL + "/page"},
		})
		rep := newTestReport()

		c := NewExternalLinksCheck(client)
		if err := c.Run(context.Background(), s, rep); err != nil {
			t.Fatalf("expected GET fallback to pass, got %v", err)
		}
	})

	t.Run("internal links are never probed", func(t *testing.T) {
		t.Parallel()
		s := newTestSite(t, &model.Page{
			Path:    "index.html",
			Anchors: []string{"/2016/09/12/first-post.html", "https://gukoff.github.io/about.html"},
		})
		rep := newTestReport()

		// A probe would fail: no server backs these URLs.
		c := NewExternalLinksCheck(client)
		if err := c.Run(context.Background(), s, rep); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})

	t.Run("ignored hosts are skipped", func(t *testing.T) {
		t.Parallel()
		s := newTestSite(t, &model.Page{
			Path:    "index.html",
			Anchors: []string{"http://localhost:1/unreachable"},
		})
		rep := newTestReport()

		c := NewExternalLinksCheck(client, WithIgnoreHosts([]string{"localhost"}))
		if err := c.Run(context.Background(), s, rep); err != nil {
			t.Fatalf("expected ignored host to be skipped, got %v", err)
		}
	})

	t.Run("duplicate links probe once", func(t *testing.T) {
		t.Parallel()
		var mu sync.Mutex
		requests := 0
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			mu.Lock()
			requests++
			mu.Unlock()
			w.WriteHeader(http.StatusOK)
		}))
		defer srv.Close()

		s := newTestSite(t,
			&model.Page{Path: "a.html", Anchors: []string{srv.URL + "/page"}},
			&model.Page{Path: "b.html", Anchors: []string{srv.URL + "/page#section"}},
		)
		rep := newTestReport()

		c := NewExternalLinksCheck(client)
		if err := c.Run(context.Background(), s, rep); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		mu.Lock()
		defer mu.Unlock()
		if requests != 1 {
			t.Errorf("expected 1 probe for deduplicated URL, got %d", requests)
		}
	})

	t.Run("cached verdicts skip the network", func(t *testing.T) {
		t.Parallel()
		cache := newMemoryCache()
		cache.entries["http://cached.example/page"] = true

		s := newTestSite(t, &model.Page{
			Path:    "index.html",
			Anchors: []string{"http://cached.example/page"},
		})
		rep := newTestReport()

		c := NewExternalLinksCheck(client, WithLinkCache(cache))
		if err := c.Run(context.Background(), s, rep); err != nil {
			t.Fatalf("expected cached verdict to pass, got %v", err)
		}
	})

	t.Run("probe results land in the cache", func(t *testing.T) {
		t.Parallel()
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusOK)
		}))
		defer srv.Close()

		cache := newMemoryCache()
		s := newTestSite(t, &model.Page{
			Path:    "index.html",
			Anchors: []string{srv.URL + "/page"},
		})
		rep := newTestReport()

		c := NewExternalLinksCheck(client, WithLinkCache(cache))
		if err := c.Run(context.Background(), s, rep); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if cache.puts != 1 {
			t.Errorf("expected 1 cache put, got %d", cache.puts)
		}
		if ok := cache.entries[srv.URL+"/page"]; !ok {
			t.Error("expected live verdict in cache")
		}
	})

	t.Run("no external links is a no-op", func(t *testing.T) {
		t.Parallel()
		s := newTestSite(t, &model.Page{Path: "index.html", Anchors: []string{"/about.html"}})
		rep := newTestReport()

		c := NewExternalLinksCheck(client)
		if err := c.Run(context.Background(), s, rep); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})
}
