// Package linkcache provides SQLite-backed storage for external link
// liveness results, so repeated local audits do not re-probe every
// external host. The cache is an optimization only: the audit itself
// never persists state and a cold cache changes nothing but runtime.
package linkcache

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // SQLite driver
)

// Cache is a TTL cache of link liveness verdicts.
//
// Design decision: We use one database file in the XDG cache dir rather
// than a per-project file because the same external URL appears across
// projects and a liveness verdict is project-independent.
type Cache struct {
	// db is the underlying SQL database connection.
	db *sql.DB

	// ttl is how long entries stay valid.
	ttl time.Duration

	// now is injectable for tests.
	now func() time.Time
}

// Open opens or creates the cache database in dir.
func Open(dir string, ttl time.Duration) (*Cache, error) {
	if err := os.MkdirAll(dir, 0750); err != nil {
		return nil, fmt.Errorf("failed to create cache directory: %w", err)
	}

	dbPath := filepath.Join(dir, "linkcache.db")
	db, err := sql.Open("sqlite", dbPath+"?mode=rwc")
	if err != nil {
		return nil, fmt.Errorf("failed to open link cache: %w", err)
	}

	// SQLite supports one writer; the probe aggregation is already
	// serialized through this connection.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(time.Hour)

	c := &Cache{db: db, ttl: ttl, now: time.Now}

	if _, err := db.ExecContext(context.Background(), "PRAGMA journal_mode=WAL"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to enable WAL mode: %w", err)
	}

	if err := c.createTables(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create tables: %w", err)
	}

	return c, nil
}

// Close closes the database connection.
func (c *Cache) Close() error {
	return c.db.Close()
}

// createTables creates the schema if it doesn't exist.
func (c *Cache) createTables() error {
	schema := `
	CREATE TABLE IF NOT EXISTS links (
		url TEXT PRIMARY KEY,
		ok INTEGER NOT NULL,
		status INTEGER NOT NULL,
		checked_at DATETIME NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_links_checked_at ON links(checked_at);
	`
	_, err := c.db.ExecContext(context.Background(), schema)
	return err
}

// Get returns the cached verdict for a URL. The second value is false on
// a miss or when the entry is older than the TTL.
func (c *Cache) Get(ctx context.Context, rawURL string) (ok bool, found bool, err error) {
	var okInt int
	var checkedAt time.Time

	row := c.db.QueryRowContext(ctx,
		"SELECT ok, checked_at FROM links WHERE url = ?", rawURL)
	if err := row.Scan(&okInt, &checkedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, false, nil
		}
		return false, false, err
	}

	if c.now().Sub(checkedAt) > c.ttl {
		return false, false, nil
	}
	return okInt != 0, true, nil
}

// Put stores the verdict for a URL, replacing any previous entry.
func (c *Cache) Put(ctx context.Context, rawURL string, ok bool, status int) error {
	okInt := 0
	if ok {
		okInt = 1
	}
	_, err := c.db.ExecContext(ctx,
		`INSERT INTO links (url, ok, status, checked_at) VALUES (?, ?, ?, ?)
		 ON CONFLICT(url) DO UPDATE SET ok=excluded.ok, status=excluded.status, checked_at=excluded.checked_at`,
		rawURL, okInt, status, c.now().UTC())
	return err
}

// Prune deletes entries older than the TTL. Called opportunistically so
// the cache file does not grow without bound.
func (c *Cache) Prune(ctx context.Context) error {
	_, err := c.db.ExecContext(ctx,
		"DELETE FROM links WHERE checked_at < ?", c.now().UTC().Add(-c.ttl))
	return err
}
