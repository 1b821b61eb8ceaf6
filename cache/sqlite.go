package cache

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

const createDocumentsTable = `
CREATE TABLE IF NOT EXISTS documents (
	url     TEXT PRIMARY KEY,
	content BLOB NOT NULL,
	created INTEGER NOT NULL
)`

// SQLiteCache persists documents in a local SQLite database, surviving
// process restarts. This is the default backend: a cold start fetches the
// full schema set once, every later start reads it from disk.
type SQLiteCache struct {
	db      *sql.DB
	timeout time.Duration

	// now is the time source; tests override it to exercise expiry.
	now func() time.Time
}

// NewSQLiteCache opens (creating if needed) a cache database at path.
// Parent directories are created. A timeout of zero or less falls back to
// DefaultTimeout.
func NewSQLiteCache(path string, timeout time.Duration) (*SQLiteCache, error) {
	if dir := filepath.Dir(path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("cache: create directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", path+"?_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("cache: open database: %w", err)
	}
	if _, err := db.Exec(createDocumentsTable); err != nil {
		db.Close()
		return nil, fmt.Errorf("cache: create schema: %w", err)
	}

	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &SQLiteCache{
		db:      db,
		timeout: timeout,
		now:     time.Now,
	}, nil
}

// Get returns the cached content for url. Expired entries are removed and
// reported as misses.
func (c *SQLiteCache) Get(ctx context.Context, url string) ([]byte, error) {
	var content []byte
	var created int64
	err := c.db.QueryRowContext(ctx,
		"SELECT content, created FROM documents WHERE url = ?", url,
	).Scan(&content, &created)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrCacheMiss
	}
	if err != nil {
		return nil, fmt.Errorf("cache: query: %w", err)
	}

	if c.now().Sub(time.Unix(created, 0)) > c.timeout {
		if _, err := c.db.ExecContext(ctx,
			"DELETE FROM documents WHERE url = ?", url); err != nil {
			return nil, fmt.Errorf("cache: expire entry: %w", err)
		}
		return nil, ErrCacheMiss
	}
	return content, nil
}

// Put stores content for url, replacing any existing entry.
func (c *SQLiteCache) Put(ctx context.Context, url string, content []byte) error {
	_, err := c.db.ExecContext(ctx,
		"INSERT OR REPLACE INTO documents (url, content, created) VALUES (?, ?, ?)",
		url, content, c.now().Unix())
	if err != nil {
		return fmt.Errorf("cache: store: %w", err)
	}
	return nil
}

// Close closes the underlying database.
func (c *SQLiteCache) Close() error {
	return c.db.Close()
}

var _ Cache = (*SQLiteCache)(nil)
