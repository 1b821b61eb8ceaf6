package cache

import (
	"context"
	"errors"
	"time"
)

// ErrCacheMiss is returned when a document is absent or expired.
// Use errors.Is(err, ErrCacheMiss) to distinguish misses from backend
// failures.
var ErrCacheMiss = errors.New("cache: miss")

// DefaultTimeout is how long cached documents stay valid. Schema documents
// for a given endpoint version never change, so a year is conservative.
const DefaultTimeout = 365 * 24 * time.Hour

// Cache stores fetched documents keyed by URL.
type Cache interface {
	// Get returns the cached content for url, or ErrCacheMiss when the
	// entry is absent or expired.
	Get(ctx context.Context, url string) ([]byte, error)

	// Put stores content for url, replacing any existing entry.
	Put(ctx context.Context, url string, content []byte) error

	// Close releases backend resources.
	Close() error
}
