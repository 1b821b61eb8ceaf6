package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/dgraph-io/ristretto"
)

// MemoryCache holds documents in process memory. Useful for short-lived
// programs and tests where a disk cache has no time to pay off.
type MemoryCache struct {
	cache *ristretto.Cache
	ttl   time.Duration
}

// NewMemoryCache creates an in-process cache. A ttl of zero or less keeps
// entries for the life of the process.
func NewMemoryCache(ttl time.Duration) (*MemoryCache, error) {
	rc, err := ristretto.NewCache(&ristretto.Config{
		NumCounters: 1e4,      // schema sets hold dozens of documents, not millions
		MaxCost:     64 << 20, // 64MB budget covers a full WSDL plus imports
		BufferItems: 64,
	})
	if err != nil {
		return nil, fmt.Errorf("cache: init memory cache: %w", err)
	}
	return &MemoryCache{cache: rc, ttl: ttl}, nil
}

// Get returns the cached content for url.
func (c *MemoryCache) Get(_ context.Context, url string) ([]byte, error) {
	value, ok := c.cache.Get(url)
	if !ok {
		return nil, ErrCacheMiss
	}
	content, ok := value.([]byte)
	if !ok {
		return nil, ErrCacheMiss
	}
	return content, nil
}

// Put stores content for url. The write is flushed before returning so an
// immediate Get observes it.
func (c *MemoryCache) Put(_ context.Context, url string, content []byte) error {
	cost := int64(len(content))
	if c.ttl > 0 {
		c.cache.SetWithTTL(url, content, cost, c.ttl)
	} else {
		c.cache.Set(url, content, cost)
	}
	c.cache.Wait()
	return nil
}

// Close releases the cache.
func (c *MemoryCache) Close() error {
	c.cache.Close()
	return nil
}

var _ Cache = (*MemoryCache)(nil)
