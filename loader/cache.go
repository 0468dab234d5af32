package loader

import (
	"net/http"
	"sync"

	"github.com/gohugoio/httpcache"
)

// memoryCache keeps cached responses for the lifetime of a Fetcher
type memoryCache struct {
	mu    sync.RWMutex
	items map[string][]byte
}

var _ httpcache.Cache = (*memoryCache)(nil)

func newMemoryCache() *memoryCache {
	return &memoryCache{items: make(map[string][]byte)}
}

func (c *memoryCache) Get(key string) ([]byte, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	b, ok := c.items[key]
	return b, ok
}

func (c *memoryCache) Set(key string, b []byte) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items[key] = b
}

func (c *memoryCache) Delete(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.items, key)
}

// newCacheTransport wraps inner with conditional caching; cache hits carry httpcache.XFromCache
func newCacheTransport(inner http.RoundTripper) *httpcache.Transport {
	return &httpcache.Transport{
		Cache:               newMemoryCache(),
		MarkCachedResponses: true,
		Transport:           inner,
	}
}
