package cache

import (
	"fmt"

	"github.com/dgraph-io/ristretto"
)

var _ Cache = (*CatalogCache)(nil)

// CatalogCache holds per user exercise catalogs.
type CatalogCache struct {
	mainCache *ristretto.Cache
}

func NewCatalogCache() (*CatalogCache, error) {
	mainCache, err := ristretto.NewCache(&ristretto.Config{
		NumCounters: 1e5,     // number of keys to track frequency of (100K)
		MaxCost:     1 << 24, // maximum cost of cache (~16M)
		BufferItems: 64,      // number of keys per Get buffer
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create ristretto cache: %s", err)
	}

	return &CatalogCache{
		mainCache: mainCache,
	}, nil
}

func (cc *CatalogCache) Get(key interface{}) (interface{}, bool) {
	return cc.mainCache.Get(key)
}

// Set waits for the write buffers, so a following Get sees the value.
func (cc *CatalogCache) Set(key, value interface{}, cost int64) bool {
	ok := cc.mainCache.Set(key, value, cost)
	cc.mainCache.Wait()
	return ok
}

func (cc *CatalogCache) Del(key interface{}) {
	cc.mainCache.Del(key)
}

func (cc *CatalogCache) Clear() {
	cc.mainCache.Clear()
}
