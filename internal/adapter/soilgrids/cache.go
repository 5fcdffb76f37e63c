package soilgrids

import (
	"context"
	"fmt"
	"sync"

	"github.com/bhavyaa-1001/Drop2Smart/internal/domain"
	"github.com/bhavyaa-1001/Drop2Smart/internal/observability"
)

// CachedProvider wraps a SoilProvider with an in-memory LRU cache keyed on
// rounded coordinates. Soil properties change on geological timescales, so
// entries never expire.
type CachedProvider struct {
	inner   domain.SoilProvider
	cache   *lruCache
	metrics *observability.Metrics
}

// NewCachedProvider creates a cache decorator around a soil provider.
func NewCachedProvider(inner domain.SoilProvider, maxEntries int, metrics *observability.Metrics) *CachedProvider {
	return &CachedProvider{
		inner:   inner,
		cache:   newLRUCache(maxEntries),
		metrics: metrics,
	}
}

func (c *CachedProvider) SoilProperties(ctx context.Context, lat, lon float64) (domain.RawSoilProperties, error) {
	// 4 decimal places is roughly 11m, finer than SoilGrids resolution.
	key := fmt.Sprintf("%.4f,%.4f", lat, lon)
	if props, ok := c.cache.get(key); ok {
		c.metrics.SoilLookupCache.WithLabelValues("hit").Inc()
		return props, nil
	}
	c.metrics.SoilLookupCache.WithLabelValues("miss").Inc()
	props, err := c.inner.SoilProperties(ctx, lat, lon)
	if err != nil {
		return props, err
	}
	// Only cache complete results so degraded lookups can be retried.
	if !props.Degraded() {
		c.cache.put(key, props)
	}
	return props, nil
}

// lruCache is a simple thread-safe LRU cache for soil property lookups.
type lruCache struct {
	maxEntries int
	mu         sync.Mutex
	entries    map[string]*entry
	head       *entry // most recently used
	tail       *entry // least recently used
}

type entry struct {
	key   string
	value domain.RawSoilProperties
	prev  *entry
	next  *entry
}

func newLRUCache(maxEntries int) *lruCache {
	return &lruCache{
		maxEntries: maxEntries,
		entries:    make(map[string]*entry),
	}
}

func (c *lruCache) get(key string) (domain.RawSoilProperties, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if !ok {
		return domain.RawSoilProperties{}, false
	}
	c.moveToFront(e)
	return e.value, true
}

func (c *lruCache) put(key string, value domain.RawSoilProperties) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if e, ok := c.entries[key]; ok {
		e.value = value
		c.moveToFront(e)
		return
	}

	e := &entry{key: key, value: value}
	c.entries[key] = e
	c.addToFront(e)

	if len(c.entries) > c.maxEntries {
		c.evictTail()
	}
}

func (c *lruCache) moveToFront(e *entry) {
	if e == c.head {
		return
	}
	c.remove(e)
	c.addToFront(e)
}

func (c *lruCache) addToFront(e *entry) {
	e.next = c.head
	e.prev = nil
	if c.head != nil {
		c.head.prev = e
	}
	c.head = e
	if c.tail == nil {
		c.tail = e
	}
}

func (c *lruCache) remove(e *entry) {
	if e.prev != nil {
		e.prev.next = e.next
	} else {
		c.head = e.next
	}
	if e.next != nil {
		e.next.prev = e.prev
	} else {
		c.tail = e.prev
	}
}

func (c *lruCache) evictTail() {
	if c.tail == nil {
		return
	}
	delete(c.entries, c.tail.key)
	c.remove(c.tail)
}
