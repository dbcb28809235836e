// Package cache provides LRU caching for parsed passage lookups.
package cache

import (
	"container/list"
	"encoding/json"
	"strings"
	"sync"
	"time"

	"github.com/FocuswithJustin/Scriptura/core/passage"
)

// Cache is a generic LRU cache.
type Cache[K comparable, V any] interface {
	// Get retrieves a value, refreshing its recency.
	Get(key K) (V, bool)

	// Put stores a value, evicting the least recently used entry when full.
	Put(key K, value V)

	// Remove deletes an entry if present.
	Remove(key K)

	// Clear empties the cache.
	Clear()

	// Len returns the number of live entries.
	Len() int

	// Stats snapshots the counters.
	Stats() Stats
}

// Stats is a point-in-time snapshot of cache counters.
type Stats struct {
	Hits       int64
	Misses     int64
	Evictions  int64
	Size       int
	MaxSize    int
	TotalBytes int64
}

// Config tunes cache capacity and expiry.
type Config struct {
	// MaxSize caps live entries. Zero or negative lifts the cap.
	MaxSize int

	// TTL ages entries out lazily on read. Zero keeps them forever.
	TTL time.Duration

	// OnEvict observes entries leaving the cache one at a time: capacity
	// evictions, TTL expiries, and Remove calls. Clear drops all entries
	// without firing it.
	OnEvict func(key, value interface{})
}

// DefaultConfig caps the cache at 100 entries with no TTL.
func DefaultConfig() Config {
	return Config{MaxSize: 100}
}

type item[K comparable, V any] struct {
	key      K
	val      V
	deadline time.Time // zero = never expires
}

// lru holds entries in a doubly linked list, most recent at the front,
// with an index from key to list element.
type lru[K comparable, V any] struct {
	mu    sync.RWMutex
	cfg   Config
	index map[K]*list.Element
	order *list.List
	stats Stats
}

// NewLRUCache builds an LRU cache from config.
func NewLRUCache[K comparable, V any](config Config) Cache[K, V] {
	return newLRU[K, V](config)
}

func newLRU[K comparable, V any](config Config) *lru[K, V] {
	if config.MaxSize < 0 {
		config.MaxSize = 0
	}
	return &lru[K, V]{
		cfg:   config,
		index: make(map[K]*list.Element),
		order: list.New(),
	}
}

func (c *lru[K, V]) deadline() time.Time {
	if c.cfg.TTL <= 0 {
		return time.Time{}
	}
	return time.Now().Add(c.cfg.TTL)
}

func (c *lru[K, V]) Get(key K) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	el, ok := c.index[key]
	if !ok {
		c.stats.Misses++
		var zero V
		return zero, false
	}

	it := el.Value.(*item[K, V])
	if !it.deadline.IsZero() && time.Now().After(it.deadline) {
		c.drop(el)
		c.stats.Misses++
		var zero V
		return zero, false
	}

	c.order.MoveToFront(el)
	c.stats.Hits++
	return it.val, true
}

func (c *lru[K, V]) Put(key K, val V) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if el, ok := c.index[key]; ok {
		it := el.Value.(*item[K, V])
		it.val = val
		it.deadline = c.deadline()
		c.order.MoveToFront(el)
		return
	}

	c.index[key] = c.order.PushFront(&item[K, V]{key: key, val: val, deadline: c.deadline()})
	if c.cfg.MaxSize > 0 && c.order.Len() > c.cfg.MaxSize {
		c.evictOldest()
	}
}

func (c *lru[K, V]) Remove(key K) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if el, ok := c.index[key]; ok {
		c.drop(el)
	}
}

func (c *lru[K, V]) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.index = make(map[K]*list.Element)
	c.order.Init()
}

func (c *lru[K, V]) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.order.Len()
}

func (c *lru[K, V]) Stats() Stats {
	c.mu.RLock()
	defer c.mu.RUnlock()

	s := c.stats
	s.Size = c.order.Len()
	s.MaxSize = c.cfg.MaxSize
	return s
}

// trimOldest evicts the least recently used entry, if any.
func (c *lru[K, V]) trimOldest() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.evictOldest()
}

// evictOldest and drop require c.mu to be held.

func (c *lru[K, V]) evictOldest() {
	if el := c.order.Back(); el != nil {
		c.drop(el)
		c.stats.Evictions++
	}
}

func (c *lru[K, V]) drop(el *list.Element) {
	it := el.Value.(*item[K, V])
	c.order.Remove(el)
	delete(c.index, it.key)
	if c.cfg.OnEvict != nil {
		c.cfg.OnEvict(it.key, it.val)
	}
}

// BoundedCache layers a byte budget over the LRU's entry count limit.
// Values are weighed on insert; entries age out oldest-first until the
// new value fits. A value heavier than the whole budget is not cached.
type BoundedCache[K comparable, V any] struct {
	mu     sync.Mutex
	inner  *lru[K, V]
	budget int64
	used   int64
	sizes  map[K]int64
	weigh  func(V) int64
}

// NewBoundedCache creates a cache with both entry count and byte size limits.
// A maxBytes of 0 disables the byte budget.
func NewBoundedCache[K comparable, V any](config Config, maxBytes int64, sizeFunc func(V) int64) *BoundedCache[K, V] {
	b := &BoundedCache[K, V]{
		budget: maxBytes,
		sizes:  make(map[K]int64),
		weigh:  sizeFunc,
	}

	// Every eviction and removal in the inner cache flows through this
	// hook, which settles the byte ledger before the caller's OnEvict.
	// All paths that can fire it hold b.mu.
	userEvict := config.OnEvict
	config.OnEvict = func(key, value interface{}) {
		k := key.(K)
		b.used -= b.sizes[k]
		delete(b.sizes, k)
		if userEvict != nil {
			userEvict(key, value)
		}
	}

	b.inner = newLRU[K, V](config)
	return b
}

func (c *BoundedCache[K, V]) Get(key K) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.inner.Get(key)
}

func (c *BoundedCache[K, V]) Put(key K, value V) {
	c.mu.Lock()
	defer c.mu.Unlock()

	size := c.weigh(value)
	if c.budget > 0 {
		if size > c.budget {
			return
		}
		for c.used+size > c.budget && c.inner.Len() > 0 {
			c.inner.trimOldest()
		}
	}

	if prev, ok := c.sizes[key]; ok {
		c.used -= prev
	}
	c.inner.Put(key, value)
	c.sizes[key] = size
	c.used += size
}

func (c *BoundedCache[K, V]) Remove(key K) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.inner.Remove(key)
}

func (c *BoundedCache[K, V]) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.inner.Clear()
	c.sizes = make(map[K]int64)
	c.used = 0
}

func (c *BoundedCache[K, V]) Len() int {
	return c.inner.Len()
}

// Stats returns cache statistics including the byte ledger.
func (c *BoundedCache[K, V]) Stats() Stats {
	c.mu.Lock()
	defer c.mu.Unlock()

	s := c.inner.Stats()
	s.TotalBytes = c.used
	return s
}

// ResultKey builds a cache key for a parse lookup. The reference is
// lowercased and inner whitespace collapsed so that "John 3:16" and
// "john  3:16" share an entry. Callers pass the resolved version key,
// not the raw version parameter.
func ResultKey(version, reference string) string {
	ref := strings.Join(strings.Fields(strings.ToLower(reference)), " ")
	return version + "|" + ref
}

// ResultCache is a specialized cache for parsed passage results.
type ResultCache struct {
	cache *BoundedCache[string, passage.Result]
}

// NewResultCache creates a new passage result cache.
func NewResultCache(config Config, maxBytes int64) *ResultCache {
	return &ResultCache{
		cache: NewBoundedCache[string, passage.Result](config, maxBytes, estimateResultBytes),
	}
}

// NewDefaultResultCache creates a new passage result cache with default configuration.
func NewDefaultResultCache() *ResultCache {
	config := DefaultConfig()
	config.MaxSize = 1024 // Results are a few KB at most, keep plenty
	return NewResultCache(config, 8<<20)
}

// Get retrieves a result from the cache by its key.
func (c *ResultCache) Get(key string) (passage.Result, bool) {
	return c.cache.Get(key)
}

// Put stores a result in the cache.
func (c *ResultCache) Put(key string, result passage.Result) {
	c.cache.Put(key, result)
}

// Remove removes a result from the cache.
func (c *ResultCache) Remove(key string) {
	c.cache.Remove(key)
}

// Clear removes all results from the cache.
func (c *ResultCache) Clear() {
	c.cache.Clear()
}

// Len returns the number of cached results.
func (c *ResultCache) Len() int {
	return c.cache.Len()
}

// Stats reports the underlying cache counters.
func (c *ResultCache) Stats() Stats {
	return c.cache.Stats()
}

// jsonMarshalFunc is swapped in tests to simulate marshal errors.
var jsonMarshalFunc = json.Marshal

// estimateResultBytes estimates the byte size of a parsed passage result.
func estimateResultBytes(result passage.Result) int64 {
	data, err := jsonMarshalFunc(result)
	if err != nil {
		return 0
	}
	return int64(len(data))
}
