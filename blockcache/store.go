package blockcache

import "sync"

// SequentialCacheStore multiplexes many named SequentialCaches over one
// shared CacheProvider (spec §3.3: "a store of caches keyed by
// cache_key"). All caches it creates share the store's width and codec.
type SequentialCacheStore[T any] struct {
	width    int64
	provider CacheProvider
	codec    Codec[T]

	mu     sync.Mutex
	caches map[string]*SequentialCache[T]
}

// NewSequentialCacheStore builds a store whose caches are width-wide
// blocks persisted through provider. codec may be nil to use the default
// JSON codec.
func NewSequentialCacheStore[T any](width int64, provider CacheProvider, codec Codec[T]) *SequentialCacheStore[T] {
	return &SequentialCacheStore[T]{
		width:    width,
		provider: provider,
		codec:    codec,
		caches:   make(map[string]*SequentialCache[T]),
	}
}

// Cache returns the named cache, creating it on first access.
func (s *SequentialCacheStore[T]) Cache(cacheKey string) *SequentialCache[T] {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.caches[cacheKey]
	if !ok {
		c = NewSequentialCache[T](cacheKey, s.width, s.provider, s.codec)
		s.caches[cacheKey] = c
	}
	return c
}

// Keys returns the cache_keys with a cache currently resident in the
// store, in no particular order.
func (s *SequentialCacheStore[T]) Keys() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	keys := make([]string, 0, len(s.caches))
	for k := range s.caches {
		keys = append(keys, k)
	}
	return keys
}

// Stats aggregates the provisioning hit/miss counts of every cache this
// store has created.
func (s *SequentialCacheStore[T]) Stats() CacheStats {
	s.mu.Lock()
	caches := make([]*SequentialCache[T], 0, len(s.caches))
	for _, c := range s.caches {
		caches = append(caches, c)
	}
	s.mu.Unlock()

	var out CacheStats
	for _, c := range caches {
		cs := c.Stats()
		out.Hits += cs.Hits
		out.Misses += cs.Misses
	}
	return out
}
