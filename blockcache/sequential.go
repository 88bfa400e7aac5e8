package blockcache

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"

	"golang.org/x/sync/errgroup"

	"github.com/signalgraph/engine/log"
)

// SequentialCache is a fixed-width, position-indexed cache of lazily
// provisioned blocks of T (spec §3.3/§4.3.3). Block lookups never hold
// the cache's own map mutex while running user code or provider I/O —
// the mutex only ever guards the map itself.
type SequentialCache[T any] struct {
	prefix   string
	width    int64
	provider CacheProvider
	codec    Codec[T]

	mu     sync.Mutex
	blocks map[int64]*CacheBlock[T]

	hits   atomic.Int64
	misses atomic.Int64
}

// NewSequentialCache builds a cache of blocks named "prefix_width_pos"
// (spec §6.2), all width wide, all backed by provider.
func NewSequentialCache[T any](prefix string, width int64, provider CacheProvider, codec Codec[T]) *SequentialCache[T] {
	if width <= 0 {
		panic("blockcache: block width must be positive")
	}
	return &SequentialCache[T]{
		prefix:   prefix,
		width:    width,
		provider: provider,
		codec:    codec,
		blocks:   make(map[int64]*CacheBlock[T]),
	}
}

// Width returns the cache's block width.
func (c *SequentialCache[T]) Width() int64 { return c.width }

// Get returns the block covering position, allocating it on first access
// (spec §4.3.3: map lookups are O(1) amortized, never a linear scan) and,
// on that first allocation, provisioning it from the backing provider —
// spec §4.3.2's store.get(..., no_provisioning=false) default. Use
// GetNoProvisioning to skip the provider round trip.
func (c *SequentialCache[T]) Get(ctx context.Context, position int64) *CacheBlock[T] {
	b, allocated := c.getOrAlloc(position)
	if allocated {
		if b.Provide(ctx) {
			c.hits.Add(1)
			recordHit(c.prefix)
		} else {
			c.misses.Add(1)
			recordMiss(c.prefix)
		}
	}
	return b
}

// Stats returns this cache's lifetime provisioning hit/miss counts.
func (c *SequentialCache[T]) Stats() CacheStats {
	return CacheStats{Hits: c.hits.Load(), Misses: c.misses.Load()}
}

// GetNoProvisioning is Get with spec §4.3.2's no_provisioning=true: it
// allocates the block on first access but never asks the provider for it.
func (c *SequentialCache[T]) GetNoProvisioning(position int64) *CacheBlock[T] {
	b, _ := c.getOrAlloc(position)
	return b
}

func (c *SequentialCache[T]) getOrAlloc(position int64) (b *CacheBlock[T], allocated bool) {
	clamped := Clamped(position, c.width)

	c.mu.Lock()
	defer c.mu.Unlock()
	b, ok := c.blocks[clamped]
	if !ok {
		b = newCacheBlock[T](BlockName(c.prefix, c.width, clamped), c.provider, c.codec)
		c.blocks[clamped] = b
		allocated = true
	}
	return b, allocated
}

// snapshot copies the current clamped-position -> block map under lock,
// so iteration never runs with the map mutex held.
func (c *SequentialCache[T]) snapshot() map[int64]*CacheBlock[T] {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make(map[int64]*CacheBlock[T], len(c.blocks))
	for k, v := range c.blocks {
		out[k] = v
	}
	return out
}

// ForEach visits every block currently resident in the cache, in
// ascending position order. fn observes a point-in-time snapshot of the
// block set; blocks allocated concurrently by Get may or may not appear.
func (c *SequentialCache[T]) ForEach(fn func(position int64, block *CacheBlock[T])) {
	snap := c.snapshot()
	positions := sortedKeys(snap)
	for _, pos := range positions {
		fn(pos, snap[pos])
	}
}

// ForEach2 jointly visits the blocks of two caches sharing the same
// clamped position, for every position resident in either cache, driving
// provision of both blocks concurrently before invoking fn (spec §4.3.3's
// "read both then compute" joint-access pattern). The two caches must
// share the same block width.
func (c *SequentialCache[T]) ForEach2(ctx context.Context, other *SequentialCache[T], fn func(position int64, a, b *CacheBlock[T]) error) error {
	if other.width != c.width {
		return fmt.Errorf("blockcache: ForEach2 requires equal widths, got %d and %d", c.width, other.width)
	}

	a := c.snapshot()
	b := other.snapshot()
	positions := make(map[int64]struct{}, len(a)+len(b))
	for k := range a {
		positions[k] = struct{}{}
	}
	for k := range b {
		positions[k] = struct{}{}
	}

	ordered := sortedKeys(positions)
	for _, pos := range ordered {
		blockA, ok := a[pos]
		if !ok {
			blockA = c.GetNoProvisioning(pos)
		}
		blockB, ok := b[pos]
		if !ok {
			blockB = other.GetNoProvisioning(pos)
		}

		g, gctx := errgroup.WithContext(ctx)
		g.Go(func() error {
			if gctx.Err() != nil {
				return gctx.Err()
			}
			if !blockA.Provide(gctx) {
				log.Warnf("blockcache: ForEach2 provide miss for %s", blockA.Path())
			}
			return nil
		})
		g.Go(func() error {
			if gctx.Err() != nil {
				return gctx.Err()
			}
			if !blockB.Provide(gctx) {
				log.Warnf("blockcache: ForEach2 provide miss for %s", blockB.Path())
			}
			return nil
		})
		if err := g.Wait(); err != nil {
			return err
		}
		if err := fn(pos, blockA, blockB); err != nil {
			return err
		}
	}
	return nil
}

func sortedKeys[V any](m map[int64]V) []int64 {
	keys := make([]int64, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	for i := 1; i < len(keys); i++ {
		for j := i; j > 0 && keys[j-1] > keys[j]; j-- {
			keys[j-1], keys[j] = keys[j], keys[j-1]
		}
	}
	return keys
}
