package blockcache

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/signalgraph/engine/internal/telemetry"
	"github.com/signalgraph/engine/log"
	"github.com/signalgraph/engine/telemetry/trace"
)

// Codec round-trips a block's payload to bytes. Binary serialization
// format is out of this engine's scope (spec §1); JSON is the default,
// used when NewSequentialCacheStore or NewSequentialCache is given a nil
// codec.
type Codec[T any] interface {
	Encode(v *T) ([]byte, error)
	Decode(data []byte, v *T) error
}

// jsonCodec is the default Codec.
type jsonCodec[T any] struct{}

func (jsonCodec[T]) Encode(v *T) ([]byte, error)    { return json.Marshal(v) }
func (jsonCodec[T]) Decode(data []byte, v *T) error { return json.Unmarshal(data, v) }

// CacheBlock is a lazily constructed, thread-safe wrapper around an
// optional T, its on-disk path, and a back-reference to the provider that
// persists/provides it (spec §3.3).
type CacheBlock[T any] struct {
	mu       sync.Mutex
	value    *T
	path     string
	provider CacheProvider
	codec    Codec[T]
}

func newCacheBlock[T any](path string, provider CacheProvider, codec Codec[T]) *CacheBlock[T] {
	if codec == nil {
		codec = jsonCodec[T]{}
	}
	return &CacheBlock[T]{path: path, provider: provider, codec: codec}
}

// Path returns this block's on-disk key (spec §6.2 naming convention).
func (b *CacheBlock[T]) Path() string { return b.path }

// With lazily allocates the block's T if absent, then runs fn under the
// block's own mutex — the "Guarded<&mut T>" view of spec §4.3.2. The
// store-level map mutex is never held here (spec §4.3.3).
func (b *CacheBlock[T]) With(fn func(v *T)) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.value == nil {
		var zero T
		b.value = &zero
	}
	fn(b.value)
}

// Loaded reports whether this block has ever been allocated or provided.
func (b *CacheBlock[T]) Loaded() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.value != nil
}

// Persist serializes the block's current value and asks the provider to
// store it. A missing value persists as the codec's encoding of a zero T.
// Persist failures leave the in-memory block untouched and return false
// (spec §4.3.5).
func (b *CacheBlock[T]) Persist(ctx context.Context) bool {
	_, span := trace.Tracer.Start(ctx, telemetry.NewCacheSpanName("persist", b.path))
	defer span.End()

	b.mu.Lock()
	v := b.value
	if v == nil {
		var zero T
		v = &zero
	}
	data, err := b.codec.Encode(v)
	b.mu.Unlock()
	if err != nil {
		log.Warnf("blockcache: encode %s: %v", b.path, err)
		return false
	}
	if b.provider == nil {
		return false
	}
	if !b.provider.Persist(b.path, data) {
		log.Warnf("blockcache: persist %s failed", b.path)
		return false
	}
	return true
}

// Provide asks the provider for this block's bytes and, on success,
// decodes them into a fresh T, replacing the in-memory value only if
// decoding fully succeeds. A provider miss or a decode failure leaves the
// block in its prior (possibly empty) state and returns false — partial
// decodes are never applied (spec §4.3.5).
func (b *CacheBlock[T]) Provide(ctx context.Context) bool {
	_, span := trace.Tracer.Start(ctx, telemetry.NewCacheSpanName("provide", b.path))
	defer span.End()

	if b.provider == nil {
		return false
	}
	data, ok := b.provider.Provide(b.path)
	if !ok {
		return false
	}
	var v T
	if err := b.codec.Decode(data, &v); err != nil {
		log.Warnf("blockcache: decode %s: %v", b.path, err)
		return false
	}
	b.mu.Lock()
	b.value = &v
	b.mu.Unlock()
	return true
}
