package blockcache

import (
	"context"
	"sync"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	tmetric "github.com/signalgraph/engine/telemetry/metric"
)

// instruments are the OTel counters shared by every cache in the process;
// resolved lazily against telemetry/metric's Meter, mirroring executor's
// instrument loading so construction order relative to metric.Start
// doesn't matter.
type instruments struct {
	hits   metric.Int64Counter
	misses metric.Int64Counter
}

var (
	instrOnce sync.Once
	instr     instruments
)

func loadInstruments() instruments {
	instrOnce.Do(func() {
		m := tmetric.Meter
		instr.hits, _ = m.Int64Counter("blockcache.provide.hits",
			metric.WithDescription("Get calls whose first provisioning found the block in the provider"))
		instr.misses, _ = m.Int64Counter("blockcache.provide.misses",
			metric.WithDescription("Get calls whose first provisioning missed the provider"))
	})
	return instr
}

// CacheStats is a point-in-time snapshot of a cache's provisioning
// hit/miss counts (spec §4.3.2's no_provisioning=false default path).
type CacheStats struct {
	Hits   int64
	Misses int64
}

func recordHit(cacheKey string) {
	loadInstruments().hits.Add(context.Background(), 1, metric.WithAttributes(attribute.String("cache_key", cacheKey)))
}

func recordMiss(cacheKey string) {
	loadInstruments().misses.Add(context.Background(), 1, metric.WithAttributes(attribute.String("cache_key", cacheKey)))
}
