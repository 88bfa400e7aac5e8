// Package blockcache implements the fixed-width, position-indexed,
// lazily-provisioned sequential block cache of spec §3.3/§4.3, used to
// stage large blocks of time-series data into the node-graph runtime.
package blockcache

import "fmt"

// Clamped returns the largest multiple of width not exceeding position
// (spec §4.3.1): clamped(p, W) = W * floor(p / W).
func Clamped(position, width int64) int64 {
	if width <= 0 {
		panic("blockcache: block width must be positive")
	}
	q := position / width
	if position%width != 0 && position < 0 {
		q--
	}
	return q * width
}

// Index returns which of N sub-entries within a block a position falls
// into: floor((p - clamped(p,W)) / (W/N)) (spec §4.3.1).
func Index(position, width int64, n int64) int64 {
	if n <= 0 {
		panic("blockcache: n must be positive")
	}
	clamped := Clamped(position, width)
	sub := width / n
	if sub <= 0 {
		return 0
	}
	return (position - clamped) / sub
}

// BlockName builds the on-disk block name (spec §4.3.1, §6.2):
// "{prefix}_{width}_{clamped_position}".
func BlockName(prefix string, width, clampedPosition int64) string {
	return fmt.Sprintf("%s_%d_%d", prefix, width, clampedPosition)
}
