package blockcache

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClampedFloorsToBlockBoundary(t *testing.T) {
	assert.Equal(t, int64(0), Clamped(0, 100))
	assert.Equal(t, int64(0), Clamped(99, 100))
	assert.Equal(t, int64(100), Clamped(100, 100))
	assert.Equal(t, int64(100), Clamped(150, 100))
}

func TestClampedHandlesNegativePositions(t *testing.T) {
	assert.Equal(t, int64(-100), Clamped(-1, 100))
	assert.Equal(t, int64(-100), Clamped(-100, 100))
	assert.Equal(t, int64(-200), Clamped(-101, 100))
}

func TestClampedIsIdempotent(t *testing.T) {
	for _, p := range []int64{-307, -100, -1, 0, 1, 99, 100, 101, 999} {
		c := Clamped(p, 100)
		assert.Equal(t, c, Clamped(c, 100))
	}
}

func TestClampedPanicsOnNonPositiveWidth(t *testing.T) {
	assert.Panics(t, func() { Clamped(10, 0) })
	assert.Panics(t, func() { Clamped(10, -5) })
}

func TestIndexSelectsSubEntry(t *testing.T) {
	assert.Equal(t, int64(0), Index(0, 100, 10))
	assert.Equal(t, int64(0), Index(9, 100, 10))
	assert.Equal(t, int64(1), Index(10, 100, 10))
	assert.Equal(t, int64(9), Index(99, 100, 10))
	assert.Equal(t, int64(0), Index(100, 100, 10)) // next block, relative index resets
}

func TestBlockNameFormat(t *testing.T) {
	assert.Equal(t, "prices_100_200", BlockName("prices", 100, 200))
	assert.Equal(t, "prices_100_-100", BlockName("prices", 100, -100))
}
