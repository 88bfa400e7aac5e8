package blockcache

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileCacheProviderPersistAndProvideRoundTrip(t *testing.T) {
	provider := NewFileCacheProvider(t.TempDir(), ".bin")

	ok := provider.Persist("prices_100_0", []byte("hello"))
	require.True(t, ok)

	data, ok := provider.Provide("prices_100_0")
	require.True(t, ok)
	assert.Equal(t, []byte("hello"), data)
}

func TestFileCacheProviderProvideMissReturnsFalse(t *testing.T) {
	provider := NewFileCacheProvider(t.TempDir(), ".bin")
	_, ok := provider.Provide("nope_100_0")
	assert.False(t, ok)
}

func TestScanFindsMatchingCacheKeyOnly(t *testing.T) {
	dir := t.TempDir()
	provider := NewFileCacheProvider(dir, ".bin")
	require.True(t, provider.Persist("prices_100_0", []byte("a")))
	require.True(t, provider.Persist("prices_100_100", []byte("b")))
	require.True(t, provider.Persist("volume_100_0", []byte("c")))

	var found []ScannedBlock
	err := Scan(dir, ".bin", "prices", func(b ScannedBlock) error {
		found = append(found, b)
		return nil
	})
	require.NoError(t, err)
	require.Len(t, found, 2)
	for _, b := range found {
		assert.Equal(t, "prices", b.CacheKey)
		assert.Equal(t, int64(100), b.Width)
	}
}

func TestParseBlockNameRejectsMalformedSegments(t *testing.T) {
	_, err := parseBlockName("bad.name_100_0.bin", ".bin")
	assert.ErrorIs(t, err, ErrInvalidKeySegment)

	_, err = parseBlockName("onlyonepart.bin", ".bin")
	assert.ErrorIs(t, err, ErrInvalidKeySegment)
}
