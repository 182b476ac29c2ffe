package spatial

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEncodeGeohash(t *testing.T) {
	t.Parallel()

	t.Run("known reference value", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, "u4pruydqqvj", EncodeGeohash(57.64911, 10.40744, 11))
	})

	t.Run("shorter precision is a prefix", func(t *testing.T) {
		t.Parallel()
		full := EncodeGeohash(52.52, 13.405, 8)
		short := EncodeGeohash(52.52, 13.405, 5)
		assert.True(t, strings.HasPrefix(full, short))
	})

	t.Run("precision is clamped", func(t *testing.T) {
		t.Parallel()
		assert.Len(t, EncodeGeohash(0, 0, 0), 1)
		assert.Len(t, EncodeGeohash(0, 0, 99), 12)
	})
}

func TestDecodeGeohash(t *testing.T) {
	t.Parallel()

	lat, lon := DecodeGeohash(EncodeGeohash(52.5200, 13.4050, 9))
	assert.InDelta(t, 52.5200, lat, 0.001)
	assert.InDelta(t, 13.4050, lon, 0.001)
}

func TestGeohashCellSize(t *testing.T) {
	t.Parallel()

	assert.Greater(t, GeohashCellSize(5), GeohashCellSize(6))
	assert.Equal(t, 0.0, GeohashCellSize(13))
}
