package spatial

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHaversineDistance(t *testing.T) {
	t.Parallel()

	t.Run("zero distance for identical points", func(t *testing.T) {
		t.Parallel()
		d := HaversineDistance(52.52, 13.405, 52.52, 13.405)
		assert.InDelta(t, 0, d, 0.001)
	})

	t.Run("Berlin to Munich", func(t *testing.T) {
		t.Parallel()
		d := HaversineDistanceKm(52.5200, 13.4050, 48.1374, 11.5755)
		assert.InDelta(t, 504, d, 5)
	})

	t.Run("short distance", func(t *testing.T) {
		t.Parallel()
		// ~111m per 0.001 degrees of latitude
		d := HaversineDistance(52.5200, 13.4050, 52.5210, 13.4050)
		assert.InDelta(t, 111, d, 2)
	})

	t.Run("symmetric", func(t *testing.T) {
		t.Parallel()
		a := HaversineDistance(52.52, 13.405, 48.14, 11.58)
		b := HaversineDistance(48.14, 11.58, 52.52, 13.405)
		assert.InDelta(t, a, b, 0.0001)
	})
}

func TestCentroid(t *testing.T) {
	t.Parallel()

	t.Run("empty input yields origin", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, Point{}, Centroid(nil))
	})

	t.Run("mean of two points", func(t *testing.T) {
		t.Parallel()
		c := Centroid([]Point{{Lat: 52, Lon: 13}, {Lat: 54, Lon: 15}})
		assert.InDelta(t, 53, c.Lat, 0.0001)
		assert.InDelta(t, 14, c.Lon, 0.0001)
	})
}

func TestWithinRadius(t *testing.T) {
	t.Parallel()

	t.Run("empty set is within any radius", func(t *testing.T) {
		t.Parallel()
		assert.True(t, WithinRadius(nil, 1))
	})

	t.Run("tight group", func(t *testing.T) {
		t.Parallel()
		points := []Point{
			{Lat: 52.5200, Lon: 13.4050},
			{Lat: 52.5202, Lon: 13.4052},
			{Lat: 52.5201, Lon: 13.4048},
		}
		assert.True(t, WithinRadius(points, 100))
	})

	t.Run("spread group", func(t *testing.T) {
		t.Parallel()
		points := []Point{
			{Lat: 52.52, Lon: 13.40},
			{Lat: 52.53, Lon: 13.42},
		}
		assert.False(t, WithinRadius(points, 100))
	})
}

func TestMaxDistanceFrom(t *testing.T) {
	t.Parallel()

	center := Point{Lat: 52.5200, Lon: 13.4050}
	points := []Point{
		{Lat: 52.5200, Lon: 13.4050},
		{Lat: 52.5210, Lon: 13.4050},
	}
	d := MaxDistanceFrom(center, points)
	assert.InDelta(t, 111, d, 2)
}
