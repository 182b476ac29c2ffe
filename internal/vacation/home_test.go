package vacation

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jengzang/memories-backend-go/internal/models"
	"github.com/jengzang/memories-backend-go/internal/spatial"
)

// itemAt builds a timestamped media item for tests
func itemAt(id int64, ts string) *models.MediaItem {
	t, err := time.Parse(time.RFC3339, ts)
	if err != nil {
		panic(err)
	}
	return &models.MediaItem{ID: id, TakenAt: &t}
}

// gpsItemAt builds a timestamped media item with a coordinate
func gpsItemAt(id int64, ts string, lat, lon float64) *models.MediaItem {
	m := itemAt(id, ts)
	m.Latitude = &lat
	m.Longitude = &lon
	return m
}

func TestNewHomeLocator(t *testing.T) {
	t.Parallel()

	_, err := NewHomeLocator(HomeLocatorConfig{NightStartHour: 25, NightEndHour: 6})
	assert.Error(t, err)

	_, err = NewHomeLocator(HomeLocatorConfig{NightStartHour: 3, NightEndHour: 3})
	assert.Error(t, err)

	_, err = NewHomeLocator(HomeLocatorConfig{})
	assert.NoError(t, err)
}

func TestHomeLocatorLocate(t *testing.T) {
	t.Parallel()

	t.Run("explicit home short-circuits", func(t *testing.T) {
		t.Parallel()
		l, err := NewHomeLocator(HomeLocatorConfig{
			Explicit:         &spatial.Point{Lat: 52.52, Lon: 13.405},
			ExplicitRadiusKm: 10,
			ExplicitCountry:  "DE",
		})
		require.NoError(t, err)

		home := l.Locate(nil)
		require.NotNil(t, home)
		assert.Equal(t, 52.52, home.Center.Lat)
		assert.Equal(t, 10.0, home.RadiusKm)
		assert.Equal(t, "DE", home.CountryCode)
	})

	t.Run("nil without night-time gps data", func(t *testing.T) {
		t.Parallel()
		l, err := NewHomeLocator(HomeLocatorConfig{})
		require.NoError(t, err)

		home := l.Locate([]*models.MediaItem{
			gpsItemAt(1, "2024-07-01T12:00:00Z", 52.52, 13.405), // midday
			itemAt(2, "2024-07-01T23:00:00Z"),                   // night, no gps
		})
		assert.Nil(t, home)
	})

	t.Run("window within one day excludes daytime photos", func(t *testing.T) {
		t.Parallel()
		l, err := NewHomeLocator(HomeLocatorConfig{NightStartHour: 1, NightEndHour: 6})
		require.NoError(t, err)

		home := l.Locate([]*models.MediaItem{
			gpsItemAt(1, "2024-07-01T12:00:00Z", 52.52, 13.405),
			gpsItemAt(2, "2024-07-01T23:00:00Z", 52.52, 13.405),
		})
		assert.Nil(t, home)

		home = l.Locate([]*models.MediaItem{
			gpsItemAt(3, "2024-07-02T02:00:00Z", 52.52, 13.405),
		})
		require.NotNil(t, home)
		assert.InDelta(t, 52.52, home.Center.Lat, 0.001)
	})

	t.Run("window past midnight keeps late evenings", func(t *testing.T) {
		t.Parallel()
		l, err := NewHomeLocator(HomeLocatorConfig{NightStartHour: 22, NightEndHour: 6})
		require.NoError(t, err)

		home := l.Locate([]*models.MediaItem{
			gpsItemAt(1, "2024-07-01T23:00:00Z", 52.52, 13.405),
			gpsItemAt(2, "2024-07-02T05:00:00Z", 52.52, 13.405),
			gpsItemAt(3, "2024-07-02T12:00:00Z", 48.1374, 11.5755), // midday, ignored
		})
		require.NotNil(t, home)
		assert.InDelta(t, 52.52, home.Center.Lat, 0.001)
	})

	t.Run("majority bucket wins", func(t *testing.T) {
		t.Parallel()
		l, err := NewHomeLocator(HomeLocatorConfig{})
		require.NoError(t, err)

		items := []*models.MediaItem{
			gpsItemAt(1, "2024-07-01T23:00:00Z", 52.5200, 13.4050),
			gpsItemAt(2, "2024-07-02T23:30:00Z", 52.5200, 13.4050),
			gpsItemAt(3, "2024-07-03T22:15:00Z", 52.5200, 13.4050),
			gpsItemAt(4, "2024-07-04T23:00:00Z", 48.1374, 11.5755), // one night elsewhere
		}
		for _, m := range items[:3] {
			m.CountryCode = "DE"
		}

		home := l.Locate(items)
		require.NotNil(t, home)
		assert.InDelta(t, 52.5200, home.Center.Lat, 0.001)
		assert.Equal(t, "DE", home.CountryCode)
	})

	t.Run("radius floored at default", func(t *testing.T) {
		t.Parallel()
		l, err := NewHomeLocator(HomeLocatorConfig{})
		require.NoError(t, err)

		home := l.Locate([]*models.MediaItem{
			gpsItemAt(1, "2024-07-01T23:00:00Z", 52.5200, 13.4050),
			gpsItemAt(2, "2024-07-02T23:00:00Z", 52.5201, 13.4051),
		})
		require.NotNil(t, home)
		assert.Equal(t, DefaultHomeRadiusKm, home.RadiusKm)
	})

	t.Run("strong second bucket becomes a secondary center", func(t *testing.T) {
		t.Parallel()
		l, err := NewHomeLocator(HomeLocatorConfig{})
		require.NoError(t, err)

		var items []*models.MediaItem
		// Primary: 4 nights in Berlin
		for i := 0; i < 4; i++ {
			m := gpsItemAt(int64(i+1), "2024-07-01T23:00:00Z", 52.5200, 13.4050)
			m.GeoCell = "u33db"
			items = append(items, m)
		}
		// Secondary: 2 nights at a weekend place (>= 25% of primary evidence)
		for i := 0; i < 2; i++ {
			m := gpsItemAt(int64(i+10), "2024-07-05T23:00:00Z", 53.5500, 10.0000)
			m.GeoCell = "u1x0e"
			items = append(items, m)
		}

		home := l.Locate(items)
		require.NotNil(t, home)
		require.Len(t, home.Secondary, 1)
		assert.Equal(t, 2, home.Secondary[0].Evidence)
		assert.InDelta(t, 53.55, home.Secondary[0].Center.Lat, 0.001)
	})

	t.Run("majority timezone offset", func(t *testing.T) {
		t.Parallel()
		l, err := NewHomeLocator(HomeLocatorConfig{})
		require.NoError(t, err)

		offset := 120
		a := gpsItemAt(1, "2024-07-01T23:00:00Z", 52.5200, 13.4050)
		a.TZOffsetMinutes = &offset
		b := gpsItemAt(2, "2024-07-02T23:00:00Z", 52.5200, 13.4050)
		b.TZOffsetMinutes = &offset

		home := l.Locate([]*models.MediaItem{a, b})
		require.NotNil(t, home)
		require.NotNil(t, home.TZOffsetMinutes)
		assert.Equal(t, 120, *home.TZOffsetMinutes)
	})
}
