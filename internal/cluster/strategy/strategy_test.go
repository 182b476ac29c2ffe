package strategy

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jengzang/memories-backend-go/internal/cluster"
	"github.com/jengzang/memories-backend-go/internal/models"
)

func itemAt(id int64, ts string) *models.MediaItem {
	t, err := time.Parse(time.RFC3339, ts)
	if err != nil {
		panic(err)
	}
	return &models.MediaItem{ID: id, TakenAt: &t}
}

func gpsItemAt(id int64, ts string, lat, lon float64) *models.MediaItem {
	m := itemAt(id, ts)
	m.Latitude = &lat
	m.Longitude = &lon
	return m
}

func TestAllStrategiesRegistered(t *testing.T) {
	for _, name := range []string{
		"annual_events",
		"monthly_highlights",
		"photo_bursts",
		"place_visits",
		"vacation",
		"weekend_trips",
	} {
		s, err := cluster.Get(name)
		require.NoError(t, err, name)
		assert.Equal(t, name, s.Name())
	}
}

func TestBurstStrategy(t *testing.T) {
	t.Parallel()

	s, err := NewBurstStrategy()
	require.NoError(t, err)

	t.Run("rapid series at one spot", func(t *testing.T) {
		t.Parallel()
		var items []*models.MediaItem
		base := time.Date(2024, 7, 1, 10, 0, 0, 0, time.UTC)
		for i := 0; i < 6; i++ {
			ts := base.Add(time.Duration(i) * 30 * time.Second)
			items = append(items, gpsItemAt(int64(i+1), ts.Format(time.RFC3339), 52.5200, 13.4050))
		}

		drafts, err := s.Cluster(items)
		require.NoError(t, err)
		require.Len(t, drafts, 1)
		assert.Len(t, drafts[0].Members(), 6)
	})

	t.Run("slow series produces nothing", func(t *testing.T) {
		t.Parallel()
		var items []*models.MediaItem
		base := time.Date(2024, 7, 1, 10, 0, 0, 0, time.UTC)
		for i := 0; i < 6; i++ {
			ts := base.Add(time.Duration(i) * 10 * time.Minute)
			items = append(items, gpsItemAt(int64(i+1), ts.Format(time.RFC3339), 52.5200, 13.4050))
		}

		drafts, err := s.Cluster(items)
		require.NoError(t, err)
		assert.Empty(t, drafts)
	})
}

func TestVisitStrategy(t *testing.T) {
	t.Parallel()

	s, err := NewVisitStrategy()
	require.NoError(t, err)

	var items []*models.MediaItem
	base := time.Date(2024, 7, 1, 10, 0, 0, 0, time.UTC)
	for i := 0; i < 5; i++ {
		ts := base.Add(time.Duration(i) * 15 * time.Minute)
		items = append(items, gpsItemAt(int64(i+1), ts.Format(time.RFC3339), 52.5200, 13.4050))
	}

	drafts, err := s.Cluster(items)
	require.NoError(t, err)
	require.Len(t, drafts, 1)
	assert.Equal(t, "place_visits", drafts[0].Algorithm())
	assert.Len(t, drafts[0].Members(), 5)
}

func TestWeekendStrategy(t *testing.T) {
	t.Parallel()

	s, err := NewWeekendStrategy()
	require.NoError(t, err)

	weekendRun := func(startDay int) []*models.MediaItem {
		var items []*models.MediaItem
		id := int64(startDay * 100)
		for day := 0; day < 2; day++ {
			for i := 0; i < 6; i++ {
				ts := time.Date(2024, 7, startDay+day, 10+i, 0, 0, 0, time.UTC)
				id++
				items = append(items, itemAt(id, ts.Format(time.RFC3339)))
			}
		}
		return items
	}

	t.Run("saturday to sunday qualifies", func(t *testing.T) {
		t.Parallel()
		// 2024-07-06 is a Saturday
		drafts, err := s.Cluster(weekendRun(6))
		require.NoError(t, err)
		require.Len(t, drafts, 1)
		assert.Equal(t, 1, drafts[0].Params()[cluster.ParamNights])
	})

	t.Run("midweek run is rejected", func(t *testing.T) {
		t.Parallel()
		// 2024-07-02 is a Tuesday, run covers Tue-Wed
		drafts, err := s.Cluster(weekendRun(2))
		require.NoError(t, err)
		assert.Empty(t, drafts)
	})
}

func TestMonthlyStrategy(t *testing.T) {
	t.Parallel()

	s, err := NewMonthlyStrategy()
	require.NoError(t, err)

	t.Run("rich month qualifies", func(t *testing.T) {
		t.Parallel()
		var items []*models.MediaItem
		id := int64(0)
		for day := 1; day <= 4; day++ {
			for i := 0; i < 6; i++ {
				ts := time.Date(2024, 7, day, 10+i, 0, 0, 0, time.UTC)
				id++
				items = append(items, itemAt(id, ts.Format(time.RFC3339)))
			}
		}

		drafts, err := s.Cluster(items)
		require.NoError(t, err)
		require.Len(t, drafts, 1)
		assert.Equal(t, "2024-07", drafts[0].Params()["month"])
		assert.Equal(t, 4, drafts[0].Params()[cluster.ParamDayCount])
	})

	t.Run("sparse month is rejected", func(t *testing.T) {
		t.Parallel()
		drafts, err := s.Cluster([]*models.MediaItem{
			itemAt(1, "2024-07-01T10:00:00Z"),
			itemAt(2, "2024-07-02T10:00:00Z"),
		})
		require.NoError(t, err)
		assert.Empty(t, drafts)
	})
}

func TestAnnualStrategy(t *testing.T) {
	t.Parallel()

	s, err := NewAnnualStrategy()
	require.NoError(t, err)

	var items []*models.MediaItem
	id := int64(0)
	for _, year := range []int{2023, 2024} {
		for day := 24; day <= 25; day++ {
			for i := 0; i < 6; i++ {
				ts := time.Date(year, 12, day, 10+i, 0, 0, 0, time.UTC)
				id++
				items = append(items, itemAt(id, ts.Format(time.RFC3339)))
			}
		}
	}

	drafts, err := s.Cluster(items)
	require.NoError(t, err)
	require.Len(t, drafts, 1)
	assert.Equal(t, []string{"2023", "2024"}, drafts[0].Params()[cluster.ParamYears])
	assert.Len(t, drafts[0].Members(), 24)
}

func TestVacationStrategy(t *testing.T) {
	t.Parallel()

	s, err := NewVacationStrategy()
	require.NoError(t, err)

	t.Run("no home yields no drafts", func(t *testing.T) {
		t.Parallel()
		drafts, err := s.Cluster([]*models.MediaItem{
			gpsItemAt(1, "2024-07-01T12:00:00Z", 52.5200, 13.4050),
		})
		require.NoError(t, err)
		assert.Empty(t, drafts)
	})

	t.Run("detects a trip away from home", func(t *testing.T) {
		t.Parallel()
		var items []*models.MediaItem
		id := int64(0)

		// Two weeks of nights at home in Berlin
		for day := 1; day <= 14; day++ {
			ts := time.Date(2024, 6, day, 23, 0, 0, 0, time.UTC)
			id++
			items = append(items, gpsItemAt(id, ts.Format(time.RFC3339), 52.5200, 13.4050))
		}

		// A four-day trip to Rome
		for day := 1; day <= 4; day++ {
			for i := 0; i < 4; i++ {
				ts := time.Date(2024, 7, day, 10+i, 0, 0, 0, time.UTC)
				id++
				m := gpsItemAt(id, ts.Format(time.RFC3339), 41.9028, 12.4964)
				m.CountryCode = "IT"
				items = append(items, m)
			}
		}

		drafts, err := s.Cluster(items)
		require.NoError(t, err)
		require.Len(t, drafts, 1)

		d := drafts[0]
		assert.Equal(t, "vacation", d.Algorithm())
		assert.Equal(t, 3, d.Params()[cluster.ParamNights])
		assert.Equal(t, 4, d.Params()[cluster.ParamDayCount])
		assert.Equal(t, []string{"IT"}, d.Params()[cluster.ParamCountries])
		assert.Len(t, d.Members(), 16)
	})
}

func TestStrategyDeterminism(t *testing.T) {
	t.Parallel()

	s, err := NewVisitStrategy()
	require.NoError(t, err)

	var items []*models.MediaItem
	base := time.Date(2024, 7, 1, 10, 0, 0, 0, time.UTC)
	for i := 0; i < 12; i++ {
		ts := base.Add(time.Duration(i) * 20 * time.Minute)
		items = append(items, gpsItemAt(int64(i+1), ts.Format(time.RFC3339), 52.5200+float64(i%3)*0.0001, 13.4050))
	}

	first, err := s.Cluster(items)
	require.NoError(t, err)
	second, err := s.Cluster(items)
	require.NoError(t, err)

	require.Equal(t, len(first), len(second))
	for i := range first {
		assert.Equal(t, fmt.Sprint(first[i].Members()), fmt.Sprint(second[i].Members()))
	}
}
