package cluster

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jengzang/memories-backend-go/internal/models"
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

func TestDayKey(t *testing.T) {
	t.Parallel()

	t.Run("no timestamp", func(t *testing.T) {
		t.Parallel()
		_, ok := DayKey(&models.MediaItem{ID: 1})
		assert.False(t, ok)
	})

	t.Run("utc timestamp", func(t *testing.T) {
		t.Parallel()
		key, ok := DayKey(itemAt(1, "2024-07-01T14:00:00Z"))
		require.True(t, ok)
		assert.Equal(t, "2024-07-01", key)
	})

	t.Run("timezone offset shifts the day", func(t *testing.T) {
		t.Parallel()
		m := itemAt(1, "2024-07-01T23:30:00Z")
		offset := 120 // UTC+2
		m.TZOffsetMinutes = &offset
		key, ok := DayKey(m)
		require.True(t, ok)
		assert.Equal(t, "2024-07-02", key)
	})
}

func TestSortByTime(t *testing.T) {
	t.Parallel()

	items := []*models.MediaItem{
		itemAt(3, "2024-07-01T12:00:00Z"),
		{ID: 5},
		itemAt(2, "2024-07-01T10:00:00Z"),
		itemAt(1, "2024-07-01T12:00:00Z"),
	}
	SortByTime(items)

	ids := make([]int64, len(items))
	for i, m := range items {
		ids[i] = m.ID
	}
	// Untimestamped first, then chronological, id breaks the tie
	assert.Equal(t, []int64{5, 2, 1, 3}, ids)
}

func TestGroupByDay(t *testing.T) {
	t.Parallel()

	days := GroupByDay([]*models.MediaItem{
		itemAt(1, "2024-07-01T08:00:00Z"),
		itemAt(2, "2024-07-01T20:00:00Z"),
		itemAt(3, "2024-07-02T09:00:00Z"),
		{ID: 4},
	})

	require.Len(t, days, 2)
	assert.Len(t, days["2024-07-01"], 2)
	assert.Len(t, days["2024-07-02"], 1)
	assert.Equal(t, []string{"2024-07-01", "2024-07-02"}, SortedDayKeys(days))
}

func TestGap(t *testing.T) {
	t.Parallel()

	prev := itemAt(1, "2024-07-01T10:00:00Z")
	next := itemAt(2, "2024-07-01T10:05:00Z")
	assert.Equal(t, 5*time.Minute, Gap(prev, next))
}
