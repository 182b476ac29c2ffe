package cluster

import (
	"fmt"
	"time"

	"github.com/jengzang/memories-backend-go/internal/models"
	"github.com/jengzang/memories-backend-go/internal/spatial"
)

// GeoTemporalBucketer produces compact spatial+temporal "visit" buckets
// from a media stream with partial GPS coverage. Each calendar day is
// density-clustered first; clusters are then split by a sliding time
// window so temporally distant revisits of the same place stay apart.
// Density noise gets a second window pass with an additional radius check
// against the window's anchor point, which recovers visits from sparse
// GPS tracks.
type GeoTemporalBucketer struct {
	density    *GeoDensityClusterer
	radiusKm   float64
	window     time.Duration
	minMembers int
}

// NewGeoTemporalBucketer creates a bucketer.
// radiusKm and minSamples configure the density pass; window bounds the
// sliding time window; minMembers drops buckets below that size.
func NewGeoTemporalBucketer(radiusKm float64, minSamples int, window time.Duration, minMembers int) (*GeoTemporalBucketer, error) {
	if window <= 0 {
		return nil, fmt.Errorf("geo temporal bucketer: window must be positive, got %v", window)
	}
	if minMembers < 1 {
		return nil, fmt.Errorf("geo temporal bucketer: minMembers must be at least 1, got %d", minMembers)
	}
	density, err := NewGeoDensityClusterer(radiusKm, minSamples)
	if err != nil {
		return nil, err
	}
	return &GeoTemporalBucketer{
		density:    density,
		radiusKm:   radiusKm,
		window:     window,
		minMembers: minMembers,
	}, nil
}

// Buckets returns all visit buckets across all days, sorted by the first
// member's capture timestamp. Items without GPS or timestamp never enter
// a bucket.
func (b *GeoTemporalBucketer) Buckets(items []*models.MediaItem) [][]*models.MediaItem {
	var eligible []*models.MediaItem
	for _, m := range items {
		if m.HasGPS() && m.HasTime() {
			eligible = append(eligible, m)
		}
	}
	if len(eligible) == 0 {
		return nil
	}

	days := GroupByDay(eligible)

	var buckets [][]*models.MediaItem
	for _, key := range SortedDayKeys(days) {
		dayItems := days[key]
		SortByTime(dayItems)

		result := b.density.Cluster(dayItems)

		for _, c := range result.Clusters {
			SortByTime(c)
			buckets = append(buckets, b.splitByWindow(c, false)...)
		}

		if len(result.Noise) > 0 {
			noise := append([]*models.MediaItem(nil), result.Noise...)
			SortByTime(noise)
			buckets = append(buckets, b.splitByWindow(noise, true)...)
		}
	}

	var kept [][]*models.MediaItem
	for _, bucket := range buckets {
		if len(bucket) >= b.minMembers {
			kept = append(kept, bucket)
		}
	}

	sortBucketsByFirstTimestamp(kept)
	return kept
}

// splitByWindow walks chronologically sorted items and closes the current
// window when the gap from an item to the window's start exceeds the
// configured window. With checkRadius, an item also closes the window when
// it lies further than radiusKm from the window's anchor (first) point.
func (b *GeoTemporalBucketer) splitByWindow(items []*models.MediaItem, checkRadius bool) [][]*models.MediaItem {
	var out [][]*models.MediaItem
	var current []*models.MediaItem
	var windowStart time.Time
	var anchor *models.MediaItem

	flush := func() {
		if len(current) > 0 {
			out = append(out, current)
		}
		current = nil
		anchor = nil
	}

	for _, m := range items {
		if len(current) == 0 {
			current = []*models.MediaItem{m}
			windowStart = *m.TakenAt
			anchor = m
			continue
		}

		split := m.TakenAt.Sub(windowStart) > b.window
		if !split && checkRadius {
			d := spatial.HaversineDistanceKm(*anchor.Latitude, *anchor.Longitude, *m.Latitude, *m.Longitude)
			split = d > b.radiusKm
		}

		if split {
			flush()
			current = []*models.MediaItem{m}
			windowStart = *m.TakenAt
			anchor = m
			continue
		}

		current = append(current, m)
	}
	flush()

	return out
}

func sortBucketsByFirstTimestamp(buckets [][]*models.MediaItem) {
	// Buckets are non-empty and internally time-sorted, so the first
	// member carries the bucket's start time.
	for i := 1; i < len(buckets); i++ {
		for j := i; j > 0; j-- {
			a, b := buckets[j-1][0], buckets[j][0]
			if b.TakenAt.Before(*a.TakenAt) || (b.TakenAt.Equal(*a.TakenAt) && b.ID < a.ID) {
				buckets[j-1], buckets[j] = buckets[j], buckets[j-1]
			} else {
				break
			}
		}
	}
}
