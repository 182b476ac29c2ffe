package vacation

import (
	"fmt"
	"sort"

	"github.com/jengzang/memories-backend-go/internal/models"
	"github.com/jengzang/memories-backend-go/internal/spatial"
)

// Defaults for home inference
const (
	DefaultNightStartHour = 22
	DefaultNightEndHour   = 6
	DefaultHomeRadiusKm   = 15.0

	// homeBucketPrecision is the coordinate rounding used when neither a
	// geocell nor a country code identifies the place (3 decimal degrees,
	// roughly 110 m of latitude)
	homeCoordDecimals = 3

	// secondaryShare is the least share of the primary bucket's evidence a
	// bucket needs to qualify as a secondary home center
	secondaryShare = 0.25
)

// HomeCenter is a secondary home candidate with its supporting evidence
type HomeCenter struct {
	Center   spatial.Point `json:"center"`
	RadiusKm float64       `json:"radiusKm"`
	Evidence int           `json:"evidence"`
}

// HomeDescriptor describes the user's inferred (or configured) home.
// Built once per pipeline run and treated as immutable afterwards.
type HomeDescriptor struct {
	Center          spatial.Point `json:"center"`
	RadiusKm        float64       `json:"radiusKm"`
	CountryCode     string        `json:"countryCode,omitempty"`
	TZOffsetMinutes *int          `json:"tzOffsetMinutes,omitempty"`
	Secondary       []HomeCenter  `json:"secondary,omitempty"`
}

// HomeLocatorConfig configures home inference. The zero value uses the
// defaults above; a night window of 0-0 would be empty, so both hours
// zero always means "use the defaults".
type HomeLocatorConfig struct {
	NightStartHour  int
	NightEndHour    int
	DefaultRadiusKm float64

	// Explicit short-circuits inference with configured coordinates
	Explicit         *spatial.Point
	ExplicitRadiusKm float64
	ExplicitCountry  string
	ExplicitTZOffset *int
}

// HomeLocator infers a user's home from night-time, GPS-tagged photos by
// majority spatial bucketing
type HomeLocator struct {
	cfg HomeLocatorConfig
}

// NewHomeLocator creates a home locator
func NewHomeLocator(cfg HomeLocatorConfig) (*HomeLocator, error) {
	if cfg.NightStartHour == 0 && cfg.NightEndHour == 0 {
		cfg.NightStartHour = DefaultNightStartHour
		cfg.NightEndHour = DefaultNightEndHour
	}
	if cfg.NightStartHour < 0 || cfg.NightStartHour > 23 || cfg.NightEndHour < 0 || cfg.NightEndHour > 23 {
		return nil, fmt.Errorf("home locator: night hours out of range: %d-%d", cfg.NightStartHour, cfg.NightEndHour)
	}
	if cfg.NightStartHour == cfg.NightEndHour {
		return nil, fmt.Errorf("home locator: night window is empty: %d-%d", cfg.NightStartHour, cfg.NightEndHour)
	}
	if cfg.DefaultRadiusKm == 0 {
		cfg.DefaultRadiusKm = DefaultHomeRadiusKm
	}
	if cfg.DefaultRadiusKm < 0 {
		return nil, fmt.Errorf("home locator: default radius must not be negative, got %v", cfg.DefaultRadiusKm)
	}
	return &HomeLocator{cfg: cfg}, nil
}

// Locate returns the home descriptor, or nil when no night-time GPS data
// exists and no explicit home is configured
func (l *HomeLocator) Locate(items []*models.MediaItem) *HomeDescriptor {
	if l.cfg.Explicit != nil {
		radius := l.cfg.ExplicitRadiusKm
		if radius <= 0 {
			radius = l.cfg.DefaultRadiusKm
		}
		return &HomeDescriptor{
			Center:          *l.cfg.Explicit,
			RadiusKm:        radius,
			CountryCode:     l.cfg.ExplicitCountry,
			TZOffsetMinutes: l.cfg.ExplicitTZOffset,
		}
	}

	// Restrict to night-time items with GPS
	var night []*models.MediaItem
	for _, m := range items {
		if !m.HasGPS() {
			continue
		}
		t, ok := m.LocalTime()
		if !ok {
			continue
		}
		if l.nightHour(t.Hour()) {
			night = append(night, m)
		}
	}
	if len(night) == 0 {
		return nil
	}

	// Bucket by stable place identity
	buckets := make(map[string][]*models.MediaItem)
	for _, m := range night {
		buckets[placeKey(m)] = append(buckets[placeKey(m)], m)
	}

	keys := make([]string, 0, len(buckets))
	for k := range buckets {
		keys = append(keys, k)
	}
	// Largest bucket wins; count ties resolve to the smaller key
	sort.Slice(keys, func(i, j int) bool {
		a, b := keys[i], keys[j]
		if len(buckets[a]) != len(buckets[b]) {
			return len(buckets[a]) > len(buckets[b])
		}
		return a < b
	})

	primary := buckets[keys[0]]
	home := &HomeDescriptor{
		Center:          bucketCentroid(primary),
		CountryCode:     majorityCountry(primary),
		TZOffsetMinutes: majorityTZOffset(primary),
	}
	home.RadiusKm = bucketRadiusKm(home.Center, primary)
	if home.RadiusKm < l.cfg.DefaultRadiusKm {
		home.RadiusKm = l.cfg.DefaultRadiusKm
	}

	for _, key := range keys[1:] {
		members := buckets[key]
		if float64(len(members)) < secondaryShare*float64(len(primary)) {
			continue
		}
		center := bucketCentroid(members)
		radius := bucketRadiusKm(center, members)
		if radius < l.cfg.DefaultRadiusKm {
			radius = l.cfg.DefaultRadiusKm
		}
		home.Secondary = append(home.Secondary, HomeCenter{
			Center:   center,
			RadiusKm: radius,
			Evidence: len(members),
		})
	}

	return home
}

// nightHour reports whether a local hour falls inside the configured
// night window. A window whose start is later than its end (22-6)
// wraps past midnight; otherwise the window is the plain [start, end)
// range within one day.
func (l *HomeLocator) nightHour(hour int) bool {
	start, end := l.cfg.NightStartHour, l.cfg.NightEndHour
	if start < end {
		return hour >= start && hour < end
	}
	return hour >= start || hour < end
}

// placeKey returns a stable place identity for bucketing: the resolved
// geocell when present, else the country code, else the coordinate rounded
// to 3 decimal degrees
func placeKey(m *models.MediaItem) string {
	if m.GeoCell != "" {
		return "cell:" + m.GeoCell
	}
	if m.CountryCode != "" {
		return "cc:" + m.CountryCode
	}
	return fmt.Sprintf("pt:%.*f,%.*f", homeCoordDecimals, *m.Latitude, homeCoordDecimals, *m.Longitude)
}

func bucketCentroid(members []*models.MediaItem) spatial.Point {
	points := make([]spatial.Point, 0, len(members))
	for _, m := range members {
		points = append(points, spatial.Point{Lat: *m.Latitude, Lon: *m.Longitude})
	}
	return spatial.Centroid(points)
}

func bucketRadiusKm(center spatial.Point, members []*models.MediaItem) float64 {
	points := make([]spatial.Point, 0, len(members))
	for _, m := range members {
		points = append(points, spatial.Point{Lat: *m.Latitude, Lon: *m.Longitude})
	}
	return spatial.MaxDistanceFrom(center, points) / 1000.0
}

func majorityCountry(members []*models.MediaItem) string {
	counts := make(map[string]int)
	for _, m := range members {
		if m.CountryCode != "" {
			counts[m.CountryCode]++
		}
	}
	best, bestCount := "", 0
	for cc, count := range counts {
		if count > bestCount || (count == bestCount && cc < best) {
			best, bestCount = cc, count
		}
	}
	return best
}

func majorityTZOffset(members []*models.MediaItem) *int {
	counts := make(map[int]int)
	for _, m := range members {
		if m.TZOffsetMinutes != nil {
			counts[*m.TZOffsetMinutes]++
		}
	}
	if len(counts) == 0 {
		return nil
	}
	best, bestCount := 0, 0
	for offset, count := range counts {
		if count > bestCount || (count == bestCount && offset < best) {
			best, bestCount = offset, count
		}
	}
	return &best
}
