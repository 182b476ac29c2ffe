package vacation

import (
	"github.com/jengzang/memories-backend-go/internal/cluster"
	"github.com/jengzang/memories-backend-go/internal/spatial"
	"github.com/jengzang/memories-backend-go/internal/stats"
)

// Stage constants. All heuristic thresholds are named so callers can
// reason about them; the values mirror the production heuristics.
const (
	// HighSpeedTransitKmh flags a day containing flight- or rail-speed
	// movement between consecutive shots
	HighSpeedTransitKmh = 150.0

	// Staypoint extraction: dwell radius and least photos per dwell
	StaypointRadiusKm   = 0.3
	StaypointMinSamples = 3

	// MinSamplesPerDay marks a day as statistically usable
	MinSamplesPerDay = 3

	// AwayRadiusFactor scales the home radius when deciding whether a day
	// was spent away from home
	AwayRadiusFactor = 1.5
)

// DistanceStage computes per-day distance statistics relative to home
type DistanceStage struct{}

func (s *DistanceStage) Name() string { return "distance" }

func (s *DistanceStage) Process(days map[string]*DaySummary, home *HomeDescriptor) (map[string]*DaySummary, error) {
	if home == nil {
		return days, nil
	}

	for _, d := range days {
		if len(d.GPSMembers) == 0 {
			continue
		}
		var sum float64
		for _, m := range d.GPSMembers {
			dist := spatial.HaversineDistanceKm(home.Center.Lat, home.Center.Lon, *m.Latitude, *m.Longitude)
			sum += dist
			if dist > d.MaxDistanceKm {
				d.MaxDistanceKm = dist
			}
		}
		d.AvgDistanceKm = sum / float64(len(d.GPSMembers))
	}
	return days, nil
}

// SpeedStage computes intra-day travel distance and movement speeds from
// consecutive GPS-tagged shots
type SpeedStage struct{}

func (s *SpeedStage) Name() string { return "speed" }

func (s *SpeedStage) Process(days map[string]*DaySummary, home *HomeDescriptor) (map[string]*DaySummary, error) {
	for _, d := range days {
		if len(d.GPSMembers) < 2 {
			continue
		}

		var speeds []float64
		for i := 1; i < len(d.GPSMembers); i++ {
			prev, next := d.GPSMembers[i-1], d.GPSMembers[i]
			dist := spatial.HaversineDistanceKm(*prev.Latitude, *prev.Longitude, *next.Latitude, *next.Longitude)
			d.TravelKm += dist

			dt := next.TakenAt.Sub(*prev.TakenAt).Hours()
			if dt <= 0 {
				continue
			}
			speed := dist / dt
			speeds = append(speeds, speed)
			if speed > d.MaxSpeedKmh {
				d.MaxSpeedKmh = speed
			}
		}

		d.AvgSpeedKmh = stats.Mean(speeds)
		d.HighSpeedTransit = d.MaxSpeedKmh >= HighSpeedTransitKmh
	}
	return days, nil
}

// StaypointStage extracts dwell clusters from each day's GPS members via
// density clustering
type StaypointStage struct{}

func (s *StaypointStage) Name() string { return "staypoints" }

func (s *StaypointStage) Process(days map[string]*DaySummary, home *HomeDescriptor) (map[string]*DaySummary, error) {
	clusterer, err := cluster.NewGeoDensityClusterer(StaypointRadiusKm, StaypointMinSamples)
	if err != nil {
		return nil, err
	}

	for _, d := range days {
		result := clusterer.Cluster(d.GPSMembers)
		for _, members := range result.Clusters {
			cluster.SortByTime(members)

			points := make([]spatial.Point, 0, len(members))
			for _, m := range members {
				points = append(points, spatial.Point{Lat: *m.Latitude, Lon: *m.Longitude})
			}

			sp := Staypoint{
				Center: spatial.Centroid(points),
				Count:  len(members),
			}
			if tr, ok := cluster.MembersTimeRange(members); ok {
				sp.Start = tr.From
				sp.End = tr.To
				sp.Duration = tr.To.Sub(tr.From)
			}
			d.Staypoints = append(d.Staypoints, sp)
		}
	}
	return days, nil
}

// POIStage aggregates point-of-interest and tourism signals
type POIStage struct{}

func (s *POIStage) Name() string { return "poi" }

func (s *POIStage) Process(days map[string]*DaySummary, home *HomeDescriptor) (map[string]*DaySummary, error) {
	for _, d := range days {
		for _, m := range d.Members {
			if m.HasPOI {
				d.POICount++
			}
			if m.TourismPOI {
				d.TourismCount++
			}
			if m.AirportPOI {
				d.AirportSeen = true
			}
		}
		if d.PhotoCount > 0 {
			d.TourismRatio = float64(d.TourismCount) / float64(d.PhotoCount)
		}
	}
	return days, nil
}

// TimezoneStage resolves each day's timezone offset by majority vote over
// the per-photo offset histogram
type TimezoneStage struct{}

func (s *TimezoneStage) Name() string { return "timezone" }

func (s *TimezoneStage) Process(days map[string]*DaySummary, home *HomeDescriptor) (map[string]*DaySummary, error) {
	for _, d := range days {
		if len(d.TZOffsetHistogram) == 0 {
			continue
		}
		best, bestCount := 0, 0
		for offset, count := range d.TZOffsetHistogram {
			if count > bestCount || (count == bestCount && offset < best) {
				best, bestCount = offset, count
			}
		}
		offset := best
		d.TZOffsetMinutes = &offset
	}
	return days, nil
}

// DensityStage scores each day's photo volume against the user's typical
// daily volume
type DensityStage struct{}

func (s *DensityStage) Name() string { return "density" }

func (s *DensityStage) Process(days map[string]*DaySummary, home *HomeDescriptor) (map[string]*DaySummary, error) {
	counts := make([]float64, 0, len(days))
	for _, d := range days {
		counts = append(counts, float64(d.PhotoCount))
	}

	for _, d := range days {
		d.DensityZ = stats.ZScore(float64(d.PhotoCount), counts)
		d.SufficientSamples = d.PhotoCount >= MinSamplesPerDay
	}
	return days, nil
}

// AwayStage flags days plausibly spent away from home. A day near any
// secondary home center is never an away candidate.
type AwayStage struct{}

func (s *AwayStage) Name() string { return "away" }

func (s *AwayStage) Process(days map[string]*DaySummary, home *HomeDescriptor) (map[string]*DaySummary, error) {
	if home == nil {
		return days, nil
	}

	for _, d := range days {
		away := d.MaxDistanceKm > home.RadiusKm*AwayRadiusFactor
		if !away && home.CountryCode != "" {
			for cc := range d.Countries {
				if cc != home.CountryCode {
					away = true
					break
				}
			}
		}
		if away && nearSecondaryCenter(d, home) {
			away = false
		}
		d.AwayCandidate = away
	}
	return days, nil
}

func nearSecondaryCenter(d *DaySummary, home *HomeDescriptor) bool {
	if len(d.GPSMembers) == 0 {
		return false
	}
	points := make([]spatial.Point, 0, len(d.GPSMembers))
	for _, m := range d.GPSMembers {
		points = append(points, spatial.Point{Lat: *m.Latitude, Lon: *m.Longitude})
	}
	center := spatial.Centroid(points)

	for _, sc := range home.Secondary {
		d := spatial.HaversineDistanceKm(sc.Center.Lat, sc.Center.Lon, center.Lat, center.Lon)
		if d <= sc.RadiusKm*AwayRadiusFactor {
			return true
		}
	}
	return false
}
