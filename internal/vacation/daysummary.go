package vacation

import (
	"fmt"
	"time"

	"github.com/jengzang/memories-backend-go/internal/cluster"
	"github.com/jengzang/memories-backend-go/internal/models"
	"github.com/jengzang/memories-backend-go/internal/spatial"
)

// Staypoint is a dwell cluster: a place where the subject stayed long
// enough to accumulate several photos within a confined radius
type Staypoint struct {
	Center   spatial.Point `json:"center"`
	Start    time.Time     `json:"start"`
	End      time.Time     `json:"end"`
	Duration time.Duration `json:"duration"`
	Count    int           `json:"count"`
}

// DaySummary aggregates one local calendar day of a user's media stream.
// Built once by the stage pipeline and immutable afterwards.
type DaySummary struct {
	Day string `json:"day"`

	Members    []*models.MediaItem `json:"-"`
	GPSMembers []*models.MediaItem `json:"-"`

	// Distances from home, km
	MaxDistanceKm float64 `json:"maxDistanceKm"`
	AvgDistanceKm float64 `json:"avgDistanceKm"`

	// Cumulative intra-day travel, km
	TravelKm float64 `json:"travelKm"`

	MaxSpeedKmh      float64 `json:"maxSpeedKmh"`
	AvgSpeedKmh      float64 `json:"avgSpeedKmh"`
	HighSpeedTransit bool    `json:"highSpeedTransit"`

	Countries map[string]bool `json:"-"`

	// TZOffsetHistogram counts per-photo timezone offsets (minutes)
	TZOffsetHistogram map[int]int `json:"-"`
	TZOffsetMinutes   *int        `json:"tzOffsetMinutes,omitempty"`

	POICount     int     `json:"poiCount"`
	TourismCount int     `json:"tourismCount"`
	TourismRatio float64 `json:"tourismRatio"`
	AirportSeen  bool    `json:"airportSeen"`

	Weekday    int     `json:"weekday"`
	PhotoCount int     `json:"photoCount"`
	DensityZ   float64 `json:"densityZ"`

	AwayCandidate     bool `json:"awayCandidate"`
	SufficientSamples bool `json:"sufficientSamples"`

	Staypoints []Staypoint `json:"staypoints,omitempty"`

	// Synthetic marks a day inserted to bridge a data gap
	Synthetic bool `json:"synthetic"`
}

// Duration returns the span between the first and last member timestamp,
// clamped to zero
func (d *DaySummary) Duration() time.Duration {
	tr, ok := cluster.MembersTimeRange(d.Members)
	if !ok {
		return 0
	}
	span := tr.To.Sub(tr.From)
	if span < 0 {
		return 0
	}
	return span
}

// Stage is one step of the day-summary pipeline. A stage consumes the
// previous stage's day map plus the home descriptor and returns a possibly
// filtered day map.
type Stage interface {
	Name() string
	Process(days map[string]*DaySummary, home *HomeDescriptor) (map[string]*DaySummary, error)
}

// DaySummaryBuilder partitions a chronological media stream into per-day
// records and runs an ordered stage pipeline over them. The pipeline
// short-circuits to an empty result as soon as any stage yields no days.
type DaySummaryBuilder struct {
	stages []Stage
}

// NewDaySummaryBuilder creates a builder over the given stages
func NewDaySummaryBuilder(stages ...Stage) (*DaySummaryBuilder, error) {
	if len(stages) == 0 {
		return nil, fmt.Errorf("day summary builder: at least one stage is required")
	}
	return &DaySummaryBuilder{stages: stages}, nil
}

// DefaultDaySummaryBuilder assembles the standard stage pipeline
func DefaultDaySummaryBuilder() (*DaySummaryBuilder, error) {
	return NewDaySummaryBuilder(
		&DistanceStage{},
		&SpeedStage{},
		&StaypointStage{},
		&POIStage{},
		&TimezoneStage{},
		&DensityStage{},
		&AwayStage{},
	)
}

// Build partitions items into local calendar days and runs the pipeline.
// Data sparsity yields an empty map, never an error; stage errors are
// configuration defects and propagate.
func (b *DaySummaryBuilder) Build(items []*models.MediaItem, home *HomeDescriptor) (map[string]*DaySummary, error) {
	days := partitionDays(items)
	if len(days) == 0 {
		return map[string]*DaySummary{}, nil
	}

	var err error
	for _, stage := range b.stages {
		days, err = stage.Process(days, home)
		if err != nil {
			return nil, fmt.Errorf("day summary stage %s: %w", stage.Name(), err)
		}
		if len(days) == 0 {
			return map[string]*DaySummary{}, nil
		}
	}

	return days, nil
}

// partitionDays builds the base per-day records from a single pass over
// the timestamp-sorted media. Items without a timestamp never enter a day.
func partitionDays(items []*models.MediaItem) map[string]*DaySummary {
	sorted := cluster.Timestamped(items)

	days := make(map[string]*DaySummary)
	for _, m := range sorted {
		key, _ := cluster.DayKey(m)

		d, ok := days[key]
		if !ok {
			local, _ := m.LocalTime()
			d = &DaySummary{
				Day:               key,
				Countries:         make(map[string]bool),
				TZOffsetHistogram: make(map[int]int),
				Weekday:           int(local.Weekday()),
			}
			days[key] = d
		}

		d.Members = append(d.Members, m)
		d.PhotoCount++
		if m.HasGPS() {
			d.GPSMembers = append(d.GPSMembers, m)
		}
		if m.CountryCode != "" {
			d.Countries[m.CountryCode] = true
		}
		if m.TZOffsetMinutes != nil {
			d.TZOffsetHistogram[*m.TZOffsetMinutes]++
		}
	}
	return days
}
