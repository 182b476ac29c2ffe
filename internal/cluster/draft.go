package cluster

import (
	"time"

	"github.com/jengzang/memories-backend-go/internal/models"
	"github.com/jengzang/memories-backend-go/internal/spatial"
)

// Well-known draft parameter keys. The params map stays open-ended:
// strategies are free to add their own keys next to these.
const (
	ParamTimeRange       = "time_range"
	ParamNights          = "nights"
	ParamDayCount        = "day_count"
	ParamDistanceKm      = "distance_km"
	ParamLocationCell    = "location_cell"
	ParamPeopleScore     = "people_score"
	ParamDeviceDiversity = "device_diversity"
	ParamCoreDays        = "core_days"
	ParamPeripheralDays  = "peripheral_days"
	ParamDayScores       = "day_scores"
	ParamYears           = "years"
	ParamCountries       = "countries"
)

// Params holds draft parameters keyed by the well-known constants above
// plus any strategy-specific keys
type Params map[string]interface{}

// TimeRange is the value stored under ParamTimeRange
type TimeRange struct {
	From time.Time `json:"from"`
	To   time.Time `json:"to"`
}

// Draft represents a clustered group of media items before downstream
// consolidation. Member ids are unique; the centroid is the arithmetic
// mean of members that carry GPS, or {0,0} when none do. Drafts are only
// mutated through SetParam.
type Draft struct {
	algorithm string
	params    Params
	centroid  spatial.Point
	members   []int64
}

// NewDraft creates a draft for the given algorithm over the given members.
// Duplicate member ids are dropped, keeping first occurrence order.
func NewDraft(algorithm string, members []*models.MediaItem) *Draft {
	d := &Draft{
		algorithm: algorithm,
		params:    Params{},
	}

	seen := make(map[int64]bool, len(members))
	var points []spatial.Point
	for _, m := range members {
		if seen[m.ID] {
			continue
		}
		seen[m.ID] = true
		d.members = append(d.members, m.ID)

		if m.HasGPS() {
			points = append(points, spatial.Point{Lat: *m.Latitude, Lon: *m.Longitude})
		}
	}

	if len(points) > 0 {
		d.centroid = spatial.Centroid(points)
	}

	if tr, ok := MembersTimeRange(members); ok {
		d.params[ParamTimeRange] = tr
	}

	return d
}

// Algorithm returns the algorithm identifier
func (d *Draft) Algorithm() string {
	return d.algorithm
}

// Centroid returns the mean coordinate of GPS-tagged members
func (d *Draft) Centroid() spatial.Point {
	return d.centroid
}

// Members returns the member media ids
func (d *Draft) Members() []int64 {
	return d.members
}

// Params returns the parameter map
func (d *Draft) Params() Params {
	return d.params
}

// HasParam reports whether a parameter key is set
func (d *Draft) HasParam(key string) bool {
	_, ok := d.params[key]
	return ok
}

// SetParam sets a single parameter value in place
func (d *Draft) SetParam(key string, value interface{}) {
	d.params[key] = value
}

// MembersTimeRange returns the min/max capture timestamp among timestamped
// members, and false when no member carries a timestamp
func MembersTimeRange(members []*models.MediaItem) (TimeRange, bool) {
	var tr TimeRange
	found := false
	for _, m := range members {
		if !m.HasTime() {
			continue
		}
		t := *m.TakenAt
		if !found {
			tr.From, tr.To = t, t
			found = true
			continue
		}
		if t.Before(tr.From) {
			tr.From = t
		}
		if t.After(tr.To) {
			tr.To = t
		}
	}
	return tr, found
}
