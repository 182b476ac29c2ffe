package cluster

import (
	"time"

	"github.com/jengzang/memories-backend-go/internal/models"
	"github.com/jengzang/memories-backend-go/internal/spatial"
	"github.com/jengzang/memories-backend-go/internal/stats"
)

// Context aggregation constants. The people composite weights and
// normalizers are heuristics carried over unchanged.
const (
	// ContextCellPrecision is the geohash precision used when no
	// precomputed geocell is available (~2 km cells)
	ContextCellPrecision = 5

	peopleCoverageWeight = 0.5
	peopleRichnessWeight = 0.3
	peopleDensityWeight  = 0.2

	// Unique-person count and per-item mention count that saturate their
	// respective components
	peopleRichnessNorm = 6.0
	peopleDensityNorm  = 2.0
)

// Context carries scope-level metadata computed once per clustering scope
// and merged into every draft's parameters. Nil fields are absent signals
// and are never written to a draft.
type Context struct {
	TimeFrom *time.Time
	TimeTo   *time.Time

	// LocationCell is the majority coarse location cell of the scope
	LocationCell string

	// PeopleScore is a weighted composite of people coverage, unique-person
	// richness and mention density, each clamped to [0,1]
	PeopleScore *float64

	// DeviceDiversity is 1 - dominantDeviceShare; nil under 2 device variants
	DeviceDiversity *float64
}

// BuildContext computes the scope context over the given media
func BuildContext(items []*models.MediaItem) *Context {
	ctx := &Context{}

	if tr, ok := MembersTimeRange(items); ok {
		from, to := tr.From, tr.To
		ctx.TimeFrom = &from
		ctx.TimeTo = &to
	}

	ctx.LocationCell = majorityCell(items)
	ctx.PeopleScore = peopleScore(items)
	ctx.DeviceDiversity = deviceDiversity(items)

	return ctx
}

// ApplyToDraft merges all non-nil context fields into the draft's params.
// Keys the draft already set win.
func (c *Context) ApplyToDraft(d *Draft) {
	if c.TimeFrom != nil && c.TimeTo != nil && !d.HasParam(ParamTimeRange) {
		d.SetParam(ParamTimeRange, TimeRange{From: *c.TimeFrom, To: *c.TimeTo})
	}
	if c.LocationCell != "" && !d.HasParam(ParamLocationCell) {
		d.SetParam(ParamLocationCell, c.LocationCell)
	}
	if c.PeopleScore != nil && !d.HasParam(ParamPeopleScore) {
		d.SetParam(ParamPeopleScore, *c.PeopleScore)
	}
	if c.DeviceDiversity != nil && !d.HasParam(ParamDeviceDiversity) {
		d.SetParam(ParamDeviceDiversity, *c.DeviceDiversity)
	}
}

// majorityCell returns the most frequent location cell, preferring
// precomputed geocells and falling back to a fixed-precision geohash of
// the item's coordinate. Count ties resolve to the smaller cell string.
func majorityCell(items []*models.MediaItem) string {
	counts := make(map[string]int)
	for _, m := range items {
		cell := m.GeoCell
		if cell == "" && m.HasGPS() {
			cell = spatial.EncodeGeohash(*m.Latitude, *m.Longitude, ContextCellPrecision)
		}
		if cell != "" {
			counts[cell]++
		}
	}

	best := ""
	bestCount := 0
	for cell, count := range counts {
		if count > bestCount || (count == bestCount && cell < best) {
			best = cell
			bestCount = count
		}
	}
	return best
}

func peopleScore(items []*models.MediaItem) *float64 {
	if len(items) == 0 {
		return nil
	}

	withPeople := 0
	mentions := 0
	unique := make(map[string]bool)
	for _, m := range items {
		if len(m.PersonIDs) == 0 {
			continue
		}
		withPeople++
		mentions += len(m.PersonIDs)
		for _, id := range m.PersonIDs {
			unique[id] = true
		}
	}
	if withPeople == 0 {
		return nil
	}

	coverage := stats.Clamp01(float64(withPeople) / float64(len(items)))
	richness := stats.Clamp01(float64(len(unique)) / peopleRichnessNorm)
	density := stats.Clamp01(float64(mentions) / float64(len(items)) / peopleDensityNorm)

	score := peopleCoverageWeight*coverage + peopleRichnessWeight*richness + peopleDensityWeight*density
	return &score
}

func deviceDiversity(items []*models.MediaItem) *float64 {
	counts := make(map[string]int)
	total := 0
	for _, m := range items {
		if m.DeviceModel == "" {
			continue
		}
		counts[m.DeviceModel]++
		total++
	}
	if len(counts) < 2 {
		return nil
	}

	dominant := 0
	for _, count := range counts {
		if count > dominant {
			dominant = count
		}
	}

	diversity := 1 - float64(dominant)/float64(total)
	return &diversity
}
