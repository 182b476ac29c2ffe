package vacation

import (
	"fmt"
	"math"
	"sort"

	"github.com/jengzang/memories-backend-go/internal/cluster"
	"github.com/jengzang/memories-backend-go/internal/models"
	"github.com/jengzang/memories-backend-go/internal/spatial"
	"github.com/jengzang/memories-backend-go/internal/stats"
)

// Day classification labels
const (
	LabelCore       = "core"
	LabelPeripheral = "peripheral"
)

// Scoring constants. The synthetic multiplier and the 60-70% core split
// bounds are heuristics carried over unchanged; override them through
// ScoreConfig rather than editing the values.
const (
	DefaultDiversityWeight = 0.30
	DefaultFaceWeight      = 0.25
	DefaultPOIWeight       = 0.20
	DefaultQualityWeight   = 0.25

	// DefaultDiversityNorm is the staypoint+spot count that saturates the
	// diversity component
	DefaultDiversityNorm = 6.0

	// DefaultQualityScore substitutes for days without quality data
	DefaultQualityScore = 0.5

	// DefaultSyntheticFactor discounts days inserted to bridge a gap
	DefaultSyntheticFactor = 0.6

	// Core/peripheral split bounds and target share of a run's days
	DefaultCoreMinShare    = 0.6
	DefaultCoreMaxShare    = 0.7
	DefaultCoreTargetShare = 0.65

	// POI density contribution: capped at DefaultPOIDensityCap after
	// scaling by DefaultPOIDensityFactor
	DefaultPOIDensityCap    = 0.25
	DefaultPOIDensityFactor = 0.5

	// spotCellPrecision is the geohash precision for counting distinct
	// visited spots (~600 m cells)
	spotCellPrecision = 6
)

// DayScore is one classified day within a detected trip
type DayScore struct {
	Day             string  `json:"day"`
	Score           float64 `json:"score"`
	Label           string  `json:"label"`
	DurationSeconds int64   `json:"durationSeconds"`
	Synthetic       bool    `json:"synthetic,omitempty"`
}

// ScoreConfig overrides the scoring constants. Zero fields fall back to
// the defaults.
type ScoreConfig struct {
	DiversityWeight float64
	FaceWeight      float64
	POIWeight       float64
	QualityWeight   float64
	DiversityNorm   float64
	DefaultQuality  float64
	SyntheticFactor float64
	CoreMinShare    float64
	CoreMaxShare    float64
	CoreTargetShare float64
}

// ScoreCalculator computes per-day core scores and turns a classified run
// into a cluster draft
type ScoreCalculator struct {
	cfg ScoreConfig
}

// NewScoreCalculator creates a score calculator
func NewScoreCalculator(cfg ScoreConfig) (*ScoreCalculator, error) {
	if cfg.DiversityWeight == 0 && cfg.FaceWeight == 0 && cfg.POIWeight == 0 && cfg.QualityWeight == 0 {
		cfg.DiversityWeight = DefaultDiversityWeight
		cfg.FaceWeight = DefaultFaceWeight
		cfg.POIWeight = DefaultPOIWeight
		cfg.QualityWeight = DefaultQualityWeight
	}
	if cfg.DiversityWeight < 0 || cfg.FaceWeight < 0 || cfg.POIWeight < 0 || cfg.QualityWeight < 0 {
		return nil, fmt.Errorf("score calculator: weights must not be negative")
	}
	if cfg.DiversityNorm == 0 {
		cfg.DiversityNorm = DefaultDiversityNorm
	}
	if cfg.DefaultQuality == 0 {
		cfg.DefaultQuality = DefaultQualityScore
	}
	if cfg.SyntheticFactor == 0 {
		cfg.SyntheticFactor = DefaultSyntheticFactor
	}
	if cfg.CoreMinShare == 0 {
		cfg.CoreMinShare = DefaultCoreMinShare
	}
	if cfg.CoreMaxShare == 0 {
		cfg.CoreMaxShare = DefaultCoreMaxShare
	}
	if cfg.CoreTargetShare == 0 {
		cfg.CoreTargetShare = DefaultCoreTargetShare
	}
	if cfg.CoreMaxShare < cfg.CoreMinShare {
		return nil, fmt.Errorf("score calculator: coreMaxShare %v is below coreMinShare %v", cfg.CoreMaxShare, cfg.CoreMinShare)
	}
	return &ScoreCalculator{cfg: cfg}, nil
}

// ScoreDay computes the core score of one day, in [0,1], rounded to three
// decimals
func (c *ScoreCalculator) ScoreDay(d *DaySummary) float64 {
	diversity := math.Min(1, float64(len(d.Staypoints)+spotCount(d))/c.cfg.DiversityNorm)

	faceShare := c.faceShare(d)
	poiBoost := c.poiBoost(d)
	quality := c.qualityMedian(d)

	score := c.cfg.DiversityWeight*diversity +
		c.cfg.FaceWeight*faceShare +
		c.cfg.POIWeight*poiBoost +
		c.cfg.QualityWeight*quality

	if d.Synthetic {
		score *= c.cfg.SyntheticFactor
	}

	return math.Round(score*1000) / 1000
}

// Classify scores every day of a run and labels the top-scoring 60-70%
// as core, the remainder as peripheral. Days are returned in run order.
func (c *ScoreCalculator) Classify(run []string, days map[string]*DaySummary) []DayScore {
	if len(run) == 0 {
		return nil
	}

	scored := make([]DayScore, 0, len(run))
	for _, key := range run {
		d, ok := days[key]
		if !ok {
			// Bridged hole in the run: a synthetic day with no members
			d = &DaySummary{Day: key, Synthetic: true}
		}
		scored = append(scored, DayScore{
			Day:             key,
			Score:           c.ScoreDay(d),
			DurationSeconds: int64(d.Duration().Seconds()),
			Synthetic:       d.Synthetic,
		})
	}

	// Rank by score descending, earlier day first on ties
	ranked := make([]int, len(scored))
	for i := range ranked {
		ranked[i] = i
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return scored[ranked[i]].Score > scored[ranked[j]].Score
	})

	total := len(scored)
	minCore := int(math.Ceil(c.cfg.CoreMinShare * float64(total)))
	maxCore := int(math.Floor(c.cfg.CoreMaxShare * float64(total)))
	if maxCore < 1 {
		maxCore = 1
	}
	if maxCore < minCore {
		maxCore = minCore
	}
	if maxCore > total {
		maxCore = total
	}

	target := int(math.Round(c.cfg.CoreTargetShare * float64(total)))
	if target < minCore {
		target = minCore
	}
	if target > maxCore {
		target = maxCore
	}

	for pos, idx := range ranked {
		if pos < target {
			scored[idx].Label = LabelCore
		} else {
			scored[idx].Label = LabelPeripheral
		}
	}

	return scored
}

// BuildDraft turns a classified run into a cluster draft for the given
// algorithm. Returns nil when the run contributes no members.
func (c *ScoreCalculator) BuildDraft(algorithm string, run []string, scored []DayScore, days map[string]*DaySummary, home *HomeDescriptor) *cluster.Draft {
	var members []*models.MediaItem
	var maxDistance float64
	countries := make(map[string]bool)

	for _, key := range run {
		d, ok := days[key]
		if !ok {
			continue
		}
		members = append(members, d.Members...)
		if d.MaxDistanceKm > maxDistance {
			maxDistance = d.MaxDistanceKm
		}
		for cc := range d.Countries {
			countries[cc] = true
		}
	}
	if len(members) == 0 {
		return nil
	}

	draft := cluster.NewDraft(algorithm, members)
	draft.SetParam(cluster.ParamNights, len(run)-1)
	draft.SetParam(cluster.ParamDayCount, len(run))
	draft.SetParam(cluster.ParamDistanceKm, math.Round(maxDistance*10)/10)

	var core, peripheral []string
	for _, ds := range scored {
		if ds.Label == LabelCore {
			core = append(core, ds.Day)
		} else {
			peripheral = append(peripheral, ds.Day)
		}
	}
	draft.SetParam(cluster.ParamCoreDays, core)
	draft.SetParam(cluster.ParamPeripheralDays, peripheral)
	draft.SetParam(cluster.ParamDayScores, scored)

	if len(countries) > 0 {
		list := make([]string, 0, len(countries))
		for cc := range countries {
			list = append(list, cc)
		}
		sort.Strings(list)
		draft.SetParam(cluster.ParamCountries, list)
	}

	return draft
}

func (c *ScoreCalculator) faceShare(d *DaySummary) float64 {
	if d.PhotoCount == 0 {
		return 0
	}
	faces := 0
	withPeople := 0
	for _, m := range d.Members {
		if m.HasFaces {
			faces++
		}
		if len(m.PersonIDs) > 0 {
			withPeople++
		}
	}
	if faces > 0 {
		return float64(faces) / float64(d.PhotoCount)
	}
	// No face detections: fall back to the cohort presence ratio
	return float64(withPeople) / float64(d.PhotoCount)
}

func (c *ScoreCalculator) poiBoost(d *DaySummary) float64 {
	var density float64
	if d.PhotoCount > 0 {
		density = float64(d.POICount) / float64(d.PhotoCount)
	}
	return stats.Clamp01(d.TourismRatio + math.Min(DefaultPOIDensityCap, density*DefaultPOIDensityFactor))
}

func (c *ScoreCalculator) qualityMedian(d *DaySummary) float64 {
	var qualities []float64
	for _, m := range d.Members {
		if m.Quality != nil {
			qualities = append(qualities, *m.Quality)
		}
	}
	if len(qualities) == 0 {
		return c.cfg.DefaultQuality
	}
	return stats.Median(qualities)
}

// spotCount counts the distinct coarse location cells a day's GPS members
// touch
func spotCount(d *DaySummary) int {
	cells := make(map[string]bool)
	for _, m := range d.GPSMembers {
		cells[spatial.EncodeGeohash(*m.Latitude, *m.Longitude, spotCellPrecision)] = true
	}
	return len(cells)
}
