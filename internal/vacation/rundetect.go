package vacation

import (
	"fmt"
	"time"

	"github.com/jengzang/memories-backend-go/internal/cluster"
)

// Run-detection defaults
const (
	DefaultMinTripNights = 2
	DefaultMaxTripNights = 45
	DefaultMaxBridgeDays = 1
)

// RunDetectorConfig configures away-run detection
type RunDetectorConfig struct {
	// MinNights..MaxNights bound the accepted trip length
	MinNights int
	MaxNights int

	// MaxBridgeDays allows runs to continue across this many consecutive
	// ineligible or missing days; bridged day keys are included in the run
	// and later scored as synthetic days
	MaxBridgeDays int
}

// RunDetector scans the day-summary map for multi-day runs of
// away-from-home days
type RunDetector struct {
	cfg RunDetectorConfig
}

// NewRunDetector creates a run detector. The zero config uses the
// defaults above.
func NewRunDetector(cfg RunDetectorConfig) (*RunDetector, error) {
	if cfg.MinNights == 0 && cfg.MaxNights == 0 {
		cfg.MinNights = DefaultMinTripNights
		cfg.MaxNights = DefaultMaxTripNights
		cfg.MaxBridgeDays = DefaultMaxBridgeDays
	}
	if cfg.MinNights < 0 {
		return nil, fmt.Errorf("run detector: minNights must not be negative, got %d", cfg.MinNights)
	}
	if cfg.MaxNights < cfg.MinNights {
		return nil, fmt.Errorf("run detector: maxNights %d is below minNights %d", cfg.MaxNights, cfg.MinNights)
	}
	if cfg.MaxBridgeDays < 0 {
		return nil, fmt.Errorf("run detector: maxBridgeDays must not be negative, got %d", cfg.MaxBridgeDays)
	}
	return &RunDetector{cfg: cfg}, nil
}

// Detect returns candidate runs as ordered day-key lists. Day keys that
// were bridged over have no entry in the day map; downstream scoring
// treats them as synthetic days.
func (r *RunDetector) Detect(days map[string]*DaySummary, home *HomeDescriptor) [][]string {
	if home == nil || len(days) == 0 {
		return nil
	}

	var eligible []string
	for _, key := range cluster.SortedDayKeys(days) {
		if days[key].AwayCandidate {
			eligible = append(eligible, key)
		}
	}
	if len(eligible) == 0 {
		return nil
	}

	var runs [][]string
	var current []string

	flush := func() {
		if len(current) > 0 && r.accept(current) {
			runs = append(runs, current)
		}
		current = nil
	}

	for _, key := range eligible {
		if len(current) == 0 {
			current = []string{key}
			continue
		}

		gap := dayGap(current[len(current)-1], key)
		switch {
		case gap == 1:
			current = append(current, key)
		case gap > 1 && gap <= r.cfg.MaxBridgeDays+1:
			// Bridge the hole; the inserted keys become synthetic days
			current = append(current, bridgeKeys(current[len(current)-1], gap-1)...)
			current = append(current, key)
		default:
			flush()
			current = []string{key}
		}
	}
	flush()

	return runs
}

func (r *RunDetector) accept(run []string) bool {
	nights := len(run) - 1
	return nights >= r.cfg.MinNights && nights <= r.cfg.MaxNights
}

// dayGap returns the number of calendar days from key a to key b
func dayGap(a, b string) int {
	ta, errA := time.Parse(cluster.DayKeyLayout, a)
	tb, errB := time.Parse(cluster.DayKeyLayout, b)
	if errA != nil || errB != nil {
		return -1
	}
	return int(tb.Sub(ta) / (24 * time.Hour))
}

// bridgeKeys returns n consecutive day keys following after
func bridgeKeys(after string, n int) []string {
	t, err := time.Parse(cluster.DayKeyLayout, after)
	if err != nil {
		return nil
	}
	keys := make([]string, 0, n)
	for i := 1; i <= n; i++ {
		keys = append(keys, t.AddDate(0, 0, i).Format(cluster.DayKeyLayout))
	}
	return keys
}
