package cluster

import (
	"fmt"
	"sort"
	"time"

	"github.com/jengzang/memories-backend-go/internal/models"
)

// Run is an ordered sequence of literally adjacent calendar-day keys and
// the concatenated members of those days. Runs are transient: built,
// inspected and discarded within run detection.
type Run struct {
	Days    []string
	Members []*models.MediaItem
}

// Nights returns the number of nights the run spans
func (r Run) Nights() int {
	if len(r.Days) == 0 {
		return 0
	}
	return len(r.Days) - 1
}

// Start returns the run's first day key
func (r Run) Start() string {
	if len(r.Days) == 0 {
		return ""
	}
	return r.Days[0]
}

// End returns the run's last day key
func (r Run) End() string {
	if len(r.Days) == 0 {
		return ""
	}
	return r.Days[len(r.Days)-1]
}

// DayRunConfig parameterizes a DayRunBuilder
type DayRunConfig struct {
	// MinNights..MaxNights bound the accepted run length
	MinNights int
	MaxNights int

	// MinItemsPerDay drops days below this count before adjacency scanning.
	// Zero means 1.
	MinItemsPerDay int

	// MinItemsTotal rejects runs whose concatenated member count is smaller
	MinItemsTotal int

	// Include filters candidate items. Nil admits every timestamped item.
	Include func(*models.MediaItem) bool

	// ValidRun rejects a finished run (e.g. "run touches a weekend")
	ValidRun func(Run) bool

	// Params supplies extra draft parameters per run
	Params func(Run) Params
}

// DayRunBuilder groups media by local calendar day and accumulates runs of
// literally adjacent dates
type DayRunBuilder struct {
	algorithm string
	cfg       DayRunConfig
}

// NewDayRunBuilder creates a day-run builder
func NewDayRunBuilder(algorithm string, cfg DayRunConfig) (*DayRunBuilder, error) {
	if algorithm == "" {
		return nil, fmt.Errorf("day run builder: algorithm must not be empty")
	}
	if cfg.MinNights < 0 {
		return nil, fmt.Errorf("day run builder: minNights must not be negative, got %d", cfg.MinNights)
	}
	if cfg.MaxNights < cfg.MinNights {
		return nil, fmt.Errorf("day run builder: maxNights %d is below minNights %d", cfg.MaxNights, cfg.MinNights)
	}
	if cfg.MinItemsPerDay == 0 {
		cfg.MinItemsPerDay = 1
	}
	if cfg.MinItemsPerDay < 1 {
		return nil, fmt.Errorf("day run builder: minItemsPerDay must be at least 1, got %d", cfg.MinItemsPerDay)
	}
	return &DayRunBuilder{algorithm: algorithm, cfg: cfg}, nil
}

// Runs returns every qualifying run: adjacent eligible days, nights within
// range, member total and validity check satisfied
func (b *DayRunBuilder) Runs(items []*models.MediaItem) []Run {
	var included []*models.MediaItem
	for _, m := range items {
		if !m.HasTime() {
			continue
		}
		if b.cfg.Include != nil && !b.cfg.Include(m) {
			continue
		}
		included = append(included, m)
	}

	days := GroupByDay(included)
	for key, members := range days {
		if len(members) < b.cfg.MinItemsPerDay {
			delete(days, key)
		}
	}
	if len(days) == 0 {
		return nil
	}

	keys := SortedDayKeys(days)

	var runs []Run
	var current Run

	flush := func() {
		if len(current.Days) > 0 && b.accept(current) {
			runs = append(runs, current)
		}
		current = Run{}
	}

	for _, key := range keys {
		if len(current.Days) > 0 && !adjacentDays(current.End(), key) {
			flush()
		}
		current.Days = append(current.Days, key)
		members := append([]*models.MediaItem(nil), days[key]...)
		SortByTime(members)
		current.Members = append(current.Members, members...)
	}
	flush()

	return runs
}

// Build returns one draft per qualifying run
func (b *DayRunBuilder) Build(items []*models.MediaItem) []*Draft {
	var drafts []*Draft
	for _, run := range b.Runs(items) {
		drafts = append(drafts, b.emit(run))
	}
	return drafts
}

func (b *DayRunBuilder) accept(run Run) bool {
	if run.Nights() < b.cfg.MinNights || run.Nights() > b.cfg.MaxNights {
		return false
	}
	if len(run.Members) < b.cfg.MinItemsTotal {
		return false
	}
	if b.cfg.ValidRun != nil && !b.cfg.ValidRun(run) {
		return false
	}
	return true
}

func (b *DayRunBuilder) emit(run Run) *Draft {
	d := NewDraft(b.algorithm, run.Members)
	d.SetParam(ParamNights, run.Nights())
	d.SetParam(ParamDayCount, len(run.Days))
	if b.cfg.Params != nil {
		for k, v := range b.cfg.Params(run) {
			d.SetParam(k, v)
		}
	}
	return d
}

// adjacentDays reports whether day key b is exactly one calendar day
// after day key a
func adjacentDays(a, b string) bool {
	ta, errA := time.Parse(DayKeyLayout, a)
	tb, errB := time.Parse(DayKeyLayout, b)
	if errA != nil || errB != nil {
		return false
	}
	return tb.Sub(ta) == 24*time.Hour
}

// OverYearsConfig parameterizes an OverYearsBuilder
type OverYearsConfig struct {
	DayRunConfig

	// MinYears is the least number of distinct years that must contribute
	// a best run before a combined draft is emitted
	MinYears int

	// MinItemsCombined rejects the combined draft when the merged member
	// count is smaller
	MinItemsCombined int
}

// OverYearsBuilder computes consecutive-day runs per year, keeps the best
// run of each year and merges the winners into a single draft once enough
// years contribute. "Best" means more members, then more distinct days,
// then the lexicographically earliest start date.
type OverYearsBuilder struct {
	algorithm string
	cfg       OverYearsConfig
	runs      *DayRunBuilder
}

// NewOverYearsBuilder creates an over-years builder
func NewOverYearsBuilder(algorithm string, cfg OverYearsConfig) (*OverYearsBuilder, error) {
	if cfg.MinYears < 1 {
		return nil, fmt.Errorf("over years builder: minYears must be at least 1, got %d", cfg.MinYears)
	}
	runs, err := NewDayRunBuilder(algorithm, cfg.DayRunConfig)
	if err != nil {
		return nil, err
	}
	return &OverYearsBuilder{algorithm: algorithm, cfg: cfg, runs: runs}, nil
}

// Build returns at most one draft combining the best run of every
// qualifying year
func (b *OverYearsBuilder) Build(items []*models.MediaItem) []*Draft {
	byYear := make(map[string][]*models.MediaItem)
	for _, m := range items {
		key, ok := DayKey(m)
		if !ok {
			continue
		}
		byYear[key[:4]] = append(byYear[key[:4]], m)
	}

	years := make([]string, 0, len(byYear))
	for y := range byYear {
		years = append(years, y)
	}
	sort.Strings(years)

	var members []*models.MediaItem
	var contributing []string
	for _, year := range years {
		runs := b.runs.Runs(byYear[year])
		if len(runs) == 0 {
			continue
		}
		best := runs[0]
		for _, run := range runs[1:] {
			if betterRun(run, best) {
				best = run
			}
		}
		members = append(members, best.Members...)
		contributing = append(contributing, year)
	}

	if len(contributing) < b.cfg.MinYears || len(members) < b.cfg.MinItemsCombined {
		return nil
	}

	d := NewDraft(b.algorithm, members)
	d.SetParam(ParamYears, contributing)
	return []*Draft{d}
}

// betterRun reports whether a beats b under the over-years comparator
func betterRun(a, b Run) bool {
	if len(a.Members) != len(b.Members) {
		return len(a.Members) > len(b.Members)
	}
	if len(a.Days) != len(b.Days) {
		return len(a.Days) > len(b.Days)
	}
	return a.Start() < b.Start()
}
