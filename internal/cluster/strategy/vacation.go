package strategy

import (
	"github.com/jengzang/memories-backend-go/internal/cluster"
	"github.com/jengzang/memories-backend-go/internal/models"
	"github.com/jengzang/memories-backend-go/internal/vacation"
)

// VacationStrategy detects multi-day trips away from the user's inferred
// home and classifies each trip day as core or peripheral
type VacationStrategy struct {
	locator   *vacation.HomeLocator
	builder   *vacation.DaySummaryBuilder
	detector  *vacation.RunDetector
	assembler *vacation.Assembler
}

// NewVacationStrategy creates the vacation strategy with default tuning
func NewVacationStrategy() (cluster.Strategy, error) {
	locator, err := vacation.NewHomeLocator(vacation.HomeLocatorConfig{})
	if err != nil {
		return nil, err
	}
	builder, err := vacation.DefaultDaySummaryBuilder()
	if err != nil {
		return nil, err
	}
	detector, err := vacation.NewRunDetector(vacation.RunDetectorConfig{})
	if err != nil {
		return nil, err
	}
	scorer, err := vacation.NewScoreCalculator(vacation.ScoreConfig{})
	if err != nil {
		return nil, err
	}
	assembler, err := vacation.NewAssembler("vacation", scorer)
	if err != nil {
		return nil, err
	}
	return &VacationStrategy{
		locator:   locator,
		builder:   builder,
		detector:  detector,
		assembler: assembler,
	}, nil
}

// Name returns the algorithm identifier
func (s *VacationStrategy) Name() string {
	return "vacation"
}

// Cluster runs the full pipeline: home inference, day summaries, away-run
// detection, scoring. Undeterminable home or sparse data yields no drafts.
func (s *VacationStrategy) Cluster(items []*models.MediaItem) ([]*cluster.Draft, error) {
	home := s.locator.Locate(items)
	if home == nil {
		return nil, nil
	}

	days, err := s.builder.Build(items, home)
	if err != nil {
		return nil, err
	}
	if len(days) == 0 {
		return nil, nil
	}

	runs := s.detector.Detect(days, home)
	return s.assembler.Assemble(runs, days, home), nil
}

// Register the strategy
func init() {
	cluster.Register("vacation", NewVacationStrategy)
}
