package strategy

import (
	"github.com/jengzang/memories-backend-go/internal/cluster"
	"github.com/jengzang/memories-backend-go/internal/models"
)

// Annual-event tuning
const (
	annualMinYears         = 2
	annualMaxNights        = 3
	annualMinItemsPerDay   = 5
	annualMinItemsTotal    = 10
	annualMinItemsCombined = 20
)

// AnnualStrategy finds the year's densest short run of photo days and
// merges the winners across years into a recurring-event draft
type AnnualStrategy struct {
	builder *cluster.OverYearsBuilder
}

// NewAnnualStrategy creates the annual-event strategy
func NewAnnualStrategy() (cluster.Strategy, error) {
	builder, err := cluster.NewOverYearsBuilder("annual_events", cluster.OverYearsConfig{
		DayRunConfig: cluster.DayRunConfig{
			MinNights:      0,
			MaxNights:      annualMaxNights,
			MinItemsPerDay: annualMinItemsPerDay,
			MinItemsTotal:  annualMinItemsTotal,
		},
		MinYears:         annualMinYears,
		MinItemsCombined: annualMinItemsCombined,
	})
	if err != nil {
		return nil, err
	}
	return &AnnualStrategy{builder: builder}, nil
}

// Name returns the algorithm identifier
func (s *AnnualStrategy) Name() string {
	return "annual_events"
}

// Cluster emits at most one combined draft
func (s *AnnualStrategy) Cluster(items []*models.MediaItem) ([]*cluster.Draft, error) {
	return s.builder.Build(items), nil
}

// Register the strategy
func init() {
	cluster.Register("annual_events", NewAnnualStrategy)
}
