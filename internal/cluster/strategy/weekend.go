package strategy

import (
	"time"

	"github.com/jengzang/memories-backend-go/internal/cluster"
	"github.com/jengzang/memories-backend-go/internal/models"
)

// Weekend-trip tuning
const (
	weekendMinNights      = 1
	weekendMaxNights      = 3
	weekendMinItemsPerDay = 3
	weekendMinItemsTotal  = 10
)

// WeekendStrategy finds short consecutive-day runs that touch a weekend
type WeekendStrategy struct {
	runs *cluster.DayRunBuilder
}

// NewWeekendStrategy creates the weekend-trip strategy
func NewWeekendStrategy() (cluster.Strategy, error) {
	runs, err := cluster.NewDayRunBuilder("weekend_trips", cluster.DayRunConfig{
		MinNights:      weekendMinNights,
		MaxNights:      weekendMaxNights,
		MinItemsPerDay: weekendMinItemsPerDay,
		MinItemsTotal:  weekendMinItemsTotal,
		ValidRun:       runTouchesWeekend,
	})
	if err != nil {
		return nil, err
	}
	return &WeekendStrategy{runs: runs}, nil
}

// Name returns the algorithm identifier
func (s *WeekendStrategy) Name() string {
	return "weekend_trips"
}

// Cluster emits one draft per qualifying run
func (s *WeekendStrategy) Cluster(items []*models.MediaItem) ([]*cluster.Draft, error) {
	return s.runs.Build(items), nil
}

// runTouchesWeekend reports whether any day of the run falls on a
// Saturday or Sunday
func runTouchesWeekend(run cluster.Run) bool {
	for _, key := range run.Days {
		t, err := time.Parse(cluster.DayKeyLayout, key)
		if err != nil {
			continue
		}
		if t.Weekday() == time.Saturday || t.Weekday() == time.Sunday {
			return true
		}
	}
	return false
}

// Register the strategy
func init() {
	cluster.Register("weekend_trips", NewWeekendStrategy)
}
