package strategy

import (
	"github.com/jengzang/memories-backend-go/internal/cluster"
	"github.com/jengzang/memories-backend-go/internal/models"
)

// Monthly-highlight tuning
const (
	monthKeyLayout      = "2006-01"
	monthlyMinMembers   = 20
	monthlyMinShootDays = 3
)

// MonthlyStrategy buckets photos by calendar month and keeps months with
// enough material spread over enough shooting days
type MonthlyStrategy struct {
	grouper *cluster.KeyedGrouper
}

// NewMonthlyStrategy creates the monthly-highlight strategy
func NewMonthlyStrategy() (cluster.Strategy, error) {
	grouper, err := cluster.NewKeyedGrouper("monthly_highlights", cluster.KeyedConfig{
		Key: func(m *models.MediaItem) (string, bool) {
			t, ok := m.LocalTime()
			if !ok {
				return "", false
			}
			return t.Format(monthKeyLayout), true
		},
		Params: monthlyParams,
	})
	if err != nil {
		return nil, err
	}
	return &MonthlyStrategy{grouper: grouper}, nil
}

// Name returns the algorithm identifier
func (s *MonthlyStrategy) Name() string {
	return "monthly_highlights"
}

// Cluster emits one draft per qualifying month
func (s *MonthlyStrategy) Cluster(items []*models.MediaItem) ([]*cluster.Draft, error) {
	return s.grouper.Build(items), nil
}

// monthlyParams gates month buckets: enough members across enough
// distinct shooting days. Returning nil drops the bucket.
func monthlyParams(key string, members []*models.MediaItem) cluster.Params {
	if len(members) < monthlyMinMembers {
		return nil
	}
	days := make(map[string]bool)
	for _, m := range members {
		if dayKey, ok := cluster.DayKey(m); ok {
			days[dayKey] = true
		}
	}
	if len(days) < monthlyMinShootDays {
		return nil
	}
	return cluster.Params{
		cluster.ParamDayCount: len(days),
		"month":               key,
	}
}

// Register the strategy
func init() {
	cluster.Register("monthly_highlights", NewMonthlyStrategy)
}
