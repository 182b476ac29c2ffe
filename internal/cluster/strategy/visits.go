package strategy

import (
	"time"

	"github.com/jengzang/memories-backend-go/internal/cluster"
	"github.com/jengzang/memories-backend-go/internal/models"
)

// Visit tuning
const (
	visitRadiusKm   = 0.5
	visitMinSamples = 4
	visitWindow     = 2 * time.Hour
	visitMinMembers = 4
)

// VisitStrategy groups photos into place visits: spatially dense groups
// split by time window, robust to partial GPS coverage
type VisitStrategy struct {
	bucketer *cluster.GeoTemporalBucketer
}

// NewVisitStrategy creates the place-visit strategy
func NewVisitStrategy() (cluster.Strategy, error) {
	bucketer, err := cluster.NewGeoTemporalBucketer(visitRadiusKm, visitMinSamples, visitWindow, visitMinMembers)
	if err != nil {
		return nil, err
	}
	return &VisitStrategy{bucketer: bucketer}, nil
}

// Name returns the algorithm identifier
func (s *VisitStrategy) Name() string {
	return "place_visits"
}

// Cluster emits one draft per visit bucket
func (s *VisitStrategy) Cluster(items []*models.MediaItem) ([]*cluster.Draft, error) {
	var drafts []*cluster.Draft
	for _, bucket := range s.bucketer.Buckets(items) {
		drafts = append(drafts, cluster.NewDraft("place_visits", bucket))
	}
	return drafts, nil
}

// Register the strategy
func init() {
	cluster.Register("place_visits", NewVisitStrategy)
}
