package strategy

import (
	"time"

	"github.com/jengzang/memories-backend-go/internal/cluster"
	"github.com/jengzang/memories-backend-go/internal/models"
	"github.com/jengzang/memories-backend-go/internal/spatial"
)

// Burst tuning
const (
	burstMaxGap     = 90 * time.Second
	burstMinItems   = 5
	burstMoveMeters = 200.0
	// burstRadiusMeters bounds the spatial spread of an accepted burst
	burstRadiusMeters = 150.0
)

// BurstStrategy finds rapid shooting sessions: many photos within short
// gaps at one spot. A large movement between consecutive shots splits the
// session even when the time gap is small.
type BurstStrategy struct {
	sessions *cluster.SessionBuilder
}

// NewBurstStrategy creates the burst strategy
func NewBurstStrategy() (cluster.Strategy, error) {
	sessions, err := cluster.NewSessionBuilder("photo_bursts", cluster.SessionConfig{
		MaxGap:   burstMaxGap,
		MinItems: burstMinItems,
		SplitBefore: func(prev, next *models.MediaItem) bool {
			if !prev.HasGPS() || !next.HasGPS() {
				return false
			}
			d := spatial.HaversineDistance(*prev.Latitude, *prev.Longitude, *next.Latitude, *next.Longitude)
			return d > burstMoveMeters
		},
		Valid: func(members []*models.MediaItem) bool {
			var points []spatial.Point
			for _, m := range members {
				if m.HasGPS() {
					points = append(points, spatial.Point{Lat: *m.Latitude, Lon: *m.Longitude})
				}
			}
			return spatial.WithinRadius(points, burstRadiusMeters)
		},
	})
	if err != nil {
		return nil, err
	}
	return &BurstStrategy{sessions: sessions}, nil
}

// Name returns the algorithm identifier
func (s *BurstStrategy) Name() string {
	return "photo_bursts"
}

// Cluster emits one draft per qualifying burst
func (s *BurstStrategy) Cluster(items []*models.MediaItem) ([]*cluster.Draft, error) {
	return s.sessions.Build(items), nil
}

// Register the strategy
func init() {
	cluster.Register("photo_bursts", NewBurstStrategy)
}
