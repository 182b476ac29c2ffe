package cluster

import (
	"fmt"

	"github.com/jengzang/memories-backend-go/internal/models"
	"github.com/jengzang/memories-backend-go/internal/spatial"
)

// GeoDensityClusterer groups GPS-tagged items by spatial density using
// DBSCAN semantics: a cluster is grown from any item with at least
// minSamples neighbors (itself included) within radiusKm, and extended
// through transitively reachable neighbors. Items reachable from no
// cluster are reported as noise.
//
// Cluster discovery follows input order, so equal inputs always yield
// identical cluster membership. The region query is an O(n²) pairwise
// haversine scan; inputs are pre-filtered to a single calendar day before
// this runs.
type GeoDensityClusterer struct {
	radiusKm   float64
	minSamples int
}

// DensityResult holds the outcome of a density clustering pass
type DensityResult struct {
	Clusters [][]*models.MediaItem
	Noise    []*models.MediaItem
}

// NewGeoDensityClusterer creates a density clusterer.
// Returns an error for a non-positive radius or minSamples below 1.
func NewGeoDensityClusterer(radiusKm float64, minSamples int) (*GeoDensityClusterer, error) {
	if radiusKm <= 0 {
		return nil, fmt.Errorf("geo density clusterer: radius must be positive, got %v", radiusKm)
	}
	if minSamples < 1 {
		return nil, fmt.Errorf("geo density clusterer: minSamples must be at least 1, got %d", minSamples)
	}
	return &GeoDensityClusterer{radiusKm: radiusKm, minSamples: minSamples}, nil
}

// Cluster partitions GPS-tagged items into density clusters and noise.
// Items without GPS are ignored. Empty input yields no clusters and the
// input back as noise.
func (c *GeoDensityClusterer) Cluster(items []*models.MediaItem) DensityResult {
	var points []*models.MediaItem
	for _, m := range items {
		if m.HasGPS() {
			points = append(points, m)
		}
	}

	if len(points) == 0 {
		return DensityResult{Noise: points}
	}

	const (
		unclassified = 0
		noiseLabel   = -1
	)

	labels := make([]int, len(points)) // 0 unclassified, -1 noise, >0 cluster id
	clusterID := 0

	for i := range points {
		if labels[i] != unclassified {
			continue
		}

		neighbors := c.regionQuery(points, i)
		if len(neighbors) < c.minSamples {
			labels[i] = noiseLabel
			continue
		}

		clusterID++
		labels[i] = clusterID

		// Expand the cluster through the seed queue
		queue := append([]int(nil), neighbors...)
		for qi := 0; qi < len(queue); qi++ {
			j := queue[qi]
			if labels[j] == noiseLabel {
				labels[j] = clusterID // border point
			}
			if labels[j] != unclassified {
				continue
			}
			labels[j] = clusterID

			jNeighbors := c.regionQuery(points, j)
			if len(jNeighbors) >= c.minSamples {
				queue = append(queue, jNeighbors...)
			}
		}
	}

	result := DensityResult{}
	if clusterID > 0 {
		result.Clusters = make([][]*models.MediaItem, clusterID)
	}
	for i, m := range points {
		if labels[i] > 0 {
			result.Clusters[labels[i]-1] = append(result.Clusters[labels[i]-1], m)
		} else {
			result.Noise = append(result.Noise, m)
		}
	}

	return result
}

// regionQuery returns the indexes of all points within radiusKm of points[i],
// including i itself
func (c *GeoDensityClusterer) regionQuery(points []*models.MediaItem, i int) []int {
	var neighbors []int
	pi := points[i]
	for j, pj := range points {
		d := spatial.HaversineDistanceKm(*pi.Latitude, *pi.Longitude, *pj.Latitude, *pj.Longitude)
		if d <= c.radiusKm {
			neighbors = append(neighbors, j)
		}
	}
	return neighbors
}
