package spatial

// Point represents a 2D point with latitude and longitude
type Point struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// Centroid calculates the geographic centroid of a set of points
func Centroid(points []Point) Point {
	if len(points) == 0 {
		return Point{}
	}

	var sumLat, sumLon float64
	for _, p := range points {
		sumLat += p.Lat
		sumLon += p.Lon
	}

	return Point{
		Lat: sumLat / float64(len(points)),
		Lon: sumLon / float64(len(points)),
	}
}

// MaxDistanceFrom returns the largest great-circle distance in meters from
// the given center to any of the points
func MaxDistanceFrom(center Point, points []Point) float64 {
	var max float64
	for _, p := range points {
		d := HaversineDistance(center.Lat, center.Lon, p.Lat, p.Lon)
		if d > max {
			max = d
		}
	}
	return max
}

// WithinRadius reports whether every point lies within radiusMeters of the
// centroid of the point set
func WithinRadius(points []Point, radiusMeters float64) bool {
	if len(points) == 0 {
		return true
	}
	center := Centroid(points)
	return MaxDistanceFrom(center, points) <= radiusMeters
}
