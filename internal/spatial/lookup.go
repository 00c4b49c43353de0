package spatial

import (
	"math"

	"dronemap/internal/model"
)

// Metric names a distance strategy for the marker-click lookup. The
// original click matching differed between variants without a stated
// reason; the resolver standardizes on planar euclidean distance in
// degree space and keeps the others selectable.
type Metric string

const (
	MetricEuclidean Metric = "euclidean"
	MetricManhattan Metric = "manhattan"
	MetricHaversine Metric = "haversine"
)

// DistanceFunc computes the distance between two coordinates. Units
// depend on the metric: coordinate degrees for euclidean/manhattan,
// meters for haversine.
type DistanceFunc func(lat1, lon1, lat2, lon2 float64) float64

// Euclidean is the planar distance in coordinate-degree space.
func Euclidean(lat1, lon1, lat2, lon2 float64) float64 {
	dlat := lat1 - lat2
	dlon := lon1 - lon2
	return math.Sqrt(dlat*dlat + dlon*dlon)
}

// Manhattan is the sum of absolute coordinate differences.
func Manhattan(lat1, lon1, lat2, lon2 float64) float64 {
	return math.Abs(lat1-lat2) + math.Abs(lon1-lon2)
}

const earthRadiusMeters = 6371000

// HaversineMeters is the great-circle distance in meters.
func HaversineMeters(lat1, lon1, lat2, lon2 float64) float64 {
	rlat1 := lat1 * math.Pi / 180
	rlat2 := lat2 * math.Pi / 180
	dlat := (lat2 - lat1) * math.Pi / 180
	dlon := (lon2 - lon1) * math.Pi / 180

	a := math.Sin(dlat/2)*math.Sin(dlat/2) +
		math.Cos(rlat1)*math.Cos(rlat2)*math.Sin(dlon/2)*math.Sin(dlon/2)
	return 2 * earthRadiusMeters * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
}

// Resolver maps a clicked map coordinate to the nearest media record
// within tolerance.
type Resolver struct {
	distance  DistanceFunc
	tolerance float64
}

// NewResolver builds a resolver for the named metric; unknown names
// fall back to euclidean. Tolerance shares the metric's unit.
func NewResolver(metric Metric, tolerance float64) *Resolver {
	var fn DistanceFunc
	switch metric {
	case MetricManhattan:
		fn = Manhattan
	case MetricHaversine:
		fn = HaversineMeters
	default:
		fn = Euclidean
	}
	return &Resolver{distance: fn, tolerance: tolerance}
}

// Resolve returns the index of the candidate nearest to (lat, lon)
// within tolerance. A strictly smaller distance wins; exact ties keep
// the earlier candidate, so repeated calls are deterministic. The
// second return value is false when no candidate is in range — a normal
// outcome (the user clicked empty map), not an error.
func (r *Resolver) Resolve(lat, lon float64, candidates []model.MediaRecord) (int, bool) {
	best := -1
	bestDist := 0.0
	for i := range candidates {
		d := r.distance(lat, lon, candidates[i].Latitude, candidates[i].Longitude)
		if d > r.tolerance {
			continue
		}
		if best < 0 || d < bestDist {
			best = i
			bestDist = d
		}
	}
	if best < 0 {
		return 0, false
	}
	return best, true
}
