package spatial

// Point is a bare coordinate pair used by the measuring tool.
type Point struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// PathLengthMeters sums the great-circle segment lengths of a drawn
// path. Fewer than two points measure zero.
func PathLengthMeters(points []Point) float64 {
	total := 0.0
	for i := 1; i < len(points); i++ {
		total += HaversineMeters(points[i-1].Lat, points[i-1].Lon, points[i].Lat, points[i].Lon)
	}
	return total
}
