package geo

import (
	polyline "github.com/twpayne/go-polyline"
)

// PolylineFromCoords encodes path coordinates with the google polyline
// algorithm (precision 5).
func PolylineFromCoords(coords []Coordinate) string {
	flat := make([][]float64, 0, len(coords))
	for _, c := range coords {
		flat = append(flat, []float64{c.GetLat(), c.GetLon()})
	}
	return string(polyline.EncodeCoords(flat))
}
