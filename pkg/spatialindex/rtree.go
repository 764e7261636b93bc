package spatialindex

import (
	"github.com/ahouansou/zemroute/pkg/datastructure"
	"github.com/ahouansou/zemroute/pkg/geo"
	"github.com/tidwall/rtree"
	"go.uber.org/zap"
)

// Rtree indexes graph vertices for nearest-node snapping of geocoded places.
type Rtree struct {
	tr *rtree.RTreeG[datastructure.Index]
}

func NewRtree() *Rtree {
	var tr rtree.RTreeG[datastructure.Index]
	return &Rtree{
		tr: &tr,
	}
}

// Build indexes every graph vertex as a point entry.
func (rt *Rtree) Build(graph *datastructure.Graph, log *zap.Logger) {
	log.Info("Building R-tree spatial index...")
	graph.ForVertices(func(id datastructure.Index, lat, lon float64) {
		rt.tr.Insert([2]float64{lon, lat}, [2]float64{lon, lat}, id)
	})
	log.Info("R-tree spatial index built.", zap.Int("vertices", graph.NumberOfVertices()))
}

// SearchWithinRadius returns all vertices inside a bounding box with the given
// radius (in km) around the query point.
func (rt *Rtree) SearchWithinRadius(qLat, qLon, radius float64) []datastructure.Index {
	lowerLat, lowerLon := geo.GetDestinationPoint(qLat, qLon, 225, radius)
	upperLat, upperLon := geo.GetDestinationPoint(qLat, qLon, 45, radius)

	results := make([]datastructure.Index, 0, 10)
	rt.tr.Search([2]float64{lowerLon, lowerLat}, [2]float64{upperLon, upperLat},
		func(min, max [2]float64, id datastructure.Index) bool {
			results = append(results, id)
			return true
		})
	return results
}

// NearestNode snaps a coordinate to the closest graph vertex by haversine
// distance. the bounding box doubles until a candidate appears.
func (rt *Rtree) NearestNode(graph *datastructure.Graph, qLat, qLon float64) (datastructure.Index, bool) {
	if graph.NumberOfVertices() == 0 {
		return datastructure.INVALID_VERTEX_ID, false
	}

	radius := 1.0
	for radius <= 4096.0 {
		candidates := rt.SearchWithinRadius(qLat, qLon, radius)
		if len(candidates) > 0 {
			best := candidates[0]
			bestDist := -1.0
			for _, id := range candidates {
				lat, lon := graph.GetVertexCoordinates(id)
				dist := geo.CalculateHaversineDistance(qLat, qLon, lat, lon)
				if bestDist < 0 || dist < bestDist {
					best = id
					bestDist = dist
				}
			}
			return best, true
		}
		radius *= 2
	}

	return datastructure.INVALID_VERTEX_ID, false
}
