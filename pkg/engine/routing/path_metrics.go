package routing

import (
	"github.com/ahouansou/zemroute/pkg"
	da "github.com/ahouansou/zemroute/pkg/datastructure"
	"github.com/ahouansou/zemroute/pkg/util"
)

// PathMetrics carries the aggregate distance and time of one computed path,
// recomputed from the traversed edges independently of which field the search
// itself minimized.
type PathMetrics struct {
	distanceMeters float64
	timeSeconds    float64
}

func NewPathMetrics(distanceMeters, timeSeconds float64) PathMetrics {
	return PathMetrics{
		distanceMeters: distanceMeters,
		timeSeconds:    timeSeconds,
	}
}

func (pm PathMetrics) GetDistanceMeters() float64 {
	return pm.distanceMeters
}

func (pm PathMetrics) GetTimeSeconds() float64 {
	return pm.timeSeconds
}

// ComputePathMetrics walks every consecutive node pair of the path and
// accumulates length and travel time. for each hop the variant with the
// minimal travel time is the representative for BOTH fields, keeping distance
// and time internally consistent. a hop without edge data means the path did
// not come from this graph, which is fatal.
func (re *RoutingEngine) ComputePathMetrics(path []da.Index) (PathMetrics, error) {
	var metrics PathMetrics

	for i := 0; i+1 < len(path); i++ {
		u, v := path[i], path[i+1]

		variants, ok := re.graph.GetEdgeVariants(u, v)
		if !ok || len(variants) == 0 {
			return PathMetrics{}, util.WrapErrorf(ErrMissingEdge, util.ErrInternalServerError,
				"no edge data between consecutive path nodes %d and %d", u, v)
		}

		representative := variants[0]
		for _, variant := range variants[1:] {
			if variant.GetTravelTime() < representative.GetTravelTime() {
				representative = variant
			}
		}

		metrics.distanceMeters += representative.GetLength()
		if representative.GetTravelTime() < pkg.INF_WEIGHT {
			metrics.timeSeconds += representative.GetTravelTime()
		}
	}

	return metrics, nil
}
