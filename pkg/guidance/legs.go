package guidance

import (
	"github.com/ahouansou/zemroute/pkg/datastructure"
	"github.com/ahouansou/zemroute/pkg/util"
)

// LegBuilder collapses a raw node path into a coarse city-granularity
// narrative. it deliberately trades precision for readability: one leg per
// place-name change, not a turn-by-turn itinerary.
type LegBuilder struct {
	graph         *datastructure.Graph
	coveredRegion string
}

func NewLegBuilder(graph *datastructure.Graph, coveredRegion string) *LegBuilder {
	return &LegBuilder{
		graph:         graph,
		coveredRegion: coveredRegion,
	}
}

// FinalDestinationName picks the last in-region resolved name along the path,
// falling back to the last resolved name when the whole tail is out of region.
func (lb *LegBuilder) FinalDestinationName(places []datastructure.ResolvedPlace) string {
	for i := len(places) - 1; i >= 0; i-- {
		if places[i].RegionCode == lb.coveredRegion {
			return places[i].Name
		}
	}
	if len(places) == 0 {
		return ""
	}
	return places[len(places)-1].Name
}

// BuildLegs walks the path and emits one intermediate leg per place-name
// change, accumulating the minimum variant length of every hop in between.
//
// nodes resolved outside the covered region never open a new leg: a road
// briefly crossing the border must not split the narrative. a name change
// onto the final destination is folded into the destination leg instead of
// producing an intermediate one.
//
// the returned residual is the distance (km) accumulated after the last
// emitted leg; the caller appends the destination leg with it.
func (lb *LegBuilder) BuildLegs(path []datastructure.Index, places []datastructure.ResolvedPlace,
	finalCityName string) ([]datastructure.Leg, float64, error) {
	if len(places) != len(path) {
		return nil, 0, util.WrapErrorf(nil, util.ErrInternalServerError,
			"resolved places count %d does not match path length %d", len(places), len(path))
	}

	legs := make([]datastructure.Leg, 0)
	if len(path) == 0 {
		return legs, 0, nil
	}

	segmentDistMeters := 0.0
	currentCityName := places[0].Name

	for i := 0; i+1 < len(path); i++ {
		u, v := path[i], path[i+1]

		variants, ok := lb.graph.GetEdgeVariants(u, v)
		if !ok || len(variants) == 0 {
			return nil, 0, util.WrapErrorf(nil, util.ErrInternalServerError,
				"no edge data between consecutive path nodes %d and %d", u, v)
		}

		edgeLen := variants[0].GetLength()
		for _, variant := range variants[1:] {
			if variant.GetLength() < edgeLen {
				edgeLen = variant.GetLength()
			}
		}
		segmentDistMeters += edgeLen

		next := places[i+1]
		if next.RegionCode != lb.coveredRegion {
			continue
		}

		if next.Name != currentCityName {
			if next.Name == finalCityName {
				currentCityName = next.Name
			} else {
				legs = append(legs, datastructure.NewLeg(next.Name, segmentDistMeters/1000.0))
				segmentDistMeters = 0.0
				currentCityName = next.Name
			}
		}
	}

	return legs, segmentDistMeters / 1000.0, nil
}
