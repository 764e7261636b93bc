package usecases

import (
	"context"

	"github.com/ahouansou/zemroute/pkg/datastructure"
	"github.com/ahouansou/zemroute/pkg/engine/routing"
	"github.com/ahouansou/zemroute/pkg/geo"
)

type RoutingEngine interface {
	GetGraph() *datastructure.Graph
	ComputePathMetrics(path []datastructure.Index) (routing.PathMetrics, error)
}

type SpatialIndex interface {
	NearestNode(graph *datastructure.Graph, lat, lon float64) (datastructure.Index, bool)
}

type Geocoder interface {
	ResolvePlace(ctx context.Context, name string) (geo.Coordinate, error)
}

type ReverseGeocoder interface {
	ReverseResolve(ctx context.Context, coords []geo.Coordinate) ([]datastructure.ResolvedPlace, error)
}
