package usecases

import (
	"context"
	"errors"
	"strings"

	"github.com/ahouansou/zemroute/pkg"
	"github.com/ahouansou/zemroute/pkg/costfunction"
	"github.com/ahouansou/zemroute/pkg/datastructure"
	"github.com/ahouansou/zemroute/pkg/engine/routing"
	"github.com/ahouansou/zemroute/pkg/geo"
	"github.com/ahouansou/zemroute/pkg/guidance"
	"github.com/ahouansou/zemroute/pkg/narrative"
	"github.com/ahouansou/zemroute/pkg/util"
	"go.uber.org/zap"
)

var ERRPATHNOTFOUND = errors.New("no path found")

type RoutingService struct {
	log           *zap.Logger
	engine        RoutingEngine
	spatialIndex  SpatialIndex
	geocoder      Geocoder
	revGeocoder   ReverseGeocoder
	assembler     *narrative.Assembler
	avoidRadiusKm float64
}

func NewRoutingService(log *zap.Logger, engine RoutingEngine, spatialindex SpatialIndex,
	geocoder Geocoder, revGeocoder ReverseGeocoder, assembler *narrative.Assembler,
	avoidRadiusKm float64) *RoutingService {
	return &RoutingService{
		log:           log,
		engine:        engine,
		spatialIndex:  spatialindex,
		geocoder:      geocoder,
		revGeocoder:   revGeocoder,
		assembler:     assembler,
		avoidRadiusKm: avoidRadiusKm,
	}
}

// ComputeRoute answers a routing question end to end: geocode both endpoints,
// verify both fall inside the covered region, snap them to the road graph, run
// the bidirectional search (optionally around an avoided city), then turn the
// raw path into the narrated result.
func (rs *RoutingService) ComputeRoute(ctx context.Context, start, end, avoid, weightMode string,
	rainySeason bool) (narrative.RouteResult, error) {

	start = strings.TrimSpace(start)
	end = strings.TrimSpace(end)
	avoid = strings.TrimSpace(avoid)

	if strings.EqualFold(start, end) {
		return narrative.RouteResult{}, util.WrapErrorf(nil, util.ErrBadParamInput,
			"start and end refer to the same place: %q", start)
	}

	mode, ok := pkg.ParseWeightMode(weightMode)
	if !ok {
		return narrative.RouteResult{}, util.WrapErrorf(nil, util.ErrBadParamInput,
			"unknown weight mode %q", weightMode)
	}

	startCoord, err := rs.geocoder.ResolvePlace(ctx, start)
	if err != nil {
		return narrative.RouteResult{}, util.WrapErrorf(err, util.ErrBadParamInput,
			"start place %q could not be located", start)
	}
	endCoord, err := rs.geocoder.ResolvePlace(ctx, end)
	if err != nil {
		return narrative.RouteResult{}, util.WrapErrorf(err, util.ErrBadParamInput,
			"end place %q could not be located", end)
	}

	if err := rs.checkCoveredRegion(ctx, start, end, startCoord, endCoord); err != nil {
		return narrative.RouteResult{}, err
	}

	graph := rs.engine.GetGraph()
	sourceNode, ok := rs.spatialIndex.NearestNode(graph, startCoord.GetLat(), startCoord.GetLon())
	if !ok {
		return narrative.RouteResult{}, util.WrapErrorf(nil, util.ErrNotFound,
			"no road network node near %q", start)
	}
	targetNode, ok := rs.spatialIndex.NearestNode(graph, endCoord.GetLat(), endCoord.GetLon())
	if !ok {
		return narrative.RouteResult{}, util.WrapErrorf(nil, util.ErrNotFound,
			"no road network node near %q", end)
	}

	routingEngine := rs.engine.(*routing.RoutingEngine)

	exclusion := routing.NewExclusionSet()
	if avoid != "" {
		exclusionFilter := routing.NewExclusionFilter(routingEngine, rs.geocoder, rs.log)
		exclusion = exclusionFilter.BuildExclusionSet(ctx, avoid, rs.avoidRadiusKm)
	}

	search := routing.NewBidirectionalSearch(routingEngine, costfunction.ForWeightMode(mode), exclusion)
	result, err := search.ShortestPath(ctx, sourceNode, targetNode)
	if err != nil {
		return narrative.RouteResult{}, err
	}
	if !result.Found() {
		return narrative.RouteResult{}, util.WrapErrorf(ERRPATHNOTFOUND, util.ErrNoRoute,
			"no route from %q to %q", start, end)
	}

	path := result.GetPath()
	metrics, err := rs.engine.ComputePathMetrics(path)
	if err != nil {
		return narrative.RouteResult{}, err
	}

	pathCoords := make([]geo.Coordinate, 0, len(path))
	maxPathLat := -90.0
	for _, node := range path {
		lat, lon := graph.GetVertexCoordinates(node)
		pathCoords = append(pathCoords, geo.NewCoordinate(lat, lon))
		if lat > maxPathLat {
			maxPathLat = lat
		}
	}

	legs, residualKm := rs.segmentPath(ctx, graph, path, pathCoords, metrics)

	routeResult := rs.assembler.Assemble(ctx, narrative.AssembleParams{
		StartInput: start,
		EndInput:   end,
		AvoidInput: avoid,
		Rainy:      rainySeason,
		Legs:       legs,
		ResidualKm: residualKm,
		Metrics:    metrics,
		MaxPathLat: maxPathLat,
		Polyline:   geo.PolylineFromCoords(pathCoords),
	})
	return routeResult, nil
}

// checkCoveredRegion rejects endpoints whose reverse-geocoded country differs
// from the covered one. a reverse-geocoding failure here is fatal: without the
// country answer the request cannot be validated.
func (rs *RoutingService) checkCoveredRegion(ctx context.Context, start, end string,
	startCoord, endCoord geo.Coordinate) error {
	places, err := rs.revGeocoder.ReverseResolve(ctx, []geo.Coordinate{startCoord, endCoord})
	if err != nil || len(places) != 2 {
		return util.WrapErrorf(err, util.ErrBadParamInput,
			"could not verify the country of %q and %q", start, end)
	}
	if places[0].RegionCode != pkg.COVERED_REGION_CODE {
		return util.WrapErrorf(nil, util.ErrBadParamInput,
			"start place %q resolves outside the covered region (%s)", start, places[0].RegionCode)
	}
	if places[1].RegionCode != pkg.COVERED_REGION_CODE {
		return util.WrapErrorf(nil, util.ErrBadParamInput,
			"end place %q resolves outside the covered region (%s)", end, places[1].RegionCode)
	}
	return nil
}

// segmentPath reverse-geocodes every path node and reduces the answers to
// city legs. the batch lookup is best effort: when it fails the narrative
// degrades to a single destination leg carrying the whole distance.
func (rs *RoutingService) segmentPath(ctx context.Context, graph *datastructure.Graph,
	path []datastructure.Index, pathCoords []geo.Coordinate,
	metrics routing.PathMetrics) ([]datastructure.Leg, float64) {

	places, err := rs.revGeocoder.ReverseResolve(ctx, pathCoords)
	if err != nil {
		rs.log.Warn("path reverse geocoding degraded, skipping intermediate legs",
			zap.Error(err))
		return nil, metrics.GetDistanceMeters() / 1000.0
	}

	legBuilder := guidance.NewLegBuilder(graph, pkg.COVERED_REGION_CODE)
	finalCity := legBuilder.FinalDestinationName(places)
	legs, residualKm, err := legBuilder.BuildLegs(path, places, finalCity)
	if err != nil {
		rs.log.Warn("path segmentation degraded, skipping intermediate legs",
			zap.Error(err))
		return nil, metrics.GetDistanceMeters() / 1000.0
	}
	return legs, residualKm
}
