package routing

import (
	"context"

	"github.com/ahouansou/zemroute/pkg"
	da "github.com/ahouansou/zemroute/pkg/datastructure"
	"github.com/ahouansou/zemroute/pkg/geo"
	"go.uber.org/zap"
)

// ExclusionFilter turns a place name plus a radius into the node ids falling
// inside the zone. exclusion is best effort: a place that cannot be resolved
// yields an empty set, never an error.
type ExclusionFilter struct {
	engine   *RoutingEngine
	geocoder Geocoder
	logger   *zap.Logger
}

func NewExclusionFilter(engine *RoutingEngine, geocoder Geocoder, logger *zap.Logger) *ExclusionFilter {
	return &ExclusionFilter{
		engine:   engine,
		geocoder: geocoder,
		logger:   logger,
	}
}

// BuildExclusionSet scans every graph vertex once, O(V) per request. the
// radius is converted to an angular threshold with the flat 1 degree ~= 111 km
// approximation; longitude compression at non-equatorial latitudes is not
// corrected. endpoints are not special-cased: if the start or end falls
// inside the zone the caller still attempts the search.
func (ef *ExclusionFilter) BuildExclusionSet(ctx context.Context, placeName string, radiusKm float64) ExclusionSet {
	exclusion := NewExclusionSet()

	center, err := ef.geocoder.ResolvePlace(ctx, placeName)
	if err != nil {
		ef.logger.Warn("avoid place could not be resolved, skipping exclusion",
			zap.String("place", placeName), zap.Error(err))
		return exclusion
	}

	limitSq := (radiusKm / pkg.KM_PER_DEGREE) * (radiusKm / pkg.KM_PER_DEGREE)

	ef.engine.graph.ForVertices(func(id da.Index, lat, lon float64) {
		if geo.SquaredDegreeDistance(lat, lon, center.GetLat(), center.GetLon()) < limitSq {
			exclusion.Add(id)
		}
	})

	ef.logger.Debug("exclusion zone built",
		zap.String("place", placeName),
		zap.Float64("radius_km", radiusKm),
		zap.Int("excluded_nodes", exclusion.Size()))

	return exclusion
}
