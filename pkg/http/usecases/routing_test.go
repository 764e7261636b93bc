package usecases

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/ahouansou/zemroute/pkg/collaborator"
	da "github.com/ahouansou/zemroute/pkg/datastructure"
	"github.com/ahouansou/zemroute/pkg/engine"
	"github.com/ahouansou/zemroute/pkg/geo"
	"github.com/ahouansou/zemroute/pkg/narrative"
	"github.com/ahouansou/zemroute/pkg/spatialindex"
	"github.com/ahouansou/zemroute/pkg/util"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeGeocoder struct {
	known map[string]geo.Coordinate
}

func (fg *fakeGeocoder) ResolvePlace(_ context.Context, name string) (geo.Coordinate, error) {
	if coord, ok := fg.known[name]; ok {
		return coord, nil
	}
	return geo.Coordinate{}, fmt.Errorf("place %q: %w", name, collaborator.ErrPlaceNotFound)
}

type fakeRevGeocoder struct {
	places            []collaborator.Place
	failOnLongBatches bool
}

func (fr *fakeRevGeocoder) ReverseResolve(_ context.Context,
	coords []geo.Coordinate) ([]da.ResolvedPlace, error) {
	if fr.failOnLongBatches && len(coords) > 2 {
		return nil, errors.New("reverse geocoder unavailable")
	}

	resolved := make([]da.ResolvedPlace, 0, len(coords))
	for _, c := range coords {
		best := fr.places[0]
		bestDist := geo.CalculateHaversineDistance(c.GetLat(), c.GetLon(), best.Lat, best.Lon)
		for _, p := range fr.places[1:] {
			if d := geo.CalculateHaversineDistance(c.GetLat(), c.GetLon(), p.Lat, p.Lon); d < bestDist {
				best = p
				bestDist = d
			}
		}
		resolved = append(resolved, da.NewResolvedPlace(best.Name, best.RegionCode))
	}
	return resolved, nil
}

type passthroughTranslator struct{}

func (passthroughTranslator) Translate(_ context.Context, text string) (string, error) {
	return text, nil
}

// the test network: the southern axis Cotonou-Bohicon-Dassa-Parakou with a
// western alternative through Abomey, plus an unreachable node near Karimama.
func newTestRoutingService(t *testing.T, failPathGeocoding bool) *RoutingService {
	t.Helper()

	g := da.NewGraph()
	cotonou := g.AddVertex(6.3667, 2.4333)
	bohicon := g.AddVertex(7.1782, 2.0667)
	abomey := g.AddVertex(7.1826, 1.9912)
	parakou := g.AddVertex(9.3400, 2.6300)
	dassa := g.AddVertex(7.7500, 2.1800)
	g.AddVertex(12.0700, 3.1800) // karimama, no edges

	addRoad := func(u, v da.Index, km, hours float64) {
		variant := da.NewEdgeVariant(km*1000, hours*3600)
		g.AddEdge(u, v, variant)
		g.AddEdge(v, u, variant)
	}
	addRoad(cotonou, bohicon, 120, 2.0)
	addRoad(bohicon, dassa, 85, 1.5)
	addRoad(dassa, parakou, 210, 3.4)
	addRoad(cotonou, abomey, 125, 2.2)
	addRoad(abomey, dassa, 90, 1.6)

	log := zap.NewNop()
	eng := engine.NewEngineDirect(g, log)

	rt := spatialindex.NewRtree()
	rt.Build(g, log)

	cities := []collaborator.Place{
		collaborator.NewPlace("Cotonou", "BJ", 6.3667, 2.4333),
		collaborator.NewPlace("Bohicon", "BJ", 7.1782, 2.0667),
		collaborator.NewPlace("Abomey", "BJ", 7.1826, 1.9912),
		collaborator.NewPlace("Parakou", "BJ", 9.3400, 2.6300),
		collaborator.NewPlace("Dassa", "BJ", 7.7500, 2.1800),
		collaborator.NewPlace("Karimama", "BJ", 12.0700, 3.1800),
		collaborator.NewPlace("Lagos", "NG", 6.4550, 3.3841),
	}

	geocoder := &fakeGeocoder{known: map[string]geo.Coordinate{
		"Cotonou":  geo.NewCoordinate(6.3667, 2.4333),
		"Bohicon":  geo.NewCoordinate(7.1782, 2.0667),
		"Parakou":  geo.NewCoordinate(9.3400, 2.6300),
		"Karimama": geo.NewCoordinate(12.0700, 3.1800),
		"Lagos":    geo.NewCoordinate(6.4550, 3.3841),
	}}
	revGeocoder := &fakeRevGeocoder{places: cities, failOnLongBatches: failPathGeocoding}
	assembler := narrative.NewAssembler(passthroughTranslator{}, log)

	return NewRoutingService(log, eng.GetRoutingEngine(), rt, geocoder, revGeocoder, assembler, 3.0)
}

func errorCode(t *testing.T, err error) error {
	t.Helper()
	var domainErr *util.Error
	require.ErrorAs(t, err, &domainErr)
	return domainErr.Code()
}

func TestComputeRoute(t *testing.T) {
	rs := newTestRoutingService(t, false)

	result, err := rs.ComputeRoute(context.Background(), "Cotonou", "Parakou", "", "", false)
	require.NoError(t, err)

	assert.Equal(t, "Kutɔnu (Cotonou)", result.Departure)
	assert.Equal(t, []string{"Bɔxikɔn (Bohicon) - 120.0km", "Dassa - 85.0km"}, result.Steps)
	assert.Equal(t, "Parakou - 210.0km", result.Destination)
	assert.Empty(t, result.AvoidCity)
	assert.Equal(t, "Saison Sèche", result.Season)
	assert.InDelta(t, 415.0, result.DistanceKm, 1e-9)
	assert.InDelta(t, 6.9*3600, result.DurationSeconds, 1e-6)
	assert.NotEmpty(t, result.Polyline)
	assert.Contains(t, result.Summary, "Total: 415km, ~6h54")
}

func TestComputeRouteAvoidCity(t *testing.T) {
	rs := newTestRoutingService(t, false)

	result, err := rs.ComputeRoute(context.Background(), "Cotonou", "Parakou", "Bohicon", "duration", false)
	require.NoError(t, err)

	assert.Equal(t, "Bɔxikɔn (Bohicon)", result.AvoidCity)
	assert.Equal(t, []string{"Agbomɛ (Abomey) - 125.0km", "Dassa - 90.0km"}, result.Steps)
	assert.InDelta(t, 425.0, result.DistanceKm, 1e-9)
}

func TestComputeRouteIdenticalEndpoints(t *testing.T) {
	rs := newTestRoutingService(t, false)

	_, err := rs.ComputeRoute(context.Background(), "Cotonou", " cotonou ", "", "", false)
	require.Error(t, err)
	assert.Equal(t, util.ErrBadParamInput, errorCode(t, err))
}

func TestComputeRouteUnknownWeightMode(t *testing.T) {
	rs := newTestRoutingService(t, false)

	_, err := rs.ComputeRoute(context.Background(), "Cotonou", "Parakou", "", "scenic", false)
	require.Error(t, err)
	assert.Equal(t, util.ErrBadParamInput, errorCode(t, err))
}

func TestComputeRouteUnknownPlace(t *testing.T) {
	rs := newTestRoutingService(t, false)

	_, err := rs.ComputeRoute(context.Background(), "Atlantis", "Parakou", "", "", false)
	require.Error(t, err)
	assert.Equal(t, util.ErrBadParamInput, errorCode(t, err))
}

func TestComputeRouteOutsideCoveredRegion(t *testing.T) {
	rs := newTestRoutingService(t, false)

	_, err := rs.ComputeRoute(context.Background(), "Cotonou", "Lagos", "", "", false)
	require.Error(t, err)
	assert.Equal(t, util.ErrBadParamInput, errorCode(t, err))
}

func TestComputeRouteNoRoute(t *testing.T) {
	rs := newTestRoutingService(t, false)

	_, err := rs.ComputeRoute(context.Background(), "Cotonou", "Karimama", "", "", false)
	require.Error(t, err)
	assert.Equal(t, util.ErrNoRoute, errorCode(t, err))
}

func TestComputeRouteUnresolvableAvoidIsIgnored(t *testing.T) {
	rs := newTestRoutingService(t, false)

	result, err := rs.ComputeRoute(context.Background(), "Cotonou", "Parakou", "Eldorado", "", false)
	require.NoError(t, err)

	// the avoid place cannot be geocoded, the route goes through bohicon anyway
	assert.Equal(t, []string{"Bɔxikɔn (Bohicon) - 120.0km", "Dassa - 85.0km"}, result.Steps)
	assert.Equal(t, "Eldorado", result.AvoidCity)
}

func TestComputeRouteSegmentationDegrades(t *testing.T) {
	rs := newTestRoutingService(t, true)

	result, err := rs.ComputeRoute(context.Background(), "Cotonou", "Parakou", "", "", false)
	require.NoError(t, err)

	// with the path batch failing, the whole distance folds into the
	// destination leg and intermediate steps disappear
	assert.Empty(t, result.Steps)
	assert.Equal(t, "Parakou - 415.0km", result.Destination)
	assert.InDelta(t, 415.0, result.DistanceKm, 1e-9)
}
