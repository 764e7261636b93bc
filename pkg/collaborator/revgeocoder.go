package collaborator

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/ahouansou/zemroute/pkg/concurrent"
	"github.com/ahouansou/zemroute/pkg/datastructure"
	"github.com/ahouansou/zemroute/pkg/geo"
	"github.com/tidwall/rtree"
	"go.uber.org/zap"
)

// Place is one entry of the offline reverse-geocoding table.
type Place struct {
	Name       string
	RegionCode string
	Lat        float64
	Lon        float64
}

func NewPlace(name, regionCode string, lat, lon float64) Place {
	return Place{Name: name, RegionCode: regionCode, Lat: lat, Lon: lon}
}

// OfflineReverseGeocoder snaps coordinates to the nearest entry of a local
// places table. it stays offline so reverse-resolving a whole path (which can
// be thousands of nodes) never touches the network.
type OfflineReverseGeocoder struct {
	places     []Place
	tr         *rtree.RTreeG[int]
	numWorkers int
	logger     *zap.Logger
}

func NewOfflineReverseGeocoder(places []Place, numWorkers int, logger *zap.Logger) *OfflineReverseGeocoder {
	var tr rtree.RTreeG[int]
	for i, p := range places {
		tr.Insert([2]float64{p.Lon, p.Lat}, [2]float64{p.Lon, p.Lat}, i)
	}

	if numWorkers < 1 {
		numWorkers = 1
	}

	return &OfflineReverseGeocoder{
		places:     places,
		tr:         &tr,
		numWorkers: numWorkers,
		logger:     logger,
	}
}

// LoadPlacesFile reads a places table: one place per line,
// "name<TAB>regionCode<TAB>lat<TAB>lon". lines starting with '#' are skipped.
func LoadPlacesFile(filename string) ([]Place, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	places := make([]Place, 0)
	sc := bufio.NewScanner(f)
	lineNo := 0
	for sc.Scan() {
		lineNo++
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		ff := strings.Split(line, "\t")
		if len(ff) != 4 {
			return nil, fmt.Errorf("invalid places line %d: %q", lineNo, line)
		}
		lat, err := strconv.ParseFloat(ff[2], 64)
		if err != nil {
			return nil, fmt.Errorf("invalid latitude on line %d: %w", lineNo, err)
		}
		lon, err := strconv.ParseFloat(ff[3], 64)
		if err != nil {
			return nil, fmt.Errorf("invalid longitude on line %d: %w", lineNo, err)
		}
		places = append(places, NewPlace(ff[0], ff[1], lat, lon))
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}

	return places, nil
}

type revGeocodeJob struct {
	idx   int
	coord geo.Coordinate
}

type revGeocodeResult struct {
	idx   int
	place datastructure.ResolvedPlace
}

// ReverseResolve resolves a batch of coordinates to places, same length and
// order as the input. lookups fan out over a worker pool.
func (rg *OfflineReverseGeocoder) ReverseResolve(ctx context.Context,
	coords []geo.Coordinate) ([]datastructure.ResolvedPlace, error) {
	if len(rg.places) == 0 {
		return nil, fmt.Errorf("reverse geocoder has no places loaded")
	}
	if len(coords) == 0 {
		return []datastructure.ResolvedPlace{}, nil
	}

	pool := concurrent.NewWorkerPool[revGeocodeJob, revGeocodeResult](rg.numWorkers, len(coords))
	pool.Start(func(job revGeocodeJob) revGeocodeResult {
		return revGeocodeResult{
			idx:   job.idx,
			place: rg.nearestPlace(job.coord),
		}
	})

	for i, coord := range coords {
		pool.AddJob(revGeocodeJob{idx: i, coord: coord})
	}
	pool.Close()
	pool.Wait()

	resolved := make([]datastructure.ResolvedPlace, len(coords))
	for res := range pool.CollectResults() {
		resolved[res.idx] = res.place
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	return resolved, nil
}

// nearestPlace finds the closest table entry by haversine distance, doubling
// the bounding box until candidates appear.
func (rg *OfflineReverseGeocoder) nearestPlace(coord geo.Coordinate) datastructure.ResolvedPlace {
	radius := 5.0
	for radius <= 20480.0 {
		lowerLat, lowerLon := geo.GetDestinationPoint(coord.GetLat(), coord.GetLon(), 225, radius)
		upperLat, upperLon := geo.GetDestinationPoint(coord.GetLat(), coord.GetLon(), 45, radius)

		bestIdx := -1
		bestDist := -1.0
		rg.tr.Search([2]float64{lowerLon, lowerLat}, [2]float64{upperLon, upperLat},
			func(min, max [2]float64, idx int) bool {
				p := rg.places[idx]
				dist := geo.CalculateHaversineDistance(coord.GetLat(), coord.GetLon(), p.Lat, p.Lon)
				if bestDist < 0 || dist < bestDist {
					bestIdx = idx
					bestDist = dist
				}
				return true
			})

		if bestIdx >= 0 {
			p := rg.places[bestIdx]
			return datastructure.NewResolvedPlace(p.Name, p.RegionCode)
		}
		radius *= 2
	}

	// unreachable with a non-empty table, the widest box spans the globe
	p := rg.places[0]
	return datastructure.NewResolvedPlace(p.Name, p.RegionCode)
}
