package collaborator

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/ahouansou/zemroute/pkg/geo"
	lru "github.com/hashicorp/golang-lru/v2"
	"go.uber.org/zap"
)

var ErrPlaceNotFound = errors.New("place could not be geocoded")

// NominatimGeocoder resolves free-text place names against a Nominatim-style
// search endpoint. responses are cached: requests for the same handful of
// cities dominate the traffic.
type NominatimGeocoder struct {
	baseURL      string
	regionSuffix string
	httpClient   *http.Client
	cache        *lru.Cache[string, geo.Coordinate]
	logger       *zap.Logger
}

func NewNominatimGeocoder(baseURL, regionSuffix string, timeout time.Duration,
	cacheSize int, logger *zap.Logger) (*NominatimGeocoder, error) {
	cache, err := lru.New[string, geo.Coordinate](cacheSize)
	if err != nil {
		return nil, err
	}

	return &NominatimGeocoder{
		baseURL:      baseURL,
		regionSuffix: regionSuffix,
		httpClient:   &http.Client{Timeout: timeout},
		cache:        cache,
		logger:       logger,
	}, nil
}

// ResolvePlace geocodes a place name. a miss is retried once with the
// covered-region suffix appended, so "Ganhi" also resolves as
// "Ganhi, Benin".
func (gc *NominatimGeocoder) ResolvePlace(ctx context.Context, name string) (geo.Coordinate, error) {
	if coord, ok := gc.cache.Get(name); ok {
		return coord, nil
	}

	coord, err := gc.resolveOnce(ctx, name)
	if errors.Is(err, ErrPlaceNotFound) && gc.regionSuffix != "" {
		coord, err = gc.resolveOnce(ctx, name+", "+gc.regionSuffix)
	}
	if err != nil {
		return geo.Coordinate{}, err
	}

	gc.cache.Add(name, coord)
	return coord, nil
}

type nominatimResult struct {
	Lat string `json:"lat"`
	Lon string `json:"lon"`
}

func (gc *NominatimGeocoder) resolveOnce(ctx context.Context, query string) (geo.Coordinate, error) {
	endpoint := fmt.Sprintf("%s/search?q=%s&format=json&limit=1",
		gc.baseURL, url.QueryEscape(query))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return geo.Coordinate{}, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := gc.httpClient.Do(req)
	if err != nil {
		return geo.Coordinate{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return geo.Coordinate{}, fmt.Errorf("geocoder returned status %d", resp.StatusCode)
	}

	var results []nominatimResult
	if err := json.NewDecoder(resp.Body).Decode(&results); err != nil {
		return geo.Coordinate{}, err
	}

	if len(results) == 0 {
		return geo.Coordinate{}, ErrPlaceNotFound
	}

	lat, err := strconv.ParseFloat(results[0].Lat, 64)
	if err != nil {
		return geo.Coordinate{}, err
	}
	lon, err := strconv.ParseFloat(results[0].Lon, 64)
	if err != nil {
		return geo.Coordinate{}, err
	}

	return geo.NewCoordinate(lat, lon), nil
}
