package routing

import (
	"context"

	"github.com/ahouansou/zemroute/pkg/geo"
)

type Geocoder interface {
	ResolvePlace(ctx context.Context, name string) (geo.Coordinate, error)
}
