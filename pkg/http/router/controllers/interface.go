package controllers

import (
	"context"

	"github.com/ahouansou/zemroute/pkg/narrative"
)

type RoutingService interface {
	ComputeRoute(ctx context.Context, start, end, avoid, weightMode string,
		rainySeason bool) (narrative.RouteResult, error)
}
