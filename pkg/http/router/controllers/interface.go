package controllers

import (
	"context"

	"github.com/lintang-b-s/navigatorx-mld/pkg/http/usecases"
)

type RoutingService interface {
	ShortestPath(ctx context.Context, origLat, origLon, dstLat, dstLon float64) (usecases.RouteSummary, error)
	AlternativeRouteSearch(ctx context.Context, origLat, origLon, dstLat, dstLon float64, k int) ([]usecases.RouteSummary, error)
}
