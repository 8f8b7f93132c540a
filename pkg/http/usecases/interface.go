package usecases

import (
	"context"

	"github.com/lintang-b-s/navigatorx-mld/pkg/datastructure"
	"github.com/lintang-b-s/navigatorx-mld/pkg/engine/routing"
)

type RoutingEngine interface {
	GetGraph() *datastructure.Graph
	ShortestPath(ctx context.Context, phantoms datastructure.PhantomNodes) (*routing.RouteResult, error)
	AlternativeRoutes(ctx context.Context, phantoms datastructure.PhantomNodes, k int) (*routing.RouteResult, error)
}

type SpatialIndex interface {
	Snap(lat, lon, radius float64) (datastructure.PhantomNode, error)
}
