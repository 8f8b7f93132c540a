package usecases

import (
	"context"
	"time"

	"github.com/lintang-b-s/navigatorx-mld/pkg/datastructure"
	"github.com/lintang-b-s/navigatorx-mld/pkg/util"
	"go.uber.org/zap"
)

type RoutingService struct {
	log          *zap.Logger
	engine       RoutingEngine
	spatialIndex SpatialIndex
	searchRadius float64 // km
	timeout      time.Duration
}

func NewRoutingService(log *zap.Logger, engine RoutingEngine, spatialindex SpatialIndex,
	searchRadius float64, timeout time.Duration) *RoutingService {
	return &RoutingService{
		log:          log,
		engine:       engine,
		spatialIndex: spatialindex,
		searchRadius: searchRadius,
		timeout:      timeout,
	}
}

func (rs *RoutingService) ShortestPath(ctx context.Context, origLat, origLon, dstLat, dstLon float64) (RouteSummary, error) {
	phantoms, err := rs.snapOrigDestToNearbyEdges(origLat, origLon, dstLat, dstLon)
	if err != nil {
		return RouteSummary{}, err
	}

	ctx, cancel := rs.withTimeout(ctx)
	defer cancel()

	result, err := rs.engine.ShortestPath(ctx, phantoms)
	if err != nil {
		return RouteSummary{}, rs.queryError(err, origLat, origLon, dstLat, dstLon)
	}
	return rs.summarize(phantoms, result.Primary()), nil
}

// AlternativeRouteSearch. primary route first, then up to k alternatives.
func (rs *RoutingService) AlternativeRouteSearch(ctx context.Context, origLat, origLon, dstLat, dstLon float64,
	k int) ([]RouteSummary, error) {
	phantoms, err := rs.snapOrigDestToNearbyEdges(origLat, origLon, dstLat, dstLon)
	if err != nil {
		return nil, err
	}

	ctx, cancel := rs.withTimeout(ctx)
	defer cancel()

	result, err := rs.engine.AlternativeRoutes(ctx, phantoms, k)
	if err != nil {
		return nil, rs.queryError(err, origLat, origLon, dstLat, dstLon)
	}

	routes := make([]RouteSummary, 0, len(result.Routes))
	for i := range result.Routes {
		routes = append(routes, rs.summarize(phantoms, &result.Routes[i]))
	}
	return routes, nil
}

func (rs *RoutingService) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if rs.timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, rs.timeout)
}

func (rs *RoutingService) queryError(err error, origLat, origLon, dstLat, dstLon float64) error {
	if util.ErrorCode(err) == util.ErrNotFound {
		return util.WrapErrorf(err, util.ErrNotFound, "no path found from %f,%f to %f,%f",
			origLat, origLon, dstLat, dstLon)
	}
	rs.log.Error("route query failed", zap.Error(err))
	return err
}

func (rs *RoutingService) snapOrigDestToNearbyEdges(origLat, origLon, dstLat,
	dstLon float64) (datastructure.PhantomNodes, error) {
	source, err := rs.spatialIndex.Snap(origLat, origLon, rs.searchRadius)
	if err != nil {
		return datastructure.PhantomNodes{}, err
	}
	target, err := rs.spatialIndex.Snap(dstLat, dstLon, rs.searchRadius)
	if err != nil {
		return datastructure.PhantomNodes{}, err
	}
	return datastructure.NewPhantomNodes(source, target), nil
}
