package routing

import (
	"context"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
	da "github.com/lintang-b-s/navigatorx-mld/pkg/datastructure"
	"github.com/lintang-b-s/navigatorx-mld/pkg/util"
	"go.uber.org/zap"
)

// MLDRoutingEngine. query entry point over one customized graph. safe for concurrent queries, each query
// takes its own heaps from the pool.
type MLDRoutingEngine struct {
	graph    *da.Graph
	facade   Facade
	heaps    *SearchEngineData
	logger   *zap.Logger
	params   AlternativeParams
	observer SearchObserver
}

func NewMLDRoutingEngine(graph *da.Graph, logger *zap.Logger, puCache *lru.Cache[PUCacheKey, []da.Index],
	params AlternativeParams) *MLDRoutingEngine {
	return &MLDRoutingEngine{
		graph:    graph,
		facade:   NewGraphFacade(graph, NewPathUnpacker(graph, puCache)),
		heaps:    NewSearchEngineData(graph.NumberOfVertices()),
		logger:   logger,
		params:   params.normalize(),
		observer: NoopObserver{},
	}
}

func (re *MLDRoutingEngine) SetObserver(observer SearchObserver) {
	if observer == nil {
		observer = NoopObserver{}
	}
	re.observer = observer
}

func (re *MLDRoutingEngine) GetGraph() *da.Graph {
	return re.graph
}

func (re *MLDRoutingEngine) GetFacade() Facade {
	return re.facade
}

func (re *MLDRoutingEngine) GetParams() AlternativeParams {
	return re.params
}

// ShortestPath. optimal route between the phantoms, ErrNoRoute (code ErrNotFound) if unreachable.
func (re *MLDRoutingEngine) ShortestPath(ctx context.Context, phantoms da.PhantomNodes) (*RouteResult, error) {
	heaps := re.heaps.Acquire()
	defer re.heaps.Release(heaps)

	start := time.Now()
	result, err := ShortestPathSearch(ctx, re.facade, heaps, phantoms, re.observer)
	if err != nil {
		return nil, util.WrapErrorf(err, util.ErrInternalServerError, "shortest path search")
	}
	re.logger.Debug("shortest path query done", zap.Duration("elapsed", time.Since(start)),
		zap.Int("iterations", result.Stats.Iterations), zap.Bool("found", result.Found))
	if !result.Found {
		return result, util.WrapErrorf(ErrNoRoute, util.ErrNotFound, "shortest path")
	}
	return result, nil
}

// AlternativeRoutes. primary route plus up to k alternatives. k <= 0 uses the engine default.
func (re *MLDRoutingEngine) AlternativeRoutes(ctx context.Context, phantoms da.PhantomNodes,
	k int) (*RouteResult, error) {
	params := re.params
	if k > 0 {
		params = params.WithMaxAlternatives(k)
	}
	return re.AlternativeRoutesWithParams(ctx, phantoms, params)
}

func (re *MLDRoutingEngine) AlternativeRoutesWithParams(ctx context.Context, phantoms da.PhantomNodes,
	params AlternativeParams) (*RouteResult, error) {
	heaps := re.heaps.Acquire()
	defer re.heaps.Release(heaps)

	start := time.Now()
	result, err := AlternativePathSearch(ctx, re.facade, heaps, phantoms, params, re.observer)
	if err != nil {
		return nil, util.WrapErrorf(err, util.ErrInternalServerError, "alternative path search")
	}
	re.logger.Debug("alternative routes query done", zap.Duration("elapsed", time.Since(start)),
		zap.Int("iterations", result.Stats.Iterations), zap.Int("candidates", result.Stats.UniqueCandidates),
		zap.Int("alternatives", result.Stats.Alternatives), zap.Int("dropped", result.Stats.Dropped))
	if !result.Found {
		return result, util.WrapErrorf(ErrNoRoute, util.ErrNotFound, "alternative routes")
	}
	return result, nil
}
