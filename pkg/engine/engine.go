package engine

import (
	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/lintang-b-s/navigatorx-mld/pkg"
	"github.com/lintang-b-s/navigatorx-mld/pkg/datastructure"
	"github.com/lintang-b-s/navigatorx-mld/pkg/engine/routing"
	"github.com/lintang-b-s/navigatorx-mld/pkg/spatialindex"
	"go.uber.org/zap"
)

type Engine struct {
	mldRoutingEngine *routing.MLDRoutingEngine
	rtree            *spatialindex.Rtree
}

func (e *Engine) GetRoutingEngine() *routing.MLDRoutingEngine {
	return e.mldRoutingEngine
}

func (e *Engine) GetRtree() *spatialindex.Rtree {
	return e.rtree
}

// NewEngine. load the customized graph file and build the query side around it.
func NewEngine(graphFilePath string, leafBoundingBoxRadius float64, params routing.AlternativeParams,
	logger *zap.Logger) (*Engine, error) {
	logger.Info("Starting query engine of Multi-Level Dijkstra...")

	logger.Info("Reading graph from ", zap.String("graphFilePath", graphFilePath))
	graph, err := datastructure.ReadGraph(graphFilePath)
	if err != nil {
		return nil, err
	}
	return NewEngineFromGraph(graph, leafBoundingBoxRadius, params, logger)
}

func NewEngineFromGraph(graph *datastructure.Graph, leafBoundingBoxRadius float64, params routing.AlternativeParams,
	logger *zap.Logger) (*Engine, error) {
	// customizable route planning in road networks section 7.2 (path retrieval)
	puCache, err := lru.New[routing.PUCacheKey, []datastructure.Index](pkg.PATH_UNPACKING_CACHE_SIZE)
	if err != nil {
		return nil, err
	}

	rtree := spatialindex.NewRtree()
	rtree.Build(graph, leafBoundingBoxRadius, logger)

	logger.Info("Query engine ready", zap.Int("vertices", graph.NumberOfVertices()),
		zap.Int("edges", graph.NumberOfEdges()), zap.Int("levels", graph.NumberOfLevels()))

	return &Engine{
		mldRoutingEngine: routing.NewMLDRoutingEngine(graph, logger, puCache, params),
		rtree:            rtree,
	}, nil
}
