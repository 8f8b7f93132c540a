package preprocessor

import (
	"context"
	"fmt"
	"time"

	"github.com/lintang-b-s/navigatorx-mld/pkg/customizer"
	"github.com/lintang-b-s/navigatorx-mld/pkg/datastructure"
	"github.com/lintang-b-s/navigatorx-mld/pkg/osmparser"
	"github.com/lintang-b-s/navigatorx-mld/pkg/partitioner"
	"go.uber.org/zap"
)

// DefaultCellSizes. maximum number of vertices of a cell, level 1 first.
var DefaultCellSizes = []int{1 << 8, 1 << 11, 1 << 14, 1 << 17}

type Preprocessor struct {
	cellSizes []int
	logger    *zap.Logger
}

func NewPreprocessor(cellSizes []int, logger *zap.Logger) *Preprocessor {
	if len(cellSizes) == 0 {
		cellSizes = DefaultCellSizes
	}
	return &Preprocessor{
		cellSizes: cellSizes,
		logger:    logger,
	}
}

// Run. openstreetmap extract -> customized multilevel graph file.
func (p *Preprocessor) Run(ctx context.Context, osmFile, graphFile string) error {
	p.logger.Info("Parsing openstreetmap extract", zap.String("osmFile", osmFile))
	graph, err := osmparser.NewOSMParser(p.logger).Parse(ctx, osmFile)
	if err != nil {
		return fmt.Errorf("parsing %s: %w", osmFile, err)
	}

	if err := p.PreProcessing(ctx, graph); err != nil {
		return err
	}

	p.logger.Info("Writing graph", zap.String("graphFile", graphFile))
	return graph.WriteGraph(graphFile)
}

/*
PreProcessing. metric-independent preprocessing (partition + overlay topology) followed by the
customization of the overlay cliques with the graph's edge weights.
*/
func (p *Preprocessor) PreProcessing(ctx context.Context, graph *datastructure.Graph) error {
	p.logger.Info("Starting preprocessing step of Multi-Level Dijkstra...")

	start := time.Now()
	mlp, err := partitioner.NewMultilevelPartitioner(graph, p.cellSizes, p.logger).Run(ctx)
	if err != nil {
		return fmt.Errorf("partitioning graph: %w", err)
	}
	graph.SetPartition(mlp)
	p.logger.Info("Partition done", zap.Int("levels", mlp.GetNumberOfLevels()),
		zap.Duration("elapsed", time.Since(start)))

	p.logger.Info("Building overlay graph of each level...")
	graph.SetCellStorage(datastructure.NewCellStorage(graph, mlp))

	start = time.Now()
	customizer.NewCustomizer(graph, p.logger).Customize()
	p.logger.Info("Customization done", zap.Duration("elapsed", time.Since(start)))
	return nil
}
