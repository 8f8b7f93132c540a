package partitioner

import (
	"context"
	"fmt"
	"runtime"
	"sync"

	"github.com/lintang-b-s/navigatorx-mld/pkg/datastructure"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// MultilevelPartitioner. nested partition of the road network. cellSizes[l-1] is the maximum number of
// vertices of a level-l cell, so cellSizes must be increasing.
type MultilevelPartitioner struct {
	graph     *datastructure.Graph
	cellSizes []int
	logger    *zap.Logger
}

func NewMultilevelPartitioner(graph *datastructure.Graph, cellSizes []int, logger *zap.Logger) *MultilevelPartitioner {
	return &MultilevelPartitioner{graph: graph, cellSizes: cellSizes, logger: logger}
}

/*
Run. top-down: the whole graph is split into the level-L cells, every level-L cell is split into
level-(L-1) cells, and so on down to level 1. cell ids are local to their parent cell. the cells of one
level are split in parallel.
*/
func (mp *MultilevelPartitioner) Run(ctx context.Context) (*datastructure.MultilevelPartition, error) {
	numLevels := len(mp.cellSizes)
	if numLevels == 0 {
		return nil, fmt.Errorf("multilevel partitioner: no cell sizes given")
	}
	for l := 0; l < numLevels; l++ {
		if mp.cellSizes[l] < 1 || (l > 0 && mp.cellSizes[l] <= mp.cellSizes[l-1]) {
			return nil, fmt.Errorf("multilevel partitioner: cell sizes must be positive and increasing, got %v", mp.cellSizes)
		}
	}

	n := mp.graph.NumberOfVertices()
	localCell := make([][]int, numLevels)
	maxCells := make([]int, numLevels)

	all := make([]datastructure.Index, n)
	for i := range all {
		all[i] = datastructure.Index(i)
	}
	parents := [][]datastructure.Index{all}

	for level := numLevels; level >= 1; level-- {
		localCell[level-1] = make([]int, n)
		children := make([][][]datastructure.Index, len(parents))

		eg, egCtx := errgroup.WithContext(ctx)
		eg.SetLimit(runtime.NumCPU())
		var mu sync.Mutex
		for i, parent := range parents {
			eg.Go(func() error {
				if err := egCtx.Err(); err != nil {
					return err
				}
				parts := NewRecursiveBisection(mp.graph, mp.cellSizes[level-1]).Partition(parent)
				children[i] = parts
				for k, part := range parts {
					for _, v := range part {
						localCell[level-1][v] = k
					}
				}
				mu.Lock()
				if len(parts) > maxCells[level-1] {
					maxCells[level-1] = len(parts)
				}
				mu.Unlock()
				return nil
			})
		}
		if err := eg.Wait(); err != nil {
			return nil, err
		}

		next := make([][]datastructure.Index, 0, len(parents)*2)
		for _, parts := range children {
			next = append(next, parts...)
		}
		parents = next
		mp.logger.Sugar().Infof("level %d: %d cells, at most %d per parent cell", level, len(parents), maxCells[level-1])
	}

	mlp := datastructure.NewMultilevelPartition(numLevels, n)
	for l := 1; l <= numLevels; l++ {
		mlp.SetNumberOfCellsInLevel(l, maxCells[l-1])
	}
	if err := mlp.ComputeBitmap(); err != nil {
		return nil, err
	}
	for l := 1; l <= numLevels; l++ {
		for v := 0; v < n; v++ {
			mlp.SetCell(l, datastructure.Index(v), localCell[l-1][v])
		}
	}
	return mlp, nil
}
