package customizer

import (
	"runtime"
	"sync"

	"github.com/lintang-b-s/navigatorx-mld/pkg/concurrent"
	da "github.com/lintang-b-s/navigatorx-mld/pkg/datastructure"
	"go.uber.org/zap"
)

type Customizer struct {
	logger     *zap.Logger
	graph      *da.Graph
	numWorkers int
	searchPool sync.Pool
}

func NewCustomizer(graph *da.Graph, logger *zap.Logger) *Customizer {
	c := &Customizer{
		graph:      graph,
		logger:     logger,
		numWorkers: runtime.NumCPU(),
	}
	c.searchPool = sync.Pool{
		New: func() any {
			return da.NewCellSearch(graph)
		},
	}
	return c
}

func (c *Customizer) SetNumWorkers(n int) {
	if n > 0 {
		c.numWorkers = n
	}
}

type customizerCell struct {
	cell  *da.Cell
	level uint8
}

type cellCustomizationRes struct {
	cell    *da.Cell
	weights []da.Weight // row-major, entry x exit
}

/*
Customize. Customizable Route Planning in Road Networks, Daniel Delling, et al. Page 11:

We compute these distances in a bottom-up fashion, one cell at a time. Consider a cell C in H1 (the
first overlay level). For each entry (overlay) vertex v in C, we run Dijkstra’s algorithm in G (restricted to
C) until the priority queue is empty. This computes the distances to all reachable exit vertices of C.
A cell C at a higher level Hi (for i > 1) can be processed similarly, with one major difference. Instead of
working on the original graph, we can work on the subgraph of Hi−1 (the overlay level immediately below)
corresponding to subcells of C.

cells of one level are independent, so every level is processed by a worker pool.
*/
func (c *Customizer) Customize() {
	cells := c.graph.GetCellStorage()
	if cells == nil {
		return
	}
	c.logger.Sugar().Infof("Building cliques for each cell for each overlay level, number of shortcuts: %d",
		cells.GetWeightVectorSize())

	for level := 1; level <= cells.GetNumberOfLevels(); level++ {
		c.customizeLevel(uint8(level))
		c.logger.Sugar().Infof("finished customization level %v", level)
	}
}

func (c *Customizer) customizeLevel(level uint8) {
	cells := c.graph.GetCellStorage()
	cellsInLevel := cells.GetCellsInLevel(level)
	if len(cellsInLevel) == 0 {
		return
	}

	buildCellClique := func(job customizerCell) cellCustomizationRes {
		search := c.searchPool.Get().(*da.CellSearch)
		defer c.searchPool.Put(search)

		cell := job.cell
		exits := cell.GetExits()
		weights := make([]da.Weight, 0, cell.NumEntryPoints()*len(exits))
		for _, entry := range cell.GetEntries() {
			search.Run(job.level, entry, da.INVALID_VERTEX_ID)
			for _, exit := range exits {
				if exit == entry {
					weights = append(weights, 0)
					continue
				}
				weights = append(weights, search.GetWeight(exit))
			}
		}
		return cellCustomizationRes{cell: cell, weights: weights}
	}

	jobs := make([]customizerCell, 0, len(cellsInLevel))
	for _, cell := range cellsInLevel {
		jobs = append(jobs, customizerCell{cell: cell, level: level})
	}

	for _, res := range concurrent.Map(c.numWorkers, jobs, buildCellClique) {
		q := res.cell.NumExitPoints()
		for k, w := range res.weights {
			cells.SetWeight(res.cell, k/q, k%q, w)
		}
	}
}
