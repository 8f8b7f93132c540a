package partitioner

import (
	"context"
	"testing"

	"github.com/lintang-b-s/navigatorx-mld/pkg/datastructure"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newGridGraph(rows, cols int) *datastructure.Graph {
	gb := datastructure.NewGraphBuilder()
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			gb.AddVertex(-7.0+0.001*float64(r), 110.0+0.001*float64(c))
		}
	}
	id := func(r, c int) datastructure.Index { return datastructure.Index(r*cols + c) }
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			if c+1 < cols {
				gb.AddBidirectionalEdge(id(r, c), id(r, c+1), 10, 0)
			}
			if r+1 < rows {
				gb.AddBidirectionalEdge(id(r, c), id(r+1, c), 10, 0)
			}
		}
	}
	return gb.Build()
}

func TestRecursiveBisection(t *testing.T) {
	g := newGridGraph(8, 8)
	all := make([]datastructure.Index, g.NumberOfVertices())
	for i := range all {
		all[i] = datastructure.Index(i)
	}

	cells := NewRecursiveBisection(g, 16).Partition(all)
	seen := make(map[datastructure.Index]bool)
	for _, cell := range cells {
		assert.NotEmpty(t, cell)
		assert.LessOrEqual(t, len(cell), 16)
		for _, v := range cell {
			assert.False(t, seen[v], "vertex %d in two cells", v)
			seen[v] = true
		}
	}
	assert.Len(t, seen, 64)
}

func TestInertialFlowCutsGridInHalf(t *testing.T) {
	g := newGridGraph(4, 10)
	all := make([]datastructure.Index, g.NumberOfVertices())
	for i := range all {
		all[i] = datastructure.Index(i)
	}
	cut := newInertialFlow(g, all).computeMinCut(SOURCE_SINK_RATE)

	// a 4x10 grid is cheapest to cut across its 4 rows. only edges from the source side count.
	assert.Equal(t, 4, cut.GetMinCut())
	assert.Greater(t, cut.GetNumNodesInPartitionTwo(), 0)
	assert.Less(t, cut.GetNumNodesInPartitionTwo(), 40)
}

func TestMultilevelPartitioner(t *testing.T) {
	g := newGridGraph(10, 10)
	mp := NewMultilevelPartitioner(g, []int{10, 40}, zap.NewNop())
	mlp, err := mp.Run(context.Background())
	require.NoError(t, err)
	require.Equal(t, 2, mlp.GetNumberOfLevels())

	for _, level := range []uint8{1, 2} {
		limit := map[uint8]int{1: 10, 2: 40}[level]
		sizes := make(map[datastructure.Pv]int)
		for v := 0; v < g.NumberOfVertices(); v++ {
			sizes[mlp.GetCell(level, datastructure.Index(v))]++
		}
		for _, size := range sizes {
			assert.LessOrEqual(t, size, limit)
		}
	}

	// level-1 cells nest inside level-2 cells
	parent := make(map[datastructure.Pv]datastructure.Pv)
	for v := 0; v < g.NumberOfVertices(); v++ {
		c1 := mlp.GetCell(1, datastructure.Index(v))
		c2 := mlp.GetCell(2, datastructure.Index(v))
		if p, ok := parent[c1]; ok {
			assert.Equal(t, p, c2)
		}
		parent[c1] = c2
	}

	_, err = NewMultilevelPartitioner(g, []int{40, 10}, zap.NewNop()).Run(context.Background())
	assert.Error(t, err)
}
