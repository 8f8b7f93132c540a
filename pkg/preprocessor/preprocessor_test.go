package preprocessor

import (
	"bytes"
	"context"
	"math/rand"
	"testing"

	"github.com/lintang-b-s/navigatorx-mld/pkg/datastructure"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newGrid(rows, cols int, seed int64) *datastructure.Graph {
	rng := rand.New(rand.NewSource(seed))
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
				gb.AddBidirectionalEdge(id(r, c), id(r, c+1), datastructure.Weight(1+rng.Intn(20)), 0)
			}
			if r+1 < rows {
				gb.AddBidirectionalEdge(id(r, c), id(r+1, c), datastructure.Weight(1+rng.Intn(20)), 0)
			}
		}
	}
	return gb.Build()
}

func TestPreProcessingRoundTrip(t *testing.T) {
	g := newGrid(10, 10, 3)
	p := NewPreprocessor([]int{10, 40}, zap.NewNop())
	require.NoError(t, p.PreProcessing(context.Background(), g))

	require.Equal(t, 2, g.NumberOfLevels())
	require.NotNil(t, g.GetCellStorage())
	assert.Greater(t, g.GetCellStorage().GetWeightVectorSize(), 0)

	var buf bytes.Buffer
	require.NoError(t, g.WriteText(&buf))

	read, err := datastructure.ReadGraphFrom(&buf)
	require.NoError(t, err)
	assert.Equal(t, g.NumberOfVertices(), read.NumberOfVertices())
	assert.Equal(t, g.NumberOfEdges(), read.NumberOfEdges())
	assert.Equal(t, g.GetCellStorage().GetWeights(), read.GetCellStorage().GetWeights())
	for v := 0; v < g.NumberOfVertices(); v++ {
		assert.Equal(t, g.GetCellNumber(datastructure.Index(v)), read.GetCellNumber(datastructure.Index(v)))
	}
}

func TestPreProcessingRejectsBadCellSizes(t *testing.T) {
	g := newGrid(4, 4, 1)
	err := NewPreprocessor([]int{40, 10}, zap.NewNop()).PreProcessing(context.Background(), g)
	assert.Error(t, err)
}
