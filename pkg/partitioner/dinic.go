package partitioner

import (
	"math"

	"github.com/lintang-b-s/navigatorx-mld/pkg/datastructure"
	"github.com/lintang-b-s/navigatorx-mld/pkg/util"
)

type DinicMaxFlow struct {
	graph *partitionGraph
}

func newDinicMaxFlow(graph *partitionGraph) *DinicMaxFlow {
	graph.level = make([]int, graph.numberOfVertices())
	graph.lastEdge = make([]int, graph.numberOfVertices())
	return &DinicMaxFlow{graph: graph}
}

func (dmf *DinicMaxFlow) bfsLevelGraph(source, target datastructure.Index) bool {
	g := dmf.graph
	for i := range g.level {
		g.level[i] = INVALID_LEVEL
	}

	queue := make([]datastructure.Index, 0, g.numberOfVertices())
	queue = append(queue, source)
	g.level[source] = 0

	for head := 0; head < len(queue); head++ {
		u := queue[head]
		if u == target {
			break
		}
		for _, edge := range g.edges[u] {
			if edge.capacity-edge.flow > 0 && g.level[edge.to] == INVALID_LEVEL {
				g.level[edge.to] = g.level[u] + 1
				queue = append(queue, edge.to)
			}
		}
	}
	return g.level[target] != INVALID_LEVEL
}

func (dmf *DinicMaxFlow) dfsAugmentPath(u, t datastructure.Index, f int) int {
	if u == t || f == 0 {
		return f
	}

	g := dmf.graph
	for ; g.lastEdge[u] < len(g.edges[u]); g.lastEdge[u]++ {
		edge := &g.edges[u][g.lastEdge[u]]
		v := edge.to
		residual := edge.capacity - edge.flow
		if residual <= 0 || g.level[v] != g.level[u]+1 {
			continue
		}

		if pushed := dmf.dfsAugmentPath(v, t, util.MinInt(residual, f)); pushed > 0 {
			edge.flow += pushed
			g.edges[v][edge.rev].flow -= pushed
			return pushed
		}
	}

	return 0
}

/*
ComputeMaxflowMinCut. time complexity: O(N^2 * M), N,M = number of vertices & edges of the partition graph.
the artificial source and sink must be the last two vertices.
*/
func (dmf *DinicMaxFlow) ComputeMaxflowMinCut(s, t datastructure.Index) *MinCut {
	g := dmf.graph
	minCut := NewMinCut(g.numberOfVertices() - 2)
	maxFlow := 0

	for dmf.bfsLevelGraph(s, t) {
		for i := range g.lastEdge {
			g.lastEdge[i] = 0
		}
		for {
			flow := dmf.dfsAugmentPath(s, t, math.MaxInt)
			if flow == 0 {
				break
			}
			maxFlow += flow
		}
	}

	// after the last bfs the level graph marks the source side of the residual graph
	for u := datastructure.Index(0); u < datastructure.Index(g.numberOfVertices()-2); u++ {
		if g.level[u] != INVALID_LEVEL {
			minCut.SetFlag(u, true)
		} else {
			minCut.numNodesInPartitionTwo++
		}
	}
	minCut.minCut = maxFlow
	return minCut
}
