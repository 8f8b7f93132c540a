package partitioner

import (
	"github.com/lintang-b-s/navigatorx-mld/pkg/datastructure"
)

const (
	INVALID_LEVEL    = -1
	SOURCE_SINK_RATE = 0.25
	INF_CAPACITY     = 1 << 30
	// bisections of vertex sets smaller than this run without goroutines
	PARALLEL_BISECTION_MIN_SIZE = 2000
)

type maxFlowEdge struct {
	to       datastructure.Index
	capacity int
	flow     int
	rev      int // index of the reverse edge in edges[to]
}

// partitionVertex. vertex of a partition graph, originalId is its id in the road network.
type partitionVertex struct {
	originalId datastructure.Index
	lat, lon   float64
}

// partitionGraph. the subgraph induced by one vertex set, with unit capacities for max flow.
type partitionGraph struct {
	vertices []partitionVertex
	edges    [][]maxFlowEdge
	level    []int
	lastEdge []int
}

func newPartitionGraph(capacity int) *partitionGraph {
	return &partitionGraph{
		vertices: make([]partitionVertex, 0, capacity+2),
		edges:    make([][]maxFlowEdge, 0, capacity+2),
	}
}

func (pg *partitionGraph) addVertex(originalId datastructure.Index, lat, lon float64) datastructure.Index {
	pg.vertices = append(pg.vertices, partitionVertex{originalId: originalId, lat: lat, lon: lon})
	pg.edges = append(pg.edges, nil)
	return datastructure.Index(len(pg.vertices) - 1)
}

func (pg *partitionGraph) addEdge(u, v datastructure.Index, capacity int) {
	pg.edges[u] = append(pg.edges[u], maxFlowEdge{to: v, capacity: capacity, rev: len(pg.edges[v])})
	pg.edges[v] = append(pg.edges[v], maxFlowEdge{to: u, capacity: 0, rev: len(pg.edges[u]) - 1})
}

func (pg *partitionGraph) numberOfVertices() int {
	return len(pg.vertices)
}

// MinCut. result of one bisection.
type MinCut struct {
	flags                  []bool // true if the vertex is reachable from source in residual graph, or partition one, else partition two
	numNodesInPartitionTwo int
	minCut                 int
}

func NewMinCut(numberOfVertices int) *MinCut {
	return &MinCut{
		flags: make([]bool, numberOfVertices),
	}
}

func (mc *MinCut) SetFlag(u datastructure.Index, flag bool) {
	mc.flags[u] = flag
}

func (mc *MinCut) GetFlag(u datastructure.Index) bool {
	return mc.flags[u]
}

func (mc *MinCut) GetNumNodesInPartitionTwo() int {
	return mc.numNodesInPartitionTwo
}

func (mc *MinCut) GetMinCut() int {
	return mc.minCut
}
