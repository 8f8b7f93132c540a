package partitioner

import (
	"math"
	"sort"

	"github.com/lintang-b-s/navigatorx-mld/pkg/concurrent"
	"github.com/lintang-b-s/navigatorx-mld/pkg/datastructure"
)

// projection lines over (lon, lat)
var inertialFlowLines = [][2]float64{
	{1, 0},
	{0, 1},
	{1, 1},
	{1, -1},
}

type inertialFlow struct {
	graph     *datastructure.Graph
	vertexIds []datastructure.Index
	inSet     map[datastructure.Index]datastructure.Index // original id -> partition graph id
}

func newInertialFlow(graph *datastructure.Graph, vertexIds []datastructure.Index) *inertialFlow {
	inSet := make(map[datastructure.Index]datastructure.Index, len(vertexIds))
	for i, v := range vertexIds {
		inSet[v] = datastructure.Index(i)
	}
	return &inertialFlow{graph: graph, vertexIds: vertexIds, inSet: inSet}
}

// buildPartitionGraph. subgraph induced by the vertex set. edges leaving the set are skipped.
func (inf *inertialFlow) buildPartitionGraph() *partitionGraph {
	pg := newPartitionGraph(len(inf.vertexIds))
	for _, v := range inf.vertexIds {
		lat, lon := inf.graph.GetVertexCoordinates(v)
		pg.addVertex(v, lat, lon)
	}
	for i, v := range inf.vertexIds {
		inf.graph.ForOutEdgesOf(v, func(e *datastructure.OutEdge) {
			head, ok := inf.inSet[e.GetHead()]
			if !ok {
				return
			}
			pg.addEdge(datastructure.Index(i), head, 1)
		})
	}
	return pg
}

/*
computeMinCut. inertial flow, [On Balanced Separators in Road Networks, Schild, et al.]:
sort the vertices by their projection on a line, connect the first SOURCE_SINK_RATE of them to an
artificial source and the last SOURCE_SINK_RATE to an artificial sink, and take the max flow min cut.
every line is tried, the smallest cut wins and ties go to the more balanced one.
*/
func (inf *inertialFlow) computeMinCut(sourceSinkRate float64) *MinCut {
	n := len(inf.vertexIds)

	computeLine := func(line [2]float64) *MinCut {
		pg := inf.buildPartitionGraph()

		type item struct {
			idx        int
			projection float64
		}
		items := make([]item, n)
		for i, v := range pg.vertices {
			items[i] = item{idx: i, projection: line[0]*v.lon + line[1]*v.lat}
		}
		sort.SliceStable(items, func(i, j int) bool {
			return items[i].projection < items[j].projection
		})

		endpointsLength := int(float64(n) * sourceSinkRate)
		if endpointsLength < 1 {
			endpointsLength = 1
		}
		s := pg.addVertex(datastructure.INVALID_VERTEX_ID, 0, 0)
		t := pg.addVertex(datastructure.INVALID_VERTEX_ID, 0, 0)
		for i := 0; i < endpointsLength; i++ {
			pg.addEdge(s, datastructure.Index(items[i].idx), INF_CAPACITY)
			pg.addEdge(datastructure.Index(items[n-1-i].idx), t, INF_CAPACITY)
		}

		return newDinicMaxFlow(pg).ComputeMaxflowMinCut(s, t)
	}

	numWorkers := 1
	if n >= PARALLEL_BISECTION_MIN_SIZE {
		numWorkers = len(inertialFlowLines)
	}
	cuts := concurrent.Map(numWorkers, inertialFlowLines, computeLine)

	balanceDelta := func(numPartTwoNodes int) int {
		diff := n/2 - numPartTwoNodes
		if diff < 0 {
			diff = -diff
		}
		return diff
	}

	var best *MinCut
	bestNumberOfMinCutEdges := math.MaxInt
	for _, minCut := range cuts {
		if minCut.GetMinCut() < bestNumberOfMinCutEdges ||
			(minCut.GetMinCut() == bestNumberOfMinCutEdges &&
				balanceDelta(minCut.GetNumNodesInPartitionTwo()) < balanceDelta(best.GetNumNodesInPartitionTwo())) {
			best = minCut
			bestNumberOfMinCutEdges = minCut.GetMinCut()
		}
	}
	return best
}

// bisect. split the vertex set in two non-empty halves.
func (inf *inertialFlow) bisect() ([]datastructure.Index, []datastructure.Index) {
	cut := inf.computeMinCut(SOURCE_SINK_RATE)

	partOne := make([]datastructure.Index, 0, len(inf.vertexIds)-cut.GetNumNodesInPartitionTwo())
	partTwo := make([]datastructure.Index, 0, cut.GetNumNodesInPartitionTwo())
	for i, v := range inf.vertexIds {
		if cut.GetFlag(datastructure.Index(i)) {
			partOne = append(partOne, v)
		} else {
			partTwo = append(partTwo, v)
		}
	}
	return partOne, partTwo
}
