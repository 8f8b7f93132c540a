package partitioner

import (
	"github.com/lintang-b-s/navigatorx-mld/pkg/datastructure"
)

type RecursiveBisection struct {
	graph           *datastructure.Graph
	maximumCellSize int
}

func NewRecursiveBisection(graph *datastructure.Graph, maximumCellSize int) *RecursiveBisection {
	return &RecursiveBisection{
		graph:           graph,
		maximumCellSize: maximumCellSize,
	}
}

// Partition. bisect the vertex set until every part has at most maximumCellSize vertices.
func (rb *RecursiveBisection) Partition(vertexIds []datastructure.Index) [][]datastructure.Index {
	cells := make([][]datastructure.Index, 0)
	fits := func(part []datastructure.Index) bool {
		return len(part) <= rb.maximumCellSize
	}
	if fits(vertexIds) {
		return append(cells, vertexIds)
	}

	queue := [][]datastructure.Index{vertexIds}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]

		partOne, partTwo := newInertialFlow(rb.graph, cur).bisect()
		for _, part := range [][]datastructure.Index{partOne, partTwo} {
			if fits(part) {
				cells = append(cells, part)
			} else {
				queue = append(queue, part)
			}
		}
	}
	return cells
}
