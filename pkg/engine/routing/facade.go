package routing

import (
	da "github.com/lintang-b-s/navigatorx-mld/pkg/datastructure"
)

// Facade. read-only view of the road network used by a query: base adjacency, overlay shortcuts,
// the partition and shortcut unpacking. safe for concurrent readers.
type Facade interface {
	NumberOfVertices() int
	GetOutEdge(e da.Index) *da.OutEdge
	GetEdgeDistance(e da.Index) float64
	GetVertexCoordinates(u da.Index) (float64, float64)
	ForOutEdgesOf(u da.Index, handle func(e *da.OutEdge))
	ForInEdgesOf(v da.Index, handle func(e *da.InEdge))
	ForOutShortcutsOf(level uint8, u da.Index, handle func(to da.Index, w da.Weight))
	ForInShortcutsOf(level uint8, v da.Index, handle func(from da.Index, w da.Weight))
	GetHighestDifferingLevel(u, v da.Index) uint8
	// UnpackShortcut. base edges of the level-l shortcut from -> to, false if it can not be unpacked.
	UnpackShortcut(from, to da.Index, level uint8) ([]da.Index, bool)
}

type graphFacade struct {
	*da.Graph
	unpacker *PathUnpacker
}

// NewGraphFacade. facade over an customized graph, unpacking shortcuts through pu.
func NewGraphFacade(graph *da.Graph, pu *PathUnpacker) Facade {
	return &graphFacade{Graph: graph, unpacker: pu}
}

func (gf *graphFacade) UnpackShortcut(from, to da.Index, level uint8) ([]da.Index, bool) {
	return gf.unpacker.UnpackShortcut(from, to, level)
}
