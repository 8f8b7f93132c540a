package datastructure

import (
	"github.com/lintang-b-s/navigatorx-mld/pkg/geo"
)

type Vertex struct {
	lat      float64
	lon      float64
	firstOut Index // index of the first outEdge of this vertex in the flattened graph.outEdges array
	firstIn  Index // index of the first inEdge of this vertex in the flattened graph.inEdges array
}

func NewVertex(lat, lon float64) Vertex {
	return Vertex{lat: lat, lon: lon}
}

func (v *Vertex) GetLat() float64 {
	return v.lat
}

func (v *Vertex) GetLon() float64 {
	return v.lon
}

// OutEdge. directed edge tail->head. edgeId is its position in graph.outEdges.
type OutEdge struct {
	edgeId Index
	tail   Index
	head   Index
	weight Weight
	dist   float64 // meter
}

func NewOutEdge(edgeId, tail, head Index, weight Weight, dist float64) OutEdge {
	return OutEdge{edgeId: edgeId, tail: tail, head: head, weight: weight, dist: dist}
}

func (e *OutEdge) GetEdgeId() Index {
	return e.edgeId
}

func (e *OutEdge) GetTail() Index {
	return e.tail
}

func (e *OutEdge) GetHead() Index {
	return e.head
}

func (e *OutEdge) GetWeight() Weight {
	return e.weight
}

func (e *OutEdge) GetLength() float64 {
	return e.dist
}

// InEdge. the same directed edge seen from its head. edgeId refers to the OutEdge.
type InEdge struct {
	edgeId Index
	tail   Index
	weight Weight
}

func (e *InEdge) GetEdgeId() Index {
	return e.edgeId
}

func (e *InEdge) GetTail() Index {
	return e.tail
}

func (e *InEdge) GetWeight() Weight {
	return e.weight
}

// Graph. node-based road network in compressed sparse row form, plus its multilevel partition and
// the overlay (cell) storage once they are attached.
type Graph struct {
	vertices []Vertex // len = numVertices+1, last one is a sentinel holding the end offsets
	outEdges []OutEdge
	inEdges  []InEdge
	mlp      *MultilevelPartition
	cells    *CellStorage
}

func NewGraph(vertices []Vertex, outEdges []OutEdge, inEdges []InEdge) *Graph {
	return &Graph{vertices: vertices, outEdges: outEdges, inEdges: inEdges}
}

func (g *Graph) NumberOfVertices() int {
	return len(g.vertices) - 1
}

func (g *Graph) NumberOfEdges() int {
	return len(g.outEdges)
}

func (g *Graph) GetVertexCoordinates(u Index) (float64, float64) {
	return g.vertices[u].lat, g.vertices[u].lon
}

func (g *Graph) GetOutEdge(e Index) *OutEdge {
	return &g.outEdges[e]
}

func (g *Graph) OutDegree(u Index) int {
	return int(g.vertices[u+1].firstOut - g.vertices[u].firstOut)
}

func (g *Graph) ForOutEdgesOf(u Index, handle func(e *OutEdge)) {
	for e := g.vertices[u].firstOut; e < g.vertices[u+1].firstOut; e++ {
		handle(&g.outEdges[e])
	}
}

func (g *Graph) ForInEdgesOf(v Index, handle func(e *InEdge)) {
	for e := g.vertices[v].firstIn; e < g.vertices[v+1].firstIn; e++ {
		handle(&g.inEdges[e])
	}
}

// ForOutEdges. iterate every edge of the graph, tail ascending.
func (g *Graph) ForOutEdges(handle func(e *OutEdge)) {
	for i := range g.outEdges {
		handle(&g.outEdges[i])
	}
}

// FindEdge. the cheapest edge u->v, or INVALID_EDGE_ID.
func (g *Graph) FindEdge(u, v Index) Index {
	best := INVALID_EDGE_ID
	bestWeight := INVALID_WEIGHT
	g.ForOutEdgesOf(u, func(e *OutEdge) {
		if e.head == v && e.weight < bestWeight {
			best = e.edgeId
			bestWeight = e.weight
		}
	})
	return best
}

// GetEdgeDistance. length of edge e in meters, falls back to the haversine length of the segment.
func (g *Graph) GetEdgeDistance(e Index) float64 {
	edge := &g.outEdges[e]
	if edge.dist > 0 {
		return edge.dist
	}
	tail, head := g.vertices[edge.tail], g.vertices[edge.head]
	return geo.CalculateHaversineDistance(tail.lat, tail.lon, head.lat, head.lon) * 1000
}

func (g *Graph) SetPartition(mlp *MultilevelPartition) {
	g.mlp = mlp
}

func (g *Graph) GetPartition() *MultilevelPartition {
	return g.mlp
}

func (g *Graph) SetCellStorage(cells *CellStorage) {
	g.cells = cells
}

func (g *Graph) GetCellStorage() *CellStorage {
	return g.cells
}

func (g *Graph) NumberOfLevels() int {
	if g.mlp == nil {
		return 0
	}
	return g.mlp.GetNumberOfLevels()
}

func (g *Graph) GetCellNumber(u Index) Pv {
	if g.mlp == nil {
		return 0
	}
	return g.mlp.GetCellNumber(u)
}

// GetHighestDifferingLevel. highest level on which u and v lie in different cells, 0 if they share every cell.
func (g *Graph) GetHighestDifferingLevel(u, v Index) uint8 {
	if g.mlp == nil {
		return 0
	}
	return g.mlp.GetHighestDifferingLevel(u, v)
}

// ForOutShortcutsOf. shortcuts of the level-l cell of u leaving entry vertex u.
func (g *Graph) ForOutShortcutsOf(level uint8, u Index, handle func(to Index, w Weight)) {
	if g.cells == nil {
		return
	}
	g.cells.ForOutShortcutsOf(level, u, g.GetCellNumber(u), handle)
}

// ForInShortcutsOf. shortcuts of the level-l cell of v arriving at exit vertex v.
func (g *Graph) ForInShortcutsOf(level uint8, v Index, handle func(from Index, w Weight)) {
	if g.cells == nil {
		return
	}
	g.cells.ForInShortcutsOf(level, v, g.GetCellNumber(v), handle)
}
