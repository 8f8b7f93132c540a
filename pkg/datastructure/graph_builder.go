package datastructure

import (
	"sort"

	"github.com/lintang-b-s/navigatorx-mld/pkg/geo"
)

type rawEdge struct {
	from, to Index
	weight   Weight
	dist     float64
}

// GraphBuilder. collects vertices and directed edges, then packs them into a CSR Graph.
type GraphBuilder struct {
	vertices []Vertex
	edges    []rawEdge
}

func NewGraphBuilder() *GraphBuilder {
	return &GraphBuilder{
		vertices: make([]Vertex, 0),
		edges:    make([]rawEdge, 0),
	}
}

func (gb *GraphBuilder) AddVertex(lat, lon float64) Index {
	gb.vertices = append(gb.vertices, NewVertex(lat, lon))
	return Index(len(gb.vertices) - 1)
}

func (gb *GraphBuilder) NumberOfVertices() int {
	return len(gb.vertices)
}

// AddEdge. add directed edge from->to. a non-positive dist is replaced by the haversine length.
func (gb *GraphBuilder) AddEdge(from, to Index, weight Weight, dist float64) {
	if dist <= 0 && int(from) < len(gb.vertices) && int(to) < len(gb.vertices) {
		a, b := gb.vertices[from], gb.vertices[to]
		dist = geo.CalculateHaversineDistance(a.lat, a.lon, b.lat, b.lon) * 1000
	}
	gb.edges = append(gb.edges, rawEdge{from: from, to: to, weight: weight, dist: dist})
}

func (gb *GraphBuilder) AddBidirectionalEdge(u, v Index, weight Weight, dist float64) {
	gb.AddEdge(u, v, weight, dist)
	gb.AddEdge(v, u, weight, dist)
}

// Build. self loops are dropped. edge ids follow (tail, head, weight) order.
func (gb *GraphBuilder) Build() *Graph {
	edges := make([]rawEdge, 0, len(gb.edges))
	for _, e := range gb.edges {
		if e.from == e.to {
			continue
		}
		edges = append(edges, e)
	}
	sort.SliceStable(edges, func(i, j int) bool {
		if edges[i].from != edges[j].from {
			return edges[i].from < edges[j].from
		}
		if edges[i].to != edges[j].to {
			return edges[i].to < edges[j].to
		}
		return edges[i].weight < edges[j].weight
	})

	n := len(gb.vertices)
	vertices := make([]Vertex, n+1)
	copy(vertices, gb.vertices)

	outEdges := make([]OutEdge, len(edges))
	inDegree := make([]Index, n+1)
	for i, e := range edges {
		outEdges[i] = NewOutEdge(Index(i), e.from, e.to, e.weight, e.dist)
		inDegree[e.to]++
	}

	// firstOut/firstIn offsets, sentinel vertex n holds the totals
	var outPos, inPos Index
	edgeIdx := 0
	for v := 0; v <= n; v++ {
		vertices[v].firstOut = outPos
		vertices[v].firstIn = inPos
		for edgeIdx < len(edges) && int(edges[edgeIdx].from) == v {
			edgeIdx++
			outPos++
		}
		if v < n {
			inPos += inDegree[v]
		}
	}

	inEdges := make([]InEdge, len(edges))
	fill := make([]Index, n)
	for i, e := range edges {
		pos := vertices[e.to].firstIn + fill[e.to]
		inEdges[pos] = InEdge{edgeId: Index(i), tail: e.from, weight: e.weight}
		fill[e.to]++
	}

	return NewGraph(vertices, outEdges, inEdges)
}
