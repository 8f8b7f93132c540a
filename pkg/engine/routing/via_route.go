package routing

import (
	da "github.com/lintang-b-s/navigatorx-mld/pkg/datastructure"
)

// packedHop. one hop of a search tree path in travel direction, either a base edge or a shortcut.
type packedHop struct {
	from, to da.Index
	edge     da.Index
	level    uint8
	clique   bool
}

// retrieveForwardPath. hops from the forward seed up to node, plus the phantom edge the seed was reached by.
func retrieveForwardPath(heap *da.QueryHeap[heapData], node da.Index) ([]packedHop, da.Index) {
	hops := make([]packedHop, 0, 16)
	v := node
	for {
		data := heap.GetData(v)
		if data.isSeed(v) {
			for i, j := 0, len(hops)-1; i < j; i, j = i+1, j-1 {
				hops[i], hops[j] = hops[j], hops[i]
			}
			return hops, data.edge
		}
		hops = append(hops, packedHop{from: data.parent, to: v, edge: data.edge, level: data.level,
			clique: data.fromClique})
		v = data.parent
	}
}

// retrieveReversePath. hops from node down to the reverse seed, plus the phantom edge leading to the target.
func retrieveReversePath(heap *da.QueryHeap[heapData], node da.Index) ([]packedHop, da.Index) {
	hops := make([]packedHop, 0, 16)
	v := node
	for {
		data := heap.GetData(v)
		if data.isSeed(v) {
			return hops, data.edge
		}
		hops = append(hops, packedHop{from: v, to: data.parent, edge: data.edge, level: data.level,
			clique: data.fromClique})
		v = data.parent
	}
}

func (bs *bidirectionalSearch) unpackHops(hops []packedHop) ([]da.Index, bool) {
	edges := make([]da.Index, 0, len(hops))
	for _, hop := range hops {
		if !hop.clique {
			edges = append(edges, hop.edge)
			continue
		}
		sub, ok := bs.facade.UnpackShortcut(hop.from, hop.to, hop.level)
		if !ok {
			return nil, false
		}
		edges = append(edges, sub...)
	}
	return edges, true
}

// buildPrimaryRoute. the optimal route, through the final meeting vertex or, if no meeting vertex beat it,
// along the segment shared by source and target.
func (bs *bidirectionalSearch) buildPrimaryRoute() (Route, bool) {
	middle := bs.state.middle
	if middle == da.INVALID_VERTEX_ID {
		if bs.state.weight == da.INVALID_WEIGHT || bs.directEdge == da.INVALID_EDGE_ID {
			return Route{}, false
		}
		return bs.buildDirectRoute(), true
	}

	weight := bs.heaps.Forward.GetKey(middle) + bs.heaps.Reverse.GetKey(middle)
	route, ok := bs.buildViaRoute(middle, weight)
	if !ok {
		return Route{}, false
	}
	route.Stretch = 1
	route.Overlap = 1
	return route, true
}

func (bs *bidirectionalSearch) buildDirectRoute() Route {
	s, t := bs.phantoms.Source, bs.phantoms.Target
	length := bs.facade.GetEdgeDistance(bs.directEdge)
	ratio := t.Ratio - s.Ratio
	if ratio < 0 {
		ratio = -ratio
	}
	return Route{
		Via:         da.INVALID_VERTEX_ID,
		Weight:      bs.state.weight,
		Distance:    ratio * length,
		ForwardPath: []da.Index{bs.directEdge},
		ReversePath: []da.Index{},
		Vertices:    []da.Index{},
		Stretch:     1,
		Overlap:     1,
	}
}

// buildViaRoute. source -> via -> target unpacked to base edges, phantom edges at both ends.
func (bs *bidirectionalSearch) buildViaRoute(via da.Index, weight da.Weight) (Route, bool) {
	forwardHops, sourceEdge := retrieveForwardPath(bs.heaps.Forward, via)
	reverseHops, targetEdge := retrieveReversePath(bs.heaps.Reverse, via)

	forwardEdges, ok := bs.unpackHops(forwardHops)
	if !ok {
		return Route{}, false
	}
	reverseEdges, ok := bs.unpackHops(reverseHops)
	if !ok {
		return Route{}, false
	}

	forwardPath := make([]da.Index, 0, len(forwardEdges)+1)
	forwardPath = append(forwardPath, sourceEdge)
	forwardPath = append(forwardPath, forwardEdges...)
	reversePath := make([]da.Index, 0, len(reverseEdges)+1)
	reversePath = append(reversePath, reverseEdges...)
	reversePath = append(reversePath, targetEdge)

	route := Route{
		Via:             via,
		Weight:          weight,
		ForwardPath:     forwardPath,
		ReversePath:     reversePath,
		ViaOnCellBorder: bs.isBorderVertex(via),
	}
	forwardSeed := via
	if len(forwardHops) > 0 {
		forwardSeed = forwardHops[0].from
	}
	route.Vertices = bs.routeVertices(forwardSeed, forwardEdges, reverseEdges)
	route.Distance = bs.routeDistance(&route)
	return route, true
}

// routeVertices. seed of the forward search followed by the head of every inner base edge.
func (bs *bidirectionalSearch) routeVertices(forwardSeed da.Index, forwardEdges, reverseEdges []da.Index) []da.Index {
	vertices := make([]da.Index, 0, len(forwardEdges)+len(reverseEdges)+1)
	vertices = append(vertices, forwardSeed)
	for _, e := range forwardEdges {
		vertices = append(vertices, bs.facade.GetOutEdge(e).GetHead())
	}
	for _, e := range reverseEdges {
		vertices = append(vertices, bs.facade.GetOutEdge(e).GetHead())
	}
	return vertices
}

// routeDistance. meters driven, the phantom edges only count the part between the snapped point and
// the segment endpoint.
func (bs *bidirectionalSearch) routeDistance(route *Route) float64 {
	edges := route.Edges()
	if len(edges) == 0 {
		return 0
	}
	s, t := bs.phantoms.Source, bs.phantoms.Target
	dist := 0.0
	for i := 1; i < len(edges)-1; i++ {
		dist += bs.facade.GetEdgeDistance(edges[i])
	}

	sourceEdge := edges[0]
	if sourceEdge == s.ForwardEdge {
		dist += (1 - s.Ratio) * bs.facade.GetEdgeDistance(sourceEdge)
	} else {
		dist += s.Ratio * bs.facade.GetEdgeDistance(sourceEdge)
	}

	targetEdge := edges[len(edges)-1]
	if targetEdge == t.ForwardEdge {
		dist += t.Ratio * bs.facade.GetEdgeDistance(targetEdge)
	} else {
		dist += (1 - t.Ratio) * bs.facade.GetEdgeDistance(targetEdge)
	}
	return dist
}

// isBorderVertex. v has an edge crossing its level-1 cell border.
func (bs *bidirectionalSearch) isBorderVertex(v da.Index) bool {
	border := false
	bs.facade.ForOutEdgesOf(v, func(e *da.OutEdge) {
		if bs.facade.GetHighestDifferingLevel(v, e.GetHead()) >= 1 {
			border = true
		}
	})
	if border {
		return true
	}
	bs.facade.ForInEdgesOf(v, func(e *da.InEdge) {
		if bs.facade.GetHighestDifferingLevel(v, e.GetTail()) >= 1 {
			border = true
		}
	})
	return border
}
