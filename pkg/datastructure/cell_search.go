package datastructure

// CellSearchHop. one hop of a path found by CellSearch. Edge is INVALID_EDGE_ID for a shortcut of
// the level Level cell containing From and To.
type CellSearchHop struct {
	From  Index
	To    Index
	Edge  Index
	Level uint8
}

type cellSearchData struct {
	parent     Index
	edge       Index
	fromClique bool
}

// CellSearch. dijkstra restricted to one cell of level l, running on the overlay of level l-1:
// shortcuts of the level l-1 sub cells plus the level l-1 border edges inside the cell.
// level 1 cells are searched on the base graph. used to customize shortcut weights and to unpack
// shortcuts back into base edges. not safe for concurrent use.
type CellSearch struct {
	g    *Graph
	heap *QueryHeap[cellSearchData]
}

func NewCellSearch(g *Graph) *CellSearch {
	return &CellSearch{
		g:    g,
		heap: NewQueryHeap[cellSearchData](g.NumberOfVertices()),
	}
}

// Run. search from source inside its level cell. when target is a valid vertex, the search stops as
// soon as target is settled.
func (cs *CellSearch) Run(level uint8, source, target Index) {
	cs.heap.Clear()
	cs.heap.Insert(source, 0, cellSearchData{parent: source, edge: INVALID_EDGE_ID})

	mlp := cs.g.GetPartition()
	sub := level - 1
	sourceCell := mlp.GetCell(level, source)

	relax := func(from, to Index, w Weight, edge Index, clique bool) {
		if !cs.heap.WasInserted(to) {
			cs.heap.Insert(to, w, cellSearchData{parent: from, edge: edge, fromClique: clique})
		} else if !cs.heap.WasRemoved(to) && w < cs.heap.GetKey(to) {
			*cs.heap.GetData(to) = cellSearchData{parent: from, edge: edge, fromClique: clique}
			cs.heap.DecreaseKey(to, w)
		}
	}

	for !cs.heap.Empty() {
		u, w, err := cs.heap.DeleteMin()
		if err != nil || u == target {
			return
		}
		data := *cs.heap.GetData(u)

		if sub >= 1 && !data.fromClique {
			cs.g.ForOutShortcutsOf(sub, u, func(to Index, sw Weight) {
				relax(u, to, w+sw, INVALID_EDGE_ID, true)
			})
		}

		cs.g.ForOutEdgesOf(u, func(e *OutEdge) {
			if sub >= 1 && mlp.GetHighestDifferingLevel(u, e.head) < sub {
				return
			}
			if mlp.GetCell(level, e.head) != sourceCell {
				return
			}
			relax(u, e.head, w+e.weight, e.edgeId, false)
		})
	}
}

// GetWeight. distance from the last source to v, INVALID_WEIGHT if v was not settled.
func (cs *CellSearch) GetWeight(v Index) Weight {
	if !cs.heap.WasRemoved(v) {
		return INVALID_WEIGHT
	}
	return cs.heap.GetKey(v)
}

// PathTo. hops from the last source to target, nil if target was not settled.
func (cs *CellSearch) PathTo(level uint8, target Index) []CellSearchHop {
	if !cs.heap.WasRemoved(target) {
		return nil
	}
	hops := make([]CellSearchHop, 0)
	for v := target; ; {
		data := cs.heap.GetData(v)
		if data.parent == v {
			break
		}
		hop := CellSearchHop{From: data.parent, To: v, Edge: data.edge}
		if data.fromClique {
			hop.Level = level - 1
		}
		hops = append(hops, hop)
		v = data.parent
	}
	for i, j := 0, len(hops)-1; i < j; i, j = i+1, j-1 {
		hops[i], hops[j] = hops[j], hops[i]
	}
	return hops
}
