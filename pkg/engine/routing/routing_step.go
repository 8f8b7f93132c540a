package routing

import (
	da "github.com/lintang-b-s/navigatorx-mld/pkg/datastructure"
)

type searchDirection uint8

const (
	FORWARD_DIRECTION searchDirection = iota
	REVERSE_DIRECTION
)

// meetingState. best meeting vertex found so far. meetingWeight holds the path weight of the latest
// meeting at every vertex that was the meeting vertex or met within the candidate bound, meetings lists
// those vertices in meeting order.
type meetingState struct {
	middle        da.Index
	weight        da.Weight
	meetingWeight map[da.Index]da.Weight
	meetings      []da.Index
}

func newMeetingState(initialWeight da.Weight) *meetingState {
	return &meetingState{
		middle:        da.INVALID_VERTEX_ID,
		weight:        initialWeight,
		meetingWeight: make(map[da.Index]da.Weight),
		meetings:      make([]da.Index, 0, 16),
	}
}

// stepContext. per query constants shared by both search directions.
type stepContext struct {
	facade  Facade
	sources []da.Index // seed vertices of the forward search
	targets []da.Index // seed vertices of the reverse search
	// source and target share a segment and the segment can be driven directly from source to target
	directAllowed     bool
	forceLoopForward  bool
	forceLoopBackward bool
	// record meetings with weight <= best * candidateFactor as candidates
	collect         bool
	candidateFactor float64
}

func newStepContext(facade Facade, phantoms da.PhantomNodes) *stepContext {
	s, t := phantoms.Source, phantoms.Target
	sc := &stepContext{
		facade:            facade,
		sources:           make([]da.Index, 0, 2),
		targets:           make([]da.Index, 0, 2),
		forceLoopForward:  phantoms.NeedsLoopForward(),
		forceLoopBackward: phantoms.NeedsLoopBackward(),
	}
	if s.ForwardEnabled() {
		sc.sources = append(sc.sources, s.V)
	}
	if s.ReverseEnabled() {
		sc.sources = append(sc.sources, s.U)
	}
	if t.ForwardEnabled() {
		sc.targets = append(sc.targets, t.U)
	}
	if t.ReverseEnabled() {
		sc.targets = append(sc.targets, t.V)
	}

	if s.SameSegment(t) {
		forwardDirect := s.ForwardEnabled() && t.ForwardEnabled() && !sc.forceLoopForward
		backwardDirect := s.ReverseEnabled() && t.ReverseEnabled() && !sc.forceLoopBackward
		sc.directAllowed = forwardDirect || backwardDirect
	}
	return sc
}

/*
queryLevel. Customizable Route Planning in Road Networks, Daniel Delling, et al. Page 9:

To perform an s–t query, we run bidirectional Dijkstra on the graph consisting of the union of H_{st} and
the cells on the lowest level containing s and t. ... the search graph at vertex u uses the highest level
on which u lies in a different cell than both s and t.

with several seed vertices per endpoint (the endpoints of the phantom segments) the level of u is the minimum
over all seeds of the highest differing level between u and that seed. level 0 means the base graph.
*/
func (sc *stepContext) queryLevel(u da.Index) uint8 {
	level := uint8(255)
	for _, s := range sc.sources {
		if l := sc.facade.GetHighestDifferingLevel(s, u); l < level {
			level = l
		}
	}
	for _, t := range sc.targets {
		if l := sc.facade.GetHighestDifferingLevel(t, u); l < level {
			level = l
		}
	}
	if level == 255 {
		return 0
	}
	return level
}

// isSegmentUTurn. meeting at a vertex seeded in both heaps when source and target share a segment
// means leaving the segment only to turn around on it. such meetings are ignored whenever the segment
// can be driven directly, that direct route already seeds the best weight.
func (sc *stepContext) isSegmentUTurn(node da.Index, active, other *da.QueryHeap[heapData]) bool {
	if !sc.directAllowed {
		return false
	}
	return active.GetData(node).isSeed(node) && other.GetData(node).isSeed(node)
}

/*
routingStep. one settle step of the bidirectional multilevel dijkstra:

 1. extract the minimum u of the active heap.
 2. if the opposite search has reached u and the combined weight beats the best known weight, u becomes
    the meeting vertex. when collecting, every meeting within best * candidateFactor is recorded as a
    candidate, ties with the best weight included, so the search spaces intersection is harvested.
 3. relax the shortcuts of the query level cell of u, unless u itself was reached over a shortcut.
 4. relax the base edges of u that cross a cell border at the query level or above (every base edge on
    level 0).

for the reverse direction the edges are relaxed backwards, (ForInEdgesOf and ForInShortcutsOf).
*/
func (sc *stepContext) routingStep(dir searchDirection, active, other *da.QueryHeap[heapData],
	state *meetingState) {
	node, weight, err := active.DeleteMin()
	if err != nil {
		return
	}

	if other.WasInserted(node) && !sc.isSegmentUTurn(node, active, other) {
		pathWeight := weight + other.GetKey(node)
		improved := pathWeight < state.weight
		if improved {
			state.middle = node
			state.weight = pathWeight
		}
		if improved || sc.collect {
			sc.recordMeeting(state, node, pathWeight)
		}
	}

	sc.relaxOutgoingEdges(dir, active, node, weight)
}

// recordMeeting. a vertex met before always gets its latest weight, once settled by both searches that
// weight is exact.
func (sc *stepContext) recordMeeting(state *meetingState, node da.Index, pathWeight da.Weight) {
	_, met := state.meetingWeight[node]
	if !met && node != state.middle && float64(pathWeight) > float64(state.weight)*sc.candidateFactor {
		return
	}
	state.meetingWeight[node] = pathWeight
	if sc.collect {
		state.meetings = append(state.meetings, node)
	}
}

func (sc *stepContext) relaxOutgoingEdges(dir searchDirection, active *da.QueryHeap[heapData],
	node da.Index, weight da.Weight) {
	level := sc.queryLevel(node)
	data := *active.GetData(node)

	if level >= 1 && !data.fromClique {
		if dir == FORWARD_DIRECTION {
			sc.facade.ForOutShortcutsOf(level, node, func(to da.Index, w da.Weight) {
				relaxEdge(active, node, to, weight+w, heapData{parent: node, edge: da.INVALID_EDGE_ID,
					level: level, fromClique: true})
			})
		} else {
			sc.facade.ForInShortcutsOf(level, node, func(from da.Index, w da.Weight) {
				relaxEdge(active, node, from, weight+w, heapData{parent: node, edge: da.INVALID_EDGE_ID,
					level: level, fromClique: true})
			})
		}
	}

	if dir == FORWARD_DIRECTION {
		sc.facade.ForOutEdgesOf(node, func(e *da.OutEdge) {
			to := e.GetHead()
			if level >= 1 && sc.facade.GetHighestDifferingLevel(node, to) < level {
				return
			}
			relaxEdge(active, node, to, weight+e.GetWeight(), heapData{parent: node, edge: e.GetEdgeId()})
		})
		return
	}

	sc.facade.ForInEdgesOf(node, func(e *da.InEdge) {
		from := e.GetTail()
		if level >= 1 && sc.facade.GetHighestDifferingLevel(node, from) < level {
			return
		}
		relaxEdge(active, node, from, weight+e.GetWeight(), heapData{parent: node, edge: e.GetEdgeId()})
	})
}

func relaxEdge(heap *da.QueryHeap[heapData], from, to da.Index, newWeight da.Weight, data heapData) {
	if to == from {
		return
	}
	if !heap.WasInserted(to) {
		heap.Insert(to, newWeight, data)
		return
	}
	if heap.WasRemoved(to) || newWeight >= heap.GetKey(to) {
		return
	}
	*heap.GetData(to) = data
	heap.DecreaseKey(to, newWeight)
}
