package routing

import (
	"context"

	da "github.com/lintang-b-s/navigatorx-mld/pkg/datastructure"
	"github.com/lintang-b-s/navigatorx-mld/pkg/util"
	"golang.org/x/exp/slices"
)

/*
AlternativePathSearch. alternative routes with the via-vertex approach on the multilevel overlay,
see Alternative Routes in Road Networks, Ittai Abraham, Daniel Delling, et al.:

An alternative path is a concatenation of two shortest paths: from s to a via vertex v and from v to t.
... we grow bidirectional Dijkstra beyond the meeting point of the two searches. Every vertex scanned by
both searches is a potential via vertex.

the bidirectional multilevel search keeps running while forwardMin + reverseMin < best * OverlapFactor and
collects every vertex that was the meeting vertex at some point, plus every vertex where the two searches
met with a weight of at most best * OverlapFactor. after the search:

 1. candidates are sorted and deduplicated.
 2. the primary route is built through the final meeting vertex (or the direct segment route).
 3. every other candidate becomes a via route s -> c -> t if c was settled by both searches and its weight
    still equals the weight recorded at its latest meeting.
 4. via routes are unpacked to base edges and filtered: simple, stretch <= MaxStretch, overlap with the
    primary route <= MaxOverlap, not a duplicate and not too similar to a better alternative.
 5. the remaining routes are ordered by stretch, then overlap, and truncated to MaxAlternatives.

heaps must be cleared by the caller (SearchEngineData.Acquire does that). a cancelled ctx aborts the search
between two iterations with ctx.Err().
*/
func AlternativePathSearch(ctx context.Context, facade Facade, heaps *QueryHeaps, phantoms da.PhantomNodes,
	params AlternativeParams, observer SearchObserver) (*RouteResult, error) {
	if observer == nil {
		observer = NoopObserver{}
	}
	params = params.normalize()

	search, err := runBidirectionalSearch(ctx, facade, heaps, phantoms, params.OverlapFactor, true, observer)
	if err != nil {
		return nil, err
	}

	result := &RouteResult{Phantoms: phantoms}
	primary, ok := search.buildPrimaryRoute()
	if !ok {
		result.Stats = search.stats
		observer.OnQueryDone(result.Stats)
		return result, nil
	}
	result.Found = true
	result.Routes = append(result.Routes, primary)

	if params.MaxAlternatives > 0 && search.state.middle != da.INVALID_VERTEX_ID {
		alternatives := search.buildAlternativeRoutes(&result.Routes[0], params, observer)
		result.Routes = append(result.Routes, alternatives...)
	}

	search.stats.Found = true
	search.stats.Alternatives = len(result.Routes) - 1
	result.Stats = search.stats
	observer.OnQueryDone(result.Stats)
	return result, nil
}

// ShortestPathSearch. optimal route only: the same bidirectional search with OverlapFactor 1 and no
// candidate collection.
func ShortestPathSearch(ctx context.Context, facade Facade, heaps *QueryHeaps, phantoms da.PhantomNodes,
	observer SearchObserver) (*RouteResult, error) {
	if observer == nil {
		observer = NoopObserver{}
	}
	search, err := runBidirectionalSearch(ctx, facade, heaps, phantoms, 1.0, false, observer)
	if err != nil {
		return nil, err
	}
	result := &RouteResult{Phantoms: phantoms}
	if primary, ok := search.buildPrimaryRoute(); ok {
		result.Found = true
		result.Routes = []Route{primary}
	}
	search.stats.Found = result.Found
	result.Stats = search.stats
	observer.OnQueryDone(result.Stats)
	return result, nil
}

// bidirectionalSearch. state left behind by runBidirectionalSearch, input of route construction.
type bidirectionalSearch struct {
	sc         *stepContext
	facade     Facade
	heaps      *QueryHeaps
	phantoms   da.PhantomNodes
	state      *meetingState
	candidates []da.Index // deduplicated, ascending
	directEdge da.Index
	stats      QueryStats
}

func runBidirectionalSearch(ctx context.Context, facade Facade, heaps *QueryHeaps, phantoms da.PhantomNodes,
	overlapFactor float64, collect bool, observer SearchObserver) (*bidirectionalSearch, error) {
	directWeight, directEdge := phantoms.DirectWeight()
	bs := &bidirectionalSearch{
		sc:         newStepContext(facade, phantoms),
		facade:     facade,
		heaps:      heaps,
		phantoms:   phantoms,
		state:      newMeetingState(directWeight),
		directEdge: directEdge,
	}
	bs.sc.collect = collect
	bs.sc.candidateFactor = overlapFactor
	bs.initializeHeaps()

	forward, reverse := heaps.Forward, heaps.Reverse
	forwardMin, reverseMin := da.Weight(0), da.Weight(0)
	candidates := make([]da.Index, 0, 16)

	for (!forward.Empty() || !reverse.Empty()) &&
		float64(forwardMin+reverseMin) < float64(bs.state.weight)*overlapFactor {
		if util.StopConcurrentOperation(ctx) {
			return nil, ctx.Err()
		}

		// the meeting vertex is collected after every single step, a vertex promoted by the forward step
		// and superseded by the reverse step of the same iteration is still a candidate.
		if !forward.Empty() {
			bs.sc.routingStep(FORWARD_DIRECTION, forward, reverse, bs.state)
			if !forward.Empty() {
				forwardMin = forward.MinKey()
			}
			if collect && bs.state.middle != da.INVALID_VERTEX_ID {
				candidates = append(candidates, bs.state.middle)
			}
		}
		if !reverse.Empty() {
			bs.sc.routingStep(REVERSE_DIRECTION, reverse, forward, bs.state)
			if !reverse.Empty() {
				reverseMin = reverse.MinKey()
			}
			if collect && bs.state.middle != da.INVALID_VERTEX_ID {
				candidates = append(candidates, bs.state.middle)
			}
		}

		bs.stats.Iterations++
		observer.OnIteration(IterationStats{
			Iteration:  bs.stats.Iterations,
			Middle:     bs.state.middle,
			Weight:     bs.state.weight,
			ForwardMin: forwardMin,
			ReverseMin: reverseMin,
		})
	}

	if collect {
		candidates = append(candidates, bs.state.meetings...)
	}
	bs.stats.RawCandidates = len(candidates)
	bs.candidates = dedupCandidates(candidates)
	bs.stats.UniqueCandidates = len(bs.candidates)
	return bs, nil
}

/*
initializeHeaps. the forward search starts at both endpoints of the source segment: V with the remaining
weight of the forward edge behind the source, U with the remaining weight of the reverse edge. the reverse
search starts at the target segment endpoints with the weight from the endpoint up to the target.
*/
func (bs *bidirectionalSearch) initializeHeaps() {
	s, t := bs.phantoms.Source, bs.phantoms.Target
	if s.ForwardEnabled() {
		insertSeed(bs.heaps.Forward, s.V, s.ForwardTotal-s.ForwardWeight, s.ForwardEdge)
	}
	if s.ReverseEnabled() {
		insertSeed(bs.heaps.Forward, s.U, s.ReverseTotal-s.ReverseWeight, s.ReverseEdge)
	}
	if t.ForwardEnabled() {
		insertSeed(bs.heaps.Reverse, t.U, t.ForwardWeight, t.ForwardEdge)
	}
	if t.ReverseEnabled() {
		insertSeed(bs.heaps.Reverse, t.V, t.ReverseWeight, t.ReverseEdge)
	}
}

func insertSeed(heap *da.QueryHeap[heapData], node da.Index, weight da.Weight, edge da.Index) {
	data := heapData{parent: node, edge: edge}
	if !heap.WasInserted(node) {
		heap.Insert(node, weight, data)
		return
	}
	if weight < heap.GetKey(node) {
		*heap.GetData(node) = data
		heap.DecreaseKey(node, weight)
	}
}

// dedupCandidates. sort and drop repeated vertices, in place.
func dedupCandidates(candidates []da.Index) []da.Index {
	slices.Sort(candidates)
	return slices.Compact(candidates)
}
