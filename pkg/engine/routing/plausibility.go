package routing

import (
	"math"
	"sort"

	da "github.com/lintang-b-s/navigatorx-mld/pkg/datastructure"
	"golang.org/x/exp/slices"
)

// buildAlternativeRoutes. turn the collected candidates into filtered, ranked via routes.
func (bs *bidirectionalSearch) buildAlternativeRoutes(primary *Route, params AlternativeParams,
	observer SearchObserver) []Route {
	forward, reverse := bs.heaps.Forward, bs.heaps.Reverse
	primaryEdges := primary.Edges()
	primarySet := edgeSet(primaryEdges)
	maxWeight := float64(primary.Weight) * params.MaxStretch

	drop := func(c da.Index, reason DropReason) {
		if reason.IsInconsistency() {
			bs.stats.Dropped++
		} else {
			bs.stats.Filtered++
		}
		observer.OnCandidateDropped(c, reason)
	}

	viaRoutes := make([]Route, 0, len(bs.candidates))
	for _, c := range bs.candidates {
		if c == primary.Via {
			continue
		}
		if !forward.WasRemoved(c) || !reverse.WasRemoved(c) {
			drop(c, DROP_NOT_SETTLED)
			continue
		}
		weight := forward.GetKey(c) + reverse.GetKey(c)
		if recorded, ok := bs.state.meetingWeight[c]; !ok || recorded != weight {
			drop(c, DROP_WEIGHT_MISMATCH)
			continue
		}
		if float64(weight) > maxWeight {
			drop(c, DROP_STRETCH)
			continue
		}

		route, ok := bs.buildViaRoute(c, weight)
		if !ok {
			drop(c, DROP_UNPACK_FAILED)
			continue
		}
		if !isSimplePath(route.Vertices) {
			drop(c, DROP_NOT_SIMPLE)
			continue
		}

		edges := route.Edges()
		if slices.Equal(edges, primaryEdges) {
			drop(c, DROP_DUPLICATE)
			continue
		}
		route.Stretch = stretch(route.Weight, primary.Weight)
		route.Overlap = sharedFraction(edges, primarySet)
		if route.Stretch > params.MaxStretch {
			drop(c, DROP_STRETCH)
			continue
		}
		if route.Overlap > params.MaxOverlap {
			drop(c, DROP_OVERLAP)
			continue
		}
		viaRoutes = append(viaRoutes, route)
	}

	rankRoutes(viaRoutes)

	accepted := make([]Route, 0, params.MaxAlternatives)
	acceptedSets := make([]map[da.Index]struct{}, 0, params.MaxAlternatives)
	for _, route := range viaRoutes {
		if len(accepted) >= params.MaxAlternatives {
			break
		}
		edges := route.Edges()
		reason, ok := acceptableAgainst(edges, accepted, acceptedSets, params.MaxSimilarity)
		if !ok {
			drop(route.Via, reason)
			continue
		}
		accepted = append(accepted, route)
		acceptedSets = append(acceptedSets, edgeSet(edges))
	}
	return accepted
}

// acceptableAgainst. edges must differ from every accepted route and share at most maxSimilarity of its
// edges with each of them.
func acceptableAgainst(edges []da.Index, accepted []Route, acceptedSets []map[da.Index]struct{},
	maxSimilarity float64) (DropReason, bool) {
	for i := range accepted {
		if slices.Equal(edges, accepted[i].Edges()) {
			return DROP_DUPLICATE, false
		}
		if sharedFraction(edges, acceptedSets[i]) > maxSimilarity {
			return DROP_SIMILAR, false
		}
	}
	return 0, true
}

// rankRoutes. ascending stretch, then ascending overlap, then via vertex id.
func rankRoutes(routes []Route) {
	sort.SliceStable(routes, func(i, j int) bool {
		if routes[i].Stretch != routes[j].Stretch {
			return routes[i].Stretch < routes[j].Stretch
		}
		if routes[i].Overlap != routes[j].Overlap {
			return routes[i].Overlap < routes[j].Overlap
		}
		return routes[i].Via < routes[j].Via
	})
}

func stretch(weight, optimal da.Weight) float64 {
	if optimal <= 0 {
		if weight <= 0 {
			return 1
		}
		return math.Inf(1)
	}
	return float64(weight) / float64(optimal)
}

func edgeSet(edges []da.Index) map[da.Index]struct{} {
	set := make(map[da.Index]struct{}, len(edges))
	for _, e := range edges {
		set[e] = struct{}{}
	}
	return set
}

// sharedFraction. fraction of edges contained in set.
func sharedFraction(edges []da.Index, set map[da.Index]struct{}) float64 {
	if len(edges) == 0 {
		return 0
	}
	shared := 0
	for _, e := range edges {
		if _, ok := set[e]; ok {
			shared++
		}
	}
	return float64(shared) / float64(len(edges))
}

func isSimplePath(vertices []da.Index) bool {
	seen := make(map[da.Index]struct{}, len(vertices))
	for _, v := range vertices {
		if _, ok := seen[v]; ok {
			return false
		}
		seen[v] = struct{}{}
	}
	return true
}
