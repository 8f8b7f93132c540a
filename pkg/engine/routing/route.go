package routing

import (
	"errors"

	da "github.com/lintang-b-s/navigatorx-mld/pkg/datastructure"
)

var ErrNoRoute = errors.New("no route between source and target")

// Route. one route of a query. ForwardPath holds the base edges from the source up to Via, ReversePath the
// base edges from Via to the target. the first and last edge are the phantom segments, driven only partially.
// Via is INVALID_VERTEX_ID for a route that stays on the shared segment of source and target.
type Route struct {
	Via         da.Index
	Weight      da.Weight
	Distance    float64 // meter
	ForwardPath []da.Index
	ReversePath []da.Index
	Vertices    []da.Index // vertices passed, in travel order
	Stretch     float64    // Weight / weight of the primary route
	Overlap     float64    // fraction of the edges shared with the primary route
	// ViaOnCellBorder. the via vertex is a boundary vertex of its level-1 cell
	ViaOnCellBorder bool
}

// Edges. every base edge of the route in travel order.
func (r *Route) Edges() []da.Index {
	edges := make([]da.Index, 0, len(r.ForwardPath)+len(r.ReversePath))
	edges = append(edges, r.ForwardPath...)
	return append(edges, r.ReversePath...)
}

func (r *Route) NumberOfEdges() int {
	return len(r.ForwardPath) + len(r.ReversePath)
}

// RouteResult. Routes[0] is the primary (optimal) route, the alternatives follow by ascending stretch.
// Found is false when the target is unreachable.
type RouteResult struct {
	Found    bool
	Phantoms da.PhantomNodes
	Routes   []Route
	Stats    QueryStats
}

func (rr *RouteResult) Primary() *Route {
	if !rr.Found || len(rr.Routes) == 0 {
		return nil
	}
	return &rr.Routes[0]
}

func (rr *RouteResult) Alternatives() []Route {
	if len(rr.Routes) < 2 {
		return nil
	}
	return rr.Routes[1:]
}
