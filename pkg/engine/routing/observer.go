package routing

import (
	da "github.com/lintang-b-s/navigatorx-mld/pkg/datastructure"
)

type DropReason uint8

const (
	// candidate was not settled by both searches
	DROP_NOT_SETTLED DropReason = iota
	// weight at reconstruction differs from the weight recorded at its latest meeting
	DROP_WEIGHT_MISMATCH
	// a shortcut on the path could not be unpacked
	DROP_UNPACK_FAILED
	// the route passes a vertex twice
	DROP_NOT_SIMPLE
	DROP_STRETCH
	DROP_OVERLAP
	// same edges as the primary or an accepted alternative
	DROP_DUPLICATE
	// too similar to an accepted alternative
	DROP_SIMILAR
)

func (d DropReason) String() string {
	switch d {
	case DROP_NOT_SETTLED:
		return "not_settled"
	case DROP_WEIGHT_MISMATCH:
		return "weight_mismatch"
	case DROP_UNPACK_FAILED:
		return "unpack_failed"
	case DROP_NOT_SIMPLE:
		return "not_simple"
	case DROP_STRETCH:
		return "stretch"
	case DROP_OVERLAP:
		return "overlap"
	case DROP_DUPLICATE:
		return "duplicate"
	case DROP_SIMILAR:
		return "similar"
	default:
		return "unknown"
	}
}

// IsInconsistency. drops caused by search state, as opposed to the plausibility filters.
func (d DropReason) IsInconsistency() bool {
	return d == DROP_NOT_SETTLED || d == DROP_WEIGHT_MISMATCH || d == DROP_UNPACK_FAILED
}

type IterationStats struct {
	Iteration  int
	Middle     da.Index
	Weight     da.Weight
	ForwardMin da.Weight
	ReverseMin da.Weight
}

type QueryStats struct {
	Found            bool
	Iterations       int
	RawCandidates    int
	UniqueCandidates int
	Alternatives     int
	// candidates dropped because of inconsistent search state
	Dropped int
	// candidates rejected by the plausibility filters
	Filtered int
}

// SearchObserver. receives the progress of a query. called from the query goroutine only.
type SearchObserver interface {
	OnIteration(stats IterationStats)
	OnCandidateDropped(candidate da.Index, reason DropReason)
	OnQueryDone(stats QueryStats)
}

type NoopObserver struct{}

func (NoopObserver) OnIteration(IterationStats)              {}
func (NoopObserver) OnCandidateDropped(da.Index, DropReason) {}
func (NoopObserver) OnQueryDone(QueryStats)                  {}
