package datastructure

import "math"

type Index uint32

// Weight. edge weight in deciseconds. non-negative and additive.
type Weight int64

// Pv. bit-packed cell numbers of a vertex on every level. lowest bits hold the level-1 cell.
type Pv uint64

const (
	INVALID_VERTEX_ID Index = math.MaxUint32
	INVALID_EDGE_ID   Index = math.MaxUint32
	// two INVALID_WEIGHT summed still fit in Weight.
	INVALID_WEIGHT Weight = math.MaxInt32
)

func MinWeight(a, b Weight) Weight {
	if a < b {
		return a
	}
	return b
}
