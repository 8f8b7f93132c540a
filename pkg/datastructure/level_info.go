package datastructure

import "math/bits"

// LevelInfo. layout of a packed cell number. level l owns the bits [offset[l-1], offset[l]) with level 1 in
// the lowest bits, so shifting low bits away walks up the cell hierarchy.
type LevelInfo struct {
	offset []uint8
	mask   []Pv // mask[l] selects the bits of level l, mask[0] is unused
}

func NewLevelInfo(offset []uint8) *LevelInfo {
	mask := make([]Pv, len(offset))
	for l := 1; l < len(offset); l++ {
		width := offset[l] - offset[l-1]
		mask[l] = ^(^Pv(0) << width) << offset[l-1]
	}
	return &LevelInfo{offset: offset, mask: mask}
}

// withCell. cellNumber with the level-l bits replaced by the local cell id.
func (li *LevelInfo) withCell(cellNumber Pv, l int, cellId Index) Pv {
	return (cellNumber &^ li.mask[l]) | ((Pv(cellId) << li.offset[l-1]) & li.mask[l])
}

// GetCellNumberOnLevel. local id of the level-l cell inside its parent cell.
func (li *LevelInfo) GetCellNumberOnLevel(l uint8, cellNumber Pv) Index {
	return Index((cellNumber & li.mask[l]) >> li.offset[l-1])
}

// GetHighestDifferingLevel. level owning the most significant differing bit, 0 for equal cell numbers.
func (li *LevelInfo) GetHighestDifferingLevel(c1, c2 Pv) uint8 {
	diff := c1 ^ c2
	if diff == 0 {
		return 0
	}
	top := bits.Len64(uint64(diff)) - 1
	for l := len(li.offset) - 1; l > 0; l-- {
		if top >= int(li.offset[l-1]) {
			return uint8(l)
		}
	}
	return 0
}

// TruncateToLevel. drops the bits below level l. the rest identifies the level-l cell on the whole level.
func (li *LevelInfo) TruncateToLevel(cellNumber Pv, l uint8) Pv {
	return cellNumber >> li.offset[l-1]
}
