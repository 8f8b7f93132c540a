package datastructure

import (
	"fmt"
	"math/bits"
)

// MultilevelPartition. store every cell information of each vertex on every level.
// levels are numbered 1..L, level 1 has the smallest cells. cell ids of level l are local to
// their level-(l+1) parent cell.
type MultilevelPartition struct {
	numCells    []uint32 // numCells[l-1] = max number of level-l cells inside one parent cell
	levelInfo   *LevelInfo
	cellNumbers []Pv
}

func NewMultilevelPartition(numLevels, numVertices int) *MultilevelPartition {
	return &MultilevelPartition{
		numCells:    make([]uint32, numLevels),
		cellNumbers: make([]Pv, numVertices),
	}
}

func (mp *MultilevelPartition) SetNumberOfCellsInLevel(level int, numCells int) {
	mp.numCells[level-1] = uint32(numCells)
}

// ComputeBitmap. compute the bit offset of every level. must be called before SetCell.
func (mp *MultilevelPartition) ComputeBitmap() error {
	offset := make([]uint8, len(mp.numCells)+1)
	for i := 0; i < len(mp.numCells); i++ {
		width := 0
		if mp.numCells[i] > 1 {
			width = bits.Len32(mp.numCells[i] - 1)
		}
		total := int(offset[i]) + width
		if total > 64 {
			return fmt.Errorf("multilevel partition needs %d bits per vertex, max is 64", total)
		}
		offset[i+1] = uint8(total)
	}
	mp.levelInfo = NewLevelInfo(offset)
	return nil
}

func (mp *MultilevelPartition) SetCell(level int, v Index, cellId int) {
	mp.cellNumbers[v] = mp.levelInfo.withCell(mp.cellNumbers[v], level, Index(cellId))
}

// GetCell. identifier of the level-l cell containing v, unique across the whole level.
func (mp *MultilevelPartition) GetCell(level uint8, v Index) Pv {
	return mp.levelInfo.TruncateToLevel(mp.cellNumbers[v], level)
}

func (mp *MultilevelPartition) GetLocalCell(level uint8, v Index) Index {
	return mp.levelInfo.GetCellNumberOnLevel(level, mp.cellNumbers[v])
}

func (mp *MultilevelPartition) GetHighestDifferingLevel(u, v Index) uint8 {
	return mp.levelInfo.GetHighestDifferingLevel(mp.cellNumbers[u], mp.cellNumbers[v])
}

func (mp *MultilevelPartition) GetNumberOfVertices() int {
	return len(mp.cellNumbers)
}

func (mp *MultilevelPartition) GetNumberOfLevels() int {
	return len(mp.numCells)
}

func (mp *MultilevelPartition) GetNumberOfCellsInLevel(level int) int {
	return int(mp.numCells[level-1])
}

func (mp *MultilevelPartition) GetLevelInfo() *LevelInfo {
	return mp.levelInfo
}

func (mp *MultilevelPartition) GetCellNumber(u Index) Pv {
	return mp.cellNumbers[u]
}

func (mp *MultilevelPartition) setCellNumber(u Index, pv Pv) {
	mp.cellNumbers[u] = pv
}
