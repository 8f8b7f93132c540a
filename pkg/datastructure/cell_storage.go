package datastructure

import (
	"fmt"
	"sort"
)

/*
Cell. boundary and shortcut matrix of one cell on one level.

Customizable Route Planning In Road Networks, Delling et al., Page 11:
First, for each cell C in the overlay graph, we keep three integers: pC (the number of entry points), qC
(the number of exit points), and fC (the position in W where the first entry of C’s matrix is represented).
During customization and queries, the cost of the shortcut between the i-th entry point and the j-th exit
point of C will be stored in W [fC + iqC + j].

here the graph is node based, so an entry point is a vertex of C with an incoming border edge and an
exit point is a vertex of C with an outgoing border edge.
*/
type Cell struct {
	id         Pv
	level      uint8
	entries    []Index // p_c entry vertices, ascending
	exits      []Index // q_c exit vertices, ascending
	entryIdx   map[Index]int32
	exitIdx    map[Index]int32
	cellOffset Index // f_c
}

func (c *Cell) GetId() Pv {
	return c.id
}

func (c *Cell) GetLevel() uint8 {
	return c.level
}

func (c *Cell) GetEntries() []Index {
	return c.entries
}

func (c *Cell) GetExits() []Index {
	return c.exits
}

func (c *Cell) NumEntryPoints() int {
	return len(c.entries)
}

func (c *Cell) NumExitPoints() int {
	return len(c.exits)
}

func (c *Cell) EntryIndex(v Index) (int, bool) {
	i, ok := c.entryIdx[v]
	return int(i), ok
}

func (c *Cell) ExitIndex(v Index) (int, bool) {
	i, ok := c.exitIdx[v]
	return int(i), ok
}

type levelCells struct {
	cells []*Cell // sorted by cell id
	byId  map[Pv]int
}

// CellStorage. overlay of the multilevel partition: boundary vertices of every cell on every level and
// the one-dimensional shortcut weight array W.
type CellStorage struct {
	levelInfo *LevelInfo
	levels    []levelCells // index = level-1
	weights   []Weight
}

// NewCellStorage. collect the boundary vertices of every cell. all shortcut weights start as INVALID_WEIGHT.
func NewCellStorage(g *Graph, mlp *MultilevelPartition) *CellStorage {
	numLevels := mlp.GetNumberOfLevels()
	cs := &CellStorage{
		levelInfo: mlp.GetLevelInfo(),
		levels:    make([]levelCells, numLevels),
	}

	cellsByLevel := make([]map[Pv]*Cell, numLevels)
	for l := range cellsByLevel {
		cellsByLevel[l] = make(map[Pv]*Cell)
	}

	getCell := func(level uint8, v Index) *Cell {
		id := mlp.GetCell(level, v)
		c, ok := cellsByLevel[level-1][id]
		if !ok {
			c = &Cell{id: id, level: level, entryIdx: make(map[Index]int32), exitIdx: make(map[Index]int32)}
			cellsByLevel[level-1][id] = c
		}
		return c
	}

	g.ForOutEdges(func(e *OutEdge) {
		borderLevel := mlp.GetHighestDifferingLevel(e.tail, e.head)
		// a border edge of level l is a border edge of every level below l
		for l := uint8(1); l <= borderLevel; l++ {
			tailCell := getCell(l, e.tail)
			if _, ok := tailCell.exitIdx[e.tail]; !ok {
				tailCell.exitIdx[e.tail] = 0
				tailCell.exits = append(tailCell.exits, e.tail)
			}
			headCell := getCell(l, e.head)
			if _, ok := headCell.entryIdx[e.head]; !ok {
				headCell.entryIdx[e.head] = 0
				headCell.entries = append(headCell.entries, e.head)
			}
		}
	})

	offset := Index(0)
	for l := 0; l < numLevels; l++ {
		cells := make([]*Cell, 0, len(cellsByLevel[l]))
		for _, c := range cellsByLevel[l] {
			cells = append(cells, c)
		}
		sort.Slice(cells, func(i, j int) bool { return cells[i].id < cells[j].id })

		byId := make(map[Pv]int, len(cells))
		for i, c := range cells {
			sort.Slice(c.entries, func(a, b int) bool { return c.entries[a] < c.entries[b] })
			sort.Slice(c.exits, func(a, b int) bool { return c.exits[a] < c.exits[b] })
			for k, v := range c.entries {
				c.entryIdx[v] = int32(k)
			}
			for k, v := range c.exits {
				c.exitIdx[v] = int32(k)
			}
			c.cellOffset = offset
			offset += Index(len(c.entries) * len(c.exits))
			byId[c.id] = i
		}
		cs.levels[l] = levelCells{cells: cells, byId: byId}
	}

	cs.weights = make([]Weight, offset)
	for i := range cs.weights {
		cs.weights[i] = INVALID_WEIGHT
	}
	return cs
}

func (cs *CellStorage) GetNumberOfLevels() int {
	return len(cs.levels)
}

// GetCell. the level-l cell containing a vertex with packed cell number pv, nil if it has no boundary.
func (cs *CellStorage) GetCell(level uint8, pv Pv) *Cell {
	lc := &cs.levels[level-1]
	i, ok := lc.byId[cs.levelInfo.TruncateToLevel(pv, level)]
	if !ok {
		return nil
	}
	return lc.cells[i]
}

func (cs *CellStorage) GetCellsInLevel(level uint8) []*Cell {
	return cs.levels[level-1].cells
}

func (cs *CellStorage) GetWeight(c *Cell, entry, exit int) Weight {
	return cs.weights[int(c.cellOffset)+entry*len(c.exits)+exit]
}

func (cs *CellStorage) SetWeight(c *Cell, entry, exit int, w Weight) {
	cs.weights[int(c.cellOffset)+entry*len(c.exits)+exit] = w
}

func (cs *CellStorage) GetWeightVectorSize() int {
	return len(cs.weights)
}

func (cs *CellStorage) GetWeights() []Weight {
	return cs.weights
}

func (cs *CellStorage) SetWeights(w []Weight) error {
	if len(w) != len(cs.weights) {
		return fmt.Errorf("shortcut weight vector has %d entries, cell storage expects %d", len(w), len(cs.weights))
	}
	copy(cs.weights, w)
	return nil
}

func (cs *CellStorage) ForOutShortcutsOf(level uint8, u Index, pv Pv, handle func(to Index, w Weight)) {
	c := cs.GetCell(level, pv)
	if c == nil {
		return
	}
	row, ok := c.entryIdx[u]
	if !ok {
		return
	}
	base := int(c.cellOffset) + int(row)*len(c.exits)
	for j, to := range c.exits {
		w := cs.weights[base+j]
		if w == INVALID_WEIGHT || to == u {
			continue
		}
		handle(to, w)
	}
}

func (cs *CellStorage) ForInShortcutsOf(level uint8, v Index, pv Pv, handle func(from Index, w Weight)) {
	c := cs.GetCell(level, pv)
	if c == nil {
		return
	}
	col, ok := c.exitIdx[v]
	if !ok {
		return
	}
	q := len(c.exits)
	for i, from := range c.entries {
		w := cs.weights[int(c.cellOffset)+i*q+int(col)]
		if w == INVALID_WEIGHT || from == v {
			continue
		}
		handle(from, w)
	}
}
