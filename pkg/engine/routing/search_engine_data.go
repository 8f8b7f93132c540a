package routing

import (
	"sync"

	da "github.com/lintang-b-s/navigatorx-mld/pkg/datastructure"
)

// heapData. search tree entry of a vertex. for a seed vertex parent is the vertex itself and edge the
// phantom segment edge it was seeded through. level is only meaningful when fromClique is set:
// the vertex was reached over a shortcut of that level.
type heapData struct {
	parent     da.Index
	edge       da.Index
	level      uint8
	fromClique bool
}

func (hd heapData) isSeed(node da.Index) bool {
	return hd.parent == node
}

// QueryHeaps. forward and reverse heap of one query.
type QueryHeaps struct {
	Forward *da.QueryHeap[heapData]
	Reverse *da.QueryHeap[heapData]
}

func NewQueryHeaps(numVertices int) *QueryHeaps {
	return &QueryHeaps{
		Forward: da.NewQueryHeap[heapData](numVertices),
		Reverse: da.NewQueryHeap[heapData](numVertices),
	}
}

func (qh *QueryHeaps) Clear() {
	qh.Forward.Clear()
	qh.Reverse.Clear()
}

// SearchEngineData. pool of query heaps sized for one graph. every concurrent query holds its own pair.
type SearchEngineData struct {
	numVertices int
	pool        sync.Pool
}

func NewSearchEngineData(numVertices int) *SearchEngineData {
	sed := &SearchEngineData{numVertices: numVertices}
	sed.pool = sync.Pool{
		New: func() any {
			return NewQueryHeaps(numVertices)
		},
	}
	return sed
}

// Acquire. cleared heaps for one query, hand them back with Release.
func (sed *SearchEngineData) Acquire() *QueryHeaps {
	heaps := sed.pool.Get().(*QueryHeaps)
	heaps.Clear()
	return heaps
}

func (sed *SearchEngineData) Release(heaps *QueryHeaps) {
	if heaps == nil || heaps.Forward.Capacity() != sed.numVertices {
		return
	}
	sed.pool.Put(heaps)
}
