package routing

import (
	"sync"

	lru "github.com/hashicorp/golang-lru/v2"
	da "github.com/lintang-b-s/navigatorx-mld/pkg/datastructure"
)

type PUCacheKey struct {
	From  da.Index
	To    da.Index
	Level uint8
}

func NewPUCacheKey(from, to da.Index, level uint8) PUCacheKey {
	return PUCacheKey{From: from, To: to, Level: level}
}

/*
PathUnpacker. Customizable Route Planning in Road Networks, Daniel Delling, et al. Page 12:

To unpack a level-i shortcut (v, w), we run bidirectional Dijkstra on level i − 1 restricted to the cell
containing the shortcut, and recursively unpack the level i-1 shortcuts of the resulting path. Since cells
are small, this is fast. To accelerate it further, we can store the unpacked paths of shortcuts we have
seen before (the cache).

here the cell search is unidirectional and stops once the exit vertex is settled. unpacked shortcuts are
cached as base edge lists, keyed by (from, to, level). the cached slices are shared, never modify them.
*/
type PathUnpacker struct {
	graph      *da.Graph
	cache      *lru.Cache[PUCacheKey, []da.Index]
	searchPool sync.Pool
}

func NewPathUnpacker(graph *da.Graph, cache *lru.Cache[PUCacheKey, []da.Index]) *PathUnpacker {
	pu := &PathUnpacker{graph: graph, cache: cache}
	pu.searchPool = sync.Pool{
		New: func() any {
			return da.NewCellSearch(graph)
		},
	}
	return pu
}

// UnpackShortcut. base edges of the shortcut from -> to of the level cell containing both.
func (pu *PathUnpacker) UnpackShortcut(from, to da.Index, level uint8) ([]da.Index, bool) {
	if from == to {
		return []da.Index{}, true
	}
	key := NewPUCacheKey(from, to, level)
	if pu.cache != nil {
		if edges, ok := pu.cache.Get(key); ok {
			return edges, true
		}
	}

	search := pu.searchPool.Get().(*da.CellSearch)
	search.Run(level, from, to)
	hops := search.PathTo(level, to)
	pu.searchPool.Put(search)
	if hops == nil {
		return nil, false
	}

	edges := make([]da.Index, 0, len(hops))
	for _, hop := range hops {
		if hop.Edge != da.INVALID_EDGE_ID {
			edges = append(edges, hop.Edge)
			continue
		}
		sub, ok := pu.UnpackShortcut(hop.From, hop.To, hop.Level)
		if !ok {
			return nil, false
		}
		edges = append(edges, sub...)
	}

	if pu.cache != nil {
		pu.cache.Add(key, edges)
	}
	return edges, true
}
