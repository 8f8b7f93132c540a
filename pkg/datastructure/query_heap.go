package datastructure

/*
QueryHeap. search frontier of one direction of a query, modelled after OSRM's query_heap:
https://github.com/Project-OSRM/osrm-backend/blob/master/include/util/query_heap.hpp

every vertex is inserted at most once per query. a vertex stays in the heap storage after it is
extracted (settled), so its final key and data can still be read while building the path.
Clear only resets the vertices touched by the previous query.
*/
type QueryHeap[D any] struct {
	heap     *MinHeap[Index]
	index    []int32 // vertex -> position in inserted, -1 if not inserted
	inserted []heapEntry[D]
}

type heapEntry[D any] struct {
	node     Index
	weight   Weight
	data     D
	heapNode *PriorityQueueNode[Index]
	removed  bool
}

func NewQueryHeap[D any](numVertices int) *QueryHeap[D] {
	index := make([]int32, numVertices)
	for i := range index {
		index[i] = -1
	}
	return &QueryHeap[D]{
		heap:     NewFourAryHeap[Index](),
		index:    index,
		inserted: make([]heapEntry[D], 0, 64),
	}
}

func (qh *QueryHeap[D]) Clear() {
	for i := range qh.inserted {
		qh.index[qh.inserted[i].node] = -1
	}
	qh.inserted = qh.inserted[:0]
	qh.heap.Clear()
}

func (qh *QueryHeap[D]) Capacity() int {
	return len(qh.index)
}

func (qh *QueryHeap[D]) Size() int {
	return qh.heap.Size()
}

func (qh *QueryHeap[D]) Empty() bool {
	return qh.heap.IsEmpty()
}

// MinKey. key of the top entry, INVALID_WEIGHT when empty.
func (qh *QueryHeap[D]) MinKey() Weight {
	return qh.heap.GetMinrank()
}

// Min. top vertex without removing it, INVALID_VERTEX_ID when empty.
func (qh *QueryHeap[D]) Min() Index {
	top, err := qh.heap.GetMin()
	if err != nil {
		return INVALID_VERTEX_ID
	}
	return top.GetItem()
}

func (qh *QueryHeap[D]) Insert(node Index, weight Weight, data D) {
	if qh.WasInserted(node) {
		panic("query heap: vertex inserted twice")
	}
	hn := NewPriorityQueueNode(weight, node)
	qh.index[node] = int32(len(qh.inserted))
	qh.inserted = append(qh.inserted, heapEntry[D]{node: node, weight: weight, data: data, heapNode: hn})
	qh.heap.Insert(hn)
}

func (qh *QueryHeap[D]) WasInserted(node Index) bool {
	return qh.index[node] >= 0
}

// WasRemoved. true once the vertex has been extracted (settled).
func (qh *QueryHeap[D]) WasRemoved(node Index) bool {
	pos := qh.index[node]
	return pos >= 0 && qh.inserted[pos].removed
}

func (qh *QueryHeap[D]) GetKey(node Index) Weight {
	pos := qh.index[node]
	if pos < 0 {
		return INVALID_WEIGHT
	}
	return qh.inserted[pos].weight
}

func (qh *QueryHeap[D]) GetData(node Index) *D {
	return &qh.inserted[qh.index[node]].data
}

// DeleteMin. extract the top vertex and mark it settled.
func (qh *QueryHeap[D]) DeleteMin() (Index, Weight, error) {
	top, err := qh.heap.ExtractMin()
	if err != nil {
		return INVALID_VERTEX_ID, INVALID_WEIGHT, err
	}
	entry := &qh.inserted[qh.index[top.GetItem()]]
	entry.removed = true
	entry.heapNode = nil
	return entry.node, entry.weight, nil
}

// DecreaseKey. lower the key of a vertex that is still in the heap. no-op for settled vertices
// or non-decreasing keys.
func (qh *QueryHeap[D]) DecreaseKey(node Index, weight Weight) {
	pos := qh.index[node]
	if pos < 0 {
		return
	}
	entry := &qh.inserted[pos]
	if entry.removed || weight >= entry.weight {
		return
	}
	entry.weight = weight
	_ = qh.heap.DecreaseKey(entry.heapNode, weight)
}

// ForInserted. every vertex touched by the current query.
func (qh *QueryHeap[D]) ForInserted(handle func(node Index, weight Weight, settled bool)) {
	for i := range qh.inserted {
		handle(qh.inserted[i].node, qh.inserted[i].weight, qh.inserted[i].removed)
	}
}
