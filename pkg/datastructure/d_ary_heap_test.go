package datastructure

import (
	"math/rand"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMinHeapExtractOrder(t *testing.T) {
	tests := []struct {
		name string
		d    int
	}{
		{name: "binary", d: 2},
		{name: "four-ary", d: 4},
		{name: "eight-ary", d: 8},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rng := rand.New(rand.NewSource(42))
			h := NewdAryHeap[Index](tt.d)
			ranks := make([]Weight, 200)
			for i := range ranks {
				ranks[i] = Weight(rng.Intn(1000))
				h.Insert(NewPriorityQueueNode(ranks[i], Index(i)))
			}
			sort.Slice(ranks, func(i, j int) bool { return ranks[i] < ranks[j] })

			for _, want := range ranks {
				node, err := h.ExtractMin()
				require.NoError(t, err)
				assert.Equal(t, want, node.GetRank())
				assert.Equal(t, -1, node.GetPos())
			}
			_, err := h.ExtractMin()
			assert.ErrorIs(t, err, ErrHeapEmpty)
			assert.Equal(t, INVALID_WEIGHT, h.GetMinrank())
		})
	}
}

func TestMinHeapDecreaseKey(t *testing.T) {
	h := NewFourAryHeap[Index]()
	nodes := make([]*PriorityQueueNode[Index], 10)
	for i := range nodes {
		nodes[i] = NewPriorityQueueNode(Weight(100+i), Index(i))
		h.Insert(nodes[i])
	}

	require.NoError(t, h.DecreaseKey(nodes[7], 5))
	assert.Error(t, h.DecreaseKey(nodes[3], 500))

	top, err := h.GetMin()
	require.NoError(t, err)
	assert.Equal(t, Index(7), top.GetItem())
	assert.Equal(t, Weight(5), h.GetMinrank())
}

func TestQueryHeap(t *testing.T) {
	qh := NewQueryHeap[int](10)
	assert.True(t, qh.Empty())
	assert.Equal(t, INVALID_WEIGHT, qh.MinKey())

	qh.Insert(3, 30, 1)
	qh.Insert(5, 10, 2)
	qh.Insert(7, 20, 3)
	assert.True(t, qh.WasInserted(3))
	assert.False(t, qh.WasInserted(4))
	assert.Equal(t, Weight(10), qh.MinKey())
	assert.Equal(t, Index(5), qh.Min())

	qh.DecreaseKey(3, 5)
	assert.Equal(t, Weight(5), qh.GetKey(3))
	*qh.GetData(3) = 9

	u, w, err := qh.DeleteMin()
	require.NoError(t, err)
	assert.Equal(t, Index(3), u)
	assert.Equal(t, Weight(5), w)
	assert.True(t, qh.WasRemoved(3))
	assert.Equal(t, 9, *qh.GetData(3))
	assert.Equal(t, 2, qh.Size())

	// settled vertices keep their final key
	qh.DecreaseKey(3, 1)
	assert.Equal(t, Weight(5), qh.GetKey(3))

	assert.Panics(t, func() { qh.Insert(5, 1, 0) })

	qh.Clear()
	assert.True(t, qh.Empty())
	assert.False(t, qh.WasInserted(3))
	assert.False(t, qh.WasInserted(5))
	assert.Equal(t, INVALID_WEIGHT, qh.GetKey(7))
	qh.Insert(5, 1, 0)
	assert.Equal(t, Weight(1), qh.MinKey())
}
