package datastructure

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMinHeapExtractOrder(t *testing.T) {
	for _, d := range []int{2, 4} {
		h := NewdAryHeap[Index](d)
		ranks := []float64{5, 1, 9, 3, 3, 7, 0.5, 2}
		for i, r := range ranks {
			h.Insert(NewPriorityQueueNode(r, Index(i)))
		}
		require.Equal(t, len(ranks), h.Size())

		prev := -1.0
		for !h.IsEmpty() {
			node, err := h.ExtractMin()
			require.NoError(t, err)
			assert.GreaterOrEqual(t, node.GetRank(), prev)
			assert.Equal(t, -1, node.GetPos())
			prev = node.GetRank()
		}
	}
}

func TestMinHeapEmpty(t *testing.T) {
	h := NewBinaryHeap[Index]()
	_, err := h.ExtractMin()
	assert.ErrorIs(t, err, ErrHeapEmpty)
	_, err = h.GetMin()
	assert.ErrorIs(t, err, ErrHeapEmpty)

	h.Insert(NewPriorityQueueNode(1.0, Index(1)))
	h.Clear()
	assert.True(t, h.IsEmpty())
}
