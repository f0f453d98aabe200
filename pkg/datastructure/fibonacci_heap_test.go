package datastructure_test

import (
	"math"
	"testing"

	"github.com/lintang-b-s/navigatorx-lite/pkg/datastructure"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFibonacciHeapInsertExtractMin(t *testing.T) {
	pq := datastructure.NewFibonacciHeap[int64]()

	min := math.MaxFloat64
	for i := 0; i < 10000; i++ {
		priority := float64(generateRandomInteger(0, 10000))
		if priority < min {
			min = priority
		}
		pq.Insert(int64(i), priority)

		assert.Equal(t, min, pq.GetMinRank())
	}

	prevItem, err := pq.ExtractMin()
	require.NoError(t, err)

	for i := 1; i < 10000; i++ {
		item, err := pq.ExtractMin()
		require.NoError(t, err)

		if prevItem.GetPriority() > item.GetPriority() {
			t.Errorf("PriorityQueue is not sorted")
		}
		prevItem = item
	}
	assert.Equal(t, 0, pq.Size())
	assert.Equal(t, math.MaxFloat64, pq.GetMinRank())
}

func TestFibonacciHeapDecreaseKeyToNewMin(t *testing.T) {
	pq := datastructure.NewFibonacciHeap[int64]()

	entries := make([]*datastructure.Entry[int64], 0, 64)
	for i := 0; i < 64; i++ {
		entries = append(entries, pq.Insert(int64(i), float64(100+i)))
	}

	// consolidate so the remaining entries sit inside trees
	first, err := pq.ExtractMin()
	require.NoError(t, err)
	assert.Equal(t, int64(0), first.GetElem())

	require.NoError(t, pq.DecreaseKey(entries[63], 1))
	assert.Equal(t, int64(63), pq.GetMin().GetElem())

	assert.ErrorIs(t, pq.DecreaseKey(entries[10], 500), datastructure.ErrPriorityIncreased)

	got, err := pq.ExtractMin()
	require.NoError(t, err)
	assert.Equal(t, int64(63), got.GetElem())
	assert.Equal(t, 1.0, got.GetPriority())

	next, err := pq.ExtractMin()
	require.NoError(t, err)
	assert.Equal(t, int64(1), next.GetElem())
}
