package datastructure

import (
	"cmp"
	"errors"
)

var (
	ErrHeapEmpty         = errors.New("heap is empty")
	ErrItemNotInHeap     = errors.New("item not in heap")
	ErrItemAlreadyInHeap = errors.New("item already in heap")
	ErrPriorityIncreased = errors.New("new priority must be less or equal than old priority")
)

type PriorityQueueNode[T cmp.Ordered] struct {
	Rank float64
	Item T
}

func NewPriorityQueueNode[T cmp.Ordered](rank float64, item T) PriorityQueueNode[T] {
	return PriorityQueueNode[T]{Rank: rank, Item: item}
}

// lessNode orders by rank, equal ranks by item so extraction order is deterministic.
func lessNode[T cmp.Ordered](a, b PriorityQueueNode[T]) bool {
	if a.Rank != b.Rank {
		return a.Rank < b.Rank
	}
	return a.Item < b.Item
}

// MinHeap binary heap priorityqueue with decrease-key.
// pos keeps the heap index of every item, so DecreaseKey is O(logN) without a linear search.
type MinHeap[T cmp.Ordered] struct {
	heap []PriorityQueueNode[T]
	pos  map[T]int
}

func NewMinHeap[T cmp.Ordered]() *MinHeap[T] {
	return &MinHeap[T]{
		heap: make([]PriorityQueueNode[T], 0),
		pos:  make(map[T]int),
	}
}

// parent get index of the parent
func (h *MinHeap[T]) parent(index int) int {
	return (index - 1) / 2
}

func (h *MinHeap[T]) leftChild(index int) int {
	return 2*index + 1
}

func (h *MinHeap[T]) rightChild(index int) int {
	return 2*index + 2
}

func (h *MinHeap[T]) swap(i, j int) {
	h.heap[i], h.heap[j] = h.heap[j], h.heap[i]
	h.pos[h.heap[i].Item] = i
	h.pos[h.heap[j].Item] = j
}

// heapifyUp swap index with its parent while index has smaller rank than the parent. O(logN) tree height.
func (h *MinHeap[T]) heapifyUp(index int) {
	for index != 0 && lessNode(h.heap[index], h.heap[h.parent(index)]) {
		h.swap(index, h.parent(index))
		index = h.parent(index)
	}
}

// heapifyDown swap index with its smallest child while one of the children is smaller. O(logN) tree height.
func (h *MinHeap[T]) heapifyDown(index int) {
	for {
		smallest := index
		left := h.leftChild(index)
		right := h.rightChild(index)

		if left < len(h.heap) && lessNode(h.heap[left], h.heap[smallest]) {
			smallest = left
		}
		if right < len(h.heap) && lessNode(h.heap[right], h.heap[smallest]) {
			smallest = right
		}
		if smallest == index {
			return
		}
		h.swap(index, smallest)
		index = smallest
	}
}

func (h *MinHeap[T]) isEmpty() bool {
	return len(h.heap) == 0
}

func (h *MinHeap[T]) Size() int {
	return len(h.heap)
}

// Insert new item. an item can only be in the heap once, use DecreaseKey to update it.
func (h *MinHeap[T]) Insert(key PriorityQueueNode[T]) error {
	if _, ok := h.pos[key.Item]; ok {
		return ErrItemAlreadyInHeap
	}
	h.heap = append(h.heap, key)
	index := len(h.heap) - 1
	h.pos[key.Item] = index
	h.heapifyUp(index)
	return nil
}

// ExtractMin pop the min item (index 0). O(logN)
func (h *MinHeap[T]) ExtractMin() (PriorityQueueNode[T], error) {
	if h.isEmpty() {
		return PriorityQueueNode[T]{}, ErrHeapEmpty
	}
	root := h.heap[0]
	last := len(h.heap) - 1
	h.swap(0, last)
	h.heap = h.heap[:last]
	delete(h.pos, root.Item)

	if !h.isEmpty() {
		h.heapifyDown(0)
	}
	return root, nil
}

// DecreaseKey update the rank of item already inside the heap.
func (h *MinHeap[T]) DecreaseKey(key PriorityQueueNode[T]) error {
	index, ok := h.pos[key.Item]
	if !ok {
		return ErrItemNotInHeap
	}
	if key.Rank > h.heap[index].Rank {
		return ErrPriorityIncreased
	}
	h.heap[index].Rank = key.Rank
	h.heapifyUp(index)
	return nil
}
