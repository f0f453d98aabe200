package datastructure

import (
	"cmp"
	"math"
)

type Entry[T cmp.Ordered] struct {
	degree   int
	isMarked bool

	next   *Entry[T]
	prev   *Entry[T]
	child  *Entry[T]
	parent *Entry[T]

	elem     T
	priority float64
}

func NewEntry[T cmp.Ordered](elem T, priority float64) *Entry[T] {
	e := &Entry[T]{
		elem:     elem,
		priority: priority,
	}
	e.next = e
	e.prev = e

	return e
}

func (e *Entry[T]) GetPriority() float64 {
	return e.priority
}

func (e *Entry[T]) GetElem() T {
	return e.elem
}

// lessEntry same ordering as the binary heap: priority, then element.
func lessEntry[T cmp.Ordered](a, b *Entry[T]) bool {
	if a.priority != b.priority {
		return a.priority < b.priority
	}
	return a.elem < b.elem
}

/*
FibonacciHeap. root list of heap-ordered trees kept as circular doubly linked lists.

amortized costs (potential = roots + 2*marked nodes):
insert O(1), decreaseKey O(1), extractMin O(log n).
ref: https://www.utsc.utoronto.ca/~atafliovich/cscb63/content/week10/clrs_fibonacci_chapter.pdf
*/
type FibonacciHeap[T cmp.Ordered] struct {
	min  *Entry[T]
	size int
}

func NewFibonacciHeap[T cmp.Ordered]() *FibonacciHeap[T] {
	return &FibonacciHeap[T]{}
}

func (f *FibonacciHeap[T]) GetMin() *Entry[T] {
	return f.min
}

func (f *FibonacciHeap[T]) GetMinRank() float64 {
	if f.min == nil {
		return math.MaxFloat64
	}
	return f.min.priority
}

func (f *FibonacciHeap[T]) Size() int {
	return f.size
}

// Insert add a new single-node tree to the root list.
func (f *FibonacciHeap[T]) Insert(value T, priority float64) *Entry[T] {
	result := NewEntry(value, priority)

	f.min = f.mergeLists(f.min, result)
	f.size++

	return result
}

// mergeLists splice two circular lists together and return the smaller of the two heads.
func (f *FibonacciHeap[T]) mergeLists(one *Entry[T], two *Entry[T]) *Entry[T] {
	switch {
	case one == nil:
		return two
	case two == nil:
		return one
	}

	/*
		one -> oneNext ...      two -> twoNext ...
		becomes
		one -> twoNext ... two -> oneNext ... one
	*/
	oneNext := one.next
	one.next = two.next
	one.next.prev = one
	two.next = oneNext
	two.next.prev = two

	if lessEntry(one, two) {
		return one
	}
	return two
}

// DecreaseKey lower the priority of entry. newPriority must not be greater than the current one.
func (f *FibonacciHeap[T]) DecreaseKey(entry *Entry[T], newPriority float64) error {
	if newPriority > entry.priority {
		return ErrPriorityIncreased
	}
	entry.priority = newPriority

	if entry.parent != nil && !lessEntry(entry.parent, entry) {
		// heap order violated, move the subtree to the root list
		f.cutNode(entry)
	}

	if lessEntry(entry, f.min) {
		f.min = entry
	}
	return nil
}

func (f *FibonacciHeap[T]) cutNode(entry *Entry[T]) {
	entry.isMarked = false

	parent := entry.parent
	if parent == nil {
		return
	}

	// unlink from siblings
	entry.next.prev = entry.prev
	entry.prev.next = entry.next

	if parent.child == entry {
		if entry.next != entry {
			parent.child = entry.next
		} else {
			parent.child = nil
		}
	}
	parent.degree--

	entry.prev = entry
	entry.next = entry
	entry.parent = nil

	f.min = f.mergeLists(f.min, entry)

	// cascading cut: a node that loses a second child is cut as well
	if parent.isMarked {
		f.cutNode(parent)
	} else if parent.parent != nil {
		parent.isMarked = true
	}
}

// ExtractMin remove the min entry, promote its children to the root list and consolidate
// the roots so no two roots share a degree.
func (f *FibonacciHeap[T]) ExtractMin() (*Entry[T], error) {
	if f.min == nil {
		return nil, ErrHeapEmpty
	}

	f.size--
	minElem := f.min

	if f.min.next == f.min {
		f.min = nil
	} else {
		f.min.prev.next = f.min.next
		f.min.next.prev = f.min.prev
		f.min = f.min.next
	}

	if minElem.child != nil {
		curr := minElem.child
		for {
			curr.parent = nil
			curr = curr.next
			if curr == minElem.child {
				break
			}
		}
	}

	f.min = f.mergeLists(f.min, minElem.child)

	minElem.next, minElem.prev, minElem.child = minElem, minElem, nil

	if f.min == nil {
		return minElem, nil
	}

	// treeTable[d] holds the root of degree d seen so far
	treeTable := make([]*Entry[T], 0)

	toVisit := make([]*Entry[T], 0)
	for curr := f.min; len(toVisit) == 0 || toVisit[0] != curr; curr = curr.next {
		toVisit = append(toVisit, curr)
	}

	for _, curr := range toVisit {
		for {
			for curr.degree >= len(treeTable) {
				treeTable = append(treeTable, nil)
			}

			if treeTable[curr.degree] == nil {
				treeTable[curr.degree] = curr
				break
			}

			other := treeTable[curr.degree]
			treeTable[curr.degree] = nil

			var small, large *Entry[T]
			if lessEntry(other, curr) {
				small, large = other, curr
			} else {
				small, large = curr, other
			}

			// link large under small
			large.next.prev = large.prev
			large.prev.next = large.next

			large.next = large
			large.prev = large
			small.child = f.mergeLists(small.child, large)

			large.parent = small
			large.isMarked = false
			small.degree++

			curr = small
		}

		if !lessEntry(f.min, curr) {
			f.min = curr
		}
	}

	return minElem, nil
}

// FibonacciQueue adapts FibonacciHeap to the same item-keyed api as MinHeap.
type FibonacciQueue[T cmp.Ordered] struct {
	heap    *FibonacciHeap[T]
	entries map[T]*Entry[T]
}

func NewFibonacciQueue[T cmp.Ordered]() *FibonacciQueue[T] {
	return &FibonacciQueue[T]{
		heap:    NewFibonacciHeap[T](),
		entries: make(map[T]*Entry[T]),
	}
}

func (q *FibonacciQueue[T]) Insert(key PriorityQueueNode[T]) error {
	if _, ok := q.entries[key.Item]; ok {
		return ErrItemAlreadyInHeap
	}
	q.entries[key.Item] = q.heap.Insert(key.Item, key.Rank)
	return nil
}

func (q *FibonacciQueue[T]) DecreaseKey(key PriorityQueueNode[T]) error {
	entry, ok := q.entries[key.Item]
	if !ok {
		return ErrItemNotInHeap
	}
	return q.heap.DecreaseKey(entry, key.Rank)
}

func (q *FibonacciQueue[T]) ExtractMin() (PriorityQueueNode[T], error) {
	entry, err := q.heap.ExtractMin()
	if err != nil {
		return PriorityQueueNode[T]{}, err
	}
	delete(q.entries, entry.elem)
	return NewPriorityQueueNode(entry.priority, entry.elem), nil
}

func (q *FibonacciQueue[T]) Size() int {
	return q.heap.Size()
}
