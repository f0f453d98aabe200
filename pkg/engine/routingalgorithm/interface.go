package routingalgorithm

import "github.com/lintang-b-s/navigatorx-lite/pkg/datastructure"

type Graph interface {
	Neighbors(id int64) ([]int64, error)
	Vertex(id int64) (datastructure.Vertex, error)
	ComponentID(id int64) (int32, error)
}

type Locator interface {
	Locate(lon, lat float64) (int64, error)
}

// frontier priority queue keyed by vertex id. implemented by datastructure.MinHeap and datastructure.FibonacciQueue.
type frontier interface {
	Insert(key datastructure.PriorityQueueNode[int64]) error
	DecreaseKey(key datastructure.PriorityQueueNode[int64]) error
	ExtractMin() (datastructure.PriorityQueueNode[int64], error)
	Size() int
}
