package routingalgorithm

import (
	"context"
	"fmt"

	"github.com/lintang-b-s/navigatorx-lite/pkg/datastructure"
	"github.com/lintang-b-s/navigatorx-lite/pkg/geo"
	"github.com/lintang-b-s/navigatorx-lite/pkg/graph"
	"github.com/lintang-b-s/navigatorx-lite/pkg/util"
)

type RouteAlgorithm struct {
	g                Graph
	locator          Locator
	useFibonacciHeap bool
}

type Option func(rt *RouteAlgorithm)

// WithFibonacciHeap use a fibonacci heap as the search frontier instead of the binary heap.
func WithFibonacciHeap() Option {
	return func(rt *RouteAlgorithm) {
		rt.useFibonacciHeap = true
	}
}

func NewRouteAlgorithm(g Graph, locator Locator, opts ...Option) *RouteAlgorithm {
	rt := &RouteAlgorithm{
		g:       g,
		locator: locator,
	}
	for _, opt := range opts {
		opt(rt)
	}
	return rt
}

func (rt *RouteAlgorithm) newFrontier() frontier {
	if rt.useFibonacciHeap {
		return datastructure.NewFibonacciQueue[int64]()
	}
	return datastructure.NewMinHeap[int64]()
}

// frontierEntry search state of one discovered vertex.
type frontierEntry struct {
	vertex datastructure.Vertex
	parent *frontierEntry // nil for the start vertex
	g      float64        // cost from start
	h      float64        // heuristic to destination, computed once
	// settled entries were popped from the frontier and their cost is final
	settled bool
}

func (e *frontierEntry) priority() float64 {
	return e.g + e.h
}

// ShortestPathAStar a* search from vertex from to vertex to. edge weight and heuristic are both the planar
// euclidean distance, the heuristic is consistent so a vertex is never reopened after it is settled.
// returns the vertex ids of the route (both endpoints included) and its total length.
// ref: https://www.cs.princeton.edu/courses/archive/spr06/cos423/Handouts/GH05.pdf
func (rt *RouteAlgorithm) ShortestPathAStar(ctx context.Context, from, to int64) ([]int64, float64, error) {
	return rt.search(ctx, from, to, true)
}

// ShortestPathDijkstra same search with a zero heuristic.
func (rt *RouteAlgorithm) ShortestPathDijkstra(ctx context.Context, from, to int64) ([]int64, float64, error) {
	return rt.search(ctx, from, to, false)
}

func (rt *RouteAlgorithm) search(ctx context.Context, from, to int64, useHeuristic bool) ([]int64, float64, error) {
	fromVertex, err := rt.g.Vertex(from)
	if err != nil {
		return nil, 0, err
	}
	toVertex, err := rt.g.Vertex(to)
	if err != nil {
		return nil, 0, err
	}

	if from == to {
		return []int64{}, 0, nil
	}

	fromComponent, err := rt.g.ComponentID(from)
	if err != nil {
		return nil, 0, err
	}
	toComponent, err := rt.g.ComponentID(to)
	if err != nil {
		return nil, 0, err
	}
	if fromComponent != toComponent {
		return nil, 0, fmt.Errorf("%w: %d and %d are in different components", graph.ErrNoPathFound, from, to)
	}

	heuristic := func(v datastructure.Vertex) float64 {
		if !useHeuristic {
			return 0
		}
		return geo.EuclideanDistance(v.Lon, v.Lat, toVertex.Lon, toVertex.Lat)
	}

	pq := rt.newFrontier()
	entries := make(map[int64]*frontierEntry)

	start := &frontierEntry{vertex: fromVertex, h: heuristic(fromVertex)}
	entries[from] = start
	if err := pq.Insert(datastructure.NewPriorityQueueNode(start.priority(), from)); err != nil {
		return nil, 0, err
	}

	for pq.Size() > 0 {
		current, err := pq.ExtractMin()
		if err != nil {
			return nil, 0, err
		}
		if err := ctx.Err(); err != nil {
			return nil, 0, err
		}

		curr := entries[current.Item]
		curr.settled = true

		if current.Item == to {
			return reconstructPath(curr), curr.g, nil
		}

		neighbors, err := rt.g.Neighbors(current.Item)
		if err != nil {
			return nil, 0, err
		}

		for _, neighborID := range neighbors {
			if curr.parent != nil && neighborID == curr.parent.vertex.ID {
				continue
			}

			next, ok := entries[neighborID]
			if ok && next.settled {
				continue
			}

			if !ok {
				neighbor, err := rt.g.Vertex(neighborID)
				if err != nil {
					return nil, 0, err
				}
				next = &frontierEntry{
					vertex: neighbor,
					parent: curr,
					g:      curr.g + edgeWeight(curr.vertex, neighbor),
					h:      heuristic(neighbor),
				}
				entries[neighborID] = next
				if err := pq.Insert(datastructure.NewPriorityQueueNode(next.priority(), neighborID)); err != nil {
					return nil, 0, err
				}
				continue
			}

			newCost := curr.g + edgeWeight(curr.vertex, next.vertex)
			if newCost < next.g {
				next.g = newCost
				next.parent = curr
				if err := pq.DecreaseKey(datastructure.NewPriorityQueueNode(next.priority(), neighborID)); err != nil {
					return nil, 0, err
				}
			}
		}
	}

	return nil, 0, fmt.Errorf("%w: from %d to %d", graph.ErrNoPathFound, from, to)
}

func edgeWeight(a, b datastructure.Vertex) float64 {
	return geo.EuclideanDistance(a.Lon, a.Lat, b.Lon, b.Lat)
}

func reconstructPath(dest *frontierEntry) []int64 {
	path := make([]int64, 0)
	for e := dest; e != nil; e = e.parent {
		path = append(path, e.vertex.ID)
	}
	return util.ReverseG(path)
}
