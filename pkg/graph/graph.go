package graph

import (
	"fmt"

	"github.com/lintang-b-s/navigatorx-lite/pkg/datastructure"
	"github.com/lintang-b-s/navigatorx-lite/pkg/geo"
)

// Graph frozen road graph produced by Builder.Finalize. read-only, so it can be shared
// between goroutines without locking.
// vertices are stored sorted by id; index maps an osm node id to its position.
type Graph struct {
	vertices  []datastructure.Vertex
	adjacency [][]int64
	index     map[int64]int32

	componentID    []int32
	componentCount int
}

func (g *Graph) NumVertices() int {
	return len(g.vertices)
}

// NumEdges number of undirected road segments.
func (g *Graph) NumEdges() int {
	count := 0
	for _, adj := range g.adjacency {
		count += len(adj)
	}
	return count / 2
}

func (g *Graph) HasVertex(id int64) bool {
	_, ok := g.index[id]
	return ok
}

// Vertices all vertex ids, ascending.
func (g *Graph) Vertices() []int64 {
	ids := make([]int64, len(g.vertices))
	for i, v := range g.vertices {
		ids[i] = v.ID
	}
	return ids
}

// ForEachVertex call fn for every vertex in ascending id order until fn returns false.
func (g *Graph) ForEachVertex(fn func(v datastructure.Vertex) bool) {
	for _, v := range g.vertices {
		if !fn(v) {
			return
		}
	}
}

func (g *Graph) getIndex(id int64) (int32, error) {
	idx, ok := g.index[id]
	if !ok {
		return 0, fmt.Errorf("%w: %d", ErrUnknownVertex, id)
	}
	return idx, nil
}

func (g *Graph) Vertex(id int64) (datastructure.Vertex, error) {
	idx, err := g.getIndex(id)
	if err != nil {
		return datastructure.Vertex{}, err
	}
	return g.vertices[idx], nil
}

// Neighbors ids adjacent to id, ascending. the returned slice is shared and must not be modified.
func (g *Graph) Neighbors(id int64) ([]int64, error) {
	idx, err := g.getIndex(id)
	if err != nil {
		return nil, err
	}
	return g.adjacency[idx], nil
}

func (g *Graph) Coordinates(id int64) (datastructure.Coordinate, error) {
	idx, err := g.getIndex(id)
	if err != nil {
		return datastructure.Coordinate{}, err
	}
	return g.vertices[idx].Coordinate(), nil
}

// EuclideanDistance planar distance between two vertices. the weight of the edge (a, b) if they are adjacent.
func (g *Graph) EuclideanDistance(a, b int64) (float64, error) {
	ia, err := g.getIndex(a)
	if err != nil {
		return 0, err
	}
	ib, err := g.getIndex(b)
	if err != nil {
		return 0, err
	}
	va, vb := g.vertices[ia], g.vertices[ib]
	return geo.EuclideanDistance(va.Lon, va.Lat, vb.Lon, vb.Lat), nil
}

// DistanceToPoint planar distance from vertex id to an arbitrary coordinate.
func (g *Graph) DistanceToPoint(id int64, lon, lat float64) (float64, error) {
	idx, err := g.getIndex(id)
	if err != nil {
		return 0, err
	}
	v := g.vertices[idx]
	return geo.EuclideanDistance(v.Lon, v.Lat, lon, lat), nil
}
