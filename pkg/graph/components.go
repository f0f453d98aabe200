package graph

import (
	"fmt"
	"log"
)

// labelComponents assign a connected component id to every vertex.
// roads are undirected, so a plain graph traversal is enough (no kosaraju second pass).
// iterative dfs, big road networks would blow the recursion depth.
func (g *Graph) labelComponents() {
	n := len(g.vertices)
	g.componentID = make([]int32, n)
	for i := range g.componentID {
		g.componentID[i] = -1
	}

	stack := make([]int32, 0)
	component := int32(0)
	largest := 0
	for start := 0; start < n; start++ {
		if g.componentID[start] != -1 {
			continue
		}

		size := 0
		g.componentID[start] = component
		stack = append(stack[:0], int32(start))
		for len(stack) > 0 {
			v := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			size++

			for _, neighbor := range g.adjacency[v] {
				nIdx := g.index[neighbor]
				if g.componentID[nIdx] == -1 {
					g.componentID[nIdx] = component
					stack = append(stack, nIdx)
				}
			}
		}

		if size > largest {
			largest = size
		}
		component++
	}

	g.componentCount = int(component)
	if g.componentCount > 1 {
		log.Printf("connected components count: %d, largest has %d of %d vertices", g.componentCount, largest, n)
	}
}

func (g *Graph) NumComponents() int {
	return g.componentCount
}

// ComponentID connected component of vertex id. two vertices are reachable from each other
// iff they share a component id.
func (g *Graph) ComponentID(id int64) (int32, error) {
	idx, ok := g.index[id]
	if !ok {
		return 0, fmt.Errorf("%w: %d", ErrUnknownVertex, id)
	}
	return g.componentID[idx], nil
}
