package graph

import (
	"fmt"
	"log"
	"sort"

	"github.com/lintang-b-s/navigatorx-lite/pkg/datastructure"
)

type builderVertex struct {
	lon, lat float64
	adjacent map[int64]struct{}
}

// Builder mutable phase of the road graph. vertices are added first, then roads (ways) are
// committed between them, then Finalize freezes everything into a read-only Graph.
// not safe for concurrent use.
type Builder struct {
	vertices   map[int64]*builderVertex
	currentWay []int64
	finalized  bool
}

func NewBuilder() *Builder {
	return &Builder{
		vertices:   make(map[int64]*builderVertex),
		currentWay: make([]int64, 0),
	}
}

func (b *Builder) NumVertices() int {
	return len(b.vertices)
}

// AddVertex insert a new intersection with empty adjacency.
func (b *Builder) AddVertex(id int64, lon, lat float64) error {
	if b.finalized {
		return ErrFinalized
	}
	if _, ok := b.vertices[id]; ok {
		return fmt.Errorf("%w: %d", ErrDuplicateVertex, id)
	}

	b.vertices[id] = &builderVertex{
		lon:      lon,
		lat:      lat,
		adjacent: make(map[int64]struct{}),
	}
	return nil
}

// Connect add an undirected road segment between a and b. self loops are ignored.
func (b *Builder) Connect(a, c int64) error {
	if b.finalized {
		return ErrFinalized
	}
	va, ok := b.vertices[a]
	if !ok {
		return fmt.Errorf("%w: %d", ErrUnknownVertex, a)
	}
	vc, ok := b.vertices[c]
	if !ok {
		return fmt.Errorf("%w: %d", ErrUnknownVertex, c)
	}
	if a == c {
		return nil
	}

	va.adjacent[c] = struct{}{}
	vc.adjacent[a] = struct{}{}
	return nil
}

// BeginWay discard any pending way and start recording a new one.
func (b *Builder) BeginWay() {
	b.currentWay = b.currentWay[:0]
}

// AppendToWay record the next vertex of the pending way.
func (b *Builder) AppendToWay(id int64) {
	b.currentWay = append(b.currentWay, id)
}

// CommitWay connect every consecutive pair of the pending way, then clear it.
// all ids are checked before any edge is added, so a failed commit adds nothing.
func (b *Builder) CommitWay() error {
	defer b.BeginWay()

	if b.finalized {
		return ErrFinalized
	}

	for _, id := range b.currentWay {
		if _, ok := b.vertices[id]; !ok {
			return fmt.Errorf("%w: %d", ErrUnknownVertex, id)
		}
	}

	for i := 0; i+1 < len(b.currentWay); i++ {
		if err := b.Connect(b.currentWay[i], b.currentWay[i+1]); err != nil {
			return err
		}
	}
	return nil
}

// Finalize remove every vertex without neighbors and freeze the graph.
// disconnected road fragments with >= 2 vertices are kept; they get their own component id.
func (b *Builder) Finalize() (*Graph, error) {
	if b.finalized {
		return nil, ErrFinalized
	}
	b.finalized = true

	ids := make([]int64, 0, len(b.vertices))
	removed := 0
	for id, v := range b.vertices {
		if len(v.adjacent) == 0 {
			removed++
			continue
		}
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool {
		return ids[i] < ids[j]
	})

	g := &Graph{
		vertices:  make([]datastructure.Vertex, len(ids)),
		adjacency: make([][]int64, len(ids)),
		index:     make(map[int64]int32, len(ids)),
	}

	for i, id := range ids {
		v := b.vertices[id]
		g.vertices[i] = datastructure.NewVertex(id, v.lon, v.lat)
		g.index[id] = int32(i)

		neighbors := make([]int64, 0, len(v.adjacent))
		for n := range v.adjacent {
			neighbors = append(neighbors, n)
		}
		sort.Slice(neighbors, func(i, j int) bool {
			return neighbors[i] < neighbors[j]
		})
		g.adjacency[i] = neighbors
	}

	g.labelComponents()

	log.Printf("road graph finalized: %d vertices (%d isolated removed), %d edges, %d components",
		len(g.vertices), removed, g.NumEdges(), g.NumComponents())

	b.vertices = nil
	b.currentWay = nil
	return g, nil
}
