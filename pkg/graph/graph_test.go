package graph

import (
	"errors"
	"math"
	"testing"

	"github.com/lintang-b-s/navigatorx-lite/pkg/datastructure"
	"github.com/stretchr/testify/assert"
	"golang.org/x/exp/rand"
)

// unit square plus one isolated vertex:
//
//	3(0,1) ---- 4(1,1)
//	  |           |
//	1(0,0) ---- 2(1,0)        5(5,5)
func buildSquare(t *testing.T) *Graph {
	t.Helper()
	b := NewBuilder()
	assert.NoError(t, b.AddVertex(1, 0, 0))
	assert.NoError(t, b.AddVertex(2, 1, 0))
	assert.NoError(t, b.AddVertex(3, 0, 1))
	assert.NoError(t, b.AddVertex(4, 1, 1))
	assert.NoError(t, b.AddVertex(5, 5, 5))

	b.BeginWay()
	for _, id := range []int64{1, 2, 4, 3, 1} {
		b.AppendToWay(id)
	}
	assert.NoError(t, b.CommitWay())

	g, err := b.Finalize()
	assert.NoError(t, err)
	return g
}

func TestFinalizeRemovesIsolatedVertices(t *testing.T) {
	g := buildSquare(t)

	assert.Equal(t, 4, g.NumVertices())
	assert.Equal(t, 4, g.NumEdges())
	assert.Equal(t, []int64{1, 2, 3, 4}, g.Vertices())
	assert.False(t, g.HasVertex(5))

	_, err := g.Neighbors(5)
	assert.True(t, errors.Is(err, ErrUnknownVertex))
	_, err = g.Coordinates(5)
	assert.True(t, errors.Is(err, ErrUnknownVertex))

	g.ForEachVertex(func(v datastructure.Vertex) bool {
		neighbors, err := g.Neighbors(v.ID)
		assert.NoError(t, err)
		assert.NotEmpty(t, neighbors)
		return true
	})
}

func TestNeighbors(t *testing.T) {
	g := buildSquare(t)

	cases := []struct {
		id   int64
		want []int64
	}{
		{1, []int64{2, 3}},
		{2, []int64{1, 4}},
		{3, []int64{1, 4}},
		{4, []int64{2, 3}},
	}
	for _, c := range cases {
		got, err := g.Neighbors(c.id)
		assert.NoError(t, err)
		assert.Equal(t, c.want, got)
	}
}

func TestCoordinatesAndDistance(t *testing.T) {
	g := buildSquare(t)

	coord, err := g.Coordinates(4)
	assert.NoError(t, err)
	assert.Equal(t, datastructure.NewCoordinate(1, 1), coord)

	d, err := g.EuclideanDistance(1, 4)
	assert.NoError(t, err)
	assert.InDelta(t, math.Sqrt2, d, 1e-12)

	d, err = g.EuclideanDistance(2, 2)
	assert.NoError(t, err)
	assert.Equal(t, 0.0, d)

	_, err = g.EuclideanDistance(1, 99)
	assert.True(t, errors.Is(err, ErrUnknownVertex))
}

func TestBuilderErrors(t *testing.T) {
	b := NewBuilder()
	assert.NoError(t, b.AddVertex(1, 0, 0))

	err := b.AddVertex(1, 3, 3)
	assert.True(t, errors.Is(err, ErrDuplicateVertex))

	err = b.Connect(1, 2)
	assert.True(t, errors.Is(err, ErrUnknownVertex))

	// self loop is accepted but adds nothing
	assert.NoError(t, b.Connect(1, 1))
	assert.NoError(t, b.AddVertex(2, 1, 0))

	g, err := b.Finalize()
	assert.NoError(t, err)
	assert.Equal(t, 0, g.NumVertices())

	_, err = b.Finalize()
	assert.True(t, errors.Is(err, ErrFinalized))
	assert.True(t, errors.Is(b.AddVertex(3, 0, 0), ErrFinalized))
	assert.True(t, errors.Is(b.Connect(1, 2), ErrFinalized))
	assert.True(t, errors.Is(b.CommitWay(), ErrFinalized))
}

func TestCommitWayIsAtomic(t *testing.T) {
	b := NewBuilder()
	assert.NoError(t, b.AddVertex(1, 0, 0))
	assert.NoError(t, b.AddVertex(2, 1, 0))
	assert.NoError(t, b.AddVertex(3, 2, 0))

	b.BeginWay()
	b.AppendToWay(1)
	b.AppendToWay(2)
	b.AppendToWay(42)
	err := b.CommitWay()
	assert.True(t, errors.Is(err, ErrUnknownVertex))

	// the failed way was cleared, committing again is a no-op
	assert.NoError(t, b.CommitWay())

	b.BeginWay()
	b.AppendToWay(2)
	b.AppendToWay(3)
	assert.NoError(t, b.CommitWay())

	g, err := b.Finalize()
	assert.NoError(t, err)
	assert.Equal(t, []int64{2, 3}, g.Vertices())
	assert.Equal(t, 1, g.NumEdges())
}

func TestBeginWayDiscardsPendingWay(t *testing.T) {
	b := NewBuilder()
	assert.NoError(t, b.AddVertex(1, 0, 0))
	assert.NoError(t, b.AddVertex(2, 1, 0))
	assert.NoError(t, b.AddVertex(3, 2, 0))

	b.BeginWay()
	b.AppendToWay(1)
	b.AppendToWay(2)
	b.BeginWay()
	b.AppendToWay(2)
	b.AppendToWay(3)
	assert.NoError(t, b.CommitWay())

	g, err := b.Finalize()
	assert.NoError(t, err)
	assert.False(t, g.HasVertex(1))
}

func TestComponents(t *testing.T) {
	b := NewBuilder()
	for i := int64(1); i <= 6; i++ {
		assert.NoError(t, b.AddVertex(i, float64(i), 0))
	}
	assert.NoError(t, b.Connect(1, 2))
	assert.NoError(t, b.Connect(2, 3))
	assert.NoError(t, b.Connect(4, 5))

	g, err := b.Finalize()
	assert.NoError(t, err)
	assert.Equal(t, 2, g.NumComponents())

	c1, _ := g.ComponentID(1)
	c3, _ := g.ComponentID(3)
	c4, _ := g.ComponentID(4)
	c5, _ := g.ComponentID(5)
	assert.Equal(t, c1, c3)
	assert.Equal(t, c4, c5)
	assert.NotEqual(t, c1, c4)

	_, err = g.ComponentID(6)
	assert.True(t, errors.Is(err, ErrUnknownVertex))
}

func TestRandomGraphSymmetry(t *testing.T) {
	rd := rand.New(rand.NewSource(uint64(7)))
	b := NewBuilder()
	n := 300
	for i := 0; i < n; i++ {
		assert.NoError(t, b.AddVertex(int64(i), rd.Float64()*10, rd.Float64()*10))
	}
	for i := 0; i < 2*n; i++ {
		assert.NoError(t, b.Connect(int64(rd.Intn(n)), int64(rd.Intn(n))))
	}

	g, err := b.Finalize()
	assert.NoError(t, err)

	g.ForEachVertex(func(v datastructure.Vertex) bool {
		neighbors, err := g.Neighbors(v.ID)
		assert.NoError(t, err)
		for _, w := range neighbors {
			assert.NotEqual(t, v.ID, w)

			back, err := g.Neighbors(w)
			assert.NoError(t, err)
			assert.Contains(t, back, v.ID)

			dvw, _ := g.EuclideanDistance(v.ID, w)
			dwv, _ := g.EuclideanDistance(w, v.ID)
			assert.Equal(t, dvw, dwv)

			cv, _ := g.ComponentID(v.ID)
			cw, _ := g.ComponentID(w)
			assert.Equal(t, cv, cw)
		}
		return true
	})
}
