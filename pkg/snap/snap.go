package snap

import (
	"fmt"
	"log"
	"math"

	"github.com/dhconnelly/rtreego"
	"github.com/lintang-b-s/navigatorx-lite/pkg/datastructure"
	"github.com/lintang-b-s/navigatorx-lite/pkg/geo"
	"github.com/lintang-b-s/navigatorx-lite/pkg/graph"
)

const (
	rtreeMinChildren = 25
	rtreeMaxChildren = 50
	// half size of the degenerate box around every vertex.
	pointTolerance = 1e-9
	// widen the candidate box a little so vertices exactly at the probe distance are never missed.
	searchEpsilon = 1e-9
)

// Locator return the id of the graph vertex nearest to (lon, lat).
type Locator interface {
	Locate(lon, lat float64) (int64, error)
}

type Graph interface {
	NumVertices() int
	ForEachVertex(fn func(v datastructure.Vertex) bool)
}

func validCoordinate(lon, lat float64) error {
	if math.IsNaN(lon) || math.IsNaN(lat) || math.IsInf(lon, 0) || math.IsInf(lat, 0) {
		return fmt.Errorf("%w: lon=%v lat=%v", graph.ErrInvalidCoordinate, lon, lat)
	}
	return nil
}

func better(dist float64, id int64, bestDist float64, bestID int64) bool {
	if dist != bestDist {
		return dist < bestDist
	}
	return id < bestID
}

// LinearLocator scan every vertex. O(V) per query.
type LinearLocator struct {
	g Graph
}

func NewLinearLocator(g Graph) *LinearLocator {
	return &LinearLocator{g: g}
}

// Locate nearest vertex by planar euclidean distance. ties go to the smallest id.
func (l *LinearLocator) Locate(lon, lat float64) (int64, error) {
	if err := validCoordinate(lon, lat); err != nil {
		return 0, err
	}
	if l.g.NumVertices() == 0 {
		return 0, graph.ErrEmptyGraph
	}

	bestDist := math.MaxFloat64
	bestID := int64(math.MaxInt64)
	l.g.ForEachVertex(func(v datastructure.Vertex) bool {
		dist := geo.EuclideanDistance(v.Lon, v.Lat, lon, lat)
		if better(dist, v.ID, bestDist, bestID) {
			bestDist = dist
			bestID = v.ID
		}
		return true
	})
	return bestID, nil
}

type vertexLeaf struct {
	vertex datastructure.Vertex
}

func (vl *vertexLeaf) Bounds() rtreego.Rect {
	return rtreego.Point{vl.vertex.Lon, vl.vertex.Lat}.ToRect(pointTolerance)
}

// RoadSnapper r-tree backed locator. gives the same answer as LinearLocator.
type RoadSnapper struct {
	rtree *rtreego.Rtree
}

// NewRoadSnapper bulk load every vertex of g into an r-tree. x = lon, y = lat.
func NewRoadSnapper(g Graph) *RoadSnapper {
	leaves := make([]rtreego.Spatial, 0, g.NumVertices())
	g.ForEachVertex(func(v datastructure.Vertex) bool {
		leaves = append(leaves, &vertexLeaf{vertex: v})
		return true
	})

	log.Printf("building r-tree of %d vertices...", len(leaves))
	rt := rtreego.NewTree(2, rtreeMinChildren, rtreeMaxChildren, leaves...)
	return &RoadSnapper{rtree: rt}
}

// Locate nearest vertex by planar euclidean distance. ties go to the smallest id.
// the r-tree nearest neighbor gives an upper bound d of the answer, every vertex within d lies
// inside the square of half side d around the query, so we pick the exact winner from that square.
func (rs *RoadSnapper) Locate(lon, lat float64) (int64, error) {
	if err := validCoordinate(lon, lat); err != nil {
		return 0, err
	}
	if rs.rtree.Size() == 0 {
		return 0, graph.ErrEmptyGraph
	}

	q := rtreego.Point{lon, lat}
	probe, ok := rs.rtree.NearestNeighbor(q).(*vertexLeaf)
	if !ok {
		return 0, fmt.Errorf("%w: no nearest neighbor for lon=%v lat=%v", graph.ErrEmptyGraph, lon, lat)
	}
	radius := geo.EuclideanDistance(probe.vertex.Lon, probe.vertex.Lat, lon, lat) + searchEpsilon

	bound, err := rtreego.NewRect(rtreego.Point{lon - radius, lat - radius}, []float64{2 * radius, 2 * radius})
	if err != nil {
		return 0, err
	}

	bestDist := math.MaxFloat64
	bestID := int64(math.MaxInt64)
	for _, obj := range rs.rtree.SearchIntersect(bound) {
		v := obj.(*vertexLeaf).vertex
		dist := geo.EuclideanDistance(v.Lon, v.Lat, lon, lat)
		if better(dist, v.ID, bestDist, bestID) {
			bestDist = dist
			bestID = v.ID
		}
	}
	return bestID, nil
}
