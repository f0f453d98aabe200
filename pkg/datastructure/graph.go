package datastructure

import (
	"github.com/twpayne/go-polyline"
)

// Route. shortest path result between two snapped vertices.
// Dist is the planar euclidean length (degrees), DistMeters the great-circle length.
type Route struct {
	Source     int64
	Dest       int64
	VertexIDs  []int64
	Path       []Coordinate
	Dist       float64
	DistMeters float64
	Polyline   string
}

func NewRoute(source, dest int64, vertexIDs []int64, path []Coordinate, dist, distMeters float64) Route {
	return Route{
		Source:     source,
		Dest:       dest,
		VertexIDs:  vertexIDs,
		Path:       path,
		Dist:       dist,
		DistMeters: distMeters,
		Polyline:   CreatePolyline(path),
	}
}

// Found. false if source & dest snapped to the same vertex (empty route).
func (r Route) Found() bool {
	return len(r.VertexIDs) > 0
}

func CreatePolyline(path []Coordinate) string {
	coords := make([][]float64, 0, len(path))
	for _, p := range path {
		coords = append(coords, []float64{p.Lat, p.Lon})
	}
	return string(polyline.EncodeCoords(coords))
}

func DecodePolyline(s string) ([]Coordinate, error) {
	coords, _, err := polyline.DecodeCoords([]byte(s))
	if err != nil {
		return nil, err
	}
	path := make([]Coordinate, 0, len(coords))
	for _, c := range coords {
		path = append(path, NewCoordinate(c[0], c[1]))
	}
	return path, nil
}
