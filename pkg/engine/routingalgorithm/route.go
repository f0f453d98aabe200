package routingalgorithm

import (
	"context"

	"github.com/lintang-b-s/navigatorx-lite/pkg/datastructure"
	"github.com/lintang-b-s/navigatorx-lite/pkg/geo"
)

// ShortestPath snap both points to their nearest vertex and run a* between them.
// empty (non nil) slice if both points snap to the same vertex.
func (rt *RouteAlgorithm) ShortestPath(ctx context.Context, startLon, startLat, destLon, destLat float64) ([]int64, error) {
	from, to, err := rt.Snap(startLon, startLat, destLon, destLat)
	if err != nil {
		return nil, err
	}

	path, _, err := rt.ShortestPathAStar(ctx, from, to)
	if err != nil {
		return nil, err
	}
	return path, nil
}

// Snap nearest vertex of the start and destination points.
func (rt *RouteAlgorithm) Snap(startLon, startLat, destLon, destLat float64) (int64, int64, error) {
	from, err := rt.locator.Locate(startLon, startLat)
	if err != nil {
		return 0, 0, err
	}
	to, err := rt.locator.Locate(destLon, destLat)
	if err != nil {
		return 0, 0, err
	}
	return from, to, nil
}

// BuildRoute attach coordinates, great-circle length and polyline to a vertex id path.
func (rt *RouteAlgorithm) BuildRoute(from, to int64, vertexIDs []int64, dist float64) (datastructure.Route, error) {
	path := make([]datastructure.Coordinate, 0, len(vertexIDs))
	for _, id := range vertexIDs {
		v, err := rt.g.Vertex(id)
		if err != nil {
			return datastructure.Route{}, err
		}
		path = append(path, v.Coordinate())
	}
	return datastructure.NewRoute(from, to, vertexIDs, path, dist, geo.PathLengthMeters(path)), nil
}
