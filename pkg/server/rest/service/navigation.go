package service

import (
	"context"
	"errors"
	"log"

	"github.com/lintang-b-s/navigatorx-lite/pkg/concurrent"
	"github.com/lintang-b-s/navigatorx-lite/pkg/datastructure"
	"github.com/lintang-b-s/navigatorx-lite/pkg/geo"
	"github.com/lintang-b-s/navigatorx-lite/pkg/graph"
	"github.com/lintang-b-s/navigatorx-lite/pkg/kv"
	"github.com/lintang-b-s/navigatorx-lite/pkg/server"
	"github.com/lintang-b-s/navigatorx-lite/pkg/util"
)

type RouteAlgorithm interface {
	Snap(startLon, startLat, destLon, destLat float64) (int64, int64, error)
	ShortestPathAStar(ctx context.Context, from, to int64) ([]int64, float64, error)
	BuildRoute(from, to int64, vertexIDs []int64, dist float64) (datastructure.Route, error)
}

type Locator interface {
	Locate(lon, lat float64) (int64, error)
}

type Graph interface {
	Vertex(id int64) (datastructure.Vertex, error)
	Neighbors(id int64) ([]int64, error)
}

type RouteCache interface {
	Get(from, to int64) ([]int64, float64, error)
	Set(from, to int64, vertexIDs []int64, dist float64) error
}

type CacheMetrics interface {
	CacheHit()
	CacheMiss()
}

const (
	maxBatchWorkers = 16
	notCoveredMsg   = "sorry!! the location you entered is not covered on my map :(, please use diferrent opensteetmap file"
)

type NavigationService struct {
	g         Graph
	locator   Locator
	routeAlgo RouteAlgorithm
	cache     RouteCache
	metrics   CacheMetrics
}

// NewNavigationService cache and metrics may be nil.
func NewNavigationService(g Graph, locator Locator, routeAlgo RouteAlgorithm, cache RouteCache,
	metrics CacheMetrics) *NavigationService {
	return &NavigationService{
		g:         g,
		locator:   locator,
		routeAlgo: routeAlgo,
		cache:     cache,
		metrics:   metrics,
	}
}

// NearestVertex road intersection nearest to (lat, lon).
func (uc *NavigationService) NearestVertex(ctx context.Context, lat, lon float64) (datastructure.Vertex, error) {
	id, err := uc.locator.Locate(lon, lat)
	if err != nil {
		return datastructure.Vertex{}, wrapGraphError(err)
	}
	v, err := uc.g.Vertex(id)
	if err != nil {
		return datastructure.Vertex{}, server.WrapErrorf(err, server.ErrInternalServerError, "internal server error")
	}
	return v, nil
}

// GetVertex coordinates and neighbors of a vertex.
func (uc *NavigationService) GetVertex(ctx context.Context, id int64) (datastructure.Vertex, []int64, error) {
	v, err := uc.g.Vertex(id)
	if err != nil {
		return datastructure.Vertex{}, nil, server.WrapErrorf(err, server.ErrNotFound, "vertex %d not found", id)
	}
	neighbors, err := uc.g.Neighbors(id)
	if err != nil {
		return datastructure.Vertex{}, nil, server.WrapErrorf(err, server.ErrInternalServerError, "internal server error")
	}
	return v, neighbors, nil
}

// ShortestPath snap both points, look up the route cache, run a* on a miss.
// simplify thins the returned geometry with ramer-douglas-peucker; DistMeters is always the full route length.
func (uc *NavigationService) ShortestPath(ctx context.Context, srcLat, srcLon, dstLat, dstLon float64,
	simplify bool) (datastructure.Route, error) {
	from, to, err := uc.routeAlgo.Snap(srcLon, srcLat, dstLon, dstLat)
	if err != nil {
		return datastructure.Route{}, wrapGraphError(err)
	}

	vertexIDs, dist, err := uc.cachedRoute(from, to)
	if errors.Is(err, kv.ErrRouteNotFound) {
		vertexIDs, dist, err = uc.routeAlgo.ShortestPathAStar(ctx, from, to)
		if err != nil {
			return datastructure.Route{}, wrapGraphError(err)
		}
		uc.storeRoute(from, to, vertexIDs, dist)
	} else if err != nil {
		return datastructure.Route{}, server.WrapErrorf(err, server.ErrInternalServerError, "internal server error")
	}

	route, err := uc.routeAlgo.BuildRoute(from, to, vertexIDs, dist)
	if err != nil {
		return datastructure.Route{}, server.WrapErrorf(err, server.ErrInternalServerError, "internal server error")
	}

	if simplify {
		route.Path = geo.RamerDouglasPeucker(route.Path, geo.DOUGLAS_PEUCKER_THRESHOLDS)
		route.Polyline = datastructure.CreatePolyline(route.Path)
	}
	return route, nil
}

func (uc *NavigationService) cachedRoute(from, to int64) ([]int64, float64, error) {
	if uc.cache == nil {
		return nil, 0, kv.ErrRouteNotFound
	}
	vertexIDs, dist, err := uc.cache.Get(from, to)
	if uc.metrics != nil {
		if err == nil {
			uc.metrics.CacheHit()
		} else {
			uc.metrics.CacheMiss()
		}
	}
	return vertexIDs, dist, err
}

func (uc *NavigationService) storeRoute(from, to int64, vertexIDs []int64, dist float64) {
	if uc.cache == nil {
		return
	}
	if err := uc.cache.Set(from, to, vertexIDs, dist); err != nil {
		log.Printf("error caching route %d -> %d: %v", from, to, err)
	}
}

type ShortestPathResult struct {
	Index int
	Route datastructure.Route
	Err   error
}

// ShortestPathMany answer every query concurrently. results are in the same order as queries,
// a failed query only fails its own result.
func (uc *NavigationService) ShortestPathMany(ctx context.Context, queries []concurrent.ShortestPathParam) ([]ShortestPathResult, error) {
	if len(queries) == 0 {
		return nil, server.NewErrorf(server.ErrBadParamInput, "queries cannot be empty!")
	}

	numWorkers := util.MinIntG(maxBatchWorkers, len(queries))
	workers := concurrent.NewWorkerPool[concurrent.ShortestPathParam, ShortestPathResult](numWorkers, len(queries))
	for i, q := range queries {
		workers.AddJob(concurrent.NewShortestPathParam(ctx, i, q.SrcLat, q.SrcLon, q.DstLat, q.DstLon, q.Simplify))
	}
	workers.Close()
	workers.Start(uc.shortestPathJob)
	workers.Wait()

	results := make([]ShortestPathResult, len(queries))
	for res := range workers.CollectResults() {
		results[res.Index] = res
	}
	return results, nil
}

func (uc *NavigationService) shortestPathJob(q concurrent.ShortestPathParam) ShortestPathResult {
	route, err := uc.ShortestPath(q.Ctx, q.SrcLat, q.SrcLon, q.DstLat, q.DstLon, q.Simplify)
	return ShortestPathResult{Index: q.Index, Route: route, Err: err}
}

func wrapGraphError(err error) error {
	switch {
	case errors.Is(err, graph.ErrEmptyGraph):
		return server.WrapErrorf(err, server.ErrNotFound, notCoveredMsg)
	case errors.Is(err, graph.ErrNoPathFound):
		return server.WrapErrorf(err, server.ErrNotFound, "no route found between the two locations")
	case errors.Is(err, graph.ErrUnknownVertex):
		return server.WrapErrorf(err, server.ErrNotFound, notCoveredMsg)
	case errors.Is(err, graph.ErrInvalidCoordinate):
		return server.WrapErrorf(err, server.ErrBadParamInput, "latitude and longitude must be finite numbers")
	case errors.Is(err, context.DeadlineExceeded):
		return server.WrapErrorf(err, server.ErrTimeout, "shortest path query timed out")
	case errors.Is(err, context.Canceled):
		return server.WrapErrorf(err, server.ErrBadParamInput, "request cancelled")
	default:
		return server.WrapErrorf(err, server.ErrInternalServerError, "internal server error")
	}
}
