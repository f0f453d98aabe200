package concurrent

import (
	"context"
)

// ShortestPathParam one query of a batch route request. Index keeps the position in the request.
type ShortestPathParam struct {
	Ctx      context.Context
	Index    int
	SrcLat   float64
	SrcLon   float64
	DstLat   float64
	DstLon   float64
	Simplify bool
}

func NewShortestPathParam(ctx context.Context, index int, srcLat, srcLon, dstLat, dstLon float64,
	simplify bool) ShortestPathParam {
	return ShortestPathParam{
		Ctx:      ctx,
		Index:    index,
		SrcLat:   srcLat,
		SrcLon:   srcLon,
		DstLat:   dstLat,
		DstLon:   dstLon,
		Simplify: simplify,
	}
}

type JobI interface {
	ShortestPathParam | int64
}

type Job[T JobI] struct {
	ID      int
	JobItem T
}
type JobFunc[T JobI, G any] func(job T) G
