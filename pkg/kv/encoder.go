package kv

import (
	"github.com/kelindar/binary"
)

// cachedRoute value stored for a (from, to) pair.
type cachedRoute struct {
	VertexIDs []int64
	Dist      float64
}

func encodeRoute(route cachedRoute) ([]byte, error) {
	bb, err := binary.Marshal(route)
	if err != nil {
		return nil, err
	}
	return compress(bb)
}

func decodeRoute(bbCompressed []byte) (cachedRoute, error) {
	var route cachedRoute
	bb, err := decompress(bbCompressed)
	if err != nil {
		return route, err
	}
	err = binary.Unmarshal(bb, &route)
	return route, err
}
