package kv

import (
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/dgraph-io/badger/v4"
)

var (
	ErrRouteNotFound = errors.New("route not found in cache")
)

// RouteCache shortest path results keyed by the snapped (from, to) vertex pair.
// the graph is immutable after finalize, so a cached route stays valid until its ttl runs out.
type RouteCache struct {
	db  *badger.DB
	ttl time.Duration
}

func NewRouteCache(db *badger.DB, ttl time.Duration) *RouteCache {
	return &RouteCache{db: db, ttl: ttl}
}

// OpenInMemory badger instance without any files on disk.
func OpenInMemory() (*badger.DB, error) {
	opts := badger.DefaultOptions("").WithInMemory(true).WithLogger(nil)
	return badger.Open(opts)
}

func routeKey(from, to int64) []byte {
	return []byte(fmt.Sprintf("route:%d:%d", from, to))
}

// Set cache a route. callers only store routes a search returned without error, the empty route
// of a query whose both points snap to the same vertex included.
func (k *RouteCache) Set(from, to int64, vertexIDs []int64, dist float64) error {
	val, err := encodeRoute(cachedRoute{VertexIDs: vertexIDs, Dist: dist})
	if err != nil {
		return err
	}

	return k.db.Update(func(txn *badger.Txn) error {
		e := badger.NewEntry(routeKey(from, to), val)
		if k.ttl > 0 {
			e = e.WithTTL(k.ttl)
		}
		return txn.SetEntry(e)
	})
}

// Get cached route of (from, to). ErrRouteNotFound on cache miss.
func (k *RouteCache) Get(from, to int64) ([]int64, float64, error) {
	var val []byte
	err := k.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(routeKey(from, to))
		if err != nil {
			return err
		}

		val, err = item.ValueCopy(nil)
		return err
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, 0, ErrRouteNotFound
	}
	if err != nil {
		return nil, 0, err
	}

	route, err := decodeRoute(val)
	if err != nil {
		return nil, 0, err
	}
	if route.VertexIDs == nil {
		route.VertexIDs = []int64{}
	}
	return route.VertexIDs, route.Dist, nil
}

func (k *RouteCache) Close() {
	if err := k.db.Close(); err != nil {
		log.Printf("error closing route cache: %v", err)
	}
}
