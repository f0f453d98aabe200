package geo

import (
	"math"

	"github.com/golang/geo/s2"
	"github.com/lintang-b-s/navigatorx-lite/pkg/datastructure"
)

const (
	earthRadiusKM = 6371.0
	earthRadiusM  = 6371007
)

// EuclideanDistance planar distance in degrees, sqrt(dLon^2 + dLat^2). no great-circle correction.
// this is the edge weight and the a* heuristic of the road graph.
func EuclideanDistance(lonOne, latOne, lonTwo, latTwo float64) float64 {
	return math.Hypot(lonOne-lonTwo, latOne-latTwo)
}

// CalculateHaversineDistance great-circle distance in km.
func CalculateHaversineDistance(latOne, longOne, latTwo, longTwo float64) float64 {
	angle := s2.LatLngFromDegrees(latOne, longOne).Distance(s2.LatLngFromDegrees(latTwo, longTwo))
	return angle.Radians() * earthRadiusKM
}

// PathLengthMeters great-circle length of a polyline in meters.
func PathLengthMeters(path []datastructure.Coordinate) float64 {
	dist := 0.0
	for i := 1; i < len(path); i++ {
		dist += CalculateHaversineDistance(path[i-1].Lat, path[i-1].Lon, path[i].Lat, path[i].Lon) * 1000
	}
	return dist
}
