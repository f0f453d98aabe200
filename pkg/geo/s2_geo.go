package geo

import (
	"github.com/golang/geo/s2"
	"github.com/lintang-b-s/navigatorx-lite/pkg/datastructure"
)

func toS2Point(c datastructure.Coordinate) s2.Point {
	return s2.PointFromLatLng(s2.LatLngFromDegrees(c.Lat, c.Lon))
}

// PointLinePerpendicularDistance distance in meters from p to the great-circle segment (a, b).
func PointLinePerpendicularDistance(a, b, p datastructure.Coordinate) float64 {
	angle := s2.DistanceFromSegment(toS2Point(p), toS2Point(a), toS2Point(b))
	return angle.Radians() * earthRadiusM
}
