package geo

import (
	"github.com/golang/geo/s2"
)

// ProjectPointToSegment. closest point to snap on the great circle segment a-b, and its position on the
// segment as a fraction of the segment length (0 at a, 1 at b).
func ProjectPointToSegment(a, b, snap Coordinate) (Coordinate, float64) {
	pointA := s2.PointFromLatLng(s2.LatLngFromDegrees(a.Lat, a.Lon))
	pointB := s2.PointFromLatLng(s2.LatLngFromDegrees(b.Lat, b.Lon))
	snapPoint := s2.PointFromLatLng(s2.LatLngFromDegrees(snap.Lat, snap.Lon))

	projection := s2.Project(snapPoint, pointA, pointB)
	projectLatLng := s2.LatLngFromPoint(projection)

	ratio := 0.0
	if segment := pointA.Distance(pointB).Radians(); segment > 0 {
		ratio = pointA.Distance(projection).Radians() / segment
	}
	if ratio > 1 {
		ratio = 1
	}
	return NewCoordinate(projectLatLng.Lat.Degrees(), projectLatLng.Lng.Degrees()), ratio
}

// PointLinePerpendicularDistance. distance in meter between snap and its projection onto a-b.
func PointLinePerpendicularDistance(a, b, snap Coordinate) float64 {
	projection, _ := ProjectPointToSegment(a, b, snap)
	return CalculateHaversineDistance(snap.Lat, snap.Lon, projection.Lat, projection.Lon) * 1000
}
