package geo

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCalculateHaversineDistance(t *testing.T) {
	tests := []struct {
		name                   string
		lat1, lon1, lat2, lon2 float64
		expected               float64 // km
	}{
		{"same point", -7.76, 110.37, -7.76, 110.37, 0},
		{"one degree of latitude", 0, 110, 1, 110, 111.19},
		{"yogyakarta to solo", -7.7956, 110.3695, -7.5755, 110.8243, 55.77},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CalculateHaversineDistance(tt.lat1, tt.lon1, tt.lat2, tt.lon2)
			assert.InDelta(t, tt.expected, got, 0.5)
		})
	}
}

func TestBoundingBoxContainsPoint(t *testing.T) {
	lower, upper := BoundingBox(-7.76, 110.37, 0.2)
	assert.Less(t, lower.Lat, -7.76)
	assert.Less(t, lower.Lon, 110.37)
	assert.Greater(t, upper.Lat, -7.76)
	assert.Greater(t, upper.Lon, 110.37)
}

func TestProjectPointToSegment(t *testing.T) {
	a := NewCoordinate(-7.0, 110.0)
	b := NewCoordinate(-7.0, 110.01)

	projection, ratio := ProjectPointToSegment(a, b, NewCoordinate(-6.999, 110.0025))
	assert.InDelta(t, 0.25, ratio, 0.01)
	assert.InDelta(t, 110.0025, projection.Lon, 1e-5)

	_, ratio = ProjectPointToSegment(a, b, NewCoordinate(-7.0, 109.9))
	assert.InDelta(t, 0.0, ratio, 1e-9)

	_, ratio = ProjectPointToSegment(a, b, NewCoordinate(-7.0, 110.2))
	assert.InDelta(t, 1.0, ratio, 1e-9)

	dist := PointLinePerpendicularDistance(a, b, NewCoordinate(-6.999, 110.005))
	assert.InDelta(t, 111.0, dist, 1.0)
}

func TestPolylineRoundTrip(t *testing.T) {
	coords := []Coordinate{
		NewCoordinate(38.5, -120.2),
		NewCoordinate(40.7, -120.95),
		NewCoordinate(43.252, -126.453),
	}
	encoded := PolylineFromCoords(coords)
	assert.Equal(t, "_p~iF~ps|U_ulLnnqC_mqNvxq`@", encoded)

	decoded, err := CoordsFromPolyline(encoded)
	require.NoError(t, err)
	require.Len(t, decoded, len(coords))
	for i := range coords {
		assert.InDelta(t, coords[i].Lat, decoded[i].Lat, 1e-5)
		assert.InDelta(t, coords[i].Lon, decoded[i].Lon, 1e-5)
	}
}

func TestInitialBearing(t *testing.T) {
	tests := []struct {
		name                   string
		lat1, lon1, lat2, lon2 float64
		expected               float64
	}{
		{"north", 0, 110, 1, 110, 0},
		{"east", 0, 110, 0, 111, math.Pi / 2},
		{"south", 1, 110, 0, 110, math.Pi},
		{"west", 0, 111, 0, 110, 3 * math.Pi / 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.expected, InitialBearing(tt.lat1, tt.lon1, tt.lat2, tt.lon2), 1e-6)
		})
	}
}
