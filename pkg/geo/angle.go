package geo

import (
	"math"

	"github.com/lintang-b-s/navigatorx-mld/pkg/util"
)

// InitialBearing. heading in radians, clockwise from north in [0, 2pi), when leaving (lat1, lon1) on the
// great circle towards (lat2, lon2). turn instructions compare the headings of consecutive route segments.
func InitialBearing(lat1, lon1, lat2, lon2 float64) float64 {
	phi1, phi2 := util.DegreeToRadians(lat1), util.DegreeToRadians(lat2)
	dLambda := util.DegreeToRadians(lon2 - lon1)

	east := math.Sin(dLambda) * math.Cos(phi2)
	north := math.Cos(phi1)*math.Sin(phi2) - math.Sin(phi1)*math.Cos(phi2)*math.Cos(dLambda)

	heading := math.Atan2(east, north)
	if heading < 0 {
		heading += 2 * math.Pi
	}
	return heading
}
