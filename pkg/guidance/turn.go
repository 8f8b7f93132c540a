package guidance

import (
	"math"

	"github.com/lintang-b-s/navigatorx-mld/pkg/geo"
	"github.com/lintang-b-s/navigatorx-mld/pkg/util"
)

// computeInitialBearing. bearing from a to b in radians.
func computeInitialBearing(lat1, lon1, lat2, lon2 float64) float64 {
	return geo.InitialBearing(lat1, lon1, lat2, lon2)
}

// computeDeltaBearing. current heading minus previous heading, in radians within [-pi, pi].
func computeDeltaBearing(prevInitialBearing, initialBearing float64) float64 {
	prevInitialBearing, initialBearing = alignInitialBearing(prevInitialBearing, initialBearing)
	return initialBearing - prevInitialBearing
}

/*
alignInitialBearing. a raw difference above 180° or below -180° turns the wrong way:

	\
	 \ initialBearing (350°)
	  \
	  /
	 /  prevInitialBearing (20°)
	/

350° - 20° = 330° reads as a right turn, the road turns left. prevInitialBearing + 360° fixes it.
10° - 340° = -330° is the mirrored case, fixed with initialBearing + 360°.
*/
func alignInitialBearing(prevInitialBearing, initialBearing float64) (float64, float64) {
	dif := util.RadiansToDegree(initialBearing) - util.RadiansToDegree(prevInitialBearing)
	if dif > 180 {
		prevInitialBearing += 2 * math.Pi
	} else if dif < -180 {
		initialBearing += 2 * math.Pi
	}
	return prevInitialBearing, initialBearing
}

func getTurnDirection(prevInitialBearing, initialBearing float64) TurnDirection {
	delta := computeDeltaBearing(prevInitialBearing, initialBearing)
	deltaDegree := util.RadiansToDegree(math.Abs(delta))
	switch {
	case deltaDegree < 12:
		return CONTINUE_ON_STREET
	case deltaDegree < 40:
		if delta < 0 {
			return TURN_SLIGHT_LEFT
		}
		return TURN_SLIGHT_RIGHT
	case deltaDegree < 105:
		if delta < 0 {
			return TURN_LEFT
		}
		return TURN_RIGHT
	case delta < 0:
		return TURN_SHARP_LEFT
	default:
		return TURN_SHARP_RIGHT
	}
}
