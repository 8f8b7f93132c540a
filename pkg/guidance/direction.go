package guidance

type TurnDirection int

// sign: negative turns left, positive turns right.
const (
	TURN_SHARP_LEFT    TurnDirection = -3
	TURN_LEFT          TurnDirection = -2
	TURN_SLIGHT_LEFT   TurnDirection = -1
	CONTINUE_ON_STREET TurnDirection = 0
	TURN_SLIGHT_RIGHT  TurnDirection = 1
	TURN_RIGHT         TurnDirection = 2
	TURN_SHARP_RIGHT   TurnDirection = 3
	START              TurnDirection = 100
	FINISH             TurnDirection = 101
)

func (t TurnDirection) String() string {
	switch t {
	case TURN_SHARP_LEFT:
		return "TURN_SHARP_LEFT"
	case TURN_LEFT:
		return "TURN_LEFT"
	case TURN_SLIGHT_LEFT:
		return "TURN_SLIGHT_LEFT"
	case CONTINUE_ON_STREET:
		return "CONTINUE_ON_STREET"
	case TURN_SLIGHT_RIGHT:
		return "TURN_SLIGHT_RIGHT"
	case TURN_RIGHT:
		return "TURN_RIGHT"
	case TURN_SHARP_RIGHT:
		return "TURN_SHARP_RIGHT"
	case START:
		return "START"
	case FINISH:
		return "FINISH"
	default:
		return "UNKNOWN"
	}
}

func (t TurnDirection) Description() string {
	switch t {
	case TURN_SHARP_LEFT:
		return "Turn sharp left"
	case TURN_LEFT:
		return "Turn left"
	case TURN_SLIGHT_LEFT:
		return "Turn slight left"
	case CONTINUE_ON_STREET:
		return "Continue"
	case TURN_SLIGHT_RIGHT:
		return "Turn slight right"
	case TURN_RIGHT:
		return "Turn right"
	case TURN_SHARP_RIGHT:
		return "Turn sharp right"
	case START:
		return "Depart"
	case FINISH:
		return "Arrive at destination"
	default:
		return ""
	}
}

// DrivingDirection. one maneuver. Distance is the distance driven after the maneuver up to the next one.
type DrivingDirection struct {
	Turn        TurnDirection
	Description string
	Lat, Lon    float64
	Bearing     float64 // heading after the maneuver, degrees
	Distance    float64 // meter
}
