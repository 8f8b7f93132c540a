package osmparser

import (
	"math"
	"strconv"
	"strings"

	"github.com/lintang-b-s/navigatorx-mld/pkg"
	da "github.com/lintang-b-s/navigatorx-mld/pkg/datastructure"
	"github.com/paulmach/osm"
)

func acceptOsmWay(way *osm.Way) bool {
	if len(way.Nodes) < 2 {
		return false
	}
	if _, ok := restrictedAccess[way.Tags.Find("access")]; ok {
		return false
	}
	if way.Tags.Find("area") == "yes" {
		return false
	}
	highway := way.Tags.Find("highway")
	if highway != "" {
		_, ok := acceptedHighway[highway]
		return ok
	}
	return way.Tags.Find("junction") != ""
}

func isRestricted(value string) bool {
	return value == "no" || value == "restricted"
}

// wayDirection. which directions of the way a car may drive.
func wayDirection(way *osm.Way) (forward, backward bool) {
	forward, backward = true, true

	junction := way.Tags.Find("junction")
	if junction == "roundabout" || junction == "circular" || way.Tags.Find("highway") == "motorway" {
		backward = false
	}

	switch way.Tags.Find("oneway") {
	case "yes", "true", "1":
		forward, backward = true, false
	case "-1", "reverse":
		forward, backward = false, true
	case "no", "false", "0":
		forward, backward = true, true
	}

	if isRestricted(way.Tags.Find("vehicle:forward")) || isRestricted(way.Tags.Find("motor_vehicle:forward")) {
		forward = false
	}
	if isRestricted(way.Tags.Find("vehicle:backward")) || isRestricted(way.Tags.Find("motor_vehicle:backward")) {
		backward = false
	}
	return forward, backward
}

// parseMaxSpeed. maxspeed tag in km/h. values without a unit are km/h.
func parseMaxSpeed(value string) (float64, bool) {
	value = strings.TrimSpace(value)
	if value == "" {
		return 0, false
	}
	factor := 1.0
	switch {
	case strings.HasSuffix(value, "mph"):
		factor = 1.60934
		value = strings.TrimSuffix(value, "mph")
	case strings.HasSuffix(value, "knots"):
		factor = 1.852
		value = strings.TrimSuffix(value, "knots")
	case strings.HasSuffix(value, "km/h"):
		value = strings.TrimSuffix(value, "km/h")
	}
	speed, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
	if err != nil || speed <= 0 {
		return 0, false
	}
	return speed * factor, true
}

// waySpeed. nerfed maxspeed when the way has one, otherwise the default speed of its highway type.
func waySpeed(way *osm.Way) float64 {
	if speed, ok := parseMaxSpeed(way.Tags.Find("maxspeed")); ok {
		return speed * pkg.NERF_MAXSPEED_OSM
	}
	return pkg.DefaultSpeed(pkg.GetHighwayType(way.Tags.Find("highway")))
}

func newWayInfo(way *osm.Way) wayInfo {
	forward, backward := wayDirection(way)
	junction := way.Tags.Find("junction")
	return wayInfo{
		id:         int64(way.ID),
		forward:    forward,
		backward:   backward,
		roundabout: junction == "roundabout" || junction == "circular",
		speed:      waySpeed(way),
	}
}

// travelWeight. travel time of distMeter at speedKmh, in deciseconds, at least 1.
func travelWeight(distMeter, speedKmh float64) da.Weight {
	if speedKmh <= 0 {
		speedKmh = pkg.DefaultSpeed(pkg.UNKNOWN)
	}
	seconds := distMeter / (speedKmh / 3.6)
	w := da.Weight(math.Round(seconds * pkg.WEIGHT_PER_SECOND))
	if w < 1 {
		w = 1
	}
	return w
}
