package pkg

const (
	// defaults of the alternative route search. overridable per query and through viper.
	OVERLAP_FACTOR             = 1.66
	MAX_STRETCH                = 1.4
	MAX_OVERLAP                = 0.85
	MAX_ALTERNATIVES           = 3
	MAX_ALTERNATIVE_SIMILARITY = 0.85

	// edge weights are stored in deciseconds
	WEIGHT_PER_SECOND = 10

	SNAP_RADIUS_KM     = 0.2
	MAX_SNAP_CANDIDATE = 20

	PATH_UNPACKING_CACHE_SIZE = 1 << 20
	NERF_MAXSPEED_OSM         = 0.9
)

const (
	DEBUG = false
)

type OsmHighwayType uint8

// enum buat osm highway buat routing: https://wiki.openstreetmap.org/wiki/OSM_tags_for_routing/Telenav
const (
	MOTORWAY       OsmHighwayType = 0
	TRUNK          OsmHighwayType = 1
	PRIMARY        OsmHighwayType = 2
	SECONDARY      OsmHighwayType = 3
	TERTIARY       OsmHighwayType = 4
	RESIDENTIAL    OsmHighwayType = 5
	SERVICE        OsmHighwayType = 6
	UNCLASSIFIED   OsmHighwayType = 7
	MOTORWAY_LINK  OsmHighwayType = 8
	TRUNK_LINK     OsmHighwayType = 9
	PRIMARY_LINK   OsmHighwayType = 10
	SECONDARY_LINK OsmHighwayType = 11
	TERTIARY_LINK  OsmHighwayType = 12
	LIVING_STREET  OsmHighwayType = 13
	ROAD           OsmHighwayType = 14
	TRACK          OsmHighwayType = 15
	MOTORROAD      OsmHighwayType = 16
	UNKNOWN        OsmHighwayType = 17
)

func GetHighwayType(roadType string) OsmHighwayType {
	switch roadType {
	case "motorway":
		return MOTORWAY
	case "trunk":
		return TRUNK
	case "primary":
		return PRIMARY
	case "secondary":
		return SECONDARY
	case "tertiary":
		return TERTIARY
	case "unclassified":
		return UNCLASSIFIED
	case "residential":
		return RESIDENTIAL
	case "service":
		return SERVICE
	case "motorway_link":
		return MOTORWAY_LINK
	case "trunk_link":
		return TRUNK_LINK
	case "primary_link":
		return PRIMARY_LINK
	case "secondary_link":
		return SECONDARY_LINK
	case "tertiary_link":
		return TERTIARY_LINK
	case "living_street":
		return LIVING_STREET
	case "road":
		return ROAD
	case "track":
		return TRACK
	case "motorroad":
		return MOTORROAD
	default:
		return UNKNOWN
	}
}

// DefaultSpeed. default speed (km/h) of a highway type when the way has no usable maxspeed tag
func DefaultSpeed(hw OsmHighwayType) float64 {
	switch hw {
	case MOTORWAY:
		return 100
	case TRUNK, MOTORROAD:
		return 80
	case PRIMARY:
		return 60
	case SECONDARY:
		return 50
	case TERTIARY:
		return 40
	case MOTORWAY_LINK, TRUNK_LINK:
		return 45
	case PRIMARY_LINK, SECONDARY_LINK, TERTIARY_LINK:
		return 30
	case RESIDENTIAL, UNCLASSIFIED, ROAD:
		return 25
	case LIVING_STREET, SERVICE:
		return 15
	case TRACK:
		return 10
	default:
		return 20
	}
}
