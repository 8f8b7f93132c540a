package osmparser

import (
	"github.com/paulmach/osm"
)

type NodeType uint8

const (
	END_NODE NodeType = iota
	BETWEEN_NODE
	JUNCTION_NODE
)

type nodeCoord struct {
	lat float64
	lon float64
}

type node struct {
	id    int64
	coord nodeCoord
}

// objectScanner. the part of osmpbf.Scanner the parser needs.
type objectScanner interface {
	Scan() bool
	Object() osm.Object
	Err() error
	Close() error
}

// wayInfo. routing attributes of an accepted osm way.
type wayInfo struct {
	id         int64
	forward    bool
	backward   bool
	roundabout bool
	speed      float64 // km/h
}

type acceptedWay struct {
	nodes []int64
	info  wayInfo
}

var (
	// https://wiki.openstreetmap.org/wiki/OSM_tags_for_routing/Telenav
	acceptedHighway = map[string]struct{}{
		"motorway":       {},
		"motorway_link":  {},
		"trunk":          {},
		"trunk_link":     {},
		"primary":        {},
		"primary_link":   {},
		"secondary":      {},
		"secondary_link": {},
		"tertiary":       {},
		"tertiary_link":  {},
		"residential":    {},
		"service":        {},
		"road":           {},
		"track":          {},
		"unclassified":   {},
		"living_street":  {},
		"motorroad":      {},
	}

	// https://wiki.openstreetmap.org/wiki/Key:barrier
	// a barrier with access=no splits the street into two disconnected graph edges.
	acceptedBarrierType = map[string]struct{}{
		"bollard":        {},
		"swing_gate":     {},
		"jersey_barrier": {},
		"lift_gate":      {},
		"block":          {},
		"gate":           {},
	}

	restrictedAccess = map[string]struct{}{
		"no":      {},
		"private": {},
	}
)
