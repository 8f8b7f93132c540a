package guidance

import (
	da "github.com/lintang-b-s/navigatorx-mld/pkg/datastructure"
	"github.com/lintang-b-s/navigatorx-mld/pkg/geo"
	"github.com/lintang-b-s/navigatorx-mld/pkg/util"
)

type Graph interface {
	GetVertexCoordinates(u da.Index) (float64, float64)
	ForOutEdgesOf(u da.Index, handle func(e *da.OutEdge))
}

// DirectionBuilder. turn instructions from the geometry of a route. only vertices where the driver has a
// choice produce an instruction.
type DirectionBuilder struct {
	graph Graph
}

func NewDirectionBuilder(graph Graph) *DirectionBuilder {
	return &DirectionBuilder{graph: graph}
}

// countAlternativeTurns. edges leaving u that lead neither back to prev nor on to next.
func (db *DirectionBuilder) countAlternativeTurns(u, prev, next da.Index) int {
	alternatives := 0
	db.graph.ForOutEdgesOf(u, func(e *da.OutEdge) {
		if e.GetHead() != prev && e.GetHead() != next {
			alternatives++
		}
	})
	return alternatives
}

// GetDrivingDirections. instructions for driving from source through vertices to target.
func (db *DirectionBuilder) GetDrivingDirections(source geo.Coordinate, vertices []da.Index,
	target geo.Coordinate) []DrivingDirection {
	points := make([]geo.Coordinate, 0, len(vertices)+2)
	points = append(points, source)
	for _, v := range vertices {
		lat, lon := db.graph.GetVertexCoordinates(v)
		points = append(points, geo.NewCoordinate(lat, lon))
	}
	points = append(points, target)

	vertexAt := func(i int) da.Index {
		if i < 1 || i > len(vertices) {
			return da.INVALID_VERTEX_ID
		}
		return vertices[i-1]
	}

	directions := make([]DrivingDirection, 0)
	heading := db.firstHeading(points)
	directions = append(directions, DrivingDirection{
		Turn:        START,
		Description: START.Description(),
		Lat:         source.Lat,
		Lon:         source.Lon,
		Bearing:     util.RoundFloat(util.RadiansToDegree(heading), 2),
	})

	for i := 1; i < len(points); i++ {
		prev, curr := points[i-1], points[i]
		directions[len(directions)-1].Distance += geo.CalculateHaversineDistance(prev.Lat, prev.Lon,
			curr.Lat, curr.Lon) * 1000
		if i == len(points)-1 {
			break
		}
		next := points[i+1]
		if samePoint(curr, next) {
			continue
		}
		if !samePoint(prev, curr) {
			heading = computeInitialBearing(prev.Lat, prev.Lon, curr.Lat, curr.Lon)
		}
		outgoing := computeInitialBearing(curr.Lat, curr.Lon, next.Lat, next.Lon)
		turn := getTurnDirection(heading, outgoing)
		u := vertexAt(i)
		if turn == CONTINUE_ON_STREET || u == da.INVALID_VERTEX_ID ||
			db.countAlternativeTurns(u, vertexAt(i-1), vertexAt(i+1)) == 0 {
			continue
		}
		directions = append(directions, DrivingDirection{
			Turn:        turn,
			Description: turn.Description(),
			Lat:         curr.Lat,
			Lon:         curr.Lon,
			Bearing:     util.RoundFloat(util.RadiansToDegree(outgoing), 2),
		})
	}

	directions = append(directions, DrivingDirection{
		Turn:        FINISH,
		Description: FINISH.Description(),
		Lat:         target.Lat,
		Lon:         target.Lon,
		Bearing:     util.RoundFloat(util.RadiansToDegree(heading), 2),
	})
	for i := range directions {
		directions[i].Distance = util.RoundFloat(directions[i].Distance, 2)
	}
	return directions
}

func (db *DirectionBuilder) firstHeading(points []geo.Coordinate) float64 {
	for i := 1; i < len(points); i++ {
		if !samePoint(points[0], points[i]) {
			return computeInitialBearing(points[0].Lat, points[0].Lon, points[i].Lat, points[i].Lon)
		}
	}
	return 0
}

func samePoint(a, b geo.Coordinate) bool {
	return a.Lat == b.Lat && a.Lon == b.Lon
}
