package usecases

import (
	"github.com/lintang-b-s/navigatorx-mld/pkg"
	"github.com/lintang-b-s/navigatorx-mld/pkg/datastructure"
	"github.com/lintang-b-s/navigatorx-mld/pkg/engine/routing"
	"github.com/lintang-b-s/navigatorx-mld/pkg/geo"
	"github.com/lintang-b-s/navigatorx-mld/pkg/guidance"
	"github.com/lintang-b-s/navigatorx-mld/pkg/util"
)

// RouteSummary. one route as served by the api.
type RouteSummary struct {
	Eta      float64 // seconds
	Distance float64 // meter
	Polyline string
	Path     []geo.Coordinate
	Via      datastructure.Index
	Stretch  float64
	Overlap  float64

	Directions []guidance.DrivingDirection
}

// routeCoordinates. snapped source, every vertex passed, snapped target.
func (rs *RoutingService) routeCoordinates(phantoms datastructure.PhantomNodes, route *routing.Route) []geo.Coordinate {
	graph := rs.engine.GetGraph()
	coords := make([]geo.Coordinate, 0, len(route.Vertices)+2)
	coords = append(coords, geo.NewCoordinate(phantoms.Source.Lat, phantoms.Source.Lon))
	for _, v := range route.Vertices {
		lat, lon := graph.GetVertexCoordinates(v)
		coords = append(coords, geo.NewCoordinate(lat, lon))
	}
	return append(coords, geo.NewCoordinate(phantoms.Target.Lat, phantoms.Target.Lon))
}

func (rs *RoutingService) summarize(phantoms datastructure.PhantomNodes, route *routing.Route) RouteSummary {
	if route == nil {
		return RouteSummary{Via: datastructure.INVALID_VERTEX_ID}
	}
	path := rs.routeCoordinates(phantoms, route)
	directions := guidance.NewDirectionBuilder(rs.engine.GetGraph()).GetDrivingDirections(path[0], route.Vertices,
		path[len(path)-1])
	return RouteSummary{
		Eta:      util.RoundFloat(float64(route.Weight)/pkg.WEIGHT_PER_SECOND, 2),
		Distance: util.RoundFloat(route.Distance, 2),
		Polyline: geo.PolylineFromCoords(path),
		Path:     path,
		Via:      route.Via,
		Stretch:  util.RoundFloat(route.Stretch, 4),
		Overlap:  util.RoundFloat(route.Overlap, 4),

		Directions: directions,
	}
}
