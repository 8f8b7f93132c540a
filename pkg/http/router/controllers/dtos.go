package controllers

import (
	"github.com/lintang-b-s/navigatorx-mld/pkg/datastructure"
	"github.com/lintang-b-s/navigatorx-mld/pkg/guidance"
	"github.com/lintang-b-s/navigatorx-mld/pkg/http/usecases"
)

type shortestPathRequest struct {
	OriginLat      float64 `json:"origin_lat" validate:"min=-90,max=90"`
	OriginLon      float64 `json:"origin_lon" validate:"min=-180,max=180"`
	DestinationLat float64 `json:"destination_lat" validate:"min=-90,max=90"`
	DestinationLon float64 `json:"destination_lon" validate:"min=-180,max=180"`
}

type alternativeRoutesRequest struct {
	OriginLat      float64 `json:"origin_lat" validate:"min=-90,max=90"`
	OriginLon      float64 `json:"origin_lon" validate:"min=-180,max=180"`
	DestinationLat float64 `json:"destination_lat" validate:"min=-90,max=90"`
	DestinationLon float64 `json:"destination_lon" validate:"min=-180,max=180"`
	K              int64   `json:"k" validate:"min=0,max=10"`
}

type drivingDirectionResponse struct {
	Instruction string  `json:"instruction"`
	Turn        string  `json:"turn"`
	Lat         float64 `json:"lat"`
	Lon         float64 `json:"lon"`
	Bearing     float64 `json:"bearing"`
	Distance    float64 `json:"distance"`
}

func newDrivingDirectionsResponse(directions []guidance.DrivingDirection) []drivingDirectionResponse {
	resp := make([]drivingDirectionResponse, 0, len(directions))
	for _, d := range directions {
		resp = append(resp, drivingDirectionResponse{
			Instruction: d.Description,
			Turn:        d.Turn.String(),
			Lat:         d.Lat,
			Lon:         d.Lon,
			Bearing:     d.Bearing,
			Distance:    d.Distance,
		})
	}
	return resp
}

type shortestPathResponse struct {
	Eta        float64                    `json:"eta"`
	Path       string                     `json:"path"`
	Dist       float64                    `json:"distance"`
	Directions []drivingDirectionResponse `json:"driving_directions"`
}

func NewShortestPathResponse(route usecases.RouteSummary) shortestPathResponse {
	return shortestPathResponse{
		Eta:        route.Eta,
		Path:       route.Polyline,
		Dist:       route.Distance,
		Directions: newDrivingDirectionsResponse(route.Directions),
	}
}

type alternativeRouteResponse struct {
	Eta     float64 `json:"eta"`
	Path    string  `json:"path"`
	Dist    float64 `json:"distance"`
	Stretch float64 `json:"stretch"`
	Overlap float64 `json:"overlap"`
	Via     *uint32 `json:"via_vertex,omitempty"`

	Directions []drivingDirectionResponse `json:"driving_directions"`
}

type alternativeRoutesResponse struct {
	Primary      alternativeRouteResponse   `json:"primary"`
	Alternatives []alternativeRouteResponse `json:"alternatives"`
}

func newAlternativeRouteResponse(route usecases.RouteSummary) alternativeRouteResponse {
	resp := alternativeRouteResponse{
		Eta:     route.Eta,
		Path:    route.Polyline,
		Dist:    route.Distance,
		Stretch: route.Stretch,
		Overlap: route.Overlap,

		Directions: newDrivingDirectionsResponse(route.Directions),
	}
	if route.Via != datastructure.INVALID_VERTEX_ID {
		via := uint32(route.Via)
		resp.Via = &via
	}
	return resp
}

// NewAlternativeRoutesResponse. routes[0] is the primary route.
func NewAlternativeRoutesResponse(routes []usecases.RouteSummary) alternativeRoutesResponse {
	resp := alternativeRoutesResponse{Alternatives: make([]alternativeRouteResponse, 0)}
	if len(routes) == 0 {
		return resp
	}
	resp.Primary = newAlternativeRouteResponse(routes[0])
	for _, r := range routes[1:] {
		resp.Alternatives = append(resp.Alternatives, newAlternativeRouteResponse(r))
	}
	return resp
}

type errorResponse struct {
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}
