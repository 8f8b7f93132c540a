package controllers

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	enTranslations "github.com/go-playground/validator/v10/translations/en"
	"github.com/julienschmidt/httprouter"
	helper "github.com/lintang-b-s/navigatorx-mld/pkg/http/router/routerhelper"
	"go.uber.org/zap"
)

type routingAPI struct {
	routingService RoutingService
	log            *zap.Logger
	validate       *validator.Validate
	trans          ut.Translator
}

func New(routingService RoutingService, log *zap.Logger) *routingAPI {
	validate := validator.New()
	english := en.New()
	uni := ut.New(english, english)
	trans, _ := uni.GetTranslator("en")
	_ = enTranslations.RegisterDefaultTranslations(validate, trans)

	return &routingAPI{
		routingService: routingService,
		log:            log,
		validate:       validate,
		trans:          trans,
	}
}

func (api *routingAPI) Routes(group *helper.RouteGroup) {
	group.GET("/computeRoutes", api.shortestPath)
	group.GET("/computeAlternativeRoutes", api.alternativeRoutes)
}

func parseCoordinate(query url.Values, key string) (float64, error) {
	val, err := strconv.ParseFloat(query.Get(key), 64)
	if err != nil {
		return 0, fmt.Errorf("%s is required and must be a valid float", key)
	}
	return val, nil
}

func parseOriginDestination(query url.Values) (origLat, origLon, dstLat, dstLon float64, err error) {
	if origLat, err = parseCoordinate(query, "origin_lat"); err != nil {
		return
	}
	if origLon, err = parseCoordinate(query, "origin_lon"); err != nil {
		return
	}
	if dstLat, err = parseCoordinate(query, "destination_lat"); err != nil {
		return
	}
	dstLon, err = parseCoordinate(query, "destination_lon")
	return
}

func (api *routingAPI) validateRequest(request any) error {
	if err := api.validate.Struct(request); err != nil {
		vv := translateError(err, api.trans)
		vvString := []string{}
		for _, v := range vv {
			vvString = append(vvString, v.Error())
		}
		return fmt.Errorf("validation error: %v", vvString)
	}
	return nil
}

// shortestPath
//
//	@Summary		fastest route between two points.
//	@Tags			routing
//	@Param			origin_lat		query	number	true	"origin latitude"
//	@Param			origin_lon		query	number	true	"origin longitude"
//	@Param			destination_lat	query	number	true	"destination latitude"
//	@Param			destination_lon	query	number	true	"destination longitude"
//	@Produce		application/json
//	@Router			/computeRoutes [get]
//	@Success		200	{object}	shortestPathResponse
//	@Failure		400	{object}	errorResponse
//	@Failure		404	{object}	errorResponse
//	@Failure		500	{object}	errorResponse
func (api *routingAPI) shortestPath(w http.ResponseWriter, r *http.Request, p httprouter.Params) {
	var (
		request shortestPathRequest
		err     error
	)

	request.OriginLat, request.OriginLon, request.DestinationLat, request.DestinationLon, err =
		parseOriginDestination(r.URL.Query())
	if err != nil {
		api.BadRequestResponse(w, r, err)
		return
	}
	if err := api.validateRequest(request); err != nil {
		api.BadRequestResponse(w, r, err)
		return
	}

	route, err := api.routingService.ShortestPath(r.Context(), request.OriginLat, request.OriginLon,
		request.DestinationLat, request.DestinationLon)
	if err != nil {
		api.getStatusCode(w, r, err)
		return
	}

	headers := make(http.Header)

	if err := api.writeJSON(w, http.StatusOK, envelope{"data": NewShortestPathResponse(route)}, headers); err != nil {
		api.ServerErrorResponse(w, r, err)
		return
	}
}

// alternativeRoutes
//
//	@Summary		fastest route plus up to k alternative routes between two points.
//	@Tags			routing
//	@Param			origin_lat		query	number	true	"origin latitude"
//	@Param			origin_lon		query	number	true	"origin longitude"
//	@Param			destination_lat	query	number	true	"destination latitude"
//	@Param			destination_lon	query	number	true	"destination longitude"
//	@Param			k				query	int		false	"maximum number of alternatives"
//	@Produce		application/json
//	@Router			/computeAlternativeRoutes [get]
//	@Success		200	{object}	alternativeRoutesResponse
//	@Failure		400	{object}	errorResponse
//	@Failure		404	{object}	errorResponse
//	@Failure		500	{object}	errorResponse
func (api *routingAPI) alternativeRoutes(w http.ResponseWriter, r *http.Request, p httprouter.Params) {
	var (
		request alternativeRoutesRequest
		err     error
	)

	query := r.URL.Query()
	request.OriginLat, request.OriginLon, request.DestinationLat, request.DestinationLon, err =
		parseOriginDestination(query)
	if err != nil {
		api.BadRequestResponse(w, r, err)
		return
	}
	if k := query.Get("k"); k != "" {
		request.K, err = strconv.ParseInt(k, 10, 64)
		if err != nil {
			api.BadRequestResponse(w, r, errors.New("number of alternatives k must be a valid int"))
			return
		}
	}
	if err := api.validateRequest(request); err != nil {
		api.BadRequestResponse(w, r, err)
		return
	}

	routes, err := api.routingService.AlternativeRouteSearch(r.Context(), request.OriginLat, request.OriginLon,
		request.DestinationLat, request.DestinationLon, int(request.K))
	if err != nil {
		api.getStatusCode(w, r, err)
		return
	}

	headers := make(http.Header)

	if err := api.writeJSON(w, http.StatusOK, envelope{"data": NewAlternativeRoutesResponse(routes)}, headers); err != nil {
		api.ServerErrorResponse(w, r, err)
		return
	}
}
