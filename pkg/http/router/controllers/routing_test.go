package controllers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/julienschmidt/httprouter"
	"github.com/lintang-b-s/navigatorx-mld/pkg/datastructure"
	"github.com/lintang-b-s/navigatorx-mld/pkg/guidance"
	helper "github.com/lintang-b-s/navigatorx-mld/pkg/http/router/routerhelper"
	"github.com/lintang-b-s/navigatorx-mld/pkg/http/usecases"
	"github.com/lintang-b-s/navigatorx-mld/pkg/util"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeRoutingService struct {
	routes []usecases.RouteSummary
	err    error
	k      int
}

func (f *fakeRoutingService) ShortestPath(ctx context.Context, origLat, origLon, dstLat,
	dstLon float64) (usecases.RouteSummary, error) {
	if f.err != nil {
		return usecases.RouteSummary{}, f.err
	}
	return f.routes[0], nil
}

func (f *fakeRoutingService) AlternativeRouteSearch(ctx context.Context, origLat, origLon, dstLat, dstLon float64,
	k int) ([]usecases.RouteSummary, error) {
	f.k = k
	return f.routes, f.err
}

func newTestRouter(svc RoutingService) *httprouter.Router {
	router := httprouter.New()
	New(svc, zap.NewNop()).Routes(helper.NewRouteGroup(router, "/api"))
	return router
}

func serve(router http.Handler, target string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
	return rec
}

const query = "origin_lat=-7.76&origin_lon=110.37&destination_lat=-7.80&destination_lon=110.36"

func TestShortestPathHandler(t *testing.T) {
	svc := &fakeRoutingService{routes: []usecases.RouteSummary{
		{Eta: 120.5, Distance: 1500, Polyline: "abc", Via: 3, Stretch: 1, Directions: []guidance.DrivingDirection{
			{Turn: guidance.START, Description: guidance.START.Description(), Distance: 1500},
			{Turn: guidance.FINISH, Description: guidance.FINISH.Description()},
		}},
	}}
	rec := serve(newTestRouter(svc), "/api/computeRoutes?"+query)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var body struct {
		Data shortestPathResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, 120.5, body.Data.Eta)
	assert.Equal(t, 1500.0, body.Data.Dist)
	assert.Equal(t, "abc", body.Data.Path)
	require.Len(t, body.Data.Directions, 2)
	assert.Equal(t, "START", body.Data.Directions[0].Turn)
	assert.Equal(t, "Depart", body.Data.Directions[0].Instruction)
	assert.Equal(t, 1500.0, body.Data.Directions[0].Distance)
}

func TestShortestPathHandlerBadRequest(t *testing.T) {
	router := newTestRouter(&fakeRoutingService{})

	tests := []struct {
		name   string
		target string
	}{
		{"missing origin", "/api/computeRoutes?destination_lat=-7.8&destination_lon=110.36"},
		{"not a float", "/api/computeRoutes?origin_lat=abc&origin_lon=110.37&destination_lat=-7.8&destination_lon=110.36"},
		{"latitude out of range", "/api/computeRoutes?origin_lat=97&origin_lon=110.37&destination_lat=-7.8&destination_lon=110.36"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := serve(router, tt.target)
			assert.Equal(t, http.StatusBadRequest, rec.Code)

			var body errorResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Equal(t, "BAD_REQUEST", body.Error.Code)
		})
	}
}

func TestHandlerErrorStatus(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
	}{
		{"not found", util.WrapErrorf(errors.New("no route"), util.ErrNotFound, "no path"), http.StatusNotFound},
		{"bad param", util.WrapErrorf(errors.New("far"), util.ErrBadParamInput, "snap"), http.StatusBadRequest},
		{"timeout", util.WrapErrorf(context.DeadlineExceeded, util.ErrInternalServerError, "search"), http.StatusGatewayTimeout},
		{"internal", errors.New("boom"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := serve(newTestRouter(&fakeRoutingService{err: tt.err}), "/api/computeRoutes?"+query)
			assert.Equal(t, tt.status, rec.Code)
		})
	}
}

func TestAlternativeRoutesHandler(t *testing.T) {
	svc := &fakeRoutingService{routes: []usecases.RouteSummary{
		{Eta: 100, Distance: 1000, Polyline: "p", Via: datastructure.INVALID_VERTEX_ID, Stretch: 1},
		{Eta: 110, Distance: 1200, Polyline: "a", Via: 7, Stretch: 1.1, Overlap: 0.4},
	}}
	router := newTestRouter(svc)

	rec := serve(router, "/api/computeAlternativeRoutes?"+query+"&k=2")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 2, svc.k)

	var body struct {
		Data alternativeRoutesResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, 100.0, body.Data.Primary.Eta)
	assert.Nil(t, body.Data.Primary.Via)
	require.Len(t, body.Data.Alternatives, 1)
	require.NotNil(t, body.Data.Alternatives[0].Via)
	assert.Equal(t, uint32(7), *body.Data.Alternatives[0].Via)
	assert.Equal(t, 0.4, body.Data.Alternatives[0].Overlap)

	rec = serve(router, "/api/computeAlternativeRoutes?"+query)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 0, svc.k)

	rec = serve(router, "/api/computeAlternativeRoutes?"+query+"&k=x")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = serve(router, "/api/computeAlternativeRoutes?"+query+"&k=50")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
