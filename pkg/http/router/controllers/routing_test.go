package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	helper "github.com/ahouansou/zemroute/pkg/http/router/routerhelper"
	"github.com/ahouansou/zemroute/pkg/narrative"
	"github.com/ahouansou/zemroute/pkg/util"
	"github.com/julienschmidt/httprouter"
	"go.uber.org/zap"
)

type stubRoutingService struct {
	result narrative.RouteResult
	err    error
}

func (s stubRoutingService) ComputeRoute(_ context.Context, start, end, avoid, weightMode string,
	rainySeason bool) (narrative.RouteResult, error) {
	return s.result, s.err
}

func newTestRouter(service RoutingService) http.Handler {
	router := httprouter.New()
	group := helper.NewRouteGroup(router, "/api")
	New(service, zap.NewNop()).Routes(group)
	return router
}

func TestComputeRouteHandler(t *testing.T) {
	okResult := narrative.RouteResult{
		Departure:   "Kutɔnu (Cotonou)",
		Steps:       []string{"Bɔxikɔn (Bohicon) - 120.0km"},
		Destination: "Parakou - 295.0km",
		Season:      "Saison Sèche",
		Summary:     "Total: 415km, ~6h54 | Bus: ~7470F / Taxi: ~12450F",
		DistanceKm:  415,
		Polyline:    "abc",
	}

	testCases := []struct {
		name       string
		url        string
		service    RoutingService
		wantStatus int
	}{
		{
			name:       "ok",
			url:        "/api/computeRoutes?start=Cotonou&end=Parakou",
			service:    stubRoutingService{result: okResult},
			wantStatus: http.StatusOK,
		},
		{
			name:       "missing start",
			url:        "/api/computeRoutes?end=Parakou",
			service:    stubRoutingService{result: okResult},
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "invalid weight mode rejected before the service",
			url:        "/api/computeRoutes?start=Cotonou&end=Parakou&weight=scenic",
			service:    stubRoutingService{result: okResult},
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "invalid rainy flag",
			url:        "/api/computeRoutes?start=Cotonou&end=Parakou&rainy=maybe",
			service:    stubRoutingService{result: okResult},
			wantStatus: http.StatusBadRequest,
		},
		{
			name: "bad input from the service",
			url:  "/api/computeRoutes?start=Cotonou&end=Lagos",
			service: stubRoutingService{
				err: util.WrapErrorf(nil, util.ErrBadParamInput, "end outside covered region"),
			},
			wantStatus: http.StatusBadRequest,
		},
		{
			name: "nothing near the place",
			url:  "/api/computeRoutes?start=Cotonou&end=Parakou",
			service: stubRoutingService{
				err: util.WrapErrorf(nil, util.ErrNotFound, "no road network node"),
			},
			wantStatus: http.StatusNotFound,
		},
		{
			name: "no route",
			url:  "/api/computeRoutes?start=Cotonou&end=Karimama",
			service: stubRoutingService{
				err: util.WrapErrorf(nil, util.ErrNoRoute, "no route"),
			},
			wantStatus: http.StatusUnprocessableEntity,
		},
		{
			name: "internal error",
			url:  "/api/computeRoutes?start=Cotonou&end=Parakou",
			service: stubRoutingService{
				err: util.WrapErrorf(nil, util.ErrInternalServerError, "missing edge"),
			},
			wantStatus: http.StatusInternalServerError,
		},
	}

	for _, tt := range testCases {
		t.Run(tt.name, func(t *testing.T) {
			router := newTestRouter(tt.service)

			req := httptest.NewRequest(http.MethodGet, tt.url, nil)
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)

			if rec.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d (body %s)", rec.Code, tt.wantStatus, rec.Body.String())
			}

			if tt.wantStatus == http.StatusOK {
				var body struct {
					Data computeRouteResponse `json:"data"`
				}
				if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
					t.Fatalf("err: %v", err)
				}
				if body.Data.Departure != okResult.Departure {
					t.Errorf("departure = %q, want %q", body.Data.Departure, okResult.Departure)
				}
				if len(body.Data.Steps) != 1 {
					t.Errorf("steps = %v", body.Data.Steps)
				}
			} else {
				var body struct {
					Error struct {
						Code    string `json:"code"`
						Message string `json:"message"`
					} `json:"error"`
				}
				if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
					t.Fatalf("err: %v", err)
				}
				if body.Error.Code == "" {
					t.Error("error code should be set")
				}
			}
		})
	}
}
