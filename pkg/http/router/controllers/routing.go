package controllers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	enTranslations "github.com/go-playground/validator/v10/translations/en"
	helper "github.com/ahouansou/zemroute/pkg/http/router/routerhelper"
	"github.com/julienschmidt/httprouter"
	"go.uber.org/zap"
)

type routingAPI struct {
	routingService RoutingService
	log            *zap.Logger
}

func New(routingService RoutingService, log *zap.Logger) *routingAPI {
	return &routingAPI{
		routingService: routingService,
		log:            log,
	}
}

func (api *routingAPI) Routes(group *helper.RouteGroup) {
	group.GET("/computeRoutes", api.computeRoute)
}

func (api *routingAPI) computeRoute(w http.ResponseWriter, r *http.Request, p httprouter.Params) {
	var (
		request computeRouteRequest
		err     error
	)

	query := r.URL.Query()

	request.Start = query.Get("start")
	request.End = query.Get("end")
	request.Avoid = query.Get("avoid")
	request.WeightMode = query.Get("weight")

	if rainy := query.Get("rainy"); rainy != "" {
		request.Rainy, err = strconv.ParseBool(rainy)
		if err != nil {
			api.BadRequestResponse(w, r, errors.New("rainy must be a valid bool"))
			return
		}
	}

	validate := validator.New()
	if err := validate.Struct(request); err != nil {
		english := en.New()
		uni := ut.New(english, english)
		trans, _ := uni.GetTranslator("en")
		_ = enTranslations.RegisterDefaultTranslations(validate, trans)
		vv := translateError(err, trans)
		vvString := []string{}
		for _, v := range vv {
			vvString = append(vvString, v.Error())
		}
		api.BadRequestResponse(w, r, fmt.Errorf("validation error: %v", vvString))
		return
	}

	result, err := api.routingService.ComputeRoute(r.Context(), request.Start, request.End,
		request.Avoid, request.WeightMode, request.Rainy)
	if err != nil {
		api.getStatusCode(w, r, err)
		return
	}

	headers := make(http.Header)

	if err := api.writeJSON(w, http.StatusOK, envelope{"data": NewComputeRouteResponse(result)}, headers); err != nil {
		api.ServerErrorResponse(w, r, err)
		return
	}
}
