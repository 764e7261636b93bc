package controllers

import (
	"github.com/ahouansou/zemroute/pkg/narrative"
)

type computeRouteRequest struct {
	Start      string `json:"start" validate:"required,min=2,max=100"`
	End        string `json:"end" validate:"required,min=2,max=100"`
	Avoid      string `json:"avoid" validate:"omitempty,min=2,max=100"`
	WeightMode string `json:"weight" validate:"omitempty,oneof=duration distance"`
	Rainy      bool   `json:"rainy"`
}

type computeRouteResponse struct {
	Departure       string   `json:"departure"`
	Steps           []string `json:"steps"`
	Destination     string   `json:"destination"`
	AvoidCity       string   `json:"avoid_city,omitempty"`
	Season          string   `json:"season"`
	Summary         string   `json:"summary"`
	DistanceKm      float64  `json:"distance_km"`
	DurationSeconds float64  `json:"duration_seconds"`
	Polyline        string   `json:"polyline"`
}

func NewComputeRouteResponse(result narrative.RouteResult) computeRouteResponse {
	return computeRouteResponse{
		Departure:       result.Departure,
		Steps:           result.Steps,
		Destination:     result.Destination,
		AvoidCity:       result.AvoidCity,
		Season:          result.Season,
		Summary:         result.Summary,
		DistanceKm:      result.DistanceKm,
		DurationSeconds: result.DurationSeconds,
		Polyline:        result.Polyline,
	}
}

type errorResponse struct {
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}
