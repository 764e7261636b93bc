package narrative

import (
	"context"
	"fmt"

	"github.com/ahouansou/zemroute/pkg"
	"github.com/ahouansou/zemroute/pkg/datastructure"
	"github.com/ahouansou/zemroute/pkg/engine/routing"
	"go.uber.org/zap"
)

type Translator interface {
	Translate(ctx context.Context, text string) (string, error)
}

const (
	seasonRainLabel = "Saison des Pluies"
	seasonDryLabel  = "Saison Sèche"
)

// RouteResult is the assembled answer handed to the presentation layer.
type RouteResult struct {
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

// Assembler combines metrics, legs and the season/weather/fare heuristics
// into the final result. translation is best effort: any translator failure
// falls back to the untranslated text and is never surfaced.
type Assembler struct {
	translator Translator
	logger     *zap.Logger
}

func NewAssembler(translator Translator, logger *zap.Logger) *Assembler {
	return &Assembler{
		translator: translator,
		logger:     logger,
	}
}

type AssembleParams struct {
	StartInput string
	EndInput   string
	AvoidInput string
	Rainy      bool

	Legs       []datastructure.Leg
	ResidualKm float64
	Metrics    routing.PathMetrics
	MaxPathLat float64
	Polyline   string
}

func (na *Assembler) Assemble(ctx context.Context, p AssembleParams) RouteResult {
	result := RouteResult{
		Departure: FonCityName(TitleCase(p.StartInput)),
		Polyline:  p.Polyline,
	}

	result.Steps = make([]string, 0, len(p.Legs))
	for _, leg := range p.Legs {
		result.Steps = append(result.Steps,
			fmt.Sprintf("%s - %.1fkm", FonCityName(leg.Name), leg.DistanceKm))
	}

	result.Destination = fmt.Sprintf("%s - %.1fkm",
		FonCityName(TitleCase(p.EndInput)), p.ResidualKm)

	if p.AvoidInput != "" {
		result.AvoidCity = FonCityName(TitleCase(p.AvoidInput))
	}

	seasonFr := seasonDryLabel
	if p.Rainy {
		seasonFr = seasonRainLabel
	}
	result.Season = na.translate(ctx, seasonFr)

	kmTotal := p.Metrics.GetDistanceMeters() / 1000.0
	timeSecs := p.Metrics.GetTimeSeconds()

	weatherMsg := ""
	if p.Rainy && p.MaxPathLat > pkg.RAINY_DEGRADED_LATITUDE {
		timeSecs += pkg.RAINY_WEATHER_PENALTY_SECS
		weatherMsg = " | [Météo] Route dégradée (+30min)"
	}

	hours := int(timeSecs) / 3600
	minutes := (int(timeSecs) % 3600) / 60
	durationStr := fmt.Sprintf("~%dh%02d", hours, minutes)

	suggMsg := ""
	if hours >= pkg.LONG_TRIP_SPLIT_HOURS {
		suggMsg = " | Suggestion: découper en 2 jours"
	}

	busFare := int(kmTotal * pkg.BUS_FARE_PER_KM_CFA)
	taxiFare := int(kmTotal * pkg.TAXI_FARE_PER_KM_CFA)
	costMsg := fmt.Sprintf(" | Bus: ~%dF / Taxi: ~%dF", busFare, taxiFare)

	summaryFr := fmt.Sprintf("Total: %.0fkm, %s%s%s%s",
		kmTotal, durationStr, weatherMsg, costMsg, suggMsg)
	result.Summary = na.translate(ctx, summaryFr)

	result.DistanceKm = kmTotal
	result.DurationSeconds = timeSecs

	return result
}

func (na *Assembler) translate(ctx context.Context, text string) string {
	translated, err := na.translator.Translate(ctx, text)
	if err != nil {
		na.logger.Warn("translation degraded to source text", zap.Error(err))
		return text
	}
	return translated
}
