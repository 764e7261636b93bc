package main

import (
	"context"
	"flag"

	"github.com/ahouansou/zemroute/pkg"
	"github.com/ahouansou/zemroute/pkg/collaborator"
	"github.com/ahouansou/zemroute/pkg/engine"
	"github.com/ahouansou/zemroute/pkg/http"
	"github.com/ahouansou/zemroute/pkg/http/usecases"
	"github.com/ahouansou/zemroute/pkg/logger"
	"github.com/ahouansou/zemroute/pkg/narrative"
	"github.com/ahouansou/zemroute/pkg/spatialindex"
	"github.com/ahouansou/zemroute/pkg/util"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

var (
	graphFile     = flag.String("graph_file", "./data/benin.graph", "compressed road graph file")
	placesFile    = flag.String("places_file", "./data/places.tsv", "reverse geocoding places table")
	avoidRadiusKm = flag.Float64("avoid_radius_km", pkg.DEFAULT_AVOID_RADIUS_KM, "exclusion zone radius around an avoided city in km")
	useRateLimit  = flag.Bool("rate_limit", false, "enable per-client rate limiting")
	revGeoWorkers = flag.Int("revgeo_workers", 4, "reverse geocoding worker count")
)

func main() {
	flag.Parse()
	logger, err := logger.New()
	if err != nil {
		panic(err)
	}

	if err := util.ReadConfig(); err != nil {
		logger.Warn("no config file found, using defaults", zap.Error(err))
	}
	viper.SetDefault("NOMINATIM_BASE_URL", "https://nominatim.openstreetmap.org")
	viper.SetDefault("NOMINATIM_REGION_SUFFIX", "Benin")
	viper.SetDefault("GEOCODER_TIMEOUT", "10s")
	viper.SetDefault("GEOCODER_CACHE_SIZE", 2048)
	viper.SetDefault("TRANSLATOR_MODEL", "gpt-4o-mini")

	routingEngine, err := engine.NewEngine(*graphFile, logger)
	if err != nil {
		panic(err)
	}

	rtree := spatialindex.NewRtree()
	rtree.Build(routingEngine.GetRoutingEngine().GetGraph(), logger)

	places, err := collaborator.LoadPlacesFile(*placesFile)
	if err != nil {
		panic(err)
	}
	revGeocoder := collaborator.NewOfflineReverseGeocoder(places, *revGeoWorkers, logger)

	geocoder, err := collaborator.NewNominatimGeocoder(
		viper.GetString("NOMINATIM_BASE_URL"),
		viper.GetString("NOMINATIM_REGION_SUFFIX"),
		viper.GetDuration("GEOCODER_TIMEOUT"),
		viper.GetInt("GEOCODER_CACHE_SIZE"),
		logger,
	)
	if err != nil {
		panic(err)
	}

	translator := collaborator.NewFonTranslator(
		viper.GetString("OPENAI_API_KEY"),
		viper.GetString("OPENAI_BASE_URL"),
		viper.GetString("TRANSLATOR_MODEL"),
		logger,
	)
	assembler := narrative.NewAssembler(translator, logger)

	api := http.NewServer(logger)

	routingService := usecases.NewRoutingService(logger, routingEngine.GetRoutingEngine(), rtree,
		geocoder, revGeocoder, assembler, *avoidRadiusKm)

	ctx, cleanup := NewContext()
	if _, err := api.Use(ctx, logger, *useRateLimit, routingService); err != nil {
		panic(err)
	}

	signal := http.GracefulShutdown()

	logger.Info("Zemroute Routing Engine Server Stopped", zap.String("signal", signal.String()))
	cleanup()
}

func NewContext() (context.Context, func()) {
	ctx, cancel := context.WithCancel(context.Background())
	cb := func() {
		cancel()
	}

	return ctx, cb
}
