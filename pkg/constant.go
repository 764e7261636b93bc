package pkg

// WeightMode selects which edge-variant field the search minimizes.
type WeightMode uint8

const (
	WEIGHT_DURATION WeightMode = iota // travel_time in seconds, the default
	WEIGHT_DISTANCE                   // length in meters
)

func ParseWeightMode(mode string) (WeightMode, bool) {
	switch mode {
	case "duration", "":
		return WEIGHT_DURATION, true
	case "distance":
		return WEIGHT_DISTANCE, true
	default:
		return WEIGHT_DURATION, false
	}
}

const (
	INF_WEIGHT float64 = 1e15

	EPS = 1e-9

	// 1 degree of latitude ~= 111 km. the exclusion radius keeps this flat
	// approximation and does not correct longitude for latitude.
	KM_PER_DEGREE = 111.0

	DEFAULT_AVOID_RADIUS_KM = 3.0

	COVERED_REGION_CODE = "BJ"

	// north of this latitude the main axes degrade during the rainy season
	RAINY_DEGRADED_LATITUDE    = 9.8
	RAINY_WEATHER_PENALTY_SECS = 1800.0

	BUS_FARE_PER_KM_CFA  = 18.0
	TAXI_FARE_PER_KM_CFA = 30.0

	LONG_TRIP_SPLIT_HOURS = 10
)

const (
	DEBUG = false
)

func Eq(a, b float64) bool {
	d := a - b
	if d < 0 {
		d = -d
	}
	return d <= EPS
}
