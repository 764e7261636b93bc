package datastructure

// ResolvedPlace is one reverse-geocoded coordinate: the nearest known place
// name and the region (country) code it belongs to.
type ResolvedPlace struct {
	Name       string
	RegionCode string
}

func NewResolvedPlace(name, regionCode string) ResolvedPlace {
	return ResolvedPlace{Name: name, RegionCode: regionCode}
}

// Leg is one named segment of the route narrative: a place and the distance
// covered since the previous place change.
type Leg struct {
	Name       string
	DistanceKm float64
}

func NewLeg(name string, distanceKm float64) Leg {
	return Leg{Name: name, DistanceKm: distanceKm}
}
