package costfunction

import (
	"github.com/ahouansou/zemroute/pkg"
	"github.com/ahouansou/zemroute/pkg/datastructure"
)

type TimeFunction struct {
}

func NewTimeCostFunction() *TimeFunction {
	return &TimeFunction{}
}

func (tf *TimeFunction) GetWeight(variants []datastructure.EdgeVariant) float64 {
	best := pkg.INF_WEIGHT
	for _, v := range variants {
		if v.GetTravelTime() < best {
			best = v.GetTravelTime()
		}
	}
	return best
}
