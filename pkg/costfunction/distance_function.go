package costfunction

import (
	"github.com/ahouansou/zemroute/pkg"
	"github.com/ahouansou/zemroute/pkg/datastructure"
)

type DistanceFunction struct {
}

func NewDistanceCostFunction() *DistanceFunction {
	return &DistanceFunction{}
}

func (df *DistanceFunction) GetWeight(variants []datastructure.EdgeVariant) float64 {
	best := pkg.INF_WEIGHT
	for _, v := range variants {
		if v.GetLength() < best {
			best = v.GetLength()
		}
	}
	return best
}
