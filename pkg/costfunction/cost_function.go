package costfunction

import (
	"github.com/ahouansou/zemroute/pkg"
	"github.com/ahouansou/zemroute/pkg/datastructure"
)

// CostFunction selects the weight of a directed step that may be served by
// several parallel edge variants. the step weight is the minimum of the
// selected field across the variants; a variant missing the field contributes
// INF_WEIGHT and loses every minimum unless it is alone.
type CostFunction interface {
	GetWeight(variants []datastructure.EdgeVariant) float64
}

func ForWeightMode(mode pkg.WeightMode) CostFunction {
	if mode == pkg.WEIGHT_DISTANCE {
		return NewDistanceCostFunction()
	}
	return NewTimeCostFunction()
}
