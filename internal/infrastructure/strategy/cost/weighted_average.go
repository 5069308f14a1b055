package cost

import (
	"context"

	"github.com/shopspring/decimal"
	"github.com/vansales/backend/internal/domain/shared/strategy"
)

// WeightedAverageStrategy resolves the unit cost as the arithmetic mean of
// all recorded observations
type WeightedAverageStrategy struct{}

// NewWeightedAverageStrategy creates a new weighted average cost strategy
func NewWeightedAverageStrategy() *WeightedAverageStrategy {
	return &WeightedAverageStrategy{}
}

// Method returns the costing method
func (s *WeightedAverageStrategy) Method() strategy.CostMethod {
	return strategy.CostMethodWeightedAverage
}

// ResolveUnitCost averages every observation's cost
func (s *WeightedAverageStrategy) ResolveUnitCost(
	ctx context.Context,
	costCtx strategy.CostContext,
	observations []strategy.CostObservation,
) (strategy.CostResult, error) {
	if len(observations) == 0 {
		return strategy.CostResult{Method: strategy.CostMethodWeightedAverage}, nil
	}

	total := decimal.Zero
	for _, obs := range observations {
		total = total.Add(obs.UnitCost)
	}
	mean := total.Div(decimal.NewFromInt(int64(len(observations))))
	if !mean.IsPositive() {
		return strategy.CostResult{Method: strategy.CostMethodWeightedAverage}, nil
	}

	return strategy.CostResult{
		UnitCost:    mean,
		Method:      strategy.CostMethodWeightedAverage,
		FromHistory: true,
	}, nil
}
