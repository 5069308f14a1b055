package cost

import (
	"context"

	"github.com/vansales/backend/internal/domain/shared/strategy"
)

// LIFOStrategy resolves the unit cost as the most recent observation
type LIFOStrategy struct{}

// NewLIFOStrategy creates a new LIFO cost strategy
func NewLIFOStrategy() *LIFOStrategy {
	return &LIFOStrategy{}
}

// Method returns the costing method
func (s *LIFOStrategy) Method() strategy.CostMethod {
	return strategy.CostMethodLIFO
}

// ResolveUnitCost picks the cost of the newest observation, ordered by
// recorded date then insertion sequence
func (s *LIFOStrategy) ResolveUnitCost(
	ctx context.Context,
	costCtx strategy.CostContext,
	observations []strategy.CostObservation,
) (strategy.CostResult, error) {
	if len(observations) == 0 {
		return strategy.CostResult{Method: strategy.CostMethodLIFO}, nil
	}

	sorted := sortObservations(observations)
	newest := sorted[len(sorted)-1]
	if !newest.UnitCost.IsPositive() {
		return strategy.CostResult{Method: strategy.CostMethodLIFO}, nil
	}

	return strategy.CostResult{
		UnitCost:    newest.UnitCost,
		Method:      strategy.CostMethodLIFO,
		FromHistory: true,
	}, nil
}
