package cost

import (
	"context"

	"github.com/vansales/backend/internal/domain/shared/strategy"
)

// StandardStrategy ignores recorded history entirely; the caller always
// falls back to the product's static cost.
type StandardStrategy struct{}

// NewStandardStrategy creates a new standard cost strategy
func NewStandardStrategy() *StandardStrategy {
	return &StandardStrategy{}
}

// Method returns the costing method
func (s *StandardStrategy) Method() strategy.CostMethod {
	return strategy.CostMethodStandard
}

// ResolveUnitCost never resolves from history
func (s *StandardStrategy) ResolveUnitCost(
	ctx context.Context,
	costCtx strategy.CostContext,
	observations []strategy.CostObservation,
) (strategy.CostResult, error) {
	return strategy.CostResult{Method: strategy.CostMethodStandard}, nil
}

// ForMethod returns the strategy implementing the given method. The switch
// is exhaustive over the enum; unknown methods fall back to the default
// explicitly.
func ForMethod(method strategy.CostMethod) strategy.CostStrategy {
	switch method {
	case strategy.CostMethodFIFO:
		return NewFIFOStrategy()
	case strategy.CostMethodLIFO:
		return NewLIFOStrategy()
	case strategy.CostMethodWeightedAverage:
		return NewWeightedAverageStrategy()
	case strategy.CostMethodStandard:
		return NewStandardStrategy()
	default:
		return NewFIFOStrategy()
	}
}
