package cost

import (
	"context"
	"sort"

	"github.com/vansales/backend/internal/domain/shared/strategy"
)

// FIFOStrategy resolves the unit cost as the earliest recorded observation
type FIFOStrategy struct{}

// NewFIFOStrategy creates a new FIFO cost strategy
func NewFIFOStrategy() *FIFOStrategy {
	return &FIFOStrategy{}
}

// Method returns the costing method
func (s *FIFOStrategy) Method() strategy.CostMethod {
	return strategy.CostMethodFIFO
}

// ResolveUnitCost picks the cost of the oldest observation, ordered by
// recorded date then insertion sequence
func (s *FIFOStrategy) ResolveUnitCost(
	ctx context.Context,
	costCtx strategy.CostContext,
	observations []strategy.CostObservation,
) (strategy.CostResult, error) {
	if len(observations) == 0 {
		return strategy.CostResult{Method: strategy.CostMethodFIFO}, nil
	}

	sorted := sortObservations(observations)
	oldest := sorted[0]
	if !oldest.UnitCost.IsPositive() {
		return strategy.CostResult{Method: strategy.CostMethodFIFO}, nil
	}

	return strategy.CostResult{
		UnitCost:    oldest.UnitCost,
		Method:      strategy.CostMethodFIFO,
		FromHistory: true,
	}, nil
}

// sortObservations returns a copy ordered by (recorded date, sequence)
// ascending. Strategies never mutate the caller's slice.
func sortObservations(observations []strategy.CostObservation) []strategy.CostObservation {
	sorted := make([]strategy.CostObservation, len(observations))
	copy(sorted, observations)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].RecordedAt.Equal(sorted[j].RecordedAt) {
			return sorted[i].Sequence < sorted[j].Sequence
		}
		return sorted[i].RecordedAt.Before(sorted[j].RecordedAt)
	})
	return sorted
}
