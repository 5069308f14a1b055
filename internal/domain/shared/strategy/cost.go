package strategy

import (
	"context"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// CostMethod represents the inventory costing method used to derive the
// cost basis of a sale from recorded cost observations.
type CostMethod string

const (
	CostMethodFIFO            CostMethod = "fifo"
	CostMethodLIFO            CostMethod = "lifo"
	CostMethodWeightedAverage CostMethod = "weighted_average"
	// CostMethodStandard ignores recorded history and always uses the
	// product's static cost.
	CostMethodStandard CostMethod = "standard"
)

// DefaultCostMethod is used when a tenant has no valuation setting yet.
const DefaultCostMethod = CostMethodFIFO

// String returns the string representation of the cost method
func (m CostMethod) String() string {
	return string(m)
}

// IsValid returns true if the cost method is a known method
func (m CostMethod) IsValid() bool {
	switch m {
	case CostMethodFIFO, CostMethodLIFO, CostMethodWeightedAverage, CostMethodStandard:
		return true
	default:
		return false
	}
}

// ParseCostMethod parses a case-insensitive method name. Unknown names
// return false; callers decide whether to default or reject.
func ParseCostMethod(s string) (CostMethod, bool) {
	m := CostMethod(strings.ToLower(strings.TrimSpace(s)))
	if m.IsValid() {
		return m, true
	}
	return "", false
}

// AllCostMethods returns all valid cost methods
func AllCostMethods() []CostMethod {
	return []CostMethod{
		CostMethodFIFO,
		CostMethodLIFO,
		CostMethodWeightedAverage,
		CostMethodStandard,
	}
}

// CostObservation is a single recorded unit cost for a product.
// Observations are append-only; RecordedAt plus Sequence gives a total order.
type CostObservation struct {
	ID         string
	ProductID  string
	UnitCost   decimal.Decimal
	RecordedAt time.Time
	Sequence   int64
	Source     string
}

// CostContext provides context for a cost resolution
type CostContext struct {
	TenantID  string
	ProductID string
	Date      time.Time
}

// CostResult contains the resolved unit cost
type CostResult struct {
	UnitCost decimal.Decimal
	Method   CostMethod
	// FromHistory is false when the strategy could not resolve a positive
	// cost from the observations and the caller must fall back to the
	// product's static cost.
	FromHistory bool
}

// CostStrategy resolves a unit cost from recorded cost observations.
type CostStrategy interface {
	// Method returns the costing method implemented by this strategy
	Method() CostMethod
	// ResolveUnitCost picks the unit cost the method prescribes from the
	// given observations. Implementations must not mutate the slice.
	ResolveUnitCost(ctx context.Context, costCtx CostContext, observations []CostObservation) (CostResult, error)
}
