package inventory

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/vansales/backend/internal/domain/shared"
	"github.com/vansales/backend/internal/domain/shared/strategy"
)

// ValuationSetting selects the active costing policy for a tenant.
// It is created lazily on first lookup and read-mostly afterwards.
type ValuationSetting struct {
	shared.TenantAggregateRoot
	Method strategy.CostMethod `json:"method"`
}

// NewValuationSetting creates a setting with the default method
func NewValuationSetting(tenantID uuid.UUID) *ValuationSetting {
	return &ValuationSetting{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		Method:              strategy.DefaultCostMethod,
	}
}

// SetMethod switches the costing policy. Unknown methods are rejected, not
// silently defaulted.
func (s *ValuationSetting) SetMethod(method strategy.CostMethod) error {
	if !method.IsValid() {
		return shared.NewDomainError("INVALID_COST_METHOD", "Costing method is not valid")
	}
	s.Method = method
	return nil
}

// UnitType is the unit a caller wants the cost expressed in
type UnitType string

const (
	UnitTypePiece UnitType = "PIECE"
	UnitTypeBox   UnitType = "BOX"
)

// IsValid checks the unit type
func (u UnitType) IsValid() bool {
	return u == UnitTypePiece || u == UnitTypeBox
}

// ProductCostFacts are the static cost fields carried on the product by the
// catalog collaborator. The valuation engine falls back to these when the
// cost history cannot resolve a positive cost.
type ProductCostFacts struct {
	UnitCost    decimal.Decimal `json:"unit_cost"`
	BoxCost     decimal.Decimal `json:"box_cost"`
	UnitsPerBox decimal.Decimal `json:"units_per_box"`
}
