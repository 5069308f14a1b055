package inventory

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/vansales/backend/internal/domain/shared"
)

// CostHistoryEntry is one observed unit cost for a product. Entries are
// append-only: the core never updates or deletes them. Sequence is a
// monotonically increasing insertion order assigned by the store, used to
// break ties between observations recorded on the same date.
type CostHistoryEntry struct {
	shared.TenantAggregateRoot
	ProductID  uuid.UUID       `json:"product_id"`
	UnitCost   decimal.Decimal `json:"unit_cost"`
	RecordedAt time.Time       `json:"recorded_at"`
	Sequence   int64           `json:"sequence"`
	Source     string          `json:"source"`
}

// NewCostHistoryEntry records a cost observation for a product
func NewCostHistoryEntry(tenantID, productID uuid.UUID, unitCost decimal.Decimal, recordedAt time.Time, source string) (*CostHistoryEntry, error) {
	if productID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_PRODUCT", "Product ID cannot be empty")
	}
	if !unitCost.IsPositive() {
		return nil, shared.NewDomainError("INVALID_UNIT_COST", "Unit cost must be positive")
	}
	if recordedAt.IsZero() {
		recordedAt = time.Now()
	}
	return &CostHistoryEntry{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		ProductID:           productID,
		UnitCost:            unitCost,
		RecordedAt:          recordedAt,
		Source:              source,
	}, nil
}
