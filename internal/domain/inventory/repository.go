package inventory

import (
	"context"

	"github.com/google/uuid"
)

// CostHistoryRepository defines the interface for the append-only cost
// history store
type CostHistoryRepository interface {
	// Append stores a new observation and assigns its sequence
	Append(ctx context.Context, entry *CostHistoryEntry) error

	// FindByProduct returns all observations for a product ordered by
	// (recorded date, sequence) ascending
	FindByProduct(ctx context.Context, tenantID, productID uuid.UUID) ([]CostHistoryEntry, error)

	// CountByProduct counts observations for a product
	CountByProduct(ctx context.Context, tenantID, productID uuid.UUID) (int64, error)
}

// ValuationSettingRepository defines the interface for per-tenant costing
// policy persistence
type ValuationSettingRepository interface {
	// FindByTenant returns the tenant's setting, or shared.ErrNotFound
	FindByTenant(ctx context.Context, tenantID uuid.UUID) (*ValuationSetting, error)

	// Save creates or updates the setting
	Save(ctx context.Context, setting *ValuationSetting) error
}
