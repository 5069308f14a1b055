package persistence

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/vansales/backend/internal/domain/inventory"
	"github.com/vansales/backend/internal/infrastructure/persistence/models"
)

// GormCostHistoryRepository implements CostHistoryRepository using GORM
type GormCostHistoryRepository struct {
	db *gorm.DB
}

// NewGormCostHistoryRepository creates a new GormCostHistoryRepository
func NewGormCostHistoryRepository(db *gorm.DB) *GormCostHistoryRepository {
	return &GormCostHistoryRepository{db: db}
}

// Append stores a new observation and assigns its sequence. The store is
// append-only; observations are never updated or deleted.
func (r *GormCostHistoryRepository) Append(ctx context.Context, entry *inventory.CostHistoryEntry) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var maxSeq int64
		if err := tx.Model(&models.CostHistoryModel{}).
			Where("tenant_id = ? AND product_id = ?", entry.TenantID, entry.ProductID).
			Select("COALESCE(MAX(sequence), 0)").
			Scan(&maxSeq).Error; err != nil {
			return err
		}
		entry.Sequence = maxSeq + 1

		model := &models.CostHistoryModel{}
		model.FromDomain(entry)
		return tx.Create(model).Error
	})
}

// FindByProduct returns all observations for a product ordered by
// (recorded date, sequence) ascending
func (r *GormCostHistoryRepository) FindByProduct(ctx context.Context, tenantID, productID uuid.UUID) ([]inventory.CostHistoryEntry, error) {
	var historyModels []models.CostHistoryModel
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND product_id = ?", tenantID, productID).
		Order("recorded_at ASC, sequence ASC").
		Find(&historyModels).Error; err != nil {
		return nil, err
	}

	entries := make([]inventory.CostHistoryEntry, len(historyModels))
	for i := range historyModels {
		entries[i] = *historyModels[i].ToDomain()
	}
	return entries, nil
}

// CountByProduct counts observations for a product
func (r *GormCostHistoryRepository) CountByProduct(ctx context.Context, tenantID, productID uuid.UUID) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.CostHistoryModel{}).
		Where("tenant_id = ? AND product_id = ?", tenantID, productID).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

var _ inventory.CostHistoryRepository = (*GormCostHistoryRepository)(nil)
