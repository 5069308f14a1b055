package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/vansales/backend/internal/domain/inventory"
	"github.com/vansales/backend/internal/domain/shared"
	"github.com/vansales/backend/internal/infrastructure/persistence/models"
)

// GormValuationSettingRepository implements ValuationSettingRepository using GORM
type GormValuationSettingRepository struct {
	db *gorm.DB
}

// NewGormValuationSettingRepository creates a new GormValuationSettingRepository
func NewGormValuationSettingRepository(db *gorm.DB) *GormValuationSettingRepository {
	return &GormValuationSettingRepository{db: db}
}

// FindByTenant returns the tenant's setting, or shared.ErrNotFound
func (r *GormValuationSettingRepository) FindByTenant(ctx context.Context, tenantID uuid.UUID) (*inventory.ValuationSetting, error) {
	var model models.ValuationSettingModel
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ?", tenantID).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// Save creates or updates the setting
func (r *GormValuationSettingRepository) Save(ctx context.Context, setting *inventory.ValuationSetting) error {
	model := &models.ValuationSettingModel{}
	model.FromDomain(setting)
	return r.db.WithContext(ctx).Save(model).Error
}

var _ inventory.ValuationSettingRepository = (*GormValuationSettingRepository)(nil)
