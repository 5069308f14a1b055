package persistence

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/vansales/backend/internal/domain/accounting"
	"github.com/vansales/backend/internal/domain/shared"
	"github.com/vansales/backend/internal/infrastructure/persistence/models"
)

// GormAccountRepository implements AccountRepository using GORM
type GormAccountRepository struct {
	db *gorm.DB
}

// NewGormAccountRepository creates a new GormAccountRepository
func NewGormAccountRepository(db *gorm.DB) *GormAccountRepository {
	return &GormAccountRepository{db: db}
}

// FindByIDForTenant finds an account by ID for a specific tenant
func (r *GormAccountRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*accounting.Account, error) {
	var model models.AccountModel
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND id = ?", tenantID, id).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByCodeForTenant finds an account by code for a specific tenant
func (r *GormAccountRepository) FindByCodeForTenant(ctx context.Context, tenantID uuid.UUID, code string) (*accounting.Account, error) {
	var model models.AccountModel
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND code = ?", tenantID, code).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByCodesForTenant finds accounts for a set of codes, keyed by code
func (r *GormAccountRepository) FindByCodesForTenant(ctx context.Context, tenantID uuid.UUID, codes []string) (map[string]*accounting.Account, error) {
	if len(codes) == 0 {
		return map[string]*accounting.Account{}, nil
	}

	var accountModels []models.AccountModel
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND code IN ?", tenantID, codes).
		Find(&accountModels).Error; err != nil {
		return nil, err
	}

	result := make(map[string]*accounting.Account, len(accountModels))
	for i := range accountModels {
		account := accountModels[i].ToDomain()
		result[account.Code] = account
	}
	return result, nil
}

// FindAllForTenant lists accounts for a tenant ordered by code
func (r *GormAccountRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter accounting.AccountFilter) ([]accounting.Account, error) {
	var accountModels []models.AccountModel
	query := r.db.WithContext(ctx).Model(&models.AccountModel{}).
		Where("tenant_id = ?", tenantID)

	if filter.Type != nil {
		query = query.Where("type = ?", *filter.Type)
	}
	if filter.ActiveOnly {
		query = query.Where("is_active = ?", true)
	}
	if filter.Search != "" {
		// LOWER + LIKE works on both postgres and the sqlite test harness.
		pattern := "%" + strings.ToLower(filter.Search) + "%"
		query = query.Where("LOWER(code) LIKE ? OR LOWER(name) LIKE ?", pattern, pattern)
	}
	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	if err := query.Order("code ASC").Find(&accountModels).Error; err != nil {
		return nil, err
	}

	accounts := make([]accounting.Account, len(accountModels))
	for i := range accountModels {
		accounts[i] = *accountModels[i].ToDomain()
	}
	return accounts, nil
}

// ExistsByCode checks whether a code is already used within a tenant
func (r *GormAccountRepository) ExistsByCode(ctx context.Context, tenantID uuid.UUID, code string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.AccountModel{}).
		Where("tenant_id = ? AND code = ?", tenantID, code).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// Save creates or updates an account
func (r *GormAccountRepository) Save(ctx context.Context, account *accounting.Account) error {
	model := models.AccountModelFromDomain(account)
	return r.db.WithContext(ctx).Save(model).Error
}

// SaveAll creates or updates a batch of accounts
func (r *GormAccountRepository) SaveAll(ctx context.Context, accounts []*accounting.Account) error {
	if len(accounts) == 0 {
		return nil
	}
	accountModels := make([]*models.AccountModel, len(accounts))
	for i, account := range accounts {
		accountModels[i] = models.AccountModelFromDomain(account)
	}
	return r.db.WithContext(ctx).Save(accountModels).Error
}

// DeleteForTenant hard deletes an account
func (r *GormAccountRepository) DeleteForTenant(ctx context.Context, tenantID, id uuid.UUID) error {
	result := r.db.WithContext(ctx).
		Where("tenant_id = ? AND id = ?", tenantID, id).
		Delete(&models.AccountModel{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// HasJournalLines reports whether any posted line references the account
func (r *GormAccountRepository) HasJournalLines(ctx context.Context, tenantID, accountID uuid.UUID) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.JournalEntryLineModel{}).
		Joins("JOIN journal_entries ON journal_entries.id = journal_entry_lines.journal_entry_id").
		Where("journal_entries.tenant_id = ? AND journal_entry_lines.account_id = ?", tenantID, accountID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// HasChildren reports whether any account has this one as parent
func (r *GormAccountRepository) HasChildren(ctx context.Context, tenantID, accountID uuid.UUID) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.AccountModel{}).
		Where("tenant_id = ? AND parent_id = ?", tenantID, accountID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

var _ accounting.AccountRepository = (*GormAccountRepository)(nil)
