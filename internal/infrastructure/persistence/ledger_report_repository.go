package persistence

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/vansales/backend/internal/domain/accounting"
)

// GormLedgerReportRepository implements LedgerReportRepository using GORM.
// It aggregates posted lines directly in SQL; reports never touch the
// cached account balances.
type GormLedgerReportRepository struct {
	db *gorm.DB
}

// NewGormLedgerReportRepository creates a new GormLedgerReportRepository
func NewGormLedgerReportRepository(db *gorm.DB) *GormLedgerReportRepository {
	return &GormLedgerReportRepository{db: db}
}

// AggregateByAccount rolls up all posted lines with entry date <= asOf
// (or all lines when asOf is nil), grouped by account
func (r *GormLedgerReportRepository) AggregateByAccount(ctx context.Context, tenantID uuid.UUID, asOf *time.Time) ([]accounting.AccountAggregate, error) {
	query := r.aggregateQuery(ctx, tenantID)
	if asOf != nil {
		query = query.Where("journal_entries.entry_date <= ?", *asOf)
	}
	return r.scanAggregates(query)
}

// AggregateByAccountBetween rolls up posted lines with entry date in
// [from, to], grouped by account
func (r *GormLedgerReportRepository) AggregateByAccountBetween(ctx context.Context, tenantID uuid.UUID, from, to time.Time) ([]accounting.AccountAggregate, error) {
	query := r.aggregateQuery(ctx, tenantID).
		Where("journal_entries.entry_date >= ? AND journal_entries.entry_date <= ?", from, to)
	return r.scanAggregates(query)
}

func (r *GormLedgerReportRepository) aggregateQuery(ctx context.Context, tenantID uuid.UUID) *gorm.DB {
	return r.db.WithContext(ctx).
		Table("journal_entry_lines").
		Select("accounts.id AS account_id, accounts.code, accounts.name, accounts.type, accounts.category, COALESCE(SUM(journal_entry_lines.debit), 0) AS total_debit, COALESCE(SUM(journal_entry_lines.credit), 0) AS total_credit").
		Joins("JOIN journal_entries ON journal_entries.id = journal_entry_lines.journal_entry_id").
		Joins("JOIN accounts ON accounts.id = journal_entry_lines.account_id").
		Where("journal_entries.tenant_id = ?", tenantID).
		Group("accounts.id, accounts.code, accounts.name, accounts.type, accounts.category").
		Order("accounts.code ASC")
}

func (r *GormLedgerReportRepository) scanAggregates(query *gorm.DB) ([]accounting.AccountAggregate, error) {
	var aggregates []accounting.AccountAggregate
	if err := query.Scan(&aggregates).Error; err != nil {
		return nil, err
	}
	return aggregates, nil
}

var _ accounting.LedgerReportRepository = (*GormLedgerReportRepository)(nil)
