package persistence

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/vansales/backend/internal/domain/accounting"
	"github.com/vansales/backend/internal/domain/shared"
	"github.com/vansales/backend/internal/infrastructure/persistence/models"
)

// entryNumberRetries bounds the retry loop when two concurrent postings
// race for the same per-day sequence number.
const entryNumberRetries = 5

// GormJournalEntryRepository implements JournalEntryRepository using GORM
type GormJournalEntryRepository struct {
	db *gorm.DB
}

// NewGormJournalEntryRepository creates a new GormJournalEntryRepository
func NewGormJournalEntryRepository(db *gorm.DB) *GormJournalEntryRepository {
	return &GormJournalEntryRepository{db: db}
}

// CreatePosted persists a new entry as posted. The entry number is assigned
// inside the transaction; a collision with a concurrent posting rolls the
// transaction back and retries with a fresh number. Cached account balances
// are adjusted with atomic increments in the same transaction.
func (r *GormJournalEntryRepository) CreatePosted(ctx context.Context, entry *accounting.JournalEntry) error {
	var lastErr error
	for attempt := 0; attempt < entryNumberRetries; attempt++ {
		err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			number, err := nextEntryNumber(tx, entry.TenantID, entry.EntryDate)
			if err != nil {
				return err
			}
			entry.EntryNumber = number

			if err := insertEntryWithLines(tx, entry); err != nil {
				return err
			}
			return applyBalanceDeltas(tx, entry)
		})
		if err == nil {
			return nil
		}
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			lastErr = err
			continue
		}
		return err
	}
	return fmt.Errorf("failed to allocate entry number after %d attempts: %w", entryNumberRetries, lastErr)
}

// CreateReversal persists the mirror entry and marks the original as
// reversed, atomically.
func (r *GormJournalEntryRepository) CreateReversal(ctx context.Context, original, reversal *accounting.JournalEntry) error {
	var lastErr error
	for attempt := 0; attempt < entryNumberRetries; attempt++ {
		err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			number, err := nextEntryNumber(tx, reversal.TenantID, reversal.EntryDate)
			if err != nil {
				return err
			}
			reversal.EntryNumber = number

			if err := insertEntryWithLines(tx, reversal); err != nil {
				return err
			}
			if err := applyBalanceDeltas(tx, reversal); err != nil {
				return err
			}

			// Flip the original exactly once; a second reversal attempt
			// matches zero rows and fails here.
			result := tx.Model(&models.JournalEntryModel{}).
				Where("tenant_id = ? AND id = ? AND is_reversed = ?", original.TenantID, original.ID, false).
				Updates(map[string]any{
					"is_reversed":       true,
					"reversal_entry_id": reversal.ID,
					"updated_at":        time.Now(),
				})
			if result.Error != nil {
				return result.Error
			}
			if result.RowsAffected == 0 {
				return shared.NewDomainError("ALREADY_REVERSED", "Journal entry has already been reversed")
			}
			return nil
		})
		if err == nil {
			return nil
		}
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			lastErr = err
			continue
		}
		return err
	}
	return fmt.Errorf("failed to allocate entry number after %d attempts: %w", entryNumberRetries, lastErr)
}

// FindByIDForTenant finds an entry with its lines
func (r *GormJournalEntryRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*accounting.JournalEntry, error) {
	var model models.JournalEntryModel
	if err := r.db.WithContext(ctx).
		Preload("Lines", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC")
		}).
		Where("tenant_id = ? AND id = ?", tenantID, id).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAllForTenant lists entries (with lines) for a tenant
func (r *GormJournalEntryRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter accounting.JournalEntryFilter) ([]accounting.JournalEntry, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.JournalEntryModel{}).
		Where("tenant_id = ?", tenantID)

	if filter.FromDate != nil {
		query = query.Where("entry_date >= ?", *filter.FromDate)
	}
	if filter.ToDate != nil {
		query = query.Where("entry_date <= ?", *filter.ToDate)
	}
	if filter.ReferenceType != nil {
		query = query.Where("reference_type = ?", *filter.ReferenceType)
	}
	if filter.ReferenceID != nil {
		query = query.Where("reference_id = ?", *filter.ReferenceID)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	var entryModels []models.JournalEntryModel
	if err := query.
		Preload("Lines", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC")
		}).
		Order("entry_date DESC, entry_number DESC").
		Find(&entryModels).Error; err != nil {
		return nil, 0, err
	}

	entries := make([]accounting.JournalEntry, len(entryModels))
	for i := range entryModels {
		entries[i] = *entryModels[i].ToDomain()
	}
	return entries, total, nil
}

// ExistsByReference reports whether an entry already references the given
// business document
func (r *GormJournalEntryRepository) ExistsByReference(ctx context.Context, tenantID uuid.UUID, refType string, refID uuid.UUID) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.JournalEntryModel{}).
		Where("tenant_id = ? AND reference_type = ? AND reference_id = ?", tenantID, refType, refID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// FindLinesForAccount returns posted legs of one account ordered by
// (entry date, insertion order), optionally windowed by date
func (r *GormJournalEntryRepository) FindLinesForAccount(ctx context.Context, tenantID, accountID uuid.UUID, from, to *time.Time) ([]accounting.LedgerLine, error) {
	query := r.db.WithContext(ctx).
		Table("journal_entry_lines").
		Select("journal_entries.id AS entry_id, journal_entries.entry_number, journal_entries.entry_date, journal_entry_lines.description, journal_entry_lines.debit, journal_entry_lines.credit, journal_entry_lines.position").
		Joins("JOIN journal_entries ON journal_entries.id = journal_entry_lines.journal_entry_id").
		Where("journal_entries.tenant_id = ? AND journal_entry_lines.account_id = ?", tenantID, accountID)

	if from != nil {
		query = query.Where("journal_entries.entry_date >= ?", *from)
	}
	if to != nil {
		query = query.Where("journal_entries.entry_date <= ?", *to)
	}

	var lines []accounting.LedgerLine
	if err := query.
		Order("journal_entries.entry_date ASC, journal_entries.created_at ASC, journal_entry_lines.position ASC").
		Scan(&lines).Error; err != nil {
		return nil, err
	}
	return lines, nil
}

// nextEntryNumber allocates the next JE-YYYYMMDD-NNNNN number for the
// tenant and entry date. The unique index on (tenant_id, entry_number)
// catches races; the caller retries on collision.
func nextEntryNumber(tx *gorm.DB, tenantID uuid.UUID, entryDate time.Time) (string, error) {
	prefix := fmt.Sprintf("JE-%s-", entryDate.Format("20060102"))

	var maxNumber string
	if err := tx.Model(&models.JournalEntryModel{}).
		Select("entry_number").
		Where("tenant_id = ? AND entry_number LIKE ?", tenantID, prefix+"%").
		Order("entry_number DESC").
		Limit(1).
		Pluck("entry_number", &maxNumber).Error; err != nil {
		return "", err
	}

	var nextNum int
	if maxNumber != "" {
		parts := strings.Split(maxNumber, "-")
		if len(parts) != 3 {
			return "", fmt.Errorf("corrupt entry number %q", maxNumber)
		}
		n, err := strconv.Atoi(parts[2])
		if err != nil {
			return "", fmt.Errorf("corrupt entry number %q: %w", maxNumber, err)
		}
		nextNum = n
	}
	nextNum++

	return fmt.Sprintf("%s%05d", prefix, nextNum), nil
}

// insertEntryWithLines inserts the entry header and its lines
func insertEntryWithLines(tx *gorm.DB, entry *accounting.JournalEntry) error {
	model := models.JournalEntryModelFromDomain(entry)
	return tx.Create(model).Error
}

// applyBalanceDeltas adjusts each referenced account's cached balance by
// the entry's effect, using atomic increments. A reversal entry carries
// already-swapped lines, so its own deltas undo the original's.
func applyBalanceDeltas(tx *gorm.DB, entry *accounting.JournalEntry) error {
	// Load the referenced account types to orient each delta
	accountIDs := make([]uuid.UUID, 0, len(entry.Lines))
	for _, line := range entry.Lines {
		accountIDs = append(accountIDs, line.AccountID)
	}

	var accountModels []models.AccountModel
	if err := tx.
		Where("tenant_id = ? AND id IN ?", entry.TenantID, accountIDs).
		Find(&accountModels).Error; err != nil {
		return err
	}
	types := make(map[uuid.UUID]accounting.AccountType, len(accountModels))
	for _, m := range accountModels {
		types[m.ID] = m.Type
	}

	for _, line := range entry.Lines {
		accountType, ok := types[line.AccountID]
		if !ok {
			return shared.NewDomainError("ACCOUNT_NOT_FOUND",
				fmt.Sprintf("Account %s does not exist for this tenant", line.AccountID))
		}

		delta := line.Debit.Sub(line.Credit)
		if !accountType.IsDebitNormal() {
			delta = delta.Neg()
		}
		if delta.IsZero() {
			continue
		}

		if err := tx.Model(&models.AccountModel{}).
			Where("tenant_id = ? AND id = ?", entry.TenantID, line.AccountID).
			Updates(map[string]any{
				"balance":    gorm.Expr("balance + ?", delta),
				"updated_at": time.Now(),
			}).Error; err != nil {
			return err
		}
	}
	return nil
}

var _ accounting.JournalEntryRepository = (*GormJournalEntryRepository)(nil)
