package accounting

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/vansales/backend/internal/domain/shared"
)

// AccountFilter defines filtering options for account queries
type AccountFilter struct {
	shared.Filter
	Type       *AccountType
	ActiveOnly bool
}

// AccountRepository defines the interface for ledger account persistence
type AccountRepository interface {
	// FindByIDForTenant finds an account by ID within a tenant
	FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*Account, error)

	// FindByCodeForTenant finds an account by its human code within a tenant
	FindByCodeForTenant(ctx context.Context, tenantID uuid.UUID, code string) (*Account, error)

	// FindByCodesForTenant finds accounts for a set of codes, keyed by code
	FindByCodesForTenant(ctx context.Context, tenantID uuid.UUID, codes []string) (map[string]*Account, error)

	// FindAllForTenant lists accounts for a tenant ordered by code
	FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter AccountFilter) ([]Account, error)

	// ExistsByCode checks whether a code is already used within a tenant
	ExistsByCode(ctx context.Context, tenantID uuid.UUID, code string) (bool, error)

	// Save creates or updates an account
	Save(ctx context.Context, account *Account) error

	// SaveAll creates or updates a batch of accounts
	SaveAll(ctx context.Context, accounts []*Account) error

	// DeleteForTenant hard deletes an account. Guard checks live in the
	// application service; the repository only removes the row.
	DeleteForTenant(ctx context.Context, tenantID, id uuid.UUID) error

	// HasJournalLines reports whether any posted line references the account
	HasJournalLines(ctx context.Context, tenantID, accountID uuid.UUID) (bool, error)

	// HasChildren reports whether any account has this one as parent
	HasChildren(ctx context.Context, tenantID, accountID uuid.UUID) (bool, error)
}

// JournalEntryFilter defines filtering options for entry queries
type JournalEntryFilter struct {
	shared.Filter
	FromDate      *time.Time
	ToDate        *time.Time
	ReferenceType *string
	ReferenceID   *uuid.UUID
}

// LedgerLine is one posted leg joined with its entry header, as returned
// for account-ledger queries in (entry date, insertion order) order.
type LedgerLine struct {
	EntryID     uuid.UUID       `json:"entry_id"`
	EntryNumber string          `json:"entry_number"`
	EntryDate   time.Time       `json:"entry_date"`
	Description string          `json:"description"`
	Debit       decimal.Decimal `json:"debit"`
	Credit      decimal.Decimal `json:"credit"`
	Position    int             `json:"position"`
}

// JournalEntryRepository defines the interface for journal entry persistence.
// All mutation methods apply the entry, its lines, and the cached account
// balance deltas in one transaction; partial postings never become visible.
type JournalEntryRepository interface {
	// CreatePosted persists a new entry as posted. It assigns the
	// per-tenant per-day entry number inside the transaction, retrying on
	// number collision, and applies every line's effect to its account's
	// cached balance with atomic increments.
	CreatePosted(ctx context.Context, entry *JournalEntry) error

	// CreateReversal persists the mirror entry and marks the original as
	// reversed, atomically.
	CreateReversal(ctx context.Context, original, reversal *JournalEntry) error

	// FindByIDForTenant finds an entry with its lines
	FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*JournalEntry, error)

	// FindAllForTenant lists entries (with lines) for a tenant
	FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter JournalEntryFilter) ([]JournalEntry, int64, error)

	// ExistsByReference reports whether an entry already references the
	// given business document. Event adapters use this for idempotency.
	ExistsByReference(ctx context.Context, tenantID uuid.UUID, refType string, refID uuid.UUID) (bool, error)

	// FindLinesForAccount returns posted legs of one account ordered by
	// (entry date, insertion order), optionally windowed by date.
	FindLinesForAccount(ctx context.Context, tenantID, accountID uuid.UUID, from, to *time.Time) ([]LedgerLine, error)
}

// AccountAggregate is the per-account debit/credit rollup used by reports
type AccountAggregate struct {
	AccountID   uuid.UUID
	Code        string
	Name        string
	Type        AccountType
	Category    string
	TotalDebit  decimal.Decimal
	TotalCredit decimal.Decimal
}

// NormalBalance returns the aggregate balance per the account's normal side
func (a AccountAggregate) NormalBalance() decimal.Decimal {
	if a.Type.IsDebitNormal() {
		return a.TotalDebit.Sub(a.TotalCredit)
	}
	return a.TotalCredit.Sub(a.TotalDebit)
}

// LedgerReportRepository aggregates posted lines for financial reports.
// Reports read; they never mutate.
type LedgerReportRepository interface {
	// AggregateByAccount rolls up all posted lines with entry date <= asOf
	// (or all lines when asOf is nil), grouped by account.
	AggregateByAccount(ctx context.Context, tenantID uuid.UUID, asOf *time.Time) ([]AccountAggregate, error)

	// AggregateByAccountBetween rolls up posted lines with entry date in
	// [from, to], grouped by account.
	AggregateByAccountBetween(ctx context.Context, tenantID uuid.UUID, from, to time.Time) ([]AccountAggregate, error)
}
