package accounting

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/vansales/backend/internal/domain/shared"
)

// Reference types linking an entry to the business document that caused it
const (
	ReferenceTypeSale            = "SALE"
	ReferenceTypePurchase        = "PURCHASE"
	ReferenceTypeSupplierPayment = "SUPPLIER_PAYMENT"
	ReferenceTypeJournalEntry    = "JOURNAL_ENTRY"
	ReferenceTypeManual          = "MANUAL"
)

// LineInput is one debit/credit leg of an entry being composed.
// A well-formed leg has exactly one of Debit/Credit non-zero; the engine
// only enforces non-negativity per leg and exact balance per entry.
type LineInput struct {
	AccountID   uuid.UUID
	Debit       decimal.Decimal
	Credit      decimal.Decimal
	Description string
}

// JournalEntryLine is a persisted leg referencing exactly one account
type JournalEntryLine struct {
	ID             uuid.UUID       `json:"id"`
	JournalEntryID uuid.UUID       `json:"journal_entry_id"`
	AccountID      uuid.UUID       `json:"account_id"`
	Debit          decimal.Decimal `json:"debit"`
	Credit         decimal.Decimal `json:"credit"`
	Description    string          `json:"description"`
	Position       int             `json:"position"`
}

// JournalEntry is one posting event: a balanced set of debit/credit legs.
// Entries are created already posted and are immutable afterwards, except
// for the reversal flag which is set exactly once.
type JournalEntry struct {
	shared.TenantAggregateRoot
	EntryNumber     string             `json:"entry_number"`
	EntryDate       time.Time          `json:"entry_date"`
	Description     string             `json:"description"`
	ReferenceType   string             `json:"reference_type,omitempty"`
	ReferenceID     *uuid.UUID         `json:"reference_id,omitempty"`
	TotalDebit      decimal.Decimal    `json:"total_debit"`
	TotalCredit     decimal.Decimal    `json:"total_credit"`
	IsPosted        bool               `json:"is_posted"`
	IsReversed      bool               `json:"is_reversed"`
	ReversalEntryID *uuid.UUID         `json:"reversal_entry_id,omitempty"`
	PostedBy        *uuid.UUID         `json:"posted_by,omitempty"`
	Lines           []JournalEntryLine `json:"lines"`
}

// NewJournalEntry composes and validates a balanced entry. The entry number
// is assigned by the repository inside the posting transaction.
func NewJournalEntry(tenantID uuid.UUID, entryDate time.Time, description string, lines []LineInput) (*JournalEntry, error) {
	if len(lines) < 2 {
		return nil, shared.NewDomainError("TOO_FEW_LINES", "A journal entry requires at least two lines")
	}
	if entryDate.IsZero() {
		return nil, shared.NewDomainError("INVALID_ENTRY_DATE", "Entry date is required")
	}

	totalDebit := decimal.Zero
	totalCredit := decimal.Zero
	for i, line := range lines {
		if line.AccountID == uuid.Nil {
			return nil, shared.NewDomainError("INVALID_LINE_ACCOUNT", fmt.Sprintf("Line %d has no account", i+1))
		}
		if line.Debit.IsNegative() || line.Credit.IsNegative() {
			return nil, shared.NewDomainError("INVALID_LINE_AMOUNT", fmt.Sprintf("Line %d has a negative amount", i+1))
		}
		totalDebit = totalDebit.Add(line.Debit)
		totalCredit = totalCredit.Add(line.Credit)
	}

	// Exact decimal equality, no epsilon.
	if !totalDebit.Equal(totalCredit) {
		return nil, shared.NewDomainError("UNBALANCED_ENTRY",
			fmt.Sprintf("Entry does not balance: debits %s, credits %s", totalDebit, totalCredit))
	}

	entry := &JournalEntry{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		EntryDate:           entryDate,
		Description:         description,
		TotalDebit:          totalDebit,
		TotalCredit:         totalCredit,
		IsPosted:            true,
		Lines:               make([]JournalEntryLine, len(lines)),
	}
	for i, line := range lines {
		entry.Lines[i] = JournalEntryLine{
			ID:             uuid.New(),
			JournalEntryID: entry.ID,
			AccountID:      line.AccountID,
			Debit:          line.Debit,
			Credit:         line.Credit,
			Description:    line.Description,
			Position:       i,
		}
	}
	return entry, nil
}

// WithReference attaches the originating business document
func (e *JournalEntry) WithReference(refType string, refID uuid.UUID) *JournalEntry {
	e.ReferenceType = refType
	e.ReferenceID = &refID
	return e
}

// WithPostedBy records the acting user
func (e *JournalEntry) WithPostedBy(userID uuid.UUID) *JournalEntry {
	e.PostedBy = &userID
	return e
}

// MarkReversed flags the entry as reversed by the given mirror entry.
// Reversed is a terminal state set exactly once.
func (e *JournalEntry) MarkReversed(reversalEntryID uuid.UUID) error {
	if e.IsReversed {
		return shared.NewDomainError("ALREADY_REVERSED", "Journal entry has already been reversed")
	}
	e.IsReversed = true
	e.ReversalEntryID = &reversalEntryID
	return nil
}

// BuildReversal composes the mirror entry that exactly negates this one:
// every leg's debit and credit are swapped, so balance holds by construction.
func (e *JournalEntry) BuildReversal(at time.Time, actor *uuid.UUID) (*JournalEntry, error) {
	if e.IsReversed {
		return nil, shared.NewDomainError("ALREADY_REVERSED", "Journal entry has already been reversed")
	}
	lines := make([]LineInput, len(e.Lines))
	for i, line := range e.Lines {
		lines[i] = LineInput{
			AccountID:   line.AccountID,
			Debit:       line.Credit,
			Credit:      line.Debit,
			Description: line.Description,
		}
	}
	reversal, err := NewJournalEntry(e.TenantID, at, fmt.Sprintf("Reversal of %s", e.EntryNumber), lines)
	if err != nil {
		return nil, err
	}
	reversal.WithReference(ReferenceTypeJournalEntry, e.ID)
	if actor != nil {
		reversal.WithPostedBy(*actor)
	}
	return reversal, nil
}
