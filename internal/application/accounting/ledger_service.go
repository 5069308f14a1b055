package accounting

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/vansales/backend/internal/domain/accounting"
)

// LedgerService answers per-account ledger queries
type LedgerService struct {
	entryRepo   accounting.JournalEntryRepository
	accountRepo accounting.AccountRepository
}

// NewLedgerService creates a new LedgerService
func NewLedgerService(
	entryRepo accounting.JournalEntryRepository,
	accountRepo accounting.AccountRepository,
) *LedgerService {
	return &LedgerService{
		entryRepo:   entryRepo,
		accountRepo: accountRepo,
	}
}

// LedgerLineResponse is one posted leg with the running balance after it
type LedgerLineResponse struct {
	EntryID        uuid.UUID       `json:"entry_id"`
	EntryNumber    string          `json:"entry_number"`
	EntryDate      time.Time       `json:"entry_date"`
	Description    string          `json:"description,omitempty"`
	Debit          decimal.Decimal `json:"debit"`
	Credit         decimal.Decimal `json:"credit"`
	RunningBalance decimal.Decimal `json:"running_balance"`
}

// AccountLedgerResponse is the ledger of one account over a date window
type AccountLedgerResponse struct {
	AccountID      uuid.UUID            `json:"account_id"`
	AccountCode    string               `json:"account_code"`
	AccountName    string               `json:"account_name"`
	AccountType    string               `json:"account_type"`
	OpeningBalance decimal.Decimal      `json:"opening_balance"`
	ClosingBalance decimal.Decimal      `json:"closing_balance"`
	TotalDebit     decimal.Decimal      `json:"total_debit"`
	TotalCredit    decimal.Decimal      `json:"total_credit"`
	Lines          []LedgerLineResponse `json:"lines"`
}

// AccountLedger returns one account's posted legs in (entry date, insertion
// order) order with a window-local running balance starting at zero. Legs
// dated before the window accumulate into OpeningBalance only; the closing
// balance is the opening balance plus the window's movement.
func (s *LedgerService) AccountLedger(ctx context.Context, tenantID, accountID uuid.UUID, from, to *time.Time) (*AccountLedgerResponse, error) {
	account, err := s.accountRepo.FindByIDForTenant(ctx, tenantID, accountID)
	if err != nil {
		return nil, err
	}

	// One pass over everything up to the window's end; legs before the
	// window fold into the opening balance.
	allLines, err := s.entryRepo.FindLinesForAccount(ctx, tenantID, accountID, nil, to)
	if err != nil {
		return nil, err
	}

	response := &AccountLedgerResponse{
		AccountID:      account.ID,
		AccountCode:    account.Code,
		AccountName:    account.Name,
		AccountType:    account.Type.String(),
		OpeningBalance: decimal.Zero,
		TotalDebit:     decimal.Zero,
		TotalCredit:    decimal.Zero,
		Lines:          make([]LedgerLineResponse, 0, len(allLines)),
	}

	running := decimal.Zero
	for _, line := range allLines {
		delta := account.BalanceDelta(line.Debit, line.Credit)

		if from != nil && line.EntryDate.Before(*from) {
			response.OpeningBalance = response.OpeningBalance.Add(delta)
			continue
		}

		running = running.Add(delta)
		response.TotalDebit = response.TotalDebit.Add(line.Debit)
		response.TotalCredit = response.TotalCredit.Add(line.Credit)
		response.Lines = append(response.Lines, LedgerLineResponse{
			EntryID:        line.EntryID,
			EntryNumber:    line.EntryNumber,
			EntryDate:      line.EntryDate,
			Description:    line.Description,
			Debit:          line.Debit,
			Credit:         line.Credit,
			RunningBalance: running,
		})
	}
	response.ClosingBalance = response.OpeningBalance.Add(running)

	return response, nil
}
