package accounting

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/vansales/backend/internal/domain/accounting"
	"github.com/vansales/backend/internal/domain/shared"
)

// JournalService provides application-level journal posting operations
type JournalService struct {
	entryRepo   accounting.JournalEntryRepository
	accountRepo accounting.AccountRepository
}

// NewJournalService creates a new JournalService
func NewJournalService(
	entryRepo accounting.JournalEntryRepository,
	accountRepo accounting.AccountRepository,
) *JournalService {
	return &JournalService{
		entryRepo:   entryRepo,
		accountRepo: accountRepo,
	}
}

// EntryLineRequest is one leg of an entry being posted. The account may be
// addressed by ID or by code; ID wins when both are present.
type EntryLineRequest struct {
	AccountID   *uuid.UUID      `json:"account_id"`
	AccountCode string          `json:"account_code"`
	Debit       decimal.Decimal `json:"debit"`
	Credit      decimal.Decimal `json:"credit"`
	Description string          `json:"description"`
}

// PostEntryRequest represents a request to post a journal entry
type PostEntryRequest struct {
	EntryDate     time.Time          `json:"entry_date" binding:"required"`
	Description   string             `json:"description"`
	ReferenceType string             `json:"reference_type"`
	ReferenceID   *uuid.UUID         `json:"reference_id"`
	Lines         []EntryLineRequest `json:"lines" binding:"required,min=2"`
	PostedBy      *uuid.UUID         `json:"-"`
}

// JournalEntryLineResponse represents one leg in API responses
type JournalEntryLineResponse struct {
	ID          uuid.UUID       `json:"id"`
	AccountID   uuid.UUID       `json:"account_id"`
	Debit       decimal.Decimal `json:"debit"`
	Credit      decimal.Decimal `json:"credit"`
	Description string          `json:"description,omitempty"`
	Position    int             `json:"position"`
}

// JournalEntryResponse represents a journal entry in API responses
type JournalEntryResponse struct {
	ID              uuid.UUID                  `json:"id"`
	TenantID        uuid.UUID                  `json:"tenant_id"`
	EntryNumber     string                     `json:"entry_number"`
	EntryDate       time.Time                  `json:"entry_date"`
	Description     string                     `json:"description,omitempty"`
	ReferenceType   string                     `json:"reference_type,omitempty"`
	ReferenceID     *uuid.UUID                 `json:"reference_id,omitempty"`
	TotalDebit      decimal.Decimal            `json:"total_debit"`
	TotalCredit     decimal.Decimal            `json:"total_credit"`
	IsPosted        bool                       `json:"is_posted"`
	IsReversed      bool                       `json:"is_reversed"`
	ReversalEntryID *uuid.UUID                 `json:"reversal_entry_id,omitempty"`
	Lines           []JournalEntryLineResponse `json:"lines"`
	CreatedAt       time.Time                  `json:"created_at"`
}

// EntryListFilter defines filtering options for entry list queries
type EntryListFilter struct {
	FromDate      *time.Time `form:"from_date"`
	ToDate        *time.Time `form:"to_date"`
	ReferenceType string     `form:"reference_type"`
	Page          int        `form:"page"`
	PageSize      int        `form:"page_size"`
}

// ReverseEntryRequest represents a request to reverse a posted entry
type ReverseEntryRequest struct {
	ReversalDate *time.Time `json:"reversal_date"`
	ReversedBy   *uuid.UUID `json:"-"`
}

// PostEntry validates, balances and posts a new journal entry. Entries are
// created already posted; there is no draft state.
func (s *JournalService) PostEntry(ctx context.Context, tenantID uuid.UUID, req PostEntryRequest) (*JournalEntryResponse, error) {
	lines, err := s.resolveLines(ctx, tenantID, req.Lines)
	if err != nil {
		return nil, err
	}

	entry, err := accounting.NewJournalEntry(tenantID, req.EntryDate, req.Description, lines)
	if err != nil {
		return nil, err
	}

	if (req.ReferenceType != "") != (req.ReferenceID != nil) {
		return nil, shared.NewDomainError("INVALID_REFERENCE", "Reference type and reference ID must be provided together")
	}
	if req.ReferenceType != "" {
		entry.WithReference(req.ReferenceType, *req.ReferenceID)
	}
	if req.PostedBy != nil {
		entry.WithPostedBy(*req.PostedBy)
	}

	if err := s.entryRepo.CreatePosted(ctx, entry); err != nil {
		return nil, err
	}
	return toJournalEntryResponse(entry), nil
}

// ReverseEntry posts the mirror of an existing entry and marks the original
// as reversed. An entry can be reversed exactly once.
func (s *JournalService) ReverseEntry(ctx context.Context, tenantID, entryID uuid.UUID, req ReverseEntryRequest) (*JournalEntryResponse, error) {
	original, err := s.entryRepo.FindByIDForTenant(ctx, tenantID, entryID)
	if err != nil {
		return nil, err
	}

	at := time.Now()
	if req.ReversalDate != nil {
		at = *req.ReversalDate
	}

	reversal, err := original.BuildReversal(at, req.ReversedBy)
	if err != nil {
		return nil, err
	}

	if err := s.entryRepo.CreateReversal(ctx, original, reversal); err != nil {
		return nil, err
	}
	return toJournalEntryResponse(reversal), nil
}

// GetEntry gets a journal entry with its lines
func (s *JournalService) GetEntry(ctx context.Context, tenantID, entryID uuid.UUID) (*JournalEntryResponse, error) {
	entry, err := s.entryRepo.FindByIDForTenant(ctx, tenantID, entryID)
	if err != nil {
		return nil, err
	}
	return toJournalEntryResponse(entry), nil
}

// ListEntries lists journal entries with filtering and pagination
func (s *JournalService) ListEntries(ctx context.Context, tenantID uuid.UUID, filter EntryListFilter) (shared.Paginated[JournalEntryResponse], error) {
	domainFilter := accounting.JournalEntryFilter{
		FromDate: filter.FromDate,
		ToDate:   filter.ToDate,
	}
	domainFilter.Page = filter.Page
	domainFilter.PageSize = filter.PageSize
	if domainFilter.Page <= 0 {
		domainFilter.Page = 1
	}
	if domainFilter.PageSize <= 0 {
		domainFilter.PageSize = 20
	}
	if filter.ReferenceType != "" {
		domainFilter.ReferenceType = &filter.ReferenceType
	}

	entries, total, err := s.entryRepo.FindAllForTenant(ctx, tenantID, domainFilter)
	if err != nil {
		return shared.Paginated[JournalEntryResponse]{}, err
	}

	responses := make([]JournalEntryResponse, len(entries))
	for i := range entries {
		responses[i] = *toJournalEntryResponse(&entries[i])
	}
	return shared.NewPaginated(responses, total, domainFilter.Page, domainFilter.PageSize), nil
}

// resolveLines maps each request line to a concrete account, addressed by
// ID or code, and rejects inactive accounts.
func (s *JournalService) resolveLines(ctx context.Context, tenantID uuid.UUID, reqLines []EntryLineRequest) ([]accounting.LineInput, error) {
	lines := make([]accounting.LineInput, len(reqLines))
	for i, line := range reqLines {
		var account *accounting.Account
		var err error

		switch {
		case line.AccountID != nil:
			account, err = s.accountRepo.FindByIDForTenant(ctx, tenantID, *line.AccountID)
		case line.AccountCode != "":
			account, err = s.accountRepo.FindByCodeForTenant(ctx, tenantID, line.AccountCode)
		default:
			return nil, shared.NewDomainError("INVALID_LINE_ACCOUNT",
				fmt.Sprintf("Line %d must name an account by ID or code", i+1))
		}
		if err != nil {
			return nil, shared.NewDomainError("ACCOUNT_NOT_FOUND",
				fmt.Sprintf("Line %d references an unknown account", i+1))
		}
		if !account.IsActive {
			return nil, shared.NewDomainError("ACCOUNT_INACTIVE",
				fmt.Sprintf("Line %d references inactive account %s", i+1, account.Code))
		}

		lines[i] = accounting.LineInput{
			AccountID:   account.ID,
			Debit:       line.Debit,
			Credit:      line.Credit,
			Description: line.Description,
		}
	}
	return lines, nil
}

func toJournalEntryResponse(e *accounting.JournalEntry) *JournalEntryResponse {
	lines := make([]JournalEntryLineResponse, len(e.Lines))
	for i, line := range e.Lines {
		lines[i] = JournalEntryLineResponse{
			ID:          line.ID,
			AccountID:   line.AccountID,
			Debit:       line.Debit,
			Credit:      line.Credit,
			Description: line.Description,
			Position:    line.Position,
		}
	}
	return &JournalEntryResponse{
		ID:              e.ID,
		TenantID:        e.TenantID,
		EntryNumber:     e.EntryNumber,
		EntryDate:       e.EntryDate,
		Description:     e.Description,
		ReferenceType:   e.ReferenceType,
		ReferenceID:     e.ReferenceID,
		TotalDebit:      e.TotalDebit,
		TotalCredit:     e.TotalCredit,
		IsPosted:        e.IsPosted,
		IsReversed:      e.IsReversed,
		ReversalEntryID: e.ReversalEntryID,
		Lines:           lines,
		CreatedAt:       e.CreatedAt,
	}
}
