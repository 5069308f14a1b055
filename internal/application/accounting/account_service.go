package accounting

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/vansales/backend/internal/domain/accounting"
	"github.com/vansales/backend/internal/domain/shared"
)

// AccountService provides application-level chart-of-accounts operations
type AccountService struct {
	accountRepo accounting.AccountRepository
}

// NewAccountService creates a new AccountService
func NewAccountService(accountRepo accounting.AccountRepository) *AccountService {
	return &AccountService{accountRepo: accountRepo}
}

// AccountResponse represents a ledger account in API responses
type AccountResponse struct {
	ID        uuid.UUID       `json:"id"`
	TenantID  uuid.UUID       `json:"tenant_id"`
	Code      string          `json:"code"`
	Name      string          `json:"name"`
	Type      string          `json:"type"`
	Category  string          `json:"category,omitempty"`
	ParentID  *uuid.UUID      `json:"parent_id,omitempty"`
	IsSystem  bool            `json:"is_system"`
	IsActive  bool            `json:"is_active"`
	Balance   decimal.Decimal `json:"balance"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// CreateAccountRequest represents a request to create a ledger account
type CreateAccountRequest struct {
	Code     string     `json:"code" binding:"required,max=20"`
	Name     string     `json:"name" binding:"required,max=255"`
	Type     string     `json:"type" binding:"required"`
	Category string     `json:"category"`
	ParentID *uuid.UUID `json:"parent_id"`
}

// UpdateAccountRequest represents a request to update a ledger account
type UpdateAccountRequest struct {
	Code     string `json:"code" binding:"required,max=20"`
	Name     string `json:"name" binding:"required,max=255"`
	Category string `json:"category"`
	IsActive *bool  `json:"is_active"`
}

// AccountListFilter defines filtering options for account list queries
type AccountListFilter struct {
	Type       string `form:"type"`
	ActiveOnly bool   `form:"active_only"`
	Search     string `form:"search"`
	Page       int    `form:"page"`
	PageSize   int    `form:"page_size"`
}

// EnsureDefaultAccounts creates any missing accounts of the default chart
// for the tenant. Matching is by code; existing accounts are never touched,
// so the operation is idempotent and safe to call on every bootstrap.
func (s *AccountService) EnsureDefaultAccounts(ctx context.Context, tenantID uuid.UUID) ([]AccountResponse, error) {
	chart := accounting.DefaultChart()
	codes := make([]string, len(chart))
	for i, spec := range chart {
		codes[i] = spec.Code
	}

	existing, err := s.accountRepo.FindByCodesForTenant(ctx, tenantID, codes)
	if err != nil {
		return nil, err
	}

	created := make([]*accounting.Account, 0)
	for _, spec := range chart {
		if _, ok := existing[spec.Code]; ok {
			continue
		}
		account, err := accounting.NewAccount(tenantID, spec.Code, spec.Name, spec.Type)
		if err != nil {
			return nil, err
		}
		account.WithCategory(spec.Category).MarkSystem()
		created = append(created, account)
	}

	if len(created) > 0 {
		if err := s.accountRepo.SaveAll(ctx, created); err != nil {
			return nil, err
		}
	}

	responses := make([]AccountResponse, len(created))
	for i, account := range created {
		responses[i] = *toAccountResponse(account)
	}
	return responses, nil
}

// CreateAccount creates a new ledger account
func (s *AccountService) CreateAccount(ctx context.Context, tenantID uuid.UUID, req CreateAccountRequest) (*AccountResponse, error) {
	accountType := accounting.AccountType(req.Type)
	if !accountType.IsValid() {
		return nil, shared.NewDomainError("INVALID_ACCOUNT_TYPE", "Account type is not valid")
	}

	exists, err := s.accountRepo.ExistsByCode(ctx, tenantID, req.Code)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.NewDomainError("DUPLICATE_ACCOUNT_CODE", "An account with this code already exists")
	}

	account, err := accounting.NewAccount(tenantID, req.Code, req.Name, accountType)
	if err != nil {
		return nil, err
	}
	if req.Category != "" {
		account.WithCategory(req.Category)
	}
	if req.ParentID != nil {
		if _, err := s.accountRepo.FindByIDForTenant(ctx, tenantID, *req.ParentID); err != nil {
			return nil, shared.NewDomainError("PARENT_NOT_FOUND", "Parent account not found")
		}
		account.WithParent(*req.ParentID)
	}

	if err := s.accountRepo.Save(ctx, account); err != nil {
		return nil, err
	}
	return toAccountResponse(account), nil
}

// GetAccount gets a ledger account by ID
func (s *AccountService) GetAccount(ctx context.Context, tenantID, id uuid.UUID) (*AccountResponse, error) {
	account, err := s.accountRepo.FindByIDForTenant(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	return toAccountResponse(account), nil
}

// ListAccounts lists accounts for a tenant ordered by code
func (s *AccountService) ListAccounts(ctx context.Context, tenantID uuid.UUID, filter AccountListFilter) ([]AccountResponse, error) {
	domainFilter := accounting.AccountFilter{
		ActiveOnly: filter.ActiveOnly,
	}
	domainFilter.Page = filter.Page
	domainFilter.PageSize = filter.PageSize
	domainFilter.Search = filter.Search

	if filter.Type != "" {
		accountType := accounting.AccountType(filter.Type)
		if !accountType.IsValid() {
			return nil, shared.NewDomainError("INVALID_ACCOUNT_TYPE", "Account type is not valid")
		}
		domainFilter.Type = &accountType
	}

	accounts, err := s.accountRepo.FindAllForTenant(ctx, tenantID, domainFilter)
	if err != nil {
		return nil, err
	}

	responses := make([]AccountResponse, len(accounts))
	for i := range accounts {
		responses[i] = *toAccountResponse(&accounts[i])
	}
	return responses, nil
}

// UpdateAccount updates a ledger account
func (s *AccountService) UpdateAccount(ctx context.Context, tenantID, id uuid.UUID, req UpdateAccountRequest) (*AccountResponse, error) {
	account, err := s.accountRepo.FindByIDForTenant(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}

	if req.Code != account.Code {
		exists, err := s.accountRepo.ExistsByCode(ctx, tenantID, req.Code)
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, shared.NewDomainError("DUPLICATE_ACCOUNT_CODE", "An account with this code already exists")
		}
	}
	if err := account.ChangeCode(req.Code); err != nil {
		return nil, err
	}
	if err := account.Rename(req.Name); err != nil {
		return nil, err
	}
	account.WithCategory(req.Category)
	if req.IsActive != nil {
		if *req.IsActive {
			account.Activate()
		} else {
			account.Deactivate()
		}
	}

	if err := s.accountRepo.Save(ctx, account); err != nil {
		return nil, err
	}
	return toAccountResponse(account), nil
}

// DeleteAccount deletes a ledger account. System accounts, accounts with
// posted lines, and accounts with children are protected.
func (s *AccountService) DeleteAccount(ctx context.Context, tenantID, id uuid.UUID) error {
	account, err := s.accountRepo.FindByIDForTenant(ctx, tenantID, id)
	if err != nil {
		return err
	}
	if account.IsSystem {
		return shared.NewDomainError("SYSTEM_ACCOUNT_IMMUTABLE", "System accounts cannot be deleted")
	}

	used, err := s.accountRepo.HasJournalLines(ctx, tenantID, id)
	if err != nil {
		return err
	}
	if used {
		return shared.NewDomainError("ACCOUNT_IN_USE", "Accounts with posted journal lines cannot be deleted")
	}

	hasChildren, err := s.accountRepo.HasChildren(ctx, tenantID, id)
	if err != nil {
		return err
	}
	if hasChildren {
		return shared.NewDomainError("ACCOUNT_HAS_CHILDREN", "Accounts with child accounts cannot be deleted")
	}

	return s.accountRepo.DeleteForTenant(ctx, tenantID, id)
}

func toAccountResponse(a *accounting.Account) *AccountResponse {
	return &AccountResponse{
		ID:        a.ID,
		TenantID:  a.TenantID,
		Code:      a.Code,
		Name:      a.Name,
		Type:      a.Type.String(),
		Category:  a.Category,
		ParentID:  a.ParentID,
		IsSystem:  a.IsSystem,
		IsActive:  a.IsActive,
		Balance:   a.Balance,
		CreatedAt: a.CreatedAt,
		UpdatedAt: a.UpdatedAt,
	}
}
