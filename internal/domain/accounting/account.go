package accounting

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/vansales/backend/internal/domain/shared"
)

// AccountType represents the five fundamental ledger account types
type AccountType string

const (
	AccountTypeAsset     AccountType = "ASSET"
	AccountTypeLiability AccountType = "LIABILITY"
	AccountTypeEquity    AccountType = "EQUITY"
	AccountTypeRevenue   AccountType = "REVENUE"
	AccountTypeExpense   AccountType = "EXPENSE"
)

// IsValid checks if the type is a valid AccountType
func (t AccountType) IsValid() bool {
	switch t {
	case AccountTypeAsset, AccountTypeLiability, AccountTypeEquity,
		AccountTypeRevenue, AccountTypeExpense:
		return true
	}
	return false
}

// String returns the string representation of AccountType
func (t AccountType) String() string {
	return string(t)
}

// NormalSide represents which side of an entry increases an account's balance
type NormalSide string

const (
	NormalSideDebit  NormalSide = "DEBIT"
	NormalSideCredit NormalSide = "CREDIT"
)

// NormalSide returns the side that increases a balance of this type.
// Assets and expenses grow with debits; the rest grow with credits.
func (t AccountType) NormalSide() NormalSide {
	switch t {
	case AccountTypeAsset, AccountTypeExpense:
		return NormalSideDebit
	default:
		return NormalSideCredit
	}
}

// IsDebitNormal returns true for debit-normal account types
func (t AccountType) IsDebitNormal() bool {
	return t.NormalSide() == NormalSideDebit
}

// CategoryCOGS is the expense subgrouping that feeds the cost-of-goods-sold
// line of the income statement.
const CategoryCOGS = "COGS"

// Account represents a ledger account aggregate root.
// Balance is a cached aggregate of all posted lines; the posting transaction
// maintains it with atomic increments, never read-modify-write.
type Account struct {
	shared.TenantAggregateRoot
	Code     string          `json:"code"`
	Name     string          `json:"name"`
	Type     AccountType     `json:"type"`
	Category string          `json:"category"`
	ParentID *uuid.UUID      `json:"parent_id,omitempty"`
	IsSystem bool            `json:"is_system"`
	IsActive bool            `json:"is_active"`
	Balance  decimal.Decimal `json:"balance"`
}

// NewAccount creates a new ledger account
func NewAccount(tenantID uuid.UUID, code, name string, accountType AccountType) (*Account, error) {
	if code == "" {
		return nil, shared.NewDomainError("INVALID_ACCOUNT_CODE", "Account code cannot be empty")
	}
	if len(code) > 20 {
		return nil, shared.NewDomainError("INVALID_ACCOUNT_CODE", "Account code cannot exceed 20 characters")
	}
	if name == "" {
		return nil, shared.NewDomainError("INVALID_ACCOUNT_NAME", "Account name cannot be empty")
	}
	if !accountType.IsValid() {
		return nil, shared.NewDomainError("INVALID_ACCOUNT_TYPE", "Account type is not valid")
	}
	return &Account{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		Code:                code,
		Name:                name,
		Type:                accountType,
		IsActive:            true,
		Balance:             decimal.Zero,
	}, nil
}

// WithCategory sets the free-form subgrouping (e.g. "COGS")
func (a *Account) WithCategory(category string) *Account {
	a.Category = category
	return a
}

// WithParent sets the parent account for a one-level tree
func (a *Account) WithParent(parentID uuid.UUID) *Account {
	a.ParentID = &parentID
	return a
}

// MarkSystem flags the account as system-managed. System accounts keep
// their code forever and can never be deleted.
func (a *Account) MarkSystem() *Account {
	a.IsSystem = true
	return a
}

// ChangeCode changes the account code. Rejected for system accounts.
func (a *Account) ChangeCode(code string) error {
	if a.IsSystem && code != a.Code {
		return shared.NewDomainError("SYSTEM_ACCOUNT_IMMUTABLE", "Cannot change the code of a system account")
	}
	if code == "" {
		return shared.NewDomainError("INVALID_ACCOUNT_CODE", "Account code cannot be empty")
	}
	a.Code = code
	return nil
}

// Rename updates the display name
func (a *Account) Rename(name string) error {
	if name == "" {
		return shared.NewDomainError("INVALID_ACCOUNT_NAME", "Account name cannot be empty")
	}
	a.Name = name
	return nil
}

// Deactivate hides the account from active listings without deleting it
func (a *Account) Deactivate() {
	a.IsActive = false
}

// Activate re-enables the account
func (a *Account) Activate() {
	a.IsActive = true
}

// BalanceDelta returns the signed effect a line with the given debit and
// credit has on this account's balance, per its normal side.
func (a *Account) BalanceDelta(debit, credit decimal.Decimal) decimal.Decimal {
	if a.Type.IsDebitNormal() {
		return debit.Sub(credit)
	}
	return credit.Sub(debit)
}

// SignedBalance returns the balance signed for a zero-sum check across a
// tenant's chart: debit-normal balances count positive, credit-normal
// balances negative.
func (a *Account) SignedBalance() decimal.Decimal {
	if a.Type.IsDebitNormal() {
		return a.Balance
	}
	return a.Balance.Neg()
}
