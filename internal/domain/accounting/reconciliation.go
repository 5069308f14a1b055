package accounting

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ReconciliationStatus represents the outcome of a cache-vs-history check
type ReconciliationStatus string

const (
	ReconciliationStatusBalanced   ReconciliationStatus = "BALANCED"
	ReconciliationStatusUnbalanced ReconciliationStatus = "UNBALANCED"
)

// IsBalanced returns true if no discrepancies were found
func (s ReconciliationStatus) IsBalanced() bool {
	return s == ReconciliationStatusBalanced
}

// String returns the string representation
func (s ReconciliationStatus) String() string {
	return string(s)
}

// Discrepancy severities. A drift at or below the tolerance is a warning;
// anything larger is critical.
const (
	SeverityCritical = "CRITICAL"
	SeverityWarning  = "WARNING"
)

// DefaultReconciliationTolerance separates warning-level from critical drift
var DefaultReconciliationTolerance = decimal.NewFromFloat(0.01)

// BalanceDiscrepancy records one account whose cached balance has drifted
// from the balance recomputed over its full posted-line history.
type BalanceDiscrepancy struct {
	ID              uuid.UUID       `json:"id"`
	AccountID       uuid.UUID       `json:"account_id"`
	AccountCode     string          `json:"account_code"`
	AccountName     string          `json:"account_name"`
	CachedBalance   decimal.Decimal `json:"cached_balance"`
	ComputedBalance decimal.Decimal `json:"computed_balance"`
	Difference      decimal.Decimal `json:"difference"`
	Severity        string          `json:"severity"`
	DetectedAt      time.Time       `json:"detected_at"`
}

// NewBalanceDiscrepancy creates a discrepancy for an account whose cache
// and history disagree
func NewBalanceDiscrepancy(account *Account, computed decimal.Decimal) *BalanceDiscrepancy {
	diff := account.Balance.Sub(computed)
	severity := SeverityWarning
	if diff.Abs().GreaterThan(DefaultReconciliationTolerance) {
		severity = SeverityCritical
	}
	return &BalanceDiscrepancy{
		ID:              uuid.New(),
		AccountID:       account.ID,
		AccountCode:     account.Code,
		AccountName:     account.Name,
		CachedBalance:   account.Balance,
		ComputedBalance: computed,
		Difference:      diff,
		Severity:        severity,
		DetectedAt:      time.Now(),
	}
}

// ReconciliationResult is the outcome of checking every account's cached
// balance against the aggregated posted-line history. The history is the
// source of truth; the cache is a read optimization that this check keeps
// honest.
type ReconciliationResult struct {
	ID              uuid.UUID            `json:"id"`
	TenantID        uuid.UUID            `json:"tenant_id"`
	CheckedAt       time.Time            `json:"checked_at"`
	Status          ReconciliationStatus `json:"status"`
	AccountsChecked int                  `json:"accounts_checked"`
	Discrepancies   []BalanceDiscrepancy `json:"discrepancies"`
	CriticalCount   int                  `json:"critical_count"`
	WarningCount    int                  `json:"warning_count"`
}

// NewReconciliationResult creates an empty, balanced result
func NewReconciliationResult(tenantID uuid.UUID) *ReconciliationResult {
	return &ReconciliationResult{
		ID:            uuid.New(),
		TenantID:      tenantID,
		CheckedAt:     time.Now(),
		Status:        ReconciliationStatusBalanced,
		Discrepancies: make([]BalanceDiscrepancy, 0),
	}
}

// AddDiscrepancy records a drifted account and flips the status
func (r *ReconciliationResult) AddDiscrepancy(d *BalanceDiscrepancy) {
	r.Discrepancies = append(r.Discrepancies, *d)
	switch d.Severity {
	case SeverityCritical:
		r.CriticalCount++
	case SeverityWarning:
		r.WarningCount++
	}
	r.Status = ReconciliationStatusUnbalanced
}

// HasCriticalDiscrepancies returns true if any drift exceeded tolerance
func (r *ReconciliationResult) HasCriticalDiscrepancies() bool {
	return r.CriticalCount > 0
}
