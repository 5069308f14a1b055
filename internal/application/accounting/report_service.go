package accounting

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/vansales/backend/internal/domain/accounting"
	"github.com/vansales/backend/internal/domain/shared"
)

// TrialBalanceSource selects which store a trial balance reads from.
// The aggregated line history is authoritative; the cached balances are a
// fast approximation that reconciliation keeps honest.
type TrialBalanceSource string

const (
	TrialBalanceSourceHistory TrialBalanceSource = "history"
	TrialBalanceSourceCached  TrialBalanceSource = "cached"
)

// ReportService produces financial reports from posted lines
type ReportService struct {
	reportRepo  accounting.LedgerReportRepository
	accountRepo accounting.AccountRepository
}

// NewReportService creates a new ReportService
func NewReportService(
	reportRepo accounting.LedgerReportRepository,
	accountRepo accounting.AccountRepository,
) *ReportService {
	return &ReportService{
		reportRepo:  reportRepo,
		accountRepo: accountRepo,
	}
}

// TrialBalanceRow is one account's net position in a trial balance
type TrialBalanceRow struct {
	AccountID   uuid.UUID       `json:"account_id"`
	AccountCode string          `json:"account_code"`
	AccountName string          `json:"account_name"`
	AccountType string          `json:"account_type"`
	Debit       decimal.Decimal `json:"debit"`
	Credit      decimal.Decimal `json:"credit"`
}

// TrialBalanceResponse lists every account's net debit or credit position
type TrialBalanceResponse struct {
	TenantID    uuid.UUID          `json:"tenant_id"`
	AsOf        *time.Time         `json:"as_of,omitempty"`
	Source      TrialBalanceSource `json:"source"`
	Rows        []TrialBalanceRow  `json:"rows"`
	TotalDebit  decimal.Decimal    `json:"total_debit"`
	TotalCredit decimal.Decimal    `json:"total_credit"`
	IsBalanced  bool               `json:"is_balanced"`
	GeneratedAt time.Time          `json:"generated_at"`
}

// ReportLine is one account's contribution to a statement section
type ReportLine struct {
	AccountCode string          `json:"account_code"`
	AccountName string          `json:"account_name"`
	Amount      decimal.Decimal `json:"amount"`
}

// IncomeStatementResponse is the income statement over a date range
type IncomeStatementResponse struct {
	TenantID       uuid.UUID       `json:"tenant_id"`
	FromDate       time.Time       `json:"from_date"`
	ToDate         time.Time       `json:"to_date"`
	RevenueLines   []ReportLine    `json:"revenue_lines"`
	COGSLines      []ReportLine    `json:"cogs_lines"`
	OperatingLines []ReportLine    `json:"operating_lines"`
	TotalRevenue   decimal.Decimal `json:"total_revenue"`
	TotalCOGS      decimal.Decimal `json:"total_cogs"`
	GrossProfit    decimal.Decimal `json:"gross_profit"`
	TotalOperating decimal.Decimal `json:"total_operating"`
	NetProfit      decimal.Decimal `json:"net_profit"`
	GeneratedAt    time.Time       `json:"generated_at"`
}

// BalanceSheetResponse is the balance sheet as of a date
type BalanceSheetResponse struct {
	TenantID         uuid.UUID       `json:"tenant_id"`
	AsOf             *time.Time      `json:"as_of,omitempty"`
	AssetLines       []ReportLine    `json:"asset_lines"`
	LiabilityLines   []ReportLine    `json:"liability_lines"`
	EquityLines      []ReportLine    `json:"equity_lines"`
	TotalAssets      decimal.Decimal `json:"total_assets"`
	TotalLiabilities decimal.Decimal `json:"total_liabilities"`
	TotalEquity      decimal.Decimal `json:"total_equity"`
	RetainedEarnings decimal.Decimal `json:"retained_earnings"`
	IsBalanced       bool            `json:"is_balanced"`
	GeneratedAt      time.Time       `json:"generated_at"`
}

// TrialBalance lists each account's net position as a debit or credit per
// its normal side. Both totals must agree when the ledger is consistent.
func (s *ReportService) TrialBalance(ctx context.Context, tenantID uuid.UUID, asOf *time.Time, source TrialBalanceSource) (*TrialBalanceResponse, error) {
	response := &TrialBalanceResponse{
		TenantID:    tenantID,
		AsOf:        asOf,
		Source:      source,
		Rows:        make([]TrialBalanceRow, 0),
		TotalDebit:  decimal.Zero,
		TotalCredit: decimal.Zero,
		GeneratedAt: time.Now(),
	}

	switch source {
	case TrialBalanceSourceCached:
		if asOf != nil {
			return nil, shared.NewDomainError("INVALID_REPORT_PARAMS", "Cached balances cannot answer an as-of date; use the history source")
		}
		accounts, err := s.accountRepo.FindAllForTenant(ctx, tenantID, accounting.AccountFilter{})
		if err != nil {
			return nil, err
		}
		for i := range accounts {
			account := &accounts[i]
			if account.Balance.IsZero() {
				continue
			}
			row := TrialBalanceRow{
				AccountID:   account.ID,
				AccountCode: account.Code,
				AccountName: account.Name,
				AccountType: account.Type.String(),
				Debit:       decimal.Zero,
				Credit:      decimal.Zero,
			}
			signed := account.SignedBalance()
			if signed.IsNegative() {
				row.Credit = signed.Neg()
			} else {
				row.Debit = signed
			}
			response.Rows = append(response.Rows, row)
			response.TotalDebit = response.TotalDebit.Add(row.Debit)
			response.TotalCredit = response.TotalCredit.Add(row.Credit)
		}

	case TrialBalanceSourceHistory, "":
		response.Source = TrialBalanceSourceHistory
		aggregates, err := s.reportRepo.AggregateByAccount(ctx, tenantID, asOf)
		if err != nil {
			return nil, err
		}
		for _, agg := range aggregates {
			net := agg.TotalDebit.Sub(agg.TotalCredit)
			if net.IsZero() {
				continue
			}
			row := TrialBalanceRow{
				AccountID:   agg.AccountID,
				AccountCode: agg.Code,
				AccountName: agg.Name,
				AccountType: agg.Type.String(),
				Debit:       decimal.Zero,
				Credit:      decimal.Zero,
			}
			if net.IsNegative() {
				row.Credit = net.Neg()
			} else {
				row.Debit = net
			}
			response.Rows = append(response.Rows, row)
			response.TotalDebit = response.TotalDebit.Add(row.Debit)
			response.TotalCredit = response.TotalCredit.Add(row.Credit)
		}

	default:
		return nil, shared.NewDomainError("INVALID_REPORT_PARAMS", "Unknown trial balance source")
	}

	response.IsBalanced = response.TotalDebit.Equal(response.TotalCredit)
	return response, nil
}

// IncomeStatement partitions activity in [from, to] into revenue, cost of
// goods sold and operating expenses.
func (s *ReportService) IncomeStatement(ctx context.Context, tenantID uuid.UUID, from, to time.Time) (*IncomeStatementResponse, error) {
	if to.Before(from) {
		return nil, shared.NewDomainError("INVALID_REPORT_PARAMS", "End date must not precede start date")
	}

	aggregates, err := s.reportRepo.AggregateByAccountBetween(ctx, tenantID, from, to)
	if err != nil {
		return nil, err
	}

	response := &IncomeStatementResponse{
		TenantID:       tenantID,
		FromDate:       from,
		ToDate:         to,
		RevenueLines:   make([]ReportLine, 0),
		COGSLines:      make([]ReportLine, 0),
		OperatingLines: make([]ReportLine, 0),
		TotalRevenue:   decimal.Zero,
		TotalCOGS:      decimal.Zero,
		TotalOperating: decimal.Zero,
		GeneratedAt:    time.Now(),
	}

	for _, agg := range aggregates {
		amount := agg.NormalBalance()
		line := ReportLine{AccountCode: agg.Code, AccountName: agg.Name, Amount: amount}

		switch agg.Type {
		case accounting.AccountTypeRevenue:
			response.RevenueLines = append(response.RevenueLines, line)
			response.TotalRevenue = response.TotalRevenue.Add(amount)
		case accounting.AccountTypeExpense:
			if agg.Category == accounting.CategoryCOGS {
				response.COGSLines = append(response.COGSLines, line)
				response.TotalCOGS = response.TotalCOGS.Add(amount)
			} else {
				response.OperatingLines = append(response.OperatingLines, line)
				response.TotalOperating = response.TotalOperating.Add(amount)
			}
		}
	}

	response.GrossProfit = response.TotalRevenue.Sub(response.TotalCOGS)
	response.NetProfit = response.GrossProfit.Sub(response.TotalOperating)
	return response, nil
}

// BalanceSheet reports assets, liabilities and equity as of a date. The
// lifetime net income to that date is folded into retained earnings so the
// accounting equation holds without a closing process.
func (s *ReportService) BalanceSheet(ctx context.Context, tenantID uuid.UUID, asOf *time.Time) (*BalanceSheetResponse, error) {
	aggregates, err := s.reportRepo.AggregateByAccount(ctx, tenantID, asOf)
	if err != nil {
		return nil, err
	}

	response := &BalanceSheetResponse{
		TenantID:         tenantID,
		AsOf:             asOf,
		AssetLines:       make([]ReportLine, 0),
		LiabilityLines:   make([]ReportLine, 0),
		EquityLines:      make([]ReportLine, 0),
		TotalAssets:      decimal.Zero,
		TotalLiabilities: decimal.Zero,
		TotalEquity:      decimal.Zero,
		GeneratedAt:      time.Now(),
	}

	retained := decimal.Zero
	for _, agg := range aggregates {
		amount := agg.NormalBalance()
		line := ReportLine{AccountCode: agg.Code, AccountName: agg.Name, Amount: amount}

		switch agg.Type {
		case accounting.AccountTypeAsset:
			response.AssetLines = append(response.AssetLines, line)
			response.TotalAssets = response.TotalAssets.Add(amount)
		case accounting.AccountTypeLiability:
			response.LiabilityLines = append(response.LiabilityLines, line)
			response.TotalLiabilities = response.TotalLiabilities.Add(amount)
		case accounting.AccountTypeEquity:
			response.EquityLines = append(response.EquityLines, line)
			response.TotalEquity = response.TotalEquity.Add(amount)
		case accounting.AccountTypeRevenue:
			retained = retained.Add(amount)
		case accounting.AccountTypeExpense:
			retained = retained.Sub(amount)
		}
	}

	response.RetainedEarnings = retained
	if !retained.IsZero() {
		// Merge into an existing retained-earnings row when the account
		// has posted activity of its own.
		merged := false
		for i := range response.EquityLines {
			if response.EquityLines[i].AccountCode == accounting.CodeRetainedEarnings {
				response.EquityLines[i].Amount = response.EquityLines[i].Amount.Add(retained)
				merged = true
				break
			}
		}
		if !merged {
			response.EquityLines = append(response.EquityLines, ReportLine{
				AccountCode: accounting.CodeRetainedEarnings,
				AccountName: "Retained Earnings",
				Amount:      retained,
			})
		}
		response.TotalEquity = response.TotalEquity.Add(retained)
	}

	response.IsBalanced = response.TotalAssets.Equal(response.TotalLiabilities.Add(response.TotalEquity))
	return response, nil
}

// ReconcileBalances compares every account's cached balance against the
// balance recomputed from its full posted-line history.
func (s *ReportService) ReconcileBalances(ctx context.Context, tenantID uuid.UUID) (*accounting.ReconciliationResult, error) {
	accounts, err := s.accountRepo.FindAllForTenant(ctx, tenantID, accounting.AccountFilter{})
	if err != nil {
		return nil, err
	}

	aggregates, err := s.reportRepo.AggregateByAccount(ctx, tenantID, nil)
	if err != nil {
		return nil, err
	}
	computed := make(map[uuid.UUID]decimal.Decimal, len(aggregates))
	for _, agg := range aggregates {
		computed[agg.AccountID] = agg.NormalBalance()
	}

	result := accounting.NewReconciliationResult(tenantID)
	for i := range accounts {
		account := &accounts[i]
		expected := decimal.Zero
		if v, ok := computed[account.ID]; ok {
			expected = v
		}
		result.AccountsChecked++
		if !account.Balance.Equal(expected) {
			result.AddDiscrepancy(accounting.NewBalanceDiscrepancy(account, expected))
		}
	}
	return result, nil
}
