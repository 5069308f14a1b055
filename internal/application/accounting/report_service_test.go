package accounting

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vansales/backend/internal/domain/accounting"
)

type reportServiceFixture struct {
	reportRepo  *MockLedgerReportRepository
	accountRepo *MockAccountRepository
	service     *ReportService
	tenantID    uuid.UUID
}

func newReportServiceFixture() *reportServiceFixture {
	reportRepo := new(MockLedgerReportRepository)
	accountRepo := new(MockAccountRepository)
	return &reportServiceFixture{
		reportRepo:  reportRepo,
		accountRepo: accountRepo,
		service:     NewReportService(reportRepo, accountRepo),
		tenantID:    uuid.New(),
	}
}

func aggregate(code, name string, accountType accounting.AccountType, category string, debit, credit int64) accounting.AccountAggregate {
	return accounting.AccountAggregate{
		AccountID:   uuid.New(),
		Code:        code,
		Name:        name,
		Type:        accountType,
		Category:    category,
		TotalDebit:  decimal.NewFromInt(debit),
		TotalCredit: decimal.NewFromInt(credit),
	}
}

func TestReportService_TrialBalance_FromHistory(t *testing.T) {
	ctx := context.Background()
	f := newReportServiceFixture()

	f.reportRepo.On("AggregateByAccount", ctx, f.tenantID, (*time.Time)(nil)).
		Return([]accounting.AccountAggregate{
			aggregate("1000", "Cash", accounting.AccountTypeAsset, "", 150, 30),
			aggregate("4000", "Sales Revenue", accounting.AccountTypeRevenue, "", 0, 120),
			aggregate("6000", "Operating Expenses", accounting.AccountTypeExpense, "", 40, 40),
		}, nil)

	resp, err := f.service.TrialBalance(ctx, f.tenantID, nil, "")
	require.NoError(t, err)

	assert.Equal(t, TrialBalanceSourceHistory, resp.Source)
	// The zero-net expense row is dropped.
	require.Len(t, resp.Rows, 2)
	assert.True(t, resp.Rows[0].Debit.Equal(decimal.NewFromInt(120)))
	assert.True(t, resp.Rows[1].Credit.Equal(decimal.NewFromInt(120)))
	assert.True(t, resp.TotalDebit.Equal(resp.TotalCredit))
	assert.True(t, resp.IsBalanced)
}

func TestReportService_TrialBalance_FromCachedBalances(t *testing.T) {
	ctx := context.Background()
	f := newReportServiceFixture()

	cash := mustNewAccount(f.tenantID, "1000", "Cash", accounting.AccountTypeAsset)
	cash.Balance = decimal.NewFromInt(75)
	revenue := mustNewAccount(f.tenantID, "4000", "Sales Revenue", accounting.AccountTypeRevenue)
	revenue.Balance = decimal.NewFromInt(75)
	idle := mustNewAccount(f.tenantID, "1200", "Inventory", accounting.AccountTypeAsset)

	f.accountRepo.On("FindAllForTenant", ctx, f.tenantID, accounting.AccountFilter{}).
		Return([]accounting.Account{*cash, *revenue, *idle}, nil)

	resp, err := f.service.TrialBalance(ctx, f.tenantID, nil, TrialBalanceSourceCached)
	require.NoError(t, err)

	require.Len(t, resp.Rows, 2)
	assert.True(t, resp.Rows[0].Debit.Equal(decimal.NewFromInt(75)))
	assert.True(t, resp.Rows[1].Credit.Equal(decimal.NewFromInt(75)))
	assert.True(t, resp.IsBalanced)
}

func TestReportService_TrialBalance_CachedRejectsAsOf(t *testing.T) {
	ctx := context.Background()
	f := newReportServiceFixture()
	asOf := time.Date(2026, 6, 30, 0, 0, 0, 0, time.UTC)

	_, err := f.service.TrialBalance(ctx, f.tenantID, &asOf, TrialBalanceSourceCached)
	assertDomainErrorCode(t, err, "INVALID_REPORT_PARAMS")
}

func TestReportService_TrialBalance_UnknownSource(t *testing.T) {
	ctx := context.Background()
	f := newReportServiceFixture()

	_, err := f.service.TrialBalance(ctx, f.tenantID, nil, TrialBalanceSource("psychic"))
	assertDomainErrorCode(t, err, "INVALID_REPORT_PARAMS")
}

func TestReportService_IncomeStatement_PartitionsCOGS(t *testing.T) {
	ctx := context.Background()
	f := newReportServiceFixture()
	from := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2026, 8, 31, 0, 0, 0, 0, time.UTC)

	f.reportRepo.On("AggregateByAccountBetween", ctx, f.tenantID, from, to).
		Return([]accounting.AccountAggregate{
			aggregate("4000", "Sales Revenue", accounting.AccountTypeRevenue, "", 0, 500),
			aggregate("5000", "Cost of Goods Sold", accounting.AccountTypeExpense, accounting.CategoryCOGS, 300, 0),
			aggregate("6000", "Operating Expenses", accounting.AccountTypeExpense, "", 120, 0),
			aggregate("1000", "Cash", accounting.AccountTypeAsset, "", 500, 420),
		}, nil)

	resp, err := f.service.IncomeStatement(ctx, f.tenantID, from, to)
	require.NoError(t, err)

	assert.True(t, resp.TotalRevenue.Equal(decimal.NewFromInt(500)))
	assert.True(t, resp.TotalCOGS.Equal(decimal.NewFromInt(300)))
	assert.True(t, resp.TotalOperating.Equal(decimal.NewFromInt(120)))
	assert.True(t, resp.GrossProfit.Equal(decimal.NewFromInt(200)))
	assert.True(t, resp.NetProfit.Equal(decimal.NewFromInt(80)))
	// Balance sheet accounts stay out of the income statement.
	require.Len(t, resp.RevenueLines, 1)
	require.Len(t, resp.COGSLines, 1)
	require.Len(t, resp.OperatingLines, 1)
}

func TestReportService_IncomeStatement_RejectsInvertedWindow(t *testing.T) {
	ctx := context.Background()
	f := newReportServiceFixture()
	from := time.Date(2026, 8, 31, 0, 0, 0, 0, time.UTC)
	to := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)

	_, err := f.service.IncomeStatement(ctx, f.tenantID, from, to)
	assertDomainErrorCode(t, err, "INVALID_REPORT_PARAMS")
}

func TestReportService_BalanceSheet_FoldsNetIncomeIntoRetainedEarnings(t *testing.T) {
	ctx := context.Background()
	f := newReportServiceFixture()

	f.reportRepo.On("AggregateByAccount", ctx, f.tenantID, (*time.Time)(nil)).
		Return([]accounting.AccountAggregate{
			aggregate("1000", "Cash", accounting.AccountTypeAsset, "", 900, 200),
			aggregate("1200", "Inventory", accounting.AccountTypeAsset, "", 300, 100),
			aggregate("2000", "Accounts Payable", accounting.AccountTypeLiability, "", 50, 450),
			aggregate("3000", "Owner's Equity", accounting.AccountTypeEquity, "", 0, 300),
			aggregate("4000", "Sales Revenue", accounting.AccountTypeRevenue, "", 0, 500),
			aggregate("5000", "Cost of Goods Sold", accounting.AccountTypeExpense, accounting.CategoryCOGS, 300, 0),
		}, nil)

	resp, err := f.service.BalanceSheet(ctx, f.tenantID, nil)
	require.NoError(t, err)

	assert.True(t, resp.TotalAssets.Equal(decimal.NewFromInt(900)))
	assert.True(t, resp.TotalLiabilities.Equal(decimal.NewFromInt(400)))
	assert.True(t, resp.RetainedEarnings.Equal(decimal.NewFromInt(200)))
	// 300 contributed equity + 200 retained.
	assert.True(t, resp.TotalEquity.Equal(decimal.NewFromInt(500)))
	assert.True(t, resp.IsBalanced)

	last := resp.EquityLines[len(resp.EquityLines)-1]
	assert.Equal(t, accounting.CodeRetainedEarnings, last.AccountCode)
	assert.True(t, last.Amount.Equal(decimal.NewFromInt(200)))
}

func TestReportService_BalanceSheet_MergesPlugIntoPostedRetainedEarnings(t *testing.T) {
	ctx := context.Background()
	f := newReportServiceFixture()

	// Retained earnings has posted activity of its own; the net-income
	// plug must merge into that row, never duplicate it.
	f.reportRepo.On("AggregateByAccount", ctx, f.tenantID, (*time.Time)(nil)).
		Return([]accounting.AccountAggregate{
			aggregate("1000", "Cash", accounting.AccountTypeAsset, "", 850, 100),
			aggregate("2000", "Accounts Payable", accounting.AccountTypeLiability, "", 0, 200),
			aggregate("3100", "Retained Earnings", accounting.AccountTypeEquity, "", 0, 350),
			aggregate("4000", "Sales Revenue", accounting.AccountTypeRevenue, "", 0, 500),
			aggregate("6000", "Operating Expenses", accounting.AccountTypeExpense, "", 300, 0),
		}, nil)

	resp, err := f.service.BalanceSheet(ctx, f.tenantID, nil)
	require.NoError(t, err)

	retainedRows := 0
	for _, line := range resp.EquityLines {
		if line.AccountCode == accounting.CodeRetainedEarnings {
			retainedRows++
			// 350 posted + 200 net income.
			assert.True(t, line.Amount.Equal(decimal.NewFromInt(550)))
		}
	}
	assert.Equal(t, 1, retainedRows)
	assert.True(t, resp.RetainedEarnings.Equal(decimal.NewFromInt(200)))
	assert.True(t, resp.TotalEquity.Equal(decimal.NewFromInt(550)))
	assert.True(t, resp.IsBalanced)
}

func TestReportService_ReconcileBalances(t *testing.T) {
	ctx := context.Background()
	f := newReportServiceFixture()

	cash := mustNewAccount(f.tenantID, "1000", "Cash", accounting.AccountTypeAsset)
	cash.Balance = decimal.NewFromInt(100)
	drifted := mustNewAccount(f.tenantID, "4000", "Sales Revenue", accounting.AccountTypeRevenue)
	drifted.Balance = decimal.NewFromInt(90)

	cashAgg := accounting.AccountAggregate{
		AccountID: cash.ID, Code: "1000", Name: "Cash", Type: accounting.AccountTypeAsset,
		TotalDebit: decimal.NewFromInt(100), TotalCredit: decimal.Zero,
	}
	revenueAgg := accounting.AccountAggregate{
		AccountID: drifted.ID, Code: "4000", Name: "Sales Revenue", Type: accounting.AccountTypeRevenue,
		TotalDebit: decimal.Zero, TotalCredit: decimal.NewFromInt(100),
	}

	f.accountRepo.On("FindAllForTenant", ctx, f.tenantID, accounting.AccountFilter{}).
		Return([]accounting.Account{*cash, *drifted}, nil)
	f.reportRepo.On("AggregateByAccount", ctx, f.tenantID, (*time.Time)(nil)).
		Return([]accounting.AccountAggregate{cashAgg, revenueAgg}, nil)

	result, err := f.service.ReconcileBalances(ctx, f.tenantID)
	require.NoError(t, err)

	assert.Equal(t, 2, result.AccountsChecked)
	require.Len(t, result.Discrepancies, 1)
	assert.Equal(t, drifted.ID, result.Discrepancies[0].AccountID)
	assert.True(t, result.Discrepancies[0].ComputedBalance.Equal(decimal.NewFromInt(100)))
	assert.Equal(t, accounting.SeverityCritical, result.Discrepancies[0].Severity)
	assert.False(t, result.Status.IsBalanced())
}
