package accounting

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/vansales/backend/internal/domain/accounting"
	"github.com/vansales/backend/internal/domain/trade"
)

type saleHandlerFixture struct {
	entryRepo   *MockJournalEntryRepository
	accountRepo *MockAccountRepository
	handler     *SaleCompletedHandler
	tenantID    uuid.UUID
	accounts    map[string]*accounting.Account
}

func newSaleHandlerFixture() *saleHandlerFixture {
	entryRepo := new(MockJournalEntryRepository)
	accountRepo := new(MockAccountRepository)
	accountService := NewAccountService(accountRepo)
	tenantID := uuid.New()

	accounts := map[string]*accounting.Account{
		accounting.CodeCash:               mustNewAccount(tenantID, accounting.CodeCash, "Cash", accounting.AccountTypeAsset),
		accounting.CodeAccountsReceivable: mustNewAccount(tenantID, accounting.CodeAccountsReceivable, "Accounts Receivable", accounting.AccountTypeAsset),
		accounting.CodeSalesRevenue:       mustNewAccount(tenantID, accounting.CodeSalesRevenue, "Sales Revenue", accounting.AccountTypeRevenue),
		accounting.CodeCOGS:               mustNewAccount(tenantID, accounting.CodeCOGS, "Cost of Goods Sold", accounting.AccountTypeExpense),
		accounting.CodeInventory:          mustNewAccount(tenantID, accounting.CodeInventory, "Inventory", accounting.AccountTypeAsset),
	}

	return &saleHandlerFixture{
		entryRepo:   entryRepo,
		accountRepo: accountRepo,
		handler:     NewSaleCompletedHandler(entryRepo, accountRepo, accountService, newTestLogger()),
		tenantID:    tenantID,
		accounts:    accounts,
	}
}

func TestSaleCompletedHandler_EventTypes(t *testing.T) {
	f := newSaleHandlerFixture()
	assert.Equal(t, []string{trade.EventTypeSaleCompleted}, f.handler.EventTypes())
}

func TestSaleCompletedHandler_Handle_PostsBalancedEntry(t *testing.T) {
	ctx := context.Background()
	f := newSaleHandlerFixture()
	saleID := uuid.New()
	event := trade.NewSaleCompletedEvent(
		f.tenantID, saleID, uuid.New(), "S-20260831-001",
		decimal.NewFromInt(100), // total
		decimal.NewFromInt(60),  // collected
		decimal.NewFromInt(40),  // on credit
		decimal.NewFromInt(55),  // cost basis
	)

	f.entryRepo.On("ExistsByReference", ctx, f.tenantID, accounting.ReferenceTypeSale, saleID).Return(false, nil)
	f.accountRepo.On("FindByCodesForTenant", ctx, f.tenantID, mock.Anything).Return(f.accounts, nil)

	var posted *accounting.JournalEntry
	f.entryRepo.On("CreatePosted", ctx, mock.AnythingOfType("*accounting.JournalEntry")).
		Run(func(args mock.Arguments) {
			posted = args.Get(1).(*accounting.JournalEntry)
		}).Return(nil)

	err := f.handler.Handle(ctx, event)
	require.NoError(t, err)
	f.entryRepo.AssertExpectations(t)

	require.NotNil(t, posted)
	assert.Equal(t, accounting.ReferenceTypeSale, posted.ReferenceType)
	require.NotNil(t, posted.ReferenceID)
	assert.Equal(t, saleID, *posted.ReferenceID)
	assert.Len(t, posted.Lines, 5)
	assert.True(t, posted.TotalDebit.Equal(decimal.NewFromInt(155)))
	assert.True(t, posted.TotalCredit.Equal(decimal.NewFromInt(155)))

	debits := decimal.Zero
	for _, line := range posted.Lines {
		if line.AccountID == f.accounts[accounting.CodeSalesRevenue].ID {
			assert.True(t, line.Credit.Equal(decimal.NewFromInt(100)))
		}
		if line.AccountID == f.accounts[accounting.CodeInventory].ID {
			assert.True(t, line.Credit.Equal(decimal.NewFromInt(55)))
		}
		debits = debits.Add(line.Debit)
	}
	assert.True(t, debits.Equal(decimal.NewFromInt(155)))
}

func TestSaleCompletedHandler_Handle_CashOnlySaleWithoutCostBasis(t *testing.T) {
	ctx := context.Background()
	f := newSaleHandlerFixture()
	saleID := uuid.New()
	event := trade.NewSaleCompletedEvent(
		f.tenantID, saleID, uuid.New(), "S-20260831-002",
		decimal.NewFromInt(30), decimal.NewFromInt(30), decimal.Zero, decimal.Zero,
	)

	f.entryRepo.On("ExistsByReference", ctx, f.tenantID, accounting.ReferenceTypeSale, saleID).Return(false, nil)
	f.accountRepo.On("FindByCodesForTenant", ctx, f.tenantID, mock.Anything).Return(f.accounts, nil)

	var posted *accounting.JournalEntry
	f.entryRepo.On("CreatePosted", ctx, mock.AnythingOfType("*accounting.JournalEntry")).
		Run(func(args mock.Arguments) {
			posted = args.Get(1).(*accounting.JournalEntry)
		}).Return(nil)

	require.NoError(t, f.handler.Handle(ctx, event))
	require.NotNil(t, posted)
	assert.Len(t, posted.Lines, 2)
	assert.True(t, posted.TotalDebit.Equal(decimal.NewFromInt(30)))
}

func TestSaleCompletedHandler_Handle_IdempotentWhenExisting(t *testing.T) {
	ctx := context.Background()
	f := newSaleHandlerFixture()
	saleID := uuid.New()
	event := trade.NewSaleCompletedEvent(
		f.tenantID, saleID, uuid.New(), "S-20260831-003",
		decimal.NewFromInt(10), decimal.NewFromInt(10), decimal.Zero, decimal.NewFromInt(4),
	)

	f.entryRepo.On("ExistsByReference", ctx, f.tenantID, accounting.ReferenceTypeSale, saleID).Return(true, nil)

	require.NoError(t, f.handler.Handle(ctx, event))
	f.entryRepo.AssertNotCalled(t, "CreatePosted")
}

func TestSaleCompletedHandler_Handle_SkipsZeroValueSale(t *testing.T) {
	ctx := context.Background()
	f := newSaleHandlerFixture()
	saleID := uuid.New()
	event := trade.NewSaleCompletedEvent(
		f.tenantID, saleID, uuid.New(), "S-20260831-004",
		decimal.Zero, decimal.Zero, decimal.Zero, decimal.Zero,
	)

	f.entryRepo.On("ExistsByReference", ctx, f.tenantID, accounting.ReferenceTypeSale, saleID).Return(false, nil)

	require.NoError(t, f.handler.Handle(ctx, event))
	f.entryRepo.AssertNotCalled(t, "CreatePosted")
	f.accountRepo.AssertNotCalled(t, "FindByCodesForTenant")
}

func TestSaleCompletedHandler_Handle_WrongEventType(t *testing.T) {
	ctx := context.Background()
	f := newSaleHandlerFixture()
	event := trade.NewPurchaseReceivedEvent(f.tenantID, uuid.New(), uuid.New(), "P-001", decimal.NewFromInt(5))

	err := f.handler.Handle(ctx, event)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "unexpected event type")
}

func TestSaleCompletedHandler_Handle_BootstrapsMissingChart(t *testing.T) {
	ctx := context.Background()
	f := newSaleHandlerFixture()
	saleID := uuid.New()
	event := trade.NewSaleCompletedEvent(
		f.tenantID, saleID, uuid.New(), "S-20260831-005",
		decimal.NewFromInt(20), decimal.NewFromInt(20), decimal.Zero, decimal.Zero,
	)

	f.entryRepo.On("ExistsByReference", ctx, f.tenantID, accounting.ReferenceTypeSale, saleID).Return(false, nil)
	// First lookup misses, the default chart gets created, second lookup hits.
	f.accountRepo.On("FindByCodesForTenant", ctx, f.tenantID, mock.Anything).
		Return(map[string]*accounting.Account{}, nil).Once()
	f.accountRepo.On("SaveAll", ctx, mock.Anything).Return(nil)
	f.accountRepo.On("FindByCodesForTenant", ctx, f.tenantID, mock.Anything).
		Return(f.accounts, nil)
	f.entryRepo.On("CreatePosted", ctx, mock.AnythingOfType("*accounting.JournalEntry")).Return(nil)

	require.NoError(t, f.handler.Handle(ctx, event))
	f.accountRepo.AssertExpectations(t)
	f.entryRepo.AssertExpectations(t)
}
