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

func newPurchaseHandlerFixture() (*PurchaseReceivedHandler, *MockJournalEntryRepository, *MockAccountRepository, uuid.UUID, map[string]*accounting.Account) {
	entryRepo := new(MockJournalEntryRepository)
	accountRepo := new(MockAccountRepository)
	tenantID := uuid.New()
	accounts := map[string]*accounting.Account{
		accounting.CodeInventory:       mustNewAccount(tenantID, accounting.CodeInventory, "Inventory", accounting.AccountTypeAsset),
		accounting.CodeAccountsPayable: mustNewAccount(tenantID, accounting.CodeAccountsPayable, "Accounts Payable", accounting.AccountTypeLiability),
	}
	handler := NewPurchaseReceivedHandler(entryRepo, accountRepo, NewAccountService(accountRepo), newTestLogger())
	return handler, entryRepo, accountRepo, tenantID, accounts
}

func TestPurchaseReceivedHandler_Handle_PostsInventoryAgainstPayable(t *testing.T) {
	ctx := context.Background()
	handler, entryRepo, accountRepo, tenantID, accounts := newPurchaseHandlerFixture()
	purchaseID := uuid.New()
	event := trade.NewPurchaseReceivedEvent(tenantID, purchaseID, uuid.New(), "P-20260831-001", decimal.NewFromInt(250))

	entryRepo.On("ExistsByReference", ctx, tenantID, accounting.ReferenceTypePurchase, purchaseID).Return(false, nil)
	accountRepo.On("FindByCodesForTenant", ctx, tenantID, mock.Anything).Return(accounts, nil)

	var posted *accounting.JournalEntry
	entryRepo.On("CreatePosted", ctx, mock.AnythingOfType("*accounting.JournalEntry")).
		Run(func(args mock.Arguments) {
			posted = args.Get(1).(*accounting.JournalEntry)
		}).Return(nil)

	require.NoError(t, handler.Handle(ctx, event))

	require.NotNil(t, posted)
	assert.Equal(t, accounting.ReferenceTypePurchase, posted.ReferenceType)
	require.Len(t, posted.Lines, 2)
	assert.Equal(t, accounts[accounting.CodeInventory].ID, posted.Lines[0].AccountID)
	assert.True(t, posted.Lines[0].Debit.Equal(decimal.NewFromInt(250)))
	assert.Equal(t, accounts[accounting.CodeAccountsPayable].ID, posted.Lines[1].AccountID)
	assert.True(t, posted.Lines[1].Credit.Equal(decimal.NewFromInt(250)))
}

func TestPurchaseReceivedHandler_Handle_IdempotentWhenExisting(t *testing.T) {
	ctx := context.Background()
	handler, entryRepo, _, tenantID, _ := newPurchaseHandlerFixture()
	purchaseID := uuid.New()
	event := trade.NewPurchaseReceivedEvent(tenantID, purchaseID, uuid.New(), "P-20260831-002", decimal.NewFromInt(10))

	entryRepo.On("ExistsByReference", ctx, tenantID, accounting.ReferenceTypePurchase, purchaseID).Return(true, nil)

	require.NoError(t, handler.Handle(ctx, event))
	entryRepo.AssertNotCalled(t, "CreatePosted")
}

func TestPurchaseReceivedHandler_Handle_SkipsZeroAmount(t *testing.T) {
	ctx := context.Background()
	handler, entryRepo, accountRepo, tenantID, _ := newPurchaseHandlerFixture()
	purchaseID := uuid.New()
	event := trade.NewPurchaseReceivedEvent(tenantID, purchaseID, uuid.New(), "P-20260831-003", decimal.Zero)

	entryRepo.On("ExistsByReference", ctx, tenantID, accounting.ReferenceTypePurchase, purchaseID).Return(false, nil)

	require.NoError(t, handler.Handle(ctx, event))
	entryRepo.AssertNotCalled(t, "CreatePosted")
	accountRepo.AssertNotCalled(t, "FindByCodesForTenant")
}
