package accounting

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"

	"github.com/vansales/backend/internal/domain/accounting"
)

// MockAccountRepository is a mock implementation of AccountRepository
type MockAccountRepository struct {
	mock.Mock
}

func (m *MockAccountRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*accounting.Account, error) {
	args := m.Called(ctx, tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*accounting.Account), args.Error(1)
}

func (m *MockAccountRepository) FindByCodeForTenant(ctx context.Context, tenantID uuid.UUID, code string) (*accounting.Account, error) {
	args := m.Called(ctx, tenantID, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*accounting.Account), args.Error(1)
}

func (m *MockAccountRepository) FindByCodesForTenant(ctx context.Context, tenantID uuid.UUID, codes []string) (map[string]*accounting.Account, error) {
	args := m.Called(ctx, tenantID, codes)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]*accounting.Account), args.Error(1)
}

func (m *MockAccountRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter accounting.AccountFilter) ([]accounting.Account, error) {
	args := m.Called(ctx, tenantID, filter)
	return args.Get(0).([]accounting.Account), args.Error(1)
}

func (m *MockAccountRepository) ExistsByCode(ctx context.Context, tenantID uuid.UUID, code string) (bool, error) {
	args := m.Called(ctx, tenantID, code)
	return args.Bool(0), args.Error(1)
}

func (m *MockAccountRepository) Save(ctx context.Context, account *accounting.Account) error {
	args := m.Called(ctx, account)
	return args.Error(0)
}

func (m *MockAccountRepository) SaveAll(ctx context.Context, accounts []*accounting.Account) error {
	args := m.Called(ctx, accounts)
	return args.Error(0)
}

func (m *MockAccountRepository) DeleteForTenant(ctx context.Context, tenantID, id uuid.UUID) error {
	args := m.Called(ctx, tenantID, id)
	return args.Error(0)
}

func (m *MockAccountRepository) HasJournalLines(ctx context.Context, tenantID, accountID uuid.UUID) (bool, error) {
	args := m.Called(ctx, tenantID, accountID)
	return args.Bool(0), args.Error(1)
}

func (m *MockAccountRepository) HasChildren(ctx context.Context, tenantID, accountID uuid.UUID) (bool, error) {
	args := m.Called(ctx, tenantID, accountID)
	return args.Bool(0), args.Error(1)
}

var _ accounting.AccountRepository = (*MockAccountRepository)(nil)

// MockJournalEntryRepository is a mock implementation of JournalEntryRepository
type MockJournalEntryRepository struct {
	mock.Mock
}

func (m *MockJournalEntryRepository) CreatePosted(ctx context.Context, entry *accounting.JournalEntry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *MockJournalEntryRepository) CreateReversal(ctx context.Context, original, reversal *accounting.JournalEntry) error {
	args := m.Called(ctx, original, reversal)
	return args.Error(0)
}

func (m *MockJournalEntryRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*accounting.JournalEntry, error) {
	args := m.Called(ctx, tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*accounting.JournalEntry), args.Error(1)
}

func (m *MockJournalEntryRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter accounting.JournalEntryFilter) ([]accounting.JournalEntry, int64, error) {
	args := m.Called(ctx, tenantID, filter)
	return args.Get(0).([]accounting.JournalEntry), args.Get(1).(int64), args.Error(2)
}

func (m *MockJournalEntryRepository) ExistsByReference(ctx context.Context, tenantID uuid.UUID, refType string, refID uuid.UUID) (bool, error) {
	args := m.Called(ctx, tenantID, refType, refID)
	return args.Bool(0), args.Error(1)
}

func (m *MockJournalEntryRepository) FindLinesForAccount(ctx context.Context, tenantID, accountID uuid.UUID, from, to *time.Time) ([]accounting.LedgerLine, error) {
	args := m.Called(ctx, tenantID, accountID, from, to)
	return args.Get(0).([]accounting.LedgerLine), args.Error(1)
}

var _ accounting.JournalEntryRepository = (*MockJournalEntryRepository)(nil)

// MockLedgerReportRepository is a mock implementation of LedgerReportRepository
type MockLedgerReportRepository struct {
	mock.Mock
}

func (m *MockLedgerReportRepository) AggregateByAccount(ctx context.Context, tenantID uuid.UUID, asOf *time.Time) ([]accounting.AccountAggregate, error) {
	args := m.Called(ctx, tenantID, asOf)
	return args.Get(0).([]accounting.AccountAggregate), args.Error(1)
}

func (m *MockLedgerReportRepository) AggregateByAccountBetween(ctx context.Context, tenantID uuid.UUID, from, to time.Time) ([]accounting.AccountAggregate, error) {
	args := m.Called(ctx, tenantID, from, to)
	return args.Get(0).([]accounting.AccountAggregate), args.Error(1)
}

var _ accounting.LedgerReportRepository = (*MockLedgerReportRepository)(nil)

// Test helper functions
func newTestLogger() *zap.Logger {
	logger, _ := zap.NewDevelopment()
	return logger
}

func mustNewAccount(tenantID uuid.UUID, code, name string, accountType accounting.AccountType) *accounting.Account {
	account, err := accounting.NewAccount(tenantID, code, name, accountType)
	if err != nil {
		panic(err)
	}
	return account
}
