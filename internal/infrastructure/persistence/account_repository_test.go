package persistence

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vansales/backend/internal/domain/accounting"
	"github.com/vansales/backend/internal/domain/shared"
)

func TestGormAccountRepository_SaveAndFind(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormAccountRepository(db)
	ctx := context.Background()
	tenantID := uuid.New()

	account, err := accounting.NewAccount(tenantID, "1000", "Cash", accounting.AccountTypeAsset)
	require.NoError(t, err)
	require.NoError(t, repo.Save(ctx, account))

	t.Run("finds by ID within tenant", func(t *testing.T) {
		found, err := repo.FindByIDForTenant(ctx, tenantID, account.ID)
		require.NoError(t, err)
		assert.Equal(t, "1000", found.Code)
		assert.Equal(t, accounting.AccountTypeAsset, found.Type)
	})

	t.Run("finds by code within tenant", func(t *testing.T) {
		found, err := repo.FindByCodeForTenant(ctx, tenantID, "1000")
		require.NoError(t, err)
		assert.Equal(t, account.ID, found.ID)
	})

	t.Run("does not leak across tenants", func(t *testing.T) {
		_, err := repo.FindByIDForTenant(ctx, uuid.New(), account.ID)
		assert.ErrorIs(t, err, shared.ErrNotFound)

		_, err = repo.FindByCodeForTenant(ctx, uuid.New(), "1000")
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})

	t.Run("reports code existence", func(t *testing.T) {
		exists, err := repo.ExistsByCode(ctx, tenantID, "1000")
		require.NoError(t, err)
		assert.True(t, exists)

		exists, err = repo.ExistsByCode(ctx, tenantID, "9999")
		require.NoError(t, err)
		assert.False(t, exists)
	})
}

func TestGormAccountRepository_FindByCodes(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormAccountRepository(db)
	ctx := context.Background()
	tenantID := uuid.New()

	seedDefaultChart(t, repo, tenantID)

	found, err := repo.FindByCodesForTenant(ctx, tenantID, []string{
		accounting.CodeCash, accounting.CodeSalesRevenue, "no-such-code",
	})
	require.NoError(t, err)
	assert.Len(t, found, 2)
	assert.Equal(t, "Cash", found[accounting.CodeCash].Name)
	assert.NotNil(t, found[accounting.CodeSalesRevenue])
}

func TestGormAccountRepository_FindAllOrderedByCode(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormAccountRepository(db)
	ctx := context.Background()
	tenantID := uuid.New()

	seedDefaultChart(t, repo, tenantID)

	accounts, err := repo.FindAllForTenant(ctx, tenantID, accounting.AccountFilter{})
	require.NoError(t, err)
	require.NotEmpty(t, accounts)

	for i := 1; i < len(accounts); i++ {
		assert.LessOrEqual(t, accounts[i-1].Code, accounts[i].Code)
	}

	t.Run("filters by type", func(t *testing.T) {
		assetType := accounting.AccountTypeAsset
		assets, err := repo.FindAllForTenant(ctx, tenantID, accounting.AccountFilter{Type: &assetType})
		require.NoError(t, err)
		require.NotEmpty(t, assets)
		for _, a := range assets {
			assert.Equal(t, accounting.AccountTypeAsset, a.Type)
		}
	})

	t.Run("filters inactive accounts", func(t *testing.T) {
		account, err := accounting.NewAccount(tenantID, "7000", "Dormant", accounting.AccountTypeExpense)
		require.NoError(t, err)
		account.Deactivate()
		require.NoError(t, repo.Save(ctx, account))

		active, err := repo.FindAllForTenant(ctx, tenantID, accounting.AccountFilter{ActiveOnly: true})
		require.NoError(t, err)
		for _, a := range active {
			assert.NotEqual(t, "7000", a.Code)
		}
	})
}

func TestGormAccountRepository_Search(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormAccountRepository(db)
	ctx := context.Background()
	tenantID := uuid.New()

	seedDefaultChart(t, repo, tenantID)

	t.Run("matches name case-insensitively", func(t *testing.T) {
		found, err := repo.FindAllForTenant(ctx, tenantID, accounting.AccountFilter{Filter: shared.Filter{Search: "CASH"}})
		require.NoError(t, err)
		require.NotEmpty(t, found)
		for _, a := range found {
			assert.Contains(t, a.Name, "Cash")
		}
	})

	t.Run("matches code substring", func(t *testing.T) {
		found, err := repo.FindAllForTenant(ctx, tenantID, accounting.AccountFilter{Filter: shared.Filter{Search: accounting.CodeSalesRevenue}})
		require.NoError(t, err)
		require.Len(t, found, 1)
		assert.Equal(t, accounting.CodeSalesRevenue, found[0].Code)
	})

	t.Run("no matches yields empty result", func(t *testing.T) {
		found, err := repo.FindAllForTenant(ctx, tenantID, accounting.AccountFilter{Filter: shared.Filter{Search: "zzz-nothing"}})
		require.NoError(t, err)
		assert.Empty(t, found)
	})
}

func TestGormAccountRepository_Delete(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormAccountRepository(db)
	ctx := context.Background()
	tenantID := uuid.New()

	account, err := accounting.NewAccount(tenantID, "1500", "Prepaid Expenses", accounting.AccountTypeAsset)
	require.NoError(t, err)
	require.NoError(t, repo.Save(ctx, account))

	require.NoError(t, repo.DeleteForTenant(ctx, tenantID, account.ID))

	_, err = repo.FindByIDForTenant(ctx, tenantID, account.ID)
	assert.ErrorIs(t, err, shared.ErrNotFound)

	err = repo.DeleteForTenant(ctx, tenantID, account.ID)
	assert.ErrorIs(t, err, shared.ErrNotFound)
}

func TestGormAccountRepository_HasChildren(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormAccountRepository(db)
	ctx := context.Background()
	tenantID := uuid.New()

	parent, err := accounting.NewAccount(tenantID, "6000", "Operating Expenses", accounting.AccountTypeExpense)
	require.NoError(t, err)
	require.NoError(t, repo.Save(ctx, parent))

	child, err := accounting.NewAccount(tenantID, "6100", "Vehicle Expenses", accounting.AccountTypeExpense)
	require.NoError(t, err)
	child.WithParent(parent.ID)
	require.NoError(t, repo.Save(ctx, child))

	hasChildren, err := repo.HasChildren(ctx, tenantID, parent.ID)
	require.NoError(t, err)
	assert.True(t, hasChildren)

	hasChildren, err = repo.HasChildren(ctx, tenantID, child.ID)
	require.NoError(t, err)
	assert.False(t, hasChildren)
}

func seedDefaultChart(t *testing.T, repo *GormAccountRepository, tenantID uuid.UUID) {
	t.Helper()
	accounts := make([]*accounting.Account, 0)
	for _, spec := range accounting.DefaultChart() {
		account, err := accounting.NewAccount(tenantID, spec.Code, spec.Name, spec.Type)
		require.NoError(t, err)
		account.WithCategory(spec.Category)
		account.MarkSystem()
		accounts = append(accounts, account)
	}
	require.NoError(t, repo.SaveAll(context.Background(), accounts))
}
