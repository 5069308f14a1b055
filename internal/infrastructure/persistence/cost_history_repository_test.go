package persistence

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vansales/backend/internal/domain/inventory"
	"github.com/vansales/backend/internal/domain/shared"
	"github.com/vansales/backend/internal/domain/shared/strategy"
)

func TestGormCostHistoryRepository_AppendAssignsSequence(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormCostHistoryRepository(db)
	ctx := context.Background()
	tenantID := uuid.New()
	productID := uuid.New()

	day := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)
	for i := 1; i <= 3; i++ {
		entry, err := inventory.NewCostHistoryEntry(tenantID, productID, decimal.NewFromInt(int64(10+i)), day, "purchase")
		require.NoError(t, err)
		require.NoError(t, repo.Append(ctx, entry))
		assert.EqualValues(t, i, entry.Sequence)
	}

	t.Run("sequence is per product", func(t *testing.T) {
		other := uuid.New()
		entry, err := inventory.NewCostHistoryEntry(tenantID, other, decimal.NewFromInt(5), day, "purchase")
		require.NoError(t, err)
		require.NoError(t, repo.Append(ctx, entry))
		assert.EqualValues(t, 1, entry.Sequence)
	})
}

func TestGormCostHistoryRepository_FindByProductOrdering(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormCostHistoryRepository(db)
	ctx := context.Background()
	tenantID := uuid.New()
	productID := uuid.New()

	// Insert newest first; reads must come back oldest first
	dates := []time.Time{
		time.Date(2026, 2, 10, 0, 0, 0, 0, time.UTC),
		time.Date(2026, 2, 5, 0, 0, 0, 0, time.UTC),
		time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC),
	}
	for i, d := range dates {
		entry, err := inventory.NewCostHistoryEntry(tenantID, productID, decimal.NewFromInt(int64(i+1)), d, "purchase")
		require.NoError(t, err)
		require.NoError(t, repo.Append(ctx, entry))
	}

	entries, err := repo.FindByProduct(ctx, tenantID, productID)
	require.NoError(t, err)
	require.Len(t, entries, 3)
	for i := 1; i < len(entries); i++ {
		assert.False(t, entries[i].RecordedAt.Before(entries[i-1].RecordedAt))
	}

	count, err := repo.CountByProduct(ctx, tenantID, productID)
	require.NoError(t, err)
	assert.EqualValues(t, 3, count)

	t.Run("tenant isolation", func(t *testing.T) {
		entries, err := repo.FindByProduct(ctx, uuid.New(), productID)
		require.NoError(t, err)
		assert.Empty(t, entries)
	})
}

func TestGormValuationSettingRepository(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormValuationSettingRepository(db)
	ctx := context.Background()
	tenantID := uuid.New()

	t.Run("missing setting yields not found", func(t *testing.T) {
		_, err := repo.FindByTenant(ctx, tenantID)
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})

	t.Run("save and reload", func(t *testing.T) {
		setting := inventory.NewValuationSetting(tenantID)
		require.NoError(t, repo.Save(ctx, setting))

		found, err := repo.FindByTenant(ctx, tenantID)
		require.NoError(t, err)
		assert.Equal(t, strategy.CostMethodFIFO, found.Method)
	})

	t.Run("method switch persists", func(t *testing.T) {
		setting, err := repo.FindByTenant(ctx, tenantID)
		require.NoError(t, err)
		require.NoError(t, setting.SetMethod(strategy.CostMethodWeightedAverage))
		require.NoError(t, repo.Save(ctx, setting))

		found, err := repo.FindByTenant(ctx, tenantID)
		require.NoError(t, err)
		assert.Equal(t, strategy.CostMethodWeightedAverage, found.Method)
	})
}
