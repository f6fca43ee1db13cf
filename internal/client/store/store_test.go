package store

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/salesfield/fieldsync/internal/client/models"
)

func TestOpen_MigratesAllRecordFamilies(t *testing.T) {
	ctx := context.Background()
	st, err := Open(ctx, tempDSN(t))
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })

	for _, table := range []string{
		"pending_delivery_notes",
		"cached_stock",
		"cached_clients",
		"cached_dashboard",
		"cached_prices",
	} {
		var name string
		err := st.DB.QueryRowContext(ctx,
			`SELECT name FROM sqlite_master WHERE type='table' AND name=?`, table).Scan(&name)
		require.NoError(t, err, "missing table %s", table)
	}
}

func TestOpen_RepositoriesAreWired(t *testing.T) {
	ctx := context.Background()
	st, err := Open(ctx, tempDSN(t))
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })

	note := &models.PendingNote{
		LocalID:       "n1",
		SalespersonID: 7,
		ClientID:      42,
		Lines: []models.NoteLine{
			{ProductID: 1, Quantity: decimal.NewFromInt(3), UnitPrice: decimal.NewFromInt(10)},
		},
		CreatedAt: time.Now().UTC(),
	}
	require.NoError(t, st.Pending.Insert(ctx, note))

	n, err := st.Pending.CountPending(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	require.NoError(t, st.Prices.Upsert(ctx, &models.PriceEntry{
		ProductID: 1, ClientID: 42,
		Quantity:    decimal.NewFromInt(1),
		UnitPrice:   decimal.RequireFromString("9.5"),
		LastUpdated: time.Now().UTC(),
	}))
	entry, err := st.Prices.Get(ctx, 1, 42, decimal.NewFromInt(1))
	require.NoError(t, err)
	assert.True(t, entry.UnitPrice.Equal(decimal.RequireFromString("9.5")))
}

func TestOpen_IsIdempotentAcrossRestarts(t *testing.T) {
	ctx := context.Background()
	dsn := tempDSN(t)

	st, err := Open(ctx, dsn)
	require.NoError(t, err)
	require.NoError(t, st.Prices.Upsert(ctx, &models.PriceEntry{
		ProductID: 1, ClientID: 42,
		Quantity:    decimal.NewFromInt(1),
		UnitPrice:   decimal.NewFromInt(9),
		LastUpdated: time.Now().UTC(),
	}))
	require.NoError(t, st.Close())

	// Reopening runs migrations again; already-applied versions are
	// skipped and cached data survives.
	st2, err := Open(ctx, dsn)
	require.NoError(t, err)
	t.Cleanup(func() { _ = st2.Close() })

	entry, err := st2.Prices.Get(ctx, 1, 42, decimal.NewFromInt(1))
	require.NoError(t, err)
	assert.True(t, entry.UnitPrice.Equal(decimal.NewFromInt(9)))
}

func TestResetCache_ClearsCachesButKeepsQueue(t *testing.T) {
	ctx := context.Background()
	st, err := Open(ctx, tempDSN(t))
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })

	require.NoError(t, st.Pending.Insert(ctx, &models.PendingNote{
		LocalID:       "n1",
		SalespersonID: 7,
		ClientID:      42,
		Lines: []models.NoteLine{
			{ProductID: 1, Quantity: decimal.NewFromInt(1), UnitPrice: decimal.NewFromInt(5)},
		},
		CreatedAt: time.Now().UTC(),
	}))
	require.NoError(t, st.Prices.Upsert(ctx, &models.PriceEntry{
		ProductID: 1, ClientID: 42,
		Quantity:    decimal.NewFromInt(1),
		UnitPrice:   decimal.NewFromInt(9),
		LastUpdated: time.Now().UTC(),
	}))
	require.NoError(t, st.Reference.UpsertStock(ctx, &models.StockItem{
		ProductID: 1, Name: "Widget", Reference: "W-1",
		Available: decimal.NewFromInt(10), LastUpdated: time.Now().UTC(),
	}))

	require.NoError(t, st.ResetCache(ctx))

	n, err := st.Prices.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, n)

	stock, err := st.Reference.GetAllStock(ctx)
	require.NoError(t, err)
	assert.Empty(t, stock)

	pendingCount, err := st.Pending.CountPending(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, pendingCount, "pending notes must survive a cache reset")
}
