package session

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/blisora/storefront/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestSQLite(t *testing.T) *SQLiteStore {
	dbPath := filepath.Join(t.TempDir(), "storefront.db")

	store, err := NewSQLiteStore(dbPath)
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	require.NoError(t, store.RunMigrations("./migrations"))
	return store
}

func TestSQLiteStore_SetGetRoundTrip(t *testing.T) {
	store := setupTestSQLite(t)
	ctx := context.Background()

	order := domain.Order{
		ID:          "o1",
		OrderRef:    "BLIS-2002",
		TotalAmount: 208,
	}
	require.NoError(t, store.Set(ctx, "s1", KeyOrder, order))

	var got domain.Order
	require.NoError(t, store.Get(ctx, "s1", KeyOrder, &got))
	assert.Equal(t, order.OrderRef, got.OrderRef)
	assert.Equal(t, order.TotalAmount, got.TotalAmount)
}

func TestSQLiteStore_SetOverwrites(t *testing.T) {
	store := setupTestSQLite(t)
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "s1", KeyAudience, domain.AudienceHer))
	require.NoError(t, store.Set(ctx, "s1", KeyAudience, domain.AudienceHim))

	var got domain.Audience
	require.NoError(t, store.Get(ctx, "s1", KeyAudience, &got))
	assert.Equal(t, domain.AudienceHim, got)
}

func TestSQLiteStore_GetMissing(t *testing.T) {
	store := setupTestSQLite(t)

	var got domain.Order
	assert.ErrorIs(t, store.Get(context.Background(), "s1", KeyOrder, &got), ErrNotFound)
}

func TestSQLiteStore_Delete(t *testing.T) {
	store := setupTestSQLite(t)
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "s1", KeyDraft, domain.CheckoutDraft{Email: "a@b.co"}))
	require.NoError(t, store.Delete(ctx, "s1", KeyDraft))

	var got domain.CheckoutDraft
	assert.ErrorIs(t, store.Get(ctx, "s1", KeyDraft, &got), ErrNotFound)
}
