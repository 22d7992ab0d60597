package storage_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/notifyd/notifyd/internal/storage"
)

func TestSQLiteDeliveryStore(t *testing.T) {
	db, err := storage.NewSQLiteDB(":memory:")
	require.NoError(t, err)
	defer db.Close()

	store := storage.NewSQLiteDeliveryStore(db)
	ctx := context.Background()

	t.Run("log and list", func(t *testing.T) {
		entry := storage.DeliveryLogEntry{
			DispatchID: "d-1",
			UserID:     1,
			Channel:    "email",
			Status:     storage.DeliveryStatusSent,
			Detail:     "delivered",
			CreatedAt:  time.Now().UTC().Truncate(time.Second),
		}
		require.NoError(t, store.LogDelivery(ctx, entry))

		list, err := store.ListDeliveries(ctx, 10)
		require.NoError(t, err)
		require.Len(t, list, 1)

		got := list[0]
		assert.Equal(t, entry.DispatchID, got.DispatchID)
		assert.Equal(t, entry.UserID, got.UserID)
		assert.Equal(t, entry.Channel, got.Channel)
		assert.Equal(t, entry.Status, got.Status)
		assert.Equal(t, entry.Detail, got.Detail)
	})

	t.Run("failed status", func(t *testing.T) {
		entry := storage.DeliveryLogEntry{
			DispatchID: "d-2",
			UserID:     2,
			Channel:    "sms",
			Status:     storage.DeliveryStatusFailed,
			Detail:     "connection failed - external service unavailable",
			CreatedAt:  time.Now().UTC(),
		}
		require.NoError(t, store.LogDelivery(ctx, entry))

		list, err := store.ListDeliveries(ctx, 10)
		require.NoError(t, err)
		// Latest entry is first.
		assert.Equal(t, storage.DeliveryStatusFailed, list[0].Status)
		assert.Equal(t, "d-2", list[0].DispatchID)
	})

	t.Run("default limit", func(t *testing.T) {
		list, err := store.ListDeliveries(ctx, 0)
		require.NoError(t, err)
		assert.NotNil(t, list)
	})

	t.Run("prune removes old entries", func(t *testing.T) {
		old := storage.DeliveryLogEntry{
			DispatchID: "d-old",
			UserID:     3,
			Channel:    "email",
			Status:     storage.DeliveryStatusSent,
			CreatedAt:  time.Now().UTC().Add(-48 * time.Hour),
		}
		require.NoError(t, store.LogDelivery(ctx, old))

		n, err := store.PruneDeliveries(ctx, time.Now().UTC().Add(-24*time.Hour))
		require.NoError(t, err)
		assert.Equal(t, int64(1), n)

		list, err := store.ListDeliveries(ctx, 50)
		require.NoError(t, err)
		for _, e := range list {
			assert.NotEqual(t, "d-old", e.DispatchID)
		}
	})
}
