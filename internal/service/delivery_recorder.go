package service

import (
	"context"
	"log/slog"
	"strconv"
	"time"

	"github.com/notifyd/notifyd/internal/eventbus"
	"github.com/notifyd/notifyd/internal/storage"
)

// recordTimeout bounds each delivery log write.
const recordTimeout = 5 * time.Second

// DeliveryRecorder subscribes to per-channel outcome events and persists them
// as delivery log entries. Recording is best-effort: a failed write is logged
// and dropped, it never affects the dispatch result.
type DeliveryRecorder struct {
	store  storage.DeliveryStore
	logger *slog.Logger
}

// NewDeliveryRecorder returns a DeliveryRecorder writing to store.
func NewDeliveryRecorder(store storage.DeliveryStore, logger *slog.Logger) *DeliveryRecorder {
	return &DeliveryRecorder{store: store, logger: logger}
}

// Register subscribes the recorder to the bus.
func (r *DeliveryRecorder) Register(bus eventbus.EventBus) {
	bus.Subscribe(r.handle)
}

func (r *DeliveryRecorder) handle(e eventbus.Event) {
	if e.Type != eventbus.EventChannelSent && e.Type != eventbus.EventChannelFailed {
		return
	}

	userID, err := strconv.Atoi(e.Payload["user_id"])
	if err != nil {
		r.logger.Warn("delivery event with malformed user_id", "user_id", e.Payload["user_id"])
		return
	}

	entry := storage.DeliveryLogEntry{
		DispatchID: e.Payload["dispatch_id"],
		UserID:     userID,
		Channel:    e.Payload["channel"],
		Status:     e.Payload["status"],
		Detail:     e.Payload["detail"],
		CreatedAt:  e.Timestamp,
	}

	ctx, cancel := context.WithTimeout(context.Background(), recordTimeout)
	defer cancel()

	if err := r.store.LogDelivery(ctx, entry); err != nil {
		r.logger.Error("failed to record delivery",
			"dispatch_id", entry.DispatchID, "channel", entry.Channel, "error", err)
	}
}
