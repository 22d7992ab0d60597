package storage

import (
	"context"
	"time"
)

// Delivery statuses recorded in the log.
const (
	DeliveryStatusSent   = "sent"
	DeliveryStatusFailed = "failed"
)

// DeliveryLogEntry records a single per-channel delivery attempt.
type DeliveryLogEntry struct {
	ID         int64     `json:"id"`
	DispatchID string    `json:"dispatch_id"`
	UserID     int       `json:"user_id"`
	Channel    string    `json:"channel"`
	Status     string    `json:"status"`
	Detail     string    `json:"detail"`
	CreatedAt  time.Time `json:"created_at"`
}

// DeliveryStore defines the interface for persisting delivery attempts.
type DeliveryStore interface {
	// LogDelivery records a delivery attempt.
	LogDelivery(ctx context.Context, entry DeliveryLogEntry) error
	// ListDeliveries returns the most recent delivery log entries, up to limit.
	ListDeliveries(ctx context.Context, limit int) ([]DeliveryLogEntry, error)
	// PruneDeliveries removes entries created before cutoff and returns how
	// many were removed.
	PruneDeliveries(ctx context.Context, cutoff time.Time) (int64, error)
}
