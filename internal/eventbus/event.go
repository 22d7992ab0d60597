package eventbus

import "time"

// Event types published by the dispatch engine.
const (
	// EventChannelSent is published when a channel delivery succeeds.
	EventChannelSent = "notification.channel.sent"
	// EventChannelFailed is published when a channel delivery fails.
	EventChannelFailed = "notification.channel.failed"
)

// Event represents an application event published to the bus.
type Event struct {
	Type      string            `json:"type"`
	Timestamp time.Time         `json:"timestamp"`
	Payload   map[string]string `json:"payload"`
}

// Listener is a function that handles an event.
type Listener func(Event)
