// Package eventbus provides an in-memory, asynchronous event bus used to
// decouple dispatch outcomes from their consumers (delivery log, metrics).
// Events flow through a buffered channel and are processed by a worker pool.
package eventbus

import (
	"log/slog"
	"sync"
	"time"
)

const (
	defaultWorkers    = 2
	defaultBufferSize = 256
)

// EventBus is the interface for publishing events and managing subscribers.
type EventBus interface {
	// Publish enqueues an event with the given type and payload.
	// It never blocks: if the buffer is full, the event is dropped and a
	// warning is logged. A dropped event loses its delivery-log entry but
	// never affects the dispatch result.
	Publish(eventType string, payload map[string]string)

	// Subscribe registers a listener that will be called for every published
	// event (broadcast). Subscribe must be called before the first Publish;
	// behavior is undefined if called after Close.
	Subscribe(listener Listener)

	// Close stops accepting new events and waits for all pending events to
	// be processed.
	Close()
}

// inMemoryBus is the default EventBus implementation.
type inMemoryBus struct {
	ch        chan Event
	listeners []Listener
	mu        sync.RWMutex
	wg        sync.WaitGroup
	logger    *slog.Logger
}

// New creates an in-memory EventBus with the given number of worker
// goroutines. If workers is <= 0, defaultWorkers is used.
func New(workers int, logger *slog.Logger) EventBus {
	if workers <= 0 {
		workers = defaultWorkers
	}
	if logger == nil {
		logger = slog.Default()
	}
	b := &inMemoryBus{
		ch:     make(chan Event, defaultBufferSize),
		logger: logger,
	}
	for i := 0; i < workers; i++ {
		b.wg.Add(1)
		go func() {
			defer b.wg.Done()
			for e := range b.ch {
				b.dispatch(e)
			}
		}()
	}
	return b
}

// dispatch calls all registered listeners for the given event. Each listener
// runs with panic recovery so one bad listener cannot take down the workers.
func (b *inMemoryBus) dispatch(e Event) {
	b.mu.RLock()
	listeners := make([]Listener, len(b.listeners))
	copy(listeners, b.listeners)
	b.mu.RUnlock()

	for _, l := range listeners {
		func() {
			defer func() {
				if r := recover(); r != nil {
					b.logger.Error("eventbus listener panicked",
						"event_type", e.Type, "panic", r)
				}
			}()
			l(e)
		}()
	}
}

// Publish enqueues an event. If the buffer is full the event is dropped.
func (b *inMemoryBus) Publish(eventType string, payload map[string]string) {
	e := Event{
		Type:      eventType,
		Timestamp: time.Now(),
		Payload:   payload,
	}

	select {
	case b.ch <- e:
	default:
		b.logger.Warn("eventbus buffer full, dropping event", "event_type", eventType)
	}
}

// Subscribe adds a listener to receive all future events.
func (b *inMemoryBus) Subscribe(listener Listener) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.listeners = append(b.listeners, listener)
}

// Close drains and closes the event channel, then waits for all workers to finish.
func (b *inMemoryBus) Close() {
	close(b.ch)
	b.wg.Wait()
}
