package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/notifyd/notifyd/internal/eventbus"
	"github.com/notifyd/notifyd/internal/metrics"
	"github.com/notifyd/notifyd/internal/notification"
	"github.com/notifyd/notifyd/internal/storage"
)

// DispatchRequest asks for a message to be delivered to a user across all of
// their enabled channels. Message may be empty.
type DispatchRequest struct {
	UserID  int    `json:"userId"`
	Message string `json:"message"`
}

// DispatchResult is the aggregate outcome of one dispatch. Success is true
// iff at least one channel delivery succeeded; Message reports the status of
// every issued channel.
type DispatchResult struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	UserID  int    `json:"userId"`
}

// DispatchService translates a dispatch request into zero or more channel
// sends and reduces their outcomes into one result.
type DispatchService interface {
	// Send looks up the user's preferences and fans out to every enabled
	// channel concurrently. It returns a NotFoundError if the user does not
	// exist; channel-level failures never surface as errors.
	Send(ctx context.Context, req DispatchRequest) (DispatchResult, error)

	// ListDeliveries returns the most recent delivery log entries.
	ListDeliveries(ctx context.Context, limit int) ([]storage.DeliveryLogEntry, error)
}

// dispatchService is the default implementation of DispatchService.
type dispatchService struct {
	users      storage.UserStore
	deliveries storage.DeliveryStore
	sender     notification.Sender
	bus        eventbus.EventBus
	logger     *slog.Logger
}

// NewDispatchService returns a DispatchService that reads preferences from
// users, delivers through sender and publishes per-channel outcome events on
// bus.
func NewDispatchService(
	users storage.UserStore,
	deliveries storage.DeliveryStore,
	sender notification.Sender,
	bus eventbus.EventBus,
	logger *slog.Logger,
) DispatchService {
	return &dispatchService{
		users:      users,
		deliveries: deliveries,
		sender:     sender,
		bus:        bus,
		logger:     logger,
	}
}

// channelSend pairs a channel with its delivery call so the fan-out loop can
// treat email and SMS uniformly.
type channelSend struct {
	channel notification.Channel
	send    func(context.Context) notification.Outcome
}

func (s *dispatchService) Send(ctx context.Context, req DispatchRequest) (DispatchResult, error) {
	timer := time.Now()
	defer func() {
		metrics.DispatchDuration.Observe(time.Since(timer).Seconds())
	}()

	user, err := s.users.GetByID(req.UserID)
	if err != nil {
		if errors.Is(err, storage.ErrUserNotFound) {
			metrics.DispatchesTotal.WithLabelValues("user_not_found").Inc()
			return DispatchResult{}, &NotFoundError{Resource: "user", ID: strconv.Itoa(req.UserID)}
		}
		return DispatchResult{}, fmt.Errorf("looking up user %d: %w", req.UserID, err)
	}

	if !user.Preferences.Email && !user.Preferences.SMS {
		metrics.DispatchesTotal.WithLabelValues("all_disabled").Inc()
		return DispatchResult{
			Success: false,
			Message: "user has disabled all notification preferences",
			UserID:  req.UserID,
		}, nil
	}

	var sends []channelSend
	if user.Preferences.Email {
		sends = append(sends, channelSend{
			channel: notification.ChannelEmail,
			send: func(ctx context.Context) notification.Outcome {
				return s.sender.SendEmail(ctx, user.Email, req.Message)
			},
		})
	}
	if user.Preferences.SMS {
		sends = append(sends, channelSend{
			channel: notification.ChannelSMS,
			send: func(ctx context.Context) notification.Outcome {
				return s.sender.SendSMS(ctx, user.Telephone, req.Message)
			},
		})
	}

	dispatchID := uuid.NewString()
	outcomes := s.fanOut(ctx, sends)

	for _, o := range outcomes {
		s.publishOutcome(dispatchID, req.UserID, o)
	}

	result := reduceOutcomes(req.UserID, outcomes)
	metrics.DispatchesTotal.WithLabelValues("dispatched").Inc()

	s.logger.Info("dispatch completed",
		"dispatch_id", dispatchID,
		"user_id", req.UserID,
		"channels", len(outcomes),
		"success", result.Success,
	)
	return result, nil
}

// fanOut runs every channel send in its own goroutine and joins them before
// returning, so the caller never observes a partial result. A panicking send
// is folded into a failed outcome for that channel only.
func (s *dispatchService) fanOut(ctx context.Context, sends []channelSend) []notification.Outcome {
	outcomes := make([]notification.Outcome, len(sends))

	var wg sync.WaitGroup
	for i, cs := range sends {
		wg.Add(1)
		go func(i int, cs channelSend) {
			defer wg.Done()
			defer func() {
				if r := recover(); r != nil {
					outcomes[i] = notification.Outcome{
						Channel: cs.channel,
						Detail:  fmt.Sprintf("send panicked: %v", r),
					}
				}
			}()
			outcomes[i] = cs.send(ctx)
		}(i, cs)
	}
	wg.Wait()

	return outcomes
}

// publishOutcome emits the per-channel outcome event consumed by the delivery
// recorder and bumps the channel counter.
func (s *dispatchService) publishOutcome(dispatchID string, userID int, o notification.Outcome) {
	eventType := eventbus.EventChannelSent
	status := storage.DeliveryStatusSent
	if !o.Success {
		eventType = eventbus.EventChannelFailed
		status = storage.DeliveryStatusFailed
	}

	metrics.ChannelSendsTotal.WithLabelValues(string(o.Channel), status).Inc()

	s.bus.Publish(eventType, map[string]string{
		"dispatch_id": dispatchID,
		"user_id":     strconv.Itoa(userID),
		"channel":     string(o.Channel),
		"status":      status,
		"detail":      o.Detail,
	})
}

// reduceOutcomes ORs the per-channel successes into the aggregate result and
// builds a message reporting every issued channel. The empty-outcome case is
// unreachable behind the all-disabled guard but handled anyway.
func reduceOutcomes(userID int, outcomes []notification.Outcome) DispatchResult {
	if len(outcomes) == 0 {
		return DispatchResult{Success: false, Message: "no notifications sent", UserID: userID}
	}

	var successes, failures []string
	anySent := false
	for _, o := range outcomes {
		label := channelLabel(o.Channel)
		if o.Success {
			anySent = true
			successes = append(successes, label+" sent successfully")
		} else {
			failures = append(failures, fmt.Sprintf("%s failed: %s", label, o.Detail))
		}
	}

	var msg string
	switch {
	case anySent && len(failures) > 0:
		msg = strings.Join(successes, "; ") + ". " + strings.Join(failures, "; ")
	case anySent:
		msg = strings.Join(successes, "; ")
	default:
		msg = "Failed to send notification: " + strings.Join(failures, "; ")
	}

	return DispatchResult{Success: anySent, Message: msg, UserID: userID}
}

func channelLabel(ch notification.Channel) string {
	switch ch {
	case notification.ChannelEmail:
		return "Email"
	case notification.ChannelSMS:
		return "SMS"
	}
	return string(ch)
}

func (s *dispatchService) ListDeliveries(ctx context.Context, limit int) ([]storage.DeliveryLogEntry, error) {
	return s.deliveries.ListDeliveries(ctx, limit)
}
