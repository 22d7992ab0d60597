// Package notification provides the outbound channel sender abstraction:
// delivery of a message to a single channel (email or SMS) via the external
// notification relay, with an optional direct-SMTP path for email.
package notification

import (
	"context"
	"time"
)

// Channel identifies a notification delivery medium.
type Channel string

const (
	ChannelEmail Channel = "email"
	ChannelSMS   Channel = "sms"
)

// Outcome is the result of a single channel's send attempt. Transport-level
// failures are folded into Success=false with a human-readable Detail; a
// sender never returns a Go error to its caller.
type Outcome struct {
	Channel Channel `json:"channel"`
	Success bool    `json:"success"`
	Detail  string  `json:"detail"`
}

// Sender is the interface for delivering a message over a single channel.
type Sender interface {
	// SendEmail delivers message to the given email address.
	SendEmail(ctx context.Context, address, message string) Outcome
	// SendSMS delivers message to the given phone number.
	SendSMS(ctx context.Context, telephone, message string) Outcome
}

// Config holds the sender construction parameters.
type Config struct {
	// RelayURL is the base URL of the external notification relay.
	RelayURL string
	// Timeout is the per-call timeout. Zero means the 10s default.
	Timeout time.Duration
	// SMTP, when non-nil, routes the email channel directly over SMTP
	// instead of the relay. SMS always goes through the relay.
	SMTP *SMTPConfig
}

// NewSender builds the outbound Sender from config.
func NewSender(cfg Config) Sender {
	relay := NewRelaySender(cfg.RelayURL, cfg.Timeout)
	if cfg.SMTP == nil {
		return relay
	}
	return &splitSender{email: NewSMTPSender(*cfg.SMTP), sms: relay}
}

// splitSender routes email over SMTP and SMS over the HTTP relay.
type splitSender struct {
	email *SMTPSender
	sms   *RelaySender
}

func (s *splitSender) SendEmail(ctx context.Context, address, message string) Outcome {
	return s.email.SendEmail(ctx, address, message)
}

func (s *splitSender) SendSMS(ctx context.Context, telephone, message string) Outcome {
	return s.sms.SendSMS(ctx, telephone, message)
}
