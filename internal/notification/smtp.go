package notification

import (
	"context"
	"fmt"

	"github.com/wneessen/go-mail"
)

// SMTPConfig holds connection parameters for direct SMTP email delivery.
type SMTPConfig struct {
	Host       string
	Port       int
	Username   string
	Password   string
	FromAddr   string
	Encryption string // "none", "starttls", "ssl_tls"
}

// SMTPSender delivers email notifications directly over SMTP using the
// go-mail library, bypassing the HTTP relay.
type SMTPSender struct {
	config SMTPConfig
}

// NewSMTPSender creates a new SMTPSender with the given configuration.
func NewSMTPSender(config SMTPConfig) *SMTPSender {
	return &SMTPSender{config: config}
}

// SendEmail delivers message to address using the configured SMTP server.
// Send errors are folded into a failed Outcome.
func (s *SMTPSender) SendEmail(ctx context.Context, address, message string) Outcome {
	if err := s.send(ctx, address, message); err != nil {
		return Outcome{Channel: ChannelEmail, Detail: err.Error()}
	}
	return Outcome{Channel: ChannelEmail, Success: true, Detail: "email delivered via smtp"}
}

func (s *SMTPSender) send(ctx context.Context, address, message string) error {
	m := mail.NewMsg()
	if err := m.From(s.config.FromAddr); err != nil {
		return fmt.Errorf("invalid from address: %w", err)
	}
	if err := m.To(address); err != nil {
		return fmt.Errorf("invalid recipient %q: %w", address, err)
	}

	m.Subject(emailSubject)

	// Plain-text fallback for clients that don't render HTML.
	m.SetBodyString(mail.TypeTextPlain, message)

	if html, err := buildEmailHTML(message); err == nil {
		m.AddAlternativeString(mail.TypeTextHTML, html)
	}

	c, err := mail.NewClient(s.config.Host,
		mail.WithPort(s.config.Port),
		mail.WithSMTPAuth(mail.SMTPAuthPlain),
		mail.WithUsername(s.config.Username),
		mail.WithPassword(s.config.Password),
		mail.WithTLSPolicy(tlsPolicyFromEncryption(s.config.Encryption)),
	)
	if err != nil {
		return fmt.Errorf("failed to create mail client: %w", err)
	}

	return c.DialAndSendWithContext(ctx, m)
}

// tlsPolicyFromEncryption converts the encryption string to a go-mail TLSPolicy.
func tlsPolicyFromEncryption(enc string) mail.TLSPolicy {
	switch enc {
	case "ssl_tls":
		return mail.TLSMandatory
	case "starttls":
		return mail.TLSOpportunistic
	default:
		return mail.NoTLS
	}
}
