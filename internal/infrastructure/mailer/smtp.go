package mailer

import (
	"context"
	"fmt"

	gomail "gopkg.in/gomail.v2"

	"github.com/fieldserve/backend/internal/infrastructure/config"
)

// SMTPMailer delivers activation emails over SMTP
type SMTPMailer struct {
	dialer *gomail.Dialer
	from   string
}

// NewSMTPMailer creates a new SMTPMailer from mail configuration
func NewSMTPMailer(cfg config.MailConfig) *SMTPMailer {
	return &SMTPMailer{
		dialer: gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password),
		from:   cfg.From,
	}
}

// SendActivationEmail sends the account activation message carrying
// the recovery link. The context is honored before dialing; gomail
// itself has no context support.
func (m *SMTPMailer) SendActivationEmail(ctx context.Context, to, recoveryLink string) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", "Activate your account")
	msg.SetBody("text/plain", fmt.Sprintf(
		"Welcome!\n\nYour account has been created. Use the link below to set your password and activate it:\n\n%s\n\nIf you did not expect this email you can safely ignore it.\n",
		recoveryLink,
	))
	msg.AddAlternative("text/html", fmt.Sprintf(
		"<p>Welcome!</p><p>Your account has been created. Use the link below to set your password and activate it:</p><p><a href=%q>Activate account</a></p><p>If you did not expect this email you can safely ignore it.</p>",
		recoveryLink,
	))

	if err := m.dialer.DialAndSend(msg); err != nil {
		return fmt.Errorf("failed to send activation email: %w", err)
	}
	return nil
}
