// Package mailer sends transactional mail over SMTP.
package mailer

import (
	"fmt"

	"github.com/fintrack-app/backend/internal/config"
	"github.com/wneessen/go-mail"
)

// Sender sends mail through the configured SMTP server.
type Sender struct {
	client *mail.Client
	from   string
}

// New returns a Sender for the SMTP settings in the configuration.
func New(cfg config.Config) (*Sender, error) {
	opts := []mail.Option{
		mail.WithPort(cfg.SMTPPort),
		mail.WithSMTPAuth(mail.SMTPAuthPlain),
		mail.WithUsername(cfg.SMTPUser),
		mail.WithPassword(cfg.SMTPPass),
	}

	// Implicit TLS on the SMTPS port, STARTTLS everywhere else
	if cfg.SMTPPort == 465 {
		opts = append(opts, mail.WithSSL())
	}

	client, err := mail.NewClient(cfg.SMTPHost, opts...)
	if err != nil {
		return nil, fmt.Errorf("configuring SMTP client failed: %w", err)
	}

	from := cfg.SMTPFrom
	if from == "" {
		from = cfg.SMTPUser
	}

	return &Sender{client: client, from: from}, nil
}

// SendPasswordReset mails a password reset link to the given address.
func (s *Sender) SendPasswordReset(to, link string) error {
	msg := mail.NewMsg()
	if err := msg.From(s.from); err != nil {
		return err
	}
	if err := msg.To(to); err != nil {
		return err
	}

	msg.Subject("Reset your password")
	msg.SetBodyString(mail.TypeTextHTML, fmt.Sprintf(
		"<p>Click the link to reset your password:</p><p><a href=%q>%s</a></p>", link, link))

	return s.client.DialAndSend(msg)
}

// SendTest sends a test mail to the sender's own address to verify the SMTP
// configuration.
func (s *Sender) SendTest() error {
	msg := mail.NewMsg()
	if err := msg.From(s.from); err != nil {
		return err
	}
	if err := msg.To(s.from); err != nil {
		return err
	}

	msg.Subject("SMTP test")
	msg.SetBodyString(mail.TypeTextPlain, "This is a test email from your backend SMTP configuration.")

	return s.client.DialAndSend(msg)
}
