package mailer

import (
	"github.com/JSebastianB25/Web-Project/internal/config"

	"gopkg.in/gomail.v2"
)

// Mailer sends messages through the configured SMTP server.
type Mailer struct {
	cfg config.SMTPConfig
}

// NewMailer creates a Mailer for the given SMTP configuration
func NewMailer(cfg config.SMTPConfig) *Mailer {
	return &Mailer{cfg: cfg}
}

// Send delivers a plain-text message with an optional file attachment.
// Delivery is synchronous; the caller owns the attachment file.
func (m *Mailer) Send(to, subject, body, attachmentPath string) error {
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.cfg.From)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/plain", body)
	if attachmentPath != "" {
		msg.Attach(attachmentPath)
	}

	dialer := gomail.NewDialer(m.cfg.Host, m.cfg.Port, m.cfg.Username, m.cfg.Password)
	return dialer.DialAndSend(msg)
}
