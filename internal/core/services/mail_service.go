package services

import (
	"fmt"
	"log"
	"net/smtp"
	"strings"

	"github.com/RookieJoel/Roomly-Hotel-booking/internal/config"
)

// Mailer delivers outbound mail
type Mailer interface {
	Send(to, subject, html string) error
}

// SMTPMailer sends mail over plain SMTP. When no host is configured the mailer
// is disabled and Send becomes a logged no-op, so local development works
// without a mail account.
type SMTPMailer struct {
	cfg     config.SMTPConfig
	enabled bool
}

// NewSMTPMailer creates a new SMTP mailer
func NewSMTPMailer(cfg config.SMTPConfig) *SMTPMailer {
	return &SMTPMailer{cfg: cfg, enabled: cfg.Host != ""}
}

// Send sends an HTML mail to a single recipient
func (m *SMTPMailer) Send(to, subject, html string) error {
	if !m.enabled {
		log.Printf("📭 SMTP disabled, skipping mail to %s (%s)", to, subject)
		return nil
	}

	from := fmt.Sprintf("%s <%s>", m.cfg.FromName, m.cfg.FromEmail)
	msg := strings.Join([]string{
		"From: " + from,
		"To: " + to,
		"Subject: " + subject,
		"MIME-Version: 1.0",
		`Content-Type: text/html; charset="UTF-8"`,
		"",
		html,
	}, "\r\n")

	addr := m.cfg.Host + ":" + m.cfg.Port
	auth := smtp.PlainAuth("", m.cfg.Email, m.cfg.Password, m.cfg.Host)

	if err := smtp.SendMail(addr, auth, m.cfg.FromEmail, []string{to}, []byte(msg)); err != nil {
		return fmt.Errorf("smtp send: %w", err)
	}
	return nil
}
