package mailer

import (
	"fmt"

	gomail "gopkg.in/gomail.v2"
)

// SMTPConfig holds SMTP transport settings.
type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

// SMTPTransport delivers messages over SMTP using gomail.
type SMTPTransport struct {
	cfg SMTPConfig
}

// NewSMTPTransport creates an SMTP transport. The connection is dialed per
// message; delivery volume here does not justify a held-open connection.
func NewSMTPTransport(cfg SMTPConfig) (*SMTPTransport, error) {
	if cfg.Host == "" {
		return nil, fmt.Errorf("mailer: SMTP host is required")
	}
	if cfg.From == "" {
		return nil, fmt.Errorf("mailer: sender address is required")
	}
	return &SMTPTransport{cfg: cfg}, nil
}

// Send delivers a single message.
func (t *SMTPTransport) Send(msg Message) error {
	m := gomail.NewMessage()
	m.SetHeader("From", t.cfg.From)
	m.SetHeader("To", msg.To)
	m.SetHeader("Subject", msg.Subject)
	if msg.Text != "" {
		m.SetBody("text/plain", msg.Text)
	}
	if msg.HTML != "" {
		if msg.Text != "" {
			m.AddAlternative("text/html", msg.HTML)
		} else {
			m.SetBody("text/html", msg.HTML)
		}
	}

	dialer := gomail.NewDialer(t.cfg.Host, t.cfg.Port, t.cfg.Username, t.cfg.Password)
	if err := dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send mail to %s: %w", msg.To, err)
	}
	return nil
}
