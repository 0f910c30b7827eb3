package transport

import (
	"fmt"

	"gopkg.in/gomail.v2"

	"github.com/oarkflow/mailmerge/internal/message"
)

// SMTPConfig holds the connection settings for the live sender.
type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
	FromName string
}

// SMTP sends messages through an SMTP server.
type SMTP struct {
	cfg    SMTPConfig
	outbox *Outbox
}

// NewSMTP creates the live transport. The outbox receives messages when
// Display is requested instead of an immediate send.
func NewSMTP(cfg SMTPConfig, outbox *Outbox) *SMTP {
	if cfg.Port == 0 {
		cfg.Port = 587
	}
	return &SMTP{cfg: cfg, outbox: outbox}
}

// Send composes and dispatches the message, blocking until the server
// has accepted it.
func (s *SMTP) Send(msg *message.Outgoing) error {
	m := compose(s.cfg.From, s.cfg.FromName, msg)
	dialer := gomail.NewDialer(s.cfg.Host, s.cfg.Port, s.cfg.Username, s.cfg.Password)
	if err := dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("smtp send to %s failed: %w", msg.To, err)
	}
	return nil
}

// Display writes the message to the outbox for manual review.
func (s *SMTP) Display(msg *message.Outgoing) error {
	return s.outbox.Display(msg)
}

// compose maps an Outgoing onto a gomail message.
func compose(from, fromName string, msg *message.Outgoing) *gomail.Message {
	m := gomail.NewMessage()
	if fromName != "" {
		m.SetAddressHeader("From", from, fromName)
	} else if from != "" {
		m.SetHeader("From", from)
	}
	m.SetHeader("To", msg.To)
	if len(msg.CC) > 0 {
		m.SetHeader("Cc", msg.CC...)
	}
	if len(msg.BCC) > 0 {
		m.SetHeader("Bcc", msg.BCC...)
	}
	m.SetHeader("Subject", msg.Subject)
	m.SetBody("text/html", msg.HTML)
	for _, a := range msg.Attachments {
		m.Attach(a)
	}
	return m
}
