package transport

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/oarkflow/mailmerge/internal/message"
)

// Outbox serializes messages as .eml files into a review directory. It
// is both the Display target of the SMTP transport and a standalone
// Transport for runs that only stage messages.
type Outbox struct {
	dir      string
	from     string
	fromName string
	seq      int
}

// NewOutbox creates an outbox writing into dir. The directory is created
// on first use.
func NewOutbox(dir, from, fromName string) *Outbox {
	return &Outbox{dir: dir, from: from, fromName: fromName}
}

// Send stages the message like Display; an outbox never dispatches mail.
func (o *Outbox) Send(msg *message.Outgoing) error {
	return o.Display(msg)
}

// Display writes the message as an RFC 822 file for manual review.
func (o *Outbox) Display(msg *message.Outgoing) error {
	if err := os.MkdirAll(o.dir, 0755); err != nil {
		return fmt.Errorf("failed to create outbox directory: %w", err)
	}

	o.seq++
	path := filepath.Join(o.dir, fmt.Sprintf("%03d_%s.eml", o.seq, sanitize(msg.To)))
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create outbox file: %w", err)
	}
	defer f.Close()

	if _, err := compose(o.from, o.fromName, msg).WriteTo(f); err != nil {
		return fmt.Errorf("failed to write message to %s: %w", path, err)
	}
	log.Info("Message staged for review", "file", path)
	return nil
}

// sanitize turns a recipient address into a safe filename fragment.
func sanitize(s string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			return r
		case r == '.', r == '-', r == '_', r == '@':
			return r
		}
		return '_'
	}, s)
}
