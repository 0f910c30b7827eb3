/*
Package transport delivers assembled messages.

The pipeline only talks to the Transport interface, so the real SMTP
sender can be swapped for the outbox writer (manual review) or a test
double.
*/
package transport

import "github.com/oarkflow/mailmerge/internal/message"

// Transport is the mail delivery capability injected into the pipeline.
type Transport interface {
	// Send dispatches the message immediately.
	Send(msg *message.Outgoing) error

	// Display hands the message over for manual review instead of
	// sending it.
	Display(msg *message.Outgoing) error
}
