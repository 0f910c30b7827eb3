/*
Package pipeline provides the mail dispatch loop for Mailmerge.

The pipeline loads the contact list, template, and signature once, then
walks the rows in spreadsheet order: compute the effective subject, build
the render context, render the HTML body, and either print a preview (dry
run) or hand the message to the transport. Rows are independent; a failed
row is counted and the batch continues.
*/
package pipeline

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/oarkflow/mailmerge/internal/contacts"
	"github.com/oarkflow/mailmerge/internal/greeting"
	"github.com/oarkflow/mailmerge/internal/message"
	"github.com/oarkflow/mailmerge/internal/render"
	"github.com/oarkflow/mailmerge/internal/signature"
	"github.com/oarkflow/mailmerge/internal/transport"
)

// Options contains the resolved inputs for one run.
type Options struct {
	Spreadsheet   string
	Sheet         string
	Subject       string // global subject, already resolved from text or file
	Template      string
	SignatureMode string
	SignatureDir  string
	DryRun        bool
	Display       bool
	Throttle      time.Duration

	// Out receives dry-run previews; defaults to stdout.
	Out io.Writer
}

// Summary tallies the outcome of a run.
type Summary struct {
	Sent   int
	Failed int
	Total  int
}

// Pipeline executes the dispatch loop over a loaded contact list.
type Pipeline struct {
	opts      Options
	transport transport.Transport
	renderer  *render.Renderer
	contacts  []contacts.Record
	signature string
}

// New loads all run-level inputs: the contact list, the template, and the
// signature fragment. Spreadsheet-shape problems are fatal here; a
// signature that cannot be resolved degrades to a warning and an empty
// fragment.
func New(opts Options, t transport.Transport) (*Pipeline, error) {
	if opts.Out == nil {
		opts.Out = os.Stdout
	}

	recs, err := contacts.Load(opts.Spreadsheet, opts.Sheet)
	if err != nil {
		return nil, err
	}

	renderer, err := render.NewFromFile(opts.Template)
	if err != nil {
		return nil, err
	}

	sig, err := signature.Resolve(opts.SignatureMode, opts.SignatureDir)
	if err != nil {
		log.Warn("Signature not resolved, continuing without one",
			"mode", opts.SignatureMode, "error", err)
		sig = ""
	}

	log.Info("Inputs loaded",
		"contacts", len(recs),
		"template", opts.Template,
		"signature", opts.SignatureMode,
		"dry-run", opts.DryRun)

	return &Pipeline{
		opts:      opts,
		transport: t,
		renderer:  renderer,
		contacts:  recs,
		signature: sig,
	}, nil
}

// Contacts returns the number of loaded recipients.
func (p *Pipeline) Contacts() int {
	return len(p.contacts)
}

// Run processes every contact in order and returns the tally. Only setup
// problems surface as an error; per-row failures are isolated, warned
// about, and counted.
func (p *Pipeline) Run() (Summary, error) {
	sum := Summary{Total: len(p.contacts)}

	for i, rec := range p.contacts {
		email := rec["email"]

		// Per-row subject beats the global one. A subject-less row is
		// only acceptable in a dry run.
		subject := strings.TrimSpace(rec["betreff"])
		if subject == "" {
			subject = p.opts.Subject
		}
		if subject == "" && !p.opts.DryRun {
			log.Warn("No subject, skipping row",
				"recipient", email, "row", i+1)
			sum.Failed++
			continue
		}

		html, err := p.renderer.Render(p.context(rec), p.signature)
		if err != nil {
			log.Warn("Render failed, skipping row",
				"recipient", email, "row", i+1, "error", err)
			sum.Failed++
			continue
		}

		cc := message.SplitList(rec["cc"])
		bcc := message.SplitList(rec["bcc"])
		attachRaw := rec["anhangpfad"]
		if attachRaw == "" {
			attachRaw = rec["anhang"]
		}
		attachments := message.SplitList(attachRaw)

		if p.opts.DryRun {
			p.preview(i+1, email, subject, cc, bcc, attachments, html)
			continue
		}

		msg := &message.Outgoing{
			To:          email,
			Subject:     subject,
			HTML:        html,
			CC:          cc,
			BCC:         bcc,
			Attachments: message.FilterAttachments(attachments),
		}

		if p.opts.Display {
			err = p.transport.Display(msg)
		} else {
			err = p.transport.Send(msg)
		}
		if err != nil {
			sum.Failed++
			log.Error("Send failed", "recipient", email, "error", err)
		} else {
			sum.Sent++
			log.Info("Sent", "recipient", email,
				"progress", fmt.Sprintf("%d/%d", i+1, len(p.contacts)))
		}

		// Throttle after every attempt, success or not.
		time.Sleep(p.opts.Throttle)
	}

	return sum, nil
}

// context builds the template data for one row: the canonical fields, the
// computed salutation, and every remaining spreadsheet column under its
// lowercase name. Raw columns never overwrite computed fields.
func (p *Pipeline) context(rec contacts.Record) map[string]string {
	ctx := map[string]string{
		"Email":    rec["email"],
		"Anrede":   rec["anrede"],
		"Vorname":  rec["vorname"],
		"Nachname": rec["nachname"],
		"Firma":    rec["firma"],
		"Titel":    rec["titel"],
	}
	ctx["AnredeBrief"] = greeting.Formal(
		ctx["Anrede"], ctx["Titel"], ctx["Vorname"], ctx["Nachname"])

	reserved := make(map[string]bool, len(ctx))
	for k := range ctx {
		reserved[strings.ToLower(k)] = true
	}
	for k, v := range rec {
		if !reserved[k] {
			ctx[k] = v
		}
	}
	return ctx
}

// preview prints the dry-run block for one row.
func (p *Pipeline) preview(n int, email, subject string, cc, bcc, attachments []string, html string) {
	if subject == "" {
		subject = "(leer)"
	}
	fmt.Fprintf(p.opts.Out,
		"\n--- DRY RUN #%d ---\nTO: %s\nSUBJECT: %s\nCC: %s\nBCC: %s\nATTACHMENTS: %s\nHTML:\n%s\n",
		n, email, subject,
		strings.Join(cc, ", "),
		strings.Join(bcc, ", "),
		strings.Join(attachments, ", "),
		html)
}
