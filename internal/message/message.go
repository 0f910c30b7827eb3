/*
Package message defines the outgoing mail model shared by the renderer,
the transports, and the dispatch pipeline.
*/
package message

import (
	"os"
	"strings"

	"github.com/charmbracelet/log"
)

// Outgoing is one fully assembled mail, ready for a transport.
type Outgoing struct {
	// To is the recipient address
	To string

	// Subject line of the mail
	Subject string

	// HTML is the rendered body, signature included
	HTML string

	// CC addresses
	CC []string

	// BCC addresses
	BCC []string

	// Attachments are paths of files to attach
	Attachments []string
}

// SplitList splits a spreadsheet list field (CC, BCC, attachment paths)
// on commas or semicolons, trims each piece, and drops empty pieces.
func SplitList(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	parts := strings.FieldsFunc(s, func(r rune) bool {
		return r == ',' || r == ';'
	})
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

// FilterAttachments keeps only paths that resolve to existing regular
// files. Missing attachments are skipped with a warning, never fatal.
func FilterAttachments(paths []string) []string {
	var out []string
	for _, p := range paths {
		info, err := os.Stat(p)
		if err != nil || !info.Mode().IsRegular() {
			log.Warn("Attachment not found, skipping", "path", p)
			continue
		}
		out = append(out, p)
	}
	return out
}
