/*
Package render expands the mail template against per-row context data and
splices in the signature fragment.
*/
package render

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"text/template"

	"github.com/yuin/goldmark"
)

// SignatureMarker is the literal token a template places where the
// signature should be inserted.
const SignatureMarker = "<!--SIGNATURE-->"

var markerRe = regexp.MustCompile(`(?i)<!--signature-->`)

// Renderer holds a parsed mail template. The template source is read and
// parsed once per run; Render is then a pure function of its inputs.
type Renderer struct {
	tmpl     *template.Template
	markdown bool
}

// New parses template text. When markdown is set, the expanded output is
// converted to HTML before the signature is spliced in.
func New(name, text string, markdown bool) (*Renderer, error) {
	tmpl, err := template.New(name).
		Funcs(templateFuncs()).
		Option("missingkey=zero").
		Parse(text)
	if err != nil {
		return nil, fmt.Errorf("failed to parse template: %w", err)
	}
	return &Renderer{tmpl: tmpl, markdown: markdown}, nil
}

// NewFromFile reads and parses the template at path. Files with a .md
// extension are treated as markdown sources.
func NewFromFile(path string) (*Renderer, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read template: %w", err)
	}
	markdown := strings.EqualFold(filepath.Ext(path), ".md")
	return New(filepath.Base(path), string(data), markdown)
}

// Render expands the template with the given context and splices in the
// signature. Context variables the template references but the row does
// not supply render as empty strings, so sparse spreadsheets never fail a
// row.
//
// A non-empty signature replaces the first occurrence of the signature
// marker, matched case-insensitively; without a marker it is appended
// after a line break.
func (r *Renderer) Render(ctx map[string]string, signature string) (string, error) {
	var buf bytes.Buffer
	if err := r.tmpl.Execute(&buf, ctx); err != nil {
		return "", fmt.Errorf("failed to render template: %w", err)
	}

	html := buf.String()
	if r.markdown {
		var converted bytes.Buffer
		if err := goldmark.Convert(buf.Bytes(), &converted); err != nil {
			return "", fmt.Errorf("failed to convert markdown: %w", err)
		}
		html = converted.String()
	}

	if signature != "" {
		if loc := markerRe.FindStringIndex(html); loc != nil {
			html = html[:loc[0]] + signature + html[loc[1]:]
		} else {
			html += "<br>" + signature
		}
	}
	return html, nil
}

// templateFuncs returns common template functions
func templateFuncs() template.FuncMap {
	return template.FuncMap{
		"replace":    strings.ReplaceAll,
		"tolower":    strings.ToLower,
		"toupper":    strings.ToUpper,
		"trim":       strings.TrimSpace,
		"trimprefix": strings.TrimPrefix,
		"trimsuffix": strings.TrimSuffix,
		"contains":   strings.Contains,
		"hasprefix":  strings.HasPrefix,
		"hassuffix":  strings.HasSuffix,
		"env":        os.Getenv,
		"default": func(def, val string) string {
			if val == "" {
				return def
			}
			return val
		},
	}
}
