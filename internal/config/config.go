/*
Package config provides configuration loading and validation for Mailmerge.
*/
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"dario.cat/mergo"
	"gopkg.in/yaml.v3"
)

// DefaultFile is the configuration file looked up when no --config flag
// is given.
const DefaultFile = ".mailmerge.yaml"

// Default input file names, resolved relative to the executable's
// directory when not overridden.
const (
	DefaultSpreadsheet = "contacts.xlsx"
	DefaultTemplateSrc = "mail_template.html"
	DefaultOutboxDir   = "outbox"
)

// DefaultThrottle is the pause between live sends when none is configured.
const DefaultThrottle = 300 * time.Millisecond

// Config represents the complete Mailmerge configuration
type Config struct {
	// Spreadsheet is the path to the .xlsx contact list
	Spreadsheet string `yaml:"spreadsheet,omitempty"`

	// Sheet selects a worksheet by name; empty means the first sheet
	Sheet string `yaml:"sheet,omitempty"`

	// Subject is the global subject: literal text, or a path to a text
	// file whose contents are used
	Subject string `yaml:"subject,omitempty"`

	// Template is the path to the HTML or markdown mail template
	Template string `yaml:"template,omitempty"`

	// Signature configuration
	Signature Signature `yaml:"signature,omitempty"`

	// SMTP connection settings for live sends
	SMTP SMTP `yaml:"smtp,omitempty"`

	// Outbox is the directory receiving .eml files in display mode
	Outbox string `yaml:"outbox,omitempty"`

	// Throttle is the pause between sends as a duration string ("300ms")
	Throttle string `yaml:"throttle,omitempty"`

	// Include other configuration files
	Includes []string `yaml:"includes,omitempty"`
}

// Signature selects which signature fragment to use.
type Signature struct {
	// Mode is "auto", "none", or an explicit signature name
	Mode string `yaml:"mode,omitempty"`

	// Dir overrides the per-user signature store directory
	Dir string `yaml:"dir,omitempty"`
}

// SMTP holds the mail server settings.
type SMTP struct {
	Host     string `yaml:"host,omitempty"`
	Port     int    `yaml:"port,omitempty"`
	Username string `yaml:"username,omitempty"`
	Password string `yaml:"password,omitempty"`
	From     string `yaml:"from,omitempty"`
	FromName string `yaml:"from_name,omitempty"`
}

// Load loads configuration from a file
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	// Expand environment variables
	data = []byte(os.ExpandEnv(string(data)))

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	// Process includes
	baseDir := filepath.Dir(path)
	for _, include := range cfg.Includes {
		includePath := include
		if !filepath.IsAbs(includePath) {
			includePath = filepath.Join(baseDir, include)
		}

		// Support glob patterns
		matches, err := filepath.Glob(includePath)
		if err != nil {
			return nil, fmt.Errorf("invalid include pattern %s: %w", include, err)
		}

		for _, match := range matches {
			includeCfg, err := Load(match)
			if err != nil {
				return nil, fmt.Errorf("failed to load include %s: %w", match, err)
			}

			if err := mergo.Merge(&cfg, includeCfg); err != nil {
				return nil, fmt.Errorf("failed to merge include %s: %w", match, err)
			}
		}
	}

	return &cfg, nil
}

// ThrottleDuration parses the configured throttle, falling back to the
// default when unset.
func (c *Config) ThrottleDuration() (time.Duration, error) {
	if c.Throttle == "" {
		return DefaultThrottle, nil
	}
	d, err := time.ParseDuration(c.Throttle)
	if err != nil {
		return 0, fmt.Errorf("invalid throttle %q: %w", c.Throttle, err)
	}
	if d < 0 {
		return 0, fmt.Errorf("invalid throttle %q: must not be negative", c.Throttle)
	}
	return d, nil
}

// Validate checks that the configuration can support a run. Live sends
// need a complete SMTP section; dry runs and outbox-only runs do not.
func (c *Config) Validate(live bool) error {
	if !live {
		return nil
	}
	if c.SMTP.Host == "" {
		return fmt.Errorf("smtp.host is required for live sends")
	}
	if c.SMTP.From == "" {
		return fmt.Errorf("smtp.from is required for live sends")
	}
	return nil
}

// ResolveSubject returns the global subject. When arg names an existing
// regular file its trimmed contents are used, otherwise arg itself is the
// subject.
func ResolveSubject(arg string) (string, error) {
	if arg == "" {
		return "", nil
	}
	if info, err := os.Stat(arg); err == nil && info.Mode().IsRegular() {
		data, err := os.ReadFile(arg)
		if err != nil {
			return "", fmt.Errorf("failed to read subject file: %w", err)
		}
		return strings.TrimSpace(string(data)), nil
	}
	return strings.TrimSpace(arg), nil
}

// DefaultTemplate returns the default configuration template
func DefaultTemplate() string {
	return `# Mailmerge configuration file
# See https://github.com/oarkflow/mailmerge for documentation

spreadsheet: contacts.xlsx
# sheet: Kunden

# Literal text, or a path to a text file with the subject line.
# A per-row "Betreff" column overrides this.
subject: ""

template: mail_template.html

signature:
  mode: auto # auto, none, or an explicit signature name
  # dir: /path/to/signature/store

smtp:
  host: smtp.example.com
  port: 587
  username: ${SMTP_USER}
  password: ${SMTP_PASSWORD}
  from: you@example.com
  from_name: Your Name

outbox: outbox
throttle: 300ms
`
}

// DefaultMailTemplate returns the starter HTML mail template.
func DefaultMailTemplate() string {
	return `<html>
<body>
<p>{{.AnredeBrief}},</p>

<p>hier könnte Ihre Nachricht stehen.</p>

<p>Mit freundlichen Grüßen</p>
<!--SIGNATURE-->
</body>
</html>
`
}
