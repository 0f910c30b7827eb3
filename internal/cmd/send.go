package cmd

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/oarkflow/mailmerge/internal/config"
	"github.com/oarkflow/mailmerge/internal/pipeline"
	"github.com/oarkflow/mailmerge/internal/signature"
	"github.com/oarkflow/mailmerge/internal/transport"
)

var (
	flagSpreadsheet  string
	flagSheet        string
	flagSubject      string
	flagTemplate     string
	flagSignature    string
	flagSignatureDir string
	flagOutbox       string
	flagThrottle     string
	flagDryRun       bool
	flagDisplay      bool
)

var sendCmd = &cobra.Command{
	Use:   "send",
	Short: "Render and send one email per spreadsheet row",
	Long: `Render and send one email per spreadsheet row.

For every row with a non-empty Email cell the template is rendered with
the row's fields plus the computed salutation (AnredeBrief), the
signature is spliced in, and the message goes out through SMTP.

A per-row Betreff column overrides the global --subject; --subject may
also name a text file whose contents become the subject line. Rows
without any subject are skipped.

Use --dry-run to print previews instead of sending, or --display to
stage .eml files in the outbox for manual review.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runSend(flagDryRun)
	},
}

var previewCmd = &cobra.Command{
	Use:   "preview",
	Short: "Preview every rendered email without sending",
	Long: `Preview every rendered email without sending.

Equivalent to 'send --dry-run': prints recipient, subject, CC, BCC,
attachment list, and the full rendered HTML for each row.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runSend(true)
	},
}

func init() {
	for _, c := range []*cobra.Command{sendCmd, previewCmd} {
		c.Flags().StringVarP(&flagSpreadsheet, "spreadsheet", "x", "", "path to the .xlsx contact list (default contacts.xlsx next to the binary)")
		c.Flags().StringVar(&flagSheet, "sheet", "", "worksheet name (default: first sheet)")
		c.Flags().StringVarP(&flagSubject, "subject", "s", "", "global subject text, or path to a text file")
		c.Flags().StringVarP(&flagTemplate, "template", "t", "", "path to the HTML or markdown template (default mail_template.html next to the binary)")
		c.Flags().StringVar(&flagSignature, "signature", "", "signature mode: auto, none, or a signature name (default auto)")
		c.Flags().StringVar(&flagSignatureDir, "signature-dir", "", "signature store directory (default: the per-user store)")
		c.Flags().StringVar(&flagThrottle, "throttle", "", "pause between sends, e.g. 300ms or 2s")
	}
	sendCmd.Flags().StringVar(&flagOutbox, "outbox", "", "directory for staged .eml files in display mode")
	sendCmd.Flags().BoolVar(&flagDryRun, "dry-run", false, "print previews instead of sending")
	sendCmd.Flags().BoolVar(&flagDisplay, "display", false, "stage messages for manual review instead of sending")
}

// runSend assembles the run options from config file and flags (flags
// win), builds the transport, and executes the pipeline.
func runSend(dryRun bool) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	applyFlags(cfg)

	paths := config.DetectPaths()
	opts, err := buildOptions(cfg, paths, dryRun)
	if err != nil {
		return err
	}

	log.Debug("Resolved paths",
		"base", paths.BaseDir,
		"cwd", paths.WorkDir,
		"spreadsheet", opts.Spreadsheet,
		"template", opts.Template)

	if _, err := os.Stat(opts.Spreadsheet); err != nil {
		return fmt.Errorf("spreadsheet not found: %s", opts.Spreadsheet)
	}
	if _, err := os.Stat(opts.Template); err != nil {
		return fmt.Errorf("template not found: %s", opts.Template)
	}

	live := !dryRun && !flagDisplay
	if err := cfg.Validate(live); err != nil {
		return err
	}

	p, err := pipeline.New(opts, buildTransport(cfg, paths))
	if err != nil {
		return err
	}

	sum, err := p.Run()
	if err != nil {
		return err
	}
	if !dryRun {
		fmt.Printf("\nDone. Sent: %d, failed: %d\n", sum.Sent, sum.Failed)
	}
	return nil
}

// applyFlags overlays non-empty flag values onto the file configuration.
func applyFlags(cfg *config.Config) {
	if flagSpreadsheet != "" {
		cfg.Spreadsheet = flagSpreadsheet
	}
	if flagSheet != "" {
		cfg.Sheet = flagSheet
	}
	if flagSubject != "" {
		cfg.Subject = flagSubject
	}
	if flagTemplate != "" {
		cfg.Template = flagTemplate
	}
	if flagSignature != "" {
		cfg.Signature.Mode = flagSignature
	}
	if flagSignatureDir != "" {
		cfg.Signature.Dir = flagSignatureDir
	}
	if flagOutbox != "" {
		cfg.Outbox = flagOutbox
	}
	if flagThrottle != "" {
		cfg.Throttle = flagThrottle
	}
}

func buildOptions(cfg *config.Config, paths config.Paths, dryRun bool) (pipeline.Options, error) {
	subject, err := config.ResolveSubject(cfg.Subject)
	if err != nil {
		return pipeline.Options{}, err
	}

	throttle, err := cfg.ThrottleDuration()
	if err != nil {
		return pipeline.Options{}, err
	}

	sigMode := cfg.Signature.Mode
	if sigMode == "" {
		sigMode = signature.ModeAuto
	}
	sigDir := cfg.Signature.Dir
	if sigDir == "" {
		sigDir = signature.DefaultStore()
	}

	return pipeline.Options{
		Spreadsheet:   paths.Resolve(cfg.Spreadsheet, config.DefaultSpreadsheet),
		Sheet:         cfg.Sheet,
		Subject:       subject,
		Template:      paths.Resolve(cfg.Template, config.DefaultTemplateSrc),
		SignatureMode: sigMode,
		SignatureDir:  sigDir,
		DryRun:        dryRun,
		Display:       flagDisplay,
		Throttle:      throttle,
	}, nil
}

// buildTransport picks SMTP when a server is configured and falls back
// to the outbox writer, which can still serve display-only runs.
func buildTransport(cfg *config.Config, paths config.Paths) transport.Transport {
	outbox := transport.NewOutbox(
		paths.Resolve(cfg.Outbox, config.DefaultOutboxDir),
		cfg.SMTP.From, cfg.SMTP.FromName)
	if cfg.SMTP.Host == "" {
		return outbox
	}
	return transport.NewSMTP(transport.SMTPConfig{
		Host:     cfg.SMTP.Host,
		Port:     cfg.SMTP.Port,
		Username: cfg.SMTP.Username,
		Password: cfg.SMTP.Password,
		From:     cfg.SMTP.From,
		FromName: cfg.SMTP.FromName,
	}, outbox)
}
