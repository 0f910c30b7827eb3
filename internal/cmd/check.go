package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/oarkflow/mailmerge"
	"github.com/oarkflow/mailmerge/internal/config"
	"github.com/oarkflow/mailmerge/internal/contacts"
	"github.com/oarkflow/mailmerge/internal/render"
	"github.com/oarkflow/mailmerge/internal/signature"
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Validate configuration and inputs without sending",
	Long: `Validate configuration and inputs without sending.

This checks:
  - YAML syntax and include statements
  - That the spreadsheet exists and yields contacts
  - That the template parses
  - That the signature resolves`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		applyFlags(cfg)

		paths := config.DetectPaths()
		opts, err := buildOptions(cfg, paths, true)
		if err != nil {
			return err
		}

		recs, err := contacts.Load(opts.Spreadsheet, opts.Sheet)
		if err != nil {
			return fmt.Errorf("spreadsheet check failed: %w", err)
		}
		fmt.Printf("✓ Spreadsheet %s: %d contact(s)\n", opts.Spreadsheet, len(recs))

		if _, err := render.NewFromFile(opts.Template); err != nil {
			return fmt.Errorf("template check failed: %w", err)
		}
		fmt.Printf("✓ Template %s parses\n", opts.Template)

		if _, err := signature.Resolve(opts.SignatureMode, opts.SignatureDir); err != nil {
			fmt.Printf("! Signature %s not resolved: %v (run would continue without one)\n",
				opts.SignatureMode, err)
		} else {
			fmt.Printf("✓ Signature %s resolves\n", opts.SignatureMode)
		}

		if err := cfg.Validate(true); err != nil {
			fmt.Printf("! SMTP incomplete: %v (dry runs and --display still work)\n", err)
		} else {
			fmt.Println("✓ SMTP configured")
		}
		return nil
	},
}

func init() {
	checkCmd.Flags().StringVarP(&flagSpreadsheet, "spreadsheet", "x", "", "path to the .xlsx contact list")
	checkCmd.Flags().StringVar(&flagSheet, "sheet", "", "worksheet name (default: first sheet)")
	checkCmd.Flags().StringVarP(&flagTemplate, "template", "t", "", "path to the mail template")
	checkCmd.Flags().StringVar(&flagSignature, "signature", "", "signature mode: auto, none, or a signature name")
	checkCmd.Flags().StringVar(&flagSignatureDir, "signature-dir", "", "signature store directory")
}

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize a configuration file and starter template",
	Long: `Initialize a new .mailmerge.yaml configuration file and a starter
mail template that you can customize for your campaign.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		configPath := config.DefaultFile
		if cfgFile != "" {
			configPath = cfgFile
		}

		if _, err := os.Stat(configPath); err == nil {
			return fmt.Errorf("config file already exists: %s", configPath)
		}
		if err := os.WriteFile(configPath, []byte(config.DefaultTemplate()), 0644); err != nil {
			return fmt.Errorf("failed to write config: %w", err)
		}
		fmt.Printf("✓ Created %s\n", configPath)

		if _, err := os.Stat(config.DefaultTemplateSrc); os.IsNotExist(err) {
			if err := os.WriteFile(config.DefaultTemplateSrc, []byte(config.DefaultMailTemplate()), 0644); err != nil {
				return fmt.Errorf("failed to write template: %w", err)
			}
			fmt.Printf("✓ Created %s\n", config.DefaultTemplateSrc)
		}

		fmt.Println("\nEdit these files, then run 'mailmerge send --dry-run' to preview.")
		return nil
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Long:  `Print the version, commit, and build date of Mailmerge.`,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("Mailmerge %s\n", mailmerge.Version)
		if mailmerge.GitCommit != "" {
			fmt.Printf("  commit: %s\n", mailmerge.GitCommit)
		}
		if mailmerge.BuildDate != "" {
			fmt.Printf("  built:  %s\n", mailmerge.BuildDate)
		}
	},
}
