/*
Package cmd provides the CLI commands for Mailmerge.
*/
package cmd

import (
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/oarkflow/mailmerge/internal/config"
)

var (
	cfgFile string
	verbose bool
	debug   bool
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "mailmerge",
	Short: "Send personalized HTML emails from a spreadsheet",
	Long: `Mailmerge reads an .xlsx contact list, renders a personalized HTML
email per row, and sends each message through an SMTP server or stages
it for manual review.

Recognized spreadsheet columns (case-insensitive): Email (required),
Anrede, Vorname, Nachname, Firma, Titel, Betreff, CC, BCC, AnhangPfad.
Every other column is available to the template under its lowercase name.

Example:
  mailmerge send -x contacts.xlsx -s "Einladung"   # send to every row
  mailmerge send --dry-run                         # preview without sending
  mailmerge send --display                         # stage .eml files for review
  mailmerge check                                  # validate inputs only`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initLogging)

	// Global flags
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file (default is .mailmerge.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug output")

	// Add subcommands
	rootCmd.AddCommand(sendCmd)
	rootCmd.AddCommand(previewCmd)
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(versionCmd)
}

func initLogging() {
	if debug {
		log.SetLevel(log.DebugLevel)
	} else if verbose {
		log.SetLevel(log.InfoLevel)
	} else {
		log.SetLevel(log.WarnLevel)
	}
}

// loadConfig reads the configuration file. An explicitly flagged file
// must exist; the default file is optional.
func loadConfig() (*config.Config, error) {
	path := cfgFile
	if path == "" {
		if _, err := os.Stat(config.DefaultFile); err != nil {
			return &config.Config{}, nil
		}
		path = config.DefaultFile
	}
	return config.Load(path)
}
