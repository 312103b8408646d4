// Package cli implements the cobra command tree for the corpora CLI.
package cli

import (
	"github.com/spf13/cobra"

	"github.com/custodia-labs/corpora-cli/internal/logger"
)

// version is set at build time via -ldflags.
var version = "dev"

var verbose bool

var rootCmd = &cobra.Command{
	Use:   "corpora",
	Short: "Assemble a text corpus from folders of mixed-format documents",
	Long: `Corpora ingests a tree of document files (txt, docx, odt, pdf, xml)
from a local directory or a remote file listing, converts each file to
plain text, and assembles the results into a single tabular corpus with
per-document metadata joined from sidecar csv/yaml files.`,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logger.SetVerbose(verbose)
	},
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
