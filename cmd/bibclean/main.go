// Package main provides the bibclean CLI entry point.
package main

import (
	"os"

	"github.com/spf13/cobra"
)

// Version is set at build time via ldflags
var Version = "dev"

// humanOutput controls whether to use human-readable output
var humanOutput bool

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(ExitError)
	}
}

var rootCmd = &cobra.Command{
	Use:   "bibclean",
	Short: "Clean and normalize BibTeX bibliographies",
	Long: `bibclean parses BibTeX files, normalizes @article entries, and emits
a canonical sorted bibliography.

Normalization filters fields to a keep-list, title-cases titles while
protecting configured acronyms, abbreviates journals, canonicalizes page
ranges, annotates missing required fields, and optionally regenerates
citation keys. Entries of other types pass through untouched.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&humanOutput, "human", false, "Use human-readable output instead of JSON")
	rootCmd.Version = Version
}
