package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/matsen/bibclean/internal/abbrev"
	"github.com/matsen/bibclean/internal/bibtex"
	"github.com/matsen/bibclean/internal/config"
)

var (
	cleanKeep        string
	cleanNoTitlecase bool
	cleanRegenKeys   bool
	cleanConfigPath  string
	cleanAbbrevDB    string
)

func init() {
	// Load .env file if present (for BIBCLEAN_CONFIG, BIBCLEAN_ABBREV_DB)
	_ = godotenv.Load()

	cleanCmd.Flags().StringVar(&cleanKeep, "keep", "", "Comma-separated keep-list overriding the profile")
	cleanCmd.Flags().BoolVar(&cleanNoTitlecase, "no-titlecase", false, "Disable title casing")
	cleanCmd.Flags().BoolVar(&cleanRegenKeys, "regen-keys", false, "Regenerate citation keys")
	cleanCmd.Flags().StringVar(&cleanConfigPath, "config", "", "Profile path (default: $XDG_CONFIG_HOME/bibclean/config.yml)")
	cleanCmd.Flags().StringVar(&cleanAbbrevDB, "abbrev-db", "", "Journal abbreviation database path")
	rootCmd.AddCommand(cleanCmd)
}

var cleanCmd = &cobra.Command{
	Use:   "clean [infile] [outfile]",
	Short: "Clean a BibTeX file",
	Long: `Clean a BibTeX file and write the normalized result.

Reads from stdin when infile is "-" or omitted; writes to stdout when
outfile is "-" or omitted. Output is always BibTeX text, never JSON.

Examples:
  bibclean clean refs.bib
  bibclean clean refs.bib cleaned.bib
  bibclean clean --regen-keys --keep author,title,journal,year < refs.bib`,
	Args: cobra.MaximumNArgs(2),
	RunE: runClean,
}

func runClean(cmd *cobra.Command, args []string) error {
	opts := loadOptions(cmd)

	input, err := readInput(args)
	if err != nil {
		exitWithError(ExitDataError, "reading input: %v", err)
	}

	output := bibtex.Clean(input, opts)

	if err := writeOutput(args, output); err != nil {
		exitWithError(ExitError, "writing output: %v", err)
	}
	return nil
}

// loadOptions builds cleaning options from the profile, the abbreviation
// database, and command-line overrides, in increasing precedence.
func loadOptions(cmd *cobra.Command) bibtex.Options {
	configPath := cleanConfigPath
	if configPath == "" {
		configPath = os.Getenv("BIBCLEAN_CONFIG")
	}
	if configPath == "" {
		configPath = config.DefaultPath()
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		exitWithError(ExitConfigError, "%v", err)
	}
	opts := cfg.Options()

	if m := loadAbbrevMap(cfg); m != nil {
		opts.JournalAbbrev = m
	}

	if cleanKeep != "" {
		var keep []string
		for _, f := range strings.Split(cleanKeep, ",") {
			if f = strings.TrimSpace(f); f != "" {
				keep = append(keep, f)
			}
		}
		if len(keep) == 0 {
			exitWithError(ExitError, "--keep must name at least one field")
		}
		opts.KeepFields = keep
	}
	if cleanNoTitlecase {
		opts.Titlecase = false
	}
	if cleanRegenKeys {
		opts.RegenKeys = true
	}
	return opts
}

// loadAbbrevMap merges stored abbreviations with the profile's inline ones;
// inline entries win. Returns nil when neither source has mappings.
func loadAbbrevMap(cfg *config.Config) map[string]string {
	dbPath := cleanAbbrevDB
	if dbPath == "" {
		dbPath = os.Getenv("BIBCLEAN_ABBREV_DB")
	}
	if dbPath == "" {
		if len(cfg.JournalAbbrev) > 0 {
			return cfg.JournalAbbrev
		}
		return nil
	}

	store, err := abbrev.Open(dbPath)
	if err != nil {
		exitWithError(ExitConfigError, "opening abbreviation database: %v", err)
	}
	defer store.Close()

	merged, err := store.Map()
	if err != nil {
		exitWithError(ExitError, "loading abbreviations: %v", err)
	}
	for journal, ab := range cfg.JournalAbbrev {
		merged[journal] = ab
	}
	if len(merged) == 0 {
		return nil
	}
	return merged
}

func readInput(args []string) (string, error) {
	if len(args) == 0 || args[0] == "-" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", fmt.Errorf("reading stdin: %w", err)
		}
		return string(data), nil
	}

	data, err := os.ReadFile(args[0])
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func writeOutput(args []string, output string) error {
	if len(args) < 2 || args[1] == "-" {
		_, err := fmt.Print(output)
		return err
	}
	return os.WriteFile(args[1], []byte(output), 0644)
}
