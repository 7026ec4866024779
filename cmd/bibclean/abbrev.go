package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/matsen/bibclean/internal/abbrev"
)

var abbrevDBPath string

func init() {
	abbrevCmd.PersistentFlags().StringVar(&abbrevDBPath, "db", "", "Abbreviation database path (default: $BIBCLEAN_ABBREV_DB)")
	abbrevCmd.AddCommand(abbrevSetCmd)
	abbrevCmd.AddCommand(abbrevGetCmd)
	abbrevCmd.AddCommand(abbrevRmCmd)
	abbrevCmd.AddCommand(abbrevListCmd)
	abbrevCmd.AddCommand(abbrevImportCmd)
	rootCmd.AddCommand(abbrevCmd)
}

var abbrevCmd = &cobra.Command{
	Use:   "abbrev",
	Short: "Manage journal abbreviations",
	Long: `Manage the journal abbreviation database used by clean and serve.

Abbreviations replace journal names on exact, case-sensitive match.

Examples:
  bibclean abbrev set "Nature Chemistry" "Nat. Chem."
  bibclean abbrev list
  bibclean abbrev import journals.yml`,
}

// openAbbrevStore opens the database named by --db or BIBCLEAN_ABBREV_DB.
func openAbbrevStore() *abbrev.Store {
	path := abbrevDBPath
	if path == "" {
		path = os.Getenv("BIBCLEAN_ABBREV_DB")
	}
	if path == "" {
		exitWithError(ExitConfigError, "no abbreviation database: pass --db or set BIBCLEAN_ABBREV_DB")
	}

	store, err := abbrev.Open(path)
	if err != nil {
		exitWithError(ExitConfigError, "opening abbreviation database: %v", err)
	}
	return store
}

var abbrevSetCmd = &cobra.Command{
	Use:   "set <journal> <abbreviation>",
	Short: "Add or update an abbreviation",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		store := openAbbrevStore()
		defer store.Close()

		if err := store.Set(args[0], args[1]); err != nil {
			exitWithError(ExitError, "%v", err)
		}

		if humanOutput {
			fmt.Printf("%s -> %s\n", args[0], args[1])
		} else {
			outputJSON(StatusResponse{Status: "set", Journal: args[0], Abbrev: args[1]})
		}
		return nil
	},
}

var abbrevGetCmd = &cobra.Command{
	Use:   "get <journal>",
	Short: "Look up an abbreviation",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store := openAbbrevStore()
		defer store.Close()

		ab, ok, err := store.Get(args[0])
		if err != nil {
			exitWithError(ExitError, "%v", err)
		}
		if !ok {
			exitWithError(ExitDataError, "no abbreviation for %q", args[0])
		}

		if humanOutput {
			fmt.Println(ab)
		} else {
			outputJSON(StatusResponse{Status: "found", Journal: args[0], Abbrev: ab})
		}
		return nil
	},
}

var abbrevRmCmd = &cobra.Command{
	Use:   "rm <journal>",
	Short: "Remove an abbreviation",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store := openAbbrevStore()
		defer store.Close()

		removed, err := store.Delete(args[0])
		if err != nil {
			exitWithError(ExitError, "%v", err)
		}
		if !removed {
			exitWithError(ExitDataError, "no abbreviation for %q", args[0])
		}

		if humanOutput {
			fmt.Printf("removed %s\n", args[0])
		} else {
			outputJSON(StatusResponse{Status: "removed", Journal: args[0]})
		}
		return nil
	},
}

var abbrevListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all abbreviations",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		store := openAbbrevStore()
		defer store.Close()

		mappings, err := store.List()
		if err != nil {
			exitWithError(ExitError, "%v", err)
		}

		if humanOutput {
			for _, m := range mappings {
				fmt.Printf("%s -> %s\n", m.Journal, m.Abbrev)
			}
			return nil
		}

		abbrevs := make(map[string]string, len(mappings))
		for _, m := range mappings {
			abbrevs[m.Journal] = m.Abbrev
		}
		outputJSON(AbbrevListResponse{Abbrevs: abbrevs, Count: len(mappings)})
		return nil
	},
}

var abbrevImportCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Import abbreviations from a YAML file",
	Long: `Import abbreviations from a YAML mapping of journal name to
abbreviation. Existing entries are overwritten.

Example file:
  Nature Chemistry: Nat. Chem.
  Journal of Medicinal Chemistry: J. Med. Chem.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := os.ReadFile(args[0])
		if err != nil {
			exitWithError(ExitDataError, "reading %s: %v", args[0], err)
		}

		var mappings map[string]string
		if err := yaml.Unmarshal(data, &mappings); err != nil {
			exitWithError(ExitDataError, "parsing %s: %v", args[0], err)
		}

		store := openAbbrevStore()
		defer store.Close()

		count, err := store.Import(mappings)
		if err != nil {
			exitWithError(ExitError, "%v", err)
		}

		if humanOutput {
			fmt.Printf("imported %d abbreviations\n", count)
		} else {
			outputJSON(StatusResponse{Status: "imported", Count: count})
		}
		return nil
	},
}
