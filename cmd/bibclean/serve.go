package main

import (
	"fmt"
	"net/http"
	"os"

	"github.com/spf13/cobra"

	"github.com/matsen/bibclean/internal/abbrev"
	"github.com/matsen/bibclean/internal/config"
	"github.com/matsen/bibclean/internal/server"
)

var (
	serveAddr       string
	serveUIDir      string
	serveRate       float64
	serveConfigPath string
	serveAbbrevDB   string
)

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", server.DefaultAddr, "Listen address")
	serveCmd.Flags().StringVar(&serveUIDir, "ui-dir", "", "Directory of static UI files to serve at /")
	serveCmd.Flags().Float64Var(&serveRate, "rate", server.DefaultRateLimit, "Clean requests allowed per second")
	serveCmd.Flags().StringVar(&serveConfigPath, "config", "", "Profile path (default: $XDG_CONFIG_HOME/bibclean/config.yml)")
	serveCmd.Flags().StringVar(&serveAbbrevDB, "abbrev-db", "", "Journal abbreviation database path")
	rootCmd.AddCommand(serveCmd)
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the cleaning HTTP server",
	Long: `Run an HTTP server exposing POST /api/clean.

The request body is JSON: {"input": "...", "keep_fields": [...],
"titlecase": bool, "regen_keys": bool, "journal_abbrev": {...}}.
Omitted options fall back to the loaded profile.

Examples:
  bibclean serve
  bibclean serve --addr 127.0.0.1:9000 --ui-dir ./ui`,
	RunE: runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	configPath := serveConfigPath
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
	defaults := cfg.Options()

	dbPath := serveAbbrevDB
	if dbPath == "" {
		dbPath = os.Getenv("BIBCLEAN_ABBREV_DB")
	}
	if dbPath != "" {
		store, err := abbrev.Open(dbPath)
		if err != nil {
			exitWithError(ExitConfigError, "opening abbreviation database: %v", err)
		}
		merged, err := store.Map()
		store.Close()
		if err != nil {
			exitWithError(ExitError, "loading abbreviations: %v", err)
		}
		for journal, ab := range cfg.JournalAbbrev {
			merged[journal] = ab
		}
		if len(merged) > 0 {
			defaults.JournalAbbrev = merged
		}
	}

	srv := server.New(
		server.WithDefaults(defaults),
		server.WithRateLimit(serveRate),
		server.WithUIDir(serveUIDir),
	)

	fmt.Fprintf(os.Stderr, "bibclean serving on http://%s\n", serveAddr)
	if err := http.ListenAndServe(serveAddr, srv.Handler()); err != nil {
		exitWithError(ExitError, "server failed: %v", err)
	}
	return nil
}
