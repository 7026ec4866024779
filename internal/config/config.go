// Package config loads the bibclean profile: keep-list, protected tokens,
// journal abbreviations, and cleaning toggles.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/matsen/bibclean/internal/bibtex"
)

// Config is the on-disk profile read from config.yml. Zero values mean
// "use the built-in default", so an empty file is a valid profile.
type Config struct {
	KeepFields      []string          `yaml:"keep_fields,omitempty"`
	ProtectedTokens []string          `yaml:"protected_tokens,omitempty"`
	JournalAbbrev   map[string]string `yaml:"journal_abbrev,omitempty"`
	Titlecase       *bool             `yaml:"titlecase,omitempty"`
	RegenKeys       bool              `yaml:"regen_keys,omitempty"`
}

const (
	ConfigDir  = "bibclean"
	ConfigFile = "config.yml"
)

// DefaultPath returns the profile location: $XDG_CONFIG_HOME/bibclean/config.yml,
// falling back to ~/.config/bibclean/config.yml.
func DefaultPath() string {
	base := os.Getenv("XDG_CONFIG_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		base = filepath.Join(home, ".config")
	}
	return filepath.Join(base, ConfigDir, ConfigFile)
}

// Load reads and validates a profile. A missing file is not an error: the
// zero Config (all defaults) is returned so bibclean works unconfigured.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return &Config{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return &cfg, nil
}

// Save writes the profile, creating parent directories as needed.
func (c *Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

// Validate rejects profiles that would silently misbehave: blank or
// duplicate keep-list fields, blank protected tokens, blank journal names.
func (c *Config) Validate() error {
	seen := make(map[string]bool, len(c.KeepFields))
	for i, f := range c.KeepFields {
		if f == "" {
			return fmt.Errorf("keep_fields entry %d is empty", i+1)
		}
		if seen[f] {
			return fmt.Errorf("keep_fields entry %q is duplicated", f)
		}
		seen[f] = true
	}

	for i, t := range c.ProtectedTokens {
		if t == "" {
			return fmt.Errorf("protected_tokens entry %d is empty", i+1)
		}
	}

	for journal := range c.JournalAbbrev {
		if journal == "" {
			return fmt.Errorf("journal_abbrev contains an empty journal name")
		}
	}

	return nil
}

// Options converts the profile into cleaning options. Titlecase defaults to
// on when the profile does not mention it.
func (c *Config) Options() bibtex.Options {
	opts := bibtex.DefaultOptions()
	if c.KeepFields != nil {
		opts.KeepFields = c.KeepFields
	}
	if c.ProtectedTokens != nil {
		opts.ProtectedTokens = c.ProtectedTokens
	}
	if len(c.JournalAbbrev) > 0 {
		opts.JournalAbbrev = c.JournalAbbrev
	}
	if c.Titlecase != nil {
		opts.Titlecase = *c.Titlecase
	}
	opts.RegenKeys = c.RegenKeys
	return opts
}
