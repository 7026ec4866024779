package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("writing config fixture: %v", err)
	}
	return path
}

func TestLoad_FullProfile(t *testing.T) {
	path := writeConfig(t, `keep_fields:
  - author
  - title
  - year
protected_tokens:
  - PROTAC
  - DNA
journal_abbrev:
  Nature Chemistry: Nat. Chem.
titlecase: false
regen_keys: true
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if len(cfg.KeepFields) != 3 || cfg.KeepFields[0] != "author" {
		t.Errorf("KeepFields = %v, want [author title year]", cfg.KeepFields)
	}
	if cfg.JournalAbbrev["Nature Chemistry"] != "Nat. Chem." {
		t.Errorf("JournalAbbrev = %v, want Nature Chemistry mapped", cfg.JournalAbbrev)
	}
	if cfg.Titlecase == nil || *cfg.Titlecase {
		t.Errorf("Titlecase = %v, want explicit false", cfg.Titlecase)
	}
	if !cfg.RegenKeys {
		t.Errorf("RegenKeys = false, want true")
	}
}

func TestLoad_MissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope", "config.yml"))
	if err != nil {
		t.Fatalf("Load() error for missing file: %v", err)
	}
	if cfg.KeepFields != nil || cfg.Titlecase != nil || cfg.RegenKeys {
		t.Errorf("Load() = %+v, want zero config", cfg)
	}
}

func TestLoad_EmptyFile(t *testing.T) {
	cfg, err := Load(writeConfig(t, ""))
	if err != nil {
		t.Fatalf("Load() error for empty file: %v", err)
	}
	opts := cfg.Options()
	if !opts.Titlecase {
		t.Errorf("Options().Titlecase = false, want default true")
	}
	if opts.KeepFields != nil {
		t.Errorf("Options().KeepFields = %v, want nil (package default)", opts.KeepFields)
	}
}

func TestLoad_InvalidYAML(t *testing.T) {
	_, err := Load(writeConfig(t, "keep_fields: [unclosed"))
	if err == nil {
		t.Fatal("Load() = nil error, want parse failure")
	}
	if !strings.Contains(err.Error(), "parsing") {
		t.Errorf("Load() error = %v, want parsing error", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr string
	}{
		{
			name: "valid",
			cfg:  Config{KeepFields: []string{"author", "title"}},
		},
		{
			name:    "empty keep field",
			cfg:     Config{KeepFields: []string{"author", ""}},
			wantErr: "empty",
		},
		{
			name:    "duplicate keep field",
			cfg:     Config{KeepFields: []string{"author", "author"}},
			wantErr: "duplicated",
		},
		{
			name:    "empty protected token",
			cfg:     Config{ProtectedTokens: []string{""}},
			wantErr: "empty",
		},
		{
			name:    "empty journal name",
			cfg:     Config{JournalAbbrev: map[string]string{"": "x"}},
			wantErr: "empty journal",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("Validate() = %v, want nil", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Validate() = %v, want error containing %q", err, tt.wantErr)
			}
		})
	}
}

func TestOptions_OverridesApplied(t *testing.T) {
	off := false
	cfg := Config{
		KeepFields:      []string{"title"},
		ProtectedTokens: []string{"RNA"},
		JournalAbbrev:   map[string]string{"Cell": "Cell"},
		Titlecase:       &off,
		RegenKeys:       true,
	}

	opts := cfg.Options()
	if opts.Titlecase {
		t.Errorf("Titlecase = true, want profile override false")
	}
	if !opts.RegenKeys {
		t.Errorf("RegenKeys = false, want true")
	}
	if len(opts.KeepFields) != 1 || opts.KeepFields[0] != "title" {
		t.Errorf("KeepFields = %v, want [title]", opts.KeepFields)
	}
	if len(opts.ProtectedTokens) != 1 || opts.ProtectedTokens[0] != "RNA" {
		t.Errorf("ProtectedTokens = %v, want [RNA]", opts.ProtectedTokens)
	}
	if opts.JournalAbbrev["Cell"] != "Cell" {
		t.Errorf("JournalAbbrev = %v, want Cell mapped", opts.JournalAbbrev)
	}
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yml")
	on := true
	cfg := Config{
		KeepFields: []string{"author", "title"},
		Titlecase:  &on,
	}

	if err := cfg.Save(path); err != nil {
		t.Fatalf("Save() error: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if len(loaded.KeepFields) != 2 || loaded.KeepFields[1] != "title" {
		t.Errorf("round trip KeepFields = %v, want [author title]", loaded.KeepFields)
	}
	if loaded.Titlecase == nil || !*loaded.Titlecase {
		t.Errorf("round trip Titlecase = %v, want true", loaded.Titlecase)
	}
}

func TestDefaultPath_XDG(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/tmp/xdg")

	want := filepath.Join("/tmp/xdg", "bibclean", "config.yml")
	if got := DefaultPath(); got != want {
		t.Errorf("DefaultPath() = %q, want %q", got, want)
	}
}
