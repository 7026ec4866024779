// Package abbrev persists journal abbreviations in a SQLite database so the
// same overrides apply across CLI runs and server sessions.
package abbrev

import (
	"database/sql"
	"fmt"
	"sort"

	_ "modernc.org/sqlite"
)

// Store wraps the abbreviation database.
type Store struct {
	db *sql.DB
}

// Mapping is one journal-to-abbreviation pair.
type Mapping struct {
	Journal string
	Abbrev  string
}

// Open opens or creates the abbreviation database at the given path.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	db.SetMaxOpenConns(1) // SQLite doesn't support concurrent writes

	if err := createSchema(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	return &Store{db: db}, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func createSchema(db *sql.DB) error {
	schema := `
		CREATE TABLE IF NOT EXISTS journal_abbrevs (
			journal TEXT PRIMARY KEY,
			abbrev TEXT NOT NULL
		);
	`
	_, err := db.Exec(schema)
	return err
}

// Set inserts or replaces the abbreviation for a journal.
func (s *Store) Set(journal, abbrev string) error {
	if journal == "" {
		return fmt.Errorf("journal name must not be empty")
	}
	if abbrev == "" {
		return fmt.Errorf("abbreviation must not be empty")
	}

	_, err := s.db.Exec(
		`INSERT INTO journal_abbrevs (journal, abbrev) VALUES (?, ?)
		 ON CONFLICT(journal) DO UPDATE SET abbrev = excluded.abbrev`,
		journal, abbrev)
	if err != nil {
		return fmt.Errorf("storing abbreviation: %w", err)
	}
	return nil
}

// Get returns the abbreviation for a journal. The second return value is
// false when no mapping exists.
func (s *Store) Get(journal string) (string, bool, error) {
	var abbrev string
	err := s.db.QueryRow(
		`SELECT abbrev FROM journal_abbrevs WHERE journal = ?`, journal).Scan(&abbrev)
	if err == sql.ErrNoRows {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("looking up abbreviation: %w", err)
	}
	return abbrev, true, nil
}

// Delete removes the mapping for a journal. Returns false if none existed.
func (s *Store) Delete(journal string) (bool, error) {
	res, err := s.db.Exec(`DELETE FROM journal_abbrevs WHERE journal = ?`, journal)
	if err != nil {
		return false, fmt.Errorf("deleting abbreviation: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("deleting abbreviation: %w", err)
	}
	return n > 0, nil
}

// List returns all mappings sorted by journal name.
func (s *Store) List() ([]Mapping, error) {
	rows, err := s.db.Query(`SELECT journal, abbrev FROM journal_abbrevs ORDER BY journal`)
	if err != nil {
		return nil, fmt.Errorf("listing abbreviations: %w", err)
	}
	defer rows.Close()

	var mappings []Mapping
	for rows.Next() {
		var m Mapping
		if err := rows.Scan(&m.Journal, &m.Abbrev); err != nil {
			return nil, fmt.Errorf("scanning abbreviation row: %w", err)
		}
		mappings = append(mappings, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("listing abbreviations: %w", err)
	}
	return mappings, nil
}

// Map returns all mappings as the lookup table the cleaner consumes.
func (s *Store) Map() (map[string]string, error) {
	mappings, err := s.List()
	if err != nil {
		return nil, err
	}

	m := make(map[string]string, len(mappings))
	for _, entry := range mappings {
		m[entry.Journal] = entry.Abbrev
	}
	return m, nil
}

// Import stores a batch of mappings in one transaction. Existing journals
// are overwritten. Returns the number of mappings written.
func (s *Store) Import(mappings map[string]string) (int, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return 0, fmt.Errorf("starting import: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(
		`INSERT INTO journal_abbrevs (journal, abbrev) VALUES (?, ?)
		 ON CONFLICT(journal) DO UPDATE SET abbrev = excluded.abbrev`)
	if err != nil {
		return 0, fmt.Errorf("preparing import: %w", err)
	}
	defer stmt.Close()

	// Deterministic order keeps import failures reproducible.
	journals := make([]string, 0, len(mappings))
	for journal := range mappings {
		journals = append(journals, journal)
	}
	sort.Strings(journals)

	count := 0
	for _, journal := range journals {
		abbrev := mappings[journal]
		if journal == "" || abbrev == "" {
			return 0, fmt.Errorf("import entry %q=%q: names must not be empty", journal, abbrev)
		}
		if _, err := stmt.Exec(journal, abbrev); err != nil {
			return 0, fmt.Errorf("importing %q: %w", journal, err)
		}
		count++
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("committing import: %w", err)
	}
	return count, nil
}

// Count returns the number of stored mappings.
func (s *Store) Count() (int, error) {
	var n int
	if err := s.db.QueryRow(`SELECT COUNT(*) FROM journal_abbrevs`).Scan(&n); err != nil {
		return 0, fmt.Errorf("counting abbreviations: %w", err)
	}
	return n, nil
}
