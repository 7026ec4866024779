// Package bibtex implements the parse, normalize, serialize pipeline for
// cleaning BibTeX bibliographies.
package bibtex

// Entry is a single BibTeX record.
//
// Field names in Fields are always lowercase and values are trimmed with one
// enclosing {...} or "..." pair removed; brace groups inside a value are
// preserved verbatim. When a field repeats, the last occurrence wins.
//
// FieldOrder carries the order fields appeared in the source for parsed
// entries, and the emission order for normalized ones. Entries are value
// records: created once per call and never mutated afterward.
type Entry struct {
	Type       string
	ID         string
	Fields     map[string]string
	FieldOrder []string
}

// Field returns the value of the named field, or "" if absent.
func (e Entry) Field(name string) string {
	return e.Fields[name]
}
