package bibtex

import "strings"

// Clean runs the full pipeline over raw BibTeX text and returns the cleaned
// document. Empty or whitespace-only input yields an empty string. Clean is
// a pure function: safe for concurrent callers, no shared state.
func Clean(input string, opts Options) string {
	if strings.TrimSpace(input) == "" {
		return ""
	}

	entries := Parse(input)
	cleaned := make([]Entry, len(entries))
	for i, e := range entries {
		cleaned[i] = Normalize(e, opts)
	}
	return SerializeAll(cleaned)
}
