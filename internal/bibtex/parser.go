package bibtex

import "strings"

// Parse scans raw BibTeX source and returns the entries it contains, in
// source order. It never fails: a candidate whose type or opening delimiter
// cannot be identified is skipped and scanning resumes one character past
// its @.
//
// The outer delimiter match counts only the entry's own delimiter pair and
// is deliberately quote-unaware; only the inner field-splitting pass tracks
// quoted spans. An unescaped brace inside a quoted value can therefore
// desynchronize the outer scan. Kept as-is for compatibility with
// already-clean corpora.
func Parse(text string) []Entry {
	var entries []Entry

	pos := 0
	for {
		at := strings.IndexByte(text[pos:], '@')
		if at < 0 {
			break
		}
		at += pos

		entry, next, ok := parseEntry(text, at)
		if !ok {
			pos = at + 1
			continue
		}
		entries = append(entries, entry)
		pos = next
	}

	return entries
}

// parseEntry parses one entry starting at the @ at text[at]. It returns the
// entry, the offset to resume scanning from, and whether a well-formed
// opening was found.
func parseEntry(text string, at int) (Entry, int, bool) {
	i := skipSpace(text, at+1)

	// Entry type: maximal run of letters.
	start := i
	for i < len(text) && isLetter(text[i]) {
		i++
	}
	if i == start {
		return Entry{}, 0, false
	}
	entryType := strings.ToLower(text[start:i])

	i = skipSpace(text, i)
	if i >= len(text) {
		return Entry{}, 0, false
	}

	var opener, closer byte
	switch text[i] {
	case '{':
		opener, closer = '{', '}'
	case '(':
		opener, closer = '(', ')'
	default:
		return Entry{}, 0, false
	}

	// Consume the body by tracking the delimiter pair's nesting depth.
	depth := 1
	j := i + 1
	for j < len(text) && depth > 0 {
		switch text[j] {
		case opener:
			depth++
		case closer:
			depth--
		}
		j++
	}

	var body string
	if depth == 0 {
		body = text[i+1 : j-1]
	} else {
		// Unterminated entry: the rest of the input is the body.
		body = text[i+1:]
		j = len(text)
	}

	entry := Entry{Type: entryType, Fields: map[string]string{}}

	segments := splitTopLevel(body, ',')
	entry.ID = strings.TrimSpace(segments[0])

	for _, seg := range segments[1:] {
		key, value, ok := splitField(seg)
		if !ok {
			continue // no top-level '=': discard silently
		}
		if _, seen := entry.Fields[key]; !seen {
			entry.FieldOrder = append(entry.FieldOrder, key)
		}
		entry.Fields[key] = value
	}

	return entry, j, true
}

// splitTopLevel splits s on sep where it occurs at brace depth 0 and outside
// a double-quoted span. Quote state toggles on an unescaped '"' at brace
// depth 0; a quote inside a brace group is literal text.
func splitTopLevel(s string, sep byte) []string {
	var parts []string
	depth := 0
	inQuote := false
	start := 0

	for i := 0; i < len(s); i++ {
		c := s[i]
		if inQuote {
			if c == '"' && (i == 0 || s[i-1] != '\\') {
				inQuote = false
			}
			continue
		}
		switch c {
		case '{':
			depth++
		case '}':
			if depth > 0 {
				depth--
			}
		case '"':
			if depth == 0 {
				inQuote = true
			}
		case sep:
			if depth == 0 {
				parts = append(parts, s[start:i])
				start = i + 1
			}
		}
	}

	return append(parts, s[start:])
}

// splitField splits a "key = value" segment on its first top-level '='. The
// key is lowercased and trimmed; the value is trimmed with one enclosing
// delimiter pair stripped.
func splitField(seg string) (key, value string, ok bool) {
	depth := 0
	inQuote := false
	eq := -1

scan:
	for i := 0; i < len(seg); i++ {
		c := seg[i]
		if inQuote {
			if c == '"' && (i == 0 || seg[i-1] != '\\') {
				inQuote = false
			}
			continue
		}
		switch c {
		case '{':
			depth++
		case '}':
			if depth > 0 {
				depth--
			}
		case '"':
			if depth == 0 {
				inQuote = true
			}
		case '=':
			if depth == 0 {
				eq = i
				break scan
			}
		}
	}

	if eq < 0 {
		return "", "", false
	}
	key = strings.ToLower(strings.TrimSpace(seg[:eq]))
	value = strings.TrimSpace(stripDelimiters(strings.TrimSpace(seg[eq+1:])))
	return key, value, true
}

// stripDelimiters removes one enclosing {...} or "..." pair when both ends
// match. Inner delimiters are left untouched.
func stripDelimiters(v string) string {
	if len(v) >= 2 {
		first, last := v[0], v[len(v)-1]
		if (first == '{' && last == '}') || (first == '"' && last == '"') {
			return v[1 : len(v)-1]
		}
	}
	return v
}

func skipSpace(s string, i int) int {
	for i < len(s) && isSpace(s[i]) {
		i++
	}
	return i
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r'
}

func isLetter(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}
