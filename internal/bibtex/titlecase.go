package bibtex

import (
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"
)

// smallWords stay lowercase mid-span during title casing.
var smallWords = map[string]bool{
	"a": true, "an": true, "and": true, "as": true, "at": true,
	"but": true, "by": true, "for": true, "in": true, "nor": true,
	"of": true, "on": true, "or": true, "per": true, "the": true,
	"to": true, "vs": true, "via": true, "with": true, "without": true,
	"over": true, "into": true, "from": true,
}

// SmartTitlecase title-cases a BibTeX title while leaving brace-protected
// spans untouched. Protected tokens found outside braces are wrapped in {}
// first (case-sensitive, whole-word, longest token first) so the casing pass
// skips them too.
func SmartTitlecase(title string, protected []string) string {
	if title == "" {
		return title
	}

	spans := splitBraceSpans(protectTokens(title, protected))

	var b strings.Builder
	for i, span := range spans {
		if span.braced {
			b.WriteString(span.text)
			continue
		}
		// A word flush against a preceding brace group (the "tude" in
		// "{\'E}tude") is a continuation, not a new word.
		glued := i > 0 && spans[i-1].braced && startsWithWordRune(span.text)
		b.WriteString(titlecaseSpan(span.text, glued))
	}
	return b.String()
}

type braceSpan struct {
	text   string
	braced bool
}

// splitBraceSpans splits s into alternating unbraced and braced spans. A
// braced span runs from a depth-0 '{' to its matching '}'; an unmatched '{'
// opens a braced span that runs to the end of the string.
func splitBraceSpans(s string) []braceSpan {
	var spans []braceSpan
	depth := 0
	start := 0

	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '{':
			if depth == 0 {
				if i > start {
					spans = append(spans, braceSpan{text: s[start:i]})
				}
				start = i
			}
			depth++
		case '}':
			if depth > 0 {
				depth--
				if depth == 0 {
					spans = append(spans, braceSpan{text: s[start : i+1], braced: true})
					start = i + 1
				}
			}
		}
	}

	if start < len(s) {
		spans = append(spans, braceSpan{text: s[start:], braced: depth > 0})
	}
	return spans
}

// protectTokens wraps each standalone occurrence of a protected token in {}
// when it appears outside any brace group. Longer tokens are applied first
// so a token containing another (PROTACs vs PROTAC) is not shadowed.
func protectTokens(s string, tokens []string) string {
	if len(tokens) == 0 {
		return s
	}

	ordered := make([]string, 0, len(tokens))
	seen := make(map[string]bool, len(tokens))
	for _, tok := range tokens {
		if tok == "" || seen[tok] {
			continue
		}
		seen[tok] = true
		ordered = append(ordered, tok)
	}
	sort.SliceStable(ordered, func(i, j int) bool {
		return len(ordered[i]) > len(ordered[j])
	})

	for _, tok := range ordered {
		s = wrapToken(s, tok)
	}
	return s
}

// wrapToken braces standalone occurrences of tok outside brace groups.
// Matching is case-sensitive and word-bounded.
func wrapToken(s, tok string) string {
	var b strings.Builder
	depth := 0

	for i := 0; i < len(s); {
		c := s[i]
		switch c {
		case '{':
			depth++
		case '}':
			if depth > 0 {
				depth--
			}
		}

		if depth == 0 && c == tok[0] && strings.HasPrefix(s[i:], tok) &&
			wordBoundaryBefore(s, i) && wordBoundaryAfter(s, i+len(tok)) {
			b.WriteByte('{')
			b.WriteString(tok)
			b.WriteByte('}')
			i += len(tok)
			continue
		}

		b.WriteByte(c)
		i++
	}
	return b.String()
}

// titlecaseSpan capitalizes the alphanumeric words of one unbraced span.
// A small word stays lowercase unless it opens the span or directly follows
// sentence punctuation (: . ; ! ?), which forces capitalization. A glued
// span's leading word passes through untouched.
func titlecaseSpan(s string, glued bool) string {
	runes := []rune(s)
	var b strings.Builder
	wordIdx := 0

	for i := 0; i < len(runes); {
		if !isWordRune(runes[i]) {
			b.WriteRune(runes[i])
			i++
			continue
		}

		j := i
		for j < len(runes) && isWordRune(runes[j]) {
			j++
		}
		word := string(runes[i:j])

		switch {
		case wordIdx == 0 && glued:
			b.WriteString(word)
		case staysLower(word, wordIdx, prevNonSpace(runes, i)):
			b.WriteString(strings.ToLower(word))
		default:
			lower := []rune(strings.ToLower(word))
			lower[0] = unicode.ToUpper(lower[0])
			b.WriteString(string(lower))
		}
		wordIdx++
		i = j
	}
	return b.String()
}

// staysLower reports whether a word keeps full lowercase at this position.
func staysLower(word string, wordIdx int, prev rune) bool {
	if wordIdx == 0 || !smallWords[strings.ToLower(word)] {
		return false
	}
	switch prev {
	case ':', '.', ';', '!', '?':
		return false
	}
	return true
}

// prevNonSpace returns the last non-space rune before position i, or 0.
func prevNonSpace(runes []rune, i int) rune {
	for i--; i >= 0; i-- {
		if !unicode.IsSpace(runes[i]) {
			return runes[i]
		}
	}
	return 0
}

func isWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r)
}

func startsWithWordRune(s string) bool {
	r, _ := utf8.DecodeRuneInString(s)
	return isWordRune(r)
}

func isWordByte(c byte) bool {
	return c == '_' ||
		(c >= '0' && c <= '9') ||
		(c >= 'a' && c <= 'z') ||
		(c >= 'A' && c <= 'Z')
}

func wordBoundaryBefore(s string, i int) bool {
	return i == 0 || !isWordByte(s[i-1])
}

func wordBoundaryAfter(s string, i int) bool {
	return i >= len(s) || !isWordByte(s[i])
}
