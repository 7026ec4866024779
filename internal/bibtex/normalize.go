package bibtex

import (
	"regexp"
	"strings"
)

// DefaultKeepFields is the ordered keep-list applied to @article entries
// when no other list is configured.
var DefaultKeepFields = []string{
	"author",
	"title",
	"journal",
	"year",
	"volume",
	"number",
	"pages",
	"doi",
}

// DefaultProtectedTokens are wrapped in {} before title casing so BibTeX
// styles cannot lowercase them. Anything already inside {...} is preserved
// as well.
var DefaultProtectedTokens = []string{
	"PROTAC", "PROTACs",
	"BRD4", "BET", "CRBN",
	"Nrf2", "Keap1",
	"DNA", "RNA", "ATP",
	"X-ray", "SAR",
}

// RequiredFields must be present on a cleaned @article entry; missing ones
// are reported through the note field rather than failing the entry.
var RequiredFields = []string{"author", "title", "journal", "year", "volume", "pages"}

// Options control normalization. Nil KeepFields means DefaultKeepFields and
// nil ProtectedTokens means DefaultProtectedTokens; a nil JournalAbbrev map
// disables abbreviation.
type Options struct {
	KeepFields      []string
	ProtectedTokens []string
	Titlecase       bool
	RegenKeys       bool
	JournalAbbrev   map[string]string
}

// DefaultOptions returns the options the CLI and server start from.
func DefaultOptions() Options {
	return Options{Titlecase: true}
}

// Normalize produces the cleaned form of an entry. Entries that are not
// @article pass through unchanged.
func Normalize(e Entry, opts Options) Entry {
	if e.Type != "article" {
		return e
	}

	keep := opts.KeepFields
	if keep == nil {
		keep = DefaultKeepFields
	}
	tokens := opts.ProtectedTokens
	if tokens == nil {
		tokens = DefaultProtectedTokens
	}

	out := Entry{
		Type:   "article",
		ID:     e.ID,
		Fields: make(map[string]string, len(keep)),
	}

	seen := make(map[string]bool, len(keep))
	for _, f := range keep {
		f = strings.ToLower(strings.TrimSpace(f))
		if f == "" || seen[f] {
			continue
		}
		seen[f] = true
		out.FieldOrder = append(out.FieldOrder, f)
		if v := strings.TrimSpace(e.Fields[f]); v != "" {
			out.Fields[f] = v
		}
	}

	if v, ok := out.Fields["title"]; ok && opts.Titlecase {
		out.Fields["title"] = SmartTitlecase(v, tokens)
	}

	if v, ok := out.Fields["journal"]; ok {
		if abbrev, ok := opts.JournalAbbrev[v]; ok {
			out.Fields["journal"] = abbrev
		}
	}

	if v, ok := out.Fields["pages"]; ok {
		out.Fields["pages"] = NormalizePages(v)
	}

	for _, f := range []string{"author", "title", "journal"} {
		if v, ok := out.Fields[f]; ok {
			out.Fields[f] = Latexify(v)
		}
	}

	annotateMissing(&out)

	if opts.RegenKeys {
		out.ID = MakeKey(out.Fields["author"], out.Fields["year"], out.Fields["title"])
	}

	return out
}

// missingNoteRe matches a [MISSING: ...] annotation from an earlier pass.
var missingNoteRe = regexp.MustCompile(`\s*\[MISSING: [^\]]*\]`)

// annotateMissing records absent required fields in the note field. Any
// annotation left by a previous cleaning pass is replaced rather than
// stacked, so cleaning the same text twice yields identical output.
func annotateMissing(e *Entry) {
	note := strings.TrimSpace(missingNoteRe.ReplaceAllString(e.Fields["note"], ""))

	var missing []string
	for _, f := range RequiredFields {
		if strings.TrimSpace(e.Fields[f]) == "" {
			missing = append(missing, f)
		}
	}
	if len(missing) > 0 {
		note = strings.TrimSpace(note + " [MISSING: " + strings.Join(missing, ", ") + "]")
	}

	if note != "" {
		e.Fields["note"] = note
	} else {
		delete(e.Fields, "note")
	}
}

var (
	pageDashRe        = regexp.MustCompile(`\s*[–—-]\s*`)
	doubleDashSpaceRe = regexp.MustCompile(`\s*--\s*`)
	digitsRe          = regexp.MustCompile(`^[0-9]+$`)
)

// NormalizePages canonicalizes a page range to the BibTeX NNN--MMM form.
// Values already using -- only have surrounding whitespace collapsed; a
// single en dash, em dash, or hyphen between two numbers becomes --; any
// other shape has each dash-like separator replaced as a best effort.
func NormalizePages(pages string) string {
	pages = strings.TrimSpace(pages)
	if pages == "" {
		return pages
	}
	if strings.Contains(pages, "--") {
		return doubleDashSpaceRe.ReplaceAllString(pages, "--")
	}

	parts := pageDashRe.Split(pages, -1)
	if len(parts) == 2 && digitsRe.MatchString(parts[0]) && digitsRe.MatchString(parts[1]) {
		return parts[0] + "--" + parts[1]
	}

	return pageDashRe.ReplaceAllString(pages, "--")
}

var (
	alnumRunRe = regexp.MustCompile(`[A-Za-z0-9]+`)
	digitRunRe = regexp.MustCompile(`[0-9]+`)
	nonAlnumRe = regexp.MustCompile(`[^A-Za-z0-9]+`)
)

// MakeKey builds a citation key of the form <surname><year>_<ShortTitle>,
// e.g. doe2020_AStudyOfPROTAC. The surname comes from the first author
// ("Last, First" or "First Last"); the short title takes up to four
// alphanumeric title tokens, each with its first letter uppercased and the
// rest kept verbatim.
func MakeKey(author, year, title string) string {
	first := strings.TrimSpace(strings.Split(author, " and ")[0])
	var last string
	if i := strings.Index(first, ","); i >= 0 {
		last = first[:i]
	} else if fields := strings.Fields(first); len(fields) > 0 {
		last = fields[len(fields)-1]
	}
	last = nonAlnumRe.ReplaceAllString(strings.ToLower(last), "")
	if last == "" {
		last = "unknown"
	}

	digits := strings.Join(digitRunRe.FindAllString(year, -1), "")
	if digits == "" {
		digits = "nd"
	}

	words := alnumRunRe.FindAllString(title, -1)
	if len(words) > 4 {
		words = words[:4]
	}
	var short strings.Builder
	for _, w := range words {
		short.WriteString(strings.ToUpper(w[:1]))
		short.WriteString(w[1:])
	}
	if short.Len() == 0 {
		short.WriteString("untitled")
	}

	return last + digits + "_" + short.String()
}
