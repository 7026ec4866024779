package bibtex

import (
	"fmt"
	"sort"
	"strings"
)

// Serialize renders a single entry in canonical form: the fields named by
// FieldOrder first (absent or blank ones skipped), then any remaining
// present fields. The contract leaves the trailing order unspecified;
// sorting it keeps the serializer deterministic.
func Serialize(e Entry) string {
	var b strings.Builder
	fmt.Fprintf(&b, "@%s{%s,\n", e.Type, e.ID)

	emitted := make(map[string]bool, len(e.FieldOrder))
	for _, f := range e.FieldOrder {
		if v := e.Fields[f]; v != "" {
			fmt.Fprintf(&b, "  %s = {%s},\n", f, v)
		}
		emitted[f] = true
	}

	var rest []string
	for f, v := range e.Fields {
		if !emitted[f] && v != "" {
			rest = append(rest, f)
		}
	}
	sort.Strings(rest)
	for _, f := range rest {
		fmt.Fprintf(&b, "  %s = {%s},\n", f, e.Fields[f])
	}

	b.WriteString("}\n")
	return b.String()
}

// SerializeAll sorts entries by ID (code-unit order) and renders them with
// one blank line between entries.
func SerializeAll(entries []Entry) string {
	sorted := make([]Entry, len(entries))
	copy(sorted, entries)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].ID < sorted[j].ID })

	parts := make([]string, len(sorted))
	for i, e := range sorted {
		parts[i] = Serialize(e)
	}
	return strings.Join(parts, "\n")
}
