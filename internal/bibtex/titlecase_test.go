package bibtex

import (
	"strings"
	"testing"
)

func TestSmartTitlecase_Basic(t *testing.T) {
	tests := []struct {
		name  string
		title string
		want  string
	}{
		{
			name:  "plain words",
			title: "a study of binding selectivity",
			want:  "A Study of Binding Selectivity",
		},
		{
			name:  "uppercase input is normalized",
			title: "A STUDY OF BINDING SELECTIVITY",
			want:  "A Study of Binding Selectivity",
		},
		{
			name:  "small word after colon is capitalized",
			title: "degraders: a new modality",
			want:  "Degraders: A New Modality",
		},
		{
			name:  "small word after period is capitalized",
			title: "part one. the sequel",
			want:  "Part One. The Sequel",
		},
		{
			name:  "small words stay lowercase mid-title",
			title: "binding of ligands to proteins in cells",
			want:  "Binding of Ligands to Proteins in Cells",
		},
		{
			name:  "empty title",
			title: "",
			want:  "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SmartTitlecase(tt.title, nil); got != tt.want {
				t.Errorf("SmartTitlecase(%q) = %q, want %q", tt.title, got, tt.want)
			}
		})
	}
}

func TestSmartTitlecase_ProtectedTokens(t *testing.T) {
	got := SmartTitlecase("a study of PROTAC design", DefaultProtectedTokens)

	if !strings.Contains(got, "{PROTAC}") {
		t.Errorf("SmartTitlecase() = %q, want {PROTAC} braced with original casing", got)
	}
	if !strings.HasPrefix(got, "A Study of ") {
		t.Errorf("SmartTitlecase() = %q, want title-cased prefix", got)
	}
}

func TestSmartTitlecase_LongestTokenFirst(t *testing.T) {
	got := SmartTitlecase("PROTACs and PROTAC design", []string{"PROTAC", "PROTACs"})

	if !strings.Contains(got, "{PROTACs}") {
		t.Errorf("SmartTitlecase() = %q, want {PROTACs} (plural not shadowed)", got)
	}
	if !strings.Contains(got, "{PROTAC} Design") {
		t.Errorf("SmartTitlecase() = %q, want {PROTAC} Design", got)
	}
	if strings.Contains(got, "{{") {
		t.Errorf("SmartTitlecase() = %q, tokens must not be double-wrapped", got)
	}
}

func TestSmartTitlecase_CaseSensitiveProtection(t *testing.T) {
	// Lowercase "protac" is not the protected token and gets normal casing.
	got := SmartTitlecase("the protac approach", []string{"PROTAC"})

	if got != "The Protac Approach" {
		t.Errorf("SmartTitlecase() = %q, want %q", got, "The Protac Approach")
	}
}

func TestSmartTitlecase_WordBoundary(t *testing.T) {
	// "DNAse" contains DNA but is not a standalone occurrence.
	got := SmartTitlecase("DNAse activity and DNA repair", []string{"DNA"})

	if strings.Contains(got, "{DNA}se") {
		t.Errorf("SmartTitlecase() = %q, token matched inside a longer word", got)
	}
	if !strings.Contains(got, "{DNA} Repair") {
		t.Errorf("SmartTitlecase() = %q, want standalone {DNA} braced", got)
	}
}

func TestSmartTitlecase_PreBracedSpansUntouched(t *testing.T) {
	got := SmartTitlecase("measuring {mRNA levels} in cells", nil)

	if !strings.Contains(got, "{mRNA levels}") {
		t.Errorf("SmartTitlecase() = %q, braced span must pass through verbatim", got)
	}
	if !strings.HasPrefix(got, "Measuring ") {
		t.Errorf("SmartTitlecase() = %q, want cased text outside braces", got)
	}
}

func TestSmartTitlecase_TokenInsideBracesNotRewrapped(t *testing.T) {
	got := SmartTitlecase("{PROTAC design} revisited", []string{"PROTAC"})

	if strings.Contains(got, "{{PROTAC}") {
		t.Errorf("SmartTitlecase() = %q, token inside braces must not be rewrapped", got)
	}
	if !strings.Contains(got, "{PROTAC design}") {
		t.Errorf("SmartTitlecase() = %q, want original braced span kept", got)
	}
}

func TestSmartTitlecase_HyphenatedToken(t *testing.T) {
	got := SmartTitlecase("an X-ray study", DefaultProtectedTokens)

	if !strings.Contains(got, "{X-ray}") {
		t.Errorf("SmartTitlecase() = %q, want {X-ray} protected", got)
	}
}

func TestSmartTitlecase_Idempotent(t *testing.T) {
	titles := []string{
		"a study of PROTAC design",
		"degraders: a new modality",
		"measuring {mRNA levels} in cells",
		"binding of ligands to proteins",
	}

	for _, title := range titles {
		once := SmartTitlecase(title, DefaultProtectedTokens)
		twice := SmartTitlecase(once, DefaultProtectedTokens)
		if once != twice {
			t.Errorf("SmartTitlecase not stable for %q: %q then %q", title, once, twice)
		}
	}
}

func TestSplitBraceSpans(t *testing.T) {
	spans := splitBraceSpans("before {mid {deep}} after")

	if len(spans) != 3 {
		t.Fatalf("splitBraceSpans() = %d spans, want 3", len(spans))
	}
	if spans[0].braced || spans[0].text != "before " {
		t.Errorf("spans[0] = %+v, want unbraced %q", spans[0], "before ")
	}
	if !spans[1].braced || spans[1].text != "{mid {deep}}" {
		t.Errorf("spans[1] = %+v, want braced %q", spans[1], "{mid {deep}}")
	}
	if spans[2].braced || spans[2].text != " after" {
		t.Errorf("spans[2] = %+v, want unbraced %q", spans[2], " after")
	}
}

func TestSplitBraceSpans_UnmatchedBrace(t *testing.T) {
	spans := splitBraceSpans("text {unclosed rest")

	if len(spans) != 2 {
		t.Fatalf("splitBraceSpans() = %d spans, want 2", len(spans))
	}
	if !spans[1].braced {
		t.Errorf("spans[1] = %+v, unmatched brace must open a braced span", spans[1])
	}
}
