package bibtex

import "testing"

func TestLatexify(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "ascii passthrough",
			input: "Doe, Jane and Roe, Richard",
			want:  "Doe, Jane and Roe, Richard",
		},
		{
			name:  "existing latex markup untouched",
			input: `M{\"u}ller, J.`,
			want:  `M{\"u}ller, J.`,
		},
		{
			name:  "umlaut",
			input: "Müller",
			want:  `M{\"u}ller`,
		},
		{
			name:  "acute accents",
			input: "Kovács, Gábor",
			want:  `Kov{\'a}cs, G{\'a}bor`,
		},
		{
			name:  "uppercase accent",
			input: "Ångström",
			want:  `{\AA}ngstr{\"o}m`,
		},
		{
			name:  "eszett and cedilla",
			input: "Straße, François",
			want:  `Stra{\ss}e, Fran{\c{c}}ois`,
		},
		{
			name:  "en dash",
			input: "protein–ligand binding",
			want:  "protein--ligand binding",
		},
		{
			name:  "curly quotes",
			input: "the “best” case",
			want:  "the ``best'' case",
		},
		{
			name:  "greek letter",
			input: "α-helix stability",
			want:  `$\alpha$-helix stability`,
		},
		{
			name:  "empty",
			input: "",
			want:  "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Latexify(tt.input); got != tt.want {
				t.Errorf("Latexify(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestLatexify_Idempotent(t *testing.T) {
	inputs := []string{
		"Müller, Jürgen",
		"protein–ligand binding",
		"α-helix stability",
		"Straße, François",
	}

	for _, input := range inputs {
		once := Latexify(input)
		twice := Latexify(once)
		if once != twice {
			t.Errorf("Latexify not stable for %q: %q then %q", input, once, twice)
		}
	}
}
