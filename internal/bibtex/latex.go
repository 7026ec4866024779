package bibtex

import (
	"strings"
	"unicode/utf8"
)

// latexReplacer maps non-ASCII characters common in bibliographic data to
// LaTeX commands. Only non-ASCII input is rewritten, so the conversion is
// stable under repeated application.
var latexReplacer = strings.NewReplacer(
	// Accented lowercase letters
	"á", "{\\'a}", "à", "{\\`a}", "â", "{\\^a}",
	"ä", "{\\\"a}", "ã", "{\\~a}", "å", "{\\aa}",
	"æ", "{\\ae}", "ç", "{\\c{c}}",
	"é", "{\\'e}", "è", "{\\`e}", "ê", "{\\^e}", "ë", "{\\\"e}",
	"í", "{\\'i}", "ì", "{\\`i}", "î", "{\\^i}", "ï", "{\\\"i}",
	"ñ", "{\\~n}",
	"ó", "{\\'o}", "ò", "{\\`o}", "ô", "{\\^o}",
	"ö", "{\\\"o}", "õ", "{\\~o}", "ø", "{\\o}",
	"œ", "{\\oe}", "ß", "{\\ss}",
	"ú", "{\\'u}", "ù", "{\\`u}", "û", "{\\^u}", "ü", "{\\\"u}",
	"ý", "{\\'y}", "ÿ", "{\\\"y}",
	// Accented uppercase letters
	"Á", "{\\'A}", "À", "{\\`A}", "Â", "{\\^A}",
	"Ä", "{\\\"A}", "Ã", "{\\~A}", "Å", "{\\AA}",
	"Æ", "{\\AE}", "Ç", "{\\c{C}}",
	"É", "{\\'E}", "È", "{\\`E}", "Ê", "{\\^E}", "Ë", "{\\\"E}",
	"Í", "{\\'I}", "Î", "{\\^I}", "Ï", "{\\\"I}",
	"Ñ", "{\\~N}",
	"Ó", "{\\'O}", "Ô", "{\\^O}", "Ö", "{\\\"O}",
	"Õ", "{\\~O}", "Ø", "{\\O}",
	"Ú", "{\\'U}", "Û", "{\\^U}", "Ü", "{\\\"U}",
	// Dashes, quotes, ellipsis
	"–", "--", "—", "---",
	"‘", "`", "’", "'",
	"“", "``", "”", "''",
	"…", "\\ldots{}",
	" ", "~",
	// Greek letters that show up in titles
	"α", "$\\alpha$", "β", "$\\beta$", "γ", "$\\gamma$",
	"δ", "$\\delta$", "μ", "$\\mu$",
)

// Latexify rewrites common non-ASCII characters as LaTeX commands so the
// cleaned entry survives plain-BibTeX toolchains. ASCII text, including any
// existing LaTeX markup, is returned unchanged.
func Latexify(s string) string {
	if isASCII(s) {
		return s
	}
	return latexReplacer.Replace(s)
}

func isASCII(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] >= utf8.RuneSelf {
			return false
		}
	}
	return true
}
