package textnorm

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Fold normalizes Vietnamese text for lexical indexing: lower-case,
// decompose, strip combining marks, and map đ/Đ to d. The same function
// runs at ingestion time (stored folded column) and at query time, so the
// two sides always agree on tokenization.
func Fold(text string) string {
	text = strings.ToLower(text)

	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(t, text)
	if err != nil {
		// transform only fails on invalid UTF-8; fall back to the lower-cased input
		folded = text
	}

	folded = strings.ReplaceAll(folded, "đ", "d")
	return folded
}

// WordCount counts whitespace-separated tokens. Vietnamese writes one
// syllable per token, which is the unit the chunk size bounds are defined in.
func WordCount(text string) int {
	return len(strings.Fields(text))
}
