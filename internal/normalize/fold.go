package normalize

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Fold upper-cases s, strips diacritics, and collapses whitespace runs.
// Broker exports spell the same header or keyword with and without accents
// (and in mangled encodings), so all vocabulary and header matching goes
// through this form.
func Fold(s string) string {
	// A fresh chain per call: transformers carry state and are not safe to
	// share across worker goroutines.
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(t, s)
	if err != nil {
		folded = s
	}
	return strings.Join(strings.Fields(strings.ToUpper(folded)), " ")
}

// ContainsAny reports whether the folded haystack contains any of the
// already-folded keywords.
func ContainsAny(folded string, keywords []string) bool {
	for _, kw := range keywords {
		if kw != "" && strings.Contains(folded, kw) {
			return true
		}
	}
	return false
}

// FoldAll returns a folded copy of every keyword in the list.
func FoldAll(keywords []string) []string {
	out := make([]string, len(keywords))
	for i, kw := range keywords {
		out[i] = Fold(kw)
	}
	return out
}
