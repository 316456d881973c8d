// Package textnorm provides the text normalization substrate shared by all
// matching components. Alias lookup, date phrase detection, and location
// facet matching all operate on normalized text, so every substring test in
// the application goes through Normalize first.
package textnorm

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// stripMarks decomposes to NFD, removes combining marks, and recomposes.
// This turns "Café" into "Cafe" without touching base characters.
var stripMarks = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Normalize lower-cases the input, strips diacritical marks, removes every
// character outside [a-z0-9+& ], collapses runs of whitespace, and trims.
//
// The function is pure and idempotent: Normalize(Normalize(s)) == Normalize(s).
//
// Example:
//
//	Normalize("  SMSTS Café, Stratford! ") returns "smsts cafe stratford"
func Normalize(text string) string {
	folded, _, err := transform.String(stripMarks, strings.ToLower(text))
	if err != nil {
		// transform.String only fails on malformed UTF-8; fall back to the
		// lower-cased input and let the character filter below drop the rest.
		folded = strings.ToLower(text)
	}

	var b strings.Builder
	b.Grow(len(folded))
	pendingSpace := false
	for _, r := range folded {
		switch {
		case (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == '+' || r == '&':
			if pendingSpace && b.Len() > 0 {
				b.WriteByte(' ')
			}
			pendingSpace = false
			b.WriteRune(r)
		case unicode.IsSpace(r):
			pendingSpace = true
		}
	}
	return b.String()
}
