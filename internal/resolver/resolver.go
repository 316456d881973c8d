// Package resolver implements the family resolution engine and the
// catalogue validator: it maps free user text to one canonical course
// family plus a tri-state refresher preference, and classifies the result
// as matched, needing clarification, or unknown.
//
// Resolution is a fixed-order, first-match-wins pipeline over normalized
// text. Every stage is a plain substring or whole-word test so precedence
// stays auditable; there is no scoring and no state across calls.
package resolver

import (
	"regexp"
	"strings"

	"github.com/rowanlock/coursefinder-go/internal/catalogue"
	"github.com/rowanlock/coursefinder-go/internal/textnorm"
)

// RefresherPref is the tri-state refresher preference extracted from user
// text. Unspecified means "accept either variant".
type RefresherPref int

const (
	RefresherUnspecified RefresherPref = iota
	RefresherRequested
	RefresherDeclined
)

// MarshalJSON renders the preference as true/false/null so API consumers
// see the same tri-state shape the resolver works with.
func (p RefresherPref) MarshalJSON() ([]byte, error) {
	switch p {
	case RefresherRequested:
		return []byte("true"), nil
	case RefresherDeclined:
		return []byte("false"), nil
	default:
		return []byte("null"), nil
	}
}

// Query is a resolved course query. Family is a concrete canonical family,
// a generic placeholder (IOSH, EUSR, NEBOSH) that requires a follow-up
// before any search runs, or empty when the text is unrecognized.
type Query struct {
	Family    string
	Refresher RefresherPref
}

// Refresher-intent tokens, matched as whole words against normalized text.
// "standard" is only consulted when no refresher-positive token matched.
var (
	refresherTokenRegex = regexp.MustCompile(`\b(refresher|renewal|update|refresh)\b`)
	standardTokenRegex  = regexp.MustCompile(`\bstandard\b`)
	amWordRegex         = regexp.MustCompile(`\bam\b`)
	pmWordRegex         = regexp.MustCompile(`\bpm\b`)
)

// acronymFamilies maps bare acronyms to base families, scanned in order as
// substrings of the normalized text. The checks are deliberately not
// word-boundaried: an acronym inside a longer token still hits. Known
// heuristic limitation, kept because existing aliases rely on it.
var acronymFamilies = []struct {
	token  string
	family string
}{
	{"smsts", catalogue.FamilySMSTS},
	{"sssts", catalogue.FamilySSSTS},
	{"twc", catalogue.FamilyTWC},
	{"tws", catalogue.FamilyTWS},
	{"seats", catalogue.FamilySEATS},
	{"eusr", catalogue.GenericEUSR},
	{"hsa", catalogue.FamilyHSA},
	{"nebosh", catalogue.GenericNEBOSH},
	{"iema", catalogue.FamilyIEMA},
	{"mhfa", catalogue.FamilyMHFA},
	{"iosh", catalogue.GenericIOSH},
}

// Resolve maps free text to a resolved query. Family resolution and
// refresher detection are independent passes over the same normalized text.
func Resolve(term string) Query {
	norm := textnorm.Normalize(term)
	return Query{
		Family:    resolveFamily(norm),
		Refresher: detectRefresher(norm),
	}
}

// resolveFamily runs the ordered resolution stages; the first stage that
// produces a family wins, then post-processing specializations apply.
func resolveFamily(norm string) string {
	if norm == "" {
		return ""
	}

	family := aliasFamily(norm)
	if family == "" {
		family = acronymFamily(norm)
	}
	if family == "" {
		family = ioshPhraseFamily(norm)
	}
	if family == "" {
		family = waterHygieneFamily(norm)
	}
	if family == "" {
		family = bareHealthSafetyFamily(norm)
	}
	if family == "" {
		return ""
	}
	return specialize(family, norm)
}

// aliasFamily scans every alias in catalogue order and adopts the base
// family of the first alias contained in the text.
func aliasFamily(norm string) string {
	for _, e := range catalogue.Entries {
		for _, alias := range e.Aliases {
			if strings.Contains(norm, alias) {
				return catalogue.BaseName(e.Family)
			}
		}
	}
	return ""
}

// acronymFamily scans the fixed acronym list as substrings of the text.
func acronymFamily(norm string) string {
	for _, a := range acronymFamilies {
		if strings.Contains(norm, a.token) {
			return a.family
		}
	}
	return ""
}

// ioshPhraseFamily resolves the IOSH governing phrases directly, with or
// without an "iosh" prefix.
func ioshPhraseFamily(norm string) string {
	switch {
	case strings.Contains(norm, "managing safely"):
		return catalogue.FamilyIOSHManaging
	case strings.Contains(norm, "working safely"):
		return catalogue.FamilyIOSHWorking
	}
	return ""
}

// waterHygieneFamily resolves "water hygiene" text to the AM/PM variant
// when a session-half marker is present, else the generic EUSR placeholder.
func waterHygieneFamily(norm string) string {
	if !strings.Contains(norm, "water hygiene") {
		return ""
	}
	switch {
	case amWordRegex.MatchString(norm) || strings.Contains(norm, "morning"):
		return catalogue.FamilyEUSRWaterAM
	case pmWordRegex.MatchString(norm) || strings.Contains(norm, "afternoon"):
		return catalogue.FamilyEUSRWaterPM
	}
	return catalogue.GenericEUSR
}

// bareHealthSafetyFamily resolves a bare "health (and/&) safety" phrase to
// HSA, but only when neither NEBOSH nor IOSH is in play.
func bareHealthSafetyFamily(norm string) string {
	if strings.Contains(norm, "nebosh") || strings.Contains(norm, "iosh") {
		return ""
	}
	if strings.Contains(norm, "health and safety") || strings.Contains(norm, "health & safety") {
		return catalogue.FamilyHSA
	}
	return ""
}

// specialize applies the post-processing rules: NEBOSH narrowing/collapse
// and re-specialization of generic IOSH/EUSR placeholders when the
// governing phrase or AM/PM pattern appears anywhere in the text.
func specialize(family, norm string) string {
	switch {
	case strings.HasPrefix(family, catalogue.GenericNEBOSH):
		switch {
		case strings.Contains(norm, "construction"):
			return catalogue.FamilyNEBOSHConstr
		case strings.Contains(norm, "general"):
			return catalogue.FamilyNEBOSHGeneral
		}
		return catalogue.GenericNEBOSH
	case family == catalogue.GenericIOSH:
		if f := ioshPhraseFamily(norm); f != "" {
			return f
		}
	case family == catalogue.GenericEUSR:
		switch {
		case amWordRegex.MatchString(norm) || strings.Contains(norm, "morning"):
			return catalogue.FamilyEUSRWaterAM
		case pmWordRegex.MatchString(norm) || strings.Contains(norm, "afternoon"):
			return catalogue.FamilyEUSRWaterPM
		}
	}
	return family
}

// detectRefresher extracts the refresher preference from normalized text.
// Refresher-positive tokens win; "standard" is checked only afterwards.
func detectRefresher(norm string) RefresherPref {
	if refresherTokenRegex.MatchString(norm) {
		return RefresherRequested
	}
	if standardTokenRegex.MatchString(norm) {
		return RefresherDeclined
	}
	return RefresherUnspecified
}

// FamilyLabel derives a single display label from a resolved query.
// Generic placeholders pass through unmodified, forcing the caller to ask
// a follow-up. A family already carrying the Refresher suffix is returned
// as-is; otherwise the suffix is appended only when the user asked for a
// refresher and the family offers one.
func FamilyLabel(q Query) string {
	switch {
	case q.Family == "":
		return ""
	case catalogue.IsGeneric(q.Family):
		return q.Family
	case catalogue.IsRefresherEntry(q.Family):
		return q.Family
	case q.Refresher == RefresherRequested && catalogue.RefresherCapable(q.Family):
		return catalogue.RefresherName(q.Family)
	}
	return q.Family
}
