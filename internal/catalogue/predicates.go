package catalogue

import (
	"regexp"
	"strings"
)

// NamePredicate reports whether a session display name belongs to a family.
// Predicates receive the lower-cased display name and are evaluated
// independently of alias lookup.
type NamePredicate func(name string) bool

// Whole-word AM/PM markers for the EUSR Water Hygiene variants. The bare
// letters would otherwise hit inside words like "management".
var (
	amTokenRegex = regexp.MustCompile(`\bam\b`)
	pmTokenRegex = regexp.MustCompile(`\bpm\b`)
)

// hasRefresherToken reports whether a lower-cased session name marks the
// session as a refresher.
func hasRefresherToken(name string) bool {
	return strings.Contains(name, "refresher")
}

// HasRefresherMarker reports whether a session display name marks the
// session as a refresher. Used by the search engine to honor an explicit
// standard/refresher preference.
func HasRefresherMarker(displayName string) bool {
	return hasRefresherToken(strings.ToLower(displayName))
}

// containsAny reports whether name contains at least one of the phrases.
func containsAny(name string, phrases ...string) bool {
	for _, p := range phrases {
		if strings.Contains(name, p) {
			return true
		}
	}
	return false
}

// splitPair builds the Standard/Refresher predicate pair for families whose
// catalogue names differ only by the refresher token.
func splitPair(wantRefresher bool, phrases ...string) NamePredicate {
	return func(name string) bool {
		return containsAny(name, phrases...) && hasRefresherToken(name) == wantRefresher
	}
}

// namePredicates is the family-to-name match table. Generic placeholders
// (bare IOSH, EUSR, NEBOSH) deliberately have no entry: they must never
// directly match a catalogue row, so NameMatches returns false for them and
// the caller is forced through the validator's clarification path first.
var namePredicates = map[string]NamePredicate{
	FamilySMSTS:          splitPair(false, "smsts", "site management safety training"),
	FamilySMSTSRefresher: splitPair(true, "smsts", "site management safety training"),
	FamilySSSTS:          splitPair(false, "sssts", "site supervision safety training"),
	FamilySSSTSRefresher: splitPair(true, "sssts", "site supervision safety training"),
	FamilyTWC:            splitPair(false, "temporary works coordinator", "temporary works co-ordinator", "twc"),
	FamilyTWCRefresher:   splitPair(true, "temporary works coordinator", "temporary works co-ordinator", "twc"),
	FamilyTWS: func(name string) bool {
		return containsAny(name, "temporary works supervisor", "tws")
	},
	FamilySEATS: func(name string) bool {
		return containsAny(name, "seats", "site environmental awareness")
	},
	FamilyHSA: func(name string) bool {
		return containsAny(name, "health and safety awareness", "health & safety awareness", "hsa")
	},
	FamilyIEMA: func(name string) bool {
		return containsAny(name, "iema", "environmental management")
	},
	FamilyMHFA: func(name string) bool {
		return containsAny(name, "mhfa", "mental health first aid")
	},
	FamilyNEBOSHGeneral: func(name string) bool {
		return strings.Contains(name, "nebosh") && strings.Contains(name, "general")
	},
	FamilyNEBOSHConstr: func(name string) bool {
		return strings.Contains(name, "nebosh") && strings.Contains(name, "construction")
	},
	FamilyIOSHManaging: func(name string) bool {
		return strings.Contains(name, "managing safely")
	},
	FamilyIOSHWorking: func(name string) bool {
		return strings.Contains(name, "working safely")
	},
	FamilyEUSRWaterAM: func(name string) bool {
		return strings.Contains(name, "water hygiene") &&
			(amTokenRegex.MatchString(name) || strings.Contains(name, "morning"))
	},
	FamilyEUSRWaterPM: func(name string) bool {
		return strings.Contains(name, "water hygiene") &&
			(pmTokenRegex.MatchString(name) || strings.Contains(name, "afternoon"))
	},
}

// NameMatches reports whether the session display name satisfies the match
// predicate for the given family. Unknown families and generic placeholders
// never match.
func NameMatches(family, displayName string) bool {
	pred, ok := namePredicates[family]
	if !ok {
		return false
	}
	return pred(strings.ToLower(displayName))
}
