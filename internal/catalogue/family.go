// Package catalogue owns the static course-catalogue configuration: the
// canonical family list, the alias table, the per-family session-name
// predicates, and the city alias table. All tables are immutable and loaded
// once; nothing in this package retains per-request state.
package catalogue

import "strings"

// Canonical family names. A family is a course category independent of its
// refresher/standard status; refresher variants are separate catalogue
// entries named "<Family> Refresher".
const (
	FamilySMSTS          = "SMSTS"
	FamilySMSTSRefresher = "SMSTS Refresher"
	FamilySSSTS          = "SSSTS"
	FamilySSSTSRefresher = "SSSTS Refresher"
	FamilyTWC            = "TWC"
	FamilyTWCRefresher   = "TWC Refresher"
	FamilyTWS            = "TWS"
	FamilySEATS          = "SEATS"
	FamilyHSA            = "HSA"
	FamilyNEBOSHGeneral  = "NEBOSH General"
	FamilyNEBOSHConstr   = "NEBOSH Construction"
	FamilyIEMA           = "IEMA"
	FamilyMHFA           = "MHFA"
	FamilyIOSHManaging   = "IOSH Managing Safely"
	FamilyIOSHWorking    = "IOSH Working Safely"
	FamilyEUSRWaterAM    = "EUSR Water Hygiene AM"
	FamilyEUSRWaterPM    = "EUSR Water Hygiene PM"
)

// Generic placeholder families. These are valid intermediate resolver
// outputs but invalid terminal search keys: they must be narrowed to a
// concrete child variant before any search runs, and the session-name
// predicate table deliberately has no entry for them.
const (
	GenericIOSH   = "IOSH"
	GenericEUSR   = "EUSR"
	GenericNEBOSH = "NEBOSH"
)

// refresherSuffix is the token that distinguishes a refresher catalogue
// entry from its base family.
const refresherSuffix = " Refresher"

// Entry pairs a canonical catalogue family with the alias phrases that
// resolve to it. Aliases are stored in normalized form (see textnorm) and
// matched as substrings of the normalized user text.
//
// Order matters twice over: entries are scanned top to bottom and the first
// alias hit wins, so more specific phrases must precede looser ones.
type Entry struct {
	Family  string
	Aliases []string
}

// Entries is the alias catalogue in scan order.
//
// Every alias maps to exactly one base family: an alias hit on a
// "<Family> Refresher" entry still resolves to the base family, because
// refresher intent is detected by a separate token pass over the user text.
var Entries = []Entry{
	{FamilySMSTSRefresher, []string{
		"site management safety training scheme refresher",
		"site management refresher",
	}},
	{FamilySMSTS, []string{
		"site management safety training scheme",
		"site management safety training",
		"site managers safety",
		"site management course",
	}},
	{FamilySSSTSRefresher, []string{
		"site supervision safety training scheme refresher",
		"site supervision refresher",
	}},
	{FamilySSSTS, []string{
		"site supervision safety training scheme",
		"site supervisors safety training",
		"site supervision course",
	}},
	{FamilyTWCRefresher, []string{
		"temporary works coordinator refresher",
		"temporary works co ordinator refresher",
	}},
	{FamilyTWC, []string{
		"temporary works coordinator",
		"temporary works co ordinator",
	}},
	{FamilyTWS, []string{
		"temporary works supervisor",
	}},
	{FamilySEATS, []string{
		"site environmental awareness training scheme",
		"site environmental awareness",
	}},
	{FamilyHSA, []string{
		"health and safety awareness",
		"health & safety awareness",
	}},
	{FamilyNEBOSHGeneral, []string{
		"nebosh national general certificate",
		"nebosh general certificate",
		"nebosh general",
	}},
	{FamilyNEBOSHConstr, []string{
		"nebosh construction certificate",
		"nebosh construction",
	}},
	{FamilyIEMA, []string{
		"iema foundation certificate",
		"iema foundation",
		"environmental management foundation",
	}},
	{FamilyMHFA, []string{
		"mental health first aider",
		"mental health first aid",
	}},
	{FamilyIOSHManaging, []string{
		"iosh managing safely",
	}},
	{FamilyIOSHWorking, []string{
		"iosh working safely",
	}},
	{FamilyEUSRWaterAM, []string{
		"water hygiene am",
		"water hygiene morning",
	}},
	{FamilyEUSRWaterPM, []string{
		"water hygiene pm",
		"water hygiene afternoon",
	}},
}

// genericChildren maps each generic placeholder to its concrete child
// variants, in the order they should be suggested.
var genericChildren = map[string][]string{
	GenericIOSH:   {FamilyIOSHManaging, FamilyIOSHWorking},
	GenericEUSR:   {FamilyEUSRWaterAM, FamilyEUSRWaterPM},
	GenericNEBOSH: {FamilyNEBOSHGeneral, FamilyNEBOSHConstr},
}

// BaseName strips a trailing "Refresher" token from a family name.
// Non-refresher names are returned unchanged.
func BaseName(family string) string {
	return strings.TrimSuffix(family, refresherSuffix)
}

// IsRefresherEntry reports whether the family name denotes a refresher
// catalogue entry.
func IsRefresherEntry(family string) bool {
	return strings.HasSuffix(family, refresherSuffix)
}

// IsGeneric reports whether the family is a generic placeholder that needs
// a follow-up to select a concrete child variant.
func IsGeneric(family string) bool {
	_, ok := genericChildren[family]
	return ok
}

// Children returns the concrete child variants of a generic placeholder,
// or nil for a concrete family.
func Children(family string) []string {
	return genericChildren[family]
}

// RefresherName returns the refresher catalogue name for a base family.
func RefresherName(family string) string {
	return BaseName(family) + refresherSuffix
}

// RefresherCapable reports whether the catalogue offers a refresher variant
// for the given base family, i.e. a "<Family> Refresher" entry exists.
func RefresherCapable(family string) bool {
	target := BaseName(family) + refresherSuffix
	for _, e := range Entries {
		if e.Family == target {
			return true
		}
	}
	return false
}

// BaseFamilies returns the canonical concrete base families in catalogue
// order, without refresher entries and without generic placeholders. This
// is the population scanned for closest-family suggestions.
func BaseFamilies() []string {
	seen := make(map[string]bool, len(Entries))
	out := make([]string, 0, len(Entries))
	for _, e := range Entries {
		base := BaseName(e.Family)
		if seen[base] || IsGeneric(base) {
			continue
		}
		seen[base] = true
		out = append(out, base)
	}
	return out
}

// AcronymToken returns the leading token of a family name, used as the
// short form for edit-distance suggestions ("NEBOSH General" -> "NEBOSH").
func AcronymToken(family string) string {
	if i := strings.IndexByte(family, ' '); i > 0 {
		return family[:i]
	}
	return family
}
