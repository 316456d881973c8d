// Package location extracts venue/city/online facets from session display
// names and free user text, and decides whether a session satisfies a
// requested location. All matching happens on normalized text against the
// fixed city-alias table owned by the catalogue package; there is no
// spelling correction on location names.
package location

import (
	"regexp"
	"strings"

	"github.com/rowanlock/coursefinder-go/internal/catalogue"
	"github.com/rowanlock/coursefinder-go/internal/textnorm"
)

// Online is the facet for remote sessions.
const Online = "online"

// venueTBC is the placeholder some catalogue rows carry instead of a venue.
const venueTBC = "venue tbc"

// anyPlaceRegex matches the "no location preference" phrases as whole
// words, so "germany" does not read as "any".
var anyPlaceRegex = regexp.MustCompile(`\b(anywhere|any place|any)\b`)

// SessionFacet extracts the venue/city/online facet from a session display
// name. Precedence: an "online" marker wins; then an explicit pipe-delimited
// venue segment (names with at least three segments carry the venue second);
// finally a city-alias table hit. Returns "" when nothing identifies the
// location.
func SessionFacet(name string) string {
	norm := textnorm.Normalize(name)
	if strings.Contains(norm, Online) {
		return Online
	}

	if segments := strings.Split(name, "|"); len(segments) >= 3 {
		venue := strings.TrimSpace(segments[1])
		if venue != "" && textnorm.Normalize(venue) != venueTBC {
			return venue
		}
	}

	return cityFacet(norm)
}

// UserFacet extracts a requested location from free user text. Returns ""
// both when no location is mentioned and when the user explicitly does not
// care ("anywhere"), which callers treat as "no filter".
func UserFacet(text string) string {
	norm := textnorm.Normalize(text)
	if norm == "" || anyPlaceRegex.MatchString(norm) {
		return ""
	}
	if strings.Contains(norm, Online) {
		return Online
	}
	return cityFacet(norm)
}

// cityFacet returns the canonical city key for the first alias hit in the
// city table, or "".
func cityFacet(norm string) string {
	for _, c := range catalogue.Cities {
		for _, alias := range c.Aliases {
			if strings.Contains(norm, alias) {
				return c.Key
			}
		}
	}
	return ""
}

// Match reports whether a session display name satisfies the requested
// location facet. An empty request matches everything; "online" requires an
// exact facet match; a named city matches when the facets contain each
// other or any configured alias for the city appears in the session facet.
func Match(requested, sessionName string) bool {
	if requested == "" {
		return true
	}

	facet := textnorm.Normalize(SessionFacet(sessionName))
	want := textnorm.Normalize(requested)

	if want == Online {
		return facet == Online
	}
	if facet == "" {
		return false
	}
	if strings.Contains(facet, want) || strings.Contains(want, facet) {
		return true
	}
	for _, alias := range catalogue.CityAliasesFor(want) {
		if strings.Contains(facet, alias) {
			return true
		}
	}
	return false
}
