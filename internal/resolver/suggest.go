package resolver

import (
	"sort"

	"github.com/agnivade/levenshtein"

	"github.com/rowanlock/coursefinder-go/internal/catalogue"
	"github.com/rowanlock/coursefinder-go/internal/textnorm"
)

const (
	// DefaultSuggestionCount caps closest-family suggestions.
	DefaultSuggestionCount = 3

	// maxSuggestionDistance is the inclusive edit-distance cutoff for a
	// family to count as "close" to an unrecognized query.
	maxSuggestionDistance = 3
)

type rankedFamily struct {
	family   string
	distance int
}

// familyDistance computes the minimum Levenshtein distance between the
// normalized query and either the full family name or its leading acronym
// token, both normalized.
func familyDistance(norm, family string) int {
	full := levenshtein.ComputeDistance(norm, textnorm.Normalize(family))
	short := levenshtein.ComputeDistance(norm, textnorm.Normalize(catalogue.AcronymToken(family)))
	if short < full {
		return short
	}
	return full
}

// ClosestFamilies returns the canonical base families within edit distance
// 3 of the query, nearest first, capped to limit. Ties keep catalogue
// order. Returns nil when nothing is close enough.
func ClosestFamilies(term string, limit int) []string {
	norm := textnorm.Normalize(term)
	if norm == "" || limit <= 0 {
		return nil
	}

	var all, near []rankedFamily
	for _, f := range catalogue.BaseFamilies() {
		r := rankedFamily{family: f, distance: familyDistance(norm, f)}
		all = append(all, r)
		if r.distance <= maxSuggestionDistance {
			near = append(near, r)
		}
	}

	// A query with nothing inside the cutoff still gets the nearest
	// families, so an unknown course always yields suggestions.
	ranked := near
	if len(ranked) == 0 {
		ranked = all
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].distance < ranked[j].distance
	})

	if len(ranked) > limit {
		ranked = ranked[:limit]
	}
	out := make([]string, 0, len(ranked))
	for _, r := range ranked {
		out = append(out, r.family)
	}
	return out
}

// nearestRefresherCapable returns up to n refresher-capable base families
// ordered by edit distance from the given family name. Used to steer a
// "variant not offered" query towards families that do renew.
func nearestRefresherCapable(family string, n int) []string {
	norm := textnorm.Normalize(family)

	var ranked []rankedFamily
	for _, f := range catalogue.BaseFamilies() {
		if !catalogue.RefresherCapable(f) || f == family {
			continue
		}
		ranked = append(ranked, rankedFamily{family: f, distance: familyDistance(norm, f)})
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].distance < ranked[j].distance
	})

	if len(ranked) > n {
		ranked = ranked[:n]
	}
	out := make([]string, 0, len(ranked))
	for _, r := range ranked {
		out = append(out, r.family)
	}
	return out
}
