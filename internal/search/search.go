// Package search filters, deduplicates, and ranks catalogue sessions
// against a resolved course family, a refresher preference, a date window,
// and an optional location. When nothing matches it runs staged relaxation
// queries to explain why and to offer the nearest alternatives.
//
// Everything here is pure: the catalogue snapshot is read-only input and
// the reference instant is injected, so concurrent callers need no
// coordination.
package search

import (
	"regexp"
	"slices"
	"strconv"
	"time"

	"github.com/rowanlock/coursefinder-go/internal/catalogue"
	"github.com/rowanlock/coursefinder-go/internal/datewindow"
	"github.com/rowanlock/coursefinder-go/internal/location"
	"github.com/rowanlock/coursefinder-go/internal/resolver"
	"github.com/rowanlock/coursefinder-go/internal/sliceutil"
)

// Params describes one search over a catalogue snapshot.
type Params struct {
	// Family is the resolved canonical family. Generic placeholders never
	// match any session, so an unvalidated query finds nothing.
	Family string

	// Refresher is the user's variant preference. Unspecified accepts
	// both standard and refresher sessions.
	Refresher resolver.RefresherPref

	// Location is the requested facet from location.UserFacet; empty
	// means no location filter.
	Location string

	// Window constrains session start dates when non-nil and bounded.
	Window *datewindow.Window

	// Now is the reference instant for "nearest future" diagnostics.
	Now time.Time
}

// Result is a session projected for presentation: parsed start timestamp,
// numeric price, and extracted venue/format label.
type Result struct {
	Name            string     `json:"name"`
	Start           *time.Time `json:"start"`
	RawStart        string     `json:"raw_start"`
	Price           string     `json:"price,omitempty"`
	PriceValue      float64    `json:"price_value"`
	Venue           string     `json:"venue,omitempty"`
	AvailableSpaces int        `json:"available_spaces"`
	Link            string     `json:"link,omitempty"`
}

// nonPriceRegex strips everything but digits and dots from a price string.
var nonPriceRegex = regexp.MustCompile(`[^0-9.]`)

// Search returns the ranked sessions matching all of the supplied
// constraints: family predicate, refresher agreement, date window, and
// location. Results are deduplicated by (name, raw start text) and sorted
// by parsed start ascending (undated last), then by numeric price.
func Search(sessions []catalogue.Session, p Params) []Result {
	return rank(filter(sessions, p, true, true))
}

// filter applies the family and refresher predicates always, and the date
// and location predicates on demand. The relaxation stages in Diagnose
// reuse it with individual predicates disabled.
func filter(sessions []catalogue.Session, p Params, useDate, useLocation bool) []Result {
	var out []Result
	for _, s := range sessions {
		if !catalogue.NameMatches(p.Family, s.Name) {
			continue
		}
		if !refresherAgrees(p.Refresher, s.Name) {
			continue
		}
		if useLocation && !location.Match(p.Location, s.Name) {
			continue
		}

		r := project(s)
		if useDate && p.Window != nil && p.Window.Bounded() {
			if r.Start == nil || !p.Window.Contains(*r.Start) {
				continue
			}
		}
		out = append(out, r)
	}
	return out
}

// refresherAgrees checks the session name against the requested refresher
// flag: a requested refresher needs the marker present, an explicit
// standard needs it absent, unspecified accepts either.
func refresherAgrees(pref resolver.RefresherPref, name string) bool {
	switch pref {
	case resolver.RefresherRequested:
		return catalogue.HasRefresherMarker(name)
	case resolver.RefresherDeclined:
		return !catalogue.HasRefresherMarker(name)
	}
	return true
}

// project builds the result projection of a raw session row. Unparsable
// dates leave Start nil; unparsable prices leave PriceValue zero. Malformed
// rows are tolerated here and simply fail predicates elsewhere.
func project(s catalogue.Session) Result {
	r := Result{
		Name:            s.Name,
		RawStart:        s.StartDate,
		Price:           s.Price,
		PriceValue:      priceValue(s.Price),
		Venue:           location.SessionFacet(s.Name),
		AvailableSpaces: s.AvailableSpaces,
		Link:            s.Link,
	}
	if t, ok := datewindow.ParseLooseDate(s.StartDate); ok {
		r.Start = &t
	}
	return r
}

// priceValue extracts the numeric value from a price string by stripping
// every non-digit, non-dot character ("£495.00 + VAT" -> 495.00).
func priceValue(price string) float64 {
	cleaned := nonPriceRegex.ReplaceAllString(price, "")
	if cleaned == "" {
		return 0
	}
	v, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return 0
	}
	return v
}

// rank deduplicates by (name, raw start text) keeping first occurrence,
// then sorts by parsed start ascending with undated sessions last, then by
// ascending numeric price.
func rank(results []Result) []Result {
	deduped := sliceutil.Deduplicate(results, func(r Result) string {
		return r.Name + "\x00" + r.RawStart
	})

	slices.SortStableFunc(deduped, func(a, b Result) int {
		switch {
		case a.Start == nil && b.Start != nil:
			return 1
		case a.Start != nil && b.Start == nil:
			return -1
		case a.Start != nil && b.Start != nil && !a.Start.Equal(*b.Start):
			if a.Start.Before(*b.Start) {
				return -1
			}
			return 1
		}
		switch {
		case a.PriceValue < b.PriceValue:
			return -1
		case a.PriceValue > b.PriceValue:
			return 1
		}
		return 0
	})
	return deduped
}
