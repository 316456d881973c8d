package search

import (
	"time"

	"github.com/rowanlock/coursefinder-go/internal/catalogue"
	"github.com/rowanlock/coursefinder-go/internal/resolver"
)

// Diagnosis reason codes, ordered by relaxation stage.
const (
	ReasonNoSessionsForCourse = "no_sessions_for_course"
	ReasonNoneInDateWindow    = "none_in_date_window"
	ReasonNoneAtLocation      = "none_at_location"
	ReasonNoCombinedMatch     = "no_combined_match"
)

// nearestLimit caps every "nearest alternatives" list in a diagnosis.
const nearestLimit = 3

// Diagnostics explains an empty search result. Reason identifies which
// constraint eliminated everything; the nearest lists offer the closest
// future sessions under relaxed constraints, and AlternateVariant carries
// sessions of the opposite standard/refresher variant that would have
// matched.
type Diagnostics struct {
	Reason            string   `json:"reason"`
	Message           string   `json:"message"`
	NearestAtLocation []Result `json:"nearest_at_location,omitempty"`
	NearestAnywhere   []Result `json:"nearest_anywhere,omitempty"`
	AlternateVariant  []Result `json:"alternate_variant,omitempty"`
}

// Diagnose explains why Search returned nothing by re-running the filter
// with constraints relaxed one at a time:
//
//  1. no session of the family/variant exists at all,
//  2. sessions exist but none start inside the date window,
//  3. sessions exist in the window but none at the requested location,
//  4. date window and location each match on their own, just never together.
//
// Callers should only invoke it after an empty Search with the same params;
// the relaxation order then guarantees exactly one reason applies.
func Diagnose(sessions []catalogue.Session, p Params) Diagnostics {
	base := filter(sessions, p, false, false)
	if len(base) == 0 {
		return withAlternate(sessions, p, Diagnostics{
			Reason:  ReasonNoSessionsForCourse,
			Message: "no upcoming sessions are scheduled for this course",
		})
	}

	inWindow := filter(sessions, p, true, false)
	if len(inWindow) == 0 {
		return withAlternate(sessions, p, Diagnostics{
			Reason:            ReasonNoneInDateWindow,
			Message:           "sessions exist for this course, but none start in the requested dates",
			NearestAtLocation: nearestFuture(filter(sessions, p, false, true), p.Now),
			NearestAnywhere:   nearestFuture(base, p.Now),
		})
	}

	atLocation := filter(sessions, p, false, true)
	if len(atLocation) == 0 {
		return withAlternate(sessions, p, Diagnostics{
			Reason:          ReasonNoneAtLocation,
			Message:         "sessions exist in the requested dates, but not at the requested location",
			NearestAnywhere: nearestFuture(inWindow, p.Now),
		})
	}

	return withAlternate(sessions, p, Diagnostics{
		Reason:            ReasonNoCombinedMatch,
		Message:           "the requested dates and location each match sessions separately, but no single session satisfies both",
		NearestAtLocation: nearestFuture(atLocation, p.Now),
		NearestAnywhere:   nearestFuture(inWindow, p.Now),
	})
}

// nearestFuture ranks the candidates and keeps the first nearestLimit whose
// parsed start is on or after the reference day. Undated sessions are
// excluded: a "nearest" list of TBC rows helps nobody.
func nearestFuture(candidates []Result, now time.Time) []Result {
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)

	var future []Result
	for _, r := range rank(candidates) {
		if r.Start == nil || r.Start.Before(today) {
			continue
		}
		future = append(future, r)
		if len(future) == nearestLimit {
			break
		}
	}
	return future
}

// withAlternate probes the opposite standard/refresher variant under the
// original date and location constraints and attaches up to nearestLimit
// hits. The probe only runs when the query pins a variant down, either
// through an explicit preference or through a refresher family like "SMSTS
// Refresher".
func withAlternate(sessions []catalogue.Session, p Params, d Diagnostics) Diagnostics {
	alt, ok := oppositeVariant(p)
	if !ok {
		return d
	}

	hits := rank(filter(sessions, alt, true, true))
	d.AlternateVariant = hits[:min(len(hits), nearestLimit)]
	return d
}

// oppositeVariant derives the params for the opposite variant of the
// queried course. A refresher-suffixed family implies a requested
// refresher regardless of the stated preference; an unspecified preference
// on a base family pins nothing down, so there is no opposite to probe.
func oppositeVariant(p Params) (Params, bool) {
	effective := p.Refresher
	if catalogue.IsRefresherEntry(p.Family) {
		effective = resolver.RefresherRequested
	}

	alt := p
	alt.Family = catalogue.BaseName(p.Family)
	switch effective {
	case resolver.RefresherRequested:
		alt.Refresher = resolver.RefresherDeclined
	case resolver.RefresherDeclined:
		alt.Refresher = resolver.RefresherRequested
		if catalogue.RefresherCapable(alt.Family) {
			alt.Family = catalogue.RefresherName(alt.Family)
		}
	default:
		return Params{}, false
	}
	return alt, true
}
