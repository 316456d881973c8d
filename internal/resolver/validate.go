package resolver

import "github.com/rowanlock/coursefinder-go/internal/catalogue"

// Reason classifies a validated course query. These are the only
// caller-visible failure categories the core produces; "no match" is an
// expected outcome, never an error.
type Reason string

const (
	ReasonOK                Reason = "ok"
	ReasonMissingFamily     Reason = "missing_family"
	ReasonNeedsVariant      Reason = "needs_variant"
	ReasonVariantNotOffered Reason = "variant_not_offered"
)

// Suggestion is a single alternative course label offered to the user.
type Suggestion struct {
	Label string `json:"label"`
}

// Validation is the result of classifying a course query against the
// catalogue model. Exists is true only when the query is concrete and
// satisfiable: not generic, and refresher availability matches.
type Validation struct {
	RecognizedFamily   string        `json:"recognized_family,omitempty"`
	RefresherRequested RefresherPref `json:"refresher_requested"`
	Exists             bool          `json:"exists"`
	NormalizedFamily   string        `json:"normalized_family,omitempty"`
	Reason             Reason        `json:"reason"`
	Suggestions        []Suggestion  `json:"suggestions,omitempty"`
}

// Validate classifies a course query using the default suggestion cap.
func Validate(term string) Validation {
	return ValidateWithLimit(term, DefaultSuggestionCount)
}

// ValidateWithLimit resolves the query and classifies it:
//
//   - no family resolved: missing_family, with closest-family suggestions
//     (each also offered as its Refresher variant when one exists);
//   - generic placeholder: needs_variant, suggesting exactly the concrete
//     child variants;
//   - refresher requested for a family that does not renew:
//     variant_not_offered, suggesting the standard form plus the nearest
//     refresher-capable families as their Refresher variants;
//   - otherwise: ok, with the Refresher suffix applied when explicitly
//     requested.
func ValidateWithLimit(term string, suggestionLimit int) Validation {
	q := Resolve(term)
	v := Validation{
		RecognizedFamily:   q.Family,
		RefresherRequested: q.Refresher,
	}

	switch {
	case q.Family == "":
		v.Reason = ReasonMissingFamily
		for _, f := range ClosestFamilies(term, suggestionLimit) {
			v.Suggestions = append(v.Suggestions, Suggestion{Label: f})
			if catalogue.RefresherCapable(f) {
				v.Suggestions = append(v.Suggestions, Suggestion{Label: catalogue.RefresherName(f)})
			}
		}

	case catalogue.IsGeneric(q.Family):
		v.Reason = ReasonNeedsVariant
		for _, child := range catalogue.Children(q.Family) {
			v.Suggestions = append(v.Suggestions, Suggestion{Label: child})
		}

	case q.Refresher == RefresherRequested && !catalogue.RefresherCapable(q.Family):
		v.Reason = ReasonVariantNotOffered
		v.Suggestions = append(v.Suggestions, Suggestion{Label: q.Family})
		for _, f := range nearestRefresherCapable(q.Family, 2) {
			v.Suggestions = append(v.Suggestions, Suggestion{Label: catalogue.RefresherName(f)})
		}

	default:
		v.Reason = ReasonOK
		v.Exists = true
		v.NormalizedFamily = q.Family
		if q.Refresher == RefresherRequested && !catalogue.IsRefresherEntry(q.Family) {
			v.NormalizedFamily = catalogue.RefresherName(q.Family)
		}
	}

	return v
}
