package catalogue

// Session is a raw catalogue row as supplied by the snapshot collaborator.
// It is read-only input: the search engine projects it into result items but
// never mutates or persists it.
//
// The display name commonly encodes venue/format as a pipe-delimited segment
// ("SMSTS Refresher | Stratford | 20th August 2025") and marks refresher
// sessions with a "Refresher" token. Missing or malformed fields are
// tolerated: such rows simply fail individual predicates during filtering.
type Session struct {
	Name            string `json:"name"`
	StartDate       string `json:"start_date"`
	EndDate         string `json:"end_date,omitempty"`
	DatesList       string `json:"dates_list,omitempty"`
	Price           string `json:"price,omitempty"`
	AvailableSpaces int    `json:"available_spaces,omitempty"`
	Link            string `json:"link,omitempty"`
}
