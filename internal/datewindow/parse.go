// Package datewindow converts natural-language time expressions into
// concrete UTC day ranges. It owns both the loose single-date parser used
// for catalogue session dates ("Wed 20th August 2025") and the window
// normalizer for relative phrases ("next month", "in 3 weeks").
package datewindow

import (
	"strconv"
	"strings"
	"time"
)

var monthNames = []string{
	"january", "february", "march", "april", "may", "june",
	"july", "august", "september", "october", "november", "december",
}

// monthFromToken matches a month token exactly or as an abbreviation of at
// least three letters ("aug" -> August).
func monthFromToken(tok string) (time.Month, bool) {
	for i, name := range monthNames {
		if tok == name || (len(tok) >= 3 && strings.HasPrefix(name, tok)) {
			return time.Month(i + 1), true
		}
	}
	return 0, false
}

// isNumeric reports whether s is non-empty and contains only digits.
func isNumeric(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// stripOrdinal removes a trailing ordinal suffix from a day token
// ("20th" -> "20"). Tokens without one are returned unchanged.
func stripOrdinal(tok string) string {
	for _, suffix := range []string{"st", "nd", "rd", "th"} {
		trimmed := strings.TrimSuffix(tok, suffix)
		if trimmed != tok && isNumeric(trimmed) {
			return trimmed
		}
	}
	return tok
}

// ParseLooseDate parses a day/month/year phrase with an optional leading
// weekday name and optional ordinal suffix: "Wed 20th August 2025" and
// "20 August 2025" both parse to 2025-08-20 UTC midnight.
//
// The weekday is detected structurally: a non-numeric first token shifts
// day/month/year by one position. Returns false when any of day, month, or
// year fails to parse.
func ParseLooseDate(text string) (time.Time, bool) {
	cleaned := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(text)), ",", "")
	fields := strings.Fields(cleaned)
	if len(fields) == 0 {
		return time.Time{}, false
	}

	offset := 0
	if !isNumeric(stripOrdinal(fields[0])) {
		offset = 1
	}
	if len(fields) < offset+3 {
		return time.Time{}, false
	}

	day, err := strconv.Atoi(stripOrdinal(fields[offset]))
	if err != nil {
		return time.Time{}, false
	}
	month, ok := monthFromToken(fields[offset+1])
	if !ok {
		return time.Time{}, false
	}
	year, err := strconv.Atoi(fields[offset+2])
	if err != nil {
		return time.Time{}, false
	}

	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC), true
}
