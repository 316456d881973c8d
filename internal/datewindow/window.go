package datewindow

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/rowanlock/coursefinder-go/internal/textnorm"
)

// defaultWindowDays is the span used when no time text is supplied and as
// the final fallback for unrecognized phrases.
const defaultWindowDays = 56

// defaultWindowLabel describes the 56-day default window.
const defaultWindowLabel = "next 8 weeks"

// Window is a concrete UTC day range plus a human-readable label. Both
// bounds are UTC midnight and inclusive; Start <= End always holds when
// both are present.
type Window struct {
	Start *time.Time `json:"start"`
	End   *time.Time `json:"end"`
	Label string     `json:"label"`
}

// Contains reports whether a day falls inside the window. Bounds that are
// absent do not constrain.
func (w Window) Contains(t time.Time) bool {
	if w.Start != nil && t.Before(*w.Start) {
		return false
	}
	if w.End != nil && t.After(*w.End) {
		return false
	}
	return true
}

// Bounded reports whether the window constrains at least one side.
func (w Window) Bounded() bool {
	return w.Start != nil || w.End != nil
}

// Ordered pattern rules; first match wins.
var (
	anytimeRegex   = regexp.MustCompile(`\b(anytime|any time|whenever)\b`)
	inWeeksRegex   = regexp.MustCompile(`\bin (\d+) weeks?\b`)
	nextWeeksRegex = regexp.MustCompile(`\bnext (\d+) weeks?\b`)
	afterDayRegex  = regexp.MustCompile(`\b(after|later than|from) (\d{1,2})(?:st|nd|rd|th)? (?:of )?([a-z]+)`)
	endOfRegex     = regexp.MustCompile(`\bend of ([a-z]+)`)
)

// Normalize converts a natural-language time expression into a concrete
// window, using now (truncated to UTC midnight) as the reference instant.
// The rule table is evaluated in a fixed order and the first matching
// pattern wins; unrecognized text falls back to the default 56-day window.
func Normalize(text string, now time.Time) Window {
	today := dayUTC(now)
	norm := textnorm.Normalize(text)

	if norm == "" {
		return window(today, today.AddDate(0, 0, defaultWindowDays), defaultWindowLabel)
	}

	if anytimeRegex.MatchString(norm) {
		return window(today, today.AddDate(0, 12, 0), "anytime (next 12 months)")
	}

	if strings.Contains(norm, "this month") {
		start := time.Date(today.Year(), today.Month(), 1, 0, 0, 0, 0, time.UTC)
		return window(start, monthEnd(today.Year(), today.Month()), "this month")
	}

	if strings.Contains(norm, "next month") {
		// Day arithmetic via time.Date handles the December rollover.
		start := time.Date(today.Year(), today.Month()+1, 1, 0, 0, 0, 0, time.UTC)
		return window(start, monthEnd(start.Year(), start.Month()), "next month")
	}

	if strings.Contains(norm, "next week") {
		start := today.AddDate(0, 0, daysUntilNextMonday(today))
		return window(start, start.AddDate(0, 0, 6), "next week")
	}

	if m := inWeeksRegex.FindStringSubmatch(norm); m != nil {
		n, _ := strconv.Atoi(m[1])
		start := today.AddDate(0, 0, n*7)
		return window(start, start.AddDate(0, 0, 6), fmt.Sprintf("in %d weeks", n))
	}

	if m := nextWeeksRegex.FindStringSubmatch(norm); m != nil {
		n, _ := strconv.Atoi(m[1])
		return window(today, today.AddDate(0, 0, n*7), fmt.Sprintf("next %d weeks", n))
	}

	if m := afterDayRegex.FindStringSubmatch(norm); m != nil {
		if month, ok := monthFromToken(m[3]); ok {
			day, _ := strconv.Atoi(m[2])
			year := rolloverYear(today, month)
			start := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
			verb := "from"
			if m[1] != "from" {
				// "after"/"later than" exclude the named day itself.
				verb = "after"
				start = start.AddDate(0, 0, 1)
			}
			label := fmt.Sprintf("%s %d %s", verb, day, month)
			return window(start, monthEnd(year, month), label)
		}
	}

	if m := endOfRegex.FindStringSubmatch(norm); m != nil {
		if month, ok := monthFromToken(m[1]); ok {
			year := rolloverYear(today, month)
			start := time.Date(year, month, 25, 0, 0, 0, 0, time.UTC)
			return window(start, monthEnd(year, month), fmt.Sprintf("end of %s", month))
		}
	}

	if month, ok := monthInText(norm); ok {
		year := rolloverYear(today, month)
		start := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
		return window(start, monthEnd(year, month), fmt.Sprintf("%s %d", month, year))
	}

	return window(today, today.AddDate(0, 0, defaultWindowDays), defaultWindowLabel)
}

// window builds a Window from concrete bounds.
func window(start, end time.Time, label string) Window {
	return Window{Start: &start, End: &end, Label: label}
}

// dayUTC truncates an instant to UTC midnight.
func dayUTC(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// monthEnd returns the last day of the month: day zero of the following
// month under time.Date normalization.
func monthEnd(year int, month time.Month) time.Time {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC)
}

// rolloverYear picks this year for the named month unless it has already
// passed, in which case the window rolls into next year.
func rolloverYear(today time.Time, month time.Month) int {
	if month < today.Month() {
		return today.Year() + 1
	}
	return today.Year()
}

// daysUntilNextMonday returns the offset to the Monday of the following
// week. A Monday "today" still advances a full week.
func daysUntilNextMonday(today time.Time) int {
	offset := (8 - int(today.Weekday())) % 7
	if offset == 0 {
		offset = 7
	}
	return offset
}

// monthInText finds the first full month name appearing anywhere in the
// normalized text. Matching is substring-based, so a month name embedded
// in a longer word still counts; kept deliberately loose to mirror the
// phrase rules above.
func monthInText(norm string) (time.Month, bool) {
	for i, name := range monthNames {
		if strings.Contains(norm, name) {
			return time.Month(i + 1), true
		}
	}
	return 0, false
}
