package search

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rowanlock/coursefinder-go/internal/catalogue"
	"github.com/rowanlock/coursefinder-go/internal/datewindow"
	"github.com/rowanlock/coursefinder-go/internal/resolver"
)

// testNow is a Friday; every fixture date is relative to it.
var testNow = time.Date(2025, time.August, 15, 0, 0, 0, 0, time.UTC)

func utcDate(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func boundedWindow(start, end time.Time) *datewindow.Window {
	return &datewindow.Window{Start: &start, End: &end}
}

func normalizedWindow(text string, now time.Time) *datewindow.Window {
	w := datewindow.Normalize(text, now)
	return &w
}

func fixtureSessions() []catalogue.Session {
	return []catalogue.Session{
		{
			Name:            "SMSTS | Stratford Training Centre | 20th August 2025",
			StartDate:       "Wed 20th August 2025",
			Price:           "£495.00 + VAT",
			AvailableSpaces: 6,
			Link:            "https://example.test/smsts-stratford",
		},
		{
			// Exact duplicate row, as the upstream feed sometimes emits.
			Name:            "SMSTS | Stratford Training Centre | 20th August 2025",
			StartDate:       "Wed 20th August 2025",
			Price:           "£495.00 + VAT",
			AvailableSpaces: 6,
			Link:            "https://example.test/smsts-stratford",
		},
		{
			Name:            "SMSTS Online | Zoom | 1st September 2025",
			StartDate:       "Mon 1st September 2025",
			Price:           "£450.00",
			AvailableSpaces: 10,
		},
		{
			Name:            "SMSTS | Manchester | 10th November 2025",
			StartDate:       "Mon 10th November 2025",
			Price:           "£475.00",
			AvailableSpaces: 4,
		},
		{
			Name:            "SMSTS | Venue TBC | TBC",
			StartDate:       "TBC",
			Price:           "£495.00",
			AvailableSpaces: 12,
		},
		{
			Name:            "SMSTS Refresher | Stratford Training Centre | 5th September 2025",
			StartDate:       "Fri 5th September 2025",
			Price:           "£299.00",
			AvailableSpaces: 8,
		},
		{
			Name:            "SSSTS | Leeds | 22nd August 2025",
			StartDate:       "Fri 22nd August 2025",
			Price:           "£265.00",
			AvailableSpaces: 5,
		},
		{
			Name:            "Temporary Works Supervisor | Birmingham | 2nd September 2025",
			StartDate:       "Tue 2nd September 2025",
			Price:           "£325.00",
			AvailableSpaces: 7,
		},
	}
}

func TestSearchFiltersDedupesAndSorts(t *testing.T) {
	t.Parallel()
	got := Search(fixtureSessions(), Params{
		Family: catalogue.FamilySMSTS,
		Window: normalizedWindow("", testNow),
		Now:    testNow,
	})

	require.Len(t, got, 2, "duplicate, refresher, out-of-window, and undated rows must drop")
	assert.Equal(t, "SMSTS | Stratford Training Centre | 20th August 2025", got[0].Name)
	assert.Equal(t, "SMSTS Online | Zoom | 1st September 2025", got[1].Name)

	require.NotNil(t, got[0].Start)
	assert.Equal(t, utcDate(2025, time.August, 20), *got[0].Start)
	assert.Equal(t, 495.0, got[0].PriceValue)
	assert.Equal(t, "Stratford Training Centre", got[0].Venue)
	assert.Equal(t, "online", got[1].Venue)
}

func TestSearchLocationFilter(t *testing.T) {
	t.Parallel()
	got := Search(fixtureSessions(), Params{
		Family:   catalogue.FamilySMSTS,
		Location: "stratford",
		Window:   normalizedWindow("", testNow),
		Now:      testNow,
	})

	require.Len(t, got, 1)
	assert.Equal(t, "SMSTS | Stratford Training Centre | 20th August 2025", got[0].Name)
}

func TestSearchRefresherFamily(t *testing.T) {
	t.Parallel()
	got := Search(fixtureSessions(), Params{
		Family: catalogue.FamilySMSTSRefresher,
		Window: normalizedWindow("", testNow),
		Now:    testNow,
	})

	require.Len(t, got, 1)
	assert.Equal(t, "SMSTS Refresher | Stratford Training Centre | 5th September 2025", got[0].Name)
}

func TestSearchRefresherPreferenceOnSharedPredicate(t *testing.T) {
	t.Parallel()
	// TWS standard and refresher sessions share one name predicate, so the
	// preference flag is what separates them.
	sessions := append(fixtureSessions(), catalogue.Session{
		Name:            "Temporary Works Supervisor Refresher | Leeds | 3rd September 2025",
		StartDate:       "Wed 3rd September 2025",
		Price:           "£199.00",
		AvailableSpaces: 9,
	})

	window := normalizedWindow("", testNow)

	declined := Search(sessions, Params{
		Family:    catalogue.FamilyTWS,
		Refresher: resolver.RefresherDeclined,
		Window:    window,
		Now:       testNow,
	})
	require.Len(t, declined, 1)
	assert.Equal(t, "Temporary Works Supervisor | Birmingham | 2nd September 2025", declined[0].Name)

	requested := Search(sessions, Params{
		Family:    catalogue.FamilyTWS,
		Refresher: resolver.RefresherRequested,
		Window:    window,
		Now:       testNow,
	})
	require.Len(t, requested, 1)
	assert.Equal(t, "Temporary Works Supervisor Refresher | Leeds | 3rd September 2025", requested[0].Name)

	both := Search(sessions, Params{
		Family: catalogue.FamilyTWS,
		Window: window,
		Now:    testNow,
	})
	assert.Len(t, both, 2)
}

func TestSearchGenericFamilyMatchesNothing(t *testing.T) {
	t.Parallel()
	got := Search(fixtureSessions(), Params{
		Family: catalogue.GenericIOSH,
		Window: normalizedWindow("", testNow),
		Now:    testNow,
	})
	assert.Empty(t, got, "generic placeholders must never reach sessions directly")
}

func TestSearchUnboundedWindowKeepsUndated(t *testing.T) {
	t.Parallel()
	got := Search(fixtureSessions(), Params{
		Family: catalogue.FamilySMSTS,
		Now:    testNow,
	})

	require.Len(t, got, 4)
	last := got[len(got)-1]
	assert.Nil(t, last.Start, "undated sessions sort last")
	assert.Equal(t, "TBC", last.RawStart)
}

func TestRankPriceTieBreak(t *testing.T) {
	t.Parallel()
	results := []Result{
		{Name: "b", RawStart: "x", PriceValue: 500},
		{Name: "a", RawStart: "x", PriceValue: 450},
	}
	ranked := rank(results)
	require.Len(t, ranked, 2)
	assert.Equal(t, "a", ranked[0].Name, "equal (missing) dates fall back to price ascending")
}

func TestPriceValue(t *testing.T) {
	t.Parallel()
	tests := []struct {
		price string
		want  float64
	}{
		{"£495.00 + VAT", 495},
		{"450", 450},
		{"POA", 0},
		{"", 0},
	}
	for _, tt := range tests {
		if got := priceValue(tt.price); got != tt.want {
			t.Errorf("priceValue(%q) = %v, want %v", tt.price, got, tt.want)
		}
	}
}
