package search

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rowanlock/coursefinder-go/internal/catalogue"
	"github.com/rowanlock/coursefinder-go/internal/resolver"
)

func TestDiagnoseNoSessionsForCourse(t *testing.T) {
	t.Parallel()
	d := Diagnose(fixtureSessions(), Params{
		Family: catalogue.FamilyIEMA,
		Window: normalizedWindow("", testNow),
		Now:    testNow,
	})

	assert.Equal(t, ReasonNoSessionsForCourse, d.Reason)
	assert.Empty(t, d.NearestAtLocation)
	assert.Empty(t, d.NearestAnywhere)
}

func TestDiagnoseNoneInDateWindow(t *testing.T) {
	t.Parallel()
	d := Diagnose(fixtureSessions(), Params{
		Family:   catalogue.FamilySMSTS,
		Location: "stratford",
		Window:   boundedWindow(utcDate(2025, time.December, 1), utcDate(2025, time.December, 31)),
		Now:      testNow,
	})

	assert.Equal(t, ReasonNoneInDateWindow, d.Reason)

	require.Len(t, d.NearestAtLocation, 1)
	assert.Equal(t, "SMSTS | Stratford Training Centre | 20th August 2025", d.NearestAtLocation[0].Name)

	require.Len(t, d.NearestAnywhere, 3, "nearest lists are capped at three")
	assert.Equal(t, "SMSTS | Stratford Training Centre | 20th August 2025", d.NearestAnywhere[0].Name)
	assert.Equal(t, "SMSTS Online | Zoom | 1st September 2025", d.NearestAnywhere[1].Name)
	assert.Equal(t, "SMSTS | Manchester | 10th November 2025", d.NearestAnywhere[2].Name)
}

func TestDiagnoseNoneAtLocation(t *testing.T) {
	t.Parallel()
	d := Diagnose(fixtureSessions(), Params{
		Family:   catalogue.FamilySMSTS,
		Location: "leeds",
		Window:   normalizedWindow("", testNow),
		Now:      testNow,
	})

	assert.Equal(t, ReasonNoneAtLocation, d.Reason)
	assert.Empty(t, d.NearestAtLocation)
	require.NotEmpty(t, d.NearestAnywhere)
	assert.Equal(t, "SMSTS | Stratford Training Centre | 20th August 2025", d.NearestAnywhere[0].Name)
}

func TestDiagnoseNoCombinedMatch(t *testing.T) {
	t.Parallel()
	// Manchester only has the November session; the window only covers
	// August and September. Each constraint matches on its own.
	d := Diagnose(fixtureSessions(), Params{
		Family:   catalogue.FamilySMSTS,
		Location: "manchester",
		Window:   boundedWindow(testNow, utcDate(2025, time.September, 30)),
		Now:      testNow,
	})

	assert.Equal(t, ReasonNoCombinedMatch, d.Reason)
	require.Len(t, d.NearestAtLocation, 1)
	assert.Equal(t, "SMSTS | Manchester | 10th November 2025", d.NearestAtLocation[0].Name)
	require.NotEmpty(t, d.NearestAnywhere)
	assert.Equal(t, "SMSTS | Stratford Training Centre | 20th August 2025", d.NearestAnywhere[0].Name)
}

func TestDiagnoseNearestSkipsPastAndUndated(t *testing.T) {
	t.Parallel()
	sessions := append(fixtureSessions(), catalogue.Session{
		Name:      "SMSTS | Leeds | 1st July 2025",
		StartDate: "Tue 1st July 2025",
		Price:     "£495.00",
	})

	d := Diagnose(sessions, Params{
		Family: catalogue.FamilySMSTS,
		Window: boundedWindow(utcDate(2025, time.December, 1), utcDate(2025, time.December, 31)),
		Now:    testNow,
	})

	require.Equal(t, ReasonNoneInDateWindow, d.Reason)
	for _, r := range d.NearestAnywhere {
		require.NotNil(t, r.Start)
		assert.False(t, r.Start.Before(testNow), "nearest list must not contain past sessions: %s", r.Name)
	}
}

func TestDiagnoseAlternateVariantForRefresherFamily(t *testing.T) {
	t.Parallel()
	// The refresher only runs in September, so an August-only window fails,
	// but the standard SMSTS on the 20th would have fit.
	d := Diagnose(fixtureSessions(), Params{
		Family: catalogue.FamilySMSTSRefresher,
		Window: boundedWindow(testNow, utcDate(2025, time.August, 31)),
		Now:    testNow,
	})

	assert.Equal(t, ReasonNoneInDateWindow, d.Reason)
	require.Len(t, d.AlternateVariant, 1)
	assert.Equal(t, "SMSTS | Stratford Training Centre | 20th August 2025", d.AlternateVariant[0].Name)
}

func TestDiagnoseAlternateVariantForDeclinedRefresher(t *testing.T) {
	t.Parallel()
	// Explicit standard SMSTS in a September-only window: only the
	// refresher runs then, so the probe should surface it.
	d := Diagnose(fixtureSessions(), Params{
		Family:    catalogue.FamilySMSTS,
		Refresher: resolver.RefresherDeclined,
		Location:  "stratford",
		Window:    boundedWindow(utcDate(2025, time.September, 2), utcDate(2025, time.September, 30)),
		Now:       testNow,
	})

	require.Len(t, d.AlternateVariant, 1)
	assert.Equal(t, "SMSTS Refresher | Stratford Training Centre | 5th September 2025", d.AlternateVariant[0].Name)
}

func TestDiagnoseNoAlternateWhenVariantUnspecified(t *testing.T) {
	t.Parallel()
	d := Diagnose(fixtureSessions(), Params{
		Family: catalogue.FamilySMSTS,
		Window: boundedWindow(utcDate(2025, time.December, 1), utcDate(2025, time.December, 31)),
		Now:    testNow,
	})

	assert.Empty(t, d.AlternateVariant, "an unspecified preference on a base family pins no variant down")
}
