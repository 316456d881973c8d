package sliceutil

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/rowanlock/coursefinder-go/internal/catalogue"
)

func sessionKey(s catalogue.Session) string {
	return s.Name + "\x00" + s.StartDate
}

func TestDeduplicate_Sessions(t *testing.T) {
	tests := []struct {
		name     string
		sessions []catalogue.Session
		want     []string
	}{
		{
			name:     "empty slice",
			sessions: nil,
			want:     nil,
		},
		{
			name: "no duplicates",
			sessions: []catalogue.Session{
				{Name: "SMSTS | Stratford | 20th August 2025", StartDate: "Wed 20th August 2025"},
				{Name: "SSSTS | Leeds | 25th August 2025", StartDate: "Mon 25th August 2025"},
			},
			want: []string{
				"SMSTS | Stratford | 20th August 2025",
				"SSSTS | Leeds | 25th August 2025",
			},
		},
		{
			name: "repeated listing collapses to first",
			sessions: []catalogue.Session{
				{Name: "SMSTS | Stratford | 20th August 2025", StartDate: "Wed 20th August 2025", Price: "£495.00 + VAT"},
				{Name: "SMSTS | Stratford | 20th August 2025", StartDate: "Wed 20th August 2025", Price: "£450.00"},
			},
			want: []string{"SMSTS | Stratford | 20th August 2025"},
		},
		{
			name: "same name on different dates survives",
			sessions: []catalogue.Session{
				{Name: "SMSTS Online | Zoom", StartDate: "Mon 1st September 2025"},
				{Name: "SMSTS Online | Zoom", StartDate: "Mon 8th September 2025"},
			},
			want: []string{"SMSTS Online | Zoom", "SMSTS Online | Zoom"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Deduplicate(tt.sessions, sessionKey)

			names := make([]string, 0, len(got))
			for _, s := range got {
				names = append(names, s.Name)
			}
			if len(tt.want) == 0 {
				assert.Empty(t, names)
				return
			}
			assert.Equal(t, tt.want, names)
		})
	}
}

func TestDeduplicate_KeepsFirstOccurrence(t *testing.T) {
	sessions := []catalogue.Session{
		{Name: "SMSTS | Stratford | 20th August 2025", StartDate: "Wed 20th August 2025", AvailableSpaces: 6},
		{Name: "SMSTS Refresher | Stratford | 5th September 2025", StartDate: "Fri 5th September 2025", AvailableSpaces: 8},
		{Name: "SMSTS | Stratford | 20th August 2025", StartDate: "Wed 20th August 2025", AvailableSpaces: 2},
	}

	got := Deduplicate(sessions, sessionKey)

	assert.Len(t, got, 2)
	assert.Equal(t, 6, got[0].AvailableSpaces, "first listing wins over a later duplicate")
	assert.Equal(t, "SMSTS Refresher | Stratford | 5th September 2025", got[1].Name)
}

func TestDeduplicate_IntKeys(t *testing.T) {
	spaces := []int{6, 10, 6, 8, 10}
	got := Deduplicate(spaces, func(n int) int { return n })
	assert.Equal(t, []int{6, 10, 8}, got)
}

func BenchmarkDeduplicate(b *testing.B) {
	sessions := make([]catalogue.Session, 0, 1000)
	for i := range 1000 {
		sessions = append(sessions, catalogue.Session{
			Name:      fmt.Sprintf("SMSTS | Venue %d", i%100),
			StartDate: fmt.Sprintf("Day %d", i%50),
		})
	}

	b.ResetTimer()
	for range b.N {
		Deduplicate(sessions, sessionKey)
	}
}
