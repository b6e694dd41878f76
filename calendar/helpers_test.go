package calendar

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"calgrid/internal/dates"
)

// mockToday mirrors the date the grid scenarios were written against:
//
//	     March 2022
//	Su Mo Tu We Th Fr Sa
//	       1  2  3  4  5
//	 6  7  8  9 10 11 12
//	13 14 15 16 17 18 19
//	20 21 22 23 24 25 26
//	27 28 29 30 31
var mockToday = date(2022, time.March, 8)

func fixedNow() time.Time {
	return mockToday.Add(10 * time.Hour)
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.Local)
}

type plain = struct{}

func defaultOptions() Options[plain] {
	return Options[plain]{MinDate: date(2022, time.March, 15), Now: fixedNow}
}

func defaultMonthlyOptions() MonthlyOptions {
	return MonthlyOptions{Infinite: true, FullWeeks: false}
}

func newCalendar[E any](t *testing.T, opts Options[E]) *Calendar[E] {
	t.Helper()
	c, err := New(opts)
	require.NoError(t, err)
	return c
}

func requireConsecutive[E any](t *testing.T, days []*Day[E]) {
	t.Helper()
	for i := 1; i < len(days); i++ {
		require.Equal(t, 1, dates.DaysBetween(days[i-1].Date, days[i].Date),
			"days %s and %s are not consecutive", days[i-1].ID, days[i].ID)
	}
}

func ids[E any](days []*Day[E]) []string {
	out := make([]string, 0, len(days))
	for _, d := range days {
		out = append(out, d.ID)
	}
	return out
}

func find[E any](t *testing.T, days []*Day[E], id string) *Day[E] {
	t.Helper()
	for _, d := range days {
		if d.ID == id {
			return d
		}
	}
	t.Fatalf("day %s not found", id)
	return nil
}
