package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"calgrid/internal/dates"
)

func keys(ts []time.Time) []string {
	out := make([]string, 0, len(ts))
	for _, t := range ts {
		out = append(out, dates.Key(t))
	}
	return out
}

func TestOccurrenceDays(t *testing.T) {
	loc := time.Local
	tests := []struct {
		name string
		occ  Occurrence
		want []string
	}{
		{
			name: "single all-day",
			occ: Occurrence{AllDay: true,
				Start: time.Date(2022, 3, 15, 0, 0, 0, 0, loc),
				End:   time.Date(2022, 3, 16, 0, 0, 0, 0, loc)},
			want: []string{"2022-03-15"},
		},
		{
			name: "multi-day all-day",
			occ: Occurrence{AllDay: true,
				Start: time.Date(2022, 3, 30, 0, 0, 0, 0, loc),
				End:   time.Date(2022, 4, 2, 0, 0, 0, 0, loc)},
			want: []string{"2022-03-30", "2022-03-31", "2022-04-01"},
		},
		{
			name: "timed across midnight",
			occ: Occurrence{
				Start: time.Date(2022, 3, 15, 22, 0, 0, 0, loc),
				End:   time.Date(2022, 3, 16, 1, 0, 0, 0, loc)},
			want: []string{"2022-03-15", "2022-03-16"},
		},
		{
			name: "timed ending at midnight",
			occ: Occurrence{
				Start: time.Date(2022, 3, 15, 20, 0, 0, 0, loc),
				End:   time.Date(2022, 3, 16, 0, 0, 0, 0, loc)},
			want: []string{"2022-03-15"},
		},
		{
			name: "end before start",
			occ: Occurrence{
				Start: time.Date(2022, 3, 15, 20, 0, 0, 0, loc),
				End:   time.Date(2022, 3, 14, 0, 0, 0, 0, loc)},
			want: []string{"2022-03-15"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, keys(tt.occ.Days()))
		})
	}
}
