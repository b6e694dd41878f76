package calendar

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newGenerator(t *testing.T, opts Options[plain]) *Generator[plain] {
	t.Helper()
	if opts.Now == nil {
		opts.Now = fixedNow
	}
	n, err := NormalizeOptions(opts)
	require.NoError(t, err)
	return NewGenerator(n)
}

func disabledIDs(days []*Day[plain]) []string {
	var out []string
	for _, d := range days {
		if d.Disabled.Get() {
			out = append(out, d.ID)
		}
	}
	return out
}

func TestRangeIsInclusiveAndConsecutive(t *testing.T) {
	g := newGenerator(t, Options[plain]{})

	days := g.Range(date(2022, time.February, 20), date(2022, time.March, 10))
	require.Len(t, days, 19)
	assert.Equal(t, "2022-02-20", days[0].ID)
	assert.Equal(t, "2022-03-10", days[len(days)-1].ID)
	requireConsecutive(t, days)

	var today []string
	for _, d := range days {
		if d.IsToday {
			today = append(today, d.ID)
		}
	}
	assert.Equal(t, []string{"2022-03-08"}, today)
}

func TestRangeSwapsReversedBounds(t *testing.T) {
	g := newGenerator(t, Options[plain]{})

	days := g.Range(date(2022, time.March, 5), date(2022, time.March, 1))
	assert.Equal(t, []string{"2022-03-01", "2022-03-02", "2022-03-03", "2022-03-04", "2022-03-05"}, ids(days))
}

func TestRangeSingleDay(t *testing.T) {
	g := newGenerator(t, Options[plain]{})

	days := g.Range(date(2022, time.March, 5), date(2022, time.March, 5).Add(5*time.Hour))
	assert.Equal(t, []string{"2022-03-05"}, ids(days))
}

func TestRangeAcrossDST(t *testing.T) {
	loc, err := time.LoadLocation("Europe/Paris")
	if err != nil {
		t.Skip("tzdata not available")
	}
	g := newGenerator(t, Options[plain]{Location: loc})

	days := g.Range(time.Date(2022, 3, 26, 0, 0, 0, 0, loc), time.Date(2022, 3, 28, 0, 0, 0, 0, loc))
	assert.Equal(t, []string{"2022-03-26", "2022-03-27", "2022-03-28"}, ids(days))
}

func TestRangeDisabledSources(t *testing.T) {
	ics := strings.ReplaceAll(`BEGIN:VCALENDAR
VERSION:2.0
PRODID:-//calgrid//test//EN
BEGIN:VEVENT
UID:holiday@test
DTSTAMP:20220101T000000Z
DTSTART;VALUE=DATE:20220317
DTEND;VALUE=DATE:20220318
SUMMARY:Holiday
END:VEVENT
END:VCALENDAR
`, "\n", "\r\n")

	tests := []struct {
		name string
		opts Options[plain]
		want []string
	}{
		{
			name: "dates",
			opts: Options[plain]{Disabled: []time.Time{date(2022, 3, 2), time.Date(2022, 3, 4, 18, 30, 0, 0, time.Local)}},
			want: []string{"2022-03-02", "2022-03-04"},
		},
		{
			name: "rrule",
			opts: Options[plain]{DisabledRules: []string{"FREQ=WEEKLY;BYDAY=SA,SU"}},
			want: []string{"2022-03-05", "2022-03-06"},
		},
		{
			name: "cron",
			opts: Options[plain]{DisabledCron: []string{"30 9 * * 3"}},
			want: []string{"2022-03-02"},
		},
		{
			name: "ics",
			opts: Options[plain]{DisabledICS: [][]byte{[]byte(ics)}},
			want: nil,
		},
		{
			name: "bounds",
			opts: Options[plain]{MinDate: date(2022, 3, 3), MaxDate: date(2022, 3, 5)},
			want: []string{"2022-03-01", "2022-03-02", "2022-03-06", "2022-03-07"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.opts.StartOn = date(2022, 3, 3)
			g := newGenerator(t, tt.opts)
			assert.Equal(t, tt.want, disabledIDs(g.Range(date(2022, 3, 1), date(2022, 3, 7))))
		})
	}
}

func TestRangeDisabledFromICS(t *testing.T) {
	ics := strings.ReplaceAll(`BEGIN:VCALENDAR
VERSION:2.0
PRODID:-//calgrid//test//EN
BEGIN:VEVENT
UID:holiday@test
DTSTAMP:20220101T000000Z
DTSTART;VALUE=DATE:20220317
DTEND;VALUE=DATE:20220319
SUMMARY:Holiday
END:VEVENT
END:VCALENDAR
`, "\n", "\r\n")
	g := newGenerator(t, Options[plain]{DisabledICS: [][]byte{[]byte(ics)}})

	assert.Equal(t, []string{"2022-03-17", "2022-03-18"}, disabledIDs(g.Range(date(2022, 3, 1), date(2022, 3, 31))))
}

func TestRangePreSelection(t *testing.T) {
	g := newGenerator(t, Options[plain]{PreSelection: []time.Time{date(2022, 3, 5), date(2022, 4, 1)}})

	var selected []string
	for _, d := range g.Range(date(2022, 3, 1), date(2022, 3, 31)) {
		if d.Selected.Get() {
			selected = append(selected, d.ID)
		}
	}
	assert.Equal(t, []string{"2022-03-05"}, selected)
}
