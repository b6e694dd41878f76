package calendar

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewReturnsIndependentViews(t *testing.T) {
	c := newCalendar(t, defaultOptions())

	a := c.Monthly(defaultMonthlyOptions())
	b := c.Monthly(defaultMonthlyOptions())
	w := c.Weekly(DefaultWeeklyOptions())

	a.SelectSingle(a.CurrentMonth().Find(date(2022, 3, 16)))

	assert.Len(t, a.Selected.Get(), 1)
	assert.Empty(t, b.Selected.Get())
	assert.Empty(t, w.Selected.Get())

	a.NextMonth()
	assert.Equal(t, time.March, b.CurrentMonth().Month)
}

func TestPreSelectionAppliesToEveryView(t *testing.T) {
	opts := defaultOptions()
	opts.PreSelection = []time.Time{date(2022, 3, 16)}
	c := newCalendar(t, opts)

	assert.Equal(t, []string{"2022-03-16"}, ids(c.Monthly(DefaultMonthlyOptions()).Selected.Get()))
	assert.Equal(t, []string{"2022-03-16"}, ids(c.Weekly(DefaultWeeklyOptions()).Selected.Get()))
}

func TestCalendarFactory(t *testing.T) {
	c := newCalendar(t, defaultOptions())

	d := c.Factory().FromDate(2022, time.March, 8)
	assert.True(t, d.IsToday)
}

func TestWeekdays(t *testing.T) {
	tests := []struct {
		name     string
		firstDay time.Weekday
		locale   string
		format   []string
		want     []string
	}{
		{"default", time.Sunday, "", nil, []string{"S", "M", "T", "W", "T", "F", "S"}},
		{"monday first", time.Monday, "", nil, []string{"M", "T", "W", "T", "F", "S", "S"}},
		{"tuesday first", time.Tuesday, "", nil, []string{"T", "W", "T", "F", "S", "S", "M"}},
		{"saturday first", time.Saturday, "", nil, []string{"S", "S", "M", "T", "W", "T", "F"}},
		{"short", time.Sunday, "", []string{"iii"}, []string{"Sun", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat"}},
		{"empty format", time.Sunday, "", []string{""}, []string{"S", "M", "T", "W", "T", "F", "S"}},
		{"french", time.Sunday, "fr", nil, []string{"D", "L", "M", "M", "J", "V", "S"}},
		{"french short", time.Sunday, "fr", []string{"iii"}, []string{"dim.", "lun.", "mar.", "mer.", "jeu.", "ven.", "sam."}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newCalendar(t, Options[plain]{FirstDayOfWeek: tt.firstDay, Locale: tt.locale, Now: fixedNow})
			got := c.Weekdays(tt.format...)
			require.Len(t, got, 7)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestTitleWeekdays(t *testing.T) {
	c := newCalendar(t, Options[plain]{FirstDayOfWeek: time.Monday, Locale: "fr", Now: fixedNow})

	assert.Equal(t, []string{"Lun.", "Mar.", "Mer.", "Jeu.", "Ven.", "Sam.", "Dim."}, c.TitleWeekdays("iii"))
}
