// Package dates holds the calendar arithmetic used by the grid engine. All
// helpers operate on local wall-clock dates: the time-of-day is dropped and
// the location of the input is preserved.
package dates

import (
	"errors"
	"strings"
	"time"

	"github.com/araddon/dateparse"
)

// KeyLayout is the layout of day keys ("2006-01-02").
const KeyLayout = "2006-01-02"

var ErrEmptyDate = errors.New("dates: empty date string")

// Truncate returns midnight of t's calendar day in t's location.
func Truncate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// Key returns the "YYYY-MM-DD" identity of t's calendar day.
func Key(t time.Time) string {
	return t.Format(KeyLayout)
}

func SameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

// Before reports whether a's calendar day precedes b's.
func Before(a, b time.Time) bool {
	return DaysBetween(a, b) > 0
}

// After reports whether a's calendar day follows b's.
func After(a, b time.Time) bool {
	return DaysBetween(a, b) < 0
}

// DaysBetween returns the number of calendar days from a to b. It is
// immune to DST transitions because both ends are projected onto UTC dates.
func DaysBetween(a, b time.Time) int {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	ua := time.Date(ay, am, ad, 0, 0, 0, 0, time.UTC)
	ub := time.Date(by, bm, bd, 0, 0, 0, 0, time.UTC)
	return int(ub.Sub(ua).Hours() / 24)
}

func AddDays(t time.Time, n int) time.Time {
	return t.AddDate(0, 0, n)
}

func StartOfMonth(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
}

// EndOfMonth returns midnight of the last day of t's month.
func EndOfMonth(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month()+1, 0, 0, 0, 0, 0, t.Location())
}

func DaysInMonth(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// WeekdayOffset is the position of wd in a week starting on firstDay (0..6).
func WeekdayOffset(wd, firstDay time.Weekday) int {
	return (int(wd) - int(firstDay) + 7) % 7
}

func StartOfWeek(t time.Time, firstDay time.Weekday) time.Time {
	t = Truncate(t)
	return t.AddDate(0, 0, -WeekdayOffset(t.Weekday(), firstDay))
}

// EndOfWeek returns midnight of the last day of t's week.
func EndOfWeek(t time.Time, firstDay time.Weekday) time.Time {
	return StartOfWeek(t, firstDay).AddDate(0, 0, 6)
}

func IsWeekend(t time.Time) bool {
	wd := t.Weekday()
	return wd == time.Saturday || wd == time.Sunday
}

// MonthYearIndex folds year and month into one ordered integer
// (year*12 + zero-based month).
func MonthYearIndex(year int, month time.Month) int {
	return year*12 + int(month) - 1
}

// FromMonthYearIndex is the inverse of MonthYearIndex, including for
// negative years.
func FromMonthYearIndex(index int) (int, time.Month) {
	year := index / 12
	rem := index % 12
	if rem < 0 {
		rem += 12
		year--
	}
	return year, time.Month(rem + 1)
}

// Week returns the week-numbering year and week number of t for weeks
// starting on firstDay. Week 1 is the week containing January 1st.
func Week(t time.Time, firstDay time.Weekday) (year, week int) {
	t = Truncate(t)
	year = t.Year()
	start := StartOfWeek(time.Date(year, time.January, 1, 0, 0, 0, 0, t.Location()), firstDay)
	if next := StartOfWeek(time.Date(year+1, time.January, 1, 0, 0, 0, 0, t.Location()), firstDay); !t.Before(next) {
		year++
		start = next
	}
	week = DaysBetween(start, StartOfWeek(t, firstDay))/7 + 1
	return year, week
}

// WeekStart returns the first day of the given week as numbered by Week.
func WeekStart(year, week int, firstDay time.Weekday, loc *time.Location) time.Time {
	if loc == nil {
		loc = time.Local
	}
	start := StartOfWeek(time.Date(year, time.January, 1, 0, 0, 0, 0, loc), firstDay)
	return start.AddDate(0, 0, (week-1)*7)
}

// Parse reads a free-form date ("2022-03-15", "March 15, 2022", "15.03.2022",
// unix seconds/millis...) in loc and truncates it to midnight.
func Parse(s string, loc *time.Location) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, ErrEmptyDate
	}
	if loc == nil {
		loc = time.Local
	}
	t, err := dateparse.ParseIn(s, loc)
	if err != nil {
		return time.Time{}, err
	}
	return Truncate(t.In(loc)), nil
}
