package calendar

import (
	"time"

	"calgrid/internal/dates"
)

// Page is a navigable window of days: a month or a week.
type Page[E any] struct {
	// Index is the identity of the page: year*12+month-1 for months,
	// weekYear*100+week for weeks.
	Index int
	Year  int
	Month time.Month
	// Week is the week number for week pages, 0 for month pages.
	Week int
	Days []*Day[E]
}

// Core returns the days that belong to the page's own period.
func (p *Page[E]) Core() []*Day[E] {
	out := make([]*Day[E], 0, len(p.Days))
	for _, d := range p.Days {
		if !d.OtherPeriod {
			out = append(out, d)
		}
	}
	return out
}

// Find returns the page's record for t, or nil.
func (p *Page[E]) Find(t time.Time) *Day[E] {
	id := dates.Key(t)
	for _, d := range p.Days {
		if d.ID == id {
			return d
		}
	}
	return nil
}

func (p *Page[E]) Contains(t time.Time) bool {
	return p.Find(t) != nil
}

// WeekIndex folds a week-numbering year and week number into a page index.
func WeekIndex(year, week int) int {
	return year*100 + week
}

func monthPage[E any](index int, days []*Day[E]) *Page[E] {
	year, month := dates.FromMonthYearIndex(index)
	return &Page[E]{Index: index, Year: year, Month: month, Days: days}
}

func weekPage[E any](days []*Day[E], firstDay time.Weekday) *Page[E] {
	start := days[0].Date
	year, week := dates.Week(start, firstDay)
	return &Page[E]{
		Index: WeekIndex(year, week),
		Year:  year,
		Month: dates.StartOfWeek(start, firstDay).Month(),
		Week:  week,
		Days:  days,
	}
}

// wrapIntoMonths splits a chronological run of days into month pages,
// padding each one when fullWeeks is set. Each page links to the page
// before it, so boundary days keep a single canonical record.
func wrapIntoMonths[E any](l *linker[E], days []*Day[E], fullWeeks, fixedWeeks bool) []*Page[E] {
	var pages []*Page[E]
	for start := 0; start < len(days); {
		index := days[start].MonthYearIndex
		end := start
		for end < len(days) && days[end].MonthYearIndex == index {
			end++
		}

		core := append([]*Day[E](nil), days[start:end]...)
		var before *Page[E]
		if len(pages) > 0 {
			before = pages[len(pages)-1]
		}
		pages = append(pages, monthPage(index, l.link(core, before, nil, fullWeeks, fixedWeeks)))
		start = end
	}
	return pages
}

// wrapIntoWeeks splits a chronological run of days into week pages aligned
// on the first day of the week. The first chunk may be short.
func wrapIntoWeeks[E any](days []*Day[E], firstDay time.Weekday) []*Page[E] {
	var pages []*Page[E]
	for start := 0; start < len(days); {
		weekStart := dates.StartOfWeek(days[start].Date, firstDay)
		end := start
		for end < len(days) && dates.SameDay(dates.StartOfWeek(days[end].Date, firstDay), weekStart) {
			end++
		}
		pages = append(pages, weekPage(days[start:end:end], firstDay))
		start = end
	}
	return pages
}
