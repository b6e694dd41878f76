package calendar

import (
	"time"

	"calgrid/internal/dates"
	appLog "calgrid/internal/log"
	"calgrid/reactive"
)

// Period is the year and month shown by a month calendar.
type Period struct {
	Year  int
	Month time.Month
}

// MonthlyCalendar is a month-by-month view over its own set of days.
type MonthlyCalendar[E any] struct {
	*Navigator[E]
	*Selection[E]

	// Period follows the current month. Setting it navigates; months past
	// December are clamped.
	Period *reactive.Cell[Period]

	opts MonthlyOptions
}

func newMonthly[E any](n *Normalized[E], opts MonthlyOptions) *MonthlyCalendar[E] {
	gen := NewGenerator(n)
	l := &linker[E]{gen: gen, firstDay: n.FirstDayOfWeek}

	end := n.StartOn
	if n.hasMax() {
		end = n.MaxDate
	}
	days := gen.Range(dates.StartOfMonth(n.StartOn), dates.EndOfMonth(end))
	pages := wrapIntoMonths(l, days, opts.FullWeeks, opts.FixedWeeks)
	appLog.Debug("calendar: monthly calendar created", "months", len(pages), "infinite", opts.Infinite, "full_weeks", opts.FullWeeks)

	nav := newNavigator(pages, pager[E](&monthPager[E]{
		gen:        gen,
		linker:     l,
		loc:        n.Location,
		fullWeeks:  opts.FullWeeks,
		fixedWeeks: opts.FixedWeeks,
	}), opts.Infinite)

	m := &MonthlyCalendar[E]{
		Navigator: nav,
		Selection: newSelection(nav.Days),
		Period:    reactive.NewCell(monthPeriod(nav.Current())),
		opts:      opts,
	}
	bindPeriod(nav, m.Period, monthPeriod[E], clampPeriod, func(p Period) int {
		return dates.MonthYearIndex(p.Year, p.Month)
	})
	return m
}

func monthPeriod[E any](p *Page[E]) Period {
	return Period{Year: p.Year, Month: p.Month}
}

func clampPeriod(p Period) Period {
	switch {
	case p.Month > time.December:
		p.Month = time.December
	case p.Month < time.January:
		p.Month = time.January
	}
	return p
}

func (m *MonthlyCalendar[E]) Options() MonthlyOptions {
	return m.opts
}

func (m *MonthlyCalendar[E]) CurrentMonth() *Page[E] {
	return m.Current()
}

func (m *MonthlyCalendar[E]) Months() []*Page[E] {
	return m.Pages()
}

func (m *MonthlyCalendar[E]) NextMonth() {
	m.Next()
}

func (m *MonthlyCalendar[E]) PrevMonth() {
	m.Prev()
}

// SetPeriod navigates to the given month, like writing Period.
func (m *MonthlyCalendar[E]) SetPeriod(year int, month time.Month) {
	m.Period.Set(Period{Year: year, Month: month})
}
