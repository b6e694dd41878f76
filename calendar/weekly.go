package calendar

import (
	"calgrid/internal/dates"
	appLog "calgrid/internal/log"
	"calgrid/reactive"
)

// WeekPeriod is the week-numbering year and week shown by a week calendar.
type WeekPeriod struct {
	Year int
	Week int
}

// WeeklyCalendar is a week-by-week view over its own set of days.
type WeeklyCalendar[E any] struct {
	*Navigator[E]
	*Selection[E]

	Period *reactive.Cell[WeekPeriod]

	opts WeeklyOptions
}

func newWeekly[E any](n *Normalized[E], opts WeeklyOptions) *WeeklyCalendar[E] {
	gen := NewGenerator(n)

	end := n.StartOn
	if n.hasMax() {
		end = n.MaxDate
	}
	days := gen.Range(dates.StartOfWeek(n.StartOn, n.FirstDayOfWeek), dates.EndOfWeek(end, n.FirstDayOfWeek))
	pages := wrapIntoWeeks(days, n.FirstDayOfWeek)
	appLog.Debug("calendar: weekly calendar created", "weeks", len(pages), "infinite", opts.Infinite)

	wp := &weekPager[E]{gen: gen, loc: n.Location, firstDay: n.FirstDayOfWeek}
	nav := newNavigator(pages, pager[E](wp), opts.Infinite)

	w := &WeeklyCalendar[E]{
		Navigator: nav,
		Selection: newSelection(nav.Days),
		Period:    reactive.NewCell(weekPeriod(nav.Current())),
		opts:      opts,
	}
	// Week numbers past the end of a year roll over into the next one.
	normalize := func(p WeekPeriod) WeekPeriod {
		year, week := dates.Week(wp.start(WeekIndex(p.Year, p.Week)), n.FirstDayOfWeek)
		return WeekPeriod{Year: year, Week: week}
	}
	bindPeriod(nav, w.Period, weekPeriod[E], normalize, func(p WeekPeriod) int {
		return WeekIndex(p.Year, p.Week)
	})
	return w
}

func weekPeriod[E any](p *Page[E]) WeekPeriod {
	return WeekPeriod{Year: p.Year, Week: p.Week}
}

func (w *WeeklyCalendar[E]) Options() WeeklyOptions {
	return w.opts
}

func (w *WeeklyCalendar[E]) CurrentWeek() *Page[E] {
	return w.Current()
}

func (w *WeeklyCalendar[E]) Weeks() []*Page[E] {
	return w.Pages()
}

func (w *WeeklyCalendar[E]) NextWeek() {
	w.Next()
}

func (w *WeeklyCalendar[E]) PrevWeek() {
	w.Prev()
}

// SetWeek navigates to the given week of a week-numbering year.
func (w *WeeklyCalendar[E]) SetWeek(year, week int) {
	w.Period.Set(WeekPeriod{Year: year, Week: week})
}
