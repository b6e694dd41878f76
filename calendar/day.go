package calendar

import (
	"fmt"
	"time"

	"calgrid/internal/dates"
	"calgrid/reactive"
)

// Flags is the mutable state of a calendar date. A canonical day and its
// shadow copies hold the same *Flags, so a write through one is seen by all.
type Flags struct {
	Disabled *reactive.Cell[bool]
	Selected *reactive.Cell[bool]
	Between  *reactive.Cell[bool]
	Hovered  *reactive.Cell[bool]
}

func newFlags() *Flags {
	return &Flags{
		Disabled: reactive.NewCell(false),
		Selected: reactive.NewCell(false),
		Between:  reactive.NewCell(false),
		Hovered:  reactive.NewCell(false),
	}
}

// Day is one calendar date as displayed in a page.
type Day[E any] struct {
	// Date is midnight of the day in the calendar location.
	Date time.Time

	// OtherPeriod marks padding days that belong to a neighboring page.
	OtherPeriod bool
	// Copied marks shadow records created to display a neighbor's day.
	Copied bool

	IsToday        bool
	IsWeekend      bool
	MonthYearIndex int
	// ID is the "2006-01-02" key of Date.
	ID string

	*Flags

	// Ext carries application fields built by Options.Extend.
	Ext E
}

// Copy returns a shadow record sharing d's flags.
func (d *Day[E]) Copy() *Day[E] {
	c := *d
	c.Copied = true
	return &c
}

// SharesFlags reports whether d and other are views of the same date state.
func (d *Day[E]) SharesFlags(other *Day[E]) bool {
	return d.Flags == other.Flags
}

func (d *Day[E]) String() string {
	return d.ID
}

// Factory builds days. Every constructor truncates its input to midnight
// and evaluates IsToday once, at construction.
type Factory[E any] struct {
	loc    *time.Location
	now    func() time.Time
	extend func(*Day[E]) E
}

func NewFactory[E any](loc *time.Location, now func() time.Time, extend func(*Day[E]) E) *Factory[E] {
	if loc == nil {
		loc = time.Local
	}
	if now == nil {
		now = time.Now
	}
	return &Factory[E]{loc: loc, now: now, extend: extend}
}

// FromTime keeps t's calendar date, whatever its location.
func (f *Factory[E]) FromTime(t time.Time) *Day[E] {
	date := wallDate(t, f.loc)
	d := &Day[E]{
		Date:           date,
		IsToday:        dates.SameDay(date, f.now().In(f.loc)),
		IsWeekend:      dates.IsWeekend(date),
		MonthYearIndex: dates.MonthYearIndex(date.Year(), date.Month()),
		ID:             dates.Key(date),
		Flags:          newFlags(),
	}
	if f.extend != nil {
		d.Ext = f.extend(d)
	}
	return d
}

// FromDate normalizes out-of-range components like time.Date does.
func (f *Factory[E]) FromDate(year int, month time.Month, day int) *Day[E] {
	return f.FromTime(time.Date(year, month, day, 0, 0, 0, 0, f.loc))
}

func (f *Factory[E]) FromUnixMilli(ms int64) *Day[E] {
	return f.FromTime(time.UnixMilli(ms).In(f.loc))
}

func (f *Factory[E]) FromString(s string) (*Day[E], error) {
	t, err := dates.Parse(s, f.loc)
	if err != nil {
		return nil, fmt.Errorf("%w: %q: %w", ErrInvalidDate, s, err)
	}
	return f.FromTime(t), nil
}
