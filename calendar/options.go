package calendar

import (
	"errors"
	"fmt"
	"time"

	"golang.org/x/text/language"

	"calgrid/internal/dates"
	"calgrid/internal/ics"
	appLog "calgrid/internal/log"
	"calgrid/internal/recur"
)

var (
	ErrInvalidFirstDayOfWeek = errors.New("calendar: first day of week must be within 0..6")
	ErrMinAfterMax           = errors.New("calendar: min date is after max date")
	ErrStartOutOfRange       = errors.New("calendar: start date is outside the min/max range")
	ErrInvalidRule           = errors.New("calendar: invalid disabled-date rule")
	ErrInvalidDate           = errors.New("calendar: invalid date")
)

// Options is the raw configuration accepted by New. Zero values mean
// "unset": StartOn defaults to MinDate (or today), MinDate and MaxDate are
// unbounded, the week starts on Sunday and labels are English.
type Options[E any] struct {
	StartOn time.Time
	MinDate time.Time
	MaxDate time.Time

	// Disabled lists single days. DisabledRules holds RRULE bodies such as
	// "FREQ=WEEKLY;BYDAY=SA,SU", DisabledCron standard cron specs and
	// DisabledICS raw iCalendar payloads whose events disable the days they
	// cover.
	Disabled      []time.Time
	DisabledRules []string
	DisabledCron  []string
	DisabledICS   [][]byte

	FirstDayOfWeek time.Weekday
	Locale         string
	PreSelection   []time.Time

	// Extend builds the application-specific part of every day.
	Extend func(*Day[E]) E

	// Now is the clock used for IsToday and the default start date.
	Now func() time.Time

	// Location anchors wall-clock dates. Defaults to time.Local.
	Location *time.Location
}

// MonthlyOptions configures a month calendar.
type MonthlyOptions struct {
	Infinite   bool
	FullWeeks  bool
	FixedWeeks bool
}

func DefaultMonthlyOptions() MonthlyOptions {
	return MonthlyOptions{Infinite: true, FullWeeks: true}
}

// WeeklyOptions configures a week calendar.
type WeeklyOptions struct {
	Infinite bool
}

func DefaultWeeklyOptions() WeeklyOptions {
	return WeeklyOptions{}
}

// Normalized is the validated configuration shared by every calendar built
// from the same Options.
type Normalized[E any] struct {
	StartOn time.Time
	// MinDate / MaxDate are zero when unbounded.
	MinDate time.Time
	MaxDate time.Time

	FirstDayOfWeek time.Weekday
	Locale         language.Tag
	Location       *time.Location
	Factory        *Factory[E]

	disabled     recur.Source
	preSelection map[string]struct{}
}

// NormalizeOptions validates opts and resolves defaults.
func NormalizeOptions[E any](opts Options[E]) (*Normalized[E], error) {
	if opts.FirstDayOfWeek < time.Sunday || opts.FirstDayOfWeek > time.Saturday {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidFirstDayOfWeek, int(opts.FirstDayOfWeek))
	}

	loc := opts.Location
	if loc == nil {
		loc = time.Local
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}

	n := &Normalized[E]{
		FirstDayOfWeek: opts.FirstDayOfWeek,
		Location:       loc,
		Factory:        NewFactory(loc, now, opts.Extend),
		Locale:         parseLocale(opts.Locale),
	}

	if !opts.MinDate.IsZero() {
		n.MinDate = n.anchor(opts.MinDate)
	}
	if !opts.MaxDate.IsZero() {
		n.MaxDate = n.anchor(opts.MaxDate)
	}
	if n.hasMin() && n.hasMax() && n.MinDate.After(n.MaxDate) {
		return nil, fmt.Errorf("%w: %s > %s", ErrMinAfterMax, dates.Key(n.MinDate), dates.Key(n.MaxDate))
	}

	switch {
	case !opts.StartOn.IsZero():
		n.StartOn = n.anchor(opts.StartOn)
	case n.hasMin():
		n.StartOn = n.MinDate
	default:
		n.StartOn = n.anchor(now())
	}
	if n.hasMin() && n.StartOn.Before(dates.StartOfMonth(n.MinDate)) {
		return nil, fmt.Errorf("%w: %s is before %s", ErrStartOutOfRange, dates.Key(n.StartOn), dates.Key(n.MinDate))
	}
	if n.hasMax() && n.StartOn.After(n.MaxDate) {
		return nil, fmt.Errorf("%w: %s is after %s", ErrStartOutOfRange, dates.Key(n.StartOn), dates.Key(n.MaxDate))
	}

	src, err := disabledSource(opts, loc)
	if err != nil {
		return nil, err
	}
	n.disabled = src

	n.preSelection = make(map[string]struct{}, len(opts.PreSelection))
	for _, t := range opts.PreSelection {
		if t.IsZero() {
			continue
		}
		n.preSelection[dates.Key(n.anchor(t))] = struct{}{}
	}

	return n, nil
}

func disabledSource[E any](opts Options[E], loc *time.Location) (recur.Source, error) {
	var multi recur.Multi

	if len(opts.Disabled) > 0 {
		list := make(recur.Dates, 0, len(opts.Disabled))
		for _, t := range opts.Disabled {
			if t.IsZero() {
				continue
			}
			list = append(list, wallDate(t, loc))
		}
		multi = append(multi, list)
	}

	// Rules without DTSTART start counting from the Unix epoch.
	anchor := time.Date(1970, time.January, 1, 0, 0, 0, 0, loc)
	for _, spec := range opts.DisabledRules {
		r, err := recur.ParseRRule(spec, anchor)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalidRule, err)
		}
		multi = append(multi, r)
	}

	for _, spec := range opts.DisabledCron {
		c, err := recur.ParseCron(spec)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalidRule, err)
		}
		multi = append(multi, c)
	}

	for i, body := range opts.DisabledICS {
		feed, err := ics.NewFeed(fmt.Sprintf("disabled-%d", i), body, loc)
		if err != nil {
			return nil, fmt.Errorf("%w: ics feed %d: %w", ErrInvalidRule, i, err)
		}
		multi = append(multi, feed)
	}

	return multi, nil
}

func parseLocale(s string) language.Tag {
	if s == "" {
		return language.English
	}
	tag, err := language.Parse(s)
	if err != nil {
		appLog.Warn("calendar: unknown locale, falling back to English", "locale", s, "err", err)
		return language.English
	}
	return tag
}

func (n *Normalized[E]) hasMin() bool { return !n.MinDate.IsZero() }
func (n *Normalized[E]) hasMax() bool { return !n.MaxDate.IsZero() }

// outOfBounds reports whether d lies before MinDate or after MaxDate.
func (n *Normalized[E]) outOfBounds(d time.Time) bool {
	if n.hasMin() && dates.Before(d, n.MinDate) {
		return true
	}
	return n.hasMax() && dates.After(d, n.MaxDate)
}

func (n *Normalized[E]) anchor(t time.Time) time.Time {
	return wallDate(t, n.Location)
}

// wallDate keeps t's calendar date and moves it to midnight in loc.
func wallDate(t time.Time, loc *time.Location) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, loc)
}
